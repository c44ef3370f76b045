package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Jayrr-Dev/AgenitiX-sub008/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	flagSet := flag.NewFlagSet("grapheditor", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
grapheditor - reactive node-graph propagation engine.

Usage:
  grapheditor [options] [MANIFEST_PATH]

Arguments:
  MANIFEST_PATH
    Path to a directory of .hcl node kind manifests. Optional; compiled-in
    kinds are always available.

Options:
`)
		flagSet.PrintDefaults()
	}

	manifestsFlag := flagSet.String("manifests", "", "Path to the node kind manifest directory.")
	canvasFlag := flagSet.String("canvas-url", "", "socket.io endpoint for the visual canvas bridge. Empty keeps visual writes local.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	frameMsFlag := flagSet.Int("frame-ms", 16, "Frame batching granularity in milliseconds.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	manifestPath := *manifestsFlag
	if manifestPath == "" && flagSet.NArg() > 0 {
		manifestPath = flagSet.Arg(0)
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	if *frameMsFlag <= 0 {
		return nil, false, &ExitError{Code: 2, Message: "invalid frame-ms: must be positive"}
	}

	config, err := app.NewConfig(app.Config{
		ManifestPath:  manifestPath,
		CanvasURL:     *canvasFlag,
		LogFormat:     logFormat,
		LogLevel:      logLevel,
		FrameInterval: time.Duration(*frameMsFlag) * time.Millisecond,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	return config, false, nil
}
