package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name         string
		args         []string
		wantHelp     bool
		wantErr      bool
		wantManifest string
		wantCanvas   string
		wantFormat   string
		wantLevel    string
		wantFrame    time.Duration
	}{
		{
			name:       "defaults",
			args:       nil,
			wantFormat: "text",
			wantLevel:  "info",
			wantFrame:  16 * time.Millisecond,
		},
		{
			name:         "positional manifest path",
			args:         []string{"./manifests"},
			wantManifest: "./manifests",
			wantFormat:   "text",
			wantLevel:    "info",
			wantFrame:    16 * time.Millisecond,
		},
		{
			name:         "flag beats positional",
			args:         []string{"-manifests", "./from-flag", "./positional"},
			wantManifest: "./from-flag",
			wantFormat:   "text",
			wantLevel:    "info",
			wantFrame:    16 * time.Millisecond,
		},
		{
			name:       "all flags",
			args:       []string{"-canvas-url", "http://localhost:3000", "-log-format", "json", "-log-level", "debug", "-frame-ms", "8"},
			wantCanvas: "http://localhost:3000",
			wantFormat: "json",
			wantLevel:  "debug",
			wantFrame:  8 * time.Millisecond,
		},
		{
			name:     "help exits cleanly",
			args:     []string{"-h"},
			wantHelp: true,
		},
		{
			name:    "invalid log format",
			args:    []string{"-log-format", "xml"},
			wantErr: true,
		},
		{
			name:    "invalid log level",
			args:    []string{"-log-level", "verbose"},
			wantErr: true,
		},
		{
			name:    "non-positive frame interval",
			args:    []string{"-frame-ms", "0"},
			wantErr: true,
		},
		{
			name:    "unknown flag",
			args:    []string{"-bogus"},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			var out bytes.Buffer
			cfg, help, err := Parse(tc.args, &out)

			if tc.wantErr {
				require.Error(t, err)
				var exitErr *ExitError
				require.ErrorAs(t, err, &exitErr)
				assert.Equal(t, 2, exitErr.Code)
				return
			}
			require.NoError(t, err)
			if tc.wantHelp {
				assert.True(t, help)
				assert.Nil(t, cfg)
				return
			}
			require.NotNil(t, cfg)
			assert.Equal(t, tc.wantManifest, cfg.ManifestPath)
			assert.Equal(t, tc.wantCanvas, cfg.CanvasURL)
			assert.Equal(t, tc.wantFormat, cfg.LogFormat)
			assert.Equal(t, tc.wantLevel, cfg.LogLevel)
			assert.Equal(t, tc.wantFrame, cfg.FrameInterval)
		})
	}
}
