// Package canvas bridges the engine's visual writes to a remote canvas host
// over socket.io. It implements render.Renderer; the engine itself never
// sees the transport.
package canvas

import (
	"context"
	"fmt"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"

	"github.com/Jayrr-Dev/AgenitiX-sub008/internal/ctxlog"
)

// VisualEvent is the event name carrying node visual state to the canvas.
const VisualEvent = "node:visual"

// Options configures the canvas connection.
type Options struct {
	// URL is the socket.io endpoint, e.g. http://localhost:3100/socket.io.
	URL string
	// Namespace is the socket.io namespace, "/" when empty.
	Namespace string
	// ConnectTimeout bounds the initial connection wait. Defaults to 10s.
	ConnectTimeout time.Duration
}

// Bridge forwards SetNodeVisualState calls as socket.io events. Writes made
// while disconnected are dropped, never blocked on: the visual layer is a
// hot path and the authoritative store is the source of truth anyway.
type Bridge struct {
	io        *socket.Socket
	connected atomic.Bool
}

// Dial connects to the canvas host and waits for the initial connection.
func Dial(ctx context.Context, opts Options) (*Bridge, error) {
	logger := ctxlog.FromContext(ctx).With("canvas", opts.URL)

	timeout := opts.ConnectTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	namespace := opts.Namespace
	if namespace == "" {
		namespace = "/"
	}

	parsedURL, err := url.Parse(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse canvas URL: %w", err)
	}

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	sockOpts := socket.DefaultOptions()
	sockOpts.SetPath(parsedURL.Path)
	sockOpts.SetTransports(types.NewSet(transports.WebSocket))

	manager := socket.NewManager(baseURL, sockOpts)
	io := manager.Socket(namespace, sockOpts)

	b := &Bridge{io: io}
	done := make(chan error, 1)

	io.On(types.EventName("connect"), func(...any) {
		b.connected.Store(true)
		logger.Info("canvas connected", "namespace", namespace, "sid", io.Id())
		select {
		case done <- nil:
		default:
		}
	})
	io.On(types.EventName("connect_error"), func(errs ...any) {
		if len(errs) > 0 {
			if connectErr, ok := errs[0].(error); ok {
				select {
				case done <- connectErr:
				default:
				}
				return
			}
		}
		select {
		case done <- fmt.Errorf("canvas connection failed"):
		default:
		}
	})
	io.On(types.EventName("disconnect"), func(...any) {
		b.connected.Store(false)
		logger.Warn("canvas disconnected")
	})

	opCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	io.Connect()

	select {
	case <-opCtx.Done():
		io.Disconnect()
		return nil, fmt.Errorf("timed out waiting for canvas connection")
	case err := <-done:
		if err != nil {
			io.Disconnect()
			return nil, err
		}
		return b, nil
	}
}

// SetNodeVisualState implements render.Renderer.
func (b *Bridge) SetNodeVisualState(id string, active bool) {
	if !b.connected.Load() {
		return
	}
	b.io.Emit(VisualEvent, map[string]any{"id": id, "active": active})
}

// Close disconnects from the canvas host.
func (b *Bridge) Close() {
	b.connected.Store(false)
	b.io.Disconnect()
}
