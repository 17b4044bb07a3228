// Package mirror forwards the effects of a running game to a live editor over
// socket.io, so the editor can show logged values and screen changes as they
// happen.
package mirror

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/url"
	"time"

	"github.com/vk/rpgbaker/internal/ctxlog"
	"github.com/vk/rpgbaker/internal/value"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// Event names emitted to the editor.
const (
	EventLog    = "game:log"
	EventScreen = "game:screen"
)

// DefaultTimeout bounds how long Dial waits for the connection.
const DefaultTimeout = 15 * time.Second

// Options configures the editor connection.
type Options struct {
	URL                string
	Namespace          string
	InsecureSkipVerify bool
	Timeout            time.Duration
}

// Client mirrors game effects to a connected editor. It implements
// game.Observer.
type Client struct {
	emit  func(event string, payload map[string]any)
	close func()
}

// Dial connects to the editor at opts.URL and waits for the handshake.
func Dial(ctx context.Context, opts Options) (*Client, error) {
	logger := ctxlog.FromContext(ctx).With("component", "mirror", "url", opts.URL)
	logger.Debug("Connecting to editor.")

	parsedURL, err := url.Parse(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse mirror URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, fmt.Errorf("mirror URL %q must be absolute", opts.URL)
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	namespace := opts.Namespace
	if namespace == "" {
		namespace = "/"
	}

	sopts := socket.DefaultOptions()
	sopts.SetPath(parsedURL.Path)
	if opts.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		sopts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	sopts.SetTransports(types.NewSet(transports.WebSocket))

	connectChan := make(chan error, 1)

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	manager := socket.NewManager(baseURL, sopts)
	io := manager.Socket(namespace, sopts)

	io.Once(types.EventName("connect"), func(...any) {
		logger.Info("Connected to editor.", "sid", io.Id())
		select {
		case connectChan <- nil:
		default:
		}
	})
	io.Once(types.EventName("connect_error"), func(errs ...any) {
		err := fmt.Errorf("connect_error")
		if len(errs) > 0 {
			if e, ok := errs[0].(error); ok {
				err = e
			} else {
				err = fmt.Errorf("%v", errs[0])
			}
		}
		select {
		case connectChan <- err:
		default:
		}
	})

	io.Connect()

	select {
	case err := <-connectChan:
		if err != nil {
			io.Disconnect()
			return nil, fmt.Errorf("editor connection failed: %w", err)
		}
	case <-ctx.Done():
		io.Disconnect()
		return nil, fmt.Errorf("waiting for editor connection: %w", ctx.Err())
	case <-time.After(timeout):
		io.Disconnect()
		return nil, fmt.Errorf("timed out after %v waiting for editor connection", timeout)
	}

	return newClient(
		func(event string, payload map[string]any) { io.Emit(event, payload) },
		func() { io.Disconnect() },
	), nil
}

func newClient(emit func(string, map[string]any), closeFn func()) *Client {
	return &Client{emit: emit, close: closeFn}
}

// ObserveLog emits EventLog with the logged value.
func (c *Client) ObserveLog(ctx context.Context, v value.Value) {
	ctxlog.FromContext(ctx).Debug("Mirroring log.", "value", v.String())
	c.emit(EventLog, map[string]any{
		"type":    v.BaseType().String(),
		"value":   plain(v),
		"display": v.String(),
	})
}

// ObserveScreen emits EventScreen with the new screen.
func (c *Client) ObserveScreen(ctx context.Context, screen string) {
	ctxlog.FromContext(ctx).Debug("Mirroring screen change.", "screen", screen)
	c.emit(EventScreen, map[string]any{"screen": screen})
}

// Close disconnects from the editor.
func (c *Client) Close() error {
	c.close()
	return nil
}

// plain converts v to the Go value the socket.io encoder serializes.
func plain(v value.Value) any {
	if i, ok := v.AsInt(); ok {
		return i
	}
	if f, ok := v.AsFloat(); ok {
		return f
	}
	if s, ok := v.AsText(); ok {
		return s
	}
	return nil
}
