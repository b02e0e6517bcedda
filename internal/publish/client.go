package publish

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/url"

	"github.com/specialistvlad/bddgrid/internal/ctxlog"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// connect opens a WebSocket-only socket.io connection to p.URL and waits for
// the connect or connect_error event.
func (p *Publisher) connect(ctx context.Context) (*socket.Socket, error) {
	logger := ctxlog.FromContext(ctx).With("url", p.URL, "namespace", p.Namespace)

	parsedURL, err := url.Parse(p.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}
	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)

	opts := socket.DefaultOptions()
	opts.SetPath(parsedURL.Path)
	if p.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(p.namespace(), opts)

	connectChan := make(chan error, 1)
	io.Once(types.EventName("connect"), func(...any) {
		logger.Debug("Connected.", "sid", io.Id())
		notify(connectChan, nil)
	})
	io.Once(types.EventName("connect_error"), func(errs ...any) {
		var err error = fmt.Errorf("connect_error")
		if len(errs) > 0 {
			if e, ok := errs[0].(error); ok {
				err = e
			}
		}
		notify(connectChan, err)
	})

	io.Connect()

	select {
	case err := <-connectChan:
		if err != nil {
			io.Disconnect()
			return nil, fmt.Errorf("socket.io connection failed: %w", err)
		}
		return io, nil
	case <-ctx.Done():
		io.Disconnect()
		return nil, fmt.Errorf("timed out while waiting for initial connection: %w", ctx.Err())
	}
}

// notify delivers the first connection outcome. Later outcomes are dropped
// so event callbacks never block once ch is full.
func notify(ch chan<- error, err error) bool {
	select {
	case ch <- err:
		return true
	default:
		return false
	}
}
