package nats

import (
	"context"
	"fmt"
	"log/slog"

	natspkg "github.com/nats-io/nats.go"
)

// Handler processes one message payload. Messages are fire-and-forget:
// the handler owns every failure.
type Handler func(ctx context.Context, data []byte)

// Client wraps a NATS connection used to consume notification requests.
type Client struct {
	nc *natspkg.Conn
}

// NewClient connects to url and keeps reconnecting for the life of the process.
// A broker that is down at startup is retried in the background; subscriptions
// made meanwhile take effect once the first connection succeeds.
func NewClient(url, name string) (*Client, error) {
	nc, err := natspkg.Connect(url,
		natspkg.Name(name),
		natspkg.MaxReconnects(-1),
		natspkg.RetryOnFailedConnect(true),
		natspkg.ConnectHandler(func(c *natspkg.Conn) {
			slog.Info("nats connected", "url", c.ConnectedUrl())
		}),
		natspkg.DisconnectErrHandler(func(_ *natspkg.Conn, err error) {
			if err != nil {
				slog.Warn("nats disconnected", "err", err)
			}
		}),
		natspkg.ReconnectHandler(func(c *natspkg.Conn) {
			slog.Info("nats reconnected", "url", c.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect nats %s: %w", url, err)
	}
	return &Client{nc: nc}, nil
}

func (c *Client) IsConnected() bool {
	return c != nil && c.nc != nil && c.nc.Status() == natspkg.CONNECTED
}

// QueueSubscribe joins queue on subject so that each message reaches one
// consumer of the group. Handlers run on the subscription goroutine, one
// message at a time per subscription.
func (c *Client) QueueSubscribe(ctx context.Context, subject, queue string, h Handler) (*natspkg.Subscription, error) {
	sub, err := c.nc.QueueSubscribe(subject, queue, func(msg *natspkg.Msg) {
		h(ctx, msg.Data)
	})
	if err != nil {
		return nil, fmt.Errorf("subscribe %s: %w", subject, err)
	}
	return sub, nil
}

// Drain lets in-flight messages finish, then closes the connection.
func (c *Client) Drain() error {
	return c.nc.Drain()
}

func (c *Client) Close() {
	c.nc.Close()
}
