// Package pushclient consumes the server's WebSocket push channel and
// reconnects with exponential backoff when the connection drops.
package pushclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gorilla/websocket"

	"github.com/robinrobin1706/space-biology/internal/realtime"
)

const (
	DefaultInitialInterval = time.Second
	DefaultMaxInterval     = 30 * time.Second
	DefaultMaxRetries      = 5
	DefaultMultiplier      = 2
)

// ErrGaveUp is returned by Run once every reconnection attempt failed.
var ErrGaveUp = errors.New("push channel unavailable")

// Event is a message received from the push channel.
type Event struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Config configures the push client.
type Config struct {
	URL string
	// Subscribe lists experiment codes whose updates are requested after
	// every (re)connection.
	Subscribe []string

	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxRetries      uint64
}

type Client struct {
	cfg    Config
	logger *slog.Logger
	dial   func(ctx context.Context, url string) (*websocket.Conn, error)
}

func New(cfg Config, logger *slog.Logger) *Client {
	if cfg.InitialInterval <= 0 {
		cfg.InitialInterval = DefaultInitialInterval
	}
	if cfg.MaxInterval <= 0 {
		cfg.MaxInterval = DefaultMaxInterval
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = DefaultMaxRetries
	}
	return &Client{
		cfg:    cfg,
		logger: logger,
		dial: func(ctx context.Context, url string) (*websocket.Conn, error) {
			conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
			return conn, err
		},
	}
}

func (c *Client) newBackOff() backoff.BackOff {
	exp := &backoff.ExponentialBackOff{
		InitialInterval:     c.cfg.InitialInterval,
		RandomizationFactor: 0,
		Multiplier:          DefaultMultiplier,
		MaxInterval:         c.cfg.MaxInterval,
		MaxElapsedTime:      0,
		Stop:                backoff.Stop,
		Clock:               backoff.SystemClock,
	}
	exp.Reset()
	return backoff.WithMaxRetries(exp, c.cfg.MaxRetries)
}

// Run connects and delivers every event to handle until ctx is cancelled,
// in which case it returns nil. A dropped connection is retried after
// 1s, 2s, 4s... capped at the max interval; the delay sequence restarts
// after each successful connection. Run returns ErrGaveUp after MaxRetries
// consecutive failed attempts.
func (c *Client) Run(ctx context.Context, handle func(Event)) error {
	b := c.newBackOff()
	attempt := 0

	for {
		attempt++
		conn, err := c.dial(ctx, c.cfg.URL)
		if err == nil {
			c.logger.Info("push channel connected", "url", c.cfg.URL, "attempt", attempt)
			b.Reset()
			attempt = 0
			err = c.consume(ctx, conn, handle)
		}
		if ctx.Err() != nil {
			return nil
		}

		wait := b.NextBackOff()
		if wait == backoff.Stop {
			return fmt.Errorf("%w: %d attempts failed: %v", ErrGaveUp, attempt, err)
		}
		c.logger.Warn("push channel disconnected, retrying",
			"url", c.cfg.URL,
			"retry_in", wait,
			"error", err,
		)

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case <-timer.C:
		}
	}
}

func (c *Client) consume(ctx context.Context, conn *websocket.Conn, handle func(Event)) error {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()
	defer conn.Close()

	for _, code := range c.cfg.Subscribe {
		msg := realtime.ClientMessage{Action: realtime.ActionSubscribeExperiment, ExperimentID: code}
		if err := conn.WriteJSON(msg); err != nil {
			return fmt.Errorf("failed to subscribe to %s: %w", code, err)
		}
	}

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		var ev Event
		if err := json.Unmarshal(payload, &ev); err != nil {
			c.logger.Warn("ignoring malformed push message", "error", err)
			continue
		}
		handle(ev)
	}
}
