// Package bus relays serialized change events between server instances.
package bus

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// RedisBus publishes events to a Redis pub/sub channel. Redis pub/sub keeps
// nothing: instances that are not subscribed when an event is published miss it.
type RedisBus struct {
	rdb     *goredis.Client
	channel string
	logger  *slog.Logger
}

// NewRedisBus connects to addr and verifies the connection
func NewRedisBus(ctx context.Context, addr, channel string, logger *slog.Logger) (*RedisBus, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil, fmt.Errorf("missing redis address")
	}
	channel = strings.TrimSpace(channel)
	if channel == "" {
		channel = "inkwell:changes"
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return NewRedisBusWithClient(rdb, channel, logger), nil
}

// NewRedisBusWithClient wraps an existing client
func NewRedisBusWithClient(rdb *goredis.Client, channel string, logger *slog.Logger) *RedisBus {
	return &RedisBus{
		rdb:     rdb,
		channel: channel,
		logger:  logger.With("component", "redis_bus", "channel", channel),
	}
}

// Publish sends one serialized event to the channel
func (b *RedisBus) Publish(ctx context.Context, payload []byte) error {
	if b == nil || b.rdb == nil {
		return fmt.Errorf("redis bus not initialized")
	}
	return b.rdb.Publish(ctx, b.channel, payload).Err()
}

// StartForwarder subscribes to the channel and calls onMsg for every message
// until ctx is cancelled
func (b *RedisBus) StartForwarder(ctx context.Context, onMsg func(payload []byte)) error {
	if b == nil || b.rdb == nil {
		return fmt.Errorf("redis bus not initialized")
	}
	if onMsg == nil {
		return fmt.Errorf("onMsg callback required")
	}

	sub := b.rdb.Subscribe(ctx, b.channel)

	// ensures the subscription is live before events are published
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return fmt.Errorf("redis subscribe: %w", err)
	}

	go func() {
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				_ = sub.Close()
				return
			case m, ok := <-ch:
				if !ok || m == nil {
					_ = sub.Close()
					b.logger.Warn("redis subscription closed")
					return
				}
				onMsg([]byte(m.Payload))
			}
		}
	}()

	return nil
}

// Close closes the Redis client
func (b *RedisBus) Close() error {
	if b == nil || b.rdb == nil {
		return nil
	}
	return b.rdb.Close()
}
