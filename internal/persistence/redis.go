package persistence

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/support-queue/internal/config"
	"github.com/spec-kit/support-queue/internal/events"
)

// Redis wraps the go-redis client used to fan queue events out to
// downstream consumers. Queue state itself never leaves the process.
type Redis struct {
	Client  *redis.Client
	channel string
}

// NewRedis connects to Redis using the provided configuration. It returns
// nil when no address is configured.
func NewRedis(cfg config.RedisConfig, logger *zap.Logger) *Redis {
	if !cfg.Enabled() {
		logger.Warn("REDIS_ADDR not provided; event fan-out disabled")
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn("unable to reach redis", zap.Error(err))
	} else {
		logger.Info("connected to redis")
	}

	return &Redis{Client: client, channel: cfg.EventChannel}
}

// Close closes the client.
func (r *Redis) Close() {
	if r != nil && r.Client != nil {
		_ = r.Client.Close()
	}
}

// Ping verifies Redis connectivity.
func (r *Redis) Ping(ctx context.Context) error {
	if r == nil || r.Client == nil {
		return errors.New("redis client not configured")
	}
	return r.Client.Ping(ctx).Err()
}

// Channel returns the pub/sub channel events are published on.
func (r *Redis) Channel() string {
	return r.channel
}

// Broadcast publishes the event as JSON on the configured channel.
func (r *Redis) Broadcast(ctx context.Context, event events.Event) error {
	if r == nil || r.Client == nil {
		return nil
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return r.Client.Publish(ctx, r.channel, payload).Err()
}
