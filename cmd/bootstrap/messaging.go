package bootstrap

import (
	"context"

	"tablebook/internal/infra/events"
	"tablebook/internal/pkg/config"
	"tablebook/internal/usecase/commands"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var MessagingModule = fx.Module("messaging",
	fx.Provide(
		NewEventPublisher,
		NewRedisClient,
	),
)

// NewEventPublisher wires NATS when configured and a no-op otherwise, so
// local development needs no broker.
func NewEventPublisher(lc fx.Lifecycle, cfg config.Config) (commands.EventPublisher, error) {
	if cfg.NATS.URL == "" {
		return events.NoopPublisher{}, nil
	}

	publisher, cleanup, err := events.NewNATSPublisher(cfg.NATS)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			cleanup()
			return nil
		},
	})

	return publisher, nil
}

// NewRedisClient returns nil when Redis is not configured; the rate limiter
// treats nil as disabled.
func NewRedisClient(lc fx.Lifecycle, cfg config.Config) *redis.Client {
	if cfg.Redis.Addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
	})

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})

	return client
}
