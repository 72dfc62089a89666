package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"tablebook/internal/pkg/config"
	"tablebook/internal/usecase/commands"

	"github.com/nats-io/nats.go"
)

// NATSPublisher pushes booking lifecycle events onto NATS subjects of the
// form "<prefix>.<event type>". Publishing is fire-and-forget; the booking
// flow never waits on consumers.
type NATSPublisher struct {
	conn   *nats.Conn
	prefix string
}

func NewNATSPublisher(cfg config.NATSConfig) (*NATSPublisher, func(), error) {
	conn, err := nats.Connect(cfg.URL,
		nats.Name("tablebook"),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	cleanup := func() {
		if err := conn.Drain(); err != nil {
			slog.Warn("failed to drain NATS connection", "error", err.Error())
		}
	}

	return &NATSPublisher{conn: conn, prefix: cfg.SubjectPrefix}, cleanup, nil
}

func (p *NATSPublisher) Publish(_ context.Context, event commands.BookingEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal booking event: %w", err)
	}

	subject := event.Type
	if p.prefix != "" {
		subject = p.prefix + "." + event.Type
	}

	return p.conn.Publish(subject, payload)
}

// NoopPublisher stands in when NATS is not configured (local development,
// most tests).
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, commands.BookingEvent) error { return nil }
