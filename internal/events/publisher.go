package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"git.home.luguber.info/inful/sitecontent/internal/content"
	ferrors "git.home.luguber.info/inful/sitecontent/internal/foundation/errors"
	"git.home.luguber.info/inful/sitecontent/internal/logfields"
)

const flushTimeout = 5 * time.Second

// Conn is the subset of *nats.Conn the publisher uses.
type Conn interface {
	Publish(subject string, data []byte) error
	FlushWithContext(ctx context.Context) error
	Close()
}

// Publisher publishes BuildCompleted events.
type Publisher struct {
	conn    Conn
	subject string
	site    string
	now     func() time.Time
}

// Connect dials the NATS server at url.
func Connect(url, subject, site string) (*Publisher, error) {
	conn, err := nats.Connect(url,
		nats.Name("sitecontent"),
		nats.Timeout(flushTimeout),
		nats.MaxReconnects(5),
	)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryNetwork, "connect to NATS").
			WithContext("url", url).Build()
	}
	slog.Info("NATS publisher connected", slog.String("url", url), logfields.Subject(subject))
	return NewPublisher(conn, subject, site), nil
}

// NewPublisher wraps an existing connection.
func NewPublisher(conn Conn, subject, site string) *Publisher {
	return &Publisher{conn: conn, subject: subject, site: site, now: time.Now}
}

// Publish sends a BuildCompleted event for sc and waits for the server to
// acknowledge the flush.
func (p *Publisher) Publish(ctx context.Context, sc *content.SiteContent) error {
	data, err := json.Marshal(NewBuildCompleted(p.site, sc, p.now()))
	if err != nil {
		return fmt.Errorf("marshal build event: %w", err)
	}
	if err := p.conn.Publish(p.subject, data); err != nil {
		return fmt.Errorf("publish build event: %w", err)
	}
	fctx, cancel := context.WithTimeout(ctx, flushTimeout)
	defer cancel()
	if err := p.conn.FlushWithContext(fctx); err != nil {
		return fmt.Errorf("flush build event: %w", err)
	}
	slog.Debug("Published build event", logfields.BuildID(sc.Build.ID), logfields.Subject(p.subject))
	return nil
}

// Close closes the NATS connection.
func (p *Publisher) Close() {
	if p != nil && p.conn != nil {
		p.conn.Close()
	}
}
