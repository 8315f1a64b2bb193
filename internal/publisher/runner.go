package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/fleet-manager/internal/models"
)

// SummaryProvider computes a fresh dashboard summary.
type SummaryProvider interface {
	Summary(ctx context.Context) (*models.DashboardSummary, error)
}

// Runner publishes a new summary on every tick.
type Runner struct {
	provider SummaryProvider
	pub      Publisher
	topic    string
	interval time.Duration
}

// NewRunner creates a Runner. interval <= 0 defaults to one minute.
func NewRunner(provider SummaryProvider, pub Publisher, topic string, interval time.Duration) (*Runner, error) {
	if provider == nil || pub == nil {
		return nil, errors.New("provider and publisher are required")
	}
	if topic == "" {
		return nil, errors.New("topic is required")
	}
	if interval <= 0 {
		interval = time.Minute
	}
	return &Runner{provider: provider, pub: pub, topic: topic, interval: interval}, nil
}

// PublishOnce computes one summary and publishes it.
func (r *Runner) PublishOnce(ctx context.Context) error {
	summary, err := r.provider.Summary(ctx)
	if err != nil {
		return fmt.Errorf("compute summary: %w", err)
	}
	payload, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}
	if err := r.pub.Publish(r.topic, payload); err != nil {
		return fmt.Errorf("publish to %s: %w", r.topic, err)
	}
	return nil
}

// Run publishes immediately and then on every interval until ctx is done.
// Failed ticks are logged and skipped.
func (r *Runner) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.tick(ctx)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			r.tick(ctx)
		}
	}
}

func (r *Runner) tick(ctx context.Context) {
	start := time.Now()
	if err := r.PublishOnce(ctx); err != nil {
		log.WithError(err).WithField("topic", r.topic).Error("Failed to publish dashboard summary")
		return
	}
	log.WithFields(log.Fields{
		"topic":    r.topic,
		"duration": time.Since(start),
	}).Debug("Published dashboard summary")
}
