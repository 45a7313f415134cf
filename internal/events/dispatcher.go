package events

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/cenkalti/backoff/v4"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/feral-file/ff-marketplace/internal/adapter"
	"github.com/feral-file/ff-marketplace/internal/domain"
	"github.com/feral-file/ff-marketplace/internal/logger"
	"github.com/feral-file/ff-marketplace/internal/messaging"
)

// Config holds the dispatcher configuration
type Config struct {
	// WorkerPoolSize is the number of concurrent publishes
	WorkerPoolSize int
	// QueueSize bounds the number of events waiting to be published
	QueueSize int
	// MaxElapsedTime caps the retry time of a single event
	MaxElapsedTime time.Duration
}

// Dispatcher publishes committed marketplace events in the background.
// Publishing never affects the operation that produced the event.
//
//go:generate mockgen -source=dispatcher.go -destination=../mocks/dispatcher.go -package=mocks -mock_names=Dispatcher=MockDispatcher
type Dispatcher interface {
	// Dispatch stamps the event with an id and timestamp if missing and queues it
	Dispatch(ctx context.Context, event *domain.MarketEvent)
	// Close waits for queued events to be published
	Close()
}

type dispatcher struct {
	publisher messaging.Publisher
	pool      pond.Pool
	clock     adapter.Clock
	config    Config
	closed    atomic.Bool
}

// NewDispatcher creates a dispatcher publishing through publisher
func NewDispatcher(publisher messaging.Publisher, clock adapter.Clock, cfg Config) Dispatcher {
	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = 4
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 1000
	}
	if cfg.MaxElapsedTime <= 0 {
		cfg.MaxElapsedTime = time.Minute
	}

	return &dispatcher{
		publisher: publisher,
		pool:      pond.NewPool(cfg.WorkerPoolSize, pond.WithQueueSize(cfg.QueueSize)),
		clock:     clock,
		config:    cfg,
	}
}

func (d *dispatcher) Dispatch(ctx context.Context, event *domain.MarketEvent) {
	stamp(event, d.clock.Now())

	if d.closed.Load() {
		logger.WarnCtx(ctx, "Dispatcher closed, dropping event", zap.String("event_id", event.ID))
		return
	}

	// the request context ends with the call that produced the event
	publishCtx := context.WithoutCancel(ctx)
	d.pool.SubmitErr(func() error {
		err := d.publish(publishCtx, event)
		if err != nil {
			logger.ErrorCtx(publishCtx, err,
				zap.String("event_id", event.ID),
				zap.String("event_type", string(event.Type)),
			)
		}
		return err
	})
}

func (d *dispatcher) publish(ctx context.Context, event *domain.MarketEvent) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 200 * time.Millisecond
	b.MaxInterval = 10 * time.Second
	b.MaxElapsedTime = d.config.MaxElapsedTime

	operation := func() error {
		return d.publisher.PublishEvent(ctx, event)
	}

	var attempts int
	notify := func(err error, next time.Duration) {
		attempts++
		logger.WarnCtx(ctx, "Event publish failed, retrying",
			zap.String("event_id", event.ID),
			zap.Error(err),
			zap.Int("attempt", attempts),
			zap.Duration("next_retry_in", next),
		)
	}

	if err := backoff.RetryNotify(operation, backoff.WithContext(b, ctx), notify); err != nil {
		return fmt.Errorf("failed to publish event after %d attempts: %w", attempts+1, err)
	}
	return nil
}

func (d *dispatcher) Close() {
	if !d.closed.CompareAndSwap(false, true) {
		return
	}
	d.pool.StopAndWait()
	d.publisher.Close()
}

type discard struct {
	clock adapter.Clock
}

// NewDiscard creates a dispatcher that only logs events, used when no broker is configured
func NewDiscard(clock adapter.Clock) Dispatcher {
	return &discard{clock: clock}
}

func (d *discard) Dispatch(ctx context.Context, event *domain.MarketEvent) {
	stamp(event, d.clock.Now())
	logger.DebugCtx(ctx, "Event not published, no broker configured",
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)),
	)
}

func (d *discard) Close() {}

func stamp(event *domain.MarketEvent, now time.Time) {
	if event.Timestamp.IsZero() {
		event.Timestamp = now.UTC()
	}
	if event.ID == "" {
		event.ID = ulid.MustNewDefault(event.Timestamp).String()
	}
}
