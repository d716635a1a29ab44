package worker

import (
	"context"
	"errors"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/awesomepeople/people/api/internal/domain"
	"github.com/awesomepeople/people/api/internal/pkg/circuitbreaker"
	"github.com/awesomepeople/people/api/internal/pkg/metrics"
)

// Enqueuer is the part of asynq.Client the publisher needs
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Publisher enqueues person events on asynq behind a circuit breaker
type Publisher struct {
	enqueuer Enqueuer
	queue    string
	breaker  *circuitbreaker.CircuitBreaker
	logger   *zap.Logger
}

// NewPublisher creates a new event publisher
func NewPublisher(enqueuer Enqueuer, queue string, logger *zap.Logger) *Publisher {
	if queue == "" {
		queue = "default"
	}

	cfg := circuitbreaker.DefaultConfig("event-queue")
	cfg.OnStateChange = func(name string, from, to circuitbreaker.State) {
		logger.Warn("circuit breaker state changed",
			zap.String("breaker", name),
			zap.String("from", from.String()),
			zap.String("to", to.String()),
		)
	}

	return &Publisher{
		enqueuer: enqueuer,
		queue:    queue,
		breaker:  circuitbreaker.New(cfg),
		logger:   logger,
	}
}

// Publish enqueues the event
func (p *Publisher) Publish(ctx context.Context, event domain.PersonEvent) error {
	task, err := NewPersonEventTask(event)
	if err != nil {
		metrics.RecordEventPublished(string(event.Type), metrics.OutcomeError)
		return err
	}

	err = p.breaker.Execute(ctx, func(ctx context.Context) error {
		_, err := p.enqueuer.EnqueueContext(ctx, task, asynq.Queue(p.queue))
		if errors.Is(err, asynq.ErrTaskIDConflict) {
			return nil
		}
		return err
	})

	switch {
	case err == nil:
		metrics.RecordEventPublished(string(event.Type), metrics.OutcomeSuccess)
		p.logger.Debug("person event enqueued",
			zap.String("type", string(event.Type)),
			zap.String("event_id", event.ID.String()),
		)
	case errors.Is(err, circuitbreaker.ErrCircuitOpen), errors.Is(err, circuitbreaker.ErrTooManyRequests):
		metrics.RecordEventPublished(string(event.Type), metrics.OutcomeSkipped)
	default:
		metrics.RecordEventPublished(string(event.Type), metrics.OutcomeError)
	}

	return err
}

// BreakerStats reports the state of the queue circuit breaker
func (p *Publisher) BreakerStats() circuitbreaker.Stats {
	return p.breaker.Stats()
}
