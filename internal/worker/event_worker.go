package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/awesomepeople/people/api/internal/domain"
	"github.com/awesomepeople/people/api/internal/pkg/metrics"
)

// EventWorker consumes person lifecycle events
type EventWorker struct {
	logger *zap.Logger
	now    func() time.Time
}

// NewEventWorker creates a new event worker
func NewEventWorker(logger *zap.Logger) *EventWorker {
	return &EventWorker{logger: logger, now: time.Now}
}

// RegisterHandlers registers the person event handlers
func (w *EventWorker) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(TypePersonCreated, w.ProcessTask)
	mux.HandleFunc(TypePersonDeleted, w.ProcessTask)
}

// ProcessTask handles one person event. Payloads that cannot be decoded, or
// whose event type does not match the task type, are not retried.
func (w *EventWorker) ProcessTask(ctx context.Context, t *asynq.Task) error {
	event, err := DecodePersonEvent(t)
	if err != nil {
		metrics.RecordEventProcessed(t.Type(), metrics.OutcomeInvalid)
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}

	expected, err := TaskTypeFor(event.Type)
	if err != nil || expected != t.Type() {
		metrics.RecordEventProcessed(t.Type(), metrics.OutcomeInvalid)
		return fmt.Errorf("%w: event type %q on task %q", asynq.SkipRetry, event.Type, t.Type())
	}

	fields := []zap.Field{
		zap.String("event_id", event.ID.String()),
		zap.Int64("person_id", event.Person.ID),
		zap.String("name", event.Person.Name),
		zap.Duration("lag", w.now().Sub(event.OccurredAt)),
	}

	switch event.Type {
	case domain.PersonCreated:
		w.logger.Info("person created", fields...)
	case domain.PersonDeleted:
		w.logger.Info("person deleted", fields...)
	}

	metrics.RecordEventProcessed(string(event.Type), metrics.OutcomeSuccess)
	return nil
}
