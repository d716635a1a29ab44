package worker

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/hibiken/asynq"

	"github.com/awesomepeople/people/api/internal/domain"
)

const (
	// TypePersonCreated is the task type for person.created events
	TypePersonCreated = "person:created"
	// TypePersonDeleted is the task type for person.deleted events
	TypePersonDeleted = "person:deleted"
)

// TaskTypeFor maps an event type to its task type
func TaskTypeFor(eventType domain.PersonEventType) (string, error) {
	switch eventType {
	case domain.PersonCreated:
		return TypePersonCreated, nil
	case domain.PersonDeleted:
		return TypePersonDeleted, nil
	default:
		return "", fmt.Errorf("unknown person event type %q", eventType)
	}
}

// NewPersonEventTask creates a task carrying the event. The event id doubles
// as the task id so a retried publish does not enqueue a duplicate.
func NewPersonEventTask(event domain.PersonEvent) (*asynq.Task, error) {
	taskType, err := TaskTypeFor(event.Type)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	return asynq.NewTask(taskType, data,
		asynq.TaskID(event.ID.String()),
		asynq.MaxRetry(3),
		asynq.Timeout(30*time.Second),
	), nil
}

// DecodePersonEvent parses a task payload
func DecodePersonEvent(t *asynq.Task) (domain.PersonEvent, error) {
	var event domain.PersonEvent
	if err := json.Unmarshal(t.Payload(), &event); err != nil {
		return domain.PersonEvent{}, fmt.Errorf("failed to unmarshal payload: %w", err)
	}
	return event, nil
}
