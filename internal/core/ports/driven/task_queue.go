package driven

import (
	"context"

	"github.com/nutrimed-labs/nutrimed-core/internal/core/domain"
)

// TaskQueue hands background work (guideline ingestion) to the worker.
// Backed by Redis Streams; when Redis is not configured the repo ingests
// synchronously instead.
type TaskQueue interface {
	// Enqueue adds a task to the queue for processing
	Enqueue(ctx context.Context, task *domain.Task) error

	// DequeueWithTimeout retrieves the next available task, waiting up to
	// timeout seconds. Returns nil, nil if the timeout elapses with no
	// tasks available.
	DequeueWithTimeout(ctx context.Context, timeout int) (*domain.Task, error)

	// Ack acknowledges successful completion of a task
	Ack(ctx context.Context, taskID string) error

	// Nack records a failure; the task is retried until MaxRetries is
	// exceeded, then marked failed.
	Nack(ctx context.Context, taskID string, reason string) error

	// GetTask retrieves a task by ID (for status checking)
	GetTask(ctx context.Context, taskID string) (*domain.Task, error)

	// Ping checks if the queue backend is healthy
	Ping(ctx context.Context) error

	// Close cleans up resources
	Close() error
}
