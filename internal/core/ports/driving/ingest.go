package driving

import (
	"context"

	"github.com/nutrimed-labs/nutrimed-core/internal/core/domain"
)

// IngestService indexes guideline documents into the vector store
type IngestService interface {
	// Ingest processes every supported document in dir: extract, clean,
	// classify, chunk, embed, index. Per-document failures are collected
	// in the report and never abort the batch. When reset is true the
	// collection is dropped first so re-ingestion does not duplicate
	// entries.
	// Returns domain.ErrServiceUnavailable when no embedding service is
	// configured.
	Ingest(ctx context.Context, dir string, reset bool) (*domain.IngestReport, error)

	// Enqueue schedules an ingest run on the task queue for the worker.
	// Returns the task ID.
	Enqueue(ctx context.Context, dir string, reset bool) (string, error)

	// Status returns the state of a previously enqueued ingest task
	Status(ctx context.Context, taskID string) (*domain.Task, error)
}
