package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync/atomic"
	"time"

	"github.com/nutrimed-labs/nutrimed-core/internal/chunker"
	"github.com/nutrimed-labs/nutrimed-core/internal/core/domain"
	"github.com/nutrimed-labs/nutrimed-core/internal/core/ports/driven"
	"github.com/nutrimed-labs/nutrimed-core/internal/core/ports/driving"
	"github.com/nutrimed-labs/nutrimed-core/internal/runtime"
)

// Ensure ingestService implements IngestService
var _ driving.IngestService = (*ingestService)(nil)

// ingestService implements the IngestService interface
type ingestService struct {
	extractors  driven.ExtractorRegistry
	pipeline    driven.TextPipeline
	chunker     *chunker.Chunker
	classifier  domain.Classifier
	vectorStore driven.VectorStore
	taskQueue   driven.TaskQueue // nil means no background ingestion
	services    *runtime.Services

	// Only one ingest run at a time; a concurrent reset would drop
	// chunks the other run just wrote.
	inFlight atomic.Bool
}

// NewIngestService creates a new IngestService.
// A nil taskQueue disables Enqueue; Ingest still works synchronously.
func NewIngestService(
	extractors driven.ExtractorRegistry,
	pipeline driven.TextPipeline,
	ch *chunker.Chunker,
	classifier domain.Classifier,
	vectorStore driven.VectorStore,
	taskQueue driven.TaskQueue,
	services *runtime.Services,
) driving.IngestService {
	if classifier == nil {
		classifier = domain.DefaultClassifier
	}
	if ch == nil {
		ch = chunker.Default()
	}
	return &ingestService{
		extractors:  extractors,
		pipeline:    pipeline,
		chunker:     ch,
		classifier:  classifier,
		vectorStore: vectorStore,
		taskQueue:   taskQueue,
		services:    services,
	}
}

// Ingest processes every supported document in dir
func (s *ingestService) Ingest(ctx context.Context, dir string, reset bool) (*domain.IngestReport, error) {
	if !s.services.Config().CanIngest() {
		return nil, fmt.Errorf("%w: embedding service or vector store not configured", domain.ErrServiceUnavailable)
	}

	if !s.inFlight.CompareAndSwap(false, true) {
		return nil, domain.ErrIngestInProgress
	}
	defer s.inFlight.Store(false)

	report := &domain.IngestReport{
		Directory: dir,
		StartedAt: time.Now(),
	}

	if reset {
		if err := s.vectorStore.Reset(ctx); err != nil {
			return nil, fmt.Errorf("failed to reset collection: %w", err)
		}
	}

	files, err := s.listDocuments(dir)
	if err != nil {
		return nil, err
	}
	report.DocumentsSeen = len(files)

	for _, path := range files {
		if ctx.Err() != nil {
			return report, ctx.Err()
		}

		indexed, err := s.ingestDocument(ctx, path)
		if err != nil {
			report.Failures = append(report.Failures, domain.IngestFailure{
				File:  filepath.Base(path),
				Error: err.Error(),
			})
			continue
		}
		report.Indexed++
		report.ChunksIndexed += indexed
	}

	report.FinishedAt = time.Now()
	return report, nil
}

// Enqueue schedules an ingest run on the task queue
func (s *ingestService) Enqueue(ctx context.Context, dir string, reset bool) (string, error) {
	if s.taskQueue == nil {
		return "", fmt.Errorf("%w: no task queue configured", domain.ErrServiceUnavailable)
	}

	task := domain.NewIngestTask(generateID(), dir, reset)
	if err := s.taskQueue.Enqueue(ctx, task); err != nil {
		return "", fmt.Errorf("failed to enqueue ingest task: %w", err)
	}
	return task.ID, nil
}

// Status returns the state of a previously enqueued ingest task
func (s *ingestService) Status(ctx context.Context, taskID string) (*domain.Task, error) {
	if s.taskQueue == nil {
		return nil, fmt.Errorf("%w: no task queue configured", domain.ErrServiceUnavailable)
	}
	return s.taskQueue.GetTask(ctx, taskID)
}

// ingestDocument runs one document through extract, clean, classify,
// chunk, embed, index. Returns the number of chunks indexed.
func (s *ingestService) ingestDocument(ctx context.Context, path string) (int, error) {
	filename := filepath.Base(path)

	extractor := s.extractors.Get(filename)
	if extractor == nil {
		return 0, fmt.Errorf("no extractor for %s", filename)
	}

	text, err := extractor.Extract(path)
	if err != nil {
		return 0, fmt.Errorf("extraction failed: %w", err)
	}

	text = s.pipeline.Process(text)
	if text == "" {
		return 0, fmt.Errorf("document is empty after cleanup")
	}

	category := s.classifier(filename)
	pieces := s.chunker.Split(text)

	chunks := make([]*domain.GuidelineChunk, 0, len(pieces))
	contents := make([]string, 0, len(pieces))
	for i, piece := range pieces {
		chunks = append(chunks, &domain.GuidelineChunk{
			ID:       generateID(),
			Source:   filename,
			Category: category,
			Ordinal:  i,
			Content:  piece,
		})
		contents = append(contents, piece)
	}

	embeddingService := s.services.EmbeddingService()
	if embeddingService == nil {
		return 0, domain.ErrServiceUnavailable
	}

	embeddings, err := embeddingService.Embed(ctx, contents)
	if err != nil {
		return 0, fmt.Errorf("embedding failed: %w", err)
	}
	if len(embeddings) != len(chunks) {
		return 0, fmt.Errorf("embedding count mismatch: got %d for %d chunks", len(embeddings), len(chunks))
	}

	if err := s.vectorStore.Add(ctx, chunks, embeddings); err != nil {
		return 0, fmt.Errorf("indexing failed: %w", err)
	}

	return len(chunks), nil
}

// listDocuments returns the supported files directly under dir, sorted by
// name for stable runs. Subdirectories are not descended into.
func (s *ingestService) listDocuments(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read guidelines directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if s.extractors.Get(entry.Name()) == nil {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}
