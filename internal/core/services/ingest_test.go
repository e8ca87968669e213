package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nutrimed-labs/nutrimed-core/internal/chunker"
	"github.com/nutrimed-labs/nutrimed-core/internal/core/domain"
	"github.com/nutrimed-labs/nutrimed-core/internal/core/ports/driven/mocks"
	"github.com/nutrimed-labs/nutrimed-core/internal/core/ports/driving"
	"github.com/nutrimed-labs/nutrimed-core/internal/extractors"
	"github.com/nutrimed-labs/nutrimed-core/internal/runtime"
	"github.com/nutrimed-labs/nutrimed-core/internal/textproc"
)

type ingestFixture struct {
	vectorStore *mocks.MockVectorStore
	embedding   *mocks.MockEmbeddingService
	taskQueue   *mocks.MockTaskQueue
	services    *runtime.Services
	svc         driving.IngestService
}

func newIngestFixture(t *testing.T) *ingestFixture {
	t.Helper()

	vectorStore := mocks.NewMockVectorStore()
	embedding := mocks.NewMockEmbeddingService()
	taskQueue := mocks.NewMockTaskQueue()

	services := runtime.NewServices(domain.NewRuntimeConfig("sqlite", "sqlite"))
	services.SetEmbeddingService(embedding)
	services.Config().SetRetrievalAvailable(true)

	svc := NewIngestService(
		extractors.DefaultRegistry(),
		textproc.DefaultPipeline(),
		chunker.Default(),
		domain.DefaultClassifier,
		vectorStore,
		taskQueue,
		services,
	)

	return &ingestFixture{
		vectorStore: vectorStore,
		embedding:   embedding,
		taskQueue:   taskQueue,
		services:    services,
		svc:         svc,
	}
}

func writeGuideline(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("writing guideline failed: %v", err)
	}
}

func TestIngestService_Ingest(t *testing.T) {
	f := newIngestFixture(t)
	dir := t.TempDir()
	writeGuideline(t, dir, "icmr_diabetes_2023.txt", "Prefer whole grains and legumes.")
	writeGuideline(t, dir, "hypertension_insh.md", "Restrict sodium intake.")
	writeGuideline(t, dir, "notes.docx", "unsupported format, skipped")

	report, err := f.svc.Ingest(context.Background(), dir, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.DocumentsSeen != 2 {
		t.Errorf("expected 2 supported documents, got %d", report.DocumentsSeen)
	}
	if report.Indexed != 2 {
		t.Errorf("expected 2 indexed documents, got %d", report.Indexed)
	}
	if report.ChunksIndexed != 2 {
		t.Errorf("expected 2 chunks for short documents, got %d", report.ChunksIndexed)
	}
	if len(report.Failures) != 0 {
		t.Errorf("expected no failures, got %v", report.Failures)
	}

	count, err := f.vectorStore.Count(context.Background())
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 chunks in the store, got %d", count)
	}
}

func TestIngestService_Ingest_ClassifiesByFilename(t *testing.T) {
	f := newIngestFixture(t)
	dir := t.TempDir()
	writeGuideline(t, dir, "icmr_diabetes_2023.txt", "Prefer whole grains.")

	if _, err := f.svc.Ingest(context.Background(), dir, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	chunks, err := f.vectorStore.Query(context.Background(), []float32{1, 0, 0, 0}, 10, domain.ConditionDiabetes)
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(chunks) != 1 {
		t.Fatalf("expected the chunk tagged diabetes, got %d", len(chunks))
	}
	if chunks[0].Chunk.Source != "icmr_diabetes_2023.txt" {
		t.Errorf("unexpected source %q", chunks[0].Chunk.Source)
	}
}

func TestIngestService_Ingest_LongDocumentChunked(t *testing.T) {
	f := newIngestFixture(t)
	dir := t.TempDir()
	writeGuideline(t, dir, "dietary_guidelines.txt", strings.Repeat("Eat vegetables daily. ", 150))

	report, err := f.svc.Ingest(context.Background(), dir, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.ChunksIndexed < 2 {
		t.Errorf("expected a long document to produce multiple chunks, got %d", report.ChunksIndexed)
	}

	chunks, err := f.vectorStore.Query(context.Background(), []float32{1, 0, 0, 0}, 100, "")
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	for i, rc := range chunks {
		if rc.Chunk.Ordinal != i {
			t.Errorf("expected stable ordinals, chunk %d has ordinal %d", i, rc.Chunk.Ordinal)
		}
	}
}

func TestIngestService_Ingest_PerDocumentFailure(t *testing.T) {
	f := newIngestFixture(t)
	dir := t.TempDir()
	writeGuideline(t, dir, "anemia_iron.txt", "Increase iron-rich foods.")
	writeGuideline(t, dir, "broken.pdf", "not actually a pdf")

	report, err := f.svc.Ingest(context.Background(), dir, false)
	if err != nil {
		t.Fatalf("one bad document must not abort the batch: %v", err)
	}

	if report.DocumentsSeen != 2 {
		t.Errorf("expected 2 documents seen, got %d", report.DocumentsSeen)
	}
	if report.Indexed != 1 {
		t.Errorf("expected 1 indexed document, got %d", report.Indexed)
	}
	if len(report.Failures) != 1 {
		t.Fatalf("expected 1 failure, got %d", len(report.Failures))
	}
	if report.Failures[0].File != "broken.pdf" {
		t.Errorf("unexpected failed file %q", report.Failures[0].File)
	}
}

func TestIngestService_Ingest_EmptyDocumentFails(t *testing.T) {
	f := newIngestFixture(t)
	dir := t.TempDir()
	writeGuideline(t, dir, "empty.txt", "   \n\n  ")

	report, err := f.svc.Ingest(context.Background(), dir, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(report.Failures) != 1 {
		t.Fatalf("expected the empty document to be reported, got %v", report.Failures)
	}
}

func TestIngestService_Ingest_Reset(t *testing.T) {
	f := newIngestFixture(t)
	dir := t.TempDir()
	writeGuideline(t, dir, "pcos_guide.txt", "Favour low glycemic meals.")

	if _, err := f.svc.Ingest(context.Background(), dir, false); err != nil {
		t.Fatalf("first ingest failed: %v", err)
	}
	if _, err := f.svc.Ingest(context.Background(), dir, true); err != nil {
		t.Fatalf("reset ingest failed: %v", err)
	}

	count, err := f.vectorStore.Count(context.Background())
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("reset must prevent duplicates, got %d chunks", count)
	}
}

func TestIngestService_Ingest_NoEmbeddingService(t *testing.T) {
	f := newIngestFixture(t)
	f.services.SetEmbeddingService(nil)

	_, err := f.svc.Ingest(context.Background(), t.TempDir(), false)
	if !errors.Is(err, domain.ErrServiceUnavailable) {
		t.Errorf("expected ErrServiceUnavailable, got %v", err)
	}
}

func TestIngestService_Ingest_MissingDirectory(t *testing.T) {
	f := newIngestFixture(t)

	if _, err := f.svc.Ingest(context.Background(), "/does/not/exist", false); err == nil {
		t.Error("expected an error for a missing directory")
	}
}

func TestIngestService_EnqueueAndStatus(t *testing.T) {
	f := newIngestFixture(t)

	taskID, err := f.svc.Enqueue(context.Background(), "/data/guidelines", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if taskID == "" {
		t.Fatal("expected a task ID")
	}

	task, err := f.svc.Status(context.Background(), taskID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.Type != domain.TaskIngestGuidelines {
		t.Errorf("unexpected task type %q", task.Type)
	}
	if task.Status != domain.TaskStatusPending {
		t.Errorf("expected pending, got %q", task.Status)
	}
	if task.Payload["directory"] != "/data/guidelines" {
		t.Errorf("unexpected directory payload %q", task.Payload["directory"])
	}
	if task.Payload["reset"] != "true" {
		t.Error("expected reset flag in the payload")
	}
}

func TestIngestService_Enqueue_NoQueue(t *testing.T) {
	f := newIngestFixture(t)
	svc := NewIngestService(
		extractors.DefaultRegistry(),
		textproc.DefaultPipeline(),
		chunker.Default(),
		domain.DefaultClassifier,
		f.vectorStore,
		nil,
		f.services,
	)

	if _, err := svc.Enqueue(context.Background(), "/data/guidelines", false); !errors.Is(err, domain.ErrServiceUnavailable) {
		t.Errorf("expected ErrServiceUnavailable, got %v", err)
	}
}

// blockingEmbedding parks inside Embed until released, so a second ingest
// can be attempted while the first is mid-run.
type blockingEmbedding struct {
	*mocks.MockEmbeddingService
	entered chan struct{}
	release chan struct{}
}

func (b *blockingEmbedding) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	b.entered <- struct{}{}
	<-b.release
	return b.MockEmbeddingService.Embed(ctx, texts)
}

func TestIngestService_Ingest_SingleFlight(t *testing.T) {
	f := newIngestFixture(t)
	embedding := &blockingEmbedding{
		MockEmbeddingService: f.embedding,
		entered:              make(chan struct{}),
		release:              make(chan struct{}),
	}
	f.services.SetEmbeddingService(embedding)

	dir := t.TempDir()
	writeGuideline(t, dir, "obesity_plan.txt", "Portion control matters.")

	done := make(chan error, 1)
	go func() {
		_, err := f.svc.Ingest(context.Background(), dir, false)
		done <- err
	}()

	<-embedding.entered

	if _, err := f.svc.Ingest(context.Background(), dir, false); !errors.Is(err, domain.ErrIngestInProgress) {
		t.Errorf("expected ErrIngestInProgress, got %v", err)
	}

	close(embedding.release)
	if err := <-done; err != nil {
		t.Errorf("first ingest failed: %v", err)
	}
}
