package domain

import "time"

// GuidelineChunk is a span of text extracted from a guideline document,
// sized for embedding. Ordinals are stable and increasing within a
// document; adjacent chunks overlap by a fixed amount so no semantic unit
// is split without duplicated context on both sides.
type GuidelineChunk struct {
	ID       string    `json:"id"`
	Source   string    `json:"source"` // source document filename
	Category Condition `json:"category"`
	Ordinal  int       `json:"ordinal"`
	Content  string    `json:"content"`
}

// RetrievedChunk is a guideline chunk returned from similarity search,
// ranked by relevance.
type RetrievedChunk struct {
	Chunk *GuidelineChunk `json:"chunk"`
	Score float64         `json:"score"`
}

// Citation identifies a guideline source that contributed evidence to an
// answer.
type Citation struct {
	Source   string    `json:"source"`
	Category Condition `json:"category"`
	Score    float64   `json:"score"`
}

// IngestFailure records a document that could not be ingested. Failures
// are per-document and never abort the batch.
type IngestFailure struct {
	File  string `json:"file"`
	Error string `json:"error"`
}

// IngestReport summarizes an ingest run over a guideline directory.
type IngestReport struct {
	Directory     string          `json:"directory"`
	DocumentsSeen int             `json:"documents_seen"`
	Indexed       int             `json:"indexed"`
	ChunksIndexed int             `json:"chunks_indexed"`
	Failures      []IngestFailure `json:"failures,omitempty"`
	StartedAt     time.Time       `json:"started_at"`
	FinishedAt    time.Time       `json:"finished_at"`
}
