// Package chroma provides a driven adapter backed by the Chroma vector
// database HTTP API. Guideline chunks are stored in a single collection
// with source and category metadata so retrieval can be filtered per
// condition.
package chroma

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/nutrimed-labs/nutrimed-core/internal/core/domain"
	"github.com/nutrimed-labs/nutrimed-core/internal/core/ports/driven"
)

const defaultCollection = "clinical_guidelines"

// VectorStore talks to a Chroma server over its v1 REST API.
type VectorStore struct {
	baseURL      string
	collection   string
	collectionID string
	client       *http.Client
}

// Ensure VectorStore implements driven.VectorStore
var _ driven.VectorStore = (*VectorStore)(nil)

// NewVectorStore connects to Chroma and gets or creates the collection.
func NewVectorStore(ctx context.Context, baseURL, collection string) (*VectorStore, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("chroma base URL is required")
	}
	if collection == "" {
		collection = defaultCollection
	}

	s := &VectorStore{
		baseURL:    baseURL,
		collection: collection,
		client:     &http.Client{Timeout: 60 * time.Second},
	}
	if err := s.ensureCollection(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

type collectionRequest struct {
	Name        string         `json:"name"`
	GetOrCreate bool           `json:"get_or_create"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

type collectionResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ensureCollection resolves the collection ID, creating the collection
// if it does not exist yet.
func (s *VectorStore) ensureCollection(ctx context.Context) error {
	req := collectionRequest{
		Name:        s.collection,
		GetOrCreate: true,
		Metadata:    map[string]any{"hnsw:space": "cosine"},
	}

	var resp collectionResponse
	if err := s.do(ctx, http.MethodPost, "/api/v1/collections", req, &resp); err != nil {
		return err
	}
	s.collectionID = resp.ID
	return nil
}

type addRequest struct {
	IDs        []string         `json:"ids"`
	Embeddings [][]float32      `json:"embeddings"`
	Documents  []string         `json:"documents"`
	Metadatas  []map[string]any `json:"metadatas"`
}

// Add indexes chunks with their embeddings. embeddings[i] corresponds to
// chunks[i].
func (s *VectorStore) Add(ctx context.Context, chunks []*domain.GuidelineChunk, embeddings [][]float32) error {
	if len(chunks) != len(embeddings) {
		return fmt.Errorf("%w: %d chunks but %d embeddings", domain.ErrInvalidInput, len(chunks), len(embeddings))
	}
	if len(chunks) == 0 {
		return nil
	}

	req := addRequest{
		IDs:        make([]string, len(chunks)),
		Embeddings: embeddings,
		Documents:  make([]string, len(chunks)),
		Metadatas:  make([]map[string]any, len(chunks)),
	}
	for i, chunk := range chunks {
		req.IDs[i] = chunk.ID
		req.Documents[i] = chunk.Content
		req.Metadatas[i] = map[string]any{
			"source":   chunk.Source,
			"category": string(chunk.Category),
			"ordinal":  chunk.Ordinal,
		}
	}

	path := fmt.Sprintf("/api/v1/collections/%s/add", s.collectionID)
	return s.do(ctx, http.MethodPost, path, req, nil)
}

type queryRequest struct {
	QueryEmbeddings [][]float32    `json:"query_embeddings"`
	NResults        int            `json:"n_results"`
	Where           map[string]any `json:"where,omitempty"`
	Include         []string       `json:"include"`
}

type queryResponse struct {
	IDs       [][]string         `json:"ids"`
	Documents [][]string         `json:"documents"`
	Metadatas [][]map[string]any `json:"metadatas"`
	Distances [][]float64        `json:"distances"`
}

// Query returns the topK most similar chunks. An empty category means no
// filter. Scores are similarity, derived from cosine distance.
func (s *VectorStore) Query(ctx context.Context, embedding []float32, topK int, category domain.Condition) ([]*domain.RetrievedChunk, error) {
	req := queryRequest{
		QueryEmbeddings: [][]float32{embedding},
		NResults:        topK,
		Include:         []string{"documents", "metadatas", "distances"},
	}
	if category != "" {
		req.Where = map[string]any{"category": string(category)}
	}

	var resp queryResponse
	path := fmt.Sprintf("/api/v1/collections/%s/query", s.collectionID)
	if err := s.do(ctx, http.MethodPost, path, req, &resp); err != nil {
		return nil, err
	}
	if len(resp.IDs) == 0 {
		return nil, nil
	}

	results := make([]*domain.RetrievedChunk, 0, len(resp.IDs[0]))
	for i, id := range resp.IDs[0] {
		chunk := &domain.GuidelineChunk{ID: id}
		if len(resp.Documents) > 0 && i < len(resp.Documents[0]) {
			chunk.Content = resp.Documents[0][i]
		}
		if len(resp.Metadatas) > 0 && i < len(resp.Metadatas[0]) {
			meta := resp.Metadatas[0][i]
			chunk.Source, _ = meta["source"].(string)
			if cat, ok := meta["category"].(string); ok {
				chunk.Category = domain.Condition(cat)
			}
			if ord, ok := meta["ordinal"].(float64); ok {
				chunk.Ordinal = int(ord)
			}
		}

		score := 0.0
		if len(resp.Distances) > 0 && i < len(resp.Distances[0]) {
			score = 1 - resp.Distances[0][i]
		}
		results = append(results, &domain.RetrievedChunk{Chunk: chunk, Score: score})
	}
	return results, nil
}

// Count returns the number of indexed chunks.
func (s *VectorStore) Count(ctx context.Context) (int, error) {
	var count int
	path := fmt.Sprintf("/api/v1/collections/%s/count", s.collectionID)
	if err := s.do(ctx, http.MethodGet, path, nil, &count); err != nil {
		return 0, err
	}
	return count, nil
}

// Reset drops and recreates the collection so re-ingestion starts from an
// empty index.
func (s *VectorStore) Reset(ctx context.Context) error {
	path := fmt.Sprintf("/api/v1/collections/%s", s.collection)
	if err := s.do(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return err
	}
	return s.ensureCollection(ctx)
}

// HealthCheck verifies the Chroma server is reachable.
func (s *VectorStore) HealthCheck(ctx context.Context) error {
	return s.do(ctx, http.MethodGet, "/api/v1/heartbeat", nil, nil)
}

// do issues one API request, encoding body and decoding out when non-nil.
// Connection failures map to ErrServiceUnavailable so callers can degrade.
func (s *VectorStore) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("chroma returned status %d: %s", resp.StatusCode, msg)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
