// Package ollama implements the embedding and language-model ports over
// the Ollama HTTP API.
package ollama

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

// Ensure Embedding implements EmbeddingService
var _ driven.EmbeddingService = (*Embedding)(nil)

// Embedding implements EmbeddingService using Ollama's embedding API
type Embedding struct {
	baseURL string
	model   string
	client  *http.Client
}

// NewEmbedding creates a new Ollama embedding service
func NewEmbedding(baseURL, model string) (*Embedding, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("ollama base URL is required")
	}
	if model == "" {
		return nil, fmt.Errorf("embedding model is required")
	}

	return &Embedding{
		baseURL: baseURL,
		model:   model,
		client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}, nil
}

// embeddingRequest is the request body for the Ollama embedding API
type embeddingRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

// embeddingResponse is the response from the Ollama embedding API
type embeddingResponse struct {
	Embedding []float32 `json:"embedding"`
	Error     string    `json:"error,omitempty"`
}

// Embed generates embeddings for multiple texts.
// The Ollama API embeds one prompt per call, so texts are sent
// sequentially; order is preserved.
func (e *Embedding) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	embeddings := make([][]float32, len(texts))
	for i, text := range texts {
		embedding, err := e.EmbedQuery(ctx, text)
		if err != nil {
			return nil, err
		}
		embeddings[i] = embedding
	}
	return embeddings, nil
}

// EmbedQuery generates an embedding for a retrieval query
func (e *Embedding) EmbedQuery(ctx context.Context, query string) ([]float32, error) {
	body, err := json.Marshal(embeddingRequest{Model: e.model, Prompt: query})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/api/embeddings", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("embedding request failed with status %d: %s", resp.StatusCode, data)
	}

	var result embeddingResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if result.Error != "" {
		return nil, fmt.Errorf("embedding failed: %s", result.Error)
	}
	if len(result.Embedding) == 0 {
		return nil, fmt.Errorf("no embedding returned")
	}

	return result.Embedding, nil
}

// Model returns the model name being used
func (e *Embedding) Model() string {
	return e.model
}

// HealthCheck verifies the embedding service is available
func (e *Embedding) HealthCheck(ctx context.Context) error {
	return ping(ctx, e.client, e.baseURL)
}

// Close releases resources held by the embedding service
func (e *Embedding) Close() error {
	e.client.CloseIdleConnections()
	return nil
}

// ping checks the Ollama server via its tag listing endpoint
func ping(ctx context.Context, client *http.Client, baseURL string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/api/tags", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: ollama returned status %d", domain.ErrServiceUnavailable, resp.StatusCode)
	}
	return nil
}
