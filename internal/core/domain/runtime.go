package domain

import "sync"

// RuntimeConfig tracks which collaborator services are available at
// runtime. Backend choices are static (set at startup); AI capability
// flags change when services are reconfigured. Thread-safe.
type RuntimeConfig struct {
	mu sync.RWMutex

	// Static (set at startup, read-only)
	SessionBackend string // "redis" or "sqlite"
	PatientBackend string // "postgres" or "sqlite"

	// Dynamic capability flags
	embeddingAvailable bool
	llmAvailable       bool
	retrievalAvailable bool
}

// NewRuntimeConfig creates a new RuntimeConfig with initial backend choices
func NewRuntimeConfig(sessionBackend, patientBackend string) *RuntimeConfig {
	return &RuntimeConfig{
		SessionBackend: sessionBackend,
		PatientBackend: patientBackend,
	}
}

// EmbeddingAvailable returns whether the embedding service is available
func (c *RuntimeConfig) EmbeddingAvailable() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.embeddingAvailable
}

// LLMAvailable returns whether the LLM service is available
func (c *RuntimeConfig) LLMAvailable() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.llmAvailable
}

// RetrievalAvailable returns whether the vector store is reachable
func (c *RuntimeConfig) RetrievalAvailable() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.retrievalAvailable
}

// SetEmbeddingAvailable updates the embedding availability flag
func (c *RuntimeConfig) SetEmbeddingAvailable(available bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.embeddingAvailable = available
}

// SetLLMAvailable updates the LLM availability flag
func (c *RuntimeConfig) SetLLMAvailable(available bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.llmAvailable = available
}

// SetRetrievalAvailable updates the vector store availability flag
func (c *RuntimeConfig) SetRetrievalAvailable(available bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.retrievalAvailable = available
}

// CanRetrieve returns true if guideline retrieval is possible.
// Both the embedding service and the vector store are needed; without
// either, consultations answer from static fallback guidance.
func (c *RuntimeConfig) CanRetrieve() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.embeddingAvailable && c.retrievalAvailable
}

// CanIngest returns true if guideline ingestion is possible
func (c *RuntimeConfig) CanIngest() bool {
	return c.CanRetrieve()
}
