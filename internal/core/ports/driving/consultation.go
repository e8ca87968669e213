package driving

import (
	"context"

	"github.com/nutrimed-labs/nutrimed-core/internal/core/domain"
)

// AskRequest is one consultation question
// @Description Consultation question payload
type AskRequest struct {
	Patient  string `json:"patient" example:"Rajesh Kumar"`
	Question string `json:"question" example:"Can I eat mangoes?"`

	// TopK overrides the retrieval depth; 0 uses the configured default.
	TopK int `json:"top_k,omitempty" example:"4"`
}

// ConsultationService runs the retrieval-augmented consultation pipeline
type ConsultationService interface {
	// Ask answers a question in blocking mode.
	// Returns domain.ErrNotFound if the patient is not registered and
	// domain.ErrServiceUnavailable if the language model is unreachable.
	// An empty or unreachable vector store degrades to static guidance
	// with an empty citation list; it is never an error.
	Ask(ctx context.Context, req AskRequest) (*domain.Consultation, error)

	// AskStream answers a question in streaming mode. Deltas arrive in
	// order on the returned channel, which is closed after the final
	// delta. The consultation returned collects citations and the
	// fallback flag; its Answer field is filled in by the caller as
	// deltas arrive. Cancelling ctx aborts the generation upstream.
	AskStream(ctx context.Context, req AskRequest) (*domain.Consultation, <-chan domain.StreamDelta, error)
}
