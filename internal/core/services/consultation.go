package services

import (
	"context"
	"time"

	"github.com/nutrimed-labs/nutrimed-core/internal/core/domain"
	"github.com/nutrimed-labs/nutrimed-core/internal/core/ports/driven"
	"github.com/nutrimed-labs/nutrimed-core/internal/core/ports/driving"
	"github.com/nutrimed-labs/nutrimed-core/internal/runtime"
)

// DefaultTopK is the retrieval depth used when a request does not set one
const DefaultTopK = 4

// Ensure consultationService implements ConsultationService
var _ driving.ConsultationService = (*consultationService)(nil)

// consultationService implements the ConsultationService interface
type consultationService struct {
	patientStore driven.PatientStore
	vectorStore  driven.VectorStore
	services     *runtime.Services // Dynamic AI services
}

// NewConsultationService creates a new ConsultationService.
// AI services (embedding, LLM) are accessed dynamically via runtime.Services
func NewConsultationService(
	patientStore driven.PatientStore,
	vectorStore driven.VectorStore,
	services *runtime.Services,
) driving.ConsultationService {
	return &consultationService{
		patientStore: patientStore,
		vectorStore:  vectorStore,
		services:     services,
	}
}

// Ask answers a question in blocking mode
func (s *consultationService) Ask(ctx context.Context, req driving.AskRequest) (*domain.Consultation, error) {
	start := time.Now()

	consultation, prompt, err := s.prepare(ctx, req)
	if err != nil {
		return nil, err
	}

	llm := s.services.LLMService()
	if llm == nil {
		return nil, domain.ErrServiceUnavailable
	}

	answer, err := llm.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	consultation.Answer = answer
	consultation.Took = time.Since(start)
	return consultation, nil
}

// AskStream answers a question in streaming mode
func (s *consultationService) AskStream(ctx context.Context, req driving.AskRequest) (*domain.Consultation, <-chan domain.StreamDelta, error) {
	consultation, prompt, err := s.prepare(ctx, req)
	if err != nil {
		return nil, nil, err
	}

	llm := s.services.LLMService()
	if llm == nil {
		return nil, nil, domain.ErrServiceUnavailable
	}

	deltas, err := llm.Stream(ctx, prompt)
	if err != nil {
		return nil, nil, err
	}

	return consultation, deltas, nil
}

// prepare runs the shared front half of the pipeline: profile fetch,
// retrieval, prompt assembly. Retrieval degrades to per-condition static
// guidance; only a missing patient is an error here.
func (s *consultationService) prepare(ctx context.Context, req driving.AskRequest) (*domain.Consultation, string, error) {
	profile, err := s.patientStore.GetByName(ctx, req.Patient)
	if err != nil {
		return nil, "", err
	}

	topK := req.TopK
	if topK <= 0 {
		topK = DefaultTopK
	}

	chunks := s.retrieve(ctx, profile, req.Question, topK)

	consultation := &domain.Consultation{
		Patient:   profile.Name,
		Question:  req.Question,
		Citations: make([]domain.Citation, 0, len(chunks)),
	}

	var guidelines string
	if len(chunks) == 0 {
		// Degraded mode: answer from static guidance, no citations
		consultation.Fallback = true
		guidelines = domain.FallbackGuidance(profile.Condition)
	} else {
		guidelines = formatGuidelines(chunks)
		for _, rc := range chunks {
			consultation.Citations = append(consultation.Citations, domain.Citation{
				Source:   rc.Chunk.Source,
				Category: rc.Chunk.Category,
				Score:    rc.Score,
			})
		}
	}

	return consultation, buildPrompt(profile, req.Question, guidelines), nil
}

// retrieve runs similarity search filtered by the patient's condition.
// General profiles search unfiltered. Any retrieval failure yields an
// empty result set rather than an error.
func (s *consultationService) retrieve(ctx context.Context, profile *domain.Profile, question string, topK int) []*domain.RetrievedChunk {
	if !s.services.Config().CanRetrieve() {
		return nil
	}

	embeddingService := s.services.EmbeddingService()
	if embeddingService == nil {
		return nil
	}

	embedding, err := embeddingService.EmbedQuery(ctx, question)
	if err != nil {
		return nil
	}

	category := profile.Condition
	if category == domain.ConditionGeneral {
		category = ""
	}

	chunks, err := s.vectorStore.Query(ctx, embedding, topK, category)
	if err != nil {
		return nil
	}
	return chunks
}
