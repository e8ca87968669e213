package domain

import "time"

// ModelSettings configures the Ollama language model and embedding model.
// Persisted so a runtime reconfiguration survives restarts; seeded from the
// environment on first run.
type ModelSettings struct {
	BaseURL       string  `json:"base_url"`
	Model         string  `json:"model"`
	EmbedModel    string  `json:"embed_model"`
	Temperature   float64 `json:"temperature"`
	TopP          float64 `json:"top_p"`
	TopK          int     `json:"top_k"`
	NumPredict    int     `json:"num_predict"`
	RepeatPenalty float64 `json:"repeat_penalty"`
	KeepAlive     string  `json:"keep_alive"`

	UpdatedAt time.Time `json:"updated_at"`
}

// DefaultModelSettings returns the stock generation parameters for a
// local Ollama deployment.
func DefaultModelSettings() ModelSettings {
	return ModelSettings{
		BaseURL:       "http://localhost:11434",
		Model:         "MedAIBase/MedGemma1.5:4b",
		EmbedModel:    "llama3",
		Temperature:   0.4,
		TopP:          0.9,
		TopK:          50,
		NumPredict:    3000,
		RepeatPenalty: 1.1,
		KeepAlive:     "5m",
	}
}

// IsConfigured reports whether the settings are usable
func (s *ModelSettings) IsConfigured() bool {
	return s != nil && s.BaseURL != "" && s.Model != ""
}
