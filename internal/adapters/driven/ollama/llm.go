package ollama

import (
	"bufio"
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

// Ensure LLM implements LLMService
var _ driven.LLMService = (*LLM)(nil)

// LLM implements LLMService using Ollama's generate API
type LLM struct {
	baseURL  string
	settings domain.ModelSettings
	client   *http.Client
}

// NewLLM creates a new Ollama language model service.
// Generation parameters are taken from the settings as-is.
func NewLLM(settings domain.ModelSettings) (*LLM, error) {
	if settings.BaseURL == "" {
		return nil, fmt.Errorf("ollama base URL is required")
	}
	if settings.Model == "" {
		return nil, fmt.Errorf("model is required")
	}

	return &LLM{
		baseURL:  settings.BaseURL,
		settings: settings,
		client: &http.Client{
			// Generation of long answers can take minutes on CPU
			Timeout: 10 * time.Minute,
		},
	}, nil
}

// generateRequest is the request body for the Ollama generate API
type generateRequest struct {
	Model     string          `json:"model"`
	Prompt    string          `json:"prompt"`
	Stream    bool            `json:"stream"`
	KeepAlive string          `json:"keep_alive,omitempty"`
	Options   generateOptions `json:"options"`
}

// generateOptions carries the sampling parameters
type generateOptions struct {
	Temperature   float64 `json:"temperature"`
	TopP          float64 `json:"top_p"`
	TopK          int     `json:"top_k"`
	NumPredict    int     `json:"num_predict"`
	RepeatPenalty float64 `json:"repeat_penalty"`
}

// generateResponse is one response object from the Ollama generate API.
// In streaming mode one arrives per line until Done.
type generateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
	Error    string `json:"error,omitempty"`
}

// Generate returns the complete response for a prompt
func (l *LLM) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := l.doGenerate(ctx, prompt, false)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var result generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if result.Error != "" {
		return "", fmt.Errorf("generation failed: %s", result.Error)
	}

	return result.Response, nil
}

// Stream yields response increments in arrival order. The response body
// is newline-delimited JSON; each line carries one increment. Cancelling
// the context closes the connection, which aborts generation upstream.
func (l *LLM) Stream(ctx context.Context, prompt string) (<-chan domain.StreamDelta, error) {
	resp, err := l.doGenerate(ctx, prompt, true)
	if err != nil {
		return nil, err
	}

	ch := make(chan domain.StreamDelta)
	go func() {
		defer close(ch)
		defer resp.Body.Close()

		scanner := bufio.NewScanner(resp.Body)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

		for scanner.Scan() {
			line := scanner.Bytes()
			if len(line) == 0 {
				continue
			}

			var chunk generateResponse
			if err := json.Unmarshal(line, &chunk); err != nil {
				l.emit(ctx, ch, domain.StreamDelta{Err: fmt.Errorf("failed to decode stream chunk: %w", err)})
				return
			}
			if chunk.Error != "" {
				l.emit(ctx, ch, domain.StreamDelta{Err: fmt.Errorf("generation failed: %s", chunk.Error)})
				return
			}

			if !l.emit(ctx, ch, domain.StreamDelta{Text: chunk.Response, Done: chunk.Done}) {
				return
			}
			if chunk.Done {
				return
			}
		}

		if err := scanner.Err(); err != nil && ctx.Err() == nil {
			l.emit(ctx, ch, domain.StreamDelta{Err: fmt.Errorf("stream read failed: %w", err)})
		}
	}()

	return ch, nil
}

// emit sends a delta unless the consumer has gone away
func (l *LLM) emit(ctx context.Context, ch chan<- domain.StreamDelta, delta domain.StreamDelta) bool {
	select {
	case ch <- delta:
		return true
	case <-ctx.Done():
		return false
	}
}

// Model returns the model name being used
func (l *LLM) Model() string {
	return l.settings.Model
}

// Ping verifies the LLM service is available
func (l *LLM) Ping(ctx context.Context) error {
	return ping(ctx, l.client, l.baseURL)
}

// Close releases resources held by the LLM service
func (l *LLM) Close() error {
	l.client.CloseIdleConnections()
	return nil
}

func (l *LLM) doGenerate(ctx context.Context, prompt string, stream bool) (*http.Response, error) {
	body, err := json.Marshal(generateRequest{
		Model:     l.settings.Model,
		Prompt:    prompt,
		Stream:    stream,
		KeepAlive: l.settings.KeepAlive,
		Options: generateOptions{
			Temperature:   l.settings.Temperature,
			TopP:          l.settings.TopP,
			TopK:          l.settings.TopK,
			NumPredict:    l.settings.NumPredict,
			RepeatPenalty: l.settings.RepeatPenalty,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, l.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrServiceUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		return nil, fmt.Errorf("generate request failed with status %d: %s", resp.StatusCode, data)
	}

	return resp, nil
}
