package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"ragchat/internal/domain"
)

// OllamaService implements text generation against an Ollama server.
// It offers both call shapes the server exposes: chat-style with a
// message list, and single-prompt completion. Which one to use is the
// caller's choice; the retrieval engine never routes between them.
type OllamaService struct {
	baseURL string
	model   string
	client  *http.Client
}

// Config configures the Ollama generation client.
type Config struct {
	BaseURL string
	Model   string
	Timeout time.Duration
}

// NewOllamaService creates a generation client with config defaults
// applied.
func NewOllamaService(cfg Config) *OllamaService {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://127.0.0.1:11434"
	}
	if cfg.Model == "" {
		cfg.Model = "llama3"
	}
	t := cfg.Timeout
	if t == 0 {
		t = 120 * time.Second
	}
	return &OllamaService{
		baseURL: cfg.BaseURL,
		model:   cfg.Model,
		client:  &http.Client{Timeout: t},
	}
}

// DefaultModel returns the configured generation model.
func (s *OllamaService) DefaultModel() string { return s.model }

// Chat sends a chat-shaped request and returns the assistant reply.
func (s *OllamaService) Chat(ctx context.Context, model string, messages []domain.ChatMessage) (string, error) {
	if model == "" {
		model = s.model
	}
	req := struct {
		Model    string               `json:"model"`
		Messages []domain.ChatMessage `json:"messages"`
		Stream   bool                 `json:"stream"`
	}{Model: model, Messages: messages, Stream: false}

	var resp struct {
		Message domain.ChatMessage `json:"message"`
	}
	if err := s.post(ctx, "/api/chat", req, &resp); err != nil {
		return "", err
	}
	return resp.Message.Content, nil
}

// Complete sends a single-prompt completion request and returns the
// generated text. The sampling options match the chat defaults used
// elsewhere in the system.
func (s *OllamaService) Complete(ctx context.Context, model, prompt string) (string, error) {
	if model == "" {
		model = s.model
	}
	req := struct {
		Model       string  `json:"model"`
		Prompt      string  `json:"prompt"`
		Stream      bool    `json:"stream"`
		Temperature float64 `json:"temperature"`
		TopP        float64 `json:"top_p"`
		TopK        int     `json:"top_k"`
		MaxTokens   int     `json:"max_tokens"`
	}{Model: model, Prompt: prompt, Stream: false, Temperature: 0.7, TopP: 0.9, TopK: 40, MaxTokens: 512}

	var resp struct {
		Response string `json:"response"`
	}
	if err := s.post(ctx, "/api/generate", req, &resp); err != nil {
		return "", err
	}
	return resp.Response, nil
}

func (s *OllamaService) post(ctx context.Context, path string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("ollama %s request: %w", path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("ollama %s failed: %s: %s", path, resp.Status, bytes.TrimSpace(payload))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

var _ domain.Generator = (*OllamaService)(nil)
