package openai

import (
	"context"
	"fmt"
	"os"

	openai "github.com/sashabaranov/go-openai"
)

// Client is an OpenAI embeddings client. It exists as an alternative to
// the Ollama embedder for setups that index against a hosted model.
type Client struct {
	client *openai.Client
	model  string
}

// Config configures the OpenAI embeddings client.
type Config struct {
	APIKeyEnv string
	BaseURL   string
	Model     string
}

// NewClient creates an embeddings client, reading the API key from the
// environment variable named in the config.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKeyEnv == "" {
		cfg.APIKeyEnv = "OPENAI_API_KEY"
	}
	key := os.Getenv(cfg.APIKeyEnv)
	if key == "" {
		return nil, fmt.Errorf("missing API key in env %s", cfg.APIKeyEnv)
	}
	if cfg.Model == "" {
		cfg.Model = "text-embedding-3-small"
	}
	clientCfg := openai.DefaultConfig(key)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &Client{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
	}, nil
}

// Name returns the identifier of this embedder implementation.
func (c *Client) Name() string { return "openai" }

// Embed returns an embedding vector for the given text. An empty model
// selects the configured default.
func (c *Client) Embed(ctx context.Context, model, text string) ([]float64, error) {
	if model == "" {
		model = c.model
	}
	resp, err := c.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Model: openai.EmbeddingModel(model),
		Input: []string{text},
	})
	if err != nil {
		return nil, fmt.Errorf("openai embeddings: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("openai returned no embedding for model %q", model)
	}
	emb := resp.Data[0].Embedding
	vec := make([]float64, len(emb))
	for i, v := range emb {
		vec[i] = float64(v)
	}
	return vec, nil
}
