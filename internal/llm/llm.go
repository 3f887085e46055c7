package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/gollem/llm/openai"

	"kycapi/internal/config"
)

// EmbeddingDimension matches the vector(1536) column of knowledge_base.
const EmbeddingDimension = 1536

// Turn is one prior message of a chat conversation.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Embedder turns text into a vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Completer answers a query under a system prompt, given earlier turns.
type Completer interface {
	Complete(ctx context.Context, systemPrompt string, history []Turn, query string) (string, error)
}

// Client adapts a gollem LLM client to Embedder and Completer.
type Client struct {
	llm gollem.LLMClient
}

var (
	_ Embedder  = (*Client)(nil)
	_ Completer = (*Client)(nil)
)

// New wraps an existing gollem client.
func New(c gollem.LLMClient) *Client {
	return &Client{llm: c}
}

// NewOpenAI creates a Client backed by the OpenAI API.
func NewOpenAI(ctx context.Context, cfg config.OpenAIConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai api key is required")
	}
	c, err := openai.New(ctx, cfg.APIKey,
		openai.WithModel(cfg.ChatModel),
		openai.WithEmbeddingModel(cfg.EmbeddingModel),
	)
	if err != nil {
		return nil, fmt.Errorf("create openai client: %w", err)
	}
	return New(c), nil
}

func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	out, err := c.llm.GenerateEmbedding(ctx, EmbeddingDimension, []string{text})
	if err != nil {
		return nil, fmt.Errorf("generate embedding: %w", err)
	}
	if len(out) == 0 || len(out[0]) == 0 {
		return nil, errors.New("embedding generation returned empty result")
	}
	vec := make([]float32, len(out[0]))
	for i, v := range out[0] {
		vec[i] = float32(v)
	}
	return vec, nil
}

func (c *Client) Complete(ctx context.Context, systemPrompt string, history []Turn, query string) (string, error) {
	session, err := c.llm.NewSession(ctx,
		gollem.WithSessionSystemPrompt(withHistory(systemPrompt, history)),
	)
	if err != nil {
		return "", fmt.Errorf("create llm session: %w", err)
	}
	resp, err := session.GenerateContent(ctx, gollem.Text(query))
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	if resp == nil || len(resp.Texts) == 0 {
		return "", errors.New("llm returned no text")
	}
	return strings.Join(resp.Texts, "\n"), nil
}

// withHistory appends earlier turns to the system prompt as a transcript.
func withHistory(systemPrompt string, history []Turn) string {
	if len(history) == 0 {
		return systemPrompt
	}
	var b strings.Builder
	b.WriteString(systemPrompt)
	b.WriteString("\n\nConversation so far:\n")
	for _, t := range history {
		role := t.Role
		if role == "" {
			role = "user"
		}
		fmt.Fprintf(&b, "%s: %s\n", role, t.Content)
	}
	return b.String()
}

// ErrNotConfigured is returned by Unconfigured for every call.
var ErrNotConfigured = errors.New("llm provider is not configured")

// Unconfigured stands in for Client when no provider credentials are set,
// so the knowledge routes fail per request instead of at start-up.
type Unconfigured struct{}

func (Unconfigured) Embed(context.Context, string) ([]float32, error) {
	return nil, ErrNotConfigured
}

func (Unconfigured) Complete(context.Context, string, []Turn, string) (string, error) {
	return "", ErrNotConfigured
}
