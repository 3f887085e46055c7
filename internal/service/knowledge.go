package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"

	"kycapi/internal/llm"
	"kycapi/internal/logging"
	"kycapi/internal/metrics"
	"kycapi/internal/model"
	"kycapi/internal/repository"
)

const (
	matchThreshold   = 0.7
	matchCount       = 5
	sourcePreviewLen = 120
	defaultCategory  = "general"
)

const systemPrompt = `You are the AI assistant of our investment platform, trained to answer queries about its products and services.

- Use the provided context as the main source of truth.
- If the context does not fully answer, say so and provide general information about the platform.
- Keep answers conversational, professional, and concise.
- If a source has a link, naturally include it in your response (e.g., "You can learn more here: <link>").
- Never make up links or information.

Context:
%s`

var linkPattern = regexp.MustCompile(`https?://[^\s)>"']+`)

// AddDataRequest is one knowledge entry to embed and store.
type AddDataRequest struct {
	Content  string         `json:"content"`
	Metadata map[string]any `json:"metadata"`
	Category string         `json:"category"`
}

// ChatRequest is a question plus the conversation so far.
type ChatRequest struct {
	Query               string     `json:"query"`
	ConversationHistory []llm.Turn `json:"conversation_history"`
}

// ChatSource is a shortened knowledge entry the answer was grounded on.
type ChatSource struct {
	Content  string         `json:"content"`
	Category string         `json:"category"`
	Metadata map[string]any `json:"metadata"`
	URL      *string        `json:"url"`
}

// ChatResponse is the assistant answer with the links and sources it used.
type ChatResponse struct {
	Response       string       `json:"response"`
	Links          []string     `json:"links"`
	Sources        []ChatSource `json:"sources"`
	ConversationID string       `json:"conversation_id"`
}

// KnowledgeService manages the knowledge base and answers questions over it.
type KnowledgeService interface {
	AddData(ctx context.Context, req AddDataRequest) (*model.KnowledgeEntry, error)

	// Chat retrieves the entries most similar to the query, falling back to
	// a keyword search when the vector search fails, and asks the model to
	// answer from them.
	Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error)
}

type knowledgeService struct {
	repo      repository.KnowledgeRepository
	embedder  llm.Embedder
	completer llm.Completer
	metrics   *metrics.Metrics
}

// NewKnowledgeService constructs a new KnowledgeService.
func NewKnowledgeService(repo repository.KnowledgeRepository, embedder llm.Embedder, completer llm.Completer, m *metrics.Metrics) KnowledgeService {
	return &knowledgeService{repo: repo, embedder: embedder, completer: completer, metrics: m}
}

func (s *knowledgeService) AddData(ctx context.Context, req AddDataRequest) (*model.KnowledgeEntry, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, ErrContentRequired
	}
	embedding, err := s.embedder.Embed(ctx, req.Content)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to generate embedding")
	}
	if len(embedding) != llm.EmbeddingDimension {
		return nil, goerr.New("invalid embedding format received", goerr.V("dimension", len(embedding)))
	}

	entry := &model.KnowledgeEntry{
		Content:   req.Content,
		Embedding: embedding,
		Metadata:  req.Metadata,
		Category:  req.Category,
	}
	if entry.Metadata == nil {
		entry.Metadata = map[string]any{}
	}
	if entry.Category == "" {
		entry.Category = defaultCategory
	}
	if u, ok := entry.Metadata["url"].(string); ok {
		entry.URL = u
	}

	stored, err := s.repo.Create(ctx, entry)
	if err != nil {
		return nil, goerr.Wrap(err, "error storing data in database")
	}
	logging.From(ctx).Info("knowledge entry added", "component", "knowledge", "id", stored.ID, "category", stored.Category)
	return stored, nil
}

func (s *knowledgeService) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	if strings.TrimSpace(req.Query) == "" {
		return nil, ErrQueryRequired
	}
	logger := logging.From(ctx).With("component", "knowledge")

	matches, err := s.retrieve(ctx, req.Query)
	if err != nil {
		return nil, err
	}

	contents := make([]string, 0, len(matches))
	for _, m := range matches {
		contents = append(contents, m.Content)
	}
	prompt := fmt.Sprintf(systemPrompt, strings.Join(contents, "\n\n"))

	answer, err := s.completer.Complete(ctx, prompt, req.ConversationHistory, req.Query)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to generate chat response")
	}
	logger.Info("chat answered", "sources", len(matches))

	return &ChatResponse{
		Response:       answer,
		Links:          collectLinks(answer, matches),
		Sources:        toSources(matches),
		ConversationID: uuid.NewString(),
	}, nil
}

func (s *knowledgeService) retrieve(ctx context.Context, query string) ([]model.KnowledgeMatch, error) {
	logger := logging.From(ctx).With("component", "knowledge")

	embedding, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to embed query")
	}

	matches, err := s.repo.MatchDocuments(ctx, embedding, matchThreshold, matchCount)
	if err == nil {
		s.metrics.ChatRetrieval("vector")
		return matches, nil
	}
	logger.Warn("vector search failed, falling back to keyword search", "error", err.Error())

	matches, err = s.repo.SearchKeyword(ctx, query, matchCount)
	if err != nil {
		return nil, goerr.Wrap(err, "error searching knowledge base")
	}
	s.metrics.ChatRetrieval("keyword")
	return matches, nil
}

// collectLinks returns the links of the answer followed by the source links,
// without duplicates.
func collectLinks(answer string, matches []model.KnowledgeMatch) []string {
	seen := map[string]bool{}
	links := []string{}
	add := func(u string) {
		if u == "" || seen[u] {
			return
		}
		seen[u] = true
		links = append(links, u)
	}
	for _, u := range linkPattern.FindAllString(answer, -1) {
		add(u)
	}
	for _, m := range matches {
		add(m.SourceURL())
	}
	return links
}

func toSources(matches []model.KnowledgeMatch) []ChatSource {
	out := make([]ChatSource, 0, len(matches))
	for _, m := range matches {
		src := ChatSource{
			Content:  preview(m.Content),
			Category: m.Category,
			Metadata: m.Metadata,
		}
		if u := m.SourceURL(); u != "" {
			src.URL = &u
		}
		out = append(out, src)
	}
	return out
}

func preview(s string) string {
	r := []rune(s)
	if len(r) > sourcePreviewLen {
		r = r[:sourcePreviewLen]
	}
	return string(r) + "..."
}
