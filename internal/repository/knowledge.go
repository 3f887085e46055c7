package repository

import (
	"context"

	"kycapi/internal/model"
)

// KnowledgeRepository stores knowledge entries and their embeddings.
type KnowledgeRepository interface {
	Create(ctx context.Context, e *model.KnowledgeEntry) (*model.KnowledgeEntry, error)

	// MatchDocuments returns up to count entries whose cosine similarity to
	// embedding is above threshold, most similar first.
	MatchDocuments(ctx context.Context, embedding []float32, threshold float64, count int) ([]model.KnowledgeMatch, error)

	// SearchKeyword is a case-insensitive substring search over content.
	SearchKeyword(ctx context.Context, query string, limit int) ([]model.KnowledgeMatch, error)
}
