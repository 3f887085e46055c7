package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/pgvector/pgvector-go"

	"kycapi/internal/model"
	"kycapi/internal/repository"
)

// KnowledgePostgres stores knowledge entries in the pgvector-backed knowledge_base table.
type KnowledgePostgres struct {
	db *sql.DB
}

// NewKnowledgePostgres creates a new KnowledgePostgres repository.
func NewKnowledgePostgres(db *sql.DB) *KnowledgePostgres {
	return &KnowledgePostgres{db: db}
}

var _ repository.KnowledgeRepository = (*KnowledgePostgres)(nil)

// Create inserts an entry with its embedding.
func (r *KnowledgePostgres) Create(ctx context.Context, e *model.KnowledgeEntry) (*model.KnowledgeEntry, error) {
	const q = `
		INSERT INTO knowledge_base (content, embedding, metadata, category, url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, content, metadata, category, url, created_at
	`
	meta := e.Metadata
	if meta == nil {
		meta = map[string]any{}
	}
	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("encode metadata: %w", err)
	}

	out, err := scanKnowledge(r.db.QueryRowContext(ctx, q,
		e.Content,
		pgvector.NewVector(e.Embedding),
		string(metaJSON),
		e.Category,
		sql.NullString{String: e.URL, Valid: e.URL != ""},
	))
	if err != nil {
		return nil, fmt.Errorf("insert knowledge entry: %w", err)
	}
	out.Embedding = e.Embedding
	return out, nil
}

// MatchDocuments runs a cosine similarity search over the embedding column.
func (r *KnowledgePostgres) MatchDocuments(ctx context.Context, embedding []float32, threshold float64, count int) ([]model.KnowledgeMatch, error) {
	const q = `
		SELECT id, content, metadata, category, url, created_at,
			1 - (embedding <=> $1) AS similarity
		FROM knowledge_base
		WHERE 1 - (embedding <=> $1) > $2
		ORDER BY embedding <=> $1
		LIMIT $3
	`
	rows, err := r.db.QueryContext(ctx, q, pgvector.NewVector(embedding), threshold, count)
	if err != nil {
		return nil, fmt.Errorf("match documents: %w", err)
	}
	defer rows.Close()

	out := make([]model.KnowledgeMatch, 0, count)
	for rows.Next() {
		var sim float64
		e, err := scanKnowledge(rows, &sim)
		if err != nil {
			return nil, err
		}
		out = append(out, model.KnowledgeMatch{KnowledgeEntry: *e, Similarity: sim})
	}
	return out, rows.Err()
}

// SearchKeyword matches entries whose content contains query, newest first.
func (r *KnowledgePostgres) SearchKeyword(ctx context.Context, query string, limit int) ([]model.KnowledgeMatch, error) {
	const q = `
		SELECT id, content, metadata, category, url, created_at
		FROM knowledge_base
		WHERE content ILIKE '%' || $1 || '%'
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := r.db.QueryContext(ctx, q, query, limit)
	if err != nil {
		return nil, fmt.Errorf("keyword search: %w", err)
	}
	defer rows.Close()

	out := make([]model.KnowledgeMatch, 0, limit)
	for rows.Next() {
		e, err := scanKnowledge(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, model.KnowledgeMatch{KnowledgeEntry: *e})
	}
	return out, rows.Err()
}

func scanKnowledge(s rowScanner, extra ...any) (*model.KnowledgeEntry, error) {
	var (
		e    model.KnowledgeEntry
		meta []byte
		url  sql.NullString
	)
	dest := append([]any{&e.ID, &e.Content, &meta, &e.Category, &url, &e.CreatedAt}, extra...)
	if err := s.Scan(dest...); err != nil {
		return nil, err
	}
	e.URL = url.String
	if len(meta) > 0 {
		if err := json.Unmarshal(meta, &e.Metadata); err != nil {
			return nil, fmt.Errorf("decode metadata: %w", err)
		}
	}
	return &e, nil
}
