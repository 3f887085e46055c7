package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"kycapi/internal/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var knowledgeCols = []string{"id", "content", "metadata", "category", "url", "created_at"}

func TestKnowledgePostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewKnowledgePostgres(db)
	now := time.Now().UTC()

	entry := &model.KnowledgeEntry{
		Content:   "Fund minimum is $100k",
		Embedding: []float32{0.1, 0.2},
		Metadata:  map[string]any{"url": "https://example.com/faq"},
		Category:  "faq",
	}

	mock.ExpectQuery("INSERT INTO knowledge_base").
		WithArgs("Fund minimum is $100k", sqlmock.AnyArg(), `{"url":"https://example.com/faq"}`, "faq", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(knowledgeCols).
			AddRow("k-1", "Fund minimum is $100k", []byte(`{"url":"https://example.com/faq"}`), "faq", nil, now))

	out, err := repo.Create(context.Background(), entry)

	require.NoError(t, err)
	assert.Equal(t, "k-1", out.ID)
	assert.Equal(t, "https://example.com/faq", out.SourceURL())
	assert.Equal(t, "", out.URL)
	assert.Equal(t, entry.Embedding, out.Embedding)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestKnowledgePostgres_MatchDocuments(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewKnowledgePostgres(db)
	now := time.Now().UTC()

	t.Run("ordered matches", func(t *testing.T) {
		rows := sqlmock.NewRows(append(knowledgeCols, "similarity")).
			AddRow("k-1", "first", []byte(`{}`), "general", "https://a.test", now, 0.93).
			AddRow("k-2", "second", []byte(`{}`), "general", nil, now, 0.81)
		mock.ExpectQuery(`SELECT (.+) FROM knowledge_base WHERE 1 - \(embedding <=> \$1\) > \$2`).
			WithArgs(sqlmock.AnyArg(), 0.7, 5).
			WillReturnRows(rows)

		got, err := repo.MatchDocuments(context.Background(), []float32{1, 0}, 0.7, 5)

		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "k-1", got[0].ID)
		assert.InDelta(t, 0.93, got[0].Similarity, 1e-9)
		assert.Equal(t, "https://a.test", got[0].URL)
	})

	t.Run("query error", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM knowledge_base").
			WillReturnError(errors.New(`function match_documents does not exist`))

		got, err := repo.MatchDocuments(context.Background(), []float32{1, 0}, 0.7, 5)

		assert.Error(t, err)
		assert.Nil(t, got)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestKnowledgePostgres_SearchKeyword(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewKnowledgePostgres(db)

	mock.ExpectQuery("SELECT (.+) FROM knowledge_base WHERE content ILIKE").
		WithArgs("fees", 5).
		WillReturnRows(sqlmock.NewRows(knowledgeCols).
			AddRow("k-9", "Management fees are 2%", []byte(`{"url":"https://fees.test"}`), "pricing", nil, time.Now()))

	got, err := repo.SearchKeyword(context.Background(), "fees", 5)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "pricing", got[0].Category)
	assert.Zero(t, got[0].Similarity)
	assert.Equal(t, "https://fees.test", got[0].SourceURL())
	assert.NoError(t, mock.ExpectationsWereMet())
}
