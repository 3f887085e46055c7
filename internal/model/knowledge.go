package model

import "time"

// KnowledgeEntry is one chunk of product knowledge with its embedding.
type KnowledgeEntry struct {
	ID        string         `json:"id"`
	Content   string         `json:"content"`
	Embedding []float32      `json:"-"`
	Metadata  map[string]any `json:"metadata"`
	Category  string         `json:"category"`
	URL       string         `json:"url,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// KnowledgeMatch is an entry returned by a similarity or keyword search.
// Similarity is zero for keyword matches.
type KnowledgeMatch struct {
	KnowledgeEntry
	Similarity float64 `json:"similarity"`
}

// SourceURL returns the link attached to the entry, preferring metadata.url.
func (e KnowledgeEntry) SourceURL() string {
	if u, ok := e.Metadata["url"].(string); ok && u != "" {
		return u
	}
	return e.URL
}
