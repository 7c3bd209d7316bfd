package knowledge

import "time"

// Document represents an indexed passage.
// Metadata must be map[string]string to comply with chromem-go requirements.
type Document struct {
	ID       string            // Unique identifier
	Content  string            // Passage text
	Metadata map[string]string // Optional metadata (section, company, etc.)
}

// Result represents a single search result with similarity score.
type Result struct {
	Document   Document
	Similarity float32 // Cosine similarity score (0-1)
}

// SearchOption configures search behavior using the functional options pattern.
type SearchOption func(*searchConfig)

// searchConfig holds internal search configuration.
type searchConfig struct {
	topK    int
	filter  map[string]string
	timeout time.Duration
}

// DefaultSearchTimeout bounds a single vector search, embedding included.
const DefaultSearchTimeout = 10 * time.Second

// WithTopK sets the maximum number of results to return. Default is 5.
func WithTopK(k int) SearchOption {
	return func(c *searchConfig) {
		if k > 0 {
			c.topK = k
		}
	}
}

// WithFilter adds a metadata filter to restrict search results.
// Multiple calls add additional filters (AND logic).
// Example: WithFilter("section", "faq")
func WithFilter(key, value string) SearchOption {
	return func(c *searchConfig) {
		if c.filter == nil {
			c.filter = make(map[string]string)
		}
		c.filter[key] = value
	}
}

// WithTimeout overrides the default search timeout.
func WithTimeout(d time.Duration) SearchOption {
	return func(c *searchConfig) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// buildSearchConfig applies search options and returns the final configuration.
func buildSearchConfig(opts []SearchOption) *searchConfig {
	cfg := &searchConfig{
		topK:    5,
		timeout: DefaultSearchTimeout,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
