// Package logqa answers questions over indexed application logs: log files
// are chunked, embedded, and stored in a vector store; a question retrieves
// the closest chunks and asks the oracle to answer grounded in them.
package logqa

import "context"

// Chunk is one embedded slice of a log file.
type Chunk struct {
	Source    string  // originating file name
	Index     int     // position within the source
	Text      string
	Embedding []float32
	Score     float64 // similarity score, populated on search results
}

// VectorStore is the contract for log-index backends.
type VectorStore interface {
	// Add appends chunks to the index.
	Add(ctx context.Context, chunks []Chunk) error
	// Search returns the chunks closest to the query embedding, best first.
	Search(ctx context.Context, embedding []float32, limit int) ([]Chunk, error)
	// Count reports the number of indexed chunks.
	Count(ctx context.Context) (int, error)
	// Reset clears the index ahead of a full rebuild.
	Reset(ctx context.Context) error
}

// Embedder produces the vector representation of a text.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
