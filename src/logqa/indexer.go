package logqa

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/davidhaley/taskpilot/src/concurrent"
)

// ErrNoLogs is returned when the log directory holds nothing to index.
var ErrNoLogs = errors.New("no .log files found to index")

// Indexer rebuilds the vector index from every .log file in a directory.
// A rebuild is consolidated: the whole directory is re-read so the index
// always reflects all logs, not just the latest upload.
type Indexer struct {
	Dir         string
	Embedder    Embedder
	Store       VectorStore
	ChunkRunes  int
	Overlap     int
	Concurrency int
	Logger      zerolog.Logger
}

// Reindex chunks and embeds every log file and replaces the store content.
func (ix *Indexer) Reindex(ctx context.Context) (int, error) {
	entries, err := os.ReadDir(ix.Dir)
	if err != nil {
		return 0, fmt.Errorf("read log dir %s: %w", ix.Dir, err)
	}

	var pending []Chunk
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".log") {
			continue
		}
		path := filepath.Join(ix.Dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return 0, fmt.Errorf("read %s: %w", path, err)
		}
		for i, text := range SplitText(string(data), ix.ChunkRunes, ix.Overlap) {
			pending = append(pending, Chunk{Source: entry.Name(), Index: i, Text: text})
		}
	}
	if len(pending) == 0 {
		return 0, ErrNoLogs
	}

	embedded, err := concurrent.ParallelMap(ctx, pending, func(c Chunk) (Chunk, error) {
		vec, err := ix.Embedder.Embed(ctx, c.Text)
		if err != nil {
			return Chunk{}, fmt.Errorf("embed %s/%d: %w", c.Source, c.Index, err)
		}
		c.Embedding = vec
		return c, nil
	}, ix.Concurrency)
	if err != nil {
		return 0, err
	}

	if err := ix.Store.Reset(ctx); err != nil {
		return 0, fmt.Errorf("reset index: %w", err)
	}
	if err := ix.Store.Add(ctx, embedded); err != nil {
		return 0, fmt.Errorf("store chunks: %w", err)
	}

	ix.Logger.Info().Int("chunks", len(embedded)).Str("dir", ix.Dir).Msg("log index rebuilt")
	return len(embedded), nil
}
