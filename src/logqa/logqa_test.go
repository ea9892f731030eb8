package logqa

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"
)

// hashEmbedder is a deterministic stand-in for a real embedding model: texts
// sharing a marker word land near each other in vector space.
type hashEmbedder struct {
	calls int
	err   error
}

func (e *hashEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	e.calls++
	if e.err != nil {
		return nil, e.err
	}
	vec := make([]float32, 8)
	for _, r := range text {
		vec[int(r)%8]++
	}
	return vec, nil
}

type stubOracle struct {
	reply      string
	err        error
	lastPrompt string
}

func (o *stubOracle) Generate(_ context.Context, prompt string) (string, error) {
	o.lastPrompt = prompt
	if o.err != nil {
		return "", o.err
	}
	return o.reply, nil
}

func TestSplitTextWindows(t *testing.T) {
	text := strings.Repeat("a", 1200)
	chunks := SplitText(text, 500, 50)
	if len(chunks) != 3 {
		t.Fatalf("got %d chunks, want 3", len(chunks))
	}
	if got := utf8.RuneCountInString(chunks[0]); got != 500 {
		t.Errorf("first chunk %d runes, want 500", got)
	}
	// Step is maxRunes-overlap, so the tail chunk holds the remainder.
	if got := utf8.RuneCountInString(chunks[2]); got != 1200-2*450 {
		t.Errorf("last chunk %d runes, want %d", got, 1200-2*450)
	}
}

func TestSplitTextOverlap(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 120; i++ {
		sb.WriteRune(rune('a' + i%26))
	}
	chunks := SplitText(sb.String(), 100, 20)
	if len(chunks) != 2 {
		t.Fatalf("got %d chunks, want 2", len(chunks))
	}
	first := []rune(chunks[0])
	second := []rune(chunks[1])
	if string(first[80:]) != string(second[:20]) {
		t.Error("chunks do not overlap by 20 runes")
	}
}

func TestSplitTextDefaultsAndEmpty(t *testing.T) {
	if got := SplitText("", 0, 0); got != nil {
		t.Errorf("empty text produced %v", got)
	}
	chunks := SplitText(strings.Repeat("x", 600), 0, -1)
	if len(chunks) != 2 {
		t.Fatalf("defaults produced %d chunks, want 2", len(chunks))
	}
	if got := utf8.RuneCountInString(chunks[0]); got != 500 {
		t.Errorf("default chunk size = %d, want 500", got)
	}
}

func TestInMemoryStoreRanksBySimilarity(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()
	emb := &hashEmbedder{}

	texts := []string{
		"ERROR payment gateway timeout",
		"INFO user login ok",
		"ERROR payment declined",
	}
	var chunks []Chunk
	for i, text := range texts {
		vec, _ := emb.Embed(ctx, text)
		chunks = append(chunks, Chunk{Source: "app.log", Index: i, Text: text, Embedding: vec})
	}
	if err := store.Add(ctx, chunks); err != nil {
		t.Fatal(err)
	}

	query, _ := emb.Embed(ctx, "ERROR payment gateway timeout")
	got, err := store.Search(ctx, query, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d results, want 2", len(got))
	}
	if got[0].Text != "ERROR payment gateway timeout" {
		t.Errorf("best match = %q", got[0].Text)
	}
	if got[0].Score < got[1].Score {
		t.Error("results not sorted best first")
	}
}

func TestInMemoryStoreCountAndReset(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()
	if err := store.Add(ctx, []Chunk{{Text: "a"}, {Text: "b"}}); err != nil {
		t.Fatal(err)
	}
	if n, _ := store.Count(ctx); n != 2 {
		t.Fatalf("count = %d, want 2", n)
	}
	if err := store.Reset(ctx); err != nil {
		t.Fatal(err)
	}
	if n, _ := store.Count(ctx); n != 0 {
		t.Fatalf("count after reset = %d, want 0", n)
	}
}

func TestIndexerRebuildsFromLogFiles(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"app.log":    strings.Repeat("ERROR disk full\n", 40),
		"web.log":    "GET /health 200\n",
		"readme.txt": "not a log file",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	store := NewInMemoryStore()
	ix := &Indexer{Dir: dir, Embedder: &hashEmbedder{}, Store: store}

	n, err := ix.Reindex(context.Background())
	if err != nil {
		t.Fatalf("Reindex: %v", err)
	}
	if n == 0 {
		t.Fatal("indexed zero chunks")
	}
	if count, _ := store.Count(context.Background()); count != n {
		t.Errorf("store holds %d chunks, Reindex reported %d", count, n)
	}

	chunks, _ := store.Search(context.Background(), []float32{1, 1, 1, 1, 1, 1, 1, 1}, n)
	for _, c := range chunks {
		if c.Source == "readme.txt" {
			t.Error("non-.log file was indexed")
		}
		if len(c.Embedding) == 0 {
			t.Errorf("chunk %s/%d has no embedding", c.Source, c.Index)
		}
	}
}

func TestIndexerReplacesPreviousIndex(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.log"), []byte("one line\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	store := NewInMemoryStore()
	ix := &Indexer{Dir: dir, Embedder: &hashEmbedder{}, Store: store}

	if _, err := ix.Reindex(context.Background()); err != nil {
		t.Fatal(err)
	}
	first, _ := store.Count(context.Background())
	if _, err := ix.Reindex(context.Background()); err != nil {
		t.Fatal(err)
	}
	second, _ := store.Count(context.Background())
	if first != second {
		t.Errorf("reindex grew the store: %d then %d", first, second)
	}
}

func TestIndexerEmptyDirectory(t *testing.T) {
	ix := &Indexer{Dir: t.TempDir(), Embedder: &hashEmbedder{}, Store: NewInMemoryStore()}
	if _, err := ix.Reindex(context.Background()); !errors.Is(err, ErrNoLogs) {
		t.Fatalf("err = %v, want ErrNoLogs", err)
	}
}

func TestIndexerPropagatesEmbedFailure(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.log"), []byte("boom\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	ix := &Indexer{
		Dir:      dir,
		Embedder: &hashEmbedder{err: errors.New("model offline")},
		Store:    NewInMemoryStore(),
	}
	if _, err := ix.Reindex(context.Background()); err == nil || !strings.Contains(err.Error(), "model offline") {
		t.Fatalf("err = %v, want the embed failure", err)
	}
}

func TestAnswererEmptyIndex(t *testing.T) {
	a := &Answerer{Embedder: &hashEmbedder{}, Store: NewInMemoryStore(), Oracle: &stubOracle{reply: "x"}}
	if _, err := a.Answer(context.Background(), "why did it crash?"); !errors.Is(err, ErrEmptyIndex) {
		t.Fatalf("err = %v, want ErrEmptyIndex", err)
	}
}

func TestAnswererGroundsPromptInRetrievedChunks(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()
	emb := &hashEmbedder{}

	for i, text := range []string{
		"ERROR OOM killed worker-3",
		"INFO cron finished",
		"WARN slow query on orders",
		"INFO deploy complete",
	} {
		vec, _ := emb.Embed(ctx, text)
		if err := store.Add(ctx, []Chunk{{Source: "app.log", Index: i, Text: text, Embedding: vec}}); err != nil {
			t.Fatal(err)
		}
	}

	oracle := &stubOracle{reply: "worker-3 ran out of memory"}
	a := &Answerer{Embedder: emb, Store: store, Oracle: oracle}

	answer, err := a.Answer(ctx, "ERROR OOM killed worker-3 why?")
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if answer != "worker-3 ran out of memory" {
		t.Errorf("answer = %q", answer)
	}
	if !strings.Contains(oracle.lastPrompt, "ERROR OOM killed worker-3") {
		t.Error("prompt lacks the closest chunk")
	}
	if !strings.Contains(oracle.lastPrompt, "Question: ERROR OOM killed worker-3 why?") {
		t.Error("prompt lacks the question")
	}
	// Default top-k keeps the prompt to three excerpts.
	if strings.Count(oracle.lastPrompt, "Excerpt ") != 3 {
		t.Errorf("prompt excerpt count = %d, want 3", strings.Count(oracle.lastPrompt, "Excerpt "))
	}
}

func TestAnswererPropagatesOracleFailure(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()
	emb := &hashEmbedder{}
	vec, _ := emb.Embed(ctx, "hello")
	if err := store.Add(ctx, []Chunk{{Text: "hello", Embedding: vec}}); err != nil {
		t.Fatal(err)
	}

	a := &Answerer{Embedder: emb, Store: store, Oracle: &stubOracle{err: errors.New("oracle down")}}
	if _, err := a.Answer(ctx, "anything"); err == nil || !strings.Contains(err.Error(), "oracle down") {
		t.Fatalf("err = %v, want oracle failure", err)
	}
}
