// taskpilot dispatches free-text queries to registered tools, open-ended
// chat, or retrieval-QA over indexed logs.
//
// Examples:
//
//	taskpilot -query "add 2, 3 and 5"
//	taskpilot -index                          # rebuild the log index
//	taskpilot -provider openai -model gpt-4o-mini
//
// With no -query, an interactive loop reads queries from stdin until
// "exit" or "quit".
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"

	taskpilot "github.com/davidhaley/taskpilot"
	"github.com/davidhaley/taskpilot/src/logqa"
	"github.com/davidhaley/taskpilot/src/mail"
	"github.com/davidhaley/taskpilot/src/models"
	"github.com/davidhaley/taskpilot/src/tools"
)

var (
	flagProvider   = flag.String("provider", "ollama", "oracle provider: ollama|openai|anthropic|gemini|dummy")
	flagModel      = flag.String("model", "llama3", "model id for the selected provider")
	flagHost       = flag.String("oracle-url", "", "oracle endpoint (ollama only; defaults to OLLAMA_HOST or http://localhost:11434)")
	flagEmbedModel = flag.String("embed-model", "nomic-embed-text", "embedding model for log retrieval")
	flagTimeout    = flag.Duration("timeout", 60*time.Second, "oracle transport timeout")
	flagLogDir     = flag.String("log-dir", "logs", "directory of .log files for retrieval-QA")
	flagPGConn     = flag.String("pg-conn", "", "Postgres connection string for the log index (empty selects the in-memory store)")
	flagQuery      = flag.String("query", "", "one-shot query (omit for interactive mode)")
	flagIndex      = flag.Bool("index", false, "rebuild the log index and exit")
	flagDebug      = flag.Bool("debug", false, "enable debug logging")
)

func main() {
	_ = godotenv.Load()
	flag.Parse()

	level := zerolog.InfoLevel
	if *flagDebug {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()

	ctx := context.Background()

	oracle, err := models.NewLLMProvider(ctx, strings.ToLower(*flagProvider), *flagHost, *flagModel, *flagTimeout)
	if err != nil {
		fail(err)
	}

	embedder, err := logqa.NewOllamaEmbedder(*flagHost, *flagEmbedModel, *flagTimeout)
	if err != nil {
		fail(err)
	}

	var store logqa.VectorStore
	if *flagPGConn != "" {
		pg, err := logqa.NewPostgresStore(ctx, *flagPGConn)
		if err != nil {
			fail(err)
		}
		defer pg.Close()
		store = pg
	} else {
		store = logqa.NewInMemoryStore()
	}

	indexer := &logqa.Indexer{
		Dir:      *flagLogDir,
		Embedder: embedder,
		Store:    store,
		Logger:   logger,
	}

	if *flagIndex {
		n, err := indexer.Reindex(ctx)
		if err != nil {
			fail(err)
		}
		fmt.Printf("indexed %d chunks from %s\n", n, *flagLogDir)
		return
	}

	// The in-memory index is process-scoped: rebuild it on startup when the
	// log directory has anything to offer.
	if *flagPGConn == "" {
		if _, err := indexer.Reindex(ctx); err != nil && err != logqa.ErrNoLogs {
			logger.Warn().Err(err).Msg("log index rebuild failed")
		}
	}

	registry, err := taskpilot.NewRegistry(tools.Defaults(oracle, gmailSender(ctx, logger), time.Now)...)
	if err != nil {
		fail(err)
	}

	router := taskpilot.NewRouter(taskpilot.RouterOptions{
		Resolver:   taskpilot.NewIntentResolver(oracle, registry, logger),
		Dispatcher: taskpilot.NewDispatcher(registry, oracle, logger),
		QA:         &logqa.Answerer{Embedder: embedder, Store: store, Oracle: oracle},
		Oracle:     oracle,
		Logger:     logger,
	})

	if *flagQuery != "" {
		runOne(ctx, router, *flagQuery)
		return
	}

	fmt.Println("taskpilot — natural-language task dispatcher (type 'exit' to quit)")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("\nYour query: ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if lower := strings.ToLower(line); lower == "exit" || lower == "quit" {
			return
		}
		runOne(ctx, router, line)
	}
}

func runOne(ctx context.Context, router *taskpilot.Router, query string) {
	result, err := router.Route(ctx, query)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	fmt.Println(result.Content)
}

// gmailSender wires the mail collaborator when a pre-authorized token is
// available; credential acquisition itself is out of scope here.
func gmailSender(ctx context.Context, logger zerolog.Logger) mail.Sender {
	token := os.Getenv("GMAIL_ACCESS_TOKEN")
	if token == "" {
		return nil
	}
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))
	sender, err := mail.NewGmailSender(ctx, client)
	if err != nil {
		logger.Warn().Err(err).Msg("gmail sender unavailable")
		return nil
	}
	return sender
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "taskpilot:", err)
	os.Exit(1)
}
