package taskpilot

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/davidhaley/taskpilot/src/models"
)

// QAService answers a question grounded in previously indexed log data.
type QAService interface {
	Answer(ctx context.Context, question string) (string, error)
}

// DegradedChatMarker prefixes replies produced by re-issuing the raw user
// query to the oracle after intent parsing failed.
const DegradedChatMarker = "Invalid oracle response. Falling back to chat mode:\n"

// logKeywords route a query to retrieval-QA when any of them appears as a
// case-insensitive substring. "summar" deliberately catches both
// "summarize" and "summary". False positives (a colloquial "crash") are an
// accepted limitation of this coarse classifier.
var logKeywords = []string{
	"log", "error", "stacktrace", "traceback", "exception",
	"debug", "crash", "warning", "failure", "summar",
}

// Router decides whether a query goes to the intent/dispatch pipeline or
// to retrieval-QA over indexed logs, and owns the degraded-chat fallback
// when the oracle's intent output cannot be parsed.
type Router struct {
	resolver   *IntentResolver
	dispatcher *Dispatcher
	qa         QAService
	oracle     models.Agent
	now        func() time.Time
	logger     zerolog.Logger
}

// RouterOptions configure a Router. Now defaults to time.Now and exists so
// tests can pin the clock that feeds relative-date resolution.
type RouterOptions struct {
	Resolver   *IntentResolver
	Dispatcher *Dispatcher
	QA         QAService
	Oracle     models.Agent
	Now        func() time.Time
	Logger     zerolog.Logger
}

func NewRouter(opts RouterOptions) *Router {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Router{
		resolver:   opts.Resolver,
		dispatcher: opts.Dispatcher,
		qa:         opts.QA,
		oracle:     opts.Oracle,
		now:        now,
		logger:     opts.Logger,
	}
}

// IsLogQuery reports whether the query contains any log keyword as a
// case-insensitive substring.
func IsLogQuery(query string) bool {
	q := strings.ToLower(query)
	for _, kw := range logKeywords {
		if strings.Contains(q, kw) {
			return true
		}
	}
	return false
}

// Route handles one query end to end. Each call is an independent,
// stateless unit of work: nothing is cached or carried across queries.
// The returned error is non-nil only for oracle transport failures.
func (r *Router) Route(ctx context.Context, query string) (DispatchResult, error) {
	if IsLogQuery(query) {
		r.logger.Debug().Str("query", query).Msg("routing to log retrieval-QA")
		answer, err := r.qa.Answer(ctx, query)
		if err != nil {
			// An empty or missing index is a user-visible condition, not a
			// process failure.
			return toolErrorResult("log_qa", "Log analysis failed: "+err.Error()), nil
		}
		return successResult("log_qa", answer, nil), nil
	}

	intent, err := r.resolver.Resolve(ctx, query, r.now())
	if err != nil {
		if parseErr, ok := err.(*IntentParseError); ok {
			return r.degradedChat(ctx, query, parseErr)
		}
		return DispatchResult{}, err
	}

	return r.dispatcher.Dispatch(ctx, intent, query)
}

// degradedChat re-issues the raw original query to the oracle directly and
// marks the reply so callers can tell it apart from a deliberate chat
// fallback.
func (r *Router) degradedChat(ctx context.Context, query string, parseErr *IntentParseError) (DispatchResult, error) {
	r.logger.Warn().Str("raw", parseErr.Raw).Msg("intent parse failed, degrading to chat")

	reply, err := r.oracle.Generate(ctx, query)
	if err != nil {
		return DispatchResult{}, &OracleTransportError{Err: err}
	}
	return DispatchResult{
		Kind:     ResultParseFailure,
		Content:  DegradedChatMarker + reply,
		Raw:      parseErr.Raw,
		Degraded: true,
	}, nil
}
