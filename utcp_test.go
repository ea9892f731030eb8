package taskpilot_test

import (
	"context"
	"strings"
	"testing"

	utcp "github.com/universal-tool-calling-protocol/go-utcp"
	"github.com/universal-tool-calling-protocol/go-utcp/src/providers/base"
)

func TestRouter_AsUTCPTool(t *testing.T) {
	oracle := &stubOracle{response: `{"tool": "add_numbers", "args": {"numbers": [2, 3, 5]}}`}
	router := newTestRouter(t, oracle, &stubQA{answer: "unused"})

	utcpTool := router.AsUTCPTool("taskpilot.dispatch", "dispatches a natural-language query")
	if utcpTool.Name != "taskpilot.dispatch" {
		t.Fatalf("expected tool name taskpilot.dispatch, got %q", utcpTool.Name)
	}
	if utcpTool.Provider == nil || utcpTool.Provider.Type() != base.ProviderCLI {
		t.Fatalf("expected ProviderCLI provider, got %#v", utcpTool.Provider)
	}

	result, err := utcpTool.Handler(nil, map[string]interface{}{"query": "add 2, 3 and 5"})
	if err != nil {
		t.Fatalf("unexpected handler error: %v", err)
	}
	if resp, _ := result["response"].(string); resp != "10" {
		t.Fatalf("expected response %q, got %q", "10", resp)
	}
	if kind, _ := result["kind"].(string); kind != "success" {
		t.Fatalf("expected kind success, got %q", kind)
	}
}

func TestRouter_AsUTCPTool_ValidatesQuery(t *testing.T) {
	oracle := &stubOracle{response: `{"tool": null, "args": {}}`}
	router := newTestRouter(t, oracle, &stubQA{})

	utcpTool := router.AsUTCPTool("taskpilot.dispatch", "desc")
	if _, err := utcpTool.Handler(nil, map[string]interface{}{}); err == nil {
		t.Fatalf("expected error for missing query")
	}
	if _, err := utcpTool.Handler(nil, map[string]interface{}{"query": "   "}); err == nil {
		t.Fatalf("expected error for blank query")
	}
	if oracle.calls != 0 {
		t.Fatalf("expected no oracle calls for rejected input, got %d", oracle.calls)
	}
}

func TestRouter_AsUTCPTool_ReportsVariantKind(t *testing.T) {
	oracle := &stubOracle{response: `{"tool": "teleport", "args": {}}`}
	router := newTestRouter(t, oracle, &stubQA{})

	utcpTool := router.AsUTCPTool("taskpilot.dispatch", "desc")
	result, err := utcpTool.Handler(nil, map[string]interface{}{"query": "teleport me home"})
	if err != nil {
		t.Fatalf("unexpected handler error: %v", err)
	}
	if kind, _ := result["kind"].(string); kind != "unknown_tool" {
		t.Fatalf("expected kind unknown_tool, got %q", kind)
	}
	if resp, _ := result["response"].(string); !strings.Contains(resp, "teleport") {
		t.Fatalf("expected response to name the unknown tool, got %q", resp)
	}
}

func TestRouter_RegisterAsUTCPProvider(t *testing.T) {
	ctx := context.Background()
	oracle := &stubOracle{response: `{"tool": "get_weather", "args": {"city": "Oslo"}}`}
	router := newTestRouter(t, oracle, &stubQA{})

	client, err := utcp.NewUTCPClient(ctx, nil, nil, nil)
	if err != nil {
		t.Fatalf("failed to create utcp client: %v", err)
	}

	if err := router.RegisterAsUTCPProvider(ctx, client, "taskpilot.dispatch", "desc"); err != nil {
		t.Fatalf("register as utcp provider: %v", err)
	}

	out, err := client.CallTool(ctx, "taskpilot.dispatch", map[string]any{"query": "weather in Oslo tomorrow"})
	if err != nil {
		t.Fatalf("CallTool error: %v", err)
	}
	result, ok := out.(map[string]any)
	if !ok {
		t.Fatalf("expected map result, got %#v", out)
	}
	resp, _ := result["response"].(string)
	if !strings.Contains(resp, "Oslo") {
		t.Fatalf("expected response to include 'Oslo', got %q", resp)
	}
	if kind, _ := result["kind"].(string); kind != "success" {
		t.Fatalf("expected kind success, got %q", kind)
	}
}

func TestRouter_RegisterAsUTCPProvider_NilClient(t *testing.T) {
	oracle := &stubOracle{response: `{"tool": null, "args": {}}`}
	router := newTestRouter(t, oracle, &stubQA{})

	if err := router.RegisterAsUTCPProvider(context.Background(), nil, "taskpilot.dispatch", "desc"); err == nil {
		t.Fatalf("expected error for nil client")
	}
}
