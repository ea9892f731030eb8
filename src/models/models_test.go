package models

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestDummyLLMEchoesLastLine(t *testing.T) {
	llm := NewDummyLLM("")

	got, err := llm.Generate(context.Background(), "system stuff\nUser: what time is it\n\n")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got != "Dummy response: User: what time is it" {
		t.Errorf("got %q", got)
	}
}

func TestDummyLLMEmptyPrompt(t *testing.T) {
	llm := NewDummyLLM("echo:")

	got, err := llm.Generate(context.Background(), "\n\n")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.Contains(got, "<empty prompt>") {
		t.Errorf("got %q", got)
	}
}

func TestNewLLMProviderDummy(t *testing.T) {
	agent, err := NewLLMProvider(context.Background(), "dummy", "", "", time.Second)
	if err != nil {
		t.Fatalf("NewLLMProvider: %v", err)
	}
	if _, ok := agent.(*DummyLLM); !ok {
		t.Fatalf("agent is %T, want *DummyLLM", agent)
	}
}

func TestNewLLMProviderUnknown(t *testing.T) {
	if _, err := NewLLMProvider(context.Background(), "oracle9000", "", "", time.Second); err == nil {
		t.Fatal("unknown provider accepted")
	}
}
