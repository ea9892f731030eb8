package tools

import (
	"context"
	"errors"
	"strings"
	"testing"

	taskpilot "github.com/davidhaley/taskpilot"
)

type fakeSender struct {
	to, subject, body string
	id                string
	err               error
}

func (f *fakeSender) Send(_ context.Context, to, subject, body string) (string, error) {
	f.to, f.subject, f.body = to, subject, body
	if f.err != nil {
		return "", f.err
	}
	return f.id, nil
}

func TestParseEmailCommand(t *testing.T) {
	to, subject, body, err := ParseEmailCommand("send email to alice@example.com subject Meeting body Let's sync tomorrow")
	if err != nil {
		t.Fatalf("ParseEmailCommand: %v", err)
	}
	if to != "alice@example.com" {
		t.Errorf("to = %q", to)
	}
	if subject != "Meeting" {
		t.Errorf("subject = %q", subject)
	}
	if body != "Let's sync tomorrow" {
		t.Errorf("body = %q", body)
	}
}

func TestParseEmailCommandBodyIsGreedy(t *testing.T) {
	// Everything after the last "body" keyword belongs to the body; the
	// subject absorbs intermediate keywords.
	to, subject, body, err := ParseEmailCommand("send email to bob@example.com subject body of work body see attached")
	if err != nil {
		t.Fatalf("ParseEmailCommand: %v", err)
	}
	if to != "bob@example.com" {
		t.Errorf("to = %q", to)
	}
	if subject != "body of work" {
		t.Errorf("subject = %q", subject)
	}
	if body != "see attached" {
		t.Errorf("body = %q", body)
	}
}

func TestParseEmailCommandRejectsMalformedInput(t *testing.T) {
	for _, query := range []string{
		"send email to alice@example.com about the meeting",
		"send email to alice@example.com subject Hi",
		"email alice@example.com subject Hi body there",
		"",
	} {
		_, _, _, err := ParseEmailCommand(query)
		if err == nil {
			t.Errorf("ParseEmailCommand(%q) accepted malformed input", query)
		}
		if err != nil && !strings.Contains(err.Error(), "send email to [recipient]") {
			t.Errorf("ParseEmailCommand(%q) error does not name the template: %v", query, err)
		}
	}
}

func TestParseEmailCommandRejectsBlankFields(t *testing.T) {
	// Whitespace-only captures are a validation failure, not a silently
	// accepted empty string.
	_, _, _, err := ParseEmailCommand("send email to   subject Hi body there")
	if err == nil {
		t.Error("blank recipient accepted")
	}
}

func TestEmailToolSendsEagerly(t *testing.T) {
	sender := &fakeSender{id: "msg-123"}
	tool := EmailTool{Sender: sender}

	resp, err := tool.Invoke(context.Background(), taskpilot.ToolRequest{
		Arguments: map[string]any{"query": "send email to carol@example.com subject Update body All good"},
	})
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if sender.to != "carol@example.com" || sender.subject != "Update" || sender.body != "All good" {
		t.Fatalf("sent %q/%q/%q", sender.to, sender.subject, sender.body)
	}
	if !strings.Contains(resp.Content, "msg-123") {
		t.Fatalf("content = %q, want the message id", resp.Content)
	}
}

func TestEmailToolFallsBackToOriginalQuery(t *testing.T) {
	sender := &fakeSender{id: "msg-9"}
	tool := EmailTool{Sender: sender}

	_, err := tool.Invoke(context.Background(), taskpilot.ToolRequest{
		Arguments: map[string]any{},
		Query:     "send email to dave@example.com subject Ping body Pong",
	})
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if sender.to != "dave@example.com" {
		t.Fatalf("to = %q", sender.to)
	}
}

func TestEmailToolReportsProviderFailure(t *testing.T) {
	tool := EmailTool{Sender: &fakeSender{err: errors.New("quota exceeded")}}

	_, err := tool.Invoke(context.Background(), taskpilot.ToolRequest{
		Arguments: map[string]any{"query": "send email to a@b.c subject S body B"},
	})
	if err == nil || !strings.Contains(err.Error(), "quota exceeded") {
		t.Fatalf("err = %v, want the provider error", err)
	}
}

func TestEmailToolWithoutSender(t *testing.T) {
	tool := EmailTool{}
	_, err := tool.Invoke(context.Background(), taskpilot.ToolRequest{
		Arguments: map[string]any{"query": "send email to a@b.c subject S body B"},
	})
	if err == nil {
		t.Fatal("missing mail provider accepted")
	}
}
