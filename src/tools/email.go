package tools

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	taskpilot "github.com/davidhaley/taskpilot"
	"github.com/davidhaley/taskpilot/src/mail"
)

// emailPattern fixes the accepted template. The recipient capture is
// non-greedy (stops at the first "subject" keyword); the body capture is
// greedy and consumes to end of input.
var emailPattern = regexp.MustCompile(`(?i)^send email to (?P<to>.+?) subject (?P<subject>.+) body (?P<body>.+)$`)

const emailTemplateHint = "Could not parse the email format. Use: send email to [recipient] subject [subject] body [message]."

// EmailTool extracts recipient, subject, and body from a fixed-order
// free-text template and delivers the message immediately through the mail
// collaborator. Unlike the calendar tools, email executes eagerly.
type EmailTool struct {
	Sender mail.Sender
}

func (EmailTool) Spec() taskpilot.ToolSpec {
	return taskpilot.ToolSpec{
		Name:        "email_agent",
		Args:        []taskpilot.ArgSpec{{Name: "query", Type: "string"}},
		Description: "sends email to the mentioned recipients with subject and body",
	}
}

func (t EmailTool) Invoke(ctx context.Context, req taskpilot.ToolRequest) (taskpilot.ToolResponse, error) {
	query, ok := req.Arguments["query"].(string)
	if !ok || strings.TrimSpace(query) == "" {
		query = req.Query
	}

	to, subject, body, err := ParseEmailCommand(query)
	if err != nil {
		return taskpilot.ToolResponse{}, err
	}

	if t.Sender == nil {
		return taskpilot.ToolResponse{}, errors.New("no mail provider configured")
	}
	id, err := t.Sender.Send(ctx, to, subject, body)
	if err != nil {
		return taskpilot.ToolResponse{}, fmt.Errorf("failed to send email: %w", err)
	}
	return taskpilot.ToolResponse{Content: fmt.Sprintf("Email sent! ID: %s", id)}, nil
}

// ParseEmailCommand applies the fixed-order template and validates the
// captures. A field that is empty after trimming is rejected rather than
// silently accepted.
func ParseEmailCommand(query string) (to, subject, body string, err error) {
	m := emailPattern.FindStringSubmatch(strings.TrimSpace(query))
	if m == nil {
		return "", "", "", errors.New(emailTemplateHint)
	}

	to = strings.TrimSpace(m[emailPattern.SubexpIndex("to")])
	subject = strings.TrimSpace(m[emailPattern.SubexpIndex("subject")])
	body = strings.TrimSpace(m[emailPattern.SubexpIndex("body")])
	if to == "" || subject == "" || body == "" {
		return "", "", "", errors.New(emailTemplateHint)
	}
	return to, subject, body, nil
}
