package mail

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"

	gmail "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// GmailSender sends mail through the Gmail API on behalf of the
// authenticated user ("me").
type GmailSender struct {
	svc *gmail.Service
}

// NewGmailSender builds a sender from an OAuth-authorized HTTP client.
func NewGmailSender(ctx context.Context, client *http.Client) (*GmailSender, error) {
	svc, err := gmail.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("gmail service: %w", err)
	}
	return &GmailSender{svc: svc}, nil
}

func (s *GmailSender) Send(ctx context.Context, to, subject, body string) (string, error) {
	raw := fmt.Sprintf("To: %s\r\nSubject: %s\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s", to, subject, body)
	msg := &gmail.Message{
		Raw: base64.URLEncoding.EncodeToString([]byte(raw)),
	}

	sent, err := s.svc.Users.Messages.Send("me", msg).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("gmail send: %w", err)
	}
	return sent.Id, nil
}

var _ Sender = (*GmailSender)(nil)
