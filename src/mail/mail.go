// Package mail is the boundary to the external mail provider. Credential
// acquisition and OAuth flows live outside this module; a Sender only needs
// an already-authorized transport.
package mail

import "context"

// Sender delivers one message and returns the provider's message id.
type Sender interface {
	Send(ctx context.Context, to, subject, body string) (string, error)
}
