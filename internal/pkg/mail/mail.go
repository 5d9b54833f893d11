package mail

import (
	"context"
	"io"
)

// Message is a provider-agnostic email payload.
type Message struct {
	// From overrides the sender configured on the Mail implementation.
	From    string
	To      []string
	Cc      []string
	Bcc     []string
	Subject string
	// TextBody is sent as the plain-text alternative when HTMLBody is set.
	TextBody string
	HTMLBody string
}

// Mail delivers messages through some provider.
type Mail interface {
	io.Closer
	Send(ctx context.Context, msg Message) error
}
