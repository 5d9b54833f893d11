package messaging

import (
	"context"
	"io"
	"time"
)

// Messaging publishes and consumes messages.
type Messaging interface {
	io.Closer

	Publisher
	Consumer
}

// Publisher publishes messages to a subject.
type Publisher interface {
	Publish(ctx context.Context, subject string, msg OutgoingMessage) (PublishResult, error)
}

// Consumer consumes messages from a subject. Consume blocks until ctx is done.
type Consumer interface {
	Consume(ctx context.Context, subject string, handler Handler, opts ...ConsumeOption) error
}

// Handler processes a received message. With auto-ack a nil error acks and a
// non-nil error nacks.
type Handler func(ctx context.Context, msg Message) error

// OutgoingMessage is a message to publish.
type OutgoingMessage struct {
	Body []byte
	// Headers allow duplicate keys.
	Headers []Header
}

// Header is a key/value pair carried next to the body.
type Header struct {
	Key   string
	Value []byte
}

// PublishResult describes an accepted publish.
type PublishResult struct {
	Subject   string
	Timestamp time.Time
}

// Message is a received message.
type Message interface {
	Body() []byte
	Headers() []Header
	// Header returns the first value of key, "" when missing.
	Header(key string) string
	Subject() string
	// Timestamp is when the client received the message.
	Timestamp() time.Time

	Ack(ctx context.Context) error
	Nack(ctx context.Context) error
}
