package dispatch

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
)

// ErrMissingReceipt is returned when a hit is enqueued without a receipt ID.
var ErrMissingReceipt = errors.New("hit has no receipt id")

// Enqueue publishes an accepted hit.
type Enqueue func(hit *HitMessage) error

// Queue publishes accepted hits to a topic and owns the publisher.
type Queue struct {
	publisher message.Publisher
	topic     string
}

// NewQueue creates a queue publishing to topic.
func NewQueue(publisher message.Publisher, topic string) *Queue {
	return &Queue{publisher: publisher, topic: topic}
}

// Topic returns the topic hits are published to.
func (q *Queue) Topic() string {
	return q.topic
}

// Enqueue publishes hit. The receipt ID doubles as the message UUID so a hit
// can be traced through the stream.
func (q *Queue) Enqueue(hit *HitMessage) error {
	if hit.ReceiptID == "" {
		return ErrMissingReceipt
	}

	payload, err := json.Marshal(hit)
	if err != nil {
		return fmt.Errorf("encode hit %s: %w", hit.ReceiptID, err)
	}

	msg := message.NewMessage(hit.ReceiptID, payload)
	msg.Metadata.Set("hit_type", string(hit.Type))

	if err := q.publisher.Publish(q.topic, msg); err != nil {
		return fmt.Errorf("publish hit %s to %s: %w", hit.ReceiptID, q.topic, err)
	}

	return nil
}

// Shutdown closes the publisher.
func (q *Queue) Shutdown() error {
	return q.publisher.Close()
}
