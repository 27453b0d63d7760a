package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/serroba/hitrelay/pkg/measurement"
	"go.uber.org/zap"
)

// Sender delivers a single hit. *measurement.Client implements it.
type Sender interface {
	Send(
		ctx context.Context,
		hitType measurement.HitType,
		params measurement.Params,
		opts ...measurement.HitOption,
	) (*measurement.Result, error)
}

// Stats counts delivery outcomes.
type Stats struct {
	Delivered int64
	Rejected  int64
	Failed    int64
}

// Worker delivers queued hits to the collection endpoint.
//
// A hit refused by the endpoint is acked: sending it again cannot change the
// verdict. Transport failures are nacked and left to the broker.
type Worker struct {
	subscriber message.Subscriber
	topic      string
	sender     Sender
	logger     *zap.Logger
	cancel     context.CancelFunc
	done       chan struct{}

	delivered atomic.Int64
	rejected  atomic.Int64
	failed    atomic.Int64
}

// NewWorker creates a worker for topic.
func NewWorker(subscriber message.Subscriber, topic string, sender Sender, logger *zap.Logger) *Worker {
	return &Worker{
		subscriber: subscriber,
		topic:      topic,
		sender:     sender,
		logger:     logger,
		done:       make(chan struct{}),
	}
}

// Topic returns the topic this worker subscribes to.
func (w *Worker) Topic() string {
	return w.topic
}

// Stats returns the outcomes counted so far.
func (w *Worker) Stats() Stats {
	return Stats{
		Delivered: w.delivered.Load(),
		Rejected:  w.rejected.Load(),
		Failed:    w.failed.Load(),
	}
}

// Start subscribes and begins delivering in the background.
func (w *Worker) Start(ctx context.Context) error {
	ctx, w.cancel = context.WithCancel(ctx)

	msgs, err := w.subscriber.Subscribe(ctx, w.topic)
	if err != nil {
		w.cancel()
		close(w.done)

		return err
	}

	go w.consumeLoop(ctx, msgs)

	return nil
}

func (w *Worker) consumeLoop(ctx context.Context, msgs <-chan *message.Message) {
	defer close(w.done)

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-msgs:
			if !ok {
				return
			}

			w.deliver(ctx, msg)
		}
	}
}

func (w *Worker) deliver(ctx context.Context, msg *message.Message) {
	var hit HitMessage
	if err := json.Unmarshal(msg.Payload, &hit); err != nil {
		w.logger.Error("failed to unmarshal hit",
			zap.String("messageId", msg.UUID),
			zap.Error(err),
		)
		w.failed.Add(1)
		msg.Nack()

		return
	}

	res, err := w.sender.Send(ctx, hit.Type, hit.UpstreamParams(), measurement.WithClientID(hit.ClientID))

	switch {
	case errors.Is(err, measurement.ErrRejected):
		w.logger.Warn("hit rejected by collector",
			zap.String("receiptId", hit.ReceiptID),
			zap.String("hitType", string(hit.Type)),
			zap.Error(err),
		)
		w.rejected.Add(1)
		msg.Ack()

		return
	case err != nil:
		w.logger.Error("failed to deliver hit",
			zap.String("receiptId", hit.ReceiptID),
			zap.String("hitType", string(hit.Type)),
			zap.Error(err),
		)
		w.failed.Add(1)
		msg.Nack()

		return
	}

	w.delivered.Add(1)
	msg.Ack()

	w.logger.Debug("delivered hit",
		zap.String("receiptId", hit.ReceiptID),
		zap.String("clientId", res.ClientID),
	)
}

// Shutdown stops the worker and waits for the in-flight hit. It returns at once
// for a worker that was never started.
func (w *Worker) Shutdown() error {
	if w.cancel == nil {
		return nil
	}

	w.cancel()
	<-w.done

	return nil
}
