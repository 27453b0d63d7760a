package dispatch

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.uber.org/zap"
)

// Group delivers the hits of one topic with a fixed number of workers. All
// workers read through the same subscriber, so with a Redis consumer group each
// queued hit reaches exactly one of them.
type Group struct {
	subscriber message.Subscriber
	topic      string
	workers    []*Worker
	logger     *zap.Logger
}

// NewGroup creates a group of n workers delivering hits from topic through
// sender. n below one is treated as one.
func NewGroup(subscriber message.Subscriber, topic string, sender Sender, n int, logger *zap.Logger) *Group {
	n = max(n, 1)

	g := &Group{
		subscriber: subscriber,
		topic:      topic,
		workers:    make([]*Worker, 0, n),
		logger:     logger,
	}

	for i := range n {
		g.workers = append(g.workers, NewWorker(subscriber, topic, sender, logger.With(zap.Int("worker", i))))
	}

	return g
}

// Topic returns the topic the group delivers from.
func (g *Group) Topic() string {
	return g.topic
}

// Size returns the number of workers.
func (g *Group) Size() int {
	return len(g.workers)
}

// Stats sums the delivery outcomes of every worker.
func (g *Group) Stats() Stats {
	var total Stats

	for _, w := range g.workers {
		s := w.Stats()
		total.Delivered += s.Delivered
		total.Rejected += s.Rejected
		total.Failed += s.Failed
	}

	return total
}

// Start starts every worker. If one fails the ones already started are stopped.
func (g *Group) Start(ctx context.Context) error {
	for i, w := range g.workers {
		if err := w.Start(ctx); err != nil {
			for j := i - 1; j >= 0; j-- {
				_ = g.workers[j].Shutdown()
			}

			return fmt.Errorf("start hit worker %d on %s: %w", i, g.topic, err)
		}
	}

	g.logger.Info("dispatch workers started",
		zap.String("topic", g.topic),
		zap.Int("workers", len(g.workers)),
	)

	return nil
}

// Shutdown stops every worker, logs what they delivered, then closes the
// subscriber. The first error wins.
func (g *Group) Shutdown() error {
	var firstErr error

	for _, w := range g.workers {
		if err := w.Shutdown(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	stats := g.Stats()
	g.logger.Info("dispatch workers stopped",
		zap.String("topic", g.topic),
		zap.Int64("delivered", stats.Delivered),
		zap.Int64("rejected", stats.Rejected),
		zap.Int64("failed", stats.Failed),
	)

	if err := g.subscriber.Close(); err != nil && firstErr == nil {
		firstErr = err
	}

	return firstErr
}
