package health

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"github.com/redis/go-redis/v9"
)

// Checker reports whether a dependency is reachable.
type Checker interface {
	Ping(ctx context.Context) error
}

// QueueChecker pings the Redis instance backing the hit stream.
type QueueChecker struct {
	client redis.UniversalClient
}

// NewQueueChecker creates a checker for the hit queue.
func NewQueueChecker(client redis.UniversalClient) *QueueChecker {
	return &QueueChecker{client: client}
}

// Ping checks Redis connectivity.
func (q *QueueChecker) Ping(ctx context.Context) error {
	return q.client.Ping(ctx).Err()
}

// Handler serves the health endpoint.
type Handler struct {
	queue Checker
}

// NewHandler creates a new health handler.
func NewHandler(queue Checker) *Handler {
	return &Handler{queue: queue}
}

// Response is the health report.
type Response struct {
	Body struct {
		Status string `doc:"ok, or degraded when hits cannot be queued" json:"status"`
		Queue  string `doc:"healthy or unhealthy"                       json:"queue"`
	}
}

// Check reports degraded when the queue is unreachable; the relay keeps
// serving but every hit will be refused with 503.
func (h *Handler) Check(ctx context.Context, _ *struct{}) (*Response, error) {
	resp := &Response{}
	resp.Body.Status = "ok"
	resp.Body.Queue = "healthy"

	if err := h.queue.Ping(ctx); err != nil {
		resp.Body.Status = "degraded"
		resp.Body.Queue = "unhealthy"
	}

	return resp, nil
}

// RegisterRoutes registers health check routes.
func RegisterRoutes(api huma.API, h *Handler) {
	huma.Get(api, "/health", h.Check)
}
