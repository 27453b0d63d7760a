package relay

import (
	"context"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/hitrelay/internal/dispatch"
	"github.com/serroba/hitrelay/pkg/measurement"
	"go.uber.org/zap"
)

// ReceiptGenerator produces receipt IDs for accepted hits.
type ReceiptGenerator func() string

// Handler accepts hits over HTTP and queues them for delivery.
type Handler struct {
	enqueue     dispatch.Enqueue
	newReceipt  ReceiptGenerator
	newClientID measurement.IDGenerator
	logger      *zap.Logger
}

// NewHandler creates a relay handler.
func NewHandler(
	enqueue dispatch.Enqueue,
	newReceipt ReceiptGenerator,
	newClientID measurement.IDGenerator,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		enqueue:     enqueue,
		newReceipt:  newReceipt,
		newClientID: newClientID,
		logger:      logger,
	}
}

type requestMetaKey struct{}

// RequestMeta holds caller details forwarded upstream as overrides.
type RequestMeta struct {
	ClientIP  string
	UserAgent string
	Referrer  string
}

// ContextWithRequestMeta adds request metadata to context.
func ContextWithRequestMeta(ctx context.Context, meta RequestMeta) context.Context {
	return context.WithValue(ctx, requestMetaKey{}, meta)
}

// RequestMetaFromContext extracts request metadata from context.
func RequestMetaFromContext(ctx context.Context) RequestMeta {
	if v, ok := ctx.Value(requestMetaKey{}).(RequestMeta); ok {
		return v
	}

	return RequestMeta{}
}

func (h *Handler) Pageview(ctx context.Context, req *PageviewRequest) (*AcceptedResponse, error) {
	b := req.Body

	return h.accept(ctx, measurement.HitPageview, b.ClientID,
		measurement.PageviewParams(b.Hostname, b.Page, b.Title))
}

func (h *Handler) Event(ctx context.Context, req *EventRequest) (*AcceptedResponse, error) {
	b := req.Body

	return h.accept(ctx, measurement.HitEvent, b.ClientID,
		measurement.EventParams(b.Category, b.Action, measurement.EventOptions{Label: b.Label, Value: b.Value}))
}

func (h *Handler) Screenview(ctx context.Context, req *ScreenviewRequest) (*AcceptedResponse, error) {
	b := req.Body

	return h.accept(ctx, measurement.HitScreenview, b.ClientID, measurement.ScreenParams(measurement.ScreenView{
		AppName:        b.AppName,
		AppVersion:     b.AppVersion,
		AppID:          b.AppID,
		AppInstallerID: b.AppInstallerID,
		ScreenName:     b.ScreenName,
	}))
}

func (h *Handler) Transaction(ctx context.Context, req *TransactionRequest) (*AcceptedResponse, error) {
	b := req.Body

	return h.accept(ctx, measurement.HitTransaction, b.ClientID,
		measurement.TransactionParams(b.TransactionID, measurement.TransactionOptions{
			Affiliation:  b.Affiliation,
			Revenue:      b.Revenue,
			Shipping:     b.Shipping,
			Tax:          b.Tax,
			CurrencyCode: b.CurrencyCode,
		}))
}

func (h *Handler) Social(ctx context.Context, req *SocialRequest) (*AcceptedResponse, error) {
	b := req.Body

	return h.accept(ctx, measurement.HitSocial, b.ClientID, measurement.SocialParams(b.Action, b.Network, b.Target))
}

func (h *Handler) Exception(ctx context.Context, req *ExceptionRequest) (*AcceptedResponse, error) {
	b := req.Body

	return h.accept(ctx, measurement.HitException, b.ClientID, measurement.ExceptionParams(b.Description, b.Fatal))
}

// Refund queues a refund. Refunds travel as event hits.
func (h *Handler) Refund(ctx context.Context, req *RefundRequest) (*AcceptedResponse, error) {
	b := req.Body

	return h.accept(ctx, measurement.HitEvent, b.ClientID,
		measurement.RefundParams(b.TransactionID, measurement.RefundOptions{
			Category:    b.Category,
			Action:      b.Action,
			Interactive: b.Interactive,
		}))
}

func (h *Handler) accept(
	ctx context.Context,
	hitType measurement.HitType,
	clientID string,
	params measurement.Params,
) (*AcceptedResponse, error) {
	if clientID == "" {
		clientID = h.newClientID()
	}

	meta := RequestMetaFromContext(ctx)
	hit := &dispatch.HitMessage{
		ReceiptID:  h.newReceipt(),
		Type:       hitType,
		ClientID:   clientID,
		Params:     params,
		ClientIP:   meta.ClientIP,
		UserAgent:  meta.UserAgent,
		Referrer:   meta.Referrer,
		AcceptedAt: time.Now().UTC(),
	}

	if err := h.enqueue(hit); err != nil {
		h.logger.Error("failed to enqueue hit",
			zap.String("receiptId", hit.ReceiptID),
			zap.String("hitType", string(hitType)),
			zap.Error(err),
		)

		return nil, huma.Error503ServiceUnavailable("failed to queue hit")
	}

	h.logger.Debug("hit queued",
		zap.String("receiptId", hit.ReceiptID),
		zap.String("hitType", string(hitType)),
	)

	resp := &AcceptedResponse{}
	resp.Body.ReceiptID = hit.ReceiptID
	resp.Body.ClientID = clientID

	return resp, nil
}
