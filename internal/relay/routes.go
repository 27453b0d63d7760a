package relay

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func register[I any](api huma.API, id, path, summary string, handler func(context.Context, *I) (*AcceptedResponse, error)) {
	huma.Register(api, huma.Operation{
		OperationID:   id,
		Method:        http.MethodPost,
		Path:          path,
		Summary:       summary,
		Tags:          []string{"Hits"},
		DefaultStatus: http.StatusAccepted,
	}, handler)
}

// RegisterRoutes registers one endpoint per hit type.
func RegisterRoutes(api huma.API, h *Handler) {
	register(api, "queue-pageview", "/hits/pageview", "Queue a pageview", h.Pageview)
	register(api, "queue-event", "/hits/event", "Queue an event", h.Event)
	register(api, "queue-screenview", "/hits/screenview", "Queue a screenview", h.Screenview)
	register(api, "queue-transaction", "/hits/transaction", "Queue a transaction", h.Transaction)
	register(api, "queue-social", "/hits/social", "Queue a social interaction", h.Social)
	register(api, "queue-exception", "/hits/exception", "Queue an exception", h.Exception)
	register(api, "queue-refund", "/hits/refund", "Queue a full refund", h.Refund)
}
