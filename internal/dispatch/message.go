package dispatch

import (
	"time"

	"github.com/serroba/hitrelay/pkg/measurement"
)

// TopicHitAccepted is the stream accepted hits are published to.
const TopicHitAccepted = "hits.accepted"

// HitMessage is a hit accepted by the relay and waiting to be delivered.
type HitMessage struct {
	ReceiptID  string              `json:"receiptId"`
	Type       measurement.HitType `json:"type"`
	ClientID   string              `json:"clientId"`
	Params     measurement.Params  `json:"params"`
	ClientIP   string              `json:"clientIp,omitempty"`
	UserAgent  string              `json:"userAgent,omitempty"`
	Referrer   string              `json:"referrer,omitempty"`
	AcceptedAt time.Time           `json:"acceptedAt"`
}

// UpstreamParams returns the hit params followed by the caller overrides
// (uip, ua, dr). Params set explicitly on the hit take precedence.
func (m *HitMessage) UpstreamParams() measurement.Params {
	params := make(measurement.Params, 0, len(m.Params)+3)
	params = append(params, m.Params...)

	return params.Merge(measurement.Params{}.
		AddIfSet("uip", m.ClientIP).
		AddIfSet("ua", m.UserAgent).
		AddIfSet("dr", m.Referrer))
}
