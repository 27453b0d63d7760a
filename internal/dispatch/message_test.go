package dispatch_test

import (
	"testing"

	"github.com/serroba/hitrelay/internal/dispatch"
	"github.com/serroba/hitrelay/pkg/measurement"
	"github.com/stretchr/testify/assert"
)

func TestHitMessage_UpstreamParams(t *testing.T) {
	t.Run("appends caller overrides", func(t *testing.T) {
		hit := &dispatch.HitMessage{
			Params:    measurement.PageviewParams("example.com", "/", "Home"),
			ClientIP:  "10.0.0.1",
			UserAgent: "Browser/1.0",
			Referrer:  "https://ref.example",
		}

		got := hit.UpstreamParams()

		assert.Equal(t,
			"dh=example.com&dp=%2F&dt=Home&uip=10.0.0.1&ua=Browser%2F1.0&dr=https%3A%2F%2Fref.example",
			got.Encode(),
		)
	})

	t.Run("skips missing metadata", func(t *testing.T) {
		hit := &dispatch.HitMessage{Params: measurement.SocialParams("like", "x", "/")}

		assert.Len(t, hit.UpstreamParams(), 3)
	})

	t.Run("explicit params win over metadata", func(t *testing.T) {
		hit := &dispatch.HitMessage{
			Params:   measurement.Params{}.Add("uip", "1.1.1.1"),
			ClientIP: "10.0.0.1",
		}

		v, _ := hit.UpstreamParams().Get("uip")

		assert.Equal(t, "1.1.1.1", v)
	})

	t.Run("does not modify the stored params", func(t *testing.T) {
		params := make(measurement.Params, 0, 8)
		params = params.Add("ec", "a")
		hit := &dispatch.HitMessage{Params: params, ClientIP: "10.0.0.1"}

		_ = hit.UpstreamParams()

		assert.Len(t, hit.Params, 1)
		assert.Equal(t, measurement.Param{}, params[:2][1])
	})
}
