package measurement_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/serroba/hitrelay/pkg/measurement"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseFields = "v=1&tid=UA-12345-1&cid=fixed-client-id"

func TestClient_Hits(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		send func(c *measurement.Client) (*measurement.Result, error)
		body string
	}{
		{
			name: "pageview",
			send: func(c *measurement.Client) (*measurement.Result, error) {
				return c.Pageview(ctx, "example.com", "/home", "Home")
			},
			body: baseFields + "&t=pageview&dh=example.com&dp=%2Fhome&dt=Home",
		},
		{
			name: "event without optional fields",
			send: func(c *measurement.Client) (*measurement.Result, error) {
				return c.Event(ctx, "Games", "play", measurement.EventOptions{})
			},
			body: baseFields + "&t=event&ec=Games&ea=play",
		},
		{
			name: "event with label and value",
			send: func(c *measurement.Client) (*measurement.Result, error) {
				return c.Event(ctx, "Games", "play", measurement.EventOptions{Label: "lvl1", Value: 5})
			},
			body: baseFields + "&t=event&ec=Games&ea=play&el=lvl1&ev=5",
		},
		{
			name: "screenview keeps empty fields",
			send: func(c *measurement.Client) (*measurement.Result, error) {
				return c.Screen(ctx, measurement.ScreenView{AppName: "App", ScreenName: "Main"})
			},
			body: baseFields + "&t=screenview&an=App&av=&aid=&aiid=&cd=Main",
		},
		{
			name: "transaction with only an id",
			send: func(c *measurement.Client) (*measurement.Result, error) {
				return c.Transaction(ctx, "T1", measurement.TransactionOptions{})
			},
			body: baseFields + "&t=transaction&ti=T1",
		},
		{
			name: "transaction with every field",
			send: func(c *measurement.Client) (*measurement.Result, error) {
				return c.Transaction(ctx, "T1", measurement.TransactionOptions{
					Affiliation:  "store",
					Revenue:      12.5,
					Shipping:     3,
					Tax:          1.25,
					CurrencyCode: "EUR",
				})
			},
			body: baseFields + "&t=transaction&ti=T1&ta=store&tr=12.5&ts=3&tt=1.25&cu=EUR",
		},
		{
			name: "social",
			send: func(c *measurement.Client) (*measurement.Result, error) {
				return c.Social(ctx, "like", "facebook", "/home")
			},
			body: baseFields + "&t=social&sa=like&sn=facebook&st=%2Fhome",
		},
		{
			name: "fatal exception",
			send: func(c *measurement.Client) (*measurement.Result, error) {
				return c.Exception(ctx, "boom", true)
			},
			body: baseFields + "&t=exception&exd=boom&exf=1",
		},
		{
			name: "non fatal exception",
			send: func(c *measurement.Client) (*measurement.Result, error) {
				return c.Exception(ctx, "", false)
			},
			body: baseFields + "&t=exception&exd=&exf=0",
		},
		{
			name: "refund with defaults",
			send: func(c *measurement.Client) (*measurement.Result, error) {
				return c.Refund(ctx, "T123", measurement.RefundOptions{})
			},
			body: baseFields + "&t=event&ec=Ecommerce&ea=Refund&ni=1&ti=T123&pa=refund",
		},
		{
			name: "refund with overrides",
			send: func(c *measurement.Client) (*measurement.Result, error) {
				return c.Refund(ctx, "T123", measurement.RefundOptions{
					Category:    "Shop",
					Action:      "Return",
					Interactive: true,
				})
			},
			body: baseFields + "&t=event&ec=Shop&ea=Return&ni=0&ti=T123&pa=refund",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, requests := newCollector(t, http.StatusOK, "application/json", `{}`)
			client := newTestClient(srv)

			res, err := tt.send(client)

			require.NoError(t, err)
			assert.Equal(t, testClientID, res.ClientID)
			assert.Equal(t, tt.body, (<-requests).body)
		})
	}
}

func TestParams(t *testing.T) {
	t.Run("merge keeps existing keys", func(t *testing.T) {
		p := measurement.Params{}.Add("a", "1").Merge(measurement.Params{}.Add("a", "2").Add("b", "3"))

		assert.Equal(t, measurement.Params{{Key: "a", Value: "1"}, {Key: "b", Value: "3"}}, p)
	})

	t.Run("get reports presence", func(t *testing.T) {
		p := measurement.Params{}.Add("dh", "")

		v, ok := p.Get("dh")
		assert.True(t, ok)
		assert.Empty(t, v)

		_, ok = p.Get("dp")
		assert.False(t, ok)
	})

	t.Run("encode of empty params", func(t *testing.T) {
		assert.Empty(t, measurement.Params{}.Encode())
	})
}

func TestDebugReport(t *testing.T) {
	report := measurement.DebugReport{
		HitParsingResult: []measurement.HitParsingResult{{
			Valid: false,
			ParserMessage: []measurement.ParserMessage{
				{Description: "generic"},
				{Description: "missing", Parameter: "cid"},
			},
		}},
	}

	assert.False(t, report.Valid())
	assert.Equal(t, []string{"generic", "cid: missing"}, report.Problems())
	assert.Nil(t, measurement.DebugReport{}.Problems())
}
