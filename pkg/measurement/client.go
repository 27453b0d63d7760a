// Package measurement sends Measurement Protocol hits to a collection endpoint.
//
// Every hit method maps its arguments onto the protocol's short keys and ends in
// [Client.Send], which performs exactly one POST and classifies the answer:
//
//	client := measurement.New("UA-XXXXX-Y", measurement.WithDebug(true))
//	res, err := client.Event(ctx, "Games", "play", measurement.EventOptions{Label: "lvl1"})
//	if errors.Is(err, measurement.ErrRejected) {
//	    // the endpoint refused the hit
//	}
//	_ = res.ClientID
package measurement

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultBaseURL     = "https://www.google-analytics.com"
	DefaultDebugPath   = "/debug"
	DefaultCollectPath = "/collect"
	DefaultVersion     = 1

	defaultTimeout = 30 * time.Second

	// maxResponseBytes caps how much of a response body is read.
	maxResponseBytes = 64 << 10
)

// Doer executes HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// IDGenerator produces a fresh client ID for hits sent without one.
type IDGenerator func() string

// Config is a snapshot of the client configuration.
type Config struct {
	TrackingID  string
	Version     int
	UserAgent   string
	Debug       bool
	BaseURL     string
	DebugPath   string
	CollectPath string
}

// Endpoint returns the collection URL selected by the debug flag.
func (c Config) Endpoint() string {
	if c.Debug {
		return c.BaseURL + c.DebugPath + c.CollectPath
	}

	return c.BaseURL + c.CollectPath
}

// Result is returned for every accepted hit.
type Result struct {
	ClientID string `json:"clientId"`
}

// Client sends hits for one tracking ID. It is safe for concurrent use; each
// call works on a snapshot of the configuration taken when it starts.
type Client struct {
	mu  sync.RWMutex
	cfg Config

	httpClient     Doer
	generateID     IDGenerator
	logger         *zap.Logger
	pixelAsSuccess bool
}

// New creates a client for trackingID.
func New(trackingID string, opts ...Option) *Client {
	c := &Client{
		cfg: Config{
			TrackingID:  trackingID,
			Version:     DefaultVersion,
			BaseURL:     DefaultBaseURL,
			DebugPath:   DefaultDebugPath,
			CollectPath: DefaultCollectPath,
		},
		httpClient: &http.Client{Timeout: defaultTimeout},
		generateID: uuid.NewString,
		logger:     zap.NewNop(),
	}

	for _, o := range opts {
		o(c)
	}

	return c
}

// Config returns a copy of the current configuration.
func (c *Client) Config() Config {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.cfg
}

// Send posts a hit of hitType. The base fields v, tid, cid and t come first and
// cannot be overridden by params.
func (c *Client) Send(ctx context.Context, hitType HitType, params Params, opts ...HitOption) (*Result, error) {
	cfg := c.Config()

	var hit hitConfig
	for _, o := range opts {
		o(&hit)
	}

	clientID := hit.clientID
	if clientID == "" {
		clientID = c.generateID()
	}

	form := Params{}.
		AddInt("v", int64(cfg.Version)).
		Add("tid", cfg.TrackingID).
		Add("cid", clientID).
		Add("t", string(hitType)).
		Merge(params)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cfg.Endpoint(), strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build %s hit request: %w", hitType, err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	if cfg.UserAgent != "" {
		req.Header.Set("User-Agent", cfg.UserAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send %s hit: %w", hitType, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read %s hit response: %w", hitType, err)
	}

	if err := c.classify(cfg, resp, body); err != nil {
		return nil, err
	}

	return &Result{ClientID: clientID}, nil
}

func (c *Client) classify(cfg Config, resp *http.Response, body []byte) error {
	ok := resp.StatusCode >= 200 && resp.StatusCode < 300

	if isImage(resp.Header.Get("Content-Type")) {
		if ok && c.pixelAsSuccess {
			return nil
		}

		return rejectedText(resp.StatusCode, string(body))
	}

	var data any
	if err := json.Unmarshal(body, &data); err != nil {
		return rejectedText(resp.StatusCode, string(body))
	}

	if !ok {
		return rejected(resp.StatusCode, data)
	}

	if !cfg.Debug {
		return nil
	}

	// A body that is not a report object leaves report empty, which is invalid.
	var report DebugReport
	if err := json.Unmarshal(body, &report); err == nil && report.Valid() {
		return nil
	}

	c.logger.Warn("hit failed validation",
		zap.String("trackingId", cfg.TrackingID),
		zap.Strings("problems", report.Problems()),
		zap.Any("response", data),
	)

	return rejected(resp.StatusCode, data)
}

func isImage(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}

	return strings.HasPrefix(mediaType, "image/")
}
