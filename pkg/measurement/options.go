package measurement

import "go.uber.org/zap"

// Option configures a Client.
type Option func(*Client)

// WithUserAgent sets the User-Agent header sent with every hit.
func WithUserAgent(ua string) Option { return func(c *Client) { c.cfg.UserAgent = ua } }

// WithDebug sends hits to the validation endpoint and checks its verdict.
func WithDebug(debug bool) Option { return func(c *Client) { c.cfg.Debug = debug } }

// WithVersion sets the protocol version (`v`).
func WithVersion(v int) Option { return func(c *Client) { c.cfg.Version = v } }

// WithBaseURL overrides the collection host.
func WithBaseURL(u string) Option { return func(c *Client) { c.cfg.BaseURL = u } }

// WithDebugPath overrides the path fragment inserted in debug mode.
func WithDebugPath(p string) Option { return func(c *Client) { c.cfg.DebugPath = p } }

// WithCollectPath overrides the collect path fragment.
func WithCollectPath(p string) Option { return func(c *Client) { c.cfg.CollectPath = p } }

// WithHTTPClient sets the transport. Timeouts and proxies belong there.
func WithHTTPClient(d Doer) Option { return func(c *Client) { c.httpClient = d } }

// WithIDGenerator replaces the UUID generator used for hits without a client ID.
func WithIDGenerator(g IDGenerator) Option { return func(c *Client) { c.generateID = g } }

// WithLogger sets the logger that receives validation diagnostics in debug mode.
func WithLogger(l *zap.Logger) Option { return func(c *Client) { c.logger = l } }

// WithPixelAsSuccess treats a 2xx image response (the production tracking
// pixel) as an accepted hit. Without it image responses are rejected.
func WithPixelAsSuccess() Option { return func(c *Client) { c.pixelAsSuccess = true } }

// HitOption configures a single hit.
type HitOption func(*hitConfig)

type hitConfig struct {
	clientID string
}

// WithClientID reuses an existing client ID instead of generating one.
func WithClientID(id string) HitOption { return func(h *hitConfig) { h.clientID = id } }

// The accessors below change the configuration of later calls; calls already
// in flight keep the snapshot they started with.

func (c *Client) TrackingID() string { return c.Config().TrackingID }

func (c *Client) SetTrackingID(id string) { c.update(func(cfg *Config) { cfg.TrackingID = id }) }

func (c *Client) Version() int { return c.Config().Version }

func (c *Client) SetVersion(v int) { c.update(func(cfg *Config) { cfg.Version = v }) }

func (c *Client) UserAgent() string { return c.Config().UserAgent }

func (c *Client) SetUserAgent(ua string) { c.update(func(cfg *Config) { cfg.UserAgent = ua }) }

func (c *Client) Debug() bool { return c.Config().Debug }

func (c *Client) SetDebug(debug bool) { c.update(func(cfg *Config) { cfg.Debug = debug }) }

func (c *Client) BaseURL() string { return c.Config().BaseURL }

func (c *Client) SetBaseURL(u string) { c.update(func(cfg *Config) { cfg.BaseURL = u }) }

func (c *Client) DebugPath() string { return c.Config().DebugPath }

func (c *Client) SetDebugPath(p string) { c.update(func(cfg *Config) { cfg.DebugPath = p }) }

func (c *Client) CollectPath() string { return c.Config().CollectPath }

func (c *Client) SetCollectPath(p string) { c.update(func(cfg *Config) { cfg.CollectPath = p }) }

func (c *Client) update(fn func(*Config)) {
	c.mu.Lock()
	defer c.mu.Unlock()

	fn(&c.cfg)
}
