package measurement

import "context"

// EventOptions holds the optional fields of an event hit. Zero values are omitted.
type EventOptions struct {
	Label string
	Value int64
}

// ScreenView describes an app screen. Every field is sent, even when empty.
type ScreenView struct {
	AppName        string
	AppVersion     string
	AppID          string
	AppInstallerID string
	ScreenName     string
}

// TransactionOptions holds the optional fields of a transaction hit. Zero values are omitted.
type TransactionOptions struct {
	Affiliation  string
	Revenue      float64
	Shipping     float64
	Tax          float64
	CurrencyCode string
}

// RefundOptions overrides the defaults of a refund hit.
type RefundOptions struct {
	Category string // default "Ecommerce"
	Action   string // default "Refund"
	// Interactive sends ni=0 instead of the default ni=1.
	Interactive bool
}

const (
	defaultRefundCategory = "Ecommerce"
	defaultRefundAction   = "Refund"
)

func PageviewParams(hostname, page, title string) Params {
	return Params{}.
		Add("dh", hostname).
		Add("dp", page).
		Add("dt", title)
}

func EventParams(category, action string, opts EventOptions) Params {
	return Params{}.
		Add("ec", category).
		Add("ea", action).
		AddIfSet("el", opts.Label).
		AddIntIfSet("ev", opts.Value)
}

func ScreenParams(screen ScreenView) Params {
	return Params{}.
		Add("an", screen.AppName).
		Add("av", screen.AppVersion).
		Add("aid", screen.AppID).
		Add("aiid", screen.AppInstallerID).
		Add("cd", screen.ScreenName)
}

func TransactionParams(transactionID string, opts TransactionOptions) Params {
	return Params{}.
		Add("ti", transactionID).
		AddIfSet("ta", opts.Affiliation).
		AddFloatIfSet("tr", opts.Revenue).
		AddFloatIfSet("ts", opts.Shipping).
		AddFloatIfSet("tt", opts.Tax).
		AddIfSet("cu", opts.CurrencyCode)
}

func SocialParams(action, network, target string) Params {
	return Params{}.
		Add("sa", action).
		Add("sn", network).
		Add("st", target)
}

func ExceptionParams(description string, fatal bool) Params {
	exf := "0"
	if fatal {
		exf = "1"
	}

	return Params{}.
		Add("exd", description).
		Add("exf", exf)
}

// RefundParams builds a full refund. The hit is sent as an event.
func RefundParams(transactionID string, opts RefundOptions) Params {
	category := opts.Category
	if category == "" {
		category = defaultRefundCategory
	}

	action := opts.Action
	if action == "" {
		action = defaultRefundAction
	}

	ni := "1"
	if opts.Interactive {
		ni = "0"
	}

	return Params{}.
		Add("ec", category).
		Add("ea", action).
		Add("ni", ni).
		Add("ti", transactionID).
		Add("pa", "refund")
}

// Pageview sends a pageview hit.
func (c *Client) Pageview(ctx context.Context, hostname, page, title string, opts ...HitOption) (*Result, error) {
	return c.Send(ctx, HitPageview, PageviewParams(hostname, page, title), opts...)
}

// Event sends an event hit.
func (c *Client) Event(ctx context.Context, category, action string, ev EventOptions, opts ...HitOption) (*Result, error) {
	return c.Send(ctx, HitEvent, EventParams(category, action, ev), opts...)
}

// Screen sends a screenview hit.
func (c *Client) Screen(ctx context.Context, screen ScreenView, opts ...HitOption) (*Result, error) {
	return c.Send(ctx, HitScreenview, ScreenParams(screen), opts...)
}

// Transaction sends an ecommerce transaction hit.
func (c *Client) Transaction(
	ctx context.Context,
	transactionID string,
	tx TransactionOptions,
	opts ...HitOption,
) (*Result, error) {
	return c.Send(ctx, HitTransaction, TransactionParams(transactionID, tx), opts...)
}

// Social sends a social interaction hit.
func (c *Client) Social(ctx context.Context, action, network, target string, opts ...HitOption) (*Result, error) {
	return c.Send(ctx, HitSocial, SocialParams(action, network, target), opts...)
}

// Exception sends an exception hit.
func (c *Client) Exception(ctx context.Context, description string, fatal bool, opts ...HitOption) (*Result, error) {
	return c.Send(ctx, HitException, ExceptionParams(description, fatal), opts...)
}

// Refund sends a full refund of transactionID as an event hit.
func (c *Client) Refund(ctx context.Context, transactionID string, refund RefundOptions, opts ...HitOption) (*Result, error) {
	return c.Send(ctx, HitEvent, RefundParams(transactionID, refund), opts...)
}
