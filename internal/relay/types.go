package relay

// PageviewRequest is the request for a pageview hit.
type PageviewRequest struct {
	Body struct {
		Hostname string `doc:"Document hostname"               example:"example.com" json:"hostname"`
		Page     string `doc:"Document path"                   example:"/pricing"    json:"page"`
		Title    string `doc:"Document title"                  example:"Pricing"     json:"title"`
		ClientID string `doc:"Client ID to reuse, if any"      json:"clientId,omitempty"`
	}
}

// EventRequest is the request for an event hit.
type EventRequest struct {
	Body struct {
		Category string `doc:"Event category"             example:"Games" json:"category"`
		Action   string `doc:"Event action"               example:"play"  json:"action"`
		Label    string `doc:"Event label"                example:"lvl1"  json:"label,omitempty"`
		Value    int64  `doc:"Event value"                example:"5"     json:"value,omitempty"    minimum:"0"`
		ClientID string `doc:"Client ID to reuse, if any" json:"clientId,omitempty"`
	}
}

// ScreenviewRequest is the request for a screenview hit.
type ScreenviewRequest struct {
	Body struct {
		AppName        string `doc:"Application name"            example:"Relay Demo"      json:"appName"`
		AppVersion     string `doc:"Application version"         example:"1.2.0"           json:"appVersion,omitempty"`
		AppID          string `doc:"Application ID"              example:"com.example.app" json:"appId,omitempty"`
		AppInstallerID string `doc:"Application installer ID"    example:"com.android.vending" json:"appInstallerId,omitempty"`
		ScreenName     string `doc:"Screen name"                 example:"Home"            json:"screenName"`
		ClientID       string `doc:"Client ID to reuse, if any"  json:"clientId,omitempty"`
	}
}

// TransactionRequest is the request for an ecommerce transaction hit.
type TransactionRequest struct {
	Body struct {
		TransactionID string  `doc:"Transaction ID"             example:"T123"  json:"transactionId"`
		Affiliation   string  `doc:"Affiliation or store name"  example:"web"   json:"affiliation,omitempty"`
		Revenue       float64 `doc:"Total revenue"              example:"12.5"  json:"revenue,omitempty"`
		Shipping      float64 `doc:"Shipping cost"              example:"3"     json:"shipping,omitempty"`
		Tax           float64 `doc:"Tax"                        example:"1.25"  json:"tax,omitempty"`
		CurrencyCode  string  `doc:"ISO 4217 currency code"     example:"EUR"   json:"currencyCode,omitempty"`
		ClientID      string  `doc:"Client ID to reuse, if any" json:"clientId,omitempty"`
	}
}

// SocialRequest is the request for a social interaction hit.
type SocialRequest struct {
	Body struct {
		Action   string `doc:"Social action"              example:"like"     json:"action"`
		Network  string `doc:"Social network"             example:"facebook" json:"network"`
		Target   string `doc:"Social target"              example:"/home"    json:"target"`
		ClientID string `doc:"Client ID to reuse, if any" json:"clientId,omitempty"`
	}
}

// ExceptionRequest is the request for an exception hit.
type ExceptionRequest struct {
	Body struct {
		Description string `doc:"Exception description"      example:"DatabaseError" json:"description"`
		Fatal       bool   `doc:"Whether it was fatal"       json:"fatal,omitempty"`
		ClientID    string `doc:"Client ID to reuse, if any" json:"clientId,omitempty"`
	}
}

// RefundRequest is the request for a full refund.
type RefundRequest struct {
	Body struct {
		TransactionID string `doc:"Transaction to refund"            example:"T123"      json:"transactionId"`
		Category      string `doc:"Event category, default Ecommerce" json:"category,omitempty"`
		Action        string `doc:"Event action, default Refund"      json:"action,omitempty"`
		Interactive   bool   `doc:"Send as an interactive hit"        json:"interactive,omitempty"`
		ClientID      string `doc:"Client ID to reuse, if any"        json:"clientId,omitempty"`
	}
}

// AcceptedResponse is returned once a hit has been queued for delivery.
type AcceptedResponse struct {
	Body struct {
		ReceiptID string `doc:"Receipt for the queued hit"          example:"V1StGXR8_Z5jdHi6B-myT" json:"receiptId"`
		ClientID  string `doc:"Client ID the hit will be sent with" example:"35009a79-1a05-49d7-b876-2b884d0f825b" json:"clientId"`
	}
}
