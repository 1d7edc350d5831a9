package models

// PaymentLinkParams is the issuer's input for minting a checkout link.
// UnitPrice is deliberately untyped: upstream metadata may surface the amount
// as a float, an integer or a numeric string, and the issuer coerces and
// validates it before building the request.
type PaymentLinkParams struct {
	Title             string
	Description       string
	Quantity          int
	CurrencyID        string
	UnitPrice         any
	ExternalReference string
}

// PaymentItem is a single line item of a checkout preference.
type PaymentItem struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	CurrencyID  string  `json:"currency_id"`
	UnitPrice   float64 `json:"unit_price"`
}

// BackURLs are the gateway redirect targets after checkout.
type BackURLs struct {
	Success string `json:"success"`
	Pending string `json:"pending"`
	Failure string `json:"failure"`
}

// PreferenceRequest is the checkout-preference creation body.
type PreferenceRequest struct {
	Items             []PaymentItem `json:"items"`
	ExternalReference string        `json:"external_reference"`
	NotificationURL   string        `json:"notification_url"`
	BackURLs          BackURLs      `json:"back_urls"`
	AutoReturn        string        `json:"auto_return"`
}

// PreferenceResponse is the gateway's answer to preference creation.
type PreferenceResponse struct {
	ID               string `json:"id"`
	InitPoint        string `json:"init_point"`
	SandboxInitPoint string `json:"sandbox_init_point"`
}

// PaymentLink is the usable product of preference creation.
type PaymentLink struct {
	URL string `json:"url"`
	ID  string `json:"id"`
}

// PaymentStatus is the closed set of gateway payment states.
type PaymentStatus string

const (
	PaymentStatusApproved  PaymentStatus = "approved"
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusRejected  PaymentStatus = "rejected"
	PaymentStatusCancelled PaymentStatus = "cancelled"
	PaymentStatusInProcess PaymentStatus = "in_process"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

// PaymentVerification is the result of a payment status lookup.
type PaymentVerification struct {
	Status            PaymentStatus `json:"status"`
	StatusDetail      string        `json:"status_detail"`
	ExternalReference string        `json:"external_reference"`
}
