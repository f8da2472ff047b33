package model

// CheckoutConfig holds the credentials and endpoints of the external
// checkout provider.
type CheckoutConfig struct {
	Secret     string
	BaseURL    string
	SuccessURL string
	CancelURL  string
	Currency   string
}

type CheckoutLineItem struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Currency    string `json:"currency"`
	UnitAmount  int64  `json:"unitAmount"` // minor units
	Quantity    int    `json:"quantity"`
}

type CheckoutRequest struct {
	Mode              string             `json:"mode"`
	ClientReferenceID string             `json:"clientReferenceId"`
	SuccessURL        string             `json:"successUrl"`
	CancelURL         string             `json:"cancelUrl"`
	LineItems         []CheckoutLineItem `json:"lineItems"`
}

type CheckoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// CheckoutEvent is the asynchronous callback the provider posts to the
// webhook endpoint. Only "checkout.session.completed" events carry state the
// reconciler acts on.
type CheckoutEvent struct {
	Type string `json:"type"`
	Data struct {
		Object CheckoutObject `json:"object"`
	} `json:"data"`
}

const EventCheckoutCompleted = "checkout.session.completed"

type CheckoutObject struct {
	ClientReferenceID string `json:"client_reference_id"`
	PaymentStatus     string `json:"payment_status"`
}
