package handler

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"

	"github.com/ALuiell/Cinema/config"
	"github.com/ALuiell/Cinema/model"
)

// Checkout is a thin client for the external checkout provider. Requests and
// webhook callbacks are signed with HMAC-SHA256 over the raw JSON body, sent
// in the Checkout-Signature header.
type Checkout struct {
	cfg    model.CheckoutConfig
	client *http.Client
}

func NewCheckout() *Checkout {
	return &Checkout{
		cfg: model.CheckoutConfig{
			Secret:     config.Config("CHECKOUT_SECRET"),
			BaseURL:    config.Config("CHECKOUT_URL"),
			SuccessURL: config.Config("APP_URL") + "/payment/success",
			CancelURL:  config.Config("APP_URL") + "/payment/cancel",
			Currency:   "usd",
		},
		client: &http.Client{Timeout: config.PaymentTimeout()},
	}
}

// CreateSession opens a hosted checkout session for the order and returns
// the redirect URL. The order's public code rides along as the client
// reference so the webhook can find its way back.
func (ck *Checkout) CreateSession(order *model.Order) (string, error) {
	items := make([]model.CheckoutLineItem, 0, len(order.Tickets))
	for _, ticket := range order.Tickets {
		if ticket.Status == model.TicketCancelled {
			continue
		}
		items = append(items, model.CheckoutLineItem{
			Name:        fmt.Sprintf("%s, seat %d", order.Session.Movie.Title, ticket.SeatNumber),
			Description: fmt.Sprintf("%s at %s", order.Session.SessionDate().Format("2006-01-02"), order.Session.StartTime.Format("15:04")),
			Currency:    ck.cfg.Currency,
			UnitAmount:  int64(math.Round(ticket.Price * 100)),
			Quantity:    1,
		})
	}

	body, err := json.Marshal(model.CheckoutRequest{
		Mode:              "payment",
		ClientReferenceID: order.PublicCode,
		SuccessURL:        ck.cfg.SuccessURL,
		CancelURL:         ck.cfg.CancelURL,
		LineItems:         items,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequest(http.MethodPost, ck.cfg.BaseURL+"/v1/checkout/sessions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Checkout-Signature", ck.Sign(body))

	resp, err := ck.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("checkout provider returned %d: %s", resp.StatusCode, payload)
	}

	var session model.CheckoutSession
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return "", err
	}
	if session.URL == "" {
		return "", fmt.Errorf("checkout provider returned no redirect url")
	}
	return session.URL, nil
}

func (ck *Checkout) Sign(body []byte) string {
	mac := hmac.New(sha256.New, []byte(ck.cfg.Secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func (ck *Checkout) VerifySignature(body []byte, signature string) bool {
	expected, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}
	mac := hmac.New(sha256.New, []byte(ck.cfg.Secret))
	mac.Write(body)
	return hmac.Equal(mac.Sum(nil), expected)
}
