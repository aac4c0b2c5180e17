package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// SessionInput is the payment-session request body. Amounts are in cents; the
// field names follow the payment API's wire format.
type SessionInput struct {
	Items          []SessionItem   `json:"items"`
	Shipping       SessionShipping `json:"shipping"`
	ShippingCost   int64           `json:"shippingCost"`
	ShippingMethod string          `json:"shippingMethod"`
	Email          string          `json:"email"`
}

type SessionItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
	Image    string `json:"image"`
}

type SessionShipping struct {
	Name    string         `json:"name"`
	Address SessionAddress `json:"address"`
}

type SessionAddress struct {
	Line1      string `json:"line1"`
	PostalCode string `json:"postal_code"`
	City       string `json:"city"`
	Country    string `json:"country"`
}

// PaymentSession is what the storefront hands to the provider's client-side
// redirect call.
type PaymentSession struct {
	ID string `json:"sessionId"`
}

// PaymentClient calls the external payment-session endpoint.
type PaymentClient struct {
	base string
	http *http.Client
}

func NewPaymentClient(base string) *PaymentClient {
	return &PaymentClient{
		base: strings.TrimRight(base, "/"),
		http: &http.Client{Timeout: 10 * time.Second},
	}
}

// CreateSession requests a hosted-checkout session from
// POST {base}/api/create-checkout-session.
func (c *PaymentClient) CreateSession(ctx context.Context, in SessionInput) (*PaymentSession, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/api/create-checkout-session", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("create payment session: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var payload struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&payload)
		return nil, &APIError{Status: resp.StatusCode, Message: payload.Error}
	}

	var session PaymentSession
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, fmt.Errorf("create payment session: decode response: %w", err)
	}
	if session.ID == "" {
		return nil, &APIError{Status: resp.StatusCode, Message: "missing session id"}
	}
	return &session, nil
}
