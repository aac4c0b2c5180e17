// Package upstream holds the HTTP clients for the two external collaborators
// of the checkout: the customers API and the payment-session API.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"monsavonvert/internal/domain"
)

// APIError is a failed upstream call: transport-level, non-2xx, or a 2xx body
// carrying an error field. Message holds the server-provided text when there
// is one.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("upstream error (status %d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("upstream error (status %d)", e.Status)
}

// CustomerResult is the success payload of the customer upsert. A non-empty
// TemporaryPassword means a fresh account was created; a bare Message means
// the server has something to tell the shopper (typically that the account
// already exists); both empty is the ordinary silent case.
type CustomerResult struct {
	Message           string
	TemporaryPassword string
}

// CustomerClient calls the external create-or-find customer endpoint.
type CustomerClient struct {
	base string
	http *http.Client
}

func NewCustomerClient(base string) *CustomerClient {
	return &CustomerClient{
		base: strings.TrimRight(base, "/"),
		http: &http.Client{Timeout: 10 * time.Second},
	}
}

// Upsert sends the customer form to POST {base}/customers. The endpoint
// creates the account if absent and returns the existing one otherwise, so
// resubmitting the same form is safe.
func (c *CustomerClient) Upsert(ctx context.Context, form domain.CustomerForm) (*CustomerResult, error) {
	body, err := json.Marshal(form)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/customers", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("customer upsert: %w", err)
	}
	defer resp.Body.Close()

	var payload struct {
		Message           string `json:"message"`
		TemporaryPassword string `json:"temporaryPassword"`
		Error             string `json:"error"`
	}
	decodeErr := json.NewDecoder(resp.Body).Decode(&payload)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{Status: resp.StatusCode, Message: payload.Error}
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("customer upsert: decode response: %w", decodeErr)
	}
	if payload.Error != "" {
		return nil, &APIError{Status: resp.StatusCode, Message: payload.Error}
	}
	return &CustomerResult{
		Message:           payload.Message,
		TemporaryPassword: payload.TemporaryPassword,
	}, nil
}
