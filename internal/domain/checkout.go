package domain

import "time"

// CustomerForm holds the customer-information step of the checkout. Country has
// a default and is not independently required; everything else except
// TermsAccepted is a required text field.
type CustomerForm struct {
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	City          string `json:"city"`
	PostalCode    string `json:"postalCode"`
	Country       string `json:"country"`
	TermsAccepted bool   `json:"termsAccepted"`
}

// FieldErrors maps a form field name to its format-error message. A field with
// no entry is either valid or merely empty; required-but-empty is tracked by
// the form's validity flag, not by an error message.
type FieldErrors map[string]string

// ShippingMethod selects how the order is delivered.
type ShippingMethod string

const (
	ShippingStandard ShippingMethod = "standard"
	ShippingExpress  ShippingMethod = "express"
	ShippingPickup   ShippingMethod = "pickup"
)

// Valid reports whether the method is one of the three offered by the shop.
func (m ShippingMethod) Valid() bool {
	return m == ShippingStandard || m == ShippingExpress || m == ShippingPickup
}

func (m ShippingMethod) String() string {
	return string(m)
}

// CheckoutStep is the cursor over the three checkout stages.
type CheckoutStep int

const (
	StepInformation CheckoutStep = 1
	StepShipping    CheckoutStep = 2
	StepPayment     CheckoutStep = 3
)

func (s CheckoutStep) Valid() bool {
	return s >= StepInformation && s <= StepPayment
}

// String representation (for logging)
func (s CheckoutStep) String() string {
	switch s {
	case StepInformation:
		return "information"
	case StepShipping:
		return "shipping"
	case StepPayment:
		return "payment"
	default:
		return "unknown"
	}
}

// PendingOrder is the snapshot persisted right before the payment handoff. It
// is recovery/confirmation state only and is never mutated after creation.
type PendingOrder struct {
	ID             string         `json:"id"`
	SessionID      string         `json:"sessionId"`
	Items          []CartItem     `json:"items"`
	Customer       CustomerForm   `json:"customer"`
	ShippingMethod ShippingMethod `json:"shippingMethod"`
	ShippingCents  int64          `json:"shippingCents"`
	TotalCents     int64          `json:"totalCents"`
	CreatedAt      time.Time      `json:"createdAt"`
}
