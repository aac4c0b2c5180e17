package checkout

import "errors"

var (
	// ErrNoActiveFlow is returned when no checkout has been started for the session.
	ErrNoActiveFlow = errors.New("no active checkout")
	// ErrFormInvalid blocks the information step while the form is incomplete or malformed.
	ErrFormInvalid = errors.New("form invalid")
	// ErrSubmitInFlight rejects a duplicate submit while an upstream call is running.
	ErrSubmitInFlight = errors.New("submit already in flight")
	// ErrWrongStep is returned for an action not available on the current step.
	ErrWrongStep = errors.New("action not available on this step")
	// ErrEmptyCart blocks payment when there is nothing to pay for.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrUnknownField is returned for a form field name the checkout does not know.
	ErrUnknownField = errors.New("unknown field")
	// ErrUnknownShippingMethod is returned for a shipping method the shop does not offer.
	ErrUnknownShippingMethod = errors.New("unknown shipping method")
)
