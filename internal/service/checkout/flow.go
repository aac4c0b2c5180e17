package checkout

import (
	"context"
	"sync"

	"monsavonvert/internal/domain"
	"monsavonvert/internal/notify"
)

// Flow is the per-session checkout state: the step cursor, the form, the
// shipping selection and the modal. It lives from Start until payment handoff
// or abandon; its context is cancelled when the flow is discarded so in-flight
// upstream calls die with it.
type Flow struct {
	mu        sync.Mutex
	sessionID string
	step      domain.CheckoutStep
	form      *Form
	shipping  domain.ShippingMethod
	modal     *notify.Modal
	inFlight  bool
	ctx       context.Context
	cancel    context.CancelFunc
}

func newFlow(sessionID string) *Flow {
	ctx, cancel := context.WithCancel(context.Background())
	return &Flow{
		sessionID: sessionID,
		step:      domain.StepInformation,
		form:      NewForm(),
		shipping:  domain.ShippingStandard,
		modal:     notify.NewModal(),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// State is a render-ready snapshot of the flow plus the cart totals.
type State struct {
	Step            domain.CheckoutStep   `json:"step"`
	Form            domain.CustomerForm   `json:"form"`
	FieldErrors     domain.FieldErrors    `json:"fieldErrors"`
	FormValid       bool                  `json:"formValid"`
	ShippingMethod  domain.ShippingMethod `json:"shippingMethod"`
	SubtotalCents   int64                 `json:"subtotalCents"`
	ShippingCents   int64                 `json:"shippingCents"`
	TotalCents      int64                 `json:"totalCents"`
	SubtotalDisplay string                `json:"subtotalDisplay"`
	ShippingDisplay string                `json:"shippingDisplay"`
	TotalDisplay    string                `json:"totalDisplay"`
	Notice          notify.Notice         `json:"notice"`
}

// snapshotLocked builds the State; the caller holds f.mu.
func (f *Flow) snapshotLocked(cart domain.Cart) State {
	subtotal := SubtotalCents(cart)
	shipping := ShippingCents(cart, f.shipping)
	return State{
		Step:            f.step,
		Form:            f.form.Data(),
		FieldErrors:     f.form.Errors(),
		FormValid:       f.form.Valid(),
		ShippingMethod:  f.shipping,
		SubtotalCents:   subtotal,
		ShippingCents:   shipping,
		TotalCents:      subtotal + shipping,
		SubtotalDisplay: FormatEuros(subtotal),
		ShippingDisplay: FormatEuros(shipping),
		TotalDisplay:    FormatEuros(subtotal + shipping),
		Notice:          f.modal.Current(),
	}
}
