package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"monsavonvert/internal/domain"
	"monsavonvert/internal/repository/order"
	"monsavonvert/internal/repository/session"
	cartsvc "monsavonvert/internal/service/cart"
	"monsavonvert/internal/upstream"
)

// User-facing modal texts, as the storefront shows them.
const (
	titleIncomplete     = "Informations incomplètes"
	titleAccountCreated = "Compte créé"
	titleInformation    = "Information"
	titleError          = "Erreur"

	msgIncomplete      = "Veuillez remplir tous les champs obligatoires et accepter les conditions générales."
	msgUpstreamFailure = "Une erreur est survenue. Veuillez réessayer."
	msgPaymentFailure  = "Le paiement n'a pas pu être initialisé. Veuillez réessayer."
	msgEmptyCart       = "Votre panier est vide."
)

// CustomerAPI is the external create-or-find customer endpoint.
type CustomerAPI interface {
	Upsert(ctx context.Context, form domain.CustomerForm) (*upstream.CustomerResult, error)
}

// PaymentAPI is the external payment-session endpoint.
type PaymentAPI interface {
	CreateSession(ctx context.Context, in upstream.SessionInput) (*upstream.PaymentSession, error)
}

// Service drives the three-step checkout for every active session.
type Service struct {
	mu    sync.Mutex
	flows map[string]*Flow

	store     session.Store
	carts     *cartsvc.Service
	orders    order.Repository
	customers CustomerAPI
	payments  PaymentAPI
	logger    *log.Logger
}

func New(store session.Store, carts *cartsvc.Service, orders order.Repository, customers CustomerAPI, payments PaymentAPI, logger *log.Logger) *Service {
	return &Service{
		flows:     make(map[string]*Flow),
		store:     store,
		carts:     carts,
		orders:    orders,
		customers: customers,
		payments:  payments,
		logger:    logger,
	}
}

// Start opens a fresh flow for the session, discarding any previous one.
func (s *Service) Start(ctx context.Context, sessionID string) (State, error) {
	f := newFlow(sessionID)
	s.mu.Lock()
	if old, ok := s.flows[sessionID]; ok {
		old.cancel()
	}
	s.flows[sessionID] = f
	s.mu.Unlock()
	return s.snapshot(ctx, f)
}

// State returns the current snapshot of the session's flow.
func (s *Service) State(ctx context.Context, sessionID string) (State, error) {
	f, err := s.flow(sessionID)
	if err != nil {
		return State{}, err
	}
	return s.snapshot(ctx, f)
}

// SetField updates one form field and re-validates the whole form.
func (s *Service) SetField(ctx context.Context, sessionID, name, value string) (State, error) {
	f, err := s.flow(sessionID)
	if err != nil {
		return State{}, err
	}
	f.mu.Lock()
	err = f.form.SetField(name, value)
	f.mu.Unlock()
	if err != nil {
		return State{}, err
	}
	return s.snapshot(ctx, f)
}

// SetTermsAccepted flips the terms checkbox.
func (s *Service) SetTermsAccepted(ctx context.Context, sessionID string, accepted bool) (State, error) {
	f, err := s.flow(sessionID)
	if err != nil {
		return State{}, err
	}
	f.mu.Lock()
	f.form.SetTermsAccepted(accepted)
	f.mu.Unlock()
	return s.snapshot(ctx, f)
}

// SelectShipping changes the delivery method. Exactly one is active at a time;
// standard is the default from the start of the flow.
func (s *Service) SelectShipping(ctx context.Context, sessionID string, method domain.ShippingMethod) (State, error) {
	f, err := s.flow(sessionID)
	if err != nil {
		return State{}, err
	}
	if !method.Valid() {
		return State{}, ErrUnknownShippingMethod
	}
	f.mu.Lock()
	f.shipping = method
	f.mu.Unlock()
	return s.snapshot(ctx, f)
}

// Continue attempts the forward transition from the current step.
//
// Leaving the information step is the guarded one: an invalid form blocks with
// a modal and no network call; a valid form triggers the customer upsert, and
// any success response (fresh account, existing account, or silent) advances
// to shipping while any failure keeps the shopper on the information step.
// Leaving the shipping step is unconditional.
func (s *Service) Continue(ctx context.Context, sessionID string) (State, error) {
	f, err := s.flow(sessionID)
	if err != nil {
		return State{}, err
	}

	f.mu.Lock()
	switch f.step {
	case domain.StepShipping:
		f.step = domain.StepPayment
		f.mu.Unlock()
		return s.snapshot(ctx, f)
	case domain.StepPayment:
		f.mu.Unlock()
		st, serr := s.snapshot(ctx, f)
		if serr != nil {
			return State{}, serr
		}
		return st, ErrWrongStep
	}

	if f.inFlight {
		f.mu.Unlock()
		return State{}, ErrSubmitInFlight
	}
	if !f.form.Valid() {
		f.modal.Show(titleIncomplete, msgIncomplete)
		f.mu.Unlock()
		st, serr := s.snapshot(ctx, f)
		if serr != nil {
			return State{}, serr
		}
		return st, ErrFormInvalid
	}
	f.inFlight = true
	form := f.form.Data()
	callCtx := f.ctx
	f.mu.Unlock()

	res, upsertErr := s.customers.Upsert(callCtx, form)

	f.mu.Lock()
	f.inFlight = false
	if upsertErr != nil {
		f.modal.Show(titleError, upstreamMessage(upsertErr, msgUpstreamFailure))
		f.mu.Unlock()
		st, serr := s.snapshot(ctx, f)
		if serr != nil {
			return State{}, serr
		}
		return st, upsertErr
	}
	switch {
	case res.TemporaryPassword != "":
		f.modal.Show(titleAccountCreated, "Votre compte a été créé. Mot de passe temporaire : "+res.TemporaryPassword)
	case res.Message != "":
		f.modal.Show(titleInformation, res.Message)
	}
	f.step = domain.StepShipping
	f.mu.Unlock()
	return s.snapshot(ctx, f)
}

// Back moves one step towards the information step. Never a side effect,
// never a network call.
func (s *Service) Back(ctx context.Context, sessionID string) (State, error) {
	f, err := s.flow(sessionID)
	if err != nil {
		return State{}, err
	}
	f.mu.Lock()
	if f.step > domain.StepInformation {
		f.step--
	}
	f.mu.Unlock()
	return s.snapshot(ctx, f)
}

// Edit jumps directly back to an earlier step, as the per-section edit links
// on the payment review do. Forward jumps are refused.
func (s *Service) Edit(ctx context.Context, sessionID string, target domain.CheckoutStep) (State, error) {
	f, err := s.flow(sessionID)
	if err != nil {
		return State{}, err
	}
	if !target.Valid() {
		return State{}, ErrWrongStep
	}
	f.mu.Lock()
	if target >= f.step {
		f.mu.Unlock()
		return State{}, ErrWrongStep
	}
	f.step = target
	f.mu.Unlock()
	return s.snapshot(ctx, f)
}

// Pay is the terminal action: snapshot the order, persist it, request a
// payment session and hand its ID back for the provider redirect. On success
// the cart is cleared and the flow discarded; on any failure the shopper
// stays on the payment step with the action retryable.
func (s *Service) Pay(ctx context.Context, sessionID string) (*upstream.PaymentSession, error) {
	f, err := s.flow(sessionID)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	if f.step != domain.StepPayment {
		f.mu.Unlock()
		return nil, ErrWrongStep
	}
	if f.inFlight {
		f.mu.Unlock()
		return nil, ErrSubmitInFlight
	}
	f.inFlight = true
	form := f.form.Data()
	method := f.shipping
	callCtx := f.ctx
	f.mu.Unlock()

	fail := func(msg string, cause error) (*upstream.PaymentSession, error) {
		f.mu.Lock()
		f.inFlight = false
		f.modal.Show(titleError, msg)
		f.mu.Unlock()
		return nil, cause
	}

	cart, err := s.carts.Load(ctx, sessionID)
	if err != nil {
		return fail(msgPaymentFailure, err)
	}
	if len(cart.Items) == 0 {
		return fail(msgEmptyCart, ErrEmptyCart)
	}

	pending := domain.PendingOrder{
		ID:             uuid.NewString(),
		SessionID:      sessionID,
		Items:          cart.Items,
		Customer:       form,
		ShippingMethod: method,
		ShippingCents:  ShippingCents(cart, method),
		TotalCents:     TotalCents(cart, method),
		CreatedAt:      time.Now().UTC(),
	}

	data, err := json.Marshal(pending)
	if err != nil {
		return fail(msgPaymentFailure, err)
	}
	if err := s.store.Set(ctx, sessionID, session.KeyPendingOrder, data); err != nil {
		return fail(msgPaymentFailure, err)
	}
	if err := s.orders.Create(ctx, pending); err != nil {
		return fail(msgPaymentFailure, err)
	}

	paySession, err := s.payments.CreateSession(callCtx, sessionInput(pending))
	if err != nil {
		return fail(upstreamMessage(err, msgPaymentFailure), err)
	}

	if err := s.carts.Clear(ctx, sessionID); err != nil {
		s.logger.Printf("clear cart for session %s: %v", sessionID, err)
	}
	s.discard(sessionID)
	return paySession, nil
}

// Abandon discards the session's flow; any in-flight upstream call is
// cancelled with it.
func (s *Service) Abandon(sessionID string) error {
	s.mu.Lock()
	f, ok := s.flows[sessionID]
	if ok {
		f.cancel()
		delete(s.flows, sessionID)
	}
	s.mu.Unlock()
	if !ok {
		return ErrNoActiveFlow
	}
	return nil
}

// DismissNotice clears the session's modal.
func (s *Service) DismissNotice(ctx context.Context, sessionID string) (State, error) {
	f, err := s.flow(sessionID)
	if err != nil {
		return State{}, err
	}
	f.modal.Dismiss()
	return s.snapshot(ctx, f)
}

func (s *Service) flow(sessionID string) (*Flow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.flows[sessionID]
	if !ok {
		return nil, ErrNoActiveFlow
	}
	return f, nil
}

func (s *Service) discard(sessionID string) {
	s.mu.Lock()
	if f, ok := s.flows[sessionID]; ok {
		f.cancel()
		delete(s.flows, sessionID)
	}
	s.mu.Unlock()
}

func (s *Service) snapshot(ctx context.Context, f *Flow) (State, error) {
	cart, err := s.carts.Load(ctx, f.sessionID)
	if err != nil {
		return State{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshotLocked(cart), nil
}

func sessionInput(o domain.PendingOrder) upstream.SessionInput {
	items := make([]upstream.SessionItem, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, upstream.SessionItem{
			ID:       item.ID,
			Name:     item.Name,
			Price:    item.PriceCents,
			Quantity: item.Quantity,
			Image:    item.Image,
		})
	}
	return upstream.SessionInput{
		Items: items,
		Shipping: upstream.SessionShipping{
			Name: o.Customer.FirstName + " " + o.Customer.LastName,
			Address: upstream.SessionAddress{
				Line1:      o.Customer.Address,
				PostalCode: o.Customer.PostalCode,
				City:       o.Customer.City,
				Country:    o.Customer.Country,
			},
		},
		ShippingCost:   o.ShippingCents,
		ShippingMethod: o.ShippingMethod.String(),
		Email:          o.Customer.Email,
	}
}

func upstreamMessage(err error, fallback string) string {
	var apiErr *upstream.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
