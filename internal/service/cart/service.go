package cart

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"monsavonvert/internal/domain"
	"monsavonvert/internal/repository/session"
)

// Service owns the per-session cart. Every mutation writes the full cart back
// to the session store before returning, so the stored copy is never stale.
type Service struct {
	store session.Store
}

func New(store session.Store) *Service {
	return &Service{store: store}
}

// Load returns the stored cart. An absent key or a malformed stored payload
// degrades to an empty cart; a corrupt cart must never break the storefront.
func (s *Service) Load(ctx context.Context, sessionID string) (domain.Cart, error) {
	data, err := s.store.Get(ctx, sessionID, session.KeyCart)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Cart{}, nil
		}
		return domain.Cart{}, err
	}
	var cart domain.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return domain.Cart{}, nil
	}
	return cart, nil
}

// Add merges the item into the cart: an existing product ID increments its
// quantity, a new one is appended. The item's price is taken as-is; there is
// no re-pricing of lines already in the cart.
func (s *Service) Add(ctx context.Context, sessionID string, item domain.CartItem) (domain.Cart, error) {
	if strings.TrimSpace(item.ID) == "" {
		return domain.Cart{}, errors.New("product id required")
	}
	if item.Quantity <= 0 {
		return domain.Cart{}, errors.New("quantity must be positive")
	}
	if item.PriceCents < 0 {
		return domain.Cart{}, errors.New("price must not be negative")
	}

	cart, err := s.Load(ctx, sessionID)
	if err != nil {
		return domain.Cart{}, err
	}
	if i := cart.IndexOf(item.ID); i >= 0 {
		cart.Items[i].Quantity += item.Quantity
	} else {
		cart.Items = append(cart.Items, item)
	}
	if err := s.persist(ctx, sessionID, cart); err != nil {
		return domain.Cart{}, err
	}
	return cart, nil
}

// SetQuantity replaces a line's quantity; zero removes the line.
func (s *Service) SetQuantity(ctx context.Context, sessionID, productID string, quantity int) (domain.Cart, error) {
	if quantity < 0 {
		return domain.Cart{}, errors.New("quantity must not be negative")
	}

	cart, err := s.Load(ctx, sessionID)
	if err != nil {
		return domain.Cart{}, err
	}
	i := cart.IndexOf(productID)
	if i < 0 {
		return domain.Cart{}, domain.ErrNotFound
	}
	if quantity == 0 {
		cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
	} else {
		cart.Items[i].Quantity = quantity
	}
	if err := s.persist(ctx, sessionID, cart); err != nil {
		return domain.Cart{}, err
	}
	return cart, nil
}

// Clear drops the stored cart, used after a completed order.
func (s *Service) Clear(ctx context.Context, sessionID string) error {
	return s.store.Delete(ctx, sessionID, session.KeyCart)
}

func (s *Service) persist(ctx context.Context, sessionID string, cart domain.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, sessionID, session.KeyCart, data)
}
