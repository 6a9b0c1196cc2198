package cart

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"

	"betternotes/internal/domain"
	"betternotes/internal/session"
)

// Service loads a session's cart, runs one pure transition, and persists the
// result. Storage problems on load never surface to the caller: a missing or
// malformed cart falls back to empty so the page always renders.
type Service struct {
	store  session.Store
	tiers  domain.TierTable
	logger *log.Logger
}

func New(store session.Store, tiers domain.TierTable, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{store: store, tiers: tiers, logger: logger}
}

// Load returns the session's cart, or the empty cart when nothing valid is
// stored. Deserialization errors are logged and swallowed.
func (s *Service) Load(ctx context.Context, sessionID string) domain.Cart {
	raw, err := s.store.Get(ctx, sessionID, session.KeyCart)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Printf("cart: load session=%s error=%v", sessionID, err)
		}
		return Empty()
	}
	var cart domain.Cart
	if err := json.Unmarshal(raw, &cart); err != nil {
		s.logger.Printf("cart: discarding malformed stored cart session=%s error=%v", sessionID, err)
		return Empty()
	}
	if cart.Lines == nil {
		cart.Lines = []domain.CartLine{}
	}
	return cart
}

func (s *Service) Add(ctx context.Context, sessionID string, note domain.Note) (domain.Cart, error) {
	return s.apply(ctx, sessionID, func(c domain.Cart) domain.Cart {
		return Add(c, note, s.tiers)
	})
}

func (s *Service) Remove(ctx context.Context, sessionID, noteID string) (domain.Cart, error) {
	return s.apply(ctx, sessionID, func(c domain.Cart) domain.Cart {
		return Remove(c, noteID, s.tiers)
	})
}

func (s *Service) SetQuantity(ctx context.Context, sessionID, noteID string, quantity int) (domain.Cart, error) {
	return s.apply(ctx, sessionID, func(c domain.Cart) domain.Cart {
		return SetQuantity(c, noteID, quantity, s.tiers)
	})
}

func (s *Service) Clear(ctx context.Context, sessionID string) (domain.Cart, error) {
	return s.apply(ctx, sessionID, Clear)
}

func (s *Service) ApplyCoupon(ctx context.Context, sessionID, code string, percentage int) (domain.Cart, error) {
	return s.apply(ctx, sessionID, func(c domain.Cart) domain.Cart {
		return ApplyCoupon(c, code, percentage, s.tiers)
	})
}

func (s *Service) RemoveCoupon(ctx context.Context, sessionID string) (domain.Cart, error) {
	return s.apply(ctx, sessionID, func(c domain.Cart) domain.Cart {
		return RemoveCoupon(c, s.tiers)
	})
}

// Tiers exposes the configured tier table for checkout messaging.
func (s *Service) Tiers() domain.TierTable {
	return s.tiers
}

func (s *Service) apply(ctx context.Context, sessionID string, transition func(domain.Cart) domain.Cart) (domain.Cart, error) {
	cart := transition(s.Load(ctx, sessionID))
	raw, err := json.Marshal(cart)
	if err != nil {
		return cart, err
	}
	if err := s.store.Set(ctx, sessionID, session.KeyCart, raw); err != nil {
		s.logger.Printf("cart: persist session=%s error=%v", sessionID, err)
		return cart, err
	}
	return cart, nil
}
