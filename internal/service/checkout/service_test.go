package checkout

import (
	"context"
	"strings"
	"testing"

	"betternotes/internal/domain"
)

var testTiers = domain.TierTable{
	{MinItems: 2, AmountCents: 50},
	{MinItems: 4, AmountCents: 150},
	{MinItems: 6, AmountCents: 200},
	{MinItems: 8, AmountCents: 250},
}

type stubCarts struct {
	cart    domain.Cart
	cleared bool
}

func (s *stubCarts) Load(_ context.Context, _ string) domain.Cart {
	return s.cart
}

func (s *stubCarts) Clear(_ context.Context, _ string) (domain.Cart, error) {
	s.cleared = true
	return domain.Cart{Lines: []domain.CartLine{}}, nil
}

func (s *stubCarts) Tiers() domain.TierTable {
	return testTiers
}

func twoNoteCart() domain.Cart {
	return domain.Cart{
		Lines: []domain.CartLine{
			{Note: domain.Note{ID: "a", Title: "Anatomy", PriceCents: 300}, Quantity: 1},
			{Note: domain.Note{ID: "b", Title: "Physiology", PriceCents: 200}, Quantity: 1},
		},
		SubtotalCents:         500,
		QuantityDiscountCents: 50,
		TotalCents:            450,
	}
}

func TestPlaceOrderClearsCartAndBuildsHandoff(t *testing.T) {
	carts := &stubCarts{cart: twoNoteCart()}
	svc := New(carts, "@betternotes")

	order, err := svc.PlaceOrder(context.Background(), "s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !carts.cleared {
		t.Fatal("expected cart to be cleared after placing the order")
	}
	if order.TelegramHandle != "@betternotes" {
		t.Fatalf("unexpected handle %q", order.TelegramHandle)
	}
	if order.TelegramURL != "https://t.me/betternotes" {
		t.Fatalf("unexpected url %q", order.TelegramURL)
	}
	for _, want := range []string{"Anatomy", "Physiology", "Subtotal: 500", "Quantity discount: -50", "Total: 450"} {
		if !strings.Contains(order.Summary, want) {
			t.Fatalf("summary missing %q:\n%s", want, order.Summary)
		}
	}
}

func TestPlaceOrderEmptyCartRejected(t *testing.T) {
	carts := &stubCarts{cart: domain.Cart{}}
	svc := New(carts, "@betternotes")
	if _, err := svc.PlaceOrder(context.Background(), "s1"); err == nil {
		t.Fatal("expected error for empty cart")
	}
	if carts.cleared {
		t.Fatal("empty cart must not be cleared")
	}
}

func TestSummaryIncludesCoupon(t *testing.T) {
	cart := twoNoteCart()
	cart.DiscountCode = "welcome20"
	cart.DiscountPercent = 20
	cart.CouponDiscountCents = 100
	cart.TotalCents = 350

	summary := Summary(cart)
	if !strings.Contains(summary, "Coupon welcome20 (20%): -100") {
		t.Fatalf("summary missing coupon line:\n%s", summary)
	}
	if !strings.Contains(summary, "Total: 350") {
		t.Fatalf("summary missing total:\n%s", summary)
	}
}

func TestOfferForEmptyCart(t *testing.T) {
	if offer := OfferFor(0, testTiers); offer != nil {
		t.Fatalf("expected no offer for empty cart, got %+v", offer)
	}
}

func TestOfferForBelowFirstTier(t *testing.T) {
	offer := OfferFor(1, testTiers)
	if offer == nil || offer.CurrentDiscount != 0 {
		t.Fatalf("unexpected offer %+v", offer)
	}
	if offer.NextTierItems != 2 || offer.ItemsNeeded != 1 {
		t.Fatalf("expected next tier 2 needing 1, got %+v", offer)
	}
}

func TestOfferForMidTier(t *testing.T) {
	offer := OfferFor(3, testTiers)
	if offer == nil || offer.CurrentDiscount != 50 {
		t.Fatalf("unexpected offer %+v", offer)
	}
	if offer.NextTierItems != 4 || offer.ItemsNeeded != 1 {
		t.Fatalf("expected next tier 4 needing 1, got %+v", offer)
	}
}

func TestOfferForMaxTier(t *testing.T) {
	offer := OfferFor(9, testTiers)
	if offer == nil || offer.CurrentDiscount != 250 {
		t.Fatalf("unexpected offer %+v", offer)
	}
	if offer.NextTierItems != 0 || offer.ItemsNeeded != 0 {
		t.Fatalf("expected no next tier at max, got %+v", offer)
	}
}
