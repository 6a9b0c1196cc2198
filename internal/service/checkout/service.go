package checkout

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"betternotes/internal/domain"
)

type cartService interface {
	Load(ctx context.Context, sessionID string) domain.Cart
	Clear(ctx context.Context, sessionID string) (domain.Cart, error)
	Tiers() domain.TierTable
}

// Service turns a cart into the out-of-band messaging handoff: a formatted
// order summary plus the contact handle. No order is recorded anywhere;
// settlement happens over the messaging channel.
type Service struct {
	carts          cartService
	telegramHandle string
}

func New(carts cartService, telegramHandle string) *Service {
	return &Service{carts: carts, telegramHandle: telegramHandle}
}

// Order is the confirmation payload returned after placing an order.
type Order struct {
	Summary        string `json:"summary"`
	TelegramHandle string `json:"telegramHandle"`
	TelegramURL    string `json:"telegramUrl"`
}

// Offer describes the tier-progress message shown on the checkout page.
type Offer struct {
	Message         string `json:"message"`
	SubMessage      string `json:"subMessage,omitempty"`
	CurrentDiscount int64  `json:"currentDiscountCents,omitempty"`
	NextTierItems   int    `json:"nextTierItems,omitempty"`
	ItemsNeeded     int    `json:"itemsNeeded,omitempty"`
}

// PlaceOrder formats the summary for the current cart, clears it, and returns
// the handoff. An empty cart yields an error so the page can block the button.
func (s *Service) PlaceOrder(ctx context.Context, sessionID string) (*Order, error) {
	cart := s.carts.Load(ctx, sessionID)
	if len(cart.Lines) == 0 {
		return nil, fmt.Errorf("cart is empty")
	}
	summary := Summary(cart)
	if _, err := s.carts.Clear(ctx, sessionID); err != nil {
		return nil, err
	}
	return &Order{
		Summary:        summary,
		TelegramHandle: s.telegramHandle,
		TelegramURL:    "https://t.me/" + strings.TrimPrefix(s.telegramHandle, "@"),
	}, nil
}

// CurrentOffer returns the tier-progress message for the session's cart, or
// nil when the cart is empty.
func (s *Service) CurrentOffer(ctx context.Context, sessionID string) *Offer {
	cart := s.carts.Load(ctx, sessionID)
	return OfferFor(cart.ItemCount(), s.carts.Tiers())
}

// OfferFor builds the promotional message for an item count against the tier
// table: how much is unlocked now and what the next threshold grants.
func OfferFor(itemCount int, tiers domain.TierTable) *Offer {
	if itemCount == 0 || len(tiers) == 0 {
		return nil
	}

	sorted := make(domain.TierTable, len(tiers))
	copy(sorted, tiers)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].MinItems < sorted[j].MinItems })

	current := tiers.DiscountFor(itemCount)
	var next *domain.DiscountTier
	for i := range sorted {
		if sorted[i].MinItems > itemCount {
			next = &sorted[i]
			break
		}
	}

	if next == nil {
		return &Offer{
			Message:         "Incredible!",
			SubMessage:      fmt.Sprintf("You've unlocked our maximum discount with %d notes! You're getting %d off your order!", itemCount, current),
			CurrentDiscount: current,
		}
	}

	needed := next.MinItems - itemCount
	if current == 0 {
		return &Offer{
			Message:       "You are so close to a discount!",
			SubMessage:    fmt.Sprintf("Add %d more and get %d off!", needed, next.AmountCents),
			NextTierItems: next.MinItems,
			ItemsNeeded:   needed,
		}
	}
	return &Offer{
		Message:         "Great choice!",
		SubMessage:      fmt.Sprintf("You've unlocked a %d discount with %d notes! Add %d more = %d notes and get %d off!", current, itemCount, needed, next.MinItems, next.AmountCents),
		CurrentDiscount: current,
		NextTierItems:   next.MinItems,
		ItemsNeeded:     needed,
	}
}

// Summary renders the plain-text order the buyer pastes into the chat.
func Summary(cart domain.Cart) string {
	var b strings.Builder
	b.WriteString("Order summary\n")
	for _, line := range cart.Lines {
		fmt.Fprintf(&b, "- %s x%d: %d\n", line.Note.Title, line.Quantity, line.Note.PriceCents*int64(line.Quantity))
	}
	fmt.Fprintf(&b, "Subtotal: %d\n", cart.SubtotalCents)
	if cart.QuantityDiscountCents > 0 {
		fmt.Fprintf(&b, "Quantity discount: -%d\n", cart.QuantityDiscountCents)
	}
	if cart.DiscountCode != "" {
		fmt.Fprintf(&b, "Coupon %s (%d%%): -%d\n", cart.DiscountCode, cart.DiscountPercent, cart.CouponDiscountCents)
	}
	fmt.Fprintf(&b, "Total: %d", cart.TotalCents)
	return b.String()
}
