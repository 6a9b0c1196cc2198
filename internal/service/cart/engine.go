package cart

import "betternotes/internal/domain"

// Pure cart transitions. Each takes the current aggregate and returns the next
// one with every derived field recomputed from the lines; none of them can
// fail, invalid input degrades to a no-op.

// Empty is the zero cart a fresh session starts from.
func Empty() domain.Cart {
	return domain.Cart{Lines: []domain.CartLine{}}
}

// Add appends a single-quantity line for the note. A note already in the cart
// stays at quantity 1 regardless of how often it is re-added.
func Add(cart domain.Cart, note domain.Note, tiers domain.TierTable) domain.Cart {
	lines := cloneLines(cart.Lines)
	found := false
	for i := range lines {
		if lines[i].Note.ID == note.ID {
			lines[i].Quantity = 1
			found = true
			break
		}
	}
	if !found {
		lines = append(lines, domain.CartLine{Note: note, Quantity: 1})
	}
	cart.Lines = lines
	return recompute(cart, tiers)
}

// Remove deletes the line for noteID if present.
func Remove(cart domain.Cart, noteID string, tiers domain.TierTable) domain.Cart {
	lines := make([]domain.CartLine, 0, len(cart.Lines))
	for _, line := range cart.Lines {
		if line.Note.ID != noteID {
			lines = append(lines, line)
		}
	}
	cart.Lines = lines
	return recompute(cart, tiers)
}

// SetQuantity sets a line's quantity directly; zero or negative behaves as
// Remove. Only Add enforces the single-unit rule.
func SetQuantity(cart domain.Cart, noteID string, quantity int, tiers domain.TierTable) domain.Cart {
	if quantity <= 0 {
		return Remove(cart, noteID, tiers)
	}
	lines := cloneLines(cart.Lines)
	for i := range lines {
		if lines[i].Note.ID == noteID {
			lines[i].Quantity = quantity
		}
	}
	cart.Lines = lines
	return recompute(cart, tiers)
}

// Clear resets to the empty cart.
func Clear(_ domain.Cart) domain.Cart {
	return Empty()
}

// ApplyCoupon stores the code and percentage and recomputes both discounts.
func ApplyCoupon(cart domain.Cart, code string, percentage int, tiers domain.TierTable) domain.Cart {
	cart.DiscountCode = code
	cart.DiscountPercent = percentage
	return recompute(cart, tiers)
}

// RemoveCoupon drops the coupon portion only; the quantity-tier discount is
// untouched.
func RemoveCoupon(cart domain.Cart, tiers domain.TierTable) domain.Cart {
	cart.DiscountCode = ""
	cart.DiscountPercent = 0
	return recompute(cart, tiers)
}

func recompute(cart domain.Cart, tiers domain.TierTable) domain.Cart {
	var subtotal int64
	for _, line := range cart.Lines {
		subtotal += line.Note.PriceCents * int64(line.Quantity)
	}
	cart.SubtotalCents = subtotal
	cart.QuantityDiscountCents = tiers.DiscountFor(cart.ItemCount())

	cart.CouponDiscountCents = 0
	if cart.DiscountCode != "" {
		cart.CouponDiscountCents = subtotal * int64(cart.DiscountPercent) / 100
	}

	total := subtotal - cart.CouponDiscountCents - cart.QuantityDiscountCents
	if total < 0 {
		total = 0
	}
	cart.TotalCents = total
	return cart
}

func cloneLines(lines []domain.CartLine) []domain.CartLine {
	out := make([]domain.CartLine, len(lines))
	copy(out, lines)
	return out
}
