package domain

// CartLine pairs a note snapshot with a quantity. The snapshot is the note as
// it existed when added; later catalog edits do not reach into open carts.
type CartLine struct {
	Note     Note `json:"note"`
	Quantity int  `json:"quantity"`
}

// Cart is the aggregate persisted per session. Every derived field (subtotal,
// both discounts, total) is recomputed from the lines on each mutation and is
// never written independently.
type Cart struct {
	Lines                 []CartLine `json:"lines"`
	SubtotalCents         int64      `json:"subtotalCents"`
	DiscountCode          string     `json:"discountCode,omitempty"`
	DiscountPercent       int        `json:"discountPercent,omitempty"`
	CouponDiscountCents   int64      `json:"couponDiscountCents"`
	QuantityDiscountCents int64      `json:"quantityDiscountCents"`
	TotalCents            int64      `json:"totalCents"`
}

// ItemCount is the sum of all line quantities.
func (c Cart) ItemCount() int {
	n := 0
	for _, line := range c.Lines {
		n += line.Quantity
	}
	return n
}

// DiscountTier grants a flat discount once the cart holds at least MinItems
// items. The table is a step function: crossing a threshold grants the full
// tier amount immediately.
type DiscountTier struct {
	MinItems    int   `json:"minItems"`
	AmountCents int64 `json:"amountCents"`
}

type TierTable []DiscountTier

// DiscountFor returns the amount of the highest tier whose minimum is at or
// below count, or 0 below the lowest tier.
func (t TierTable) DiscountFor(count int) int64 {
	var best int64
	for _, tier := range t {
		if count >= tier.MinItems && tier.AmountCents > best {
			best = tier.AmountCents
		}
	}
	return best
}
