package domain

import "time"

type DiscountCode struct {
	ID         string    `json:"id"`
	Code       string    `json:"code"`
	Percentage int       `json:"discountPercentage"`
	ValidFrom  time.Time `json:"validFrom"`
	ValidUntil time.Time `json:"validUntil"`
	Active     bool      `json:"isActive"`
	UsageLimit *int      `json:"usageLimit,omitempty"`
	UsedCount  int       `json:"usedCount"`
}

// Usable reports whether the code may be applied at the given instant: it must
// be active, inside its validity window, and below its usage limit if one is set.
func (d DiscountCode) Usable(now time.Time) bool {
	if !d.Active {
		return false
	}
	if now.Before(d.ValidFrom) || now.After(d.ValidUntil) {
		return false
	}
	if d.UsageLimit != nil && d.UsedCount >= *d.UsageLimit {
		return false
	}
	return true
}
