package discount

import (
	"context"
	"time"

	"betternotes/internal/domain"
)

type Repository interface {
	// ListActive returns codes that are active and inside their validity
	// window at the given instant, newest expiry first.
	ListActive(ctx context.Context, now time.Time) ([]domain.DiscountCode, error)
	// GetValidByCode returns the code only when it is usable at the given
	// instant (active, in window, below its usage limit).
	GetValidByCode(ctx context.Context, code string, now time.Time) (*domain.DiscountCode, error)
}
