package discount

import (
	"context"
	"errors"
	"strings"
	"time"

	"betternotes/internal/domain"
)

// ErrInvalidCode is the user-facing rejection for unknown, expired, or
// exhausted discount codes.
var ErrInvalidCode = errors.New("invalid discount code")

type discountRepo interface {
	ListActive(ctx context.Context, now time.Time) ([]domain.DiscountCode, error)
	GetValidByCode(ctx context.Context, code string, now time.Time) (*domain.DiscountCode, error)
}

// fallbackCodes mirrors the simplest deployment variant, which ships without
// a content-store discount document and accepts these two codes only.
var fallbackCodes = map[string]int{
	"student10": 10,
	"welcome20": 20,
}

// Service validates coupon codes against the content store, or against the
// hardcoded fallback table when no store is configured.
type Service struct {
	repo discountRepo
	now  func() time.Time
}

func New(repo discountRepo) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Validate returns the code and percentage to apply, or ErrInvalidCode. The
// cart is never touched here; rejection leaves it unchanged.
func (s *Service) Validate(ctx context.Context, code string) (string, int, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return "", 0, ErrInvalidCode
	}

	if s.repo == nil {
		if pct, ok := fallbackCodes[strings.ToLower(code)]; ok {
			return code, pct, nil
		}
		return "", 0, ErrInvalidCode
	}

	d, err := s.repo.GetValidByCode(ctx, code, s.now())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", 0, ErrInvalidCode
		}
		return "", 0, err
	}
	if !d.Usable(s.now()) {
		return "", 0, ErrInvalidCode
	}
	return d.Code, d.Percentage, nil
}

// ListActive returns the currently redeemable codes for display.
func (s *Service) ListActive(ctx context.Context) ([]domain.DiscountCode, error) {
	if s.repo == nil {
		return nil, nil
	}
	return s.repo.ListActive(ctx, s.now())
}
