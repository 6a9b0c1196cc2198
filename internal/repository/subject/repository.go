package subject

import (
	"context"

	"betternotes/internal/domain"
)

type Repository interface {
	List(ctx context.Context) ([]domain.Subject, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Subject, error)
}
