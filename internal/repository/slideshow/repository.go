package slideshow

import (
	"context"

	"betternotes/internal/domain"
)

type Repository interface {
	GetActive(ctx context.Context) (*domain.Slideshow, error)
}
