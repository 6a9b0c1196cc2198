package note

import (
	"context"

	"betternotes/internal/domain"
)

type Repository interface {
	List(ctx context.Context, filters domain.NoteFilters) ([]domain.Note, error)
	ListFeatured(ctx context.Context, limit int) ([]domain.Note, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Note, error)
	GetByID(ctx context.Context, id string) (*domain.Note, error)
	Years(ctx context.Context) ([]string, error)
	YearSubjects(ctx context.Context) ([]domain.YearSubjects, error)
}
