package catalog

import (
	"context"

	"betternotes/internal/domain"
)

type noteRepo interface {
	List(ctx context.Context, filters domain.NoteFilters) ([]domain.Note, error)
	ListFeatured(ctx context.Context, limit int) ([]domain.Note, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Note, error)
	GetByID(ctx context.Context, id string) (*domain.Note, error)
	Years(ctx context.Context) ([]string, error)
	YearSubjects(ctx context.Context) ([]domain.YearSubjects, error)
}

type subjectRepo interface {
	List(ctx context.Context) ([]domain.Subject, error)
}

type slideshowRepo interface {
	GetActive(ctx context.Context) (*domain.Slideshow, error)
}

// Service is the read-only catalog facade over the content store.
type Service struct {
	notes      noteRepo
	subjects   subjectRepo
	slideshows slideshowRepo
}

func New(notes noteRepo, subjects subjectRepo, slideshows slideshowRepo) *Service {
	return &Service{notes: notes, subjects: subjects, slideshows: slideshows}
}

func (s *Service) ListNotes(ctx context.Context, filters domain.NoteFilters) ([]domain.Note, error) {
	return s.notes.List(ctx, filters)
}

func (s *Service) FeaturedNotes(ctx context.Context) ([]domain.Note, error) {
	return s.notes.ListFeatured(ctx, 6)
}

func (s *Service) NoteBySlug(ctx context.Context, slug string) (*domain.Note, error) {
	return s.notes.GetBySlug(ctx, slug)
}

func (s *Service) NoteByID(ctx context.Context, id string) (*domain.Note, error) {
	return s.notes.GetByID(ctx, id)
}

func (s *Service) Subjects(ctx context.Context) ([]domain.Subject, error) {
	return s.subjects.List(ctx)
}

func (s *Service) Years(ctx context.Context) ([]string, error) {
	return s.notes.Years(ctx)
}

func (s *Service) YearSubjects(ctx context.Context) ([]domain.YearSubjects, error) {
	return s.notes.YearSubjects(ctx)
}

func (s *Service) ActiveSlideshow(ctx context.Context) (*domain.Slideshow, error) {
	return s.slideshows.GetActive(ctx)
}
