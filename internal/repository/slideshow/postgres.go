package slideshow

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"betternotes/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) GetActive(ctx context.Context) (*domain.Slideshow, error) {
	const q = `
SELECT id::text, COALESCE(title, ''), images, is_active, created_at
FROM slideshows
WHERE is_active
ORDER BY created_at DESC
LIMIT 1`
	var (
		s         domain.Slideshow
		rawImages []byte
	)
	err := r.pool.QueryRow(ctx, q).Scan(&s.ID, &s.Title, &rawImages, &s.Active, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("slideshow repo: get active error=%v", err)
		return nil, err
	}
	if len(rawImages) > 0 {
		if err := json.Unmarshal(rawImages, &s.Images); err != nil {
			r.logger.Printf("slideshow repo: malformed images id=%s error=%v", s.ID, err)
		}
	}
	return &s, nil
}
