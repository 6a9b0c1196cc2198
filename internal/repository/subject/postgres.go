package subject

import (
	"context"
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

func (r *postgresRepo) List(ctx context.Context) ([]domain.Subject, error) {
	const q = `
SELECT id::text, name, slug, COALESCE(description, '')
FROM subjects
ORDER BY name`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Printf("subject repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var subjects []domain.Subject
	for rows.Next() {
		var s domain.Subject
		if err := rows.Scan(&s.ID, &s.Name, &s.Slug, &s.Description); err != nil {
			return nil, err
		}
		subjects = append(subjects, s)
	}
	return subjects, rows.Err()
}

func (r *postgresRepo) GetBySlug(ctx context.Context, slug string) (*domain.Subject, error) {
	const q = `
SELECT id::text, name, slug, COALESCE(description, '')
FROM subjects
WHERE slug = $1`
	var s domain.Subject
	err := r.pool.QueryRow(ctx, q, slug).Scan(&s.ID, &s.Name, &s.Slug, &s.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("subject repo: get slug=%s error=%v", slug, err)
		return nil, err
	}
	return &s, nil
}
