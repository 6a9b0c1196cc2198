package discount

import (
	"context"
	"errors"
	"io"
	"log"
	"time"

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

func (r *postgresRepo) ListActive(ctx context.Context, now time.Time) ([]domain.DiscountCode, error) {
	const q = `
SELECT id::text, code, percentage, valid_from, valid_until, is_active, usage_limit, used_count
FROM discount_codes
WHERE is_active AND valid_from <= $1 AND valid_until >= $1
ORDER BY valid_until DESC`
	rows, err := r.pool.Query(ctx, q, now)
	if err != nil {
		r.logger.Printf("discount repo: list active error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var codes []domain.DiscountCode
	for rows.Next() {
		var d domain.DiscountCode
		if err := rows.Scan(&d.ID, &d.Code, &d.Percentage, &d.ValidFrom, &d.ValidUntil, &d.Active, &d.UsageLimit, &d.UsedCount); err != nil {
			return nil, err
		}
		codes = append(codes, d)
	}
	return codes, rows.Err()
}

func (r *postgresRepo) GetValidByCode(ctx context.Context, code string, now time.Time) (*domain.DiscountCode, error) {
	const q = `
SELECT id::text, code, percentage, valid_from, valid_until, is_active, usage_limit, used_count
FROM discount_codes
WHERE lower(code) = lower($1)
  AND is_active
  AND valid_from <= $2 AND valid_until >= $2
  AND (usage_limit IS NULL OR used_count < usage_limit)`
	var d domain.DiscountCode
	err := r.pool.QueryRow(ctx, q, code, now).Scan(&d.ID, &d.Code, &d.Percentage, &d.ValidFrom, &d.ValidUntil, &d.Active, &d.UsageLimit, &d.UsedCount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("discount repo: get code=%s error=%v", code, err)
		return nil, err
	}
	return &d, nil
}
