package note

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

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

const noteColumns = `
n.id::text, n.title, n.slug, COALESCE(n.description, ''), n.price_cents, n.original_price_cents,
n.page_count, n.images, n.academic_year, n.tags, n.featured, n.created_at,
s.id::text, s.name, s.slug, COALESCE(s.description, '')`

func (r *postgresRepo) List(ctx context.Context, filters domain.NoteFilters) ([]domain.Note, error) {
	var (
		conds []string
		args  []interface{}
	)
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filters.AcademicYear != "" {
		conds = append(conds, "n.academic_year = "+arg(filters.AcademicYear))
	}
	if filters.Subject != "" {
		conds = append(conds, "s.slug = "+arg(filters.Subject))
	}
	if filters.Search != "" {
		p := arg("%" + filters.Search + "%")
		conds = append(conds, "(n.title ILIKE "+p+" OR n.description ILIKE "+p+")")
	}
	if filters.MinPriceCents != nil {
		conds = append(conds, "n.price_cents >= "+arg(*filters.MinPriceCents))
	}
	if filters.MaxPriceCents != nil {
		conds = append(conds, "n.price_cents <= "+arg(*filters.MaxPriceCents))
	}

	q := `SELECT ` + noteColumns + `
FROM notes n
LEFT JOIN subjects s ON s.id = n.subject_id`
	if len(conds) > 0 {
		q += "\nWHERE " + strings.Join(conds, " AND ")
	}
	q += "\nORDER BY n.created_at DESC"

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		r.logger.Printf("note repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	notes, err := scanNotes(rows)
	if err != nil {
		r.logger.Printf("note repo: list scan error=%v", err)
		return nil, err
	}
	r.logger.Printf("note repo: list count=%d", len(notes))
	return notes, nil
}

func (r *postgresRepo) ListFeatured(ctx context.Context, limit int) ([]domain.Note, error) {
	if limit <= 0 {
		limit = 6
	}
	q := `SELECT ` + noteColumns + `
FROM notes n
LEFT JOIN subjects s ON s.id = n.subject_id
WHERE n.featured
ORDER BY n.created_at DESC
LIMIT $1`
	rows, err := r.pool.Query(ctx, q, limit)
	if err != nil {
		r.logger.Printf("note repo: list featured error=%v", err)
		return nil, err
	}
	defer rows.Close()
	return scanNotes(rows)
}

func (r *postgresRepo) GetBySlug(ctx context.Context, slug string) (*domain.Note, error) {
	q := `SELECT ` + noteColumns + `
FROM notes n
LEFT JOIN subjects s ON s.id = n.subject_id
WHERE n.slug = $1`
	return r.getOne(ctx, q, slug)
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Note, error) {
	q := `SELECT ` + noteColumns + `
FROM notes n
LEFT JOIN subjects s ON s.id = n.subject_id
WHERE n.id = $1`
	return r.getOne(ctx, q, id)
}

func (r *postgresRepo) getOne(ctx context.Context, q string, arg interface{}) (*domain.Note, error) {
	rows, err := r.pool.Query(ctx, q, arg)
	if err != nil {
		r.logger.Printf("note repo: get error=%v", err)
		return nil, err
	}
	defer rows.Close()
	notes, err := scanNotes(rows)
	if err != nil {
		return nil, err
	}
	if len(notes) == 0 {
		return nil, domain.ErrNotFound
	}
	return &notes[0], nil
}

func (r *postgresRepo) Years(ctx context.Context) ([]string, error) {
	const q = `SELECT DISTINCT academic_year FROM notes WHERE academic_year <> '' ORDER BY academic_year`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Printf("note repo: years error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var years []string
	for rows.Next() {
		var y string
		if err := rows.Scan(&y); err != nil {
			return nil, err
		}
		years = append(years, y)
	}
	return years, rows.Err()
}

func (r *postgresRepo) YearSubjects(ctx context.Context) ([]domain.YearSubjects, error) {
	const q = `
SELECT n.academic_year, s.name
FROM notes n
JOIN subjects s ON s.id = n.subject_id
WHERE n.academic_year <> ''
GROUP BY n.academic_year, s.name
ORDER BY n.academic_year, s.name`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Printf("note repo: year subjects error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var out []domain.YearSubjects
	for rows.Next() {
		var year, subject string
		if err := rows.Scan(&year, &subject); err != nil {
			return nil, err
		}
		if len(out) == 0 || out[len(out)-1].AcademicYear != year {
			out = append(out, domain.YearSubjects{AcademicYear: year})
		}
		last := &out[len(out)-1]
		last.Subjects = append(last.Subjects, subject)
	}
	return out, rows.Err()
}

func scanNotes(rows pgx.Rows) ([]domain.Note, error) {
	var notes []domain.Note
	for rows.Next() {
		var (
			n         domain.Note
			subjectID *string
			subName   *string
			subSlug   *string
			subDesc   *string
		)
		if err := rows.Scan(
			&n.ID, &n.Title, &n.Slug, &n.Description, &n.PriceCents, &n.OriginalPriceCents,
			&n.PageCount, &n.Images, &n.AcademicYear, &n.Tags, &n.Featured, &n.CreatedAt,
			&subjectID, &subName, &subSlug, &subDesc,
		); err != nil {
			return nil, err
		}
		if subjectID != nil {
			n.SubjectID = *subjectID
			n.Subject = &domain.Subject{ID: *subjectID, Name: deref(subName), Slug: deref(subSlug), Description: deref(subDesc)}
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	return notes, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
