package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type subjectSeed struct {
	Name        string
	Slug        string
	Description string
}

type noteSeed struct {
	Title        string
	Slug         string
	Description  string
	PriceCents   int64
	PageCount    int
	Images       []string
	AcademicYear string
	SubjectSlug  string
	Tags         []string
	Featured     bool
}

// Apply inserts sample catalog data for manual testing. It is idempotent via ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	subjects := []subjectSeed{
		{Name: "Anatomy", Slug: "anatomy", Description: "Gross and regional anatomy"},
		{Name: "Physiology", Slug: "physiology", Description: "Systems physiology"},
		{Name: "Biochemistry", Slug: "biochemistry", Description: "Metabolic pathways and molecular biology"},
	}

	subjectIDs := make(map[string]string, len(subjects))
	for _, s := range subjects {
		id, err := upsertSubject(ctx, pool, s)
		if err != nil {
			return fmt.Errorf("upsert subject %s: %w", s.Slug, err)
		}
		subjectIDs[s.Slug] = id
	}

	notes := []noteSeed{
		{
			Title:        "Upper Limb Anatomy Notes",
			Slug:         "upper-limb-anatomy",
			Description:  "Complete upper limb notes with labelled diagrams",
			PriceCents:   29900,
			PageCount:    84,
			Images:       []string{"notes/upper-limb-1.jpg", "notes/upper-limb-2.jpg"},
			AcademicYear: "1st Year",
			SubjectSlug:  "anatomy",
			Tags:         []string{"anatomy", "diagrams"},
			Featured:     true,
		},
		{
			Title:        "Cardiovascular Physiology Notes",
			Slug:         "cardiovascular-physiology",
			Description:  "Hemodynamics, cardiac cycle and regulation",
			PriceCents:   24900,
			PageCount:    56,
			Images:       []string{"notes/cvs-physio-1.jpg"},
			AcademicYear: "1st Year",
			SubjectSlug:  "physiology",
			Tags:         []string{"physiology"},
			Featured:     true,
		},
		{
			Title:        "Metabolism Rapid Review",
			Slug:         "metabolism-rapid-review",
			Description:  "High-yield metabolic pathway summaries",
			PriceCents:   19900,
			PageCount:    40,
			Images:       []string{"notes/metabolism-1.jpg"},
			AcademicYear: "2nd Year",
			SubjectSlug:  "biochemistry",
			Tags:         []string{"biochemistry", "rapid-review"},
			Featured:     false,
		},
	}

	for _, n := range notes {
		if err := upsertNote(ctx, pool, subjectIDs[n.SubjectSlug], n); err != nil {
			return fmt.Errorf("upsert note %s: %w", n.Slug, err)
		}
	}

	if err := upsertDiscountCodes(ctx, pool); err != nil {
		return fmt.Errorf("upsert discount codes: %w", err)
	}

	if err := ensureSlideshow(ctx, pool); err != nil {
		return fmt.Errorf("ensure slideshow: %w", err)
	}

	return nil
}

func upsertSubject(ctx context.Context, pool *pgxpool.Pool, s subjectSeed) (string, error) {
	const q = `
INSERT INTO subjects (name, slug, description)
VALUES ($1, $2, $3)
ON CONFLICT (slug) DO UPDATE
SET name = EXCLUDED.name,
    description = EXCLUDED.description
RETURNING id::text
`
	var id string
	if err := pool.QueryRow(ctx, q, s.Name, s.Slug, s.Description).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func upsertNote(ctx context.Context, pool *pgxpool.Pool, subjectID string, n noteSeed) error {
	const q = `
INSERT INTO notes (title, slug, description, price_cents, page_count, images, academic_year, subject_id, tags, featured)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
ON CONFLICT (slug) DO UPDATE
SET title = EXCLUDED.title,
    description = EXCLUDED.description,
    price_cents = EXCLUDED.price_cents,
    page_count = EXCLUDED.page_count,
    images = EXCLUDED.images,
    academic_year = EXCLUDED.academic_year,
    subject_id = EXCLUDED.subject_id,
    tags = EXCLUDED.tags,
    featured = EXCLUDED.featured
`
	_, err := pool.Exec(ctx, q, n.Title, n.Slug, n.Description, n.PriceCents, n.PageCount,
		n.Images, n.AcademicYear, subjectID, n.Tags, n.Featured)
	return err
}

func upsertDiscountCodes(ctx context.Context, pool *pgxpool.Pool) error {
	const q = `
INSERT INTO discount_codes (code, percentage, valid_from, valid_until, is_active, usage_limit)
VALUES ($1, $2, now(), now() + interval '1 year', TRUE, $3)
ON CONFLICT (code) DO UPDATE
SET percentage = EXCLUDED.percentage,
    valid_until = EXCLUDED.valid_until,
    is_active = EXCLUDED.is_active,
    usage_limit = EXCLUDED.usage_limit
`
	codes := []struct {
		code       string
		percentage int
		usageLimit *int
	}{
		{code: "student10", percentage: 10},
		{code: "welcome20", percentage: 20},
	}
	for _, c := range codes {
		if _, err := pool.Exec(ctx, q, c.code, c.percentage, c.usageLimit); err != nil {
			return err
		}
	}
	return nil
}

func ensureSlideshow(ctx context.Context, pool *pgxpool.Pool) error {
	const check = `SELECT count(*) FROM slideshows WHERE is_active`
	var active int
	if err := pool.QueryRow(ctx, check).Scan(&active); err != nil {
		return err
	}
	if active > 0 {
		return nil
	}

	const insert = `
INSERT INTO slideshows (title, images, is_active)
VALUES ($1, $2::jsonb, TRUE)
`
	images := `[{"url":"slideshow/hero-1.jpg","alt":"New anatomy notes"},{"url":"slideshow/hero-2.jpg","alt":"Exam season bundle"}]`
	_, err := pool.Exec(ctx, insert, "Homepage", images)
	return err
}
