package httpserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"betternotes/internal/domain"
	"betternotes/internal/imageurl"
)

type noteResponse struct {
	ID                 string          `json:"id"`
	Title              string          `json:"title"`
	Slug               string          `json:"slug"`
	Description        string          `json:"description,omitempty"`
	PriceCents         int64           `json:"priceCents"`
	OriginalPriceCents *int64          `json:"originalPriceCents,omitempty"`
	PageCount          *int            `json:"pageCount,omitempty"`
	Images             []string        `json:"images"`
	AcademicYear       string          `json:"academicYear,omitempty"`
	Subject            *domain.Subject `json:"subject,omitempty"`
	Tags               []string        `json:"tags,omitempty"`
	Featured           bool            `json:"featured"`
}

func toNoteResponse(n domain.Note, images *imageurl.Builder) noteResponse {
	urls := make([]string, 0, len(n.Images))
	for _, ref := range n.Images {
		urls = append(urls, images.URL(ref, imageurl.Options{Width: 600, Height: 450, Fit: "crop"}))
	}
	return noteResponse{
		ID:                 n.ID,
		Title:              n.Title,
		Slug:               n.Slug,
		Description:        n.Description,
		PriceCents:         n.PriceCents,
		OriginalPriceCents: n.OriginalPriceCents,
		PageCount:          n.PageCount,
		Images:             urls,
		AcademicYear:       n.AcademicYear,
		Subject:            n.Subject,
		Tags:               n.Tags,
		Featured:           n.Featured,
	}
}

func toNoteResponses(notes []domain.Note, images *imageurl.Builder) []noteResponse {
	out := make([]noteResponse, 0, len(notes))
	for _, n := range notes {
		out = append(out, toNoteResponse(n, images))
	}
	return out
}

func parseNoteFilters(c *gin.Context) domain.NoteFilters {
	filters := domain.NoteFilters{
		AcademicYear: c.Query("year"),
		Subject:      c.Query("subject"),
		Search:       c.Query("search"),
	}
	if v := c.Query("minPrice"); v != "" {
		if cents, err := strconv.ParseInt(v, 10, 64); err == nil {
			filters.MinPriceCents = &cents
		}
	}
	if v := c.Query("maxPrice"); v != "" {
		if cents, err := strconv.ParseInt(v, 10, 64); err == nil {
			filters.MaxPriceCents = &cents
		}
	}
	return filters
}

func listNotesHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		notes, err := deps.CatalogSvc.ListNotes(c.Request.Context(), parseNoteFilters(c))
		if err != nil {
			// Fetch failures render as an empty catalog, not a crash.
			c.JSON(http.StatusOK, gin.H{"notes": []noteResponse{}})
			return
		}
		c.JSON(http.StatusOK, gin.H{"notes": toNoteResponses(notes, deps.Images)})
	}
}

func featuredNotesHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		notes, err := deps.CatalogSvc.FeaturedNotes(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusOK, gin.H{"notes": []noteResponse{}})
			return
		}
		c.JSON(http.StatusOK, gin.H{"notes": toNoteResponses(notes, deps.Images)})
	}
}

func noteBySlugHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		note, err := deps.CatalogSvc.NoteBySlug(c.Request.Context(), c.Param("slug"))
		if err != nil {
			// Not-found and fetch failure both render as a missing note.
			jsonError(c, http.StatusNotFound, "note not found")
			return
		}
		c.JSON(http.StatusOK, toNoteResponse(*note, deps.Images))
	}
}

func subjectsHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		subjects, err := deps.CatalogSvc.Subjects(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusOK, gin.H{"subjects": []domain.Subject{}})
			return
		}
		c.JSON(http.StatusOK, gin.H{"subjects": subjects})
	}
}

func yearsHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		combos, err := deps.CatalogSvc.YearSubjects(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusOK, gin.H{"years": []domain.YearSubjects{}})
			return
		}
		c.JSON(http.StatusOK, gin.H{"years": combos})
	}
}

func slideshowHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		show, err := deps.CatalogSvc.ActiveSlideshow(c.Request.Context())
		if err != nil {
			jsonError(c, http.StatusNotFound, "no active slideshow")
			return
		}
		for i := range show.Images {
			show.Images[i].URL = deps.Images.URL(show.Images[i].URL, imageurl.Options{Width: 1200, Height: 600, Fit: "crop"})
		}
		c.JSON(http.StatusOK, show)
	}
}

func discountsHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		codes, err := deps.DiscountSvc.ListActive(c.Request.Context())
		if err != nil || codes == nil {
			c.JSON(http.StatusOK, gin.H{"discounts": []domain.DiscountCode{}})
			return
		}
		c.JSON(http.StatusOK, gin.H{"discounts": codes})
	}
}
