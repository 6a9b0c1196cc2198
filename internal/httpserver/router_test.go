package httpserver

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"betternotes/internal/domain"
	"betternotes/internal/imageurl"
	"betternotes/internal/pagestate"
	"betternotes/internal/session"
	cartsvc "betternotes/internal/service/cart"
	catalogsvc "betternotes/internal/service/catalog"
	checkoutsvc "betternotes/internal/service/checkout"
	discountsvc "betternotes/internal/service/discount"
)

var testTiers = domain.TierTable{
	{MinItems: 2, AmountCents: 50},
	{MinItems: 4, AmountCents: 150},
	{MinItems: 6, AmountCents: 200},
	{MinItems: 8, AmountCents: 250},
}

type stubNoteRepo struct {
	notes []domain.Note
}

func (s *stubNoteRepo) List(_ context.Context, filters domain.NoteFilters) ([]domain.Note, error) {
	var out []domain.Note
	for _, n := range s.notes {
		if filters.AcademicYear != "" && n.AcademicYear != filters.AcademicYear {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

func (s *stubNoteRepo) ListFeatured(_ context.Context, _ int) ([]domain.Note, error) {
	var out []domain.Note
	for _, n := range s.notes {
		if n.Featured {
			out = append(out, n)
		}
	}
	return out, nil
}

func (s *stubNoteRepo) GetBySlug(_ context.Context, slug string) (*domain.Note, error) {
	for _, n := range s.notes {
		if n.Slug == slug {
			note := n
			return &note, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubNoteRepo) GetByID(_ context.Context, id string) (*domain.Note, error) {
	for _, n := range s.notes {
		if n.ID == id {
			note := n
			return &note, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubNoteRepo) Years(_ context.Context) ([]string, error) {
	return []string{"1st Year"}, nil
}

func (s *stubNoteRepo) YearSubjects(_ context.Context) ([]domain.YearSubjects, error) {
	return []domain.YearSubjects{{AcademicYear: "1st Year", Subjects: []string{"Anatomy"}}}, nil
}

type stubSubjectRepo struct{}

func (stubSubjectRepo) List(_ context.Context) ([]domain.Subject, error) {
	return []domain.Subject{{ID: "sub1", Name: "Anatomy", Slug: "anatomy"}}, nil
}

type stubSlideshowRepo struct{}

func (stubSlideshowRepo) GetActive(_ context.Context) (*domain.Slideshow, error) {
	return nil, domain.ErrNotFound
}

func testNotes() []domain.Note {
	return []domain.Note{
		{ID: "n1", Title: "Anatomy Vol 1", Slug: "anatomy-1", PriceCents: 300, AcademicYear: "1st Year"},
		{ID: "n2", Title: "Physiology Vol 1", Slug: "physiology-1", PriceCents: 200, AcademicYear: "1st Year", Featured: true},
	}
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := log.New(io.Discard, "", 0)
	store := session.NewMemory()

	catalog := catalogsvc.New(&stubNoteRepo{notes: testNotes()}, stubSubjectRepo{}, stubSlideshowRepo{})
	carts := cartsvc.New(store, testTiers, logger)
	discounts := discountsvc.New(nil)
	checkout := checkoutsvc.New(carts, "@betternotes")
	tracker := pagestate.NewTracker(store, logger)

	return buildRouter(logger, nil, Deps{
		CatalogSvc:     catalog,
		CartSvc:        carts,
		DiscountSvc:    discounts,
		CheckoutSvc:    checkout,
		PageState:      tracker,
		Images:         imageurl.New("https://cdn.example.com"),
		AllowedOrigins: []string{"*"},
	})
}

// do issues a request reusing the session cookie across calls.
type client struct {
	router *gin.Engine
	cookie string
}

func (cl *client) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if cl.cookie != "" {
		req.Header.Set("Cookie", cl.cookie)
	}
	rec := httptest.NewRecorder()
	cl.router.ServeHTTP(rec, req)
	if cl.cookie == "" {
		for _, sc := range rec.Result().Cookies() {
			if sc.Name == sessionCookie {
				cl.cookie = sc.Name + "=" + sc.Value
			}
		}
	}
	return rec
}

func decodeCart(t *testing.T, rec *httptest.ResponseRecorder) cartResponse {
	t.Helper()
	var cart cartResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &cart); err != nil {
		t.Fatalf("invalid cart response: %v\n%s", err, rec.Body.String())
	}
	return cart
}

func TestHealthz(t *testing.T) {
	cl := &client{router: newTestRouter()}
	rec := cl.do(t, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestSessionCookieAssigned(t *testing.T) {
	cl := &client{router: newTestRouter()}
	cl.do(t, http.MethodGet, "/api/cart", "")
	if cl.cookie == "" {
		t.Fatal("expected session cookie to be set")
	}
}

func TestListNotes(t *testing.T) {
	cl := &client{router: newTestRouter()}
	rec := cl.do(t, http.MethodGet, "/api/notes", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp struct {
		Notes []noteResponse `json:"notes"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response: %v", err)
	}
	if len(resp.Notes) != 2 {
		t.Fatalf("expected 2 notes, got %d", len(resp.Notes))
	}
}

func TestNoteBySlugNotFound(t *testing.T) {
	cl := &client{router: newTestRouter()}
	rec := cl.do(t, http.MethodGet, "/api/notes/missing", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestCartFlow(t *testing.T) {
	cl := &client{router: newTestRouter()}

	rec := cl.do(t, http.MethodPost, "/api/cart/items", `{"slug":"anatomy-1"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("add: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	// Re-adding the same note keeps a single line.
	cl.do(t, http.MethodPost, "/api/cart/items", `{"slug":"anatomy-1"}`)
	rec = cl.do(t, http.MethodPost, "/api/cart/items", `{"noteId":"n2"}`)
	cart := decodeCart(t, rec)

	if cart.ItemCount != 2 || len(cart.Lines) != 2 {
		t.Fatalf("expected 2 distinct lines, got %+v", cart)
	}
	if cart.SubtotalCents != 500 {
		t.Fatalf("expected subtotal 500, got %d", cart.SubtotalCents)
	}
	if cart.QuantityDiscountCents != 50 {
		t.Fatalf("expected tier discount 50, got %d", cart.QuantityDiscountCents)
	}
	if cart.TotalCents != 450 {
		t.Fatalf("expected total 450, got %d", cart.TotalCents)
	}
}

func TestAddUnknownNote(t *testing.T) {
	cl := &client{router: newTestRouter()}
	rec := cl.do(t, http.MethodPost, "/api/cart/items", `{"slug":"nope"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestApplyInvalidDiscountLeavesCartUnchanged(t *testing.T) {
	cl := &client{router: newTestRouter()}
	cl.do(t, http.MethodPost, "/api/cart/items", `{"slug":"anatomy-1"}`)

	rec := cl.do(t, http.MethodPost, "/api/cart/discount", `{"code":"bogus"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	cart := decodeCart(t, cl.do(t, http.MethodGet, "/api/cart", ""))
	if cart.DiscountCode != "" || cart.CouponDiscountCents != 0 {
		t.Fatalf("expected cart unchanged, got %+v", cart)
	}
}

func TestApplyAndRemoveFallbackDiscount(t *testing.T) {
	cl := &client{router: newTestRouter()}
	cl.do(t, http.MethodPost, "/api/cart/items", `{"slug":"anatomy-1"}`)
	cl.do(t, http.MethodPost, "/api/cart/items", `{"slug":"physiology-1"}`)

	cart := decodeCart(t, cl.do(t, http.MethodPost, "/api/cart/discount", `{"code":"WELCOME20"}`))
	if cart.CouponDiscountCents != 100 {
		t.Fatalf("expected coupon discount 100, got %+v", cart)
	}
	if cart.TotalCents != 350 {
		t.Fatalf("expected total 350, got %d", cart.TotalCents)
	}

	cart = decodeCart(t, cl.do(t, http.MethodDelete, "/api/cart/discount", ""))
	if cart.CouponDiscountCents != 0 || cart.TotalCents != 450 {
		t.Fatalf("expected coupon reverted only, got %+v", cart)
	}
}

func TestPlaceOrderClearsCart(t *testing.T) {
	cl := &client{router: newTestRouter()}
	cl.do(t, http.MethodPost, "/api/cart/items", `{"slug":"anatomy-1"}`)

	rec := cl.do(t, http.MethodPost, "/api/checkout/order", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var order struct {
		TelegramHandle string `json:"telegramHandle"`
		Summary        string `json:"summary"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &order); err != nil {
		t.Fatalf("invalid order response: %v", err)
	}
	if order.TelegramHandle != "@betternotes" || !strings.Contains(order.Summary, "Anatomy Vol 1") {
		t.Fatalf("unexpected order %+v", order)
	}

	cart := decodeCart(t, cl.do(t, http.MethodGet, "/api/cart", ""))
	if cart.ItemCount != 0 {
		t.Fatalf("expected cart cleared after order, got %+v", cart)
	}
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	cl := &client{router: newTestRouter()}
	rec := cl.do(t, http.MethodPost, "/api/checkout/order", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestPageStateNavigationFlow(t *testing.T) {
	cl := &client{router: newTestRouter()}

	rec := cl.do(t, http.MethodPut, "/api/page-state", `{"scrollY":900,"expandedYears":["1st Year"],"expandedSubjects":[],"filters":{}}`)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("save: expected 204, got %d", rec.Code)
	}

	rec = cl.do(t, http.MethodPost, "/api/navigation", `{"from":"/notes/anatomy-1","to":"/notes"}`)
	var resp struct {
		Preserved bool              `json:"preserved"`
		State     *domain.PageState `json:"state"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response: %v", err)
	}
	if !resp.Preserved || resp.State == nil || resp.State.ScrollY != 900 {
		t.Fatalf("expected preserved state, got %+v", resp)
	}

	// Consumed on handout: nothing remains.
	rec = cl.do(t, http.MethodGet, "/api/page-state", "")
	if !strings.Contains(rec.Body.String(), `"state":null`) {
		t.Fatalf("expected state consumed, got %s", rec.Body.String())
	}
}

func TestPageStateDiscardedOnUnrelatedNavigation(t *testing.T) {
	cl := &client{router: newTestRouter()}
	cl.do(t, http.MethodPut, "/api/page-state", `{"scrollY":900,"expandedYears":[],"expandedSubjects":[],"filters":{}}`)

	rec := cl.do(t, http.MethodPost, "/api/navigation", `{"from":"/checkout","to":"/notes"}`)
	if !strings.Contains(rec.Body.String(), `"preserved":false`) {
		t.Fatalf("expected not preserved, got %s", rec.Body.String())
	}
	rec = cl.do(t, http.MethodGet, "/api/page-state", "")
	if !strings.Contains(rec.Body.String(), `"state":null`) {
		t.Fatalf("expected stale state discarded, got %s", rec.Body.String())
	}
}
