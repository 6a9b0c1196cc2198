// Package pagestate captures and restores the transient browse-state of the
// notes listing page (scroll offset, expanded sections, active filters) for
// exactly one navigation pattern: leaving a note detail view and coming back.
package pagestate

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"strings"
	"sync"
	"time"

	"betternotes/internal/domain"
	"betternotes/internal/session"
)

const (
	// ListingPath is the notes listing route the guard protects.
	ListingPath = "/notes"

	// defaultSettle bounds the window after a qualifying return during which
	// incoming saves are suppressed, so the restoration's own scroll events
	// cannot overwrite the target that was just handed out.
	defaultSettle = 250 * time.Millisecond
)

// ShouldPreserve reports whether saved listing state survives a navigation:
// only when coming back from a detail view to the listing itself.
func ShouldPreserve(from, to string) bool {
	isFromDetail := strings.HasPrefix(from, ListingPath+"/") && from != ListingPath
	return isFromDetail && to == ListingPath
}

// Tracker persists listing-page state and the previously visited route per
// session, and enforces the restoration guard on navigation.
type Tracker struct {
	store  session.Store
	logger *log.Logger
	settle time.Duration
	now    func() time.Time

	mu        sync.Mutex
	restoring map[string]time.Time
}

func NewTracker(store session.Store, logger *log.Logger) *Tracker {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Tracker{
		store:     store,
		logger:    logger,
		settle:    defaultSettle,
		now:       time.Now,
		restoring: make(map[string]time.Time),
	}
}

// Save stores the listing-page state. Saves arriving while a restoration is
// settling are dropped; storage failures are logged, never surfaced.
func (t *Tracker) Save(ctx context.Context, sessionID string, state domain.PageState) {
	if t.Restoring(sessionID) {
		t.logger.Printf("pagestate: save suppressed during restoration session=%s", sessionID)
		return
	}
	raw, err := json.Marshal(state)
	if err != nil {
		t.logger.Printf("pagestate: marshal session=%s error=%v", sessionID, err)
		return
	}
	if err := t.store.Set(ctx, sessionID, session.KeyPageState, raw); err != nil {
		t.logger.Printf("pagestate: save session=%s error=%v", sessionID, err)
	}
}

// Get returns the saved state, or false when nothing valid is stored.
func (t *Tracker) Get(ctx context.Context, sessionID string) (domain.PageState, bool) {
	raw, err := t.store.Get(ctx, sessionID, session.KeyPageState)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			t.logger.Printf("pagestate: get session=%s error=%v", sessionID, err)
		}
		return domain.PageState{}, false
	}
	var state domain.PageState
	if err := json.Unmarshal(raw, &state); err != nil {
		t.logger.Printf("pagestate: discarding malformed state session=%s error=%v", sessionID, err)
		return domain.PageState{}, false
	}
	return state, true
}

// Clear discards the saved state.
func (t *Tracker) Clear(ctx context.Context, sessionID string) {
	if err := t.store.Delete(ctx, sessionID, session.KeyPageState); err != nil {
		t.logger.Printf("pagestate: clear session=%s error=%v", sessionID, err)
	}
}

// RecordPath remembers the route the client is on, for the next guard check.
func (t *Tracker) RecordPath(ctx context.Context, sessionID, path string) {
	if err := t.store.Set(ctx, sessionID, session.KeyPreviousPath, []byte(path)); err != nil {
		t.logger.Printf("pagestate: record path session=%s error=%v", sessionID, err)
	}
}

// PreviousPath returns the last recorded route, or "".
func (t *Tracker) PreviousPath(ctx context.Context, sessionID string) string {
	raw, err := t.store.Get(ctx, sessionID, session.KeyPreviousPath)
	if err != nil {
		return ""
	}
	return string(raw)
}

// HandleNavigation applies the guard for a navigation to `to`. When `from` is
// empty the recorded previous path is used. On a qualifying return the saved
// state is consumed (returned once and cleared) and the settle window opens;
// any other navigation discards saved state so it never leaks into an
// unrelated visit.
func (t *Tracker) HandleNavigation(ctx context.Context, sessionID, from, to string) (domain.PageState, bool) {
	if from == "" {
		from = t.PreviousPath(ctx, sessionID)
	}
	t.RecordPath(ctx, sessionID, to)

	if !ShouldPreserve(from, to) {
		t.Clear(ctx, sessionID)
		return domain.PageState{}, false
	}

	state, ok := t.Get(ctx, sessionID)
	if !ok {
		return domain.PageState{}, false
	}
	t.Clear(ctx, sessionID)
	t.beginSettle(sessionID)
	t.logger.Printf("pagestate: restoring session=%s from=%s scrollY=%d", sessionID, from, state.ScrollY)
	return state, true
}

// Restoring reports whether the session is inside its settle window.
func (t *Tracker) Restoring(sessionID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	until, ok := t.restoring[sessionID]
	if !ok {
		return false
	}
	if t.now().After(until) {
		delete(t.restoring, sessionID)
		return false
	}
	return true
}

func (t *Tracker) beginSettle(sessionID string) {
	t.mu.Lock()
	t.restoring[sessionID] = t.now().Add(t.settle)
	t.mu.Unlock()
}
