package cart

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"betternotes/internal/domain"
	"betternotes/internal/session"
)

type stubStore struct {
	data    map[string][]byte
	getErr  error
	setErr  error
	lastKey string
}

func newStubStore() *stubStore {
	return &stubStore{data: make(map[string][]byte)}
}

func (s *stubStore) Get(_ context.Context, sessionID, key string) ([]byte, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	val, ok := s.data[sessionID+"/"+key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return val, nil
}

func (s *stubStore) Set(_ context.Context, sessionID, key string, value []byte) error {
	if s.setErr != nil {
		return s.setErr
	}
	s.lastKey = key
	s.data[sessionID+"/"+key] = value
	return nil
}

func (s *stubStore) Delete(_ context.Context, sessionID, key string) error {
	delete(s.data, sessionID+"/"+key)
	return nil
}

func TestServiceLoadMissingFallsBackToEmpty(t *testing.T) {
	svc := New(newStubStore(), testTiers, nil)
	cart := svc.Load(context.Background(), "s1")
	if len(cart.Lines) != 0 || cart.TotalCents != 0 {
		t.Fatalf("expected empty cart, got %+v", cart)
	}
}

func TestServiceLoadMalformedFallsBackToEmpty(t *testing.T) {
	store := newStubStore()
	store.data["s1/"+session.KeyCart] = []byte("{not json")
	svc := New(store, testTiers, nil)
	cart := svc.Load(context.Background(), "s1")
	if len(cart.Lines) != 0 {
		t.Fatalf("expected empty cart from malformed data, got %+v", cart)
	}
}

func TestServiceLoadStoreErrorFallsBackToEmpty(t *testing.T) {
	store := newStubStore()
	store.getErr = errors.New("redis down")
	svc := New(store, testTiers, nil)
	cart := svc.Load(context.Background(), "s1")
	if len(cart.Lines) != 0 {
		t.Fatalf("expected empty cart on store failure, got %+v", cart)
	}
}

func TestServicePersistsAfterEveryAction(t *testing.T) {
	store := newStubStore()
	svc := New(store, testTiers, nil)
	ctx := context.Background()

	if _, err := svc.Add(ctx, "s1", note("a", 300)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.lastKey != session.KeyCart {
		t.Fatalf("expected persist under %q, got %q", session.KeyCart, store.lastKey)
	}

	var stored domain.Cart
	if err := json.Unmarshal(store.data["s1/"+session.KeyCart], &stored); err != nil {
		t.Fatalf("stored cart not valid json: %v", err)
	}
	if stored.SubtotalCents != 300 {
		t.Fatalf("expected stored subtotal 300, got %d", stored.SubtotalCents)
	}
}

func TestServiceRoundTrip(t *testing.T) {
	store := newStubStore()
	svc := New(store, testTiers, nil)
	ctx := context.Background()

	if _, err := svc.Add(ctx, "s1", note("a", 300)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Add(ctx, "s1", note("b", 200)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want, err := svc.ApplyCoupon(ctx, "s1", "welcome20", 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := svc.Load(ctx, "s1")
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("round-trip mismatch:\nwant %+v\ngot  %+v", want, got)
	}
}

func TestServiceSetQuantityRemovesAtZero(t *testing.T) {
	store := newStubStore()
	svc := New(store, testTiers, nil)
	ctx := context.Background()

	if _, err := svc.Add(ctx, "s1", note("a", 300)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cart, err := svc.SetQuantity(ctx, "s1", "a", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cart.Lines) != 0 {
		t.Fatalf("expected empty cart, got %+v", cart)
	}
}

func TestServicePersistErrorSurfaces(t *testing.T) {
	store := newStubStore()
	store.setErr = errors.New("write failed")
	svc := New(store, testTiers, nil)
	if _, err := svc.Add(context.Background(), "s1", note("a", 100)); err == nil {
		t.Fatal("expected persist error")
	}
}

func TestServiceSessionsAreIsolated(t *testing.T) {
	store := newStubStore()
	svc := New(store, testTiers, nil)
	ctx := context.Background()

	if _, err := svc.Add(ctx, "s1", note("a", 100)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	other := svc.Load(ctx, "s2")
	if len(other.Lines) != 0 {
		t.Fatalf("expected empty cart for other session, got %+v", other)
	}
}
