package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestStore(t *testing.T, ttl time.Duration) (*Store, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis.Run failed: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewStore(client, "sn", "record", ttl), mr
}

func sampleRecord() *Record {
	return &Record{
		Name:         "Amna",
		Email:        "amna@example.com",
		Mobile:       "0501234567",
		ClientID:     42,
		OfficeID:     305,
		OfficeNumber: "305-B",
		BuildingName: "Marina Tower",
		LoginKey:     "abc123",
		ClientTypeID: 1,
		Status:       1,
	}
}

func TestLoadMissingKeyMeansNoSession(t *testing.T) {
	store, _ := newTestStore(t, 0)

	rec, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if rec != nil {
		t.Fatalf("expected nil record for missing key, got %+v", rec)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store, _ := newTestStore(t, 0)

	want := sampleRecord()
	want.SelectedBuilding = &Building{ID: 7, Name: "Marina Tower"}

	if err := store.Save(context.Background(), want); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected record")
	}
	if got.ClientID != want.ClientID || got.LoginKey != want.LoginKey {
		t.Fatalf("identity lost in round trip: %+v", got)
	}
	if got.SelectedBuilding == nil || got.SelectedBuilding.ID != 7 {
		t.Fatalf("selection lost in round trip: %+v", got.SelectedBuilding)
	}
}

func TestSaveIsStableAcrossRewrites(t *testing.T) {
	store, mr := newTestStore(t, 0)

	rec := sampleRecord()
	if err := store.Save(context.Background(), rec); err != nil {
		t.Fatalf("first Save failed: %v", err)
	}
	first, err := mr.Get("sn:record")
	if err != nil {
		t.Fatalf("miniredis get failed: %v", err)
	}

	loaded, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if err := store.Save(context.Background(), loaded); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}
	second, err := mr.Get("sn:record")
	if err != nil {
		t.Fatalf("miniredis get failed: %v", err)
	}

	// Load-then-save of an unchanged record must not churn the stored
	// document.
	if first != second {
		t.Fatalf("stored document changed across rewrite:\n%s\nvs\n%s", first, second)
	}
}

func TestLoadCorruptDocumentIsNoSession(t *testing.T) {
	store, mr := newTestStore(t, 0)

	mr.Set("sn:record", "{definitely not json")

	rec, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("corrupt data must not error, got %v", err)
	}
	if rec != nil {
		t.Fatalf("expected nil record for corrupt data, got %+v", rec)
	}
}

func TestLoadRecordWithoutIdentityIsNoSession(t *testing.T) {
	store, mr := newTestStore(t, 0)

	// Valid JSON, but no login key.
	mr.Set("sn:record", `{"name":"ghost","clientId":5}`)

	rec, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if rec != nil {
		t.Fatalf("expected identity-less record discarded, got %+v", rec)
	}
}

func TestClearIdempotent(t *testing.T) {
	store, _ := newTestStore(t, 0)

	if err := store.Clear(context.Background()); err != nil {
		t.Fatalf("clearing an absent key must succeed, got %v", err)
	}

	if err := store.Save(context.Background(), sampleRecord()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Clear(context.Background()); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	rec, err := store.Load(context.Background())
	if err != nil || rec != nil {
		t.Fatalf("expected empty store after clear, got %+v / %v", rec, err)
	}
}

func TestStoreUnavailableSurfacedAsSentinel(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis.Run failed: %v", err)
	}
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewStore(client, "sn", "record", 0)
	mr.Close()

	if _, err := store.Load(context.Background()); !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable from Load, got %v", err)
	}
	if err := store.Save(context.Background(), sampleRecord()); !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable from Save, got %v", err)
	}
	if err := store.Clear(context.Background()); !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable from Clear, got %v", err)
	}
	if _, err := store.Ping(context.Background()); !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable from Ping, got %v", err)
	}
}

func TestNewStoreKeyLayout(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis.Run failed: %v", err)
	}
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	cases := []struct {
		prefix, key, want string
	}{
		{"sn", "record", "sn:record"},
		{"", "record", "record"},
		{"app", "", "app:record"},
	}

	for _, tc := range cases {
		store := NewStore(client, tc.prefix, tc.key, 0)
		if err := store.Save(context.Background(), sampleRecord()); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		if !mr.Exists(tc.want) {
			t.Fatalf("expected key %q", tc.want)
		}
		mr.FlushAll()
	}
}

func TestRecordClone(t *testing.T) {
	orig := sampleRecord()
	orig.SelectedBuilding = &Building{ID: 1, Name: "A"}

	clone := orig.Clone()
	clone.Name = "other"
	clone.SelectedBuilding.ID = 99

	if orig.Name != "Amna" || orig.SelectedBuilding.ID != 1 {
		t.Fatal("Clone must deep-copy the record")
	}

	var nilRec *Record
	if nilRec.Clone() != nil {
		t.Fatal("nil Clone must stay nil")
	}
}
