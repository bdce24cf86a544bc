package sessionnav

import (
	"context"
	"errors"
	"testing"
)

func TestSelectBuildingCompletesOwnerHandoff(t *testing.T) {
	engine, _, done := newRestoredEngine(t, defaultConfig())
	defer done()

	if _, err := engine.Login(context.Background(), ownerPayload()); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	state, err := engine.SelectBuilding(context.Background(), Building{ID: 12, Name: "Marina Tower"})
	if err != nil {
		t.Fatalf("SelectBuilding failed: %v", err)
	}
	if state.Tag != StateDashboard {
		t.Fatalf("expected dashboard after selection, got %s", state.Tag)
	}

	rec, ok := engine.CurrentRecord()
	if !ok {
		t.Fatal("expected active record")
	}
	if rec.SelectedBuilding == nil || rec.SelectedBuilding.ID != 12 {
		t.Fatalf("selection not applied: %+v", rec.SelectedBuilding)
	}
	if rec.BuildingName != "Marina Tower" {
		t.Fatalf("expected display name carried onto record, got %q", rec.BuildingName)
	}
}

func TestSelectBuildingSurvivesRestart(t *testing.T) {
	mr, rdb := newTestRedis(t)
	defer mr.Close()

	first, err := New().WithRedis(rdb).Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if _, err := first.Restore(context.Background()); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if _, err := first.Login(context.Background(), ownerPayload()); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if _, err := first.SelectBuilding(context.Background(), Building{ID: 3}); err != nil {
		t.Fatalf("SelectBuilding failed: %v", err)
	}
	first.Close()

	second, err := New().WithRedis(rdb).Build()
	if err != nil {
		t.Fatalf("second Build failed: %v", err)
	}
	defer second.Close()

	state, err := second.Restore(context.Background())
	if err != nil {
		t.Fatalf("second Restore failed: %v", err)
	}
	if state.Tag != StateDashboard {
		t.Fatalf("owner with selection must land on dashboard after restart, got %s", state.Tag)
	}
}

func TestSelectBuildingRejectedOutsideOwnerSelect(t *testing.T) {
	engine, _, done := newRestoredEngine(t, defaultConfig())
	defer done()

	// Unauthenticated.
	if _, err := engine.SelectBuilding(context.Background(), Building{ID: 1}); !errors.Is(err, ErrInvalidStateTransition) {
		t.Fatalf("expected ErrInvalidStateTransition while unauthenticated, got %v", err)
	}

	// Approved tenant on the dashboard.
	if _, err := engine.Login(context.Background(), tenantPayload()); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	state, err := engine.SelectBuilding(context.Background(), Building{ID: 1})
	if !errors.Is(err, ErrInvalidStateTransition) {
		t.Fatalf("expected ErrInvalidStateTransition for tenant, got %v", err)
	}
	if state.Tag != StateDashboard {
		t.Fatalf("rejected selection must return the unchanged state, got %s", state.Tag)
	}

	rec, ok := engine.CurrentRecord()
	if !ok || rec.SelectedBuilding != nil {
		t.Fatal("rejected selection must not touch the record")
	}
}

func TestSelectBuildingSaveFailureNonFatal(t *testing.T) {
	engine, mr, done := newRestoredEngine(t, defaultConfig())
	defer done()

	if _, err := engine.Login(context.Background(), ownerPayload()); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	mr.Close()

	state, err := engine.SelectBuilding(context.Background(), Building{ID: 5})
	if !errors.Is(err, ErrSessionSaveFailed) {
		t.Fatalf("expected ErrSessionSaveFailed, got %v", err)
	}
	if state.Tag != StateDashboard {
		t.Fatalf("selection must advance in memory despite save failure, got %s", state.Tag)
	}
}
