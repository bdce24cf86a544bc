package sessionnav

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func auditTestConfig() Config {
	cfg := defaultConfig()
	cfg.Audit.Enabled = true
	cfg.Audit.BufferSize = 64
	cfg.Audit.DropIfFull = false
	return cfg
}

func newAuditedEngine(t *testing.T, sink AuditSink) (*Engine, func()) {
	t.Helper()

	mr, rdb := newTestRedis(t)

	engine, err := New().
		WithConfig(auditTestConfig()).
		WithRedis(rdb).
		WithAuditSink(sink).
		Build()
	if err != nil {
		mr.Close()
		t.Fatalf("Build failed: %v", err)
	}
	if _, err := engine.Restore(context.Background()); err != nil {
		engine.Close()
		mr.Close()
		t.Fatalf("Restore failed: %v", err)
	}

	return engine, func() {
		engine.Close()
		mr.Close()
	}
}

func collectEvents(t *testing.T, sink *ChannelSink, n int) []AuditEvent {
	t.Helper()

	out := make([]AuditEvent, 0, n)
	for len(out) < n {
		select {
		case ev := <-sink.Events():
			out = append(out, ev)
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out after %d of %d events", len(out), n)
		}
	}
	return out
}

func TestAuditLoginFlowEvents(t *testing.T) {
	sink := NewChannelSink(64)
	engine, done := newAuditedEngine(t, sink)
	defer done()

	// Restore on an empty store has already emitted one event.
	events := collectEvents(t, sink, 1)
	if events[0].EventType != auditEventSessionRestoreEmpty {
		t.Fatalf("expected restore_empty first, got %s", events[0].EventType)
	}

	ctx := WithDeviceID(context.Background(), "install-9")
	if _, err := engine.Login(ctx, ownerPayload()); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if _, err := engine.SelectBuilding(ctx, Building{ID: 4}); err != nil {
		t.Fatalf("SelectBuilding failed: %v", err)
	}
	if err := engine.Logout(ctx); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}

	events = collectEvents(t, sink, 3)

	if events[0].EventType != auditEventLoginSuccess || !events[0].Success {
		t.Fatalf("expected login_success, got %+v", events[0])
	}
	if events[0].ClientID != 42 || events[0].DeviceID != "install-9" {
		t.Fatalf("login event missing identity: %+v", events[0])
	}
	if events[0].State != "owner_building_select" {
		t.Fatalf("expected resulting state on login event, got %q", events[0].State)
	}

	if events[1].EventType != auditEventBuildingSelected {
		t.Fatalf("expected building_selected, got %s", events[1].EventType)
	}
	if events[1].Metadata["building_id"] != "4" {
		t.Fatalf("expected building id metadata, got %+v", events[1].Metadata)
	}

	if events[2].EventType != auditEventLogoutSession {
		t.Fatalf("expected logout_session, got %s", events[2].EventType)
	}
}

func TestAuditInvalidPayloadCarriesErrorCode(t *testing.T) {
	sink := NewChannelSink(64)
	engine, done := newAuditedEngine(t, sink)
	defer done()

	collectEvents(t, sink, 1) // restore event

	_, _ = engine.Login(context.Background(), RawPayload{"loginKey": "k"})

	events := collectEvents(t, sink, 1)
	if events[0].EventType != auditEventLoginInvalidPayload || events[0].Success {
		t.Fatalf("expected failed login_invalid_payload, got %+v", events[0])
	}
	if events[0].Error != string(auditErrInvalidPayload) {
		t.Fatalf("expected invalid_payload code, got %q", events[0].Error)
	}
}

func TestAuditDisabledEmitsNothing(t *testing.T) {
	engine, _, done := newRestoredEngine(t, defaultConfig())
	defer done()

	if _, err := engine.Login(context.Background(), tenantPayload()); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if engine.AuditDropped() != 0 {
		t.Fatal("disabled audit must never count drops")
	}
}

func TestAuditCloseDrainsBufferedEvents(t *testing.T) {
	var buf bytes.Buffer
	sink := NewJSONWriterSink(&buf)
	engine, done := newAuditedEngine(t, sink)

	if _, err := engine.Login(context.Background(), tenantPayload()); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	done()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) < 2 {
		t.Fatalf("expected restore and login events flushed, got %d lines", len(lines))
	}

	var last AuditEvent
	if err := json.Unmarshal([]byte(lines[len(lines)-1]), &last); err != nil {
		t.Fatalf("sink output not valid JSON: %v", err)
	}
	if last.EventType != auditEventLoginSuccess {
		t.Fatalf("expected login_success last, got %s", last.EventType)
	}
}

func TestDispatcherDropsWhenFull(t *testing.T) {
	blocked := make(chan struct{})
	sink := blockingSink{release: blocked}

	d := newAuditDispatcher(AuditConfig{
		Enabled:    true,
		BufferSize: 1,
		DropIfFull: true,
	}, sink)

	// First event occupies the worker, second fills the buffer, third
	// must be dropped.
	d.Emit(context.Background(), AuditEvent{EventType: "a"})
	d.Emit(context.Background(), AuditEvent{EventType: "b"})

	deadline := time.After(2 * time.Second)
	for d.Dropped() == 0 {
		d.Emit(context.Background(), AuditEvent{EventType: "c"})
		select {
		case <-deadline:
			t.Fatal("expected dropped event under backpressure")
		default:
		}
	}

	close(blocked)
	d.Close()
}

type blockingSink struct {
	release chan struct{}
}

func (s blockingSink) Emit(_ context.Context, _ AuditEvent) {
	<-s.release
}
