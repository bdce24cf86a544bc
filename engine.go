package sessionnav

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ubillmobile/sessionnav/session"
)

// Engine is the single mutation point for session state: it orchestrates
// the normalizer, the resolver and the durable store, and exposes the
// current session record and application state to the rest of the client.
//
// Engine instances are intended to be configured during initialization and
// then treated as immutable unless documented otherwise. Mutating
// operations are serialized; a half-applied record is never observable.
type Engine struct {
	config  Config
	store   *session.Store
	audit   *auditDispatcher
	metrics *Metrics

	// ops serializes Restore, Login, Logout and SelectBuilding end to
	// end, including their durable writes. mu guards the record for
	// readers, which never block on storage I/O: the in-memory copy is
	// updated before the durable write is issued.
	ops sync.Mutex
	mu  sync.RWMutex

	record       *session.Record
	rejectReason string

	ready    chan struct{}
	restored atomic.Bool
}

// Close flushes and stops the audit dispatcher.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	if e.audit != nil {
		e.audit.Close()
	}
}

// AuditDropped reports audit events discarded under backpressure.
func (e *Engine) AuditDropped() uint64 {
	if e == nil || e.audit == nil {
		return 0
	}
	return e.audit.Dropped()
}

// MetricsSnapshot returns a point-in-time copy of all metrics.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil || e.metrics == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return e.metrics.Snapshot()
}

func (e *Engine) metricInc(id MetricID) {
	if e == nil || e.metrics == nil {
		return
	}
	e.metrics.Inc(id)
}

// Ready returns a channel closed once the startup [Engine.Restore] has
// completed. Consumers that wait on it never observe the uninitialized
// engine.
func (e *Engine) Ready() <-chan struct{} {
	return e.ready
}

// Restore performs the one-time startup load of the persisted session.
// It always completes the engine's ready gate, even when the store is
// unreachable: a client that cannot read its stored session starts
// unauthenticated, and the store error is surfaced alongside that state.
// Calling Restore again is a no-op returning the current state.
func (e *Engine) Restore(ctx context.Context) (AppState, error) {
	e.ops.Lock()
	defer e.ops.Unlock()

	if e.restored.Load() {
		return e.snapshotState(), nil
	}

	rec, err := e.store.Load(ctx)

	e.mu.Lock()
	e.record = rec
	e.rejectReason = ""
	e.mu.Unlock()

	e.restored.Store(true)
	close(e.ready)

	state := e.snapshotState()
	if err != nil {
		e.emitAudit(ctx, auditEventSessionRestoreEmpty, false, 0, state.Tag, err, nil)
		return state, err
	}

	if rec != nil {
		e.metricInc(MetricRestoreRestored)
		e.emitAudit(ctx, auditEventSessionRestored, true, rec.ClientID, state.Tag, nil, nil)
	} else {
		e.metricInc(MetricRestoreEmpty)
		e.emitAudit(ctx, auditEventSessionRestoreEmpty, true, 0, state.Tag, nil, nil)
	}

	return state, nil
}

// CurrentState resolves the application state for the in-memory record.
// It fails with [ErrEngineNotReady] until the startup Restore completes;
// afterwards it is pure computation with no storage round-trip.
func (e *Engine) CurrentState() (AppState, error) {
	if e == nil || !e.restored.Load() {
		return AppState{Tag: StateUnauthenticated}, ErrEngineNotReady
	}
	return e.snapshotState(), nil
}

// CurrentRecord returns a copy of the in-memory session record. The second
// return is false when no session is active or the engine is not restored.
func (e *Engine) CurrentRecord() (*session.Record, bool) {
	if e == nil || !e.restored.Load() {
		return nil, false
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.record == nil {
		return nil, false
	}
	return e.record.Clone(), true
}

// SetRejectReason records the free-text rejection reason carried alongside
// the session record, typically sourced from a fuller profile refresh. It
// is cleared on login and logout.
func (e *Engine) SetRejectReason(reason string) {
	if e == nil {
		return
	}
	e.mu.Lock()
	e.rejectReason = reason
	e.mu.Unlock()
}

func (e *Engine) snapshotState() AppState {
	if e.metrics != nil && e.metrics.LatencyEnabled() {
		start := time.Now()
		defer func() {
			e.metrics.Observe(MetricResolveLatency, time.Since(start))
		}()
	}

	e.mu.RLock()
	rec := e.record
	hint := e.rejectReason
	e.mu.RUnlock()

	state := Resolve(rec, hint)
	if state.Tag == StateApprovalRejected &&
		state.RejectReason == defaultRejectedReason &&
		e.config.Routing.RejectedReasonFallback != "" {
		state.RejectReason = e.config.Routing.RejectedReasonFallback
	}
	return state
}
