package sessionnav

import (
	"context"
	"fmt"
)

// Login normalizes a raw backend login or profile payload and, on success,
// atomically replaces the in-memory session record and persists it. The
// returned state is the one the screen router should show next.
//
// On [ErrInvalidPayload] the previous session, if any, is left untouched
// and the current state is returned unchanged. A failed durable write is
// surfaced as [ErrSessionSaveFailed] together with the advanced state: the
// in-memory record remains authoritative for this process lifetime, the
// session merely may not survive a restart.
func (e *Engine) Login(ctx context.Context, raw RawPayload) (AppState, error) {
	e.ops.Lock()
	defer e.ops.Unlock()

	if !e.restored.Load() {
		return AppState{Tag: StateUnauthenticated}, ErrEngineNotReady
	}

	rec, err := Normalize(raw)
	if err != nil {
		e.metricInc(MetricLoginInvalidPayload)
		e.emitAudit(ctx, auditEventLoginInvalidPayload, false, 0, e.snapshotState().Tag, err, nil)
		return e.snapshotState(), err
	}

	e.mu.Lock()
	e.record = rec
	e.rejectReason = ""
	e.mu.Unlock()

	state := e.snapshotState()
	e.metricInc(MetricLoginSuccess)
	e.emitAudit(ctx, auditEventLoginSuccess, true, rec.ClientID, state.Tag, nil, nil)

	if err := e.store.Save(ctx, rec); err != nil {
		e.metricInc(MetricSessionSaveFailed)
		e.emitAudit(ctx, auditEventSessionSaveFailed, false, rec.ClientID, state.Tag, ErrSessionSaveFailed, nil)
		return state, fmt.Errorf("%w: %v", ErrSessionSaveFailed, err)
	}

	return state, nil
}
