package sessionnav

import (
	"context"
	"fmt"
	"log"
)

// Logout clears the in-memory session and the persisted record. It is
// idempotent: with no active session it is a no-op success. A failed
// durable clear is surfaced as [ErrSessionClearFailed]; the in-memory
// session is already gone either way, so the failure only means the stale
// record may reappear on the next restart.
func (e *Engine) Logout(ctx context.Context) error {
	e.ops.Lock()
	defer e.ops.Unlock()

	if !e.restored.Load() {
		return ErrEngineNotReady
	}

	e.mu.Lock()
	had := e.record != nil
	clientID := int64(0)
	if had {
		clientID = e.record.ClientID
	}
	e.record = nil
	e.rejectReason = ""
	e.mu.Unlock()

	err := e.store.Clear(ctx)
	if !had {
		// No active session: the wipe is best-effort hygiene only.
		if err != nil {
			log.Print("sessionnav: best-effort clear of stale session record failed")
		}
		return nil
	}

	e.metricInc(MetricLogout)
	e.emitAudit(ctx, auditEventLogoutSession, err == nil, clientID, StateUnauthenticated, nil, nil)

	if err != nil {
		e.metricInc(MetricSessionClearFailed)
		e.emitAudit(ctx, auditEventSessionClearFailed, false, clientID, StateUnauthenticated, ErrSessionClearFailed, nil)
		return fmt.Errorf("%w: %v", ErrSessionClearFailed, err)
	}

	return nil
}
