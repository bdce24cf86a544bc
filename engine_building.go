package sessionnav

import (
	"context"
	"fmt"
)

// SelectBuilding completes the owner building-selection handoff: it
// replaces the session record wholesale with the selection applied and
// persists the result.
//
// The operation is contract-valid only while the current state is
// [StateOwnerBuildingSelect]; calling it in any other state signals a
// defect in the caller and fails with [ErrInvalidStateTransition] without
// touching the record.
func (e *Engine) SelectBuilding(ctx context.Context, b Building) (AppState, error) {
	e.ops.Lock()
	defer e.ops.Unlock()

	if !e.restored.Load() {
		return AppState{Tag: StateUnauthenticated}, ErrEngineNotReady
	}

	cur := e.snapshotState()
	if cur.Tag != StateOwnerBuildingSelect {
		e.metricInc(MetricInvalidTransition)
		e.emitAudit(ctx, auditEventInvalidTransition, false, 0, cur.Tag, ErrInvalidStateTransition, func() map[string]string {
			return map[string]string{
				"operation": "select_building",
			}
		})
		return cur, fmt.Errorf("%w: select building in state %s", ErrInvalidStateTransition, cur.Tag)
	}

	e.mu.Lock()
	next := e.record.Clone()
	sel := b
	next.SelectedBuilding = &sel
	if b.Name != "" {
		next.BuildingName = b.Name
	}
	e.record = next
	e.mu.Unlock()

	state := e.snapshotState()
	e.metricInc(MetricBuildingSelected)
	e.emitAudit(ctx, auditEventBuildingSelected, true, next.ClientID, state.Tag, nil, func() map[string]string {
		return map[string]string{
			"building_id": fmt.Sprintf("%d", b.ID),
		}
	})

	if err := e.store.Save(ctx, next); err != nil {
		e.metricInc(MetricSessionSaveFailed)
		e.emitAudit(ctx, auditEventSessionSaveFailed, false, next.ClientID, state.Tag, ErrSessionSaveFailed, nil)
		return state, fmt.Errorf("%w: %v", ErrSessionSaveFailed, err)
	}

	return state, nil
}
