package sessionnav

import (
	"context"
	"errors"
	"time"

	"github.com/ubillmobile/sessionnav/session"
)

const (
	auditEventLoginSuccess        = "login_success"
	auditEventLoginInvalidPayload = "login_invalid_payload"
	auditEventLogoutSession       = "logout_session"
	auditEventBuildingSelected    = "building_selected"
	auditEventInvalidTransition   = "invalid_transition"
	auditEventSessionRestored     = "session_restored"
	auditEventSessionRestoreEmpty = "session_restore_empty"
	auditEventSessionSaveFailed   = "session_save_failed"
	auditEventSessionClearFailed  = "session_clear_failed"
)

// AuditErrorCode is a stable machine-readable error label carried in
// [AuditEvent.Error].
type AuditErrorCode string

const (
	auditErrInvalidPayload    AuditErrorCode = "invalid_payload"
	auditErrInvalidTransition AuditErrorCode = "invalid_state_transition"
	auditErrNotReady          AuditErrorCode = "engine_not_restored"
	auditErrSaveFailed        AuditErrorCode = "session_save_failed"
	auditErrClearFailed       AuditErrorCode = "session_clear_failed"
	auditErrStoreUnavailable  AuditErrorCode = "store_unavailable"
	auditErrInternal          AuditErrorCode = "internal_error"
)

func (e *Engine) emitAudit(
	ctx context.Context,
	eventType string,
	success bool,
	clientID int64,
	state StateTag,
	err error,
	metadataBuilder func() map[string]string,
) {
	if e == nil || e.audit == nil {
		return
	}

	var metadata map[string]string
	if metadataBuilder != nil {
		metadata = metadataBuilder()
	}

	event := AuditEvent{
		Timestamp: time.Now().UTC(),
		EventType: eventType,
		ClientID:  clientID,
		DeviceID:  deviceIDFromContext(ctx),
		State:     state.String(),
		Success:   success,
		Metadata:  metadata,
	}
	if code := auditErrorCode(err); code != "" {
		event.Error = string(code)
	}

	e.audit.Emit(ctx, event)
}

func auditErrorCode(err error) AuditErrorCode {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, ErrInvalidPayload):
		return auditErrInvalidPayload
	case errors.Is(err, ErrInvalidStateTransition):
		return auditErrInvalidTransition
	case errors.Is(err, ErrEngineNotReady):
		return auditErrNotReady
	case errors.Is(err, ErrSessionSaveFailed):
		return auditErrSaveFailed
	case errors.Is(err, ErrSessionClearFailed):
		return auditErrClearFailed
	case errors.Is(err, session.ErrStoreUnavailable):
		return auditErrStoreUnavailable
	default:
		return auditErrInternal
	}
}
