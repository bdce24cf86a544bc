package sessionnav

import "errors"

var (
	// ErrInvalidPayload reports that a backend payload could not establish a
	// session identity (missing or non-numeric client id, missing login key).
	// The login attempt is rejected; the previous session, if any, survives.
	ErrInvalidPayload = errors.New("invalid session payload")
	// ErrInvalidStateTransition reports an operation invoked in an
	// application state that does not permit it. It signals a programming
	// defect in the caller, not a user-facing condition.
	ErrInvalidStateTransition = errors.New("invalid state transition")
	// ErrEngineNotReady reports use of the engine before the startup Restore
	// has completed.
	ErrEngineNotReady = errors.New("engine not restored")
	// ErrSessionSaveFailed reports that the in-memory session advanced but
	// the durable write failed. The in-memory record remains authoritative
	// for the current process lifetime.
	ErrSessionSaveFailed = errors.New("session save failed")
	// ErrSessionClearFailed reports that the persisted session could not be
	// removed during logout. The in-memory session is already gone.
	ErrSessionClearFailed = errors.New("session clear failed")
)
