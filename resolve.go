package sessionnav

import (
	"strings"

	"github.com/ubillmobile/sessionnav/session"
)

// Resolve computes the application state for a session record. It is pure,
// total and deterministic: no I/O, no clock, same input always yields the
// same state. A nil record is the unauthenticated state.
//
// Approval is checked only after the role is known because rejection and
// pending semantics differ between owners and tenants. When a payload
// carries both an approved status and rejected submission text, approval
// wins: the status field is authoritative over free text.
//
// reasonHint overrides the rejection reason shown to the user; when empty,
// the payload's submission text is used verbatim, falling back to a fixed
// message.
func Resolve(rec *session.Record, reasonHint string) AppState {
	if rec == nil {
		return AppState{Tag: StateUnauthenticated}
	}

	switch Role(rec.ClientTypeID) {
	case RoleOwner:
		if rec.Status == StatusApproved {
			if rec.SelectedBuilding == nil {
				return AppState{Tag: StateOwnerBuildingSelect}
			}
			return AppState{Tag: StateDashboard}
		}
		return resolveUnapproved(rec, reasonHint)

	case RoleTenant:
		// An approved tenant always lands on the dashboard; building
		// selection is an owner-only detour.
		if rec.Status == StatusApproved {
			return AppState{Tag: StateDashboard}
		}
		return resolveUnapproved(rec, reasonHint)

	default:
		// Unknown client type: fail open to the generic landing state
		// rather than lock an unrecognized role out entirely.
		return AppState{Tag: StateDashboard}
	}
}

func resolveUnapproved(rec *session.Record, reasonHint string) AppState {
	if strings.EqualFold(rec.SubmissionStatus, submissionRejected) {
		reason := reasonHint
		if reason == "" {
			reason = rec.SubmissionStatus
		}
		if reason == "" {
			reason = defaultRejectedReason
		}
		return AppState{Tag: StateApprovalRejected, RejectReason: reason}
	}
	return AppState{Tag: StateApprovalPending}
}
