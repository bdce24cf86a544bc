package sessionnav

import (
	"github.com/ubillmobile/sessionnav/session"
)

// Role is the client-type discriminator carried in backend payloads.
// Canonical domain values are owner (1) and tenant (2); everything else is
// unknown and fails open to the dashboard.
type Role int64

const (
	// RoleOwner is an owner client type.
	RoleOwner Role = 1
	// RoleTenant is a tenant client type.
	RoleTenant Role = 2
)

// StatusApproved is the approval status value that admits a client to the
// dashboard; any other status (including absent) is not approved.
const StatusApproved int64 = 1

// submissionRejected is the only recognized submission-status value,
// matched case-insensitively by the resolver.
const submissionRejected = "rejected"

// defaultRejectedReason backs ApprovalRejected when neither a caller hint
// nor the payload's submission text is available.
const defaultRejectedReason = "Request rejected"

// StateTag enumerates the closed set of top-level application states. The
// screen router consumes exactly these five tags and must handle every one.
type StateTag uint8

const (
	// StateUnauthenticated routes to the login screen.
	StateUnauthenticated StateTag = iota
	// StateOwnerBuildingSelect routes an approved owner to building selection.
	StateOwnerBuildingSelect
	// StateDashboard routes to the main landing screen.
	StateDashboard
	// StateApprovalPending routes to the pending-approval holding screen.
	StateApprovalPending
	// StateApprovalRejected routes to the rejection screen.
	StateApprovalRejected
)

// String returns the router-facing name of the tag.
func (t StateTag) String() string {
	switch t {
	case StateUnauthenticated:
		return "unauthenticated"
	case StateOwnerBuildingSelect:
		return "owner_building_select"
	case StateDashboard:
		return "dashboard"
	case StateApprovalPending:
		return "approval_pending"
	case StateApprovalRejected:
		return "approval_rejected"
	default:
		return "unknown"
	}
}

// AppState is the single top-level routing decision derived from session
// state. It is recomputed on every record change and never persisted.
// RejectReason is populated only for [StateApprovalRejected].
type AppState struct {
	Tag          StateTag
	RejectReason string
}

// Record is the canonical session record. See [session.Record].
type Record = session.Record

// Building identifies an owner-managed building. See [session.Building].
type Building = session.Building
