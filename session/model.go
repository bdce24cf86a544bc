package session

// Building identifies a building an owner manages. Only the ID is
// load-bearing; name and address are display values carried through from
// the lookup endpoint.
type Building struct {
	ID      int64  `json:"id"`
	Name    string `json:"name,omitempty"`
	Address string `json:"address,omitempty"`
}

// Record defines a public type used by sessionnav APIs.
//
// Record instances are produced by normalization, persisted as one JSON
// document, and replaced wholesale on every mutation; no field is updated
// in place outside the engine.
type Record struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Mobile string `json:"mobile"`

	ClientID int64 `json:"clientId"`
	OfficeID int64 `json:"officeId"`

	OfficeNumber string `json:"officeNumber"`
	BuildingName string `json:"buildingName"`

	LoginKey string `json:"loginKey"`

	ClientTypeID     int64  `json:"clientTypeId"`
	Status           int64  `json:"status"`
	SubmissionStatus string `json:"submissionStatus,omitempty"`

	SelectedBuilding *Building `json:"selectedBuilding,omitempty"`
}

// Clone returns a deep copy so callers can hand records out without
// exposing the engine's authoritative copy to mutation.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	out := *r
	if r.SelectedBuilding != nil {
		b := *r.SelectedBuilding
		out.SelectedBuilding = &b
	}
	return &out
}
