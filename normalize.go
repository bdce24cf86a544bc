package sessionnav

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ubillmobile/sessionnav/session"
)

// RawPayload is the untrusted shape produced by the backend login and
// profile endpoints: string keys whose spellings, types and presence vary
// across endpoints. It exists only as normalizer input.
type RawPayload map[string]any

// Field-name variants observed across backend responses, in priority
// order: the first present, non-null value wins. Messy input is confined
// here; nothing downstream re-inspects raw spellings.
var (
	clientIDAliases     = []string{"ClientId", "clientId", "ClientID", "clientid"}
	officeIDAliases     = []string{"unit", "Unit", "officeId", "OfficeId"}
	clientTypeAliases   = []string{"ClientTypeid", "ClientTypeId", "clientTypeId", "ClientType", "clientType"}
	statusAliases       = []string{"status", "Status"}
	submissionAliases   = []string{"SubmissionStatus", "submissionStatus"}
	nameAliases         = []string{"FirstName", "firstName", "Name", "name"}
	emailAliases        = []string{"EMail", "Email", "email"}
	mobileAliases       = []string{"MobileNumber", "mobileNumber", "Mobile", "mobile"}
	loginKeyAliases     = []string{"loginKey", "LoginKey"}
	officeNumberAliases = []string{"OfficeNumber", "officeNumber"}
	buildingNameAliases = []string{"buildingName", "BuildingName"}
)

// Normalize maps a raw backend payload to the canonical session record.
// It is total and side-effect-free: for any input it either returns a
// fully populated record or fails with [ErrInvalidPayload].
//
// Identity is non-negotiable. A payload whose client id is missing or
// non-numeric, or whose login key is absent, must never be persisted as
// "logged in", so the whole normalization fails instead of producing a
// broken record. Everything else degrades to a safe default.
func Normalize(raw RawPayload) (*session.Record, error) {
	clientID, ok := lookupInt(raw, clientIDAliases)
	if !ok {
		return nil, fmt.Errorf("%w: client id missing or not numeric", ErrInvalidPayload)
	}

	loginKey := strings.TrimSpace(lookupString(raw, loginKeyAliases))
	if loginKey == "" {
		return nil, fmt.Errorf("%w: login key missing", ErrInvalidPayload)
	}

	// Office id defaults to zero when absent, but a present value that
	// cannot be parsed is the same identity-corruption signal as a bad
	// client id.
	officeID := int64(0)
	if v, present := lookup(raw, officeIDAliases); present {
		officeID, ok = coerceInt(v)
		if !ok {
			return nil, fmt.Errorf("%w: office id not numeric", ErrInvalidPayload)
		}
	}

	clientTypeID := int64(0)
	if v, present := lookup(raw, clientTypeAliases); present {
		// Domain-unvalidated on purpose: values outside {1,2} pass
		// through for the resolver's unknown-role branch.
		if n, numOK := coerceInt(v); numOK {
			clientTypeID = n
		}
	}

	status := int64(0)
	if v, present := lookup(raw, statusAliases); present {
		if n, numOK := coerceInt(v); numOK {
			status = n
		}
	}

	// Submission text is kept verbatim. The resolver compares it
	// case-insensitively, and the same text doubles as the user-visible
	// rejection reason, so lowercasing here would mangle it.
	submission := lookupString(raw, submissionAliases)

	return &session.Record{
		Name:             lookupString(raw, nameAliases),
		Email:            lookupString(raw, emailAliases),
		Mobile:           lookupString(raw, mobileAliases),
		ClientID:         clientID,
		OfficeID:         officeID,
		OfficeNumber:     lookupString(raw, officeNumberAliases),
		BuildingName:     lookupString(raw, buildingNameAliases),
		LoginKey:         loginKey,
		ClientTypeID:     clientTypeID,
		Status:           status,
		SubmissionStatus: submission,
	}, nil
}

func lookup(raw RawPayload, aliases []string) (any, bool) {
	for _, key := range aliases {
		if v, ok := raw[key]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func lookupInt(raw RawPayload, aliases []string) (int64, bool) {
	v, ok := lookup(raw, aliases)
	if !ok {
		return 0, false
	}
	return coerceInt(v)
}

func lookupString(raw RawPayload, aliases []string) string {
	v, ok := lookup(raw, aliases)
	if !ok {
		return ""
	}
	s, _ := coerceString(v)
	return s
}

// coerceInt accepts both numeric and numeric-string inputs. The literal
// string "0" is a valid zero, not an absence. Non-finite floats are
// rejected the same way unparseable strings are.
func coerceInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return int64(n), true
	case float32:
		return coerceInt(float64(n))
	case json.Number:
		return coerceInt(string(n))
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0, false
		}
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return i, true
		}
		// Backend numerics occasionally arrive as "7.0".
		if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			return int64(f), true
		}
		return 0, false
	default:
		return 0, false
	}
}

func coerceString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case json.Number:
		return string(s), true
	case float64:
		if s == math.Trunc(s) && !math.IsNaN(s) && !math.IsInf(s, 0) {
			return strconv.FormatInt(int64(s), 10), true
		}
		return strconv.FormatFloat(s, 'f', -1, 64), true
	case int:
		return strconv.Itoa(s), true
	case int64:
		return strconv.FormatInt(s, 10), true
	case bool:
		return strconv.FormatBool(s), true
	default:
		return "", false
	}
}
