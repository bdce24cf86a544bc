package internaldefs

import (
	sessionnav "github.com/ubillmobile/sessionnav"
)

// CounterDef binds a metric ID to its exported name and help text.
type CounterDef struct {
	ID   sessionnav.MetricID
	Name string
	Help string
}

// HistogramDef binds a histogram metric ID to its exported name and help
// text.
type HistogramDef struct {
	ID   sessionnav.MetricID
	Name string
	Help string
}

// CounterDefs is the canonical export order for all counters.
var CounterDefs = []CounterDef{
	{ID: sessionnav.MetricLoginSuccess, Name: "sessionnav_login_success_total", Help: "Accepted login payloads."},
	{ID: sessionnav.MetricLoginInvalidPayload, Name: "sessionnav_login_invalid_payload_total", Help: "Logins rejected by payload normalization."},
	{ID: sessionnav.MetricLogout, Name: "sessionnav_logout_total", Help: "Logout operations."},
	{ID: sessionnav.MetricBuildingSelected, Name: "sessionnav_building_selected_total", Help: "Completed owner building selections."},
	{ID: sessionnav.MetricInvalidTransition, Name: "sessionnav_invalid_transition_total", Help: "Operations invoked in a state that does not permit them."},
	{ID: sessionnav.MetricRestoreRestored, Name: "sessionnav_restore_restored_total", Help: "Startup loads that produced a session."},
	{ID: sessionnav.MetricRestoreEmpty, Name: "sessionnav_restore_empty_total", Help: "Startup loads with no usable stored session."},
	{ID: sessionnav.MetricSessionSaveFailed, Name: "sessionnav_session_save_failed_total", Help: "Durable session writes that failed."},
	{ID: sessionnav.MetricSessionClearFailed, Name: "sessionnav_session_clear_failed_total", Help: "Durable session clears that failed."},
}

// HistogramDefs is the canonical export order for all histograms.
var HistogramDefs = []HistogramDef{
	{ID: sessionnav.MetricResolveLatency, Name: "sessionnav_resolve_latency_seconds", Help: "State resolution latency histogram."},
}

// HistogramBounds are the bucket upper bounds in seconds, aligned with the
// core bucket layout.
var HistogramBounds = []string{
	"0.000001",
	"0.000005",
	"0.00001",
	"0.00005",
	"0.0001",
	"0.0005",
	"0.001",
	"+Inf",
}

// HistogramBoundSuffix mirrors HistogramBounds with names usable as
// instrument suffixes.
var HistogramBoundSuffix = []string{
	"1us",
	"5us",
	"10us",
	"50us",
	"100us",
	"500us",
	"1ms",
	"inf",
}

// NormalizeBuckets pads or truncates a raw bucket slice to the fixed width.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets converts per-bucket counts into the cumulative form
// exporters expect.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
