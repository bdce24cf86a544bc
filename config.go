package sessionnav

import (
	"errors"
	"time"
)

// Config defines a public type used by sessionnav APIs.
//
// Config instances are intended to be configured during initialization and
// then treated as immutable unless documented otherwise.
type Config struct {
	Session SessionConfig
	Routing RoutingConfig
	Audit   AuditConfig
	Metrics MetricsConfig
}

/*
====================================
SESSION CONFIG
====================================
*/

// SessionConfig controls the durable key-value layout and lifetime of the
// persisted session record.
type SessionConfig struct {
	RedisPrefix string
	StorageKey  string
	// RecordTTL bounds how long a persisted record survives without a
	// fresh save. Zero keeps it until logout.
	RecordTTL time.Duration
}

/*
====================================
ROUTING CONFIG
====================================
*/

// RoutingConfig tunes resolver output that is surfaced to the user.
type RoutingConfig struct {
	// RejectedReasonFallback replaces the built-in fallback text shown on
	// the rejection screen when neither the caller nor the payload
	// supplies a reason.
	RejectedReasonFallback string
}

/*
====================================
AUDIT CONFIG
====================================
*/

// AuditConfig controls the async audit dispatcher.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

/*
====================================
METRICS CONFIG
====================================
*/

// MetricsConfig controls the in-process metrics system.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

// DefaultConfig returns the baseline configuration: an "sn:record" storage
// key, no TTL, audit and metrics disabled.
func DefaultConfig() Config {
	return defaultConfig()
}

func defaultConfig() Config {
	return Config{
		Session: SessionConfig{
			RedisPrefix: "sn",
			StorageKey:  "record",
			RecordTTL:   0,
		},
		Routing: RoutingConfig{
			RejectedReasonFallback: defaultRejectedReason,
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 256,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled: false,
		},
	}
}

func cloneConfig(cfg Config) Config {
	// All fields are value types; a shallow copy is a deep copy.
	return cfg
}

// Validate rejects configurations the engine cannot honor.
func (c Config) Validate() error {
	if c.Session.RecordTTL < 0 {
		return errors.New("Session.RecordTTL must not be negative")
	}
	if c.Audit.Enabled && c.Audit.BufferSize < 0 {
		return errors.New("Audit.BufferSize must not be negative")
	}
	return nil
}
