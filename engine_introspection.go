package sessionnav

import (
	"context"
	"time"
)

// SessionInfo is the safe introspection view for the active session.
// It intentionally excludes the login key and other credential material.
type SessionInfo struct {
	ClientID     int64
	ClientTypeID int64
	Status       int64
	Name         string
	OfficeNumber string
	BuildingName string
	HasBuilding  bool
}

// HealthStatus is an on-demand backend health result.
type HealthStatus struct {
	RedisAvailable bool
	RedisLatency   time.Duration
}

// SessionInfoSnapshot returns the masked view of the active session. The
// second return is false when no session is active or the engine is not
// restored.
func (e *Engine) SessionInfoSnapshot() (SessionInfo, bool) {
	rec, ok := e.CurrentRecord()
	if !ok {
		return SessionInfo{}, false
	}

	return SessionInfo{
		ClientID:     rec.ClientID,
		ClientTypeID: rec.ClientTypeID,
		Status:       rec.Status,
		Name:         rec.Name,
		OfficeNumber: rec.OfficeNumber,
		BuildingName: rec.BuildingName,
		HasBuilding:  rec.SelectedBuilding != nil,
	}, true
}

// Health probes the durable store. It never touches the in-memory record,
// so it is safe to call from a watchdog at any cadence.
func (e *Engine) Health(ctx context.Context) HealthStatus {
	if e == nil || e.store == nil {
		return HealthStatus{}
	}

	latency, err := e.store.Ping(ctx)
	return HealthStatus{
		RedisAvailable: err == nil,
		RedisLatency:   latency,
	}
}
