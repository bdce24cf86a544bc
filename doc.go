// Package sessionnav implements the session and navigation resolution engine
// for the uBill property-management mobile client: durable single-session
// persistence, normalization of heterogeneous backend login/profile payloads
// into one canonical record, and deterministic resolution of the top-level
// application state shown to the user.
//
// The package is designed around one [Engine] instance per running client,
// built through [Builder.Build]. Engine methods are safe to call from
// multiple goroutines after initialization; mutating operations (login,
// logout, building selection) are serialized internally.
//
// # Architecture boundaries
//
// sessionnav is the public surface. It exposes [Engine], [Builder], [Config],
// the [AppState] tags, and value types (MetricsSnapshot, AuditEvent).
// Durable persistence lives in the session subpackage, backend HTTP glue in
// the api subpackage, and metric export in metrics/export. Screen rendering,
// network retry and the approval/ticket/payment workflows are external
// collaborators — this engine hands off to them and never reimplements them.
//
// # What this package must NOT do
//
//   - Invent navigation tags beyond the closed [StateTag] set; the screen
//     router must be forced to handle every tag.
//   - Re-inspect raw backend field spellings outside the normalizer.
//   - Retry storage or network operations; retries belong to the caller.
//
// # Performance contract
//
// CurrentState is the hot path: it must not touch Redis and must not
// allocate beyond the returned AppState value. Login, Logout, SelectBuilding
// and Restore are allowed one Redis round-trip per call.
package sessionnav
