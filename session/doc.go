// Package session owns the canonical session record and its durable
// persistence: one JSON document under one fixed Redis key.
//
// # Components
//
//   - [Record] — canonical representation of the authenticated user and
//     their role/approval state. Fully populated or absent, never partial.
//   - [Store] — load/save/clear lifecycle over go-redis. A corrupt stored
//     document is treated as "no session" and logged; it must never crash
//     startup.
//
// # Architecture boundaries
//
// This package owns the persisted layout (versionless JSON, tolerant of
// absent and extra fields). It does NOT decide what goes into a record —
// normalization belongs to the root package — and it does NOT interpret
// role or approval semantics.
package session
