// Package api is the thin HTTP glue to the uBill billing backend: login,
// approved-client profile refresh, and the owner building lookup used by
// the building-selection handoff.
//
// # Architecture boundaries
//
// The client returns raw payloads exactly as the backend produced them;
// normalization into the canonical session record is the root package's
// job. The building list is an opaque pass-through: only the wire-level
// field aliasing needed to address an item is resolved here.
//
// # What this package must NOT do
//
//   - Retry or back off. The caller owns retry policy.
//   - Interpret role or approval semantics.
package api
