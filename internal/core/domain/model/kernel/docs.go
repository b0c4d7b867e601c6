// Package kernel provides core domain primitives shared by the shopsecure aggregates.
//
// The package includes:
//   - UUID: internal identifier for users, orders and audit records
//   - OrderCode: the opaque customer-facing order code
//   - Email: a validated, case-normalised contact address
//
// The zero value of every primitive is invalid; each exposes Validate so that
// aggregates can reject values that bypassed the constructors.
package kernel
