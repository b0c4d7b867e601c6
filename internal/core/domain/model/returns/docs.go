// Package returns provides the ReturnRequest entity and the categorical outcome of
// the return fraud check.
//
// A ReturnRequest is append-only: it is created once per accepted submission for a
// Delivered order and never updated afterwards. Decision and Severity are shared
// with the security audit log.
package returns
