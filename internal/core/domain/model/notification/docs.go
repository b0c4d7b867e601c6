// Package notification provides the outbox entry kept for a passcode message that
// could not be delivered when it was issued.
//
// Entries are retried by a background job until they are delivered, their
// passcode expires (Abandoned) or a newer passcode for the same order replaces
// them (Superseded).
package notification
