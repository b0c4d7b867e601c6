// Package order provides the Order aggregate: the customer order whose delivery is
// confirmed with a one-time passcode and whose delivered state gates returns.
//
// The package includes:
//   - Order: the aggregate root holding identity, amount, address, lifecycle status and passcode
//   - Status: the coarse lifecycle gate, Pending -> Delivered
//   - Passcode: the per-order one-time passcode and its explicit state machine
//   - PasscodePolicy: expiry window and attempt limit applied at verification time
//
// Key business rules:
//   - A passcode is only issued or verified while the order is Pending
//   - Verification checks expiry, then the attempt limit, then the submitted value
//   - A wrong value increments the attempt counter; reaching the limit locks the passcode
//   - Successful verification consumes the passcode and moves the order to Delivered
//   - Returns are only accepted for Delivered orders
//
// The aggregate is the only writer of its status and passcode fields.
package order
