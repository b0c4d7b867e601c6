// Package user provides the User aggregate and the authenticated Principal.
//
// Customers and administrators are the same kind of record distinguished by Role;
// there is one credential path for both. Consecutive failed logins are counted on
// the user and lock the account once LoginPolicy's limit is reached.
package user
