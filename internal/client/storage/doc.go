// Package storage is the persistence facade of ticketapp.
//
// It keeps three independent collections in a kv.Store, each serialized as
// JSON under a fixed key (see common.AccountsKey, common.SessionKey,
// common.TicketsKey):
//
//   - accounts: an array of models.Account
//   - session:  a single models.Session object; an absent key means logged out
//   - tickets:  an array of models.Ticket, in insertion order
//
// # Error Handling
//
// An absent key reads as an empty collection or common.ErrorNotFound. Content
// that does not decode is reported as common.ErrMalformedData, wrapped with
// the key; it is never silently treated as empty. Store failures such as
// common.ErrQuotaExceeded are returned to the caller.
//
// # Concurrency
//
// Every read-modify-write goes through one internal update step guarded by a
// mutex, so writes made through one Storage are applied one at a time. Other
// processes sharing the same store can still overwrite each other's changes.
package storage
