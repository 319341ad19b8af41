// Package contacts implements the contact and address store.
//
// Every contact belongs to exactly one user and every address to exactly one
// contact; all reads and mutations are scoped to the owning user, so a foreign
// id is indistinguishable from a missing one.
package contacts
