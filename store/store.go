// Package store is the persistence layer. Every read or write of a
// user-owned record takes the owner id as an explicit parameter; nothing is
// scoped implicitly.
package store

import "errors"

// ErrNotFound is returned when a row does not exist or belongs to another
// user. Callers cannot tell the two cases apart.
var ErrNotFound = errors.New("record not found")
