package repository

import "errors"

// ErrNotFound is returned when a row does not exist or is not visible to the
// caller (e.g. owner-scoped fetches).
var ErrNotFound = errors.New("not found")
