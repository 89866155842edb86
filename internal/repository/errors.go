package repository

import "errors"

// This file defines custom errors specific to the repository layer.
// This allows the repository to communicate outcomes in a database-agnostic way.

// ErrNotFound is a repository-specific sentinel error. It is returned when a
// lookup for a single todo finds nothing.
//
// Handlers check for this error and translate it into a not-found
// app_errors.Error, which keeps the driver's own errors (sql.ErrNoRows,
// redis.Nil) out of the service layer.
var ErrNotFound = errors.New("repository: not found")
