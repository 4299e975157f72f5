package sheets

import "errors"

// ErrTableNotFound reports a write against a table that was never created.
// Reads treat a missing table as empty instead.
var ErrTableNotFound = errors.New("table not found")
