// pkg/sink/errors.go
package sink

import (
	"fmt"
	"strings"
)

// SchemaMismatchError reports a table that arrived at the sink without
// the columns its destination requires.
type SchemaMismatchError struct {
	Table   string
	Missing []string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("table %s is missing required columns: %s",
		e.Table, strings.Join(e.Missing, ", "))
}

// PersistenceError wraps a database failure with the operation that hit it.
type PersistenceError struct {
	Table string
	Op    string
	Err   error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s on %s: %v", e.Op, e.Table, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
