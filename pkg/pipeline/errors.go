// pkg/pipeline/errors.go
package pipeline

import (
	"errors"
	"fmt"

	"github.com/retailops/etl/pkg/loader"
	"github.com/retailops/etl/pkg/sink"
)

// ErrorCategory classifies a stage failure for logging and exit handling
type ErrorCategory int

const (
	ErrorCategoryNone ErrorCategory = iota
	ErrorCategoryMissingInput
	ErrorCategoryParse
	ErrorCategorySchemaMismatch
	ErrorCategoryPersistence
	ErrorCategoryUnknown
)

// String returns a string representation of the error category
func (ec ErrorCategory) String() string {
	switch ec {
	case ErrorCategoryNone:
		return "None"
	case ErrorCategoryMissingInput:
		return "MissingInput"
	case ErrorCategoryParse:
		return "Parse"
	case ErrorCategorySchemaMismatch:
		return "SchemaMismatch"
	case ErrorCategoryPersistence:
		return "Persistence"
	case ErrorCategoryUnknown:
		return "Unknown"
	default:
		return fmt.Sprintf("Unknown(%d)", ec)
	}
}

// Categorize maps a stage error onto its category. Any failure is fatal
// for the run; the category only drives reporting.
func Categorize(err error) ErrorCategory {
	if err == nil {
		return ErrorCategoryNone
	}

	if errors.Is(err, loader.ErrMissingInput) {
		return ErrorCategoryMissingInput
	}

	var parseErr *loader.ParseError
	if errors.As(err, &parseErr) {
		return ErrorCategoryParse
	}

	var mismatch *sink.SchemaMismatchError
	if errors.As(err, &mismatch) {
		return ErrorCategorySchemaMismatch
	}

	var persistence *sink.PersistenceError
	if errors.As(err, &persistence) {
		return ErrorCategoryPersistence
	}

	return ErrorCategoryUnknown
}
