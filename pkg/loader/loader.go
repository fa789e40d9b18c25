// pkg/loader/loader.go
package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/retailops/etl/pkg/model"
)

// ErrMissingInput marks an absent source file. The pipeline treats it as
// fatal for the run.
var ErrMissingInput = errors.New("input file not found")

// ParseError reports a malformed source file with its position.
type ParseError struct {
	Path string
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s line %d: %v", e.Path, e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// TableSpec describes one source file: the table it feeds, its key field,
// and the columns the pipeline expects.
type TableSpec struct {
	Name     string
	KeyField string
	Columns  []string
}

// ReadTable loads a semicolon-delimited CSV file into a table. Cells are
// kept as strings; empty or whitespace-only cells become nil so the
// repair stages can treat them as missing. Header columns the spec does
// not name are ignored; spec columns absent from the header load as nil
// for every record.
func ReadTable(path string, spec TableSpec, logger *zap.Logger) (*model.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrMissingInput, path)
		}
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = ';'
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err == io.EOF {
		return nil, &ParseError{Path: path, Line: 1, Err: errors.New("empty file, header expected")}
	}
	if err != nil {
		return nil, &ParseError{Path: path, Line: 1, Err: err}
	}

	index := make(map[string]int, len(header))
	for i, col := range header {
		index[strings.TrimSpace(col)] = i
	}
	for _, col := range spec.Columns {
		if _, ok := index[col]; !ok {
			logger.Warn("source file missing expected column",
				zap.String("path", path),
				zap.String("column", col))
		}
	}

	table := model.NewTable(spec.Name, spec.KeyField, spec.Columns)
	line := 1
	for {
		line++
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &ParseError{Path: path, Line: line, Err: err}
		}
		rec := model.NewRecord(nil)
		for _, col := range spec.Columns {
			i, ok := index[col]
			if !ok || i >= len(row) {
				rec.Set(col, nil)
				continue
			}
			cell := strings.TrimSpace(row[i])
			if cell == "" {
				rec.Set(col, nil)
				continue
			}
			rec.Set(col, cell)
		}
		table.Append(rec)
	}

	logger.Info("loaded source file",
		zap.String("path", path),
		zap.String("table", spec.Name),
		zap.Int("records", table.Len()))
	return table, nil
}
