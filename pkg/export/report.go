// pkg/export/report.go
package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/retailops/etl/pkg/repair"
)

// WriteReport renders the audit summaries of a run as a workbook with
// one sheet per dataset.
func (e *Exporter) WriteReport(path string, summaries ...repair.TableSummary) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating report directory %s: %w", dir, err)
		}
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, summary := range summaries {
		sheet := summary.Table
		if i == 0 {
			// Rename the default sheet instead of leaving it empty.
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return fmt.Errorf("renaming sheet: %w", err)
			}
		} else {
			if _, err := f.NewSheet(sheet); err != nil {
				return fmt.Errorf("creating sheet %s: %w", sheet, err)
			}
		}
		if err := writeSummarySheet(f, sheet, summary); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving report %s: %w", path, err)
	}

	e.logger.Info("wrote repair report",
		zap.String("path", path),
		zap.Int("sheets", len(summaries)))
	return nil
}

func writeSummarySheet(f *excelize.File, sheet string, summary repair.TableSummary) error {
	set := func(cell string, value interface{}) error {
		return f.SetCellValue(sheet, cell, value)
	}

	if err := set("A1", "Records"); err != nil {
		return err
	}
	if err := set("B1", summary.Records); err != nil {
		return err
	}

	headers := []string{"Field", "Imputed", "Imputed %", "Adjusted", "Still Missing"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 3)
		if err := set(cell, h); err != nil {
			return err
		}
	}
	row := 4
	for _, fs := range summary.Fields {
		values := []interface{}{fs.Field, fs.Imputed, fs.ImputedPct, fs.Adjusted, fs.Missing}
		for i, v := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, row)
			if err := set(cell, v); err != nil {
				return err
			}
		}
		row++
	}

	if len(summary.Numeric) > 0 {
		row++
		statHeaders := []string{"Field", "Min", "Max", "Mean", "Median"}
		for i, h := range statHeaders {
			cell, _ := excelize.CoordinatesToCellName(i+1, row)
			if err := set(cell, h); err != nil {
				return err
			}
		}
		row++
		for _, ns := range summary.Numeric {
			values := []interface{}{ns.Field, ns.Min, ns.Max, ns.Mean, ns.Median}
			for i, v := range values {
				cell, _ := excelize.CoordinatesToCellName(i+1, row)
				if err := set(cell, v); err != nil {
					return err
				}
			}
			row++
		}
	}

	return nil
}
