// pkg/repair/employees.go
package repair

import (
	"github.com/retailops/etl/pkg/model"
)

// Employee table columns.
const (
	EmployeeKeyColumn   = "employee_id"
	EmployeeNameColumn  = "name"
	EmployeeTitleColumn = "job_title"
	EmployeeAgeColumn   = "age"
)

// Age bounds for the clamp stage.
const (
	MinEmployeeAge = 18
	MaxEmployeeAge = 70
)

// EmployeeColumns is the expected source column order for employees.
var EmployeeColumns = []string{
	EmployeeKeyColumn,
	EmployeeNameColumn,
	EmployeeTitleColumn,
	EmployeeAgeColumn,
}

// RepairEmployees runs the full employee repair sequence in place and
// returns the audit summary. Unlike products, employee names carry real
// information, so only blank ones are filled.
func (r *Repairer) RepairEmployees(t *model.Table) TableSummary {
	r.Dedupe(t)
	r.FillMissingKeys(t)
	r.FillBlankNames(t, EmployeeNameColumn, "Employee")
	r.FillSentinel(t, EmployeeTitleColumn, "Not Informed")
	r.ImputeNumeric(t, EmployeeAgeColumn, NumericImputeOptions{
		GroupField: EmployeeTitleColumn,
		AsInt:      true,
	})
	r.ClampRange(t, EmployeeAgeColumn, MinEmployeeAge, MaxEmployeeAge)
	return Summarize(t, EmployeeAgeColumn)
}
