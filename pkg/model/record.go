// pkg/model/record.go
package model

// ImputeMethod identifies the strategy that produced an imputed value.
type ImputeMethod string

const (
	MethodMedianByGroup  ImputeMethod = "median_by_group"
	MethodMedianEmployee ImputeMethod = "median_employee"
	MethodMedianGlobal   ImputeMethod = "median_global"
	MethodCurrentDate    ImputeMethod = "current_date_fallback"
	MethodInvalidFormat  ImputeMethod = "invalid_format_fallback"
	MethodSequential     ImputeMethod = "sequential_assignment"
)

// FieldAudit records how a single field of a record was repaired.
// Imputed marks statistically derived values, Adjusted marks values that
// were clamped into a valid range after the fact.
type FieldAudit struct {
	Imputed  bool
	Adjusted bool
	Method   ImputeMethod
}

// Record is a single row: field name -> scalar value (string, int64,
// float64, or nil for missing). Audit entries exist only for fields that
// were touched by a repair stage.
type Record struct {
	Values map[string]interface{}
	audit  map[string]FieldAudit
}

// NewRecord creates a record over the given values; nil starts empty.
func NewRecord(values map[string]interface{}) Record {
	if values == nil {
		values = make(map[string]interface{})
	}
	return Record{Values: values}
}

// Get returns the value of a field, nil when absent.
func (r Record) Get(field string) interface{} {
	return r.Values[field]
}

// Set assigns a field value.
func (r Record) Set(field string, value interface{}) {
	r.Values[field] = value
}

// MarkImputed flags a field as statistically imputed by the given method.
// A later mark overrides an earlier one (the format-validation pass relies
// on this to supersede tier results).
func (r *Record) MarkImputed(field string, method ImputeMethod) {
	if r.audit == nil {
		r.audit = make(map[string]FieldAudit)
	}
	a := r.audit[field]
	a.Imputed = true
	a.Method = method
	r.audit[field] = a
}

// MarkAdjusted flags a field as clamped into a valid range.
func (r *Record) MarkAdjusted(field string) {
	if r.audit == nil {
		r.audit = make(map[string]FieldAudit)
	}
	a := r.audit[field]
	a.Adjusted = true
	r.audit[field] = a
}

// Audit returns the audit entry for a field, if any repair touched it.
func (r Record) Audit(field string) (FieldAudit, bool) {
	a, ok := r.audit[field]
	return a, ok
}
