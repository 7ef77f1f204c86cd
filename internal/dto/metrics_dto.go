package dto

type CreateMetricRequest struct {
	EmployeeID   string   `json:"employee_id"`
	TeamID       string   `json:"team_id"`
	MetricType   string   `json:"metric_type"`
	MetricValue  *float64 `json:"metric_value"`
	MetricTarget *float64 `json:"metric_target"`
	PeriodStart  string   `json:"period_start"`
	PeriodEnd    string   `json:"period_end"`
	Notes        *string  `json:"notes"`
}

// UpdateMetricRequest is a partial update; nil means "not submitted" and
// the field is left untouched in the store.
type UpdateMetricRequest struct {
	MetricType   *string  `json:"metric_type"`
	MetricValue  *float64 `json:"metric_value"`
	MetricTarget *float64 `json:"metric_target"`
	PeriodStart  *string  `json:"period_start"`
	PeriodEnd    *string  `json:"period_end"`
	Notes        *string  `json:"notes"`
}

// Record builds the column map forwarded to the store, containing only the
// submitted fields.
func (r UpdateMetricRequest) Record() map[string]any {
	record := map[string]any{}
	if r.MetricType != nil {
		record["metric_type"] = *r.MetricType
	}
	if r.MetricValue != nil {
		record["metric_value"] = *r.MetricValue
	}
	if r.MetricTarget != nil {
		record["metric_target"] = *r.MetricTarget
	}
	if r.PeriodStart != nil {
		record["period_start"] = *r.PeriodStart
	}
	if r.PeriodEnd != nil {
		record["period_end"] = *r.PeriodEnd
	}
	if r.Notes != nil {
		record["notes"] = *r.Notes
	}
	return record
}
