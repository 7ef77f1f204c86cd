// Package stats computes aggregate statistics over performance metric
// records already fetched from the store. Pure in-process reduction, no I/O.
package stats

// Metric is the slice of a performance_metrics row the aggregation needs.
// Extra fields in the source JSON are ignored on unmarshal.
type Metric struct {
	MetricType   string   `json:"metric_type"`
	MetricValue  float64  `json:"metric_value"`
	MetricTarget *float64 `json:"metric_target"`
}

// TypeStats accumulates per-metric-type figures.
type TypeStats struct {
	Count         int     `json:"count"`
	TotalValue    float64 `json:"total_value"`
	TotalTarget   float64 `json:"total_target"`
	AboveTarget   int     `json:"above_target"`
	AverageValue  float64 `json:"average_value"`
	AverageTarget float64 `json:"average_target"`
	SuccessRate   float64 `json:"success_rate"`
}

// Summary is the full statistics payload.
type Summary struct {
	TotalMetrics       int                  `json:"total_metrics"`
	MetricsAboveTarget int                  `json:"metrics_above_target"`
	OverallSuccessRate float64              `json:"overall_success_rate"`
	ByMetricType       map[string]TypeStats `json:"by_metric_type"`
}

// hasTarget reports whether a metric carries a usable target. A zero target
// counts as absent, matching the dashboard's historical behavior.
func hasTarget(m Metric) bool {
	return m.MetricTarget != nil && *m.MetricTarget != 0
}

// Calculate groups metrics by type in a single pass and derives averages
// and success rates. average_target divides the target sum by the full
// group count even when some members have no target.
func Calculate(metrics []Metric) Summary {
	byType := make(map[string]TypeStats)
	aboveTarget := 0

	for _, m := range metrics {
		s := byType[m.MetricType]
		s.Count++
		s.TotalValue += m.MetricValue

		if hasTarget(m) {
			s.TotalTarget += *m.MetricTarget
			if m.MetricValue >= *m.MetricTarget {
				s.AboveTarget++
				aboveTarget++
			}
		}

		byType[m.MetricType] = s
	}

	for t, s := range byType {
		if s.Count > 0 {
			s.AverageValue = s.TotalValue / float64(s.Count)
			s.AverageTarget = s.TotalTarget / float64(s.Count)
			s.SuccessRate = float64(s.AboveTarget) / float64(s.Count) * 100
		}
		byType[t] = s
	}

	overall := 0.0
	if len(metrics) > 0 {
		overall = float64(aboveTarget) / float64(len(metrics)) * 100
	}

	return Summary{
		TotalMetrics:       len(metrics),
		MetricsAboveTarget: aboveTarget,
		OverallSuccessRate: overall,
		ByMetricType:       byType,
	}
}
