package stats_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perfdash/dashboard-backend/internal/stats"
)

func target(v float64) *float64 { return &v }

func TestCalculate_GroupsByTypeAndCountsAboveTarget(t *testing.T) {
	t.Parallel()

	metrics := []stats.Metric{
		{MetricType: "sales", MetricValue: 10, MetricTarget: target(8)},
		{MetricType: "sales", MetricValue: 5, MetricTarget: target(8)},
		{MetricType: "calls", MetricValue: 3, MetricTarget: nil},
	}

	summary := stats.Calculate(metrics)

	assert.Equal(t, 3, summary.TotalMetrics)
	assert.Equal(t, 1, summary.MetricsAboveTarget)
	assert.InDelta(t, 33.33, summary.OverallSuccessRate, 0.01)

	sales, ok := summary.ByMetricType["sales"]
	require.True(t, ok)
	assert.Equal(t, 2, sales.Count)
	assert.Equal(t, 1, sales.AboveTarget)
	assert.InDelta(t, 50.0, sales.SuccessRate, 0.001)
	assert.InDelta(t, 7.5, sales.AverageValue, 0.001)
	assert.InDelta(t, 8.0, sales.AverageTarget, 0.001)

	calls, ok := summary.ByMetricType["calls"]
	require.True(t, ok)
	assert.Equal(t, 1, calls.Count)
	assert.Equal(t, 0, calls.AboveTarget)
	assert.Zero(t, calls.SuccessRate)
	assert.Zero(t, calls.AverageTarget)
}

func TestCalculate_EmptyInput(t *testing.T) {
	t.Parallel()

	summary := stats.Calculate(nil)

	assert.Equal(t, 0, summary.TotalMetrics)
	assert.Equal(t, 0, summary.MetricsAboveTarget)
	assert.Zero(t, summary.OverallSuccessRate)
	assert.Empty(t, summary.ByMetricType)
	assert.NotNil(t, summary.ByMetricType)
}

func TestCalculate_ZeroTargetTreatedAsAbsent(t *testing.T) {
	t.Parallel()

	// A zero target does not count as a target at all, so a positive value
	// against it is not "above target".
	metrics := []stats.Metric{
		{MetricType: "sales", MetricValue: 10, MetricTarget: target(0)},
	}

	summary := stats.Calculate(metrics)

	assert.Equal(t, 1, summary.TotalMetrics)
	assert.Equal(t, 0, summary.MetricsAboveTarget)
	assert.Zero(t, summary.OverallSuccessRate)
	assert.Zero(t, summary.ByMetricType["sales"].AboveTarget)
	assert.Zero(t, summary.ByMetricType["sales"].TotalTarget)
}

func TestCalculate_AverageTargetUsesGroupCountDenominator(t *testing.T) {
	t.Parallel()

	// The target sum divides by the full group count even when only some
	// members carry a target.
	metrics := []stats.Metric{
		{MetricType: "sales", MetricValue: 10, MetricTarget: target(8)},
		{MetricType: "sales", MetricValue: 4, MetricTarget: nil},
	}

	summary := stats.Calculate(metrics)

	sales := summary.ByMetricType["sales"]
	assert.Equal(t, 2, sales.Count)
	assert.InDelta(t, 4.0, sales.AverageTarget, 0.001)
}

func TestCalculate_ValueEqualToTargetCountsAsAbove(t *testing.T) {
	t.Parallel()

	metrics := []stats.Metric{
		{MetricType: "deals", MetricValue: 8, MetricTarget: target(8)},
	}

	summary := stats.Calculate(metrics)

	assert.Equal(t, 1, summary.MetricsAboveTarget)
	assert.InDelta(t, 100.0, summary.OverallSuccessRate, 0.001)
}
