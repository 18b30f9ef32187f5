package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ptstudio/trainer-hub/internal/domain"
)

func TestComputeWeeklyRateTwoPoints(t *testing.T) {
	measurements := []domain.Measurement{
		measurementAt(0, map[string]float64{domain.MetricWeight: 82}),
		measurementAt(7, map[string]float64{domain.MetricWeight: 80}),
	}

	rate := ComputeWeeklyRate(measurements, domain.MetricWeight, DefaultRateWindowDays)
	require.NotNil(t, rate)
	assert.Equal(t, 2.0, *rate) // +2kg over 7 days
}

func TestComputeWeeklyRateNegative(t *testing.T) {
	measurements := []domain.Measurement{
		measurementAt(0, map[string]float64{domain.MetricWeight: 79}),
		measurementAt(14, map[string]float64{domain.MetricWeight: 80}),
	}

	rate := ComputeWeeklyRate(measurements, domain.MetricWeight, DefaultRateWindowDays)
	require.NotNil(t, rate)
	assert.Equal(t, -0.5, *rate) // -1kg over 14 days
}

func TestComputeWeeklyRateInsufficientData(t *testing.T) {
	assert.Nil(t, ComputeWeeklyRate(nil, domain.MetricWeight, 30))

	one := []domain.Measurement{measurementAt(0, map[string]float64{domain.MetricWeight: 80})}
	assert.Nil(t, ComputeWeeklyRate(one, domain.MetricWeight, 30))

	// Two sessions, but only one carries the metric.
	mixed := []domain.Measurement{
		measurementAt(0, map[string]float64{domain.MetricWeight: 80}),
		measurementAt(7, map[string]float64{domain.MetricWaist: 85}),
	}
	assert.Nil(t, ComputeWeeklyRate(mixed, domain.MetricWeight, 30))
}

func TestComputeWeeklyRateSameDayIsNil(t *testing.T) {
	measurements := []domain.Measurement{
		measurementAt(0, map[string]float64{domain.MetricWeight: 80}),
		measurementAt(0, map[string]float64{domain.MetricWeight: 81}),
	}
	assert.Nil(t, ComputeWeeklyRate(measurements, domain.MetricWeight, 30))
}

func TestComputeWeeklyRateWindowLimitsPoints(t *testing.T) {
	// The 60-days-ago point is outside the 30-day window; the slope uses
	// only the two recent points.
	measurements := []domain.Measurement{
		measurementAt(0, map[string]float64{domain.MetricWeight: 80}),
		measurementAt(10, map[string]float64{domain.MetricWeight: 81}),
		measurementAt(60, map[string]float64{domain.MetricWeight: 90}),
	}

	rate := ComputeWeeklyRate(measurements, domain.MetricWeight, 30)
	require.NotNil(t, rate)
	assert.Equal(t, -0.7, *rate) // -1kg over 10 days -> -0.7/week
}

func TestComputeWeeklyRateSparseWindowFallsBack(t *testing.T) {
	// Only the latest point is inside the window; the rate falls back to the
	// full-series endpoints.
	measurements := []domain.Measurement{
		measurementAt(0, map[string]float64{domain.MetricWeight: 80}),
		measurementAt(70, map[string]float64{domain.MetricWeight: 85}),
	}

	rate := ComputeWeeklyRate(measurements, domain.MetricWeight, 30)
	require.NotNil(t, rate)
	assert.Equal(t, -0.5, *rate) // -5kg over 70 days
}

func TestComputeWeeklyRateUnsortedInput(t *testing.T) {
	// The series is sorted internally; input order must not matter.
	measurements := []domain.Measurement{
		measurementAt(7, map[string]float64{domain.MetricWeight: 80}),
		measurementAt(0, map[string]float64{domain.MetricWeight: 82}),
	}

	rate := ComputeWeeklyRate(measurements, domain.MetricWeight, 30)
	require.NotNil(t, rate)
	assert.Equal(t, 2.0, *rate)
}
