package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"ptstudio/trainer-hub/internal/domain"
)

func floatPtr(v float64) *float64 { return &v }

func TestGoalReached(t *testing.T) {
	tests := []struct {
		name     string
		target   float64
		value    float64
		previous *float64
		reached  bool
	}{
		{"exact hit, no history", 75, 75, nil, true},
		{"exact hit while losing", 75, 75, floatPtr(80), true},
		{"crossed downward", 75, 74.5, floatPtr(80), true},
		{"approaching from above, not there yet", 75, 76, floatPtr(80), false},
		{"crossed upward", 100, 102.5, floatPtr(95), true},
		{"approaching from below, not there yet", 100, 98, floatPtr(95), false},
		{"no history, near miss", 75, 74.5, nil, false},
		{"previous already at target, overshoot", 75, 74, floatPtr(75), false},
		{"moving away from target", 75, 82, floatPtr(80), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.reached, goalReached(tt.target, tt.value, tt.previous))
		})
	}
}

func TestLatestPreviousValue(t *testing.T) {
	newest := domain.Measurement{
		Date: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Values: []domain.MetricValue{
			{MetricID: domain.MetricWaist, Value: 84},
		},
	}
	older := domain.Measurement{
		Date: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
		Values: []domain.MetricValue{
			{MetricID: domain.MetricWeight, Value: 80},
			{MetricID: domain.MetricWaist, Value: 86},
		},
	}
	measurements := []domain.Measurement{newest, older}

	// The waist comes from the newest session, the weight from the older one.
	waist := latestPreviousValue(measurements, domain.MetricWaist)
	if assert.NotNil(t, waist) {
		assert.Equal(t, 84.0, *waist)
	}
	weight := latestPreviousValue(measurements, domain.MetricWeight)
	if assert.NotNil(t, weight) {
		assert.Equal(t, 80.0, *weight)
	}
	assert.Nil(t, latestPreviousValue(measurements, domain.MetricBodyFat))
	assert.Nil(t, latestPreviousValue(nil, domain.MetricWeight))
}

func TestValidateMeasurementValues(t *testing.T) {
	err := validateMeasurementValues([]domain.MetricValue{
		{MetricID: domain.MetricWeight, Value: 80},
		{MetricID: domain.MetricWaist, Value: 85},
	})
	assert.NoError(t, err)

	err = validateMeasurementValues(nil)
	assert.Error(t, err)

	err = validateMeasurementValues([]domain.MetricValue{
		{MetricID: domain.MetricWeight, Value: 80},
		{MetricID: domain.MetricWeight, Value: 81},
	})
	assert.ErrorIs(t, err, ErrDuplicateMetric)

	err = validateMeasurementValues([]domain.MetricValue{
		{MetricID: "circonferenza_orecchio", Value: 6},
	})
	assert.ErrorIs(t, err, ErrUnknownMetric)
}
