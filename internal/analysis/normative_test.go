package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ptstudio/trainer-hub/internal/domain"
)

func TestClassifyValueBMIBoundaries(t *testing.T) {
	// Boundaries are upper-exclusive: a value exactly on a cutoff lands in
	// the band above it.
	tests := []struct {
		value float64
		label string
	}{
		{18.4, "Sottopeso"},
		{18.5, "Normopeso"},
		{24.9, "Normopeso"},
		{25.0, "Sovrappeso"},
		{30.0, "Obesità I"},
		{35.0, "Obesità II+"},
		{60.0, "Obesità II+"},
	}
	for _, tt := range tests {
		c := ClassifyValue(DerivedBMI, tt.value, domain.SexMale, 30)
		require.NotNil(t, c, "BMI %.1f", tt.value)
		assert.Equal(t, tt.label, c.Label, "BMI %.1f", tt.value)
	}
}

func TestClassifyValueSexSpecificTables(t *testing.T) {
	// WHR 0.85 is low risk for men, elevated risk for women.
	male := ClassifyValue(DerivedWHR, 0.85, domain.SexMale, 30)
	require.NotNil(t, male)
	assert.Equal(t, "Basso rischio", male.Label)

	female := ClassifyValue(DerivedWHR, 0.85, domain.SexFemale, 30)
	require.NotNil(t, female)
	assert.Equal(t, "Rischio elevato", female.Label)
}

func TestClassifyValueUnknownSexUsesMaleTables(t *testing.T) {
	unknown := ClassifyValue(domain.MetricBodyFat, 16.0, "", 30)
	male := ClassifyValue(domain.MetricBodyFat, 16.0, domain.SexMale, 30)
	require.NotNil(t, unknown)
	require.NotNil(t, male)
	assert.Equal(t, male.Label, unknown.Label)
}

func TestClassifyValueUnknownMetric(t *testing.T) {
	assert.Nil(t, ClassifyValue("altezza", 180, domain.SexMale, 30))
	assert.Nil(t, ClassifyValue("", 1, domain.SexMale, 30))
}

func TestClassifyValueTotality(t *testing.T) {
	// Every finite value must land in some band for the known metrics.
	metrics := []string{DerivedBMI, DerivedWHR, DerivedMAP, DerivedFFMI, domain.MetricBodyFat, domain.MetricRestingHR}
	values := []float64{0, 0.001, 1, 50, 99.99, 1000, 1e9}
	for _, id := range metrics {
		for _, v := range values {
			assert.NotNil(t, ClassifyValue(id, v, domain.SexFemale, 25), "%s %v", id, v)
		}
	}
}

func TestClassifyValueNaN(t *testing.T) {
	assert.Nil(t, ClassifyValue(DerivedBMI, math.NaN(), domain.SexMale, 30))
}

func TestRestingHRBands(t *testing.T) {
	tests := []struct {
		value float64
		label string
	}{
		{45, "Bradicardia"},
		{55, "Atletico"},
		{70, "Normale"},
		{90, "Elevata"},
		{110, "Tachicardia"},
	}
	for _, tt := range tests {
		c := ClassifyValue(domain.MetricRestingHR, tt.value, domain.SexMale, 30)
		require.NotNil(t, c)
		assert.Equal(t, tt.label, c.Label, "HR %.0f", tt.value)
	}
}
