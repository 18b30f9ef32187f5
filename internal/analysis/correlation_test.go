package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ptstudio/trainer-hub/internal/domain"
)

func TestAnalyzeCorrelationsEmpty(t *testing.T) {
	insights := AnalyzeCorrelations(nil, domain.SexMale)
	assert.NotNil(t, insights)
	assert.Empty(t, insights)
}

func TestCorrelateWeightFatHealthyLoss(t *testing.T) {
	measurements := []domain.Measurement{
		measurementAt(0, map[string]float64{domain.MetricWeight: 79, domain.MetricBodyFat: 19}),
		measurementAt(14, map[string]float64{domain.MetricWeight: 80, domain.MetricBodyFat: 20}),
	}

	insights := AnalyzeCorrelations(measurements, domain.SexMale)
	require.Len(t, insights, 1)
	assert.Equal(t, "Peso e massa grassa", insights[0].Title)
	assert.Equal(t, SeverityPositive, insights[0].Severity)
}

func TestCorrelateWeightFatMuscleLossWarning(t *testing.T) {
	// Weight dropping while fat% holds: warning about lean mass loss.
	measurements := []domain.Measurement{
		measurementAt(0, map[string]float64{domain.MetricWeight: 78, domain.MetricBodyFat: 20}),
		measurementAt(14, map[string]float64{domain.MetricWeight: 80, domain.MetricBodyFat: 20}),
	}

	insights := AnalyzeCorrelations(measurements, domain.SexMale)
	require.Len(t, insights, 1)
	assert.Equal(t, SeverityWarning, insights[0].Severity)
}

func TestCorrelateWaistHipsUsesSexBands(t *testing.T) {
	measurements := []domain.Measurement{
		measurementAt(0, map[string]float64{domain.MetricWaist: 85, domain.MetricHips: 100}),
	}

	// WHR 0.85 reads as low risk for men, elevated for women.
	male := AnalyzeCorrelations(measurements, domain.SexMale)
	require.Len(t, male, 1)
	assert.Equal(t, SeverityPositive, male[0].Severity)

	female := AnalyzeCorrelations(measurements, domain.SexFemale)
	require.Len(t, female, 1)
	assert.Equal(t, SeverityAlert, female[0].Severity)
}

func TestCorrelatePressure(t *testing.T) {
	measurements := []domain.Measurement{
		measurementAt(0, map[string]float64{domain.MetricSystolic: 120, domain.MetricDiastolic: 80}),
	}

	insights := AnalyzeCorrelations(measurements, domain.SexMale)
	require.Len(t, insights, 1)
	assert.Equal(t, "Pressione arteriosa", insights[0].Title)
	assert.Equal(t, SeverityPositive, insights[0].Severity)
	assert.Contains(t, insights[0].Text, "Normale")
}

func TestAnalyzeCorrelationsAllThree(t *testing.T) {
	measurements := []domain.Measurement{
		measurementAt(0, map[string]float64{
			domain.MetricWeight:    79,
			domain.MetricBodyFat:   19,
			domain.MetricWaist:     85,
			domain.MetricHips:      100,
			domain.MetricSystolic:  120,
			domain.MetricDiastolic: 80,
		}),
		measurementAt(14, map[string]float64{
			domain.MetricWeight:  80,
			domain.MetricBodyFat: 20,
		}),
	}

	insights := AnalyzeCorrelations(measurements, domain.SexMale)
	assert.Len(t, insights, 3)
}
