package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ptstudio/trainer-hub/internal/domain"
)

// measurementAt builds a session dated `daysAgo` days before the fixed
// reference date, with the given metric values.
func measurementAt(daysAgo int, values map[string]float64) domain.Measurement {
	ref := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	m := domain.Measurement{Date: ref.AddDate(0, 0, -daysAgo)}
	for id, v := range values {
		m.Values = append(m.Values, domain.MetricValue{MetricID: id, Value: v})
	}
	return m
}

func TestComputeBMI(t *testing.T) {
	bmi, ok := ComputeBMI(80, 180)
	require.True(t, ok)
	assert.Equal(t, 24.7, bmi)

	_, ok = ComputeBMI(0, 180)
	assert.False(t, ok)
	_, ok = ComputeBMI(80, -1)
	assert.False(t, ok)
}

func TestComputeLBM(t *testing.T) {
	lbm, ok := ComputeLBM(80, 20)
	require.True(t, ok)
	assert.Equal(t, 64.0, lbm)

	// Zero body fat is legal, 100% is not.
	lbm, ok = ComputeLBM(80, 0)
	require.True(t, ok)
	assert.Equal(t, 80.0, lbm)
	_, ok = ComputeLBM(80, 100)
	assert.False(t, ok)
}

func TestComputeFFMI(t *testing.T) {
	ffmi, ok := ComputeFFMI(64, 180)
	require.True(t, ok)
	assert.Equal(t, 19.8, ffmi)
}

func TestComputeWHR(t *testing.T) {
	whr, ok := ComputeWHR(90, 100)
	require.True(t, ok)
	assert.Equal(t, 0.90, whr)
}

func TestComputeMAP(t *testing.T) {
	mapValue, ok := ComputeMAP(120, 80)
	require.True(t, ok)
	assert.Equal(t, 93.0, mapValue)
}

func TestComputeAllDerivedFullSet(t *testing.T) {
	measurements := []domain.Measurement{
		measurementAt(0, map[string]float64{
			domain.MetricWeight:    80,
			domain.MetricHeight:    180,
			domain.MetricBodyFat:   20,
			domain.MetricWaist:     85,
			domain.MetricHips:      100,
			domain.MetricSystolic:  120,
			domain.MetricDiastolic: 80,
		}),
	}

	result := ComputeAllDerived(measurements, domain.SexMale, 30)

	byID := make(map[string]DerivedMetric)
	for _, m := range result.Metrics {
		byID[m.ID] = m
	}

	require.Contains(t, byID, DerivedBMI)
	assert.Equal(t, 24.7, byID[DerivedBMI].Value)
	require.NotNil(t, byID[DerivedBMI].Classification)
	assert.Equal(t, "Normopeso", byID[DerivedBMI].Classification.Label)

	require.Contains(t, byID, DerivedLBM)
	assert.Equal(t, 64.0, byID[DerivedLBM].Value)
	assert.Nil(t, byID[DerivedLBM].Classification, "LBM has no normative bands")

	require.Contains(t, byID, DerivedFFMI)
	assert.Equal(t, 19.8, byID[DerivedFFMI].Value)

	require.Contains(t, byID, DerivedWHR)
	assert.Equal(t, 0.85, byID[DerivedWHR].Value)

	require.Contains(t, byID, DerivedMAP)
	assert.Equal(t, 93.0, byID[DerivedMAP].Value)
	require.NotNil(t, byID[DerivedMAP].Classification)
	assert.Equal(t, "Normale", byID[DerivedMAP].Classification.Label)
}

func TestComputeAllDerivedMissingInputsAreOmitted(t *testing.T) {
	// Weight only: no height means no BMI/FFMI, no fat means no LBM.
	measurements := []domain.Measurement{
		measurementAt(0, map[string]float64{domain.MetricWeight: 80}),
	}

	result := ComputeAllDerived(measurements, domain.SexMale, 30)
	assert.Empty(t, result.Metrics)
	assert.Empty(t, result.StrengthRatios)
}

func TestComputeAllDerivedUsesLatestValues(t *testing.T) {
	// Newest-first ordering: the 78kg session is the latest.
	measurements := []domain.Measurement{
		measurementAt(0, map[string]float64{domain.MetricWeight: 78}),
		measurementAt(30, map[string]float64{
			domain.MetricWeight: 82,
			domain.MetricHeight: 180,
		}),
	}

	result := ComputeAllDerived(measurements, domain.SexMale, 30)
	require.Len(t, result.Metrics, 1)
	assert.Equal(t, DerivedBMI, result.Metrics[0].ID)
	// 78 / 1.8^2 = 24.07 -> 24.1
	assert.Equal(t, 24.1, result.Metrics[0].Value)
}

func TestComputeAllDerivedIsIdempotent(t *testing.T) {
	measurements := []domain.Measurement{
		measurementAt(0, map[string]float64{
			domain.MetricWeight:  80,
			domain.MetricHeight:  180,
			domain.MetricBodyFat: 20,
		}),
	}

	first := ComputeAllDerived(measurements, domain.SexFemale, 28)
	second := ComputeAllDerived(measurements, domain.SexFemale, 28)
	assert.Equal(t, first, second)
}

func TestStrengthRatios(t *testing.T) {
	measurements := []domain.Measurement{
		measurementAt(0, map[string]float64{
			domain.MetricWeight:        80,
			domain.MetricBenchPress1RM: 80,  // ratio 1.00 -> Intermedio
			domain.MetricSquat1RM:      100, // ratio 1.25 -> Intermedio
			domain.MetricDeadlift1RM:   90,  // ratio 1.13 -> below Principiante
		}),
	}

	result := ComputeAllDerived(measurements, domain.SexMale, 30)
	require.Len(t, result.StrengthRatios, 3)

	byLift := make(map[string]StrengthRatio)
	for _, r := range result.StrengthRatios {
		byLift[r.Lift] = r
	}

	assert.Equal(t, 1.00, byLift[domain.MetricBenchPress1RM].Ratio)
	assert.Equal(t, "Intermedio", byLift[domain.MetricBenchPress1RM].Level)
	assert.Equal(t, "Intermedio", byLift[domain.MetricSquat1RM].Level)
	assert.Equal(t, "Iniziale", byLift[domain.MetricDeadlift1RM].Level)
}

func TestStrengthRatiosRequireWeight(t *testing.T) {
	measurements := []domain.Measurement{
		measurementAt(0, map[string]float64{domain.MetricBenchPress1RM: 100}),
	}

	result := ComputeAllDerived(measurements, domain.SexMale, 30)
	assert.Empty(t, result.StrengthRatios)
}

func TestStrengthRatiosFemaleTables(t *testing.T) {
	measurements := []domain.Measurement{
		measurementAt(0, map[string]float64{
			domain.MetricWeight:        60,
			domain.MetricBenchPress1RM: 60, // ratio 1.00 -> Avanzato on the female table
		}),
	}

	result := ComputeAllDerived(measurements, domain.SexFemale, 30)
	require.Len(t, result.StrengthRatios, 1)
	assert.Equal(t, "Avanzato", result.StrengthRatios[0].Level)
}
