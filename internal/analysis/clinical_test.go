package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ptstudio/trainer-hub/internal/domain"
)

func TestGenerateClinicalReportEmpty(t *testing.T) {
	report := GenerateClinicalReport(nil, domain.SexMale, 30, nil)
	assert.False(t, report.HasData)
	assert.Nil(t, report.Derived)
	assert.Empty(t, report.Rates)
	assert.Nil(t, report.Composition)
	assert.Empty(t, report.Symmetry)
	assert.Nil(t, report.Risk)
}

func TestClinicalReportCarriesDerivedMetrics(t *testing.T) {
	measurements := []domain.Measurement{
		measurementAt(0, map[string]float64{
			domain.MetricWeight: 80,
			domain.MetricHeight: 180,
		}),
	}

	report := GenerateClinicalReport(measurements, domain.SexMale, 30, nil)
	assert.True(t, report.HasData)
	require.NotNil(t, report.Derived)

	var bmi *DerivedMetric
	for i := range report.Derived.Metrics {
		if report.Derived.Metrics[i].ID == DerivedBMI {
			bmi = &report.Derived.Metrics[i]
		}
	}
	require.NotNil(t, bmi)
	assert.Equal(t, 24.7, bmi.Value)
}

func TestAssessRatesWeightLossWithinGuidelines(t *testing.T) {
	measurements := []domain.Measurement{
		measurementAt(0, map[string]float64{domain.MetricWeight: 79.5}),
		measurementAt(7, map[string]float64{domain.MetricWeight: 80}),
	}

	report := GenerateClinicalReport(measurements, domain.SexMale, 30, nil)
	require.NotEmpty(t, report.Rates)
	weight := report.Rates[0]
	assert.Equal(t, domain.MetricWeight, weight.MetricID)
	assert.Equal(t, -0.5, weight.WeeklyRate)
	assert.Equal(t, SeverityPositive, weight.Severity)
}

func TestAssessRatesRapidWeightLossAlerts(t *testing.T) {
	measurements := []domain.Measurement{
		measurementAt(0, map[string]float64{domain.MetricWeight: 78}),
		measurementAt(7, map[string]float64{domain.MetricWeight: 80}),
	}

	report := GenerateClinicalReport(measurements, domain.SexMale, 30, nil)
	require.NotEmpty(t, report.Rates)
	assert.Equal(t, SeverityAlert, report.Rates[0].Severity)
}

func TestCompositionPhases(t *testing.T) {
	cutting := []domain.Measurement{
		measurementAt(0, map[string]float64{domain.MetricWeight: 78}),
		measurementAt(28, map[string]float64{domain.MetricWeight: 80}),
	}
	report := GenerateClinicalReport(cutting, domain.SexMale, 30, nil)
	require.NotNil(t, report.Composition)
	assert.Equal(t, "cutting", report.Composition.Phase)
	assert.Equal(t, -2.0, report.Composition.WeightDelta)

	bulking := []domain.Measurement{
		measurementAt(0, map[string]float64{domain.MetricWeight: 82}),
		measurementAt(28, map[string]float64{domain.MetricWeight: 80}),
	}
	report = GenerateClinicalReport(bulking, domain.SexMale, 30, nil)
	require.NotNil(t, report.Composition)
	assert.Equal(t, "bulking", report.Composition.Phase)

	plateau := []domain.Measurement{
		measurementAt(0, map[string]float64{domain.MetricWeight: 80.2}),
		measurementAt(28, map[string]float64{domain.MetricWeight: 80}),
	}
	report = GenerateClinicalReport(plateau, domain.SexMale, 30, nil)
	require.NotNil(t, report.Composition)
	assert.Equal(t, "plateau", report.Composition.Phase)
}

func TestCompositionRecomposition(t *testing.T) {
	// Weight stable, fat down, lean up.
	measurements := []domain.Measurement{
		measurementAt(0, map[string]float64{domain.MetricWeight: 80.2, domain.MetricBodyFat: 18}),
		measurementAt(28, map[string]float64{domain.MetricWeight: 80, domain.MetricBodyFat: 20}),
	}

	report := GenerateClinicalReport(measurements, domain.SexMale, 30, nil)
	require.NotNil(t, report.Composition)
	assert.Equal(t, "recomposition", report.Composition.Phase)
	require.NotNil(t, report.Composition.FatMassDelta)
	assert.Less(t, *report.Composition.FatMassDelta, 0.0)
	require.NotNil(t, report.Composition.LeanMassDelta)
	assert.Greater(t, *report.Composition.LeanMassDelta, 0.0)
}

func TestWeeksToGoalProjection(t *testing.T) {
	// Losing 0.5 kg/week, currently 80, target 76 -> 8 weeks.
	measurements := []domain.Measurement{
		measurementAt(0, map[string]float64{domain.MetricWeight: 80}),
		measurementAt(14, map[string]float64{domain.MetricWeight: 81}),
	}
	goals := []domain.ClientGoal{{MetricID: domain.MetricWeight, TargetValue: 76}}

	report := GenerateClinicalReport(measurements, domain.SexMale, 30, goals)
	require.NotNil(t, report.Composition)
	require.NotNil(t, report.Composition.WeeksToGoal)
	assert.Equal(t, 8.0, *report.Composition.WeeksToGoal)
}

func TestWeeksToGoalNilWhenMovingAway(t *testing.T) {
	// Gaining weight with a weight-loss goal: no projection.
	measurements := []domain.Measurement{
		measurementAt(0, map[string]float64{domain.MetricWeight: 82}),
		measurementAt(14, map[string]float64{domain.MetricWeight: 81}),
	}
	goals := []domain.ClientGoal{{MetricID: domain.MetricWeight, TargetValue: 76}}

	report := GenerateClinicalReport(measurements, domain.SexMale, 30, goals)
	require.NotNil(t, report.Composition)
	assert.Nil(t, report.Composition.WeeksToGoal)
}

func TestWeeksToGoalIgnoresAchievedGoals(t *testing.T) {
	measurements := []domain.Measurement{
		measurementAt(0, map[string]float64{domain.MetricWeight: 80}),
		measurementAt(14, map[string]float64{domain.MetricWeight: 81}),
	}
	goals := []domain.ClientGoal{{MetricID: domain.MetricWeight, TargetValue: 76, Achieved: true}}

	report := GenerateClinicalReport(measurements, domain.SexMale, 30, goals)
	require.NotNil(t, report.Composition)
	assert.Nil(t, report.Composition.WeeksToGoal)
}

func TestSymmetrySeverityBands(t *testing.T) {
	tests := []struct {
		right, left float64
		severity    Severity
	}{
		{35.0, 34.5, SeverityNeutral}, // 1.4%
		{35.0, 33.5, SeverityInfo},    // 4.3%
		{35.0, 32.0, SeverityWarning}, // 8.6%
		{35.0, 30.0, SeverityAlert},   // 14.3%
	}
	for _, tt := range tests {
		measurements := []domain.Measurement{
			measurementAt(0, map[string]float64{
				domain.MetricArmRight: tt.right,
				domain.MetricArmLeft:  tt.left,
			}),
		}
		report := GenerateClinicalReport(measurements, domain.SexMale, 30, nil)
		require.Len(t, report.Symmetry, 1)
		assert.Equal(t, tt.severity, report.Symmetry[0].Severity, "right=%v left=%v", tt.right, tt.left)
	}
}

func TestSymmetrySkipsIncompletePairs(t *testing.T) {
	measurements := []domain.Measurement{
		measurementAt(0, map[string]float64{domain.MetricArmRight: 35}),
	}
	report := GenerateClinicalReport(measurements, domain.SexMale, 30, nil)
	assert.Empty(t, report.Symmetry)
}

func TestRiskProfileAlertTriggersReferral(t *testing.T) {
	// MAP well above 110 lands in the red band -> alert -> referral text.
	measurements := []domain.Measurement{
		measurementAt(0, map[string]float64{
			domain.MetricSystolic:  170,
			domain.MetricDiastolic: 110,
		}),
	}

	report := GenerateClinicalReport(measurements, domain.SexMale, 45, nil)
	require.NotNil(t, report.Risk)
	assert.Equal(t, SeverityAlert, report.Risk.Overall)
	assert.NotEmpty(t, report.Risk.Referral)
	require.Len(t, report.Risk.Cardiovascular, 1)
	assert.Equal(t, "Pressione arteriosa media", report.Risk.Cardiovascular[0].Name)
}

func TestRiskProfileHealthyValuesNoReferral(t *testing.T) {
	measurements := []domain.Measurement{
		measurementAt(0, map[string]float64{
			domain.MetricWeight:    75,
			domain.MetricHeight:    180,
			domain.MetricSystolic:  118,
			domain.MetricDiastolic: 76,
			domain.MetricRestingHR: 58,
		}),
	}

	report := GenerateClinicalReport(measurements, domain.SexMale, 30, nil)
	require.NotNil(t, report.Risk)
	assert.Equal(t, SeverityPositive, report.Risk.Overall)
	assert.Empty(t, report.Risk.Referral)
	assert.NotEmpty(t, report.Risk.Metabolic)
	assert.NotEmpty(t, report.Risk.Cardiovascular)
}
