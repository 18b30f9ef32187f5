package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"ptstudio/trainer-hub/internal/domain"
)

func TestBuildClientProfile(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	birth := time.Date(1990, 3, 15, 0, 0, 0, 0, time.UTC)
	client := &domain.User{Sex: domain.SexFemale, BirthDate: &birth}

	squatID := primitive.NewObjectID()
	exercises := []domain.Exercise{
		{
			ID: squatID, Name: "Squat",
			MovementPattern: domain.PatternSquat,
			PrimaryMuscles:  []string{"quadricipiti", "glutei"},
		},
	}

	measurements := []domain.Measurement{
		measurementAt(0, map[string]float64{
			domain.MetricWeight:        80,
			domain.MetricHeight:        168,
			domain.MetricBodyFat:       24,
			domain.MetricBenchPress1RM: 80,
			domain.MetricArmRight:      35,
			domain.MetricArmLeft:       32,
			domain.MetricCalfRight:     35,
			domain.MetricCalfLeft:      34.8,
		}),
	}

	goals := []domain.ClientGoal{
		{MetricID: domain.MetricWeight, TargetValue: 75},
		{MetricID: domain.MetricWaist, TargetValue: 80, Achieved: true},
	}

	profile := BuildClientProfile(client, measurements, anamnesiWithPain("dolore al ginocchio destro"), exercises, goals, now)

	assert.Equal(t, domain.SexFemale, profile.Sex)
	assert.Equal(t, 35, profile.Age)

	// Knee pain against a squat-pattern exercise: avoid.
	require.Contains(t, profile.Safety, squatID)
	assert.Equal(t, SafetyAvoid, profile.Safety[squatID].Safety)

	// Bench 1RM equal to bodyweight reads Avanzato on the female table.
	require.Len(t, profile.StrengthRatios, 1)
	assert.Equal(t, 1.00, profile.StrengthRatios[0].Ratio)
	assert.Equal(t, "Avanzato", profile.StrengthRatios[0].Level)

	// Achieved goals are filtered out.
	require.Len(t, profile.ActiveGoals, 1)
	assert.Equal(t, domain.MetricWeight, profile.ActiveGoals[0].MetricID)

	// Only asymmetries at warning or above make it in: the 8.6% arm gap
	// does, the 0.6% calf gap does not.
	require.Len(t, profile.SymmetryDeficits, 1)
	assert.Equal(t, "Braccia", profile.SymmetryDeficits[0].Name)

	if assert.NotNil(t, profile.Weight) {
		assert.Equal(t, 80.0, *profile.Weight)
	}
	if assert.NotNil(t, profile.Height) {
		assert.Equal(t, 168.0, *profile.Height)
	}
	if assert.NotNil(t, profile.BodyFat) {
		assert.Equal(t, 24.0, *profile.BodyFat)
	}
}

func TestBuildClientProfileNilClient(t *testing.T) {
	benchID := primitive.NewObjectID()
	exercises := []domain.Exercise{
		{ID: benchID, Name: "Panca piana", MovementPattern: domain.PatternPushH},
	}

	profile := BuildClientProfile(nil, nil, nil, exercises, nil, time.Now())

	assert.Empty(t, profile.Sex)
	assert.Zero(t, profile.Age)
	require.Contains(t, profile.Safety, benchID)
	assert.Equal(t, SafetySafe, profile.Safety[benchID].Safety)
	assert.Empty(t, profile.StrengthRatios)
	assert.Empty(t, profile.ActiveGoals)
	assert.Nil(t, profile.Weight)
}
