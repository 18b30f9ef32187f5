package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"ptstudio/trainer-hub/internal/domain"
)

// rowFor registers a one-pattern exercise and returns a session row
// with the given sets.
func rowFor(exercises map[primitive.ObjectID]domain.Exercise, pattern domain.MovementPattern, muscles []string, sets int) domain.WorkoutExerciseRow {
	id := primitive.NewObjectID()
	exercises[id] = domain.Exercise{
		ID:              id,
		Name:            string(pattern),
		MovementPattern: pattern,
		PrimaryMuscles:  muscles,
	}
	return domain.WorkoutExerciseRow{ExerciseID: id, Sets: sets, Reps: "8"}
}

// completePlan covers all six fundamental patterns with balanced volume.
func completePlan() (map[primitive.ObjectID]domain.Exercise, []domain.WorkoutSession) {
	exercises := make(map[primitive.ObjectID]domain.Exercise)
	session := domain.WorkoutSession{
		Name: "Full body",
		Exercises: []domain.WorkoutExerciseRow{
			rowFor(exercises, domain.PatternSquat, []string{"quadricipiti", "glutei"}, 4),
			rowFor(exercises, domain.PatternHinge, []string{"femorali", "lombari"}, 4),
			rowFor(exercises, domain.PatternPushH, []string{"petto", "tricipiti"}, 3),
			rowFor(exercises, domain.PatternPushV, []string{"spalle"}, 3),
			rowFor(exercises, domain.PatternPullH, []string{"dorsali", "bicipiti"}, 3),
			rowFor(exercises, domain.PatternPullV, []string{"dorsali", "avambracci"}, 3),
		},
	}
	return exercises, []domain.WorkoutSession{session}
}

func TestAnalyzeWorkoutData(t *testing.T) {
	exercises, sessions := completePlan()
	data, _ := AnalyzeWorkout(sessions, exercises)

	assert.Equal(t, 6, data.PushSets)
	assert.Equal(t, 6, data.PullSets)
	assert.Equal(t, 12, data.UpperSets)
	assert.Equal(t, 8, data.LowerSets)
	assert.Equal(t, 6, data.VolumePerMuscle["dorsali"]) // two pull rows of 3
	assert.Equal(t, 4, data.VolumePerMuscle["quadricipiti"])
	for _, pattern := range fundamentalPatterns {
		assert.True(t, data.PatternsCovered[pattern], string(pattern))
	}
}

func TestAnalyzeWorkoutCompletePlanHasNoPatternIssues(t *testing.T) {
	exercises, sessions := completePlan()
	_, issues := AnalyzeWorkout(sessions, exercises)

	for _, issue := range issues {
		assert.NotContains(t, issue.Message, "Pattern fondamentale assente")
		assert.NotContains(t, issue.Message, "Squilibrio")
	}
}

func TestAnalyzeWorkoutMissingPatternFlagged(t *testing.T) {
	exercises := make(map[primitive.ObjectID]domain.Exercise)
	sessions := []domain.WorkoutSession{{
		Name: "Push only-ish",
		Exercises: []domain.WorkoutExerciseRow{
			rowFor(exercises, domain.PatternSquat, []string{"quadricipiti"}, 4),
			rowFor(exercises, domain.PatternPushH, []string{"petto"}, 4),
			rowFor(exercises, domain.PatternPullH, []string{"dorsali"}, 4),
		},
	}}

	_, issues := AnalyzeWorkout(sessions, exercises)

	var missing []string
	for _, issue := range issues {
		if issue.Severity == IssueWarning {
			missing = append(missing, issue.Message)
		}
	}
	require.NotEmpty(t, missing)
	assert.Contains(t, missing[0], "hip hinge")
}

func TestAnalyzeWorkoutPushPullImbalance(t *testing.T) {
	// 10 push sets vs 4 pull sets: below the 60% floor.
	exercises := make(map[primitive.ObjectID]domain.Exercise)
	sessions := []domain.WorkoutSession{{
		Name: "Push day",
		Exercises: []domain.WorkoutExerciseRow{
			rowFor(exercises, domain.PatternPushH, []string{"petto"}, 10),
			rowFor(exercises, domain.PatternPullH, []string{"dorsali"}, 4),
		},
	}}

	_, issues := AnalyzeWorkout(sessions, exercises)

	found := false
	for _, issue := range issues {
		if issue.Severity == IssueWarning && strings.Contains(issue.Message, "Squilibrio spinta/tirata") {
			found = true
		}
	}
	assert.True(t, found, "expected a push/pull imbalance warning")
}

func TestAnalyzeWorkoutBalanceExactlyAtFloorIsFine(t *testing.T) {
	// 10 vs 6 sets is exactly 60%: no imbalance issue.
	exercises := make(map[primitive.ObjectID]domain.Exercise)
	sessions := []domain.WorkoutSession{{
		Name: "Upper",
		Exercises: []domain.WorkoutExerciseRow{
			rowFor(exercises, domain.PatternPushH, []string{"petto"}, 10),
			rowFor(exercises, domain.PatternPullH, []string{"dorsali"}, 6),
		},
	}}

	_, issues := AnalyzeWorkout(sessions, exercises)
	for _, issue := range issues {
		assert.NotContains(t, issue.Message, "Squilibrio spinta/tirata")
	}
}

func TestAnalyzeWorkoutZeroSideIsCritical(t *testing.T) {
	// Push work with zero pull work: critical, not just a warning.
	exercises := make(map[primitive.ObjectID]domain.Exercise)
	sessions := []domain.WorkoutSession{{
		Name: "Push only",
		Exercises: []domain.WorkoutExerciseRow{
			rowFor(exercises, domain.PatternPushH, []string{"petto"}, 8),
		},
	}}

	_, issues := AnalyzeWorkout(sessions, exercises)

	var critical []QualityIssue
	for _, issue := range issues {
		if issue.Severity == IssueCritical {
			critical = append(critical, issue)
		}
	}
	require.NotEmpty(t, critical)
	assert.Contains(t, critical[0].Message, "tirata")
}

func TestAnalyzeWorkoutUncoveredMuscles(t *testing.T) {
	exercises := make(map[primitive.ObjectID]domain.Exercise)
	sessions := []domain.WorkoutSession{{
		Name: "Legs",
		Exercises: []domain.WorkoutExerciseRow{
			rowFor(exercises, domain.PatternSquat, []string{"quadricipiti"}, 4),
		},
	}}

	data, issues := AnalyzeWorkout(sessions, exercises)
	assert.Equal(t, 1, data.MusclesCovered)

	found := false
	for _, issue := range issues {
		if strings.Contains(issue.Message, "senza volume") {
			found = true
			assert.Contains(t, issue.Message, "petto")
		}
	}
	assert.True(t, found)
}

func TestAnalyzeWorkoutUnknownExerciseIDsIgnored(t *testing.T) {
	sessions := []domain.WorkoutSession{{
		Name: "Ghost",
		Exercises: []domain.WorkoutExerciseRow{
			{ExerciseID: primitive.NewObjectID(), Sets: 5, Reps: "5"},
		},
	}}

	data, _ := AnalyzeWorkout(sessions, map[primitive.ObjectID]domain.Exercise{})
	assert.Zero(t, data.PushSets)
	assert.Zero(t, data.MusclesCovered)
}
