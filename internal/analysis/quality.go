package analysis

import (
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"ptstudio/trainer-hub/internal/domain"
)

// IssueSeverity grades a quality issue.
type IssueSeverity string

const (
	IssueWarning  IssueSeverity = "warning"
	IssueCritical IssueSeverity = "critical"
)

// QualityIssue is one structured finding about a workout plan.
type QualityIssue struct {
	Severity   IssueSeverity `json:"severity"`
	Message    string        `json:"message"`
	Suggestion string        `json:"suggestion,omitempty"`
}

// WorkoutAnalysisData is the raw quality breakdown of a plan: volume per
// muscle, push/pull and upper/lower set counts, and pattern coverage.
// Balance counts are plain set sums, not weighted by load.
type WorkoutAnalysisData struct {
	VolumePerMuscle map[string]int                  `json:"volumePerMuscle"`
	PushSets        int                             `json:"pushSets"`
	PullSets        int                             `json:"pullSets"`
	UpperSets       int                             `json:"upperSets"`
	LowerSets       int                             `json:"lowerSets"`
	PatternsCovered map[domain.MovementPattern]bool `json:"patternsCovered"`
	MusclesCovered  int                             `json:"musclesCovered"`
}

// The fundamental movement patterns every complete program should contain.
// Complementary patterns (core, rotation, carry) are tracked as covered or
// not but their absence is never an issue.
var fundamentalPatterns = []domain.MovementPattern{
	domain.PatternSquat,
	domain.PatternHinge,
	domain.PatternPushH,
	domain.PatternPushV,
	domain.PatternPullH,
	domain.PatternPullV,
}

var fundamentalPatternNames = map[domain.MovementPattern]string{
	domain.PatternSquat: "squat",
	domain.PatternHinge: "hip hinge",
	domain.PatternPushH: "spinta orizzontale",
	domain.PatternPushV: "spinta verticale",
	domain.PatternPullH: "tirata orizzontale",
	domain.PatternPullV: "tirata verticale",
}

// Imbalance bar: the smaller side must reach at least 60% of the larger.
const balanceRatioFloor = 0.6

func isPushPattern(p domain.MovementPattern) bool {
	return p == domain.PatternPushH || p == domain.PatternPushV
}

func isPullPattern(p domain.MovementPattern) bool {
	return p == domain.PatternPullH || p == domain.PatternPullV
}

func isLowerPattern(p domain.MovementPattern) bool {
	return p == domain.PatternSquat || p == domain.PatternHinge || p == domain.PatternLunge
}

// AnalyzeWorkout computes the quality breakdown of a plan's sessions and the
// structured issue list in one pass over the same data.
func AnalyzeWorkout(sessions []domain.WorkoutSession, exercises map[primitive.ObjectID]domain.Exercise) (WorkoutAnalysisData, []QualityIssue) {
	data := WorkoutAnalysisData{
		VolumePerMuscle: make(map[string]int),
		PatternsCovered: make(map[domain.MovementPattern]bool),
	}

	for _, s := range sessions {
		for _, row := range s.Exercises {
			ex, ok := exercises[row.ExerciseID]
			if !ok {
				continue
			}
			for _, muscle := range ex.PrimaryMuscles {
				data.VolumePerMuscle[muscle] += row.Sets
			}
			if ex.MovementPattern != "" {
				data.PatternsCovered[ex.MovementPattern] = true
			}
			if isPushPattern(ex.MovementPattern) {
				data.PushSets += row.Sets
				data.UpperSets += row.Sets
			}
			if isPullPattern(ex.MovementPattern) {
				data.PullSets += row.Sets
				data.UpperSets += row.Sets
			}
			if isLowerPattern(ex.MovementPattern) {
				data.LowerSets += row.Sets
			}
		}
	}
	data.MusclesCovered = len(data.VolumePerMuscle)

	return data, qualityIssues(data)
}

func qualityIssues(data WorkoutAnalysisData) []QualityIssue {
	issues := []QualityIssue{}

	for _, pattern := range fundamentalPatterns {
		if data.PatternsCovered[pattern] {
			continue
		}
		issues = append(issues, QualityIssue{
			Severity:   IssueWarning,
			Message:    fmt.Sprintf("Pattern fondamentale assente: %s", fundamentalPatternNames[pattern]),
			Suggestion: fmt.Sprintf("Aggiungere almeno un esercizio di %s", fundamentalPatternNames[pattern]),
		})
	}

	if issue := balanceIssue("spinta", "tirata", data.PushSets, data.PullSets); issue != nil {
		issues = append(issues, *issue)
	}
	if issue := balanceIssue("parte superiore", "parte inferiore", data.UpperSets, data.LowerSets); issue != nil {
		issues = append(issues, *issue)
	}

	var uncovered []string
	for _, muscle := range muscleOrder {
		if data.VolumePerMuscle[muscle] == 0 {
			uncovered = append(uncovered, muscle)
		}
	}
	if len(uncovered) > 0 {
		issues = append(issues, QualityIssue{
			Severity:   IssueWarning,
			Message:    fmt.Sprintf("Gruppi muscolari senza volume: %s", strings.Join(uncovered, ", ")),
			Suggestion: "Valutare se l'esclusione è intenzionale per questa fase",
		})
	}

	return issues
}

// balanceIssue flags an imbalance when the smaller side is below 60% of the
// larger. A side at zero while the other trains is a critical finding.
func balanceIssue(nameA, nameB string, setsA, setsB int) *QualityIssue {
	larger, smaller := setsA, setsB
	largerName, smallerName := nameA, nameB
	if setsB > setsA {
		larger, smaller = setsB, setsA
		largerName, smallerName = nameB, nameA
	}
	if larger == 0 {
		return nil // nothing on either side; the pattern issues already cover it
	}
	if smaller == 0 {
		return &QualityIssue{
			Severity:   IssueCritical,
			Message:    fmt.Sprintf("Nessun volume di %s a fronte di %d serie di %s", smallerName, larger, largerName),
			Suggestion: fmt.Sprintf("Inserire lavoro di %s per riequilibrare", smallerName),
		}
	}
	if float64(smaller) >= float64(larger)*balanceRatioFloor {
		return nil
	}
	return &QualityIssue{
		Severity:   IssueWarning,
		Message:    fmt.Sprintf("Squilibrio %s/%s: %d serie contro %d", largerName, smallerName, larger, smaller),
		Suggestion: fmt.Sprintf("Portare il volume di %s ad almeno il 60%% di quello di %s", smallerName, largerName),
	}
}
