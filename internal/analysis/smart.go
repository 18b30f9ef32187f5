package analysis

import (
	"math"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"ptstudio/trainer-hub/internal/domain"
)

// CoverageStatus tags weekly per-muscle volume relative to its target range.
type CoverageStatus string

const (
	CoverageDeficit CoverageStatus = "deficit"
	CoverageOptimal CoverageStatus = "optimal"
	CoverageExcess  CoverageStatus = "excess"
)

// MuscleCoverage is the weekly set count for one muscle vs its target range.
type MuscleCoverage struct {
	Muscle     string         `json:"muscle"`
	WeeklySets int            `json:"weeklySets"`
	TargetMin  int            `json:"targetMin"`
	TargetMax  int            `json:"targetMax"`
	Status     CoverageStatus `json:"status"`
}

// VolumeAnalysis classifies the total weekly volume against the level range.
type VolumeAnalysis struct {
	WeeklySets float64        `json:"weeklySets"`
	TargetMin  int            `json:"targetMin"`
	TargetMax  int            `json:"targetMax"`
	Status     CoverageStatus `json:"status"`
}

// VarietyReport tallies the biomechanical attribute distribution across all
// exercise slots, for proportion breakdowns in the UI.
type VarietyReport struct {
	Planes       map[domain.MovementPlane]int   `json:"planes"`
	Chains       map[domain.KineticChain]int    `json:"chains"`
	Contractions map[domain.ContractionType]int `json:"contractions"`
}

// RecoveryConflict flags two sessions in the same week training overlapping
// muscles with less rest than the muscle group requires.
type RecoveryConflict struct {
	FirstSession   string   `json:"firstSession"`
	SecondSession  string   `json:"secondSession"`
	Muscles        []string `json:"muscles"`
	HoursAvailable float64  `json:"hoursAvailable"`
	HoursRequired  float64  `json:"hoursRequired"`
	Severity       Severity `json:"severity"`
}

// SmartAnalysis is the full smart-programming report for a built plan.
type SmartAnalysis struct {
	MuscleCoverage    []MuscleCoverage   `json:"muscleCoverage"`
	Volume            VolumeAnalysis     `json:"volume"`
	Variety           VarietyReport      `json:"variety"`
	RecoveryConflicts []RecoveryConflict `json:"recoveryConflicts"`
	SafetyScore       int                `json:"safetyScore"`
}

// Canonical muscle list, also the coverage output order.
var muscleOrder = []string{
	"petto", "dorsali", "spalle", "trapezi",
	"quadricipiti", "femorali", "glutei", "polpacci",
	"bicipiti", "tricipiti", "avambracci",
	"addome", "lombari",
}

// Baseline weekly set ranges per muscle (NSCA-style, intermediate lifter).
// Beginner and advanced tables are derived by the level multiplier.
var baseMuscleRanges = map[string][2]int{
	"petto":        {10, 20},
	"dorsali":      {10, 20},
	"spalle":       {8, 16},
	"trapezi":      {0, 8},
	"quadricipiti": {8, 18},
	"femorali":     {6, 14},
	"glutei":       {6, 14},
	"polpacci":     {4, 10},
	"bicipiti":     {4, 12},
	"tricipiti":    {4, 12},
	"avambracci":   {0, 6},
	"addome":       {4, 12},
	"lombari":      {2, 8},
}

var levelMultiplier = map[domain.TrainingLevel]float64{
	domain.LevelBeginner:     0.6,
	domain.LevelIntermediate: 1.0,
	domain.LevelAdvanced:     1.3,
}

// Total weekly set targets across all muscles, per level.
var totalVolumeTargets = map[domain.TrainingLevel][2]int{
	domain.LevelBeginner:     {30, 60},
	domain.LevelIntermediate: {60, 110},
	domain.LevelAdvanced:     {90, 150},
}

// Recovery hours required between sessions hitting the same muscle group.
// Large muscle groups need ~48h, small ones ~24h.
var recoveryHours = map[string]float64{
	"petto":        48,
	"dorsali":      48,
	"quadricipiti": 48,
	"femorali":     48,
	"glutei":       48,
	"lombari":      48,
	"spalle":       24,
	"trapezi":      24,
	"polpacci":     24,
	"bicipiti":     24,
	"tricipiti":    24,
	"avambracci":   24,
	"addome":       24,
}

func muscleRange(muscle string, level domain.TrainingLevel) (int, int, bool) {
	base, ok := baseMuscleRanges[muscle]
	if !ok {
		return 0, 0, false
	}
	mult, ok := levelMultiplier[level]
	if !ok {
		mult = levelMultiplier[domain.LevelIntermediate]
	}
	return int(math.Round(float64(base[0]) * mult)), int(math.Round(float64(base[1]) * mult)), true
}

func coverageStatus(sets float64, min, max int) CoverageStatus {
	switch {
	case sets < float64(min):
		return CoverageDeficit
	case sets > float64(max):
		return CoverageExcess
	default:
		return CoverageOptimal
	}
}

// Complementary-section sets count half toward total volume; principal
// (and untagged) sets count fully.
func sectionWeight(section domain.WorkoutSection) float64 {
	if section == domain.SectionComplementary {
		return 0.5
	}
	return 1.0
}

// sessionDays assigns each session a day offset inside the week. Explicit
// DayOfWeek wins when every session has one; otherwise sessions are assumed
// evenly spread over the week.
func sessionDays(sessions []domain.WorkoutSession, sessionsPerWeek int) []float64 {
	days := make([]float64, len(sessions))
	allExplicit := len(sessions) > 0
	for _, s := range sessions {
		if s.DayOfWeek == nil {
			allExplicit = false
			break
		}
	}
	if allExplicit {
		for i, s := range sessions {
			days[i] = float64(*s.DayOfWeek - 1)
		}
		return days
	}

	n := sessionsPerWeek
	if n < len(sessions) {
		n = len(sessions)
	}
	if n == 0 {
		return days
	}
	spacing := 7.0 / float64(n)
	for i := range sessions {
		days[i] = float64(i) * spacing
	}
	return days
}

func primaryMusclesOf(sessions []domain.WorkoutSession, exercises map[primitive.ObjectID]domain.Exercise, sessionIdx int) map[string]bool {
	muscles := make(map[string]bool)
	for _, row := range sessions[sessionIdx].Exercises {
		ex, ok := exercises[row.ExerciseID]
		if !ok {
			continue
		}
		for _, m := range ex.PrimaryMuscles {
			muscles[m] = true
		}
	}
	return muscles
}

func findRecoveryConflicts(sessions []domain.WorkoutSession, exercises map[primitive.ObjectID]domain.Exercise, sessionsPerWeek int) []RecoveryConflict {
	conflicts := []RecoveryConflict{}
	days := sessionDays(sessions, sessionsPerWeek)

	for i := 0; i < len(sessions); i++ {
		for j := i + 1; j < len(sessions); j++ {
			hoursAvailable := (days[j] - days[i]) * 24
			if hoursAvailable < 0 {
				continue // out-of-order explicit days; skip the pair
			}

			musclesI := primaryMusclesOf(sessions, exercises, i)
			var conflicting []string
			var required float64
			for _, muscle := range muscleOrder {
				if !musclesI[muscle] {
					continue
				}
				if !primaryMusclesOf(sessions, exercises, j)[muscle] {
					continue
				}
				need, ok := recoveryHours[muscle]
				if !ok || hoursAvailable >= need {
					continue
				}
				conflicting = append(conflicting, muscle)
				if need > required {
					required = need
				}
			}
			if len(conflicting) == 0 {
				continue
			}

			severity := SeverityWarning
			if hoursAvailable < required/2 {
				severity = SeverityAlert
			}
			conflicts = append(conflicts, RecoveryConflict{
				FirstSession:   sessions[i].Name,
				SecondSession:  sessions[j].Name,
				Muscles:        conflicting,
				HoursAvailable: math.Round(hoursAvailable),
				HoursRequired:  required,
				Severity:       severity,
			})
		}
	}
	return conflicts
}

func computeSafetyScore(sessions []domain.WorkoutSession, safety map[primitive.ObjectID]SafetyResult) int {
	if safety == nil {
		return 100
	}
	total := 0
	ok := 0
	for _, s := range sessions {
		for _, row := range s.Exercises {
			total++
			// Caution still counts as trainable for the score; only avoid
			// verdicts pull it down.
			if safety[row.ExerciseID].Safety != SafetyAvoid {
				ok++
			}
		}
	}
	if total == 0 {
		return 100
	}
	return int(math.Round(float64(ok) / float64(total) * 100))
}

// ComputeSmartAnalysis produces the full smart-programming report for a
// plan's sessions. Callers guard the empty-plan case: the engine assumes at
// least one exercise slot is present.
func ComputeSmartAnalysis(
	sessions []domain.WorkoutSession,
	exercises map[primitive.ObjectID]domain.Exercise,
	level domain.TrainingLevel,
	sessionsPerWeek int,
	safety map[primitive.ObjectID]SafetyResult,
) SmartAnalysis {
	setsPerMuscle := make(map[string]int)
	var totalWeighted float64

	variety := VarietyReport{
		Planes:       make(map[domain.MovementPlane]int),
		Chains:       make(map[domain.KineticChain]int),
		Contractions: make(map[domain.ContractionType]int),
	}

	for _, s := range sessions {
		for _, row := range s.Exercises {
			ex, found := exercises[row.ExerciseID]
			if !found {
				continue
			}
			for _, muscle := range ex.PrimaryMuscles {
				setsPerMuscle[muscle] += row.Sets
			}
			totalWeighted += float64(row.Sets) * sectionWeight(row.Section)

			if ex.MovementPlane != "" {
				variety.Planes[ex.MovementPlane]++
			}
			if ex.KineticChain != "" {
				variety.Chains[ex.KineticChain]++
			}
			if ex.ContractionType != "" {
				variety.Contractions[ex.ContractionType]++
			}
		}
	}

	coverage := make([]MuscleCoverage, 0, len(muscleOrder))
	for _, muscle := range muscleOrder {
		min, max, ok := muscleRange(muscle, level)
		if !ok {
			continue
		}
		sets := setsPerMuscle[muscle]
		coverage = append(coverage, MuscleCoverage{
			Muscle:     muscle,
			WeeklySets: sets,
			TargetMin:  min,
			TargetMax:  max,
			Status:     coverageStatus(float64(sets), min, max),
		})
	}

	volumeTarget, ok := totalVolumeTargets[level]
	if !ok {
		volumeTarget = totalVolumeTargets[domain.LevelIntermediate]
	}
	volume := VolumeAnalysis{
		WeeklySets: totalWeighted,
		TargetMin:  volumeTarget[0],
		TargetMax:  volumeTarget[1],
		Status:     coverageStatus(totalWeighted, volumeTarget[0], volumeTarget[1]),
	}

	return SmartAnalysis{
		MuscleCoverage:    coverage,
		Volume:            volume,
		Variety:           variety,
		RecoveryConflicts: findRecoveryConflicts(sessions, exercises, sessionsPerWeek),
		SafetyScore:       computeSafetyScore(sessions, safety),
	}
}
