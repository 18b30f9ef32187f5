package analysis

import (
	"time"

	"ptstudio/trainer-hub/internal/domain"
)

// BuildClientProfile assembles the smart-programming input bag from
// already-fetched entities. It performs no I/O: the caller resolves every
// entity first and passes it in.
func BuildClientProfile(
	client *domain.User,
	measurements []domain.Measurement,
	anamnesi *domain.AnamnesiData,
	exercises []domain.Exercise,
	goals []domain.ClientGoal,
	now time.Time,
) ClientProfile {
	profile := ClientProfile{}
	if client != nil {
		profile.Sex = client.Sex
		profile.Age = client.Age(now)
	}

	profile.Safety = ClassifyExercises(exercises, anamnesi)

	derived := ComputeAllDerived(measurements, profile.Sex, profile.Age)
	profile.StrengthRatios = derived.StrengthRatios

	for _, g := range goals {
		if !g.Achieved {
			profile.ActiveGoals = append(profile.ActiveGoals, g)
		}
	}

	// Only asymmetries worth programming around (warning and above).
	for _, s := range analyzeSymmetry(measurements) {
		if severityRank[s.Severity] >= severityRank[SeverityWarning] {
			profile.SymmetryDeficits = append(profile.SymmetryDeficits, s)
		}
	}

	if v, ok := latestValue(measurements, domain.MetricWeight); ok {
		profile.Weight = &v
	}
	if v, ok := latestValue(measurements, domain.MetricHeight); ok {
		profile.Height = &v
	}
	if v, ok := latestValue(measurements, domain.MetricBodyFat); ok {
		profile.BodyFat = &v
	}

	return profile
}
