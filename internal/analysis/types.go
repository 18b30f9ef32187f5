package analysis

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"ptstudio/trainer-hub/internal/domain"
)

// Severity grades a finding for the presentation layer.
// Ordering (mildest to worst): positive < neutral < info < warning < alert.
type Severity string

const (
	SeverityPositive Severity = "positive"
	SeverityNeutral  Severity = "neutral"
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityAlert    Severity = "alert"
)

var severityRank = map[Severity]int{
	SeverityPositive: 0,
	SeverityNeutral:  1,
	SeverityInfo:     2,
	SeverityWarning:  3,
	SeverityAlert:    4,
}

// worstSeverity returns the highest-ranked severity of the two.
func worstSeverity(a, b Severity) Severity {
	if severityRank[b] > severityRank[a] {
		return b
	}
	return a
}

// Classification is a normative band assignment for a metric value.
type Classification struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

// DerivedMetric is one computed anthropometric/physiological quantity.
type DerivedMetric struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Value          float64         `json:"value"`
	Unit           string          `json:"unit"`
	Classification *Classification `json:"classification,omitempty"`
}

// StrengthRatio is a 1RM-to-bodyweight ratio with its level label.
type StrengthRatio struct {
	Lift  string  `json:"lift"`
	Name  string  `json:"name"`
	Ratio float64 `json:"ratio"`
	Level string  `json:"level"`
}

// DerivedResult bundles everything ComputeAllDerived produces.
type DerivedResult struct {
	Metrics        []DerivedMetric `json:"metrics"`
	StrengthRatios []StrengthRatio `json:"strengthRatios"`
}

// ClientProfile is the single input bag for the smart-programming engine,
// assembled by the caller from already-fetched entities. The engine itself
// never fetches anything.
type ClientProfile struct {
	Sex              domain.Sex                            `json:"sex,omitempty"`
	Age              int                                   `json:"age,omitempty"`
	Safety           map[primitive.ObjectID]SafetyResult   `json:"safety,omitempty"`
	StrengthRatios   []StrengthRatio                       `json:"strengthRatios,omitempty"`
	ActiveGoals      []domain.ClientGoal                   `json:"activeGoals,omitempty"`
	SymmetryDeficits []SymmetryComparison                  `json:"symmetryDeficits,omitempty"`
	Weight           *float64                              `json:"weight,omitempty"`
	Height           *float64                              `json:"height,omitempty"`
	BodyFat          *float64                              `json:"bodyFat,omitempty"`
}
