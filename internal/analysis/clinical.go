package analysis

import (
	"math"

	"ptstudio/trainer-hub/internal/domain"
)

// RateAssessment classifies the weekly rate of change of one tracked metric
// against guideline thresholds.
type RateAssessment struct {
	MetricID   string   `json:"metricId"`
	Name       string   `json:"name"`
	WeeklyRate float64  `json:"weeklyRate"`
	Unit       string   `json:"unit"`
	Severity   Severity `json:"severity"`
	Guideline  string   `json:"guideline"`
}

// CompositionAnalysis describes the body-composition phase over the tracked
// window. Fat/lean deltas are present only when fat% data exists at both
// ends of the window.
type CompositionAnalysis struct {
	Phase         string   `json:"phase"` // cutting | bulking | recomposition | plateau
	Description   string   `json:"description"`
	WeightDelta   float64  `json:"weightDelta"`
	FatMassDelta  *float64 `json:"fatMassDelta,omitempty"`
	LeanMassDelta *float64 `json:"leanMassDelta,omitempty"`
	// Linear projection from the current weekly weight rate toward the
	// active weight goal; nil when no goal, no rate, or rate points the
	// wrong way.
	WeeksToGoal *float64 `json:"weeksToGoal,omitempty"`
}

// SymmetryComparison is a bilateral left/right circumference comparison.
type SymmetryComparison struct {
	Name        string   `json:"name"`
	RightID     string   `json:"rightId"`
	LeftID      string   `json:"leftId"`
	Right       float64  `json:"right"`
	Left        float64  `json:"left"`
	Diff        float64  `json:"diff"`
	DiffPercent float64  `json:"diffPercent"`
	Severity    Severity `json:"severity"`
}

// RiskFactor is one classified entry of the risk profile.
type RiskFactor struct {
	Name     string   `json:"name"`
	Value    float64  `json:"value"`
	Band     string   `json:"band"`
	Severity Severity `json:"severity"`
}

// RiskProfile aggregates metabolic and cardiovascular factors; Overall is
// the worst severity across every factor.
type RiskProfile struct {
	Metabolic      []RiskFactor `json:"metabolic"`
	Cardiovascular []RiskFactor `json:"cardiovascular"`
	Overall        Severity     `json:"overall"`
	Referral       string       `json:"referral,omitempty"`
}

// ClinicalReport composes every analysis module. Each module is
// independently optional: insufficient data leaves it empty/nil rather than
// failing the whole report.
type ClinicalReport struct {
	HasData     bool                 `json:"hasData"`
	Derived     *DerivedResult       `json:"derived,omitempty"`
	Rates       []RateAssessment     `json:"rates,omitempty"`
	Composition *CompositionAnalysis `json:"composition,omitempty"`
	Symmetry    []SymmetryComparison `json:"symmetry,omitempty"`
	Risk        *RiskProfile         `json:"risk,omitempty"`
}

// rateBand classifies a weekly rate: the rate belongs to the first band
// whose Max is strictly greater (same upper-exclusive convention as the
// normative tables).
type rateBand struct {
	Max       float64
	Severity  Severity
	Guideline string
}

// Guideline thresholds per tracked metric, ACSM-style. Units are per week.
var rateGuidelines = map[string][]rateBand{
	domain.MetricWeight: {
		{-1.0, SeverityAlert, "Perdita oltre 1 kg/settimana: superiore alle linee guida ACSM (0.5-1 kg)"},
		{-0.25, SeverityPositive, "Perdita graduale, entro le linee guida ACSM"},
		{0.25, SeverityNeutral, "Peso stabile"},
		{0.75, SeverityInfo, "Aumento moderato: coerente con una fase di massa controllata"},
		{inf, SeverityWarning, "Aumento rapido: verificare apporto calorico"},
	},
	domain.MetricBodyFat: {
		{-1.0, SeverityWarning, "Calo molto rapido della massa grassa: verificare la misurazione"},
		{-0.1, SeverityPositive, "Riduzione graduale della massa grassa"},
		{0.1, SeverityNeutral, "Massa grassa stabile"},
		{0.5, SeverityInfo, "Lieve aumento della massa grassa"},
		{inf, SeverityWarning, "Aumento rapido della massa grassa"},
	},
	domain.MetricWaist: {
		{-2.0, SeverityWarning, "Riduzione molto rapida del girovita: verificare la misurazione"},
		{-0.2, SeverityPositive, "Girovita in riduzione"},
		{0.2, SeverityNeutral, "Girovita stabile"},
		{1.0, SeverityInfo, "Girovita in lieve aumento"},
		{inf, SeverityWarning, "Girovita in aumento rapido"},
	},
	domain.MetricSystolic: {
		{-2.0, SeverityPositive, "Pressione sistolica in riduzione"},
		{2.0, SeverityNeutral, "Pressione sistolica stabile"},
		{5.0, SeverityWarning, "Pressione sistolica in aumento: monitorare"},
		{inf, SeverityAlert, "Pressione sistolica in aumento rapido: consultare un medico"},
	},
	domain.MetricRestingHR: {
		{-1.0, SeverityPositive, "Frequenza a riposo in miglioramento"},
		{1.0, SeverityNeutral, "Frequenza a riposo stabile"},
		{3.0, SeverityInfo, "Frequenza a riposo in lieve aumento"},
		{inf, SeverityWarning, "Frequenza a riposo in aumento: possibile affaticamento"},
	},
}

// Evaluation order for tracked metrics, so reports are stable.
var trackedRateMetrics = []struct {
	ID   string
	Name string
	Unit string
}{
	{domain.MetricWeight, "Peso", "kg/sett"},
	{domain.MetricBodyFat, "Massa grassa", "%/sett"},
	{domain.MetricWaist, "Girovita", "cm/sett"},
	{domain.MetricSystolic, "Pressione sistolica", "mmHg/sett"},
	{domain.MetricRestingHR, "Frequenza a riposo", "bpm/sett"},
}

func assessRates(measurements []domain.Measurement) []RateAssessment {
	var out []RateAssessment
	for _, tracked := range trackedRateMetrics {
		rate := ComputeWeeklyRate(measurements, tracked.ID, DefaultRateWindowDays)
		if rate == nil {
			continue
		}
		bands := rateGuidelines[tracked.ID]
		for _, b := range bands {
			if *rate < b.Max {
				out = append(out, RateAssessment{
					MetricID:   tracked.ID,
					Name:       tracked.Name,
					WeeklyRate: *rate,
					Unit:       tracked.Unit,
					Severity:   b.Severity,
					Guideline:  b.Guideline,
				})
				break
			}
		}
	}
	return out
}

// windowDelta returns the change between the oldest windowed point and the
// latest point of a metric series (falling back to the full-series endpoints
// when the window is too sparse), mirroring the rate-point selection.
func windowDelta(measurements []domain.Measurement, metricID string, windowDays int) (first, last float64, ok bool) {
	points := metricSeries(measurements, metricID)
	if len(points) < 2 {
		return 0, 0, false
	}
	latest := points[len(points)-1]
	cutoff := latest.Date.AddDate(0, 0, -windowDays)
	var window []ratePoint
	for _, p := range points {
		if !p.Date.Before(cutoff) {
			window = append(window, p)
		}
	}
	if len(window) < 2 {
		window = []ratePoint{points[0], latest}
	}
	return window[0].Value, window[len(window)-1].Value, true
}

const phaseThresholdKg = 0.5

func analyzeComposition(measurements []domain.Measurement, goals []domain.ClientGoal) *CompositionAnalysis {
	wFirst, wLast, ok := windowDelta(measurements, domain.MetricWeight, DefaultRateWindowDays)
	if !ok {
		return nil
	}
	weightDelta := round1(wLast - wFirst)

	comp := &CompositionAnalysis{WeightDelta: weightDelta}

	fFirst, fLast, hasFat := windowDelta(measurements, domain.MetricBodyFat, DefaultRateWindowDays)
	if hasFat {
		// Fat mass at each end of the window, from weight and fat%.
		fatMassDelta := round1(wLast*fLast/100 - wFirst*fFirst/100)
		leanMassDelta := round1(weightDelta - fatMassDelta)
		comp.FatMassDelta = &fatMassDelta
		comp.LeanMassDelta = &leanMassDelta
	}

	switch {
	case hasFat && math.Abs(weightDelta) < phaseThresholdKg &&
		*comp.FatMassDelta <= -phaseThresholdKg && *comp.LeanMassDelta >= phaseThresholdKg:
		comp.Phase = "recomposition"
		comp.Description = "Ricomposizione corporea: massa grassa in calo e massa magra in aumento a peso stabile"
	case weightDelta <= -phaseThresholdKg:
		comp.Phase = "cutting"
		comp.Description = "Fase di definizione: peso in calo"
	case weightDelta >= phaseThresholdKg:
		comp.Phase = "bulking"
		comp.Description = "Fase di massa: peso in aumento"
	default:
		comp.Phase = "plateau"
		comp.Description = "Peso stabile nel periodo osservato"
	}

	comp.WeeksToGoal = projectWeeksToGoal(measurements, goals, wLast)
	return comp
}

// projectWeeksToGoal linearly extrapolates the current weekly weight rate
// toward the first active weight goal. Nil when there is no goal, no rate,
// or the rate moves away from the target.
func projectWeeksToGoal(measurements []domain.Measurement, goals []domain.ClientGoal, currentWeight float64) *float64 {
	var goal *domain.ClientGoal
	for i := range goals {
		if goals[i].MetricID == domain.MetricWeight && !goals[i].Achieved {
			goal = &goals[i]
			break
		}
	}
	if goal == nil {
		return nil
	}
	rate := ComputeWeeklyRate(measurements, domain.MetricWeight, DefaultRateWindowDays)
	if rate == nil || *rate == 0 {
		return nil
	}
	weeks := (goal.TargetValue - currentWeight) / *rate
	if weeks <= 0 || math.IsInf(weeks, 0) || math.IsNaN(weeks) {
		return nil
	}
	rounded := round1(weeks)
	return &rounded
}

// Bilateral circumference pairs checked by the symmetry module.
var symmetryPairs = []struct {
	Name    string
	RightID string
	LeftID  string
}{
	{"Braccia", domain.MetricArmRight, domain.MetricArmLeft},
	{"Cosce", domain.MetricThighRight, domain.MetricThighLeft},
	{"Polpacci", domain.MetricCalfRight, domain.MetricCalfLeft},
}

// Percentage asymmetry thresholds (upper-exclusive, worst last).
var symmetryBands = []struct {
	Max      float64
	Severity Severity
}{
	{3.0, SeverityNeutral},
	{6.0, SeverityInfo},
	{10.0, SeverityWarning},
	{inf, SeverityAlert},
}

func analyzeSymmetry(measurements []domain.Measurement) []SymmetryComparison {
	var out []SymmetryComparison
	for _, pair := range symmetryPairs {
		right, okR := latestValue(measurements, pair.RightID)
		left, okL := latestValue(measurements, pair.LeftID)
		if !okR || !okL {
			continue
		}
		larger := math.Max(right, left)
		if larger <= 0 {
			continue
		}
		diff := round1(math.Abs(right - left))
		pct := round1(math.Abs(right-left) / larger * 100)

		severity := SeverityNeutral
		for _, b := range symmetryBands {
			if pct < b.Max {
				severity = b.Severity
				break
			}
		}
		out = append(out, SymmetryComparison{
			Name:        pair.Name,
			RightID:     pair.RightID,
			LeftID:      pair.LeftID,
			Right:       right,
			Left:        left,
			Diff:        diff,
			DiffPercent: pct,
			Severity:    severity,
		})
	}
	return out
}

// Classification color to risk severity.
var colorSeverity = map[string]Severity{
	colorGreen:  SeverityPositive,
	colorYellow: SeverityInfo,
	colorOrange: SeverityWarning,
	colorRed:    SeverityAlert,
}

func riskFactorFrom(name string, value float64, c *Classification) *RiskFactor {
	if c == nil {
		return nil
	}
	severity, ok := colorSeverity[c.Color]
	if !ok {
		severity = SeverityNeutral
	}
	return &RiskFactor{Name: name, Value: value, Band: c.Label, Severity: severity}
}

func buildRiskProfile(derived DerivedResult, measurements []domain.Measurement, sex domain.Sex, age int) *RiskProfile {
	derivedByID := make(map[string]DerivedMetric, len(derived.Metrics))
	for _, m := range derived.Metrics {
		derivedByID[m.ID] = m
	}

	// Overall only matters when factors exist (nil is returned otherwise),
	// so the fold starts from the mildest severity.
	profile := &RiskProfile{Overall: SeverityPositive}

	appendFactor := func(list *[]RiskFactor, name string, value float64, c *Classification) {
		if f := riskFactorFrom(name, value, c); f != nil {
			*list = append(*list, *f)
			profile.Overall = worstSeverity(profile.Overall, f.Severity)
		}
	}

	if m, ok := derivedByID[DerivedBMI]; ok {
		appendFactor(&profile.Metabolic, "BMI", m.Value, m.Classification)
	}
	if m, ok := derivedByID[DerivedWHR]; ok {
		appendFactor(&profile.Metabolic, "Rapporto vita/fianchi", m.Value, m.Classification)
	}
	if fat, ok := latestValue(measurements, domain.MetricBodyFat); ok {
		appendFactor(&profile.Metabolic, "Massa grassa", fat, ClassifyValue(domain.MetricBodyFat, fat, sex, age))
	}
	if m, ok := derivedByID[DerivedMAP]; ok {
		appendFactor(&profile.Cardiovascular, "Pressione arteriosa media", m.Value, m.Classification)
	}
	if hr, ok := latestValue(measurements, domain.MetricRestingHR); ok {
		appendFactor(&profile.Cardiovascular, "Frequenza a riposo", hr, ClassifyValue(domain.MetricRestingHR, hr, sex, age))
	}

	if len(profile.Metabolic) == 0 && len(profile.Cardiovascular) == 0 {
		return nil
	}
	if profile.Overall == SeverityAlert {
		profile.Referral = "Si consiglia una valutazione medica prima di proseguire con programmi ad alta intensità"
	}
	return profile
}

// GenerateClinicalReport composes derived metrics, rate assessment,
// composition analysis, bilateral symmetry and the risk profile into one
// report. Modules with insufficient data degrade to absent; the report
// never fails.
func GenerateClinicalReport(measurements []domain.Measurement, sex domain.Sex, age int, goals []domain.ClientGoal) ClinicalReport {
	derived := ComputeAllDerived(measurements, sex, age)

	report := ClinicalReport{
		Rates:       assessRates(measurements),
		Composition: analyzeComposition(measurements, goals),
		Symmetry:    analyzeSymmetry(measurements),
		Risk:        buildRiskProfile(derived, measurements, sex, age),
	}
	if len(derived.Metrics) > 0 || len(derived.StrengthRatios) > 0 {
		report.Derived = &derived
	}
	report.HasData = report.Derived != nil || len(report.Rates) > 0 ||
		report.Composition != nil || len(report.Symmetry) > 0 || report.Risk != nil
	return report
}
