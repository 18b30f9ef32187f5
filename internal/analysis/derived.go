package analysis

import (
	"math"

	"ptstudio/trainer-hub/internal/domain"
)

// Rounding helpers. math.Round rounds half away from zero, which matches the
// frontend's Math.round for the positive quantities handled here.
func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }

// latestValue scans the measurement list (assumed sorted newest-first) and
// returns the most recent recorded value for a metric.
func latestValue(measurements []domain.Measurement, metricID string) (float64, bool) {
	for i := range measurements {
		if v, ok := measurements[i].Value(metricID); ok {
			return v, true
		}
	}
	return 0, false
}

// ComputeBMI returns weight(kg) / height(m)^2 rounded to 1 decimal.
// ok is false for non-positive or non-finite inputs.
func ComputeBMI(weightKg, heightCm float64) (float64, bool) {
	if !validPositive(weightKg) || !validPositive(heightCm) {
		return 0, false
	}
	h := heightCm / 100.0
	return round1(weightKg / (h * h)), true
}

// ComputeLBM returns the lean body mass weight*(1 - fat%/100), 1 decimal.
func ComputeLBM(weightKg, bodyFatPct float64) (float64, bool) {
	if !validPositive(weightKg) || math.IsNaN(bodyFatPct) || bodyFatPct < 0 || bodyFatPct >= 100 {
		return 0, false
	}
	return round1(weightKg * (1 - bodyFatPct/100)), true
}

// ComputeFFMI returns the fat-free mass index LBM / height(m)^2, 1 decimal.
func ComputeFFMI(leanMassKg, heightCm float64) (float64, bool) {
	if !validPositive(leanMassKg) || !validPositive(heightCm) {
		return 0, false
	}
	h := heightCm / 100.0
	return round1(leanMassKg / (h * h)), true
}

// ComputeWHR returns waist/hips rounded to 2 decimals.
func ComputeWHR(waistCm, hipsCm float64) (float64, bool) {
	if !validPositive(waistCm) || !validPositive(hipsCm) {
		return 0, false
	}
	return round2(waistCm / hipsCm), true
}

// ComputeMAP returns the mean arterial pressure
// diastolic + (systolic-diastolic)/3, rounded to the nearest integer.
func ComputeMAP(systolic, diastolic float64) (float64, bool) {
	if !validPositive(systolic) || !validPositive(diastolic) {
		return 0, false
	}
	return math.Round(diastolic + (systolic-diastolic)/3), true
}

func validPositive(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}

// Strength-level labels, mildest first. A ratio is assigned the highest
// level whose threshold it reaches; below every threshold it is "Iniziale".
var strengthLevels = [4]string{"Principiante", "Intermedio", "Avanzato", "Elite"}

// Per-lift thresholds for [Principiante, Intermedio, Avanzato, Elite],
// expressed as 1RM / bodyweight. Unknown sex uses the male table.
var strengthThresholds = map[domain.Sex]map[string][4]float64{
	domain.SexMale: {
		domain.MetricBenchPress1RM:    {0.75, 1.00, 1.50, 2.00},
		domain.MetricSquat1RM:         {1.00, 1.25, 1.75, 2.25},
		domain.MetricDeadlift1RM:      {1.25, 1.50, 2.00, 2.50},
		domain.MetricOverheadPress1RM: {0.50, 0.75, 1.00, 1.25},
	},
	domain.SexFemale: {
		domain.MetricBenchPress1RM:    {0.50, 0.75, 1.00, 1.50},
		domain.MetricSquat1RM:         {0.75, 1.00, 1.50, 2.00},
		domain.MetricDeadlift1RM:      {1.00, 1.25, 1.75, 2.25},
		domain.MetricOverheadPress1RM: {0.35, 0.50, 0.75, 1.00},
	},
}

var liftNames = map[string]string{
	domain.MetricBenchPress1RM:    "Panca piana",
	domain.MetricSquat1RM:         "Squat",
	domain.MetricDeadlift1RM:      "Stacco da terra",
	domain.MetricOverheadPress1RM: "Military press",
}

// Lift evaluation order, so the output is stable across calls.
var liftOrder = []string{
	domain.MetricBenchPress1RM,
	domain.MetricSquat1RM,
	domain.MetricDeadlift1RM,
	domain.MetricOverheadPress1RM,
}

func classifyStrengthRatio(lift string, ratio float64, sex domain.Sex) string {
	thresholds, ok := strengthThresholds[sexOrDefault(sex)][lift]
	if !ok {
		return ""
	}
	// Highest threshold first.
	for i := len(thresholds) - 1; i >= 0; i-- {
		if ratio >= thresholds[i] {
			return strengthLevels[i]
		}
	}
	return "Iniziale"
}

// ComputeAllDerived extracts the latest raw values from the measurement list
// (sorted newest-first) and computes every derived metric whose inputs are
// all present. Missing inputs never raise an error: the metric is simply
// omitted. Strength ratios additionally require a recorded weight.
func ComputeAllDerived(measurements []domain.Measurement, sex domain.Sex, age int) DerivedResult {
	result := DerivedResult{
		Metrics:        []DerivedMetric{},
		StrengthRatios: []StrengthRatio{},
	}

	weight, hasWeight := latestValue(measurements, domain.MetricWeight)
	height, hasHeight := latestValue(measurements, domain.MetricHeight)
	bodyFat, hasBodyFat := latestValue(measurements, domain.MetricBodyFat)
	waist, hasWaist := latestValue(measurements, domain.MetricWaist)
	hips, hasHips := latestValue(measurements, domain.MetricHips)
	systolic, hasSys := latestValue(measurements, domain.MetricSystolic)
	diastolic, hasDia := latestValue(measurements, domain.MetricDiastolic)

	if hasWeight && hasHeight {
		if bmi, ok := ComputeBMI(weight, height); ok {
			result.Metrics = append(result.Metrics, DerivedMetric{
				ID: DerivedBMI, Name: "BMI", Value: bmi, Unit: "kg/m²",
				Classification: ClassifyValue(DerivedBMI, bmi, sex, age),
			})
		}
	}

	var lbm float64
	var hasLBM bool
	if hasWeight && hasBodyFat {
		if v, ok := ComputeLBM(weight, bodyFat); ok {
			lbm, hasLBM = v, true
			// LBM has no normative bands: the absolute value depends too much
			// on stature to classify on its own.
			result.Metrics = append(result.Metrics, DerivedMetric{
				ID: DerivedLBM, Name: "Massa magra", Value: v, Unit: "kg",
			})
		}
	}

	if hasLBM && hasHeight {
		if ffmi, ok := ComputeFFMI(lbm, height); ok {
			result.Metrics = append(result.Metrics, DerivedMetric{
				ID: DerivedFFMI, Name: "FFMI", Value: ffmi, Unit: "kg/m²",
				Classification: ClassifyValue(DerivedFFMI, ffmi, sex, age),
			})
		}
	}

	if hasWaist && hasHips {
		if whr, ok := ComputeWHR(waist, hips); ok {
			result.Metrics = append(result.Metrics, DerivedMetric{
				ID: DerivedWHR, Name: "Rapporto vita/fianchi", Value: whr, Unit: "",
				Classification: ClassifyValue(DerivedWHR, whr, sex, age),
			})
		}
	}

	if hasSys && hasDia {
		if mapValue, ok := ComputeMAP(systolic, diastolic); ok {
			result.Metrics = append(result.Metrics, DerivedMetric{
				ID: DerivedMAP, Name: "Pressione arteriosa media", Value: mapValue, Unit: "mmHg",
				Classification: ClassifyValue(DerivedMAP, mapValue, sex, age),
			})
		}
	}

	if hasWeight && validPositive(weight) {
		for _, lift := range liftOrder {
			oneRM, ok := latestValue(measurements, lift)
			if !ok || !validPositive(oneRM) {
				continue
			}
			ratio := round2(oneRM / weight)
			result.StrengthRatios = append(result.StrengthRatios, StrengthRatio{
				Lift:  lift,
				Name:  liftNames[lift],
				Ratio: ratio,
				Level: classifyStrengthRatio(lift, ratio, sex),
			})
		}
	}

	return result
}
