package analysis

import (
	"math"

	"ptstudio/trainer-hub/internal/domain"
)

// Display colors used by the frontend for classification chips.
const (
	colorGreen  = "green"
	colorYellow = "yellow"
	colorOrange = "orange"
	colorRed    = "red"
)

// band is one normative range. A value belongs to the first band whose Max
// is strictly greater than it (upper bound exclusive), so a value exactly on
// a boundary falls into the band above it: BMI 25.0 is "Sovrappeso", not
// "Normopeso". The last band of every table has Max=+Inf, which makes the
// lookup total over any float.
type band struct {
	Max   float64
	Label string
	Color string
}

func classifyBands(bands []band, value float64) *Classification {
	if math.IsNaN(value) {
		return nil
	}
	for _, b := range bands {
		if value < b.Max {
			return &Classification{Label: b.Label, Color: b.Color}
		}
	}
	return nil // unreachable when the table is terminated with +Inf
}

var inf = math.Inf(1)

// BMI bands (WHO, unisex).
var bmiBands = []band{
	{18.5, "Sottopeso", colorYellow},
	{25.0, "Normopeso", colorGreen},
	{30.0, "Sovrappeso", colorYellow},
	{35.0, "Obesità I", colorOrange},
	{inf, "Obesità II+", colorRed},
}

// Body fat percentage bands, per sex (ACE-style).
var bodyFatBands = map[domain.Sex][]band{
	domain.SexMale: {
		{6.0, "Essenziale", colorYellow},
		{14.0, "Atletico", colorGreen},
		{18.0, "Fitness", colorGreen},
		{25.0, "Accettabile", colorYellow},
		{inf, "Elevato", colorRed},
	},
	domain.SexFemale: {
		{14.0, "Essenziale", colorYellow},
		{21.0, "Atletico", colorGreen},
		{25.0, "Fitness", colorGreen},
		{32.0, "Accettabile", colorYellow},
		{inf, "Elevato", colorRed},
	},
}

// Waist-hip ratio bands, per sex (WHO cardiometabolic risk cutoffs).
var whrBands = map[domain.Sex][]band{
	domain.SexMale: {
		{0.90, "Basso rischio", colorGreen},
		{1.00, "Rischio moderato", colorYellow},
		{inf, "Rischio elevato", colorRed},
	},
	domain.SexFemale: {
		{0.80, "Basso rischio", colorGreen},
		{0.85, "Rischio moderato", colorYellow},
		{inf, "Rischio elevato", colorRed},
	},
}

// Mean arterial pressure bands (unisex). Normal perfusion sits around
// 70-100 mmHg.
var mapBands = []band{
	{70.0, "Bassa", colorYellow},
	{100.0, "Normale", colorGreen},
	{110.0, "Elevata", colorOrange},
	{inf, "Molto elevata", colorRed},
}

// Resting heart rate bands (unisex, adults).
var restingHRBands = []band{
	{50.0, "Bradicardia", colorYellow},
	{60.0, "Atletico", colorGreen},
	{80.0, "Normale", colorGreen},
	{100.0, "Elevata", colorYellow},
	{inf, "Tachicardia", colorRed},
}

// FFMI bands, per sex.
var ffmiBands = map[domain.Sex][]band{
	domain.SexMale: {
		{18.0, "Sotto la media", colorYellow},
		{20.0, "Nella media", colorGreen},
		{22.0, "Sopra la media", colorGreen},
		{25.0, "Eccellente", colorGreen},
		{inf, "Eccezionale", colorYellow},
	},
	domain.SexFemale: {
		{15.0, "Sotto la media", colorYellow},
		{17.0, "Nella media", colorGreen},
		{19.0, "Sopra la media", colorGreen},
		{22.0, "Eccellente", colorGreen},
		{inf, "Eccezionale", colorYellow},
	},
}

// Derived-metric IDs produced by the calculator and accepted by ClassifyValue.
const (
	DerivedBMI  = "bmi"
	DerivedLBM  = "lbm"
	DerivedFFMI = "ffmi"
	DerivedWHR  = "whr"
	DerivedMAP  = "map"
)

// sexOrDefault falls back to the male tables when sex is unknown.
func sexOrDefault(sex domain.Sex) domain.Sex {
	if sex == domain.SexFemale {
		return domain.SexFemale
	}
	return domain.SexMale
}

// ClassifyValue looks up the normative band for a metric value given the
// client demographics. It returns nil when no band table exists for the
// metric; it never fails on out-of-range values, which simply land in the
// outermost band. The age parameter is currently unused by the tables but is
// part of the contract so age-specific bands can be added without touching
// call sites.
func ClassifyValue(metricID string, value float64, sex domain.Sex, age int) *Classification {
	_ = age
	switch metricID {
	case DerivedBMI:
		return classifyBands(bmiBands, value)
	case domain.MetricBodyFat:
		return classifyBands(bodyFatBands[sexOrDefault(sex)], value)
	case DerivedWHR:
		return classifyBands(whrBands[sexOrDefault(sex)], value)
	case DerivedMAP:
		return classifyBands(mapBands, value)
	case domain.MetricRestingHR:
		return classifyBands(restingHRBands, value)
	case DerivedFFMI:
		return classifyBands(ffmiBands[sexOrDefault(sex)], value)
	default:
		return nil
	}
}
