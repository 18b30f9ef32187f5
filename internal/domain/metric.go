package domain

// Metric is a catalog entry describing a measurable quantity.
// The catalog is static reference data seeded once; measurements reference
// metrics by ID.
type Metric struct {
	ID   string `bson:"_id" json:"id"`
	Name string `bson:"name" json:"name"`
	Unit string `bson:"unit" json:"unit"`
}

// Well-known metric IDs. The analysis engine keys its formulas and normative
// tables on these, so they are part of the data contract with the frontend.
const (
	MetricWeight    = "peso"
	MetricHeight    = "altezza"
	MetricBodyFat   = "massa_grassa"
	MetricWaist     = "girovita"
	MetricHips      = "fianchi"
	MetricChest     = "torace"
	MetricNeck      = "collo"
	MetricSystolic  = "pressione_sistolica"
	MetricDiastolic = "pressione_diastolica"
	MetricRestingHR = "frequenza_cardiaca_riposo"

	// Bilateral circumferences (right/left pairs for symmetry analysis).
	MetricArmRight   = "braccio_destro"
	MetricArmLeft    = "braccio_sinistro"
	MetricThighRight = "coscia_destra"
	MetricThighLeft  = "coscia_sinistra"
	MetricCalfRight  = "polpaccio_destro"
	MetricCalfLeft   = "polpaccio_sinistro"

	// One-rep maxes for strength ratios.
	MetricBenchPress1RM    = "panca_1rm"
	MetricSquat1RM         = "squat_1rm"
	MetricDeadlift1RM      = "stacco_1rm"
	MetricOverheadPress1RM = "military_press_1rm"
)

// MetricCatalog returns the static metric reference data.
func MetricCatalog() []Metric {
	return []Metric{
		{ID: MetricWeight, Name: "Peso", Unit: "kg"},
		{ID: MetricHeight, Name: "Altezza", Unit: "cm"},
		{ID: MetricBodyFat, Name: "Massa grassa", Unit: "%"},
		{ID: MetricWaist, Name: "Girovita", Unit: "cm"},
		{ID: MetricHips, Name: "Fianchi", Unit: "cm"},
		{ID: MetricChest, Name: "Torace", Unit: "cm"},
		{ID: MetricNeck, Name: "Collo", Unit: "cm"},
		{ID: MetricSystolic, Name: "Pressione sistolica", Unit: "mmHg"},
		{ID: MetricDiastolic, Name: "Pressione diastolica", Unit: "mmHg"},
		{ID: MetricRestingHR, Name: "Frequenza cardiaca a riposo", Unit: "bpm"},
		{ID: MetricArmRight, Name: "Braccio destro", Unit: "cm"},
		{ID: MetricArmLeft, Name: "Braccio sinistro", Unit: "cm"},
		{ID: MetricThighRight, Name: "Coscia destra", Unit: "cm"},
		{ID: MetricThighLeft, Name: "Coscia sinistra", Unit: "cm"},
		{ID: MetricCalfRight, Name: "Polpaccio destro", Unit: "cm"},
		{ID: MetricCalfLeft, Name: "Polpaccio sinistro", Unit: "cm"},
		{ID: MetricBenchPress1RM, Name: "Panca piana 1RM", Unit: "kg"},
		{ID: MetricSquat1RM, Name: "Squat 1RM", Unit: "kg"},
		{ID: MetricDeadlift1RM, Name: "Stacco da terra 1RM", Unit: "kg"},
		{ID: MetricOverheadPress1RM, Name: "Military press 1RM", Unit: "kg"},
	}
}
