package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"ptstudio/trainer-hub/internal/domain"
)

func anamnesiWithPain(detail string) *domain.AnamnesiData {
	return &domain.AnamnesiData{
		DoloriCronici: domain.AnamnesiQuestion{Presente: true, Dettaglio: detail},
	}
}

func TestExtractTagsFromAnamnesi(t *testing.T) {
	a := anamnesiWithPain("Dolore al ginocchio destro dopo partita di calcio")
	tags := ExtractTagsFromAnamnesi(a)
	assert.Equal(t, []string{tagKnee}, tags.BodyParts)
	assert.False(t, tags.Flags.Cardiac)
	assert.False(t, tags.Flags.Respiratory)
}

func TestExtractTagsNilAndEmpty(t *testing.T) {
	tags := ExtractTagsFromAnamnesi(nil)
	assert.Empty(t, tags.BodyParts)

	tags = ExtractTagsFromAnamnesi(&domain.AnamnesiData{})
	assert.Empty(t, tags.BodyParts)
	assert.False(t, tags.Flags.Cardiac)
}

func TestExtractTagsCaseInsensitive(t *testing.T) {
	a := anamnesiWithPain("PROBLEMA ALLA SPALLA SINISTRA")
	tags := ExtractTagsFromAnamnesi(a)
	assert.Contains(t, tags.BodyParts, tagShoulder)
}

func TestExtractTagsSpecificBackBeatsGeneric(t *testing.T) {
	// "schiena" and "lombare" both match; only lower_back survives.
	a := anamnesiWithPain("mal di schiena, ernia lombare L4-L5")
	tags := ExtractTagsFromAnamnesi(a)
	assert.Contains(t, tags.BodyParts, tagLowerBack)
	assert.NotContains(t, tags.BodyParts, tagBack)

	// Generic alone stays.
	tags = ExtractTagsFromAnamnesi(anamnesiWithPain("dolore alla schiena"))
	assert.Contains(t, tags.BodyParts, tagBack)
}

func TestExtractTagsBooleanFlagsForceMedical(t *testing.T) {
	a := &domain.AnamnesiData{
		ProblemiCardiaci:    domain.AnamnesiQuestion{Presente: true}, // no detail text
		ProblemiRespiratori: domain.AnamnesiQuestion{Presente: true},
	}
	tags := ExtractTagsFromAnamnesi(a)
	assert.True(t, tags.Flags.Cardiac)
	assert.True(t, tags.Flags.Respiratory)
}

func TestExtractTagsMedicalFromText(t *testing.T) {
	a := anamnesiWithPain("asma da sforzo, lieve ipertensione")
	tags := ExtractTagsFromAnamnesi(a)
	assert.True(t, tags.Flags.Cardiac)
	assert.True(t, tags.Flags.Respiratory)
}

func TestExtractTagsMultipleFieldsScanned(t *testing.T) {
	a := &domain.AnamnesiData{
		InfortuniPassati: domain.AnamnesiQuestion{Presente: true, Dettaglio: "frattura caviglia 2021"},
		Limitazioni:      "evitare carichi sul polso",
	}
	tags := ExtractTagsFromAnamnesi(a)
	assert.Contains(t, tags.BodyParts, tagAnkle)
	assert.Contains(t, tags.BodyParts, tagWrist)
}

func TestClassifyExerciseKneeAvoidsSquat(t *testing.T) {
	squat := &domain.Exercise{
		Name:            "Back Squat",
		Category:        domain.CategoryCompound,
		MovementPattern: domain.PatternSquat,
		PrimaryMuscles:  []string{"quadricipiti", "glutei"},
	}

	result := ClassifyExercise(squat, []string{tagKnee}, MedicalFlags{})
	assert.Equal(t, SafetyAvoid, result.Safety)
	require.NotEmpty(t, result.Reasons)
	// The reason mentions the body part, not the internal tag.
	assert.Contains(t, result.Reasons[0], "ginocchio")
}

func TestClassifyExerciseCautionFromMuscleOverlap(t *testing.T) {
	legCurl := &domain.Exercise{
		Name:           "Leg Curl",
		Category:       domain.CategoryIsolation,
		PrimaryMuscles: []string{"femorali"},
	}

	result := ClassifyExercise(legCurl, []string{tagKnee}, MedicalFlags{})
	assert.Equal(t, SafetyCaution, result.Safety)
}

func TestClassifyExerciseExplicitContraindication(t *testing.T) {
	pressdown := &domain.Exercise{
		Name:              "Pushdown",
		Category:          domain.CategoryIsolation,
		Contraindications: []string{"gomito"},
	}

	result := ClassifyExercise(pressdown, []string{tagElbow}, MedicalFlags{})
	assert.Equal(t, SafetyAvoid, result.Safety)
}

func TestClassifyExerciseCardiacFlagOnCompound(t *testing.T) {
	deadlift := &domain.Exercise{
		Name:            "Deadlift",
		Category:        domain.CategoryCompound,
		MovementPattern: domain.PatternHinge,
	}

	result := ClassifyExercise(deadlift, nil, MedicalFlags{Cardiac: true})
	assert.Equal(t, SafetyCaution, result.Safety)

	// Isolation work is unaffected by the cardiac flag.
	curl := &domain.Exercise{Name: "Curl", Category: domain.CategoryIsolation}
	result = ClassifyExercise(curl, nil, MedicalFlags{Cardiac: true})
	assert.Equal(t, SafetySafe, result.Safety)
}

func TestClassifyExerciseRespiratoryFlagOnlyCardio(t *testing.T) {
	run := &domain.Exercise{Name: "Corsa", Category: domain.CategoryCardio}
	result := ClassifyExercise(run, nil, MedicalFlags{Respiratory: true})
	assert.Equal(t, SafetyCaution, result.Safety)

	bench := &domain.Exercise{Name: "Panca", Category: domain.CategoryCompound, MovementPattern: domain.PatternPushH}
	result = ClassifyExercise(bench, nil, MedicalFlags{Respiratory: true})
	assert.Equal(t, SafetySafe, result.Safety)
}

func TestClassifyExerciseSeverityOnlyUpgrades(t *testing.T) {
	// Squat against both knee (avoid) and lower back (caution): the avoid
	// verdict must win regardless of evaluation order.
	squat := &domain.Exercise{
		Name:            "Back Squat",
		Category:        domain.CategoryCompound,
		MovementPattern: domain.PatternSquat,
		PrimaryMuscles:  []string{"quadricipiti", "lombari"},
	}

	result := ClassifyExercise(squat, []string{tagLowerBack, tagKnee}, MedicalFlags{})
	assert.Equal(t, SafetyAvoid, result.Safety)
	assert.GreaterOrEqual(t, len(result.Reasons), 2)
}

func TestClassifyExerciseTotality(t *testing.T) {
	// Empty everything still yields a well-formed safe result.
	result := ClassifyExercise(&domain.Exercise{Name: "Stretching"}, nil, MedicalFlags{})
	assert.Equal(t, SafetySafe, result.Safety)
	assert.NotNil(t, result.Reasons)
	assert.Empty(t, result.Reasons)

	result = ClassifyExercise(nil, []string{tagKnee}, MedicalFlags{})
	assert.Equal(t, SafetySafe, result.Safety)
}

func TestClassifyExercisesEndToEnd(t *testing.T) {
	squatID := primitive.NewObjectID()
	curlID := primitive.NewObjectID()
	exercises := []domain.Exercise{
		{
			ID:              squatID,
			Name:            "Back Squat",
			Category:        domain.CategoryCompound,
			MovementPattern: domain.PatternSquat,
			PrimaryMuscles:  []string{"quadricipiti"},
		},
		{
			ID:             curlID,
			Name:           "Biceps Curl",
			Category:       domain.CategoryIsolation,
			PrimaryMuscles: []string{"bicipiti"},
		},
	}

	results := ClassifyExercises(exercises, anamnesiWithPain("dolore al ginocchio destro"))
	require.Len(t, results, 2)
	assert.Equal(t, SafetyAvoid, results[squatID].Safety)
	assert.Equal(t, SafetySafe, results[curlID].Safety)
}

func TestClassifyExercisesNilAnamnesi(t *testing.T) {
	id := primitive.NewObjectID()
	results := ClassifyExercises([]domain.Exercise{{ID: id, Name: "Squat", MovementPattern: domain.PatternSquat}}, nil)
	assert.Equal(t, SafetySafe, results[id].Safety)
}
