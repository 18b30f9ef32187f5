package analysis

import (
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"ptstudio/trainer-hub/internal/domain"
)

// Safety is the verdict for an exercise given a client's medical history.
type Safety string

const (
	SafetySafe    Safety = "safe"
	SafetyCaution Safety = "caution"
	SafetyAvoid   Safety = "avoid"
)

var safetyRank = map[Safety]int{
	SafetySafe:    0,
	SafetyCaution: 1,
	SafetyAvoid:   2,
}

// SafetyResult carries the verdict plus human-readable reasons, in order of
// discovery, deduplicated.
type SafetyResult struct {
	Safety  Safety   `json:"safety"`
	Reasons []string `json:"reasons"`
}

// MedicalFlags are systemic conditions detected from the anamnesis.
type MedicalFlags struct {
	Cardiac     bool `json:"cardiac"`
	Respiratory bool `json:"respiratory"`
}

// AnamnesiTags is the output of the keyword extraction step.
type AnamnesiTags struct {
	BodyParts []string     `json:"bodyParts"`
	Flags     MedicalFlags `json:"flags"`
}

// Body-part tag identifiers.
const (
	tagKnee      = "knee"
	tagLowerBack = "lower_back"
	tagUpperBack = "upper_back"
	tagBack      = "back" // generic, dropped when a specific back tag is present
	tagShoulder  = "shoulder"
	tagElbow     = "elbow"
	tagWrist     = "wrist"
	tagAnkle     = "ankle"
	tagHip       = "hip"
	tagNeck      = "neck"
)

// keywordEntry maps an Italian substring to a tag. Matching is
// case-insensitive substring search with no word-boundary logic: the source
// questionnaires are short free text, and a keyword embedded in an unrelated
// word is a known, accepted false-positive mode.
type keywordEntry struct {
	Substr string
	Tag    string
}

// Body-part keywords scanned over every free-text anamnesis field.
var bodyPartKeywords = []keywordEntry{
	{"ginocchi", tagKnee}, // ginocchio / ginocchia
	{"rotula", tagKnee},
	{"menisco", tagKnee},
	{"crociato", tagKnee},
	{"legamento", tagKnee},
	{"lombare", tagLowerBack},
	{"lombalgia", tagLowerBack},
	{"sciatica", tagLowerBack},
	{"sciatalgia", tagLowerBack},
	{"ernia", tagLowerBack},
	{"dorsale", tagUpperBack},
	{"scoliosi", tagUpperBack},
	{"schiena", tagBack},
	{"spalla", tagShoulder},
	{"spalle", tagShoulder},
	{"cuffia", tagShoulder}, // cuffia dei rotatori
	{"gomito", tagElbow},
	{"epicondilite", tagElbow},
	{"polso", tagWrist},
	{"polsi", tagWrist},
	{"tunnel carpale", tagWrist},
	{"caviglia", tagAnkle},
	{"caviglie", tagAnkle},
	{"achille", tagAnkle},
	{"anca", tagHip},
	{"anche", tagHip},
	{"cervicale", tagNeck},
	{"collo", tagNeck},
	{"torcicollo", tagNeck},
}

// Medical-condition keywords. Boolean anamnesis flags force these regardless
// of what the free text says.
var medicalKeywords = []keywordEntry{
	{"cardiovascol", "cardiac"},
	{"cardiac", "cardiac"},
	{"cardiopat", "cardiac"},
	{"ipertension", "cardiac"},
	{"infarto", "cardiac"},
	{"aritmia", "cardiac"},
	{"respirator", "respiratory"},
	{"asma", "respiratory"},
	{"bronchit", "respiratory"},
	{"bpco", "respiratory"},
}

// bodyPartProfile drives the classification rules for one body part.
type bodyPartProfile struct {
	Label           string // Italian display label used in reason strings
	AvoidPatterns   []domain.MovementPattern
	CautionPatterns []domain.MovementPattern
	CautionMuscles  []string
}

var bodyPartProfiles = map[string]bodyPartProfile{
	tagKnee: {
		Label:           "ginocchio",
		AvoidPatterns:   []domain.MovementPattern{domain.PatternSquat, domain.PatternLunge},
		CautionPatterns: []domain.MovementPattern{domain.PatternHinge, domain.PatternCarry},
		CautionMuscles:  []string{"quadricipiti", "femorali", "polpacci"},
	},
	tagLowerBack: {
		Label:           "zona lombare",
		AvoidPatterns:   []domain.MovementPattern{domain.PatternHinge},
		CautionPatterns: []domain.MovementPattern{domain.PatternSquat, domain.PatternRotation, domain.PatternCarry},
		CautionMuscles:  []string{"lombari", "femorali", "glutei"},
	},
	tagUpperBack: {
		Label:           "zona dorsale",
		AvoidPatterns:   nil,
		CautionPatterns: []domain.MovementPattern{domain.PatternPullV, domain.PatternPullH},
		CautionMuscles:  []string{"dorsali", "trapezi"},
	},
	tagBack: {
		Label:           "schiena",
		AvoidPatterns:   nil,
		CautionPatterns: []domain.MovementPattern{domain.PatternHinge, domain.PatternSquat},
		CautionMuscles:  []string{"lombari", "dorsali"},
	},
	tagShoulder: {
		Label:           "spalla",
		AvoidPatterns:   []domain.MovementPattern{domain.PatternPushV},
		CautionPatterns: []domain.MovementPattern{domain.PatternPushH, domain.PatternPullV},
		CautionMuscles:  []string{"deltoidi", "pettorali"},
	},
	tagElbow: {
		Label:           "gomito",
		AvoidPatterns:   nil,
		CautionPatterns: []domain.MovementPattern{domain.PatternPushH, domain.PatternPushV, domain.PatternPullH, domain.PatternPullV},
		CautionMuscles:  []string{"bicipiti", "tricipiti", "avambracci"},
	},
	tagWrist: {
		Label:           "polso",
		AvoidPatterns:   nil,
		CautionPatterns: []domain.MovementPattern{domain.PatternPushH, domain.PatternCarry},
		CautionMuscles:  []string{"avambracci"},
	},
	tagAnkle: {
		Label:           "caviglia",
		AvoidPatterns:   nil,
		CautionPatterns: []domain.MovementPattern{domain.PatternSquat, domain.PatternLunge, domain.PatternCarry},
		CautionMuscles:  []string{"polpacci"},
	},
	tagHip: {
		Label:           "anca",
		AvoidPatterns:   []domain.MovementPattern{domain.PatternLunge},
		CautionPatterns: []domain.MovementPattern{domain.PatternSquat, domain.PatternHinge},
		CautionMuscles:  []string{"glutei", "femorali"},
	},
	tagNeck: {
		Label:           "collo",
		AvoidPatterns:   nil,
		CautionPatterns: []domain.MovementPattern{domain.PatternCarry, domain.PatternPushV},
		CautionMuscles:  []string{"trapezi"},
	},
}

// Stable iteration order for detected body parts.
var bodyPartOrder = []string{
	tagKnee, tagLowerBack, tagUpperBack, tagBack, tagShoulder,
	tagElbow, tagWrist, tagAnkle, tagHip, tagNeck,
}

// ExtractTagsFromAnamnesi scans every free-text field of the questionnaire
// for body-part and medical keywords. The boolean cardiac/respiratory
// questions force the corresponding flag even when the detail text is empty.
// When both a specific back tag and the generic "schiena" tag match, the
// generic one is dropped (specific wins).
func ExtractTagsFromAnamnesi(a *domain.AnamnesiData) AnamnesiTags {
	tags := AnamnesiTags{BodyParts: []string{}}
	if a == nil {
		return tags
	}

	found := make(map[string]bool)
	for _, text := range a.TextFields() {
		if text == "" {
			continue
		}
		lower := strings.ToLower(text)
		for _, kw := range bodyPartKeywords {
			if strings.Contains(lower, kw.Substr) {
				found[kw.Tag] = true
			}
		}
		for _, kw := range medicalKeywords {
			if strings.Contains(lower, kw.Substr) {
				switch kw.Tag {
				case "cardiac":
					tags.Flags.Cardiac = true
				case "respiratory":
					tags.Flags.Respiratory = true
				}
			}
		}
	}

	if a.ProblemiCardiaci.Presente {
		tags.Flags.Cardiac = true
	}
	if a.ProblemiRespiratori.Presente {
		tags.Flags.Respiratory = true
	}

	// Specific back tag beats the generic one.
	if found[tagBack] && (found[tagLowerBack] || found[tagUpperBack]) {
		delete(found, tagBack)
	}

	for _, tag := range bodyPartOrder {
		if found[tag] {
			tags.BodyParts = append(tags.BodyParts, tag)
		}
	}
	return tags
}

// safetyAccumulator folds findings using the total order
// safe < caution < avoid: severity only ever upgrades.
type safetyAccumulator struct {
	safety  Safety
	reasons []string
	seen    map[string]bool
}

func newSafetyAccumulator() *safetyAccumulator {
	return &safetyAccumulator{safety: SafetySafe, seen: make(map[string]bool)}
}

func (acc *safetyAccumulator) add(s Safety, reason string) {
	if safetyRank[s] > safetyRank[acc.safety] {
		acc.safety = s
	}
	if reason != "" && !acc.seen[reason] {
		acc.seen[reason] = true
		acc.reasons = append(acc.reasons, reason)
	}
}

func (acc *safetyAccumulator) result() SafetyResult {
	reasons := acc.reasons
	if reasons == nil {
		reasons = []string{}
	}
	return SafetyResult{Safety: acc.safety, Reasons: reasons}
}

func containsPattern(patterns []domain.MovementPattern, p domain.MovementPattern) bool {
	for _, candidate := range patterns {
		if candidate == p {
			return true
		}
	}
	return false
}

// ClassifyExercise cross-references an exercise against the detected body
// parts and medical flags. It is total: no matches means safe with empty
// reasons.
func ClassifyExercise(ex *domain.Exercise, bodyParts []string, flags MedicalFlags) SafetyResult {
	acc := newSafetyAccumulator()
	if ex == nil {
		return acc.result()
	}

	for _, tag := range bodyParts {
		profile, ok := bodyPartProfiles[tag]
		if !ok {
			continue
		}

		// 1. Explicit contraindication tags on the exercise itself.
		for _, contra := range ex.Contraindications {
			c := strings.ToLower(strings.TrimSpace(contra))
			if c == "" {
				continue
			}
			if strings.Contains(c, profile.Label) || strings.Contains(profile.Label, c) {
				acc.add(SafetyAvoid, fmt.Sprintf("Controindicato per problematiche a: %s", profile.Label))
			}
		}

		// 2-3. Movement pattern against the avoid/caution lists.
		if containsPattern(profile.AvoidPatterns, ex.MovementPattern) {
			acc.add(SafetyAvoid, fmt.Sprintf("Il pattern di movimento sollecita direttamente %s", profile.Label))
		} else if containsPattern(profile.CautionPatterns, ex.MovementPattern) {
			acc.add(SafetyCaution, fmt.Sprintf("Il pattern di movimento coinvolge %s: eseguire con cautela", profile.Label))
		}

		// 4. Primary-muscle overlap with the caution muscles.
		for _, muscle := range ex.PrimaryMuscles {
			m := strings.ToLower(muscle)
			for _, cautionMuscle := range profile.CautionMuscles {
				if m == cautionMuscle {
					acc.add(SafetyCaution, fmt.Sprintf("Coinvolge muscoli collegati a problematiche a: %s (%s)", profile.Label, cautionMuscle))
				}
			}
		}
	}

	// 5. Systemic flags against the training modality.
	if flags.Cardiac && (ex.Category == domain.CategoryCompound || ex.Category == domain.CategoryCardio) {
		acc.add(SafetyCaution, "Problematiche cardiovascolari: monitorare intensità e recuperi")
	}
	if flags.Respiratory && ex.Category == domain.CategoryCardio {
		acc.add(SafetyCaution, "Problematiche respiratorie: moderare il lavoro aerobico")
	}

	return acc.result()
}

// ClassifyExercises is the batch form: it extracts the tags once and
// classifies the whole library against them.
func ClassifyExercises(exercises []domain.Exercise, a *domain.AnamnesiData) map[primitive.ObjectID]SafetyResult {
	tags := ExtractTagsFromAnamnesi(a)
	results := make(map[primitive.ObjectID]SafetyResult, len(exercises))
	for i := range exercises {
		results[exercises[i].ID] = ClassifyExercise(&exercises[i], tags.BodyParts, tags.Flags)
	}
	return results
}
