package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TrainingLevel scales the smart-programming volume targets.
type TrainingLevel string

const (
	LevelBeginner     TrainingLevel = "beginner"
	LevelIntermediate TrainingLevel = "intermediate"
	LevelAdvanced     TrainingLevel = "advanced"
)

// WorkoutSection distinguishes principal work from complementary/isolation
// work; only principal sets count fully toward total weekly volume.
type WorkoutSection string

const (
	SectionPrincipal     WorkoutSection = "principale"
	SectionComplementary WorkoutSection = "complementare"
)

// WorkoutExerciseRow is one exercise slot inside a session.
type WorkoutExerciseRow struct {
	ExerciseID primitive.ObjectID `bson:"exerciseId" json:"exerciseId"`
	Section    WorkoutSection     `bson:"section,omitempty" json:"section,omitempty"`
	Sets       int                `bson:"sets" json:"sets"`
	Reps       string             `bson:"reps" json:"reps"` // e.g., "8-10", "AMRAP"
	RestSec    int                `bson:"restSec,omitempty" json:"restSec,omitempty"`
	Tempo      string             `bson:"tempo,omitempty" json:"tempo,omitempty"`
	Note       string             `bson:"note,omitempty" json:"note,omitempty"`
}

// WorkoutSession is one ordered day of a plan, e.g., "Giorno 1: Upper".
type WorkoutSession struct {
	Name      string               `bson:"name" json:"name"`
	DayOfWeek *int                 `bson:"dayOfWeek,omitempty" json:"dayOfWeek,omitempty"` // 1 (Mon) - 7 (Sun)
	Exercises []WorkoutExerciseRow `bson:"exercises" json:"exercises"`
	Note      string               `bson:"note,omitempty" json:"note,omitempty"`
}

// WorkoutPlan is a structured plan built by a trainer for a client.
// Sessions are embedded: a plan is edited and analyzed as a whole.
type WorkoutPlan struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TrainerID   primitive.ObjectID `bson:"trainerId" json:"trainerId"`
	ClientID    primitive.ObjectID `bson:"clientId" json:"clientId"`
	Name        string             `bson:"name" json:"name"` // e.g., "Fase 1: Ipertrofia"
	Description string             `bson:"description,omitempty" json:"description,omitempty"`

	Level           TrainingLevel    `bson:"level,omitempty" json:"level,omitempty"`
	SessionsPerWeek int              `bson:"sessionsPerWeek,omitempty" json:"sessionsPerWeek,omitempty"`
	Sessions        []WorkoutSession `bson:"sessions" json:"sessions"`

	StartDate *time.Time `bson:"startDate,omitempty" json:"startDate,omitempty"`
	EndDate   *time.Time `bson:"endDate,omitempty" json:"endDate,omitempty"`
	IsActive  bool       `bson:"isActive" json:"isActive"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// ExerciseIDs returns the distinct exercise IDs referenced by the plan.
func (p *WorkoutPlan) ExerciseIDs() []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]struct{})
	var ids []primitive.ObjectID
	for _, s := range p.Sessions {
		for _, row := range s.Exercises {
			if _, ok := seen[row.ExerciseID]; !ok {
				seen[row.ExerciseID] = struct{}{}
				ids = append(ids, row.ExerciseID)
			}
		}
	}
	return ids
}
