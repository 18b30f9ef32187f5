package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExerciseCategory groups exercises by training modality.
type ExerciseCategory string

const (
	CategoryCompound   ExerciseCategory = "compound"
	CategoryIsolation  ExerciseCategory = "isolation"
	CategoryBodyweight ExerciseCategory = "bodyweight"
	CategoryCardio     ExerciseCategory = "cardio"
	CategoryStretching ExerciseCategory = "stretching"
)

// MovementPattern is the biomechanical classification of an exercise.
type MovementPattern string

const (
	PatternSquat    MovementPattern = "squat"
	PatternHinge    MovementPattern = "hinge"
	PatternLunge    MovementPattern = "lunge"
	PatternPushH    MovementPattern = "push_h"
	PatternPushV    MovementPattern = "push_v"
	PatternPullH    MovementPattern = "pull_h"
	PatternPullV    MovementPattern = "pull_v"
	PatternCore     MovementPattern = "core"
	PatternRotation MovementPattern = "rotation"
	PatternCarry    MovementPattern = "carry"
)

// Biomechanical attributes, tallied by the smart-programming variety report.
type (
	ForceType       string
	Laterality      string
	KineticChain    string
	MovementPlane   string
	ContractionType string
)

const (
	ForcePush   ForceType = "push"
	ForcePull   ForceType = "pull"
	ForceStatic ForceType = "static"

	LateralityBilateral  Laterality = "bilateral"
	LateralityUnilateral Laterality = "unilateral"

	ChainOpen   KineticChain = "open"
	ChainClosed KineticChain = "closed"

	PlaneSagittal   MovementPlane = "sagittale"
	PlaneFrontal    MovementPlane = "frontale"
	PlaneTransverse MovementPlane = "trasversale"

	ContractionDynamic   ContractionType = "dinamica"
	ContractionIsometric ContractionType = "isometrica"
)

// Exercise represents a single exercise definition in the trainer's library.
type Exercise struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TrainerID   primitive.ObjectID `bson:"trainerId" json:"trainerId"` // Trainer who owns this exercise
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`

	Category   ExerciseCategory `bson:"category,omitempty" json:"category,omitempty"`
	Equipment  string           `bson:"equipment,omitempty" json:"equipment,omitempty"` // e.g., "bilanciere", "manubri", "corpo libero"
	Difficulty string           `bson:"difficulty,omitempty" json:"difficulty,omitempty"`

	MovementPattern  MovementPattern `bson:"movementPattern,omitempty" json:"movementPattern,omitempty"`
	PrimaryMuscles   []string        `bson:"primaryMuscles,omitempty" json:"primaryMuscles,omitempty"`
	SecondaryMuscles []string        `bson:"secondaryMuscles,omitempty" json:"secondaryMuscles,omitempty"`
	// Free-text contraindication tags matched by the safety engine against
	// the body parts detected in the client's anamnesis (e.g., "ginocchio").
	Contraindications []string `bson:"contraindications,omitempty" json:"contraindications,omitempty"`

	ForceType       ForceType       `bson:"forceType,omitempty" json:"forceType,omitempty"`
	Laterality      Laterality      `bson:"laterality,omitempty" json:"laterality,omitempty"`
	KineticChain    KineticChain    `bson:"kineticChain,omitempty" json:"kineticChain,omitempty"`
	MovementPlane   MovementPlane   `bson:"movementPlane,omitempty" json:"movementPlane,omitempty"`
	ContractionType ContractionType `bson:"contractionType,omitempty" json:"contractionType,omitempty"`

	VideoURL  string    `bson:"videoUrl,omitempty" json:"videoUrl,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
