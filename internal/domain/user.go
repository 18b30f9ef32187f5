package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role type to distinguish between user roles
type Role string

// Define constants for roles
const (
	RoleTrainer Role = "trainer"
	RoleClient  Role = "client"
)

// Sex is used by the analysis engine to pick normative tables.
// Unknown/empty falls back to the male tables (documented engine behavior).
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

// User represents a user in the system (either a Trainer or a Client).
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`    // Should be unique
	PasswordHash string             `bson:"passwordHash" json:"-"` // Never expose this via JSON
	Role         Role               `bson:"role" json:"role"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`

	// --- Trainer-specific ---
	// Stores ObjectIDs of Clients managed by this Trainer.
	ClientIDs []primitive.ObjectID `bson:"clientIds,omitempty" json:"clientIds,omitempty"`

	// --- Client-specific ---
	// Stores the ObjectID of the Trainer managing this Client.
	TrainerID *primitive.ObjectID `bson:"trainerId,omitempty" json:"trainerId,omitempty"`
	// Demographics feeding the normative classifiers. Optional: a client
	// without them still gets the raw metric values, just unclassified.
	Sex       Sex        `bson:"sex,omitempty" json:"sex,omitempty"`
	BirthDate *time.Time `bson:"birthDate,omitempty" json:"birthDate,omitempty"`
}

func (u *User) IsTrainer() bool {
	return u.Role == RoleTrainer
}

func (u *User) IsClient() bool {
	return u.Role == RoleClient
}

// Age returns the user's age in whole years at the given reference time,
// or 0 when the birth date is unknown.
func (u *User) Age(at time.Time) int {
	if u.BirthDate == nil {
		return 0
	}
	years := at.Year() - u.BirthDate.Year()
	if u.BirthDate.AddDate(years, 0, 0).After(at) {
		years-- // birthday not reached yet this year
	}
	if years < 0 {
		return 0
	}
	return years
}
