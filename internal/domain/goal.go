package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ClientGoal is a target value for a metric with a deadline.
// Goals are auto-completed by the measurement service when a new measurement
// reaches the target.
type ClientGoal struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ClientID  primitive.ObjectID `bson:"clientId" json:"clientId"`
	TrainerID primitive.ObjectID `bson:"trainerId" json:"trainerId"`

	MetricID    string     `bson:"metricId" json:"metricId"`
	TargetValue float64    `bson:"targetValue" json:"targetValue"`
	Deadline    *time.Time `bson:"deadline,omitempty" json:"deadline,omitempty"`
	Note        string     `bson:"note,omitempty" json:"note,omitempty"`

	Achieved   bool       `bson:"achieved" json:"achieved"`
	AchievedAt *time.Time `bson:"achievedAt,omitempty" json:"achievedAt,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
