package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MetricValue is a single recorded value inside a measurement session.
type MetricValue struct {
	MetricID string  `bson:"metricId" json:"metricId"`
	Value    float64 `bson:"value" json:"value"`
	Unit     string  `bson:"unit" json:"unit"`
}

// Measurement is a dated session of metric values taken for a client.
// Invariant enforced at creation: at most one value per metric ID.
type Measurement struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ClientID  primitive.ObjectID `bson:"clientId" json:"clientId"`
	TrainerID primitive.ObjectID `bson:"trainerId" json:"trainerId"`
	Date      time.Time          `bson:"date" json:"date"`
	Values    []MetricValue      `bson:"values" json:"values"`
	Note      string             `bson:"note,omitempty" json:"note,omitempty"`
	// Goals auto-completed when this measurement was saved (hit targets).
	CompletedGoalIDs []primitive.ObjectID `bson:"completedGoalIds,omitempty" json:"completedGoalIds,omitempty"`
	CreatedAt        time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// Value returns the recorded value for a metric ID, if present.
func (m *Measurement) Value(metricID string) (float64, bool) {
	for _, v := range m.Values {
		if v.MetricID == metricID {
			return v.Value, true
		}
	}
	return 0, false
}
