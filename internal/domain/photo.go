package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProgressPhoto is the metadata record for a client progress photo stored in
// the S3-compatible bucket. The binary itself is uploaded/downloaded through
// presigned URLs; only the object key lives in the database.
type ProgressPhoto struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ClientID  primitive.ObjectID `bson:"clientId" json:"clientId"`
	TrainerID primitive.ObjectID `bson:"trainerId" json:"trainerId"`
	// Optional link to the measurement session the photo belongs to.
	MeasurementID *primitive.ObjectID `bson:"measurementId,omitempty" json:"measurementId,omitempty"`

	ObjectKey   string    `bson:"objectKey" json:"objectKey"`
	ContentType string    `bson:"contentType" json:"contentType"`
	TakenAt     time.Time `bson:"takenAt" json:"takenAt"`
	Note        string    `bson:"note,omitempty" json:"note,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
