package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ClassHistory is the immutable archive of a closed session. Its ID is the
// closed session's ID, which makes archival idempotent: a retried close
// cannot create a second entry.
type ClassHistory struct {
	ID           primitive.ObjectID `json:"id" bson:"_id"`
	Teacher      primitive.ObjectID `json:"teacher" bson:"teacher"`
	Subject      string             `json:"subject" bson:"subject"`
	Section      string             `json:"section,omitempty" bson:"section,omitempty"`
	Department   string             `json:"department,omitempty" bson:"department,omitempty"`
	StartTime    time.Time          `json:"start_time" bson:"start_time"`
	EndTime      time.Time          `json:"end_time" bson:"end_time"`
	PresentCount int                `json:"present_count" bson:"present_count"`
	AbsentCount  int                `json:"absent_count" bson:"absent_count"`
}
