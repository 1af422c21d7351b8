package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Routine is one recurring weekly schedule slot. A session may only be
// started inside the slot's time window on the slot's weekday.
type Routine struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Teacher   primitive.ObjectID `json:"teacher" bson:"teacher"`
	Subject   string             `json:"subject" bson:"subject"`
	Section   string             `json:"section,omitempty" bson:"section,omitempty"`
	Day       string             `json:"day" bson:"day"`               // e.g. "Monday"
	StartTime string             `json:"start_time" bson:"start_time"` // "10:00"
	EndTime   string             `json:"end_time" bson:"end_time"`     // "11:00"
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}
