package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Session is one live, time-boxed class meeting open for attendance
// submissions. At most one session is active per teacher; only the
// closer flips IsActive and stamps EndTime.
type Session struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Teacher    primitive.ObjectID `json:"teacher" bson:"teacher"`
	Subject    string             `json:"subject" bson:"subject"`
	Section    string             `json:"section,omitempty" bson:"section,omitempty"`
	Department string             `json:"department,omitempty" bson:"department,omitempty"`
	// Expected classroom WiFi; BSSID is what the network gate matches.
	BSSID     string             `json:"bssid" bson:"bssid"`
	SSID      string             `json:"ssid,omitempty" bson:"ssid,omitempty"`
	OTP       string             `json:"otp" bson:"otp"`
	QRCode    string             `json:"qr_code" bson:"qr_code"`
	IsActive  bool               `json:"is_active" bson:"is_active"`
	StartTime time.Time          `json:"start_time" bson:"start_time"`
	EndTime   *time.Time         `json:"end_time,omitempty" bson:"end_time,omitempty"`
	RoutineID primitive.ObjectID `json:"routine_id,omitempty" bson:"routine_id,omitempty"`
}
