package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AttendanceStatus string

const (
	StatusPresent AttendanceStatus = "present"
	StatusAbsent  AttendanceStatus = "absent"
)

type AttendanceMethod string

const (
	MethodOTP AttendanceMethod = "otp"
	MethodQR  AttendanceMethod = "qr"
	// MethodManual marks records written by the absentee sweep.
	MethodManual AttendanceMethod = "manual"
)

// Attendance is one student's outcome for one session. A unique index on
// (session_id, student_id) makes the pair write-once; records are never
// updated or deleted.
type Attendance struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	SessionID primitive.ObjectID `json:"session_id" bson:"session_id"`
	StudentID primitive.ObjectID `json:"student_id" bson:"student_id"`
	Status    AttendanceStatus   `json:"status" bson:"status"`
	Method    AttendanceMethod   `json:"method" bson:"method"`
	DeviceMAC string             `json:"device_mac,omitempty" bson:"device_mac,omitempty"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}
