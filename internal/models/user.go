package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserRole string

const (
	RoleTeacher UserRole = "teacher"
	RoleStudent UserRole = "student"
)

type User struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name       string             `json:"name" bson:"name"`
	Email      string             `json:"email" bson:"email"`
	Password   string             `json:"-" bson:"password"`
	Role       UserRole           `json:"role" bson:"role"`
	RollNumber string             `json:"roll_number,omitempty" bson:"roll_number,omitempty"`
	Department string             `json:"department,omitempty" bson:"department,omitempty"`
	Section    string             `json:"section,omitempty" bson:"section,omitempty"`
	// MAC of the student's registered device; bound on first login.
	MacAddress string    `json:"mac_address,omitempty" bson:"mac_address,omitempty"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" bson:"updated_at"`
}
