package main

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/tarun33333/classsync/internal/config"
	"github.com/tarun33333/classsync/internal/database"
	"github.com/tarun33333/classsync/internal/models"
)

// Seeds a development database with one teacher, one student and a Monday
// routine. Wipes users and routines first.
func main() {
	cfg := config.LoadConfig()

	client, err := database.ConnectMongoDB(cfg.MongoURI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := client.Database(cfg.DatabaseName)
	if _, err := db.Collection("users").DeleteMany(ctx, bson.M{}); err != nil {
		log.Fatalf("Failed to clear users: %v", err)
	}
	if _, err := db.Collection("class_routines").DeleteMany(ctx, bson.M{}); err != nil {
		log.Fatalf("Failed to clear routines: %v", err)
	}

	hash := func(password string) string {
		h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("Failed to hash password: %v", err)
		}
		return string(h)
	}

	teacher := models.User{
		ID:         primitive.NewObjectID(),
		Name:       "John Doe",
		Email:      "teacher@test.com",
		Password:   hash("password123"),
		Role:       models.RoleTeacher,
		Department: "CS",
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	student := models.User{
		ID:         primitive.NewObjectID(),
		Name:       "Alice Smith",
		Email:      "student@test.com",
		Password:   hash("password123"),
		Role:       models.RoleStudent,
		RollNumber: "CS101",
		Department: "CS",
		Section:    "A",
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	if _, err := db.Collection("users").InsertMany(ctx, []interface{}{teacher, student}); err != nil {
		log.Fatalf("Failed to seed users: %v", err)
	}

	routine := models.Routine{
		ID:        primitive.NewObjectID(),
		Teacher:   teacher.ID,
		Subject:   "Data Structures",
		Section:   "A",
		Day:       "Monday",
		StartTime: "10:00",
		EndTime:   "11:00",
		CreatedAt: time.Now(),
	}
	if _, err := db.Collection("class_routines").InsertOne(ctx, routine); err != nil {
		log.Fatalf("Failed to seed routine: %v", err)
	}

	log.Print("Data seeded")
}
