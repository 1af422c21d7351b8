package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tarun33333/classsync/internal/models"
)

type MongoRoutineStore struct {
	collection *mongo.Collection
}

func NewMongoRoutineStore(client *mongo.Client, dbName string) *MongoRoutineStore {
	return &MongoRoutineStore{
		collection: client.Database(dbName).Collection("class_routines"),
	}
}

func (s *MongoRoutineStore) Find(ctx context.Context, teacher primitive.ObjectID, subject, section, day string) (*models.Routine, error) {
	var routine models.Routine
	err := s.collection.FindOne(ctx, bson.M{
		"teacher": teacher,
		"subject": subject,
		"section": section,
		"day":     day,
	}).Decode(&routine)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &routine, nil
}

func (s *MongoRoutineStore) ListForTeacher(ctx context.Context, teacher primitive.ObjectID, day string) ([]models.Routine, error) {
	opts := options.Find().SetSort(bson.M{"start_time": 1})
	cursor, err := s.collection.Find(ctx, bson.M{"teacher": teacher, "day": day}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var routines []models.Routine
	if err = cursor.All(ctx, &routines); err != nil {
		return nil, err
	}
	return routines, nil
}

func (s *MongoRoutineStore) ListForSection(ctx context.Context, section, day string) ([]models.Routine, error) {
	opts := options.Find().SetSort(bson.M{"start_time": 1})
	cursor, err := s.collection.Find(ctx, bson.M{"section": section, "day": day}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var routines []models.Routine
	if err = cursor.All(ctx, &routines); err != nil {
		return nil, err
	}
	return routines, nil
}
