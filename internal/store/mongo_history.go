package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tarun33333/classsync/internal/models"
)

type MongoHistoryStore struct {
	collection *mongo.Collection
}

func NewMongoHistoryStore(client *mongo.Client, dbName string) *MongoHistoryStore {
	return &MongoHistoryStore{
		collection: client.Database(dbName).Collection("class_histories"),
	}
}

func (s *MongoHistoryStore) Insert(ctx context.Context, h *models.ClassHistory) error {
	_, err := s.collection.InsertOne(ctx, h)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}

func (s *MongoHistoryStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.ClassHistory, error) {
	var entry models.ClassHistory
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&entry)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *MongoHistoryStore) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.ClassHistory, error) {
	cursor, err := s.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []models.ClassHistory
	if err = cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *MongoHistoryStore) ListByTeacher(ctx context.Context, teacher primitive.ObjectID, limit int64) ([]models.ClassHistory, error) {
	opts := options.Find().SetSort(bson.M{"end_time": -1}).SetLimit(limit)
	cursor, err := s.collection.Find(ctx, bson.M{"teacher": teacher}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []models.ClassHistory
	if err = cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *MongoHistoryStore) ListByTeacherBetween(ctx context.Context, teacher primitive.ObjectID, start, end time.Time) ([]models.ClassHistory, error) {
	opts := options.Find().SetSort(bson.M{"start_time": 1})
	cursor, err := s.collection.Find(ctx, bson.M{
		"teacher":    teacher,
		"start_time": bson.M{"$gte": start, "$lte": end},
	}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []models.ClassHistory
	if err = cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
