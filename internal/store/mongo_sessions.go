package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tarun33333/classsync/internal/models"
)

type MongoSessionStore struct {
	collection *mongo.Collection
}

func NewMongoSessionStore(client *mongo.Client, dbName string) *MongoSessionStore {
	return &MongoSessionStore{
		collection: client.Database(dbName).Collection("sessions"),
	}
}

func (s *MongoSessionStore) Insert(ctx context.Context, session *models.Session) error {
	_, err := s.collection.InsertOne(ctx, session)
	return err
}

func (s *MongoSessionStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Session, error) {
	var session models.Session
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&session)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *MongoSessionStore) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Session, error) {
	cursor, err := s.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var sessions []models.Session
	if err = cursor.All(ctx, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

func (s *MongoSessionStore) FindActiveByTeacher(ctx context.Context, teacher primitive.ObjectID) (*models.Session, error) {
	var session models.Session
	err := s.collection.FindOne(ctx, bson.M{"teacher": teacher, "is_active": true}).Decode(&session)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *MongoSessionStore) FindActiveBySubjectSection(ctx context.Context, subject, section string) (*models.Session, error) {
	var session models.Session
	err := s.collection.FindOne(ctx, bson.M{"subject": subject, "section": section, "is_active": true}).Decode(&session)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *MongoSessionStore) ClaimActive(ctx context.Context, teacher primitive.ObjectID, endTime time.Time) (*models.Session, error) {
	var session models.Session
	err := s.collection.FindOneAndUpdate(ctx,
		bson.M{"teacher": teacher, "is_active": true},
		bson.M{"$set": bson.M{"is_active": false, "end_time": endTime}},
	).Decode(&session)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	// FindOneAndUpdate returns the pre-update document by default.
	session.IsActive = false
	session.EndTime = &endTime
	return &session, nil
}

func (s *MongoSessionStore) Close(ctx context.Context, id primitive.ObjectID, endTime time.Time) error {
	res, err := s.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"is_active": false, "end_time": endTime}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
