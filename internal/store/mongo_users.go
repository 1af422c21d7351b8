package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tarun33333/classsync/internal/models"
)

type MongoUserStore struct {
	collection *mongo.Collection
}

func NewMongoUserStore(client *mongo.Client, dbName string) *MongoUserStore {
	return &MongoUserStore{
		collection: client.Database(dbName).Collection("users"),
	}
}

func (s *MongoUserStore) Insert(ctx context.Context, u *models.User) error {
	_, err := s.collection.InsertOne(ctx, u)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}

func (s *MongoUserStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *MongoUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *MongoUserStore) SetMacAddress(ctx context.Context, id primitive.ObjectID, mac string) error {
	_, err := s.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"mac_address": mac, "updated_at": time.Now()},
	})
	return err
}

func (s *MongoUserStore) ListStudents(ctx context.Context, department, section string) ([]models.User, error) {
	cursor, err := s.collection.Find(ctx, bson.M{
		"role":       models.RoleStudent,
		"department": department,
		"section":    section,
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var students []models.User
	if err = cursor.All(ctx, &students); err != nil {
		return nil, err
	}
	return students, nil
}
