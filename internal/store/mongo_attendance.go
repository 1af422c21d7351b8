package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tarun33333/classsync/internal/models"
)

type MongoAttendanceStore struct {
	collection *mongo.Collection
}

func NewMongoAttendanceStore(client *mongo.Client, dbName string) *MongoAttendanceStore {
	return &MongoAttendanceStore{
		collection: client.Database(dbName).Collection("attendances"),
	}
}

func (s *MongoAttendanceStore) Insert(ctx context.Context, a *models.Attendance) error {
	_, err := s.collection.InsertOne(ctx, a)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}

func (s *MongoAttendanceStore) Find(ctx context.Context, sessionID, studentID primitive.ObjectID) (*models.Attendance, error) {
	var record models.Attendance
	err := s.collection.FindOne(ctx, bson.M{"session_id": sessionID, "student_id": studentID}).Decode(&record)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *MongoAttendanceStore) ListBySession(ctx context.Context, sessionID primitive.ObjectID) ([]models.Attendance, error) {
	cursor, err := s.collection.Find(ctx, bson.M{"session_id": sessionID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []models.Attendance
	if err = cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (s *MongoAttendanceStore) ListByStudent(ctx context.Context, studentID primitive.ObjectID) ([]models.Attendance, error) {
	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := s.collection.Find(ctx, bson.M{"student_id": studentID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []models.Attendance
	if err = cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (s *MongoAttendanceStore) InsertIgnoreDuplicates(ctx context.Context, records []models.Attendance) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	docs := make([]interface{}, len(records))
	for i := range records {
		docs[i] = records[i]
	}

	// Unordered so one duplicate does not abort the rest of the batch.
	res, err := s.collection.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	if err != nil && !mongo.IsDuplicateKeyError(err) {
		return 0, err
	}
	if res == nil {
		return 0, nil
	}
	return len(res.InsertedIDs), nil
}

func (s *MongoAttendanceStore) SubjectStats(ctx context.Context, studentID primitive.ObjectID) ([]SubjectStat, error) {
	pipeline := mongo.Pipeline{
		{
			{Key: "$match", Value: bson.D{
				{Key: "student_id", Value: studentID},
				{Key: "status", Value: models.StatusPresent},
			}},
		},
		{
			{Key: "$lookup", Value: bson.D{
				{Key: "from", Value: "sessions"},
				{Key: "localField", Value: "session_id"},
				{Key: "foreignField", Value: "_id"},
				{Key: "as", Value: "session"},
			}},
		},
		{
			{Key: "$unwind", Value: "$session"},
		},
		{
			{Key: "$group", Value: bson.D{
				{Key: "_id", Value: "$session.subject"},
				{Key: "present_count", Value: bson.D{{Key: "$sum", Value: 1}}},
			}},
		},
	}

	cursor, err := s.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var stats []SubjectStat
	if err = cursor.All(ctx, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}
