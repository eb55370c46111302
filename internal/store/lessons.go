package store

import (
	"context"
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/safar/go-lesson-store/internal/database"
	"github.com/safar/go-lesson-store/internal/models"
)

type MongoLessonStore struct {
	coll *mongo.Collection
}

func NewMongoLessonStore(db *mongo.Database) *MongoLessonStore {
	return &MongoLessonStore{coll: db.Collection("lessons")}
}

func (s *MongoLessonStore) List(ctx context.Context) ([]models.Lesson, error) {
	cursor, err := s.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list lessons: %w", err)
	}

	var lessons []models.Lesson
	if err := cursor.All(ctx, &lessons); err != nil {
		return nil, fmt.Errorf("decode lessons: %w", err)
	}
	return lessons, nil
}

func (s *MongoLessonStore) Search(ctx context.Context, query string) ([]models.Lesson, error) {
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
	or := bson.A{
		bson.M{"subject": pattern},
		bson.M{"location": pattern},
	}

	// Regex does not apply to numeric fields; when the query itself is a
	// number, match price and spaces by equality instead.
	if d, err := decimal.NewFromString(query); err == nil {
		n, _ := d.Float64()
		or = append(or, bson.M{"price": n}, bson.M{"spaces": n})
	}

	cursor, err := s.coll.Find(ctx, bson.M{"$or": or})
	if err != nil {
		return nil, fmt.Errorf("search lessons: %w", err)
	}

	var lessons []models.Lesson
	if err := cursor.All(ctx, &lessons); err != nil {
		return nil, fmt.Errorf("decode lessons: %w", err)
	}
	return lessons, nil
}

// identityFilter matches the legacy numeric id attribute or the ObjectID,
// whichever form the client sent. First match wins.
func identityFilter(id models.LessonID) bson.M {
	var or bson.A
	if n, ok := id.Legacy(); ok {
		or = append(or, bson.M{"id": n})
	}
	if oid, ok := id.ObjectID(); ok {
		or = append(or, bson.M{"_id": oid})
	}
	if len(or) == 0 {
		or = append(or, bson.M{"_id": string(id)})
	}
	return bson.M{"$or": or}
}

func (s *MongoLessonStore) DecrementSpaces(ctx context.Context, id models.LessonID) error {
	filter := identityFilter(id)
	filter["spaces"] = bson.M{"$gt": 0}

	result, err := s.coll.UpdateOne(ctx, filter, bson.M{"$inc": bson.M{"spaces": -1}})
	if err != nil {
		return fmt.Errorf("decrement spaces: %w", err)
	}
	if result.MatchedCount > 0 {
		return nil
	}

	count, err := s.coll.CountDocuments(ctx, identityFilter(id))
	if err != nil {
		return fmt.Errorf("look up lesson %s: %w", id, err)
	}
	if count == 0 {
		return database.ErrLessonNotFound
	}
	return database.ErrSoldOut
}

func (s *MongoLessonStore) SetSpaces(ctx context.Context, hexID string, spaces int) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(hexID)
	if err != nil {
		return 0, database.ErrLessonNotFound
	}

	result, err := s.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"spaces": spaces}})
	if err != nil {
		return 0, fmt.Errorf("update lesson: %w", err)
	}
	if result.MatchedCount == 0 {
		return 0, database.ErrLessonNotFound
	}
	return result.ModifiedCount, nil
}

func (s *MongoLessonStore) Count(ctx context.Context) (int64, error) {
	count, err := s.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count lessons: %w", err)
	}
	return count, nil
}

// EnsureSeed loads the sample catalog when the lessons collection is empty.
// Returns true when seeding happened.
func (s *MongoLessonStore) EnsureSeed(ctx context.Context) (bool, error) {
	count, err := s.Count(ctx)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	docs := make([]interface{}, 0, len(sampleLessons))
	for _, lesson := range sampleLessons {
		docs = append(docs, lesson)
	}
	if _, err := s.coll.InsertMany(ctx, docs); err != nil {
		return false, fmt.Errorf("seed lessons: %w", err)
	}
	return true, nil
}
