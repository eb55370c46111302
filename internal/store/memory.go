package store

import (
	"context"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/safar/go-lesson-store/internal/database"
	"github.com/safar/go-lesson-store/internal/models"
)

// MemoryLessonStore mirrors the Mongo store semantics for tests and local
// development, including the conditional decrement and dual id resolution.
type MemoryLessonStore struct {
	mu      sync.Mutex
	lessons []models.Lesson
}

func NewMemoryLessonStore(seed ...models.Lesson) *MemoryLessonStore {
	s := &MemoryLessonStore{}
	for _, lesson := range seed {
		s.Add(lesson)
	}
	return s
}

// Add stores a lesson, assigning an ObjectID when absent, and returns the
// stored copy.
func (s *MemoryLessonStore) Add(lesson models.Lesson) models.Lesson {
	s.mu.Lock()
	defer s.mu.Unlock()

	if lesson.ID.IsZero() {
		lesson.ID = primitive.NewObjectID()
	}
	s.lessons = append(s.lessons, lesson)
	return lesson
}

func (s *MemoryLessonStore) Get(id models.LessonID) (models.Lesson, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.find(id); i >= 0 {
		return s.lessons[i], nil
	}
	return models.Lesson{}, database.ErrLessonNotFound
}

func (s *MemoryLessonStore) List(ctx context.Context) ([]models.Lesson, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Lesson, len(s.lessons))
	copy(out, s.lessons)
	return out, nil
}

func (s *MemoryLessonStore) Search(ctx context.Context, query string) ([]models.Lesson, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := strings.ToLower(query)
	numeric, isNumeric := func() (float64, bool) {
		d, err := decimal.NewFromString(query)
		if err != nil {
			return 0, false
		}
		n, _ := d.Float64()
		return n, true
	}()

	var out []models.Lesson
	for _, lesson := range s.lessons {
		switch {
		case strings.Contains(strings.ToLower(lesson.Subject), q),
			strings.Contains(strings.ToLower(lesson.Location), q),
			isNumeric && lesson.Price == numeric,
			isNumeric && float64(lesson.Spaces) == numeric:
			out = append(out, lesson)
		}
	}
	return out, nil
}

func (s *MemoryLessonStore) find(id models.LessonID) int {
	legacy, hasLegacy := id.Legacy()
	oid, hasOID := id.ObjectID()

	for i, lesson := range s.lessons {
		if hasLegacy && lesson.LegacyID == legacy {
			return i
		}
		if hasOID && lesson.ID == oid {
			return i
		}
	}
	return -1
}

func (s *MemoryLessonStore) DecrementSpaces(ctx context.Context, id models.LessonID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.find(id)
	if i < 0 {
		return database.ErrLessonNotFound
	}
	if s.lessons[i].Spaces <= 0 {
		return database.ErrSoldOut
	}
	s.lessons[i].Spaces--
	return nil
}

func (s *MemoryLessonStore) SetSpaces(ctx context.Context, hexID string, spaces int) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(hexID)
	if err != nil {
		return 0, database.ErrLessonNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lessons {
		if s.lessons[i].ID == oid {
			if s.lessons[i].Spaces == spaces {
				return 0, nil
			}
			s.lessons[i].Spaces = spaces
			return 1, nil
		}
	}
	return 0, database.ErrLessonNotFound
}

func (s *MemoryLessonStore) Count(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.lessons)), nil
}

type MemoryOrderStore struct {
	mu     sync.Mutex
	orders []models.Order

	// InsertErr, when set, makes Insert fail. Test hook.
	InsertErr error
}

func NewMemoryOrderStore() *MemoryOrderStore {
	return &MemoryOrderStore{}
}

func (s *MemoryOrderStore) Insert(ctx context.Context, order models.Order) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.InsertErr != nil {
		return "", s.InsertErr
	}

	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	s.orders = append(s.orders, order)
	return order.ID.Hex(), nil
}

func (s *MemoryOrderStore) List(ctx context.Context) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Order, len(s.orders))
	copy(out, s.orders)
	return out, nil
}

func (s *MemoryOrderStore) Count(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.orders)), nil
}
