package store

import (
	"context"

	"github.com/safar/go-lesson-store/internal/models"
)

type LessonStore interface {
	List(ctx context.Context) ([]models.Lesson, error)
	Search(ctx context.Context, query string) ([]models.Lesson, error)
	// DecrementSpaces atomically takes one seat from the lesson matching id,
	// looking up the legacy numeric id first and the ObjectID second. Returns
	// ErrLessonNotFound when nothing matches and ErrSoldOut when the lesson
	// exists but has no spaces left.
	DecrementSpaces(ctx context.Context, id models.LessonID) error
	// SetSpaces overwrites the space count of the lesson with the given
	// ObjectID hex. Admin override, no floor.
	SetSpaces(ctx context.Context, hexID string, spaces int) (int64, error)
	Count(ctx context.Context) (int64, error)
}

type OrderStore interface {
	Insert(ctx context.Context, order models.Order) (string, error)
	List(ctx context.Context) ([]models.Order, error)
	Count(ctx context.Context) (int64, error)
}
