package service

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/safar/go-lesson-store/internal/database"
	"github.com/safar/go-lesson-store/internal/models"
	"github.com/safar/go-lesson-store/internal/store"
)

type CatalogService struct {
	lessons store.LessonStore
	log     *logrus.Logger
}

func NewCatalogService(lessons store.LessonStore, log *logrus.Logger) *CatalogService {
	return &CatalogService{lessons: lessons, log: log}
}

func (s *CatalogService) List(ctx context.Context) ([]models.Lesson, error) {
	return s.lessons.List(ctx)
}

func (s *CatalogService) Search(ctx context.Context, query string) ([]models.Lesson, error) {
	if strings.TrimSpace(query) == "" {
		return nil, database.ErrQueryRequired
	}

	lessons, err := s.lessons.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"query": query, "results": len(lessons)}).Debug("search")
	return lessons, nil
}

// SetSpaces is the administrative override for a lesson's space count. It
// resolves the lesson by ObjectID only and writes the value as-is.
func (s *CatalogService) SetSpaces(ctx context.Context, hexID string, spaces *int) (int64, error) {
	if spaces == nil {
		return 0, database.ErrSpacesRequired
	}
	return s.lessons.SetSpaces(ctx, hexID, *spaces)
}
