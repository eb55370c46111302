package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/safar/go-lesson-store/internal/database"
	"github.com/safar/go-lesson-store/internal/metrics"
	"github.com/safar/go-lesson-store/internal/models"
	"github.com/safar/go-lesson-store/internal/store"
)

type SubmitOrderRequest struct {
	Name       string            `json:"name"`
	Phone      string            `json:"phone"`
	LessonIDs  []models.LessonID `json:"lessonIDs"`
	TotalPrice *float64          `json:"totalPrice"`
	TotalItems *int              `json:"totalItems"`
}

type SpaceAdjustment struct {
	LessonID models.LessonID `json:"lessonID"`
	Adjusted bool            `json:"adjusted"`
	Reason   string          `json:"reason,omitempty"`
}

type SubmitOrderResult struct {
	OrderID     string
	Order       models.Order
	Adjustments []SpaceAdjustment
}

type OrderService struct {
	orders  store.OrderStore
	lessons store.LessonStore
	log     *logrus.Logger
	metrics *metrics.Metrics
}

func NewOrderService(orders store.OrderStore, lessons store.LessonStore, log *logrus.Logger, m *metrics.Metrics) *OrderService {
	return &OrderService{orders: orders, lessons: lessons, log: log, metrics: m}
}

// Submit validates and persists an order, then takes one seat per lesson
// reference. The order insert happens before any decrement; decrement
// failures are logged and never fail the submission, so a persisted order is
// the source of truth even when inventory bookkeeping lags.
func (s *OrderService) Submit(ctx context.Context, req SubmitOrderRequest) (*SubmitOrderResult, error) {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Phone) == "" {
		return nil, database.ErrNamePhoneRequired
	}
	if len(req.LessonIDs) == 0 {
		return nil, database.ErrEmptyCart
	}

	order := models.Order{
		Name:       req.Name,
		Phone:      req.Phone,
		LessonIDs:  req.LessonIDs,
		TotalItems: len(req.LessonIDs),
		OrderDate:  time.Now().UTC(),
		Status:     models.OrderStatusConfirmed,
	}
	if req.TotalPrice != nil {
		order.TotalPrice = *req.TotalPrice
	}
	if req.TotalItems != nil {
		order.TotalItems = *req.TotalItems
	}

	orderID, err := s.orders.Insert(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("save order: %w", err)
	}
	if oid, err := primitive.ObjectIDFromHex(orderID); err == nil {
		order.ID = oid
	}
	s.metrics.OrdersCreated.Inc()

	s.log.WithFields(logrus.Fields{
		"order_id": orderID,
		"lessons":  len(req.LessonIDs),
	}).Info("order saved")

	adjustments := make([]SpaceAdjustment, 0, len(req.LessonIDs))
	for _, lessonID := range req.LessonIDs {
		adjustments = append(adjustments, s.decrement(ctx, orderID, lessonID))
	}

	return &SubmitOrderResult{OrderID: orderID, Order: order, Adjustments: adjustments}, nil
}

func (s *OrderService) decrement(ctx context.Context, orderID string, lessonID models.LessonID) SpaceAdjustment {
	err := s.lessons.DecrementSpaces(ctx, lessonID)

	entry := s.log.WithFields(logrus.Fields{
		"order_id":  orderID,
		"lesson_id": lessonID,
	})

	switch {
	case err == nil:
		s.metrics.SpaceDecrements.WithLabelValues("ok").Inc()
		return SpaceAdjustment{LessonID: lessonID, Adjusted: true}
	case errors.Is(err, database.ErrLessonNotFound):
		s.metrics.SpaceDecrements.WithLabelValues("not_found").Inc()
		entry.Warn("lesson not found, skipping space update")
		return SpaceAdjustment{LessonID: lessonID, Reason: "not_found"}
	case errors.Is(err, database.ErrSoldOut):
		s.metrics.SpaceDecrements.WithLabelValues("sold_out").Inc()
		entry.Warn("lesson sold out, skipping space update")
		return SpaceAdjustment{LessonID: lessonID, Reason: "sold_out"}
	default:
		s.metrics.SpaceDecrements.WithLabelValues("error").Inc()
		entry.WithError(err).Warn("failed to update lesson spaces")
		return SpaceAdjustment{LessonID: lessonID, Reason: "error"}
	}
}

func (s *OrderService) ListOrders(ctx context.Context) ([]models.Order, error) {
	return s.orders.List(ctx)
}
