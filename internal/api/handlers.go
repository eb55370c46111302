package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/safar/go-lesson-store/internal/models"
	"github.com/safar/go-lesson-store/internal/service"
)

func (s *Server) handleListLessons(w http.ResponseWriter, r *http.Request) {
	lessons, err := s.catalog.List(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch lessons")
		return
	}
	if lessons == nil {
		lessons = []models.Lesson{}
	}
	respondJSON(w, http.StatusOK, lessons)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	lessons, err := s.catalog.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}
	if lessons == nil {
		lessons = []models.Lesson{}
	}
	respondJSON(w, http.StatusOK, lessons)
}

func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var req service.SubmitOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"error":   "Invalid request body",
		})
		return
	}

	result, err := s.orders.Submit(r.Context(), req)
	if err != nil {
		respondJSON(w, statusFor(err), map[string]interface{}{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Order saved successfully",
		"orderId": result.OrderID,
		"order":   result.Order,
	})
}

func (s *Server) handleListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := s.orders.ListOrders(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"count":   len(orders),
		"orders":  orders,
	})
}

func (s *Server) handleUpdateLesson(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Spaces *int `json:"spaces"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	modified, err := s.catalog.SetSpaces(r.Context(), mux.Vars(r)["id"], req.Spaces)
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message":       "Lesson updated",
		"modifiedCount": modified,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	dbStatus := "Connected"
	if s.ping == nil || s.ping(ctx) != nil {
		dbStatus = "Disconnected"
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "Server is running",
		"database":  dbStatus,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleTest(w http.ResponseWriter, r *http.Request) {
	lessonsCount, err := s.lessons.Count(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Database test failed: "+err.Error())
		return
	}
	ordersCount, err := s.store.Count(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Database test failed: "+err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message":      "Backend is working correctly",
		"database":     s.dbName,
		"lessonsCount": lessonsCount,
		"ordersCount":  ordersCount,
		"timestamp":    time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message":     "Lesson store API",
		"database":    s.dbName,
		"collections": []string{"lessons", "orders"},
		"endpoints": map[string]string{
			"lessons":      "GET /lessons",
			"search":       "GET /search?q=query",
			"orders":       "POST /orders",
			"allOrders":    "GET /orders",
			"updateLesson": "PUT /lessons/:id",
			"health":       "GET /health",
			"test":         "GET /test",
			"metrics":      "GET /metrics",
		},
	})
}
