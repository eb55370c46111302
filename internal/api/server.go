package api

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/safar/go-lesson-store/internal/metrics"
	"github.com/safar/go-lesson-store/internal/service"
	"github.com/safar/go-lesson-store/internal/store"
)

// PingFunc reports whether the backing database is reachable.
type PingFunc func(ctx context.Context) error

type Server struct {
	catalog *service.CatalogService
	orders  *service.OrderService
	lessons store.LessonStore
	store   store.OrderStore
	ping    PingFunc
	dbName  string
	log     *logrus.Logger
	metrics *metrics.Metrics
}

type Deps struct {
	Catalog      *service.CatalogService
	Orders       *service.OrderService
	LessonStore  store.LessonStore
	OrderStore   store.OrderStore
	Ping         PingFunc
	DatabaseName string
	Log          *logrus.Logger
	Metrics      *metrics.Metrics
}

func NewServer(deps Deps) *Server {
	return &Server{
		catalog: deps.Catalog,
		orders:  deps.Orders,
		lessons: deps.LessonStore,
		store:   deps.OrderStore,
		ping:    deps.Ping,
		dbName:  deps.DatabaseName,
		log:     deps.Log,
		metrics: deps.Metrics,
	}
}

func (s *Server) Router() http.Handler {
	r := mux.NewRouter()
	r.Use(s.logMiddleware)

	r.HandleFunc("/lessons", s.handleListLessons).Methods(http.MethodGet)
	r.HandleFunc("/search", s.handleSearch).Methods(http.MethodGet)
	r.HandleFunc("/orders", s.handleCreateOrder).Methods(http.MethodPost)
	r.HandleFunc("/orders", s.handleListOrders).Methods(http.MethodGet)
	r.HandleFunc("/lessons/{id}", s.handleUpdateLesson).Methods(http.MethodPut)
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/test", s.handleTest).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/", s.handleRoot).Methods(http.MethodGet)

	return corsMiddleware(r)
}
