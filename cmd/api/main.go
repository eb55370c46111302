package main

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/safar/go-lesson-store/internal/api"
	"github.com/safar/go-lesson-store/internal/config"
	"github.com/safar/go-lesson-store/internal/database"
	"github.com/safar/go-lesson-store/internal/metrics"
	"github.com/safar/go-lesson-store/internal/service"
	"github.com/safar/go-lesson-store/internal/store"
)

func main() {
	log := logrus.New()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Load config: %v", err)
	}
	if level, err := logrus.ParseLevel(cfg.Log.Level); err == nil {
		log.SetLevel(level)
	}

	client, err := database.Connect(&cfg.Database)
	if err != nil {
		log.Fatalf("Connect to database: %v", err)
	}
	defer client.Disconnect(context.Background())

	log.WithField("database", cfg.Database.Name).Info("connected to database")

	db := client.Database(cfg.Database.Name)
	lessons := store.NewMongoLessonStore(db)
	orders := store.NewMongoOrderStore(db)

	seeded, err := lessons.EnsureSeed(context.Background())
	if err != nil {
		log.Fatalf("Seed lessons: %v", err)
	}
	if seeded {
		log.Info("seeded sample lessons")
	}

	m := metrics.New()
	server := api.NewServer(api.Deps{
		Catalog:     service.NewCatalogService(lessons, log),
		Orders:      service.NewOrderService(orders, lessons, log, m),
		LessonStore: lessons,
		OrderStore:  orders,
		Ping: func(ctx context.Context) error {
			return client.Ping(ctx, readpref.Primary())
		},
		DatabaseName: cfg.Database.Name,
		Log:          log,
		Metrics:      m,
	})

	httpServer := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      server.Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	log.WithField("port", cfg.Server.Port).Info("server starting")
	if err := httpServer.ListenAndServe(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
