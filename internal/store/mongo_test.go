package store

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/safar/go-lesson-store/internal/database"
	"github.com/safar/go-lesson-store/internal/models"
)

func setupTestDB(t *testing.T) (*mongo.Database, func()) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "mongo:7",
		ExposedPorts: []string{"27017/tcp"},
		WaitingFor: wait.ForLog("Waiting for connections").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("Failed to start mongo container: %v", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}

	port, err := container.MappedPort(ctx, "27017")
	if err != nil {
		t.Fatalf("Failed to get container port: %v", err)
	}

	uri := fmt.Sprintf("mongodb://%s:%s", host, port.Port())

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Fatalf("Failed to connect to mongo: %v", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		t.Fatalf("Failed to ping mongo: %v", err)
	}

	cleanup := func() {
		if err := client.Disconnect(ctx); err != nil {
			t.Logf("Failed to disconnect client: %v", err)
		}
		if err := container.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	}

	return client.Database("testdb"), cleanup
}

func TestEnsureSeed(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	lessons := NewMongoLessonStore(db)

	seeded, err := lessons.EnsureSeed(ctx)
	if err != nil {
		t.Fatalf("Seed: %v", err)
	}
	if !seeded {
		t.Error("Expected first EnsureSeed to seed")
	}

	all, err := lessons.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 10 {
		t.Errorf("Expected 10 seeded lessons, got %d", len(all))
	}

	seeded, err = lessons.EnsureSeed(ctx)
	if err != nil {
		t.Fatalf("Second seed: %v", err)
	}
	if seeded {
		t.Error("EnsureSeed must be a no-op on a populated collection")
	}
}

func TestMongoSearch(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	lessons := NewMongoLessonStore(db)
	if _, err := lessons.EnsureSeed(ctx); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	results, err := lessons.Search(ctx, "math")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 || results[0].Subject != "Mathematics" {
		t.Errorf("Expected Mathematics, got %+v", results)
	}

	results, err = lessons.Search(ctx, "camden")
	if err != nil {
		t.Fatalf("Search by location: %v", err)
	}
	if len(results) != 1 || results[0].Location != "Camden" {
		t.Errorf("Expected Camden lesson, got %+v", results)
	}

	results, err = lessons.Search(ctx, "130")
	if err != nil {
		t.Fatalf("Numeric search: %v", err)
	}
	if len(results) != 1 || results[0].Subject != "Economics" {
		t.Errorf("Expected Economics for price 130, got %+v", results)
	}

	results, err = lessons.Search(ctx, "a+b(")
	if err != nil {
		t.Fatalf("Search with regex metacharacters must not fail: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("Expected no matches, got %d", len(results))
	}
}

func TestMongoDecrementSpaces(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	lessons := NewMongoLessonStore(db)
	if _, err := lessons.EnsureSeed(ctx); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	if err := lessons.DecrementSpaces(ctx, "1"); err != nil {
		t.Fatalf("Decrement by legacy id: %v", err)
	}

	all, err := lessons.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	var maths models.Lesson
	for _, lesson := range all {
		if lesson.LegacyID == 1 {
			maths = lesson
		}
	}
	if maths.Spaces != 4 {
		t.Errorf("Expected 4 spaces after decrement, got %d", maths.Spaces)
	}

	if err := lessons.DecrementSpaces(ctx, models.LessonID(maths.ID.Hex())); err != nil {
		t.Fatalf("Decrement by object id: %v", err)
	}

	if err := lessons.DecrementSpaces(ctx, "999"); err != database.ErrLessonNotFound {
		t.Errorf("Expected ErrLessonNotFound, got %v", err)
	}
}

func TestMongoDecrementSoldOut(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	lessons := NewMongoLessonStore(db)
	if _, err := lessons.EnsureSeed(ctx); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	for i := 0; i < 5; i++ {
		if err := lessons.DecrementSpaces(ctx, "2"); err != nil {
			t.Fatalf("Decrement %d: %v", i, err)
		}
	}

	if err := lessons.DecrementSpaces(ctx, "2"); err != database.ErrSoldOut {
		t.Errorf("Expected ErrSoldOut at zero spaces, got %v", err)
	}

	all, _ := lessons.List(ctx)
	for _, lesson := range all {
		if lesson.LegacyID == 2 && lesson.Spaces != 0 {
			t.Errorf("Spaces must clamp at 0, got %d", lesson.Spaces)
		}
	}
}

func TestMongoDecrementConcurrent(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	lessons := NewMongoLessonStore(db)
	if _, err := lessons.EnsureSeed(ctx); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	var wg sync.WaitGroup
	errs := make(chan error, 5)
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- lessons.DecrementSpaces(ctx, "3")
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Errorf("Concurrent decrement: %v", err)
		}
	}

	all, _ := lessons.List(ctx)
	for _, lesson := range all {
		if lesson.LegacyID == 3 && lesson.Spaces != 0 {
			t.Errorf("Expected 0 spaces after 5 concurrent decrements, got %d", lesson.Spaces)
		}
	}
}

func TestMongoSetSpaces(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	lessons := NewMongoLessonStore(db)
	if _, err := lessons.EnsureSeed(ctx); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	all, err := lessons.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	target := all[0]

	modified, err := lessons.SetSpaces(ctx, target.ID.Hex(), 42)
	if err != nil {
		t.Fatalf("SetSpaces: %v", err)
	}
	if modified != 1 {
		t.Errorf("Expected 1 modified, got %d", modified)
	}

	if _, err := lessons.SetSpaces(ctx, "000000000000000000000000", 1); err != database.ErrLessonNotFound {
		t.Errorf("Expected ErrLessonNotFound for unknown id, got %v", err)
	}
	if _, err := lessons.SetSpaces(ctx, "garbage", 1); err != database.ErrLessonNotFound {
		t.Errorf("Expected ErrLessonNotFound for malformed id, got %v", err)
	}
}

func TestMongoOrders(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	orders := NewMongoOrderStore(db)

	order := models.Order{
		Name:       "Alice",
		Phone:      "0123456789",
		LessonIDs:  []models.LessonID{"1", "2"},
		TotalPrice: 180,
		TotalItems: 2,
		OrderDate:  time.Now().UTC(),
		Status:     models.OrderStatusConfirmed,
	}

	id, err := orders.Insert(ctx, order)
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if id == "" {
		t.Error("Expected a non-empty order id")
	}

	all, err := orders.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("Expected 1 order, got %d", len(all))
	}
	if all[0].Name != "Alice" || len(all[0].LessonIDs) != 2 {
		t.Errorf("Order did not round-trip: %+v", all[0])
	}
	if all[0].Status != models.OrderStatusConfirmed {
		t.Errorf("Expected confirmed status, got %q", all[0].Status)
	}

	count, err := orders.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected count 1, got %d", count)
	}
}
