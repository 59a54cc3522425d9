package testutil

import (
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mira/chat-relay/internal/api"
	"github.com/mira/chat-relay/internal/config"
	"github.com/mira/chat-relay/internal/domain"
	"github.com/mira/chat-relay/internal/repository"
	repoPostgres "github.com/mira/chat-relay/internal/repository/postgres"
	"github.com/mira/chat-relay/internal/service"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestDB wraps an in-memory sqlite database with the production schema.
type TestDB struct {
	DB *gorm.DB
}

// NewTestDB opens a fresh in-memory database and runs the migrations. Each
// call gets its own database, so tests stay isolated.
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&domain.User{},
		&domain.ChatRecord{},
	)
	if err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return &TestDB{DB: db}
}

// Truncate clears all tables for test isolation
func (tdb *TestDB) Truncate(t *testing.T) {
	t.Helper()

	for _, table := range []string{"chat_records", "users"} {
		if err := tdb.DB.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
			t.Logf("warning: failed to truncate %s: %v", table, err)
		}
	}
}

// TestConfig returns a configuration suitable for testing
func TestConfig() *config.Config {
	return &config.Config{
		Port:            "0",
		Environment:     "test",
		JWTSecret:       "test-jwt-secret-key-for-testing-only",
		AccessTokenTTL:  30 * time.Minute,
		OpenAIAPIKey:    "test-api-key",
		OpenAIModel:     "test-model",
		ProviderTimeout: 2 * time.Second,
	}
}

// TestServer holds all components for integration testing
type TestServer struct {
	Server   *httptest.Server
	DB       *TestDB
	Repos    *repository.Repositories
	Services *service.Services
	Provider *FakeProvider
	Config   *config.Config
}

// NewTestServer wires the full stack against a test database and a fake
// provider.
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()

	testDB := NewTestDB(t)
	cfg := TestConfig()

	repos := repoPostgres.NewRepositories(testDB.DB)
	provider := NewFakeProvider()
	services := service.NewServices(repos, provider, cfg)
	router := api.NewRouter(services)

	server := httptest.NewServer(router)

	ts := &TestServer{
		Server:   server,
		DB:       testDB,
		Repos:    repos,
		Services: services,
		Provider: provider,
		Config:   cfg,
	}

	t.Cleanup(func() {
		server.Close()
	})

	return ts
}

// BaseURL returns the test server's base URL
func (ts *TestServer) BaseURL() string {
	return ts.Server.URL
}

// APIURL returns the full API URL for a given path
func (ts *TestServer) APIURL(path string) string {
	return fmt.Sprintf("%s/api/v1%s", ts.Server.URL, path)
}
