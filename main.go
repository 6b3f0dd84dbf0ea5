package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"

	"github.com/lakonic/noted/api"
	"github.com/lakonic/noted/datastore"
	"github.com/lakonic/noted/migrations"
	rh "github.com/lakonic/noted/route-handlers"
	"github.com/lakonic/noted/suggestions"
	"github.com/lakonic/noted/web"
)

const (
	defaultPort        = "8080"
	defaultDatabaseURL = "user=postgres password=password dbname=noted host=localhost port=5432 sslmode=disable"
	defaultGeminiModel = "gemini-1.5-flash"
	dbPingTimeout      = 5 * time.Second
	shutdownTimeout    = 15 * time.Second
	dbMaxOpenConns     = 25
	dbMaxIdleConns     = 25
	dbConnMaxLifetime  = 5 * time.Minute
)

type config struct {
	port          string
	databaseURL   string
	jwtSecret     string
	geminiAPIKey  string
	geminiModel   string
	geminiBaseURL string
}

func main() {
	seed := flag.Bool("seed", false, "load demo data and exit")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg := loadConfig()

	db, err := setupDatabase(cfg.databaseURL)
	if err != nil {
		log.Fatalf("Database setup failed: %v", err)
	}
	defer db.Close()

	userRepo := datastore.NewUserRepository(db)
	noteRepo := datastore.NewNoteRepository(db)

	if *seed {
		if err := runSeed(context.Background(), db, userRepo, noteRepo); err != nil {
			log.Fatalf("Seeding failed: %v", err)
		}
		log.Println("Demo data seeded")
		return
	}

	suggestionClient := suggestions.NewClient(cfg.geminiBaseURL, cfg.geminiAPIKey, cfg.geminiModel)

	authHandler := rh.NewAuthHandler(userRepo, []byte(cfg.jwtSecret))
	noteHandler := rh.NewNoteHandler(noteRepo)
	suggestionHandler := rh.NewSuggestionHandler(suggestionClient)

	router := api.SetupRoutes(authHandler, noteHandler, suggestionHandler, []byte(cfg.jwtSecret), web.Handler())

	startServer(cfg.port, router)
}

func loadConfig() config {
	port := os.Getenv("PORT")
	if port == "" {
		port = defaultPort
	}

	dbURL := os.Getenv("DB_CONNECTION_STRING")
	if dbURL == "" {
		dbURL = defaultDatabaseURL
		log.Println("WARNING: DB_CONNECTION_STRING not set, using default local connection string.")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "insecure-dev-secret"
		log.Println("WARNING: JWT_SECRET not set, using an insecure development secret.")
	}

	geminiAPIKey := os.Getenv("GEMINI_API_KEY")
	if geminiAPIKey == "" {
		log.Println("WARNING: GEMINI_API_KEY not set. AI suggestions will fail at runtime.")
	}

	geminiModel := os.Getenv("GEMINI_MODEL")
	if geminiModel == "" {
		geminiModel = defaultGeminiModel
	}

	return config{
		port:          port,
		databaseURL:   dbURL,
		jwtSecret:     jwtSecret,
		geminiAPIKey:  geminiAPIKey,
		geminiModel:   geminiModel,
		geminiBaseURL: os.Getenv("GEMINI_BASE_URL"),
	}
}

func setupDatabase(connStr string) (*sql.DB, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(dbMaxOpenConns)
	db.SetMaxIdleConns(dbMaxIdleConns)
	db.SetConnMaxLifetime(dbConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), dbPingTimeout)
	defer cancel()

	if err = db.PingContext(ctx); err != nil {
		db.Close() // Close unusable connection pool
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return nil, fmt.Errorf("failed to set migration dialect: %w", err)
	}
	if err := goose.UpContext(context.Background(), db, "."); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database connection successful")
	return db, nil
}

func startServer(port string, router http.Handler) {
	server := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	shutdownSignal := make(chan os.Signal, 1)
	signal.Notify(shutdownSignal, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %s", port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-shutdownSignal // Block until signal received
	log.Println("Shutdown signal received, initiating graceful shutdown...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Graceful shutdown failed: %v", err)
	}

	log.Println("Server gracefully stopped")
}
