package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"
	"time"

	httpapi "thoonsheet-backend/internal/api/http"
	"thoonsheet-backend/internal/config"
	"thoonsheet-backend/internal/logger"
	"thoonsheet-backend/internal/repository/postgres"
	"thoonsheet-backend/internal/security"
	"thoonsheet-backend/internal/service"
	"thoonsheet-backend/internal/storage"

	_ "github.com/lib/pq"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Thoonsheet Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute)

	// Initialize Storage
	imageStore, err := storage.NewLocalFileStore(cfg.Storage.UploadDir)
	if err != nil {
		logger.Error("Failed to initialize file storage", "error", err)
		log.Fatalf("Failed to initialize file storage: %v", err)
	}
	logger.Info("File storage initialized", "upload_dir", cfg.Storage.UploadDir)

	// Initialize Services
	authSvc := service.NewAuthService(store.UserRepository, tokenManager)
	userSvc := service.NewUserService(store.UserRepository)
	groupSvc := service.NewGroupService(store.GroupRepository)
	accountSvc := service.NewPaymentAccountService(store.PaymentAccountRepository)
	txSvc := service.NewTransactionService(
		store.TransactionRepository,
		store.GroupRepository,
		store.PaymentAccountRepository,
		imageStore,
	)
	entrySvc := service.NewAuditEntryService(store.AuditEntryRepository, store.GroupRepository)
	summarySvc := service.NewSummaryService(store.SummaryRepository)

	// Build HTTP router
	router := httpapi.NewRouter(httpapi.Services{
		Auth:            authSvc,
		Users:           userSvc,
		Groups:          groupSvc,
		PaymentAccounts: accountSvc,
		Transactions:    txSvc,
		AuditEntries:    entrySvc,
		Summaries:       summarySvc,
		Tokens:          tokenManager,
		UserRepo:        store.UserRepository,
		Images:          imageStore,
		MaxFileSize:     cfg.Storage.MaxFileSize * 1024 * 1024,
	})

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := server.ListenAndServe(); err != nil {
		logger.Error("Server stopped", "error", err)
		log.Fatalf("Server stopped: %v", err)
	}
}
