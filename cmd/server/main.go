package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/pemira-fti/backend/internal/auth"
	"github.com/pemira-fti/backend/internal/config"
	"github.com/pemira-fti/backend/internal/handlers"
	"github.com/pemira-fti/backend/internal/service"
	"github.com/pemira-fti/backend/internal/storage/sqlite"
	"github.com/pemira-fti/backend/internal/verify"
	"github.com/pemira-fti/backend/pkg/logging"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	faces, err := verify.NewFaceDetectorFromFile(cfg.CascadePath, cfg.FaceScaleFactor, cfg.FaceMinNeighbors)
	if err != nil {
		slog.Error("Failed to load face detection cascade", "path", cfg.CascadePath, "error", err)
		os.Exit(1)
	}
	documents := verify.NewDocumentVerifier(cfg.RequiredDocTokens)
	pool := verify.NewPool(cfg.VerifyWorkers)

	gate := auth.NewGate(store, cfg.AdminUsername, cfg.AdminPasswordHash)
	tokens := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	logger := slog.Default()

	registration := service.NewRegistrationService(
		store, documents, faces, pool, cfg.LocationTag, cfg.AuditDuplicateRegistration, logger)
	election := service.NewElectionService(
		store, gate, tokens, cfg.Candidates, cfg.LocationTag, logger)
	adminSvc := service.NewAdminService(store, logger)

	mux := handlers.NewRouter(registration, election, adminSvc, tokens)

	server := http.Server{
		Handler: mux,
		Addr:    fmt.Sprintf(":%d", cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-ctrlc
		server.Close()
	}()

	slog.Info("Server starting", "port", cfg.Port, "candidates", cfg.Candidates)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Server closed")
}
