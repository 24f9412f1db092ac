package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Sai-Reddy-026/Campus-Event-Organising-System/internal/app"
	"github.com/Sai-Reddy-026/Campus-Event-Organising-System/internal/clock"
	"github.com/Sai-Reddy-026/Campus-Event-Organising-System/internal/config"
	"github.com/Sai-Reddy-026/Campus-Event-Organising-System/internal/storage/postgres"
	transporthttp "github.com/Sai-Reddy-026/Campus-Event-Organising-System/internal/transport/http"
	"github.com/Sai-Reddy-026/Campus-Event-Organising-System/migrations"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	logger := log.Default()
	cfg := config.Load()

	startupCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := pgxpool.New(startupCtx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("connect to db: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(startupCtx); err != nil {
		log.Fatalf("db ping: %v", err)
	}
	if err := migrations.Apply(startupCtx, pool); err != nil {
		log.Fatalf("apply migrations: %v", err)
	}

	sysClock := clock.NewSystem()

	eventRepo := postgres.NewEventRepository(pool)
	eventSvc := app.NewEventService(eventRepo, sysClock)
	registrationRepo := postgres.NewRegistrationRepository(pool)
	registrationSvc := app.NewRegistrationService(registrationRepo, sysClock)
	approvalRepo := postgres.NewApprovalRepository(pool)
	approvalSvc := app.NewApprovalService(approvalRepo, sysClock)
	reportRepo := postgres.NewReportRepository(pool)
	reportSvc := app.NewReportService(reportRepo)
	letterRepo := postgres.NewLetterRepository(pool)
	letterSvc := app.NewLetterService(letterRepo)

	handler := transporthttp.NewRouter(transporthttp.Services{
		Catalog:       eventSvc,
		EventAdmin:    eventSvc,
		Admission:     registrationSvc,
		Registrations: registrationSvc,
		Approvals:     approvalSvc,
		Reports:       reportSvc,
		Letters:       letterSvc,
	}, logger, cfg.CORSOrigins)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	log.Printf("api listening on :%s (%s)", cfg.Port, cfg.Environment)

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- server.ListenAndServe()
	}()

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("server error: %v", err)
		}
	case <-stopCtx.Done():
		log.Printf("shutdown signal received, stopping server")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("server shutdown error: %v", err)
	}
	log.Printf("server stopped")
}
