// Bedtime Advisor API
//
// REST API recommending a bedtime from wake time, sleep goal and caffeine intake.
//
//	@title			Bedtime Advisor API
//	@version		1.0
//	@description	Recommend a bedtime from wake time, sleep goal and caffeine intake using a pluggable sleep model.
//
//	@BasePath	/v1
//
//	@tag.name			bedtime
//	@tag.description	Bedtime calculator
//
//	@tag.name			models
//	@tag.description	Sleep model registry
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

	"github.com/blaisecz/bedtime-advisor/internal/api"
	"github.com/blaisecz/bedtime-advisor/internal/api/handler"
	"github.com/blaisecz/bedtime-advisor/internal/app"
	"github.com/blaisecz/bedtime-advisor/internal/config"
	"github.com/blaisecz/bedtime-advisor/internal/domain"
	"github.com/blaisecz/bedtime-advisor/internal/langfuse"
	"github.com/blaisecz/bedtime-advisor/internal/model"
	"github.com/blaisecz/bedtime-advisor/internal/repository"
	"github.com/blaisecz/bedtime-advisor/internal/seed"
	"github.com/blaisecz/bedtime-advisor/internal/service"
	"github.com/blaisecz/bedtime-advisor/internal/telemetry"
	"golang.org/x/sync/errgroup"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg := config.Load()

	// Tracing (no-op unless Langfuse is configured)
	shutdownTracer, err := telemetry.InitTracer(ctx, cfg, "bedtime-advisor")
	if err != nil {
		log.Fatalf("Failed to initialize tracing: %v", err)
	}

	langfuseClient := langfuse.NewClient(langfuse.Config{
		BaseURL:     cfg.LangfuseBaseURL,
		PublicKey:   cfg.LangfusePublicKey,
		SecretKey:   cfg.LangfuseSecretKey,
		Environment: cfg.LangfuseEnv,
	})

	// The model registry is optional
	var (
		modelSource  model.ActiveModelSource
		modelHandler *handler.RegressionModelHandler
	)
	if cfg.HasDatabase() {
		db, err := config.NewDatabase(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}

		if err := db.AutoMigrate(&domain.RegressionModel{}); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
		log.Println("Database migration completed")

		if cfg.Seed {
			log.Println("Seeding model registry (SEED=true)...")
			if err := seed.Run(db); err != nil {
				log.Fatalf("Failed to seed database: %v", err)
			}
		}

		modelRepo := repository.NewRegressionModelRepository(db)
		modelSource = modelRepo
		modelHandler = handler.NewRegressionModelHandler(service.NewRegressionModelService(modelRepo))
	} else {
		log.Println("DATABASE_URL not set, model registry endpoints are disabled")
	}

	sleepModel, err := app.NewSleepModelOrUnavailable(ctx, cfg, modelSource)
	if err != nil {
		log.Fatalf("Failed to configure sleep model: %v", err)
	}

	bedtimeService := service.NewBedtimeService(sleepModel, cfg.DefaultLocale)
	bedtimeHandler := handler.NewBedtimeHandler(bedtimeService, langfuseClient)

	// Setup router
	router := api.NewRouter(bedtimeHandler, modelHandler)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("Starting server on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Println("Shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		err := srv.Shutdown(shutdownCtx)
		langfuseClient.Flush()
		if terr := shutdownTracer(shutdownCtx); terr != nil {
			log.Printf("Tracer shutdown: %v", terr)
		}
		return err
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
