package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/avelar-dev/taskcast-be/internal/api"
	"github.com/avelar-dev/taskcast-be/internal/config"
	"github.com/avelar-dev/taskcast-be/internal/database"
	"github.com/avelar-dev/taskcast-be/internal/logger"
	"github.com/avelar-dev/taskcast-be/internal/metrics"
	"github.com/avelar-dev/taskcast-be/internal/monitoring"
	"github.com/avelar-dev/taskcast-be/internal/services"
	"github.com/avelar-dev/taskcast-be/internal/weatherapi"
)

func main() {
	cfg, err := config.LoadWeather()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	logger.Init(cfg.Env)
	metrics.Init()

	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := database.MigrateWeather(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}

	provider := weatherapi.NewClient(cfg.ProviderBaseURL, cfg.ProviderAPIKey)
	weatherService := services.NewWeatherService(db, provider)

	pruner, err := monitoring.NewPruner(weatherService, cfg.PruneSchedule, cfg.Retention)
	if err != nil {
		log.Fatal().Err(err).Str("schedule", cfg.PruneSchedule).Msg("Invalid prune schedule")
	}
	go pruner.Run()

	router := api.NewWeatherRouter(cfg, weatherService)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("Weather service starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe()")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	pruner.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
