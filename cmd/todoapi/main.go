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
	"github.com/avelar-dev/taskcast-be/internal/auth"
	"github.com/avelar-dev/taskcast-be/internal/config"
	"github.com/avelar-dev/taskcast-be/internal/database"
	"github.com/avelar-dev/taskcast-be/internal/logger"
	"github.com/avelar-dev/taskcast-be/internal/metrics"
	"github.com/avelar-dev/taskcast-be/internal/services"
)

func main() {
	cfg, err := config.LoadTodo()
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

	if err := database.MigrateTodo(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}

	tokens := auth.NewManager(cfg.JWTSecret)
	userService := services.NewUserService(db)
	todoService := services.NewTodoService(db)

	router := api.NewTodoRouter(cfg, tokens, userService, todoService)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("Todo service starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe()")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
