package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"strangerchat/backend/internal/api/handler"
	"strangerchat/backend/internal/config"
	"strangerchat/backend/internal/coordinator"
)

func main() {
	w := zerolog.ConsoleWriter{Out: os.Stdout}
	l := zerolog.New(w).With().Timestamp().Logger()

	if err := godotenv.Load(); err != nil {
		l.Debug().Msg("no .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		l.Fatal().Err(err).Msg("invalid configuration")
	}

	coord := coordinator.New(l)
	go coord.Run()

	h := handler.NewHandler(coord, cfg, l)

	r := gin.Default()
	r.GET("/", h.Status)
	r.GET("/anonid", h.GetAnonID)
	r.GET("/ws", h.ServeWebSocket)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		l.Info().Str("port", cfg.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			l.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	l.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		l.Error().Err(err).Msg("server forced to shutdown")
	}

	coord.Stop()
	l.Info().Msg("server exited")
}
