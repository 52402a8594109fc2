package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/phenrril/brainbattle/internal/app"
)

func main() {
	_ = godotenv.Load()

	cfg, err := app.LoadConfig()
	setupLogger(cfg)
	if err != nil {
		zlog.Fatal().Err(err).Msg("invalid configuration")
	}

	var db *gorm.DB
	if cfg.DatabaseDSN != "" {
		db, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)})
		if err != nil {
			zlog.Fatal().Err(err).Msg("failed to connect to database")
		}
	} else {
		zlog.Warn().Msg("no database configured, waitlist signups will only be logged")
	}

	ctx := context.Background()
	application, err := app.NewApp(ctx, cfg, db)
	if err != nil {
		zlog.Fatal().Err(err).Msg("failed to create app")
	}
	defer application.Close()
	if err := application.Migrate(); err != nil {
		zlog.Fatal().Err(err).Msg("failed to migrate database")
	}

	ln, port, err := listen(cfg.Port)
	if err != nil {
		zlog.Fatal().Err(err).Msg("no free port")
	}

	server := &http.Server{
		Handler:           application.HTTPHandler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zlog.Info().Str("port", port).Str("env", cfg.Env).Msg("listening")
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	zlog.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		zlog.Error().Err(err).Msg("shutdown")
	}
}

func setupLogger(cfg app.Config) {
	zerolog.TimeFieldFormat = time.RFC3339
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || cfg.LogLevel == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if !cfg.Production() {
		zlog.Logger = zlog.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})
	}
}

// listen binds port, falling back to 8081-8090 when it is taken.
func listen(port string) (net.Listener, string, error) {
	ln, err := net.Listen("tcp", ":"+port)
	if err == nil {
		return ln, port, nil
	}
	zlog.Warn().Err(err).Str("port", port).Msg("port in use, trying fallbacks")
	for p := 8081; p <= 8090; p++ {
		l2, err2 := net.Listen("tcp", net.JoinHostPort("", fmt.Sprintf("%d", p)))
		if err2 == nil {
			return l2, fmt.Sprint(p), nil
		}
	}
	return nil, "", err
}
