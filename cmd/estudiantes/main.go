package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-playground/validator/v10"

	"github.com/amnotwallas/estudiantes-frontend/internal/cli"
	"github.com/amnotwallas/estudiantes-frontend/internal/gateway"
	"github.com/amnotwallas/estudiantes-frontend/internal/session"
	"github.com/amnotwallas/estudiantes-frontend/pkg/config"
	"github.com/amnotwallas/estudiantes-frontend/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	httpClient := &http.Client{
		Timeout:   cfg.API.Timeout,
		Transport: &logger.Transport{Log: logr},
	}

	sessions, err := session.Open(cfg.API.BaseURL, cfg.Session.FilePath, httpClient, validator.New(), logr)
	if err != nil {
		logr.Sugar().Fatalw("failed to open session store", "error", err)
	}

	gw := gateway.New(cfg.API, httpClient, sessions, logr)

	app, err := cli.New(cfg, logr, sessions, gw, os.Stdout)
	if err != nil {
		logr.Sugar().Fatalw("failed to build application", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
