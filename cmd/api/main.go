package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"carsales-service/internal/app"
	"carsales-service/internal/config"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("[MAIN] No .env file found, relying on system env vars")
	}

	srv, err := app.NewServer(config.Load())
	if err != nil {
		log.Fatalf("failed to initialise server: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Start(ctx); err != nil {
		srv.Logger().Error("server exited with error", zap.Error(err))
		os.Exit(1)
	}
}
