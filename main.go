package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"ims/cmd"
	"ims/internal/core/config"
)

func init() {
	// Load .env file, but don't overwrite system environment variables
	if err := config.LoadEnv(); err != nil {
		log.Println("Warning: No .env file found, falling back to system environment variables.")
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmd.Execute(ctx)
}
