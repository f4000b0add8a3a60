package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"SkyVault/config"
	"SkyVault/internal/repo"
	"SkyVault/internal/storage"
	"SkyVault/internal/worker"
)

func main() {
	config.InitConfig()
	repo.InitMysql()
	storage.InitMinio()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Println("cleanup worker started")
	if err := worker.RunCleanupWorker(ctx); err != nil {
		log.Fatalf("cleanup worker stopped: %v", err)
	}
}
