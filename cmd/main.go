package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"github.com/ozodbekov/cashbot/internal/app"
)

func main() {
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.NewApp(ctx)
	if err != nil {
		log.Fatalf("❌ Failed to init app: %v", err)
	}

	if err := a.Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatalf("❌ App stopped with error: %v", err)
	}
	log.Println("👋 Bye")
}
