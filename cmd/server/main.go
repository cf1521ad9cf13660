// Command server runs the vocabulary learning HTTP API.
//
// Configuration is read from CONFIG_PATH (YAML) with environment variable
// overrides; DATABASE_DSN is required.
//
// Exit codes: 0 = clean shutdown, 1 = fatal error.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/kelime/kelime-backend/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Fatalf("application error: %v", err)
	}
}
