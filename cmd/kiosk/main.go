// The kiosk binary serves the ATM over HTTP for a browser front end: one
// shared session, driven by POST /event, mirrored on GET /display and the
// /ws feed.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/sultanahmad/atm-sim/internal/config"
	"github.com/sultanahmad/atm-sim/internal/http/handlers"
	"github.com/sultanahmad/atm-sim/internal/ledger"
	"github.com/sultanahmad/atm-sim/internal/server"
	"github.com/sultanahmad/atm-sim/internal/session"
)

func main() {
	loadLocalEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	bank, err := ledger.New(cfg.Seed, cfg.MaxPINAttempts)
	if err != nil {
		log.Fatalf("init ledger: %v", err)
	}

	notices := handlers.NewNoticeBuffer()
	loop := session.NewLoop(session.New(bank, notices))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go loop.Run(ctx)

	srv := server.New(cfg, loop, notices)

	go func() {
		log.Printf("ATM kiosk listening on %s", cfg.HTTPAddress())
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http server error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.Printf("graceful shutdown error: %v", err)
	}
}

func loadLocalEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found; relying on existing environment")
	}
}
