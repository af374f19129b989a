// main is the entry point for the EcoLearn API server.
//
// It reads configuration from the environment, opens the device-local
// SQLite database, connects the optional remote store and leaderboard
// cache, seeds demo data, registers all HTTP routes, and starts listening.
//
// ────────────────────────────────────────────────────────────────────
// LEARNING NOTE — how this file fits into the project
// ────────────────────────────────────────────────────────────────────
// This file is the "composition root": the single place where all the
// independent packages (store, accounts, learning, handlers...) are wired
// together. Keeping this wiring in main.go means every other package stays
// easy to test in isolation (they never import each other in a circle).
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Elizabethomito/ecolearn/internal/accounts"
	"github.com/Elizabethomito/ecolearn/internal/activity"
	"github.com/Elizabethomito/ecolearn/internal/auth"
	"github.com/Elizabethomito/ecolearn/internal/cache"
	"github.com/Elizabethomito/ecolearn/internal/config"
	"github.com/Elizabethomito/ecolearn/internal/db"
	"github.com/Elizabethomito/ecolearn/internal/handlers"
	"github.com/Elizabethomito/ecolearn/internal/jobs"
	"github.com/Elizabethomito/ecolearn/internal/learning"
	"github.com/Elizabethomito/ecolearn/internal/logging"
	"github.com/Elizabethomito/ecolearn/internal/store"
	"github.com/Elizabethomito/ecolearn/internal/submissions"
	"github.com/Elizabethomito/ecolearn/internal/uploads"
)

func main() {
	// ── Configuration ────────────────────────────────────────────────
	// config.Load reads .env (if present) and then the environment, so
	// the same binary runs in development, CI, and production.
	cfg := config.Load()
	log := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ── Local database ───────────────────────────────────────────────
	// db.Open creates the file if it doesn't exist and runs all CREATE
	// TABLE IF NOT EXISTS migrations automatically.
	database, err := db.Open(cfg.DatabaseURL, log)
	if err != nil {
		log.Error("open database", "err", err)
		os.Exit(1)
	}
	defer database.Close()

	local := store.NewLocal(database)
	journal := store.NewJournal(database)
	sessions := store.NewSessions(database)

	// ── Remote store ─────────────────────────────────────────────────
	// Without credentials every read and write goes to the local store.
	// With them, the Fallback tries the remote first and journals any
	// write it had to keep locally; the Reconciler replays that journal.
	var (
		backend store.Backend = local
		syncer  handlers.Syncer
		pinger  handlers.Pinger
	)
	if cfg.RemoteConfigured() {
		remote, err := store.ConnectPostgres(ctx, cfg.RemoteStoreURL, cfg.RemoteStoreKey)
		if err != nil {
			log.Warn("remote store unavailable at startup", "err", err)
		}
		if remote != nil {
			defer remote.Close()
			backend = store.NewFallback(remote, local, journal, cfg.RemoteTimeout, log)
			reconciler := store.NewReconciler(remote, local, journal, cfg.RemoteTimeout, log)
			syncer = reconciler
			pinger = remote
			jobs.StartSync(ctx, reconciler, cfg.SyncInterval, 2*cfg.SyncInterval, log)
		}
	} else {
		log.Info("remote store not configured; using local store only")
	}

	// ── Leaderboard cache ────────────────────────────────────────────
	// A nil *cache.Cache is valid and simply computes every request.
	var lb *cache.Cache
	if cfg.RedisURL != "" {
		lb, err = cache.Connect(ctx, cfg.RedisURL, cfg.LeaderboardTTL, log)
		if err != nil {
			log.Warn("leaderboard cache disabled", "err", err)
			lb = nil
		} else {
			defer lb.Close()
		}
	}

	// ── Store and demo data ──────────────────────────────────────────
	st := store.New(backend)
	hasher := auth.BcryptHasher{}
	if err := store.Bootstrap(ctx, st, hasher, cfg.DefaultPassword, log); err != nil {
		log.Error("bootstrap store", "err", err)
		os.Exit(1)
	}

	// ── Services ─────────────────────────────────────────────────────
	act := activity.New(st, cfg.ActivityLogLimit, log)
	learn := learning.New(st, lb, log)

	srv := &handlers.Server{
		Accounts:    accounts.New(st, sessions, hasher, act, cfg.JWTSecret, log),
		Learning:    learn,
		Submissions: submissions.New(st, learn, act, log),
		Uploads:     uploads.New(cfg.UploadDir, cfg.UploadMaxBytes),
		Syncer:      syncer,
		Remote:      pinger,
		Secret:      cfg.JWTSecret,
		Log:         log,
	}

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("EcoLearn API listening", "addr", cfg.Addr, "store", backend.Name())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", "err", err)
	}
}
