package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dukerupert/taskflow/internal/config"
	"github.com/dukerupert/taskflow/internal/database"
	"github.com/dukerupert/taskflow/internal/logging"
	"github.com/dukerupert/taskflow/internal/push"
	"github.com/dukerupert/taskflow/internal/server"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "generate-vapid-keys" {
		generateVAPIDKeys()
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	logger := logging.Setup(cfg.LogLevel)

	db, err := database.Open(cfg.DBPath)
	if err != nil {
		logger.Error("open database", "path", cfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	srv := server.New(db, cfg, logger)

	if err := srv.UserService().EnsureDefaultAdmin(); err != nil {
		logger.Error("seed default admin", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv.Scheduler().Start(ctx)
	srv.BackupManager().Start(ctx)

	// Periodic cleanup of expired sessions and stale rate limit windows.
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n, err := srv.SessionStore().DeleteExpired(); err != nil {
					logger.Error("delete expired sessions", "error", err)
				} else if n > 0 {
					logger.Info("deleted expired sessions", "count", n)
				}
				srv.RateLimiter().Cleanup()
			}
		}
	}()

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv.Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("taskflow listening", "port", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	cancel()
	srv.Scheduler().Stop()
	srv.BackupManager().Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
		os.Exit(1)
	}
}

func generateVAPIDKeys() {
	pub, priv, err := push.GenerateVAPIDKeys()
	if err != nil {
		fmt.Fprintf(os.Stderr, "generate VAPID keys: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("TASKFLOW_VAPID_PUBLIC_KEY=%s\n", pub)
	fmt.Printf("TASKFLOW_VAPID_PRIVATE_KEY=%s\n", priv)
}
