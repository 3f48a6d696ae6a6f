package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mohammadpnp/bizimport/internal/bootstrap"
	"github.com/mohammadpnp/bizimport/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	db, pool, err := bootstrap.OpenDatabase(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer bootstrap.CloseDatabase(db, pool)

	if cfg.AutoMigrate {
		if err := bootstrap.Migrate(context.Background(), db); err != nil {
			log.Fatalf("failed to migrate database: %v", err)
		}
	}

	services := bootstrap.NewServices(db, pool, cfg)
	server := bootstrap.NewHTTPServer(cfg, services)

	reaperCtx, stopReaper := context.WithCancel(context.Background())
	defer stopReaper()
	go bootstrap.RunSessionReaper(reaperCtx, services.Expire, cfg.SessionIdleTTL, time.Minute)

	go func() {
		if err := server.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("graceful shutdown failed: %v", err)
	}
}
