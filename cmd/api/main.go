package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hummbl-dev/models-api/config"
	"github.com/hummbl-dev/models-api/internal/bootstrap"
	"github.com/hummbl-dev/models-api/internal/models/events"
	"github.com/hummbl-dev/models-api/internal/models/scheduler"
	"github.com/hummbl-dev/models-api/internal/models/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	bootstrap.SetGinMode(cfg.App.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		rdb       *redis.Client
		publisher service.EventPublisher = events.NopPublisher{}
	)
	if cfg.Redis.Enabled() {
		rdb, err = bootstrap.OpenRedis(ctx, bootstrap.RedisOptions{URL: cfg.Redis.URL})
		if err != nil {
			log.Printf("Warning: redis unavailable, cache events disabled: %v", err)
		} else {
			defer rdb.Close()
			publisher = events.NewRedisPublisher(rdb)
		}
	}

	models := bootstrap.BuildModelService(cfg.Upstream, publisher)

	warmer := scheduler.NewWarmer(models.Cache(), cfg.Warmer.Schedule)
	if err := warmer.Start(); err != nil {
		log.Fatalf("warmer: %v", err)
	}
	defer warmer.Stop()

	r := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: cfg.App.ServiceName,
		Version:     cfg.App.Version,
		Models:      models,
		Redis:       rdb,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("listening on :%s (upstream %s)", cfg.Server.Port, cfg.Upstream.ModelsURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
