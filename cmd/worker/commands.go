package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/hummbl-dev/models-api/config"
	"github.com/hummbl-dev/models-api/internal/bootstrap"
	"github.com/hummbl-dev/models-api/internal/models/events"
	"github.com/hummbl-dev/models-api/internal/models/scheduler"
	"github.com/hummbl-dev/models-api/internal/models/service"
)

// RunFetch fetches the document once and prints every transformed model
func RunFetch(args []string) {
	cfg := mustConfig()
	if len(args) > 0 {
		cfg.Upstream.ModelsURL = args[0]
	}

	models := bootstrap.BuildModelService(cfg.Upstream, nil)
	list, err := models.List(context.Background(), service.Query{})
	if err != nil {
		log.Fatalf("fetch: %v", err)
	}
	printJSON(list)
}

// RunList fetches the document and prints the models matching key=value filters
func RunList(args []string) {
	params, err := parseParams(args)
	if err != nil {
		log.Fatal(err)
	}

	cfg := mustConfig()
	models := bootstrap.BuildModelService(cfg.Upstream, nil)
	list, err := models.List(context.Background(), service.ParseQuery(params))
	if err != nil {
		log.Fatalf("list: %v", err)
	}
	log.Printf("%d models matched", len(list))
	printJSON(list)
}

// RunWarm keeps the cache warm on the configured schedule until interrupted,
// publishing cache events to Redis when REDIS_URL is set.
func RunWarm(args []string) {
	cfg := mustConfig()
	if len(args) > 0 {
		cfg.Warmer.Schedule = args[0]
	}
	if cfg.Warmer.Schedule == "" {
		log.Fatal("warm: WARM_SCHEDULE is empty")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var publisher service.EventPublisher = events.NopPublisher{}
	if cfg.Redis.Enabled() {
		rdb, err := bootstrap.OpenRedis(ctx, bootstrap.RedisOptions{URL: cfg.Redis.URL})
		if err != nil {
			log.Fatalf("warm: %v", err)
		}
		defer rdb.Close()
		publisher = events.NewRedisPublisher(rdb)
	}

	models := bootstrap.BuildModelService(cfg.Upstream, publisher)
	warmer := scheduler.NewWarmer(models.Cache(), cfg.Warmer.Schedule)
	warmer.RunOnce(ctx)
	if err := warmer.Start(); err != nil {
		log.Fatalf("warm: %v", err)
	}

	<-ctx.Done()
	<-warmer.Stop().Done()
}

func parseParams(args []string) (map[string][]string, error) {
	params := make(map[string][]string, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("expected key=value, got %q", arg)
		}
		params[key] = append(params[key], value)
	}
	return params, nil
}

func mustConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	return cfg
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		log.Fatalf("encode: %v", err)
	}
}
