package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	httpapi "scroll-and-bite/bite-svc/internal/api/http"
	"scroll-and-bite/bite-svc/internal/realtime"
	"scroll-and-bite/bite-svc/internal/service"
	"scroll-and-bite/bite-svc/internal/session"
	"scroll-and-bite/bite-svc/internal/storage"
	"scroll-and-bite/config"
)

func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db := config.MustInitPostgres(cfg)
	defer db.Close()

	if err := storage.Migrate(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	rdb := config.MustInitRedis(cfg)
	defer rdb.Close()

	hub := realtime.NewHub()
	var publisher storage.ChangePublisher = hub
	if cfg.KafkaBroker != "" {
		writer := config.NewKafkaWriter(cfg)
		defer writer.Close()
		publisher = storage.NewKafkaPublisher(writer)

		reader := config.NewKafkaReader(cfg)
		defer reader.Close()
		go hub.Run(ctx, reader)
	} else {
		log.Println("Warning: KAFKA_BROKER not set, change events stay in process")
	}

	repository := storage.NewPostgresRepository(db, publisher)
	sessions := storage.NewRedisSessionStore(rdb, cfg.SessionTTL)
	objects := storage.NewObjectStore(cfg.StorageDir, cfg.Bucket, cfg.PublicBaseURL, cfg.FallbackImage)

	registry := session.NewRegistry()
	authService := service.NewAuthService(repository, sessions)
	authService.OnAuthStateChange(registry.HandleAuthEvent)

	handler := &httpapi.Handler{
		Auth:        authService,
		Restaurants: service.NewRestaurantService(repository, objects),
		Products:    service.NewProductService(repository, repository, objects),
		Posts:       service.NewPostService(repository, repository, objects),
		Feeds:       service.NewFeedService(repository, repository, repository, hub, cfg.FeedPageSize),
		Cart:        service.NewCartService(repository, repository),
		Orders:      service.NewOrderService(repository, repository, service.PickupQR{BaseURL: cfg.PublicBaseURL}),
		Sessions:    registry,
		Objects:     objects,
	}

	go httpapi.StartServer(cfg.HTTPAddr, httpapi.NewRouter(handler, objects.PathPrefix(), objects.Handler()))

	<-ctx.Done()
	log.Println("Bite Service shutting down")
}
