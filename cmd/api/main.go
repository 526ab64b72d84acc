package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/redis/go-redis/v9"

	"workhub/internal/api"
	"workhub/internal/auth"
	"workhub/internal/config"
	"workhub/internal/database"
	"workhub/internal/storage"
)

func main() {
	cfg := config.MustLoad()
	log.Printf("api bootstrapped with db driver=%s", cfg.Database.Driver)

	db, err := database.InitDatabase(cfg.Database)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}
	log.Printf("database connection ready")

	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("auto migrate: %v", err)
	}
	log.Printf("database migrated")

	sessionService, err := auth.NewSessionService(cfg.Session.Secret, cfg.Session.TTL())
	if err != nil {
		log.Fatalf("init session service: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
	})

	// 只在启用时才往接口里放值，避免有类型的 nil 指针让处理器的判空失效。
	var imageStorage api.ListingImageStorage
	if cfg.MinIO.Enabled() {
		storageClient, err := storage.NewClient(cfg.MinIO)
		if err != nil {
			log.Fatalf("init storage: %v", err)
		}
		imageStorage = storageClient
		log.Printf("listing image storage ready at %s", cfg.MinIO.Endpoint)
	} else {
		log.Printf("listing image storage disabled")
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	router := api.NewRouter(logger)
	api.RegisterRoutes(router, db, sessionService, redisClient, logger, imageStorage, cfg.Clamd.Addr, cfg.API.LoginRateLimitPerHour)

	address := fmt.Sprintf(":%d", cfg.API.Port)
	log.Printf("api listening on %s", address)

	if err := router.Run(address); err != nil {
		log.Fatalf("failed to start api server: %v", err)
	}
}
