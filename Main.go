package main

import (
	"log"

	"github.com/redis/go-redis/v9"

	"sweetshop/config"
	"sweetshop/gateway"
	"sweetshop/gdrive"
	"sweetshop/mailer"
	"sweetshop/routers"
	"sweetshop/sheetdb"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("could not load configuration: %v", err)
	}

	deps := routers.Deps{
		Store:      sheetdb.New(cfg.Sheets),
		Mailer:     mailer.New(cfg.Email),
		Uploader:   gdrive.New(cfg.Sheets),
		JWTSecret:  cfg.JWTSecret,
		UploadsDir: cfg.UploadsDir,
	}

	if cfg.HasRazorpay() {
		deps.Gateway = gateway.New(cfg.Razorpay)
	} else {
		log.Println("Razorpay credentials missing; payment endpoints disabled")
	}

	if cfg.Redis.Addr != "" {
		deps.Redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.Database,
		})
		defer deps.Redis.Close()
	} else {
		log.Println("Redis not configured; response caching disabled")
	}

	router := routers.SetupRouters(deps)
	if err := router.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
