package main

import (
	"context"
	"ecosort/app/client/gemini"
	"ecosort/app/config"
	"ecosort/app/service/proxy"
	"ecosort/app/util/mylog"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"github.com/samber/do"
	"golang.org/x/sync/errgroup"
)

func main() {
	di := do.New()
	defer di.Shutdown()

	mylog.Preinit()

	_ = godotenv.Load()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	do.ProvideValue(di, cfg)

	if err = mylog.Init(cfg); err != nil {
		log.Fatalf("logging init failed: %v", err)
	}

	if cfg.Server.APIKey == "" {
		log.Fatalf("%s is not set", config.APIKeyEnv)
	}

	do.Provide(di, gemini.NewUpstream)
	do.Provide(di, proxy.New)

	app := fiber.New()

	corsConfig := cors.Config{}
	if cfg.Server.CORSOrigins != "" {
		corsConfig.AllowOrigins = cfg.Server.CORSOrigins
	}
	app.Use(cors.New(corsConfig))

	do.MustInvoke[*proxy.Service](di).RegisterRoutes(app)

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt)
		<-sigint

		log.Info("Shutting down...")

		cancel()
	}()

	slog.Info("Relay started", "listen", cfg.Server.Listen)

	var group errgroup.Group

	group.Go(func() error {
		return app.Listen(cfg.Server.Listen)
	})

	group.Go(func() error {
		<-appCtx.Done()
		return app.ShutdownWithTimeout(10 * time.Second)
	})

	if err := group.Wait(); err != nil {
		slog.Error("Relay stopped with error", "error", err)
	}
}
