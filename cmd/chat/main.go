package main

import (
	"context"
	"ecosort/app/client/assist"
	"ecosort/app/config"
	"ecosort/app/service/engine"
	"ecosort/app/service/store"
	"ecosort/app/util/mylog"

	"github.com/gofiber/fiber/v2/log"
	"github.com/joho/godotenv"
	"github.com/samber/do"
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

	do.Provide(di, assist.NewClient)
	do.Provide(di, store.New)
	do.Provide(di, engine.New)

	if err := do.MustInvoke[*engine.Service](di).Run(appCtx); err != nil {
		log.Fatalf("chat session failed: %v", err)
	}
}
