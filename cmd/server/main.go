package main

import (
	"context"
	"flag"
	"log"

	"github.com/aslanbek/shanyrak/internal/server"
	"github.com/aslanbek/shanyrak/internal/server/config"
)

func main() {

	configPath := flag.String("config", "config.yaml", "path to the config file")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	app, err := server.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("init error: %v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}
}
