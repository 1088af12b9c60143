package main

import (
	"flag"
	"log"

	"github.com/lazharichir/missingparts/api"
	"github.com/lazharichir/missingparts/config"
	"github.com/lazharichir/missingparts/lobby"
	"github.com/lazharichir/missingparts/session"
	"github.com/lazharichir/missingparts/store"
	"github.com/lazharichir/missingparts/transport"
)

func main() {
	configPath := flag.String("config", "", "optional YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("missingparts: loading config: %v", err)
	}

	gameStore := store.New()
	sessions := session.NewRegistry()
	l := lobby.New(cfg.Rand(), lobby.Config{
		MaxGroupSize:    cfg.MaxGroupSize,
		OpeningHandSize: cfg.OpeningHandSize,
	}, gameStore, sessions)

	a := api.New(l, gameStore, sessions)
	srv := transport.NewServer(a)

	go srv.Hub().Start()

	log.Printf("missingparts: starting Missing Parts server")
	if err := srv.ListenAndServe(cfg.ListenAddr); err != nil {
		log.Fatalf("missingparts: server failed: %v", err)
	}
}
