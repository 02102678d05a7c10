package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/alvropena/kakeiboo/internal/bot"
	"github.com/alvropena/kakeiboo/internal/config"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	b, err := bot.NewBot(cfg, logger)
	if err != nil {
		log.Fatal(err)
	}

	if err := b.Start(); err != nil {
		log.Fatal(err)
	}
}
