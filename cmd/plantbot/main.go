package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/gommon/log"

	"agriassure/config"
	"agriassure/internal/api/telegram"
	"agriassure/internal/container"
	"agriassure/internal/infrastructure/onnx"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if cfg.TelegramToken == "" {
		log.Fatal("TELEGRAM_TOKEN is required")
	}
	setLevel(cfg.LogLevel)

	rt, err := onnx.NewRuntime(cfg.OnnxLibrary)
	if err != nil {
		log.Fatalf("failed to start onnxruntime: %v", err)
	}
	defer rt.Close()

	loader := container.NewLoader(cfg, rt)
	defer loader.Close()
	if err := loader.PlantTriage(); err != nil {
		log.Fatalf("failed to load models: %v", err)
	}
	loader.Sessions()
	c := loader.Build()

	bot, err := telegram.NewBot(cfg.TelegramToken, c.Sessions)
	if err != nil {
		log.Fatalf("failed to create bot: %v", err)
	}

	sig, stopSig := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSig()
	ctx, cancel, err := loader.StopContext(sig)
	if err != nil {
		log.Fatalf("failed to watch models: %v", err)
	}
	defer cancel()

	log.Info("bot is running")
	if err := bot.Run(ctx); err != nil {
		log.Errorf("bot error: %v", err)
	}
	log.Infof("bot stopped: %v", context.Cause(ctx))
}

func setLevel(level string) {
	switch level {
	case "debug":
		log.SetLevel(log.DEBUG)
	case "warn":
		log.SetLevel(log.WARN)
	case "error":
		log.SetLevel(log.ERROR)
	case "off":
		log.SetLevel(log.OFF)
	default:
		log.SetLevel(log.INFO)
	}
}
