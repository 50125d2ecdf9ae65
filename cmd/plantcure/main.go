package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/gommon/log"

	"agriassure/config"
	"agriassure/internal/api/rest"
	"agriassure/internal/container"
	"agriassure/internal/infrastructure/onnx"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

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
	c := loader.Build()

	e, _ := rest.NewServer(rest.Options{
		Service:     "plantcure",
		LogLevel:    cfg.LogLevel,
		CORSOrigins: cfg.CORSOrigins,
	})
	rest.NewPlantCureHandler(c.Cascade).Register(e)

	sig, stopSig := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSig()
	stop, cancel, err := loader.StopContext(sig)
	if err != nil {
		log.Fatalf("failed to watch models: %v", err)
	}
	defer cancel()

	if err := rest.Run(e, ":"+cfg.Port, cfg.ShutdownGrace, stop); err != nil {
		log.Errorf("server error: %v", err)
	}
}
