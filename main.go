package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"

	"StickerCut/internal/config"
	"StickerCut/internal/logging"
	"StickerCut/internal/studio"
	"StickerCut/internal/ui"
)

const (
	defaultConfigFile = "stickercut.toml"
	configEnv         = "STICKERCUT_CONFIG"
)

func main() {
	cfg := loadConfig()
	logging.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logging.ParseLevel(cfg.LogLevel),
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var imagePath string
	if len(os.Args) > 1 {
		imagePath = os.Args[1]
	}
	ui.RunApp(ctx, studio.New(ctx, cfg), imagePath)
}

// loadConfig reads $STICKERCUT_CONFIG, or stickercut.toml in the working
// directory when the variable is unset. A missing default file is not an
// error.
func loadConfig() config.Config {
	path, explicit := os.LookupEnv(configEnv)
	if !explicit {
		path = defaultConfigFile
	}
	cfg, err := config.Load(path)
	if err == nil {
		return cfg
	}
	if !explicit && errors.Is(err, os.ErrNotExist) {
		return config.Default()
	}
	slog.Error("config", "err", err)
	os.Exit(1)
	return cfg
}
