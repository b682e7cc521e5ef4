package main

import (
	"context"
	"os"

	"github.com/desertthunder/subdeck/internal/auth"
	"github.com/desertthunder/subdeck/internal/shared"
	"github.com/desertthunder/subdeck/internal/subscriptions"
	"github.com/desertthunder/subdeck/internal/youtube"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	stateDir, err := config.StorageDir()
	if err != nil {
		logger.Fatalf("failed to resolve state directory: %v", err)
	}

	store, err := auth.NewSessionStore(stateDir)
	if err != nil {
		logger.Fatalf("failed to open state directory: %v", err)
	}

	engine := auth.NewEngine(auth.EngineConfig{
		ClientID:     config.Credentials.YouTube.ClientID,
		ClientSecret: config.Credentials.YouTube.ClientSecret,
		RedirectURI:  config.Credentials.YouTube.RedirectURI,
	}, store, logger)

	client := youtube.NewClient("", nil)
	cache := subscriptions.NewCache(stateDir)
	service := subscriptions.NewService(client, cache, logger)

	runner := NewRunner(RunnerOpts{
		Config:  config,
		Store:   store,
		Engine:  engine,
		Client:  client,
		Service: service,
		Logger:  logger,
	})

	app := &cli.Command{
		Name:     "subdeck",
		Usage:    "Manage YouTube subscriptions from the terminal",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}
