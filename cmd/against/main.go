// cmd/against/main.go
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"

	"github.com/isolationgames/against/internal/config"
	"github.com/isolationgames/against/internal/engine"
	"github.com/isolationgames/against/internal/identity"
	"github.com/isolationgames/against/internal/journal"
	"github.com/isolationgames/against/internal/transport"
)

func main() {
	logger := logrus.New()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	} else {
		logger.Warnf("Invalid log level %q, using info", cfg.LogLevel)
	}
	if cfg.GameID == "" {
		logger.Fatal("AGAINST_GAME_ID is required")
	}

	idPath := cfg.IdentityFile
	if idPath == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			logger.Fatalf("Failed to resolve config dir: %v", err)
		}
		idPath = filepath.Join(dir, "against", "player-id")
	}
	playerID, err := identity.Provider{Path: idPath}.PlayerID()
	if err != nil {
		logger.Fatalf("Failed to resolve player id: %v", err)
	}
	logger.Infof("Playing as %s", playerID)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	ch := transport.NewWSChannel(logger, cfg.ServerURL)
	if err := ch.Connect(ctx); err != nil {
		logger.Fatalf("Failed to connect: %v", err)
	}
	defer ch.Close()

	eng := engine.New(logger, ch, cfg.GameID, playerID)
	if cfg.RedisAddr != "" {
		j, err := journal.Connect(cfg.RedisAddr, cfg.RedisDB, cfg.JournalQueue)
		if err != nil {
			logger.Warnf("Event journal disabled: %v", err)
		} else {
			eng.Journal = j
			defer j.Close()
		}
	}
	eng.OnChange = func(s engine.State) {
		logger.WithFields(logrus.Fields{
			"state":       s.Game.State,
			"blackCard":   s.BlackCard,
			"fontSize":    engine.FontSize(s.BlackCard),
			"cardsToPlay": s.CardsToPlay,
			"waiting":     waitingNames(s),
			"czar":        s.Czar,
		}).Debug("State updated")
	}

	err = eng.Run(ctx)
	switch {
	case err == nil, errors.Is(err, context.Canceled):
		logger.Info("Client shut down")
	case errors.Is(err, engine.ErrInvalidGame):
		logger.Errorf("Game %q is unknown or expired; create a new game first", cfg.GameID)
		os.Exit(1)
	default:
		logger.Fatalf("Client exited: %v", err)
	}
}

func waitingNames(s engine.State) string {
	names := make([]string, 0, len(s.Waiting))
	for _, p := range s.Waiting {
		names = append(names, p.Name)
	}
	return strings.Join(names, ",")
}
