package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"wisp-server/internal/audio"
	"wisp-server/internal/game"
	"wisp-server/internal/tui"
	"wisp-server/internal/version"
	"wisp-server/pkg/logger"
)

func main() {
	var (
		seed    int64
		lang    string
		direct  bool
		mute    bool
		logPath string
	)
	flag.Int64Var(&seed, "seed", 0, "Map seed (0 for random)")
	flag.StringVar(&lang, "lang", "salish", "Quiz language (salish, italian)")
	flag.BoolVar(&direct, "direct", false, "Resolve encounters by a dice roll instead of the skill check")
	flag.BoolVar(&mute, "mute", false, "Disable sound")
	flag.StringVar(&logPath, "log", "wisp-terminal.log", "Log file (the screen belongs to the game)")
	flag.Parse()

	if err := run(seed, lang, direct, mute, logPath); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(seed int64, lang string, direct, mute bool, logPath string) error {
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer logFile.Close()
	logger.InitWithOutput(logFile)
	logger.Log.Info(version.String())

	cfg := game.DefaultConfig()
	if seed != 0 {
		cfg.Seed = seed
	}
	cfg.Language = lang
	cfg.UseSkillCheck = !direct

	g, err := game.NewGameSession(cfg, game.FallbackProvider{})
	if err != nil {
		return err
	}

	// Звук не обязателен
	var sound tui.Sound
	if !mute {
		cues := audio.NewCues()
		if err := cues.Init(); err != nil {
			logger.Log.WithError(err).Warn("Audio disabled")
		} else {
			defer cues.Close()
			sound = cues
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logger.Log.WithField("seed", cfg.Seed).Info("Terminal game started")
	err = tui.New(screen, g, sound).Run(ctx)

	st := g.Stats()
	logger.Log.WithFields(logrus.Fields{
		"score": st.Score,
		"maps":  st.MapsPlayed,
		"wisps": st.WispsCaptured,
	}).Info("Terminal game finished")

	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
