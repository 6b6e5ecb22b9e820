package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"wisp-server/internal/agent"
	"wisp-server/internal/engine"
	"wisp-server/internal/game"
	"wisp-server/internal/infrastructure/storage"
	"wisp-server/internal/server"
	"wisp-server/internal/version"
	"wisp-server/pkg/logger"
)

func init() {
	logger.Init()
}

func main() {
	// 1. Парсинг конфигурации
	var (
		seed       int64
		width      int
		height     int
		language   string
		direct     bool
		replayPath string
		replayDir  string
		botSteps   int
		cheats     bool
	)
	// По умолчанию сид 0 (значит сгенерировать случайно)
	flag.Int64Var(&seed, "seed", 0, "Master seed (0 for random)")
	flag.IntVar(&width, "width", 0, "Map width (0 for default)")
	flag.IntVar(&height, "height", 0, "Map height (0 for default)")
	flag.StringVar(&language, "lang", "salish", "Quiz language (salish, italian)")
	flag.BoolVar(&direct, "direct", false, "Resolve encounters by a dice roll instead of the skill check")
	flag.StringVar(&replayPath, "replay", "", "Path to .wqrp replay file to simulate")
	flag.StringVar(&replayDir, "replay-dir", "", "Directory to save replays of closed sessions")
	flag.IntVar(&botSteps, "bot", 0, "Play N bot steps headless and exit")
	flag.BoolVar(&cheats, "cheats", false, "Allow TELEPORT and SPAWN_WISP commands")
	flag.Parse()

	logger.Log.Info("Starting wisp server...")
	logger.Log.Info(version.String())

	provider := game.FallbackProvider{}

	// РЕЖИМ РЕПЛЕЯ
	if replayPath != "" {
		logger.Log.Info("Mode: Replay Simulation")
		if err := runReplay(replayPath, provider); err != nil {
			logger.Log.WithError(err).Fatal("Replay failed")
		}
		return
	}

	// Формируем конфиг
	cfg := engine.NewConfig()
	if seed != 0 {
		cfg.Game.Seed = seed
		logger.Log.Infof("Using explicit Master Seed: %d", seed)
	} else {
		logger.Log.Infof("Using random Master Seed: %d", cfg.Game.Seed)
	}
	cfg.Game.Width = width
	cfg.Game.Height = height
	cfg.Game.Language = language
	cfg.Game.UseSkillCheck = !direct
	cfg.ReplayDir = replayDir
	cfg.AllowCheats = cheats

	// РЕЖИМ БОТА
	if botSteps > 0 {
		logger.Log.Info("Mode: Headless Bot")
		if err := runBot(cfg.Game, provider, botSteps); err != nil {
			logger.Log.WithError(err).Fatal("Bot failed")
		}
		return
	}

	port := os.Getenv("WISP_PORT")
	if port == "" {
		port = "8080"
	}

	// 2. Инициализация ядра с конфигом
	gameService, err := engine.NewService(cfg, provider)
	if err != nil {
		logger.Log.WithError(err).Fatal("Engine init error")
	}

	// Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// 3. Запуск сервера
	srv := server.New(gameService, port)

	go func() {
		if err := srv.Run(); err != nil {
			logger.Log.WithError(err).Fatal("Server start error")
		}
	}()

	<-stop
	logger.Log.Info("Shutting down...")

	// Закрываем партии, повторы пишутся в replay-dir
	gameService.CloseAll()

	logger.Log.Info("Done.")
}

func runReplay(path string, provider game.WordProvider) error {
	rs, err := storage.LoadFile(path)
	if err != nil {
		return err
	}
	logger.Log.WithFields(logrus.Fields{
		"seed":     rs.Seed,
		"actions":  len(rs.Actions),
		"recorded": time.Unix(rs.Timestamp, 0).Format(time.RFC3339),
	}).Info("Replay loaded")

	g, err := engine.PlayReplay(rs, provider)
	if err != nil {
		return err
	}

	view := g.Snapshot()
	fmt.Print(view.ASCII())
	printStats(view.Stats)
	return nil
}

func runBot(cfg game.Config, provider game.WordProvider, steps int) error {
	g, err := game.NewGameSession(cfg, provider)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	rep, err := agent.NewBot(g).Run(ctx, steps)
	if err != nil {
		return err
	}

	fmt.Print(g.Snapshot().ASCII())
	fmt.Printf("moves=%d answers=%d skill_checks=%d new_maps=%d\n",
		rep.Moves, rep.Answers, rep.SkillChecks, rep.NewMaps)
	printStats(rep.Stats)
	return nil
}

func printStats(st game.Stats) {
	fmt.Printf("score=%d treasures=%d/%d wisps=%d maps=%d tick=%d won=%t\n",
		st.Score, st.TreasuresCollected, st.TreasuresTotal,
		st.WispsCaptured, st.MapsPlayed, st.Tick, st.Won)
}
