package engine

import "wisp-server/internal/game"

// Config хранит параметры запуска движка
type Config struct {
	// Game - шаблон конфига партии. Seed - мастер-зерно:
	// сессия N получает Seed + N, поэтому запуск с тем же -seed повторяем.
	Game game.Config

	// ReplayDir - куда писать повторы. Пусто - не писать.
	ReplayDir string

	// AllowCheats разрешает TELEPORT и SPAWN_WISP
	AllowCheats bool
}

// NewConfig создает конфиг по умолчанию (случайный сид)
func NewConfig() Config {
	return Config{
		Game: game.DefaultConfig(),
	}
}
