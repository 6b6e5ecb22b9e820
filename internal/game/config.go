package game

import (
	"time"

	"wisp-server/internal/domain"
	"wisp-server/internal/skillcheck"
)

// Config - параметры одной игровой сессии
type Config struct {
	Seed     int64  `json:"seed"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Language string `json:"language"`

	// UseSkillCheck - встреча с огоньком запускает проверку навыка.
	// Если false, поимка решается сразу броском по шансу редкости.
	UseSkillCheck bool              `json:"useSkillCheck"`
	SkillCheck    skillcheck.Config `json:"skillCheck"`

	// Сколько раз пересоздавать карту, если на ней негде встать
	MaxRegenerations int `json:"maxRegenerations"`
	// Сколько сообщений журнала хранить
	MaxMessages int `json:"maxMessages"`
}

func DefaultConfig() Config {
	return Config{
		Seed:             time.Now().UnixNano(),
		Width:            domain.DefaultMapWidth,
		Height:           domain.DefaultMapHeight,
		Language:         "salish",
		UseSkillCheck:    true,
		SkillCheck:       skillcheck.DefaultConfig(),
		MaxRegenerations: 5,
		MaxMessages:      50,
	}
}

func (c Config) normalize() Config {
	def := DefaultConfig()
	if c.Width <= 0 {
		c.Width = def.Width
	}
	if c.Height <= 0 {
		c.Height = def.Height
	}
	if c.Language == "" {
		c.Language = def.Language
	}
	if c.MaxRegenerations <= 0 {
		c.MaxRegenerations = def.MaxRegenerations
	}
	if c.MaxMessages <= 0 {
		c.MaxMessages = def.MaxMessages
	}
	return c
}
