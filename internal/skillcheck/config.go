package skillcheck

import (
	"time"

	"wisp-server/internal/domain"
)

// Шкала маркера: 0..100, цель - центр
const (
	ScaleMin    = 0.0
	ScaleMax    = 100.0
	ScaleCenter = 50.0
)

// Config - параметры мини-игры поимки
type Config struct {
	BaseInterval     time.Duration `json:"baseInterval"` // Период тика для самого быстрого огонька
	DisplayDelay     time.Duration `json:"displayDelay"` // Пауза между концом игры и финальным отчетом
	MaxBounces       int           `json:"maxBounces"`
	SuccessThreshold float64       `json:"successThreshold"` // Допуск от центра в единицах шкалы
}

func DefaultConfig() Config {
	return Config{
		BaseInterval:     10 * time.Millisecond,
		DisplayDelay:     1500 * time.Millisecond,
		MaxBounces:       12,
		SuccessThreshold: 15,
	}
}

// Period - период тика маркера: BaseInterval * скорость редкости.
// У редкого огонька скорость 1, поэтому маркер бежит быстрее всего.
func (c Config) Period(r domain.Rarity) time.Duration {
	return c.BaseInterval * time.Duration(r.Speed())
}

// normalize подставляет значения по умолчанию вместо нулевых
func (c Config) normalize() Config {
	def := DefaultConfig()
	if c.BaseInterval <= 0 {
		c.BaseInterval = def.BaseInterval
	}
	if c.DisplayDelay < 0 {
		c.DisplayDelay = 0
	}
	if c.MaxBounces <= 0 {
		c.MaxBounces = def.MaxBounces
	}
	if c.SuccessThreshold <= 0 {
		c.SuccessThreshold = def.SuccessThreshold
	}
	return c
}
