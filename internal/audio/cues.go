package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/sirupsen/logrus"

	"wisp-server/pkg/logger"
)

const sampleRate = beep.SampleRate(44100)

// Cue - короткий звуковой сигнал игрового события
type Cue uint8

const (
	CueStep Cue = iota
	CueBlocked
	CueTreasure
	CueEncounter
	CueCatch
	CueEscape
	CueWrong
)

// cueNotes - последовательности нот (Гц) и длительность одной ноты
var cueNotes = map[Cue]struct {
	notes []float64
	note  time.Duration
}{
	CueStep:      {[]float64{220}, 20 * time.Millisecond},
	CueBlocked:   {[]float64{110}, 120 * time.Millisecond},
	CueTreasure:  {[]float64{660, 880}, 80 * time.Millisecond},
	CueEncounter: {[]float64{440, 554, 659}, 70 * time.Millisecond},
	CueCatch:     {[]float64{523, 659, 784, 1046}, 70 * time.Millisecond},
	CueEscape:    {[]float64{392, 311}, 120 * time.Millisecond},
	CueWrong:     {[]float64{196, 185}, 100 * time.Millisecond},
}

// Cues проигрывает сигналы через speaker. Без звуковой карты Init вернет
// ошибку, и все Play станут no-op: игра без звука остается игрой.
type Cues struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	log         *logrus.Entry
}

func NewCues() *Cues {
	return &Cues{
		mixer: &beep.Mixer{},
		log:   logger.For("audio"),
	}
}

func (c *Cues) Init() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(c.mixer)
	c.initialized = true
	c.log.Debug("Speaker ready")
	return nil
}

func (c *Cues) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.initialized
}

// Play ставит сигнал в микшер и сразу возвращается
func (c *Cues) Play(cue Cue) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return
	}
	tune, ok := cueNotes[cue]
	if !ok {
		return
	}

	// Микшер читается из горутины speaker
	speaker.Lock()
	c.mixer.Add(Melody(sampleRate, tune.note, tune.notes...))
	speaker.Unlock()
}

func (c *Cues) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return
	}
	speaker.Lock()
	c.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	c.initialized = false
}
