package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// Громкость сигналов, чтобы не оглушать
const amplitude = 0.2

// Tone - синусоида с линейным затуханием длиной dur
func Tone(sr beep.SampleRate, freq float64, dur time.Duration) beep.Streamer {
	total := sr.N(dur)
	pos := 0

	return beep.StreamerFunc(func(samples [][2]float64) (n int, ok bool) {
		if pos >= total {
			return 0, false
		}
		for i := range samples {
			if pos >= total {
				return i, true
			}
			t := float64(pos) / float64(sr)
			env := 1 - float64(pos)/float64(total)
			v := amplitude * env * math.Sin(2*math.Pi*freq*t)
			samples[i][0] = v
			samples[i][1] = v
			pos++
		}
		return len(samples), true
	})
}

// Melody - ноты подряд, каждая длиной note
func Melody(sr beep.SampleRate, note time.Duration, freqs ...float64) beep.Streamer {
	parts := make([]beep.Streamer, 0, len(freqs))
	for _, f := range freqs {
		parts = append(parts, Tone(sr, f, note))
	}
	return beep.Seq(parts...)
}
