package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
)

type oscillator struct {
	freq     float64
	phase    float64
	position int
	samples  int
	wave     Wave
	rate     beep.SampleRate
}

// Tone returns a streamer playing freq for d.
func Tone(freq float64, d time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:    freq,
		samples: rate.N(d),
		wave:    wave,
		rate:    rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.samples {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			val = 1
			if o.phase >= 0.5 {
				val = -1
			}
		}
		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// fade applies a linear release over the last release samples.
type fade struct {
	streamer beep.Streamer
	position int
	total    int
	release  int
}

func newFade(s beep.Streamer, d, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &fade{streamer: s, total: rate.N(d), release: rate.N(release)}
}

func (f *fade) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = f.streamer.Stream(samples)
	start := f.total - f.release
	for i := 0; i < n; i++ {
		if f.release > 0 && f.position >= start {
			vol := float64(f.total-f.position) / float64(f.release)
			if vol < 0 {
				vol = 0
			}
			samples[i][0] *= vol
			samples[i][1] *= vol
		}
		f.position++
	}
	return n, ok
}

func (f *fade) Err() error { return f.streamer.Err() }

// volume wraps s in a log2 volume effect; zero or less is silent.
func volume(s beep.Streamer, v float64) beep.Streamer {
	if v <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(v)}
}

// note is one step of a jingle.
type note struct {
	freq float64
	dur  time.Duration
}

var (
	// C5 E5 G5 C6
	winNotes = []note{
		{523.25, 120 * time.Millisecond},
		{659.25, 120 * time.Millisecond},
		{783.99, 120 * time.Millisecond},
		{1046.50, 360 * time.Millisecond},
	}
	// G3 E3 C3
	loseNotes = []note{
		{196.00, 200 * time.Millisecond},
		{164.81, 200 * time.Millisecond},
		{130.81, 450 * time.Millisecond},
	}
)

const noteRelease = 40 * time.Millisecond

func jingle(notes []note, wave Wave, rate beep.SampleRate) beep.Streamer {
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		parts = append(parts, newFade(Tone(n.freq, n.dur, wave, rate), n.dur, noteRelease, rate))
	}
	return beep.Seq(parts...)
}

// WinJingle is a rising sine arpeggio.
func WinJingle(rate beep.SampleRate, vol float64) beep.Streamer {
	return volume(jingle(winNotes, WaveSine, rate), vol)
}

// LoseJingle is a falling run of square tones, quieter than the win jingle.
func LoseJingle(rate beep.SampleRate, vol float64) beep.Streamer {
	return volume(jingle(loseNotes, WaveSquare, rate), vol*0.5)
}

// JingleLength is the total duration of a jingle.
func JingleLength(won bool) time.Duration {
	notes := loseNotes
	if won {
		notes = winNotes
	}
	var d time.Duration
	for _, n := range notes {
		d += n.dur
	}
	return d
}
