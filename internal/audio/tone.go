package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// sweep is a sine tone whose frequency and gain ramp exponentially from
// their start to their end values over its duration.
type sweep struct {
	rate     beep.SampleRate
	total    int
	position int
	phase    float64

	freq0, freq1 float64
	gain0, gain1 float64
}

// newSweep creates a tone of duration d. Frequencies and gains must be > 0.
func newSweep(rate beep.SampleRate, d time.Duration, freq0, freq1, gain0, gain1 float64) *sweep {
	return &sweep{
		rate:  rate,
		total: rate.N(d),
		freq0: freq0,
		freq1: freq1,
		gain0: gain0,
		gain1: gain1,
	}
}

// ramp interpolates exponentially between a and b at fraction t.
func ramp(a, b, t float64) float64 {
	return a * math.Pow(b/a, t)
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.position >= s.total {
			return i, i > 0
		}
		t := float64(s.position) / float64(s.total)

		val := math.Sin(2*math.Pi*s.phase) * ramp(s.gain0, s.gain1, t)
		samples[i][0] = val
		samples[i][1] = val

		s.phase += ramp(s.freq0, s.freq1, t) / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.position++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }
