package synth

import (
	"context"
	"hash/fnv"
	"math"
	"unicode/utf8"
)

// SampleRate is the fixed output rate for generated PCM, in Hz.
const SampleRate = 22050

// ctxCheckInterval is how often the generation loop polls for cancellation.
const ctxCheckInterval = 4096

// DurationSeconds returns the clip length for a given text: one tenth of a
// second per character with a one second floor. Speed does not change the
// clip length, only the oscillation rate.
func DurationSeconds(text string) float64 {
	return math.Max(1.0, 0.1*float64(utf8.RuneCountInString(text)))
}

// SampleCount returns the number of PCM samples generated for a text.
func SampleCount(text string) int {
	return int(math.Round(SampleRate * DurationSeconds(text)))
}

// baseFrequency maps a text to a tone in [440, 640) Hz using FNV-1a over
// the UTF-8 bytes. The hash choice is part of the contract: output must be
// reproducible across processes and platforms.
func baseFrequency(text string) float64 {
	h := fnv.New32a()
	h.Write([]byte(text))
	return 440 + float64(h.Sum32()%200)
}

// Waveform renders the deterministic placeholder tone for a text as mono
// 16-bit PCM at SampleRate. Inputs are assumed validated. The only error
// condition is context cancellation.
func Waveform(ctx context.Context, text string, pitch, speed, volume float64) ([]int16, error) {
	n := SampleCount(text)
	freq := baseFrequency(text) * pitch
	amp := 32767 * 0.3 * volume
	step := 2 * math.Pi * freq / SampleRate / speed

	samples := make([]int16, n)
	for i := range samples {
		if i%ctxCheckInterval == 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}
		}
		samples[i] = clampSample(math.Round(amp * math.Sin(step*float64(i))))
	}
	return samples, nil
}

func clampSample(v float64) int16 {
	switch {
	case v > math.MaxInt16:
		return math.MaxInt16
	case v < math.MinInt16:
		return math.MinInt16
	default:
		return int16(v)
	}
}
