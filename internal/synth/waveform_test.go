package synth

import (
	"context"
	"math"
	"testing"
)

func TestDurationSeconds(t *testing.T) {
	tests := []struct {
		text string
		want float64
	}{
		{"", 1.0},
		{"hi", 1.0},
		{"Bonjou", 1.0},
		{"exactly ten..", 1.3},
		{"this sentence is long enough to exceed the floor", 4.8},
	}
	for _, tt := range tests {
		if got := DurationSeconds(tt.text); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("DurationSeconds(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestDurationCountsRunes(t *testing.T) {
	// 20 runes, 23 bytes. Duration must follow the rune count.
	text := "kreyòl ayisyen bèlé!"
	want := 0.1 * 20
	if got := DurationSeconds(text); math.Abs(got-want) > 1e-9 {
		t.Errorf("DurationSeconds(%q) = %v, want %v", text, got, want)
	}
}

func TestWaveformLength(t *testing.T) {
	for _, text := range []string{"a", "Bonjou", "some significantly longer input text for the generator"} {
		samples, err := Waveform(context.Background(), text, 1.0, 1.0, 1.0)
		if err != nil {
			t.Fatalf("Waveform(%q): %v", text, err)
		}
		want := int(math.Round(SampleRate * DurationSeconds(text)))
		if len(samples) != want {
			t.Errorf("len(Waveform(%q)) = %d, want %d", text, len(samples), want)
		}
	}
}

func TestWaveformDeterministic(t *testing.T) {
	a, err := Waveform(context.Background(), "Bonjou tout moun", 1.0, 1.0, 1.0)
	if err != nil {
		t.Fatalf("Waveform: %v", err)
	}
	b, err := Waveform(context.Background(), "Bonjou tout moun", 1.0, 1.0, 1.0)
	if err != nil {
		t.Fatalf("Waveform: %v", err)
	}

	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("sample %d differs: %d vs %d", i, a[i], b[i])
		}
	}
}

func TestWaveformAmplitudeScalesWithVolume(t *testing.T) {
	loud, err := Waveform(context.Background(), "volume check", 1.0, 1.0, 1.0)
	if err != nil {
		t.Fatalf("Waveform: %v", err)
	}
	quiet, err := Waveform(context.Background(), "volume check", 1.0, 1.0, 0.1)
	if err != nil {
		t.Fatalf("Waveform: %v", err)
	}

	if peak(loud) <= peak(quiet) {
		t.Errorf("peak at volume 1.0 (%d) should exceed peak at 0.1 (%d)", peak(loud), peak(quiet))
	}
	// Amplitude cap is 30% of full scale.
	if p := peak(loud); p > 32767*3/10+1 {
		t.Errorf("peak %d exceeds the 30%% amplitude cap", p)
	}
}

func TestWaveformSpeedKeepsLength(t *testing.T) {
	slow, err := Waveform(context.Background(), "tempo", 1.0, 0.5, 1.0)
	if err != nil {
		t.Fatalf("Waveform: %v", err)
	}
	fast, err := Waveform(context.Background(), "tempo", 1.0, 2.0, 1.0)
	if err != nil {
		t.Fatalf("Waveform: %v", err)
	}
	if len(slow) != len(fast) {
		t.Errorf("speed changed buffer length: %d vs %d", len(slow), len(fast))
	}
}

func TestBaseFrequencyRange(t *testing.T) {
	for _, text := range []string{"", "a", "Bonjou", "èàé", "a much longer string"} {
		f := baseFrequency(text)
		if f < 440 || f >= 640 {
			t.Errorf("baseFrequency(%q) = %v, want [440, 640)", text, f)
		}
	}
	if baseFrequency("Bonjou") != baseFrequency("Bonjou") {
		t.Error("baseFrequency must be stable for identical input")
	}
}

func TestWaveformCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Waveform(ctx, "text that would otherwise generate samples", 1.0, 1.0, 1.0)
	if err != context.Canceled {
		t.Errorf("Waveform with cancelled context = %v, want context.Canceled", err)
	}
}

func peak(samples []int16) int16 {
	var max int16
	for _, s := range samples {
		if s > max {
			max = s
		}
		if -s > max {
			max = -s
		}
	}
	return max
}
