package audio

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

func TestEncodeWAVHeader(t *testing.T) {
	samples := []int16{0, 1000, -1000, 32767, -32768}
	b, err := EncodeWAV(samples, 22050, 1)
	if err != nil {
		t.Fatalf("EncodeWAV: %v", err)
	}

	if len(b) != 44+len(samples)*2 {
		t.Fatalf("encoded length = %d, want %d", len(b), 44+len(samples)*2)
	}
	if string(b[0:4]) != "RIFF" || string(b[8:12]) != "WAVE" {
		t.Error("missing RIFF/WAVE markers")
	}
	if got := binary.LittleEndian.Uint32(b[4:8]); got != uint32(36+len(samples)*2) {
		t.Errorf("chunk size = %d, want %d", got, 36+len(samples)*2)
	}
	if got := binary.LittleEndian.Uint16(b[20:22]); got != 1 {
		t.Errorf("audio format = %d, want 1 (PCM)", got)
	}
	if got := binary.LittleEndian.Uint32(b[24:28]); got != 22050 {
		t.Errorf("sample rate = %d, want 22050", got)
	}
	if got := binary.LittleEndian.Uint32(b[28:32]); got != 44100 {
		t.Errorf("byte rate = %d, want 44100", got)
	}
	if got := binary.LittleEndian.Uint16(b[32:34]); got != 2 {
		t.Errorf("block align = %d, want 2", got)
	}
	if got := binary.LittleEndian.Uint16(b[34:36]); got != 16 {
		t.Errorf("bits per sample = %d, want 16", got)
	}
}

func TestEncodeWAVRoundTrip(t *testing.T) {
	samples := make([]int16, 2205)
	for i := range samples {
		samples[i] = int16(9000 * math.Sin(2*math.Pi*440*float64(i)/22050))
	}

	b, err := EncodeWAV(samples, 22050, 1)
	if err != nil {
		t.Fatalf("EncodeWAV: %v", err)
	}

	d := wav.NewDecoder(bytes.NewReader(b))
	d.ReadInfo()
	if !d.IsValidFile() {
		t.Fatal("decoder rejected the encoded stream")
	}
	if d.SampleRate != 22050 {
		t.Errorf("decoded sample rate = %d, want 22050", d.SampleRate)
	}
	if d.NumChans != 1 {
		t.Errorf("decoded channels = %d, want 1", d.NumChans)
	}
	if d.BitDepth != 16 {
		t.Errorf("decoded bit depth = %d, want 16", d.BitDepth)
	}
	if d.WavAudioFormat != 1 {
		t.Errorf("decoded audio format = %d, want 1 (PCM)", d.WavAudioFormat)
	}

	buf, err := d.FullPCMBuffer()
	if err != nil {
		t.Fatalf("FullPCMBuffer: %v", err)
	}
	want := goaudio.Format{NumChannels: 1, SampleRate: 22050}
	if *buf.Format != want {
		t.Errorf("decoded format = %+v, want %+v", *buf.Format, want)
	}
	if len(buf.Data) != len(samples) {
		t.Fatalf("decoded %d samples, want %d", len(buf.Data), len(samples))
	}
	for i, s := range samples {
		if int16(buf.Data[i]) != s {
			t.Fatalf("sample %d = %d, want %d", i, buf.Data[i], s)
		}
	}
}

func TestEncodeWAVEmptyPayload(t *testing.T) {
	b, err := EncodeWAV(nil, 22050, 1)
	if err != nil {
		t.Fatalf("EncodeWAV: %v", err)
	}
	if len(b) != 44 {
		t.Errorf("header-only stream length = %d, want 44", len(b))
	}
}

func TestEncodeWAVRejectsBadParams(t *testing.T) {
	if _, err := EncodeWAV([]int16{0}, 0, 1); err == nil {
		t.Error("expected error for zero sample rate")
	}
	if _, err := EncodeWAV([]int16{0}, 22050, 0); err == nil {
		t.Error("expected error for zero channels")
	}
}
