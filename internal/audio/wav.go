// Package audio encodes PCM sample buffers into WAV containers.
package audio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

const bitsPerSample = 16

// WriteWAV writes a standards-compliant 16-bit PCM WAV stream: the
// canonical 44-byte header followed by the little-endian sample payload.
func WriteWAV(w io.Writer, samples []int16, sampleRate, channels int) error {
	if sampleRate <= 0 {
		return fmt.Errorf("invalid sample rate %d", sampleRate)
	}
	if channels <= 0 {
		return fmt.Errorf("invalid channel count %d", channels)
	}

	dataSize := len(samples) * bitsPerSample / 8
	if err := writeHeader(w, dataSize, sampleRate, channels); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, samples)
}

// EncodeWAV renders samples to a single in-memory WAV byte sequence.
func EncodeWAV(samples []int16, sampleRate, channels int) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(44 + len(samples)*2)
	if err := WriteWAV(&buf, samples, sampleRate, channels); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeHeader(w io.Writer, dataSize, sampleRate, channels int) error {
	byteRate := sampleRate * channels * bitsPerSample / 8
	blockAlign := channels * bitsPerSample / 8

	// RIFF header
	if _, err := w.Write([]byte("RIFF")); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(36+dataSize)); err != nil {
		return err
	}
	if _, err := w.Write([]byte("WAVE")); err != nil {
		return err
	}

	// fmt sub-chunk
	if _, err := w.Write([]byte("fmt ")); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(16)); err != nil { // sub-chunk size
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint16(1)); err != nil { // PCM format
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint16(channels)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(sampleRate)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(byteRate)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint16(blockAlign)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint16(bitsPerSample)); err != nil {
		return err
	}

	// data sub-chunk
	if _, err := w.Write([]byte("data")); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, uint32(dataSize))
}
