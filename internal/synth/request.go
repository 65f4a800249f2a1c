package synth

import (
	"fmt"
	"unicode/utf8"

	"github.com/yisselda/text-to-speech-service/internal/voice"
)

// Parameter bounds for a synthesis request. All bounds are inclusive.
const (
	MinSpeed  = 0.5
	MaxSpeed  = 2.0
	MinPitch  = 0.5
	MaxPitch  = 2.0
	MinVolume = 0.1
	MaxVolume = 1.0
)

// Request carries everything needed to synthesize one clip.
type Request struct {
	Text     string
	Language string
	Voice    string
	Speed    float64
	Pitch    float64
	Volume   float64
}

// ValidationError reports why a request was rejected. Field names the
// offending input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func invalidParam(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// Validate checks a request against the registry and the parameter bounds.
// The first violation found is reported: voice, then speed, pitch, volume,
// then the text itself. maxTextLen <= 0 disables the length bound.
func Validate(reg *voice.Registry, req Request, maxTextLen int) error {
	if err := ValidateParams(reg, req); err != nil {
		return err
	}
	return ValidateText(req.Text, maxTextLen)
}

// ValidateParams checks the voice selection and the numeric bounds, leaving
// the text unchecked. Batch requests share one parameter set across texts,
// so this runs once per batch.
func ValidateParams(reg *voice.Registry, req Request) error {
	if !reg.Has(req.Language, req.Voice) {
		return invalidParam("voice",
			"voice %q is not available for language %q", req.Voice, req.Language)
	}
	if req.Speed < MinSpeed || req.Speed > MaxSpeed {
		return invalidParam("speed",
			"speed must be between %.1f and %.1f", MinSpeed, MaxSpeed)
	}
	if req.Pitch < MinPitch || req.Pitch > MaxPitch {
		return invalidParam("pitch",
			"pitch must be between %.1f and %.1f", MinPitch, MaxPitch)
	}
	if req.Volume < MinVolume || req.Volume > MaxVolume {
		return invalidParam("volume",
			"volume must be between %.1f and %.1f", MinVolume, MaxVolume)
	}
	return nil
}

// ValidateText checks that a text is present and within the length bound.
// maxTextLen <= 0 disables the bound.
func ValidateText(text string, maxTextLen int) error {
	if text == "" {
		return invalidParam("text", "text must not be empty")
	}
	if maxTextLen > 0 && utf8.RuneCountInString(text) > maxTextLen {
		return invalidParam("text",
			"text exceeds the maximum length of %d characters", maxTextLen)
	}
	return nil
}
