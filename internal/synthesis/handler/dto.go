package handler

import "github.com/yisselda/text-to-speech-service/internal/voice"

// SynthesizeRequest is the request body for a single synthesis call.
// Omitted speed/pitch/volume fall back to their documented defaults.
type SynthesizeRequest struct {
	Text     string  `json:"text"`
	Language string  `json:"language"`
	Voice    string  `json:"voice"`
	Speed    float64 `json:"speed"`
	Pitch    float64 `json:"pitch"`
	Volume   float64 `json:"volume"`
}

// BatchSynthesizeRequest is the request body for a batch synthesis call.
// One parameter set applies to every text.
type BatchSynthesizeRequest struct {
	Texts    []string `json:"texts"`
	Language string   `json:"language"`
	Voice    string   `json:"voice"`
	Speed    float64  `json:"speed"`
	Pitch    float64  `json:"pitch"`
	Volume   float64  `json:"volume"`
}

// BatchFileInfo is the per-item metadata of a batch response. No audio
// bytes are returned for batch calls; Error is set when the item failed.
type BatchFileInfo struct {
	Index     int     `json:"index"`
	Text      string  `json:"text"`
	AudioSize int     `json:"audio_size"`
	Duration  float64 `json:"duration"`
	Error     string  `json:"error,omitempty"`
}

// BatchSynthesizeResponse is the response body for a batch synthesis call.
type BatchSynthesizeResponse struct {
	BatchID    string          `json:"batch_id"`
	TotalFiles int             `json:"total_files"`
	Files      []BatchFileInfo `json:"files"`
}

// VoicesResponse lists voices.
type VoicesResponse struct {
	Voices []voice.Voice `json:"voices"`
	Total  int           `json:"total"`
}

// LanguageInfo describes one advertised language.
type LanguageInfo struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// LanguagesResponse lists the advertised languages.
type LanguagesResponse struct {
	Languages []LanguageInfo `json:"languages"`
}

// FormatInfo describes one advertised output format.
type FormatInfo struct {
	Format      string `json:"format"`
	ContentType string `json:"content_type"`
	Available   bool   `json:"available"`
}

// FormatsResponse lists the advertised output formats.
type FormatsResponse struct {
	Formats []FormatInfo `json:"formats"`
}

// BannerResponse is the service banner at the root path.
type BannerResponse struct {
	Message string `json:"message"`
	Version string `json:"version"`
}

// HealthResponse is the health check body.
type HealthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
}

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Error      string `json:"error"`
	StatusCode int    `json:"status_code"`
	Timestamp  string `json:"timestamp"`
}
