// Package handler exposes the synthesis pipeline as a REST API.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/pitabwire/frame/workerpool"
	"github.com/pitabwire/util"
	"github.com/rs/xid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/yisselda/text-to-speech-service/internal/audio"
	"github.com/yisselda/text-to-speech-service/internal/synth"
	"github.com/yisselda/text-to-speech-service/internal/voice"
	"github.com/yisselda/text-to-speech-service/pkg/events"
)

const maxRequestBodySize = 1 << 20 // 1 MiB

const (
	serviceName    = "text-to-speech-service"
	serviceVersion = "0.1.0"
)

// previewText is spoken when a preview call carries no text.
const previewText = "Bonjou! Sa a se yon tès vwa."

// Fixed parameters for voice previews.
const (
	previewSpeed  = 1.0
	previewPitch  = 1.0
	previewVolume = 0.8
)

// supportedLanguages is the advertised language list. It intentionally
// includes es, which has no voices in the catalogue.
var supportedLanguages = []LanguageInfo{
	{Code: "ht", Name: "Kreyòl Ayisyen"},
	{Code: "en", Name: "English"},
	{Code: "fr", Name: "Français"},
	{Code: "es", Name: "Español"},
}

// advertisedFormats lists container formats. Only WAV is produced.
var advertisedFormats = []FormatInfo{
	{Format: "wav", ContentType: "audio/wav", Available: true},
	{Format: "mp3", ContentType: "audio/mpeg", Available: false},
	{Format: "ogg", ContentType: "audio/ogg", Available: false},
}

// Options tunes the handler. Zero values fall back to service defaults.
type Options struct {
	DefaultLanguage string
	DefaultVoice    string
	MaxTextLength   int
	MaxBatchTexts   int
	SynthTimeout    time.Duration
}

// Handler serves the synthesis REST API.
type Handler struct {
	voices *voice.Loader
	pool   workerpool.WorkerPool
	pub    *events.Publisher
	opts   Options

	requests     metric.Int64Counter
	audioSeconds metric.Float64Histogram
}

// New creates a handler. pool and pub may be nil; generation then runs on
// a plain goroutine and no events are emitted.
func New(voices *voice.Loader, pool workerpool.WorkerPool, pub *events.Publisher, opts Options) *Handler {
	if opts.DefaultLanguage == "" {
		opts.DefaultLanguage = "ht"
	}
	if opts.DefaultVoice == "" {
		opts.DefaultVoice = "default"
	}
	if opts.MaxBatchTexts <= 0 {
		opts.MaxBatchTexts = 10
	}
	if opts.SynthTimeout <= 0 {
		opts.SynthTimeout = 30 * time.Second
	}

	h := &Handler{
		voices: voices,
		pool:   pool,
		pub:    pub,
		opts:   opts,
	}

	meter := otel.Meter("github.com/yisselda/text-to-speech-service/internal/synthesis")
	var err error
	h.requests, err = meter.Int64Counter("tts_requests_total",
		metric.WithDescription("Synthesis requests by endpoint and outcome."))
	if err != nil {
		slog.Warn("failed to create request counter", slog.String("error", err.Error()))
	}
	h.audioSeconds, err = meter.Float64Histogram("tts_audio_seconds",
		metric.WithDescription("Seconds of audio produced per request."))
	if err != nil {
		slog.Warn("failed to create audio histogram", slog.String("error", err.Error()))
	}

	return h
}

// RegisterRoutes registers all synthesis API routes on the given mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.Root)
	mux.HandleFunc("GET /health", h.Health)
	mux.HandleFunc("POST /api/v1/synthesize", h.Synthesize)
	mux.HandleFunc("POST /api/v1/synthesize/batch", h.SynthesizeBatch)
	mux.HandleFunc("GET /api/v1/voices", h.ListVoices)
	mux.HandleFunc("GET /api/v1/voices/{language}", h.ListLanguageVoices)
	mux.HandleFunc("GET /api/v1/voices/{language}/{voice_id}", h.GetVoice)
	mux.HandleFunc("GET /api/v1/languages", h.Languages)
	mux.HandleFunc("POST /api/v1/preview", h.Preview)
	mux.HandleFunc("GET /api/v1/formats", h.Formats)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{
		Error:      msg,
		StatusCode: status,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	})
}

// Root handles GET /
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, BannerResponse{
		Message: "Text to Speech Service",
		Version: serviceVersion,
	})
}

// Health handles GET /health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Service:   serviceName,
		Version:   serviceVersion,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// Synthesize handles POST /api/v1/synthesize
func (h *Handler) Synthesize(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var body SynthesizeRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req := h.synthRequest(body)
	reg := h.voices.Current()
	if err := synth.Validate(reg, req, h.opts.MaxTextLength); err != nil {
		h.count(r.Context(), "synthesize", "rejected", req.Language)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.opts.SynthTimeout)
	defer cancel()

	wavBytes, err := h.render(ctx, req)
	if err != nil {
		h.count(r.Context(), "synthesize", "error", req.Language)
		util.Log(ctx).WithError(err).Error("synthesis failed")
		h.emit(ctx, events.SynthesisFailed, events.SynthesisFailedData{
			Language: req.Language,
			Voice:    req.Voice,
			Reason:   err.Error(),
		})
		writeError(w, http.StatusInternalServerError, "synthesis failed")
		return
	}

	h.writeAudio(w, wavBytes, req.Language, req.Voice)

	h.count(r.Context(), "synthesize", "ok", req.Language)
	h.recordAudio(r.Context(), req)
	h.emit(ctx, events.SynthesisCompleted, events.SynthesisCompletedData{
		Language:    req.Language,
		Voice:       req.Voice,
		TextLength:  len(req.Text),
		AudioBytes:  len(wavBytes),
		DurationSec: synth.DurationSeconds(req.Text),
	})
}

// SynthesizeBatch handles POST /api/v1/synthesize/batch
//
// Batch calls return per-item metadata only; audio bytes are never
// persisted or returned. A text that fails validation or generation
// yields an error entry for its index without aborting the rest.
func (h *Handler) SynthesizeBatch(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var body BatchSynthesizeRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if len(body.Texts) == 0 {
		writeError(w, http.StatusBadRequest, "texts must not be empty")
		return
	}
	if len(body.Texts) > h.opts.MaxBatchTexts {
		writeError(w, http.StatusBadRequest,
			fmt.Sprintf("Maximum %d texts per batch", h.opts.MaxBatchTexts))
		return
	}

	base := h.synthRequest(SynthesizeRequest{
		Language: body.Language,
		Voice:    body.Voice,
		Speed:    body.Speed,
		Pitch:    body.Pitch,
		Volume:   body.Volume,
	})
	reg := h.voices.Current()
	if err := synth.ValidateParams(reg, base); err != nil {
		h.count(r.Context(), "batch", "rejected", base.Language)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.opts.SynthTimeout)
	defer cancel()

	files := make([]BatchFileInfo, 0, len(body.Texts))
	failed := 0
	for i, text := range body.Texts {
		info := BatchFileInfo{Index: i, Text: text}

		req := base
		req.Text = text
		if err := synth.ValidateText(text, h.opts.MaxTextLength); err != nil {
			info.Error = err.Error()
			failed++
			files = append(files, info)
			continue
		}

		wavBytes, err := h.render(ctx, req)
		if err != nil {
			if ctx.Err() != nil {
				h.count(r.Context(), "batch", "error", base.Language)
				util.Log(ctx).WithError(err).Error("batch synthesis timed out")
				writeError(w, http.StatusInternalServerError, "batch synthesis failed")
				return
			}
			info.Error = "synthesis failed"
			failed++
			files = append(files, info)
			continue
		}

		info.AudioSize = len(wavBytes)
		info.Duration = approxDuration(len(wavBytes))
		files = append(files, info)
	}

	batchID := xid.New().String()
	h.count(r.Context(), "batch", "ok", base.Language)
	h.emit(ctx, events.BatchCompleted, events.BatchCompletedData{
		BatchID:    batchID,
		TotalFiles: len(files),
		Failed:     failed,
	})

	writeJSON(w, http.StatusOK, BatchSynthesizeResponse{
		BatchID:    batchID,
		TotalFiles: len(files),
		Files:      files,
	})
}

// ListVoices handles GET /api/v1/voices
func (h *Handler) ListVoices(w http.ResponseWriter, r *http.Request) {
	voices := h.voices.Current().List()
	writeJSON(w, http.StatusOK, VoicesResponse{Voices: voices, Total: len(voices)})
}

// ListLanguageVoices handles GET /api/v1/voices/{language}
func (h *Handler) ListLanguageVoices(w http.ResponseWriter, r *http.Request) {
	language := r.PathValue("language")
	voices, err := h.voices.Current().ByLanguage(language)
	if err != nil {
		writeError(w, http.StatusNotFound,
			fmt.Sprintf("no voices available for language %q", language))
		return
	}
	writeJSON(w, http.StatusOK, VoicesResponse{Voices: voices, Total: len(voices)})
}

// GetVoice handles GET /api/v1/voices/{language}/{voice_id}
func (h *Handler) GetVoice(w http.ResponseWriter, r *http.Request) {
	language := r.PathValue("language")
	voiceID := r.PathValue("voice_id")
	v, err := h.voices.Current().Find(language, voiceID)
	if err != nil {
		if errors.Is(err, voice.ErrNotFound) {
			writeError(w, http.StatusNotFound,
				fmt.Sprintf("voice %q not found for language %q", voiceID, language))
			return
		}
		writeError(w, http.StatusInternalServerError, "voice lookup failed")
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// Languages handles GET /api/v1/languages
func (h *Handler) Languages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, LanguagesResponse{Languages: supportedLanguages})
}

// Formats handles GET /api/v1/formats
func (h *Handler) Formats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, FormatsResponse{Formats: advertisedFormats})
}

// Preview handles POST /api/v1/preview
func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	req := synth.Request{
		Text:     q.Get("text"),
		Language: q.Get("language"),
		Voice:    q.Get("voice_id"),
		Speed:    previewSpeed,
		Pitch:    previewPitch,
		Volume:   previewVolume,
	}
	if req.Language == "" {
		req.Language = h.opts.DefaultLanguage
	}
	if req.Voice == "" {
		req.Voice = h.opts.DefaultVoice
	}
	if req.Text == "" {
		req.Text = previewText
	}

	reg := h.voices.Current()
	if err := synth.Validate(reg, req, h.opts.MaxTextLength); err != nil {
		h.count(r.Context(), "preview", "rejected", req.Language)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.opts.SynthTimeout)
	defer cancel()

	wavBytes, err := h.render(ctx, req)
	if err != nil {
		h.count(r.Context(), "preview", "error", req.Language)
		util.Log(ctx).WithError(err).Error("preview synthesis failed")
		writeError(w, http.StatusInternalServerError, "synthesis failed")
		return
	}

	h.writeAudio(w, wavBytes, req.Language, req.Voice)
	h.count(r.Context(), "preview", "ok", req.Language)
	h.emit(ctx, events.PreviewServed, events.PreviewServedData{
		Language: req.Language,
		Voice:    req.Voice,
	})
}

// synthRequest applies the documented defaults to an inbound body.
func (h *Handler) synthRequest(body SynthesizeRequest) synth.Request {
	req := synth.Request{
		Text:     body.Text,
		Language: body.Language,
		Voice:    body.Voice,
		Speed:    body.Speed,
		Pitch:    body.Pitch,
		Volume:   body.Volume,
	}
	if req.Language == "" {
		req.Language = h.opts.DefaultLanguage
	}
	if req.Voice == "" {
		req.Voice = h.opts.DefaultVoice
	}
	if req.Speed == 0 {
		req.Speed = 1.0
	}
	if req.Pitch == 0 {
		req.Pitch = 1.0
	}
	if req.Volume == 0 {
		req.Volume = 1.0
	}
	return req
}

// render generates the waveform and encodes it. Generation is CPU-bound
// and runs on the worker pool when one is configured.
func (h *Handler) render(ctx context.Context, req synth.Request) ([]byte, error) {
	samples, err := h.generate(ctx, req)
	if err != nil {
		return nil, err
	}
	return audio.EncodeWAV(samples, synth.SampleRate, 1)
}

func (h *Handler) generate(ctx context.Context, req synth.Request) ([]int16, error) {
	if h.pool == nil {
		return synth.Waveform(ctx, req.Text, req.Pitch, req.Speed, req.Volume)
	}

	type result struct {
		samples []int16
		err     error
	}
	resCh := make(chan result, 1)
	task := func() {
		samples, err := synth.Waveform(ctx, req.Text, req.Pitch, req.Speed, req.Volume)
		resCh <- result{samples: samples, err: err}
	}
	if err := h.pool.Submit(ctx, task); err != nil {
		// Pool saturated; generate inline rather than failing the request.
		slog.WarnContext(ctx, "worker pool full, generating inline")
		return synth.Waveform(ctx, req.Text, req.Pitch, req.Speed, req.Volume)
	}

	select {
	case res := <-resCh:
		return res.samples, res.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// writeAudio streams the WAV body with the descriptive metadata headers.
func (h *Handler) writeAudio(w http.ResponseWriter, wavBytes []byte, language, voiceID string) {
	filename := fmt.Sprintf("synthesis_%s.wav", time.Now().UTC().Format("20060102150405"))

	w.Header().Set("Content-Type", "audio/wav")
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	// Byte-rate heuristic, not the true clip duration. Existing callers
	// parse this exact value.
	w.Header().Set("X-Duration", strconv.FormatFloat(approxDuration(len(wavBytes)), 'f', 2, 64))
	w.Header().Set("X-Language", language)
	w.Header().Set("X-Voice", voiceID)
	w.Header().Set("Content-Length", strconv.Itoa(len(wavBytes)))
	w.WriteHeader(http.StatusOK)
	w.Write(wavBytes)
}

// approxDuration estimates clip seconds from the WAV byte length.
func approxDuration(wavLen int) float64 {
	return float64(wavLen) / 44100
}

func (h *Handler) count(ctx context.Context, endpoint, outcome, language string) {
	if h.requests == nil {
		return
	}
	h.requests.Add(ctx, 1, metric.WithAttributes(
		attribute.String("endpoint", endpoint),
		attribute.String("outcome", outcome),
		attribute.String("language", language),
	))
}

func (h *Handler) recordAudio(ctx context.Context, req synth.Request) {
	if h.audioSeconds == nil {
		return
	}
	h.audioSeconds.Record(ctx, synth.DurationSeconds(req.Text), metric.WithAttributes(
		attribute.String("language", req.Language),
	))
}

func (h *Handler) emit(ctx context.Context, eventType events.EventType, data any) {
	if h.pub == nil {
		return
	}
	if err := h.pub.Emit(ctx, eventType, data); err != nil {
		slog.WarnContext(ctx, "event emit failed",
			slog.String("event_type", string(eventType)), slog.String("error", err.Error()))
	}
}
