package main

import (
	"context"
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"github.com/pitabwire/frame"
	"github.com/pitabwire/frame/config"
	"github.com/pitabwire/frame/workerpool"

	ttsconfig "github.com/yisselda/text-to-speech-service/config"
	"github.com/yisselda/text-to-speech-service/internal/httputil"
	"github.com/yisselda/text-to-speech-service/internal/synthesis/handler"
	"github.com/yisselda/text-to-speech-service/internal/telemetry"
	"github.com/yisselda/text-to-speech-service/internal/voice"
	"github.com/yisselda/text-to-speech-service/pkg/events"
)

func main() {
	// Optional .env for local development; absence is not an error.
	_ = godotenv.Load()

	ctx := context.Background()

	cfg, err := config.LoadWithOIDC[ttsconfig.ServiceConfig](ctx)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	eventRef := cfg.GetEventsQueueName()
	eventURL := cfg.GetEventsQueueURL()

	ctx, srv := frame.NewService(
		frame.WithConfig(&cfg),
		frame.WithName("ttsd"),
		frame.WithRegisterPublisher(eventRef, eventURL),
		frame.WithWorkerPoolOptions(
			workerpool.WithPoolCount(cfg.WorkerPoolCount),
			workerpool.WithSinglePoolCapacity(cfg.WorkerPoolCapacity),
		),
	)
	defer srv.Stop(ctx)

	pool, err := srv.WorkManager().GetPool()
	if err != nil {
		log.Fatalf("getting worker pool: %v", err)
	}

	pub := events.NewPublisher(srv.QueueManager(), "system", eventRef)

	// --- Voice catalogue ---
	voices := voice.NewLoader(cfg.VoiceCataloguePath)
	if cfg.VoiceCataloguePath != "" {
		if err := voices.Load(); err != nil {
			log.Printf("warning: loading voice catalogue: %v", err)
		}
		voices.SetOnReload(func(ctx context.Context, count int) {
			_ = pub.Emit(ctx, events.CatalogueReloaded, events.CatalogueReloadedData{
				Path:   cfg.VoiceCataloguePath,
				Voices: count,
			})
		})
		if cfg.WatchVoiceCatalogue {
			// Use the service-level ctx so the watcher lives for the
			// process lifetime, not a request's.
			if err := pool.Submit(ctx, func() {
				if err := voices.WatchAndReload(ctx); err != nil {
					log.Printf("warning: catalogue watcher stopped: %v", err)
				}
			}); err != nil {
				log.Printf("warning: starting catalogue watcher: %v", err)
			}
		}
	}

	// --- Telemetry ---
	metricsHandler, shutdownMetrics, err := telemetry.Setup(ctx, "ttsd")
	if err != nil {
		log.Fatalf("setting up metrics: %v", err)
	}
	defer func() { _ = shutdownMetrics(ctx) }()

	// --- HTTP Mux ---
	mux := http.NewServeMux()

	synthHdlr := handler.New(voices, pool, pub, handler.Options{
		DefaultLanguage: cfg.DefaultLanguage,
		DefaultVoice:    cfg.DefaultVoice,
		MaxTextLength:   cfg.MaxTextLength,
		MaxBatchTexts:   cfg.MaxBatchTexts,
		SynthTimeout:    cfg.SynthTimeout(),
	})
	synthHdlr.RegisterRoutes(mux)

	mux.Handle("GET /metrics", metricsHandler)

	srv.Init(ctx, frame.WithHTTPHandler(httputil.H2CHandler(mux)))

	if err := srv.Run(ctx, ""); err != nil {
		log.Fatalf("service exited: %v", err)
	}
}
