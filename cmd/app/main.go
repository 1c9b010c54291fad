package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"ai-video-pipeline/internal/config"
	"ai-video-pipeline/internal/domain/ports/adapter"
	"ai-video-pipeline/internal/domain/ports/repository"
	"ai-video-pipeline/internal/infra/adapters/analysis"
	"ai-video-pipeline/internal/infra/adapters/assembly"
	"ai-video-pipeline/internal/infra/adapters/captions"
	"ai-video-pipeline/internal/infra/adapters/music"
	"ai-video-pipeline/internal/infra/adapters/notify"
	"ai-video-pipeline/internal/infra/adapters/publish"
	"ai-video-pipeline/internal/infra/adapters/speech"
	"ai-video-pipeline/internal/infra/adapters/thumbnail"
	"ai-video-pipeline/internal/infra/adapters/visuals"
	"ai-video-pipeline/internal/infra/api"
	"ai-video-pipeline/internal/infra/db/memory"
	pg "ai-video-pipeline/internal/infra/db/postgres"
	"ai-video-pipeline/internal/infra/logging"
	"ai-video-pipeline/internal/infra/metrics"
	red "ai-video-pipeline/internal/infra/redis"
	"ai-video-pipeline/internal/infra/sched"
	"ai-video-pipeline/internal/infra/web"
	"ai-video-pipeline/internal/infra/worker"
	"ai-video-pipeline/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_ = godotenv.Load()

	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "console logging and relaxed defaults")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	metrics.MustRegister()

	if err := os.MkdirAll(cfg.Server.MediaDir, 0o755); err != nil {
		logger.Fatal().Err(err).Str("dir", cfg.Server.MediaDir).Msg("media dir")
	}

	// ---- Run store: Postgres when configured, in-memory otherwise ----
	var runs repository.RunRepository
	if cfg.Database.URL != "" {
		pool, err := pg.Connect(ctx, cfg.Database.URL)
		if err != nil {
			logger.Fatal().Err(err).Msg("postgres connect")
		}
		defer pool.Close()
		if err := pg.EnsureSchema(ctx, pool); err != nil {
			logger.Fatal().Err(err).Msg("postgres schema")
		}
		runs = pg.NewRunRepo(pool)
		logger.Info().Msg("run store: postgres")
	} else {
		runs = memory.NewRunRepo()
		logger.Info().Msg("run store: in-memory")
	}

	if cfg.Redis.URL != "" {
		client, err := red.NewClient(ctx, &cfg.Redis)
		if err != nil {
			logger.Fatal().Err(err).Msg("redis connect")
		}
		defer client.Close()
		runs = red.NewRunCacheDecorator(runs, client, cfg.Redis.TTL)
		logger.Info().Msg("run cache: redis")
	}

	providers := buildProviders(ctx, cfg, logger)
	notifier := buildNotifier(cfg, logger)

	pool := worker.NewPool(cfg.Pipeline.Workers, logger)
	pool.Start(ctx)
	defer pool.Stop()

	uc := usecase.NewPipelineUseCase(providers, runs, notifier, pool,
		cfg.Pipeline.StageTimeout, cfg.Pipeline.ClipCount, logger)

	retention := sched.NewRetentionWorker(15*time.Minute, cfg.Pipeline.Retention, runs, logger)
	go func() { _ = retention.Run(ctx) }()

	auth := api.NewAuthManager(cfg.Admin.Password, cfg.Admin.JWTSecret, !cfg.Runtime.Dev, cfg.Admin.SessionTTL)
	srv := api.NewServer(uc, auth, web.NewPage(), cfg.Server.MediaDir, logger)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: srv.Router(),
	}
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("http listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("http server error")
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutdown requested")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	_ = server.Shutdown(shutdownCtx)
	cancel()
}

// buildProviders picks the live adapter for every capability that has
// credentials and the demo one otherwise. The service always boots.
func buildProviders(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) usecase.Providers {
	p := usecase.Providers{}

	// ---- Script analysis + SEO (OpenAI -> Gemini -> demo) ----
	switch {
	case cfg.Providers.OpenAIKey != "":
		a, err := analysis.NewOpenAIAnalyzer(cfg.Providers.OpenAIKey, cfg.Providers.OpenAIModel, cfg.Providers.MaxPromptTokens)
		if err != nil {
			logger.Fatal().Err(err).Msg("openai analyzer")
		}
		p.Analyzer = analysis.NewLimitedAnalyzer(a, cfg.Pipeline.LLMConcurrentLimit)
		metrics.SetProviderMode("analysis", "live")
		logger.Info().Str("model", cfg.Providers.OpenAIModel).Msg("analysis: openai")
	case cfg.Providers.GeminiKey != "":
		a, err := analysis.NewGeminiAnalyzer(ctx, cfg.Providers.GeminiKey, cfg.Providers.GeminiModel)
		if err != nil {
			logger.Fatal().Err(err).Msg("gemini analyzer")
		}
		p.Analyzer = analysis.NewLimitedAnalyzer(a, cfg.Pipeline.LLMConcurrentLimit)
		metrics.SetProviderMode("analysis", "live")
		logger.Info().Str("model", cfg.Providers.GeminiModel).Msg("analysis: gemini")
	default:
		p.Analyzer = analysis.NewDemoAnalyzer()
		metrics.SetProviderMode("analysis", "demo")
		logger.Info().Msg("analysis: demo")
	}

	// ---- Voiceover ----
	if cfg.Providers.ElevenLabsKey != "" {
		s, err := speech.NewElevenLabsAdapter(cfg.Providers.ElevenLabsKey, cfg.Providers.ElevenLabsVoice, cfg.Server.MediaDir, cfg.Server.BaseURL, cfg.Providers.RequestTimeout)
		if err != nil {
			logger.Fatal().Err(err).Msg("elevenlabs adapter")
		}
		p.Speech = s
		metrics.SetProviderMode("speech", "live")
		logger.Info().Msg("speech: elevenlabs")
	} else {
		p.Speech = speech.NewDemoSynthesizer()
		metrics.SetProviderMode("speech", "demo")
		logger.Info().Msg("speech: demo")
	}

	// ---- Stock visuals ----
	if cfg.Providers.PexelsKey != "" {
		v, err := visuals.NewPexelsAdapter(cfg.Providers.PexelsKey, cfg.Providers.RequestTimeout)
		if err != nil {
			logger.Fatal().Err(err).Msg("pexels adapter")
		}
		p.Visuals = v
		metrics.SetProviderMode("visuals", "live")
		logger.Info().Msg("visuals: pexels")
	} else {
		p.Visuals = visuals.NewDemoSearcher()
		metrics.SetProviderMode("visuals", "demo")
		logger.Info().Msg("visuals: demo")
	}

	// ---- Music bed ----
	if cfg.Providers.BeatovenKey != "" {
		m, err := music.NewBeatovenAdapter(cfg.Providers.BeatovenKey, cfg.Providers.RequestTimeout)
		if err != nil {
			logger.Fatal().Err(err).Msg("beatoven adapter")
		}
		p.Music = m
		metrics.SetProviderMode("music", "live")
		logger.Info().Msg("music: beatoven")
	} else {
		p.Music = music.NewDemoSelector()
		metrics.SetProviderMode("music", "demo")
		logger.Info().Msg("music: demo")
	}

	// ---- Subtitles ----
	if cfg.Providers.OpenAIKey != "" {
		c, err := captions.NewWhisperAdapter(cfg.Providers.OpenAIKey, cfg.Server.MediaDir, cfg.Server.BaseURL, cfg.Providers.RequestTimeout)
		if err != nil {
			logger.Fatal().Err(err).Msg("whisper adapter")
		}
		p.Captions = c
		metrics.SetProviderMode("captions", "live")
		logger.Info().Msg("captions: whisper")
	} else {
		p.Captions = captions.NewDemoCaptioner()
		metrics.SetProviderMode("captions", "demo")
		logger.Info().Msg("captions: demo")
	}

	// ---- Thumbnail ----
	if cfg.Providers.RecraftKey != "" {
		t, err := thumbnail.NewRecraftAdapter(cfg.Providers.RecraftKey, cfg.Providers.RequestTimeout)
		if err != nil {
			logger.Fatal().Err(err).Msg("recraft adapter")
		}
		p.Thumbnail = t
		metrics.SetProviderMode("thumbnail", "live")
		logger.Info().Msg("thumbnail: recraft")
	} else {
		p.Thumbnail = thumbnail.NewDemoRenderer()
		metrics.SetProviderMode("thumbnail", "demo")
		logger.Info().Msg("thumbnail: demo")
	}

	// ---- Assembly ----
	if cfg.Providers.AssembleLocally {
		p.Assembler = assembly.NewFFmpegAssembler(cfg.Providers.FFmpegPath, cfg.Server.MediaDir, cfg.Server.BaseURL, cfg.Providers.RequestTimeout)
		metrics.SetProviderMode("assembly", "live")
		logger.Info().Str("ffmpeg", cfg.Providers.FFmpegPath).Msg("assembly: ffmpeg")
	} else {
		p.Assembler = assembly.NewDemoAssembler()
		metrics.SetProviderMode("assembly", "demo")
		logger.Info().Msg("assembly: demo")
	}

	// ---- Upload ----
	yt := cfg.Providers.YouTube
	if yt.ClientID != "" && yt.ClientSecret != "" && yt.RefreshToken != "" {
		pub, err := publish.NewYouTubePublisher(yt, cfg.Server.MediaDir, cfg.Server.BaseURL, cfg.Providers.RequestTimeout)
		if err != nil {
			logger.Fatal().Err(err).Msg("youtube publisher")
		}
		p.Publisher = pub
		metrics.SetProviderMode("publish", "live")
		logger.Info().Msg("publish: youtube")
	} else {
		p.Publisher = publish.NewDemoPublisher()
		metrics.SetProviderMode("publish", "demo")
		logger.Info().Msg("publish: demo")
	}

	return p
}

func buildNotifier(cfg *config.Config, logger *zerolog.Logger) adapter.RunNotifier {
	if cfg.Notify.TelegramToken != "" && cfg.Notify.TelegramChatID != 0 {
		n, err := notify.NewTelegramNotifier(cfg.Notify.TelegramToken, cfg.Notify.TelegramChatID)
		if err != nil {
			logger.Warn().Err(err).Msg("telegram notifier unavailable, using noop")
			return notify.NewNoopNotifier(logger)
		}
		logger.Info().Msg("notify: telegram")
		return n
	}
	return notify.NewNoopNotifier(logger)
}
