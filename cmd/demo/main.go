package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	"ai-video-pipeline/internal/config"
	"ai-video-pipeline/internal/domain/model"
	"ai-video-pipeline/internal/infra/adapters/analysis"
	"ai-video-pipeline/internal/infra/adapters/assembly"
	"ai-video-pipeline/internal/infra/adapters/captions"
	"ai-video-pipeline/internal/infra/adapters/music"
	"ai-video-pipeline/internal/infra/adapters/notify"
	"ai-video-pipeline/internal/infra/adapters/publish"
	"ai-video-pipeline/internal/infra/adapters/speech"
	"ai-video-pipeline/internal/infra/adapters/thumbnail"
	"ai-video-pipeline/internal/infra/adapters/visuals"
	"ai-video-pipeline/internal/infra/db/memory"
	"ai-video-pipeline/internal/infra/logging"
	"ai-video-pipeline/internal/usecase"
)

// Runs one pipeline end to end against the demo adapters and prints the
// response. Useful for eyeballing the stage output without a browser.
func main() {
	logger := logging.New(config.LogConfig{Level: "info", Format: "console"}, true)

	providers := usecase.Providers{
		Analyzer:  analysis.NewDemoAnalyzer(),
		Speech:    speech.NewDemoSynthesizer(),
		Visuals:   visuals.NewDemoSearcher(),
		Music:     music.NewDemoSelector(),
		Captions:  captions.NewDemoCaptioner(),
		Thumbnail: thumbnail.NewDemoRenderer(),
		Assembler: assembly.NewDemoAssembler(),
		Publisher: publish.NewDemoPublisher(),
	}

	uc := usecase.NewPipelineUseCase(providers, memory.NewRunRepo(),
		notify.NewNoopNotifier(logger), nil, 45*time.Second, 6, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	resp, err := uc.Run(ctx, &model.PipelineRequest{
		ProjectName:       "Morning productivity short",
		Script:            "Most people waste the first hour of their day. Here are three habits that flip that hour into the most productive one: no phone before breakfast, a written top priority, and a two-minute tidy of your desk before you start.",
		AutoUploadEnabled: true,
	})
	if err != nil {
		log.Fatalf("pipeline error: %v", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(resp); err != nil {
		log.Fatalf("encode error: %v", err)
	}
}
