package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfig_MissingFileBootsDemoDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"), false)
	if err != nil {
		t.Fatalf("missing file must not be an error: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("port default: %d", cfg.Server.Port)
	}
	if cfg.Server.BaseURL != "http://localhost:8080" {
		t.Errorf("base url default: %q", cfg.Server.BaseURL)
	}
	if cfg.Pipeline.StageTimeout != 45*time.Second {
		t.Errorf("stage timeout default: %s", cfg.Pipeline.StageTimeout)
	}
	if cfg.Pipeline.Retention != 72*time.Hour {
		t.Errorf("retention default: %s", cfg.Pipeline.Retention)
	}
	if cfg.Pipeline.Workers != 4 || cfg.Pipeline.ClipCount != 6 {
		t.Errorf("pipeline defaults: %+v", cfg.Pipeline)
	}
	if cfg.Providers.ElevenLabsVoice != "21m00Tcm4TlvDq8ikWAM" {
		t.Errorf("voice default: %q", cfg.Providers.ElevenLabsVoice)
	}
	if cfg.Providers.YouTube.CategoryID != "28" || cfg.Providers.YouTube.Privacy != "public" {
		t.Errorf("youtube defaults: %+v", cfg.Providers.YouTube)
	}
}

func TestLoadConfig_ParsesYAMLAndKeepsOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
server:
  port: 9000
  media_dir: /tmp/media
pipeline:
  stage_timeout: 10s
  workers: 2
admin:
  password: hunter2
  jwt_secret: super-secret
providers:
  elevenlabs_voice: custom-voice
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path, true)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Port != 9000 || cfg.Server.MediaDir != "/tmp/media" {
		t.Errorf("server overrides lost: %+v", cfg.Server)
	}
	if cfg.Server.BaseURL != "http://localhost:9000" {
		t.Errorf("base url should follow the overridden port: %q", cfg.Server.BaseURL)
	}
	if cfg.Pipeline.StageTimeout != 10*time.Second || cfg.Pipeline.Workers != 2 {
		t.Errorf("pipeline overrides lost: %+v", cfg.Pipeline)
	}
	if cfg.Providers.ElevenLabsVoice != "custom-voice" {
		t.Errorf("voice override lost: %q", cfg.Providers.ElevenLabsVoice)
	}
	if !cfg.Runtime.Dev {
		t.Error("dev flag not propagated")
	}
}

func TestLoadConfig_AdminPasswordRequiresSecret(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
admin:
  password: hunter2
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfig(path, false); err == nil {
		t.Fatal("expected error for password without jwt_secret")
	}
}

func TestLoadConfig_EnvCredentials(t *testing.T) {
	t.Setenv("PEXELS_API_KEY", "pexels-env-key")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"), false)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Providers.PexelsKey != "pexels-env-key" {
		t.Errorf("env credential not applied: %q", cfg.Providers.PexelsKey)
	}
}
