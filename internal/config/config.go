package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type ServerConfig struct {
	Port     int    `yaml:"port"`
	BaseURL  string `yaml:"base_url"`
	MediaDir string `yaml:"media_dir"`
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type AdminConfig struct {
	Password   string        `yaml:"password"`
	JWTSecret  string        `yaml:"jwt_secret"`
	SessionTTL time.Duration `yaml:"session_ttl"`
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type RedisConfig struct {
	URL      string        `yaml:"url"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
}

type PipelineConfig struct {
	StageTimeout       time.Duration `yaml:"stage_timeout"`
	Retention          time.Duration `yaml:"retention"`
	Workers            int           `yaml:"workers"` // async run workers
	LLMConcurrentLimit int           `yaml:"llm_concurrent_limit"`
	ClipCount          int           `yaml:"clip_count"` // stock clips per storyboard
}

type YouTubeConfig struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	RefreshToken string `yaml:"refresh_token"`
	CategoryID   string `yaml:"category_id"`
	Privacy      string `yaml:"privacy"`
}

// ProvidersConfig holds every external credential. An empty key selects
// the demo adapter for that capability.
type ProvidersConfig struct {
	OpenAIKey        string        `yaml:"openai_key"`
	OpenAIModel      string        `yaml:"openai_model"`
	GeminiKey        string        `yaml:"gemini_key"`
	GeminiModel      string        `yaml:"gemini_model"`
	ElevenLabsKey    string        `yaml:"elevenlabs_key"`
	ElevenLabsVoice  string        `yaml:"elevenlabs_voice"`
	PexelsKey        string        `yaml:"pexels_key"`
	BeatovenKey      string        `yaml:"beatoven_key"`
	RecraftKey       string        `yaml:"recraft_key"`
	YouTube          YouTubeConfig `yaml:"youtube"`
	FFmpegPath       string        `yaml:"ffmpeg_path"`
	AssembleLocally  bool          `yaml:"assemble_locally"`
	MaxPromptTokens  int           `yaml:"max_prompt_tokens"`
	RequestTimeout   time.Duration `yaml:"request_timeout"`
}

type NotifyConfig struct {
	TelegramToken  string `yaml:"telegram_token"`
	TelegramChatID int64  `yaml:"telegram_chat_id"`
}

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
	Admin     AdminConfig     `yaml:"admin"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Pipeline  PipelineConfig  `yaml:"pipeline"`
	Providers ProvidersConfig `yaml:"providers"`
	Notify    NotifyConfig    `yaml:"notify"`

	Runtime RuntimeConfig `yaml:"-"`
}

// LoadConfig reads the YAML file at path, layers environment overrides
// for credentials, and applies defaults. A missing file is not an
// error: the service must boot into demo mode with zero configuration.
func LoadConfig(path string, dev bool) (*Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
		// demo mode with defaults
	default:
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if cfg.Admin.Password != "" && cfg.Admin.JWTSecret == "" {
		return nil, errors.New("admin.jwt_secret is required when admin.password is set")
	}

	cfg.Runtime.Dev = dev
	return &cfg, nil
}

// applyEnv lets credentials come in through the environment, matching
// the variable names the hosted providers document.
func (c *Config) applyEnv() {
	setIfEmpty(&c.Providers.OpenAIKey, "OPENAI_API_KEY")
	setIfEmpty(&c.Providers.GeminiKey, "GEMINI_API_KEY")
	setIfEmpty(&c.Providers.ElevenLabsKey, "ELEVENLABS_API_KEY")
	setIfEmpty(&c.Providers.PexelsKey, "PEXELS_API_KEY")
	setIfEmpty(&c.Providers.BeatovenKey, "BEATOVEN_API_KEY")
	setIfEmpty(&c.Providers.RecraftKey, "RECRAFT_API_KEY")
	setIfEmpty(&c.Providers.YouTube.ClientID, "YOUTUBE_CLIENT_ID")
	setIfEmpty(&c.Providers.YouTube.ClientSecret, "YOUTUBE_CLIENT_SECRET")
	setIfEmpty(&c.Providers.YouTube.RefreshToken, "YOUTUBE_REFRESH_TOKEN")
	setIfEmpty(&c.Database.URL, "DATABASE_URL")
	setIfEmpty(&c.Redis.URL, "REDIS_URL")
	setIfEmpty(&c.Notify.TelegramToken, "TELEGRAM_BOT_TOKEN")
}

func setIfEmpty(dst *string, env string) {
	if *dst == "" {
		*dst = os.Getenv(env)
	}
}

func (c *Config) applyDefaults() {
	if c.Server.Port <= 0 {
		c.Server.Port = 8080
	}
	if c.Server.BaseURL == "" {
		c.Server.BaseURL = fmt.Sprintf("http://localhost:%d", c.Server.Port)
	}
	if c.Server.MediaDir == "" {
		c.Server.MediaDir = "media"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "json"
	}
	if c.Admin.SessionTTL <= 0 {
		c.Admin.SessionTTL = 30 * time.Minute
	}
	if c.Redis.TTL <= 0 {
		c.Redis.TTL = time.Hour
	}
	if c.Pipeline.StageTimeout <= 0 {
		c.Pipeline.StageTimeout = 45 * time.Second
	}
	if c.Pipeline.Retention <= 0 {
		c.Pipeline.Retention = 72 * time.Hour
	}
	if c.Pipeline.Workers <= 0 {
		c.Pipeline.Workers = 4
	}
	if c.Pipeline.LLMConcurrentLimit <= 0 {
		c.Pipeline.LLMConcurrentLimit = 8
	}
	if c.Pipeline.ClipCount <= 0 {
		c.Pipeline.ClipCount = 6
	}
	if c.Providers.OpenAIModel == "" {
		c.Providers.OpenAIModel = "gpt-4o-mini"
	}
	if c.Providers.GeminiModel == "" {
		c.Providers.GeminiModel = "gemini-2.0-flash"
	}
	if c.Providers.ElevenLabsVoice == "" {
		c.Providers.ElevenLabsVoice = "21m00Tcm4TlvDq8ikWAM"
	}
	if c.Providers.FFmpegPath == "" {
		c.Providers.FFmpegPath = "ffmpeg"
	}
	if c.Providers.MaxPromptTokens <= 0 {
		c.Providers.MaxPromptTokens = 6000
	}
	if c.Providers.RequestTimeout <= 0 {
		c.Providers.RequestTimeout = 30 * time.Second
	}
	if c.Providers.YouTube.CategoryID == "" {
		c.Providers.YouTube.CategoryID = "28" // Science & Technology
	}
	if c.Providers.YouTube.Privacy == "" {
		c.Providers.YouTube.Privacy = "public"
	}
}
