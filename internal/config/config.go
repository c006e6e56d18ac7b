package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EngineWhisper and EngineDeepgram are the selectable transcription engines.
const (
	EngineWhisper  = "whisper"
	EngineDeepgram = "deepgram"
)

// Config holds all settings for a vodscribe run.
type Config struct {
	// Output
	OutputDir string `envconfig:"OUTPUT_DIR" default:"data"`

	// Pipeline
	ChunkSeconds int    `envconfig:"CHUNK_SECONDS" default:"120"` // window handed to the engine per call
	Language     string `envconfig:"LANGUAGE" default:"en"`
	BeamSize     int    `envconfig:"BEAM_SIZE" default:"1"` // 1 = greedy, kept low for latency
	Workers      int    `envconfig:"WORKERS" default:"1"`   // 1 = sequential chunk processing

	// Optional energy gate in front of the engine
	EnergyGate          bool    `envconfig:"ENERGY_GATE" default:"false"`
	EnergyGateThreshold float64 `envconfig:"ENERGY_GATE_THRESHOLD" default:"0.005"`

	// Engine selection
	Engine string `envconfig:"ENGINE" default:"whisper"` // whisper | deepgram

	// Local whisper.cpp engine
	WhisperModelPath string `envconfig:"WHISPER_MODEL" default:"models/ggml-tiny.bin"`
	WhisperThreads   int    `envconfig:"WHISPER_THREADS" default:"4"`

	// Deepgram prerecorded engine
	DeepgramAPIKey string `envconfig:"DEEPGRAM_API_KEY" default:""`
	DeepgramModel  string `envconfig:"DEEPGRAM_MODEL" default:"nova-2"`

	// Remote-engine resilience
	RetryMaxAttempts    int `envconfig:"RETRY_MAX_ATTEMPTS" default:"3"`
	RetryInitialBackoff int `envconfig:"RETRY_INITIAL_BACKOFF" default:"100"` // milliseconds
	BreakerMaxFailures  int `envconfig:"BREAKER_MAX_FAILURES" default:"5"`
	BreakerResetTimeout int `envconfig:"BREAKER_RESET_TIMEOUT" default:"30"` // seconds

	// External tool locations
	YtDlpBin  string `envconfig:"YTDLP_BIN" default:"yt-dlp"`
	FFmpegBin string `envconfig:"FFMPEG_BIN" default:"ffmpeg"`
	ChatBin   string `envconfig:"CHAT_BIN" default:"TwitchDownloaderCLI"`

	// Observability
	LogLevel       string `envconfig:"LOG_LEVEL" default:"info"`
	LogPretty      bool   `envconfig:"LOG_PRETTY" default:"false"`
	MetricsEnabled bool   `envconfig:"METRICS_ENABLED" default:"false"`
	MetricsAddr    string `envconfig:"METRICS_ADDR" default:":9090"`
}

// Load reads configuration from a .env file when present, then from the
// environment, and validates the result.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cross-field constraints envconfig cannot express.
func (c *Config) Validate() error {
	if c.ChunkSeconds <= 0 {
		return fmt.Errorf("CHUNK_SECONDS must be positive, got %d", c.ChunkSeconds)
	}
	if c.Workers < 1 {
		return fmt.Errorf("WORKERS must be at least 1, got %d", c.Workers)
	}
	switch c.Engine {
	case EngineWhisper:
		if c.WhisperModelPath == "" {
			return fmt.Errorf("WHISPER_MODEL is required for the whisper engine")
		}
		// whisper.cpp decode contexts share one C-side model state, so
		// concurrent decodes race; only the deepgram engine may fan out
		if c.Workers > 1 {
			return fmt.Errorf("WORKERS must be 1 for the whisper engine, got %d", c.Workers)
		}
	case EngineDeepgram:
		if c.DeepgramAPIKey == "" {
			return fmt.Errorf("DEEPGRAM_API_KEY is required for the deepgram engine")
		}
	default:
		return fmt.Errorf("unknown engine %q", c.Engine)
	}
	return nil
}
