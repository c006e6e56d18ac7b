package config

import (
	"strings"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.OutputDir != "data" {
		t.Errorf("Expected output dir data, got %q", cfg.OutputDir)
	}
	if cfg.ChunkSeconds != 120 {
		t.Errorf("Expected chunk seconds 120, got %d", cfg.ChunkSeconds)
	}
	if cfg.Language != "en" {
		t.Errorf("Expected language en, got %q", cfg.Language)
	}
	if cfg.BeamSize != 1 {
		t.Errorf("Expected beam size 1, got %d", cfg.BeamSize)
	}
	if cfg.Workers != 1 {
		t.Errorf("Expected 1 worker, got %d", cfg.Workers)
	}
	if cfg.Engine != EngineWhisper {
		t.Errorf("Expected whisper engine, got %q", cfg.Engine)
	}
	if cfg.MetricsEnabled {
		t.Error("Expected metrics disabled by default")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CHUNK_SECONDS", "30")
	t.Setenv("LANGUAGE", "de")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.ChunkSeconds != 30 {
		t.Errorf("Expected chunk seconds 30, got %d", cfg.ChunkSeconds)
	}
	if cfg.Language != "de" {
		t.Errorf("Expected language de, got %q", cfg.Language)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("Expected log level debug, got %q", cfg.LogLevel)
	}
}

func TestLoad_RejectsBadChunkSeconds(t *testing.T) {
	t.Setenv("CHUNK_SECONDS", "0")

	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), "CHUNK_SECONDS") {
		t.Errorf("Expected CHUNK_SECONDS validation error, got %v", err)
	}
}

func TestLoad_RejectsBadWorkers(t *testing.T) {
	t.Setenv("WORKERS", "0")

	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), "WORKERS") {
		t.Errorf("Expected WORKERS validation error, got %v", err)
	}
}

func TestLoad_RejectsUnknownEngine(t *testing.T) {
	t.Setenv("ENGINE", "carrier-pigeon")

	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), "unknown engine") {
		t.Errorf("Expected unknown engine error, got %v", err)
	}
}

func TestLoad_WhisperRejectsMultipleWorkers(t *testing.T) {
	t.Setenv("ENGINE", "whisper")
	t.Setenv("WORKERS", "4")

	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), "WORKERS must be 1") {
		t.Errorf("Expected whisper single-worker validation error, got %v", err)
	}
}

func TestLoad_DeepgramAllowsMultipleWorkers(t *testing.T) {
	t.Setenv("ENGINE", "deepgram")
	t.Setenv("DEEPGRAM_API_KEY", "dg-test-key")
	t.Setenv("WORKERS", "4")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Workers != 4 {
		t.Errorf("Expected 4 workers, got %d", cfg.Workers)
	}
}

func TestLoad_DeepgramRequiresKey(t *testing.T) {
	t.Setenv("ENGINE", "deepgram")
	t.Setenv("DEEPGRAM_API_KEY", "")

	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), "DEEPGRAM_API_KEY") {
		t.Errorf("Expected missing key error, got %v", err)
	}
}

func TestLoad_DeepgramWithKey(t *testing.T) {
	t.Setenv("ENGINE", "deepgram")
	t.Setenv("DEEPGRAM_API_KEY", "dg-test-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Engine != EngineDeepgram {
		t.Errorf("Expected deepgram engine, got %q", cfg.Engine)
	}
}
