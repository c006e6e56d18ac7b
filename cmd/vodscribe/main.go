package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/vodscribe/vodscribe/internal/audio"
	"github.com/vodscribe/vodscribe/internal/config"
	"github.com/vodscribe/vodscribe/internal/media"
	"github.com/vodscribe/vodscribe/internal/observability"
	"github.com/vodscribe/vodscribe/internal/pipeline"
	"github.com/vodscribe/vodscribe/internal/resilience"
	"github.com/vodscribe/vodscribe/internal/stt"
	"github.com/vodscribe/vodscribe/internal/timeline"
	"github.com/vodscribe/vodscribe/internal/transcript"
	"github.com/vodscribe/vodscribe/internal/twitch"
)

func main() {
	var (
		vodID     string
		outputDir string
		skipChat  bool
	)
	flag.StringVar(&vodID, "vod", "", "Twitch video ID to download and transcribe")
	flag.StringVar(&outputDir, "output", "", "Output directory (overrides OUTPUT_DIR)")
	flag.BoolVar(&skipChat, "skip-chat", false, "Skip the chat download stage")
	flag.Parse()

	if vodID == "" {
		fmt.Fprintln(os.Stderr, "missing -vod video id")
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if outputDir != "" {
		cfg.OutputDir = outputDir
	}

	observability.InitLogger(cfg.LogLevel, cfg.LogPretty)
	log := observability.RunLogger()

	if cfg.MetricsEnabled {
		observability.ServeMetrics(cfg.MetricsAddr)
		log.Info().Str("addr", cfg.MetricsAddr).Msg("metrics enabled")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log, vodID, skipChat); err != nil {
		log.Error().Err(err).Msg("run failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger, vodID string, skipChat bool) error {
	vod, err := twitch.NewVOD(vodID, cfg.OutputDir)
	if err != nil {
		return err
	}
	log.Info().Str("vod", vod.ID).Str("dir", vod.Dir).Str("engine", cfg.Engine).Msg("starting")

	if err := preflight(ctx, cfg, log, skipChat); err != nil {
		return err
	}

	fetcher := &twitch.Fetcher{
		YtDlpBin:  cfg.YtDlpBin,
		ChatBin:   cfg.ChatBin,
		FFmpegBin: cfg.FFmpegBin,
		Log:       log,
	}

	if !skipChat {
		if err := fetchChat(ctx, fetcher, vod, log); err != nil {
			return err
		}
	}
	if err := fetchAudio(ctx, cfg, fetcher, vod, log); err != nil {
		return err
	}
	return transcribe(ctx, cfg, vod, log)
}

func preflight(ctx context.Context, cfg *config.Config, log zerolog.Logger, skipChat bool) error {
	var p observability.Preflight
	p.Register("yt-dlp", observability.BinaryCheck(cfg.YtDlpBin))
	p.Register("ffmpeg", observability.BinaryCheck(cfg.FFmpegBin))
	if !skipChat {
		p.Register("chat-downloader", observability.BinaryCheck(cfg.ChatBin))
	}
	if cfg.Engine == config.EngineWhisper {
		p.Register("whisper-model", observability.FileCheck(cfg.WhisperModelPath))
	}

	results, ok := p.Run(ctx)
	for _, r := range results {
		if r.Err != nil {
			log.Error().Str("check", r.Name).Err(r.Err).Msg("preflight failed")
		} else {
			log.Debug().Str("check", r.Name).Dur("took", r.Latency).Msg("preflight ok")
		}
	}
	if !ok {
		return errors.New("preflight checks failed")
	}
	return nil
}

// fetchChat downloads the chat log and converts it to TSV. An existing chat
// export means this VOD was already processed; the stage refuses to repeat
// itself rather than clobber it.
func fetchChat(ctx context.Context, fetcher *twitch.Fetcher, vod *twitch.VOD, log zerolog.Logger) error {
	start := time.Now()
	defer func() { observability.ObserveStage("chat", time.Since(start)) }()

	if err := transcript.CheckNotExists(vod.ChatHTMLPath()); err != nil {
		return fmt.Errorf("chat already downloaded, remove it to re-run: %w", err)
	}
	if err := fetcher.DownloadChat(ctx, vod); err != nil {
		return err
	}

	fh, err := os.Open(vod.ChatHTMLPath())
	if err != nil {
		return fmt.Errorf("open chat html: %w", err)
	}
	defer fh.Close()

	msgs, err := twitch.ParseChat(fh)
	if err != nil {
		return err
	}
	if len(msgs) == 0 {
		log.Warn().Str("vod", vod.ID).Msg("no chat data found")
		return nil
	}

	if err := twitch.WriteChatTSV(vod.ChatTSVPath(), msgs); err != nil {
		return err
	}
	log.Info().Int("messages", len(msgs)).Str("path", vod.ChatTSVPath()).Msg("chat saved")
	return nil
}

// fetchAudio downloads the VOD audio and converts it to 16kHz mono WAV.
func fetchAudio(ctx context.Context, cfg *config.Config, fetcher *twitch.Fetcher, vod *twitch.VOD, log zerolog.Logger) error {
	start := time.Now()
	defer func() { observability.ObserveStage("audio", time.Since(start)) }()

	if err := transcript.CheckNotExists(vod.WAVPath()); err != nil {
		return fmt.Errorf("audio already downloaded, remove it to re-run: %w", err)
	}
	if err := fetcher.DownloadAudio(ctx, vod); err != nil {
		return err
	}
	if err := media.ConvertToWAV(ctx, cfg.FFmpegBin, vod.AudioM4APath(), vod.WAVPath()); err != nil {
		return err
	}
	log.Info().Str("path", vod.WAVPath()).Msg("audio ready")
	return nil
}

// transcribe runs the chunked pipeline over the decoded audio and writes the
// transcript TSV.
func transcribe(ctx context.Context, cfg *config.Config, vod *twitch.VOD, log zerolog.Logger) error {
	start := time.Now()
	defer func() { observability.ObserveStage("transcribe", time.Since(start)) }()

	// refuse before decoding anything so a re-run costs nothing
	if err := transcript.CheckNotExists(vod.TranscriptPath()); err != nil {
		return fmt.Errorf("transcript already exists, remove it to re-run: %w", err)
	}

	buf, err := audio.LoadWAV(vod.WAVPath())
	if err != nil {
		return err
	}
	if buf.SampleRate != 16000 {
		log.Warn().Int("rate", buf.SampleRate).Msg("resampling to 16kHz")
		buf = audio.Resample(buf, 16000)
	}

	engine, err := buildEngine(cfg)
	if err != nil {
		return err
	}
	defer engine.Close()

	pcfg := pipeline.Config{
		ChunkSeconds: cfg.ChunkSeconds,
		Workers:      cfg.Workers,
	}
	if cfg.EnergyGate {
		gate := audio.DefaultEnergyGate()
		gate.Threshold = cfg.EnergyGateThreshold
		pcfg.Gate = gate
	}

	records, stats, err := pipeline.New(engine, pcfg, log).Run(ctx, buf)
	if errors.Is(err, timeline.ErrNoTranscript) {
		log.Warn().Interface("stats", stats).Msg("no transcript data found")
		return nil
	}
	if err != nil {
		return err
	}

	if err := transcript.WriteTSV(vod.TranscriptPath(), records); err != nil {
		return err
	}
	log.Info().
		Int("records", len(records)).
		Int("chunks", stats.Chunks).
		Int("anomalies", stats.Anomalies).
		Int("skipped", stats.Skipped).
		Str("path", vod.TranscriptPath()).
		Msg("transcript saved")
	return nil
}

func buildEngine(cfg *config.Config) (stt.Engine, error) {
	switch cfg.Engine {
	case config.EngineWhisper:
		return stt.NewWhisperEngine(cfg.WhisperModelPath, cfg.Language, cfg.BeamSize, cfg.WhisperThreads)
	case config.EngineDeepgram:
		retry := &resilience.RetryConfig{
			MaxAttempts:       cfg.RetryMaxAttempts,
			InitialBackoff:    time.Duration(cfg.RetryInitialBackoff) * time.Millisecond,
			MaxBackoff:        5 * time.Second,
			BackoffMultiplier: 2.0,
		}
		breaker := resilience.NewCircuitBreaker("deepgram",
			cfg.BreakerMaxFailures,
			time.Duration(cfg.BreakerResetTimeout)*time.Second,
		)
		return stt.NewDeepgramEngine(cfg.DeepgramAPIKey, cfg.DeepgramModel, cfg.Language, retry, breaker)
	default:
		return nil, fmt.Errorf("unknown engine %q", cfg.Engine)
	}
}
