// Package twitch handles the VOD-facing edges of the pipeline: output
// layout, audio and chat downloads, and chat log parsing.
package twitch

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/rs/zerolog"
)

// VOD identifies one Twitch video and the on-disk layout of everything
// produced for it. All artifacts live under <root>/<id>/.
type VOD struct {
	ID  string
	Dir string
}

// NewVOD creates the per-video output directory.
func NewVOD(id, root string) (*VOD, error) {
	if id == "" {
		return nil, fmt.Errorf("empty video id")
	}
	dir := filepath.Join(root, id)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	return &VOD{ID: id, Dir: dir}, nil
}

// URL returns the public video page.
func (v *VOD) URL() string {
	return "https://www.twitch.tv/videos/" + v.ID
}

func (v *VOD) AudioM4APath() string { return filepath.Join(v.Dir, v.ID+".m4a") }
func (v *VOD) WAVPath() string      { return filepath.Join(v.Dir, v.ID+".wav") }
func (v *VOD) TranscriptPath() string {
	return filepath.Join(v.Dir, v.ID+"_transcript.tsv")
}
func (v *VOD) ChatHTMLPath() string { return filepath.Join(v.Dir, v.ID+"_chat.html") }
func (v *VOD) ChatTSVPath() string  { return filepath.Join(v.Dir, v.ID+"_chat.tsv") }

// Fetcher shells out to the external download tools. Binary locations come
// from configuration so packaged and in-tree installs both work.
type Fetcher struct {
	YtDlpBin  string
	ChatBin   string // TwitchDownloaderCLI
	FFmpegBin string
	Log       zerolog.Logger
}

// DownloadAudio pulls the VOD's audio track as m4a via yt-dlp.
func (f *Fetcher) DownloadAudio(ctx context.Context, v *VOD) error {
	f.Log.Info().Str("vod", v.ID).Str("url", v.URL()).Msg("downloading audio")

	cmd := exec.CommandContext(ctx, f.YtDlpBin,
		"--extract-audio",
		"--audio-format", "m4a",
		"-o", v.AudioM4APath(),
		"--ffmpeg-location", f.FFmpegBin,
		v.URL(),
	)
	cmd.Stdout = os.Stderr
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("yt-dlp: %w", err)
	}
	return nil
}

// DownloadChat pulls the VOD's chat log as HTML via TwitchDownloaderCLI.
func (f *Fetcher) DownloadChat(ctx context.Context, v *VOD) error {
	f.Log.Info().Str("vod", v.ID).Msg("downloading chat")

	cmd := exec.CommandContext(ctx, f.ChatBin,
		"chatdownload",
		"--id", v.ID,
		"-o", v.ChatHTMLPath(),
	)
	cmd.Stdout = os.Stderr
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("chat download: %w", err)
	}
	return nil
}
