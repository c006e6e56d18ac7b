// Package media wraps the external ffmpeg toolchain.
package media

import (
	"context"
	"fmt"
	"os"
	"os/exec"
)

// ConvertToWAV transcodes any audio container into the 16 kHz mono PCM WAV
// the transcription engine consumes.
func ConvertToWAV(ctx context.Context, ffmpegBin, src, dst string) error {
	cmd := exec.CommandContext(ctx, ffmpegBin,
		"-y",
		"-i", src,
		"-ar", "16000",
		"-ac", "1",
		dst,
	)
	cmd.Stdout = os.Stderr
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg convert %s: %w", src, err)
	}
	return nil
}
