// Copyright 2024 Google, LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package overlay

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"time"

	"github.com/Netinhoklz/video-translate-legend-detection/internal/core/services"
)

// DefaultRemuxSettleDelay is how long the remuxer waits after the tool
// exits before the output file is trusted. The external process can still
// hold the file handle briefly after exit.
const DefaultRemuxSettleDelay = 1 * time.Second

// FFmpegRemuxer merges the silent annotated video's picture track with the
// original media's audio track by invoking ffmpeg. Both streams are
// re-encoded to broadly compatible codecs (H.264 video, AAC audio, yuv420p
// pixel format) and trimmed to the shorter duration. It implements
// services.AudioRemuxer.
type FFmpegRemuxer struct {
	CommandPath string
	SettleDelay time.Duration
}

// NewFFmpegRemuxer returns a remuxer for the given ffmpeg binary path,
// defaulting to "ffmpeg" on PATH and the baseline settle delay.
func NewFFmpegRemuxer(commandPath string, settleDelay time.Duration) *FFmpegRemuxer {
	if commandPath == "" {
		commandPath = "ffmpeg"
	}
	if settleDelay <= 0 {
		settleDelay = DefaultRemuxSettleDelay
	}
	return &FFmpegRemuxer{CommandPath: commandPath, SettleDelay: settleDelay}
}

// Remux runs the external tool. Failure is expected and recoverable, so it
// never raises: any tool error is logged with the captured diagnostic
// stream and reported as a non-OK outcome for the orchestrator's
// silent-video fallback.
func (r *FFmpegRemuxer) Remux(ctx context.Context, silentPath, originalPath, outputPath string) services.RemuxOutcome {
	args := []string{
		"-y",
		"-i", silentPath,
		"-i", originalPath,
		"-c:v", "libx264",
		"-c:a", "aac",
		"-map", "0:v:0",
		"-map", "1:a:0",
		"-pix_fmt", "yuv420p",
		"-shortest",
		outputPath,
	}
	cmd := exec.CommandContext(ctx, r.CommandPath, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		reason := fmt.Sprintf("ffmpeg: %v: %s", err, stderr.String())
		slog.Error("audio remux failed", "silent", silentPath, "original", originalPath, "error", err, "stderr", stderr.String())
		return services.RemuxOutcome{OK: false, Reason: reason}
	}

	// Give the OS time to release the tool's file handles before anyone
	// reads the output.
	time.Sleep(r.SettleDelay)

	if _, err := os.Stat(outputPath); err != nil {
		reason := fmt.Sprintf("ffmpeg exited cleanly but %s is missing: %v", outputPath, err)
		slog.Error("audio remux produced no output", "output", outputPath, "error", err)
		return services.RemuxOutcome{OK: false, Reason: reason}
	}

	slog.Info("audio remux successful", "output", outputPath)
	return services.RemuxOutcome{OK: true}
}
