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
	"context"
	"fmt"
	"image"
	"log/slog"
	"time"

	vidio "github.com/AlexEidt/Vidio"

	"github.com/Netinhoklz/video-translate-legend-detection/internal/core/model"
)

// Renderer decodes the source video frame by frame, draws the active
// subtitle chunk and the nearest detection snapshot onto each frame, and
// writes a silent annotated video: one output frame per input frame, in
// order. It implements services.FrameRenderer.
type Renderer struct {
	WordsPerChunk     int
	SnapshotTolerance time.Duration
}

// NewRenderer returns a renderer with the baseline chunk size and snapshot
// tolerance where the arguments are zero.
func NewRenderer(wordsPerChunk int, tolerance time.Duration) *Renderer {
	if wordsPerChunk <= 0 {
		wordsPerChunk = DefaultWordsPerChunk
	}
	if tolerance <= 0 {
		tolerance = DefaultSnapshotTolerance
	}
	return &Renderer{WordsPerChunk: wordsPerChunk, SnapshotTolerance: tolerance}
}

// Render writes the silent annotated copy of inputPath to outputPath. The
// total duration is computed as frameCount / fps, frame timestamps as
// frameIndex / fps. Input and output handles are released on every path.
func (r *Renderer) Render(ctx context.Context, inputPath, outputPath, subtitleText string, labels []model.LabelDetection) error {
	video, err := vidio.NewVideo(inputPath)
	if err != nil {
		return fmt.Errorf("%w: cannot decode %s: %v", model.ErrRender, inputPath, err)
	}
	defer video.Close()

	width, height := video.Width(), video.Height()
	fps := video.FPS()
	frameCount := video.Frames()
	if fps <= 0 || frameCount <= 0 {
		return fmt.Errorf("%w: %s reports no frames (fps=%v frames=%d)", model.ErrRender, inputPath, fps, frameCount)
	}
	duration := float64(frameCount) / fps

	writer, err := vidio.NewVideoWriter(outputPath, width, height, &vidio.Options{FPS: fps})
	if err != nil {
		return fmt.Errorf("%w: cannot open %s for writing: %v", model.ErrRender, outputPath, err)
	}
	defer writer.Close()

	chunks := ChunkWords(subtitleText, r.WordsPerChunk)
	aligner := NewTimeAligner(len(chunks), duration, labels, r.SnapshotTolerance)

	slog.Info("rendering overlay",
		"input", inputPath,
		"frames", frameCount,
		"fps", fps,
		"chunks", len(chunks),
		"labels", len(labels))

	frameIndex := 0
	for video.Read() {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%w: render canceled at frame %d: %v", model.ErrRender, frameIndex, err)
		}

		buffer := video.FrameBuffer()
		// The frame buffer is RGBA; wrapping it shares the pixels, so the
		// draws below mutate the frame in place.
		frame := &image.RGBA{
			Pix:    buffer,
			Stride: 4 * width,
			Rect:   image.Rect(0, 0, width, height),
		}
		seconds := float64(frameIndex) / fps

		if index, ok := aligner.ActiveChunk(seconds); ok {
			drawSubtitle(frame, chunks[index])
		}

		if snapshot, ok := aligner.NearestSnapshot(int64(seconds * 1000)); ok {
			for _, label := range snapshot {
				for _, box := range label.Instances {
					drawBoundingBox(frame, label.Name, box.Left, box.Top, box.Width, box.Height)
				}
			}
		}

		if err := writer.Write(buffer); err != nil {
			return fmt.Errorf("%w: writing frame %d: %v", model.ErrRender, frameIndex, err)
		}
		frameIndex++
	}

	slog.Info("overlay rendered", "output", outputPath, "frames", frameIndex)
	return nil
}
