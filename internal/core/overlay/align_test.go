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

package overlay_test

import (
	"testing"
	"time"

	"github.com/Netinhoklz/video-translate-legend-detection/internal/core/model"
	"github.com/Netinhoklz/video-translate-legend-detection/internal/core/overlay"
	"github.com/stretchr/testify/assert"
)

func snapshotsAt(times ...int64) []model.LabelDetection {
	labels := make([]model.LabelDetection, 0, len(times))
	for _, ts := range times {
		labels = append(labels, model.LabelDetection{Name: "Dog", TimestampMillis: ts})
	}
	return labels
}

// TestActiveChunk verifies the even-slice subtitle timing: a 10 second
// video with 4 chunks gives each chunk a 2.5 second span, and frames past
// the final span show no subtitle.
func TestActiveChunk(t *testing.T) {
	aligner := overlay.NewTimeAligner(4, 10.0, nil, overlay.DefaultSnapshotTolerance)

	index, ok := aligner.ActiveChunk(0)
	assert.True(t, ok)
	assert.Equal(t, 0, index)

	index, ok = aligner.ActiveChunk(2.4)
	assert.True(t, ok)
	assert.Equal(t, 0, index)

	index, ok = aligner.ActiveChunk(2.5)
	assert.True(t, ok)
	assert.Equal(t, 1, index)

	index, ok = aligner.ActiveChunk(9.99)
	assert.True(t, ok)
	assert.Equal(t, 3, index)

	_, ok = aligner.ActiveChunk(10.0)
	assert.False(t, ok)
}

// TestActiveChunkFrameBoundaries walks a 250-frame, 25 fps video with 4
// chunks frame by frame at the boundaries, mirroring how the renderer
// derives frame timestamps from the frame index.
func TestActiveChunkFrameBoundaries(t *testing.T) {
	const fps = 25.0
	const frames = 250
	aligner := overlay.NewTimeAligner(4, frames/fps, nil, overlay.DefaultSnapshotTolerance)

	expected := map[int]int{
		0:   0,
		61:  0, // 2.44s, still inside the first 2.5s slice
		63:  1, // 2.52s
		124: 1,
		125: 2, // exactly 5.0s
		187: 2,
		188: 3, // 7.52s
		249: 3, // the final frame still carries the last chunk
	}
	for frame, want := range expected {
		index, ok := aligner.ActiveChunk(float64(frame) / fps)
		assert.True(t, ok, "frame %d", frame)
		assert.Equal(t, want, index, "frame %d", frame)
	}
}

// TestActiveChunkNoChunks checks that an empty transcript (zero chunks)
// never reports an active subtitle.
func TestActiveChunkNoChunks(t *testing.T) {
	aligner := overlay.NewTimeAligner(0, 10.0, nil, overlay.DefaultSnapshotTolerance)
	_, ok := aligner.ActiveChunk(1.0)
	assert.False(t, ok)
}

// TestNearestSnapshot verifies nearest-in-time resolution against the
// half-second window: 1400ms resolves to the 1000ms snapshot, 2600ms to
// the 3000ms snapshot, and 2000ms sits exactly 1000ms from both
// neighbors, outside the window, so no boxes are drawn.
func TestNearestSnapshot(t *testing.T) {
	aligner := overlay.NewTimeAligner(1, 10.0, snapshotsAt(1000, 3000), overlay.DefaultSnapshotTolerance)

	labels, ok := aligner.NearestSnapshot(1400)
	assert.True(t, ok)
	assert.Equal(t, int64(1000), labels[0].TimestampMillis)

	labels, ok = aligner.NearestSnapshot(2600)
	assert.True(t, ok)
	assert.Equal(t, int64(3000), labels[0].TimestampMillis)

	_, ok = aligner.NearestSnapshot(2000)
	assert.False(t, ok)
}

// TestNearestSnapshotExactTolerance checks the window boundary: a frame
// exactly at the tolerance distance draws nothing, one millisecond closer
// draws the snapshot.
func TestNearestSnapshotExactTolerance(t *testing.T) {
	aligner := overlay.NewTimeAligner(1, 10.0, snapshotsAt(1000), overlay.DefaultSnapshotTolerance)

	_, ok := aligner.NearestSnapshot(1500)
	assert.False(t, ok)

	labels, ok := aligner.NearestSnapshot(1499)
	assert.True(t, ok)
	assert.Len(t, labels, 1)
}

// TestNearestSnapshotTieResolvesEarlier checks that two snapshots
// equidistant from the frame, both inside the window, resolve to the
// earlier one deterministically.
func TestNearestSnapshotTieResolvesEarlier(t *testing.T) {
	aligner := overlay.NewTimeAligner(1, 10.0, snapshotsAt(1000, 1400), overlay.DefaultSnapshotTolerance)

	labels, ok := aligner.NearestSnapshot(1200)
	assert.True(t, ok)
	assert.Equal(t, int64(1000), labels[0].TimestampMillis)
}

// TestNearestSnapshotGroupsByTimestamp checks that all labels sharing one
// snapshot timestamp come back together.
func TestNearestSnapshotGroupsByTimestamp(t *testing.T) {
	labels := []model.LabelDetection{
		{Name: "Dog", TimestampMillis: 1000},
		{Name: "Car", TimestampMillis: 1000},
		{Name: "Tree", TimestampMillis: 2000},
	}
	aligner := overlay.NewTimeAligner(1, 10.0, labels, overlay.DefaultSnapshotTolerance)

	found, ok := aligner.NearestSnapshot(1100)
	assert.True(t, ok)
	assert.Len(t, found, 2)
}

// TestNearestSnapshotEmpty checks the degenerate case of no detections.
func TestNearestSnapshotEmpty(t *testing.T) {
	aligner := overlay.NewTimeAligner(1, 10.0, nil, time.Second)
	_, ok := aligner.NearestSnapshot(0)
	assert.False(t, ok)
}
