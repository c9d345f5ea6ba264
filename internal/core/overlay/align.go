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
	"sort"
	"time"

	"github.com/Netinhoklz/video-translate-legend-detection/internal/core/model"
)

// DefaultSnapshotTolerance is how far a frame may sit from the nearest
// detection snapshot before no boxes are drawn for it.
const DefaultSnapshotTolerance = 500 * time.Millisecond

// TimeAligner resolves, for a given frame timestamp, the active subtitle
// chunk and the nearest label-detection snapshot. It reconciles the three
// independent time bases of a run: frame timestamps derive from frame index
// and fps, chunk boundaries from even slices of the total duration, and
// detection snapshots from the millisecond timestamps the service reported.
type TimeAligner struct {
	chunkCount      int
	chunkDuration   float64 // seconds; zero when there are no chunks
	snapshots       []int64 // distinct detection timestamps, ascending
	labelsByTime    map[int64][]model.LabelDetection
	toleranceMillis int64
}

// NewTimeAligner pre-groups the filtered labels by snapshot timestamp so a
// frame lookup is a binary search plus one map access. durationSeconds is
// the full video duration (frameCount / fps).
func NewTimeAligner(chunkCount int, durationSeconds float64, labels []model.LabelDetection, tolerance time.Duration) *TimeAligner {
	byTime := make(map[int64][]model.LabelDetection)
	for _, label := range labels {
		byTime[label.TimestampMillis] = append(byTime[label.TimestampMillis], label)
	}
	snapshots := make([]int64, 0, len(byTime))
	for ts := range byTime {
		snapshots = append(snapshots, ts)
	}
	sort.Slice(snapshots, func(i, j int) bool { return snapshots[i] < snapshots[j] })

	a := &TimeAligner{
		chunkCount:      chunkCount,
		snapshots:       snapshots,
		labelsByTime:    byTime,
		toleranceMillis: tolerance.Milliseconds(),
	}
	if chunkCount > 0 {
		a.chunkDuration = durationSeconds / float64(chunkCount)
	}
	return a
}

// ActiveChunk returns the subtitle chunk index covering the given frame
// time, or false when no chunk is active: either there are no chunks at
// all, or the frame falls after the last chunk's nominal span (trailing
// frames show no subtitle).
func (a *TimeAligner) ActiveChunk(seconds float64) (int, bool) {
	if a.chunkCount == 0 || a.chunkDuration <= 0 || seconds < 0 {
		return 0, false
	}
	index := int(seconds / a.chunkDuration)
	if index >= a.chunkCount {
		return 0, false
	}
	return index, true
}

// NearestSnapshot returns the labels of the detection snapshot closest in
// time to the given frame timestamp, or false when no snapshot lies within
// the tolerance window. Detections are not interpolated: boxes snap to the
// nearest detected instant and disappear outside the window. Equidistant
// neighbors resolve to the earlier snapshot.
func (a *TimeAligner) NearestSnapshot(millis int64) ([]model.LabelDetection, bool) {
	if len(a.snapshots) == 0 {
		return nil, false
	}
	// First snapshot at or after the frame time.
	i := sort.Search(len(a.snapshots), func(i int) bool { return a.snapshots[i] >= millis })

	best := -1
	var bestDist int64
	for _, candidate := range []int{i - 1, i} {
		if candidate < 0 || candidate >= len(a.snapshots) {
			continue
		}
		dist := a.snapshots[candidate] - millis
		if dist < 0 {
			dist = -dist
		}
		if best == -1 || dist < bestDist {
			best = candidate
			bestDist = dist
		}
	}
	if bestDist >= a.toleranceMillis {
		return nil, false
	}
	return a.labelsByTime[a.snapshots[best]], true
}
