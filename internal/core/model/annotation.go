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

// Package model defines the core data structures for the annotation
// pipeline. These objects live in memory for the duration of one run and are
// passed between commands through the chain context; none of them are
// persisted.
package model

import (
	"path"
	"strings"
)

// Job identifies one end-to-end request to annotate a single input video.
// It is created once per pipeline invocation and is immutable afterwards.
type Job struct {
	ID          string // Opaque token, namespaces every artifact of the run.
	Bucket      string // Object-store bucket holding the uploaded input.
	Key         string // Object key of the uploaded input video.
	Filename    string // Original base filename of the upload.
	MediaFormat string // Container format, derived from the filename extension.
}

// NewJob builds a Job for an uploaded object. The media format is taken from
// the filename extension; when the filename carries none it is left empty
// and sniffed from the file content after download.
func NewJob(id, bucket, key, filename string) *Job {
	format := strings.TrimPrefix(path.Ext(filename), ".")
	return &Job{
		ID:          id,
		Bucket:      bucket,
		Key:         key,
		Filename:    filename,
		MediaFormat: strings.ToLower(format),
	}
}

// TranscriptResult holds the source-language transcript and its translation.
// Either side may be empty when no speech was detected. Created once, after
// both external calls complete, and immutable thereafter.
type TranscriptResult struct {
	SourceText string
	TargetText string
}

// BoundingBox locates one detected instance within a frame. Coordinates are
// fractions of the frame size in [0,1], per the detection service contract;
// conversion to pixels happens at render time.
type BoundingBox struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// LabelDetection is one label snapshot reported by the detection service: a
// name, a confidence score on a 0-100 scale, the snapshot timestamp in
// milliseconds from video start, and zero or more bounding-box instances.
type LabelDetection struct {
	Name            string
	Confidence      float64
	TimestampMillis int64
	Instances       []BoundingBox
}

// LabelScore is one entry of the deduplicated label summary: a unique label
// name with the maximum confidence observed for it across the filtered set.
type LabelScore struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
}

// SummarizeLabels reduces a label set to one LabelScore per unique name,
// keeping the maximum observed confidence. The result order is unspecified.
func SummarizeLabels(labels []LabelDetection) []LabelScore {
	best := make(map[string]float64)
	for _, l := range labels {
		if conf, ok := best[l.Name]; !ok || l.Confidence > conf {
			best[l.Name] = l.Confidence
		}
	}
	out := make([]LabelScore, 0, len(best))
	for name, conf := range best {
		out = append(out, LabelScore{Name: name, Confidence: conf})
	}
	return out
}

// PipelineResult is the terminal artifact of one orchestration run: where
// the annotated video and the result archive were published, time-limited
// URLs for both, the transcript pair, and the label summary.
type PipelineResult struct {
	OutputVideoKey string       `json:"output_video_key"`
	OutputVideoURL string       `json:"output_video_url"`
	ArchiveKey     string       `json:"archive_key"`
	ArchiveURL     string       `json:"archive_url"`
	TranscriptPt   string       `json:"transcript_pt"`
	TranscriptEn   string       `json:"transcript_en"`
	LabelSummary   []LabelScore `json:"objects"`
}
