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

// Package services defines the minimal capability interfaces the pipeline
// consumes from its external collaborators: the object store, the
// transcription, translation, and label-detection services, and the local
// renderer and remuxer. The workflow depends only on these interfaces, so
// every external service can be substituted with a test double.
package services

import (
	"context"
	"time"

	"github.com/Netinhoklz/video-translate-legend-detection/internal/core/model"
)

// Job terminal and transitional states as reported by the external media
// analysis services.
const (
	StateInProgress = "IN_PROGRESS"
	StateCompleted  = "COMPLETED"
	StateFailed     = "FAILED"
)

// ObjectStore abstracts the durable storage shared with the upload surface:
// fetch-by-key, put-by-key with content metadata, and time-limited signed
// URL issuance for both directions.
type ObjectStore interface {
	// Fetch downloads the object at key into the local file at destPath.
	Fetch(ctx context.Context, key, destPath string) error

	// Put uploads the local file at srcPath under key with the given
	// content type and content disposition.
	Put(ctx context.Context, srcPath, key, contentType, disposition string) error

	// SignedGetURL issues a time-limited download URL for key.
	SignedGetURL(ctx context.Context, key string, expires time.Duration) (string, error)

	// SignedPutURL issues a time-limited upload URL for key, bound to the
	// declared content type.
	SignedPutURL(ctx context.Context, key, contentType string, expires time.Duration) (string, error)
}

// TranscriptionStatus is one poll observation of a transcription job.
type TranscriptionStatus struct {
	State         string
	TranscriptURI string // Set once the job completes.
	FailureReason string // Set when the job failed, when the service knows why.
}

// Transcriber abstracts the speech-to-text service. Submission is
// idempotent by job name: resubmitting an existing name reports
// alreadyExists instead of an error, and polling proceeds against the
// existing job.
type Transcriber interface {
	StartJob(ctx context.Context, jobName, mediaURI, mediaFormat, languageCode string) (alreadyExists bool, err error)
	JobStatus(ctx context.Context, jobName string) (*TranscriptionStatus, error)

	// FetchTranscript retrieves the result document from the completed
	// job's transcript URI and returns its transcript text, empty when the
	// document holds no transcript entries.
	FetchTranscript(ctx context.Context, transcriptURI string) (string, error)
}

// Translator abstracts the synchronous text translation service.
type Translator interface {
	Translate(ctx context.Context, text, sourceLanguage, targetLanguage string) (string, error)
}

// DetectionStatus is one poll observation of a label-detection job. Labels
// are populated only on the success terminal state.
type DetectionStatus struct {
	State         string
	Labels        []model.LabelDetection
	FailureReason string
}

// LabelDetector abstracts the asynchronous video label-detection service.
type LabelDetector interface {
	StartJob(ctx context.Context, bucket, key string, minConfidence float32) (jobID string, err error)
	JobStatus(ctx context.Context, jobID string) (*DetectionStatus, error)
}

// FrameRenderer writes a silent annotated copy of the input video: subtitle
// text and the bounding boxes of the given labels, aligned per frame.
type FrameRenderer interface {
	Render(ctx context.Context, inputPath, outputPath, subtitleText string, labels []model.LabelDetection) error
}

// RemuxOutcome is the explicit two-outcome result of an audio remux
// attempt. Remux failure is expected and recoverable, so it is data, not an
// error: the orchestrator falls back to the silent video.
type RemuxOutcome struct {
	OK     bool
	Reason string // Diagnostic detail when OK is false.
}

// AudioRemuxer merges the original media's audio track with a silent
// rendered video into outputPath.
type AudioRemuxer interface {
	Remux(ctx context.Context, silentPath, originalPath, outputPath string) RemuxOutcome
}
