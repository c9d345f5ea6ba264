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

// Package workflow_test exercises the assembled annotation pipeline end to
// end against in-memory doubles: no cloud services, no network, no ffmpeg.
package workflow_test

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"testing"
	"time"

	"github.com/Netinhoklz/video-translate-legend-detection/internal/core/model"
	"github.com/Netinhoklz/video-translate-legend-detection/internal/core/services"
	"github.com/Netinhoklz/video-translate-legend-detection/internal/core/workflow"
	"github.com/Netinhoklz/video-translate-legend-detection/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// harness bundles one workflow instance with the doubles behind it so a
// test can both drive a run and inspect what the collaborators saw.
type harness struct {
	store       *testutil.FakeObjectStore
	transcriber *testutil.FakeTranscriber
	translator  *testutil.FakeTranslator
	detector    *testutil.FakeLabelDetector
	renderer    *testutil.FakeRenderer
	remuxer     *testutil.FakeRemuxer
	workflow    *workflow.AnnotationWorkflow
	job         *model.Job
}

// newHarness wires a happy-path run: one uploaded video, a Portuguese
// transcript mentioning a dog, and one detection snapshot for "Dog".
func newHarness(t *testing.T) *harness {
	t.Helper()

	h := &harness{
		store: testutil.NewFakeObjectStore(),
		transcriber: &testutil.FakeTranscriber{
			Statuses: []services.TranscriptionStatus{
				{State: services.StateInProgress},
				{State: services.StateCompleted, TranscriptURI: "https://example.com/t.json"},
			},
			Transcript: "o cachorro correu",
		},
		translator: &testutil.FakeTranslator{
			Translations: map[string]string{"o cachorro correu": "the dog ran"},
		},
		detector: &testutil.FakeLabelDetector{
			Statuses: []services.DetectionStatus{
				{State: services.StateInProgress},
				{State: services.StateCompleted, Labels: []model.LabelDetection{
					{Name: "Dog", Confidence: 97.1, TimestampMillis: 500,
						Instances: []model.BoundingBox{{Left: 0.1, Top: 0.2, Width: 0.3, Height: 0.4}}},
					{Name: "Tree", Confidence: 88.0, TimestampMillis: 500},
				}},
			},
		},
		renderer: &testutil.FakeRenderer{},
		remuxer:  &testutil.FakeRemuxer{Outcome: services.RemuxOutcome{OK: true}},
	}

	h.job = model.NewJob("job-1", "test-bucket", "uploads/job-1_clip.mp4", "clip.mp4")
	h.store.Seed(h.job.Key, []byte("fake video bytes"))

	settings := workflow.Settings{
		SourceLanguageCode: "pt-BR",
		TranslateSource:    "pt",
		TranslateTarget:    "en",
		SourceLanguageName: "Portuguese",
		TargetLanguageName: "English",
		MinLabelConfidence: 70,
		PollInterval:       time.Millisecond,
		MaxPollAttempts:    50,
		WorkDir:            t.TempDir(),
		ProcessedPrefix:    "processed",
		SignedURLTTL:       time.Hour,
	}
	h.workflow = workflow.NewAnnotationWorkflow(settings, workflow.Dependencies{
		ObjectStore:   h.store,
		Transcriber:   h.transcriber,
		Translator:    h.translator,
		LabelDetector: h.detector,
		Renderer:      h.renderer,
		Remuxer:       h.remuxer,
	})
	return h
}

// TestAnnotationWorkflowSuccess drives the full pipeline and checks the
// terminal result: published keys, signed URLs, the transcript pair, and
// the label summary restricted to mentioned labels.
func TestAnnotationWorkflowSuccess(t *testing.T) {
	h := newHarness(t)

	result, err := h.workflow.Run(context.Background(), h.job)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, "processed/job-1_clip.mp4", result.OutputVideoKey)
	assert.Equal(t, "processed/result_job-1.zip", result.ArchiveKey)
	assert.Equal(t, "https://signed.example/get/processed/job-1_clip.mp4", result.OutputVideoURL)
	assert.Equal(t, "https://signed.example/get/processed/result_job-1.zip", result.ArchiveURL)
	assert.Equal(t, "o cachorro correu", result.TranscriptPt)
	assert.Equal(t, "the dog ran", result.TranscriptEn)

	// "Tree" is never mentioned in the translated transcript, so only the
	// dog survives into the summary.
	require.Len(t, result.LabelSummary, 1)
	assert.Equal(t, "Dog", result.LabelSummary[0].Name)
	assert.Equal(t, 97.1, result.LabelSummary[0].Confidence)

	// The renderer drew the translated text and only the mentioned label.
	assert.Equal(t, "the dog ran", h.renderer.SubtitleText)
	require.Len(t, h.renderer.Labels, 1)
	assert.Equal(t, "Dog", h.renderer.Labels[0].Name)

	// Both artifacts were published to the store.
	_, ok := h.store.Object(result.OutputVideoKey)
	assert.True(t, ok)
	_, ok = h.store.Object(result.ArchiveKey)
	assert.True(t, ok)

	// The transcription job name derives from the run's job ID.
	require.Len(t, h.transcriber.StartedJobs, 1)
	assert.Equal(t, "transcribe_job-1", h.transcriber.StartedJobs[0])
}

// TestAnnotationWorkflowArchiveContents unpacks the published archive and
// verifies its flat layout and the two-row transcript CSV with the
// language display names as header.
func TestAnnotationWorkflowArchiveContents(t *testing.T) {
	h := newHarness(t)

	result, err := h.workflow.Run(context.Background(), h.job)
	require.NoError(t, err)

	archive, ok := h.store.Object(result.ArchiveKey)
	require.True(t, ok)

	reader, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	require.NoError(t, err)
	require.Len(t, reader.File, 2)

	names := []string{reader.File[0].Name, reader.File[1].Name}
	assert.Contains(t, names, "processed_job-1_clip.mp4")
	assert.Contains(t, names, "transcript_job-1.csv")

	for _, f := range reader.File {
		if f.Name != "transcript_job-1.csv" {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		content, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())

		rows, err := csv.NewReader(bytes.NewReader(content)).ReadAll()
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, []string{"Portuguese", "English"}, rows[0])
		assert.Equal(t, []string{"o cachorro correu", "the dog ran"}, rows[1])
	}
}

// TestAnnotationWorkflowRemuxFallback forces the remux to fail and checks
// that the run still succeeds, publishing the silent render byte for byte
// as the output video.
func TestAnnotationWorkflowRemuxFallback(t *testing.T) {
	h := newHarness(t)
	h.remuxer.Outcome = services.RemuxOutcome{OK: false, Reason: "exit status 1"}

	result, err := h.workflow.Run(context.Background(), h.job)
	require.NoError(t, err)

	published, ok := h.store.Object(result.OutputVideoKey)
	require.True(t, ok)
	// The fake renderer copies the input bytes, so the fallback must have
	// promoted exactly those bytes.
	assert.Equal(t, []byte("fake video bytes"), published)
	assert.Equal(t, 1, h.remuxer.Calls)
}

// TestAnnotationWorkflowTranscriptionFailure checks the fatal path: a
// transcription job that terminates FAILED fails the whole run with a
// classifiable error and no result.
func TestAnnotationWorkflowTranscriptionFailure(t *testing.T) {
	h := newHarness(t)
	h.transcriber.Statuses = []services.TranscriptionStatus{
		{State: services.StateFailed, FailureReason: "unsupported sample rate"},
	}

	result, err := h.workflow.Run(context.Background(), h.job)
	assert.Nil(t, result)
	require.Error(t, err)

	var failure *model.PipelineFailure
	require.ErrorAs(t, err, &failure)
	var transcription *model.TranscriptionFailedError
	assert.ErrorAs(t, err, &transcription)
	assert.Equal(t, "unsupported sample rate", transcription.Reason)

	// Nothing was rendered or published.
	assert.Equal(t, 0, h.renderer.Renders)
	_, ok := h.store.Object("processed/job-1_clip.mp4")
	assert.False(t, ok)
}

// TestAnnotationWorkflowDetectionFailure checks the same policy for the
// detection side.
func TestAnnotationWorkflowDetectionFailure(t *testing.T) {
	h := newHarness(t)
	h.detector.Statuses = []services.DetectionStatus{
		{State: services.StateFailed, FailureReason: "video too long"},
	}

	result, err := h.workflow.Run(context.Background(), h.job)
	assert.Nil(t, result)

	var detection *model.DetectionFailedError
	require.ErrorAs(t, err, &detection)
	assert.Equal(t, "video too long", detection.Reason)
}

// TestAnnotationWorkflowEmptyTranscript checks the no-speech policy: the
// run completes, no translation call is made, no labels pass the filter,
// and the CSV carries an empty data row.
func TestAnnotationWorkflowEmptyTranscript(t *testing.T) {
	h := newHarness(t)
	h.transcriber.Transcript = ""

	result, err := h.workflow.Run(context.Background(), h.job)
	require.NoError(t, err)

	assert.Equal(t, "", result.TranscriptPt)
	assert.Equal(t, "", result.TranscriptEn)
	assert.Empty(t, result.LabelSummary)
	assert.Empty(t, h.translator.Calls)
	assert.Empty(t, h.renderer.Labels)
	assert.Equal(t, 1, h.renderer.Renders)
}

// TestAnnotationWorkflowTranscriptionConflict checks idempotent
// resubmission: when the transcription service reports the job name as
// already existing, the run polls the existing job and completes normally.
func TestAnnotationWorkflowTranscriptionConflict(t *testing.T) {
	h := newHarness(t)
	h.transcriber.AlreadyExists = true

	result, err := h.workflow.Run(context.Background(), h.job)
	require.NoError(t, err)
	assert.Equal(t, "o cachorro correu", result.TranscriptPt)
}

// TestAnnotationWorkflowCancellation checks that a canceled caller
// context aborts the run and surfaces the cancellation.
func TestAnnotationWorkflowCancellation(t *testing.T) {
	h := newHarness(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := h.workflow.Run(ctx, h.job)
	assert.Nil(t, result)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
