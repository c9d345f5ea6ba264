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

package model_test

import (
	"encoding/json"
	"testing"

	"github.com/Netinhoklz/video-translate-legend-detection/internal/core/model"
	"github.com/stretchr/testify/assert"
)

// TestNewJob verifies media-format derivation from the filename: the
// extension is lowercased and an extension-less name leaves the format
// empty for content sniffing after download.
func TestNewJob(t *testing.T) {
	job := model.NewJob("job-1", "bucket", "uploads/job-1_clip.MP4", "clip.MP4")
	assert.Equal(t, "mp4", job.MediaFormat)
	assert.Equal(t, "clip.MP4", job.Filename)

	job = model.NewJob("job-2", "bucket", "uploads/job-2_clip", "clip")
	assert.Equal(t, "", job.MediaFormat)
}

// TestSummarizeLabels verifies the per-name deduplication with maximum
// confidence kept, regardless of snapshot order.
func TestSummarizeLabels(t *testing.T) {
	labels := []model.LabelDetection{
		{Name: "Dog", Confidence: 81.5, TimestampMillis: 0},
		{Name: "Car", Confidence: 92.0, TimestampMillis: 500},
		{Name: "Dog", Confidence: 95.2, TimestampMillis: 1000},
		{Name: "Car", Confidence: 88.0, TimestampMillis: 1500},
	}

	summary := model.SummarizeLabels(labels)
	assert.Len(t, summary, 2)

	byName := make(map[string]float64)
	for _, score := range summary {
		byName[score.Name] = score.Confidence
	}
	assert.Equal(t, 95.2, byName["Dog"])
	assert.Equal(t, 92.0, byName["Car"])
}

// TestTranscriptDocumentText verifies decoding of the transcription
// service's result document, including the empty-transcript case.
func TestTranscriptDocumentText(t *testing.T) {
	raw := `{
		"jobName": "transcribe_job-1",
		"accountId": "123",
		"status": "COMPLETED",
		"results": {"transcripts": [{"transcript": "olá mundo"}]}
	}`
	var doc model.TranscriptDocument
	assert.NoError(t, json.Unmarshal([]byte(raw), &doc))
	assert.Equal(t, "olá mundo", doc.Text())

	var empty model.TranscriptDocument
	assert.NoError(t, json.Unmarshal([]byte(`{"results":{"transcripts":[]}}`), &empty))
	assert.Equal(t, "", empty.Text())
}

// TestWorkspacePaths verifies that every artifact path is namespaced by
// the job ID, which is what keeps concurrent runs in a shared directory
// from colliding.
func TestWorkspacePaths(t *testing.T) {
	dir := t.TempDir()
	job := model.NewJob("job-9", "bucket", "uploads/job-9_v.mp4", "v.mp4")
	ws, err := model.NewWorkspace(dir, job)
	assert.NoError(t, err)

	assert.Contains(t, ws.InputPath(), "job-9_v.mp4")
	assert.Contains(t, ws.SilentPath(), "temp_job-9_v.mp4")
	assert.Contains(t, ws.OutputPath(), "processed_job-9_v.mp4")
	assert.Contains(t, ws.TranscriptCSVPath(), "transcript_job-9.csv")
	assert.Contains(t, ws.ArchivePath(), "result_job-9.zip")
}

// TestPipelineFailureUnwrap verifies error classification through the
// workflow's terminal error type.
func TestPipelineFailureUnwrap(t *testing.T) {
	inner := &model.TranscriptionFailedError{Reason: "bad media"}
	failure := &model.PipelineFailure{Message: inner.Error(), Err: inner}

	var target *model.TranscriptionFailedError
	assert.ErrorAs(t, failure, &target)
	assert.Equal(t, "bad media", target.Reason)
}
