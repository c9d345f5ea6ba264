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

// Package testutil provides in-memory doubles for every external
// collaborator of the annotation pipeline, so workflow tests run without
// cloud credentials, network access, or a local ffmpeg.
package testutil

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/Netinhoklz/video-translate-legend-detection/internal/core/model"
	"github.com/Netinhoklz/video-translate-legend-detection/internal/core/services"
)

// FakeObjectStore keeps objects in memory, keyed the same way the real
// bucket is. Signed URLs are deterministic fakes.
type FakeObjectStore struct {
	mu      sync.Mutex
	objects map[string][]byte
}

var _ services.ObjectStore = &FakeObjectStore{}

func NewFakeObjectStore() *FakeObjectStore {
	return &FakeObjectStore{objects: make(map[string][]byte)}
}

// Seed stores content under key, standing in for a client-side upload.
func (f *FakeObjectStore) Seed(key string, content []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[key] = content
}

// Object returns the stored content and whether the key exists.
func (f *FakeObjectStore) Object(key string) ([]byte, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	content, ok := f.objects[key]
	return content, ok
}

func (f *FakeObjectStore) Fetch(_ context.Context, key, destPath string) error {
	content, ok := f.Object(key)
	if !ok {
		return fmt.Errorf("object not found: %s", key)
	}
	return os.WriteFile(destPath, content, 0o644)
}

func (f *FakeObjectStore) Put(_ context.Context, srcPath, key, _, _ string) error {
	content, err := os.ReadFile(srcPath)
	if err != nil {
		return err
	}
	f.Seed(key, content)
	return nil
}

func (f *FakeObjectStore) SignedGetURL(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://signed.example/get/" + key, nil
}

func (f *FakeObjectStore) SignedPutURL(_ context.Context, key, _ string, _ time.Duration) (string, error) {
	return "https://signed.example/put/" + key, nil
}

// FakeTranscriber plays back a scripted sequence of job statuses, then
// keeps returning the last one. FetchTranscript returns the configured
// text regardless of URI.
type FakeTranscriber struct {
	mu            sync.Mutex
	Statuses      []services.TranscriptionStatus
	Transcript    string
	StartErr      error
	AlreadyExists bool

	StartedJobs []string
	polls       int
}

var _ services.Transcriber = &FakeTranscriber{}

func (f *FakeTranscriber) StartJob(_ context.Context, jobName, _, _, _ string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.StartErr != nil {
		return false, f.StartErr
	}
	f.StartedJobs = append(f.StartedJobs, jobName)
	return f.AlreadyExists, nil
}

func (f *FakeTranscriber) JobStatus(_ context.Context, _ string) (*services.TranscriptionStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Statuses) == 0 {
		return nil, fmt.Errorf("no scripted transcription statuses")
	}
	i := f.polls
	if i >= len(f.Statuses) {
		i = len(f.Statuses) - 1
	}
	f.polls++
	status := f.Statuses[i]
	return &status, nil
}

func (f *FakeTranscriber) FetchTranscript(_ context.Context, _ string) (string, error) {
	return f.Transcript, nil
}

// FakeTranslator translates via a fixed lookup table, falling back to a
// marker-prefixed echo so tests can assert the text passed through it.
type FakeTranslator struct {
	mu           sync.Mutex
	Translations map[string]string
	Err          error
	Calls        []string
}

var _ services.Translator = &FakeTranslator{}

func (f *FakeTranslator) Translate(_ context.Context, text, _, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return "", f.Err
	}
	f.Calls = append(f.Calls, text)
	if out, ok := f.Translations[text]; ok {
		return out, nil
	}
	return "translated: " + text, nil
}

// FakeLabelDetector plays back scripted detection statuses the same way
// FakeTranscriber does.
type FakeLabelDetector struct {
	mu       sync.Mutex
	Statuses []services.DetectionStatus
	StartErr error
	JobID    string

	Started []string // "bucket/key" of every submission.
	polls   int
}

var _ services.LabelDetector = &FakeLabelDetector{}

func (f *FakeLabelDetector) StartJob(_ context.Context, bucket, key string, _ float32) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.StartErr != nil {
		return "", f.StartErr
	}
	f.Started = append(f.Started, bucket+"/"+key)
	jobID := f.JobID
	if jobID == "" {
		jobID = "detection-job-1"
	}
	return jobID, nil
}

func (f *FakeLabelDetector) JobStatus(_ context.Context, _ string) (*services.DetectionStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Statuses) == 0 {
		return nil, fmt.Errorf("no scripted detection statuses")
	}
	i := f.polls
	if i >= len(f.Statuses) {
		i = len(f.Statuses) - 1
	}
	f.polls++
	status := f.Statuses[i]
	return &status, nil
}

// FakeRenderer copies the input file to the output path and records what
// it was asked to draw.
type FakeRenderer struct {
	mu           sync.Mutex
	Err          error
	SubtitleText string
	Labels       []model.LabelDetection
	Renders      int
}

var _ services.FrameRenderer = &FakeRenderer{}

func (f *FakeRenderer) Render(_ context.Context, inputPath, outputPath, subtitleText string, labels []model.LabelDetection) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}
	f.SubtitleText = subtitleText
	f.Labels = labels
	f.Renders++
	content, err := os.ReadFile(inputPath)
	if err != nil {
		return err
	}
	return os.WriteFile(outputPath, content, 0o644)
}

// FakeRemuxer reports the configured outcome. On success it writes the
// output file the way the real remuxer would; on failure it writes
// nothing, leaving the fallback to the pipeline.
type FakeRemuxer struct {
	mu      sync.Mutex
	Outcome services.RemuxOutcome
	Calls   int
}

var _ services.AudioRemuxer = &FakeRemuxer{}

func (f *FakeRemuxer) Remux(_ context.Context, silentPath, _, outputPath string) services.RemuxOutcome {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls++
	if !f.Outcome.OK {
		return f.Outcome
	}
	content, err := os.ReadFile(silentPath)
	if err != nil {
		return services.RemuxOutcome{OK: false, Reason: err.Error()}
	}
	if err := os.WriteFile(outputPath, content, 0o644); err != nil {
		return services.RemuxOutcome{OK: false, Reason: err.Error()}
	}
	return f.Outcome
}
