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

package model

import (
	"errors"
	"fmt"
)

// Sentinel errors for the fatal pipeline steps. Commands wrap these with
// step detail so callers can classify failures with errors.Is.
var (
	ErrInputFetch  = errors.New("input media fetch failed")
	ErrTranslation = errors.New("translation failed")
	ErrRender      = errors.New("overlay render failed")
	ErrBundle      = errors.New("result bundling failed")
	ErrPublish     = errors.New("result publishing failed")
)

// TranscriptionFailedError reports a transcription job that reached the
// FAILED terminal state, with the reason the service gave, if any.
type TranscriptionFailedError struct {
	Reason string
}

func (e *TranscriptionFailedError) Error() string {
	return fmt.Sprintf("transcription failed: %s", e.Reason)
}

// DetectionFailedError reports a label-detection job that reached the
// FAILED terminal state.
type DetectionFailedError struct {
	Reason string
}

func (e *DetectionFailedError) Error() string {
	if e.Reason == "" {
		return "label detection failed"
	}
	return fmt.Sprintf("label detection failed: %s", e.Reason)
}

// PipelineFailure is the single error surfaced at the workflow boundary.
// It carries the original failure message; no partial results accompany it.
type PipelineFailure struct {
	Message string
	Err     error
}

func (e *PipelineFailure) Error() string {
	return e.Message
}

func (e *PipelineFailure) Unwrap() error {
	return e.Err
}
