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

// Package commands contains the individual steps of the annotation
// pipeline. Each command reads named values from the chain context, talks
// to at most one external collaborator, and writes its result back under a
// named key for the downstream steps.
package commands

// Context keys for the values the pipeline commands share. The job and
// workspace are seeded by the workflow before the chain runs; everything
// else is produced by one command and consumed by later ones.
const (
	CtxJob              = "job"
	CtxWorkspace        = "workspace"
	CtxTranscriptionJob = "transcription_job_name"
	CtxDetectionJob     = "detection_job_id"
	CtxTranscript       = "transcript"
	CtxLabels           = "labels"
	CtxFilteredLabels   = "labels_filtered"
	CtxResult           = "result"
)
