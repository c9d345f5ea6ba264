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
	"fmt"
	"os"
	"path/filepath"
)

// Workspace is the per-run scratch area on local disk. Exactly one workflow
// invocation owns a Workspace; every filename is namespaced by the job ID so
// concurrent runs sharing a directory cannot collide.
type Workspace struct {
	Dir string
	Job *Job
}

// NewWorkspace creates the working directory (when missing) and returns the
// workspace for a job. An empty dir falls back to the OS temp directory.
func NewWorkspace(dir string, job *Job) (*Workspace, error) {
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("could not create workspace dir %s: %w", dir, err)
	}
	return &Workspace{Dir: dir, Job: job}, nil
}

// InputPath is where the fetched input video is stored.
func (w *Workspace) InputPath() string {
	return filepath.Join(w.Dir, fmt.Sprintf("%s_%s", w.Job.ID, w.Job.Filename))
}

// SilentPath is where the rendered, audio-less overlay video is written.
func (w *Workspace) SilentPath() string {
	return filepath.Join(w.Dir, fmt.Sprintf("temp_%s_%s", w.Job.ID, w.Job.Filename))
}

// OutputPath is where the final (remuxed or fallback) video lands.
func (w *Workspace) OutputPath() string {
	return filepath.Join(w.Dir, fmt.Sprintf("processed_%s_%s", w.Job.ID, w.Job.Filename))
}

// TranscriptCSVPath is where the two-column transcript record is written.
func (w *Workspace) TranscriptCSVPath() string {
	return filepath.Join(w.Dir, fmt.Sprintf("transcript_%s.csv", w.Job.ID))
}

// ArchivePath is where the downloadable result archive is written.
func (w *Workspace) ArchivePath() string {
	return filepath.Join(w.Dir, fmt.Sprintf("result_%s.zip", w.Job.ID))
}
