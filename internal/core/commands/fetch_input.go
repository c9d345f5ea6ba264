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

package commands

import (
	"fmt"
	"log/slog"

	"github.com/h2non/filetype"

	"github.com/Netinhoklz/video-translate-legend-detection/internal/core/cor"
	"github.com/Netinhoklz/video-translate-legend-detection/internal/core/model"
	"github.com/Netinhoklz/video-translate-legend-detection/internal/core/services"
)

// FetchInput downloads the job's uploaded video from the object store into
// the run workspace. The local copy is registered as a temp file so the
// context cleans it up when the run ends. When the job carries no media
// format (extension-less upload), the format is sniffed from the file
// content so the transcription submission can still declare it.
type FetchInput struct {
	cor.BaseCommand
	store services.ObjectStore
}

func NewFetchInput(name string, store services.ObjectStore) *FetchInput {
	return &FetchInput{
		BaseCommand: *cor.NewBaseCommand(name),
		store:       store,
	}
}

func (c *FetchInput) IsExecutable(ctx cor.Context) bool {
	return ctx != nil && ctx.GetContext() != nil &&
		ctx.Get(CtxJob) != nil && ctx.Get(CtxWorkspace) != nil
}

func (c *FetchInput) Execute(ctx cor.Context) {
	goCtx := ctx.GetContext()
	job := ctx.Get(CtxJob).(*model.Job)
	workspace := ctx.Get(CtxWorkspace).(*model.Workspace)

	localPath := workspace.InputPath()
	if err := c.store.Fetch(goCtx, job.Key, localPath); err != nil {
		c.GetErrorCounter().Add(goCtx, 1)
		ctx.AddError(c.GetName(), fmt.Errorf("%w: %s: %v", model.ErrInputFetch, job.Key, err))
		return
	}
	ctx.AddTempFile(localPath)

	if job.MediaFormat == "" {
		kind, err := filetype.MatchFile(localPath)
		if err != nil || kind == filetype.Unknown {
			slog.Warn("could not sniff media format", "job_id", job.ID, "file", localPath)
		} else {
			job.MediaFormat = kind.Extension
		}
	}

	slog.Info("fetched input media", "job_id", job.ID, "key", job.Key, "format", job.MediaFormat)
	c.GetSuccessCounter().Add(goCtx, 1)
}
