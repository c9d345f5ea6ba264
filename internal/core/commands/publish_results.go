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
	"path"
	"time"

	"github.com/Netinhoklz/video-translate-legend-detection/internal/core/cor"
	"github.com/Netinhoklz/video-translate-legend-detection/internal/core/model"
	"github.com/Netinhoklz/video-translate-legend-detection/internal/core/services"
)

// PublishResults uploads the annotated video and the result archive to the
// object store, issues signed download URLs for both, and assembles the
// terminal PipelineResult. The video is published with an inline content
// disposition so the signed URL plays in a browser tab.
type PublishResults struct {
	cor.BaseCommand
	store           services.ObjectStore
	processedPrefix string
	urlTTL          time.Duration
}

func NewPublishResults(name string, store services.ObjectStore, processedPrefix string, urlTTL time.Duration) *PublishResults {
	return &PublishResults{
		BaseCommand:     *cor.NewBaseCommand(name),
		store:           store,
		processedPrefix: processedPrefix,
		urlTTL:          urlTTL,
	}
}

func (c *PublishResults) IsExecutable(ctx cor.Context) bool {
	return ctx != nil && ctx.GetContext() != nil &&
		ctx.Get(CtxJob) != nil && ctx.Get(CtxWorkspace) != nil &&
		ctx.Get(CtxTranscript) != nil && ctx.Get(CtxFilteredLabels) != nil
}

func (c *PublishResults) Execute(ctx cor.Context) {
	goCtx := ctx.GetContext()
	job := ctx.Get(CtxJob).(*model.Job)
	workspace := ctx.Get(CtxWorkspace).(*model.Workspace)
	transcript := ctx.Get(CtxTranscript).(*model.TranscriptResult)
	labels := ctx.Get(CtxFilteredLabels).([]model.LabelDetection)

	videoKey := path.Join(c.processedPrefix, fmt.Sprintf("%s_%s", job.ID, job.Filename))
	archiveKey := path.Join(c.processedPrefix, fmt.Sprintf("result_%s.zip", job.ID))

	if err := c.store.Put(goCtx, workspace.OutputPath(), videoKey, "video/mp4", "inline"); err != nil {
		c.fail(ctx, fmt.Errorf("%w: video: %v", model.ErrPublish, err))
		return
	}
	if err := c.store.Put(goCtx, workspace.ArchivePath(), archiveKey, "application/zip", ""); err != nil {
		c.fail(ctx, fmt.Errorf("%w: archive: %v", model.ErrPublish, err))
		return
	}

	videoURL, err := c.store.SignedGetURL(goCtx, videoKey, c.urlTTL)
	if err != nil {
		c.fail(ctx, fmt.Errorf("%w: video url: %v", model.ErrPublish, err))
		return
	}
	archiveURL, err := c.store.SignedGetURL(goCtx, archiveKey, c.urlTTL)
	if err != nil {
		c.fail(ctx, fmt.Errorf("%w: archive url: %v", model.ErrPublish, err))
		return
	}

	result := &model.PipelineResult{
		OutputVideoKey: videoKey,
		OutputVideoURL: videoURL,
		ArchiveKey:     archiveKey,
		ArchiveURL:     archiveURL,
		TranscriptPt:   transcript.SourceText,
		TranscriptEn:   transcript.TargetText,
		LabelSummary:   model.SummarizeLabels(labels),
	}
	slog.Info("published annotated results",
		"job_id", job.ID, "video_key", videoKey, "archive_key", archiveKey)

	ctx.Add(CtxResult, result)
	c.GetSuccessCounter().Add(goCtx, 1)
}

func (c *PublishResults) fail(ctx cor.Context, err error) {
	c.GetErrorCounter().Add(ctx.GetContext(), 1)
	ctx.AddError(c.GetName(), err)
}
