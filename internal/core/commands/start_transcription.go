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

	"github.com/Netinhoklz/video-translate-legend-detection/internal/core/cor"
	"github.com/Netinhoklz/video-translate-legend-detection/internal/core/model"
	"github.com/Netinhoklz/video-translate-legend-detection/internal/core/services"
)

// StartTranscription submits the speech-to-text job for the uploaded
// object. The job name is derived from the run's job ID, which makes the
// submission idempotent: a retried run reattaches to the job it started
// before instead of failing.
type StartTranscription struct {
	cor.BaseCommand
	transcriber  services.Transcriber
	languageCode string
}

func NewStartTranscription(name string, transcriber services.Transcriber, languageCode string) *StartTranscription {
	return &StartTranscription{
		BaseCommand:  *cor.NewBaseCommand(name),
		transcriber:  transcriber,
		languageCode: languageCode,
	}
}

func (c *StartTranscription) IsExecutable(ctx cor.Context) bool {
	return ctx != nil && ctx.GetContext() != nil && ctx.Get(CtxJob) != nil
}

func (c *StartTranscription) Execute(ctx cor.Context) {
	goCtx := ctx.GetContext()
	job := ctx.Get(CtxJob).(*model.Job)

	jobName := TranscriptionJobName(job)
	mediaURI := fmt.Sprintf("s3://%s/%s", job.Bucket, job.Key)
	alreadyExists, err := c.transcriber.StartJob(goCtx, jobName, mediaURI, job.MediaFormat, c.languageCode)
	if err != nil {
		c.GetErrorCounter().Add(goCtx, 1)
		ctx.AddError(c.GetName(), err)
		return
	}
	if alreadyExists {
		slog.Info("transcription job already exists, polling existing job",
			"job_id", job.ID, "transcription_job", jobName)
	} else {
		slog.Info("started transcription job", "job_id", job.ID, "transcription_job", jobName)
	}

	ctx.Add(CtxTranscriptionJob, jobName)
	c.GetSuccessCounter().Add(goCtx, 1)
}

// TranscriptionJobName derives the deterministic per-run job name used for
// submission and for conflict reattachment.
func TranscriptionJobName(job *model.Job) string {
	return fmt.Sprintf("transcribe_%s", job.ID)
}
