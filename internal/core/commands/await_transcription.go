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
	"context"
	"errors"
	"log/slog"

	"github.com/Netinhoklz/video-translate-legend-detection/internal/core/cor"
	"github.com/Netinhoklz/video-translate-legend-detection/internal/core/model"
	"github.com/Netinhoklz/video-translate-legend-detection/internal/core/services"
)

// AwaitTranscription blocks until the transcription job reaches a terminal
// state, then fetches the transcript text. A job that fails terminally
// fails the run; a job that completes with no speech yields an empty
// transcript, which downstream steps treat as "no subtitles".
type AwaitTranscription struct {
	cor.BaseCommand
	transcriber services.Transcriber
	poller      *services.Poller
}

func NewAwaitTranscription(name string, transcriber services.Transcriber, poller *services.Poller) *AwaitTranscription {
	return &AwaitTranscription{
		BaseCommand: *cor.NewBaseCommand(name),
		transcriber: transcriber,
		poller:      poller,
	}
}

func (c *AwaitTranscription) IsExecutable(ctx cor.Context) bool {
	return ctx != nil && ctx.GetContext() != nil && ctx.Get(CtxTranscriptionJob) != nil
}

func (c *AwaitTranscription) Execute(ctx cor.Context) {
	goCtx := ctx.GetContext()
	jobName := ctx.Get(CtxTranscriptionJob).(string)

	var transcriptURI string
	poll := func(pollCtx context.Context) (services.PollObservation, error) {
		status, err := c.transcriber.JobStatus(pollCtx, jobName)
		if err != nil {
			return services.PollObservation{}, err
		}
		transcriptURI = status.TranscriptURI
		return services.PollObservation{State: status.State, FailureReason: status.FailureReason}, nil
	}

	_, err := c.poller.WaitForCompletion(goCtx, "transcription", poll,
		services.StateCompleted, services.StateFailed)
	if err != nil {
		var jobErr *services.ExternalJobError
		if errors.As(err, &jobErr) {
			err = &model.TranscriptionFailedError{Reason: jobErr.Reason}
		}
		c.GetErrorCounter().Add(goCtx, 1)
		ctx.AddError(c.GetName(), err)
		return
	}

	text, err := c.transcriber.FetchTranscript(goCtx, transcriptURI)
	if err != nil {
		c.GetErrorCounter().Add(goCtx, 1)
		ctx.AddError(c.GetName(), err)
		return
	}
	if text == "" {
		slog.Warn("transcription completed with no speech detected", "transcription_job", jobName)
	}

	ctx.Add(CtxTranscript, &model.TranscriptResult{SourceText: text})
	c.GetSuccessCounter().Add(goCtx, 1)
}
