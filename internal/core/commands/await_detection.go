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

// AwaitDetection blocks until the label-detection job reaches a terminal
// state and stores the full label set. An empty label set is a valid
// outcome; a failed job fails the run.
type AwaitDetection struct {
	cor.BaseCommand
	detector services.LabelDetector
	poller   *services.Poller
}

func NewAwaitDetection(name string, detector services.LabelDetector, poller *services.Poller) *AwaitDetection {
	return &AwaitDetection{
		BaseCommand: *cor.NewBaseCommand(name),
		detector:    detector,
		poller:      poller,
	}
}

func (c *AwaitDetection) IsExecutable(ctx cor.Context) bool {
	return ctx != nil && ctx.GetContext() != nil && ctx.Get(CtxDetectionJob) != nil
}

func (c *AwaitDetection) Execute(ctx cor.Context) {
	goCtx := ctx.GetContext()
	jobID := ctx.Get(CtxDetectionJob).(string)

	var labels []model.LabelDetection
	poll := func(pollCtx context.Context) (services.PollObservation, error) {
		status, err := c.detector.JobStatus(pollCtx, jobID)
		if err != nil {
			return services.PollObservation{}, err
		}
		labels = status.Labels
		return services.PollObservation{State: status.State, FailureReason: status.FailureReason}, nil
	}

	_, err := c.poller.WaitForCompletion(goCtx, "detection", poll,
		services.StateCompleted, services.StateFailed)
	if err != nil {
		var jobErr *services.ExternalJobError
		if errors.As(err, &jobErr) {
			err = &model.DetectionFailedError{Reason: jobErr.Reason}
		}
		c.GetErrorCounter().Add(goCtx, 1)
		ctx.AddError(c.GetName(), err)
		return
	}
	slog.Info("label detection completed", "detection_job", jobID, "snapshots", len(labels))

	ctx.Add(CtxLabels, labels)
	c.GetSuccessCounter().Add(goCtx, 1)
}
