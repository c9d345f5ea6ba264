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
	"log/slog"

	"github.com/Netinhoklz/video-translate-legend-detection/internal/core/cor"
	"github.com/Netinhoklz/video-translate-legend-detection/internal/core/model"
	"github.com/Netinhoklz/video-translate-legend-detection/internal/core/services"
)

// StartDetection submits the label-detection job for the uploaded object
// with the configured confidence floor. The service assigns the job ID;
// it is stored in the context for the polling step.
type StartDetection struct {
	cor.BaseCommand
	detector      services.LabelDetector
	minConfidence float32
}

func NewStartDetection(name string, detector services.LabelDetector, minConfidence float32) *StartDetection {
	return &StartDetection{
		BaseCommand:   *cor.NewBaseCommand(name),
		detector:      detector,
		minConfidence: minConfidence,
	}
}

func (c *StartDetection) IsExecutable(ctx cor.Context) bool {
	return ctx != nil && ctx.GetContext() != nil && ctx.Get(CtxJob) != nil
}

func (c *StartDetection) Execute(ctx cor.Context) {
	goCtx := ctx.GetContext()
	job := ctx.Get(CtxJob).(*model.Job)

	jobID, err := c.detector.StartJob(goCtx, job.Bucket, job.Key, c.minConfidence)
	if err != nil {
		c.GetErrorCounter().Add(goCtx, 1)
		ctx.AddError(c.GetName(), err)
		return
	}
	slog.Info("started label detection job", "job_id", job.ID, "detection_job", jobID)

	ctx.Add(CtxDetectionJob, jobID)
	c.GetSuccessCounter().Add(goCtx, 1)
}
