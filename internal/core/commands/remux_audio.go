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
	"os"

	"github.com/Netinhoklz/video-translate-legend-detection/internal/core/cor"
	"github.com/Netinhoklz/video-translate-legend-detection/internal/core/model"
	"github.com/Netinhoklz/video-translate-legend-detection/internal/core/services"
)

// RemuxAudio merges the original audio track into the silent rendered
// video. Remux failure never fails the run: the silent video is promoted
// to the output path instead, so an output video always exists after this
// step.
type RemuxAudio struct {
	cor.BaseCommand
	remuxer services.AudioRemuxer
}

func NewRemuxAudio(name string, remuxer services.AudioRemuxer) *RemuxAudio {
	return &RemuxAudio{
		BaseCommand: *cor.NewBaseCommand(name),
		remuxer:     remuxer,
	}
}

func (c *RemuxAudio) IsExecutable(ctx cor.Context) bool {
	return ctx != nil && ctx.GetContext() != nil && ctx.Get(CtxWorkspace) != nil
}

func (c *RemuxAudio) Execute(ctx cor.Context) {
	goCtx := ctx.GetContext()
	workspace := ctx.Get(CtxWorkspace).(*model.Workspace)

	silentPath := workspace.SilentPath()
	outputPath := workspace.OutputPath()
	outcome := c.remuxer.Remux(goCtx, silentPath, workspace.InputPath(), outputPath)
	if !outcome.OK {
		slog.Warn("audio remux failed, falling back to silent video",
			"job_id", workspace.Job.ID, "reason", outcome.Reason)
		if err := os.Rename(silentPath, outputPath); err != nil {
			c.GetErrorCounter().Add(goCtx, 1)
			ctx.AddError(c.GetName(), fmt.Errorf("silent fallback failed: %w", err))
			return
		}
	}
	ctx.AddTempFile(outputPath)
	c.GetSuccessCounter().Add(goCtx, 1)
}
