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
	"github.com/Netinhoklz/video-translate-legend-detection/internal/core/cor"
	"github.com/Netinhoklz/video-translate-legend-detection/internal/core/model"
	"github.com/Netinhoklz/video-translate-legend-detection/internal/core/services"
)

// RenderOverlay burns the bilingual subtitles and the filtered label boxes
// into every frame, producing the silent annotated video in the workspace.
// The subtitle track uses the translated text; the original-language text
// rides along in the transcript record instead.
type RenderOverlay struct {
	cor.BaseCommand
	renderer services.FrameRenderer
}

func NewRenderOverlay(name string, renderer services.FrameRenderer) *RenderOverlay {
	return &RenderOverlay{
		BaseCommand: *cor.NewBaseCommand(name),
		renderer:    renderer,
	}
}

func (c *RenderOverlay) IsExecutable(ctx cor.Context) bool {
	return ctx != nil && ctx.GetContext() != nil &&
		ctx.Get(CtxWorkspace) != nil && ctx.Get(CtxTranscript) != nil &&
		ctx.Get(CtxFilteredLabels) != nil
}

func (c *RenderOverlay) Execute(ctx cor.Context) {
	goCtx := ctx.GetContext()
	workspace := ctx.Get(CtxWorkspace).(*model.Workspace)
	transcript := ctx.Get(CtxTranscript).(*model.TranscriptResult)
	labels := ctx.Get(CtxFilteredLabels).([]model.LabelDetection)

	silentPath := workspace.SilentPath()
	err := c.renderer.Render(goCtx, workspace.InputPath(), silentPath, transcript.TargetText, labels)
	if err != nil {
		c.GetErrorCounter().Add(goCtx, 1)
		ctx.AddError(c.GetName(), err)
		return
	}
	ctx.AddTempFile(silentPath)
	c.GetSuccessCounter().Add(goCtx, 1)
}
