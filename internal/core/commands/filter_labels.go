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
	"github.com/Netinhoklz/video-translate-legend-detection/internal/core/overlay"
)

// FilterLabels keeps only the label snapshots whose name occurs in the
// translated transcript. With no transcript nothing passes: boxes are only
// drawn for things the speaker mentioned.
type FilterLabels struct {
	cor.BaseCommand
}

func NewFilterLabels(name string) *FilterLabels {
	return &FilterLabels{BaseCommand: *cor.NewBaseCommand(name)}
}

func (c *FilterLabels) IsExecutable(ctx cor.Context) bool {
	return ctx != nil && ctx.GetContext() != nil &&
		ctx.Get(CtxLabels) != nil && ctx.Get(CtxTranscript) != nil
}

func (c *FilterLabels) Execute(ctx cor.Context) {
	goCtx := ctx.GetContext()
	labels := ctx.Get(CtxLabels).([]model.LabelDetection)
	transcript := ctx.Get(CtxTranscript).(*model.TranscriptResult)

	filtered := overlay.FilterLabels(labels, transcript.TargetText)
	slog.Info("filtered labels against transcript",
		"total", len(labels), "mentioned", len(filtered))

	ctx.Add(CtxFilteredLabels, filtered)
	c.GetSuccessCounter().Add(goCtx, 1)
}
