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

// Package workflow assembles the annotation commands into the end-to-end
// pipeline and exposes the single blocking entry point the API surface
// calls per job.
package workflow

import (
	"context"
	"log/slog"
	"time"

	"github.com/Netinhoklz/video-translate-legend-detection/internal/core/commands"
	"github.com/Netinhoklz/video-translate-legend-detection/internal/core/cor"
	"github.com/Netinhoklz/video-translate-legend-detection/internal/core/model"
	"github.com/Netinhoklz/video-translate-legend-detection/internal/core/services"
)

// Settings carries the tunable pipeline parameters from configuration into
// the chain assembly.
type Settings struct {
	SourceLanguageCode string  // Transcription language (e.g. "pt-BR").
	TranslateSource    string  // Translation source code (e.g. "pt").
	TranslateTarget    string  // Translation target code (e.g. "en").
	SourceLanguageName string  // CSV header for the source column.
	TargetLanguageName string  // CSV header for the target column.
	MinLabelConfidence float32 // Detection submission threshold.
	PollInterval       time.Duration
	MaxPollAttempts    int
	WorkDir            string // Scratch directory root; empty uses the OS temp dir.
	ProcessedPrefix    string // Object-store key prefix for published artifacts.
	SignedURLTTL       time.Duration
}

// Dependencies are the external collaborators the pipeline talks to. All
// of them are interfaces so the workflow is testable without cloud
// services or a local ffmpeg.
type Dependencies struct {
	ObjectStore   services.ObjectStore
	Transcriber   services.Transcriber
	Translator    services.Translator
	LabelDetector services.LabelDetector
	Renderer      services.FrameRenderer
	Remuxer       services.AudioRemuxer
}

// AnnotationWorkflow runs one uploaded video through transcription,
// translation, label detection, overlay rendering, remuxing, bundling, and
// publication. One invocation of Run handles exactly one job; the workflow
// itself is stateless and safe for concurrent runs.
type AnnotationWorkflow struct {
	settings Settings
	chain    cor.Chain
}

// NewAnnotationWorkflow builds the command chain in pipeline order. The
// chain stops at the first failed command; the remux fallback lives inside
// its command, not in chain policy.
func NewAnnotationWorkflow(settings Settings, deps Dependencies) *AnnotationWorkflow {
	poller := services.NewPoller(settings.PollInterval, settings.MaxPollAttempts)

	chain := cor.NewBaseChain("annotation").
		AddCommand(commands.NewFetchInput("fetch_input", deps.ObjectStore)).
		AddCommand(commands.NewStartTranscription("start_transcription", deps.Transcriber, settings.SourceLanguageCode)).
		AddCommand(commands.NewStartDetection("start_detection", deps.LabelDetector, settings.MinLabelConfidence)).
		AddCommand(commands.NewAwaitTranscription("await_transcription", deps.Transcriber, poller)).
		AddCommand(commands.NewTranslateTranscript("translate_transcript", deps.Translator, settings.TranslateSource, settings.TranslateTarget)).
		AddCommand(commands.NewAwaitDetection("await_detection", deps.LabelDetector, poller)).
		AddCommand(commands.NewFilterLabels("filter_labels")).
		AddCommand(commands.NewRenderOverlay("render_overlay", deps.Renderer)).
		AddCommand(commands.NewRemuxAudio("remux_audio", deps.Remuxer)).
		AddCommand(commands.NewBundleResults("bundle_results", settings.SourceLanguageName, settings.TargetLanguageName)).
		AddCommand(commands.NewPublishResults("publish_results", deps.ObjectStore, settings.ProcessedPrefix, settings.SignedURLTTL))

	return &AnnotationWorkflow{settings: settings, chain: chain}
}

// Run executes the pipeline for one job and blocks until it finishes. On
// success it returns the terminal result; on any fatal step it returns a
// PipelineFailure with no partial results. Workspace files are removed
// before Run returns either way.
func (w *AnnotationWorkflow) Run(ctx context.Context, job *model.Job) (*model.PipelineResult, error) {
	workspace, err := model.NewWorkspace(w.settings.WorkDir, job)
	if err != nil {
		return nil, &model.PipelineFailure{Message: err.Error(), Err: err}
	}

	chainCtx := cor.NewBaseContext()
	defer chainCtx.Close()
	chainCtx.SetContext(ctx)
	chainCtx.Add(commands.CtxJob, job)
	chainCtx.Add(commands.CtxWorkspace, workspace)

	slog.Info("annotation run started", "job_id", job.ID, "key", job.Key)
	w.chain.Execute(chainCtx)

	if chainCtx.HasErrors() {
		runErr := chainCtx.Err()
		slog.Error("annotation run failed", "job_id", job.ID, "error", runErr)
		return nil, &model.PipelineFailure{Message: runErr.Error(), Err: runErr}
	}

	result, ok := chainCtx.Get(commands.CtxResult).(*model.PipelineResult)
	if !ok {
		// A command was skipped as non-executable without recording an
		// error; surface that instead of returning nothing.
		return nil, &model.PipelineFailure{Message: "pipeline finished without producing a result"}
	}
	slog.Info("annotation run completed", "job_id", job.ID, "video_key", result.OutputVideoKey)
	return result, nil
}
