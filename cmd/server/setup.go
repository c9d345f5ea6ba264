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

package main

import (
	"context"
	"log"

	"github.com/Netinhoklz/video-translate-legend-detection/internal/cloud"
	"github.com/Netinhoklz/video-translate-legend-detection/internal/core/overlay"
	"github.com/Netinhoklz/video-translate-legend-detection/internal/core/workflow"
)

// StateManager holds the shared dependencies of the server: configuration,
// the cloud client container, and the assembled annotation workflow.
type StateManager struct {
	config   *cloud.Config
	cloud    *cloud.ServiceClients
	workflow *workflow.AnnotationWorkflow
}

var state = &StateManager{}

// GetConfig provides the singleton application configuration, loading the
// TOML hierarchy on first use.
func GetConfig() *cloud.Config {
	if state.config == nil {
		config := cloud.NewConfig()
		if err := cloud.LoadConfig(config); err != nil {
			log.Fatalf("failed to load configuration: %v\n", err)
		}
		state.config = config
	}
	return state.config
}

// InitState creates the AWS service clients and assembles the annotation
// workflow from configuration. The renderer and remuxer are the real local
// implementations; tests substitute their own through the workflow's
// dependency struct.
func InitState(ctx context.Context) {
	config := GetConfig()

	cloudClients, err := cloud.NewServiceClients(ctx, config)
	if err != nil {
		panic(err)
	}
	state.cloud = cloudClients

	settings := workflow.Settings{
		SourceLanguageCode: config.Pipeline.SourceLanguageCode,
		TranslateSource:    config.Pipeline.TranslateSource,
		TranslateTarget:    config.Pipeline.TranslateTarget,
		SourceLanguageName: config.Pipeline.SourceLanguageName,
		TargetLanguageName: config.Pipeline.TargetLanguageName,
		MinLabelConfidence: config.Pipeline.MinLabelConfidence,
		PollInterval:       config.PollInterval(),
		MaxPollAttempts:    config.Pipeline.MaxPollAttempts,
		WorkDir:            config.Pipeline.WorkDir,
		ProcessedPrefix:    config.Storage.ProcessedPrefix,
		SignedURLTTL:       config.SignedURLTTL(),
	}
	deps := workflow.Dependencies{
		ObjectStore:   cloudClients.ObjectStore,
		Transcriber:   cloudClients.Transcriber,
		Translator:    cloudClients.Translator,
		LabelDetector: cloudClients.LabelDetector,
		Renderer:      overlay.NewRenderer(config.Pipeline.WordsPerChunk, config.SnapshotTolerance()),
		Remuxer:       overlay.NewFFmpegRemuxer(config.Tools.FFmpegPath, config.RemuxSettleDelay()),
	}
	state.workflow = workflow.NewAnnotationWorkflow(settings, deps)
}
