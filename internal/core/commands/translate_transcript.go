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

// TranslateTranscript fills in the target-language side of the transcript.
// An empty source transcript skips the service call entirely and leaves
// both sides empty.
type TranslateTranscript struct {
	cor.BaseCommand
	translator     services.Translator
	sourceLanguage string
	targetLanguage string
}

func NewTranslateTranscript(name string, translator services.Translator, sourceLanguage, targetLanguage string) *TranslateTranscript {
	return &TranslateTranscript{
		BaseCommand:    *cor.NewBaseCommand(name),
		translator:     translator,
		sourceLanguage: sourceLanguage,
		targetLanguage: targetLanguage,
	}
}

func (c *TranslateTranscript) IsExecutable(ctx cor.Context) bool {
	return ctx != nil && ctx.GetContext() != nil && ctx.Get(CtxTranscript) != nil
}

func (c *TranslateTranscript) Execute(ctx cor.Context) {
	goCtx := ctx.GetContext()
	transcript := ctx.Get(CtxTranscript).(*model.TranscriptResult)

	if transcript.SourceText == "" {
		slog.Info("empty transcript, skipping translation")
		c.GetSuccessCounter().Add(goCtx, 1)
		return
	}

	translated, err := c.translator.Translate(goCtx, transcript.SourceText, c.sourceLanguage, c.targetLanguage)
	if err != nil {
		c.GetErrorCounter().Add(goCtx, 1)
		ctx.AddError(c.GetName(), fmt.Errorf("%w: %v", model.ErrTranslation, err))
		return
	}
	transcript.TargetText = translated
	c.GetSuccessCounter().Add(goCtx, 1)
}
