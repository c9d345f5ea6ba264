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
	"archive/zip"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Netinhoklz/video-translate-legend-detection/internal/core/cor"
	"github.com/Netinhoklz/video-translate-legend-detection/internal/core/model"
)

// BundleResults writes the transcript record (a two-column CSV with one
// header row and one data row) and packs it together with the output video
// into the downloadable archive. Archive entries use base filenames so the
// extracted layout is flat.
type BundleResults struct {
	cor.BaseCommand
	sourceLanguageName string
	targetLanguageName string
}

func NewBundleResults(name, sourceLanguageName, targetLanguageName string) *BundleResults {
	return &BundleResults{
		BaseCommand:        *cor.NewBaseCommand(name),
		sourceLanguageName: sourceLanguageName,
		targetLanguageName: targetLanguageName,
	}
}

func (c *BundleResults) IsExecutable(ctx cor.Context) bool {
	return ctx != nil && ctx.GetContext() != nil &&
		ctx.Get(CtxWorkspace) != nil && ctx.Get(CtxTranscript) != nil
}

func (c *BundleResults) Execute(ctx cor.Context) {
	goCtx := ctx.GetContext()
	workspace := ctx.Get(CtxWorkspace).(*model.Workspace)
	transcript := ctx.Get(CtxTranscript).(*model.TranscriptResult)

	csvPath := workspace.TranscriptCSVPath()
	if err := writeTranscriptCSV(csvPath, c.sourceLanguageName, c.targetLanguageName, transcript); err != nil {
		c.GetErrorCounter().Add(goCtx, 1)
		ctx.AddError(c.GetName(), fmt.Errorf("%w: %v", model.ErrBundle, err))
		return
	}
	ctx.AddTempFile(csvPath)

	archivePath := workspace.ArchivePath()
	if err := writeArchive(archivePath, workspace.OutputPath(), csvPath); err != nil {
		c.GetErrorCounter().Add(goCtx, 1)
		ctx.AddError(c.GetName(), fmt.Errorf("%w: %v", model.ErrBundle, err))
		return
	}
	ctx.AddTempFile(archivePath)
	c.GetSuccessCounter().Add(goCtx, 1)
}

func writeTranscriptCSV(path, sourceName, targetName string, transcript *model.TranscriptResult) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{sourceName, targetName}); err != nil {
		return err
	}
	if err := writer.Write([]string{transcript.SourceText, transcript.TargetText}); err != nil {
		return err
	}
	writer.Flush()
	return writer.Error()
}

func writeArchive(archivePath string, files ...string) error {
	out, err := os.Create(archivePath)
	if err != nil {
		return err
	}
	defer func() { _ = out.Close() }()

	zw := zip.NewWriter(out)
	for _, path := range files {
		if err := addArchiveEntry(zw, path); err != nil {
			_ = zw.Close()
			return err
		}
	}
	return zw.Close()
}

func addArchiveEntry(zw *zip.Writer, path string) error {
	src, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = src.Close() }()

	entry, err := zw.Create(filepath.Base(path))
	if err != nil {
		return err
	}
	_, err = io.Copy(entry, src)
	return err
}
