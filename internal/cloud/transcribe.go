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

package cloud

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/transcribe"
	ttypes "github.com/aws/aws-sdk-go-v2/service/transcribe/types"

	"github.com/Netinhoklz/video-translate-legend-detection/internal/core/model"
	"github.com/Netinhoklz/video-translate-legend-detection/internal/core/services"
)

// TranscribeService implements services.Transcriber against the AWS
// Transcribe asynchronous job API. Completed transcripts are fetched over
// HTTP from the signed URI the service returns.
type TranscribeService struct {
	client     *transcribe.Client
	httpClient *http.Client
}

var _ services.Transcriber = &TranscribeService{}

// NewTranscribeService wraps the given client.
func NewTranscribeService(client *transcribe.Client) *TranscribeService {
	return &TranscribeService{client: client, httpClient: http.DefaultClient}
}

// StartJob submits a transcription job. Job names are unique per account:
// submitting a name that already exists is reported via alreadyExists so
// the caller can poll the existing job instead of failing the run.
func (t *TranscribeService) StartJob(ctx context.Context, jobName, mediaURI, mediaFormat, languageCode string) (bool, error) {
	input := &transcribe.StartTranscriptionJobInput{
		TranscriptionJobName: aws.String(jobName),
		LanguageCode:         ttypes.LanguageCode(languageCode),
		Media: &ttypes.Media{
			MediaFileUri: aws.String(mediaURI),
		},
	}
	if mediaFormat != "" {
		input.MediaFormat = ttypes.MediaFormat(mediaFormat)
	}
	_, err := t.client.StartTranscriptionJob(ctx, input)
	if err != nil {
		var conflict *ttypes.ConflictException
		if errors.As(err, &conflict) {
			return true, nil
		}
		return false, fmt.Errorf("failed to start transcription job %s: %w", jobName, err)
	}
	return false, nil
}

// JobStatus reports the job's current state and, once completed, the URI
// of the transcript document.
func (t *TranscribeService) JobStatus(ctx context.Context, jobName string) (*services.TranscriptionStatus, error) {
	resp, err := t.client.GetTranscriptionJob(ctx, &transcribe.GetTranscriptionJobInput{
		TranscriptionJobName: aws.String(jobName),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get transcription job %s: %w", jobName, err)
	}
	job := resp.TranscriptionJob
	status := &services.TranscriptionStatus{
		State: string(job.TranscriptionJobStatus),
	}
	if job.Transcript != nil {
		status.TranscriptURI = aws.ToString(job.Transcript.TranscriptFileUri)
	}
	status.FailureReason = aws.ToString(job.FailureReason)
	return status, nil
}

// FetchTranscript downloads and decodes the transcript document, returning
// its transcript text. A document with no transcript entries yields the
// empty string, which the pipeline treats as a video without speech.
func (t *TranscribeService) FetchTranscript(ctx context.Context, transcriptURI string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, transcriptURI, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build transcript request: %w", err)
	}
	resp, err := t.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch transcript document: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("transcript fetch returned status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read transcript document: %w", err)
	}
	var doc model.TranscriptDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		return "", fmt.Errorf("failed to decode transcript document: %w", err)
	}
	return doc.Text(), nil
}
