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

package model

// TranscriptDocument maps the JSON result document the transcription
// service stores at the completed job's result URI. The document carries
// zero or one transcript entries; zero means no speech was detected.
type TranscriptDocument struct {
	JobName   string `json:"jobName"`
	AccountID string `json:"accountId"`
	Results   struct {
		Transcripts []struct {
			Transcript string `json:"transcript"`
		} `json:"transcripts"`
	} `json:"results"`
	Status string `json:"status"`
}

// Text returns the transcript text, or the empty string when the document
// has no transcript entries.
func (d *TranscriptDocument) Text() string {
	if len(d.Results.Transcripts) == 0 {
		return ""
	}
	return d.Results.Transcripts[0].Transcript
}
