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

// Package cloud holds the application configuration, the AWS service
// clients, and the adapters that bind those clients to the pipeline's
// service interfaces. Configuration is loaded from TOML files with an
// environment-specific overlay.
package cloud

import "time"

// Storage configures the object-store bucket and key layout shared with
// the upload surface.
type Storage struct {
	Bucket              string `toml:"bucket"`                 // The bucket holding uploads and published results.
	UploadPrefix        string `toml:"upload_prefix"`          // Key prefix for user uploads (e.g. "uploads").
	ProcessedPrefix     string `toml:"processed_prefix"`       // Key prefix for published outputs (e.g. "processed").
	SignedURLTTLSeconds int    `toml:"signed_url_ttl_seconds"` // Lifetime of issued signed URLs.
}

// Pipeline configures the annotation run itself: the fixed language pair,
// detection threshold, overlay timing parameters, and polling policy.
type Pipeline struct {
	SourceLanguageCode      string  `toml:"source_language_code"`      // Transcription language (e.g. "pt-BR").
	TranslateSource         string  `toml:"translate_source"`          // Translation source code (e.g. "pt").
	TranslateTarget         string  `toml:"translate_target"`          // Translation target code (e.g. "en").
	SourceLanguageName      string  `toml:"source_language_name"`      // Display name for the transcript CSV header.
	TargetLanguageName      string  `toml:"target_language_name"`      // Display name for the transcript CSV header.
	MinLabelConfidence      float32 `toml:"min_label_confidence"`      // Detection submission threshold (0-100).
	WordsPerChunk           int     `toml:"words_per_chunk"`           // Subtitle chunk size in words.
	SnapshotToleranceMillis int     `toml:"snapshot_tolerance_millis"` // Nearest-snapshot window for box drawing.
	PollIntervalSeconds     int     `toml:"poll_interval_seconds"`     // Delay between external job status checks.
	MaxPollAttempts         int     `toml:"max_poll_attempts"`         // 0 keeps the baseline unbounded wait.
	WorkDir                 string  `toml:"work_dir"`                  // Per-run workspace root; empty uses the OS temp dir.
}

// Translation configures the synchronous translation service client.
type Translation struct {
	RateLimit int `toml:"rate_limit"` // Maximum translation requests per second.
}

// Tools configures the external executables the pipeline shells out to.
type Tools struct {
	FFmpegPath         string `toml:"ffmpeg_path"`          // Path to the ffmpeg binary used for the audio remux.
	RemuxSettleSeconds int    `toml:"remux_settle_seconds"` // Delay before trusting the remux output file.
}

// Config is the root of the application configuration, loaded from TOML.
type Config struct {
	Application struct {
		Name      string `toml:"name"`
		AWSRegion string `toml:"aws_region"`
	} `toml:"application"`
	Storage     Storage     `toml:"storage"`
	Pipeline    Pipeline    `toml:"pipeline"`
	Translation Translation `toml:"translation"`
	Tools       Tools       `toml:"tools"`
}

// NewConfig returns an empty Config ready for the loader.
func NewConfig() *Config {
	return &Config{}
}

// PollInterval returns the configured polling interval as a duration.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Pipeline.PollIntervalSeconds) * time.Second
}

// SnapshotTolerance returns the nearest-snapshot window as a duration.
func (c *Config) SnapshotTolerance() time.Duration {
	return time.Duration(c.Pipeline.SnapshotToleranceMillis) * time.Millisecond
}

// SignedURLTTL returns the signed-URL lifetime as a duration.
func (c *Config) SignedURLTTL() time.Duration {
	return time.Duration(c.Storage.SignedURLTTLSeconds) * time.Second
}

// RemuxSettleDelay returns the post-remux settle delay as a duration.
func (c *Config) RemuxSettleDelay() time.Duration {
	return time.Duration(c.Tools.RemuxSettleSeconds) * time.Second
}
