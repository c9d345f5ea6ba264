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
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/transcribe"
	"github.com/aws/aws-sdk-go-v2/service/translate"
	"golang.org/x/time/rate"

	"github.com/Netinhoklz/video-translate-legend-detection/internal/core/services"
)

// ServiceClients is the dependency container for all cloud clients and
// the service adapters built on top of them. It is created once at
// startup and threaded through the workflow assembly.
type ServiceClients struct {
	Config *Config

	AWS         aws.Config
	S3          *s3.Client
	Presigner   *s3.PresignClient
	Transcribe  *transcribe.Client
	Translate   *translate.Client
	Rekognition *rekognition.Client

	// Service-facing adapters consumed by the workflow commands.
	ObjectStore   services.ObjectStore
	Transcriber   services.Transcriber
	Translator    services.Translator
	LabelDetector services.LabelDetector
}

// NewServiceClients resolves AWS credentials from the default chain and
// constructs one client per service plus the pipeline adapters.
func NewServiceClients(ctx context.Context, cfg *Config) (*ServiceClients, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Application.AWSRegion))
	if err != nil {
		return nil, fmt.Errorf("failed to load aws configuration: %w", err)
	}

	out := &ServiceClients{
		Config:      cfg,
		AWS:         awsCfg,
		S3:          s3.NewFromConfig(awsCfg),
		Transcribe:  transcribe.NewFromConfig(awsCfg),
		Translate:   translate.NewFromConfig(awsCfg),
		Rekognition: rekognition.NewFromConfig(awsCfg),
	}
	out.Presigner = s3.NewPresignClient(out.S3)

	out.ObjectStore = NewS3ObjectStore(out.S3, out.Presigner, cfg.Storage.Bucket)
	out.Transcriber = NewTranscribeService(out.Transcribe)
	out.Translator = NewQuotaAwareTranslator(
		NewTranslateService(out.Translate),
		rate.NewLimiter(rate.Limit(cfg.Translation.RateLimit), 1))
	out.LabelDetector = NewRekognitionService(out.Rekognition)
	return out, nil
}
