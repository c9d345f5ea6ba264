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
	"github.com/aws/aws-sdk-go-v2/service/translate"
	"golang.org/x/time/rate"

	"github.com/Netinhoklz/video-translate-legend-detection/internal/core/services"
)

// TranslateService implements services.Translator against the synchronous
// AWS Translate text API.
type TranslateService struct {
	client *translate.Client
}

var _ services.Translator = &TranslateService{}

// NewTranslateService wraps the given client.
func NewTranslateService(client *translate.Client) *TranslateService {
	return &TranslateService{client: client}
}

// Translate converts text between the given language codes.
func (t *TranslateService) Translate(ctx context.Context, text, sourceLanguage, targetLanguage string) (string, error) {
	resp, err := t.client.TranslateText(ctx, &translate.TranslateTextInput{
		Text:               aws.String(text),
		SourceLanguageCode: aws.String(sourceLanguage),
		TargetLanguageCode: aws.String(targetLanguage),
	})
	if err != nil {
		return "", fmt.Errorf("failed to translate text (%s -> %s): %w", sourceLanguage, targetLanguage, err)
	}
	return aws.ToString(resp.TranslatedText), nil
}

// QuotaAwareTranslator decorates a Translator with a client-side rate
// limiter so bursts of transcript chunks stay under the service quota.
// Waiting respects context cancellation.
type QuotaAwareTranslator struct {
	inner   services.Translator
	limiter *rate.Limiter
}

var _ services.Translator = &QuotaAwareTranslator{}

// NewQuotaAwareTranslator wraps inner with the given limiter.
func NewQuotaAwareTranslator(inner services.Translator, limiter *rate.Limiter) *QuotaAwareTranslator {
	return &QuotaAwareTranslator{inner: inner, limiter: limiter}
}

// Translate blocks until the limiter grants a slot, then delegates.
func (q *QuotaAwareTranslator) Translate(ctx context.Context, text, sourceLanguage, targetLanguage string) (string, error) {
	if err := q.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("translation rate limit wait aborted: %w", err)
	}
	return q.inner.Translate(ctx, text, sourceLanguage, targetLanguage)
}
