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

package overlay

import (
	"strings"

	"github.com/Netinhoklz/video-translate-legend-detection/internal/core/model"
)

// FilterLabels keeps only the labels whose lowercased name occurs somewhere
// in the lowercased translated text. The match is a plain substring check,
// so "car" also matches inside "scary"; that is a known limitation of the
// matching contract, kept as-is. Empty text yields an empty set: when there
// is no speech, no objects are overlaid.
func FilterLabels(labels []model.LabelDetection, translatedText string) []model.LabelDetection {
	if translatedText == "" {
		return nil
	}
	normalized := strings.ToLower(translatedText)
	var kept []model.LabelDetection
	for _, label := range labels {
		if strings.Contains(normalized, strings.ToLower(label.Name)) {
			kept = append(kept, label)
		}
	}
	return kept
}
