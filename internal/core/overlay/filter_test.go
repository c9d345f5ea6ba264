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

package overlay_test

import (
	"testing"

	"github.com/Netinhoklz/video-translate-legend-detection/internal/core/model"
	"github.com/Netinhoklz/video-translate-legend-detection/internal/core/overlay"
	"github.com/stretchr/testify/assert"
)

// TestFilterLabels verifies the transcript-mention filter: matching is
// case-insensitive, substring-based, and an empty transcript keeps
// nothing.
func TestFilterLabels(t *testing.T) {
	labels := []model.LabelDetection{
		{Name: "Car", TimestampMillis: 0},
		{Name: "Dog", TimestampMillis: 500},
		{Name: "Tree", TimestampMillis: 1000},
	}

	filtered := overlay.FilterLabels(labels, "the dog chased a red car down the street")
	assert.Len(t, filtered, 2)
	assert.Equal(t, "Car", filtered[0].Name)
	assert.Equal(t, "Dog", filtered[1].Name)

	assert.Empty(t, overlay.FilterLabels(labels, ""))
}

// TestFilterLabelsSubstringMatch documents the substring semantics: a
// label name contained inside a longer word still counts as a mention.
func TestFilterLabelsSubstringMatch(t *testing.T) {
	labels := []model.LabelDetection{{Name: "Car"}}
	filtered := overlay.FilterLabels(labels, "that was a scary moment")
	assert.Len(t, filtered, 1)
}

// TestFilterLabelsKeepsEverySnapshot checks that filtering is per
// snapshot, not per unique name: every timestamped observation of a
// mentioned label survives.
func TestFilterLabelsKeepsEverySnapshot(t *testing.T) {
	labels := []model.LabelDetection{
		{Name: "Dog", TimestampMillis: 0},
		{Name: "Dog", TimestampMillis: 500},
		{Name: "Dog", TimestampMillis: 1000},
	}
	filtered := overlay.FilterLabels(labels, "a dog")
	assert.Len(t, filtered, 3)
}
