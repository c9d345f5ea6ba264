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

	"github.com/Netinhoklz/video-translate-legend-detection/internal/core/overlay"
	"github.com/stretchr/testify/assert"
)

// TestChunkWords verifies the word-group splitting that drives subtitle
// pacing: groups of the configured size, a shorter trailing group, and
// whitespace-only input producing no chunks at all.
func TestChunkWords(t *testing.T) {
	chunks := overlay.ChunkWords("one two three four five six seven", 5)
	assert.Equal(t, []string{"one two three four five", "six seven"}, chunks)

	chunks = overlay.ChunkWords("a b c", 5)
	assert.Equal(t, []string{"a b c"}, chunks)

	// Runs of whitespace collapse; they never produce empty words.
	chunks = overlay.ChunkWords("  spaced    out\ttext  ", 2)
	assert.Equal(t, []string{"spaced out", "text"}, chunks)

	assert.Empty(t, overlay.ChunkWords("", 5))
	assert.Empty(t, overlay.ChunkWords("   \n\t ", 5))
}

// TestChunkWordsExactMultiple checks that a word count that divides evenly
// produces no empty trailing chunk.
func TestChunkWordsExactMultiple(t *testing.T) {
	chunks := overlay.ChunkWords("one two three four five six", 3)
	assert.Equal(t, []string{"one two three", "four five six"}, chunks)
}
