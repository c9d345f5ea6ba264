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

// Package overlay implements the frame annotation core: subtitle chunking,
// label filtering, time alignment, frame rendering, and the audio remux
// step that reattaches the original soundtrack.
package overlay

import "strings"

// DefaultWordsPerChunk is the baseline subtitle chunk size.
const DefaultWordsPerChunk = 5

// ChunkWords splits text on whitespace and groups consecutive words into
// chunks of wordsPerChunk; the last chunk may be shorter. Empty text yields
// an empty sequence. Chunk timing is implicit: each chunk occupies an even
// slice of the video duration at index * (duration / chunkCount), resolved
// at render time from the frame timestamp.
func ChunkWords(text string, wordsPerChunk int) []string {
	if wordsPerChunk <= 0 {
		wordsPerChunk = DefaultWordsPerChunk
	}
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	chunks := make([]string, 0, (len(words)+wordsPerChunk-1)/wordsPerChunk)
	for i := 0; i < len(words); i += wordsPerChunk {
		end := i + wordsPerChunk
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[i:end], " "))
	}
	return chunks
}
