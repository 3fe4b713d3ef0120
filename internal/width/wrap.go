// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package width

import (
	"iter"
	"strings"

	"github.com/mattn/go-runewidth"
)

// WordWrap returns an iterator over chunks of text that are each no wider
// than max display cells, breaking at spaces where possible. Newlines in
// text are respected as hard breaks. A single word wider than max is yielded
// on its own line rather than split.
func WordWrap(text string, max int) iter.Seq[string] {
	return func(yield func(string) bool) {
		for line := range strings.Lines(text) {
			line = strings.TrimRight(line, "\n")
			for line != "" {
				if runewidth.StringWidth(line) <= max {
					if !yield(line) {
						return
					}
					break
				}

				// Find the last space at or before the limit.
				var cells, cut int
				for i, r := range line {
					cells += runewidth.RuneWidth(r)
					if cells > max {
						break
					}
					if r == ' ' {
						cut = i
					}
				}
				if cut == 0 {
					// No space to break at; take the whole next word.
					next := strings.IndexByte(line, ' ')
					if next == -1 {
						if !yield(line) {
							return
						}
						break
					}
					cut = next
				}

				if !yield(strings.TrimRight(line[:cut], " ")) {
					return
				}
				line = strings.TrimLeft(line[cut:], " ")
			}
		}
	}
}
