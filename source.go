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

package excerpt

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/excerpta/excerpt/internal/width"
)

// Span is a half-open byte range [Start, End) into a [Source]'s text.
//
// Spans are plain offsets and carry no reference to their source; they are
// validated against the diagnostic's source at render time.
type Span struct {
	Start, End int
}

// NewSpan constructs a span from a pair of byte offsets.
func NewSpan(start, end int) Span {
	return Span{Start: start, End: end}
}

// Len returns the length of this span, in bytes.
func (s Span) Len() int {
	return s.End - s.Start
}

// String implements [fmt.Stringer].
func (s Span) String() string {
	return fmt.Sprintf("[%d, %d)", s.Start, s.End)
}

// Location is a user-displayable location within a source text.
type Location struct {
	// The byte offset for this location.
	Offset int

	// The line and column for this location, 1-indexed.
	//
	// Column is measured in terminal display cells, not bytes or runes: the
	// rune A is one column wide, the rune 貓 is two columns wide, and tabs
	// justify to the next tab stop.
	Line, Column int
}

// Source is a source text to attach to a [Diagnostic].
//
// It owns the book-keeping needed to resolve byte offsets into line and
// column information. That index is built lazily on first use and is the
// only state shared between render calls; it is guarded by a [sync.Once],
// so a Source may be shared by concurrent renders.
//
// A nil *Source behaves like an empty, unnamed source.
type Source struct {
	name, text string

	once sync.Once
	// A prefix sum of line lengths: the byte offset immediately after each
	// \n in the text, preceded by 0. Binary searching this slice recovers
	// the line an offset falls on.
	lineStarts []int
}

// NewSource constructs a new unnamed source from text.
func NewSource(text string) *Source {
	return &Source{text: text}
}

// NewNamedSource constructs a new source with a display name, typically a
// file path.
func NewNamedSource(name, text string) *Source {
	return &Source{name: name, text: text}
}

// Name returns this source's display name, or "" if it has none.
func (s *Source) Name() string {
	if s == nil {
		return ""
	}
	return s.name
}

// Text returns this source's textual contents.
func (s *Source) Text() string {
	if s == nil {
		return ""
	}
	return s.text
}

// Location resolves a byte offset into a [Location], measuring the column in
// display cells against the given tab width.
//
// Fails with [ErrOffsetOutOfBounds] if offset is negative or greater than
// len(s.Text()). An offset exactly at a line boundary belongs to the
// following line, at column 1.
//
// The first call builds a line index in O(n); subsequent lookups are
// O(log n).
func (s *Source) Location(offset, tabWidth int) (Location, error) {
	if s == nil && offset == 0 {
		return Location{Offset: 0, Line: 1, Column: 1}, nil
	}
	if offset < 0 || offset > len(s.Text()) {
		return Location{}, fmt.Errorf("%w: offset %d not in [0, %d]", ErrOffsetOutOfBounds, offset, len(s.Text()))
	}

	line := s.lineAt(offset)
	column := width.Measure(0, s.Text()[s.lineStart(line):offset], tabWidth)
	return Location{
		Offset: offset,
		Line:   line + 1,
		Column: column + 1,
	}, nil
}

// lineAt returns the 0-based line index that offset falls on. The offset
// must already be bounds-checked.
func (s *Source) lineAt(offset int) int {
	line, exact := slices.BinarySearch(s.lines(), offset)
	if !exact {
		line--
	}
	return line
}

// numLines returns the number of lines in the text. A trailing newline
// introduces a final empty line, matching the line index.
func (s *Source) numLines() int {
	return len(s.lines())
}

// lineStart returns the byte offset of the start of the 0-based line.
func (s *Source) lineStart(line int) int {
	return s.lines()[line]
}

// lineText returns the text of the 0-based line, without its line ending.
func (s *Source) lineText(line int) string {
	starts := s.lines()
	end := len(s.text)
	if line+1 < len(starts) {
		end = starts[line+1]
	}
	return strings.TrimRight(s.text[starts[line]:end], "\r\n")
}

func (s *Source) lines() []int {
	// Compute the prefix sum on demand.
	s.once.Do(func() {
		var next int

		// We add 1 to the return value of IndexByte because we want to work
		// with the index immediately *after* the newline byte.
		text := s.text
		for {
			newline := strings.IndexByte(text, '\n') + 1
			if newline == 0 {
				break
			}

			text = text[newline:]

			s.lineStarts = append(s.lineStarts, next)
			next += newline
		}

		s.lineStarts = append(s.lineStarts, next)
	})
	return s.lineStarts
}
