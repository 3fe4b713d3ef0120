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
	"math/bits"
	"slices"
)

// singleSpan is a single-line underline scheduled onto one source line.
// Columns are display cells after indent trimming.
type singleSpan struct {
	span             *resolvedSpan
	startCol, endCol int

	// rung is the distance from the source line: rung 0 renders directly
	// beneath it.
	rung int
}

// multiSpan is a label that covers more than one line. Its leader runs
// down a dedicated sidebar column from the start line to the end line.
type multiSpan struct {
	span             *resolvedSpan
	startCol, endCol int

	// col is the sidebar column assigned by assignLeaderColumns.
	col int

	// startsAtIndent is set when nothing but whitespace precedes the span
	// on its start line, in which case the leader can open directly in the
	// sidebar instead of needing a connector row.
	startsAtIndent bool
}

func (m *multiSpan) covers(line int) bool {
	return line >= m.span.startLine && line <= m.span.endLine
}

// assignRungs schedules the underlines of one source line so that no two
// overlapping intervals share a rung. Narrow intervals win low rungs, which
// keeps a nested interval's caret closest to the code it points at. Ties
// break toward the leftmost interval, then toward insertion order, so the
// result is deterministic.
//
// Returns the number of rungs used.
func assignRungs(singles []*singleSpan) int {
	order := slices.Clone(singles)
	slices.SortStableFunc(order, func(a, b *singleSpan) int {
		if d := (a.endCol - a.startCol) - (b.endCol - b.startCol); d != 0 {
			return d
		}
		if d := a.startCol - b.startCol; d != 0 {
			return d
		}
		return a.span.index - b.span.index
	})

	var rungs [][]*singleSpan
place:
	for _, s := range order {
		for i, rung := range rungs {
			if !slices.ContainsFunc(rung, func(o *singleSpan) bool {
				return s.startCol < o.endCol && o.startCol < s.endCol
			}) {
				s.rung = i
				rungs[i] = append(rung, s)
				continue place
			}
		}
		s.rung = len(rungs)
		rungs = append(rungs, []*singleSpan{s})
	}
	return len(rungs)
}

// assignLeaderColumns gives each multi-line label a sidebar column such
// that no two labels with overlapping line ranges collide. Labels are
// considered in insertion order, so a later-registered label is the one
// shifted further into the margin. Returns the sidebar width in columns.
func assignLeaderColumns(multis []*multiSpan) int {
	sidebarLen := 0
	for i, m := range multis {
		// Bits of taken mark columns already occupied by an overlapping
		// leader; the lowest zero bit is the first free column.
		var taken uint
		for _, prev := range multis[:i] {
			if m.span.startLine <= prev.span.endLine && prev.span.startLine <= m.span.endLine {
				taken |= 1 << prev.col
			}
		}
		m.col = bits.TrailingZeros(^taken)
		sidebarLen = max(sidebarLen, m.col+1)
	}
	return sidebarLen
}
