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
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/excerpta/excerpt/internal/width"
)

// layout is the fully scheduled shape of an excerpt, ready for row
// assembly. It is computed fresh for each render call.
type layout struct {
	spans  []resolvedSpan
	multis []*multiSpan
	groups []lineGroup

	// gutter is the width of the line number column.
	gutter int
	// sidebarLen is the number of leader columns for multi-line labels.
	sidebarLen int
	// trim is the common indentation, in display cells, removed from every
	// displayed line.
	trim int
}

// lineGroup is a contiguous run of displayed source lines. Adjacent groups
// are separated by a gap marker row.
type lineGroup struct {
	first, last int // 0-based, inclusive
	lines       []*lineInfo
}

// lineInfo is one displayed source line with everything scheduled onto it.
type lineInfo struct {
	lineno  int    // 0-based
	display string // tab-expanded, indent-trimmed text

	singles   []*singleSpan
	rungCount int

	// starts and ends hold the multi-line labels opening and closing on
	// this line; both are ordered by sidebar column.
	starts, ends []*multiSpan
}

// lineRange is an inclusive range of lines used while planning groups.
type lineRange struct{ lo, hi int }

// resolveLayout resolves every label against the diagnostic's source and
// schedules the result into line groups, rungs and sidebar columns.
func resolveLayout(d *Diagnostic, conf *Config) (*layout, error) {
	src := d.source
	spans, err := resolveSpans(src, d.labels, conf.TabWidth)
	if err != nil {
		return nil, err
	}

	l := &layout{spans: spans}
	l.planGroups(src, conf)
	l.trim = commonIndent(src, l.groups, conf.TabWidth)
	l.schedule(src, conf)

	l.gutter = 2
	if len(l.groups) > 0 {
		last := l.groups[len(l.groups)-1].last + 1
		l.gutter = max(2, len(strconv.Itoa(last)))
	}
	return l, nil
}

// planGroups picks the line ranges to display and merges the ones that are
// close together. A multi-line label contributes two ranges, one around each
// endpoint, so a span covering hundreds of lines does not flood the output;
// the elided middle renders as a gap marker carrying the label's leader.
func (l *layout) planGroups(src *Source, conf *Config) {
	lastLine := src.numLines() - 1
	var ranges []lineRange
	addRange := func(lo, hi int) {
		lo, hi = max(lo, 0), min(hi, lastLine)
		ranges = append(ranges, lineRange{lo, hi})
	}
	for i := range l.spans {
		rs := &l.spans[i]
		if rs.multiline {
			addRange(rs.startLine-conf.ContextLines, rs.startLine+conf.ContextLines)
			addRange(rs.endLine-conf.ContextLines, rs.endLine+conf.ContextLines)
		} else {
			addRange(rs.startLine-conf.ContextLines, rs.endLine+conf.ContextLines)
		}
	}

	slices.SortFunc(ranges, func(a, b lineRange) int {
		if a.lo != b.lo {
			return a.lo - b.lo
		}
		return a.hi - b.hi
	})
	merged := ranges[:0]
	for _, r := range ranges {
		if n := len(merged); n > 0 && r.lo <= merged[n-1].hi+1+conf.MergeGap {
			merged[n-1].hi = max(merged[n-1].hi, r.hi)
			continue
		}
		merged = append(merged, r)
	}

	for _, r := range merged {
		// Context never drags in blank edge lines; only an actual label
		// can put one on display.
		for r.lo < r.hi && src.lineText(r.lo) == "" && !l.labeled(r.lo) {
			r.lo++
		}
		for r.hi > r.lo && src.lineText(r.hi) == "" && !l.labeled(r.hi) {
			r.hi--
		}
		g := lineGroup{first: r.lo, last: r.hi}
		for n := r.lo; n <= r.hi; n++ {
			g.lines = append(g.lines, &lineInfo{lineno: n})
		}
		l.groups = append(l.groups, g)
	}
}

func (l *layout) labeled(line int) bool {
	return slices.ContainsFunc(l.spans, func(rs resolvedSpan) bool {
		return line >= rs.startLine && line <= rs.endLine
	})
}

// schedule populates each displayed line with its trimmed text and its
// underlines, then assigns rungs and sidebar columns.
func (l *layout) schedule(src *Source, conf *Config) {
	byLine := make(map[int]*lineInfo)
	for _, g := range l.groups {
		for _, li := range g.lines {
			li.display = trimmedLine(src, li.lineno, l.trim, conf.TabWidth)
			byLine[li.lineno] = li
		}
	}

	for i := range l.spans {
		rs := &l.spans[i]
		startCol := max(rs.startCol-l.trim, 0)
		endCol := max(rs.endCol-l.trim, 0)
		if !rs.multiline {
			if li, ok := byLine[rs.startLine]; ok {
				li.singles = append(li.singles, &singleSpan{
					span:     rs,
					startCol: startCol,
					endCol:   max(endCol, startCol+1),
				})
			}
			continue
		}

		text := src.lineText(rs.startLine)
		m := &multiSpan{
			span:           rs,
			startCol:       startCol,
			endCol:         max(endCol, 1),
			startsAtIndent: strings.TrimSpace(text[:min(len(text), startOffset(src, rs))]) == "",
		}
		l.multis = append(l.multis, m)
		if li, ok := byLine[rs.startLine]; ok {
			li.starts = append(li.starts, m)
		}
		if li, ok := byLine[rs.endLine]; ok {
			li.ends = append(li.ends, m)
		}
	}

	l.sidebarLen = assignLeaderColumns(l.multis)
	for _, g := range l.groups {
		for _, li := range g.lines {
			li.rungCount = assignRungs(li.singles)
			byCol := func(a, b *multiSpan) int { return a.col - b.col }
			slices.SortFunc(li.starts, byCol)
			slices.SortFunc(li.ends, byCol)
		}
	}
}

func startOffset(src *Source, rs *resolvedSpan) int {
	return rs.label.Span.Start - src.lineStart(rs.startLine)
}

// sidebarFor returns the multi-line labels whose leader crosses the given
// line, ordered by sidebar column.
func (l *layout) sidebarFor(line int) []*multiSpan {
	var active []*multiSpan
	for _, m := range l.multis {
		if m.covers(line) {
			active = append(active, m)
		}
	}
	slices.SortFunc(active, func(a, b *multiSpan) int { return a.col - b.col })
	return active
}

// gapLeaders returns the leaders that must continue across the gap between
// two adjacent groups.
func (l *layout) gapLeaders(prevLast, nextFirst int) []*multiSpan {
	var active []*multiSpan
	for _, m := range l.multis {
		if m.span.startLine <= prevLast && m.span.endLine >= nextFirst {
			active = append(active, m)
		}
	}
	slices.SortFunc(active, func(a, b *multiSpan) int { return a.col - b.col })
	return active
}

// trimmedLine renders line number n to display cells and removes the
// common indent. The indent of every displayed line expands to at least
// trim leading spaces, so slicing bytes is safe.
func trimmedLine(src *Source, n, trim, tabWidth int) string {
	var out strings.Builder
	width.Render(&out, 0, src.lineText(n), tabWidth)
	s := out.String()
	if len(s) <= trim {
		return ""
	}
	return s[trim:]
}

// commonIndent measures the smallest indentation, in display cells, across
// the nonempty displayed lines.
func commonIndent(src *Source, groups []lineGroup, tabWidth int) int {
	trim := math.MaxInt
	for _, g := range groups {
		for _, li := range g.lines {
			text := src.lineText(li.lineno)
			if text == "" {
				continue
			}
			ws := text[:len(text)-len(strings.TrimLeft(text, " \t"))]
			trim = min(trim, width.Measure(0, ws, tabWidth))
		}
	}
	if trim == math.MaxInt {
		return 0
	}
	return trim
}
