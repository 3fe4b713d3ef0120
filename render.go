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
	"math"
	"slices"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/excerpta/excerpt/internal/slicesx"
	"github.com/excerpta/excerpt/internal/width"
)

// assembler turns a resolved layout into output rows.
type assembler struct {
	d       *Diagnostic
	l       *layout
	conf    *Config
	compact bool

	rows []row

	// items collects messages the compact layout pushes out of the excerpt
	// into a trailing list.
	items []compactItem

	// pending tracks multi-line labels whose connector row has not been
	// drawn yet on the current line; their sidebar slot stays blank until
	// then.
	pending map[*multiSpan]bool
}

type compactItem struct {
	line  int // 1-based
	text  string
	style Style
}

// assemble renders the final output for d into out.
func assemble(out *strings.Builder, d *Diagnostic, l *layout, conf *Config, compact bool) {
	a := &assembler{d: d, l: l, conf: conf, compact: compact}

	a.row(rowText, func(r *row) { r.push(d.title, Style{}) })
	a.blank()
	a.headerRow()
	if len(l.groups) > 0 {
		a.row(rowHeader, func(r *row) { a.gutterBlank(r) })
	}
	for i, g := range l.groups {
		if i > 0 {
			a.gapRow(l.groups[i-1].last, g.first)
		}
		for _, li := range g.lines {
			a.line(li)
		}
	}
	a.itemRows()
	a.footnoteRows()

	a.truncate()
	a.emit(out)
}

func (a *assembler) row(kind rowKind, fill func(*row)) {
	r := row{kind: kind}
	if fill != nil {
		fill(&r)
	}
	a.rows = append(a.rows, r)
}

func (a *assembler) blank() { a.row(rowText, nil) }

// headerRow emits the "--> path:line:col" row pointing at the primary
// label.
func (a *assembler) headerRow() {
	name := a.d.source.Name()
	if name == "" {
		name = "<unknown>"
	}
	pos := ""
	if len(a.l.spans) > 0 {
		loc, err := a.d.source.Location(a.l.spans[0].label.Span.Start, a.conf.TabWidth)
		if err == nil {
			pos = fmt.Sprintf(":%d:%d", loc.Line, loc.Column)
		}
	}
	a.row(rowHeader, func(r *row) {
		r.push(strings.Repeat(" ", a.l.gutter), Style{})
		r.push("--> ", a.conf.Styles.Gutter)
		r.push(name+pos, a.conf.Styles.SourceName)
	})
}

// gutterNum writes the "NN | " prefix for a source row.
func (a *assembler) gutterNum(r *row, lineno int) {
	text := fmt.Sprintf("%*d %c ", a.l.gutter, lineno+1, a.conf.Charset.GutterBar)
	r.push(text, a.conf.Styles.Gutter)
}

// gutterBlank writes the gutter prefix of a non-source row.
func (a *assembler) gutterBlank(r *row) {
	text := strings.Repeat(" ", a.l.gutter+1) + string(a.conf.Charset.GutterBar) + " "
	r.push(text, a.conf.Styles.Gutter)
}

// sidebar writes one glyph column per active multi-line leader. A leader
// opening at the line's indent shows its start corner on the source row
// itself; one that is still pending shows nothing until its connector row.
func (a *assembler) sidebar(r *row, active []*multiSpan, line int, sourceRow bool) {
	for slot := range a.l.sidebarLen {
		i := slices.IndexFunc(active, func(m *multiSpan) bool { return m.col == slot })
		if i < 0 || a.pending[active[i]] {
			r.push("  ", Style{})
			continue
		}
		m := active[i]
		glyph := a.conf.Charset.Bar
		if sourceRow && m.span.startLine == line && m.startsAtIndent {
			glyph = a.conf.Charset.StartCorner
		}
		r.push(string(glyph)+" ", a.labelStyle(m.span))
	}
}

// gapRow marks elided lines between two groups, carrying through leaders
// that cross the gap.
func (a *assembler) gapRow(prevLast, nextFirst int) {
	leaders := a.l.gapLeaders(prevLast, nextFirst)
	a.row(rowGap, func(r *row) {
		gap := a.conf.Charset.Gap
		r.push(gap, a.conf.Styles.Gutter)
		if pad := a.l.gutter + 3 - runewidth.StringWidth(gap); pad > 0 {
			r.push(strings.Repeat(" ", pad), Style{})
		}
		a.sidebar(r, leaders, -1, false)
	})
}

// line emits a source row followed by its underline, message, and
// connector rows.
func (a *assembler) line(li *lineInfo) {
	active := a.l.sidebarFor(li.lineno)
	a.pending = make(map[*multiSpan]bool, len(li.starts))
	for _, m := range li.starts {
		if !m.startsAtIndent {
			a.pending[m] = true
		}
	}

	a.row(rowSource, func(r *row) {
		a.gutterNum(r, li.lineno)
		a.sidebar(r, active, li.lineno, true)
		r.push(li.display, a.conf.Styles.Source)
	})

	if a.compact {
		a.compactUnderline(li, active)
	} else {
		a.expandedUnderlines(li, active)
	}

	for _, m := range li.starts {
		if a.pending[m] {
			delete(a.pending, m)
			a.connectorRow(m, active, a.conf.Charset.StartCorner, m.startCol, "")
		}
	}
	for _, m := range li.ends {
		a.connectorRow(m, active, a.conf.Charset.EndCorner, max(m.endCol-1, 0), m.span.label.Message)
	}
}

// expandedUnderlines draws one row per rung, closest rung first, and then
// continuation rows for the messages that could not sit inline.
func (a *assembler) expandedUnderlines(li *lineInfo, active []*multiSpan) {
	var deferred []*singleSpan
	for rung := range li.rungCount {
		var onRung []*singleSpan
		for _, s := range li.singles {
			if s.rung == rung {
				onRung = append(onRung, s)
			}
		}
		inline := a.inlineFor(onRung)
		a.underlineRow(onRung, active, inline)
		for _, s := range onRung {
			if s != inline && s.span.label.Message != "" {
				deferred = append(deferred, s)
			}
		}
	}

	slices.SortFunc(deferred, func(x, y *singleSpan) int {
		if x.rung != y.rung {
			return x.rung - y.rung
		}
		if x.startCol != y.startCol {
			return y.startCol - x.startCol
		}
		return x.span.index - y.span.index
	})
	for _, s := range deferred {
		a.noteRows(s, active)
	}
}

// compactUnderline fuses every underline of the line into a single row.
// Wide intervals are painted first so a nested interval shows through on
// top; all but the rightmost message leave the excerpt for the trailing
// list.
func (a *assembler) compactUnderline(li *lineInfo, active []*multiSpan) {
	if len(li.singles) == 0 {
		return
	}
	fused := slices.Clone(li.singles)
	slices.SortFunc(fused, func(x, y *singleSpan) int {
		if d := (y.endCol - y.startCol) - (x.endCol - x.startCol); d != 0 {
			return d
		}
		return y.span.index - x.span.index
	})
	inline := a.inlineFor(li.singles)
	a.underlineRow(fused, active, inline)

	for _, s := range li.singles {
		if s != inline && s.span.label.Message != "" {
			a.items = append(a.items, compactItem{
				line:  li.lineno + 1,
				text:  s.span.label.Message,
				style: a.labelStyle(s.span),
			})
		}
	}
}

// inlineFor picks the underline whose message renders inline on the row:
// the rightmost messaged one, provided the message fits under MaxWidth.
func (a *assembler) inlineFor(spans []*singleSpan) *singleSpan {
	var best *singleSpan
	end := 0
	for _, s := range spans {
		end = max(end, s.endCol)
		if s.span.label.Message == "" {
			continue
		}
		if best == nil || s.endCol > best.endCol {
			best = s
		}
	}
	if best == nil {
		return nil
	}
	if mw := a.conf.MaxWidth; mw > 0 {
		w := a.prefixWidth() + end + 1 + runewidth.StringWidth(best.span.label.Message)
		if w > mw {
			return nil
		}
	}
	return best
}

// labelStyle resolves the style a label's markers render with: the label's
// own style if set, otherwise the palette's Primary or Secondary entry.
func (a *assembler) labelStyle(rs *resolvedSpan) Style {
	if !rs.label.Style.IsZero() {
		return rs.label.Style
	}
	if rs.index == 0 {
		return a.conf.Styles.Primary
	}
	return a.conf.Styles.Secondary
}

// prefixWidth is the display width of everything left of the source text.
func (a *assembler) prefixWidth() int {
	return a.l.gutter + 3 + a.l.sidebarLen*2
}

// underlineRow paints the given underlines, in order, into a cell buffer
// and flushes it as one row; later entries overwrite earlier ones.
func (a *assembler) underlineRow(spans []*singleSpan, active []*multiSpan, inline *singleSpan) {
	end := 0
	for _, s := range spans {
		end = max(end, s.endCol)
	}
	cells := make([]*singleSpan, end)
	for _, s := range spans {
		for c := s.startCol; c < s.endCol && c < len(cells); c++ {
			cells[c] = s
		}
	}

	a.row(rowUnderline, func(r *row) {
		a.gutterBlank(r)
		a.sidebar(r, active, -1, false)
		for _, run := range slicesx.Partition(cells) {
			if s := run[0]; s == nil {
				r.push(strings.Repeat(" ", len(run)), Style{})
			} else {
				glyph := a.conf.Charset.Tilde
				if s.span.index == 0 {
					glyph = a.conf.Charset.Caret
				}
				r.push(strings.Repeat(string(glyph), len(run)), a.labelStyle(s.span))
			}
		}
		if inline != nil {
			r.push(" ", Style{})
			r.push(inline.span.label.Message, a.labelStyle(inline.span))
		}
	})
}

// noteRows writes a deferred message under its caret's start column,
// word-wrapped against MaxWidth.
func (a *assembler) noteRows(s *singleSpan, active []*multiSpan) {
	style := a.labelStyle(s.span)
	for chunk := range width.WordWrap(s.span.label.Message, a.wrapWidth(s.startCol)) {
		a.row(rowNote, func(r *row) {
			a.gutterBlank(r)
			a.sidebar(r, active, -1, false)
			r.push(strings.Repeat(" ", s.startCol), Style{})
			r.push(chunk, style)
		})
	}
}

func (a *assembler) wrapWidth(col int) int {
	if a.conf.MaxWidth <= 0 {
		return math.MaxInt
	}
	return max(8, a.conf.MaxWidth-a.prefixWidth()-col)
}

// connectorRow draws the horizontal run that opens or closes a multi-line
// label: leader glyphs up to the label's sidebar column, a corner, dashes
// across the remaining sidebar and code columns, and the pointer glyph.
func (a *assembler) connectorRow(m *multiSpan, active []*multiSpan, corner rune, col int, msg string) {
	style := a.labelStyle(m.span)
	a.row(rowConnector, func(r *row) {
		a.gutterBlank(r)
		for slot := 0; slot < m.col; slot++ {
			i := slices.IndexFunc(active, func(o *multiSpan) bool { return o.col == slot })
			if i < 0 || a.pending[active[i]] {
				r.push("  ", Style{})
			} else {
				r.push(string(a.conf.Charset.Bar)+" ", a.labelStyle(active[i].span))
			}
		}
		dashes := (a.l.sidebarLen-m.col)*2 - 1 + col
		glyph := a.conf.Charset.Tilde
		if m.span.index == 0 {
			glyph = a.conf.Charset.Caret
		}
		r.push(string(corner)+strings.Repeat(string(a.conf.Charset.Dash), dashes)+string(glyph), style)
		if msg != "" {
			r.push(" ", Style{})
			r.push(msg, style)
		}
	})
}

// itemRows flushes the compact layout's trailing message list.
func (a *assembler) itemRows() {
	slices.SortStableFunc(a.items, func(x, y compactItem) int { return x.line - y.line })
	for _, item := range a.items {
		a.row(rowNote, func(r *row) {
			r.push(string(a.conf.Charset.Footnote)+" ", a.conf.Styles.Gutter)
			r.push(fmt.Sprintf("line %d: ", item.line), Style{})
			r.push(item.text, item.style)
		})
	}
}

func (a *assembler) footnoteRows() {
	if len(a.d.footnotes) == 0 {
		return
	}
	a.blank()
	for _, f := range a.d.footnotes {
		style := f.Style.or(a.conf.Styles.Footnote)
		first := true
		for chunk := range width.WordWrap(f.Message, a.wrapWidth(0)) {
			a.row(rowFootnote, func(r *row) {
				if first {
					r.push(string(a.conf.Charset.Footnote)+" ", style)
				} else {
					r.push("  ", Style{})
				}
				r.push(chunk, Style{})
			})
			first = false
		}
	}
}

