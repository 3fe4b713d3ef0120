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
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/excerpta/excerpt/internal/width"
)

// rowKind classifies assembled rows so the truncation pass can apply the
// right cutting rule.
type rowKind int8

const (
	rowText rowKind = iota // title and blank separator rows
	rowHeader
	rowSource
	rowUnderline
	rowConnector
	rowGap
	rowNote // wrapped label messages and compact list items
	rowFootnote
)

// segment is a run of display text sharing one style. Rows are assembled
// and truncated on plain text; color escapes are applied only at emission,
// so width arithmetic never sees them.
type segment struct {
	text  string
	style Style
}

type row struct {
	kind rowKind
	segs []segment
}

func (r *row) push(text string, style Style) {
	if text == "" {
		return
	}
	r.segs = append(r.segs, segment{text, style})
}

func (r *row) width() int {
	w := 0
	for _, seg := range r.segs {
		w += runewidth.StringWidth(seg.text)
	}
	return w
}

// truncate cuts rows that exceed MaxWidth. Underline and connector rows
// never split a glyph run: the cut moves left to the run boundary instead.
func (a *assembler) truncate() {
	mw := a.conf.MaxWidth
	if mw <= 0 {
		return
	}
	ell := a.conf.Charset.Ellipsis
	limit := max(1, mw-runewidth.StringWidth(ell))

	for i := range a.rows {
		r := &a.rows[i]
		if r.width() <= mw {
			continue
		}
		glyphRuns := r.kind == rowUnderline || r.kind == rowConnector
		var kept []segment
		pos := 0
		for _, seg := range r.segs {
			w := runewidth.StringWidth(seg.text)
			if pos+w <= limit {
				kept = append(kept, seg)
				pos += w
				continue
			}
			if !glyphRuns || strings.TrimSpace(seg.text) == "" {
				prefix, pw := width.Cut(seg.text, limit-pos)
				if prefix != "" {
					kept = append(kept, segment{prefix, seg.style})
					pos += pw
				}
			}
			break
		}
		kept = append(kept, segment{ell, a.conf.Styles.Gutter})
		r.segs = kept
	}
}

// emit writes the rows to out, trimming trailing whitespace and applying
// color last so escapes never participate in layout.
func (a *assembler) emit(out *strings.Builder) {
	for _, r := range a.rows {
		segs := r.segs
		for len(segs) > 0 && strings.TrimRight(segs[len(segs)-1].text, " ") == "" {
			segs = segs[:len(segs)-1]
		}
		for i, seg := range segs {
			text := seg.text
			if i == len(segs)-1 {
				text = strings.TrimRight(text, " ")
			}
			if a.conf.ColorEnabled && !seg.style.IsZero() {
				text = seg.style.paint(text)
			}
			out.WriteString(text)
		}
		out.WriteByte('\n')
	}
}
