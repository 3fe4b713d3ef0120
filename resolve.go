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

	"github.com/excerpta/excerpt/internal/width"
)

// resolvedSpan is a label's span converted into line and column
// coordinates. It is recomputed on every render call, so the engine carries
// no state between calls.
//
// Lines are 0-based. Columns are 0-based display cells measured from the
// start of their line, before indent trimming; the layout shifts them left
// by the window's common indent.
type resolvedSpan struct {
	// The position of the label in the diagnostic's insertion order.
	// Index 0 is the primary label.
	index int
	label Label

	startLine, endLine int
	startCol, endCol   int
	multiline          bool
}

// resolveSpan validates span against src and converts it to line/column
// coordinates.
//
// An empty span resolves to a single-column caret. A span whose end lands
// exactly on a line start is treated as ending at the end of the previous
// line, so the rendering never includes a trailing blank line.
func resolveSpan(src *Source, span Span, tabWidth int) (resolvedSpan, error) {
	textLen := len(src.Text())
	switch {
	case span.Start > span.End:
		return resolvedSpan{}, &SpanError{Span: span, SourceLen: textLen}
	case span.Start < 0 || span.End > textLen:
		return resolvedSpan{}, &SpanError{
			Span:      span,
			SourceLen: textLen,
			cause:     fmt.Errorf("%w: span not in [0, %d]", ErrOffsetOutOfBounds, textLen),
		}
	}

	rs := resolvedSpan{
		startLine: src.lineAt(span.Start),
	}
	rs.startCol = width.Measure(0, src.Text()[src.lineStart(rs.startLine):span.Start], tabWidth)

	if span.Len() == 0 {
		rs.endLine = rs.startLine
		rs.endCol = rs.startCol + 1
		return rs, nil
	}

	// Resolving the line of the last covered byte, rather than of the end
	// offset itself, is what snaps line-start ends back to the previous
	// line.
	rs.endLine = src.lineAt(span.End - 1)
	rs.multiline = rs.endLine > rs.startLine

	lineStart := src.lineStart(rs.endLine)
	lineEnd := lineStart + len(src.lineText(rs.endLine))
	rs.endCol = width.Measure(0, src.Text()[lineStart:min(span.End, lineEnd)], tabWidth)
	if rs.endCol <= rs.startCol && !rs.multiline {
		// The covered bytes render zero cells wide (e.g. a span over a lone
		// newline); keep a single caret.
		rs.endCol = rs.startCol + 1
	}
	return rs, nil
}

// resolveSpans resolves every label of a diagnostic, aborting on the first
// invalid span.
func resolveSpans(src *Source, labels []Label, tabWidth int) ([]resolvedSpan, error) {
	spans := make([]resolvedSpan, 0, len(labels))
	for i, label := range labels {
		rs, err := resolveSpan(src, label.Span, tabWidth)
		if err != nil {
			return nil, err
		}
		rs.index = i
		rs.label = label
		spans = append(spans, rs)
	}
	return spans, nil
}
