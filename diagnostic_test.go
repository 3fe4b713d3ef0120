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

package excerpt_test

import (
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/excerpta/excerpt"
)

func TestRenderSimple(t *testing.T) {
	t.Parallel()

	d := excerpt.New("unused variable").
		WithSource(excerpt.NewSource("let x = 1;\n")).
		WithLabel(excerpt.NewLabel(excerpt.NewSpan(4, 5), "unused"))

	out, err := d.Render(nil)
	require.NoError(t, err)

	assert.Contains(t, out, "unused variable\n")
	assert.Contains(t, out, "--> <unknown>:1:5")
	assert.Contains(t, out, " 1 | let x = 1;\n")
	assert.Contains(t, out, "   |     ^ unused\n")
}

func TestRenderTabColumns(t *testing.T) {
	t.Parallel()

	d := excerpt.New("tab alignment").
		WithSource(excerpt.NewSource("ab\tc\n")).
		WithLabel(excerpt.NewLabel(excerpt.NewSpan(3, 4), "here"))

	out, err := d.Render(nil)
	require.NoError(t, err)

	// The tab occupies columns 3 and 4 of the displayed line, so the caret
	// must land on display column 5.
	assert.Contains(t, out, " 1 | ab  c\n")
	assert.Contains(t, out, "   |     ^ here\n")
}

func TestRenderNoSource(t *testing.T) {
	t.Parallel()

	d := excerpt.New("missing source")
	d.AddLabel(excerpt.NewLabel(excerpt.NewSpan(0, 1), "boom"))

	_, err := d.Render(nil)
	assert.ErrorIs(t, err, excerpt.ErrNoSource)

	_, err = d.RenderCompact(nil)
	assert.ErrorIs(t, err, excerpt.ErrNoSource)
}

func TestRenderInvalidSpan(t *testing.T) {
	t.Parallel()

	d := excerpt.New("bad span").
		WithSource(excerpt.NewSource("abc\n")).
		WithLabel(excerpt.NewLabel(excerpt.NewSpan(2, 50), "nope"))

	_, err := d.Render(nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, excerpt.ErrInvalidSpan)

	var spanErr *excerpt.SpanError
	require.ErrorAs(t, err, &spanErr)
	assert.Equal(t, excerpt.NewSpan(2, 50), spanErr.Span)
	assert.Equal(t, 4, spanErr.SourceLen)
}

func TestRenderDeterministic(t *testing.T) {
	t.Parallel()

	d := overlappingDiagnostic()
	first, err := d.Render(nil)
	require.NoError(t, err)
	for range 10 {
		again, err := d.Render(nil)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestRenderConcurrent(t *testing.T) {
	t.Parallel()

	d := overlappingDiagnostic()
	want, err := d.Render(nil)
	require.NoError(t, err)
	wantCompact, err := d.RenderCompact(nil)
	require.NoError(t, err)

	var group errgroup.Group
	for range 8 {
		group.Go(func() error {
			for range 50 {
				got, err := d.Render(nil)
				if err != nil {
					return err
				}
				if got != want {
					return errors.New("expanded render differs across goroutines")
				}
				got, err = d.RenderCompact(nil)
				if err != nil {
					return err
				}
				if got != wantCompact {
					return errors.New("compact render differs across goroutines")
				}
			}
			return nil
		})
	}
	require.NoError(t, group.Wait())
}

// Both layouts must surface the same set of label messages; the compact one
// is only allowed to move them around.
func TestModeMessageParity(t *testing.T) {
	t.Parallel()

	d := overlappingDiagnostic()
	expanded, err := d.Render(nil)
	require.NoError(t, err)
	compact, err := d.RenderCompact(nil)
	require.NoError(t, err)

	for _, msg := range []string{"outer", "inner", "tail"} {
		assert.Contains(t, expanded, msg)
		assert.Contains(t, compact, msg)
	}
	assert.LessOrEqual(t, strings.Count(compact, "\n"), strings.Count(expanded, "\n"))
}

var ansiPattern = regexp.MustCompile("\x1b\\[[0-9;]*m")

func TestRenderColorized(t *testing.T) {
	t.Parallel()

	d := overlappingDiagnostic()
	plain, err := d.Render(&excerpt.Config{ContextLines: 1, MergeGap: 1})
	require.NoError(t, err)
	assert.NotContains(t, plain, "\x1b[")

	colored, err := d.Render(&excerpt.Config{ColorEnabled: true, ContextLines: 1, MergeGap: 1})
	require.NoError(t, err)
	assert.Contains(t, colored, "\x1b[")

	// Color never changes layout: stripping the escapes must reproduce the
	// plain output exactly.
	assert.Equal(t, plain, ansiPattern.ReplaceAllString(colored, ""))
}

func TestRenderMaxWidth(t *testing.T) {
	t.Parallel()

	const maxWidth = 20
	d := excerpt.New("very long line").
		WithSource(excerpt.NewSource("abcdefghijklmnopqrstuvwxyz\n")).
		WithLabel(excerpt.NewLabel(excerpt.NewSpan(0, 2), "the first two letters of the alphabet"))

	out, err := d.Render(&excerpt.Config{ContextLines: 1, MaxWidth: maxWidth})
	require.NoError(t, err)

	truncated := 0
	for line := range strings.Lines(out) {
		line = strings.TrimSuffix(line, "\n")
		assert.LessOrEqual(t, runewidth.StringWidth(line), maxWidth, "line %q", line)
		if strings.HasSuffix(line, "...") {
			truncated++
		}
	}
	assert.NotZero(t, truncated)
}

// A truncated underline row never shows a partial caret run; the cut moves
// left to the start of the run instead.
func TestRenderMaxWidthCaretRun(t *testing.T) {
	t.Parallel()

	d := excerpt.New("wide span").
		WithSource(excerpt.NewSource("abcdefghijklmnopqrstuvwxyz\n")).
		WithLabel(excerpt.NewLabel(excerpt.NewSpan(0, 26), "everything"))

	out, err := d.Render(&excerpt.Config{MaxWidth: 20})
	require.NoError(t, err)
	assert.Contains(t, out, "   | ...\n")
	assert.NotContains(t, out, "^...")
}

func TestFprintCompactByDefault(t *testing.T) {
	t.Parallel()

	d := overlappingDiagnostic()
	cfg := &excerpt.Config{ContextLines: 1, CompactByDefault: true}

	var buf strings.Builder
	require.NoError(t, d.Fprint(&buf, cfg))

	want, err := d.RenderCompact(cfg)
	require.NoError(t, err)
	assert.Equal(t, want, buf.String())
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestFprintWriteError(t *testing.T) {
	t.Parallel()

	d := excerpt.New("doomed").
		WithSource(excerpt.NewSource("x\n")).
		WithLabel(excerpt.NewLabel(excerpt.NewSpan(0, 1), "x"))

	err := d.Fprint(failWriter{}, nil)
	assert.ErrorIs(t, err, excerpt.ErrWrite)
}

func TestFootnotes(t *testing.T) {
	t.Parallel()

	d := excerpt.New("with footnotes").
		WithSource(excerpt.NewSource("abc\n")).
		WithLabel(excerpt.NewLabel(excerpt.NewSpan(0, 1), "a")).
		WithFootnote(excerpt.NewFootnote("first note")).
		WithFootnote(excerpt.NewFootnote("second note"))

	out, err := d.Render(nil)
	require.NoError(t, err)
	assert.Contains(t, out, "= first note\n")
	assert.Contains(t, out, "= second note\n")
}

// overlappingDiagnostic builds a diagnostic exercising nesting, a second
// line, and footnotes at once.
func overlappingDiagnostic() *excerpt.Diagnostic {
	src := excerpt.NewNamedSource("overlap.txt", "abcdefghijkl\nsecond line\n")
	d := excerpt.New("overlapping spans").WithSource(src)
	d.AddLabel(excerpt.NewLabel(excerpt.NewSpan(2, 10), "outer"))
	d.AddLabel(excerpt.NewLabel(excerpt.NewSpan(4, 6), "inner"))
	d.AddLabel(excerpt.NewLabel(excerpt.NewSpan(13, 19), "tail"))
	d.AddFootnote(excerpt.NewFootnote("see the manual"))
	return d
}
