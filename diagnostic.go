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
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Label is a message that points at a span of a diagnostic's source.
//
// The first label added to a diagnostic is its primary label: it determines
// the header's line:column and is underlined with the caret glyph rather
// than the tilde.
type Label struct {
	// The span this label marks.
	Span Span
	// The message shown with the marker. May be empty.
	Message string
	// The style for this label's markers and message. The zero style falls
	// back to the palette's Primary or Secondary entry.
	Style Style
}

// NewLabel creates a label with the default style.
func NewLabel(span Span, message string) Label {
	return Label{Span: span, Message: message}
}

// StyledLabel creates a label with the given marker style.
func StyledLabel(span Span, message string, style Style) Label {
	return Label{Span: span, Message: message, Style: style}
}

// Footnote is a free-form message shown after a diagnostic's excerpt.
type Footnote struct {
	// The message of this footnote.
	Message string
	// The style for the footnote marker.
	Style Style
}

// NewFootnote creates a footnote with the default style.
func NewFootnote(message string) Footnote {
	return Footnote{Message: message}
}

// StyledFootnote creates a footnote with the given marker style.
func StyledFootnote(message string, style Style) Footnote {
	return Footnote{Message: message, Style: style}
}

// Diagnostic is a single report: a title, a source text, labeled spans into
// that text, and trailing footnotes.
//
// A Diagnostic is built additively and then rendered. Builder mutation and
// rendering must not be interleaved from different goroutines, but once
// built, any number of goroutines may render the same Diagnostic
// concurrently: every render call keeps its state on its own stack.
type Diagnostic struct {
	title     string
	source    *Source
	labels    []Label
	footnotes []Footnote
}

// New creates a diagnostic with the given title and no source.
func New(title string) *Diagnostic {
	return &Diagnostic{title: title}
}

// WithSource attaches the source the diagnostic's labels point into.
func (d *Diagnostic) WithSource(src *Source) *Diagnostic {
	d.source = src
	return d
}

// AddLabel appends a label.
func (d *Diagnostic) AddLabel(label Label) {
	d.labels = append(d.labels, label)
}

// WithLabel appends a label, chaining.
func (d *Diagnostic) WithLabel(label Label) *Diagnostic {
	d.AddLabel(label)
	return d
}

// WithLabels replaces the diagnostic's labels.
func (d *Diagnostic) WithLabels(labels []Label) *Diagnostic {
	d.labels = labels
	return d
}

// AddFootnote appends a footnote.
func (d *Diagnostic) AddFootnote(footnote Footnote) {
	d.footnotes = append(d.footnotes, footnote)
}

// WithFootnote appends a footnote, chaining.
func (d *Diagnostic) WithFootnote(footnote Footnote) *Diagnostic {
	d.AddFootnote(footnote)
	return d
}

// Title returns the diagnostic's title.
func (d *Diagnostic) Title() string {
	return d.title
}

// Render lays the diagnostic out in the expanded format: every label gets
// its own underline row and inline message.
//
// Render is a pure function of (d, cfg): it performs no I/O, and two calls
// with the same inputs produce byte-identical output. A nil cfg means
// [DefaultConfig].
//
// Fails with [ErrNoSource] if no source is attached, or with an error
// matching [ErrInvalidSpan] if any label's span does not fit the source.
func (d *Diagnostic) Render(cfg *Config) (string, error) {
	return d.render(cfg, false)
}

// RenderCompact is like [Render] but fuses underline and message rows into
// the minimum number of lines. Label messages that cannot be placed inline
// fall back to a trailing itemized list, so the set of messages in the
// output is the same as for [Render].
func (d *Diagnostic) RenderCompact(cfg *Config) (string, error) {
	return d.render(cfg, true)
}

// Fprint renders the diagnostic and writes it to w. The output always ends
// with a newline. The layout is compact when cfg.CompactByDefault is set.
func (d *Diagnostic) Fprint(w io.Writer, cfg *Config) error {
	return d.fprintBuffered(w, cfg, cfg != nil && cfg.CompactByDefault)
}

// Print renders the diagnostic to standard error. The layout is compact
// when cfg.CompactByDefault is set.
func (d *Diagnostic) Print(cfg *Config) error {
	return d.fprintBuffered(os.Stderr, cfg, cfg != nil && cfg.CompactByDefault)
}

// PrintCompact renders the diagnostic to standard error using the compact
// layout.
func (d *Diagnostic) PrintCompact(cfg *Config) error {
	return d.fprintBuffered(os.Stderr, cfg, true)
}

func (d *Diagnostic) fprintBuffered(w io.Writer, cfg *Config, compact bool) error {
	text, err := d.render(cfg, compact)
	if err != nil {
		return err
	}

	out := bufio.NewWriter(w)
	if _, err := out.WriteString(text); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	if err := out.Flush(); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return nil
}

// render is the shared entry point for both layouts.
func (d *Diagnostic) render(cfg *Config, compact bool) (string, error) {
	conf := cfg.normalized()

	if d.source == nil {
		return "", ErrNoSource
	}

	layout, err := resolveLayout(d, &conf)
	if err != nil {
		return "", err
	}

	var out strings.Builder
	assemble(&out, d, layout, &conf, compact)
	return out.String(), nil
}
