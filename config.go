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

import "github.com/excerpta/excerpt/internal/width"

// DefaultContextLines is the number of unannotated source lines shown
// around each label group by [DefaultConfig].
const DefaultContextLines = 1

// DefaultMergeGap is the largest run of unannotated lines between two line
// groups that [DefaultConfig] shows in full rather than eliding.
const DefaultMergeGap = 1

// Charset is the glyph set used to draw a diagnostic's annotations.
type Charset struct {
	// Caret underlines the primary label; Tilde underlines the others.
	Caret, Tilde rune
	// Bar is the vertical leader drawn through lines a multi-line label
	// passes over; GutterBar separates line numbers from source text.
	Bar, GutterBar rune
	// StartCorner and EndCorner bracket a multi-line label; Dash pads the
	// horizontal run from a corner to the marked column.
	StartCorner, EndCorner, Dash rune
	// Gap marks elided lines between line groups.
	Gap string
	// Ellipsis marks a row truncated by [Config].MaxWidth.
	Ellipsis string
	// Footnote marks footnote rows.
	Footnote rune
}

// ASCIICharset returns the default, pure-ASCII glyph set.
func ASCIICharset() Charset {
	return Charset{
		Caret:       '^',
		Tilde:       '~',
		Bar:         '|',
		GutterBar:   '|',
		StartCorner: '/',
		EndCorner:   '\\',
		Dash:        '_',
		Gap:         "...",
		Ellipsis:    "...",
		Footnote:    '=',
	}
}

// UnicodeCharset returns a box-drawing glyph set.
func UnicodeCharset() Charset {
	return Charset{
		Caret:       '^',
		Tilde:       '─',
		Bar:         '│',
		GutterBar:   '│',
		StartCorner: '╭',
		EndCorner:   '╰',
		Dash:        '─',
		Gap:         "┈",
		Ellipsis:    "…",
		Footnote:    '»',
	}
}

// Config carries the rendering parameters. The engine never mutates it, so
// one Config may serve concurrent render calls.
//
// A nil *Config passed to a render call means [DefaultConfig]. In a
// caller-constructed Config the zero values of ContextLines and MergeGap
// are honored as written; a zero TabWidth, Charset, or Styles falls back to
// the default.
type Config struct {
	// ColorEnabled turns on ANSI color escapes in the output. The caller
	// decides whether the destination is a capable terminal.
	ColorEnabled bool

	// ContextLines is the number of unannotated source lines shown above
	// and below each label's lines.
	ContextLines int

	// TabWidth is the tab stop width used both for column measurement and
	// for expanding tabs in emitted source rows. Zero means 4.
	TabWidth int

	// MaxWidth caps the display width of every emitted row; rows beyond it
	// are truncated with an ellipsis marker. Zero means unlimited.
	MaxWidth int

	// CompactByDefault makes [Diagnostic.Print] use the compact layout.
	CompactByDefault bool

	// MergeGap is the largest number of elided lines between two displayed
	// line groups that is shown in full instead of collapsed to a gap
	// marker.
	MergeGap int

	// Charset selects the glyphs used for annotations.
	Charset Charset

	// Styles is the palette for unlabeled parts of the output.
	Styles Styles
}

// DefaultConfig returns the configuration used when a render call is passed
// a nil Config.
func DefaultConfig() *Config {
	return &Config{
		ContextLines: DefaultContextLines,
		TabWidth:     width.DefaultTabstop,
		MergeGap:     DefaultMergeGap,
		Charset:      ASCIICharset(),
		Styles:       DefaultStyles(),
	}
}

// normalized returns a copy with defaults applied where the zero value has
// no sensible meaning.
func (c *Config) normalized() Config {
	if c == nil {
		return *DefaultConfig()
	}

	out := *c
	if out.TabWidth <= 0 {
		out.TabWidth = width.DefaultTabstop
	}
	if out.ContextLines < 0 {
		out.ContextLines = 0
	}
	if out.MergeGap < 0 {
		out.MergeGap = 0
	}
	if out.Charset == (Charset{}) {
		out.Charset = ASCIICharset()
	}
	if out.Styles.isZero() {
		out.Styles = DefaultStyles()
	}
	return out
}
