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
	"github.com/fatih/color"
)

// Style is a set of terminal display attributes applied to a rendered
// element: a foreground color, boldness, and so on. The zero Style renders
// text unchanged.
//
// Styles compose by chaining:
//
//	excerpt.NewStyle().Red().Bold()
type Style struct {
	attrs []color.Attribute
}

// NewStyle constructs a style from raw [color.Attribute] values. Most
// callers will prefer the chaining helpers.
func NewStyle(attrs ...color.Attribute) Style {
	return Style{attrs: attrs}
}

// With returns a copy of this style with the given attributes appended.
func (s Style) With(attrs ...color.Attribute) Style {
	merged := make([]color.Attribute, 0, len(s.attrs)+len(attrs))
	merged = append(merged, s.attrs...)
	merged = append(merged, attrs...)
	return Style{attrs: merged}
}

// Bold returns this style with the bold attribute added.
func (s Style) Bold() Style { return s.With(color.Bold) }

// Faint returns this style with the faint attribute added.
func (s Style) Faint() Style { return s.With(color.Faint) }

// Red returns this style with a red foreground.
func (s Style) Red() Style { return s.With(color.FgRed) }

// Yellow returns this style with a yellow foreground.
func (s Style) Yellow() Style { return s.With(color.FgYellow) }

// Cyan returns this style with a cyan foreground.
func (s Style) Cyan() Style { return s.With(color.FgCyan) }

// White returns this style with a white foreground.
func (s Style) White() Style { return s.With(color.FgWhite) }

// Blue returns this style with a bright blue foreground.
func (s Style) Blue() Style { return s.With(color.FgHiBlue) }

// Green returns this style with a green foreground.
func (s Style) Green() Style { return s.With(color.FgGreen) }

// IsZero reports whether this style carries no attributes.
func (s Style) IsZero() bool {
	return len(s.attrs) == 0
}

// paint renders text with this style's ANSI escapes. Color is forced on for
// the instance so output does not depend on the process environment; the
// renderer only calls paint when colors are enabled by [Config].
func (s Style) paint(text string) string {
	if len(s.attrs) == 0 || text == "" {
		return text
	}
	c := color.New(s.attrs...)
	c.EnableColor()
	return c.Sprint(text)
}

// or falls back to alt when this style is zero.
func (s Style) or(alt Style) Style {
	if s.IsZero() {
		return alt
	}
	return s
}

// Styles is the palette used for the parts of a diagnostic that are not
// already styled by a [Label] or [Footnote].
type Styles struct {
	// SourceName styles the source's display name in the header.
	SourceName Style
	// Source styles emitted source text rows.
	Source Style
	// Gutter styles line numbers, gutter bars, and gap markers.
	Gutter Style
	// Primary styles the first label's markers when the label itself has
	// no style.
	Primary Style
	// Secondary styles every other unstyled label's markers.
	Secondary Style
	// Footnote styles the footnote marker.
	Footnote Style
}

func (s Styles) isZero() bool {
	return s.SourceName.IsZero() && s.Source.IsZero() && s.Gutter.IsZero() &&
		s.Primary.IsZero() && s.Secondary.IsZero() && s.Footnote.IsZero()
}

// DefaultStyles returns the palette used when [Config].Styles is zero.
func DefaultStyles() Styles {
	return Styles{
		SourceName: NewStyle().White().Bold(),
		Gutter:     NewStyle().Blue().Bold(),
		Primary:    NewStyle().Yellow().Bold(),
		Secondary:  NewStyle().Blue(),
		Footnote:   NewStyle().Blue().Bold(),
	}
}
