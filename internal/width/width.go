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

// Package width measures the number of terminal cells a string occupies when
// rendered, accounting for tab stops, East Asian wide characters, and
// grapheme clusters such as emoji presentation sequences.
//
// This should not be confused with golang.org/x/text/width, which converts
// between full- and half-width variants of runes.
package width

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// DefaultTabstop is the tab width used when a caller does not configure one.
const DefaultTabstop = 4

// NonPrint reports whether a rune is unprintable for rendering purposes,
// i.e. whether it should be escaped as <U+NNNN> in emitted source rows.
func NonPrint(r rune) bool {
	return !strings.ContainsRune(" \r\t\n", r) && !unicode.IsPrint(r)
}

// Measure returns the display column reached after placing text at column
// col. Tabs justify to the next multiple of tabstop; unprintable runes are
// counted at the width of their <U+NNNN> escape so that measurement agrees
// with [Render].
func Measure(col int, text string, tabstop int) int {
	return render(nil, col, text, tabstop)
}

// Render writes the display form of text to out: tabs expanded against
// tabstop, unprintable runes escaped as <U+NNNN>. Returns the final column.
func Render(out *strings.Builder, col int, text string, tabstop int) int {
	return render(out, col, text, tabstop)
}

func render(out *strings.Builder, col int, text string, tabstop int) int {
	if tabstop <= 0 {
		tabstop = DefaultTabstop
	}

	for text != "" {
		nextTab := strings.IndexByte(text, '\t')
		chunk := text
		if nextTab != -1 {
			chunk, text = text[:nextTab], text[nextTab+1:]
		} else {
			text = ""
		}

		// Escape unprintable runes within the chunk.
		for chunk != "" {
			i := strings.IndexFunc(chunk, NonPrint)
			if i == -1 {
				if out != nil {
					out.WriteString(chunk)
				}
				col += uniseg.StringWidth(chunk)
				break
			}

			head := chunk[:i]
			r, size := utf8.DecodeRuneInString(chunk[i:])
			chunk = chunk[i+size:]

			escape := fmt.Sprintf("<U+%04X>", r)
			if out != nil {
				out.WriteString(head)
				out.WriteString(escape)
			}
			col += uniseg.StringWidth(head) + len(escape)
		}

		if nextTab != -1 {
			pad := tabstop - col%tabstop
			col += pad
			if out != nil {
				for range pad {
					out.WriteByte(' ')
				}
			}
		}
	}
	return col
}

// Cut returns the longest prefix of text, broken at a grapheme cluster
// boundary, that fits in no more than max display cells, along with the
// width of that prefix. The text is assumed to be display text already, so
// tabs and escapes are not treated specially.
func Cut(text string, max int) (prefix string, w int) {
	state := -1
	var end int
	rest := text
	for rest != "" {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		cw := runewidth.StringWidth(cluster)
		if w+cw > max {
			break
		}
		w += cw
		end += len(cluster)
	}
	return text[:end], w
}
