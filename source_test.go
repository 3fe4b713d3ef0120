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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/excerpta/excerpt"
)

func TestSpan(t *testing.T) {
	t.Parallel()

	span := excerpt.NewSpan(2, 5)
	assert.Equal(t, 3, span.Len())
	assert.Equal(t, "[2, 5)", span.String())

	empty := excerpt.NewSpan(4, 4)
	assert.Equal(t, 0, empty.Len())
	assert.Equal(t, "[4, 4)", empty.String())
}

func TestSourceLocation(t *testing.T) {
	t.Parallel()

	text := "abc\ndef\n\tghi\n"
	src := excerpt.NewNamedSource("input.txt", text)
	assert.Equal(t, "input.txt", src.Name())
	assert.Equal(t, text, src.Text())

	tests := []struct {
		name     string
		offset   int
		wantLine int
		wantCol  int
	}{
		{name: "start", offset: 0, wantLine: 1, wantCol: 1},
		{name: "mid first line", offset: 2, wantLine: 1, wantCol: 3},
		{name: "newline belongs to its line", offset: 3, wantLine: 1, wantCol: 4},
		{name: "line boundary starts next line", offset: 4, wantLine: 2, wantCol: 1},
		{name: "after tab", offset: 9, wantLine: 3, wantCol: 5},
		{name: "end of text", offset: len(text), wantLine: 4, wantCol: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			loc, err := src.Location(tt.offset, 4)
			require.NoError(t, err)
			assert.Equal(t, tt.offset, loc.Offset)
			assert.Equal(t, tt.wantLine, loc.Line)
			assert.Equal(t, tt.wantCol, loc.Column)
		})
	}
}

func TestSourceLocationOutOfBounds(t *testing.T) {
	t.Parallel()

	src := excerpt.NewSource("abc")
	for _, offset := range []int{-1, 4, 100} {
		_, err := src.Location(offset, 4)
		assert.ErrorIs(t, err, excerpt.ErrOffsetOutOfBounds, "offset %d", offset)
	}
}

func TestSourceNil(t *testing.T) {
	t.Parallel()

	var src *excerpt.Source
	assert.Empty(t, src.Name())
	assert.Empty(t, src.Text())

	loc, err := src.Location(0, 4)
	require.NoError(t, err)
	assert.Equal(t, 1, loc.Line)
	assert.Equal(t, 1, loc.Column)

	_, err = src.Location(1, 4)
	assert.ErrorIs(t, err, excerpt.ErrOffsetOutOfBounds)
}

func TestSourceNoTrailingNewline(t *testing.T) {
	t.Parallel()

	src := excerpt.NewSource("one\ntwo")
	loc, err := src.Location(7, 4)
	require.NoError(t, err)
	assert.Equal(t, 2, loc.Line)
	assert.Equal(t, 4, loc.Column)
}
