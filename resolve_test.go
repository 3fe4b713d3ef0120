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
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveSpan(t *testing.T) {
	t.Parallel()

	src := NewSource("let x = 1;\nlet y = 2;\n\tz()\n")

	tests := []struct {
		name string
		span Span
		want resolvedSpan
	}{
		{
			name: "single line",
			span: NewSpan(4, 5),
			want: resolvedSpan{startLine: 0, endLine: 0, startCol: 4, endCol: 5},
		},
		{
			name: "empty span gets one caret",
			span: NewSpan(4, 4),
			want: resolvedSpan{startLine: 0, endLine: 0, startCol: 4, endCol: 5},
		},
		{
			name: "second line",
			span: NewSpan(15, 16),
			want: resolvedSpan{startLine: 1, endLine: 1, startCol: 4, endCol: 5},
		},
		{
			name: "end at line start snaps back",
			span: NewSpan(0, 11),
			want: resolvedSpan{startLine: 0, endLine: 0, startCol: 0, endCol: 10},
		},
		{
			name: "multiline",
			span: NewSpan(4, 16),
			want: resolvedSpan{startLine: 0, endLine: 1, startCol: 4, endCol: 5, multiline: true},
		},
		{
			name: "tab widens column",
			span: NewSpan(23, 24),
			want: resolvedSpan{startLine: 2, endLine: 2, startCol: 4, endCol: 5},
		},
		{
			name: "empty span at end of text",
			span: NewSpan(27, 27),
			want: resolvedSpan{startLine: 3, endLine: 3, startCol: 0, endCol: 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := resolveSpan(src, tt.span, 4)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got, cmp.AllowUnexported(resolvedSpan{}, Style{})); diff != "" {
				t.Errorf("resolveSpan mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResolveSpanErrors(t *testing.T) {
	t.Parallel()

	src := NewSource("short\n")

	tests := []struct {
		name    string
		span    Span
		wantOOB bool
	}{
		{name: "start past end", span: Span{Start: 3, End: 1}},
		{name: "negative start", span: Span{Start: -1, End: 2}, wantOOB: true},
		{name: "end past text", span: Span{Start: 0, End: 100}, wantOOB: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := resolveSpan(src, tt.span, 4)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidSpan)

			var spanErr *SpanError
			require.ErrorAs(t, err, &spanErr)
			assert.Equal(t, tt.span, spanErr.Span)
			assert.Equal(t, len(src.Text()), spanErr.SourceLen)
			assert.Equal(t, tt.wantOOB, errors.Is(err, ErrOffsetOutOfBounds))
		})
	}
}
