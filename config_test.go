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
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestConfigNormalized(t *testing.T) {
	t.Parallel()

	t.Run("nil means default", func(t *testing.T) {
		t.Parallel()
		var cfg *Config
		assert.Equal(t, *DefaultConfig(), cfg.normalized())
	})

	t.Run("zero value gets usable defaults", func(t *testing.T) {
		t.Parallel()
		conf := (&Config{}).normalized()
		assert.Equal(t, 4, conf.TabWidth)
		assert.Equal(t, ASCIICharset(), conf.Charset)
		assert.False(t, conf.Styles.isZero())
		// Zero context and merge gap are honored as written.
		assert.Zero(t, conf.ContextLines)
		assert.Zero(t, conf.MergeGap)
	})

	t.Run("negatives clamp", func(t *testing.T) {
		t.Parallel()
		conf := (&Config{ContextLines: -3, TabWidth: -1, MergeGap: -2}).normalized()
		assert.Zero(t, conf.ContextLines)
		assert.Equal(t, 4, conf.TabWidth)
		assert.Zero(t, conf.MergeGap)
	})

	t.Run("explicit values survive", func(t *testing.T) {
		t.Parallel()
		in := Config{ContextLines: 5, TabWidth: 8, MaxWidth: 100, MergeGap: 3, Charset: UnicodeCharset()}
		conf := in.normalized()
		assert.Equal(t, 5, conf.ContextLines)
		assert.Equal(t, 8, conf.TabWidth)
		assert.Equal(t, 100, conf.MaxWidth)
		assert.Equal(t, 3, conf.MergeGap)
		assert.Equal(t, UnicodeCharset(), conf.Charset)
	})
}

func TestStyle(t *testing.T) {
	t.Parallel()

	assert.True(t, Style{}.IsZero())
	assert.False(t, NewStyle().Red().IsZero())

	// With must not mutate the receiver.
	base := NewStyle(color.FgRed)
	bold := base.With(color.Bold)
	assert.Equal(t, NewStyle(color.FgRed), base)
	assert.NotEqual(t, base, bold)

	assert.Equal(t, base, base.or(bold))
	assert.Equal(t, bold, Style{}.or(bold))
}
