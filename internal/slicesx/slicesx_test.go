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

package slicesx_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/excerpta/excerpt/internal/slicesx"
)

func TestPartition(t *testing.T) {
	t.Parallel()

	type run struct {
		start int
		elems []byte
	}
	collect := func(s []byte) []run {
		var runs []run
		for i, sub := range slicesx.Partition(s) {
			runs = append(runs, run{i, sub})
		}
		return runs
	}

	assert.Empty(t, collect(nil))
	assert.Equal(t, []run{{0, []byte("a")}}, collect([]byte("a")))
	assert.Equal(t,
		[]run{{0, []byte("aaa")}, {3, []byte("b")}, {4, []byte("cc")}},
		collect([]byte("aaabcc")),
	)
}
