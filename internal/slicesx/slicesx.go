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

// Package slicesx contains slice helpers missing from the standard slices
// package.
package slicesx

import "iter"

// Partition yields the maximal runs of equal adjacent elements of s, along
// with the index each run begins at. Never yields an empty run.
func Partition[S ~[]E, E comparable](s S) iter.Seq2[int, S] {
	return func(yield func(int, S) bool) {
		start := 0
		for i := 1; i <= len(s); i++ {
			if i < len(s) && s[i] == s[start] {
				continue
			}
			if !yield(start, s[start:i]) {
				return
			}
			start = i
		}
	}
}
