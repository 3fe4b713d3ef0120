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

// Package excerpt renders compiler-style diagnostics: annotated excerpts of
// a source text, with labeled spans pointing into it.
//
// A [Diagnostic] is a title, a [Source], any number of [Label] values whose
// byte-offset spans mark ranges of the source, and trailing [Footnote]
// values. Rendering resolves each span to lines and display columns, picks
// the source lines worth showing, and draws caret and tilde underlines
// beneath them:
//
//	error: unused variable `x`
//
//	  --> example.go:2:5
//	   |
//	 1 | func main() {
//	 2 |     x := 1
//	   |     ^ declared but not used
//	 3 |     fmt.Println()
//
// Overlapping labels stack on separate rows, labels spanning several lines
// are bracketed with leader columns beside the gutter, and far-apart labels
// are separated with elision markers. [Diagnostic.RenderCompact] produces a
// denser layout that fuses underline rows and moves displaced messages to a
// trailing list.
//
// Layout is measured in terminal display cells: tabs expand against
// [Config].TabWidth, East Asian wide characters and grapheme clusters count
// their real width, and unprintable characters are escaped. Output is plain
// text unless [Config].ColorEnabled is set, in which case rows are painted
// with ANSI escapes according to [Config].Styles.
package excerpt
