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

// Package golden provides a framework for golden-file corpus tests.
//
// A corpus is a directory of input files, each accompanied by one golden
// file per configured output. The test callback computes the outputs for
// an input; the framework compares them against the golden files, or
// regenerates the golden files when the refresh environment variable is
// set.
package golden

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/stretchr/testify/require"
)

// Corpus describes a collection of test inputs on disk.
type Corpus struct {
	// Root is the directory, relative to the test binary, that holds the
	// corpus inputs.
	Root string

	// Refresh names an environment variable. When it is set, the corpus
	// rewrites its golden files with the outputs of the current run
	// instead of comparing against them.
	Refresh string

	// Extensions are the file extensions, without the dot, of corpus
	// inputs. Everything else under Root is ignored.
	Extensions []string

	// Outputs configures the golden file produced per output slot; an
	// input foo.yaml with output extension "out.txt" has its golden file
	// at foo.yaml.out.txt.
	Outputs []Output
}

// Output is a single golden output of a corpus test.
type Output struct {
	Extension string
}

// Run walks the corpus and executes test once per input as a subtest.
// test must fill in one string per configured Output.
func (c Corpus) Run(t *testing.T, test func(t *testing.T, path, text string, outputs []string)) {
	refresh := c.Refresh != "" && os.Getenv(c.Refresh) != ""
	if refresh {
		t.Logf("%s is set; regenerating golden files", c.Refresh)
	}

	var inputs []string
	err := filepath.WalkDir(c.Root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil || entry.IsDir() {
			return err
		}
		if slices.ContainsFunc(c.Extensions, func(ext string) bool {
			return strings.HasSuffix(path, "."+ext)
		}) {
			inputs = append(inputs, path)
		}
		return nil
	})
	require.NoError(t, err, "failed to walk corpus root %q", c.Root)

	for _, path := range inputs {
		t.Run(strings.TrimPrefix(path, c.Root+string(filepath.Separator)), func(t *testing.T) {
			text, err := os.ReadFile(path)
			require.NoError(t, err)

			outputs := make([]string, len(c.Outputs))
			test(t, path, string(text), outputs)

			for i, output := range c.Outputs {
				golden := fmt.Sprint(path, ".", output.Extension)
				if refresh {
					require.NoError(t, os.WriteFile(golden, []byte(outputs[i]), 0o600))
					continue
				}

				want, err := os.ReadFile(golden)
				if os.IsNotExist(err) && outputs[i] == "" {
					continue
				}
				require.NoError(t, err)
				if string(want) == outputs[i] {
					continue
				}

				diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
					A:        difflib.SplitLines(string(want)),
					B:        difflib.SplitLines(outputs[i]),
					FromFile: golden,
					ToFile:   "output",
					Context:  2,
				})
				require.NoError(t, err)
				t.Errorf("golden file mismatch for %q:\n%s", golden, diff)
			}
		})
	}
}
