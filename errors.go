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
	"fmt"
)

var (
	// ErrNoSource is returned by render calls on a [Diagnostic] that has no
	// [Source] attached. Labels cannot be laid out without the text their
	// spans index into.
	ErrNoSource = errors.New("diagnostic has no source attached")

	// ErrInvalidSpan reports that a label's span does not denote a valid
	// range of the attached source. Errors returned by render calls match
	// it with [errors.Is]; the concrete error is a [*SpanError].
	ErrInvalidSpan = errors.New("invalid span")

	// ErrOffsetOutOfBounds is returned by [Source.Location] when given an
	// offset past the end of the text. Render calls wrap it in a
	// [*SpanError].
	ErrOffsetOutOfBounds = errors.New("offset out of bounds")

	// ErrWrite wraps a failure to write a rendered diagnostic to its output
	// stream. Only the printing calls ([Diagnostic.Fprint],
	// [Diagnostic.Print], [Diagnostic.PrintCompact]) can return it; the
	// pure render calls perform no I/O.
	ErrWrite = errors.New("writing diagnostic")
)

// SpanError is the error returned when a label's span cannot be resolved
// against the diagnostic's source. The whole render is aborted: a report
// with a silently dropped label would misattribute its remaining columns.
type SpanError struct {
	// The offending span, as given by the caller.
	Span Span
	// The length of the source text the span was resolved against.
	SourceLen int

	cause error
}

// Error implements [error].
func (e *SpanError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%v %v: %v", ErrInvalidSpan, e.Span, e.cause)
	}
	return fmt.Sprintf("%v %v: start is past end", ErrInvalidSpan, e.Span)
}

// Unwrap makes the error matchable via [errors.Is].
func (e *SpanError) Unwrap() []error {
	if e.cause != nil {
		return []error{ErrInvalidSpan, e.cause}
	}
	return []error{ErrInvalidSpan}
}
