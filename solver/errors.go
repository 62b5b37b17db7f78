// Copyright 2020-2021 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package solver

import (
	errors "gopkg.in/src-d/go-errors.v1"
)

var (
	// ErrMissingRegister indicates the executor was asked for a register
	// no prior instruction defined — a malformed IR, i.e. a bug in the
	// lowerer or the optimizer.
	ErrMissingRegister = errors.NewKind("missing register %d")

	// ErrQueryForMultiplePages indicates a single-source operator
	// (LinkTo/InCat/Prefix) received an operand set with more than one
	// title.
	ErrQueryForMultiplePages = errors.NewKind("query for multiple pages: instruction %v expects a single-page operand, got %d pages")

	// ErrTransport wraps any failure surfaced by the WikiAPI collaborator:
	// timeouts, HTTP errors, parse failures, server-reported query errors.
	// It is propagated verbatim, without retry — callers compose retries
	// at the task layer.
	ErrTransport = errors.NewKind("wiki API request failed: %s")
)
