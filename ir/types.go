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

// Package ir defines the base vocabulary shared by the optimizer and the
// solver: namespace and register identifiers, titles, set constraints and
// the instruction sum that makes up a compiled Query.
package ir

// NamespaceID is a wiki-wide integer tag for a namespace (main, talk,
// project, file, category, ...).
type NamespaceID int32

// Well-known namespace ids referenced by the category-traversal miser-mode
// workaround (see the wikiapi package).
const (
	NSMain     NamespaceID = 0
	NSTalk     NamespaceID = 1
	NSFile     NamespaceID = 6
	NSCategory NamespaceID = 14
)

// RegID names a register in the IR's single-assignment register file.
type RegID uint32

// DepthNum bounds transitive category descent. Any negative value means
// unbounded; zero means "root category members only". Whether values below
// -1 carry distinct meaning is undefined by the source this was distilled
// from, so all negative values are treated identically.
type DepthNum int32

// Unbounded reports whether d means "no depth limit".
func (d DepthNum) Unbounded() bool {
	return d < 0
}

// RedirectStrategy selects how redirect pages are treated by a query
// primitive.
type RedirectStrategy int

const (
	// RedirectNone excludes redirect pages from the result.
	RedirectNone RedirectStrategy = iota
	// RedirectOnly returns only redirect pages.
	RedirectOnly
	// RedirectAll returns both redirects and non-redirects.
	RedirectAll
)

// String renders the wire-level vocabulary used by the remote API's
// filterredir parameter family.
func (r RedirectStrategy) String() string {
	switch r {
	case RedirectNone:
		return "no redirect"
	case RedirectOnly:
		return "only redirects"
	case RedirectAll:
		return "all"
	default:
		return "all"
	}
}

// RegID is used as the solver's register-file map key and as the ordering
// key of the optimizer's binary search, so it is deliberately a small
// unsigned integer rather than a struct.
