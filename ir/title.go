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

package ir

// Title is an opaque page identifier: a namespace id paired with the
// namespace-local text key. Titles are plain values — comparable and usable
// as map keys.
type Title struct {
	NamespaceID NamespaceID
	Text        string
}

// ToggleTalk maps a title between its subject namespace and its paired
// talk/subject namespace: main<->talk, project<->project talk, and so on.
// Virtual namespaces (negative ids, e.g. Special, Media) have no talk
// counterpart and toggle to themselves.
func (t Title) ToggleTalk() Title {
	ns := t.NamespaceID
	if ns < 0 {
		return t
	}
	if ns%2 == 0 {
		return Title{NamespaceID: ns + 1, Text: t.Text}
	}
	return Title{NamespaceID: ns - 1, Text: t.Text}
}

// TitleSet is a set of titles, keyed by value since Title is comparable.
type TitleSet map[Title]struct{}

// NewTitleSet builds a TitleSet from the given titles.
func NewTitleSet(titles ...Title) TitleSet {
	s := make(TitleSet, len(titles))
	for _, t := range titles {
		s[t] = struct{}{}
	}
	return s
}

// Add inserts t into s.
func (s TitleSet) Add(t Title) {
	s[t] = struct{}{}
}

// Clone returns a shallow copy of s.
func (s TitleSet) Clone() TitleSet {
	out := make(TitleSet, len(s))
	for t := range s {
		out[t] = struct{}{}
	}
	return out
}

// Union returns the set of titles present in s or other.
func (s TitleSet) Union(other TitleSet) TitleSet {
	out := make(TitleSet, len(s)+len(other))
	for t := range s {
		out[t] = struct{}{}
	}
	for t := range other {
		out[t] = struct{}{}
	}
	return out
}

// Intersect returns the set of titles present in both s and other.
func (s TitleSet) Intersect(other TitleSet) TitleSet {
	small, big := s, other
	if len(other) < len(s) {
		small, big = other, s
	}
	out := make(TitleSet, len(small))
	for t := range small {
		if _, ok := big[t]; ok {
			out[t] = struct{}{}
		}
	}
	return out
}

// Difference returns the titles present in s but not in other.
func (s TitleSet) Difference(other TitleSet) TitleSet {
	out := make(TitleSet, len(s))
	for t := range s {
		if _, ok := other[t]; !ok {
			out[t] = struct{}{}
		}
	}
	return out
}

// SymmetricDifference returns the titles present in exactly one of s, other.
func (s TitleSet) SymmetricDifference(other TitleSet) TitleSet {
	out := make(TitleSet, len(s)+len(other))
	for t := range s {
		if _, ok := other[t]; !ok {
			out[t] = struct{}{}
		}
	}
	for t := range other {
		if _, ok := s[t]; !ok {
			out[t] = struct{}{}
		}
	}
	return out
}

// Filter returns the subset of s for which keep returns true.
func (s TitleSet) Filter(keep func(Title) bool) TitleSet {
	out := make(TitleSet, len(s))
	for t := range s {
		if keep(t) {
			out[t] = struct{}{}
		}
	}
	return out
}

// ToggleTalk maps ToggleTalk over every member of s.
func (s TitleSet) ToggleTalk() TitleSet {
	out := make(TitleSet, len(s))
	for t := range s {
		out[t.ToggleTalk()] = struct{}{}
	}
	return out
}

// Slice returns the set's members as a slice, in unspecified order.
func (s TitleSet) Slice() []Title {
	out := make([]Title, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	return out
}
