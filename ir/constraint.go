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

import (
	errors "gopkg.in/src-d/go-errors.v1"
)

// ErrConflictDepth is raised by ConstructFromList and Merge when two depth
// clauses disagree.
var ErrConflictDepth = errors.NewKind("conflicting depth constraints: %d and %d")

// NamespaceSet is an explicit set of namespace ids. A nil NamespaceSet on
// SetConstraint means "unconstrained"; a non-nil, empty NamespaceSet is the
// lattice's bottom element — legal, and means no page can satisfy the
// constraint.
type NamespaceSet map[NamespaceID]struct{}

// NewNamespaceSet builds a NamespaceSet from the given ids.
func NewNamespaceSet(ids ...NamespaceID) NamespaceSet {
	s := make(NamespaceSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Contains reports whether id is a member of s.
func (s NamespaceSet) Contains(id NamespaceID) bool {
	_, ok := s[id]
	return ok
}

// Intersect returns the intersection of s and other.
func (s NamespaceSet) Intersect(other NamespaceSet) NamespaceSet {
	small, big := s, other
	if len(other) < len(s) {
		small, big = other, s
	}
	out := make(NamespaceSet, len(small))
	for id := range small {
		if _, ok := big[id]; ok {
			out[id] = struct{}{}
		}
	}
	return out
}

// Clone returns a shallow copy of s, preserving nil-ness.
func (s NamespaceSet) Clone() NamespaceSet {
	if s == nil {
		return nil
	}
	out := make(NamespaceSet, len(s))
	for id := range s {
		out[id] = struct{}{}
	}
	return out
}

// Remove deletes id from s in place and reports whether it was present.
func (s NamespaceSet) Remove(id NamespaceID) bool {
	_, ok := s[id]
	if ok {
		delete(s, id)
	}
	return ok
}

// SetConstraint restricts the pages an instruction may produce: an optional
// namespace set and an optional depth bound (meaningful only for InCat, but
// carried on every instruction so Merge has uniform semantics).
type SetConstraint struct {
	NS    NamespaceSet
	Depth *DepthNum
}

// Unconstrained is the identity element of Merge: no namespace or depth
// restriction.
var Unconstrained = SetConstraint{}

// NSEmpty reports whether cs's namespace set is explicitly the empty set —
// the lattice's bottom element, which the optimizer's Pass B propagates.
func (cs SetConstraint) NSEmpty() bool {
	return cs.NS != nil && len(cs.NS) == 0
}

// ConstraintClauseKind tags a single clause passed to ConstructFromList.
type ConstraintClauseKind int

const (
	ClauseNS ConstraintClauseKind = iota
	ClauseDepth
)

// ConstraintClause is one per-operator clause from the AST: either a
// namespace restriction or a depth bound.
type ConstraintClause struct {
	Kind  ConstraintClauseKind
	NS    NamespaceSet
	Depth DepthNum
}

// NSClause builds a namespace clause.
func NSClause(ids ...NamespaceID) ConstraintClause {
	return ConstraintClause{Kind: ClauseNS, NS: NewNamespaceSet(ids...)}
}

// DepthClause builds a depth clause.
func DepthClause(n DepthNum) ConstraintClause {
	return ConstraintClause{Kind: ClauseDepth, Depth: n}
}

// ConstructFromList builds a SetConstraint from a list of per-clause
// constraints gathered while lowering one operator. Multiple Ns clauses are
// intersected; multiple Depth clauses must agree or ErrConflictDepth is
// returned. A missing clause kind leaves that axis unconstrained.
func ConstructFromList(clauses []ConstraintClause) (SetConstraint, error) {
	var ns NamespaceSet
	haveNS := false
	var depth *DepthNum

	for _, c := range clauses {
		switch c.Kind {
		case ClauseNS:
			if !haveNS {
				ns = c.NS.Clone()
				haveNS = true
			} else {
				ns = ns.Intersect(c.NS)
			}
		case ClauseDepth:
			if depth == nil {
				d := c.Depth
				depth = &d
			} else if *depth != c.Depth {
				return SetConstraint{}, ErrConflictDepth.New(*depth, c.Depth)
			}
		}
	}

	return SetConstraint{NS: ns, Depth: depth}, nil
}

// Merge computes the component-wise meet of a and b: the namespace set is
// the intersection when both sides are constrained, otherwise whichever
// side is constrained, else unconstrained. The depth merges by equality.
// Merge is associative and commutative on success.
func Merge(a, b SetConstraint) (SetConstraint, error) {
	var ns NamespaceSet
	switch {
	case a.NS == nil:
		ns = b.NS
	case b.NS == nil:
		ns = a.NS
	default:
		ns = a.NS.Intersect(b.NS)
	}

	var depth *DepthNum
	switch {
	case a.Depth == nil:
		depth = b.Depth
	case b.Depth == nil:
		depth = a.Depth
	case *a.Depth == *b.Depth:
		depth = a.Depth
	default:
		return SetConstraint{}, ErrConflictDepth.New(*a.Depth, *b.Depth)
	}

	return SetConstraint{NS: ns, Depth: depth}, nil
}
