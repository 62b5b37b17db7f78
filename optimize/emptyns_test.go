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

package optimize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagelistbot/core/ir"
)

func TestRemoveEmptyNSCollapsesLinkToChain(t *testing.T) {
	prog := []ir.Instruction{
		ir.Set{D: 0, Titles: []string{"Foo"}},
		ir.LinkTo{D: 1, Op: 0, CS: ir.SetConstraint{NS: ir.NewNamespaceSet()}},
	}

	removeEmptyNS(prog)

	idx, ok := ir.FindByDest(prog, 1)
	require.True(t, ok)
	assert.Equal(t, ir.Nop{D: 1, Op: 0}, prog[idx])
}

func TestRemoveEmptyNSClearsSetLeaf(t *testing.T) {
	prog := []ir.Instruction{
		ir.Set{D: 0, Titles: []string{"Foo", "Bar"}, CS: ir.SetConstraint{NS: ir.NewNamespaceSet()}},
	}

	removeEmptyNS(prog)

	idx, ok := ir.FindByDest(prog, 0)
	require.True(t, ok)
	set := prog[idx].(ir.Set)
	assert.Empty(t, set.Titles)
	assert.Equal(t, ir.Unconstrained, set.CS)
}

func TestRemoveEmptyNSRecursesThroughCombinatorOperands(t *testing.T) {
	prog := []ir.Instruction{
		ir.Set{D: 0, Titles: []string{"Foo"}},
		ir.Set{D: 1, Titles: []string{"Bar"}},
		ir.NewAnd(2, 0, 1),
		ir.LinkTo{D: 3, Op: 2, CS: ir.SetConstraint{NS: ir.NewNamespaceSet()}},
	}

	removeEmptyNS(prog)

	idx, ok := ir.FindByDest(prog, 2)
	require.True(t, ok)
	_, isAnd := prog[idx].(ir.And)
	assert.True(t, isAnd, "combinators are not collapsed themselves")

	idx, ok = ir.FindByDest(prog, 0)
	require.True(t, ok)
	set, isSet := prog[idx].(ir.Set)
	assert.True(t, isSet, "Set leaves reachable through a combinator stay Set instructions")
	assert.Empty(t, set.Titles, "Set leaves reachable through a combinator are cleared")
}

func TestRemoveEmptyNSDoesNotTouchNonEmptyConstraints(t *testing.T) {
	prog := []ir.Instruction{
		ir.Set{D: 0, Titles: []string{"Foo"}},
		ir.LinkTo{D: 1, Op: 0, CS: ir.SetConstraint{NS: ir.NewNamespaceSet(ir.NSMain)}},
	}

	removeEmptyNS(prog)

	idx, ok := ir.FindByDest(prog, 1)
	require.True(t, ok)
	_, isLinkTo := prog[idx].(ir.LinkTo)
	assert.True(t, isLinkTo)
}
