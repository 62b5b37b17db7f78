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

package optimize_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagelistbot/core/ir"
	"github.com/pagelistbot/core/optimize"
	"github.com/pagelistbot/core/solver"
	"github.com/pagelistbot/core/wikiapi/memwiki"
)

func fixture() *memwiki.Wiki {
	w := memwiki.New()
	foo := ir.Title{NamespaceID: ir.NSMain, Text: "Foo"}
	bar := ir.Title{NamespaceID: ir.NSMain, Text: "Bar"}
	baz := ir.Title{NamespaceID: ir.NSTalk, Text: "Baz"}
	w.Pages = []ir.Title{foo, bar, baz}
	w.BacklinksOf[foo] = []ir.Title{bar, baz}
	return w
}

var programs = map[string]struct {
	prog   []ir.Instruction
	result ir.RegID
}{
	"toggle-cancel": {
		prog: []ir.Instruction{
			ir.Set{D: 0, Titles: []string{"Foo"}},
			ir.Toggle{D: 1, Op: 0},
			ir.Toggle{D: 2, Op: 1},
		},
		result: 2,
	},
	"empty-ns-subtree": {
		prog: []ir.Instruction{
			ir.Set{D: 0, Titles: []string{"Foo"}},
			ir.LinkTo{D: 1, Op: 0, CS: ir.SetConstraint{NS: ir.NewNamespaceSet()}},
			ir.Set{D: 2, Titles: []string{"Bar"}},
			ir.NewOr(3, 1, 2),
		},
		result: 3,
	},
	"union-intersect": {
		prog: []ir.Instruction{
			ir.Set{D: 0, Titles: []string{"Foo"}},
			ir.LinkTo{D: 1, Op: 0},
			ir.Set{D: 2, Titles: []string{"Bar"}},
			ir.NewAnd(3, 1, 2),
		},
		result: 3,
	},
}

func TestOptimizeIsIdempotent(t *testing.T) {
	for name, p := range programs {
		t.Run(name, func(t *testing.T) {
			once, r1 := optimize.Optimize(p.prog, p.result)
			twice, r2 := optimize.Optimize(once, r1)

			assert.Equal(t, r1, r2)
			assert.Equal(t, once, twice)
		})
	}
}

func TestOptimizePreservesSolveResult(t *testing.T) {
	ctx := context.Background()

	for name, p := range programs {
		t.Run(name, func(t *testing.T) {
			w := fixture()
			before, err := solver.Solve(ctx, ir.Query{Instructions: p.prog, Result: p.result}, w, "", nil)
			require.NoError(t, err)

			optProg, optResult := optimize.Optimize(p.prog, p.result)

			w2 := fixture()
			after, err := solver.Solve(ctx, ir.Query{Instructions: optProg, Result: optResult}, w2, "", nil)
			require.NoError(t, err)

			assert.Equal(t, before, after)
		})
	}
}

func TestOptimizeEmptyNSMakesZeroAPICalls(t *testing.T) {
	prog := []ir.Instruction{
		ir.Set{D: 0, Titles: []string{"Foo"}},
		ir.LinkTo{D: 1, Op: 0, CS: ir.SetConstraint{NS: ir.NewNamespaceSet()}},
	}

	optProg, optResult := optimize.Optimize(prog, 1)

	w := fixture()
	result, err := solver.Solve(context.Background(), ir.Query{Instructions: optProg, Result: optResult}, w, "", nil)
	require.NoError(t, err)
	assert.Empty(t, result)
	assert.Empty(t, w.Calls)
}
