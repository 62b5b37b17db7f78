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

package solver_test

import (
	"context"
	"fmt"

	"github.com/pagelistbot/core/ir"
	"github.com/pagelistbot/core/optimize"
	"github.com/pagelistbot/core/solver"
	"github.com/pagelistbot/core/wikiapi/memwiki"
)

// Example demonstrates compiling, optimizing and solving a small query:
// the pages linking to "Foo" that are not themselves "Bar".
func Example() {
	w := memwiki.New()
	foo := ir.Title{NamespaceID: ir.NSMain, Text: "Foo"}
	bar := ir.Title{NamespaceID: ir.NSMain, Text: "Bar"}
	baz := ir.Title{NamespaceID: ir.NSMain, Text: "Baz"}
	w.BacklinksOf[foo] = []ir.Title{bar, baz}

	prog := []ir.Instruction{
		ir.Set{D: 0, Titles: []string{"Foo"}},
		ir.LinkTo{D: 1, Op: 0},
		ir.Set{D: 2, Titles: []string{"Bar"}},
		ir.NewExclude(3, 1, 2),
	}
	prog, result := optimize.Optimize(prog, 3)

	out, err := solver.Solve(context.Background(), ir.Query{Instructions: prog, Result: result}, w, "bot", nil)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(len(out))
	// Output: 1
}
