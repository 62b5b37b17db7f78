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

// Package optimize runs a fixed pipeline of semantics-preserving rewrites
// over a compiled ir.Query. Passes are deliberately uncomposed: adding a new
// rewrite means appending a pass here, not threading it through a rule
// framework.
package optimize

import "github.com/pagelistbot/core/ir"

// Optimize runs the full pipeline over prog/result and returns the rewritten
// program and result register. prog must already satisfy ir's program
// invariants (dest-sorted, single definition, definition-before-use); the
// returned program satisfies them too. Optimize is idempotent.
func Optimize(prog []ir.Instruction, result ir.RegID) ([]ir.Instruction, ir.RegID) {
	prog = cloneProgram(prog)
	ir.SortByDest(prog)

	removeRedundantToggle(prog)
	removeEmptyNS(prog)
	// Pass C is reserved for future local rewrites (e.g. Or(x, empty) -> x)
	// and intentionally does nothing today.
	prog, result = removeNop(prog, result)

	return prog, result
}

func cloneProgram(prog []ir.Instruction) []ir.Instruction {
	out := make([]ir.Instruction, len(prog))
	copy(out, prog)
	return out
}
