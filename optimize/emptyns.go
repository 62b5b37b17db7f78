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

import "github.com/pagelistbot/core/ir"

// removeEmptyNS is Pass B: any instruction whose constraint carries an
// explicit empty namespace set is guaranteed to yield the empty set. This
// walks the transitive producers reachable from such an instruction and
// collapses that whole subtree so the solver issues no API calls for it.
//
// Combinators (And/Or/Exclude/Xor) are not rewritten, here or by any later
// pass — they stay in the program and evaluate over their emptied operands —
// but both of their operands are still recursed into. Unary relational operators
// (LinkTo/InCat/Toggle/Prefix) become Nop immediately, forbidding the API
// call while preserving the register chain. Set leaves have their titles
// cleared and constraint reset to unconstrained, which is what makes them
// an empty-producing leaf in the first place.
func removeEmptyNS(prog []ir.Instruction) {
	for _, inst := range prog {
		if !constraintOf(inst).NSEmpty() {
			continue
		}
		collapseSubtree(prog, inst.DestReg())
	}
}

func constraintOf(inst ir.Instruction) ir.SetConstraint {
	switch v := inst.(type) {
	case ir.LinkTo:
		return v.CS
	case ir.InCat:
		return v.CS
	case ir.Prefix:
		return v.CS
	case ir.Set:
		return v.CS
	default:
		return ir.Unconstrained
	}
}

func collapseSubtree(prog []ir.Instruction, start ir.RegID) {
	stack := []ir.RegID{start}
	for len(stack) > 0 {
		dest := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		idx, ok := ir.FindByDest(prog, dest)
		if !ok {
			continue
		}

		switch v := prog[idx].(type) {
		case ir.And:
			stack = append(stack, v.Op1, v.Op2)
		case ir.Or:
			stack = append(stack, v.Op1, v.Op2)
		case ir.Exclude:
			stack = append(stack, v.Op1, v.Op2)
		case ir.Xor:
			stack = append(stack, v.Op1, v.Op2)
		case ir.LinkTo:
			prog[idx] = ir.Nop{D: v.D, Op: v.Op}
			stack = append(stack, v.Op)
		case ir.InCat:
			prog[idx] = ir.Nop{D: v.D, Op: v.Op}
			stack = append(stack, v.Op)
		case ir.Prefix:
			prog[idx] = ir.Nop{D: v.D, Op: v.Op}
			stack = append(stack, v.Op)
		case ir.Toggle:
			prog[idx] = ir.Nop{D: v.D, Op: v.Op}
			stack = append(stack, v.Op)
		case ir.Set:
			v.Titles = nil
			v.CS = ir.Unconstrained
			prog[idx] = v
		case ir.Nop:
			stack = append(stack, v.Op)
		}
	}
}
