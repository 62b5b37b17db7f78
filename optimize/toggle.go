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

// removeRedundantToggle is Pass A: toggle is an involution, so a Toggle
// whose operand is itself produced by a Toggle cancels. Both instructions
// become Nop and keep their original dest/op; Pass D later folds the Nops
// away, leaving the outer dest aliasing the inner toggle's operand.
//
// Only direct producer/consumer toggle pairs are eligible — toggles
// separated by any other operator are not, since their semantics differ
// once a set operation intervenes. The scan is a single left-to-right pass;
// each pair fires at most once.
func removeRedundantToggle(prog []ir.Instruction) {
	for idx, inst := range prog {
		toggle, ok := inst.(ir.Toggle)
		if !ok {
			continue
		}

		idx2, ok := ir.FindByDest(prog, toggle.Op)
		if !ok {
			continue
		}

		inner, ok := prog[idx2].(ir.Toggle)
		if !ok {
			continue
		}

		prog[idx] = ir.Nop{D: toggle.D, Op: toggle.Op}
		prog[idx2] = ir.Nop{D: inner.D, Op: inner.Op}
	}
}
