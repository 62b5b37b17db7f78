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

// removeNop is Pass D: every Nop{dest: d, op: r} is removed by re-pointing
// every instruction that names d as an operand to name r instead (and
// re-pointing the program's result register, if it names d). Because Nop
// chains are acyclic — the program is SSA and topologically ordered — this
// terminates with no Nops left; where a Nop was itself the result register,
// its operand becomes the result register.
func removeNop(prog []ir.Instruction, result ir.RegID) ([]ir.Instruction, ir.RegID) {
	for {
		idx := firstNop(prog)
		if idx < 0 {
			break
		}
		nop := prog[idx].(ir.Nop)

		for i := range prog {
			if i == idx {
				continue
			}
			prog[i] = ir.WithOperand(prog[i], nop.D, nop.Op)
		}
		if result == nop.D {
			result = nop.Op
		}

		prog = append(prog[:idx], prog[idx+1:]...)
	}
	return prog, result
}

func firstNop(prog []ir.Instruction) int {
	for i, inst := range prog {
		if _, ok := inst.(ir.Nop); ok {
			return i
		}
	}
	return -1
}
