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

func TestRemoveNopRepointsConsumers(t *testing.T) {
	prog := []ir.Instruction{
		ir.Set{D: 0, Titles: []string{"Foo"}},
		ir.Nop{D: 1, Op: 0},
		ir.NewAnd(2, 1, 1),
	}

	out, result := removeNop(prog, 2)

	for _, inst := range out {
		_, isNop := inst.(ir.Nop)
		assert.False(t, isNop)
	}

	idx, ok := ir.FindByDest(out, result)
	require.True(t, ok)
	and := out[idx].(ir.And)
	assert.Equal(t, ir.RegID(0), and.Op1)
	assert.Equal(t, ir.RegID(0), and.Op2)
}

func TestRemoveNopUpdatesResultRegister(t *testing.T) {
	prog := []ir.Instruction{
		ir.Set{D: 0, Titles: []string{"Foo"}},
		ir.Nop{D: 1, Op: 0},
	}

	out, result := removeNop(prog, 1)

	assert.Equal(t, ir.RegID(0), result)
	for _, inst := range out {
		assert.NotEqual(t, ir.RegID(1), inst.DestReg())
	}
}

func TestRemoveNopChain(t *testing.T) {
	prog := []ir.Instruction{
		ir.Set{D: 0, Titles: []string{"Foo"}},
		ir.Nop{D: 1, Op: 0},
		ir.Nop{D: 2, Op: 1},
	}

	out, result := removeNop(prog, 2)

	require.Len(t, out, 1)
	assert.Equal(t, ir.RegID(0), result)
}
