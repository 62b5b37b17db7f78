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

import "sort"

// Instruction is one step of a compiled Query. The small, fixed operator set
// makes a closed sum type clearer here than an open, registerable
// interface — every concrete type below implements Instruction and nothing
// outside this package should add new ones.
type Instruction interface {
	// DestReg is the register this instruction defines.
	DestReg() RegID
	// Operands lists the registers this instruction reads, in evaluation
	// order. Set has none; combinators have two; everything else has one.
	Operands() []RegID
	// withOperand returns a copy of this instruction with every operand
	// equal to old replaced by new. Used by the optimizer's Nop-elision
	// pass to re-point consumers.
	withOperand(old, new RegID) Instruction
	// withDest returns a copy of this instruction with its destination
	// register changed to d.
	withDest(d RegID) Instruction
}

// Set materializes a literal list of titles, filtered by cs's namespace
// restriction if any. It is the only instruction with no register operands.
type Set struct {
	D      RegID
	Titles []string
	CS     SetConstraint
}

func (s Set) DestReg() RegID                         { return s.D }
func (s Set) Operands() []RegID                      { return nil }
func (s Set) withOperand(_, _ RegID) Instruction      { return s }
func (s Set) withDest(d RegID) Instruction            { return Set{D: d, Titles: s.Titles, CS: s.CS} }

type binary struct {
	D, Op1, Op2 RegID
}

func (b binary) DestReg() RegID    { return b.D }
func (b binary) Operands() []RegID { return []RegID{b.Op1, b.Op2} }

func (b binary) substitute(old, new RegID) binary {
	out := b
	if out.Op1 == old {
		out.Op1 = new
	}
	if out.Op2 == old {
		out.Op2 = new
	}
	return out
}

// And computes the intersection of op1 and op2.
type And struct{ binary }

func (a And) withOperand(old, new RegID) Instruction { return And{a.binary.substitute(old, new)} }
func (a And) withDest(d RegID) Instruction            { a.D = d; return a }

// Or computes the union of op1 and op2.
type Or struct{ binary }

func (o Or) withOperand(old, new RegID) Instruction { return Or{o.binary.substitute(old, new)} }
func (o Or) withDest(d RegID) Instruction            { o.D = d; return o }

// Exclude computes the set difference op1 - op2.
type Exclude struct{ binary }

func (e Exclude) withOperand(old, new RegID) Instruction {
	return Exclude{e.binary.substitute(old, new)}
}
func (e Exclude) withDest(d RegID) Instruction { e.D = d; return e }

// Xor computes the symmetric difference of op1 and op2.
type Xor struct{ binary }

func (x Xor) withOperand(old, new RegID) Instruction { return Xor{x.binary.substitute(old, new)} }
func (x Xor) withDest(d RegID) Instruction            { x.D = d; return x }

// NewAnd, NewOr, NewExclude and NewXor build the four binary combinators.
func NewAnd(dest, op1, op2 RegID) And         { return And{binary{dest, op1, op2}} }
func NewOr(dest, op1, op2 RegID) Or           { return Or{binary{dest, op1, op2}} }
func NewExclude(dest, op1, op2 RegID) Exclude { return Exclude{binary{dest, op1, op2}} }
func NewXor(dest, op1, op2 RegID) Xor         { return Xor{binary{dest, op1, op2}} }

// LinkTo fetches the backlinks of the single title held in Op.
type LinkTo struct {
	D, Op RegID
	CS    SetConstraint
}

func (l LinkTo) DestReg() RegID    { return l.D }
func (l LinkTo) Operands() []RegID { return []RegID{l.Op} }
func (l LinkTo) withOperand(old, new RegID) Instruction {
	if l.Op == old {
		l.Op = new
	}
	return l
}
func (l LinkTo) withDest(d RegID) Instruction { l.D = d; return l }

// InCat fetches category members of the single title held in Op, descending
// transitively to CS.Depth.
type InCat struct {
	D, Op RegID
	CS    SetConstraint
}

func (c InCat) DestReg() RegID    { return c.D }
func (c InCat) Operands() []RegID { return []RegID{c.Op} }
func (c InCat) withOperand(old, new RegID) Instruction {
	if c.Op == old {
		c.Op = new
	}
	return c
}
func (c InCat) withDest(d RegID) Instruction { c.D = d; return c }

// Prefix fetches the prefix-index listing for the single title held in Op.
// CS carries the namespace restriction the solver applies before issuing
// the request (CS.Depth is unused).
type Prefix struct {
	D, Op RegID
	CS    SetConstraint
}

func (p Prefix) DestReg() RegID    { return p.D }
func (p Prefix) Operands() []RegID { return []RegID{p.Op} }
func (p Prefix) withOperand(old, new RegID) Instruction {
	if p.Op == old {
		p.Op = new
	}
	return p
}
func (p Prefix) withDest(d RegID) Instruction { p.D = d; return p }

// Toggle maps every title in Op between its subject and talk namespace.
type Toggle struct {
	D, Op RegID
}

func (t Toggle) DestReg() RegID    { return t.D }
func (t Toggle) Operands() []RegID { return []RegID{t.Op} }
func (t Toggle) withOperand(old, new RegID) Instruction {
	if t.Op == old {
		t.Op = new
	}
	return t
}
func (t Toggle) withDest(d RegID) Instruction { t.D = d; return t }

// Nop is the identity instruction: it copies Op into D. It only ever appears
// as an optimizer intermediate (toggle-pair cancellation, empty-namespace
// propagation) or, if the optimizer is skipped entirely, in the program as
// given to the solver.
type Nop struct {
	D, Op RegID
}

func (n Nop) DestReg() RegID    { return n.D }
func (n Nop) Operands() []RegID { return []RegID{n.Op} }
func (n Nop) withOperand(old, new RegID) Instruction {
	if n.Op == old {
		n.Op = new
	}
	return n
}
func (n Nop) withDest(d RegID) Instruction { n.D = d; return n }

// WithOperand returns a copy of inst with every operand equal to old
// replaced by new.
func WithOperand(inst Instruction, old, new RegID) Instruction {
	return inst.withOperand(old, new)
}

// Query is a compiled program: an ordered, dest-sorted instruction sequence
// plus the register naming the final result.
type Query struct {
	Instructions []Instruction
	Result       RegID
}

// SortByDest orders instructions by destination register, the invariant the
// optimizer's binary-search producer lookup relies on.
func SortByDest(instrs []Instruction) {
	sort.Slice(instrs, func(i, j int) bool {
		return instrs[i].DestReg() < instrs[j].DestReg()
	})
}

// FindByDest returns the index of the instruction whose DestReg is dest,
// via binary search over a dest-sorted sequence, and whether it was found.
func FindByDest(instrs []Instruction, dest RegID) (int, bool) {
	i := sort.Search(len(instrs), func(i int) bool {
		return instrs[i].DestReg() >= dest
	})
	if i < len(instrs) && instrs[i].DestReg() == dest {
		return i, true
	}
	return 0, false
}
