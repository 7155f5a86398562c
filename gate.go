// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package gatesmith

import (
	"strconv"
	"strings"
)

// A Kind identifies one of the primitive gate types a netlist may contain.
//
type Kind uint8

// Gate kinds. Constants take no input, BUF and NOT take one, the rest two.
//
const (
	Const0 Kind = iota
	Const1
	Buf
	Not
	And
	Or
	Nand
	Nor
	Xor
	Xnor

	numKinds
)

var kindName = [numKinds]string{
	Const0: "CONST0",
	Const1: "CONST1",
	Buf:    "BUF",
	Not:    "NOT",
	And:    "AND",
	Or:     "OR",
	Nand:   "NAND",
	Nor:    "NOR",
	Xor:    "XOR",
	Xnor:   "XNOR",
}

// gate evaluation functions; unary kinds ignore b, constants both.
var kindFn = [numKinds]func(a, b bool) bool{
	Const0: func(a, b bool) bool { return false },
	Const1: func(a, b bool) bool { return true },
	Buf:    func(a, b bool) bool { return a },
	Not:    func(a, b bool) bool { return !a },
	And:    func(a, b bool) bool { return a && b },
	Or:     func(a, b bool) bool { return a || b },
	Nand:   func(a, b bool) bool { return !(a && b) },
	Nor:    func(a, b bool) bool { return !(a || b) },
	Xor:    func(a, b bool) bool { return a && !b || !a && b },
	Xnor:   func(a, b bool) bool { return a && b || !a && !b },
}

func (k Kind) String() string {
	if k < numKinds {
		return kindName[k]
	}
	return "KIND(" + strconv.Itoa(int(k)) + ")"
}

// Arity returns the number of input signals a gate of kind k takes.
//
func (k Kind) Arity() int {
	switch k {
	case Const0, Const1:
		return 0
	case Buf, Not:
		return 1
	}
	return 2
}

// A Gate drives one signal from at most two input signals.
//
type Gate struct {
	Kind Kind
	Out  string
	In   []string
}

func (g Gate) String() string {
	if g.Kind.Arity() == 0 {
		return g.Out + " = " + g.Kind.String()
	}
	return g.Out + " = " + g.Kind.String() + "(" + strings.Join(g.In, ", ") + ")"
}
