// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package gatetest provides utility functions for checking synthesized
// netlists against the functions they implement.
//
package gatetest

import (
	"strings"
	"testing"

	"github.com/gatesmithio/gatesmith"
	"github.com/gatesmithio/gatesmith/logic"
	"github.com/go-air/gini"
	glogic "github.com/go-air/gini/logic"
	"github.com/go-air/gini/z"
	"github.com/pkg/errors"
)

func inputString(names []string, in []bool) string {
	var b strings.Builder
	for i, n := range names {
		if b.Len() > 0 {
			b.WriteString(", ")
		}
		b.WriteString(n)
		b.WriteRune('=')
		if in[i] {
			b.WriteString("1")
		} else {
			b.WriteString("0")
		}
	}
	return b.String()
}

// CompareFunc evaluates nl against f on every input assignment. Specified
// minterms must match their value; don't-care minterms must come out zero,
// the resolution synthesis applies.
//
func CompareFunc(t *testing.T, nl *gatesmith.Netlist, f *logic.Function) {
	t.Helper()
	if len(nl.Inputs) != f.NumVars {
		t.Fatalf("netlist has %d inputs, function %q has %d variables", len(nl.Inputs), f.Name, f.NumVars)
	}
	in := make([]bool, f.NumVars)
	for m := 0; m < f.Size(); m++ {
		for bit := range in {
			in[len(in)-bit-1] = m&(1<<uint(bit)) != 0
		}
		got, err := nl.Eval(in)
		if err != nil {
			t.Fatal(err)
		}
		if want := f.Expected(m); got != want {
			t.Fatalf("\nminterm %d: %s\nExpected %s=%v\nGot %v", m, inputString(nl.Inputs, in), nl.Output, want, got)
		}
	}
}

// EquivSAT checks that nl computes f through the miter construction: the
// exclusive or of the netlist output and the minterm reference, restricted
// to care minterms, must be unsatisfiable.
//
func EquivSAT(t *testing.T, nl *gatesmith.Netlist, f *logic.Function) {
	t.Helper()
	eq, err := equivSAT(nl, f)
	if err != nil {
		t.Fatal(err)
	}
	if !eq {
		t.Fatalf("netlist differs from %q on a care minterm", f.Name)
	}
}

// equivSAT encodes nl and the ON-set reference of f in a combinational
// circuit and reports whether their miter is unsatisfiable.
func equivSAT(nl *gatesmith.Netlist, f *logic.Function) (bool, error) {
	if len(nl.Inputs) != f.NumVars {
		return false, errors.Errorf("netlist has %d inputs, function has %d variables", len(nl.Inputs), f.NumVars)
	}
	c := glogic.NewC()
	vars := make([]z.Lit, f.NumVars)
	lits := map[string]z.Lit{gatesmith.False: c.F, gatesmith.True: c.T}
	for i, name := range nl.Inputs {
		vars[i] = c.Lit()
		lits[name] = vars[i]
	}
	for _, g := range nl.Gates {
		in := make([]z.Lit, len(g.In))
		for i, name := range g.In {
			l, ok := lits[name]
			if !ok {
				return false, errors.Errorf("gate %q reads undriven signal %q", g.Out, name)
			}
			in[i] = l
		}
		var out z.Lit
		switch g.Kind {
		case gatesmith.Const0:
			out = c.F
		case gatesmith.Const1:
			out = c.T
		case gatesmith.Buf:
			out = in[0]
		case gatesmith.Not:
			out = in[0].Not()
		case gatesmith.And:
			out = c.And(in[0], in[1])
		case gatesmith.Or:
			out = c.Or(in[0], in[1])
		case gatesmith.Nand:
			out = c.And(in[0], in[1]).Not()
		case gatesmith.Nor:
			out = c.Or(in[0], in[1]).Not()
		case gatesmith.Xor:
			out = c.Xor(in[0], in[1])
		case gatesmith.Xnor:
			out = c.Xor(in[0], in[1]).Not()
		default:
			return false, errors.Errorf("gate %q: unknown kind %v", g.Out, g.Kind)
		}
		lits[g.Out] = out
	}
	out, ok := lits[nl.Output]
	if !ok {
		return false, errors.Errorf("no gate drives output %q", nl.Output)
	}

	ref := c.F
	for _, m := range f.OnList() {
		ref = c.Or(ref, minterm(c, vars, m))
	}
	dc := c.F
	for _, m := range f.DCList() {
		dc = c.Or(dc, minterm(c, vars, m))
	}
	miter := c.And(c.Xor(out, ref), dc.Not())
	// The circuit folds constants, so a miter reduced to a terminal needs no
	// solver run.
	if miter == c.F {
		return true, nil
	}
	if miter == c.T {
		return false, nil
	}
	sat := gini.New()
	c.ToCnf(sat)
	sat.Assume(miter)
	return sat.Solve() != 1, nil
}

// minterm returns the conjunction selecting exactly minterm m over vars,
// variable 0 owning the most significant bit.
func minterm(c *glogic.C, vars []z.Lit, m int) z.Lit {
	lit := c.T
	n := len(vars)
	for i, v := range vars {
		if m&(1<<uint(n-i-1)) != 0 {
			lit = c.And(lit, v)
		} else {
			lit = c.And(lit, v.Not())
		}
	}
	return lit
}
