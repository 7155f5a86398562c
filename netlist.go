// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package gatesmith

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Constant signal names. Gates may read these without any gate driving them.
//
var (
	True  = "true"
	False = "false"
)

// A Netlist is an ordered list of primitive gates computing one Boolean
// function of its inputs. Gates appear in dependency order: every gate input
// is a primary input, a constant, or the output of an earlier gate, and every
// signal is driven at most once.
//
type Netlist struct {
	Inputs []string
	Output string
	Gates  []Gate
}

// Eval computes the netlist output for the given input assignment, input[i]
// being the value of Inputs[i].
//
func (n *Netlist) Eval(input []bool) (bool, error) {
	if len(input) != len(n.Inputs) {
		return false, errors.Errorf("have %d input values, netlist has %d inputs", len(input), len(n.Inputs))
	}
	val := make(map[string]bool, len(n.Gates)+len(n.Inputs)+2)
	val[False] = false
	val[True] = true
	for i, name := range n.Inputs {
		val[name] = input[i]
	}
	for _, g := range n.Gates {
		if g.Kind >= numKinds {
			return false, errors.Errorf("gate %q: unknown kind %v", g.Out, g.Kind)
		}
		if len(g.In) != g.Kind.Arity() {
			return false, errors.Errorf("gate %q: %v takes %d inputs, has %d", g.Out, g.Kind, g.Kind.Arity(), len(g.In))
		}
		var in [2]bool
		for i, name := range g.In {
			v, ok := val[name]
			if !ok {
				return false, errors.Errorf("gate %q reads undriven signal %q", g.Out, name)
			}
			in[i] = v
		}
		if _, ok := val[g.Out]; ok {
			return false, errors.Errorf("signal %q driven twice", g.Out)
		}
		val[g.Out] = kindFn[g.Kind](in[0], in[1])
	}
	out, ok := val[n.Output]
	if !ok {
		return false, errors.Errorf("no gate drives output %q", n.Output)
	}
	return out, nil
}

// Stats returns a per-kind gate count summary.
//
func (n *Netlist) Stats() string {
	var counts [numKinds]int
	for _, g := range n.Gates {
		if g.Kind < numKinds {
			counts[g.Kind]++
		}
	}
	res := fmt.Sprintf("Inputs:  %d\n", len(n.Inputs))
	res += fmt.Sprintf("Gates:   %d", len(n.Gates))
	for k, cnt := range counts {
		if cnt > 0 {
			res += fmt.Sprintf("\n%-8s %d", Kind(k).String()+":", cnt)
		}
	}
	return res
}

// String lists the gates in emission order, one per line.
func (n *Netlist) String() string {
	var b strings.Builder
	for _, g := range n.Gates {
		b.WriteString(g.String())
		b.WriteByte('\n')
	}
	return b.String()
}
