// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package gatesmith

import (
	"strconv"

	"github.com/gatesmithio/gatesmith/bdd"
	"github.com/pkg/errors"
)

type config struct {
	output   string
	notShare bool
}

// An Option configures a synthesis run.
//
type Option func(*config)

// WithOutput sets the name of the netlist output signal. The default is
// "out".
//
func WithOutput(name string) Option {
	return func(c *config) { c.output = name }
}

// WithNotShare controls inverter reuse: when enabled, at most one NOT gate
// is emitted per distinct negated signal. Enabled by default.
//
func WithNotShare(share bool) Option {
	return func(c *config) { c.notShare = share }
}

// synth holds the state of one synthesis run.
type synth struct {
	d     *bdd.BDD
	vars  []string
	nl    *Netlist
	sig   map[bdd.Node]string    // node -> signal carrying its function
	nots  map[string]string      // negated signal -> inverter output
	comp  map[[2]bdd.Node]bool   // complement checks already decided
	share bool
	wires int
}

func (s *synth) newWire() string {
	w := "n" + strconv.Itoa(s.wires)
	s.wires++
	return w
}

// wireName reports whether s has the n0, n1, … form of generated wire names.
func wireName(s string) bool {
	if len(s) < 2 || s[0] != 'n' {
		return false
	}
	for i := 1; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func (s *synth) emit(k Kind, in ...string) string {
	out := s.newWire()
	s.nl.Gates = append(s.nl.Gates, Gate{Kind: k, Out: out, In: in})
	return out
}

// not returns a signal carrying the negation of sig.
func (s *synth) not(sig string) string {
	if s.share {
		if w, ok := s.nots[sig]; ok {
			return w
		}
	}
	w := s.emit(Not, sig)
	if s.share {
		s.nots[sig] = w
	}
	return w
}

// visit returns the signal carrying the function rooted at n, synthesizing
// its gates on first encounter; shared nodes synthesize exactly once.
func (s *synth) visit(n bdd.Node) (string, error) {
	if sig, ok := s.sig[n]; ok {
		return sig, nil
	}
	nd, err := s.d.At(n)
	if err != nil {
		return "", err
	}
	sig, err := s.node(s.vars[nd.Var], nd.Low, nd.High)
	if err != nil {
		return "", err
	}
	s.sig[n] = sig
	return sig, nil
}

// complement reports whether the functions rooted at f and g are pointwise
// negations of one another. On a reduced diagram a complement mirrors the
// node structure with the terminals swapped, so a memoized walk decides the
// question without adding nodes.
func (s *synth) complement(f, g bdd.Node) (bool, error) {
	if f <= bdd.True || g <= bdd.True {
		return f == bdd.False && g == bdd.True || f == bdd.True && g == bdd.False, nil
	}
	k := [2]bdd.Node{f, g}
	if r, ok := s.comp[k]; ok {
		return r, nil
	}
	nf, err := s.d.At(f)
	if err != nil {
		return false, err
	}
	ng, err := s.d.At(g)
	if err != nil {
		return false, err
	}
	r := nf.Var == ng.Var
	if r {
		if r, err = s.complement(nf.Low, ng.Low); err != nil {
			return false, err
		}
	}
	if r {
		if r, err = s.complement(nf.High, ng.High); err != nil {
			return false, err
		}
	}
	s.comp[k] = r
	return r, nil
}

// node synthesizes one diagram node. f names the node's variable; lo and hi
// are its cofactors. The classification index is the truth table of the
// local function f ? high : low over (f, w), w being the one non-constant
// cofactor involved; see the pattern table. Cofactor cones are synthesized
// on demand, before the node's own gates: the gate list stays in dependency
// order and a shape that ignores a cone emits no gates for it.
func (s *synth) node(f string, lo, hi bdd.Node) (string, error) {
	var (
		idx int
		w   string
		err error
	)
	switch {
	case lo == bdd.False && hi == bdd.True:
		idx = 0x3
	case lo == bdd.True && hi == bdd.False:
		idx = 0xc
	case lo == bdd.False:
		if w, err = s.visit(hi); err != nil {
			return "", err
		}
		idx = 0x1
	case lo == bdd.True:
		if w, err = s.visit(hi); err != nil {
			return "", err
		}
		idx = 0xd
	case hi == bdd.False:
		if w, err = s.visit(lo); err != nil {
			return "", err
		}
		idx = 0x4
	case hi == bdd.True:
		if w, err = s.visit(lo); err != nil {
			return "", err
		}
		idx = 0x7
	default:
		// Both cofactors are internal. If they are complements, the node is
		// an XOR of f and the low cofactor, and the high cone synthesizes
		// nothing. Anything else is the two-way selection f ? high : low,
		// expanded into primitives.
		neg, err := s.complement(lo, hi)
		if err != nil {
			return "", err
		}
		if w, err = s.visit(lo); err != nil {
			return "", err
		}
		if !neg {
			hiSig, err := s.visit(hi)
			if err != nil {
				return "", err
			}
			a := s.emit(And, f, hiSig)
			b := s.emit(And, s.not(f), w)
			return s.emit(Or, a, b), nil
		}
		idx = 0x6
	}
	p, err := lookupPattern(idx)
	if err != nil {
		return "", err
	}
	return p.realize(s, f, w), nil
}

// Synthesize compiles the function rooted at root into a primitive gate
// netlist. vars names the diagram variables, in variable order; it becomes
// the netlist input list.
//
// A constant root emits a single constant driver; any other root is buffered
// onto the output signal, so the returned netlist always has at least one
// gate and its output signal is always driven.
//
// Synthesis only reads the diagram; it never adds nodes to it.
func Synthesize(d *bdd.BDD, root bdd.Node, vars []string, opts ...Option) (*Netlist, error) {
	if len(vars) != d.Vars() {
		return nil, errors.Errorf("have %d variable names, diagram has %d variables", len(vars), d.Vars())
	}
	c := &config{output: "out", notShare: true}
	for _, opt := range opts {
		opt(c)
	}
	if c.output == True || c.output == False {
		return nil, errors.Errorf("output name %q clashes with a constant signal", c.output)
	}
	if wireName(c.output) {
		return nil, errors.Errorf("output name %q clashes with the wire namespace", c.output)
	}
	seen := make(map[string]bool, len(vars))
	for _, v := range vars {
		switch {
		case v == c.output || v == True || v == False:
			return nil, errors.Errorf("input name %q clashes with a reserved signal", v)
		case wireName(v):
			return nil, errors.Errorf("input name %q clashes with the wire namespace", v)
		case seen[v]:
			return nil, errors.Errorf("duplicate input name %q", v)
		}
		seen[v] = true
	}
	s := &synth{
		d:     d,
		vars:  vars,
		nl:    &Netlist{Inputs: vars, Output: c.output},
		sig:   map[bdd.Node]string{bdd.False: False, bdd.True: True},
		nots:  make(map[string]string),
		comp:  make(map[[2]bdd.Node]bool),
		share: c.notShare,
	}
	sig, err := s.visit(root)
	if err != nil {
		return nil, err
	}
	switch sig {
	case False:
		s.nl.Gates = append(s.nl.Gates, Gate{Kind: Const0, Out: c.output})
	case True:
		s.nl.Gates = append(s.nl.Gates, Gate{Kind: Const1, Out: c.output})
	default:
		s.nl.Gates = append(s.nl.Gates, Gate{Kind: Buf, Out: c.output, In: []string{sig}})
	}
	return s.nl, nil
}
