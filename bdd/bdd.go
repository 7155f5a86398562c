// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package bdd implements reduced ordered binary decision diagrams (ROBDD).
//
// A diagram is built over a fixed variable order x0 < x1 < … < x{n-1}. Nodes
// are identified by small integers; the two terminals False and True have the
// identities 0 and 1. Node identity is canonical: two nodes represent the
// same Boolean function if and only if they have the same identity within
// one diagram.
//
package bdd

import (
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/pkg/errors"
)

// MaxVar is the largest supported number of variables. The table builders
// visit every minterm, so diagrams are capped well before the node identity
// space runs out.
//
const MaxVar = 24

// A Node is the identity of a node in a diagram. Nodes are only meaningful
// for the diagram that created them.
//
type Node int

// Terminal nodes, shared by all functions of a diagram.
//
const (
	False Node = iota
	True
)

// Errors reported by diagram operations.
//
var (
	// ErrVariableOrder reports a node constructor call that violates the
	// variable order of the diagram.
	ErrVariableOrder = errors.New("invalid variable order")

	// ErrInvalidNode reports a reference to a node unknown to the diagram.
	ErrInvalidNode = errors.New("invalid diagram reference")
)

// A Trit is the value of a Boolean function at one minterm: required false,
// required true, or unconstrained.
//
type Trit uint8

// Minterm values.
//
const (
	Off Trit = iota
	On
	DontCare
)

func (t Trit) String() string {
	switch t {
	case Off:
		return "0"
	case On:
		return "1"
	}
	return "-"
}

// A Table provides minterm membership for a Boolean function over a fixed
// variable order. Variable 0 is the most significant bit of the minterm
// index.
//
type Table interface {
	// Vars returns the number of input variables.
	Vars() int
	// Value returns the function value at the given minterm index.
	Value(minterm int) Trit
}

type node struct {
	v         int // variable index; varnum for terminals
	low, high Node
}

type nodeKey struct {
	v         int
	low, high Node
}

type iteKey struct {
	f, g, h Node
}

// BDD is a diagram instance. It owns all nodes it creates; nodes are never
// mutated or freed individually. A BDD is not safe for concurrent use.
//
type BDD struct {
	varnum int
	nodes  []node
	unique map[nodeKey]Node
	memo   map[iteKey]Node
}

type config struct {
	nodesize  int
	cachesize int
}

// An Option configures a diagram at creation time.
//
type Option func(*config)

// Nodesize sets the initial capacity of the node arena.
//
func Nodesize(size int) Option {
	return func(c *config) { c.nodesize = size }
}

// Cachesize sets the initial capacity of the ITE cache.
//
func Cachesize(size int) Option {
	return func(c *config) { c.cachesize = size }
}

// New returns a diagram over varnum variables.
//
func New(varnum int, options ...Option) (*BDD, error) {
	if varnum < 1 || varnum > MaxVar {
		return nil, errors.Errorf("bad number of variables (%d)", varnum)
	}
	c := &config{nodesize: 64, cachesize: 64}
	for _, opt := range options {
		opt(c)
	}
	// Out-of-range size hints are ignored.
	c.nodesize = max(c.nodesize, 2)
	c.cachesize = max(c.cachesize, 0)
	b := &BDD{
		varnum: varnum,
		nodes:  make([]node, 2, c.nodesize),
		unique: make(map[nodeKey]Node, c.nodesize),
		memo:   make(map[iteKey]Node, c.cachesize),
	}
	// Terminals test no variable; giving them the level just past the last
	// variable lets the top-variable computation in ite treat all three
	// operands uniformly.
	b.nodes[False] = node{v: varnum}
	b.nodes[True] = node{v: varnum}
	return b, nil
}

// Vars returns the number of variables of the diagram.
//
func (b *BDD) Vars() int { return b.varnum }

// NodeCount returns the number of nodes in the diagram, terminals included.
//
func (b *BDD) NodeCount() int { return len(b.nodes) }

// InternalCount returns the number of non-terminal nodes in the diagram.
//
func (b *BDD) InternalCount() int { return len(b.nodes) - 2 }

func (b *BDD) check(n Node) error {
	if n < 0 || int(n) >= len(b.nodes) {
		return errors.Wrapf(ErrInvalidNode, "node %d", n)
	}
	return nil
}

func (b *BDD) level(n Node) int { return b.nodes[n].v }

// NodeInfo describes one node of a diagram. For terminals, Var holds the
// diagram's variable count and Low and High are meaningless.
//
type NodeInfo struct {
	Var       int
	Low, High Node
	Terminal  bool
}

// At returns a description of node n.
//
func (b *BDD) At(n Node) (NodeInfo, error) {
	if err := b.check(n); err != nil {
		return NodeInfo{}, err
	}
	nd := b.nodes[n]
	if n <= True {
		return NodeInfo{Var: nd.v, Terminal: true}, nil
	}
	return NodeInfo{Var: nd.v, Low: nd.low, High: nd.high}, nil
}

// MakeNode returns the node testing variable v with the given cofactors,
// creating it if needed. It is the sole constructor of internal nodes: if
// low and high are equal that node is returned unchanged, and structurally
// equal requests always return the same identity.
//
// v must be strictly above both children in the variable order.
//
func (b *BDD) MakeNode(v int, low, high Node) (Node, error) {
	if v < 0 || v >= b.varnum {
		return False, errors.Wrapf(ErrVariableOrder, "variable %d out of range", v)
	}
	if err := b.check(low); err != nil {
		return False, err
	}
	if err := b.check(high); err != nil {
		return False, err
	}
	if v >= b.level(low) || v >= b.level(high) {
		return False, errors.Wrapf(ErrVariableOrder, "variable %d not above children", v)
	}
	return b.makenode(v, low, high), nil
}

// makenode applies the reduction and sharing rules. Arguments must have been
// validated by the caller.
func (b *BDD) makenode(v int, low, high Node) Node {
	if low == high {
		return low
	}
	k := nodeKey{v, low, high}
	if n, ok := b.unique[k]; ok {
		return n
	}
	n := Node(len(b.nodes))
	b.nodes = append(b.nodes, node{v: v, low: low, high: high})
	b.unique[k] = n
	return n
}

// Eval returns the value of the function rooted at n for the given input
// assignment. input[i] is the value of variable i.
//
func (b *BDD) Eval(n Node, input []bool) (bool, error) {
	if err := b.check(n); err != nil {
		return false, err
	}
	if len(input) != b.varnum {
		return false, errors.Errorf("have %d input values, diagram has %d variables", len(input), b.varnum)
	}
	for n > True {
		nd := &b.nodes[n]
		if input[nd.v] {
			n = nd.high
		} else {
			n = nd.low
		}
	}
	return n == True, nil
}

// FromMinterms builds the function whose ON-set and DC-set are given as
// minterm index sets and returns its root. Don't-care minterms resolve to 0
// before expansion: the diagram built here agrees with the golden model on
// every minterm, at the cost of never using don't-cares to shrink the
// diagram.
//
func (b *BDD) FromMinterms(on, dc mapset.Set[int]) (Node, error) {
	size := 1 << b.varnum
	var err error
	on.Each(func(m int) bool {
		switch {
		case m < 0 || m >= size:
			err = errors.Errorf("on-set minterm %d out of range [0, %d)", m, size)
		case dc.Contains(m):
			err = errors.Errorf("minterm %d both on and don't-care", m)
		}
		return err != nil
	})
	if err != nil {
		return False, err
	}
	dc.Each(func(m int) bool {
		if m < 0 || m >= size {
			err = errors.Errorf("dc-set minterm %d out of range [0, %d)", m, size)
		}
		return err != nil
	})
	if err != nil {
		return False, err
	}
	return b.build(func(m int) bool { return on.Contains(m) }, 0, size, 0), nil
}

// FromTable builds the function described by t and returns its root.
// Don't-care minterms resolve to 0, as in FromMinterms.
//
func (b *BDD) FromTable(t Table) (Node, error) {
	if t.Vars() != b.varnum {
		return False, errors.Errorf("table has %d variables, diagram has %d", t.Vars(), b.varnum)
	}
	return b.build(func(m int) bool { return t.Value(m) == On }, 0, 1<<b.varnum, 0), nil
}

// build Shannon-expands the minterm range [start, end) on variable v.
// Variable 0 owns the most significant bit of the minterm index, so the low
// branch covers the first half of the range. Constant subranges collapse to
// terminals through the reduction rule in makenode.
func (b *BDD) build(on func(int) bool, start, end, v int) Node {
	if v == b.varnum {
		if on(start) {
			return True
		}
		return False
	}
	mid := (start + end) / 2
	low := b.build(on, start, mid, v+1)
	high := b.build(on, mid, end, v+1)
	return b.makenode(v, low, high)
}
