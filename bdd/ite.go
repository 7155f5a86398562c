// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package bdd

import "github.com/pkg/errors"

// ITE computes the function f ? g : h and returns the root of its diagram.
// The result is memoized: repeated calls with the same operands return the
// identical identity without recomputation.
//
func (b *BDD) ITE(f, g, h Node) (Node, error) {
	if err := b.check(f); err != nil {
		return False, err
	}
	if err := b.check(g); err != nil {
		return False, err
	}
	if err := b.check(h); err != nil {
		return False, err
	}
	return b.ite(f, g, h), nil
}

func (b *BDD) ite(f, g, h Node) Node {
	switch {
	case f == True:
		return g
	case f == False:
		return h
	case g == h:
		return g
	case g == True && h == False:
		return f
	case g == False && h == True:
		return b.not(f)
	}
	k := iteKey{f, g, h}
	if res, ok := b.memo[k]; ok {
		return res
	}
	v := min(b.level(f), b.level(g), b.level(h))
	fl, fh := b.cofactors(f, v)
	gl, gh := b.cofactors(g, v)
	hl, hh := b.cofactors(h, v)
	low := b.ite(fl, gl, hl)
	high := b.ite(fh, gh, hh)
	res := b.makenode(v, low, high)
	b.memo[k] = res
	return res
}

// cofactors returns the cofactors of n with respect to variable v. A node
// that does not test v is its own cofactor on both branches.
func (b *BDD) cofactors(n Node, v int) (low, high Node) {
	nd := &b.nodes[n]
	if nd.v != v {
		return n, n
	}
	return nd.low, nd.high
}

// not is the recursive complement. It shares the ITE cache under the
// (f, False, True) key, which is the triple it computes.
func (b *BDD) not(f Node) Node {
	switch f {
	case False:
		return True
	case True:
		return False
	}
	k := iteKey{f, False, True}
	if res, ok := b.memo[k]; ok {
		return res
	}
	nd := b.nodes[f]
	res := b.makenode(nd.v, b.not(nd.low), b.not(nd.high))
	b.memo[k] = res
	return res
}

// Ithvar returns the node for the single-variable function xv.
//
func (b *BDD) Ithvar(v int) (Node, error) {
	if v < 0 || v >= b.varnum {
		return False, errors.Wrapf(ErrVariableOrder, "variable %d out of range", v)
	}
	return b.makenode(v, False, True), nil
}

// NIthvar returns the node for the negated single-variable function ¬xv.
//
func (b *BDD) NIthvar(v int) (Node, error) {
	if v < 0 || v >= b.varnum {
		return False, errors.Wrapf(ErrVariableOrder, "variable %d out of range", v)
	}
	return b.makenode(v, True, False), nil
}

// Not returns the complement of f.
//
func (b *BDD) Not(f Node) (Node, error) {
	if err := b.check(f); err != nil {
		return False, err
	}
	return b.not(f), nil
}

// And returns the conjunction of f and g.
//
func (b *BDD) And(f, g Node) (Node, error) {
	return b.ITE(f, g, False)
}

// Or returns the disjunction of f and g.
//
func (b *BDD) Or(f, g Node) (Node, error) {
	return b.ITE(f, True, g)
}

// Xor returns the exclusive disjunction of f and g.
//
func (b *BDD) Xor(f, g Node) (Node, error) {
	if err := b.check(g); err != nil {
		return False, err
	}
	return b.ITE(f, b.not(g), g)
}
