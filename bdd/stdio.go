// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package bdd

import (
	"bufio"
	"fmt"
	"io"
	"sort"
)

// Stats returns a short textual report about the diagram.
//
func (b *BDD) Stats() string {
	res := fmt.Sprintf("Variables:  %d\n", b.varnum)
	res += fmt.Sprintf("Nodes:      %d\n", len(b.nodes))
	res += fmt.Sprintf("Internal:   %d\n", len(b.nodes)-2)
	res += fmt.Sprintf("ITE cache:  %d", len(b.memo))
	return res
}

// Fprint writes an indented description of the function rooted at n. A node
// reached through several parents is expanded only once and shown as a
// reference afterwards.
//
func (b *BDD) Fprint(w io.Writer, n Node) error {
	if err := b.check(n); err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	seen := make(map[Node]bool)
	var rec func(n Node, depth int)
	rec = func(n Node, depth int) {
		for i := 0; i < depth; i++ {
			bw.WriteString("  ")
		}
		if n <= True {
			fmt.Fprintf(bw, "terminal %d\n", n)
			return
		}
		nd := b.nodes[n]
		if seen[n] {
			fmt.Fprintf(bw, "node %d: x%d (shared)\n", n, nd.v)
			return
		}
		seen[n] = true
		fmt.Fprintf(bw, "node %d: x%d\n", n, nd.v)
		rec(nd.low, depth+1)
		rec(nd.high, depth+1)
	}
	rec(n, 0)
	return bw.Flush()
}

// Dot writes a GraphViz DOT description of the function rooted at n. Low
// branches are drawn dotted, high branches solid.
//
func (b *BDD) Dot(w io.Writer, n Node) error {
	if err := b.check(n); err != nil {
		return err
	}
	reach := make(map[Node]bool)
	var mark func(n Node)
	mark = func(n Node) {
		if reach[n] {
			return
		}
		reach[n] = true
		if n > True {
			mark(b.nodes[n].low)
			mark(b.nodes[n].high)
		}
	}
	mark(n)
	nodes := make([]int, 0, len(reach))
	for k := range reach {
		nodes = append(nodes, int(k))
	}
	sort.Ints(nodes)

	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "digraph bdd {")
	for _, v := range nodes {
		if v <= int(True) {
			fmt.Fprintf(bw, "%d [shape=box, label=\"%d\", style=filled, height=0.3, width=0.3];\n", v, v)
			continue
		}
		nd := b.nodes[v]
		fmt.Fprintf(bw, "%d [label=\"x%d\"];\n", v, nd.v)
		fmt.Fprintf(bw, "%d -> %d [style=dotted];\n", v, nd.low)
		fmt.Fprintf(bw, "%d -> %d;\n", v, nd.high)
	}
	fmt.Fprintln(bw, "}")
	return bw.Flush()
}
