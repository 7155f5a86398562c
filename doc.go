/*
Package gatesmith compiles Boolean functions into gate-level netlists.

A function given by its ON-set and don't-care minterms is first turned into a
reduced ordered binary decision diagram (package bdd), then each diagram node
is classified by the two-variable function it locally computes and realized
with gates from a fixed primitive set: AND, OR, NOT, NAND, NOR, XOR, XNOR and
BUF, plus constant drivers. Shared diagram nodes synthesize exactly one gate
group, and the gate list comes out in dependency order, so a netlist can be
evaluated in a single pass or printed as structural SystemVerilog (package
verilog).
*/
package gatesmith
