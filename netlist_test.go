package gatesmith_test

import (
	"strings"
	"testing"

	gs "github.com/gatesmithio/gatesmith"
)

func TestNetlist_eval(t *testing.T) {
	// out = (a AND b) OR NOT a
	nl := &gs.Netlist{
		Inputs: []string{"a", "b"},
		Output: "out",
		Gates: []gs.Gate{
			{Kind: gs.And, Out: "n0", In: []string{"a", "b"}},
			{Kind: gs.Not, Out: "n1", In: []string{"a"}},
			{Kind: gs.Or, Out: "out", In: []string{"n0", "n1"}},
		},
	}
	want := [4]bool{true, true, false, true}
	for m := 0; m < 4; m++ {
		got, err := nl.Eval(assignment(m, 2))
		if err != nil {
			t.Fatal(err)
		}
		if got != want[m] {
			t.Errorf("minterm %d: got %v, want %v", m, got, want[m])
		}
	}
}

func TestNetlist_evalErrors(t *testing.T) {
	data := []struct {
		name string
		nl   *gs.Netlist
		in   []bool
		msg  string
	}{
		{
			"input_count",
			&gs.Netlist{Inputs: []string{"a", "b"}, Output: "out"},
			[]bool{true},
			"have 1 input values",
		},
		{
			"arity",
			&gs.Netlist{Inputs: []string{"a"}, Output: "out",
				Gates: []gs.Gate{{Kind: gs.And, Out: "out", In: []string{"a"}}}},
			[]bool{true},
			"takes 2 inputs",
		},
		{
			"undriven",
			&gs.Netlist{Inputs: []string{"a"}, Output: "out",
				Gates: []gs.Gate{{Kind: gs.Not, Out: "out", In: []string{"nope"}}}},
			[]bool{true},
			"undriven signal",
		},
		{
			"driven_twice",
			&gs.Netlist{Inputs: []string{"a"}, Output: "out",
				Gates: []gs.Gate{
					{Kind: gs.Not, Out: "out", In: []string{"a"}},
					{Kind: gs.Buf, Out: "out", In: []string{"a"}},
				}},
			[]bool{true},
			"driven twice",
		},
		{
			"no_output",
			&gs.Netlist{Inputs: []string{"a"}, Output: "out",
				Gates: []gs.Gate{{Kind: gs.Not, Out: "n0", In: []string{"a"}}}},
			[]bool{true},
			"no gate drives",
		},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			_, err := d.nl.Eval(d.in)
			if err == nil || !strings.Contains(err.Error(), d.msg) {
				t.Errorf("got %v, want message containing %q", err, d.msg)
			}
		})
	}
}

func TestNetlist_strings(t *testing.T) {
	nl := &gs.Netlist{
		Inputs: []string{"a", "b"},
		Output: "y",
		Gates: []gs.Gate{
			{Kind: gs.Xor, Out: "n0", In: []string{"a", "b"}},
			{Kind: gs.Const1, Out: "n1"},
			{Kind: gs.And, Out: "y", In: []string{"n0", "n1"}},
		},
	}
	want := "n0 = XOR(a, b)\nn1 = CONST1\ny = AND(n0, n1)\n"
	if s := nl.String(); s != want {
		t.Errorf("String:\n%q\nwant:\n%q", s, want)
	}
	stats := nl.Stats()
	for _, sub := range []string{"Inputs:  2", "Gates:   3", "CONST1:  1", "AND:     1", "XOR:     1"} {
		if !strings.Contains(stats, sub) {
			t.Errorf("Stats missing %q:\n%s", sub, stats)
		}
	}
}
