package gatesmith_test

import (
	"testing"

	mapset "github.com/deckarep/golang-set/v2"
	gs "github.com/gatesmithio/gatesmith"
	"github.com/gatesmithio/gatesmith/bdd"
	"github.com/pkg/errors"
)

func trace(t *testing.T, err error) {
	t.Helper()
	if err, ok := err.(interface {
		StackTrace() errors.StackTrace
	}); ok {
		for _, f := range err.StackTrace() {
			t.Logf("%+v ", f)
		}
	}
}

// assignment expands minterm m over n variables; variable 0 is the most
// significant bit of m.
func assignment(m, n int) []bool {
	in := make([]bool, n)
	for bit := 0; bit < n; bit++ {
		in[n-bit-1] = m&(1<<uint(bit)) != 0
	}
	return in
}

func ints(ms ...int) mapset.Set[int] { return mapset.NewSet[int](ms...) }

func synthMinterms(t *testing.T, nvars int, on, dc mapset.Set[int], opts ...gs.Option) (*bdd.BDD, bdd.Node, *gs.Netlist) {
	t.Helper()
	b, err := bdd.New(nvars)
	if err != nil {
		t.Fatal(err)
	}
	root, err := b.FromMinterms(on, dc)
	if err != nil {
		trace(t, err)
		t.Fatal(err)
	}
	vars := make([]string, nvars)
	for i := range vars {
		vars[i] = "x" + string(rune('0'+i))
	}
	nl, err := gs.Synthesize(b, root, vars, opts...)
	if err != nil {
		trace(t, err)
		t.Fatal(err)
	}
	return b, root, nl
}

// The netlist must agree with the diagram on every assignment, use only
// primitive gate kinds, and drive every signal exactly once.
func TestSynthesize_fidelity(t *testing.T) {
	b, root, nl := synthMinterms(t, 3, ints(0, 1, 2, 7), ints(4))

	outs := make(map[string]bool)
	for _, g := range nl.Gates {
		if g.Kind <= gs.Xnor && len(g.In) != g.Kind.Arity() {
			t.Errorf("gate %v: %d inputs", g, len(g.In))
		}
		if outs[g.Out] {
			t.Errorf("signal %q driven twice", g.Out)
		}
		outs[g.Out] = true
	}

	want := map[int]bool{0: true, 1: true, 2: true, 7: true} // don't-care 4 resolves to 0
	for m := 0; m < 8; m++ {
		in := assignment(m, 3)
		got, err := nl.Eval(in)
		if err != nil {
			t.Fatal(err)
		}
		if got != want[m] {
			t.Errorf("minterm %d: netlist %v, want %v", m, got, want[m])
		}
		ref, err := b.Eval(root, in)
		if err != nil {
			t.Fatal(err)
		}
		if got != ref {
			t.Errorf("minterm %d: netlist %v, diagram %v", m, got, ref)
		}
	}
}

// NOT x0 OR x1 has a low cofactor of constant one: the node realizes as
// OR(NOT(x0), x1) through the pattern table.
func TestSynthesize_lowTrue(t *testing.T) {
	_, _, nl := synthMinterms(t, 2, ints(0, 1, 3), ints())
	want := []string{
		"n0 = BUF(x1)",
		"n1 = NOT(x0)",
		"n2 = OR(n1, n0)",
		"out = BUF(n2)",
	}
	if len(nl.Gates) != len(want) {
		t.Fatalf("got %d gates, want %d:\n%v", len(nl.Gates), len(want), nl)
	}
	for i, g := range nl.Gates {
		if g.String() != want[i] {
			t.Errorf("gate %d: got %q, want %q", i, g, want[i])
		}
	}
}

// Complementary cofactors realize as a single XOR gate, not a selection,
// and the bypassed high cone synthesizes nothing.
func TestSynthesize_xor(t *testing.T) {
	_, _, nl := synthMinterms(t, 2, ints(1, 2), ints())
	want := []string{
		"n0 = BUF(x1)",
		"n1 = XOR(x0, n0)",
		"out = BUF(n1)",
	}
	if len(nl.Gates) != len(want) {
		t.Fatalf("got %d gates, want %d:\n%v", len(nl.Gates), len(want), nl)
	}
	for i, g := range nl.Gates {
		if g.String() != want[i] {
			t.Errorf("gate %d: got %q, want %q", i, g, want[i])
		}
	}
}

// Every gate output except the netlist output must feed another gate, even
// when classification skips a whole cone.
func TestSynthesize_noDeadGates(t *testing.T) {
	_, _, nl := synthMinterms(t, 3, ints(0, 1, 2, 7), ints(4))
	used := make(map[string]bool)
	for _, g := range nl.Gates {
		for _, in := range g.In {
			used[in] = true
		}
	}
	for _, g := range nl.Gates {
		if g.Out != nl.Output && !used[g.Out] {
			t.Errorf("gate %q drives nothing: %v", g.Out, g)
		}
	}
	if n := len(nl.Gates); n != 5 {
		t.Errorf("got %d gates, want 5:\n%v", n, nl)
	}
}

// Nodes with two non-complementary internal cofactors expand into
// OR(AND(f, high), AND(NOT(f), low)).
func TestSynthesize_selection(t *testing.T) {
	b, root, nl := synthMinterms(t, 3, ints(3, 5, 6, 7), ints())
	var ors, ands, nots int
	for _, g := range nl.Gates {
		switch g.Kind {
		case gs.Or:
			ors++
		case gs.And:
			ands++
		case gs.Not:
			nots++
		}
	}
	// root: AND, AND, NOT, OR; children: AND(x1, n0) and OR(x1, n0)
	if ands != 3 || ors != 2 || nots != 1 {
		t.Errorf("got %d AND, %d OR, %d NOT:\n%v", ands, ors, nots, nl)
	}
	for m := 0; m < 8; m++ {
		in := assignment(m, 3)
		got, _ := nl.Eval(in)
		ref, _ := b.Eval(root, in)
		if got != ref {
			t.Errorf("minterm %d: netlist %v, diagram %v", m, got, ref)
		}
	}
}

func countNots(nl *gs.Netlist, in string) int {
	n := 0
	for _, g := range nl.Gates {
		if g.Kind == gs.Not && g.In[0] == in {
			n++
		}
	}
	return n
}

// Two nodes needing NOT(x1) share one inverter by default and get one each
// with sharing disabled.
func TestSynthesize_notShare(t *testing.T) {
	build := func(t *testing.T, opts ...gs.Option) *gs.Netlist {
		t.Helper()
		b, err := bdd.New(3)
		if err != nil {
			t.Fatal(err)
		}
		c, err := b.MakeNode(2, bdd.False, bdd.True)
		if err != nil {
			t.Fatal(err)
		}
		d, err := b.MakeNode(2, bdd.True, bdd.False)
		if err != nil {
			t.Fatal(err)
		}
		a, err := b.MakeNode(1, c, bdd.False)
		if err != nil {
			t.Fatal(err)
		}
		e, err := b.MakeNode(1, d, bdd.False)
		if err != nil {
			t.Fatal(err)
		}
		root, err := b.MakeNode(0, a, e)
		if err != nil {
			t.Fatal(err)
		}
		nl, err := gs.Synthesize(b, root, []string{"x0", "x1", "x2"}, opts...)
		if err != nil {
			trace(t, err)
			t.Fatal(err)
		}
		return nl
	}
	if n := countNots(build(t), "x1"); n != 1 {
		t.Errorf("sharing on: %d NOT(x1) gates, want 1", n)
	}
	if n := countNots(build(t, gs.WithNotShare(false)), "x1"); n != 2 {
		t.Errorf("sharing off: %d NOT(x1) gates, want 2", n)
	}
}

func TestSynthesize_const(t *testing.T) {
	b, err := bdd.New(2)
	if err != nil {
		t.Fatal(err)
	}
	data := []struct {
		name string
		root bdd.Node
		kind gs.Kind
		want bool
	}{
		{"false", bdd.False, gs.Const0, false},
		{"true", bdd.True, gs.Const1, true},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			nl, err := gs.Synthesize(b, d.root, []string{"a", "b"}, gs.WithOutput("y"))
			if err != nil {
				trace(t, err)
				t.Fatal(err)
			}
			if len(nl.Gates) != 1 || nl.Gates[0].Kind != d.kind || nl.Gates[0].Out != "y" {
				t.Fatalf("gates: %v", nl)
			}
			v, err := nl.Eval([]bool{true, false})
			if err != nil {
				t.Fatal(err)
			}
			if v != d.want {
				t.Errorf("got %v, want %v", v, d.want)
			}
		})
	}
}

func TestSynthesize_errors(t *testing.T) {
	b, err := bdd.New(2)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := gs.Synthesize(b, bdd.Node(99), []string{"a", "b"}); errors.Cause(err) != bdd.ErrInvalidNode {
		t.Errorf("bad root: got %v, want cause %v", err, bdd.ErrInvalidNode)
	}
	if _, err := gs.Synthesize(b, bdd.True, []string{"a"}); err == nil {
		t.Error("variable name count mismatch not rejected")
	}
	if _, err := gs.Synthesize(b, bdd.True, []string{"a", "out"}); err == nil {
		t.Error("input name clashing with output not rejected")
	}
	if _, err := gs.Synthesize(b, bdd.True, []string{"a", "b"}, gs.WithOutput(gs.True)); err == nil {
		t.Error("constant output name not rejected")
	}
	if _, err := gs.Synthesize(b, bdd.True, []string{"a", "a"}); err == nil {
		t.Error("duplicate input name not rejected")
	}
	if _, err := gs.Synthesize(b, bdd.True, []string{"a", "n0"}); err == nil {
		t.Error("input name in the wire namespace not rejected")
	}
	if _, err := gs.Synthesize(b, bdd.True, []string{"a", "b"}, gs.WithOutput("n1")); err == nil {
		t.Error("output name in the wire namespace not rejected")
	}
}

// Shared diagram nodes must synthesize exactly one gate group. The majority
// function shares its x2 node between both x1 branches: one BUF(x2) total.
func TestSynthesize_shared(t *testing.T) {
	_, _, nl := synthMinterms(t, 3, ints(3, 5, 6, 7), ints())
	bufs := 0
	for _, g := range nl.Gates {
		if g.Kind == gs.Buf && g.In[0] == "x2" {
			bufs++
		}
	}
	if bufs != 1 {
		t.Errorf("got %d BUF(x2) gates, want 1:\n%v", bufs, nl)
	}
}

// Synthesis must not grow the diagram: complement detection is a structural
// walk, not a NOT operation. Each case gets a fresh diagram so no complement
// node happens to be interned already.
func TestSynthesize_readOnly(t *testing.T) {
	data := []struct {
		name string
		on   mapset.Set[int]
	}{
		{"xor_root", ints(0, 1, 2, 7)},
		{"selection_root", ints(3, 5, 6, 7)},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			b, err := bdd.New(3)
			if err != nil {
				t.Fatal(err)
			}
			root, err := b.FromMinterms(d.on, ints())
			if err != nil {
				t.Fatal(err)
			}
			count := b.NodeCount()
			if _, err := gs.Synthesize(b, root, []string{"x0", "x1", "x2"}); err != nil {
				trace(t, err)
				t.Fatal(err)
			}
			if got := b.NodeCount(); got != count {
				t.Errorf("synthesis grew the diagram from %d to %d nodes", count, got)
			}
		})
	}
}
