// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package verilog emits synthesized netlists as structural SystemVerilog,
// together with exhaustive self-checking testbenches.
//
package verilog

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/gatesmithio/gatesmith"
	"github.com/pkg/errors"
)

// sigName maps netlist constant signals to the local constant nets declared
// by Module.
func sigName(s string) string {
	switch s {
	case gatesmith.True:
		return "const_1"
	case gatesmith.False:
		return "const_0"
	}
	return s
}

func expr(g gatesmith.Gate) (string, error) {
	in := make([]string, len(g.In))
	for i, s := range g.In {
		in[i] = sigName(s)
	}
	switch g.Kind {
	case gatesmith.Const0:
		return "1'b0", nil
	case gatesmith.Const1:
		return "1'b1", nil
	case gatesmith.Buf:
		return in[0], nil
	case gatesmith.Not:
		return "~" + in[0], nil
	case gatesmith.And:
		return in[0] + " & " + in[1], nil
	case gatesmith.Or:
		return in[0] + " | " + in[1], nil
	case gatesmith.Nand:
		return "~(" + in[0] + " & " + in[1] + ")", nil
	case gatesmith.Nor:
		return "~(" + in[0] + " | " + in[1] + ")", nil
	case gatesmith.Xor:
		return in[0] + " ^ " + in[1], nil
	case gatesmith.Xnor:
		return "~(" + in[0] + " ^ " + in[1] + ")", nil
	}
	return "", errors.Errorf("gate %q: unknown kind %v", g.Out, g.Kind)
}

// Module writes n as a structural SystemVerilog module named name. Inputs
// and the output become ports, every other gate output an internal net, and
// each gate one continuous assignment.
//
func Module(w io.Writer, n *gatesmith.Netlist, name string) error {
	bw := bufio.NewWriter(w)
	fmt.Fprint(bw, "// Generated SystemVerilog module from BDD netlist\n")
	fmt.Fprintf(bw, "// Inputs: %s\n", strings.Join(n.Inputs, ", "))
	fmt.Fprintf(bw, "// Gates: %d\n\n", len(n.Gates))
	fmt.Fprintf(bw, "module %s (\n", name)
	for _, v := range n.Inputs {
		fmt.Fprintf(bw, "    input  logic %s,\n", v)
	}
	fmt.Fprintf(bw, "    output logic %s\n", n.Output)
	fmt.Fprint(bw, ");\n\n")

	var wires []string
	hasF, hasT := false, false
	for _, g := range n.Gates {
		if g.Out != n.Output {
			wires = append(wires, g.Out)
		}
		for _, in := range g.In {
			switch in {
			case gatesmith.False:
				hasF = true
			case gatesmith.True:
				hasT = true
			}
		}
	}
	if len(wires) > 0 {
		fmt.Fprint(bw, "    // Internal wires\n")
		for _, wire := range wires {
			fmt.Fprintf(bw, "    logic %s;\n", wire)
		}
		fmt.Fprint(bw, "\n")
	}
	if hasF || hasT {
		fmt.Fprint(bw, "    // Constants\n")
		if hasF {
			fmt.Fprint(bw, "    logic const_0 = 1'b0;\n")
		}
		if hasT {
			fmt.Fprint(bw, "    logic const_1 = 1'b1;\n")
		}
		fmt.Fprint(bw, "\n")
	}

	fmt.Fprint(bw, "    // Gate instances\n")
	for _, g := range n.Gates {
		e, err := expr(g)
		if err != nil {
			return err
		}
		fmt.Fprintf(bw, "    assign %s = %s;\n", g.Out, e)
	}
	fmt.Fprint(bw, "\nendmodule\n")
	return bw.Flush()
}

// Testbench writes an exhaustive self-checking testbench for n. It
// instantiates module name and is itself named name_tb. expected[i] is the
// expected output at input minterm i; missing entries default to 0. The
// bench drives every input combination, compares against the expectation
// after a settling delay, and reports a final pass or fail verdict.
//
func Testbench(w io.Writer, n *gatesmith.Netlist, name string, expected []bool) error {
	bw := bufio.NewWriter(w)
	cases := 1 << uint(len(n.Inputs))

	fmt.Fprintf(bw, "// Testbench for %s\n", name)
	fmt.Fprintf(bw, "// Exhaustive simulation of all %d input combinations\n\n", cases)
	fmt.Fprintf(bw, "module %s_tb;\n\n", name)

	fmt.Fprint(bw, "    // Testbench signals\n")
	for _, v := range n.Inputs {
		fmt.Fprintf(bw, "    logic %s;\n", v)
	}
	fmt.Fprintf(bw, "    logic %s;\n", n.Output)
	fmt.Fprint(bw, "    logic expected;\n")
	fmt.Fprint(bw, "    int errors = 0;\n\n")

	fmt.Fprint(bw, "    // DUT instantiation\n")
	fmt.Fprintf(bw, "    %s dut (\n", name)
	for _, v := range n.Inputs {
		fmt.Fprintf(bw, "        .%s(%s),\n", v, v)
	}
	fmt.Fprintf(bw, "        .%s(%s)\n", n.Output, n.Output)
	fmt.Fprint(bw, "    );\n\n")

	fmt.Fprint(bw, "    // Test stimulus\n")
	fmt.Fprint(bw, "    initial begin\n")
	fmt.Fprint(bw, "        $display(\"Starting exhaustive test...\");\n")
	fmt.Fprintf(bw, "        $display(\"Testing %d input combinations\");\n", cases)
	fmt.Fprint(bw, "        $display(\"\");\n\n")

	outCol := n.Output
	if len(outCol) > 3 {
		outCol = "out"
	}
	fmt.Fprintf(bw, "        $display(\"  %s  | %s | exp | status\");\n", strings.Join(n.Inputs, "  "), outCol)
	fmt.Fprintf(bw, "        $display(\"  %s\");\n\n", strings.Repeat("-", len(n.Inputs)*4+20))

	bits := make([]string, len(n.Inputs))
	for i := range bits {
		bits[i] = "%b"
	}
	row := "  " + strings.Join(bits, "  ") + "  |  %b  |  %b  | "
	args := strings.Join(n.Inputs, ", ") + ", " + n.Output + ", expected"

	for i := 0; i < cases; i++ {
		fmt.Fprintf(bw, "        // Test case %d\n", i)
		for j, v := range n.Inputs {
			fmt.Fprintf(bw, "        %s = 1'b%d;\n", v, (i>>uint(len(n.Inputs)-j-1))&1)
		}
		exp := 0
		if i < len(expected) && expected[i] {
			exp = 1
		}
		fmt.Fprintf(bw, "        expected = 1'b%d;\n", exp)
		fmt.Fprint(bw, "        #10;\n\n")
		fmt.Fprintf(bw, "        if (%s !== expected) begin\n", n.Output)
		fmt.Fprint(bw, "            errors++;\n")
		fmt.Fprintf(bw, "            $display(\"%sFAIL\", %s);\n", row, args)
		fmt.Fprint(bw, "        end else begin\n")
		fmt.Fprintf(bw, "            $display(\"%sPASS\", %s);\n", row, args)
		fmt.Fprint(bw, "        end\n\n")
	}

	fmt.Fprint(bw, "        $display(\"\");\n")
	fmt.Fprint(bw, "        if (errors == 0)\n")
	fmt.Fprint(bw, "            $display(\"*** TEST PASSED: All test cases passed! ***\");\n")
	fmt.Fprint(bw, "        else\n")
	fmt.Fprintf(bw, "            $display(\"*** TEST FAILED: %%0d errors detected ***\", errors);\n\n")
	fmt.Fprint(bw, "        $finish;\n")
	fmt.Fprint(bw, "    end\n\n")
	fmt.Fprint(bw, "endmodule\n")
	return bw.Flush()
}
