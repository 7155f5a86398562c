// Command gatesmith compiles Boolean function specifications into gate-level
// netlists and SystemVerilog.
//
// A specification file has one function per line:
//
//	maj: 3, 5, 6, 7
//	parity: 1, 2, 4 d{7}
//
// With -random, gatesmith generates a specification instead, writes it to
// random_spec.txt and synthesizes it like a regular input file.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gatesmithio/gatesmith"
	"github.com/gatesmithio/gatesmith/bdd"
	"github.com/gatesmithio/gatesmith/logic"
	"github.com/gatesmithio/gatesmith/verilog"
	"github.com/pkg/errors"
)

const randomSpec = "random_spec.txt"

var (
	specFile = flag.String("spec", "", "specification `file`, one function per line: name: 1, 2 d{5}")
	randMode = flag.Bool("random", false, "generate a random specification instead of reading one")
	numVars  = flag.Int("n", 0, "number of input variables (default 3, or 4 with -random)")
	numFuncs = flag.Int("m", 1, "number of functions to generate with -random")
	onRatio  = flag.Float64("on", 0.35, "ON-set density for -random, at most 0.5")
	dcRatio  = flag.Float64("dc", 0.15, "don't-care density for -random")
	seed     = flag.Int64("seed", 0, "seed for -random; 0 takes one from the clock")
	outDir   = flag.String("o", "output", "output `directory` for the generated SystemVerilog")
	varNames = flag.String("vars", "", "comma separated input names (default x0, x1, ...)")
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("gatesmith: ")
	flag.Parse()
	if *specFile == "" && !*randMode {
		flag.Usage()
		os.Exit(2)
	}
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	n := *numVars
	if n == 0 {
		n = 3
		if *randMode {
			n = 4
		}
	}
	var (
		fns  []*logic.Function
		stem string
		err  error
	)
	if *randMode {
		fns, err = generate(n)
		stem = stemOf(randomSpec)
	} else {
		fns, err = parseFile(*specFile, n)
		stem = stemOf(*specFile)
	}
	if err != nil {
		return err
	}
	vars, err := inputNames(n)
	if err != nil {
		return err
	}
	return synthesize(fns, vars, stem)
}

// generate builds the random function set and writes it to randomSpec so
// the run can be inspected and repeated.
func generate(n int) ([]*logic.Function, error) {
	on, dc := *onRatio, *dcRatio
	if on > 0.5 {
		log.Print("-on ratio above 0.5, clamping to 0.5")
		on = 0.5
	}
	s := *seed
	if s == 0 {
		s = time.Now().UnixNano()
	}
	fns, err := logic.Random(rand.New(rand.NewSource(s)), n, *numFuncs, on, dc)
	if err != nil {
		return nil, err
	}
	f, err := os.Create(randomSpec)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if err = logic.WriteSpec(f, fns); err != nil {
		return nil, errors.Wrap(err, randomSpec)
	}
	fmt.Printf("Generated random spec: %s (seed %d)\n\n", randomSpec, s)
	return fns, nil
}

func parseFile(path string, n int) ([]*logic.Function, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	fns, err := logic.Parse(f, n)
	return fns, errors.Wrap(err, path)
}

func inputNames(n int) ([]string, error) {
	if *varNames == "" {
		return logic.VarNames(n), nil
	}
	return logic.Names(*varNames, n)
}

// stemOf strips the directory and extension from path for use as a module
// name prefix.
func stemOf(path string) string {
	base := filepath.Base(path)
	if ext := filepath.Ext(base); ext != "" && ext != base {
		base = base[:len(base)-len(ext)]
	}
	if base == "" {
		return "run"
	}
	return base
}

func synthesize(fns []*logic.Function, vars []string, stem string) error {
	banner := strings.Repeat("=", 60)
	rule := strings.Repeat("-", 60)

	fmt.Println(banner)
	fmt.Println("BDD-based netlist generation")
	fmt.Println(banner)
	fmt.Println()
	fmt.Printf("Inputs:  %d variables: %s\n", len(vars), strings.Join(vars, ", "))
	fmt.Printf("Outputs: %d functions: %s\n\n", len(fns), strings.Join(funcNames(fns), ", "))
	if len(vars) <= 8 {
		fmt.Println("Truth table:")
		printTable(fns, vars)
	} else {
		fmt.Printf("Truth table: %d rows, omitted\n", 1<<uint(len(vars)))
	}
	fmt.Println()

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		return err
	}

	for _, f := range fns {
		fmt.Println(rule)
		fmt.Printf("Processing output: %s\n", f.Name)
		fmt.Println(rule)
		fmt.Printf("  ON-set: %v\n", f.OnList())
		fmt.Printf("  DC-set: %v\n\n", f.DCList())

		d, err := bdd.New(f.NumVars)
		if err != nil {
			return err
		}
		root, err := d.FromTable(f)
		if err != nil {
			return errors.Wrap(err, f.Name)
		}
		fmt.Printf("Building BDD for %s...\n", f.Name)
		fmt.Printf("  nodes (total):        %d\n", d.NodeCount())
		fmt.Printf("  nodes (non-terminal): %d\n\n", d.InternalCount())
		if d.InternalCount() <= 10 {
			fmt.Println("  BDD structure:")
			if err = d.Fprint(os.Stdout, root); err != nil {
				return err
			}
			fmt.Println()
		}

		nl, err := gatesmith.Synthesize(d, root, vars, gatesmith.WithOutput(f.Name))
		if err != nil {
			return errors.Wrap(err, f.Name)
		}
		fmt.Printf("Netlist for %s:\n", f.Name)
		fmt.Print(nl)
		fmt.Println()
		fmt.Println(nl.Stats())
		fmt.Println()

		module := stem + "_" + f.Name
		mPath := filepath.Join(*outDir, module+".sv")
		tbPath := filepath.Join(*outDir, module+"_tb.sv")
		err = writeFile(mPath, func(w io.Writer) error { return verilog.Module(w, nl, module) })
		if err != nil {
			return err
		}
		exp := expected(f)
		err = writeFile(tbPath, func(w io.Writer) error { return verilog.Testbench(w, nl, module, exp) })
		if err != nil {
			return err
		}
		fmt.Printf("  Module:    %s\n", mPath)
		fmt.Printf("  Testbench: %s\n\n", tbPath)
	}

	fmt.Println(banner)
	fmt.Printf("Synthesis complete. Output files in: %s\n", *outDir)
	fmt.Println(banner)
	fmt.Println()
	fmt.Println("To simulate:")
	fmt.Printf("  cd %s\n", *outDir)
	for _, f := range fns {
		module := stem + "_" + f.Name
		fmt.Printf("  iverilog -g2012 -o %s_sim %s.sv %s_tb.sv && ./%s_sim\n", f.Name, module, module, f.Name)
	}
	return nil
}

func funcNames(fns []*logic.Function) []string {
	out := make([]string, len(fns))
	for i, f := range fns {
		out[i] = f.Name
	}
	return out
}

// printTable writes the combined truth table of fns, one row per minterm,
// variable 0 in the leftmost (most significant) column.
func printTable(fns []*logic.Function, vars []string) {
	var b strings.Builder
	for _, v := range vars {
		b.WriteString(v)
		b.WriteByte(' ')
	}
	b.WriteByte('|')
	for _, f := range fns {
		b.WriteByte(' ')
		b.WriteString(f.Name)
	}
	head := b.String()
	fmt.Printf("  %s\n", head)
	fmt.Printf("  %s\n", strings.Repeat("-", len(head)))
	for m := 0; m < 1<<uint(len(vars)); m++ {
		var r strings.Builder
		for i, v := range vars {
			bit := '0'
			if m&(1<<uint(len(vars)-i-1)) != 0 {
				bit = '1'
			}
			fmt.Fprintf(&r, "%*c ", len(v), bit)
		}
		r.WriteByte('|')
		for _, f := range fns {
			fmt.Fprintf(&r, " %*s", len(f.Name), f.Value(m))
		}
		fmt.Printf("  %s\n", r.String())
	}
}

// expected resolves every minterm of f to the value the synthesized circuit
// must produce, don't-cares included.
func expected(f *logic.Function) []bool {
	exp := make([]bool, f.Size())
	for m := range exp {
		exp[m] = f.Expected(m)
	}
	return exp
}

func writeFile(path string, emit func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err = emit(f); err != nil {
		f.Close()
		return errors.Wrap(err, path)
	}
	return errors.Wrap(f.Close(), path)
}
