// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package logic describes single-output Boolean functions by their ON and
// don't-care minterm sets: the input format of synthesis and the golden
// model its results are checked against.
//
package logic

import (
	"sort"
	"strconv"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/gatesmithio/gatesmith/bdd"
)

// A Function is a Boolean function of NumVars variables, given by the set of
// minterms where its value is one and the set where its value is
// unconstrained. Variable 0 is the most significant bit of a minterm index.
//
type Function struct {
	Name    string
	NumVars int
	On      mapset.Set[int]
	DC      mapset.Set[int]
}

var _ bdd.Table = (*Function)(nil)

// New returns the function with the given ON and don't-care minterms. It
// performs no validation; functions built from untrusted input should go
// through Parse instead.
//
func New(name string, nvars int, on, dc []int) *Function {
	return &Function{
		Name:    name,
		NumVars: nvars,
		On:      mapset.NewSet[int](on...),
		DC:      mapset.NewSet[int](dc...),
	}
}

// Vars returns the number of input variables.
//
func (f *Function) Vars() int { return f.NumVars }

// Value returns the specified value of the function at minterm m.
//
func (f *Function) Value(m int) bdd.Trit {
	switch {
	case f.On.Contains(m):
		return bdd.On
	case f.DC.Contains(m):
		return bdd.DontCare
	}
	return bdd.Off
}

// Expected is the reference value of the function at minterm m. Don't-cares
// resolve to 0, matching what synthesis produces, so testbench expectations
// built from Expected line up with the netlist.
//
func (f *Function) Expected(m int) bool { return f.On.Contains(m) }

// Size returns the number of minterms, 2^NumVars.
//
func (f *Function) Size() int { return 1 << f.NumVars }

// OnList returns the ON-set minterms in ascending order.
//
func (f *Function) OnList() []int { return sortedInts(f.On) }

// DCList returns the don't-care minterms in ascending order.
//
func (f *Function) DCList() []int { return sortedInts(f.DC) }

// String returns the function as a spec line accepted by Parse.
func (f *Function) String() string {
	var b strings.Builder
	b.WriteString(f.Name)
	b.WriteByte(':')
	for i, m := range f.OnList() {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte(' ')
		b.WriteString(strconv.Itoa(m))
	}
	if f.DC.Cardinality() > 0 {
		b.WriteString(" d{")
		for i, m := range f.DCList() {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(strconv.Itoa(m))
		}
		b.WriteByte('}')
	}
	return b.String()
}

func sortedInts(s mapset.Set[int]) []int {
	out := s.ToSlice()
	sort.Ints(out)
	return out
}
