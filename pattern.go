// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package gatesmith

import "github.com/pkg/errors"

// ErrPatternTable reports a node classification with no realization in the
// pattern table.
//
var ErrPatternTable = errors.New("no pattern for classification")

// A pattern realizes one of the sixteen two-variable Boolean functions with
// one primitive gate and input negations. Patterns are indexed by the truth
// table of the function read as a 4-bit number, row (f=0, w=0) being the most
// significant bit and row (f=1, w=1) the least.
type pattern struct {
	name       string
	kind       Kind
	inF, inW   bool // gate inputs, f first
	negF, negW bool // negate the corresponding input
}

var patterns = [16]pattern{
	0x0: {name: "const0", kind: Const0},
	0x1: {name: "and", kind: And, inF: true, inW: true},
	0x2: {name: "gt", kind: And, inF: true, inW: true, negW: true},
	0x3: {name: "buf_f", kind: Buf, inF: true},
	0x4: {name: "lt", kind: And, inF: true, inW: true, negF: true},
	0x5: {name: "buf_w", kind: Buf, inW: true},
	0x6: {name: "xor", kind: Xor, inF: true, inW: true},
	0x7: {name: "or", kind: Or, inF: true, inW: true},
	0x8: {name: "nor", kind: Nor, inF: true, inW: true},
	0x9: {name: "xnor", kind: Xnor, inF: true, inW: true},
	0xa: {name: "not_w", kind: Not, inW: true},
	0xb: {name: "gte", kind: Or, inF: true, inW: true, negW: true},
	0xc: {name: "not_f", kind: Not, inF: true},
	0xd: {name: "lte", kind: Or, inF: true, inW: true, negF: true},
	0xe: {name: "nand", kind: Nand, inF: true, inW: true},
	0xf: {name: "const1", kind: Const1},
}

func lookupPattern(idx int) (pattern, error) {
	if idx < 0 || idx >= len(patterns) || patterns[idx].name == "" {
		return pattern{}, errors.Wrapf(ErrPatternTable, "classification %#x", idx)
	}
	return patterns[idx], nil
}

// realize emits the gates computing p over the signals f and w and returns
// the signal carrying the result. Input negations go through s.not, so an
// existing inverter may be reused.
func (p pattern) realize(s *synth, f, w string) string {
	in := make([]string, 0, 2)
	if p.inF {
		if p.negF {
			f = s.not(f)
		}
		in = append(in, f)
	}
	if p.inW {
		if p.negW {
			w = s.not(w)
		}
		in = append(in, w)
	}
	return s.emit(p.kind, in...)
}
