// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logic

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/gatesmithio/gatesmith/bdd"
	"github.com/pkg/errors"
)

// Parse reads a function spec over nvars variables, one function per line:
//
//	# three input majority and parity
//	maj:    3, 5, 6, 7
//	parity: 1, 2, 4 d{7}
//
// A line is a function name, a colon, the ON-set minterms, and an optional
// don't-care set in d{…}. Blank lines and lines starting with # are skipped.
//
func Parse(r io.Reader, nvars int) ([]*Function, error) {
	if nvars < 1 || nvars > bdd.MaxVar {
		return nil, errors.Errorf("bad number of variables (%d)", nvars)
	}
	var fns []*Function
	seen := make(map[string]bool)
	sc := bufio.NewScanner(r)
	for lineno := 1; sc.Scan(); lineno++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		f, err := parseLine(line, nvars)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", lineno)
		}
		if seen[f.Name] {
			return nil, errors.Errorf("line %d: duplicate function name %q", lineno, f.Name)
		}
		seen[f.Name] = true
		fns = append(fns, f)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(fns) == 0 {
		return nil, errors.New("empty function spec")
	}
	return fns, nil
}

func parseError(in string, pos int, msg string) error {
	return errors.Errorf("in %q at pos %d: %s", in, pos+1, msg)
}

type scanner struct {
	in  string
	pos int
}

func (s *scanner) ws() {
	for s.pos < len(s.in) && (s.in[s.pos] == ' ' || s.in[s.pos] == '\t') {
		s.pos++
	}
}

func (s *scanner) done() bool {
	s.ws()
	return s.pos >= len(s.in)
}

// accept consumes c if it is the next non-blank byte.
func (s *scanner) accept(c byte) bool {
	s.ws()
	if s.pos < len(s.in) && s.in[s.pos] == c {
		s.pos++
		return true
	}
	return false
}

func (s *scanner) scanInt() (int, error) {
	s.ws()
	start := s.pos
	for s.pos < len(s.in) && '0' <= s.in[s.pos] && s.in[s.pos] <= '9' {
		s.pos++
	}
	if s.pos == start {
		return 0, parseError(s.in, start, "expected minterm index")
	}
	v, err := strconv.Atoi(s.in[start:s.pos])
	if err != nil {
		return 0, parseError(s.in, start, "bad minterm index")
	}
	return v, nil
}

func parseLine(in string, nvars int) (*Function, error) {
	p := strings.IndexByte(in, ':')
	if p < 0 {
		return nil, parseError(in, len(in), "missing ':' after function name")
	}
	name := strings.TrimSpace(in[:p])
	if !validName(name) {
		return nil, parseError(in, 0, "bad function name")
	}
	f := &Function{
		Name:    name,
		NumVars: nvars,
		On:      mapset.NewSet[int](),
		DC:      mapset.NewSet[int](),
	}
	size := 1 << nvars
	s := &scanner{in: in, pos: p + 1}

	// ON-set
	s.ws()
	if s.pos < len(s.in) && s.in[s.pos] != 'd' {
		for {
			s.ws()
			at := s.pos
			m, err := s.scanInt()
			if err != nil {
				return nil, err
			}
			if m >= size {
				return nil, parseError(in, at, "minterm "+strconv.Itoa(m)+" out of range")
			}
			if f.On.Contains(m) {
				return nil, parseError(in, at, "duplicate minterm "+strconv.Itoa(m))
			}
			f.On.Add(m)
			if !s.accept(',') {
				break
			}
		}
	}

	// optional don't-care set
	if s.done() {
		return f, nil
	}
	if s.in[s.pos] != 'd' {
		return nil, parseError(in, s.pos, "expected d{...} or end of line")
	}
	s.pos++
	if !s.accept('{') {
		return nil, parseError(in, s.pos, "expected '{'")
	}
	if !s.accept('}') {
		for {
			s.ws()
			at := s.pos
			m, err := s.scanInt()
			if err != nil {
				return nil, err
			}
			if m >= size {
				return nil, parseError(in, at, "minterm "+strconv.Itoa(m)+" out of range")
			}
			if f.On.Contains(m) {
				return nil, parseError(in, at, "minterm "+strconv.Itoa(m)+" both on and don't-care")
			}
			if f.DC.Contains(m) {
				return nil, parseError(in, at, "duplicate minterm "+strconv.Itoa(m))
			}
			f.DC.Add(m)
			if !s.accept(',') {
				break
			}
		}
		if !s.accept('}') {
			return nil, parseError(in, s.pos, "missing '}'")
		}
	}
	if !s.done() {
		return nil, parseError(in, s.pos, "unexpected trailing characters")
	}
	return f, nil
}

// validName reports whether s can name a function or signal: a letter or
// underscore followed by letters, digits and underscores. Names become
// identifiers in generated Verilog.
func validName(s string) bool {
	for i, r := range s {
		switch {
		case r == '_' || 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z':
		case i > 0 && '0' <= r && r <= '9':
		default:
			return false
		}
	}
	return s != ""
}

// WriteSpec writes fns in the format accepted by Parse.
//
func WriteSpec(w io.Writer, fns []*Function) error {
	bw := bufio.NewWriter(w)
	for _, f := range fns {
		bw.WriteString(f.String())
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// Names splits a comma-separated list of exactly n distinct signal names.
//
func Names(list string, n int) ([]string, error) {
	out := make([]string, 0, n)
	seen := make(map[string]bool)
	pos := 0
	for i, part := range strings.Split(list, ",") {
		if i > 0 {
			pos++ // separating comma
		}
		name := strings.TrimSpace(part)
		at := pos + strings.Index(part, name)
		if !validName(name) {
			return nil, parseError(list, at, "bad signal name")
		}
		if seen[name] {
			return nil, parseError(list, at, "duplicate signal name "+name)
		}
		seen[name] = true
		out = append(out, name)
		pos += len(part)
	}
	if len(out) != n {
		return nil, errors.Errorf("have %d signal names, need %d", len(out), n)
	}
	return out, nil
}

// VarNames returns the default variable names x0 … x{n-1}.
//
func VarNames(n int) []string {
	v := make([]string, n)
	for i := range v {
		v[i] = "x" + strconv.Itoa(i)
	}
	return v
}
