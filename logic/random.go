// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logic

import (
	"math/rand"
	"strconv"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/gatesmithio/gatesmith/bdd"
	"github.com/pkg/errors"
)

// Random returns nouts random functions of nvars variables, named f0, f1, ….
// Each minterm is ON with probability onRatio and don't-care with dcRatio,
// independently. A function that comes out with an empty ON-set gets one
// random ON minterm, so no generated function is constant zero.
//
func Random(rng *rand.Rand, nvars, nouts int, onRatio, dcRatio float64) ([]*Function, error) {
	if nvars < 1 || nvars > bdd.MaxVar {
		return nil, errors.Errorf("bad number of variables (%d)", nvars)
	}
	if nouts < 1 {
		return nil, errors.Errorf("bad number of outputs (%d)", nouts)
	}
	if onRatio < 0 || dcRatio < 0 || onRatio+dcRatio > 1 {
		return nil, errors.Errorf("bad minterm ratios (%v on, %v don't-care)", onRatio, dcRatio)
	}
	size := 1 << nvars
	fns := make([]*Function, nouts)
	for i := range fns {
		f := &Function{
			Name:    "f" + strconv.Itoa(i),
			NumVars: nvars,
			On:      mapset.NewSet[int](),
			DC:      mapset.NewSet[int](),
		}
		for m := 0; m < size; m++ {
			switch v := rng.Float64(); {
			case v < onRatio:
				f.On.Add(m)
			case v < onRatio+dcRatio:
				f.DC.Add(m)
			}
		}
		if f.On.Cardinality() == 0 {
			m := rng.Intn(size)
			f.DC.Remove(m)
			f.On.Add(m)
		}
		fns[i] = f
	}
	return fns, nil
}
