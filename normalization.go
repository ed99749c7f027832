/*
Copyright © 2024 the HCX authors.
This file is part of HCX.

HCX is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

HCX is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with HCX.  If not, see <http://www.gnu.org/licenses/>.
*/

package hcx

import (
	"fmt"
	"math"

	"github.com/ctessum/unit"
)

// Option keys holding the normalisation constants.
const (
	TnormOption   = "units.eV"
	NnormOption   = "units.inv_meters_cubed"
	SecondsOption = "units.seconds"
)

// Normalization holds the reference scales used to make the fluid
// equations dimensionless. It is read once at construction and not
// changed afterwards.
type Normalization struct {
	Tnorm    float64 // temperature [eV]
	Nnorm    float64 // density [m^-3]
	FreqNorm float64 // frequency [s^-1]

	// RateFactor converts a rate coefficient in cm^3/s into normalised
	// units, so that n*n*<σv>*RateFactor is a normalised density source.
	RateFactor float64
}

// NewNormalization reads the normalisation constants from opts.
// All three must be present, finite and positive.
func NewNormalization(opts Options) (Normalization, error) {
	var n Normalization
	var seconds float64
	for _, o := range []struct {
		key string
		dst *float64
	}{
		{TnormOption, &n.Tnorm},
		{NnormOption, &n.Nnorm},
		{SecondsOption, &seconds},
	} {
		v, err := RequiredFloat(opts, o.key)
		if err != nil {
			return Normalization{}, err
		}
		if !(v > 0) || math.IsInf(v, 0) {
			return Normalization{}, fmt.Errorf("%w: option %s must be positive and finite, got %g",
				ErrMissingConfiguration, o.key, v)
		}
		*o.dst = v
	}
	n.FreqNorm = 1 / seconds

	f, err := rateFactor(n.Nnorm, n.FreqNorm)
	if err != nil {
		return Normalization{}, err
	}
	n.RateFactor = f
	return n, nil
}

// rateFactor calculates the conversion from cm^3/s to normalised rate
// units, checking that the result is dimensionless.
func rateFactor(nnorm, freqNorm float64) (float64, error) {
	const cm3 = 1.e-6 // m^3
	sigmaV := unit.New(cm3, unit.Meter3PerSecond)
	density := unit.New(nnorm, unit.Dimensions{unit.LengthDim: -3})
	freq := unit.New(freqNorm, unit.Herz)
	f := unit.Div(unit.Mul(sigmaV, density), freq)
	if err := f.Check(unit.Dimless); err != nil {
		return 0, fmt.Errorf("hcx: rate normalisation: %v", err)
	}
	return f.Value(), nil
}
