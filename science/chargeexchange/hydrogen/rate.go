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

package hydrogen

import (
	"fmt"
	"math"

	"github.com/plasmasim/hcx"
)

// Limits of the rate coefficient fit [eV]. Effective temperatures outside
// this range are clamped to it.
const (
	FitTMin = 0.1
	FitTMax = 2.e4
)

// FitReferenceMass is the mass, in proton masses, of the projectile the
// fit was made for (p + H).
const FitReferenceMass = 1.

// Floors applied to normalised temperatures and densities before the
// rates are calculated.
const (
	TemperatureFloor = 1.e-5
	DensityFloor     = 1.e-5
)

// amjuel318 holds the coefficients of the Amjuel H.2 reaction 3.1.8 fit
// ln <σv> = sum_n b_n (ln T)^n, with <σv> in cm^3/s and T in eV.
var amjuel318 = [9]float64{
	-18.5028,
	0.3708409,
	7.949876e-3,
	-6.143769e-4,
	-4.698969e-4,
	-4.096807e-4,
	1.440382e-4,
	-1.514243e-5,
	5.122435e-7,
}

// Clamped counts effective temperatures that were outside the fit range.
type Clamped struct {
	Below, Above int
}

// clampFit returns teff limited to the range of the fit, and -1, 0 or 1
// depending on whether it was below, within or above the range.
// Non-finite values are treated as below the range.
func clampFit(teff float64) (float64, int) {
	switch {
	case math.IsNaN(teff) || teff < FitTMin:
		return FitTMin, -1
	case teff > FitTMax:
		return FitTMax, 1
	}
	return teff, 0
}

// SigmaV returns the charge exchange rate coefficient <σv> [cm^3/s] for
// the effective temperature teff [eV].
func SigmaV(teff float64) float64 {
	teff, _ = clampFit(teff)
	x := math.Log(teff)
	var lnsv float64
	for n := len(amjuel318) - 1; n >= 0; n-- {
		lnsv = lnsv*x + amjuel318[n]
	}
	return math.Exp(lnsv)
}

// EffectiveTemperature returns the temperature [eV] at which to evaluate
// the rate coefficient for an atom of mass m1 and temperature t1
// colliding with an ion of mass m2 and temperature t2:
//
//	Teff = (mref/m1) t1 + (mref/m2) t2
//
// where mref is the projectile mass of the fit. Temperatures that are
// below TemperatureFloor or not finite are replaced by TemperatureFloor
// first, so the result is always finite and positive.
func EffectiveTemperature(m1 float64, t1 hcx.Field, m2 float64, t2 hcx.Field, mref float64) (hcx.Field, error) {
	if len(t1) != len(t2) {
		return nil, fmt.Errorf("hydrogen: effective temperature: %w: %d != %d",
			hcx.ErrGridMismatch, len(t1), len(t2))
	}
	if !(m1 > 0) || !(m2 > 0) || !(mref > 0) {
		return nil, fmt.Errorf("hydrogen: effective temperature: masses must be positive (%g, %g, %g)",
			m1, m2, mref)
	}
	t1, _ = t1.Floor(TemperatureFloor)
	t2, _ = t2.Floor(TemperatureFloor)
	teff := make(hcx.Field, len(t1))
	for i := range teff {
		teff[i] = mref/m1*t1[i] + mref/m2*t2[i]
	}
	return teff, nil
}

// RateCoefficient returns <σv> in normalised units at each effective
// temperature [eV] in teff.
func RateCoefficient(teff hcx.Field, norm hcx.Normalization) (hcx.Field, Clamped) {
	var c Clamped
	sv := make(hcx.Field, len(teff))
	for i, t := range teff {
		switch _, dir := clampFit(t); dir {
		case -1:
			c.Below++
		case 1:
			c.Above++
		}
		sv[i] = SigmaV(t) * norm.RateFactor
	}
	return sv, c
}
