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

// Anomalies counts the points at which inputs had to be adjusted before
// the rates could be calculated.
type Anomalies struct {
	// Density and Temperature count values that were non-positive or
	// not finite. Positive values below the floors are raised to them
	// without being counted.
	Density, Temperature int

	// Fit counts effective temperatures outside the range of the fit.
	Fit Clamped
}

// Total returns the total number of adjusted values.
func (a Anomalies) Total() int {
	return a.Density + a.Temperature + a.Fit.Below + a.Fit.Above
}

// Channels holds the reaction rate and the momentum and energy carried by
// the reacting particles, all per unit volume and in normalised units.
type Channels struct {
	// Rate is the number of reactions per unit volume per unit time.
	Rate hcx.Field

	// AtomMomentum and AtomEnergy are carried from the atom of the first
	// isotope to the ion of the first isotope.
	AtomMomentum, AtomEnergy hcx.Field

	// IonMomentum and IonEnergy are carried from the ion of the second
	// isotope to the atom of the second isotope.
	IonMomentum, IonEnergy hcx.Field

	Anomalies Anomalies
}

func checkSpecies(atom1, ion1, atom2, ion2 *hcx.Species) error {
	for _, s := range []*hcx.Species{atom1, ion1, atom2, ion2} {
		if s == nil {
			return fmt.Errorf("hydrogen: %w: nil species", hcx.ErrMissingSpecies)
		}
		if err := s.Validate(); err != nil {
			return err
		}
		if s.Len() != atom1.Len() {
			return fmt.Errorf("hydrogen: species %s and %s: %w", s.Name, atom1.Name, hcx.ErrGridMismatch)
		}
	}
	if atom1.AA != ion2.AA {
		return fmt.Errorf("hydrogen: %w: %s has AA=%g but %s has AA=%g",
			hcx.ErrInconsistentMass, atom1.Name, atom1.AA, ion2.Name, ion2.AA)
	}
	if atom2.AA != ion1.AA {
		return fmt.Errorf("hydrogen: %w: %s has AA=%g but %s has AA=%g",
			hcx.ErrInconsistentMass, atom2.Name, atom2.AA, ion1.Name, ion1.AA)
	}
	if (atom1 == atom2) != (ion1 == ion2) {
		return fmt.Errorf("hydrogen: atoms %s, %s and ions %s, %s do not form a reaction",
			atom1.Name, atom2.Name, ion1.Name, ion2.Name)
	}
	return nil
}

// carried returns the momentum and energy densities carried by
// particles reacting at rate r.
// unphysical returns the number of values in f that are not finite and
// positive.
func unphysical(f hcx.Field) int {
	n := 0
	for _, v := range f {
		if !(v > 0) || math.IsInf(v, 1) {
			n++
		}
	}
	return n
}

func carried(r hcx.Field, s *hcx.Species, temperature hcx.Field) (mom, energy hcx.Field) {
	mom = make(hcx.Field, len(r))
	energy = make(hcx.Field, len(r))
	for i, ri := range r {
		v := s.Velocity[i]
		mom[i] = ri * s.AA * v
		energy[i] = ri * (1.5*temperature[i] + 0.5*s.AA*v*v)
	}
	return mom, energy
}

// CalculateRates calculates the rate of the reaction
//
//	atom1 + ion1 -> ion2 + atom2
//
// and adds the resulting particle, momentum and energy sources to the four
// species. atom1 and ion2 are the same isotope, as are ion1 and atom2.
// If the two isotopes are the same, atom1 and atom2 (and ion1 and ion2)
// are the same species and no particle sources are added.
//
// The species are checked before anything is written, so if an error is
// returned no sources have been changed.
func CalculateRates(atom1, ion1, atom2, ion2 *hcx.Species, norm hcx.Normalization) (*Channels, error) {
	if err := checkSpecies(atom1, ion1, atom2, ion2); err != nil {
		return nil, err
	}
	var a Anomalies

	nAtom, _ := atom1.Density.Floor(DensityFloor)
	nIon, _ := ion1.Density.Floor(DensityFloor)
	tAtom, _ := atom1.Temperature.Floor(TemperatureFloor)
	tIon, _ := ion1.Temperature.Floor(TemperatureFloor)
	a.Density = unphysical(atom1.Density) + unphysical(ion1.Density)
	a.Temperature = unphysical(atom1.Temperature) + unphysical(ion1.Temperature)

	tAtomEV := tAtom.Copy()
	tAtomEV.Scale(norm.Tnorm)
	tIonEV := tIon.Copy()
	tIonEV.Scale(norm.Tnorm)
	teff, err := EffectiveTemperature(atom1.AA, tAtomEV, ion1.AA, tIonEV, FitReferenceMass)
	if err != nil {
		return nil, err
	}
	sigmaV, clamped := RateCoefficient(teff, norm)
	a.Fit = clamped

	r := nAtom.Copy()
	r.Mul(nIon)
	r.Mul(sigmaV)

	c := &Channels{Rate: r, Anomalies: a}
	c.AtomMomentum, c.AtomEnergy = carried(r, atom1, tAtom)
	c.IonMomentum, c.IonEnergy = carried(r, ion1, tIon)

	// The lengths were checked above, so the source updates cannot fail.
	if atom1 != atom2 {
		atom1.SubDensitySource(r)
		ion1.SubDensitySource(r)
		ion2.AddDensitySource(r)
		atom2.AddDensitySource(r)
	}
	atom1.SubMomentumSource(c.AtomMomentum)
	ion2.AddMomentumSource(c.AtomMomentum)
	ion1.SubMomentumSource(c.IonMomentum)
	atom2.AddMomentumSource(c.IonMomentum)

	atom1.SubEnergySource(c.AtomEnergy)
	ion2.AddEnergySource(c.AtomEnergy)
	ion1.SubEnergySource(c.IonEnergy)
	atom2.AddEnergySource(c.IonEnergy)

	return c, nil
}
