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

// Package hydrogen calculates charge exchange between the atoms and ions
// of the hydrogen isotopes h, d and t, and the particle, momentum and
// energy sources that result.
package hydrogen

import (
	"fmt"

	"github.com/plasmasim/hcx"
	"github.com/sirupsen/logrus"
)

// ChargeExchange is a component that calculates one charge exchange
// reaction. It fulfils the hcx.Component interface.
type ChargeExchange struct {
	Pair Pair
	Norm hcx.Normalization

	// Diagnose specifies whether the reaction's transfer fields are
	// saved as diagnostics.
	Diagnose bool

	// Log receives reports of clamped inputs. The default is
	// logrus.StandardLogger().
	Log logrus.FieldLogger

	section string
	diag    *hcx.Diagnostics
}

type diagnostic struct {
	name, description string
	value             func(c *Channels) hcx.Field
}

// diagnostics returns the diagnostics the reaction provides.
func (p Pair) diagnostics() []diagnostic {
	a, i := p.Atom.String(), p.Ion.String()
	if p.SameIsotope() {
		return []diagnostic{
			{
				name:        "F" + a + i + "+_cx",
				description: "Net momentum source for " + a + " atoms from charge exchange with " + i + "+ ions",
				value:       func(c *Channels) hcx.Field { return diff(c.IonMomentum, c.AtomMomentum) },
			},
			{
				name:        "E" + a + i + "+_cx",
				description: "Net energy source for " + a + " atoms from charge exchange with " + i + "+ ions",
				value:       func(c *Channels) hcx.Field { return diff(c.IonEnergy, c.AtomEnergy) },
			},
		}
	}
	return []diagnostic{
		{
			name:        "F" + a + i + "+_cx",
			description: "Momentum source for " + a + " atoms from charge exchange with " + i + "+ ions",
			value:       func(c *Channels) hcx.Field { return c.AtomMomentum.Negate() },
		},
		{
			name:        "F" + i + "+" + a + "_cx",
			description: "Momentum source for " + i + "+ ions from charge exchange with " + a + " atoms",
			value:       func(c *Channels) hcx.Field { return c.IonMomentum.Negate() },
		},
		{
			name:        "E" + a + i + "+_cx",
			description: "Energy source for " + a + " atoms from charge exchange with " + i + "+ ions",
			value:       func(c *Channels) hcx.Field { return c.AtomEnergy.Negate() },
		},
		{
			name:        "E" + i + "+" + a + "_cx",
			description: "Energy source for " + i + "+ ions from charge exchange with " + a + " atoms",
			value:       func(c *Channels) hcx.Field { return c.IonEnergy.Negate() },
		},
		// S is the loss of atoms of the first isotope, -R. The mirror
		// reaction's S diagnostic (for example Sdh+_cx for Shd+_cx) is also
		// -R of that reaction, so the two have the same sign. The gain of
		// the second isotope's atoms within this reaction is -S.
		{
			name:        "S" + a + i + "+_cx",
			description: "Particle source for " + a + " atoms from charge exchange with " + i + "+ ions (" + i + " atoms gain the negative)",
			value:       func(c *Channels) hcx.Field { return c.Rate.Negate() },
		},
	}
}

func diff(a, b hcx.Field) hcx.Field {
	o := a.Copy()
	o.Sub(b)
	return o
}

// DiagnosticNames returns the names of the diagnostics the reaction
// provides when Diagnose is true.
func (p Pair) DiagnosticNames() []string {
	d := p.diagnostics()
	names := make([]string, len(d))
	for i, dd := range d {
		names[i] = dd.name
	}
	return names
}

// New creates a charge exchange component for pair p. The normalisation
// is read from opts, and the boolean option "<section>.diagnose"
// (default false) controls whether diagnostics are registered in diag.
func New(p Pair, section string, opts hcx.Options, diag *hcx.Diagnostics) (*ChargeExchange, error) {
	norm, err := hcx.NewNormalization(opts)
	if err != nil {
		return nil, err
	}
	diagnose, err := hcx.OptionalBool(opts, section+".diagnose", false)
	if err != nil {
		return nil, err
	}
	c := &ChargeExchange{
		Pair:     p,
		Norm:     norm,
		Diagnose: diagnose,
		Log:      logrus.StandardLogger(),
		section:  section,
		diag:     diag,
	}
	if !diagnose {
		return c, nil
	}
	if diag == nil {
		return nil, fmt.Errorf("hydrogen: diagnostics requested for %s but there is no diagnostic store", section)
	}
	for _, d := range p.diagnostics() {
		if err := diag.Register(d.name, d.description, "normalised"); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Transform calculates the reaction for the current state and adds its
// sources to the four species involved. All four species must be present.
func (c *ChargeExchange) Transform(s *hcx.State) error {
	atom1, err := s.Species(c.Pair.Atom.Atom())
	if err != nil {
		return err
	}
	ion1, err := s.Species(c.Pair.Ion.Ion())
	if err != nil {
		return err
	}
	atom2, err := s.Species(c.Pair.Ion.Atom())
	if err != nil {
		return err
	}
	ion2, err := s.Species(c.Pair.Atom.Ion())
	if err != nil {
		return err
	}

	ch, err := CalculateRates(atom1, ion1, atom2, ion2, c.Norm)
	if err != nil {
		return err
	}
	if a := ch.Anomalies; a.Total() > 0 && c.Log != nil {
		c.Log.WithFields(logrus.Fields{
			"reaction":            c.Pair.Reaction(),
			"density floored":     a.Density,
			"temperature floored": a.Temperature,
			"below fit range":     a.Fit.Below,
			"above fit range":     a.Fit.Above,
		}).Warn("hydrogen: clamped charge exchange inputs")
	}

	if !c.Diagnose {
		return nil
	}
	for _, d := range c.Pair.diagnostics() {
		if err := c.diag.Set(d.name, d.value(ch)); err != nil {
			return err
		}
	}
	return nil
}
