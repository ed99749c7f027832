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
	"sort"
)

// Species holds the fluid moments of one particle population and the
// source terms that components accumulate into during a timestep.
// All quantities are normalised.
type Species struct {
	// Name is the species symbol, for example "d" or "d+".
	Name string

	// AA is the atomic mass number, in units of the proton mass.
	AA float64

	Density     Field
	Velocity    Field // parallel flow velocity
	Temperature Field

	DensitySource  Field
	MomentumSource Field
	EnergySource   Field // total (thermal + kinetic) energy density source
}

// Len returns the number of mesh points the species is defined on.
func (s *Species) Len() int { return len(s.Density) }

// Validate checks that all moments are defined on the same mesh.
func (s *Species) Validate() error {
	n := len(s.Density)
	for name, f := range map[string]Field{
		"velocity": s.Velocity, "temperature": s.Temperature,
	} {
		if len(f) != n {
			return fmt.Errorf("hcx: species %s %s: %w: %d != %d",
				s.Name, name, ErrGridMismatch, len(f), n)
		}
	}
	for name, f := range map[string]Field{
		"density source": s.DensitySource, "momentum source": s.MomentumSource,
		"energy source": s.EnergySource,
	} {
		if f != nil && len(f) != n {
			return fmt.Errorf("hcx: species %s %s: %w: %d != %d",
				s.Name, name, ErrGridMismatch, len(f), n)
		}
	}
	return nil
}

func accumulate(dst *Field, n int, v Field, sign float64) error {
	if *dst == nil {
		*dst = NewField(n)
	}
	if err := checkLen(*dst, v); err != nil {
		return err
	}
	for i, x := range v {
		(*dst)[i] += sign * x
	}
	return nil
}

// AddDensitySource adds v to the density source.
func (s *Species) AddDensitySource(v Field) error {
	return accumulate(&s.DensitySource, s.Len(), v, 1)
}

// SubDensitySource subtracts v from the density source.
func (s *Species) SubDensitySource(v Field) error {
	return accumulate(&s.DensitySource, s.Len(), v, -1)
}

// AddMomentumSource adds v to the momentum source.
func (s *Species) AddMomentumSource(v Field) error {
	return accumulate(&s.MomentumSource, s.Len(), v, 1)
}

// SubMomentumSource subtracts v from the momentum source.
func (s *Species) SubMomentumSource(v Field) error {
	return accumulate(&s.MomentumSource, s.Len(), v, -1)
}

// AddEnergySource adds v to the energy source.
func (s *Species) AddEnergySource(v Field) error {
	return accumulate(&s.EnergySource, s.Len(), v, 1)
}

// SubEnergySource subtracts v from the energy source.
func (s *Species) SubEnergySource(v Field) error {
	return accumulate(&s.EnergySource, s.Len(), v, -1)
}

// ResetSources sets all source terms to zero.
func (s *Species) ResetSources() {
	n := s.Len()
	s.DensitySource = NewField(n)
	s.MomentumSource = NewField(n)
	s.EnergySource = NewField(n)
}

// State is the collection of species on a mesh with N points.
type State struct {
	N       int
	species map[string]*Species
}

// NewState returns an empty state for a mesh with n points.
func NewState(n int) *State {
	return &State{N: n, species: make(map[string]*Species)}
}

// Add adds a species to the state, replacing any existing species
// with the same name. Missing source fields are allocated.
func (st *State) Add(s *Species) error {
	if s.Len() != st.N {
		return fmt.Errorf("hcx: species %s density: %w: %d != %d",
			s.Name, ErrGridMismatch, s.Len(), st.N)
	}
	if s.Velocity == nil {
		s.Velocity = NewField(st.N)
	}
	if err := s.Validate(); err != nil {
		return err
	}
	if s.DensitySource == nil {
		s.DensitySource = NewField(st.N)
	}
	if s.MomentumSource == nil {
		s.MomentumSource = NewField(st.N)
	}
	if s.EnergySource == nil {
		s.EnergySource = NewField(st.N)
	}
	st.species[s.Name] = s
	return nil
}

// Species returns the species with the given name.
func (st *State) Species(name string) (*Species, error) {
	s, ok := st.species[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingSpecies, name)
	}
	return s, nil
}

// Has reports whether the state contains the named species.
func (st *State) Has(name string) bool {
	_, ok := st.species[name]
	return ok
}

// Names returns the species names in sorted order.
func (st *State) Names() []string {
	names := make([]string, 0, len(st.species))
	for n := range st.species {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ResetSources zeroes the sources of every species.
func (st *State) ResetSources() {
	for _, s := range st.species {
		s.ResetSources()
	}
}
