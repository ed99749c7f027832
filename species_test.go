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
	"errors"
	"testing"
)

func testSpecies(name string, aa float64, n int) *Species {
	return &Species{
		Name:        name,
		AA:          aa,
		Density:     UniformField(n, 1),
		Temperature: UniformField(n, 1),
	}
}

func TestStateSpecies(t *testing.T) {
	s := NewState(3)
	if err := s.Add(testSpecies("d", 2, 3)); err != nil {
		t.Fatal(err)
	}
	if err := s.Add(testSpecies("d+", 2, 2)); !errors.Is(err, ErrGridMismatch) {
		t.Errorf("want grid mismatch error, have %v", err)
	}
	d, err := s.Species("d")
	if err != nil {
		t.Fatal(err)
	}
	if d.Velocity.Len() != 3 || d.EnergySource.Len() != 3 {
		t.Error("velocity and sources should be allocated")
	}
	if _, err := s.Species("t"); !errors.Is(err, ErrMissingSpecies) {
		t.Errorf("want missing species error, have %v", err)
	}
	if !s.Has("d") || s.Has("t") {
		t.Error("Has")
	}
}

func TestSourcesAccumulate(t *testing.T) {
	s := testSpecies("h", 1, 2)
	if err := s.AddDensitySource(Field{1, 2}); err != nil {
		t.Fatal(err)
	}
	s.AddDensitySource(Field{1, 2})
	s.SubDensitySource(Field{0.5, 0.5})
	s.AddMomentumSource(Field{3, 3})
	s.SubEnergySource(Field{1, 1})
	if s.DensitySource[0] != 1.5 || s.DensitySource[1] != 3.5 {
		t.Errorf("density source: %v", s.DensitySource)
	}
	if s.MomentumSource[1] != 3 || s.EnergySource[1] != -1 {
		t.Errorf("momentum %v, energy %v", s.MomentumSource, s.EnergySource)
	}
	if err := s.AddEnergySource(Field{1}); !errors.Is(err, ErrGridMismatch) {
		t.Errorf("want grid mismatch error, have %v", err)
	}
	s.ResetSources()
	if s.DensitySource.Sum() != 0 || s.MomentumSource.Sum() != 0 || s.EnergySource.Sum() != 0 {
		t.Error("sources not reset")
	}
}
