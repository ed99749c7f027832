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
	"encoding/gob"
	"fmt"
	"io"
)

// checkpoint is the saved form of a State.
type checkpoint struct {
	N       int
	Species []*Species
}

// Save returns a function that saves the species in the simulation
// state to w, so that a later run can start from them.
func Save(w io.Writer) DomainManipulator {
	return func(s *Simulation) error {
		c := checkpoint{N: s.State.N}
		for _, name := range s.State.Names() {
			sp, _ := s.State.Species(name)
			c.Species = append(c.Species, sp)
		}
		if err := gob.NewEncoder(w).Encode(c); err != nil {
			return fmt.Errorf("hcx: saving state: %v", err)
		}
		return nil
	}
}

// Load returns a function that replaces the simulation state with one
// previously written by Save.
func Load(r io.Reader) DomainManipulator {
	return func(s *Simulation) error {
		var c checkpoint
		if err := gob.NewDecoder(r).Decode(&c); err != nil {
			return fmt.Errorf("hcx: loading state: %v", err)
		}
		st := NewState(c.N)
		for _, sp := range c.Species {
			if err := st.Add(sp); err != nil {
				return fmt.Errorf("hcx: loading state: %w", err)
			}
		}
		s.State = st
		return nil
	}
}
