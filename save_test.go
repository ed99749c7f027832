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
	"bytes"
	"testing"
)

func TestSaveLoad(t *testing.T) {
	sim := &Simulation{State: twoSpeciesState(t), Dt: 1}
	a, _ := sim.State.Species("a")
	a.Velocity[1] = 0.25
	a.AddDensitySource(Field{1, 2})

	buf := new(bytes.Buffer)
	if err := Save(buf)(sim); err != nil {
		t.Fatal(err)
	}
	loaded := &Simulation{InitFuncs: []DomainManipulator{Load(buf)}}
	if err := loaded.Init(); err != nil {
		t.Fatal(err)
	}
	if loaded.State.N != 2 || len(loaded.State.Names()) != 2 {
		t.Fatalf("loaded state: %+v", loaded.State)
	}
	la, err := loaded.State.Species("a")
	if err != nil {
		t.Fatal(err)
	}
	if la.Velocity[1] != 0.25 || la.DensitySource[1] != 2 || la.AA != 1 {
		t.Errorf("loaded species: %+v", la)
	}

	if err := Load(bytes.NewBufferString("not a state"))(loaded); err == nil {
		t.Error("want error for invalid input")
	}
}
