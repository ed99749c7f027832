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
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ctessum/cdf"
)

func TestOutputter(t *testing.T) {
	dir, err := ioutil.TempDir("", "hcx_output")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)
	fileName := filepath.Join(dir, "out.ncf")

	o, err := NewOutputter(fileName, map[string]string{
		"ratio":   "[Sab_cx] / [a.density]",
		"scaled":  "abs([b.density_source]) * 2",
		"logDens": "log(exp([a.density]))",
	}, nil)
	if err != nil {
		t.Fatal(err)
	}

	sim := &Simulation{
		State: twoSpeciesState(t),
		Dt:    0.5,
		InitFuncs: []DomainManipulator{
			func(s *Simulation) error {
				return s.Diagnostics.Register("Sab_cx", "a to b transfer", "normalised")
			},
			o.CheckOutputVars(),
		},
		RunFuncs: []DomainManipulator{
			ResetSources(),
			Transforms(transfer{from: "a", to: "b", rate: 0.2}),
			func(s *Simulation) error {
				return s.Diagnostics.Set("Sab_cx", UniformField(s.State.N, -0.2))
			},
			Relax(),
			o.Output(),
			ConvergenceCheck(2, 0, 0),
		},
	}
	if err := sim.Init(); err != nil {
		t.Fatal(err)
	}
	if err := sim.Run(); err != nil {
		t.Fatal(err)
	}
	if err := o.Close(); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(fileName)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cf, err := cdf.Open(f)
	if err != nil {
		t.Fatal(err)
	}
	vars := strings.Join(cf.Header.Variables(), ",")
	if vars != "Sab_cx,logDens,ratio,scaled" {
		t.Errorf("variables: %s", vars)
	}
	if d := cf.Header.GetAttribute("Sab_cx", "description"); d != "a to b transfer" {
		t.Errorf("description: %v", d)
	}

	read := func(v string, rec int) []float64 {
		r := cf.Reader(v, []int{rec, 0}, []int{rec, 1})
		data := make([]float64, 2)
		if _, err := r.Read(data); err != nil && err.Error() != "EOF" {
			t.Fatalf("reading %s record %d: %v", v, rec, err)
		}
		return data
	}
	// Density of a is 0.9 after the first step and 0.8 after the second.
	for rec, dens := range []float64{0.9, 0.8} {
		for i, v := range read("ratio", rec) {
			if different(v, -0.2/dens, 1e-12) {
				t.Errorf("ratio record %d point %d: have %g, want %g", rec, i, v, -0.2/dens)
			}
		}
		for i, v := range read("logDens", rec) {
			if different(v, dens, 1e-12) {
				t.Errorf("logDens record %d point %d: have %g, want %g", rec, i, v, dens)
			}
		}
		for i, v := range read("scaled", rec) {
			if different(v, 0.4, 1e-12) {
				t.Errorf("scaled record %d point %d: have %g, want 0.4", rec, i, v)
			}
		}
		for i, v := range read("Sab_cx", rec) {
			if v != -0.2 {
				t.Errorf("Sab_cx record %d point %d: have %g", rec, i, v)
			}
		}
	}
}

func TestOutputterInvalid(t *testing.T) {
	if _, err := NewOutputter("x.ncf", map[string]string{"bad": "(a +"}, nil); err == nil {
		t.Error("want error for invalid expression")
	}

	o, err := NewOutputter(filepath.Join(os.TempDir(), "hcx_invalid.ncf"),
		map[string]string{"x": "[c.density] * 2"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	sim := &Simulation{State: twoSpeciesState(t), InitFuncs: []DomainManipulator{o.CheckOutputVars()}}
	if err := sim.Init(); !errors.Is(err, ErrMissingSpecies) {
		t.Errorf("want missing species error, have %v", err)
	}

	o, err = NewOutputter(filepath.Join(os.TempDir(), "hcx_invalid.ncf"),
		map[string]string{"x": "[a.pressure]"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	sim = &Simulation{State: twoSpeciesState(t), InitFuncs: []DomainManipulator{o.CheckOutputVars()}}
	if err := sim.Init(); err == nil || !strings.Contains(err.Error(), "unknown model variable") {
		t.Errorf("want unknown variable error, have %v", err)
	}
}
