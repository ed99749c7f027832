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
	"math"
	"testing"
)

func TestNewNormalization(t *testing.T) {
	n, err := NewNormalization(MapOptions{
		"units.eV":               "50",
		"units.inv_meters_cubed": 1e19,
		"units.seconds":          1e-6,
	})
	if err != nil {
		t.Fatal(err)
	}
	if n.Tnorm != 50 || n.Nnorm != 1e19 {
		t.Errorf("have %+v", n)
	}
	if different(n.FreqNorm, 1e6, 1e-14) {
		t.Errorf("frequency: have %g, want 1e6", n.FreqNorm)
	}
	if different(n.RateFactor, 1e7, 1e-14) {
		t.Errorf("rate factor: have %g, want 1e7", n.RateFactor)
	}
}

func TestNewNormalizationInvalid(t *testing.T) {
	valid := func() MapOptions {
		return MapOptions{
			"units.eV":               1.,
			"units.inv_meters_cubed": 1.,
			"units.seconds":          1.,
		}
	}
	for name, change := range map[string]func(MapOptions){
		"missing":  func(o MapOptions) { delete(o, "units.seconds") },
		"text":     func(o MapOptions) { o["units.eV"] = "hot" },
		"zero":     func(o MapOptions) { o["units.inv_meters_cubed"] = 0 },
		"negative": func(o MapOptions) { o["units.eV"] = -1. },
		"infinite": func(o MapOptions) { o["units.seconds"] = math.Inf(1) },
		"nan":      func(o MapOptions) { o["units.seconds"] = math.NaN() },
	} {
		t.Run(name, func(t *testing.T) {
			o := valid()
			change(o)
			if _, err := NewNormalization(o); !errors.Is(err, ErrMissingConfiguration) {
				t.Errorf("want missing configuration error, have %v", err)
			}
		})
	}
}

func TestMapOptionsCase(t *testing.T) {
	o := MapOptions{"Units.EV": 3}
	if !o.IsSet("units.eV") || o.Get("units.ev") != 3 {
		t.Error("lookup should be case-insensitive")
	}
	b, err := OptionalBool(o, "cx.diagnose", true)
	if err != nil || !b {
		t.Errorf("default: have %v, %v", b, err)
	}
}
