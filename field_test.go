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

func different(a, b, tolerance float64) bool {
	if 2*math.Abs(a-b)/math.Abs(a+b) > tolerance || math.IsNaN(a) || math.IsNaN(b) {
		return true
	}
	return false
}

func TestFieldArithmetic(t *testing.T) {
	f := Field{1, 2, 3}
	if err := f.Add(Field{1, 1, 1}); err != nil {
		t.Fatal(err)
	}
	if err := f.Mul(Field{2, 2, 2}); err != nil {
		t.Fatal(err)
	}
	if err := f.Sub(Field{1, 1, 1}); err != nil {
		t.Fatal(err)
	}
	f.Scale(0.5)
	want := Field{1.5, 2.5, 3.5}
	for i := range f {
		if f[i] != want[i] {
			t.Errorf("point %d: have %g, want %g", i, f[i], want[i])
		}
	}
	if s := f.Sum(); s != 7.5 {
		t.Errorf("sum: have %g, want 7.5", s)
	}
	n := f.Negate()
	if n[0] != -1.5 || f[0] != 1.5 {
		t.Errorf("negate: have %v from %v", n, f)
	}
	if err := f.Add(Field{1}); !errors.Is(err, ErrGridMismatch) {
		t.Errorf("want grid mismatch, have %v", err)
	}
}

func TestFieldFloor(t *testing.T) {
	f := Field{-1, 0, 1e-6, 1, math.NaN(), math.Inf(1), math.Inf(-1)}
	o, n := f.Floor(1e-5)
	if n != 6 {
		t.Errorf("have %d values floored, want 6", n)
	}
	want := Field{1e-5, 1e-5, 1e-5, 1, 1e-5, 1e-5, 1e-5}
	for i := range o {
		if o[i] != want[i] {
			t.Errorf("point %d: have %g, want %g", i, o[i], want[i])
		}
	}
	if !o.AllFinite() || f.AllFinite() {
		t.Error("floor should not modify the original field")
	}
}
