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
	"math"

	"gonum.org/v1/gonum/floats"
)

// Field holds the value of one quantity at every point of the mesh.
// The mesh itself is owned by the host; a Field only knows how many
// points there are.
type Field []float64

// NewField returns a zero-valued field with n points.
func NewField(n int) Field { return make(Field, n) }

// UniformField returns a field with n points all equal to v.
func UniformField(n int, v float64) Field {
	f := make(Field, n)
	for i := range f {
		f[i] = v
	}
	return f
}

// Len returns the number of mesh points in f.
func (f Field) Len() int { return len(f) }

// Copy returns a copy of f.
func (f Field) Copy() Field {
	if f == nil {
		return nil
	}
	o := make(Field, len(f))
	copy(o, f)
	return o
}

func checkLen(a, b Field) error {
	if len(a) != len(b) {
		return fmt.Errorf("%w: %d != %d", ErrGridMismatch, len(a), len(b))
	}
	return nil
}

// Add adds o to f elementwise.
func (f Field) Add(o Field) error {
	if err := checkLen(f, o); err != nil {
		return err
	}
	floats.Add(f, o)
	return nil
}

// Sub subtracts o from f elementwise.
func (f Field) Sub(o Field) error {
	if err := checkLen(f, o); err != nil {
		return err
	}
	floats.Sub(f, o)
	return nil
}

// Mul multiplies f by o elementwise.
func (f Field) Mul(o Field) error {
	if err := checkLen(f, o); err != nil {
		return err
	}
	floats.Mul(f, o)
	return nil
}

// Scale multiplies every element of f by c.
func (f Field) Scale(c float64) { floats.Scale(c, f) }

// Negate returns -f as a new field.
func (f Field) Negate() Field {
	o := f.Copy()
	floats.Scale(-1, o)
	return o
}

// Floor returns a copy of f in which every value that is below min or is
// not finite is replaced by min, along with the number of values replaced.
func (f Field) Floor(min float64) (Field, int) {
	o := make(Field, len(f))
	n := 0
	for i, v := range f {
		if v < min || math.IsNaN(v) || math.IsInf(v, 0) {
			o[i] = min
			n++
			continue
		}
		o[i] = v
	}
	return o, n
}

// AllFinite reports whether f contains no NaN or infinite values.
func (f Field) AllFinite() bool {
	for _, v := range f {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Sum returns the sum of all values in f.
func (f Field) Sum() float64 { return floats.Sum(f) }
