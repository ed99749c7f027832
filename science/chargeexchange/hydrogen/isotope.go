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

import "fmt"

// Isotope is a hydrogen isotope.
type Isotope int

// The hydrogen isotopes.
const (
	H Isotope = iota // protium
	D                // deuterium
	T                // tritium
)

// Isotopes lists all isotopes in a fixed order.
var Isotopes = []Isotope{H, D, T}

var symbols = []string{H: "h", D: "d", T: "t"}

// String returns the species symbol of the isotope's atom: "h", "d" or "t".
func (i Isotope) String() string {
	if i < H || i > T {
		return fmt.Sprintf("Isotope(%d)", int(i))
	}
	return symbols[i]
}

// Mass returns the atomic mass number of the isotope.
func (i Isotope) Mass() float64 { return float64(i) + 1 }

// Atom returns the name of the neutral atom species.
func (i Isotope) Atom() string { return i.String() }

// Ion returns the name of the singly charged ion species.
func (i Isotope) Ion() string { return i.String() + "+" }

// ParseIsotope returns the isotope with the given symbol.
func ParseIsotope(s string) (Isotope, error) {
	for i, sym := range symbols {
		if s == sym {
			return Isotope(i), nil
		}
	}
	return 0, fmt.Errorf("hydrogen: invalid isotope %q; valid options are h, d, t", s)
}

// Pair identifies the reaction
//
//	atom(Atom) + ion(Ion) -> ion(Atom) + atom(Ion)
//
// in which an electron moves from the atom to the ion.
type Pair struct {
	Atom, Ion Isotope
}

// Pairs returns all nine ordered isotope pairs.
func Pairs() []Pair {
	p := make([]Pair, 0, len(Isotopes)*len(Isotopes))
	for _, a := range Isotopes {
		for _, i := range Isotopes {
			p = append(p, Pair{Atom: a, Ion: i})
		}
	}
	return p
}

// ParsePair parses a pair written as two isotope symbols, for example "hd".
func ParsePair(s string) (Pair, error) {
	if len(s) != 2 {
		return Pair{}, fmt.Errorf("hydrogen: invalid isotope pair %q", s)
	}
	a, err := ParseIsotope(s[:1])
	if err != nil {
		return Pair{}, err
	}
	i, err := ParseIsotope(s[1:])
	if err != nil {
		return Pair{}, err
	}
	return Pair{Atom: a, Ion: i}, nil
}

// SameIsotope reports whether the atom and ion are the same isotope, in
// which case the reaction exchanges momentum and energy but no particles.
func (p Pair) SameIsotope() bool { return p.Atom == p.Ion }

// Section returns the component name of the pair, for example "cx_hd".
func (p Pair) Section() string { return "cx_" + p.Atom.String() + p.Ion.String() }

// Reaction returns the reaction written out, for example "h + d+ -> h+ + d".
func (p Pair) Reaction() string {
	return fmt.Sprintf("%s + %s -> %s + %s", p.Atom.Atom(), p.Ion.Ion(), p.Atom.Ion(), p.Ion.Atom())
}

func (p Pair) String() string { return p.Atom.String() + p.Ion.String() }
