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

import "github.com/plasmasim/hcx"

// RegisterAll adds a component for each of the nine isotope pairs to r,
// under the names returned by Pair.Section.
func RegisterAll(r *hcx.Registry) error {
	for _, p := range Pairs() {
		p := p
		f := func(section string, opts hcx.Options, diag *hcx.Diagnostics) (hcx.Component, error) {
			c, err := New(p, section, opts, diag)
			if err != nil {
				return nil, err
			}
			return c, nil
		}
		if err := r.Register(p.Section(), p.Reaction(), f); err != nil {
			return err
		}
	}
	return nil
}
