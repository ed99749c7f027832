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

import "errors"

// Errors that cause a simulation to stop. Callers can test for them with
// errors.Is; the returned errors wrap these with the name of the offending
// option, species or diagnostic.
var (
	// ErrMissingConfiguration is returned when a required option is absent
	// or cannot be interpreted.
	ErrMissingConfiguration = errors.New("hcx: missing or invalid configuration")

	// ErrMissingSpecies is returned when a component needs a species that
	// the state does not contain.
	ErrMissingSpecies = errors.New("hcx: missing species")

	// ErrGridMismatch is returned when two fields that should be defined on
	// the same grid have different lengths.
	ErrGridMismatch = errors.New("hcx: field lengths do not match")

	// ErrDuplicateDiagnostic is returned when two components register the
	// same diagnostic name.
	ErrDuplicateDiagnostic = errors.New("hcx: duplicate diagnostic")

	// ErrInconsistentMass is returned when an atom and the ion of the same
	// isotope are given different masses.
	ErrInconsistentMass = errors.New("hcx: inconsistent species mass")
)
