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

import "fmt"

// DiagnosticInfo describes a registered diagnostic field.
type DiagnosticInfo struct {
	Name, Description, Units string
}

// Diagnostics stores named fields that components publish for output.
// Names are unique across all components.
type Diagnostics struct {
	info   []DiagnosticInfo
	fields map[string]Field
}

// NewDiagnostics returns an empty diagnostic store.
func NewDiagnostics() *Diagnostics {
	return &Diagnostics{fields: make(map[string]Field)}
}

// Register declares a diagnostic. Each name may only be registered once.
func (d *Diagnostics) Register(name, description, units string) error {
	if _, ok := d.fields[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateDiagnostic, name)
	}
	d.fields[name] = nil
	d.info = append(d.info, DiagnosticInfo{Name: name, Description: description, Units: units})
	return nil
}

// Set stores a copy of v under name, replacing the previous value.
func (d *Diagnostics) Set(name string, v Field) error {
	if _, ok := d.fields[name]; !ok {
		return fmt.Errorf("hcx: diagnostic %s has not been registered", name)
	}
	d.fields[name] = v.Copy()
	return nil
}

// Get returns the most recent value of the named diagnostic. The value is
// nil until the first Set.
func (d *Diagnostics) Get(name string) (Field, bool) {
	v, ok := d.fields[name]
	return v, ok
}

// Info returns the registered diagnostics in registration order.
func (d *Diagnostics) Info() []DiagnosticInfo { return d.info }

// Names returns the registered diagnostic names in registration order.
func (d *Diagnostics) Names() []string {
	names := make([]string, len(d.info))
	for i, in := range d.info {
		names[i] = in.Name
	}
	return names
}
