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
	"sort"
	"strings"
)

// Component is a piece of physics that adds its contribution to the
// species sources of a State.
type Component interface {
	Transform(s *State) error
}

// Factory creates a component. section is the name the component was
// requested under; it is also the prefix of the component's own options.
type Factory func(section string, opts Options, diag *Diagnostics) (Component, error)

type registration struct {
	description string
	factory     Factory
}

// Registry maps component names to factories. Registries are filled
// explicitly by the packages that provide components.
type Registry struct {
	entries map[string]registration
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]registration)}
}

// Register adds a factory under name. Registering a name twice is an error.
func (r *Registry) Register(name, description string, f Factory) error {
	if _, ok := r.entries[name]; ok {
		return fmt.Errorf("hcx: component %s is already registered", name)
	}
	r.entries[name] = registration{description: description, factory: f}
	return nil
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.entries))
	for n := range r.entries {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Description returns the description given when name was registered.
func (r *Registry) Description(name string) string {
	return r.entries[name].description
}

// New creates the component registered under name.
func (r *Registry) New(name string, opts Options, diag *Diagnostics) (Component, error) {
	e, ok := r.entries[name]
	if !ok {
		return nil, fmt.Errorf("hcx: invalid component %s; valid options are %s",
			name, strings.Join(r.Names(), ", "))
	}
	return e.factory(name, opts, diag)
}

// NewAll creates the named components in order.
func (r *Registry) NewAll(names []string, opts Options, diag *Diagnostics) ([]Component, error) {
	c := make([]Component, len(names))
	for i, n := range names {
		var err error
		if c[i], err = r.New(n, opts, diag); err != nil {
			return nil, err
		}
	}
	return c, nil
}
