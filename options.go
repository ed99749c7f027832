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
	"strings"

	"github.com/spf13/cast"
)

// Options gives components read access to configuration values.
// Keys are dotted paths such as "units.eV" or "cx_hd.diagnose".
// A *viper.Viper satisfies this interface.
type Options interface {
	Get(key string) interface{}
	IsSet(key string) bool
}

// MapOptions is an Options backed by a flat map of dotted keys.
// Key lookup is case-insensitive.
type MapOptions map[string]interface{}

func (m MapOptions) lookup(key string) (interface{}, bool) {
	if v, ok := m[key]; ok {
		return v, true
	}
	for k, v := range m {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}
	return nil, false
}

// Get returns the value stored under key, or nil.
func (m MapOptions) Get(key string) interface{} {
	v, _ := m.lookup(key)
	return v
}

// IsSet reports whether key is present.
func (m MapOptions) IsSet(key string) bool {
	_, ok := m.lookup(key)
	return ok
}

// RequiredFloat returns the numeric option stored under key. A missing
// option or one that cannot be converted to a number is an error wrapping
// ErrMissingConfiguration.
func RequiredFloat(opts Options, key string) (float64, error) {
	if !opts.IsSet(key) {
		return 0, fmt.Errorf("%w: option %s is not set", ErrMissingConfiguration, key)
	}
	v, err := cast.ToFloat64E(opts.Get(key))
	if err != nil {
		return 0, fmt.Errorf("%w: option %s: %v", ErrMissingConfiguration, key, err)
	}
	return v, nil
}

// OptionalBool returns the boolean option stored under key, or def if
// the option is not set.
func OptionalBool(opts Options, key string, def bool) (bool, error) {
	if !opts.IsSet(key) {
		return def, nil
	}
	v, err := cast.ToBoolE(opts.Get(key))
	if err != nil {
		return false, fmt.Errorf("%w: option %s: %v", ErrMissingConfiguration, key, err)
	}
	return v, nil
}
