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

package hcxutil

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/lnashier/viper"
	"github.com/plasmasim/hcx"
	"github.com/spf13/cast"
)

// checkOutputVars removes end lines and expands environment
// variables in the output variables.
func checkOutputVars(vars map[string]string) (map[string]string, error) {
	o := make(map[string]string, len(vars))
	for k, v := range vars {
		v = strings.Replace(v, "\r\n", " ", -1)
		v = strings.Replace(v, "\n", " ", -1)
		k = os.ExpandEnv(k)
		if k == "" {
			return nil, fmt.Errorf("hcx: output variable with expression %q has no name", v)
		}
		o[k] = os.ExpandEnv(v)
	}
	return o, nil
}

// expandStringSlice expands the environment variables in a slice of strings.
func expandStringSlice(s []string) []string {
	for i := 0; i < len(s); i++ {
		s[i] = os.ExpandEnv(s[i])
	}
	return s
}

// checkOutputFile expands any environment variables in the output file
// path and makes sure its directory exists. An empty path means that no
// output is saved.
func checkOutputFile(f string) (string, error) {
	if f == "" {
		return "", nil
	}
	f = os.ExpandEnv(f)
	outdir := filepath.Dir(f)
	if _, err := os.Stat(outdir); err != nil {
		return f, fmt.Errorf("hcx: the OutputFile directory doesn't exist: %v", err)
	}
	return f, nil
}

// stringMap returns the map stored under key in cfg. When the map was set
// on the command line it arrives as a JSON object, which is decoded here.
func stringMap(cfg *viper.Viper, key string) (map[string]string, error) {
	switch v := cfg.Get(key).(type) {
	case nil:
		return map[string]string{}, nil
	case map[string]string:
		return v, nil
	case map[string]interface{}:
		o, err := cast.ToStringMapStringE(v)
		if err != nil {
			return nil, fmt.Errorf("hcx: %s: %v", key, err)
		}
		return o, nil
	case string:
		o := make(map[string]string)
		if strings.TrimSpace(v) == "" {
			return o, nil
		}
		if err := json.NewDecoder(strings.NewReader(v)).Decode(&o); err != nil {
			return nil, fmt.Errorf("hcx: %s must be a JSON object of names and expressions: %v", key, err)
		}
		return o, nil
	default:
		return nil, fmt.Errorf("hcx: %s has invalid type %T", key, v)
	}
}

// SpeciesConfig holds the initial profiles of one species. Profiles with
// a single value are applied at every point.
type SpeciesConfig struct {
	Name        string
	AA          float64
	Density     []float64
	Velocity    []float64
	Temperature []float64
}

// StateConfig is the layout of the state file.
type StateConfig struct {
	// Points is the number of mesh points.
	Points  int
	Species []SpeciesConfig
}

func profile(name, variable string, v []float64, n int, def float64) (hcx.Field, error) {
	switch len(v) {
	case 0:
		return hcx.UniformField(n, def), nil
	case 1:
		return hcx.UniformField(n, v[0]), nil
	case n:
		return hcx.Field(append([]float64{}, v...)), nil
	}
	return nil, fmt.Errorf("hcx: species %s %s has %d values but there are %d points", name, variable, len(v), n)
}

// NewState creates a state from the configuration.
func (c *StateConfig) NewState() (*hcx.State, error) {
	if c.Points < 1 {
		return nil, fmt.Errorf("hcx: state must have at least one point, has %d", c.Points)
	}
	s := hcx.NewState(c.Points)
	for _, sc := range c.Species {
		if sc.Name == "" {
			return nil, fmt.Errorf("hcx: state file contains a species with no name")
		}
		if s.Has(sc.Name) {
			return nil, fmt.Errorf("hcx: species %s is defined twice", sc.Name)
		}
		if !(sc.AA > 0) {
			return nil, fmt.Errorf("hcx: species %s must have a positive AA", sc.Name)
		}
		if len(sc.Density) == 0 || len(sc.Temperature) == 0 {
			return nil, fmt.Errorf("hcx: species %s needs a Density and a Temperature", sc.Name)
		}
		sp := &hcx.Species{Name: sc.Name, AA: sc.AA}
		var err error
		if sp.Density, err = profile(sc.Name, "Density", sc.Density, c.Points, 0); err != nil {
			return nil, err
		}
		if sp.Velocity, err = profile(sc.Name, "Velocity", sc.Velocity, c.Points, 0); err != nil {
			return nil, err
		}
		if sp.Temperature, err = profile(sc.Name, "Temperature", sc.Temperature, c.Points, 0); err != nil {
			return nil, err
		}
		if err := s.Add(sp); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// LoadState reads the state file at path, which can include
// environment variables. Files ending in ".gob" are checkpoints written by
// a previous run; all others are read as TOML.
func LoadState(path string) (*hcx.State, error) {
	if path == "" {
		return nil, fmt.Errorf("hcx: you need to specify a StateFile")
	}
	path = os.ExpandEnv(path)
	if filepath.Ext(path) == ".gob" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("hcx: reading state file: %v", err)
		}
		defer f.Close()
		sim := new(hcx.Simulation)
		if err := hcx.Load(f)(sim); err != nil {
			return nil, err
		}
		return sim.State, nil
	}
	var c StateConfig
	md, err := toml.DecodeFile(path, &c)
	if err != nil {
		return nil, fmt.Errorf("hcx: reading state file: %v", err)
	}
	if u := md.Undecoded(); len(u) > 0 {
		return nil, fmt.Errorf("hcx: unknown keys in state file: %v", u)
	}
	return c.NewState()
}
