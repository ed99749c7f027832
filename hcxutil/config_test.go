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
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lnashier/viper"
)

func TestLoadState(t *testing.T) {
	s, err := LoadState("testdata/state.toml")
	if err != nil {
		t.Fatal(err)
	}
	if s.N != 4 {
		t.Errorf("have %d points, want 4", s.N)
	}
	if names := strings.Join(s.Names(), ","); names != "d,d+,h,h+" {
		t.Errorf("species: %s", names)
	}
	h, _ := s.Species("h")
	if h.Temperature[3] != 0.05 || h.Density[2] != 0.4 || h.Velocity[1] != 0 {
		t.Errorf("h profiles: %+v", h)
	}
	dp, _ := s.Species("d+")
	if dp.AA != 2 || dp.Velocity[3] != -0.3 {
		t.Errorf("d+ profiles: %+v", dp)
	}
}

func TestLoadStateInvalid(t *testing.T) {
	dir, err := ioutil.TempDir("", "hcxutil")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	for name, contents := range map[string]string{
		"length":  "Points = 3\n[[Species]]\nName = \"h\"\nAA = 1.0\nDensity = [1.0, 2.0]\nTemperature = [1.0]\n",
		"twice":   "Points = 1\n[[Species]]\nName = \"h\"\nAA = 1.0\nDensity = [1.0]\nTemperature = [1.0]\n[[Species]]\nName = \"h\"\nAA = 1.0\nDensity = [1.0]\nTemperature = [1.0]\n",
		"mass":    "Points = 1\n[[Species]]\nName = \"h\"\nDensity = [1.0]\nTemperature = [1.0]\n",
		"unknown": "Points = 1\nPressure = 2.0\n",
		"points":  "Points = 0\n",
		"density": "Points = 1\n[[Species]]\nName = \"h\"\nAA = 1.0\nTemperature = [1.0]\n",
	} {
		t.Run(name, func(t *testing.T) {
			f := filepath.Join(dir, name+".toml")
			if err := ioutil.WriteFile(f, []byte(contents), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadState(f); err == nil {
				t.Error("want error")
			}
		})
	}
	if _, err := LoadState(""); err == nil {
		t.Error("want error for missing state file")
	}
	if _, err := LoadState(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("want error for nonexistent state file")
	}
}

func TestCheckOutputFile(t *testing.T) {
	if f, err := checkOutputFile(""); err != nil || f != "" {
		t.Errorf("empty output file: %q, %v", f, err)
	}
	if _, err := checkOutputFile("/this/directory/does/not/exist/out.ncf"); err == nil {
		t.Error("want error for missing directory")
	}
	vars, err := checkOutputVars(map[string]string{"x": "[a.density]\n* 2"})
	if err != nil || vars["x"] != "[a.density] * 2" {
		t.Errorf("output variables: %v, %v", vars, err)
	}
}

func TestStringMap(t *testing.T) {
	cfg := viper.New()
	for _, test := range []struct {
		name    string
		val     interface{}
		want    map[string]string
		wantErr bool
	}{
		{name: "unset", want: map[string]string{}},
		{name: "empty string", val: " ", want: map[string]string{}},
		{name: "json", val: `{"x":"[h.density] * 2"}`, want: map[string]string{"x": "[h.density] * 2"}},
		{name: "config file", val: map[string]interface{}{"x": "[h.density]"}, want: map[string]string{"x": "[h.density]"}},
		{name: "malformed json", val: `{"x":`, wantErr: true},
		{name: "wrong type", val: 3, wantErr: true},
	} {
		t.Run(test.name, func(t *testing.T) {
			if test.val != nil {
				cfg.Set("vars", test.val)
			}
			have, err := stringMap(cfg, "vars")
			if test.wantErr {
				if err == nil {
					t.Errorf("want error, have %v", have)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if len(have) != len(test.want) {
				t.Fatalf("have %v, want %v", have, test.want)
			}
			for k, v := range test.want {
				if have[k] != v {
					t.Errorf("%s: have %q, want %q", k, have[k], v)
				}
			}
		})
	}
}
