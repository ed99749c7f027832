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
	"os"
	"sort"

	"github.com/Knetic/govaluate"
	"github.com/ctessum/cdf"
)

// Suffixes of the species variables that output expressions can refer to,
// as in "[d+.density_source]".
var speciesVars = map[string]func(*Species) Field{
	"density":         func(s *Species) Field { return s.Density },
	"velocity":        func(s *Species) Field { return s.Velocity },
	"temperature":     func(s *Species) Field { return s.Temperature },
	"density_source":  func(s *Species) Field { return s.DensitySource },
	"momentum_source": func(s *Species) Field { return s.MomentumSource },
	"energy_source":   func(s *Species) Field { return s.EnergySource },
}

// Outputter writes diagnostics and derived output variables to a NetCDF
// file, adding one record each time its Output function runs.
//
// outputVariables maps the names of derived variables to expressions
// that define how they are calculated from diagnostics and species
// variables. Names that contain characters other than letters, digits and
// underscores must be enclosed in brackets, for example
// "[Shd+_cx] / [h.density]".
type Outputter struct {
	fileName        string
	outputVariables map[string]string
	outputFunctions map[string]govaluate.ExpressionFunction
	expressions     map[string]*govaluate.EvaluableExpression

	// variables written to the file, in order.
	names []string

	f      *os.File
	cf     *cdf.File
	record int
}

// NewOutputter initializes a new Outputter and adds a set of default
// output functions: 'exp(x)', 'log(x)', 'abs(x)' and 'sqrt(x)'.
func NewOutputter(fileName string, outputVariables map[string]string, outputFunctions map[string]govaluate.ExpressionFunction) (*Outputter, error) {
	oneArg := func(name string, f func(float64) float64) govaluate.ExpressionFunction {
		return func(arg ...interface{}) (interface{}, error) {
			if len(arg) != 1 {
				return nil, fmt.Errorf("hcx: got %d arguments for function '%s', but needs 1", len(arg), name)
			}
			x, ok := arg[0].(float64)
			if !ok {
				return nil, fmt.Errorf("hcx: invalid argument %v for function '%s'", arg[0], name)
			}
			return f(x), nil
		}
	}
	funcs := map[string]govaluate.ExpressionFunction{
		"exp":  oneArg("exp", math.Exp),
		"log":  oneArg("log", math.Log),
		"abs":  oneArg("abs", math.Abs),
		"sqrt": oneArg("sqrt", math.Sqrt),
	}
	for key, val := range outputFunctions {
		funcs[key] = val
	}

	o := &Outputter{
		fileName:        fileName,
		outputVariables: outputVariables,
		outputFunctions: funcs,
		expressions:     make(map[string]*govaluate.EvaluableExpression),
	}
	for name, expr := range outputVariables {
		e, err := govaluate.NewEvaluableExpressionWithFunctions(expr, funcs)
		if err != nil {
			return nil, fmt.Errorf("hcx: output variable %s: %v", name, err)
		}
		o.expressions[name] = e
	}
	return o, nil
}

// modelVar returns the field named v, which is either a diagnostic or a
// species variable.
func modelVar(s *Simulation, v string) (Field, error) {
	if f, ok := s.Diagnostics.Get(v); ok {
		if f == nil {
			return NewField(s.State.N), nil
		}
		return f, nil
	}
	for i := len(v) - 1; i > 0; i-- {
		if v[i] != '.' {
			continue
		}
		get, ok := speciesVars[v[i+1:]]
		if !ok {
			break
		}
		sp, err := s.State.Species(v[:i])
		if err != nil {
			return nil, fmt.Errorf("hcx: output variable %s: %w", v, err)
		}
		return get(sp), nil
	}
	return nil, fmt.Errorf("hcx: unknown model variable %s", v)
}

func (o *Outputter) outputNames() []string {
	names := make([]string, 0, len(o.outputVariables))
	for n := range o.outputVariables {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// CheckOutputVars ensures the output variables can be calculated and
// creates the output file. It must run after all components have been
// created so that their diagnostics are registered.
func (o *Outputter) CheckOutputVars() DomainManipulator {
	return func(s *Simulation) error {
		diag := s.Diagnostics.Names()
		seen := make(map[string]bool)
		for _, d := range diag {
			seen[d] = true
		}
		outNames := o.outputNames()
		for _, name := range outNames {
			if seen[name] {
				return fmt.Errorf("hcx: output variable name %s duplicates a diagnostic", name)
			}
			for _, v := range o.expressions[name].Vars() {
				if _, err := modelVar(s, v); err != nil {
					return err
				}
			}
		}
		o.names = append(append([]string{}, diag...), outNames...)

		h := cdf.NewHeader([]string{"time", "cell"}, []int{0, s.State.N})
		for _, in := range s.Diagnostics.Info() {
			h.AddVariable(in.Name, []string{"time", "cell"}, []float64{0})
			h.AddAttribute(in.Name, "description", in.Description)
			h.AddAttribute(in.Name, "units", in.Units)
		}
		for _, name := range outNames {
			h.AddVariable(name, []string{"time", "cell"}, []float64{0})
			h.AddAttribute(name, "description", o.outputVariables[name])
		}
		h.Define()
		if errs := h.Check(); len(errs) > 0 {
			return fmt.Errorf("hcx: invalid output file header: %v", errs)
		}

		var err error
		o.f, err = os.Create(o.fileName)
		if err != nil {
			return fmt.Errorf("hcx: creating output file: %v", err)
		}
		o.cf, err = cdf.Create(o.f, h)
		if err != nil {
			return fmt.Errorf("hcx: creating output file: %v", err)
		}
		return nil
	}
}

// Results calculates the current value of every output variable.
func (o *Outputter) Results(s *Simulation) (map[string]Field, error) {
	r := make(map[string]Field)
	for name, e := range o.expressions {
		vars := e.Vars()
		fields := make([]Field, len(vars))
		for i, v := range vars {
			var err error
			if fields[i], err = modelVar(s, v); err != nil {
				return nil, err
			}
		}
		out := NewField(s.State.N)
		params := make(map[string]interface{}, len(vars))
		for p := range out {
			for i, v := range vars {
				params[v] = fields[i][p]
			}
			val, err := e.Evaluate(params)
			if err != nil {
				return nil, fmt.Errorf("hcx: evaluating output variable %s: %v", name, err)
			}
			x, ok := val.(float64)
			if !ok {
				return nil, fmt.Errorf("hcx: output variable %s is not numeric", name)
			}
			out[p] = x
		}
		r[name] = out
	}
	return r, nil
}

// Output writes the current diagnostics and output variables as a new
// record in the output file.
func (o *Outputter) Output() DomainManipulator {
	return func(s *Simulation) error {
		if o.cf == nil {
			return fmt.Errorf("hcx: output file has not been created")
		}
		results, err := o.Results(s)
		if err != nil {
			return err
		}
		for _, name := range o.names {
			data, ok := results[name]
			if !ok {
				if data, err = modelVar(s, name); err != nil {
					return err
				}
			}
			w := o.cf.Writer(name, []int{o.record, 0}, nil)
			if _, err := w.Write([]float64(data)); err != nil {
				return fmt.Errorf("hcx: writing %s: %v", name, err)
			}
		}
		o.record++
		return nil
	}
}

// Close updates the record count in the output file and closes it.
// Calling Close more than once has no effect.
func (o *Outputter) Close() error {
	if o.f == nil {
		return nil
	}
	f := o.f
	o.f, o.cf = nil, nil
	if err := cdf.UpdateNumRecs(f); err != nil {
		f.Close()
		return fmt.Errorf("hcx: closing output file: %v", err)
	}
	return f.Close()
}
