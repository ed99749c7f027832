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
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"text/tabwriter"

	"github.com/plasmasim/hcx"
	"github.com/plasmasim/hcx/science/chargeexchange/hydrogen"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Registry returns a component registry holding all of the charge exchange
// reactions.
func Registry() (*hcx.Registry, error) {
	r := hcx.NewRegistry()
	if err := hydrogen.RegisterAll(r); err != nil {
		return nil, err
	}
	return r, nil
}

// Run runs the model.
//
// state holds the initial species profiles, and components names the
// reactions to include. Component options, including the normalisation,
// are read from opts.
//
// OutputFile is the path to the NetCDF output file, or empty for no
// output. OutputVariables maps the names of derived output variables to
// the expressions used to calculate them.
//
// CheckpointFile is the path where the final state is saved, or empty
// to not save it.
//
// NumIterations is the number of relaxation steps to run. If < 1, the run
// continues until the species energies converge. dt is the length of each
// step.
func Run(state *hcx.State, components []string, opts hcx.Options, OutputFile string,
	OutputVariables map[string]string, CheckpointFile string, NumIterations int, dt float64,
	log logrus.FieldLogger) error {

	r, err := Registry()
	if err != nil {
		return err
	}
	diag := hcx.NewDiagnostics()
	c, err := r.NewAll(components, opts, diag)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"components": len(c),
		"species":    state.Names(),
		"points":     state.N,
	}).Info("hcx: initialized")

	sim := &hcx.Simulation{
		State:       state,
		Diagnostics: diag,
		Dt:          dt,
		Log:         log,
	}
	sim.RunFuncs = []hcx.DomainManipulator{
		hcx.ResetSources(),
		hcx.Transforms(c...),
	}

	var o *hcx.Outputter
	if OutputFile != "" {
		o, err = hcx.NewOutputter(OutputFile, OutputVariables, nil)
		if err != nil {
			return err
		}
		sim.InitFuncs = append(sim.InitFuncs, o.CheckOutputVars())
		sim.RunFuncs = append(sim.RunFuncs, o.Output())
		defer o.Close()
	}
	sim.RunFuncs = append(sim.RunFuncs,
		hcx.Relax(),
		hcx.Log(log),
		hcx.ConvergenceCheck(NumIterations, 1.e-6, 10),
	)

	if err := sim.Init(); err != nil {
		return err
	}
	if err := sim.Run(); err != nil {
		return err
	}
	if o != nil {
		if err := o.Close(); err != nil {
			return err
		}
	}
	if CheckpointFile != "" {
		f, err := os.Create(CheckpointFile)
		if err != nil {
			return fmt.Errorf("hcx: creating checkpoint file: %v", err)
		}
		defer f.Close()
		if err := hcx.Save(f)(sim); err != nil {
			return err
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("hcx: writing checkpoint file: %v", err)
		}
	}
	log.Info("hcx: simulation complete")
	return nil
}

// rateCurve returns n temperatures logarithmically spaced between tMin
// and tMax [eV], the matching effective temperatures of reaction p with
// atoms and ions at the same temperature, and the rate coefficients
// [cm^3/s].
func rateCurve(p hydrogen.Pair, tMin, tMax float64, n int) (t, teff, sv []float64, err error) {
	if !(tMin > 0) || !(tMax >= tMin) || n < 1 {
		return nil, nil, nil, fmt.Errorf("hcx: invalid rate table range [%g, %g] with %d points", tMin, tMax, n)
	}
	t = make([]float64, n)
	lo, hi := math.Log(tMin), math.Log(tMax)
	for i := range t {
		x := lo
		if n > 1 {
			x += (hi - lo) * float64(i) / float64(n-1)
		}
		t[i] = math.Exp(x)
	}
	teff, err = hydrogen.EffectiveTemperature(p.Atom.Mass(), t, p.Ion.Mass(), t, hydrogen.FitReferenceMass)
	if err != nil {
		return nil, nil, nil, err
	}
	sv = make([]float64, n)
	for i, te := range teff {
		sv[i] = hydrogen.SigmaV(te)
	}
	return t, teff, sv, nil
}

// RateTable writes the rate coefficient of reaction p at n temperatures
// logarithmically spaced between tMin and tMax [eV], with the atoms and
// ions at the same temperature.
func RateTable(w io.Writer, p hydrogen.Pair, tMin, tMax float64, n int) error {
	t, teff, sv, err := rateCurve(p, tMin, tMax, n)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintf(tw, "# %s\n", p.Reaction())
	fmt.Fprintln(tw, "T [eV]\tTeff [eV]\t<σv> [cm^3/s]\t")
	for i := range t {
		fmt.Fprintf(tw, "%.4g\t%.4g\t%.5e\t\n", t[i], teff[i], sv[i])
	}
	return tw.Flush()
}

// RatePlot saves a log-log plot of the same curve as RateTable to
// fileName. The image format is chosen from the file extension, for
// example ".png" or ".svg".
func RatePlot(fileName string, p hydrogen.Pair, tMin, tMax float64, n int) error {
	t, _, sv, err := rateCurve(p, tMin, tMax, n)
	if err != nil {
		return err
	}
	pl, err := plot.New()
	if err != nil {
		return fmt.Errorf("hcx: creating rate plot: %v", err)
	}
	pl.Title.Text = p.Reaction()
	pl.X.Label.Text = "T (eV)"
	pl.Y.Label.Text = "<σv> (cm³/s)"
	pl.X.Scale = plot.LogScale{}
	pl.X.Tick.Marker = plot.LogTicks{}
	pl.Y.Scale = plot.LogScale{}
	pl.Y.Tick.Marker = plot.LogTicks{}

	xy := make(plotter.XYs, len(t))
	for i := range t {
		xy[i].X = t[i]
		xy[i].Y = sv[i]
	}
	l, err := plotter.NewLine(xy)
	if err != nil {
		return fmt.Errorf("hcx: creating rate plot: %v", err)
	}
	l.Color = color.NRGBA{0, 0, 0, 255}
	l.Width = 0.4 * vg.Millimeter
	pl.Add(l)

	if err := pl.Save(4*vg.Inch, 3*vg.Inch, fileName); err != nil {
		return fmt.Errorf("hcx: saving rate plot: %v", err)
	}
	return nil
}
