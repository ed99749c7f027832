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
	"time"

	"github.com/sirupsen/logrus"
)

// ResetSources zeroes the species sources at the start of a timestep so
// that components can accumulate into them.
func ResetSources() DomainManipulator {
	return func(s *Simulation) error {
		s.State.ResetSources()
		return nil
	}
}

// Transforms runs each component on the simulation state. Components only
// add to the sources, so the result does not depend on their order.
func Transforms(components ...Component) DomainManipulator {
	return func(s *Simulation) error {
		for _, c := range components {
			if err := c.Transform(s.State); err != nil {
				return err
			}
		}
		return nil
	}
}

// Relax advances the species moments by one explicit step of length s.Dt
// using only the accumulated sources. There is no transport, so this
// is only useful for following the local relaxation of a mixture.
// Density, momentum (AA n v) and total energy (3/2 n T + 1/2 AA n v^2)
// are updated.
func Relax() DomainManipulator {
	return func(s *Simulation) error {
		for _, name := range s.State.Names() {
			sp, _ := s.State.Species(name)
			for i := range sp.Density {
				n := sp.Density[i]
				v := sp.Velocity[i]
				mom := sp.AA * n * v
				energy := 1.5*n*sp.Temperature[i] + 0.5*sp.AA*n*v*v

				n += s.Dt * sp.DensitySource[i]
				mom += s.Dt * sp.MomentumSource[i]
				energy += s.Dt * sp.EnergySource[i]
				if !(n > 0) {
					return fmt.Errorf("hcx: density of %s is %g at point %d after relaxation; reduce Dt",
						name, n, i)
				}
				v = mom / (sp.AA * n)
				sp.Density[i] = n
				sp.Velocity[i] = v
				sp.Temperature[i] = (energy - 0.5*sp.AA*n*v*v) / (1.5 * n)
			}
		}
		return nil
	}
}

func checkConvergence(l logrus.FieldLogger, newSum, oldSum, tolerance float64, name string) bool {
	bias := (newSum - oldSum) / oldSum
	l.WithFields(logrus.Fields{
		"species":    name,
		"difference": fmt.Sprintf("%3.2g%%", bias*100),
	}).Debug("total energy difference from last check")
	if math.Abs(bias) > tolerance || math.IsInf(bias, 0) || math.IsNaN(bias) {
		return false
	}
	return true
}

// ConvergenceCheck sets s.Done to true after numIterations iterations,
// or, if numIterations is zero, once the total thermal energy of every
// species changes by less than tolerance (relative) between checks made
// every checkPeriod iterations.
func ConvergenceCheck(numIterations int, tolerance float64, checkPeriod int) DomainManipulator {
	if checkPeriod < 1 {
		checkPeriod = 1
	}
	oldSum := make(map[string]float64)
	iteration := 0

	return func(s *Simulation) error {
		iteration++
		if numIterations > 0 {
			if iteration >= numIterations {
				s.Done = true
			}
			return nil
		}
		if iteration%checkPeriod != 0 {
			return nil
		}
		timeToQuit := true
		for _, name := range s.State.Names() {
			sp, _ := s.State.Species(name)
			var sum float64
			for i, n := range sp.Density {
				sum += n * sp.Temperature[i]
			}
			old, ok := oldSum[name]
			if !ok || !checkConvergence(s.logger(), sum, old, tolerance, name) {
				timeToQuit = false
			}
			oldSum[name] = sum
		}
		if timeToQuit {
			s.Done = true
		}
		return nil
	}
}

// Log writes simulation status messages to l.
func Log(l logrus.FieldLogger) DomainManipulator {
	startTime := time.Now()
	timeStepTime := time.Now()

	iteration := 0
	timeRun := 0.

	return func(s *Simulation) error {
		iteration++
		timeRun += s.Dt
		l.WithFields(logrus.Fields{
			"iteration":  iteration,
			"walltime":   time.Since(startTime).String(),
			"Δwalltime":  time.Since(timeStepTime).String(),
			"timestep":   s.Dt,
			"model time": timeRun,
		}).Info("hcx: completed iteration")
		timeStepTime = time.Now()
		return nil
	}
}
