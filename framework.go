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

// Package hcx holds the species state, options, component registry and
// run loop for calculating hydrogen-isotope charge-exchange sources in an
// edge plasma fluid model.
package hcx

import (
	"github.com/sirupsen/logrus"
)

// Version gives the version number.
const Version = "0.3.0"

// Simulation holds the current state of the model.
type Simulation struct {
	// State holds the species on the mesh.
	State *State

	// Diagnostics holds the fields that components publish.
	Diagnostics *Diagnostics

	// Dt is the timestep, in normalised time units.
	Dt float64

	// InitFuncs are functions to be called in the given order
	// at the beginning of the simulation.
	InitFuncs []DomainManipulator

	// RunFuncs are functions to be called in the given order repeatedly
	// until "Done" is true. Therefore, the simulation will not end until
	// one of the RunFuncs sets "Done" to true.
	RunFuncs []DomainManipulator

	// Done specifies whether the simulation is finished.
	Done bool

	// Log receives status messages. If nil, logrus.StandardLogger is used.
	Log logrus.FieldLogger
}

// DomainManipulator is a class of functions that operate on the entire
// simulation.
type DomainManipulator func(s *Simulation) error

func (s *Simulation) logger() logrus.FieldLogger {
	if s.Log == nil {
		return logrus.StandardLogger()
	}
	return s.Log
}

// Init initializes the simulation by running s.InitFuncs.
func (s *Simulation) Init() error {
	if s.Diagnostics == nil {
		s.Diagnostics = NewDiagnostics()
	}
	for _, f := range s.InitFuncs {
		if err := f(s); err != nil {
			return err
		}
	}
	return nil
}

// Run carries out the simulation by running s.RunFuncs until s.Done is true.
func (s *Simulation) Run() error {
	for !s.Done {
		for _, f := range s.RunFuncs {
			if err := f(s); err != nil {
				return err
			}
		}
	}
	return nil
}
