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

// Package hcxutil contains the command-line interface for the charge
// exchange model.
package hcxutil

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/lnashier/viper"
	"github.com/plasmasim/hcx"
	"github.com/plasmasim/hcx/science/chargeexchange/hydrogen"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagset                *pflag.FlagSet
}

func init() {
	var allComponents []string
	for _, p := range hydrogen.Pairs() {
		allComponents = append(allComponents, p.Section())
	}

	// Options are the configuration options available to hcx.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagset                *pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagset:    Root.PersistentFlags(),
		},
		{
			name: "LogLevel",
			usage: `
              LogLevel specifies the minimum level of log messages that are
              printed: one of debug, info, warning or error.`,
			defaultVal: "info",
			flagset:    Root.PersistentFlags(),
		},
		{
			name: "units.eV",
			usage: `
              units.eV is the temperature normalisation [eV]. It must be set.`,
			defaultVal: 0.,
			flagset:    runCmd.Flags(),
		},
		{
			name: "units.inv_meters_cubed",
			usage: `
              units.inv_meters_cubed is the density normalisation [m^-3].
              It must be set.`,
			defaultVal: 0.,
			flagset:    runCmd.Flags(),
		},
		{
			name: "units.seconds",
			usage: `
              units.seconds is the time normalisation [s]. It must be set.`,
			defaultVal: 0.,
			flagset:    runCmd.Flags(),
		},
		{
			name: "Components",
			usage: `
              Components lists the charge exchange reactions to include, named
              cx_<atom><ion>, for example cx_hd for h + d+ -> h+ + d. Run
              'hcx list' for the full list. The default is all reactions.`,
			defaultVal: allComponents,
			flagset:    runCmd.Flags(),
		},
		{
			name: "diagnose",
			usage: `
              diagnose specifies whether to save the transfer diagnostics of
              every reaction. Individual reactions can instead be configured
              with the '<component>.diagnose' option in the configuration file.`,
			defaultVal: false,
			flagset:    runCmd.Flags(),
		},
		{
			name: "StateFile",
			usage: `
              StateFile is the path to the TOML file holding the initial species
              profiles, or to a '.gob' checkpoint saved by a previous run.
              It can include environment variables.`,
			defaultVal: "",
			flagset:    runCmd.Flags(),
		},
		{
			name: "OutputFile",
			usage: `
              OutputFile is the path to the NetCDF file where diagnostics and
              output variables are saved. If it is empty, no output is saved.
              It can include environment variables.`,
			defaultVal: "hcx_output.ncf",
			flagset:    runCmd.Flags(),
		},
		{
			name: "CheckpointFile",
			usage: `
              CheckpointFile is the path where the final species state is saved
              so that a later run can continue from it. If it is empty, the
              state is not saved. It can include environment variables.`,
			defaultVal: "",
			flagset:    runCmd.Flags(),
		},
		{
			name: "OutputVariables",
			usage: `
              OutputVariables specifies derived variables to save, as a map of
              names to expressions of diagnostics and species variables,
              for example {"NetD":"[d.density_source] + [d+.density_source]"}.`,
			defaultVal: map[string]string{},
			flagset:    runCmd.Flags(),
		},
		{
			name: "NumIterations",
			usage: `
              NumIterations is the number of relaxation steps to run. If it is
              zero, the run continues until the species energies stop changing.`,
			defaultVal: 1,
			flagset:    runCmd.Flags(),
		},
		{
			name: "Dt",
			usage: `
              Dt is the relaxation timestep, in normalised units.`,
			defaultVal: 1.,
			flagset:    runCmd.Flags(),
		},
		{
			name: "pair",
			usage: `
              pair is the reaction to tabulate, given as the atom and ion
              isotope symbols, for example 'hd'.`,
			shorthand:  "p",
			defaultVal: "hh",
			flagset:    rateCmd.Flags(),
		},
		{
			name: "TMin",
			usage: `
              TMin is the lowest temperature in the table [eV].`,
			defaultVal: 0.1,
			flagset:    rateCmd.Flags(),
		},
		{
			name: "TMax",
			usage: `
              TMax is the highest temperature in the table [eV].`,
			defaultVal: 1.e4,
			flagset:    rateCmd.Flags(),
		},
		{
			name: "Plot",
			usage: `
              Plot is the path of an image file where a plot of the rate
              coefficient is saved, for example 'rate.png'. If it is empty,
              no plot is made.`,
			defaultVal: "",
			flagset:    rateCmd.Flags(),
		},
		{
			name: "NumPoints",
			usage: `
              NumPoints is the number of temperatures in the table.`,
			shorthand:  "n",
			defaultVal: 21,
			flagset:    rateCmd.Flags(),
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("HCX")
	Cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	Cfg.AutomaticEnv()

	for _, o := range options {
		set := o.flagset
		switch v := o.defaultVal.(type) {
		case string:
			set.StringP(o.name, o.shorthand, v, o.usage)
		case []string:
			set.StringSliceP(o.name, o.shorthand, v, o.usage)
		case bool:
			set.BoolP(o.name, o.shorthand, v, o.usage)
		case int:
			set.IntP(o.name, o.shorthand, v, o.usage)
		case float64:
			set.Float64P(o.name, o.shorthand, v, o.usage)
		case map[string]string:
			// Maps are given on the command line as JSON objects.
			b, err := json.Marshal(v)
			if err != nil {
				panic(err)
			}
			set.StringP(o.name, o.shorthand, string(b), o.usage)
		default:
			panic(fmt.Errorf("hcx: option %s has unsupported type %T", o.name, v))
		}
		Cfg.BindPFlag(o.name, set.Lookup(o.name))
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(runCmd)
	Root.AddCommand(rateCmd)
	Root.AddCommand(listCmd)
}

// setConfig finds and reads in the configuration file, if there is one,
// and sets up logging.
func setConfig(cmd *cobra.Command) error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("hcx: problem reading configuration file: %v", err)
		}
	}
	level, err := logrus.ParseLevel(Cfg.GetString("LogLevel"))
	if err != nil {
		return fmt.Errorf("hcx: %v", err)
	}
	logrus.SetLevel(level)
	logrus.SetOutput(cmd.OutOrStdout())
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
		DisableSorting:  true,
	})
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "hcx",
	Short: "Hydrogen isotope charge exchange sources.",
	Long: `hcx calculates charge exchange between the atoms and ions of the
hydrogen isotopes (h, d and t) and the particle, momentum and energy sources
that result, for use in edge plasma fluid models.

Refer to the subcommand documentation for configuration options and default settings.
Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'HCX_var' where 'var' is the
name of the variable to be set, with '.' replaced by '_'.
Refer to https://github.com/spf13/viper for additional configuration information.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error { return setConfig(cmd) },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of hcx.",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "hcx v%s\n", hcx.Version)
	},
	DisableAutoGenTag: true,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Calculate charge exchange sources.",
	Long: `run reads the species profiles in StateFile, calculates the charge
exchange sources of the selected reactions and relaxes the species for
NumIterations steps of length Dt, saving diagnostics and output variables
to OutputFile after each step. There is no transport.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		state, err := LoadState(Cfg.GetString("StateFile"))
		if err != nil {
			return err
		}
		vars, err := stringMap(Cfg, "OutputVariables")
		if err != nil {
			return err
		}
		outputVars, err := checkOutputVars(vars)
		if err != nil {
			return err
		}
		components := expandStringSlice(Cfg.GetStringSlice("Components"))
		if Cfg.GetBool("diagnose") {
			for _, c := range components {
				if !Cfg.IsSet(c + ".diagnose") {
					Cfg.Set(c+".diagnose", true)
				}
			}
		}
		outputFile, err := checkOutputFile(Cfg.GetString("OutputFile"))
		if err != nil {
			return err
		}
		checkpointFile, err := checkOutputFile(Cfg.GetString("CheckpointFile"))
		if err != nil {
			return err
		}
		return Run(state, components, Cfg, outputFile, outputVars, checkpointFile,
			Cfg.GetInt("NumIterations"), Cfg.GetFloat64("Dt"), logrus.StandardLogger())
	},
	DisableAutoGenTag: true,
}

var rateCmd = &cobra.Command{
	Use:   "rate",
	Short: "Tabulate the charge exchange rate coefficient.",
	Long: `rate prints the charge exchange rate coefficient of one reaction for
atoms and ions at equal temperatures between TMin and TMax, and
optionally saves a plot of it to Plot.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := hydrogen.ParsePair(Cfg.GetString("pair"))
		if err != nil {
			return err
		}
		tMin, tMax, n := Cfg.GetFloat64("TMin"), Cfg.GetFloat64("TMax"), Cfg.GetInt("NumPoints")
		if err := RateTable(cmd.OutOrStdout(), p, tMin, tMax, n); err != nil {
			return err
		}
		plotFile, err := checkOutputFile(Cfg.GetString("Plot"))
		if err != nil || plotFile == "" {
			return err
		}
		return RatePlot(plotFile, p, tMin, tMax, n)
	},
	DisableAutoGenTag: true,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the available reactions.",
	Long:  "list prints the name and reaction of each available charge exchange component.",
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := Registry()
		if err != nil {
			return err
		}
		for _, name := range r.Names() {
			fmt.Fprintf(cmd.OutOrStdout(), "%-8s %s\n", name, r.Description(name))
		}
		return nil
	},
	DisableAutoGenTag: true,
}
