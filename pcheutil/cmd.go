/*
Copyright © 2021 the PCHE authors.
This file is part of PCHE.

PCHE is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

PCHE is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with PCHE.  If not, see <http://www.gnu.org/licenses/>.
*/

package pcheutil

import (
	"fmt"
	"os"
	"time"

	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/khurrumsaleem/pche"
)

var logger = logrus.StandardLogger()

// Cfg holds the merged flag, environment, and configuration-file
// settings. Environment variables use the PCHE_ prefix.
var Cfg *viper.Viper

func init() {
	type option struct {
		name       string
		shorthand  string
		usage      string
		defaultVal interface{}
		flagsets   []*pflag.FlagSet
	}

	options := []option{
		{
			name:       "config",
			shorthand:  "c",
			usage:      "config specifies the scenario configuration file location.",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name:       "loglevel",
			usage:      "loglevel sets the logging level (debug, info, warning, error).",
			defaultVal: "info",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name:       "bursts",
			usage:      "bursts overrides the number of integration bursts.",
			defaultVal: 0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name:       "bursttime",
			usage:      "bursttime overrides the integration horizon per burst [s].",
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name:       "convergence",
			usage:      "convergence overrides the steady-state residual tolerance [K/s].",
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
	}

	Cfg = viper.New()
	Cfg.SetEnvPrefix("PCHE")
	for _, o := range options {
		for i, set := range o.flagsets {
			if i != 0 {
				set.AddFlag(o.flagsets[0].Lookup(o.name))
				continue
			}
			switch v := o.defaultVal.(type) {
			case string:
				if o.shorthand == "" {
					set.String(o.name, v, o.usage)
				} else {
					set.StringP(o.name, o.shorthand, v, o.usage)
				}
			case int:
				set.Int(o.name, v, o.usage)
			case float64:
				set.Float64(o.name, v, o.usage)
			}
			Cfg.BindPFlag(o.name, set.Lookup(o.name))
		}
	}
	Root.AddCommand(versionCmd, runCmd)
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "pche",
	Short: "A reduced-order printed-circuit heat exchanger model.",
	Long: `pche models the transient thermal response of a five-plate crossflow
printed-circuit heat exchanger and marches it to steady state.
Scenario settings come from a TOML configuration file (--config);
solver settings can be overridden with command-line flags or with
environment variables in the format 'PCHE_var'.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error {
		level, err := logrus.ParseLevel(Cfg.GetString("loglevel"))
		if err != nil {
			return fmt.Errorf("pcheutil: %v", err)
		}
		logrus.SetLevel(level)
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of the model.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("pche v%s\n", pche.Version)
	},
	DisableAutoGenTag: true,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a simulation to steady state.",
	Long: `run integrates the exchanger model over repeated bursts, advancing
the pressure fields between bursts, until the temperature derivative
norm converges or the burst budget is exhausted. The final temperature
fields are written as CSV.`,
	DisableAutoGenTag: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Run(Cfg.GetString("config"))
	},
}

// Run executes a steady-state simulation from the scenario file at path.
func Run(path string) error {
	if path == "" {
		return fmt.Errorf("pcheutil: no configuration file specified (use --config)")
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("pcheutil: opening configuration: %v", err)
	}
	cfg, err := ReadConfig(f)
	f.Close()
	if err != nil {
		return err
	}

	ex, solver, err := cfg.Build()
	if err != nil {
		return err
	}
	if n := cast.ToInt(Cfg.Get("bursts")); n > 0 {
		solver.Bursts = n
	}
	if t := cast.ToFloat64(Cfg.Get("bursttime")); t > 0 {
		solver.BurstTime = t
	}
	if tol := cast.ToFloat64(Cfg.Get("convergence")); tol > 0 {
		solver.ConvergenceTol = tol
	}
	solver.OnBurst = func(burst int, residual float64) {
		logger.WithFields(logrus.Fields{
			"burst":    burst,
			"residual": residual,
		}).Info("integration burst complete")
	}

	logger.WithFields(logrus.Fields{
		"rows": ex.Rows(),
		"cols": ex.Cols(),
	}).Info("starting steady-state solve")

	start := time.Now()
	y, err := solver.SteadyState(ex.InitialState().Pack())
	if err != nil {
		return err
	}
	logger.WithFields(logrus.Fields{
		"elapsed":      time.Since(start),
		"rhsEvals":     solver.Evals,
		"meanEvalTime": fmt.Sprintf("%.3gs", solver.EvalTime.Mean()),
		"meanStep":     fmt.Sprintf("%.3gs", solver.StepSizes.Mean()),
	}).Info("steady-state solve finished")

	final, err := pche.UnpackState(y, ex.Rows(), ex.Cols())
	if err != nil {
		return err
	}

	out := os.Stdout
	if cfg.OutputFile != "" {
		if out, err = os.Create(cfg.OutputFile); err != nil {
			return fmt.Errorf("pcheutil: creating output file: %v", err)
		}
		defer out.Close()
	}
	return WriteTemperatures(out, final)
}
