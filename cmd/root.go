/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/gomms/InputParameters"
)

var cfgFile string

const exampleFile = `
########################################
Title: "NS 3D MMS"
Scale: 0          # 0 = full support, nonzero = localized smoke test
RAir: 287.1       # or ConstantsFile: constants.txt
Gamma: 1.4
Grid:
  Nx: 17
  Ny: 17
  Nz: 17
ParallelDegree: 0 # 0 = one per CPU
########################################
`

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "gomms",
	Short: "Manufactured solution reference for 3D compressible Navier-Stokes verification",
	Long: `
Evaluates the steady manufactured solution of Veluri, Roy and Luke (2012) for
the 3D compressible Navier-Stokes equations, and uses it as the reference in
code verification studies.

gomms evaluate -x 0.5 -y 0.5 -z 0.5 --rAir 287.1`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			level log.Level
		)
		if level, err = log.ParseLevel(viper.GetString("logLevel")); err != nil {
			return
		}
		log.SetLevel(level)
		log.SetOutput(cmd.ErrOrStderr())
		return
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.gomms.yaml)")
	pf.StringP("inputConditionsFile", "I", "", "YAML file for input parameters like:\n\t- Scale\n\t- RAir\n\t- Grid")
	pf.Float64("rAir", 0, "gas constant R_air, overrides the constants file")
	pf.Int("scale", 0, "0 = full domain support, nonzero = localized Gaussian support, overrides the case file")
	pf.Float64("gamma", InputParameters.DefaultGamma, "ratio of specific heats, sets rhoE in evaluate --format yaml")
	pf.String("constants", "constants.txt", "file defining R_air, read when present")
	pf.String("case", "case.txt", "file holding the scale flag on its first line, read when present")
	pf.String("logLevel", "warning", "log level: debug, info, warning, error")
	for _, name := range []string{"inputConditionsFile", "rAir", "scale", "gamma", "constants", "case", "logLevel"} {
		if err := viper.BindPFlag(name, pf.Lookup(name)); err != nil {
			panic(err)
		}
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			log.Warnf("unable to locate home directory: %v", err)
		} else {
			viper.AddConfigPath(home)
		}
		viper.SetConfigName(".gomms")
	}
	viper.SetEnvPrefix("gomms")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err == nil {
		log.Debugf("using config file: %s", viper.ConfigFileUsed())
	}
}

func fileExists(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && !fi.IsDir()
}

// processInput merges the input file, the legacy constants and case files and
// the command line. An explicit flag wins over the files it stands in for.
func processInput() (ip *InputParameters.InputParametersMMS, err error) {
	ip = &InputParameters.InputParametersMMS{}
	if icFile := viper.GetString("inputConditionsFile"); len(icFile) != 0 {
		var data []byte
		if data, err = os.ReadFile(icFile); err != nil {
			return
		}
		if err = ip.Parse(data); err != nil {
			return nil, fmt.Errorf("parsing %s: %w\nExample File:%s", icFile, err, exampleFile)
		}
	}
	legacy := func(key string, dst *string) {
		path := viper.GetString(key)
		switch {
		case viper.IsSet(key):
			*dst = path
		case len(*dst) == 0 && fileExists(path):
			*dst = path
		}
	}
	legacy("constants", &ip.ConstantsFile)
	legacy("case", &ip.CaseFile)
	if viper.IsSet("rAir") {
		ip.RAir, ip.ConstantsFile = viper.GetFloat64("rAir"), ""
	}
	if viper.IsSet("scale") {
		ip.Scale, ip.CaseFile = viper.GetInt("scale"), ""
	}
	if viper.IsSet("gamma") || ip.Gamma == 0 {
		ip.Gamma = viper.GetFloat64("gamma")
	}
	if err = ip.Resolve(); err != nil {
		return
	}
	log.WithFields(log.Fields{
		"title":     ip.Title,
		"scale":     ip.Scale,
		"R_air":     ip.RAir,
		"gamma":     ip.Gamma,
		"constants": ip.ConstantsFile,
		"case":      ip.CaseFile,
	}).Debug("resolved input parameters")
	return
}
