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

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile  string
	profiler interface{ Stop() }
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pgkyl",
	Short: "Post-processing for modal discontinuous Galerkin simulation output",
	Long: `
Loads modal DG output, interpolates it onto nodal grids in 1 to 6 dimensions and
writes, plots or summarizes the result.

pgkyl interpolate -f field.gkz -o field_nodal.gkz`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if viper.GetBool("profile") {
			profiler = profile.Start(profile.CPUProfile, profile.ProfilePath("."))
		}
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		stopProfiler()
	},
}

// stopProfiler is idempotent, cobra skips PersistentPostRun when RunE fails
func stopProfiler() {
	if profiler != nil {
		profiler.Stop()
		profiler = nil
	}
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := execute(); err != nil {
		printError(err)
		os.Exit(1)
	}
}

func execute() (err error) {
	err = rootCmd.Execute()
	stopProfiler()
	return
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.pgkyl.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "turn on verbosity")
	rootCmd.PersistentFlags().Bool("stack", false, "keep earlier grids and values on the data stack instead of replacing them")
	rootCmd.PersistentFlags().Bool("profile", false, "write a CPU profile to the current directory")
	rootCmd.PersistentFlags().Int("parallel", 0, "number of goroutines used for interpolation, 0 = number of CPUs")
	rootCmd.PersistentFlags().StringP("comp", "c", "", "component to load, an index N or a range lo:hi")
	for _, name := range []string{"verbose", "stack", "profile", "parallel", "comp"} {
		if err := viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name)); err != nil {
			panic(err)
		}
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".pgkyl")
	}
	viper.SetEnvPrefix("PGKYL")
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		vlog("Using config file: %s", viper.ConfigFileUsed())
	}
}
