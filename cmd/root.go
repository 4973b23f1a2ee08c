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

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "hypersolver",
	Short: "Time integration of one dimensional hyperbolic conservation laws",
	Long: `
Integrates ∂n/∂t + ∂(fn)/∂x = g and the pointwise ODE dn/dt = f(n, x) on a
fixed one dimensional grid with Lax-Friedrichs, Lax-Wendroff, the method of
characteristics or RK2.

Settings are read from $HOME/.hypersolver.yaml and from the environment:
	HS_METHOD	scheme name, e.g. lax_wendroff
	HS_STABILITY	stability factor in (0, 1]
	HS_VERBOSITY	progress output level`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.hypersolver.yaml)")
	rootCmd.PersistentFlags().IntP("verbosity", "v", 0, "progress output: 0 = quiet, 1 = periodic, 2 = every step")
	_ = viper.BindPFlag("verbosity", rootCmd.PersistentFlags().Lookup("verbosity"))
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
		// Search config in home directory with name ".hypersolver" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".hypersolver")
	}
	viper.SetEnvPrefix("HS")
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}
