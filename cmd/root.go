// Package cmd wires the solver core to a cobra/viper command-line shell
// (spec.md §1 scopes flag handling itself out of the core, but an ambient
// CLI entrypoint still configures it the way papapumpkin-quasar's
// cmd/root.go configures its own tool: a persistent --config flag, a
// .gophercp.yaml/env-var layer via viper, and a --verbose switch).
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "gophercp",
	Short: "Finite-domain constraint propagation core",
	Long:  "gophercp exposes the trail/queue/variable/constraint core as a small inspection CLI; building and searching models is done through the cp package.",
}

// Execute runs the root command, exiting the process on error like the
// teacher's cmd.Execute.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default .gophercp.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose propagation logging")

	rootCmd.AddCommand(paramsCmd)
	rootCmd.AddCommand(solveCmd)
}

func initConfig() {
	if cfgFile, _ := rootCmd.Flags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".gophercp")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix("GOPHERCP")
	viper.AutomaticEnv()

	viper.SetDefault("array_split_size", 64)
	viper.SetDefault("cache_initial_size", 128)
	viper.SetDefault("trail_chunk_size", 1024)

	// It's fine if no config file is found; defaults apply.
	_ = viper.ReadInConfig()
}
