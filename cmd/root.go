/*
Copyright © 2026 Graydelve Authors
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "graydelve",
	Short: "An OSRIC table engine: characters, saves, spells, and dice",
	Long: `graydelve runs a first-edition style rules table as a command engine:
character creation, experience, saving throws, morale, spell slots, and
plain dice, with every processed command journaled per campaign.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.graydelve.yaml)")
	rootCmd.PersistentFlags().String("worlds_dir", "./worlds", "Directory holding world/campaign folders")
	if err := viper.BindPFlag("worlds_dir", rootCmd.PersistentFlags().Lookup("worlds_dir")); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".graydelve")
	}

	viper.SetEnvPrefix("GRAYDELVE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
