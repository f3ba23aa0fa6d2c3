package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const appName = "shortlist"

var (
	cfgFile string

	rootCmd = &cobra.Command{
		Use:          appName,
		Short:        "shortlist scores PDF resumes against a job description and prints the shortlist",
		SilenceUsage: true,
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is $SHORTLISTER_CONFIG when set)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}
