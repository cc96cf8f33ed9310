/*
	Copyright 2025 Markus Papenbrock
*/

package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	bundleCmd "github.com/mpapenbr/handicap-calculator-go/pkg/cmd/bundle"
	calcCmd "github.com/mpapenbr/handicap-calculator-go/pkg/cmd/calc"
	clubsCmd "github.com/mpapenbr/handicap-calculator-go/pkg/cmd/clubs"
	"github.com/mpapenbr/handicap-calculator-go/pkg/cmd/common"
	formatsCmd "github.com/mpapenbr/handicap-calculator-go/pkg/cmd/formats"
	golferCmd "github.com/mpapenbr/handicap-calculator-go/pkg/cmd/golfer"
	migrateCmd "github.com/mpapenbr/handicap-calculator-go/pkg/cmd/migrate"
	shellCmd "github.com/mpapenbr/handicap-calculator-go/pkg/cmd/shell"
	"github.com/mpapenbr/handicap-calculator-go/pkg/config"
	"github.com/mpapenbr/handicap-calculator-go/version"
)

const envPrefix = "HCC"

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:     "hcc",
	Short:   "Golf handicap allowance calculator",
	Long:    `Calculates course handicaps and playing handicaps for common match formats.`,
	Version: version.FullVersion,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return common.SetupLogger()
	},
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is $HOME/.hcc.yml)")

	rootCmd.PersistentFlags().StringVar(&config.LogLevel,
		"log-level",
		"warn",
		"controls the log level (debug, info, warn, error, fatal)")
	rootCmd.PersistentFlags().StringVar(&config.LogFormat,
		"log-format",
		"text",
		"controls the log output format (json, text)")
	rootCmd.PersistentFlags().StringVar(&config.LogFilter,
		"log-filter",
		"",
		"log filter rules, e.g. \"debug:handicap* info:*\"")
	rootCmd.PersistentFlags().StringVar(&config.CoursesFile,
		"courses",
		"",
		"course data file (YAML/JSON), embedded course data if empty")
	rootCmd.PersistentFlags().StringVar(&config.Club,
		"club",
		"",
		"club id (default club of the course data if empty)")
	rootCmd.PersistentFlags().StringVar(&config.StoreType,
		"store",
		"sqlite",
		"storage backend (memory, sqlite, postgres, nats)")
	rootCmd.PersistentFlags().StringVar(&config.StoreDSN,
		"store-dsn",
		"",
		"storage location: sqlite file (default $HOME/.hcc.db), postgres or nats url")
	rootCmd.PersistentFlags().Float64Var(&config.MinIndex,
		"min-index",
		-10,
		"lowest accepted handicap index")
	rootCmd.PersistentFlags().Float64Var(&config.MaxIndex,
		"max-index",
		54,
		"highest accepted handicap index")
	rootCmd.PersistentFlags().StringVar(&config.WaitForServices,
		"wait-for-services",
		"15s",
		"Duration to wait for other services to be ready")

	// add commands here
	rootCmd.AddCommand(calcCmd.NewCalcCmd())
	rootCmd.AddCommand(clubsCmd.NewClubsCmd())
	rootCmd.AddCommand(formatsCmd.NewFormatsCmd())
	rootCmd.AddCommand(golferCmd.NewGolferCmd())
	rootCmd.AddCommand(bundleCmd.NewBundleCmd())
	rootCmd.AddCommand(migrateCmd.NewMigrateCmd())
	rootCmd.AddCommand(shellCmd.NewShellCmd())
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".hcc" (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".hcc")
	}

	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	bindFlags(rootCmd, viper.GetViper())
	for _, cmd := range rootCmd.Commands() {
		bindFlags(cmd, viper.GetViper())
	}
}

// Bind each cobra flag to its associated viper configuration
// (config file and environment variable)
func bindFlags(cmd *cobra.Command, v *viper.Viper) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		// Environment variables can't have dashes in them, so bind them to their
		// equivalent keys with underscores, e.g. --store-dsn to HCC_STORE_DSN
		if strings.Contains(f.Name, "-") {
			envVarSuffix := strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_"))
			if err := v.BindEnv(f.Name,
				fmt.Sprintf("%s_%s", envPrefix, envVarSuffix)); err != nil {
				fmt.Fprintf(os.Stderr, "Could not bind env var %s: %v", f.Name, err)
			}
		}
		// Apply the viper config value to the flag when the flag is not set and viper
		// has a value
		if !f.Changed && v.IsSet(f.Name) {
			val := v.Get(f.Name)
			if err := cmd.Flags().Set(f.Name, fmt.Sprintf("%v", val)); err != nil {
				fmt.Fprintf(os.Stderr, "Could set flag value for %s: %v", f.Name, err)
			}
		}
	})
}
