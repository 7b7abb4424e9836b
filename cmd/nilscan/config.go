package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/FredrikPedersen/nullref/internal/scan"
)

const defaultConfigName = ".nilscan"

// options is the resolved configuration: flags, then NILSCAN_* environment
// variables, then the config file, then flag defaults.
type options struct {
	Scan            scan.Config
	Packages        []string
	Dir             string
	Format          string
	CacheDir        string
	MaxCacheEntries int
	FailOnFindings  bool
	LogLevel        string
}

// bindFlags makes every root flag a viper key of the same name.
func bindFlags() error {
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		return fmt.Errorf("binding persistent flags: %w", err)
	}
	if err := viper.BindPFlags(rootCmd.Flags()); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}
	return nil
}

// initConfig wires environment variables and the optional config file into
// viper.
func initConfig() error {
	viper.SetEnvPrefix("NILSCAN")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config %s: %w", cfgFile, err)
		}
		return nil
	}

	viper.SetConfigName(defaultConfigName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}

func loadOptions() options {
	return options{
		Scan: scan.Config{
			OptionalPkg:      viper.GetString("optional-pkg"),
			IncludeTests:     viper.GetBool("tests"),
			IncludeGenerated: viper.GetBool("include-generated"),
		},
		Packages:        viper.GetStringSlice("packages"),
		Dir:             viper.GetString("dir"),
		Format:          viper.GetString("format"),
		CacheDir:        viper.GetString("cache-dir"),
		MaxCacheEntries: viper.GetInt("max-cache-entries"),
		FailOnFindings:  viper.GetBool("fail-on-findings"),
		LogLevel:        viper.GetString("log-level"),
	}
}
