// Package cmd contains the Cobra CLI.
package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/formulactl/formulactl/internal/logger"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// formulactlWriter is a writer that prints to stdout. When testing, we replace
// this with a writer that prints to a buffer.
type formulactlWriter struct{}

func (t formulactlWriter) Write(p []byte) (n int, err error) {
	fmt.Print(string(p))
	return len(p), nil
}

// progressWriter receives download progress bars. It stays nil (no progress)
// unless the CLI runs for real.
var progressWriter io.Writer

// Execute uses the default settings and executes the root command.
func Execute() {
	progressWriter = os.Stderr
	err := NewRootCmd(formulactlWriter{}, afero.NewOsFs()).Execute()
	if err != nil {
		// Cobra prints the error message
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
}

// initConfig reads in the config file if it exists.
func initConfig() {
	home, err := homedir.Dir()
	cobra.CheckErr(err)

	viper.SetDefault("RemoteAPIBaseURL", "https://raw.githubusercontent.com/formulactl/formulae/main/v0/")
	viper.SetDefault("LocalAPIBasePath", filepath.Join(home, ".local", "share", "formulactl", "formulae", "v0"))
	viper.SetDefault("OutputDir", filepath.Join("pkg", "brew"))
	viper.SetDefault("DiscoverThrottle", "1s")
	viper.SetDefault("HTTPTimeout", "10m")

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(home + "/.config/formulactl")
		viper.SetConfigName("config")
	}

	err = viper.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Fatalf("Error reading config file: %s", err)
		}
	}
}

func configureLogger() {
	if logger.InTestMode() {
		return
	}

	level := "warn"
	if verboseFlag {
		level = "debug"
	}
	logger.Configure(logger.Options{
		Level: level,
		JSON:  jsonLogsFlag,
		Color: !jsonLogsFlag,
		Out:   os.Stderr,
	})
}
