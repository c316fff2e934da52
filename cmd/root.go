/*
Copyright © 2025 Department of Biodiversity, Conservation and Attractions

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/dbca-wa/wastd/internal/iofs"
	"github.com/dbca-wa/wastd/internal/iologger"
	wastd "github.com/dbca-wa/wastd/pkg"
	"github.com/dbca-wa/wastd/pkg/config"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir string
	opts    []config.Option
	cfg     *config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Version: fmt.Sprintf("version: %s\nbuild:   %s", wastd.Version, wastd.Build),
	Use:     "wastd",
	Short:   "WAStD conservation status workflows",
	Long: `WAStD keeps conservation status gazettals of taxa and threatened
ecological communities, moves them through the approval workflow, and
runs quality control of field records.

Every state change is stored in an audit log. Derived labels of gazettals
("[WAWCA] CR") are recomputed on every save.

Configuration is read from ~/.config/wastd/config.yaml and WASTD_*
environment variables, for example WASTD_DATABASE_DRIVER=sqlite.`,
	PersistentPreRunE: bootstrap,
	SilenceErrors:     true,
	SilenceUsage:      true,
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Initialize logging with hardcoded defaults
	// Will be reconfigured later with user's config settings
	defaultLog := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}
	if err = iologger.Init(config.LogDir(homeDir), defaultLog, false); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	cfg.Update(opts)

	// Set HomeDir after config is loaded
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	// Reconfigure logging with user's settings, keeping what was written
	// during bootstrap
	if err = iologger.Init(config.LogDir(cfg.HomeDir), cfg.Log, true); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir),
		"driver", cfg.Database.Driver,
		"command", cmd.Name(),
	)

	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Remove the automatic "wastd version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")
	rootCmd.Flags().BoolP("version", "V", false, "version for wastd")

	rootCmd.AddCommand(
		getCreateCmd(),
		getMigrateCmd(),
		getSeedCmd(),
		getGazettalCmd(),
		getTransitionCmd(),
		getAvailableCmd(),
		getHistoryCmd(),
		getRelateCmd(),
		getCommentCmd(),
		getRecacheCmd(),
		getServeCmd(),
	)
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initDefaults(v)
	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ConfigReadError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ConfigReadError(cfgPath, err)
	}

	return &res, nil
}

// initDefaults keeps settings missing from an older config.yaml at their
// default values. Booleans would turn false otherwise.
func initDefaults(v *viper.Viper) {
	def := config.New()
	v.SetDefault("database.driver", def.Database.Driver)
	v.SetDefault("database.path", def.Database.Path)
	v.SetDefault("database.batch_size", def.Database.BatchSize)
	v.SetDefault("server.host", def.Server.Host)
	v.SetDefault("server.port", def.Server.Port)
	v.SetDefault("server.allow_transitions", def.Server.AllowTransitions)
	v.SetDefault("workflow.deactivate_siblings", def.Workflow.DeactivateSiblings)
}

func initEnvVars(v *viper.Viper) {
	// Set environment variables we want.
	// We set them manually so we can see clearly which env variables are allowed.
	// These match the fields included in config.ToOptions() - i.e., persistent
	// configuration that can be stored in config.yaml.
	v.SetEnvPrefix("WASTD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Database configuration
	v.BindEnv("database.driver", "WASTD_DATABASE_DRIVER")
	v.BindEnv("database.path", "WASTD_DATABASE_PATH")
	v.BindEnv("database.host", "WASTD_DATABASE_HOST")
	v.BindEnv("database.port", "WASTD_DATABASE_PORT")
	v.BindEnv("database.user", "WASTD_DATABASE_USER")
	v.BindEnv("database.password", "WASTD_DATABASE_PASSWORD")
	v.BindEnv("database.database", "WASTD_DATABASE_DATABASE")
	v.BindEnv("database.ssl_mode", "WASTD_DATABASE_SSL_MODE")
	v.BindEnv("database.batch_size", "WASTD_DATABASE_BATCH_SIZE")

	// Log configuration
	v.BindEnv("log.level", "WASTD_LOG_LEVEL")
	v.BindEnv("log.format", "WASTD_LOG_FORMAT")
	v.BindEnv("log.destination", "WASTD_LOG_DESTINATION")

	// API server
	v.BindEnv("server.host", "WASTD_SERVER_HOST")
	v.BindEnv("server.port", "WASTD_SERVER_PORT")
	v.BindEnv("server.allow_transitions", "WASTD_SERVER_ALLOW_TRANSITIONS")

	// Workflow policies
	v.BindEnv("workflow.deactivate_siblings", "WASTD_WORKFLOW_DEACTIVATE_SIBLINGS")

	// General configuration
	v.BindEnv("jobs_number", "WASTD_JOBS_NUMBER")

	v.AutomaticEnv()
}
