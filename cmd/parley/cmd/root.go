// Package cmd contains all CLI commands for parley.
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/f3rmion/parley/internal/config"
	"github.com/f3rmion/parley/internal/script"
	"github.com/f3rmion/parley/internal/world"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	logFile string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "parley [script.yaml]",
	Short: "Play typewriter dialogue scripts in the terminal",
	Long: `parley plays dialogue scripts: boxes of text that reveal themselves
sentence by sentence, optionally one character at a time, and advance when
you press a skip key.

Scripts are YAML files listing dialogues, their paragraphs and sentences,
with per-sentence colors, sizes, fonts and actions that change the world
around the text.

Running 'parley' without arguments opens the script picker, or plays the
bundled example when the config directory holds no scripts.`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runPlay,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config directory (default is $HOME/.config/parley)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to this file")
	rootCmd.PersistentFlags().Bool("verbose", false, "verbose output")

	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.Set("config_dir", cfgFile)
	} else {
		configDir, err := config.GetConfigDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error finding home directory:", err)
			os.Exit(1)
		}
		viper.Set("config_dir", configDir)
	}

	viper.SetEnvPrefix("PARLEY")
	viper.AutomaticEnv()
}

// getConfigDir returns the configuration directory path.
func getConfigDir() string {
	return viper.GetString("config_dir")
}

// loadSettings reads the user settings and sets up logging from them. Logs
// go to stderr when toStderr is set and no log file was asked for; the TUI
// owns the terminal, so it passes false. The returned func closes the log
// file, if one was opened.
func loadSettings(toStderr bool) (*config.Settings, func(), error) {
	settings, err := config.Load(viper.GetViper(), getConfigDir())
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	path := logFile
	if path == "" && viper.GetBool("verbose") && !toStderr {
		path = filepath.Join(getConfigDir(), "parley.log")
	}
	closer, err := setupLogging(settings, path, toStderr)
	if err != nil {
		return nil, nil, err
	}
	return settings, func() {
		if err := closer.Close(); err != nil {
			fmt.Fprintln(os.Stderr, "Error closing log file:", err)
		}
	}, nil
}

// setupLogging installs the default slog logger. Logs go to path when set,
// else to stderr when toStderr is set, else nowhere. The caller closes the
// returned closer once logging is done.
func setupLogging(settings *config.Settings, path string, toStderr bool) (io.Closer, error) {
	level, err := config.ParseLevel(settings.LogLevel)
	if err != nil {
		return nil, err
	}
	if viper.GetBool("verbose") {
		level = slog.LevelDebug
	}

	var out io.Writer = io.Discard
	var closer io.Closer = nopCloser{}
	switch {
	case path != "":
		if err := config.EnsureConfigDir(filepath.Dir(path)); err != nil {
			return nil, fmt.Errorf("creating log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		out, closer = f, f
	case toStderr:
		out = os.Stderr
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})))
	return closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// loadWorld loads a script and builds its dialogues. Unknown actions are
// logged; they fail only when fired.
func loadWorld(path string, settings *config.Settings) (*world.World, error) {
	s, err := script.Load(path)
	if err != nil {
		return nil, err
	}
	if err := world.Check(s); err != nil {
		slog.Warn("script uses unknown actions", "path", path, "err", err)
	}
	return world.New(s, settings.ScriptDefaults())
}

// exampleWorld builds the bundled example script.
func exampleWorld(settings *config.Settings) (*world.World, error) {
	s, err := script.Example()
	if err != nil {
		return nil, fmt.Errorf("loading example script: %w", err)
	}
	return world.New(s, settings.ScriptDefaults())
}
