package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/f3rmion/parley/internal/config"
	"github.com/f3rmion/parley/internal/script"
	"github.com/spf13/cobra"
)

// exampleFile is the name of the example script written by init.
const exampleFile = "example.yaml"

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize parley configuration",
	Long: `Initialize parley configuration files in your config directory.

This creates:
  - config.yaml    (skip keys, frame rate, typewriter speed, theme)
  - example.yaml   (a demo script to copy from)

Running 'parley' afterwards opens the script picker there.`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().Bool("force", false, "overwrite existing configuration")
}

func runInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")
	configDir := getConfigDir()

	if err := config.EnsureConfigDir(configDir); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Initializing parley configuration in %s\n\n", configDir)

	files := []struct {
		name  string
		write func(path string) error
	}{
		{config.FileName, func(path string) error { return config.Save(path, config.Default()) }},
		{exampleFile, func(path string) error { return os.WriteFile(path, []byte(script.ExampleYAML), 0644) }},
	}
	for _, f := range files {
		path := filepath.Join(configDir, f.name)
		if _, err := os.Stat(path); err == nil && !force {
			return fmt.Errorf("%s already exists\nUse --force to overwrite", path)
		}
		if err := f.write(path); err != nil {
			return err
		}
		fmt.Fprintf(out, "  Created %s\n", f.name)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Configuration initialized!")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintln(out, "  1. Edit config.yaml to change keys, speed and colors")
	fmt.Fprintf(out, "  2. Run 'parley play %s' to watch the example\n", filepath.Join(configDir, exampleFile))
	fmt.Fprintln(out, "  3. Copy the example and write your own script")

	return nil
}
