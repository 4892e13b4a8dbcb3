package cmd

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/f3rmion/parley/internal/script"
	"github.com/f3rmion/parley/internal/world"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check <script.yaml>...",
	Short: "Validate dialogue scripts",
	Long: `Validate dialogue scripts and print a summary of each.

Checks the script format, layout values, colors, scene references and
that every action has a handler.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	_, closeLog, err := loadSettings(true)
	if err != nil {
		return err
	}
	defer closeLog()

	var errs []error
	for _, path := range args {
		if err := checkScript(cmd.OutOrStdout(), path); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s:\n%v\n", path, err)
			errs = append(errs, fmt.Errorf("%s: invalid script", path))
		}
	}
	return errors.Join(errs...)
}

func checkScript(out io.Writer, path string) error {
	s, err := script.Load(path)
	if err != nil {
		return err
	}
	if err := world.Check(s); err != nil {
		return err
	}

	title := s.Title
	if title == "" {
		title = "(untitled)"
	}
	fmt.Fprintf(out, "%s: %s\n", path, title)
	for _, d := range s.Dialogues {
		fmt.Fprintf(out, "  dialogue %-12s %3d paragraphs %3d sentences\n", d.Name, len(d.Paragraphs), countSentences(d.Paragraphs))
	}

	names := make([]string, 0, len(s.Scenes))
	for name := range s.Scenes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		sc := s.Scenes[name]
		fmt.Fprintf(out, "  scene    %-12s %3d paragraphs -> %s\n", name, len(sc.Paragraphs), sc.Dialogue)
	}
	return nil
}

func countSentences(ps []script.Paragraph) int {
	var n int
	for _, p := range ps {
		n += len(p.Sentences)
	}
	return n
}
