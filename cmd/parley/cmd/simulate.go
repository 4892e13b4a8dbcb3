package cmd

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/f3rmion/parley/internal/dialogue"
	"github.com/f3rmion/parley/internal/world"
	"github.com/spf13/cobra"
)

// maxSimulatedFrames bounds runs that wait for a script to finish.
const maxSimulatedFrames = 100000

var simulateCmd = &cobra.Command{
	Use:   "simulate <script.yaml>",
	Short: "Run a script without a terminal UI",
	Long: `Run a script frame by frame and print what each dialogue shows.

Key presses are given per frame with --press, e.g. --press 3:space presses
space before frame 3. --every presses a key before every frame. Without
--frames the run stops once every dialogue is empty or a quit action fires.`,
	Args: cobra.ExactArgs(1),
	RunE: runSimulate,
}

func init() {
	rootCmd.AddCommand(simulateCmd)
	simulateCmd.Flags().Int("frames", 0, "number of frames to run (0 runs until the script ends)")
	simulateCmd.Flags().Float64("delta", 0.1, "seconds per frame")
	simulateCmd.Flags().StringArray("press", nil, "frame:key press, repeatable")
	simulateCmd.Flags().String("every", "", "key pressed before every frame")
	simulateCmd.Flags().Bool("changes", false, "print only frames whose output changed")
}

// simulation describes a headless run.
type simulation struct {
	frames  int
	delta   float64
	presses map[int][]dialogue.Key
	every   dialogue.Key
	changes bool
}

func runSimulate(cmd *cobra.Command, args []string) error {
	settings, closeLog, err := loadSettings(true)
	if err != nil {
		return err
	}
	defer closeLog()
	w, err := loadWorld(args[0], settings)
	if err != nil {
		return err
	}

	sim := simulation{}
	sim.frames, _ = cmd.Flags().GetInt("frames")
	sim.delta, _ = cmd.Flags().GetFloat64("delta")
	sim.changes, _ = cmd.Flags().GetBool("changes")
	every, _ := cmd.Flags().GetString("every")
	sim.every = dialogue.Key(strings.ToLower(strings.TrimSpace(every)))
	specs, _ := cmd.Flags().GetStringArray("press")
	if sim.presses, err = parsePresses(specs); err != nil {
		return err
	}
	if sim.frames == 0 && sim.every == "" && len(sim.presses) == 0 {
		return fmt.Errorf("nothing would advance the script; give --frames, --press or --every")
	}

	return simulate(cmd.OutOrStdout(), w, sim)
}

// parsePresses parses "frame:key" specs into the keys pressed per frame.
func parsePresses(specs []string) (map[int][]dialogue.Key, error) {
	presses := make(map[int][]dialogue.Key)
	for _, spec := range specs {
		frame, k, ok := strings.Cut(spec, ":")
		if !ok {
			return nil, fmt.Errorf("press %q: want frame:key", spec)
		}
		n, err := strconv.Atoi(strings.TrimSpace(frame))
		if err != nil || n < 0 {
			return nil, fmt.Errorf("press %q: invalid frame %q", spec, frame)
		}
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" {
			return nil, fmt.Errorf("press %q: missing key", spec)
		}
		presses[n] = append(presses[n], dialogue.Key(k))
	}
	return presses, nil
}

// simulate steps the world's stage and writes one block per frame.
func simulate(out io.Writer, w *world.World, sim simulation) error {
	limit := sim.frames
	if limit <= 0 {
		limit = maxSimulatedFrames
	}

	var last string
	for frame := 0; frame < limit; frame++ {
		in := dialogue.Input{Pressed: slices.Clone(sim.presses[frame]), Delta: sim.delta}
		if sim.every != "" {
			in.Pressed = append(in.Pressed, sim.every)
		}

		frames, fired, err := w.Stage().Step(in)
		block := describeFrame(frames, fired, err)
		if !sim.changes || block != last || len(fired) > 0 {
			fmt.Fprintf(out, "frame %d\n%s", frame, block)
		}
		last = block

		if sim.frames <= 0 && (w.Quit || w.Stage().Done()) {
			fmt.Fprintf(out, "finished after %d frames\n", frame+1)
			return nil
		}
	}
	if sim.frames <= 0 {
		return fmt.Errorf("script did not finish within %d frames", maxSimulatedFrames)
	}
	return nil
}

func describeFrame(frames []dialogue.Frame, fired []dialogue.Fired, err error) string {
	var b strings.Builder
	for _, f := range frames {
		if !f.Visible {
			fmt.Fprintf(&b, "  %s: hidden\n", f.Name)
			continue
		}
		fmt.Fprintf(&b, "  %s [%s] %q\n", f.Name, f.State, f.Text())
	}
	for _, f := range fired {
		fmt.Fprintf(&b, "  ! %s fired %s\n", f.Dialogue, f.Action)
	}
	if err != nil {
		fmt.Fprintf(&b, "  error: %v\n", err)
	}
	return b.String()
}
