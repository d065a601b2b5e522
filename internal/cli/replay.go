package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/wiregraph/pkg/engine"
	"github.com/matzehuels/wiregraph/pkg/script"
)

// replayCommand creates the replay command, an interactive script stepper.
func (c *CLI) replayCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "replay [script]",
		Short: "Step through an edit script interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			s, err := script.Load(args[0])
			if err != nil {
				return err
			}

			// Engine debug lines would tear the alternate screen.
			c.SetLogLevel(LogInfo)
			model := NewReplayModel(s, func() *engine.Engine { return c.newEngine(cfg) })
			final, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return err
			}
			if m, ok := final.(ReplayModel); ok {
				printInfo("Replayed %d of %d steps", len(m.deltas), len(s.Steps))
			}
			return nil
		},
	}
}
