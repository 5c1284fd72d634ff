package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"lofigirl-terminal/internal/config"
	"lofigirl-terminal/internal/ui"
)

func newSetupCmd(opts *rootOptions) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Choose theme, font, art and live streams",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !interactive() {
				return fmt.Errorf("setup needs an interactive terminal, edit config.yaml instead")
			}
			a, err := opts.openApp(nil, nil)
			if err != nil {
				return err
			}
			defer a.Close()

			out := cmd.OutOrStdout()
			s := a.Settings
			if config.Configured(s.Dir) && !force {
				fmt.Fprintf(out, "Already configured in %s, use --force to run setup again.\n", s.ConfigPath())
				return nil
			}

			current := ui.SetupChoices{Theme: s.Theme, Font: s.TerminalFont, Art: s.AsciiArt, LiveScan: s.LiveScan}
			final, err := tea.NewProgram(ui.NewSetupModel(current), tea.WithAltScreen()).Run()
			if err != nil {
				return err
			}
			choices, ok := final.(ui.SetupModel).Choices()
			if !ok {
				fmt.Fprintln(out, "Setup cancelled, nothing saved.")
				return nil
			}
			if err := saveSetup(s.Dir, choices); err != nil {
				return err
			}
			fmt.Fprintf(out, "Saved to %s. Start with: lofigirl tui\n", s.ConfigPath())
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "run even when a config file exists")
	return cmd
}

func saveSetup(dir string, c ui.SetupChoices) error {
	return config.SaveValues(dir, map[string]any{
		"theme":         c.Theme,
		"terminal_font": c.Font,
		"ascii_art":     c.Art,
		"live_scan":     c.LiveScan,
	})
}

func interactive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}
