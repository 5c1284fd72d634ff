package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"lofigirl-terminal/internal/app"
)

const version = "0.1.0"

type rootOptions struct {
	configDir string
	debug     bool
	noAudio   bool
	live      bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "lofigirl",
		Short:         "Lofi radio in your terminal",
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(opts, false)
		},
	}
	flags := root.PersistentFlags()
	flags.StringVar(&opts.configDir, "config-dir", "", "configuration directory (default: user config dir)")
	flags.BoolVar(&opts.debug, "debug", false, "enable debug logging")
	flags.BoolVar(&opts.noAudio, "no-audio", false, "run without an audio engine")
	flags.BoolVar(&opts.live, "live", false, "list Lofi Girl live streams instead of the built-in stations")

	root.AddCommand(
		newTUICmd(opts),
		newPlayCmd(opts),
		newListCmd(opts),
		newInfoCmd(opts),
		newStationInfoCmd(opts),
		newHistoryCmd(opts),
		newThemesCmd(),
		newArtsCmd(),
		newCtlCmd(),
		newCheckCmd(opts),
		newSetupCmd(opts),
	)
	return root
}

// openApp builds the App. Console output is for commands that do not own the terminal.
func (o *rootOptions) openApp(console io.Writer, overrides map[string]any) (*app.App, error) {
	if o.live {
		overrides = withLiveScan(overrides)
	}
	return app.New(app.Options{
		ConfigDir: o.configDir,
		Debug:     o.debug,
		NoAudio:   o.noAudio,
		Console:   console,
		Overrides: overrides,
	})
}

func withLiveScan(overrides map[string]any) map[string]any {
	merged := map[string]any{"live_scan": true}
	for k, v := range overrides {
		merged[k] = v
	}
	return merged
}

func newTUICmd(opts *rootOptions) *cobra.Command {
	var compact bool
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Start the interactive player",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(opts, compact)
		},
	}
	cmd.Flags().BoolVar(&compact, "compact", false, "start in the compact skin")
	return cmd
}

func runTUI(opts *rootOptions, compact bool) error {
	if !interactive() {
		return fmt.Errorf("tui needs an interactive terminal, try `lofigirl play`")
	}

	var overrides map[string]any
	if compact {
		overrides = map[string]any{"ui_style": "compact"}
	}
	a, err := opts.openApp(nil, overrides)
	if err != nil {
		return err
	}
	defer a.Close()

	return a.RunTUI(true)
}
