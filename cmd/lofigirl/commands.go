package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"lofigirl-terminal/internal/ipc"
	"lofigirl-terminal/internal/logger"
	"lofigirl-terminal/internal/player"
	"lofigirl-terminal/internal/resolver"
	"lofigirl-terminal/internal/station"
	"lofigirl-terminal/internal/ui"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#CBA6F7"))
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...)
}

func newPlayCmd(opts *rootOptions) *cobra.Command {
	var id string
	var volume int
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a station without the interface",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := opts.openApp(os.Stderr, nil)
			if err != nil {
				return err
			}
			defer a.Close()

			if id == "" {
				id = a.Settings.DefaultStation
			}
			rec, ok := a.Registry.Get(id)
			if !ok {
				return fmt.Errorf("unknown station %q, see `lofigirl list`", id)
			}
			if !cmd.Flags().Changed("volume") {
				volume = a.Settings.DefaultVolume
			}
			if volume < 0 || volume > 100 {
				return fmt.Errorf("%w: %d", player.ErrOutOfRange, volume)
			}

			sess, err := a.NewSession(volume)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return playUntilDone(ctx, cmd, sess, rec)
		},
	}
	cmd.Flags().StringVarP(&id, "station", "s", "", "station id (default: default_station)")
	cmd.Flags().IntVarP(&volume, "volume", "v", 0, "volume 0-100 (default: default_volume)")
	return cmd
}

// playUntilDone prints state changes until ctx ends or the stream stops.
func playUntilDone(ctx context.Context, cmd *cobra.Command, sess *player.Session, rec station.Record) error {
	out := cmd.OutOrStdout()
	sess.OnStateChange(func(st player.State) {
		fmt.Fprintf(out, "[%s] %s\n", time.Now().Format("15:04:05"), st)
	})

	fmt.Fprintln(out, titleStyle.Render("♪ "+rec.Name))
	if err := sess.Load(ctx, rec); err != nil {
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}
	if err := sess.Play(); err != nil {
		return err
	}
	fmt.Fprintln(out, "Press Ctrl+C to stop.")

	for {
		select {
		case <-ctx.Done():
			fmt.Fprintln(out, "Stopping...")
			return sess.Stop()
		case <-sess.Done():
			return nil
		case ev, ok := <-sess.Events():
			if !ok {
				return nil
			}
			sess.Apply(ev)
			snap := sess.Snapshot()
			switch snap.State {
			case player.StateError:
				return snap.Err
			case player.StateStopped:
				fmt.Fprintln(out, "Stream ended.")
				return nil
			}
		}
	}
}

func newListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available stations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := opts.openApp(os.Stderr, nil)
			if err != nil {
				return err
			}
			defer a.Close()

			t := newTable("ID", "NAME", "GENRE", "DESCRIPTION")
			for _, rec := range a.Registry.List() {
				t.Row(rec.ID, rec.Name, rec.Genre, rec.Description)
			}
			fmt.Fprintln(cmd.OutOrStdout(), t.Render())
			return nil
		},
	}
}

func newInfoCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := opts.openApp(os.Stderr, nil)
			if err != nil {
				return err
			}
			defer a.Close()

			s := a.Settings
			ytdlp := "not installed"
			if v, err := a.Resolver.Version(cmd.Context()); err == nil {
				ytdlp = v
			}
			cache := "disabled"
			if s.AudioCacheEnabled {
				cache = s.CacheDir()
			}

			t := newTable("SETTING", "VALUE")
			t.Rows(
				[]string{"Version", s.AppVersion},
				[]string{"Config dir", s.Dir},
				[]string{"Log file", filepath.Join(s.Dir, logger.FileName)},
				[]string{"Log level", s.LogLevel},
				[]string{"Default volume", strconv.Itoa(s.DefaultVolume)},
				[]string{"Audio quality", s.AudioQuality},
				[]string{"Audio cache", cache},
				[]string{"Connection timeout", strconv.Itoa(s.ConnectionTimeout) + "s"},
				[]string{"Retry attempts", strconv.Itoa(s.RetryAttempts)},
				[]string{"Stream buffer", strconv.Itoa(s.StreamBufferSize)},
				[]string{"Theme", s.Theme},
				[]string{"ASCII art", s.AsciiArt},
				[]string{"UI style", s.UIStyle},
				[]string{"Visualizer", strconv.FormatBool(s.ShowVisualizer)},
				[]string{"Default station", s.DefaultStation},
				[]string{"History limit", strconv.Itoa(s.HistoryLimit)},
				[]string{"Discord presence", strconv.FormatBool(s.DiscordPresence)},
				[]string{"yt-dlp", ytdlp},
			)
			fmt.Fprintln(cmd.OutOrStdout(), t.Render())
			return nil
		},
	}
}

func newStationInfoCmd(opts *rootOptions) *cobra.Command {
	var id string
	cmd := &cobra.Command{
		Use:   "station-info",
		Short: "Show station details and live stream metadata",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := opts.openApp(os.Stderr, nil)
			if err != nil {
				return err
			}
			defer a.Close()

			rec, ok := a.Registry.Get(id)
			if !ok {
				return fmt.Errorf("unknown station %q, see `lofigirl list`", id)
			}

			t := newTable("FIELD", "VALUE")
			t.Rows(
				[]string{"ID", rec.ID},
				[]string{"Name", rec.Name},
				[]string{"Genre", rec.Genre},
				[]string{"Description", rec.Description},
				[]string{"URL", rec.URL},
			)

			if resolver.NeedsResolution(rec.URL) {
				info, err := a.Resolver.Info(cmd.Context(), rec.URL)
				switch {
				case errors.Is(err, resolver.ErrNotInstalled):
					t.Row("Stream", "install yt-dlp for live metadata")
				case err != nil:
					return err
				default:
					t.Rows(
						[]string{"Title", info.Title},
						[]string{"Live", strconv.FormatBool(info.IsLive)},
						[]string{"Format", strings.TrimSpace(info.FormatID + " " + info.FormatNote)},
						[]string{"Thumbnail", info.Thumbnail},
					)
				}
			} else {
				t.Row("Stream", "direct")
			}
			fmt.Fprintln(cmd.OutOrStdout(), t.Render())
			return nil
		},
	}
	cmd.Flags().StringVarP(&id, "station", "s", "", "station id")
	_ = cmd.MarkFlagRequired("station")
	return cmd
}

func newHistoryCmd(opts *rootOptions) *cobra.Command {
	var limit int
	var wipe bool
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recently played stations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := opts.openApp(os.Stderr, nil)
			if err != nil {
				return err
			}
			defer a.Close()

			store, err := a.OpenHistory()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if wipe {
				if err := store.Clear(); err != nil {
					return err
				}
				fmt.Fprintln(out, "History cleared.")
				return nil
			}

			entries, err := store.Recent(limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(out, "Nothing played yet.")
				return nil
			}
			t := newTable("PLAYED", "STATION", "NAME")
			for _, e := range entries {
				t.Row(e.PlayedAt.Local().Format("2006-01-02 15:04"), e.StationID, e.Name)
			}
			fmt.Fprintln(out, t.Render())
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "number", "n", 10, "number of entries")
	cmd.Flags().BoolVar(&wipe, "clear", false, "delete all history")
	return cmd
}

func newThemesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List color themes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t := newTable("SLUG", "NAME", "DESCRIPTION")
			for _, th := range ui.Themes {
				t.Row(th.Slug, th.Name, th.Description)
			}
			fmt.Fprintln(cmd.OutOrStdout(), t.Render())
			return nil
		},
	}
}

func newArtsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "arts",
		Short: "List ASCII art",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t := newTable("ID", "NAME", "FRAMES", "DESCRIPTION")
			for _, art := range ui.Arts {
				t.Row(art.ID, art.Name, strconv.Itoa(len(art.Frames)), art.Description)
			}
			fmt.Fprintln(cmd.OutOrStdout(), t.Render())
			return nil
		},
	}
}

func newCtlCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ctl COMMAND",
		Short: "Send a command to a running player",
		Long:  "Commands: PLAY_PAUSE, PLAY, STOP, NEXT, PREV, MUTE, STATUS, PING, QUIT.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reply, err := ipc.SendCommand(strings.ToUpper(args[0]))
			if err != nil {
				return err
			}
			if reply == "" {
				reply = "OK"
			}
			fmt.Fprintln(cmd.OutOrStdout(), reply)
			return nil
		},
	}
}
