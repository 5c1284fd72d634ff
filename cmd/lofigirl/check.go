package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"lofigirl-terminal/internal/player"
)

const (
	depMpv   = "mpv"
	depYtdlp = "yt-dlp"
)

func newCheckCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check that mpv and yt-dlp are installed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := opts.openApp(os.Stderr, nil)
			if err != nil {
				return err
			}
			defer a.Close()

			var missing []string
			t := newTable("DEPENDENCY", "STATUS", "DETAIL")

			if path := player.FindMpv(""); path != "" {
				t.Row(depMpv, "ok", path)
			} else {
				t.Row(depMpv, "missing", "needed for YouTube and AAC/HLS streams")
				missing = append(missing, depMpv)
			}
			if v, err := a.Resolver.Version(cmd.Context()); err == nil {
				t.Row(depYtdlp, "ok", v)
			} else {
				t.Row(depYtdlp, "missing", "needed to resolve YouTube live streams")
				missing = append(missing, depYtdlp)
			}
			t.Row("built-in MP3", "ok", "fallback for direct MP3 streams")

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, t.Render())
			if len(missing) == 0 {
				fmt.Fprintln(out, "All dependencies are installed. Start with: lofigirl tui")
				return nil
			}
			for _, name := range missing {
				fmt.Fprintln(out, titleStyle.Render("Install "+name+":"))
				for _, hint := range installHints(runtime.GOOS, name) {
					fmt.Fprintln(out, "  "+hint)
				}
			}
			return nil
		},
	}
}

// installHints lists the usual ways to install name on goos.
func installHints(goos, name string) []string {
	switch name {
	case depMpv:
		switch goos {
		case "windows":
			return []string{"choco install mpv", "or download from https://mpv.io/installation/"}
		case "darwin":
			return []string{"brew install mpv"}
		default:
			return []string{"sudo apt install mpv (Debian/Ubuntu)", "sudo dnf install mpv (Fedora)"}
		}
	case depYtdlp:
		switch goos {
		case "windows":
			return []string{"choco install yt-dlp", "or pip install yt-dlp"}
		case "darwin":
			return []string{"brew install yt-dlp", "or pip install yt-dlp"}
		default:
			return []string{"pip install yt-dlp", "sudo apt install yt-dlp (Debian/Ubuntu)"}
		}
	}
	return nil
}
