package main

import (
	"bytes"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lofigirl-terminal/internal/config"
	"lofigirl-terminal/internal/player"
	"lofigirl-terminal/internal/ui"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--config-dir", t.TempDir(), "--no-audio"}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestListCommand(t *testing.T) {
	out, err := run(t, "list")
	require.NoError(t, err)

	for _, want := range []string{"ID", "lofi-hip-hop", "lofi-sleep", "synthwave", "lofi-jazz"} {
		assert.Contains(t, out, want)
	}
}

func TestThemesCommand(t *testing.T) {
	out, err := run(t, "themes")
	require.NoError(t, err)

	for _, th := range ui.Themes {
		assert.Contains(t, out, th.Slug)
	}
}

func TestArtsCommand(t *testing.T) {
	out, err := run(t, "arts")
	require.NoError(t, err)

	for _, art := range ui.Arts {
		assert.Contains(t, out, art.ID)
	}
}

func TestInfoCommand(t *testing.T) {
	out, err := run(t, "info")
	require.NoError(t, err)

	assert.Contains(t, out, "catppuccin-mocha")
	assert.Contains(t, out, "lofigirl.log")
	assert.Contains(t, out, "yt-dlp")
}

func TestHistoryCommand_Empty(t *testing.T) {
	out, err := run(t, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "Nothing played yet.")

	out, err = run(t, "history", "--clear")
	require.NoError(t, err)
	assert.Contains(t, out, "History cleared.")
}

func TestStationInfo_RequiresStation(t *testing.T) {
	_, err := run(t, "station-info")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "station")
}

func TestStationInfo_UnknownStation(t *testing.T) {
	_, err := run(t, "station-info", "-s", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown station "nope"`)
}

func TestPlay_Validation(t *testing.T) {
	_, err := run(t, "play", "-s", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown station")

	_, err = run(t, "play", "-s", "lofi-jazz", "-v", "120")
	assert.ErrorIs(t, err, player.ErrOutOfRange)
}

func TestTUI_RequiresTerminal(t *testing.T) {
	_, err := run(t, "tui")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "interactive terminal"))
}

func TestCtl_NoRunningPlayer(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", t.TempDir())
	_, err := run(t, "ctl", "ping")
	assert.Error(t, err)
}

func TestCtl_RequiresOneArgument(t *testing.T) {
	_, err := run(t, "ctl")
	assert.Error(t, err)
}

func TestCheckCommand_MissingDependencies(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	out, err := run(t, "check")
	require.NoError(t, err)

	assert.Contains(t, out, "DEPENDENCY")
	assert.Contains(t, out, "missing")
	assert.Contains(t, out, "built-in MP3")
	assert.Contains(t, out, "Install mpv:")
	assert.Contains(t, out, "Install yt-dlp:")
	for _, hint := range installHints(runtime.GOOS, depYtdlp) {
		assert.Contains(t, out, hint)
	}
	assert.NotContains(t, out, "All dependencies are installed")
}

func TestInstallHints(t *testing.T) {
	tests := []struct {
		goos, name string
		want       string
	}{
		{"windows", depMpv, "choco install mpv"},
		{"darwin", depMpv, "brew install mpv"},
		{"linux", depMpv, "sudo apt install mpv (Debian/Ubuntu)"},
		{"freebsd", depMpv, "sudo dnf install mpv (Fedora)"},
		{"windows", depYtdlp, "choco install yt-dlp"},
		{"darwin", depYtdlp, "brew install yt-dlp"},
		{"linux", depYtdlp, "pip install yt-dlp"},
	}

	for _, tt := range tests {
		t.Run(tt.goos+"/"+tt.name, func(t *testing.T) {
			assert.Contains(t, installHints(tt.goos, tt.name), tt.want)
		})
	}
	assert.Empty(t, installHints("linux", "ffmpeg"))
}

func TestSetup_RequiresTerminal(t *testing.T) {
	_, err := run(t, "setup")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "interactive terminal")
}

func TestSaveSetup(t *testing.T) {
	dir := t.TempDir()
	choices := ui.SetupChoices{Theme: "dracula", Font: "Hack Nerd Font", Art: "vinyl-record", LiveScan: true}
	require.NoError(t, saveSetup(dir, choices))
	require.True(t, config.Configured(dir))

	s, err := config.Load(config.LoadOptions{Dir: dir})
	require.NoError(t, err)
	assert.Equal(t, "dracula", s.Theme)
	assert.Equal(t, "Hack Nerd Font", s.TerminalFont)
	assert.Equal(t, "vinyl-record", s.AsciiArt)
	assert.True(t, s.LiveScan)
}

func TestWithLiveScan(t *testing.T) {
	assert.Equal(t, map[string]any{"live_scan": true}, withLiveScan(nil))
	assert.Equal(t, map[string]any{"live_scan": true, "ui_style": "compact"},
		withLiveScan(map[string]any{"ui_style": "compact"}))
}

func TestLiveFlag_KeepsStationsWithoutYtdlp(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	out, err := run(t, "--live", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "lofi-hip-hop")
	assert.NotContains(t, out, "lofi-live-")
}
