package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/buger/jsonparser"
	"github.com/getlantern/systray"

	"lofigirl-terminal/internal/app"
	"lofigirl-terminal/internal/ipc"
)

const (
	cmdPlayPause = "PLAY_PAUSE"
	cmdStop      = "STOP"
	cmdNext      = "NEXT"
	cmdPrev      = "PREV"
	cmdMute      = "MUTE"
	cmdQuit      = "QUIT"
	cmdStatus    = "STATUS"

	trayTitle    = "Lofi"
	pollInterval = 2 * time.Second
)

var (
	configDir = flag.String("config-dir", "", "configuration directory (default: user config dir)")
	debug     = flag.Bool("debug", false, "enable debug logging")
	noAudio   = flag.Bool("no-audio", false, "run without an audio engine")
)

func main() {
	flag.Parse()
	systray.Run(onReady, onExit)
}

func onReady() {
	systray.SetTitle(trayTitle)
	systray.SetTooltip("Lofigirl Terminal")

	mPlayPause := systray.AddMenuItem("Play/Pause", "Toggle playback")
	mStop := systray.AddMenuItem("Stop", "Stop playback")
	mNext := systray.AddMenuItem("Next", "Next station")
	mPrev := systray.AddMenuItem("Previous", "Previous station")
	mMute := systray.AddMenuItem("Mute", "Toggle mute")
	systray.AddSeparator()
	mQuit := systray.AddMenuItem("Quit", "Quit Lofigirl Terminal")
	controls := []*systray.MenuItem{mPlayPause, mStop, mNext, mPrev, mMute}

	go func() {
		if err := runTUI(); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		systray.Quit()
	}()

	forward := func(item *systray.MenuItem, command string) {
		for range item.ClickedCh {
			_, _ = ipc.SendCommand(command)
		}
	}
	go forward(mPlayPause, cmdPlayPause)
	go forward(mStop, cmdStop)
	go forward(mNext, cmdNext)
	go forward(mPrev, cmdPrev)
	go forward(mMute, cmdMute)
	go func() {
		for range mQuit.ClickedCh {
			_, _ = ipc.SendCommand(cmdQuit)
			systray.Quit()
		}
	}()

	go func() {
		ticker := time.NewTicker(pollInterval)
		defer ticker.Stop()
		for range ticker.C {
			status, err := ipc.SendCommand(cmdStatus)
			if err != nil {
				systray.SetTooltip("Lofigirl Terminal (disconnected)")
				for _, item := range controls {
					item.Disable()
				}
				continue
			}
			title, tooltip := describeStatus([]byte(status))
			systray.SetTitle(title)
			systray.SetTooltip(tooltip)
			for _, item := range controls {
				item.Enable()
			}
		}
	}()
}

func onExit() {
	_, _ = ipc.SendCommand(cmdQuit)
}

// describeStatus turns a STATUS reply into the tray title and tooltip.
func describeStatus(status []byte) (string, string) {
	state, err := jsonparser.GetString(status, "state")
	if err != nil {
		return trayTitle, "Lofigirl Terminal"
	}
	name, _ := jsonparser.GetString(status, "station")
	volume, _ := jsonparser.GetInt(status, "volume")
	muted, _ := jsonparser.GetBoolean(status, "muted")

	title := trayTitle
	if state == "PLAYING" {
		title = "♪ " + trayTitle
	}
	tooltip := fmt.Sprintf("%s: %s (vol %d%%)", state, name, volume)
	if muted {
		tooltip = fmt.Sprintf("%s: %s (muted)", state, name)
	}
	return title, tooltip
}

func runTUI() error {
	a, err := app.New(app.Options{ConfigDir: *configDir, Debug: *debug, NoAudio: *noAudio})
	if err != nil {
		return err
	}
	defer a.Close()
	return a.RunTUI(true)
}
