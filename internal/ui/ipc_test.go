package ui

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/buger/jsonparser"
	tea "github.com/charmbracelet/bubbletea"

	"lofigirl-terminal/internal/ipc"
	"lofigirl-terminal/internal/player"
	"lofigirl-terminal/internal/station"
)

func TestParseIPCCommand(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		// Valid commands
		{"simple command", "play", "PLAY", false},
		{"uppercase command", "STOP", "STOP", false},
		{"mixed case", "PlAy", "PLAY", false},
		{"with leading space", "  play", "PLAY", false},
		{"with trailing space", "stop  ", "STOP", false},
		{"with both spaces", "  toggle  ", "TOGGLE", false},

		// Invalid commands
		{"empty string", "", "", true},
		{"whitespace only", "   ", "", true},
		{"tabs only", "\t\t", "", true},
		{"newlines only", "\n\n", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := parseIPCCommand(tt.input)

			if tt.wantErr {
				if err == nil {
					t.Error("parseIPCCommand() should return error")
				}
				return
			}

			if err != nil {
				t.Fatalf("parseIPCCommand() error = %v", err)
			}
			if result != tt.expected {
				t.Errorf("parseIPCCommand(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestParseIPCCommand_CommonCommands(t *testing.T) {
	// Test common IPC commands that the app might receive
	commands := []string{
		"PLAY",
		"STOP",
		"TOGGLE",
		"NEXT",
		"PREV",
		"STATUS",
		"QUIT",
	}

	for _, cmd := range commands {
		t.Run(cmd, func(t *testing.T) {
			result, err := parseIPCCommand(cmd)
			if err != nil {
				t.Fatalf("parseIPCCommand(%q) error = %v", cmd, err)
			}
			if result != cmd {
				t.Errorf("parseIPCCommand(%q) = %q, want %q", cmd, result, cmd)
			}
		})
	}
}

func TestFormatIPCReply(t *testing.T) {
	tests := []struct {
		name     string
		reply    ipcReply
		expected string
	}{
		{"ok without data", ipcReply{ok: true}, "OK"},
		{"ok with data", ipcReply{ok: true, data: "PONG"}, "PONG"},
		{"error", ipcReply{err: "unknown command"}, "ERR unknown command"},
		{"error without message", ipcReply{}, "ERR failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatIPCReply(tt.reply); got != tt.expected {
				t.Errorf("formatIPCReply() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestIPCMsg_Struct(t *testing.T) {
	// Test ipcMsg struct construction
	replyChan := make(chan ipcReply, 1)
	msg := ipcMsg{
		cmd:   "PLAY",
		reply: replyChan,
	}

	if msg.cmd != "PLAY" {
		t.Errorf("msg.cmd = %q, want %q", msg.cmd, "PLAY")
	}

	// Test channel works
	go func() {
		msg.reply <- ipcReply{ok: true, data: "Playing"}
	}()

	reply := <-msg.reply
	if !reply.ok {
		t.Error("reply should be ok")
	}
	if reply.data != "Playing" {
		t.Errorf("reply.data = %q, want %q", reply.data, "Playing")
	}
}

// sendIPC runs one control command through the model and returns the reply.
func sendIPC(t *testing.T, m Model, cmd string) (Model, ipcReply, tea.Cmd) {
	t.Helper()
	reply := make(chan ipcReply, 1)
	next, teaCmd := m.Update(ipcMsg{cmd: cmd, reply: reply})
	select {
	case r := <-reply:
		return next.(Model), r, teaCmd
	default:
		t.Fatalf("no reply for %q", cmd)
		return next.(Model), ipcReply{}, teaCmd
	}
}

func TestHandleIPC_Replies(t *testing.T) {
	tests := []struct {
		name   string
		cmd    string
		ok     bool
		data   string
		errMsg string
	}{
		{"ping", "ping\n", true, "PONG", ""},
		{"unknown", "DANCE", false, "", "unknown command"},
		{"empty", "  \n", false, "", "empty command"},
		{"stop", "STOP", true, "", ""},
		{"mute", "mute", true, "", ""},
		{"next selects", "NEXT", true, "SELECTED Jazz Cafe", ""},
		{"prev wraps", "PREV", true, "SELECTED Synth Night", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(t, nil).model
			_, reply, _ := sendIPC(t, m, tt.cmd)
			if reply.ok != tt.ok {
				t.Fatalf("reply.ok = %v, want %v (err %q)", reply.ok, tt.ok, reply.err)
			}
			if reply.data != tt.data {
				t.Errorf("reply.data = %q, want %q", reply.data, tt.data)
			}
			if reply.err != tt.errMsg {
				t.Errorf("reply.err = %q, want %q", reply.err, tt.errMsg)
			}
		})
	}
}

func TestHandleIPC_PlayPause(t *testing.T) {
	env := newTestModel(t, nil)

	m, reply, cmd := sendIPC(t, env.model, "PLAY_PAUSE")
	if !reply.ok {
		t.Fatalf("PLAY_PAUSE reply = %+v", reply)
	}
	m = settle(t, m, cmd)
	if got := env.session.State(); got != player.StatePlaying {
		t.Fatalf("state = %s, want PLAYING", got)
	}

	m, _, cmd = sendIPC(t, m, "toggle")
	settle(t, m, cmd)
	if got := env.session.State(); got != player.StatePaused {
		t.Errorf("state = %s, want PAUSED", got)
	}
}

func TestHandleIPC_Status(t *testing.T) {
	env := newTestModel(t, nil)
	m := press(t, env.model, " ")

	_, reply, _ := sendIPC(t, m, "STATUS")
	if !reply.ok {
		t.Fatalf("STATUS reply = %+v", reply)
	}
	body := []byte(reply.data)

	state, err := jsonparser.GetString(body, "state")
	if err != nil || state != "PLAYING" {
		t.Errorf("state = %q (%v), want PLAYING", state, err)
	}
	name, err := jsonparser.GetString(body, "station")
	if err != nil || name != "Chill Beats" {
		t.Errorf("station = %q (%v), want Chill Beats", name, err)
	}
	volume, err := jsonparser.GetInt(body, "volume")
	if err != nil || volume != 50 {
		t.Errorf("volume = %d (%v), want 50", volume, err)
	}
	muted, err := jsonparser.GetBoolean(body, "muted")
	if err != nil || muted {
		t.Errorf("muted = %v (%v), want false", muted, err)
	}
}

func TestHandleIPC_StatusEscapesStationName(t *testing.T) {
	name := "Lo\"fi \\ Caf\u00e9 \u2615\x01\ttab\u2028"
	env := newTestModel(t, func(d *Deps) {
		registry, err := station.NewRegistry(station.New("odd", name, "https://radio.example/odd.mp3", "", "lofi"))
		if err != nil {
			t.Fatalf("NewRegistry() error = %v", err)
		}
		d.Registry = registry
	})
	m := press(t, env.model, " ")

	_, reply, _ := sendIPC(t, m, "STATUS")
	var status struct {
		State   string `json:"state"`
		Station string `json:"station"`
		Volume  int    `json:"volume"`
		Muted   bool   `json:"muted"`
	}
	if err := json.Unmarshal([]byte(reply.data), &status); err != nil {
		t.Fatalf("STATUS reply %q is not JSON: %v", reply.data, err)
	}
	if status.Station != name {
		t.Errorf("station = %q, want %q", status.Station, name)
	}
	if status.State != "PLAYING" || status.Volume != 50 {
		t.Errorf("status = %+v", status)
	}
	if got, err := jsonparser.GetString([]byte(reply.data), "station"); err != nil || got != name {
		t.Errorf("jsonparser station = %q (%v)", got, err)
	}
}

func TestHandleIPC_StatusWithoutStation(t *testing.T) {
	m := newTestModel(t, nil).model
	_, reply, _ := sendIPC(t, m, "STATUS")

	name, err := jsonparser.GetString([]byte(reply.data), "station")
	if err != nil || name != "-" {
		t.Errorf("station = %q (%v), want -", name, err)
	}
}

func TestHandleIPC_Quit(t *testing.T) {
	m := newTestModel(t, nil).model
	_, reply, cmd := sendIPC(t, m, "QUIT")
	if !reply.ok {
		t.Fatalf("QUIT reply = %+v", reply)
	}
	if cmd == nil {
		t.Fatal("QUIT should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("QUIT should quit the program")
	}
}

func TestIPCReady_AnotherInstance(t *testing.T) {
	m := newTestModel(t, nil).model

	next, cmd := m.Update(ipcReadyMsg{err: fmt.Errorf("control socket: %w", ipc.ErrAlreadyRunning)})
	m = next.(Model)
	if cmd != nil {
		t.Error("no listener should be started")
	}
	if m.ipc != nil {
		t.Error("ipc server should stay unset")
	}
	if m.notice != "Another player owns the remote controls" || m.noticeErr {
		t.Errorf("notice = %q (err %v)", m.notice, m.noticeErr)
	}
}
