package player

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsExecutable(t *testing.T) {
	tmpDir := t.TempDir()

	regularFile := filepath.Join(tmpDir, "regular.txt")
	if err := os.WriteFile(regularFile, []byte("test"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	execFile := filepath.Join(tmpDir, "exec.sh")
	if err := os.WriteFile(execFile, []byte("#!/bin/sh\necho hello"), 0o755); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	exeFile := filepath.Join(tmpDir, "program.exe")
	if err := os.WriteFile(exeFile, []byte("fake exe"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	dirPath := filepath.Join(tmpDir, "subdir")
	if err := os.Mkdir(dirPath, 0o755); err != nil {
		t.Fatalf("Mkdir() error = %v", err)
	}

	tests := []struct {
		name     string
		path     string
		expected bool
	}{
		{"non-existent file", filepath.Join(tmpDir, "nonexistent"), false},
		{"regular file", regularFile, false},
		{"executable file", execFile, true},
		{"exe file", exeFile, true},
		{"directory", dirPath, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isExecutable(tt.path); got != tt.expected {
				t.Errorf("isExecutable(%q) = %v, want %v", tt.path, got, tt.expected)
			}
		})
	}
}

func TestFindMpv_Override(t *testing.T) {
	execFile := filepath.Join(t.TempDir(), "my-mpv")
	require.NoError(t, os.WriteFile(execFile, []byte("#!/bin/sh\n"), 0o755))

	assert.Equal(t, execFile, FindMpv(execFile))
	assert.Empty(t, FindMpv(filepath.Join(t.TempDir(), "missing-mpv")))
}

func TestMpvArgs(t *testing.T) {
	args := mpvArgs("/tmp/sock", EngineOptions{}, 40, false)
	assert.Contains(t, args, "--idle=yes")
	assert.Contains(t, args, "--input-ipc-server=/tmp/sock")
	assert.Contains(t, args, "--no-video")
	assert.Contains(t, args, "--reset-on-next-file=pause")
	assert.Contains(t, args, "--volume=40")
	assert.Contains(t, args, "--cache-secs=30")
	assert.Contains(t, args, "--demuxer-max-bytes=50M")
	assert.NotContains(t, args, "--mute=yes")

	args = mpvArgs("/tmp/sock", EngineOptions{
		StreamBufferSize: 8192,
		YtdlFormat:       "worstaudio/worst",
		CacheDir:         "/cache/audio",
	}, 0, true)
	assert.Contains(t, args, "--mute=yes")
	assert.Contains(t, args, "--stream-buffer-size=8192")
	assert.Contains(t, args, "--ytdl-format=worstaudio/worst")
	assert.Contains(t, args, "--cache-on-disk=yes")
	assert.Contains(t, args, "--demuxer-cache-dir=/cache/audio")
}

func TestParseEvent(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		want   EngineEventKind
		reason string
		ok     bool
	}{
		{"start", `{"event":"start-file","playlist_entry_id":1}`, EngineStartFile, "", true},
		{"loaded", `{"event":"file-loaded"}`, EngineFileLoaded, "", true},
		{"eof", `{"event":"end-file","reason":"eof"}`, EngineEndFile, "eof", true},
		{"stopped", `{"event":"end-file","reason":"stop"}`, EngineEndFile, "stop", true},
		{"paused", `{"event":"property-change","id":1,"name":"pause","data":true}`, EnginePaused, "", true},
		{"resumed", `{"event":"property-change","id":1,"name":"pause","data":false}`, EngineResumed, "", true},
		{"cache stall", `{"event":"property-change","id":2,"name":"paused-for-cache","data":true}`, EngineBufferingStarted, "", true},
		{"cache refill", `{"event":"property-change","id":2,"name":"paused-for-cache","data":false}`, EngineBufferingEnded, "", true},
		{"unavailable property", `{"event":"property-change","id":1,"name":"pause"}`, 0, "", false},
		{"other property", `{"event":"property-change","id":9,"name":"fullscreen","data":true}`, 0, "", false},
		{"unknown event", `{"event":"audio-reconfig"}`, 0, "", false},
		{"reply", `{"request_id":3,"error":"success"}`, 0, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, ok := parseEvent([]byte(tt.line))
			require.Equal(t, tt.ok, ok)
			if !ok {
				return
			}
			assert.Equal(t, tt.want, ev.Kind)
			assert.Equal(t, tt.reason, ev.Reason)
		})
	}
}

func TestParseEvent_EndFileError(t *testing.T) {
	ev, ok := parseEvent([]byte(`{"event":"end-file","reason":"error","file_error":"loading failed"}`))
	require.True(t, ok)
	assert.Equal(t, "error", ev.Reason)
	require.ErrorIs(t, ev.Err, ErrEngineError)
	assert.Contains(t, ev.Err.Error(), "loading failed")
}

// fakeMpv answers IPC commands on the server end of a pipe.
func fakeMpv(t *testing.T, server net.Conn) <-chan []any {
	t.Helper()
	seen := make(chan []any, 32)
	go func() {
		scanner := bufio.NewScanner(server)
		for scanner.Scan() {
			var cmd mpvCommand
			if err := json.Unmarshal(scanner.Bytes(), &cmd); err != nil {
				continue
			}
			seen <- cmd.Command
			if cmd.RequestID == 0 {
				continue
			}

			reply := fmt.Sprintf(`{"request_id":%d,"error":"success"}`, cmd.RequestID)
			if cmd.Command[0] == "get_property" {
				switch cmd.Command[1] {
				case "time-pos":
					reply = fmt.Sprintf(`{"data":42.5,"request_id":%d,"error":"success"}`, cmd.RequestID)
				default:
					reply = fmt.Sprintf(`{"request_id":%d,"error":"property unavailable"}`, cmd.RequestID)
				}
			}
			if _, err := server.Write([]byte(reply + "\n")); err != nil {
				return
			}
		}
	}()
	return seen
}

func attachedEngine(t *testing.T) (*MpvEngine, net.Conn, <-chan []any) {
	t.Helper()
	e := NewMpvEngine("mpv", EngineOptions{Logger: zerolog.Nop()})
	client, server := net.Pipe()
	e.mu.Lock()
	e.attach(client)
	e.mu.Unlock()
	seen := fakeMpv(t, server)
	t.Cleanup(func() {
		_ = e.Close()
		_ = server.Close()
	})
	return e, server, seen
}

func nextEngineEvent(t *testing.T, ch <-chan EngineEvent) EngineEvent {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for engine event")
		return EngineEvent{}
	}
}

func TestMpvEngine_Commands(t *testing.T) {
	e, _, seen := attachedEngine(t)

	pos, ok := e.Position()
	require.True(t, ok)
	assert.Equal(t, 42.5, pos)

	_, ok = e.Duration()
	assert.False(t, ok, "unavailable duration means a live stream")

	require.NoError(t, e.Pause())
	require.NoError(t, e.SetVolume(35))
	require.NoError(t, e.SetMute(true))
	require.NoError(t, e.Stop())

	var commands [][]any
	for range 6 {
		commands = append(commands, <-seen)
	}
	assert.Equal(t, []any{"get_property", "time-pos"}, commands[0])
	assert.Equal(t, []any{"set_property", "pause", true}, commands[2])
	assert.Equal(t, []any{"set_property", "volume", float64(35)}, commands[3])
	assert.Equal(t, []any{"set_property", "mute", true}, commands[4])
	assert.Equal(t, []any{"stop"}, commands[5])
}

func TestMpvEngine_StartAfterPauseUnpauses(t *testing.T) {
	e, _, seen := attachedEngine(t)

	require.NoError(t, e.Pause())
	require.NoError(t, e.Stop())
	require.NoError(t, e.Start(t.Context(), "https://example.com/live"))

	var commands [][]any
	for range 4 {
		commands = append(commands, <-seen)
	}
	assert.Equal(t, [][]any{
		{"set_property", "pause", true},
		{"stop"},
		{"loadfile", "https://example.com/live", "replace"},
		{"set_property", "pause", false},
	}, commands)
}

func TestMpvEngine_Events(t *testing.T) {
	e, server, _ := attachedEngine(t)

	lines := []string{
		`{"event":"start-file"}`,
		`{"event":"file-loaded"}`,
		`{"event":"property-change","id":2,"name":"paused-for-cache","data":true}`,
		`{"event":"end-file","reason":"eof"}`,
	}
	go func() {
		for _, line := range lines {
			if _, err := server.Write([]byte(line + "\n")); err != nil {
				return
			}
		}
	}()

	var kinds []EngineEventKind
	for range lines {
		kinds = append(kinds, nextEngineEvent(t, e.Events()).Kind)
	}
	assert.Equal(t, []EngineEventKind{EngineStartFile, EngineFileLoaded, EngineBufferingStarted, EngineEndFile}, kinds)
}

func TestMpvEngine_ConnectionLoss(t *testing.T) {
	e, server, _ := attachedEngine(t)

	require.NoError(t, server.Close())

	ev := nextEngineEvent(t, e.Events())
	assert.Equal(t, EngineFailed, ev.Kind)
	assert.True(t, errors.Is(ev.Err, ErrEngineError))
	assert.Eventually(t, func() bool { return !e.running() }, time.Second, 10*time.Millisecond)

	// Without a connection, controls are no-ops until the next Start.
	assert.NoError(t, e.Pause())
	assert.NoError(t, e.SetVolume(10))
	_, ok := e.Position()
	assert.False(t, ok)
}

func TestMpvEngine_CloseIsIdempotent(t *testing.T) {
	e, _, _ := attachedEngine(t)

	require.NoError(t, e.Close())
	require.NoError(t, e.Close())

	_, open := <-e.Events()
	assert.False(t, open, "Events should be closed")
	assert.ErrorIs(t, e.Start(t.Context(), "https://example.com/live"), ErrEngineUnavailable)
}

func TestMpvEngine_StartRequiresURL(t *testing.T) {
	e := NewMpvEngine("mpv", EngineOptions{Logger: zerolog.Nop()})
	defer e.Close()
	assert.Error(t, e.Start(t.Context(), ""))
}

func TestOpenEngine_FallsBackToBeep(t *testing.T) {
	stubSpeaker(t, nil)
	engine, err := OpenEngine(EngineOptions{
		MpvPath: filepath.Join(t.TempDir(), "no-such-mpv"),
		Logger:  zerolog.Nop(),
	})
	require.NoError(t, err)
	defer engine.Close()

	_, isBeep := engine.(*BeepEngine)
	assert.True(t, isBeep)
}

func TestOpenEngine_NoAudioDevice(t *testing.T) {
	stubSpeaker(t, errors.New("no such device"))
	engine, err := OpenEngine(EngineOptions{
		MpvPath: filepath.Join(t.TempDir(), "no-such-mpv"),
		Logger:  zerolog.Nop(),
	})
	require.ErrorIs(t, err, ErrEngineUnavailable)
	assert.Nil(t, engine)
	assert.Contains(t, err.Error(), "no such device")
}

func TestVolumeExponent(t *testing.T) {
	assert.Equal(t, minVolumeExp, volumeExponent(0))
	assert.Equal(t, 0.0, volumeExponent(100))
	assert.Equal(t, -1.0, volumeExponent(50))
	assert.InDelta(t, -2.0, volumeExponent(25), 1e-9)

	values := []float64{volumeExponent(1), volumeExponent(10), volumeExponent(60), volumeExponent(99)}
	assert.True(t, slices.IsSorted(values), "louder settings give larger exponents")
}
