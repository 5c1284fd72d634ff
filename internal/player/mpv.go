package player

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/buger/jsonparser"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	socketCheckRetries  = 20
	socketCheckInterval = 100 * time.Millisecond
	mpvReplyTimeout     = 2 * time.Second

	observePause          = 1
	observePausedForCache = 2
)

// MpvEngine drives an idle mpv process over its JSON IPC socket.
type MpvEngine struct {
	path       string
	opts       EngineOptions
	log        zerolog.Logger
	socketPath string

	mu     sync.Mutex
	cmd    *exec.Cmd
	conn   net.Conn
	muted  bool
	volume int

	writeMu   sync.Mutex
	nextID    atomic.Int64
	pendingMu sync.Mutex
	pending   map[int64]chan mpvReply

	events    chan EngineEvent
	done      chan struct{}
	readers   sync.WaitGroup
	closeOnce sync.Once
}

type mpvCommand struct {
	Command   []any `json:"command"`
	RequestID int64 `json:"request_id,omitempty"`
}

type mpvReply struct {
	data []byte
	err  error
}

func NewMpvEngine(path string, opts EngineOptions) *MpvEngine {
	return &MpvEngine{
		path:       path,
		opts:       opts,
		log:        opts.Logger.With().Str("engine", "mpv").Logger(),
		socketPath: filepath.Join(os.TempDir(), "lofigirl-mpv-"+uuid.NewString()[:8]+".sock"),
		volume:     opts.Volume,
		pending:    make(map[int64]chan mpvReply),
		events:     make(chan EngineEvent, engineEventBuffer),
		done:       make(chan struct{}),
	}
}

func mpvArgs(socketPath string, opts EngineOptions, volume int, muted bool) []string {
	args := []string{
		"--idle=yes",
		"--input-ipc-server=" + socketPath,
		"--no-video",
		"--no-terminal",
		"--really-quiet",
		"--reset-on-next-file=pause",
		"--volume=" + strconv.Itoa(volume),
		"--cache=yes",
		"--cache-secs=30",
		"--demuxer-max-bytes=50M",
		"--demuxer-max-back-bytes=30M",
	}
	if muted {
		args = append(args, "--mute=yes")
	}
	if opts.StreamBufferSize > 0 {
		args = append(args, "--stream-buffer-size="+strconv.Itoa(opts.StreamBufferSize))
	}
	if opts.YtdlFormat != "" {
		args = append(args, "--ytdl-format="+opts.YtdlFormat)
	}
	if opts.CacheDir != "" {
		args = append(args, "--cache-on-disk=yes", "--demuxer-cache-dir="+opts.CacheDir)
	}
	return args
}

func (e *MpvEngine) Start(ctx context.Context, url string) error {
	if url == "" {
		return errors.New("stream url is required")
	}
	if err := e.ensureProcess(ctx); err != nil {
		return err
	}
	if _, err := e.command("loadfile", url, "replace"); err != nil {
		return err
	}
	// pause survives stop and loadfile
	_, err := e.command("set_property", "pause", false)
	return err
}

func (e *MpvEngine) ensureProcess(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	select {
	case <-e.done:
		return ErrEngineUnavailable
	default:
	}
	if e.conn != nil {
		return nil
	}

	_ = os.Remove(e.socketPath)
	cmd := exec.Command(e.path, mpvArgs(e.socketPath, e.opts, e.volume, e.muted)...)
	cmd.Stdout = e.log
	cmd.Stderr = e.log
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%w: could not start mpv: %v", ErrEngineUnavailable, err)
	}
	e.log.Info().Int("pid", cmd.Process.Pid).Msg("started mpv")
	go func() { _ = cmd.Wait() }()

	conn, err := dialSocket(ctx, e.socketPath)
	if err != nil {
		_ = cmd.Process.Kill()
		return fmt.Errorf("%w: %v", ErrEngineUnavailable, err)
	}

	e.cmd = cmd
	e.attach(conn)

	for id, name := range map[int]string{observePause: "pause", observePausedForCache: "paused-for-cache"} {
		if err := e.writeTo(conn, mpvCommand{Command: []any{"observe_property", id, name}}); err != nil {
			return err
		}
	}
	return nil
}

func dialSocket(ctx context.Context, path string) (net.Conn, error) {
	var d net.Dialer
	var lastErr error
	for range socketCheckRetries {
		if _, err := os.Stat(path); err == nil {
			conn, err := d.DialContext(ctx, "unix", path)
			if err == nil {
				return conn, nil
			}
			lastErr = err
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(socketCheckInterval):
		}
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return nil, fmt.Errorf("mpv socket did not appear at %s", path)
}

// attach starts the reader for conn. Callers hold e.mu.
func (e *MpvEngine) attach(conn net.Conn) {
	e.conn = conn
	e.readers.Add(1)
	go e.readLoop(conn)
}

func (e *MpvEngine) readLoop(conn net.Conn) {
	defer e.readers.Done()

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()

		if _, err := jsonparser.GetString(line, "event"); err != nil {
			if id, err := jsonparser.GetInt(line, "request_id"); err == nil {
				e.deliver(id, parseReply(line))
			}
			continue
		}

		if ev, ok := parseEvent(line); ok {
			e.emit(ev)
		}
	}

	e.mu.Lock()
	if e.conn == conn {
		e.conn = nil
		e.cmd = nil
	}
	e.mu.Unlock()
	e.failPending(errors.New("mpv connection closed"))

	select {
	case <-e.done:
	default:
		e.log.Warn().Err(scanner.Err()).Msg("mpv exited")
		e.emit(EngineEvent{Kind: EngineFailed, Err: fmt.Errorf("%w: mpv exited", ErrEngineError)})
	}
}

func parseReply(line []byte) mpvReply {
	status, _ := jsonparser.GetString(line, "error")
	if status != "success" {
		return mpvReply{err: fmt.Errorf("mpv: %s", status)}
	}
	data, _, _, err := jsonparser.Get(line, "data")
	if err != nil {
		return mpvReply{}
	}
	return mpvReply{data: append([]byte(nil), data...)}
}

// parseEvent maps an mpv IPC event line onto an EngineEvent.
func parseEvent(line []byte) (EngineEvent, bool) {
	name, err := jsonparser.GetString(line, "event")
	if err != nil {
		return EngineEvent{}, false
	}

	switch name {
	case "start-file":
		return EngineEvent{Kind: EngineStartFile}, true
	case "file-loaded":
		return EngineEvent{Kind: EngineFileLoaded}, true
	case "end-file":
		reason, _ := jsonparser.GetString(line, "reason")
		ev := EngineEvent{Kind: EngineEndFile, Reason: reason}
		if reason == "error" {
			detail, _ := jsonparser.GetString(line, "file_error")
			if detail == "" {
				detail = "playback failed"
			}
			ev.Err = fmt.Errorf("%w: %s", ErrEngineError, detail)
		}
		return ev, true
	case "property-change":
		prop, _ := jsonparser.GetString(line, "name")
		value, err := jsonparser.GetBoolean(line, "data")
		if err != nil {
			return EngineEvent{}, false
		}
		switch prop {
		case "pause":
			if value {
				return EngineEvent{Kind: EnginePaused}, true
			}
			return EngineEvent{Kind: EngineResumed}, true
		case "paused-for-cache":
			if value {
				return EngineEvent{Kind: EngineBufferingStarted}, true
			}
			return EngineEvent{Kind: EngineBufferingEnded}, true
		}
	}
	return EngineEvent{}, false
}

func (e *MpvEngine) emit(ev EngineEvent) {
	select {
	case e.events <- ev:
	case <-e.done:
	}
}

func (e *MpvEngine) deliver(id int64, reply mpvReply) {
	e.pendingMu.Lock()
	ch, ok := e.pending[id]
	delete(e.pending, id)
	e.pendingMu.Unlock()
	if ok {
		ch <- reply
	}
}

func (e *MpvEngine) failPending(err error) {
	e.pendingMu.Lock()
	defer e.pendingMu.Unlock()
	for id, ch := range e.pending {
		ch <- mpvReply{err: err}
		delete(e.pending, id)
	}
}

func (e *MpvEngine) write(cmd mpvCommand) error {
	e.mu.Lock()
	conn := e.conn
	e.mu.Unlock()
	if conn == nil {
		return ErrEngineUnavailable
	}
	return e.writeTo(conn, cmd)
}

func (e *MpvEngine) writeTo(conn net.Conn, cmd mpvCommand) error {
	data, err := json.Marshal(cmd)
	if err != nil {
		return err
	}
	data = append(data, '\n')

	e.writeMu.Lock()
	defer e.writeMu.Unlock()
	_ = conn.SetWriteDeadline(time.Now().Add(mpvReplyTimeout))
	if _, err := conn.Write(data); err != nil {
		return fmt.Errorf("error sending mpv command: %w", err)
	}
	return nil
}

// command sends args and waits for the matching reply.
func (e *MpvEngine) command(args ...any) ([]byte, error) {
	id := e.nextID.Add(1)
	ch := make(chan mpvReply, 1)

	e.pendingMu.Lock()
	e.pending[id] = ch
	e.pendingMu.Unlock()

	if err := e.write(mpvCommand{Command: args, RequestID: id}); err != nil {
		e.pendingMu.Lock()
		delete(e.pending, id)
		e.pendingMu.Unlock()
		return nil, err
	}

	select {
	case reply := <-ch:
		return reply.data, reply.err
	case <-time.After(mpvReplyTimeout):
		e.pendingMu.Lock()
		delete(e.pending, id)
		e.pendingMu.Unlock()
		return nil, fmt.Errorf("mpv did not answer %v", args[0])
	case <-e.done:
		return nil, ErrEngineUnavailable
	}
}

func (e *MpvEngine) running() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.conn != nil
}

func (e *MpvEngine) Pause() error {
	if !e.running() {
		return nil
	}
	_, err := e.command("set_property", "pause", true)
	return err
}

func (e *MpvEngine) Resume() error {
	if !e.running() {
		return nil
	}
	_, err := e.command("set_property", "pause", false)
	return err
}

func (e *MpvEngine) Stop() error {
	if !e.running() {
		return nil
	}
	_, err := e.command("stop")
	return err
}

func (e *MpvEngine) SetVolume(volume int) error {
	e.mu.Lock()
	e.volume = volume
	e.mu.Unlock()
	if !e.running() {
		return nil
	}
	_, err := e.command("set_property", "volume", volume)
	return err
}

func (e *MpvEngine) SetMute(muted bool) error {
	e.mu.Lock()
	e.muted = muted
	e.mu.Unlock()
	if !e.running() {
		return nil
	}
	_, err := e.command("set_property", "mute", muted)
	return err
}

func (e *MpvEngine) Position() (float64, bool) {
	return e.floatProperty("time-pos")
}

func (e *MpvEngine) Duration() (float64, bool) {
	return e.floatProperty("duration")
}

func (e *MpvEngine) floatProperty(name string) (float64, bool) {
	if !e.running() {
		return 0, false
	}
	data, err := e.command("get_property", name)
	if err != nil || len(data) == 0 {
		return 0, false
	}
	value, err := jsonparser.ParseFloat(data)
	if err != nil {
		return 0, false
	}
	return value, true
}

func (e *MpvEngine) Events() <-chan EngineEvent {
	return e.events
}

func (e *MpvEngine) Close() error {
	e.closeOnce.Do(func() {
		close(e.done)

		e.mu.Lock()
		if e.conn != nil {
			_ = e.conn.Close()
		}
		if e.cmd != nil && e.cmd.Process != nil {
			if err := e.cmd.Process.Kill(); err != nil {
				e.log.Error().Err(err).Msg("error terminating mpv process")
			}
		}
		e.mu.Unlock()

		e.readers.Wait()
		close(e.events)
		_ = os.Remove(e.socketPath)
	})
	return nil
}

var _ Engine = (*MpvEngine)(nil)
