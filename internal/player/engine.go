package player

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// Engine is the external media engine a Session drives.
type Engine interface {
	Start(ctx context.Context, url string) error
	Pause() error
	Resume() error
	Stop() error
	SetVolume(volume int) error
	SetMute(muted bool) error
	// Position and Duration report seconds; ok is false when unknown.
	Position() (float64, bool)
	Duration() (float64, bool)
	// Events is closed by Close.
	Events() <-chan EngineEvent
	Close() error
}

type EngineEventKind int

const (
	EngineStartFile EngineEventKind = iota
	EngineFileLoaded
	EnginePaused
	EngineResumed
	EngineBufferingStarted
	EngineBufferingEnded
	EngineEndFile
	EngineFailed
)

func (k EngineEventKind) String() string {
	switch k {
	case EngineStartFile:
		return "start-file"
	case EngineFileLoaded:
		return "file-loaded"
	case EnginePaused:
		return "paused"
	case EngineResumed:
		return "resumed"
	case EngineBufferingStarted:
		return "buffering-started"
	case EngineBufferingEnded:
		return "buffering-ended"
	case EngineEndFile:
		return "end-file"
	case EngineFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// EngineEvent is an asynchronous notification from an Engine.
type EngineEvent struct {
	Kind EngineEventKind
	// Reason is the end-file reason: eof, stop, quit, error, redirect.
	Reason string
	Err    error
}

const engineEventBuffer = 32

type EngineOptions struct {
	// MpvPath overrides mpv discovery.
	MpvPath          string
	Volume           int
	StreamBufferSize int
	// CacheDir enables the on-disk demuxer cache when set.
	CacheDir   string
	YtdlFormat string
	Logger     zerolog.Logger
}

// OpenEngine returns an MpvEngine when mpv can be found, and a BeepEngine
// otherwise. BeepEngine only decodes direct MP3 streams. It fails with
// ErrEngineUnavailable when mpv is missing and no audio device can be opened.
func OpenEngine(opts EngineOptions) (Engine, error) {
	if path := FindMpv(opts.MpvPath); path != "" {
		opts.Logger.Debug().Str("mpv", path).Msg("using mpv engine")
		return NewMpvEngine(path, opts), nil
	}

	opts.Logger.Warn().Msg("mpv not found, falling back to the built-in MP3 engine")
	engine := NewBeepEngine(opts)
	if err := engine.Open(); err != nil {
		_ = engine.Close()
		return nil, err
	}
	return engine, nil
}

// FindMpv returns the mpv binary to use: override when set, then an mpv
// bundled next to the executable, then one on PATH. It returns "" when
// none is found.
func FindMpv(override string) string {
	if override != "" {
		if isExecutable(override) {
			return override
		}
		if path, err := exec.LookPath(override); err == nil {
			return path
		}
		return ""
	}
	if path := findBundled("mpv"); path != "" {
		return path
	}
	if path, err := exec.LookPath("mpv"); err == nil {
		return path
	}
	return ""
}

// findBundled looks for name next to the running executable.
func findBundled(name string) string {
	exe, err := os.Executable()
	if err != nil {
		return ""
	}
	dir := filepath.Dir(exe)

	for _, candidate := range []string{name, name + ".exe"} {
		path := filepath.Join(dir, candidate)
		if isExecutable(path) {
			return path
		}
	}
	return ""
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	if info.IsDir() {
		return false
	}
	if strings.HasSuffix(strings.ToLower(path), ".exe") {
		return true
	}
	return info.Mode()&0o111 != 0
}
