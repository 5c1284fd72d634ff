package player

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/rs/zerolog"
)

const (
	beepSampleRate = beep.SampleRate(44100)
	minVolumeExp   = -10.0
)

// BeepEngine plays MP3 HTTP streams in-process with beep. It cannot decode
// AAC or HLS, so it only serves as a fallback when mpv is missing.
type BeepEngine struct {
	mu          sync.Mutex
	log         zerolog.Logger
	client      *http.Client
	bufferSize  int
	initialized bool

	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	vol      *effects.Volume
	body     io.Closer

	volume int
	muted  bool

	events    chan EngineEvent
	done      chan struct{}
	closeOnce sync.Once
}

func NewBeepEngine(opts EngineOptions) *BeepEngine {
	return &BeepEngine{
		log:        opts.Logger.With().Str("engine", "beep").Logger(),
		client:     &http.Client{},
		bufferSize: opts.StreamBufferSize,
		volume:     opts.Volume,
		events:     make(chan EngineEvent, engineEventBuffer),
		done:       make(chan struct{}),
	}
}

// volumeExponent maps 0-100 onto a base-2 exponent, 50% being half amplitude.
func volumeExponent(volume int) float64 {
	if volume <= 0 {
		return minVolumeExp
	}
	if volume >= 100 {
		return 0
	}
	return math.Max(math.Log2(float64(volume)/100), minVolumeExp)
}

// speakerInit opens the audio device. Tests replace it.
var speakerInit = speaker.Init

// Open initializes the audio device. Start does this on demand.
func (b *BeepEngine) Open() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.initSpeaker()
}

func (b *BeepEngine) initSpeaker() error {
	if b.initialized {
		return nil
	}
	// ~100ms device buffer
	if err := speakerInit(beepSampleRate, beepSampleRate.N(time.Second/10)); err != nil {
		return fmt.Errorf("%w: speaker init: %v", ErrEngineUnavailable, err)
	}
	b.initialized = true
	return nil
}

func (b *BeepEngine) Start(ctx context.Context, url string) error {
	if url == "" {
		return errors.New("stream url is required")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	select {
	case <-b.done:
		return ErrEngineUnavailable
	default:
	}

	b.stopLocked()
	if err := b.initSpeaker(); err != nil {
		return err
	}
	b.emit(EngineEvent{Kind: EngineStartFile})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("request: %w", err)
	}
	req.Header.Set("User-Agent", "lofigirl-terminal")
	req.Header.Set("Icy-MetaData", "0")

	resp, err := b.client.Do(req)
	if err != nil {
		return fmt.Errorf("stream open: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return fmt.Errorf("stream HTTP %d", resp.StatusCode)
	}

	var body io.ReadCloser = resp.Body
	if b.bufferSize > 0 {
		body = bufferedBody{Reader: bufio.NewReaderSize(resp.Body, b.bufferSize), Closer: resp.Body}
	}

	streamer, format, err := mp3.Decode(body)
	if err != nil {
		resp.Body.Close()
		return fmt.Errorf("mp3 decode: %w", err)
	}

	resampled := beep.Resample(4, format.SampleRate, beepSampleRate, streamer)
	vol := &effects.Volume{
		Streamer: resampled,
		Base:     2,
		Volume:   volumeExponent(b.volume),
		Silent:   b.muted || b.volume == 0,
	}
	ctrl := &beep.Ctrl{Streamer: vol, Paused: false}

	// The callback runs under the speaker lock, which stopLocked also takes.
	speaker.Play(beep.Seq(ctrl, beep.Callback(func() { go b.finished(ctrl) })))

	b.streamer = streamer
	b.format = format
	b.ctrl = ctrl
	b.vol = vol
	b.body = resp.Body
	b.emit(EngineEvent{Kind: EngineFileLoaded})
	b.log.Debug().Int("sample_rate", int(format.SampleRate)).Msg("stream decoded")
	return nil
}

func (b *BeepEngine) finished(ctrl *beep.Ctrl) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.ctrl == ctrl {
		b.ctrl = nil
		b.cleanupLocked()
		b.emit(EngineEvent{Kind: EngineEndFile, Reason: "eof"})
	}
}

type bufferedBody struct {
	*bufio.Reader
	io.Closer
}

// emit must be called with b.mu held so it cannot race Close.
func (b *BeepEngine) emit(ev EngineEvent) {
	select {
	case <-b.done:
		return
	default:
	}
	select {
	case b.events <- ev:
	default:
		b.log.Warn().Stringer("event", ev.Kind).Msg("engine event dropped")
	}
}

func (b *BeepEngine) setPaused(paused bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.ctrl == nil {
		return nil
	}

	speaker.Lock()
	changed := b.ctrl.Paused != paused
	b.ctrl.Paused = paused
	speaker.Unlock()

	if changed {
		if paused {
			b.emit(EngineEvent{Kind: EnginePaused})
		} else {
			b.emit(EngineEvent{Kind: EngineResumed})
		}
	}
	return nil
}

func (b *BeepEngine) Pause() error  { return b.setPaused(true) }
func (b *BeepEngine) Resume() error { return b.setPaused(false) }

func (b *BeepEngine) Stop() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.ctrl != nil {
		b.stopLocked()
		b.emit(EngineEvent{Kind: EngineEndFile, Reason: "stop"})
	}
	return nil
}

func (b *BeepEngine) stopLocked() {
	if b.ctrl != nil {
		speaker.Lock()
		b.ctrl.Paused = true
		b.ctrl.Streamer = nil
		speaker.Unlock()
		b.ctrl = nil
	}
	b.cleanupLocked()
}

func (b *BeepEngine) cleanupLocked() {
	if b.streamer != nil {
		b.streamer.Close()
		b.streamer = nil
	}
	if b.body != nil {
		b.body.Close()
		b.body = nil
	}
	b.vol = nil
}

func (b *BeepEngine) SetVolume(volume int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.volume = volume
	b.applyVolumeLocked()
	return nil
}

func (b *BeepEngine) SetMute(muted bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.muted = muted
	b.applyVolumeLocked()
	return nil
}

func (b *BeepEngine) applyVolumeLocked() {
	if b.vol == nil {
		return
	}
	speaker.Lock()
	b.vol.Volume = volumeExponent(b.volume)
	b.vol.Silent = b.muted || b.volume == 0
	speaker.Unlock()
}

func (b *BeepEngine) Position() (float64, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.streamer == nil {
		return 0, false
	}
	speaker.Lock()
	pos := b.format.SampleRate.D(b.streamer.Position())
	speaker.Unlock()
	return pos.Seconds(), true
}

// Duration is always unknown for network streams.
func (b *BeepEngine) Duration() (float64, bool) {
	return 0, false
}

func (b *BeepEngine) Events() <-chan EngineEvent {
	return b.events
}

func (b *BeepEngine) Close() error {
	b.closeOnce.Do(func() {
		b.mu.Lock()
		b.stopLocked()
		close(b.done)
		if b.initialized {
			speaker.Clear()
		}
		close(b.events)
		b.mu.Unlock()
	})
	return nil
}

var _ Engine = (*BeepEngine)(nil)
