// Package player owns the playback session and the media engines it drives.
package player

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"lofigirl-terminal/internal/resolver"
	"lofigirl-terminal/internal/station"
)

const (
	VolumeStep    = 5
	sessionBuffer = 16
)

// Resolver turns an upstream page URL into a direct media URL.
type Resolver interface {
	Resolve(ctx context.Context, url string, audioOnly bool) (string, error)
}

type EventKind int

const (
	EventEngine EventKind = iota
	EventResolved
)

// Event is delivered on Session.Events and must be handed back to Apply by
// the goroutine that owns the session.
type Event struct {
	Kind   EventKind
	Engine EngineEvent
	// URL and Err carry a resolution result.
	URL string
	Err error

	gen uint64
}

type Options struct {
	Engine   Engine
	Resolver Resolver
	Volume   int
	// Video asks the resolver for a muxed format instead of audio only.
	Video  bool
	Logger zerolog.Logger
}

// Snapshot is a consistent copy of the session fields.
type Snapshot struct {
	State      State
	Volume     int
	Muted      bool
	Station    station.Record
	HasStation bool
	StreamURL  string
	StartedAt  time.Time
	Elapsed    time.Duration
	Err        error
}

type Session struct {
	// ctl serializes the calls that drive the engine. mu guards the fields
	// below and is never held across an engine call.
	ctl      sync.Mutex
	mu       sync.Mutex
	engine   Engine
	resolver Resolver
	video    bool
	log      zerolog.Logger
	now      func() time.Time

	state     State
	volume    int
	muted     bool
	station   *station.Record
	streamURL string
	lastErr   error
	autoplay  bool

	gen           uint64
	cancelResolve context.CancelFunc

	startedAt   time.Time
	pausedAt    time.Time
	pausedTotal time.Duration

	observer    func(State)
	transitions []State

	ctx       context.Context
	cancel    context.CancelFunc
	events    chan Event
	done      chan struct{}
	wg        sync.WaitGroup
	closed    bool
	closeOnce sync.Once
}

func NewSession(opts Options) (*Session, error) {
	if opts.Engine == nil {
		return nil, ErrEngineUnavailable
	}

	volume := clampVolume(opts.Volume)
	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		engine:   opts.Engine,
		resolver: opts.Resolver,
		video:    opts.Video,
		log:      opts.Logger.With().Str("session", uuid.NewString()[:8]).Logger(),
		now:      time.Now,
		state:    StateStopped,
		volume:   volume,
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, sessionBuffer),
		done:     make(chan struct{}),
	}

	if err := s.engine.SetVolume(volume); err != nil {
		s.log.Warn().Err(err).Msg("engine rejected initial volume")
	}

	s.wg.Add(1)
	go s.pump()
	return s, nil
}

func clampVolume(v int) int {
	return max(0, min(100, v))
}

// pump forwards engine notifications into the session channel.
func (s *Session) pump() {
	defer s.wg.Done()
	engineEvents := s.engine.Events()
	for {
		select {
		case ev, ok := <-engineEvents:
			if !ok {
				return
			}
			select {
			case s.events <- Event{Kind: EventEngine, Engine: ev}:
			case <-s.done:
				return
			}
		case <-s.done:
			return
		}
	}
}

// Events carries engine notifications and resolution results. It is never
// closed; stop reading once Done is closed.
func (s *Session) Events() <-chan Event {
	return s.events
}

func (s *Session) Done() <-chan struct{} {
	return s.done
}

// OnStateChange registers the observer called after every transition.
func (s *Session) OnStateChange(fn func(State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observer = fn
}

// update runs fn under the lock, then reports each transition to the observer.
func (s *Session) update(fn func() error) error {
	s.mu.Lock()
	err := fn()
	changes := s.transitions
	s.transitions = nil
	observer := s.observer
	s.mu.Unlock()

	for _, st := range changes {
		s.notify(observer, st)
	}
	return err
}

func (s *Session) notify(observer func(State), st State) {
	if observer == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			s.log.Error().Interface("panic", r).Stringer("state", st).Msg("state observer failed")
		}
	}()
	observer(st)
}

func (s *Session) setStateLocked(next State) {
	prev := s.state
	if prev == next {
		return
	}

	now := s.now()
	switch {
	case next == StatePlaying && prev == StatePaused:
		s.pausedTotal += now.Sub(s.pausedAt)
		s.pausedAt = time.Time{}
	case next == StatePaused:
		s.pausedAt = now
	case next == StatePlaying && !prev.Active():
		s.startedAt = now
		s.pausedAt = time.Time{}
		s.pausedTotal = 0
	case next == StateStopped || next == StateError || next == StateLoading:
		s.startedAt = time.Time{}
		s.pausedAt = time.Time{}
		s.pausedTotal = 0
	}

	s.state = next
	s.transitions = append(s.transitions, next)
	s.log.Debug().Stringer("from", prev).Stringer("to", next).Msg("state changed")
}

func validateStation(rec station.Record) error {
	raw := strings.TrimSpace(rec.URL)
	if raw == "" {
		return fmt.Errorf("%w: %q has no url", ErrInvalidStation, rec.ID)
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: malformed url %q", ErrInvalidStation, raw)
	}
	return nil
}

// LoadAsync makes rec the current station. Direct URLs settle in STOPPED at
// once; page URLs stay LOADING until an EventResolved is applied.
func (s *Session) LoadAsync(rec station.Record) error {
	if err := validateStation(rec); err != nil {
		return err
	}
	s.ctl.Lock()
	defer s.ctl.Unlock()

	var active bool
	err := s.update(func() error {
		if s.closed {
			return ErrEngineUnavailable
		}
		active = s.haltLocked()
		s.station = &rec
		s.lastErr = nil
		s.autoplay = false
		s.beginLoadLocked()
		return nil
	})
	if active {
		s.stopEngine()
	}
	return err
}

// Load is the blocking form of LoadAsync. It applies session events until
// the load settles, so only the goroutine that owns the session may call it.
func (s *Session) Load(ctx context.Context, rec station.Record) error {
	if err := s.LoadAsync(rec); err != nil {
		return err
	}
	for {
		s.mu.Lock()
		st, lastErr := s.state, s.lastErr
		s.mu.Unlock()

		switch st {
		case StateLoading:
		case StateError:
			return lastErr
		default:
			return nil
		}

		select {
		case ev := <-s.events:
			s.Apply(ev)
		case <-ctx.Done():
			return ctx.Err()
		case <-s.done:
			return ErrEngineUnavailable
		}
	}
}

func (s *Session) beginLoadLocked() {
	s.gen++
	s.streamURL = ""
	s.setStateLocked(StateLoading)

	upstream := strings.TrimSpace(s.station.URL)
	if s.resolver == nil || !resolver.NeedsResolution(upstream) {
		s.streamURL = upstream
		s.setStateLocked(StateStopped)
		return
	}

	ctx, cancel := context.WithCancel(s.ctx)
	s.cancelResolve = cancel
	gen := s.gen
	audioOnly := !s.video
	s.log.Info().Str("station", s.station.ID).Msg("resolving stream url")

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		direct, err := s.resolver.Resolve(ctx, upstream, audioOnly)
		select {
		case s.events <- Event{Kind: EventResolved, URL: direct, Err: err, gen: gen}:
		case <-s.done:
		}
	}()
}

// haltLocked cancels any resolution and reports whether the engine holds a
// stream that the caller must stop once mu is released.
func (s *Session) haltLocked() bool {
	if s.cancelResolve != nil {
		s.cancelResolve()
		s.cancelResolve = nil
	}
	return s.state.Active()
}

func (s *Session) stopEngine() {
	if err := s.engine.Stop(); err != nil {
		s.log.Warn().Err(err).Msg("engine stop failed")
	}
}

// Apply performs the transition an event implies. Call it from the one
// goroutine that reads Events.
func (s *Session) Apply(ev Event) {
	_ = s.update(func() error {
		if s.closed {
			return nil
		}
		switch ev.Kind {
		case EventResolved:
			s.applyResolvedLocked(ev)
		case EventEngine:
			s.applyEngineLocked(ev.Engine)
		}
		return nil
	})
}

func (s *Session) applyResolvedLocked(ev Event) {
	if ev.gen != s.gen || s.state != StateLoading {
		s.log.Debug().Msg("dropping stale resolution")
		return
	}
	if s.cancelResolve != nil {
		s.cancelResolve()
		s.cancelResolve = nil
	}

	if ev.Err != nil || strings.TrimSpace(ev.URL) == "" {
		err := ev.Err
		if err == nil {
			err = errors.New("empty stream url")
		}
		if !errors.Is(err, ErrResolutionFailed) {
			err = fmt.Errorf("%w: %w", ErrResolutionFailed, err)
		}
		s.lastErr = err
		s.autoplay = false
		s.log.Error().Err(err).Msg("stream resolution failed")
		s.setStateLocked(StateError)
		return
	}

	s.streamURL = strings.TrimSpace(ev.URL)
	s.setStateLocked(StateStopped)
	if s.autoplay {
		s.wg.Add(1)
		go s.autoStart(s.gen)
	}
}

// autoStart plays a freshly resolved stream that Play asked for while it was
// still loading, unless Stop or another load came first.
func (s *Session) autoStart(gen uint64) {
	defer s.wg.Done()
	s.ctl.Lock()
	defer s.ctl.Unlock()

	var streamURL string
	_ = s.update(func() error {
		if s.closed || !s.autoplay || s.gen != gen || s.state != StateStopped {
			return nil
		}
		s.autoplay = false
		streamURL = s.streamURL
		return nil
	})
	if streamURL != "" {
		_ = s.startEngine(streamURL)
	}
}

func (s *Session) applyEngineLocked(ev EngineEvent) {
	s.log.Debug().Stringer("event", ev.Kind).Str("reason", ev.Reason).Msg("engine event")

	switch ev.Kind {
	case EngineFileLoaded:
		if s.state == StateLoading || s.state == StateBuffering {
			s.setStateLocked(StatePlaying)
		}
	case EnginePaused:
		if s.state == StatePlaying || s.state == StateBuffering {
			s.setStateLocked(StatePaused)
		}
	case EngineResumed:
		if s.state == StatePaused {
			s.setStateLocked(StatePlaying)
		}
	case EngineBufferingStarted:
		if s.state == StatePlaying {
			s.setStateLocked(StateBuffering)
		}
	case EngineBufferingEnded:
		if s.state == StateBuffering {
			s.setStateLocked(StatePlaying)
		}
	case EngineEndFile:
		if !s.state.Active() {
			return
		}
		switch ev.Reason {
		case "stop", "redirect":
		case "error":
			s.lastErr = ev.Err
			if s.lastErr == nil {
				s.lastErr = ErrEngineError
			}
			s.setStateLocked(StateError)
		default:
			s.setStateLocked(StateStopped)
		}
	case EngineFailed:
		err := ev.Err
		if err == nil {
			err = ErrEngineError
		}
		s.lastErr = err
		s.autoplay = false
		s.setStateLocked(StateError)
	}
}

// startEngine starts streamURL and records the outcome. Callers hold ctl.
func (s *Session) startEngine(streamURL string) error {
	err := s.engine.Start(s.ctx, streamURL)
	return s.update(func() error {
		if s.closed {
			return ErrEngineUnavailable
		}
		if err != nil {
			s.lastErr = fmt.Errorf("%w: %w", ErrEngineError, err)
			s.log.Error().Err(err).Str("url", streamURL).Msg("engine failed to start")
			s.setStateLocked(StateError)
			return s.lastErr
		}
		s.lastErr = nil
		s.setStateLocked(StatePlaying)
		if s.station != nil {
			s.log.Info().Str("station", s.station.ID).Msg("playing")
		}
		return nil
	})
}

// engineFailedLocked moves to ERROR after a failed engine control call.
func (s *Session) engineFailedLocked(err error) error {
	s.lastErr = fmt.Errorf("%w: %w", ErrEngineError, err)
	s.setStateLocked(StateError)
	return s.lastErr
}

// Play starts the loaded station or resumes it when paused. While the
// station is still resolving it only records that playback should follow.
func (s *Session) Play() error {
	s.ctl.Lock()
	defer s.ctl.Unlock()

	var resume, start bool
	var streamURL string
	err := s.update(func() error {
		if s.closed {
			return ErrEngineUnavailable
		}
		if s.station == nil {
			return ErrNoStationLoaded
		}

		switch s.state {
		case StatePlaying, StateBuffering:
			return nil
		case StatePaused:
			resume = true
			return nil
		case StateLoading:
			if s.streamURL == "" {
				s.autoplay = true
				return nil
			}
		case StateError:
			if s.streamURL == "" {
				s.lastErr = nil
				s.autoplay = true
				s.beginLoadLocked()
				return nil
			}
		}
		start = true
		streamURL = s.streamURL
		return nil
	})

	switch {
	case err != nil:
		return err
	case resume:
		err := s.engine.Resume()
		return s.update(func() error {
			if err != nil {
				return s.engineFailedLocked(err)
			}
			if s.state == StatePaused {
				s.setStateLocked(StatePlaying)
			}
			return nil
		})
	case start:
		return s.startEngine(streamURL)
	}
	return nil
}

func (s *Session) Pause() error {
	s.ctl.Lock()
	defer s.ctl.Unlock()

	s.mu.Lock()
	closed, st := s.closed, s.state
	s.mu.Unlock()
	if closed {
		return ErrEngineUnavailable
	}
	if st != StatePlaying && st != StateBuffering {
		return nil
	}

	err := s.engine.Pause()
	return s.update(func() error {
		if err != nil {
			return s.engineFailedLocked(err)
		}
		if s.state == StatePlaying || s.state == StateBuffering {
			s.setStateLocked(StatePaused)
		}
		return nil
	})
}

// TogglePause pauses an active stream and plays otherwise.
func (s *Session) TogglePause() error {
	s.mu.Lock()
	playing := s.state == StatePlaying || s.state == StateBuffering
	s.mu.Unlock()
	if playing {
		return s.Pause()
	}
	return s.Play()
}

// Stop ends playback. A pending autoplay is dropped while loading.
func (s *Session) Stop() error {
	s.ctl.Lock()
	defer s.ctl.Unlock()

	var active bool
	err := s.update(func() error {
		if s.closed {
			return ErrEngineUnavailable
		}
		s.autoplay = false
		active = s.state.Active()
		return nil
	})
	if err != nil || !active {
		return err
	}

	s.stopEngine()
	return s.update(func() error {
		if s.state.Active() {
			s.setStateLocked(StateStopped)
		}
		return nil
	})
}

func (s *Session) SetVolume(volume int) error {
	if volume < 0 || volume > 100 {
		return fmt.Errorf("%w: %d", ErrOutOfRange, volume)
	}
	s.ctl.Lock()
	defer s.ctl.Unlock()

	err := s.update(func() error {
		if s.closed {
			return ErrEngineUnavailable
		}
		s.volume = volume
		return nil
	})
	if err != nil {
		return err
	}
	if err := s.engine.SetVolume(volume); err != nil {
		s.log.Warn().Err(err).Int("volume", volume).Msg("engine rejected volume")
	}
	return nil
}

// VolumeUp raises the volume by VolumeStep, clamped to 100.
func (s *Session) VolumeUp() (int, error) {
	return s.stepVolume(VolumeStep)
}

// VolumeDown lowers the volume by VolumeStep, clamped to 0.
func (s *Session) VolumeDown() (int, error) {
	return s.stepVolume(-VolumeStep)
}

func (s *Session) stepVolume(delta int) (int, error) {
	s.mu.Lock()
	next := clampVolume(s.volume + delta)
	s.mu.Unlock()
	if err := s.SetVolume(next); err != nil {
		return 0, err
	}
	return next, nil
}

// ToggleMute flips the mute flag and returns the new value.
func (s *Session) ToggleMute() (bool, error) {
	s.ctl.Lock()
	defer s.ctl.Unlock()

	var muted bool
	err := s.update(func() error {
		if s.closed {
			return ErrEngineUnavailable
		}
		s.muted = !s.muted
		muted = s.muted
		return nil
	})
	if err != nil {
		return false, err
	}
	if err := s.engine.SetMute(muted); err != nil {
		s.log.Warn().Err(err).Bool("muted", muted).Msg("engine rejected mute")
	}
	return muted, nil
}

// Cleanup stops playback, cancels any resolution and releases the engine.
// It is safe to call more than once.
func (s *Session) Cleanup() error {
	// cancelling first lets an in-flight engine start give up ctl
	s.cancel()
	s.ctl.Lock()
	var active bool
	_ = s.update(func() error {
		if s.closed {
			return nil
		}
		active = s.haltLocked()
		s.closed = true
		s.autoplay = false
		s.setStateLocked(StateStopped)
		return nil
	})
	if active {
		s.stopEngine()
	}
	s.ctl.Unlock()

	var err error
	s.closeOnce.Do(func() {
		close(s.done)
		err = s.engine.Close()
		s.wg.Wait()
		s.log.Debug().Msg("session closed")
	})
	return err
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		State:     s.state,
		Volume:    s.volume,
		Muted:     s.muted,
		StreamURL: s.streamURL,
		StartedAt: s.startedAt,
		Elapsed:   s.elapsedLocked(),
		Err:       s.lastErr,
	}
	if s.station != nil {
		snap.Station = *s.station
		snap.HasStation = true
	}
	return snap
}

func (s *Session) elapsedLocked() time.Duration {
	if s.startedAt.IsZero() {
		return 0
	}
	end := s.now()
	if !s.pausedAt.IsZero() {
		end = s.pausedAt
	}
	return max(0, end.Sub(s.startedAt)-s.pausedTotal)
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Volume() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.volume
}

func (s *Session) Muted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.muted
}

func (s *Session) Station() (station.Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.station == nil {
		return station.Record{}, false
	}
	return *s.station, true
}

func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Elapsed is wall-clock listening time, excluding pauses.
func (s *Session) Elapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.elapsedLocked()
}

// Position asks the engine for the stream position in seconds.
func (s *Session) Position() (float64, bool) {
	if !s.State().Active() {
		return 0, false
	}
	return s.engine.Position()
}

// IsLive reports whether the stream has no known duration.
func (s *Session) IsLive() bool {
	if !s.State().Active() {
		return false
	}
	d, ok := s.engine.Duration()
	return !ok || d <= 0
}
