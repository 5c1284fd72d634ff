// Package app wires configuration, logging and the playback session shared by
// the CLI and the tray binaries.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/pprof"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"lofigirl-terminal/internal/config"
	"lofigirl-terminal/internal/history"
	"lofigirl-terminal/internal/logger"
	"lofigirl-terminal/internal/player"
	"lofigirl-terminal/internal/presence"
	"lofigirl-terminal/internal/radio"
	"lofigirl-terminal/internal/resolver"
	"lofigirl-terminal/internal/station"
	"lofigirl-terminal/internal/ui"
)

// UserAgent identifies the app to Radio Browser.
const UserAgent = "lofigirl-terminal/0.1 (terminal radio)"

// ProfileFile receives the CPU profile when enable_profiling is set.
const ProfileFile = "cpu.pprof"

type Options struct {
	ConfigDir string
	Debug     bool
	// NoAudio swaps the real engine for a NopEngine.
	NoAudio bool
	// Console mirrors log output to a terminal writer.
	Console io.Writer
	// Overrides are applied on top of every config source.
	Overrides map[string]any
}

// App holds the long-lived collaborators of one process.
type App struct {
	Settings config.Settings
	Log      zerolog.Logger
	Resolver *resolver.Resolver
	Registry *station.Registry

	noAudio bool
	closers []func() error
}

// New loads settings and builds the logger and resolver. The session is built
// on demand by NewSession so commands that never play skip engine startup.
func New(opts Options) (*App, error) {
	overrides := opts.Overrides
	if opts.Debug {
		overrides = withOverride(overrides, "debug_mode", true)
	}
	settings, err := config.Load(config.LoadOptions{Dir: opts.ConfigDir, Overrides: overrides})
	if err != nil {
		return nil, err
	}

	log, logCloser, err := logger.New(logger.Options{
		Dir:     settings.Dir,
		Level:   settings.LogLevel,
		Debug:   settings.DebugMode,
		Console: opts.Console,
	})
	if err != nil {
		return nil, err
	}
	log = log.With().Str("run", uuid.NewString()[:8]).Logger()

	a := &App{
		Settings: settings,
		Log:      log,
		Registry: station.NewDefaultRegistry(),
		noAudio:  opts.NoAudio,
		closers:  []func() error{logCloser.Close},
	}
	a.Resolver = resolver.New(resolver.Options{
		ResolveTimeout: a.connectionTimeout(),
		Format:         resolver.FormatForQuality(settings.AudioQuality),
		Retries:        settings.RetryAttempts,
		Logger:         log,
	})

	if settings.LiveScan {
		a.scanLive()
	}
	if settings.EnableProfiling {
		if err := a.startProfile(); err != nil {
			log.Warn().Err(err).Msg("cpu profiling disabled")
		}
	}
	log.Debug().Str("config_dir", settings.Dir).Str("version", settings.AppVersion).Msg("starting")
	return a, nil
}

func withOverride(m map[string]any, key string, value any) map[string]any {
	out := make(map[string]any, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	out[key] = value
	return out
}

func (a *App) startProfile() error {
	if err := os.MkdirAll(a.Settings.Dir, 0o755); err != nil {
		return err
	}
	path := filepath.Join(a.Settings.Dir, ProfileFile)
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		_ = f.Close()
		return err
	}
	a.Log.Info().Str("path", path).Msg("cpu profiling started")
	a.closers = append(a.closers, func() error {
		pprof.StopCPUProfile()
		return f.Close()
	})
	return nil
}

// NewSession opens the playback engine and returns a session over it.
// The session is cleaned up by Close.
func (a *App) NewSession(volume int) (*player.Session, error) {
	engine, err := a.openEngine(volume)
	if err != nil {
		return nil, err
	}
	sess, err := player.NewSession(player.Options{
		Engine:   engine,
		Resolver: a.Resolver,
		Volume:   volume,
		Logger:   a.Log,
	})
	if err != nil {
		_ = engine.Close()
		return nil, err
	}
	a.closers = append(a.closers, sess.Cleanup)
	return sess, nil
}

func (a *App) openEngine(volume int) (player.Engine, error) {
	if a.noAudio {
		a.Log.Debug().Msg("audio disabled")
		return player.NewNopEngine(), nil
	}

	opts := player.EngineOptions{
		Volume:           volume,
		StreamBufferSize: a.Settings.StreamBufferSize,
		YtdlFormat:       resolver.FormatForQuality(a.Settings.AudioQuality),
		Logger:           a.Log,
	}
	if a.Settings.AudioCacheEnabled {
		dir := a.Settings.CacheDir()
		if err := os.MkdirAll(dir, 0o755); err != nil {
			a.Log.Warn().Err(err).Str("dir", dir).Msg("audio cache disabled")
		} else {
			opts.CacheDir = dir
		}
	}
	return player.OpenEngine(opts)
}

// OpenHistory opens the listening history store. It is closed by Close.
func (a *App) OpenHistory() (*history.Store, error) {
	if err := os.MkdirAll(a.Settings.Dir, 0o755); err != nil {
		return nil, err
	}
	store, err := history.Open(a.Settings.HistoryPath(), a.Settings.HistoryLimit)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, store.Close)
	return store, nil
}

func (a *App) presence() presence.Presence {
	if !a.Settings.DiscordPresence {
		return presence.Nop{}
	}
	p := presence.NewDiscord(a.Settings.DiscordAppID, a.Log)
	a.closers = append(a.closers, p.Close)
	return p
}

// RunTUI runs the interactive player until the user quits.
func (a *App) RunTUI(control bool) error {
	sess, err := a.NewSession(a.Settings.DefaultVolume)
	if err != nil {
		return err
	}

	deps := ui.Deps{
		Session:  sess,
		Registry: a.Registry,
		Presence: a.presence(),
		Settings: a.Settings,
		Logger:   a.Log,
		Control:  control,
	}

	if favs, err := config.LoadFavorites(a.Settings.Dir); err != nil {
		a.Log.Warn().Err(err).Msg("favorites unavailable")
	} else {
		deps.Favorites = favs
		a.addFavoriteStations(favs)
	}
	if store, err := a.OpenHistory(); err != nil {
		a.Log.Warn().Err(err).Msg("history unavailable")
	} else {
		deps.History = store
	}
	if client, err := a.Discovery(); err != nil {
		a.Log.Warn().Err(err).Msg("station discovery unavailable")
	} else {
		deps.Discovery = client
	}

	model, err := ui.NewModel(deps)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}

// scanLive swaps the built-in stations for what the Lofi Girl channel is
// streaming now. Any failure keeps the built-in list.
func (a *App) scanLive() {
	ctx, cancel := context.WithTimeout(context.Background(), a.connectionTimeout())
	defer cancel()

	streams, err := a.Resolver.ListLive(ctx, resolver.LofiGirlStreams, resolver.DefaultLiveLimit)
	if err != nil {
		a.Log.Warn().Err(err).Msg("live scan failed, keeping built-in stations")
		return
	}
	a.useLiveStreams(streams)
}

// useLiveStreams installs streams as the station list and reports whether it did.
func (a *App) useLiveStreams(streams []resolver.LiveStream) bool {
	if len(streams) == 0 {
		a.Log.Warn().Msg("nothing live on the channel, keeping built-in stations")
		return false
	}

	records := make([]station.Record, 0, len(streams))
	for i, s := range streams {
		records = append(records, station.LiveRecord(i, s.Title, s.URL))
	}
	if err := a.Registry.Replace(records...); err != nil {
		a.Log.Warn().Err(err).Msg("live streams rejected, keeping built-in stations")
		return false
	}
	if _, ok := a.Registry.Get(a.Settings.DefaultStation); !ok {
		a.Settings.DefaultStation = records[0].ID
	}
	a.Log.Info().Int("stations", len(records)).Msg("using live streams")
	return true
}

func (a *App) connectionTimeout() time.Duration {
	return time.Duration(a.Settings.ConnectionTimeout) * time.Second
}

// Discovery returns a Radio Browser client and picks an API mirror in the
// background. Until the pick lands the round-robin host serves requests.
func (a *App) Discovery() (*radio.Client, error) {
	client, err := radio.NewClient(UserAgent, a.connectionTimeout())
	if err != nil {
		return nil, err
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), a.connectionTimeout())
		defer cancel()
		if err := client.PickServer(ctx); err != nil {
			a.Log.Debug().Err(err).Msg("keeping default radio browser host")
			return
		}
		a.Log.Debug().Str("server", client.BaseURL()).Msg("radio browser mirror selected")
	}()
	return client, nil
}

// addFavoriteStations lists favorites found through discovery in earlier runs.
func (a *App) addFavoriteStations(favs *config.Favorites) {
	for _, rec := range favs.Records() {
		if _, ok := a.Registry.Get(rec.ID); ok {
			continue
		}
		if err := a.Registry.Add(rec); err != nil {
			a.Log.Debug().Err(err).Str("station", rec.ID).Msg("skip favorite")
		}
	}
}

// Close releases everything opened through the App, newest first.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	if len(errs) > 0 {
		return fmt.Errorf("shutdown: %w", errors.Join(errs...))
	}
	return nil
}
