package ui

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"lofigirl-terminal/internal/config"
	"lofigirl-terminal/internal/history"
	"lofigirl-terminal/internal/player"
	"lofigirl-terminal/internal/station"
)

func testStations() []station.Record {
	return []station.Record{
		station.New("chill", "Chill Beats", "https://radio.example/chill.mp3", "Chill beats", "lofi"),
		station.New("jazz", "Jazz Cafe", "https://radio.example/jazz.mp3", "Smooth jazz", "jazz"),
		station.New("synth", "Synth Night", "https://radio.example/synth.mp3", "Retro synthwave", "synthwave"),
	}
}

type testEnv struct {
	model    Model
	engine   *player.NopEngine
	session  *player.Session
	registry *station.Registry
}

// newTestModel builds a Model over a NopEngine session and three direct stations.
func newTestModel(t *testing.T, mutate func(*Deps)) testEnv {
	t.Helper()

	engine := player.NewNopEngine()
	sess, err := player.NewSession(player.Options{Engine: engine, Volume: 50, Logger: zerolog.Nop()})
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}
	t.Cleanup(func() { _ = sess.Cleanup() })

	registry, err := station.NewRegistry(testStations()...)
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}

	deps := Deps{
		Session:  sess,
		Registry: registry,
		Settings: config.Settings{ShowVisualizer: true, UpdateInterval: 1},
		Logger:   zerolog.Nop(),
	}
	if mutate != nil {
		mutate(&deps)
	}

	m, err := NewModel(deps)
	if err != nil {
		t.Fatalf("NewModel() error = %v", err)
	}
	m.width = 100
	m.height = 40
	return testEnv{model: m, engine: engine, session: sess, registry: registry}
}

// execCmd runs cmd and any batch it returns. Only for commands that do not block.
func execCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, execCmd(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// press sends a key, runs the resulting session command and feeds its
// message back, the way the bubbletea runtime would.
func press(t *testing.T, m Model, keys string) Model {
	t.Helper()
	var msg tea.KeyMsg
	switch keys {
	case " ":
		msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		msg = tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		msg = tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		msg = tea.KeyMsg{Type: tea.KeyRight}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(keys)}
	}

	next, cmd := m.Update(msg)
	m = next.(Model)
	return settle(t, m, cmd)
}

// settle feeds back action results and runs their side effects.
func settle(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	for _, out := range execCmd(cmd) {
		switch out.(type) {
		case actionMsg, savedMsg, discoverMsg:
			next, follow := m.Update(out)
			m = next.(Model)
			m = settle(t, m, follow)
		}
	}
	return m
}

func TestNewModel_RequiresSessionAndRegistry(t *testing.T) {
	if _, err := NewModel(Deps{Registry: station.NewDefaultRegistry()}); err == nil {
		t.Error("NewModel() without session should fail")
	}

	env := newTestModel(t, nil)
	if _, err := NewModel(Deps{Session: env.session}); err == nil {
		t.Error("NewModel() without registry should fail")
	}
}

func TestNewModel_AppliesSettings(t *testing.T) {
	env := newTestModel(t, func(d *Deps) {
		d.Settings.Theme = "nord"
		d.Settings.AsciiArt = "vinyl-record"
		d.Settings.UIStyle = "compact"
		d.Settings.DefaultStation = "jazz"
	})
	m := env.model

	if m.theme.Slug != "nord" {
		t.Errorf("theme = %q, want nord", m.theme.Slug)
	}
	if Arts[m.artIdx].ID != "vinyl-record" {
		t.Errorf("art = %q, want vinyl-record", Arts[m.artIdx].ID)
	}
	if !m.compact {
		t.Error("ui_style compact should start in the compact skin")
	}
	if rec, _ := m.currentStation(); rec.ID != "jazz" {
		t.Errorf("selected = %q, want jazz", rec.ID)
	}
}

func TestModel_VisibleStations_NoFilter(t *testing.T) {
	m := newTestModel(t, nil).model

	if got := len(m.visibleStations()); got != 3 {
		t.Errorf("visibleStations() = %d stations, want 3", got)
	}
}

func TestModel_VisibleStations_WithFilter(t *testing.T) {
	tests := []struct {
		name   string
		filter string
		want   []string
	}{
		{"by name", "jazz", []string{"jazz"}},
		{"case insensitive", "SYNTH", []string{"synth"}},
		{"by genre", "lofi", []string{"chill"}},
		{"by description", "retro", []string{"synth"}},
		{"whitespace only", "   ", []string{"chill", "jazz", "synth"}},
		{"no match", "metal", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(t, nil).model
			m.filter.SetValue(tt.filter)

			var got []string
			for _, rec := range m.visibleStations() {
				got = append(got, rec.ID)
			}
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("visibleStations() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestModel_CurrentStation(t *testing.T) {
	m := newTestModel(t, nil).model
	m.selected = 2

	rec, ok := m.currentStation()
	if !ok {
		t.Fatal("currentStation() should return ok=true")
	}
	if rec.Name != "Synth Night" {
		t.Errorf("currentStation().Name = %q, want %q", rec.Name, "Synth Night")
	}
}

func TestModel_CurrentStation_OutOfBounds(t *testing.T) {
	m := newTestModel(t, nil).model
	m.selected = 100

	if _, ok := m.currentStation(); ok {
		t.Error("currentStation() should return ok=false for out of bounds")
	}

	m.selected = 0
	m.filter.SetValue("nothing matches")
	if _, ok := m.currentStation(); ok {
		t.Error("currentStation() should return ok=false for an empty list")
	}
}

func TestModel_MoveSelection(t *testing.T) {
	tests := []struct {
		name        string
		start       int
		delta       int
		wantIndex   int
		wantChanged bool
	}{
		{"move down", 0, 1, 1, true},
		{"move up", 2, -1, 1, true},
		{"clamp at top", 0, -1, 0, false},
		{"clamp at bottom", 2, 1, 2, false},
		{"large jump", 0, 10, 2, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(t, nil).model
			m.selected = tt.start

			changed := m.moveSelection(tt.delta)
			if m.selected != tt.wantIndex {
				t.Errorf("selected = %d, want %d", m.selected, tt.wantIndex)
			}
			if changed != tt.wantChanged {
				t.Errorf("moveSelection() = %v, want %v", changed, tt.wantChanged)
			}
		})
	}
}

func TestModel_EnsureSelection(t *testing.T) {
	m := newTestModel(t, nil).model
	m.selected = 2
	m.filter.SetValue("jazz")

	m.ensureSelection()
	if m.selected != 0 {
		t.Errorf("selected = %d, want 0 after filtering to one station", m.selected)
	}
}

func TestWrapIndex(t *testing.T) {
	tests := []struct {
		i, n, want int
	}{
		{0, 3, 0},
		{3, 3, 0},
		{-1, 3, 2},
		{-4, 3, 2},
		{7, 3, 1},
		{5, 0, 0},
	}
	for _, tt := range tests {
		if got := wrapIndex(tt.i, tt.n); got != tt.want {
			t.Errorf("wrapIndex(%d, %d) = %d, want %d", tt.i, tt.n, got, tt.want)
		}
	}
}

func TestModel_CycleWrapsWhenStopped(t *testing.T) {
	env := newTestModel(t, nil)
	m := env.model

	m = press(t, m, "p")
	if rec, _ := m.currentStation(); rec.ID != "synth" {
		t.Errorf("previous from first = %q, want synth", rec.ID)
	}
	if m.notice != "Selected: Synth Night" {
		t.Errorf("notice = %q", m.notice)
	}

	m = press(t, m, "right")
	if rec, _ := m.currentStation(); rec.ID != "chill" {
		t.Errorf("next from last = %q, want chill", rec.ID)
	}
	if _, ok := env.session.Station(); ok {
		t.Error("cycling while stopped should not load a station")
	}
}

func TestModel_CycleClearsFilter(t *testing.T) {
	m := newTestModel(t, nil).model
	m.filter.SetValue("synth")

	m = press(t, m, "n")
	if m.filter.Value() != "" {
		t.Errorf("filter = %q, want cleared", m.filter.Value())
	}
	if rec, _ := m.currentStation(); rec.ID != "chill" {
		t.Errorf("next after synth = %q, want chill", rec.ID)
	}
}

func TestModel_CyclePlaysWhenActive(t *testing.T) {
	env := newTestModel(t, nil)
	m := press(t, env.model, " ")
	if got := env.session.State(); got != player.StatePlaying {
		t.Fatalf("state = %s, want PLAYING", got)
	}

	m = press(t, m, "n")
	rec, ok := env.session.Station()
	if !ok || rec.ID != "jazz" {
		t.Errorf("session station = %q, want jazz", rec.ID)
	}
	if got := env.session.State(); got != player.StatePlaying {
		t.Errorf("state = %s, want PLAYING", got)
	}
	if env.engine.URL() != "https://radio.example/jazz.mp3" {
		t.Errorf("engine url = %q", env.engine.URL())
	}
	if m.notice != "Playing: Jazz Cafe" {
		t.Errorf("notice = %q", m.notice)
	}
}

func TestModel_TogglePlayPause(t *testing.T) {
	env := newTestModel(t, nil)

	m := press(t, env.model, " ")
	if m.snap.State != player.StatePlaying {
		t.Fatalf("state = %s, want PLAYING", m.snap.State)
	}
	if m.notice != "Playing: Chill Beats" {
		t.Errorf("notice = %q", m.notice)
	}

	m = press(t, m, " ")
	if m.snap.State != player.StatePaused {
		t.Fatalf("state = %s, want PAUSED", m.snap.State)
	}
	if m.notice != "Paused" {
		t.Errorf("notice = %q, want Paused", m.notice)
	}

	m = press(t, m, " ")
	if m.snap.State != player.StatePlaying {
		t.Fatalf("state = %s, want PLAYING", m.snap.State)
	}
	if m.notice != "Resumed" {
		t.Errorf("notice = %q, want Resumed", m.notice)
	}
}

func TestModel_TogglePlay_EmptyRegistry(t *testing.T) {
	env := newTestModel(t, func(d *Deps) {
		d.Registry, _ = station.NewRegistry()
	})

	m := press(t, env.model, " ")
	if !m.noticeErr {
		t.Fatal("expected an error notice")
	}
	if m.notice != player.ErrNoStationLoaded.Error() {
		t.Errorf("notice = %q", m.notice)
	}
}

func TestModel_EnterPlaysSelected(t *testing.T) {
	env := newTestModel(t, nil)
	m := env.model
	m.selected = 2

	press(t, m, "enter")
	rec, ok := env.session.Station()
	if !ok || rec.ID != "synth" {
		t.Errorf("session station = %q, want synth", rec.ID)
	}
}

func TestModel_Stop(t *testing.T) {
	env := newTestModel(t, nil)
	m := press(t, env.model, " ")
	m = press(t, m, "s")

	if m.snap.State != player.StateStopped {
		t.Errorf("state = %s, want STOPPED", m.snap.State)
	}
	if m.notice != "Stopped" {
		t.Errorf("notice = %q, want Stopped", m.notice)
	}
}

func TestModel_VolumeAndMute(t *testing.T) {
	env := newTestModel(t, nil)

	m := press(t, env.model, "+")
	if m.notice != "Volume: 55%" {
		t.Errorf("notice = %q, want Volume: 55%%", m.notice)
	}
	m = press(t, m, "=")
	m = press(t, m, "-")
	if env.session.Volume() != 55 {
		t.Errorf("volume = %d, want 55", env.session.Volume())
	}

	m = press(t, m, "m")
	if m.notice != "Muted" || !env.engine.Muted() {
		t.Errorf("notice = %q, engine muted = %v", m.notice, env.engine.Muted())
	}
	m = press(t, m, "m")
	if m.notice != "Unmuted" {
		t.Errorf("notice = %q, want Unmuted", m.notice)
	}
}

func TestModel_EngineFailureBecomesNotice(t *testing.T) {
	env := newTestModel(t, nil)
	env.engine.Fail("Start", errors.New("device busy"))

	m := press(t, env.model, " ")
	if !m.noticeErr {
		t.Fatal("expected an error notice")
	}
	if !strings.Contains(m.notice, "device busy") {
		t.Errorf("notice = %q", m.notice)
	}
	if m.snap.State != player.StateError {
		t.Errorf("state = %s, want ERROR", m.snap.State)
	}
}

func TestModel_EngineEventsAreApplied(t *testing.T) {
	env := newTestModel(t, nil)
	m := press(t, env.model, " ")

	env.engine.Emit(player.EngineEvent{Kind: player.EnginePaused})
	var ev player.Event
	select {
	case ev = <-env.session.Events():
	case <-time.After(2 * time.Second):
		t.Fatal("engine event was not forwarded")
	}

	next, _ := m.Update(sessionEventMsg{ev: ev})
	m = next.(Model)
	if m.snap.State != player.StatePaused {
		t.Errorf("state = %s, want PAUSED", m.snap.State)
	}
	if m.notice != "Paused" {
		t.Errorf("notice = %q, want Paused", m.notice)
	}
}

func TestModel_HistoryRecordedOnPlay(t *testing.T) {
	store, err := history.Open(filepath.Join(t.TempDir(), "history.db"), 10)
	if err != nil {
		t.Fatalf("history.Open() error = %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	env := newTestModel(t, func(d *Deps) { d.History = store })
	press(t, env.model, " ")

	entries, err := store.Recent(5)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(entries) != 1 || entries[0].StationID != "chill" {
		t.Errorf("history = %+v, want one chill entry", entries)
	}
}

type fakePresence struct {
	calls []string
}

func (f *fakePresence) Playing(rec station.Record, _ time.Time) error {
	f.calls = append(f.calls, "playing:"+rec.ID)
	return nil
}

func (f *fakePresence) Paused(rec station.Record) error {
	f.calls = append(f.calls, "paused:"+rec.ID)
	return nil
}

func (f *fakePresence) Clear() error {
	f.calls = append(f.calls, "clear")
	return nil
}

func (f *fakePresence) Close() error { return nil }

func TestModel_PresenceFollowsState(t *testing.T) {
	pres := &fakePresence{}
	env := newTestModel(t, func(d *Deps) { d.Presence = pres })

	m := press(t, env.model, " ")
	m = press(t, m, " ")
	press(t, m, "s")

	want := "playing:chill,paused:chill,clear"
	if got := strings.Join(pres.calls, ","); got != want {
		t.Errorf("presence calls = %q, want %q", got, want)
	}
}

func TestModel_Favorite(t *testing.T) {
	favs, err := config.LoadFavorites(t.TempDir())
	if err != nil {
		t.Fatalf("LoadFavorites() error = %v", err)
	}
	env := newTestModel(t, func(d *Deps) { d.Favorites = favs })

	m := press(t, env.model, "f")
	if !favs.IsFavorite("chill") {
		t.Error("chill should be a favorite")
	}
	if !strings.HasPrefix(m.notice, "Added to favorites") {
		t.Errorf("notice = %q", m.notice)
	}

	m = press(t, m, "f")
	if favs.IsFavorite("chill") {
		t.Error("chill should no longer be a favorite")
	}
	if !strings.HasPrefix(m.notice, "Removed from favorites") {
		t.Errorf("notice = %q", m.notice)
	}
}

func TestModel_FilterMode(t *testing.T) {
	m := newTestModel(t, nil).model

	m = press(t, m, "/")
	if !m.filtering {
		t.Fatal("/ should start filtering")
	}
	for _, r := range "jazz" {
		// the returned cursor blink command waits, so it is not run
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(Model)
	}
	if got := len(m.visibleStations()); got != 1 {
		t.Errorf("visibleStations() = %d, want 1", got)
	}
	// keys are typed into the filter, not treated as commands
	if m.compact || m.showHelp {
		t.Error("typing in the filter triggered commands")
	}

	m = press(t, m, "enter")
	if m.filtering {
		t.Error("enter should leave filter mode")
	}
	if m.filter.Value() != "jazz" {
		t.Errorf("filter = %q, want jazz kept", m.filter.Value())
	}

	m = press(t, m, "/")
	m = press(t, m, "esc")
	if m.filter.Value() != "" {
		t.Errorf("esc should clear the filter, got %q", m.filter.Value())
	}
}

func TestModel_ThemePickerSaves(t *testing.T) {
	dir := t.TempDir()
	env := newTestModel(t, func(d *Deps) { d.Settings.Dir = dir })

	m := press(t, env.model, "t")
	if !m.showTheme {
		t.Fatal("t should open the theme picker")
	}
	m = press(t, m, "down")
	if m.theme.Slug != Themes[1].Slug {
		t.Errorf("theme = %q, want %q", m.theme.Slug, Themes[1].Slug)
	}
	m = press(t, m, "enter")
	if m.showTheme {
		t.Error("enter should close the picker")
	}
	if m.noticeErr {
		t.Errorf("unexpected error notice %q", m.notice)
	}

	settings, err := config.Load(config.LoadOptions{Dir: dir, EnvFiles: []string{}})
	if err != nil {
		t.Fatalf("config.Load() error = %v", err)
	}
	if settings.Theme != Themes[1].Slug {
		t.Errorf("saved theme = %q, want %q", settings.Theme, Themes[1].Slug)
	}
}

func TestModel_CycleArt(t *testing.T) {
	dir := t.TempDir()
	env := newTestModel(t, func(d *Deps) { d.Settings.Dir = dir })

	m := press(t, env.model, "a")
	if m.artIdx != 1 {
		t.Errorf("artIdx = %d, want 1", m.artIdx)
	}
	if m.notice != "Art: "+Arts[1].Name {
		t.Errorf("notice = %q", m.notice)
	}

	settings, err := config.Load(config.LoadOptions{Dir: dir, EnvFiles: []string{}})
	if err != nil {
		t.Fatalf("config.Load() error = %v", err)
	}
	if settings.AsciiArt != Arts[1].ID {
		t.Errorf("saved art = %q, want %q", settings.AsciiArt, Arts[1].ID)
	}
}

func TestModel_ToggleCompactAndHelp(t *testing.T) {
	m := newTestModel(t, nil).model

	m = press(t, m, "c")
	if !m.compact {
		t.Error("c should switch to the compact skin")
	}
	m = press(t, m, "?")
	if !m.showHelp {
		t.Error("? should open help")
	}
	m = press(t, m, "c")
	if !m.compact {
		t.Error("keys other than close should be ignored while help is open")
	}
	m = press(t, m, "esc")
	if m.showHelp {
		t.Error("esc should close help")
	}
}

func TestModel_Quit(t *testing.T) {
	m := newTestModel(t, nil).model

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c should quit")
	}
}

type fakeDiscoverer struct {
	records []station.Record
	err     error
	tag     string
}

func (f *fakeDiscoverer) Discover(_ context.Context, tag string, _ int) ([]station.Record, error) {
	f.tag = tag
	return f.records, f.err
}

func TestModel_Discovery(t *testing.T) {
	found := station.New("rb-1234abcd", "Radio Lofi", "https://stream.example/lofi", "Radio Browser", "lofi")
	disc := &fakeDiscoverer{records: []station.Record{found}}
	env := newTestModel(t, func(d *Deps) { d.Discovery = disc })

	m := press(t, env.model, "d")
	if disc.tag != "lofi" {
		t.Errorf("discover tag = %q, want lofi", disc.tag)
	}
	if !m.showPicker {
		t.Fatal("discovery results should open the picker")
	}

	m = press(t, m, "enter")
	if m.showPicker {
		t.Error("enter should close the picker")
	}
	if _, ok := env.registry.Get(found.ID); !ok {
		t.Fatal("discovered station was not added")
	}
	if rec, _ := m.currentStation(); rec.ID != found.ID {
		t.Errorf("selected = %q, want %q", rec.ID, found.ID)
	}
	if m.notice != "Added: Radio Lofi" {
		t.Errorf("notice = %q", m.notice)
	}

	m = press(t, m, "d")
	m = press(t, m, "enter")
	if m.notice != "Already listed: Radio Lofi" {
		t.Errorf("notice = %q", m.notice)
	}
	if env.registry.Len() != 4 {
		t.Errorf("registry len = %d, want 4", env.registry.Len())
	}
}

func TestModel_DiscoveryErrors(t *testing.T) {
	m := newTestModel(t, nil).model
	m = press(t, m, "d")
	if m.notice != "Station discovery is not available" {
		t.Errorf("notice = %q", m.notice)
	}

	env := newTestModel(t, func(d *Deps) {
		d.Discovery = &fakeDiscoverer{err: errors.New("offline")}
	})
	m = press(t, env.model, "d")
	if !m.noticeErr || !strings.Contains(m.notice, "offline") {
		t.Errorf("notice = %q, err = %v", m.notice, m.noticeErr)
	}
	if m.discovering {
		t.Error("discovering should reset after a result")
	}

	env = newTestModel(t, func(d *Deps) { d.Discovery = &fakeDiscoverer{} })
	m = press(t, env.model, "d")
	if m.notice != "No stations found" || m.showPicker {
		t.Errorf("notice = %q, picker = %v", m.notice, m.showPicker)
	}
}

func TestModel_AdvanceAnimation(t *testing.T) {
	m := newTestModel(t, nil).model
	start := time.Now()

	// two-frame art in the full skin changes every 2s
	m.artIdx = 0
	for i := 0; i < artTicksFull-1; i++ {
		m.advance(start)
	}
	if m.artFrame != 0 {
		t.Errorf("artFrame = %d before the period, want 0", m.artFrame)
	}
	m.advance(start)
	if m.artFrame != 1 {
		t.Errorf("artFrame = %d after the period, want 1", m.artFrame)
	}

	// arts with more than two frames speed up in the compact skin
	m.compact = true
	m.frame = 0
	m.artFrame = 0
	for i, art := range Arts {
		if len(art.Frames) > 2 {
			m.artIdx = i
			break
		}
	}
	for i := 0; i < artTicksCompact; i++ {
		m.advance(start)
	}
	if m.artFrame != 1 {
		t.Errorf("compact artFrame = %d, want 1", m.artFrame)
	}
}

func TestModel_NoticeExpires(t *testing.T) {
	m := newTestModel(t, nil).model
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	m.setNotice("Muted")
	m.advance(now.Add(noticeLifetime - time.Millisecond))
	if m.notice != "Muted" {
		t.Errorf("notice expired early")
	}
	m.advance(now.Add(noticeLifetime))
	if m.notice != "" {
		t.Errorf("notice = %q, want expired", m.notice)
	}
}

func TestModel_ClockMsgUpdatesSnapshot(t *testing.T) {
	m := newTestModel(t, nil).model
	snap := player.Snapshot{State: player.StatePlaying, Elapsed: 61 * time.Second}

	next, cmd := m.Update(clockMsg{snap: snap, live: true})
	m = next.(Model)
	if m.snap.Elapsed != snap.Elapsed || !m.live {
		t.Errorf("snapshot not applied: %+v live=%v", m.snap, m.live)
	}
	if cmd == nil {
		t.Error("clock should schedule the next tick")
	}
}

func TestModel_WindowSize(t *testing.T) {
	m := newTestModel(t, nil).model

	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 50})
	m = next.(Model)
	if m.width != 120 || m.height != 50 {
		t.Errorf("size = %dx%d, want 120x50", m.width, m.height)
	}
	if m.filter.Width != 32 {
		t.Errorf("filter width = %d, want 32", m.filter.Width)
	}
}
