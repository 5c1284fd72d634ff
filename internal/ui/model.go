// Package ui is the bubbletea front end. One Model drives both the full and
// the compact skin from a single player.Session.
package ui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/browser"
	"github.com/rs/zerolog"

	"lofigirl-terminal/internal/config"
	"lofigirl-terminal/internal/history"
	"lofigirl-terminal/internal/ipc"
	"lofigirl-terminal/internal/player"
	"lofigirl-terminal/internal/presence"
	"lofigirl-terminal/internal/radio"
	"lofigirl-terminal/internal/station"
)

const (
	animInterval    = 100 * time.Millisecond
	noticeLifetime  = 2 * time.Second
	discoverTimeout = 15 * time.Second

	// art frame periods in animation ticks
	artTicksFull    = 20
	artTicksCompact = 8
)

// Discoverer finds additional stations at runtime.
type Discoverer interface {
	Discover(ctx context.Context, tag string, limit int) ([]station.Record, error)
}

// Deps are the collaborators the Model drives. Session and Registry are
// required; the rest are optional.
type Deps struct {
	Session   *player.Session
	Registry  *station.Registry
	Favorites *config.Favorites
	History   *history.Store
	Presence  presence.Presence
	Discovery Discoverer
	Settings  config.Settings
	Logger    zerolog.Logger
	// Control starts the control socket used by the tray and `ctl`.
	Control bool
}

type Model struct {
	session   *player.Session
	registry  *station.Registry
	favorites *config.Favorites
	history   *history.Store
	presence  presence.Presence
	discovery Discoverer
	settings  config.Settings
	log       zerolog.Logger
	feed      *stateFeed
	control   bool
	ipc       *ipcServer

	keys    keyMap
	help    help.Model
	spinner spinner.Model
	filter  textinput.Model
	picker  list.Model

	styles   Styles
	theme    Theme
	themeIdx int
	artIdx   int

	selected    int
	filtering   bool
	showHelp    bool
	showTheme   bool
	showPicker  bool
	discovering bool
	compact     bool

	snap      player.Snapshot
	live      bool
	lastState player.State

	frame    int
	artFrame int

	notice    string
	noticeErr bool
	noticeAt  time.Time
	now       func() time.Time

	width  int
	height int
}

// stateFeed buffers session transitions until the Update loop drains them.
// The observer may fire on any goroutine running a session command.
type stateFeed struct {
	mu     sync.Mutex
	states []player.State
}

func (f *stateFeed) push(st player.State) {
	f.mu.Lock()
	f.states = append(f.states, st)
	f.mu.Unlock()
}

func (f *stateFeed) drain() []player.State {
	f.mu.Lock()
	defer f.mu.Unlock()
	states := f.states
	f.states = nil
	return states
}

type sessionEventMsg struct{ ev player.Event }

type sessionClosedMsg struct{}

// actionMsg reports the outcome of a session command run off the loop.
type actionMsg struct {
	notice string
	err    error
}

type clockMsg struct {
	snap player.Snapshot
	live bool
}

type animMsg time.Time

type discoverMsg struct {
	records []station.Record
	err     error
}

type savedMsg struct {
	what string
	err  error
}

type discoveredItem struct{ rec station.Record }

func (i discoveredItem) Title() string       { return i.rec.Name }
func (i discoveredItem) Description() string { return i.rec.Description }
func (i discoveredItem) FilterValue() string { return i.rec.Name + " " + i.rec.Genre }

func NewModel(deps Deps) (Model, error) {
	if deps.Session == nil {
		return Model{}, errors.New("ui: session is required")
	}
	if deps.Registry == nil {
		return Model{}, errors.New("ui: registry is required")
	}
	if deps.Presence == nil {
		deps.Presence = presence.Nop{}
	}

	filter := textinput.New()
	filter.Prompt = "/ "
	filter.Placeholder = "Filter stations"
	filter.Width = 26

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	picker := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	picker.Title = "Discovered stations"
	picker.DisableQuitKeybindings()

	theme := ThemeBySlug(deps.Settings.Theme)
	art := ArtByID(deps.Settings.AsciiArt)
	artIdx := 0
	for i, a := range Arts {
		if a.ID == art.ID {
			artIdx = i
			break
		}
	}

	m := Model{
		session:   deps.Session,
		registry:  deps.Registry,
		favorites: deps.Favorites,
		history:   deps.History,
		presence:  deps.Presence,
		discovery: deps.Discovery,
		settings:  deps.Settings,
		log:       deps.Logger,
		feed:      &stateFeed{},
		control:   deps.Control,
		keys:      defaultKeyMap(),
		help:      help.New(),
		spinner:   spin,
		filter:    filter,
		picker:    picker,
		styles:    BuildStyles(theme),
		theme:     theme,
		themeIdx:  themeIndex(theme.Slug),
		artIdx:    artIdx,
		compact:   deps.Settings.UIStyle == "compact",
		now:       time.Now,
	}
	if idx := m.registry.Index(deps.Settings.DefaultStation); idx >= 0 {
		m.selected = idx
	}
	m.snap = m.session.Snapshot()
	m.lastState = m.snap.State
	m.spinner.Style = m.styles.StateBusy
	m.session.OnStateChange(m.feed.push)
	return m, nil
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.waitForSessionEvent(), m.clockTick(), animTick(), m.spinner.Tick}
	if m.control {
		cmds = append(cmds, m.startIPCCmd())
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.picker.SetSize(max(msg.Width-8, 20), max(msg.Height-6, 8))
		m.updateInputWidths()
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case sessionEventMsg:
		m.session.Apply(msg.ev)
		return m, tea.Batch(m.drainTransitions(), m.waitForSessionEvent())
	case sessionClosedMsg:
		return m, nil
	case actionMsg:
		if msg.err != nil {
			m.setError(msg.err)
		} else if msg.notice != "" {
			m.setNotice(msg.notice)
		}
		return m, m.drainTransitions()
	case clockMsg:
		m.snap = msg.snap
		m.live = msg.live
		return m, m.clockTick()
	case animMsg:
		m.advance(time.Time(msg))
		return m, animTick()
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case discoverMsg:
		return m.handleDiscovered(msg)
	case savedMsg:
		if msg.err != nil {
			m.setError(fmt.Errorf("save %s: %w", msg.what, msg.err))
		}
		return m, nil
	case ipcReadyMsg:
		if msg.err != nil {
			m.log.Warn().Err(msg.err).Msg("control socket unavailable")
			if errors.Is(msg.err, ipc.ErrAlreadyRunning) {
				m.setNotice("Another player owns the remote controls")
			}
			return m, nil
		}
		m.ipc = msg.server
		return m, m.listenIPCCmd()
	case ipcMsg:
		return m.handleIPC(msg)
	case ipcClosedMsg:
		m.ipc = nil
		return m, nil
	}

	var cmd tea.Cmd
	switch {
	case m.showPicker:
		m.picker, cmd = m.picker.Update(msg)
	case m.filtering:
		m.filter, cmd = m.filter.Update(msg)
	}
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m.quit()
	}

	if m.showHelp {
		switch msg.String() {
		case "?", "esc", "enter", "q":
			m.showHelp = false
		}
		return m, nil
	}

	if m.showTheme {
		return m.updateThemePicker(msg)
	}
	if m.showPicker {
		return m.updatePicker(msg)
	}
	if m.filtering {
		return m.updateFilter(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.PlayPause):
		return m, m.togglePlayCmd()
	case key.Matches(msg, m.keys.Stop):
		return m, m.stopCmd()
	case key.Matches(msg, m.keys.Next):
		return m.cycle(1)
	case key.Matches(msg, m.keys.Prev):
		return m.cycle(-1)
	case key.Matches(msg, m.keys.Up):
		m.moveSelection(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveSelection(1)
	case key.Matches(msg, m.keys.Select):
		if rec, ok := m.currentStation(); ok {
			return m, m.playRecordCmd(rec)
		}
	case key.Matches(msg, m.keys.Mute):
		return m, m.muteCmd()
	case key.Matches(msg, m.keys.VolUp):
		return m, m.volumeCmd(1)
	case key.Matches(msg, m.keys.VolDown):
		return m, m.volumeCmd(-1)
	case key.Matches(msg, m.keys.Browser):
		return m, m.openBrowserCmd()
	case key.Matches(msg, m.keys.Theme):
		m.showTheme = true
	case key.Matches(msg, m.keys.Art):
		m.artIdx = (m.artIdx + 1) % len(Arts)
		m.artFrame = 0
		m.setNotice("Art: " + Arts[m.artIdx].Name)
		return m, m.saveArtCmd()
	case key.Matches(msg, m.keys.Favorite):
		m.toggleFavorite()
	case key.Matches(msg, m.keys.Discover):
		return m.startDiscovery()
	case key.Matches(msg, m.keys.Filter):
		m.filtering = true
		m.filter.Focus()
		m.filter.CursorEnd()
		return m, textinput.Blink
	case key.Matches(msg, m.keys.Compact):
		m.compact = !m.compact
		m.artFrame = 0
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	}
	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	if m.ipc != nil {
		m.ipc.Close()
	}
	return m, tea.Quit
}

func (m Model) updateThemePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "t", "T", "esc":
		m.showTheme = false
	case "up", "k":
		if m.themeIdx > 0 {
			m.themeIdx--
			m.applyTheme(Themes[m.themeIdx])
		}
	case "down", "j":
		if m.themeIdx < len(Themes)-1 {
			m.themeIdx++
			m.applyTheme(Themes[m.themeIdx])
		}
	case "enter":
		m.showTheme = false
		m.setNotice("Theme: " + m.theme.Name)
		return m, m.saveThemeCmd()
	}
	return m, nil
}

func (m *Model) applyTheme(t Theme) {
	m.theme = t
	m.styles = BuildStyles(t)
	m.spinner.Style = m.styles.StateBusy
}

func (m Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.filtering = false
		m.filter.Blur()
		return m, nil
	case "esc":
		m.filtering = false
		m.filter.SetValue("")
		m.filter.Blur()
		m.ensureSelection()
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.ensureSelection()
	return m, cmd
}

func (m Model) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.picker.FilterState() != list.Filtering {
		switch msg.String() {
		case "esc", "d", "q":
			m.showPicker = false
			return m, nil
		case "enter":
			if item, ok := m.picker.SelectedItem().(discoveredItem); ok {
				m.addDiscovered(item.rec)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	return m, cmd
}

// drainTransitions turns queued session transitions into notifications and
// the history and presence side effects.
func (m *Model) drainTransitions() tea.Cmd {
	states := m.feed.drain()
	m.snap = m.session.Snapshot()

	var cmds []tea.Cmd
	for _, st := range states {
		prev := m.lastState
		m.lastState = st

		switch st {
		case player.StatePlaying:
			switch prev {
			case player.StatePaused:
				m.setNotice("Resumed")
			case player.StateBuffering:
			default:
				m.setNotice("Playing: " + m.snap.Station.Name)
			}
			cmds = append(cmds, m.playingCmd(m.snap))
		case player.StatePaused:
			m.setNotice("Paused")
			cmds = append(cmds, m.pausedCmd(m.snap))
		case player.StateStopped:
			if prev.Active() {
				m.setNotice("Stopped")
				cmds = append(cmds, m.clearPresenceCmd())
			}
		case player.StateError:
			if m.snap.Err != nil {
				m.setError(m.snap.Err)
			}
			cmds = append(cmds, m.clearPresenceCmd())
		}
	}
	return tea.Batch(cmds...)
}

func (m Model) playingCmd(snap player.Snapshot) tea.Cmd {
	if !snap.HasStation {
		return nil
	}
	store, pres, log := m.history, m.presence, m.log
	return func() tea.Msg {
		if store != nil {
			if _, err := store.Add(snap.Station); err != nil {
				log.Warn().Err(err).Str("station", snap.Station.ID).Msg("history add failed")
			}
		}
		if err := pres.Playing(snap.Station, snap.StartedAt); err != nil {
			log.Debug().Err(err).Msg("presence update failed")
		}
		return nil
	}
}

func (m Model) pausedCmd(snap player.Snapshot) tea.Cmd {
	if !snap.HasStation {
		return nil
	}
	pres, log := m.presence, m.log
	return func() tea.Msg {
		if err := pres.Paused(snap.Station); err != nil {
			log.Debug().Err(err).Msg("presence update failed")
		}
		return nil
	}
}

func (m Model) clearPresenceCmd() tea.Cmd {
	pres, log := m.presence, m.log
	return func() tea.Msg {
		if err := pres.Clear(); err != nil {
			log.Debug().Err(err).Msg("presence clear failed")
		}
		return nil
	}
}

func (m Model) waitForSessionEvent() tea.Cmd {
	sess := m.session
	return func() tea.Msg {
		select {
		case ev := <-sess.Events():
			return sessionEventMsg{ev: ev}
		case <-sess.Done():
			return sessionClosedMsg{}
		}
	}
}

func (m Model) clockTick() tea.Cmd {
	interval := time.Duration(m.settings.UpdateInterval) * time.Second
	if interval <= 0 {
		interval = time.Second
	}
	sess := m.session
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return clockMsg{snap: sess.Snapshot(), live: sess.IsLive()}
	})
}

func animTick() tea.Cmd {
	return tea.Tick(animInterval, func(t time.Time) tea.Msg {
		return animMsg(t)
	})
}

// advance moves the waveform one step and the art frame on its own period.
func (m *Model) advance(now time.Time) {
	m.frame++

	art := Arts[m.artIdx]
	period := artTicksFull
	if m.compact && len(art.Frames) > 2 {
		period = artTicksCompact
	}
	if len(art.Frames) > 1 && m.frame%period == 0 {
		m.artFrame = (m.artFrame + 1) % len(art.Frames)
	}

	if m.notice != "" && now.Sub(m.noticeAt) >= noticeLifetime {
		m.notice = ""
		m.noticeErr = false
	}
}

func (m *Model) setNotice(text string) {
	m.notice = text
	m.noticeErr = false
	m.noticeAt = m.now()
}

func (m *Model) setError(err error) {
	m.notice = err.Error()
	m.noticeErr = true
	m.noticeAt = m.now()
}

// sessionCmd runs fn off the loop; it may block on the engine.
func sessionCmd(fn func() (string, error)) tea.Cmd {
	return func() tea.Msg {
		notice, err := fn()
		return actionMsg{notice: notice, err: err}
	}
}

func (m Model) playRecordCmd(rec station.Record) tea.Cmd {
	sess := m.session
	return sessionCmd(func() (string, error) {
		if err := sess.LoadAsync(rec); err != nil {
			return "", err
		}
		if err := sess.Play(); err != nil {
			return "", err
		}
		if sess.State() == player.StateLoading {
			return "Loading " + rec.Name + "...", nil
		}
		return "", nil
	})
}

// togglePlayCmd pauses an active stream, resumes a paused one and otherwise
// starts the selected station.
func (m Model) togglePlayCmd() tea.Cmd {
	if _, ok := m.session.Station(); !ok {
		rec, ok := m.currentStation()
		if !ok {
			return func() tea.Msg { return actionMsg{err: player.ErrNoStationLoaded} }
		}
		return m.playRecordCmd(rec)
	}
	sess := m.session
	return sessionCmd(func() (string, error) {
		return "", sess.TogglePause()
	})
}

func (m Model) playCmd() tea.Cmd {
	if _, ok := m.session.Station(); !ok {
		return m.togglePlayCmd()
	}
	sess := m.session
	return sessionCmd(func() (string, error) {
		return "", sess.Play()
	})
}

func (m Model) stopCmd() tea.Cmd {
	sess := m.session
	return sessionCmd(func() (string, error) {
		return "", sess.Stop()
	})
}

func (m Model) muteCmd() tea.Cmd {
	sess := m.session
	return sessionCmd(func() (string, error) {
		muted, err := sess.ToggleMute()
		if err != nil {
			return "", err
		}
		if muted {
			return "Muted", nil
		}
		return "Unmuted", nil
	})
}

func (m Model) volumeCmd(direction int) tea.Cmd {
	sess := m.session
	return sessionCmd(func() (string, error) {
		step := sess.VolumeUp
		if direction < 0 {
			step = sess.VolumeDown
		}
		v, err := step()
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Volume: %d%%", v), nil
	})
}

func (m Model) openBrowserCmd() tea.Cmd {
	rec, ok := m.session.Station()
	if !ok {
		rec, ok = m.currentStation()
	}
	if !ok {
		return nil
	}
	return func() tea.Msg {
		browser.Stdout = io.Discard
		browser.Stderr = io.Discard
		if err := browser.OpenURL(rec.URL); err != nil {
			return actionMsg{err: fmt.Errorf("open browser: %w", err)}
		}
		return actionMsg{notice: "Opening " + rec.Name + " in browser..."}
	}
}

// cycle selects the next or previous registry station with wraparound and
// switches playback to it when something is playing.
func (m Model) cycle(delta int) (tea.Model, tea.Cmd) {
	stations := m.registry.List()
	if len(stations) == 0 {
		return m, nil
	}

	base := -1
	if rec, ok := m.currentStation(); ok {
		base = m.registry.Index(rec.ID)
	}
	next := 0
	switch {
	case base >= 0:
		next = wrapIndex(base+delta, len(stations))
	case delta < 0:
		next = len(stations) - 1
	}

	m.filter.SetValue("")
	m.selected = next
	rec := stations[next]

	st := m.session.State()
	if st.Active() || st == player.StateLoading {
		return m, m.playRecordCmd(rec)
	}
	m.setNotice("Selected: " + rec.Name)
	return m, nil
}

func wrapIndex(i, n int) int {
	if n <= 0 {
		return 0
	}
	return ((i % n) + n) % n
}

func (m *Model) toggleFavorite() {
	if m.favorites == nil {
		return
	}
	rec, ok := m.currentStation()
	if !ok {
		return
	}
	added, err := m.favorites.Toggle(rec)
	if err != nil {
		m.setError(err)
		return
	}
	if added {
		m.setNotice("Added to favorites: " + rec.Name)
	} else {
		m.setNotice("Removed from favorites: " + rec.Name)
	}
}

func (m Model) startDiscovery() (tea.Model, tea.Cmd) {
	if m.discovery == nil {
		m.setNotice("Station discovery is not available")
		return m, nil
	}
	if m.discovering {
		return m, nil
	}
	m.discovering = true
	m.setNotice("Discovering " + radio.DefaultTag + " stations...")
	d := m.discovery
	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), discoverTimeout)
		defer cancel()
		records, err := d.Discover(ctx, radio.DefaultTag, radio.DefaultLimit)
		return discoverMsg{records: records, err: err}
	}
}

func (m Model) handleDiscovered(msg discoverMsg) (tea.Model, tea.Cmd) {
	m.discovering = false
	if msg.err != nil {
		m.setError(fmt.Errorf("discover: %w", msg.err))
		return m, nil
	}
	if len(msg.records) == 0 {
		m.setNotice("No stations found")
		return m, nil
	}

	items := make([]list.Item, 0, len(msg.records))
	for _, rec := range msg.records {
		items = append(items, discoveredItem{rec: rec})
	}
	cmd := m.picker.SetItems(items)
	m.picker.ResetSelected()
	m.showPicker = true
	return m, cmd
}

func (m *Model) addDiscovered(rec station.Record) {
	m.showPicker = false
	if err := m.registry.Add(rec); err != nil {
		if errors.Is(err, station.ErrDuplicateKey) {
			m.setNotice("Already listed: " + rec.Name)
			return
		}
		m.setError(err)
		return
	}
	m.filter.SetValue("")
	if idx := m.registry.Index(rec.ID); idx >= 0 {
		m.selected = idx
	}
	m.setNotice("Added: " + rec.Name)
}

func (m Model) saveThemeCmd() tea.Cmd {
	dir, slug := m.settings.Dir, m.theme.Slug
	if dir == "" {
		return nil
	}
	return func() tea.Msg {
		return savedMsg{what: "theme", err: config.SaveTheme(dir, slug)}
	}
}

func (m Model) saveArtCmd() tea.Cmd {
	dir, id := m.settings.Dir, Arts[m.artIdx].ID
	if dir == "" {
		return nil
	}
	return func() tea.Msg {
		return savedMsg{what: "art", err: config.SaveArt(dir, id)}
	}
}

func (m Model) startIPCCmd() tea.Cmd {
	log := m.log
	return func() tea.Msg {
		server, err := newIPCServer(log)
		return ipcReadyMsg{server: server, err: err}
	}
}

func (m Model) listenIPCCmd() tea.Cmd {
	if m.ipc == nil {
		return nil
	}
	server := m.ipc
	return func() tea.Msg {
		select {
		case msg := <-server.messages:
			return msg
		case <-server.done:
			return ipcClosedMsg{}
		}
	}
}

func (m Model) handleIPC(msg ipcMsg) (tea.Model, tea.Cmd) {
	cmd, err := parseIPCCommand(msg.cmd)
	if err != nil {
		sendIPCReply(msg.reply, ipcReply{ok: false, err: err.Error()})
		return m, m.listenIPCCmd()
	}

	var reply ipcReply
	var cmdTea tea.Cmd

	switch cmd {
	case "PLAY_PAUSE", "TOGGLE":
		cmdTea, reply = m.togglePlayCmd(), ipcReply{ok: true}
	case "PLAY":
		cmdTea, reply = m.playCmd(), ipcReply{ok: true}
	case "STOP":
		cmdTea, reply = m.stopCmd(), ipcReply{ok: true}
	case "MUTE":
		cmdTea, reply = m.muteCmd(), ipcReply{ok: true}
	case "NEXT", "PREV":
		delta := 1
		if cmd == "PREV" {
			delta = -1
		}
		var next tea.Model
		next, cmdTea = m.cycle(delta)
		m = next.(Model)
		reply = ipcReply{ok: true, data: "SELECTED " + m.selectedName()}
	case "QUIT":
		sendIPCReply(msg.reply, ipcReply{ok: true})
		return m.quit()
	case "STATUS":
		reply = ipcReply{ok: true, data: m.ipcStatus()}
	case "PING":
		reply = ipcReply{ok: true, data: "PONG"}
	default:
		reply = ipcReply{ok: false, err: "unknown command"}
	}

	sendIPCReply(msg.reply, reply)
	return m, tea.Batch(cmdTea, m.listenIPCCmd())
}

func (m Model) selectedName() string {
	if rec, ok := m.currentStation(); ok {
		return rec.Name
	}
	return "-"
}

// ipcStatusReply is the STATUS payload, one line of JSON.
type ipcStatusReply struct {
	State   string `json:"state"`
	Station string `json:"station"`
	Volume  int    `json:"volume"`
	Muted   bool   `json:"muted"`
}

func (m Model) ipcStatus() string {
	snap := m.session.Snapshot()
	status := ipcStatusReply{State: snap.State.String(), Station: "-", Volume: snap.Volume, Muted: snap.Muted}
	if snap.HasStation {
		status.Station = snap.Station.Name
	}
	data, err := json.Marshal(status)
	if err != nil {
		return `{"state":"` + status.State + `"}`
	}
	return string(data)
}

func (m *Model) visibleStations() []station.Record {
	all := m.registry.List()
	filter := strings.TrimSpace(strings.ToLower(m.filter.Value()))
	if filter == "" {
		return all
	}

	filtered := make([]station.Record, 0, len(all))
	for _, rec := range all {
		if strings.Contains(strings.ToLower(rec.Name), filter) ||
			strings.Contains(strings.ToLower(rec.Genre), filter) ||
			strings.Contains(strings.ToLower(rec.Description), filter) {
			filtered = append(filtered, rec)
		}
	}
	return filtered
}

func (m *Model) ensureSelection() {
	visible := m.visibleStations()
	if len(visible) == 0 {
		m.selected = 0
		return
	}
	m.selected = max(0, min(len(visible)-1, m.selected))
}

func (m *Model) moveSelection(delta int) bool {
	visible := m.visibleStations()
	if len(visible) == 0 {
		return false
	}
	prev := m.selected
	m.selected = max(0, min(len(visible)-1, m.selected+delta))
	return prev != m.selected
}

func (m *Model) currentStation() (station.Record, bool) {
	visible := m.visibleStations()
	if m.selected < 0 || m.selected >= len(visible) {
		return station.Record{}, false
	}
	return visible[m.selected], true
}

func (m *Model) updateInputWidths() {
	width := m.width - 20
	if width < 10 {
		width = 10
	}
	if width > 32 {
		width = 32
	}
	m.filter.Width = width
}
