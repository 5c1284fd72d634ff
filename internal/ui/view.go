package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"lofigirl-terminal/internal/player"
)

const (
	waveBars  = "▁▂▃▄▅▆▇█"
	waveWidth = 40
	appTitle  = "LOFIGIRL TERMINAL"
)

func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	switch {
	case m.showHelp:
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.renderHelp())
	case m.showTheme:
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.renderThemePicker())
	case m.showPicker:
		return m.styles.App.Render(m.picker.View())
	}

	if m.compact {
		return m.compactView()
	}
	return m.fullView()
}

func (m Model) fullView() string {
	contentWidth := m.width - 4
	if contentWidth < 10 {
		contentWidth = m.width
	}
	panelInner := innerWidthForPanel(contentWidth)

	header := m.renderHeader(contentWidth)
	info := m.styles.Panel.Width(contentWidth).Render(m.renderStationPanel(panelInner))
	hints := m.styles.KeyHint.Width(contentWidth).Render(m.help.ShortHelpView(m.keys.ShortHelp()))

	var wave string
	if m.settings.ShowVisualizer {
		wave = m.styles.Wave.Width(contentWidth).Align(lipgloss.Center).Render(waveform(m.frame, min(waveWidth, contentWidth), m.snap.State))
	}

	var prompt string
	if m.filtering {
		prompt = m.styles.Panel.Width(contentWidth).Render(m.filter.View())
	}
	notice := m.renderNotice(contentWidth)

	fixed := []string{header, info, hints}
	for _, s := range []string{wave, prompt, notice} {
		if s != "" {
			fixed = append(fixed, s)
		}
	}
	used := 2
	for _, s := range fixed {
		used += lipgloss.Height(s)
	}

	art := m.renderArt(contentWidth)
	artHeight := lipgloss.Height(art)
	remaining := m.height - used
	// art goes first when the list still gets a few rows
	if remaining-artHeight < 6 {
		art = ""
		artHeight = 0
	}
	listItems := max(remaining-artHeight-3, 1)
	stations := m.renderList(contentWidth, listItems)

	sections := []string{header}
	if art != "" {
		sections = append(sections, art)
	}
	if wave != "" {
		sections = append(sections, wave)
	}
	sections = append(sections, info, stations)
	if prompt != "" {
		sections = append(sections, prompt)
	}
	if notice != "" {
		sections = append(sections, notice)
	}
	sections = append(sections, hints)

	return m.styles.App.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m Model) renderHeader(width int) string {
	left := "♪ " + appTitle
	if width < 30 {
		left = "♪ LOFI"
	}
	line := joinHeader(left, m.renderState(), width)
	return m.styles.Header.Width(width).Render(line)
}

func (m Model) renderState() string {
	st := m.snap.State
	label := st.String()
	if m.snap.Muted && st.Active() {
		label += " (MUTED)"
	}
	switch st {
	case player.StatePlaying:
		return m.styles.StatePlaying.Render(label)
	case player.StateLoading, player.StateBuffering:
		return m.spinner.View() + " " + m.styles.StateBusy.Render(label)
	case player.StateError:
		return m.styles.Error.Render(label)
	default:
		return m.styles.StateIdle.Render(label)
	}
}

func (m Model) renderArt(width int) string {
	art := Arts[m.artIdx]
	if len(art.Frames) == 0 {
		return ""
	}
	frame := art.Frames[m.artFrame%len(art.Frames)]
	return m.styles.ArtPanel.Width(width).Align(lipgloss.Center).Render(m.styles.Art.Render(frame))
}

func (m Model) renderStationPanel(width int) string {
	snap := m.snap
	if !snap.HasStation {
		name := "No station"
		if rec, ok := m.currentStation(); ok {
			name = rec.Name
		}
		return lipgloss.JoinVertical(lipgloss.Left,
			m.styles.StationName.Render(truncateText(name, width)),
			m.styles.Meta.Render("Press space to play"),
		)
	}

	volume := fmt.Sprintf("Volume: %d%%", snap.Volume)
	if snap.Muted {
		volume += " (muted)"
	}
	lines := []string{
		m.styles.StationName.Render(truncateText(snap.Station.Name, width)),
		m.styles.Meta.Render(truncateText(fallback(snap.Station.Description, "-"), width)),
		m.styles.Meta.Render("Status: ") + m.renderState(),
		m.styles.Meta.Render("Time: ") + m.styles.Clock.Render(formatClock(snap, m.live)),
		m.styles.Meta.Render(volume),
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderList(width int, maxItems int) string {
	visible := m.visibleStations()
	lines := []string{m.styles.ListHeader.Render(fmt.Sprintf("Stations (%d)", len(visible)))}

	if len(visible) == 0 {
		lines = append(lines, m.styles.Muted.Render("No stations found"))
		return m.styles.Panel.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
	}

	lineWidth := innerWidthForPanel(width)
	start, end := listWindow(len(visible), m.selected, maxItems)
	for i := start; i < end; i++ {
		rec := visible[i]
		marker := "  "
		style := m.styles.ListItem
		if m.snap.HasStation && rec.ID == m.snap.Station.ID && m.snap.State.Active() {
			marker = "♪ "
			style = m.styles.ListPlaying
		}
		if i == m.selected {
			marker = "> "
			style = m.styles.ListActive
		}

		fav := ""
		if m.favorites != nil && m.favorites.IsFavorite(rec.ID) {
			fav = " *"
		}

		genre := ""
		if lineWidth >= 40 {
			genre = "  [" + rec.Genre + "]"
		}
		nameWidth := max(lineWidth-2-runewidth.StringWidth(fav)-runewidth.StringWidth(genre), 4)
		line := marker + truncateText(rec.Name, nameWidth) + fav + genre
		lines = append(lines, style.Width(lineWidth).MaxWidth(lineWidth).Render(line))
	}

	return m.styles.Panel.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m Model) renderNotice(width int) string {
	if m.notice == "" {
		return ""
	}
	style := m.styles.Notice
	if m.noticeErr {
		style = m.styles.Error
	}
	return style.Width(width).Render(truncateText(m.notice, width))
}

func (m Model) renderHelp() string {
	lines := []string{
		m.styles.ListHeader.Render("Controls"),
		"",
		m.help.FullHelpView(m.keys.FullHelp()),
		"",
		m.styles.Muted.Render("? or esc to close"),
	}
	return m.styles.HelpBox.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m Model) renderThemePicker() string {
	lines := []string{
		m.styles.ListHeader.Render("Select Theme"),
		"",
	}
	for i, t := range Themes {
		marker := "  "
		style := m.styles.ListItem
		if i == m.themeIdx {
			marker = "> "
			style = m.styles.ListActive
		}
		lines = append(lines, style.Render(marker+t.Name))
	}
	lines = append(lines, "", m.styles.Muted.Render(Themes[m.themeIdx].Description))
	lines = append(lines, m.styles.Muted.Render("Enter save  Esc close"))
	return m.styles.HelpBox.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// waveform draws width bars; the pattern only moves while audio is active.
func waveform(frame, width int, st player.State) string {
	bars := []rune(waveBars)
	if !st.Active() || st == player.StatePaused {
		return strings.Repeat(string(bars[0]), max(width, 0))
	}
	var b strings.Builder
	for i := 0; i < width; i++ {
		b.WriteRune(bars[(frame+i*3)%len(bars)])
	}
	return b.String()
}

// formatClock renders listening time as HH:MM:SS.
func formatClock(snap player.Snapshot, live bool) string {
	if !snap.State.Active() {
		return "--:--:--"
	}
	total := int(snap.Elapsed / time.Second)
	clock := fmt.Sprintf("%02d:%02d:%02d", total/3600, total%3600/60, total%60)
	if live {
		clock += " (LIVE)"
	}
	return clock
}

func joinHeader(left, right string, width int) string {
	if width <= 0 {
		return ""
	}

	rightWidth := lipgloss.Width(right)
	if rightWidth >= width {
		return truncateText(right, width)
	}

	maxLeft := width - rightWidth - 1
	left = truncateText(left, maxLeft)
	space := max(width-lipgloss.Width(left)-rightWidth, 1)
	return left + strings.Repeat(" ", space) + right
}

func listWindow(length, selected, limit int) (int, int) {
	if length <= limit {
		return 0, length
	}
	start := max(selected-limit/2, 0)
	end := start + limit
	if end > length {
		end = length
		start = max(end-limit, 0)
	}
	return start, end
}

func fallback(value, alt string) string {
	if strings.TrimSpace(value) == "" {
		return alt
	}
	return value
}

// truncateText cuts value to maxLen terminal cells.
func truncateText(value string, maxLen int) string {
	value = strings.TrimSpace(value)
	if maxLen <= 0 {
		return ""
	}
	if runewidth.StringWidth(value) <= maxLen {
		return value
	}
	if maxLen <= 3 {
		return runewidth.Truncate(value, maxLen, "")
	}
	return runewidth.Truncate(value, maxLen, "...")
}

func innerWidthForPanel(width int) int {
	inner := width - 6
	if inner < 4 {
		inner = max(width-2, 2)
	}
	if inner > width {
		inner = width
	}
	return inner
}
