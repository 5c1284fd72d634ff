package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// compactView is art, waveform and a single status line.
func (m Model) compactView() string {
	width := m.width - 4
	if width < 10 {
		width = m.width
	}

	sections := []string{}
	art := Arts[m.artIdx]
	if len(art.Frames) > 0 {
		frame := art.Frames[m.artFrame%len(art.Frames)]
		if lipgloss.Height(frame)+6 <= m.height {
			sections = append(sections, m.styles.Art.Width(width).Align(lipgloss.Center).Render(frame))
		}
	}
	if m.settings.ShowVisualizer {
		sections = append(sections, m.styles.Wave.Width(width).Align(lipgloss.Center).
			Render(waveform(m.frame, min(waveWidth, width), m.snap.State)))
	}
	sections = append(sections, m.renderCompactInfo(width))
	if m.filtering {
		sections = append(sections, m.filter.View())
	}
	if notice := m.renderNotice(width); notice != "" {
		sections = append(sections, notice)
	}
	sections = append(sections, m.styles.KeyHint.Render("space play  n/p station  c full  ? help  q quit"))

	return m.styles.App.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m Model) renderCompactInfo(width int) string {
	name := "No station"
	if m.snap.HasStation {
		name = m.snap.Station.Name
	} else if rec, ok := m.currentStation(); ok {
		name = rec.Name
	}

	volume := fmt.Sprintf("Vol %d%%", m.snap.Volume)
	if m.snap.Muted {
		volume = "Muted"
	}
	tail := strings.Join([]string{m.renderState(), formatClock(m.snap, m.live), volume}, " │ ")
	nameWidth := max(width-lipgloss.Width(tail)-5, 6)
	line := "♪ " + m.styles.StationName.Render(truncateText(name, nameWidth)) + " │ " + tail
	return lipgloss.NewStyle().MaxWidth(width).Render(line)
}
