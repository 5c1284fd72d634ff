package ui

import "github.com/charmbracelet/lipgloss"

type Styles struct {
	App          lipgloss.Style
	Header       lipgloss.Style
	Panel        lipgloss.Style
	ArtPanel     lipgloss.Style
	Art          lipgloss.Style
	Wave         lipgloss.Style
	StationName  lipgloss.Style
	Meta         lipgloss.Style
	Clock        lipgloss.Style
	ListHeader   lipgloss.Style
	ListItem     lipgloss.Style
	ListActive   lipgloss.Style
	ListPlaying  lipgloss.Style
	KeyHint      lipgloss.Style
	HelpBox      lipgloss.Style
	Notice       lipgloss.Style
	Error        lipgloss.Style
	Accent       lipgloss.Style
	Muted        lipgloss.Style
	StatePlaying lipgloss.Style
	StateBusy    lipgloss.Style
	StateIdle    lipgloss.Style
}
