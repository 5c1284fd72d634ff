package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// SetupChoices is what the first-run wizard collects.
type SetupChoices struct {
	Theme    string
	Font     string
	Art      string
	LiveScan bool
}

type Font struct {
	Name string
	// Value is stored as terminal_font; empty keeps the terminal's own font.
	Value string
}

var Fonts = []Font{
	{Name: "System default", Value: ""},
	{Name: "JetBrains Mono Nerd Font", Value: "JetBrainsMono Nerd Font"},
	{Name: "Fira Code Nerd Font", Value: "FiraCode Nerd Font"},
	{Name: "Hack Nerd Font", Value: "Hack Nerd Font"},
	{Name: "Cascadia Code", Value: "Cascadia Code"},
	{Name: "Iosevka", Value: "Iosevka"},
}

type setupStep int

const (
	stepTheme setupStep = iota
	stepFont
	stepArt
	stepLive
	setupSteps
)

const (
	setupListWidth  = 44
	setupListHeight = 18
	liveYes         = "yes"
	liveNo          = "no"
)

type setupItem struct {
	title, desc, value string
}

func (i setupItem) Title() string       { return i.title }
func (i setupItem) Description() string { return i.desc }
func (i setupItem) FilterValue() string { return i.title }

// SetupModel walks through theme, font, art and live scan, one list per step.
type SetupModel struct {
	steps     [setupSteps]list.Model
	step      setupStep
	done      bool
	cancelled bool
}

// NewSetupModel preselects current in every step.
func NewSetupModel(current SetupChoices) SetupModel {
	var m SetupModel

	themes := make([]setupItem, 0, len(Themes))
	for _, t := range Themes {
		themes = append(themes, setupItem{title: t.Name, desc: t.Description, value: t.Slug})
	}
	fonts := make([]setupItem, 0, len(Fonts))
	for _, f := range Fonts {
		desc := "set the same font in your terminal profile"
		if f.Value == "" {
			desc = "keep whatever the terminal uses"
		}
		fonts = append(fonts, setupItem{title: f.Name, desc: desc, value: f.Value})
	}
	arts := make([]setupItem, 0, len(Arts))
	for _, a := range Arts {
		arts = append(arts, setupItem{title: a.Name, desc: a.Description, value: a.ID})
	}
	live := []setupItem{
		{title: "No", desc: "use the built-in station list", value: liveNo},
		{title: "Yes", desc: "list Lofi Girl live streams at startup (needs yt-dlp)", value: liveYes},
	}

	liveValue := liveNo
	if current.LiveScan {
		liveValue = liveYes
	}
	m.steps[stepTheme] = newSetupList("Color theme", stepTheme, themes, ThemeBySlug(current.Theme).Slug)
	m.steps[stepFont] = newSetupList("Terminal font", stepFont, fonts, current.Font)
	m.steps[stepArt] = newSetupList("ASCII art", stepArt, arts, ArtByID(current.Art).ID)
	m.steps[stepLive] = newSetupList("Live streams", stepLive, live, liveValue)
	return m
}

func newSetupList(title string, step setupStep, items []setupItem, selected string) list.Model {
	listItems := make([]list.Item, len(items))
	at := 0
	for i, it := range items {
		listItems[i] = it
		if it.value == selected {
			at = i
		}
	}
	l := list.New(listItems, list.NewDefaultDelegate(), setupListWidth, setupListHeight)
	l.Title = fmt.Sprintf("%s (%d/%d)", title, step+1, setupSteps)
	l.DisableQuitKeybindings()
	l.Select(at)
	return l
}

func (m SetupModel) Init() tea.Cmd {
	return nil
}

func (m SetupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		for i := range m.steps {
			m.steps[i].SetSize(min(setupListWidth, msg.Width/2), max(msg.Height-2, 4))
		}
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.cancelled = true
			return m, tea.Quit
		}
		state := m.steps[m.step].FilterState()
		if state != list.Filtering {
			switch msg.String() {
			case "enter":
				if m.step == stepLive {
					m.done = true
					return m, tea.Quit
				}
				m.step++
				return m, nil
			case "esc":
				if state == list.FilterApplied {
					// clears the filter
					break
				}
				if m.step == stepTheme {
					m.cancelled = true
					return m, tea.Quit
				}
				m.step--
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	m.steps[m.step], cmd = m.steps[m.step].Update(msg)
	return m, cmd
}

// Choices reports the selections, ok is false unless the wizard finished.
func (m SetupModel) Choices() (SetupChoices, bool) {
	if !m.done {
		return SetupChoices{}, false
	}
	return SetupChoices{
		Theme:    m.value(stepTheme),
		Font:     m.value(stepFont),
		Art:      m.value(stepArt),
		LiveScan: m.value(stepLive) == liveYes,
	}, true
}

func (m SetupModel) value(step setupStep) string {
	if it, ok := m.steps[step].SelectedItem().(setupItem); ok {
		return it.value
	}
	return ""
}

func (m SetupModel) View() string {
	if m.done || m.cancelled {
		return ""
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.steps[m.step].View(), "  ", m.preview())
	hint := BuildStyles(ThemeBySlug(m.value(stepTheme))).Muted.Render("enter next · esc back · / filter · ctrl+c quit")
	return body + "\n" + hint
}

func (m SetupModel) preview() string {
	theme := ThemeBySlug(m.value(stepTheme))
	st := BuildStyles(theme)

	switch m.step {
	case stepTheme:
		var swatch strings.Builder
		for _, c := range []string{theme.Primary, theme.Secondary, theme.Accent, theme.Success, theme.Warning, theme.Error} {
			swatch.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(c)).Render("██"))
		}
		return lipgloss.JoinVertical(lipgloss.Left,
			st.Accent.Render(theme.Name),
			swatch.String(),
			st.StationName.Render("Lofi Hip Hop Radio"),
			st.StatePlaying.Render("▶ PLAYING"),
			st.Muted.Render(theme.Description),
		)
	case stepFont:
		return lipgloss.JoinVertical(lipgloss.Left,
			st.Accent.Render("Glyphs"),
			st.StationName.Render("♪ ▶ ⏸ ■ ♥ ◆"),
			st.Muted.Render("Missing glyphs mean the font lacks them."),
		)
	case stepArt:
		art := ArtByID(m.value(stepArt))
		if len(art.Frames) == 0 {
			return ""
		}
		return st.Art.Render(art.Frames[0])
	default:
		return st.Muted.Render("Live streams are read from\nthe Lofi Girl YouTube channel.\nThe built-in list is kept\nwhen nothing is live.")
	}
}
