package ui

import "github.com/charmbracelet/lipgloss"

// DefaultThemeSlug is used when the configured theme is unknown.
const DefaultThemeSlug = "catppuccin-mocha"

// Theme defines a set of semantic colors used to build the UI styles.
type Theme struct {
	Name        string
	Slug        string
	Description string
	Bg          string // app background, active item text
	Fg          string // primary text, station names
	Primary     string // header, art, waveform
	Secondary   string // header bg, help bg
	Accent      string // labels, active items
	Error       string // error notifications
	Warning     string // buffering, loading
	Success     string // playing state
	Border      string // panel borders
	Muted       string // hints, metadata
}

// Themes is the ordered list of all built-in themes.
var Themes = []Theme{
	themeCatppuccinMocha(),
	themeCatppuccinLatte(),
	themeDracula(),
	themeNord(),
	themeTokyoNight(),
	themeGruvboxDark(),
	themeSolarizedDark(),
	themeOneDark(),
	themeMonokaiPro(),
	themeRosePine(),
	themeKanagawa(),
	themeEverforest(),
	themeVintage(),
}

// ThemeBySlug returns the theme with the given slug, falling back to Catppuccin Mocha.
func ThemeBySlug(slug string) Theme {
	for _, t := range Themes {
		if t.Slug == slug {
			return t
		}
	}
	return Themes[0]
}

func themeIndex(slug string) int {
	for i, t := range Themes {
		if t.Slug == slug {
			return i
		}
	}
	return 0
}

// BuildStyles constructs the full Styles set from a theme.
func BuildStyles(t Theme) Styles {
	fg := lipgloss.Color(t.Fg)
	bg := lipgloss.Color(t.Bg)
	primary := lipgloss.Color(t.Primary)
	secondary := lipgloss.Color(t.Secondary)
	accent := lipgloss.Color(t.Accent)
	borderColor := lipgloss.Color(t.Border)
	success := lipgloss.Color(t.Success)
	warning := lipgloss.Color(t.Warning)
	muted := lipgloss.Color(t.Muted)
	errColor := lipgloss.Color(t.Error)

	border := lipgloss.RoundedBorder()

	return Styles{
		App: lipgloss.NewStyle().
			Padding(1, 2).
			Foreground(fg),
		Header: lipgloss.NewStyle().
			Foreground(primary).
			Background(bg).
			Padding(0, 1).
			Bold(true),
		Panel: lipgloss.NewStyle().
			Border(border).
			BorderForeground(borderColor).
			Padding(0, 2),
		ArtPanel: lipgloss.NewStyle().
			Border(border).
			BorderForeground(secondary).
			Foreground(primary).
			Padding(0, 2),
		Art: lipgloss.NewStyle().
			Foreground(primary),
		Wave: lipgloss.NewStyle().
			Foreground(accent),
		StationName: lipgloss.NewStyle().
			Foreground(fg).
			Bold(true),
		Meta: lipgloss.NewStyle().
			Foreground(muted),
		Clock: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true),
		ListHeader: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true),
		ListItem: lipgloss.NewStyle().
			Foreground(fg),
		ListActive: lipgloss.NewStyle().
			Foreground(bg).
			Background(accent).
			Bold(true),
		ListPlaying: lipgloss.NewStyle().
			Foreground(success).
			Bold(true),
		KeyHint: lipgloss.NewStyle().
			Foreground(muted),
		HelpBox: lipgloss.NewStyle().
			Border(border).
			BorderForeground(accent).
			Padding(1, 2).
			Foreground(fg),
		Notice: lipgloss.NewStyle().
			Foreground(secondary).
			Bold(true),
		Error: lipgloss.NewStyle().
			Foreground(errColor).
			Bold(true),
		Accent: lipgloss.NewStyle().
			Foreground(accent),
		Muted: lipgloss.NewStyle().
			Foreground(muted),
		StatePlaying: lipgloss.NewStyle().
			Foreground(success).
			Bold(true),
		StateBusy: lipgloss.NewStyle().
			Foreground(warning).
			Bold(true),
		StateIdle: lipgloss.NewStyle().
			Foreground(muted).
			Bold(true),
	}
}

func themeCatppuccinMocha() Theme {
	return Theme{
		Name:        "Catppuccin Mocha",
		Slug:        "catppuccin-mocha",
		Description: "Soothing pastel theme, dark variant",
		Bg:          "#1E1E2E",
		Fg:          "#CDD6F4",
		Primary:     "#89B4FA",
		Secondary:   "#F5C2E7",
		Accent:      "#A6E3A1",
		Error:       "#F38BA8",
		Warning:     "#F9E2AF",
		Success:     "#A6E3A1",
		Border:      "#89B4FA",
		Muted:       "#6C7086",
	}
}

func themeCatppuccinLatte() Theme {
	return Theme{
		Name:        "Catppuccin Latte",
		Slug:        "catppuccin-latte",
		Description: "Soothing pastel theme, light variant",
		Bg:          "#EFF1F5",
		Fg:          "#4C4F69",
		Primary:     "#1E66F5",
		Secondary:   "#EA76CB",
		Accent:      "#40A02B",
		Error:       "#D20F39",
		Warning:     "#DF8E1D",
		Success:     "#40A02B",
		Border:      "#1E66F5",
		Muted:       "#9CA0B0",
	}
}

func themeDracula() Theme {
	return Theme{
		Name:        "Dracula",
		Slug:        "dracula",
		Description: "A dark theme with vibrant colors",
		Bg:          "#282A36",
		Fg:          "#F8F8F2",
		Primary:     "#BD93F9",
		Secondary:   "#FF79C6",
		Accent:      "#8BE9FD",
		Error:       "#FF5555",
		Warning:     "#F1FA8C",
		Success:     "#50FA7B",
		Border:      "#BD93F9",
		Muted:       "#6272A4",
	}
}

func themeNord() Theme {
	return Theme{
		Name:        "Nord",
		Slug:        "nord",
		Description: "An arctic, north-bluish palette",
		Bg:          "#2E3440",
		Fg:          "#ECEFF4",
		Primary:     "#88C0D0",
		Secondary:   "#81A1C1",
		Accent:      "#8FBCBB",
		Error:       "#BF616A",
		Warning:     "#EBCB8B",
		Success:     "#A3BE8C",
		Border:      "#5E81AC",
		Muted:       "#4C566A",
	}
}

func themeTokyoNight() Theme {
	return Theme{
		Name:        "Tokyo Night",
		Slug:        "tokyo-night",
		Description: "Dark theme after the Tokyo skyline at night",
		Bg:          "#1A1B26",
		Fg:          "#C0CAF5",
		Primary:     "#7AA2F7",
		Secondary:   "#BB9AF7",
		Accent:      "#7DCFFF",
		Error:       "#F7768E",
		Warning:     "#E0AF68",
		Success:     "#9ECE6A",
		Border:      "#7AA2F7",
		Muted:       "#565F89",
	}
}

func themeGruvboxDark() Theme {
	return Theme{
		Name:        "Gruvbox Dark",
		Slug:        "gruvbox-dark",
		Description: "Retro groove scheme with warm, earthy tones",
		Bg:          "#282828",
		Fg:          "#EBDBB2",
		Primary:     "#83A598",
		Secondary:   "#D3869B",
		Accent:      "#8EC07C",
		Error:       "#FB4934",
		Warning:     "#FABD2F",
		Success:     "#B8BB26",
		Border:      "#83A598",
		Muted:       "#928374",
	}
}

func themeSolarizedDark() Theme {
	return Theme{
		Name:        "Solarized Dark",
		Slug:        "solarized-dark",
		Description: "Precision colors for machines and people",
		Bg:          "#002B36",
		Fg:          "#839496",
		Primary:     "#268BD2",
		Secondary:   "#D33682",
		Accent:      "#2AA198",
		Error:       "#DC322F",
		Warning:     "#B58900",
		Success:     "#859900",
		Border:      "#268BD2",
		Muted:       "#586E75",
	}
}

func themeOneDark() Theme {
	return Theme{
		Name:        "One Dark",
		Slug:        "one-dark",
		Description: "Dark theme from the Atom editor",
		Bg:          "#282C34",
		Fg:          "#ABB2BF",
		Primary:     "#61AFEF",
		Secondary:   "#C678DD",
		Accent:      "#56B6C2",
		Error:       "#E06C75",
		Warning:     "#E5C07B",
		Success:     "#98C379",
		Border:      "#61AFEF",
		Muted:       "#5C6370",
	}
}

func themeMonokaiPro() Theme {
	return Theme{
		Name:        "Monokai Pro",
		Slug:        "monokai-pro",
		Description: "Warm professional scheme",
		Bg:          "#2D2A2E",
		Fg:          "#FCFCFA",
		Primary:     "#78DCE8",
		Secondary:   "#AB9DF2",
		Accent:      "#A9DC76",
		Error:       "#FF6188",
		Warning:     "#FFD866",
		Success:     "#A9DC76",
		Border:      "#78DCE8",
		Muted:       "#727072",
	}
}

func themeRosePine() Theme {
	return Theme{
		Name:        "Rose Pine",
		Slug:        "rose-pine",
		Description: "All natural pine, faux fur and a bit of soho vibes",
		Bg:          "#191724",
		Fg:          "#E0DEF4",
		Primary:     "#C4A7E7",
		Secondary:   "#EBBCBA",
		Accent:      "#9CCFD8",
		Error:       "#EB6F92",
		Warning:     "#F6C177",
		Success:     "#9CCFD8",
		Border:      "#26233A",
		Muted:       "#6E6A86",
	}
}

func themeKanagawa() Theme {
	return Theme{
		Name:        "Kanagawa",
		Slug:        "kanagawa",
		Description: "Dark theme after The Great Wave off Kanagawa",
		Bg:          "#1F1F28",
		Fg:          "#DCD7BA",
		Primary:     "#7E9CD8",
		Secondary:   "#957FB8",
		Accent:      "#7FB4CA",
		Error:       "#E82424",
		Warning:     "#FF9E3B",
		Success:     "#98BB6C",
		Border:      "#2A2A37",
		Muted:       "#727169",
	}
}

func themeEverforest() Theme {
	return Theme{
		Name:        "Everforest",
		Slug:        "everforest",
		Description: "Comfortable green based scheme",
		Bg:          "#2D353B",
		Fg:          "#D3C6AA",
		Primary:     "#A7C080",
		Secondary:   "#D699B6",
		Accent:      "#83C092",
		Error:       "#E67E80",
		Warning:     "#DBBC7F",
		Success:     "#A7C080",
		Border:      "#374145",
		Muted:       "#859289",
	}
}

func themeVintage() Theme {
	return Theme{
		Name:        "Vintage",
		Slug:        "vintage",
		Description: "Warm amber tube tones",
		Bg:          "#2B1A12",
		Fg:          "#F5E6C8",
		Primary:     "#D9A441",
		Secondary:   "#C97B4A",
		Accent:      "#D9A441",
		Error:       "#F29F8E",
		Warning:     "#E8C170",
		Success:     "#6A8F4E",
		Border:      "#6E4A2F",
		Muted:       "#B89C7A",
	}
}
