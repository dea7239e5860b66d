package dashboard

import (
	"sort"
	"strings"

	"github.com/go-echarts/go-echarts/v2/types"
)

// ThemeMode is the binary light/dark switch.
type ThemeMode string

const (
	ThemeLight ThemeMode = "light"
	ThemeDark  ThemeMode = "dark"
)

// ThemeModeFor maps the dark flag onto a mode.
func ThemeModeFor(dark bool) ThemeMode {
	if dark {
		return ThemeDark
	}
	return ThemeLight
}

// Dark reports whether the mode is dark.
func (m ThemeMode) Dark() bool {
	return m == ThemeDark
}

// Toggle returns the opposite mode.
func (m ThemeMode) Toggle() ThemeMode {
	if m.Dark() {
		return ThemeLight
	}
	return ThemeDark
}

// ThemeTokens are the display attributes derived from a mode.
type ThemeTokens struct {
	Background string `json:"background"`
	Text       string `json:"text"`
	Card       string `json:"card"`
	Border     string `json:"border"`
	Hover      string `json:"hover"`
}

var (
	lightTokens = ThemeTokens{
		Background: "#f9fafb",
		Text:       "#111827",
		Card:       "#ffffff",
		Border:     "#e5e7eb",
		Hover:      "#f3f4f6",
	}
	darkTokens = ThemeTokens{
		Background: "#111827",
		Text:       "#ffffff",
		Card:       "#1f2937",
		Border:     "#374151",
		Hover:      "#374151",
	}
)

// ThemeSelection carries the resolved tokens and chart theme for a mode.
type ThemeSelection struct {
	Mode       ThemeMode   `json:"mode"`
	Tokens     ThemeTokens `json:"tokens"`
	ChartTheme string      `json:"chart_theme"`
}

// SelectTheme resolves the tokens for a mode.
func SelectTheme(mode ThemeMode) ThemeSelection {
	if mode.Dark() {
		return ThemeSelection{Mode: ThemeDark, Tokens: darkTokens, ChartTheme: types.ThemeChalk}
	}
	return ThemeSelection{Mode: ThemeLight, Tokens: lightTokens, ChartTheme: types.ThemeWesteros}
}

// CSSVariables normalizes token keys into CSS variable names.
func (theme ThemeSelection) CSSVariables() map[string]string {
	tokens := map[string]string{
		"bg":     theme.Tokens.Background,
		"text":   theme.Tokens.Text,
		"card":   theme.Tokens.Card,
		"border": theme.Tokens.Border,
		"hover":  theme.Tokens.Hover,
	}
	vars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		if value == "" {
			continue
		}
		vars[normalizeCSSVariable(key)] = value
	}
	return vars
}

// CSSVariablesInline renders the CSS variable map as a style string, sorted by name.
func (theme ThemeSelection) CSSVariablesInline() string {
	vars := theme.CSSVariables()
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	var builder strings.Builder
	for _, key := range keys {
		builder.WriteString(key)
		builder.WriteString(": ")
		builder.WriteString(vars[key])
		builder.WriteString("; ")
	}
	return strings.TrimSpace(builder.String())
}

func normalizeCSSVariable(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	if strings.HasPrefix(name, "--") {
		return name
	}
	return "--" + name
}
