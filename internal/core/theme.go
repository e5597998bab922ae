package core

import "fmt"

// Theme selects the accent color used by the UI surfaces.
type Theme string

const (
	ThemeViolet  Theme = "violet"
	ThemeCyan    Theme = "cyan"
	ThemeRose    Theme = "rose"
	ThemeAmber   Theme = "amber"
	ThemeEmerald Theme = "emerald"
)

// DefaultTheme is used on first run and whenever a stored value fails
// to parse.
const DefaultTheme = ThemeViolet

// Themes lists every valid theme in display order.
func Themes() []Theme {
	return []Theme{ThemeViolet, ThemeCyan, ThemeRose, ThemeAmber, ThemeEmerald}
}

// ParseTheme validates a theme name.
func ParseTheme(s string) (Theme, error) {
	for _, t := range Themes() {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown theme %q", s)
}

// Next returns the theme following t in display order, wrapping around.
func (t Theme) Next() Theme {
	all := Themes()
	for i, cur := range all {
		if cur == t {
			return all[(i+1)%len(all)]
		}
	}
	return DefaultTheme
}

// Valid reports whether t is one of the five known themes.
func (t Theme) Valid() bool {
	_, err := ParseTheme(string(t))
	return err == nil
}
