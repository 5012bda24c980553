package settings

import "errors"

// Theme is a UI theme preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// DefaultTheme is what a user without a stored preference gets.
const DefaultTheme = ThemeLight

var ErrInvalidTheme = errors.New("unknown theme")

// Valid reports whether t is a known theme value.
func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}
