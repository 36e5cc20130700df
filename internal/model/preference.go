package model

// Theme is the display theme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Valid reports whether t is a known theme.
func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}

// Filter selects which tasks a listing shows.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

// Valid reports whether f is a known filter.
func (f Filter) Valid() bool {
	switch f {
	case FilterAll, FilterActive, FilterCompleted:
		return true
	}
	return false
}

// Preferences represents the persisted display settings.
type Preferences struct {
	Theme  Theme  `json:"theme"`
	Filter Filter `json:"filter"`
}

// ThemeRequest represents a theme change.
type ThemeRequest struct {
	Theme string `json:"theme"`
}

// FilterRequest represents a filter change.
type FilterRequest struct {
	Filter string `json:"filter"`
}
