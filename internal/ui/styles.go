package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/dtkav/binview/status"
)

// barStyle is used for bars nobody has touched.
var barStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("250")) // Light gray

// hoverBarStyle highlights the whole column under the pointer
var hoverBarStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("39")). // Cyan
	Background(lipgloss.Color("23"))  // Dark blue column

// activeBarStyle is used for bars toggled on
var activeBarStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("205")). // Pink/magenta
	Bold(true)

// activeHoverBarStyle is used for bars that are both active and hovered
var activeHoverBarStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("205")).
	Background(lipgloss.Color("23")).
	Bold(true)

var headerStyle = lipgloss.NewStyle().
	Background(lipgloss.Color("4")).
	Foreground(lipgloss.Color("15")).
	Bold(true)

var instructionsStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("242"))

var errorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("196")).
	Bold(true)

// styleFor picks the bar style for a status token.
func styleFor(t status.Token) lipgloss.Style {
	st := status.Parse(t)
	active := st.Activity == status.ActivityActive
	switch {
	case st.Hover && active:
		return activeHoverBarStyle
	case st.Hover:
		return hoverBarStyle
	case active:
		return activeBarStyle
	default:
		return barStyle
	}
}
