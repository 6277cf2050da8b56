package status

import "strings"

// Activity is the tri-state active flag of a State.
type Activity uint8

const (
	// ActivityUnset means the widget has never been clicked.
	ActivityUnset Activity = iota
	ActivityActive
	ActivityInactive
)

func (a Activity) String() string {
	switch a {
	case ActivityActive:
		return "active"
	case ActivityInactive:
		return "inactive"
	default:
		return "unset"
	}
}

// State is the structured form of a Token.
type State struct {
	Hover    bool
	Activity Activity
}

// Parse decodes a token. Unrecognised text is ignored, so any string parses.
func Parse(t Token) State {
	s := string(t)
	st := State{Hover: strings.Contains(s, hoverMarker)}
	switch {
	case strings.Contains(s, inactiveMarker):
		st.Activity = ActivityInactive
	case strings.Contains(s, activeMarker):
		st.Activity = ActivityActive
	}
	return st
}

// Token encodes the state. The zero State encodes to None.
func (s State) Token() Token {
	var b strings.Builder
	if s.Hover {
		b.WriteString(hoverMarker)
	}
	switch s.Activity {
	case ActivityActive:
		b.WriteString(activeMarker)
	case ActivityInactive:
		b.WriteString(inactiveMarker)
	}
	return Token(b.String())
}

// AddHover mirrors the token function of the same name.
func (s State) AddHover() State {
	if s.Activity == ActivityUnset && !s.Hover {
		return State{Hover: true, Activity: ActivityInactive}
	}
	s.Hover = true
	return s
}

// RemoveHover mirrors the token function of the same name.
func (s State) RemoveHover() State {
	s.Hover = false
	if s.Activity == ActivityUnset {
		s.Activity = ActivityInactive
	}
	return s
}

// ToggleActive mirrors the token function of the same name.
func (s State) ToggleActive() State {
	if s.Activity == ActivityActive {
		s.Activity = ActivityInactive
	} else {
		s.Activity = ActivityActive
	}
	return s
}
