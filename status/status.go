// Package status encodes the hover and active flags of a widget into the
// string token the view layer keeps as display state.
//
// The empty token means no status has been recorded yet. It is a normal input
// and every transition turns it into a concrete token.
package status

import "strings"

// Token is the string form of a widget's status.
type Token string

// Canonical tokens.
const (
	None          Token = ""
	Active        Token = "active"
	Inactive      Token = "inactive"
	HoverActive   Token = "hoveractive"
	HoverInactive Token = "hoverinactive"
)

const (
	hoverMarker    = "hover"
	activeMarker   = "active"
	inactiveMarker = "inactive"
)

// AddHover sets the hover flag. A missing token becomes HoverInactive: hover
// without a prior click is inactive.
func AddHover(t Token) Token {
	if t == None {
		return HoverInactive
	}
	if strings.Contains(string(t), hoverMarker) {
		return t
	}
	return Token(hoverMarker) + t
}

// RemoveHover clears the hover flag and keeps the active part as is.
// A missing token, or one that held nothing but hover, becomes Inactive.
func RemoveHover(t Token) Token {
	if t == None {
		return Inactive
	}
	s := string(t)
	// Stripping can splice a new marker together ("hohoverver").
	for strings.Contains(s, hoverMarker) {
		s = strings.ReplaceAll(s, hoverMarker, "")
	}
	if s == "" {
		return Inactive
	}
	return Token(s)
}

// ToggleActive flips between active and inactive, keeping any hover prefix.
func ToggleActive(t Token) Token {
	if t == None {
		return Active
	}
	s := string(t)
	switch {
	// "active" is a substring of "inactive", so inactive goes first.
	case strings.Contains(s, inactiveMarker):
		return Token(strings.Replace(s, inactiveMarker, activeMarker, 1))
	case strings.Contains(s, activeMarker):
		return Token(strings.Replace(s, activeMarker, inactiveMarker, 1))
	default:
		return t + Token(activeMarker)
	}
}

// Hovered reports whether t carries the hover marker.
func Hovered(t Token) bool {
	return strings.Contains(string(t), hoverMarker)
}

// IsActive reports whether t is active. Inactive and missing tokens are not.
func IsActive(t Token) bool {
	return Parse(t).Activity == ActivityActive
}
