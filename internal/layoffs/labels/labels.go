// Package labels decorates layoff records for display: country flags, readable
// location names, industry icons and trimmed company names.
package labels

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	DefaultFlag         = "🌐"
	DefaultIcon         = "🏢"
	UnknownLocationName = "Unknown Location"
)

var companySuffix = regexp.MustCompile(`(?i)\s+(Inc\.?|LLC|Ltd\.?|Corp\.?|Corporation|Company)$`)

// Labeler holds the lookup tables. The zero value is not usable; use New.
type Labeler struct {
	places     []place
	placeByKey map[string]place
	icons      []sectorIcon
	iconByKey  map[string]string
}

// New builds a Labeler over the built-in tables.
func New() *Labeler {
	l := &Labeler{
		places:     places(),
		placeByKey: map[string]place{},
		icons:      sectorIcons(),
		iconByKey:  map[string]string{},
	}
	for _, p := range l.places {
		l.placeByKey[p.key] = p
	}
	for _, s := range l.icons {
		l.iconByKey[s.key] = s.icon
	}
	return l
}

// lookupPlace tries an exact key, then the first key that contains or is
// contained in the lower-cased location.
func (l *Labeler) lookupPlace(location string) (place, bool) {
	key := strings.ToLower(strings.TrimSpace(location))
	if key == "" || key == "null" || key == "undefined" {
		return place{}, false
	}
	if p, ok := l.placeByKey[key]; ok {
		return p, true
	}
	for _, p := range l.places {
		if strings.Contains(key, p.key) || strings.Contains(p.key, key) {
			return p, true
		}
	}
	return place{}, false
}

// Flag returns the flag emoji for a location, or DefaultFlag.
func (l *Labeler) Flag(location string) string {
	if p, ok := l.lookupPlace(location); ok {
		return p.flag
	}
	return DefaultFlag
}

// DisplayName returns a readable name for a location. Unmatched locations are
// returned capitalized.
func (l *Labeler) DisplayName(location string) string {
	if p, ok := l.lookupPlace(location); ok {
		return p.name
	}
	if strings.TrimSpace(location) == "" {
		return UnknownLocationName
	}
	switch strings.ToLower(strings.TrimSpace(location)) {
	case "null", "undefined":
		return UnknownLocationName
	}
	return capitalize(location)
}

// IndustryIcon returns the icon for a sector, or DefaultIcon.
func (l *Labeler) IndustryIcon(sector string) string {
	key := strings.ToLower(strings.TrimSpace(sector))
	if key == "" {
		return DefaultIcon
	}
	if icon, ok := l.iconByKey[key]; ok {
		return icon
	}
	for _, s := range l.icons {
		if strings.Contains(key, s.key) || strings.Contains(s.key, key) {
			return s.icon
		}
	}
	return DefaultIcon
}

// CompanyName drops a trailing legal suffix such as "Inc." or "LLC".
func CompanyName(name string) string {
	return strings.TrimSpace(companySuffix.ReplaceAllString(name, ""))
}

// Initials returns up to two upper-cased initials for a logo placeholder.
func Initials(name string) string {
	var b strings.Builder
	n := 0
	for _, word := range strings.Split(name, " ") {
		r, _ := utf8.DecodeRuneInString(word)
		if r == utf8.RuneError {
			continue
		}
		b.WriteRune(unicode.ToUpper(r))
		if n++; n == 2 {
			break
		}
	}
	return b.String()
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
