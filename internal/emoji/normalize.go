package emoji

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	customExact    = regexp.MustCompile(`^<(a?):(\w+):(\d+)>$`)
	shortcodeExact = regexp.MustCompile(`^:([A-Za-z0-9_+\-]+):$`)
)

// Canonical returns the lookup key for a raw emoji in any surface form:
// a glyph, a ":shortcode:", or a "<:name:id>" / "<a:name:id>" custom tag.
// Equivalent emoji share a key. Empty input yields "".
func Canonical(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if m := customExact.FindStringSubmatch(raw); m != nil {
		return nameKey(m[2])
	}
	if m := shortcodeExact.FindStringSubmatch(raw); m != nil {
		return nameKey(m[1])
	}
	return glyphKey(raw)
}

// Equivalent reports whether a and b denote the same emoji regardless of
// surface form, e.g. the tomato glyph and ":tomato:".
func Equivalent(a, b string) bool {
	ka, kb := Canonical(a), Canonical(b)
	return ka != "" && ka == kb
}

// Glyph returns the native glyph for a shortcode name or alias.
func Glyph(name string) (string, bool) {
	name = strings.Trim(strings.ToLower(name), ":")
	if primary, ok := aliasToName[name]; ok {
		name = primary
	}
	g, ok := nameToGlyph[name]
	return g, ok
}

// Shortcode returns the ":name:" form of a native glyph.
func Shortcode(glyph string) (string, bool) {
	name, ok := glyphToName[stripGlyph(glyph)]
	if !ok {
		return "", false
	}
	return ":" + name + ":", true
}

func nameKey(name string) string {
	name = strings.ToLower(name)
	if primary, ok := aliasToName[name]; ok {
		return primary
	}
	return name
}

func glyphKey(glyph string) string {
	stripped := stripGlyph(glyph)
	if stripped == "" {
		return ""
	}
	if name, ok := glyphToName[stripped]; ok {
		return name
	}
	return stripped
}

// stripGlyph drops presentation selectors and skin-tone modifiers, which do
// not change which emoji is meant.
func stripGlyph(glyph string) string {
	glyph = norm.NFC.String(glyph)
	return strings.Map(func(r rune) rune {
		if isPresentationSelector(r) || isSkinTone(r) {
			return -1
		}
		return r
	}, glyph)
}

func isPresentationSelector(r rune) bool {
	return r == 0xFE0E || r == 0xFE0F
}

func isSkinTone(r rune) bool {
	return r >= 0x1F3FB && r <= 0x1F3FF
}
