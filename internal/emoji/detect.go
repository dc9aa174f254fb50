// Package emoji finds emoji in chat message text and maps every surface form
// of the same emoji to one canonical key.
package emoji

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// Form is the surface form an emoji token was written in.
type Form int

const (
	FormNative Form = iota + 1
	FormShortcode
	FormCustom
	FormAnimated
)

func (f Form) String() string {
	switch f {
	case FormNative:
		return "native"
	case FormShortcode:
		return "shortcode"
	case FormCustom:
		return "custom"
	case FormAnimated:
		return "animated"
	default:
		return fmt.Sprintf("form(%d)", int(f))
	}
}

type Token struct {
	Raw  string
	Form Form
	// Name is the shortcode or custom emoji name; empty for native glyphs.
	Name string
	// ID is the platform id of a custom emoji.
	ID  uint64
	Key string
	// Pos is the byte offset of the token in the message.
	Pos int
}

// Detection lists every emoji occurrence in a message, in text order.
type Detection struct {
	Tokens []Token
}

func (d Detection) Len() int {
	return len(d.Tokens)
}

func (d Detection) Empty() bool {
	return len(d.Tokens) == 0
}

func (d Detection) ByForm(form Form) []Token {
	var out []Token
	for _, t := range d.Tokens {
		if t.Form == form {
			out = append(out, t)
		}
	}
	return out
}

var (
	customPattern    = regexp.MustCompile(`<(a?):(\w+):(\d+)>`)
	shortcodePattern = regexp.MustCompile(`:([A-Za-z0-9_+\-]+):`)
)

// Detect extracts emoji tokens from text. Repeated emoji are reported once per
// occurrence. Text that is not valid UTF-8 yields an empty detection.
func Detect(text string) Detection {
	if text == "" || !utf8.ValidString(text) {
		return Detection{}
	}

	var tokens []Token
	masked := []byte(text)

	for _, m := range customPattern.FindAllStringSubmatchIndex(text, -1) {
		name := text[m[4]:m[5]]
		id, err := strconv.ParseUint(text[m[6]:m[7]], 10, 64)
		if err != nil {
			continue
		}
		form := FormCustom
		if m[3] > m[2] {
			form = FormAnimated
		}
		tokens = append(tokens, Token{
			Raw:  text[m[0]:m[1]],
			Form: form,
			Name: name,
			ID:   id,
			Key:  nameKey(name),
			Pos:  m[0],
		})
		blank(masked, m[0], m[1])
	}

	rest := string(masked)
	for _, m := range shortcodeMatches(rest) {
		name := rest[m[2]:m[3]]
		tokens = append(tokens, Token{
			Raw:  rest[m[0]:m[1]],
			Form: FormShortcode,
			Name: name,
			Key:  nameKey(name),
			Pos:  m[0],
		})
		blank(masked, m[0], m[1])
	}

	rest = string(masked)
	g := uniseg.NewGraphemes(rest)
	for g.Next() {
		runes := g.Runes()
		if !isEmojiCluster(runes) {
			continue
		}
		from, _ := g.Positions()
		raw := g.Str()
		tokens = append(tokens, Token{
			Raw:  raw,
			Form: FormNative,
			Key:  glyphKey(raw),
			Pos:  from,
		})
	}

	sort.SliceStable(tokens, func(i, j int) bool {
		return tokens[i].Pos < tokens[j].Pos
	})

	return Detection{Tokens: tokens}
}

// shortcodeMatches finds ":name:" spans. Colons from ordinary text ("10:00")
// can pair with the opening colon of a real shortcode, so a span whose name
// is not a known shortcode gives way to a known one starting at its closing
// colon.
func shortcodeMatches(text string) [][]int {
	var out [][]int
	pos := 0
	for pos < len(text) {
		m := shortcodePattern.FindStringSubmatchIndex(text[pos:])
		if m == nil {
			break
		}
		for i := range m {
			m[i] += pos
		}

		if !knownShortcode(text[m[2]:m[3]]) {
			next := shortcodePattern.FindStringSubmatchIndex(text[m[1]-1:])
			if next != nil && next[0] == 0 && knownShortcode(text[m[1]-1+next[2]:m[1]-1+next[3]]) {
				pos = m[1] - 1
				continue
			}
		}

		out = append(out, m)
		pos = m[1]
	}
	return out
}

func knownShortcode(name string) bool {
	_, ok := aliasToName[strings.ToLower(name)]
	return ok
}

// blank overwrites b[from:to] with spaces so later passes skip consumed text
// while byte offsets stay valid.
func blank(b []byte, from, to int) {
	for i := from; i < to; i++ {
		b[i] = ' '
	}
}

func isEmojiCluster(runes []rune) bool {
	if len(runes) == 0 {
		return false
	}
	for _, r := range runes {
		if r == 0x20E3 || r == 0xFE0F {
			return true
		}
	}
	first := runes[0]
	switch {
	case first >= 0x1F000 && first <= 0x1FAFF:
		return true
	case first >= 0x2300 && first <= 0x23FF,
		first >= 0x2600 && first <= 0x27BF,
		first >= 0x2B00 && first <= 0x2BFF:
		return unicode.Is(unicode.So, first)
	}
	return false
}

// Keys returns the canonical key of every token, in order.
func (d Detection) Keys() []string {
	keys := make([]string, len(d.Tokens))
	for i, t := range d.Tokens {
		keys[i] = t.Key
	}
	return keys
}

// String renders the detection compactly for debug logs.
func (d Detection) String() string {
	return strings.Join(d.Keys(), " ")
}
