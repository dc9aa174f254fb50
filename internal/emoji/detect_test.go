package emoji

import (
	"reflect"
	"testing"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		keys  []string
		forms []Form
	}{
		{
			name:  "single glyph",
			text:  "done \U0001F345",
			keys:  []string{"tomato"},
			forms: []Form{FormNative},
		},
		{
			name:  "mixed forms in text order",
			text:  ":fire: then <:tomato:123> and \U0001F3AF",
			keys:  []string{"fire", "tomato", "dart"},
			forms: []Form{FormShortcode, FormCustom, FormNative},
		},
		{
			name:  "animated custom",
			text:  "<a:party:999>",
			keys:  []string{"party"},
			forms: []Form{FormAnimated},
		},
		{
			name:  "repeats count per occurrence",
			text:  "\U0001F345\U0001F345 :tomato:",
			keys:  []string{"tomato", "tomato", "tomato"},
			forms: []Form{FormNative, FormNative, FormShortcode},
		},
		{
			name:  "adjacent shortcodes",
			text:  ":tomato::fire:",
			keys:  []string{"tomato", "fire"},
			forms: []Form{FormShortcode, FormShortcode},
		},
		{
			name:  "zwj sequence is one token",
			text:  "\U0001F469\u200D\U0001F4BB",
			keys:  []string{"\U0001F469\u200D\U0001F4BB"},
			forms: []Form{FormNative},
		},
		{
			name:  "keycap",
			text:  "goal 3\uFE0F\u20E3",
			keys:  []string{"three"},
			forms: []Form{FormNative},
		},
		{
			name:  "clock time before shortcode",
			text:  "started 10:00:tomato:",
			keys:  []string{"tomato"},
			forms: []Form{FormShortcode},
		},
		{
			name:  "stray colon pair before shortcode",
			text:  "a:b:tomato:",
			keys:  []string{"tomato"},
			forms: []Form{FormShortcode},
		},
		{
			name:  "ratio then shortcode",
			text:  "ratio 3:4 :tomato:",
			keys:  []string{"tomato"},
			forms: []Form{FormShortcode},
		},
		{
			name:  "unknown names stay custom shortcodes",
			text:  ":party:dance:",
			keys:  []string{"party"},
			forms: []Form{FormShortcode},
		},
		{
			name: "plain text",
			text: "no emoji here, 100% focus",
		},
		{
			name: "invalid utf8",
			text: "\xff\xfe \U0001F345",
		},
		{
			name: "empty",
			text: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Detect(tt.text)

			if len(tt.keys) == 0 {
				if !d.Empty() {
					t.Fatalf("expected no tokens, got %v", d.Keys())
				}
				return
			}

			if !reflect.DeepEqual(d.Keys(), tt.keys) {
				t.Fatalf("keys = %v, want %v", d.Keys(), tt.keys)
			}
			for i, tok := range d.Tokens {
				if tok.Form != tt.forms[i] {
					t.Errorf("token %d form = %s, want %s", i, tok.Form, tt.forms[i])
				}
			}
		})
	}
}

func TestDetectCustomTagFields(t *testing.T) {
	d := Detect("x <a:Pomo:812345678901234567> y")
	if d.Len() != 1 {
		t.Fatalf("got %d tokens", d.Len())
	}
	tok := d.Tokens[0]
	if tok.Name != "Pomo" || tok.ID != 812345678901234567 || tok.Key != "pomo" || tok.Pos != 2 {
		t.Fatalf("unexpected token %+v", tok)
	}
	if len(d.ByForm(FormAnimated)) != 1 || len(d.ByForm(FormCustom)) != 0 {
		t.Fatal("ByForm partition is wrong")
	}
}
