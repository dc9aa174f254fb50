package emoji

// entry binds a shortcode name to its glyph. Glyphs are stored without
// variation selectors so lookups work on stripped input.
type entry struct {
	name    string
	glyph   string
	aliases []string
}

var table = []entry{
	// focus and time
	{name: "tomato", glyph: "\U0001F345", aliases: []string{"pomodoro"}},
	{name: "alarm_clock", glyph: "⏰"},
	{name: "stopwatch", glyph: "⏱"},
	{name: "timer_clock", glyph: "⏲", aliases: []string{"timer"}},
	{name: "hourglass", glyph: "⌛"},
	{name: "hourglass_flowing_sand", glyph: "⏳"},
	{name: "brain", glyph: "\U0001F9E0"},
	{name: "books", glyph: "\U0001F4DA"},
	{name: "book", glyph: "\U0001F4D6", aliases: []string{"open_book"}},
	{name: "memo", glyph: "\U0001F4DD", aliases: []string{"pencil"}},
	{name: "pencil2", glyph: "✏"},
	{name: "computer", glyph: "\U0001F4BB"},
	{name: "coffee", glyph: "☕", aliases: []string{"hot_beverage"}},
	{name: "tea", glyph: "\U0001F375"},
	{name: "bulb", glyph: "\U0001F4A1", aliases: []string{"light_bulb"}},

	// bonus and encouragement
	{name: "fire", glyph: "\U0001F525", aliases: []string{"flame"}},
	{name: "star", glyph: "⭐"},
	{name: "star2", glyph: "\U0001F31F", aliases: []string{"glowing_star"}},
	{name: "sparkles", glyph: "✨"},
	{name: "dizzy", glyph: "\U0001F4AB"},
	{name: "zap", glyph: "⚡", aliases: []string{"high_voltage"}},
	{name: "muscle", glyph: "\U0001F4AA", aliases: []string{"flexed_biceps"}},
	{name: "rocket", glyph: "\U0001F680"},
	{name: "100", glyph: "\U0001F4AF", aliases: []string{"hundred_points"}},
	{name: "white_check_mark", glyph: "✅", aliases: []string{"check_mark_button"}},
	{name: "heavy_check_mark", glyph: "✔", aliases: []string{"check_mark"}},
	{name: "ballot_box_with_check", glyph: "☑"},
	{name: "thumbsup", glyph: "\U0001F44D", aliases: []string{"+1", "thumbs_up"}},
	{name: "clap", glyph: "\U0001F44F", aliases: []string{"clapping_hands"}},
	{name: "heart", glyph: "❤", aliases: []string{"red_heart"}},
	{name: "seedling", glyph: "\U0001F331"},
	{name: "evergreen_tree", glyph: "\U0001F332"},
	{name: "mountain", glyph: "⛰"},
	{name: "checkered_flag", glyph: "\U0001F3C1"},

	// goals
	{name: "dart", glyph: "\U0001F3AF", aliases: []string{"direct_hit", "bullseye"}},
	{name: "one", glyph: "1\u20E3", aliases: []string{"keycap_1"}},
	{name: "two", glyph: "2\u20E3", aliases: []string{"keycap_2"}},
	{name: "three", glyph: "3\u20E3", aliases: []string{"keycap_3"}},
	{name: "four", glyph: "4\u20E3", aliases: []string{"keycap_4"}},
	{name: "five", glyph: "5\u20E3", aliases: []string{"keycap_5"}},
	{name: "six", glyph: "6\u20E3", aliases: []string{"keycap_6"}},
	{name: "seven", glyph: "7\u20E3", aliases: []string{"keycap_7"}},
	{name: "eight", glyph: "8\u20E3", aliases: []string{"keycap_8"}},
	{name: "nine", glyph: "9\u20E3", aliases: []string{"keycap_9"}},
	{name: "keycap_ten", glyph: "\U0001F51F"},

	// rewards
	{name: "trophy", glyph: "\U0001F3C6"},
	{name: "first_place_medal", glyph: "\U0001F947", aliases: []string{"first_place", "1st_place_medal"}},
	{name: "second_place_medal", glyph: "\U0001F948", aliases: []string{"second_place", "2nd_place_medal"}},
	{name: "third_place_medal", glyph: "\U0001F949", aliases: []string{"third_place", "3rd_place_medal"}},
	{name: "medal", glyph: "\U0001F3C5", aliases: []string{"sports_medal"}},
	{name: "military_medal", glyph: "\U0001F396"},
	{name: "crown", glyph: "\U0001F451"},
	{name: "gem", glyph: "\U0001F48E", aliases: []string{"gem_stone"}},
	{name: "gift", glyph: "\U0001F381", aliases: []string{"wrapped_gift"}},
	{name: "tada", glyph: "\U0001F389", aliases: []string{"party_popper"}},
	{name: "confetti_ball", glyph: "\U0001F38A"},
	{name: "rainbow", glyph: "\U0001F308"},
	{name: "sunflower", glyph: "\U0001F33B"},
	{name: "four_leaf_clover", glyph: "\U0001F340"},
	{name: "unicorn", glyph: "\U0001F984", aliases: []string{"unicorn_face"}},
	{name: "owl", glyph: "\U0001F989"},
	{name: "cat", glyph: "\U0001F431"},
	{name: "dog", glyph: "\U0001F436"},
	{name: "panda_face", glyph: "\U0001F43C", aliases: []string{"panda"}},
	{name: "cookie", glyph: "\U0001F36A"},
	{name: "cake", glyph: "\U0001F370", aliases: []string{"shortcake"}},
	{name: "doughnut", glyph: "\U0001F369", aliases: []string{"donut"}},
	{name: "ice_cream", glyph: "\U0001F368"},
	{name: "chocolate_bar", glyph: "\U0001F36B"},
	{name: "strawberry", glyph: "\U0001F353"},
	{name: "apple", glyph: "\U0001F34E", aliases: []string{"red_apple"}},
	{name: "star_struck", glyph: "\U0001F929"},
	{name: "sunglasses", glyph: "\U0001F60E"},
}

var (
	glyphToName = map[string]string{}
	nameToGlyph = map[string]string{}
	aliasToName = map[string]string{}
)

func init() {
	for _, e := range table {
		glyphToName[e.glyph] = e.name
		nameToGlyph[e.name] = e.glyph
		aliasToName[e.name] = e.name
		for _, a := range e.aliases {
			aliasToName[a] = e.name
		}
	}
}
