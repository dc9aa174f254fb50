package points

import (
	"sort"
	"testing"

	"github.com/templui/pomodoro-challenge/internal/model"
)

func row(code string, cat model.Category, pts int) *model.Emoji {
	return &model.Emoji{Code: code, Category: cat, Points: pts, Active: true}
}

func TestCalculate(t *testing.T) {
	catalog := NewCatalog([]*model.Emoji{
		row(":tomato:", model.CategoryPomodoro, 25),
		row("\U0001F525", model.CategoryBonus, 5),
		row(":dart:", model.CategoryGoal, 10),
		row(":trophy:", model.CategoryReward, 50),
		{Code: ":zap:", Category: model.CategoryBonus, Points: 3, Active: false},
	})

	tests := []struct {
		name     string
		text     string
		want     model.Breakdown
		resolved int
	}{
		{
			name:     "one of each category",
			text:     "\U0001F345 :fire: \U0001F3AF",
			want:     model.Breakdown{Pomodoro: 25, Bonus: 5, Goal: 10},
			resolved: 3,
		},
		{
			name:     "glyph matches shortcode row",
			text:     "\U0001F345",
			want:     model.Breakdown{Pomodoro: 25},
			resolved: 1,
		},
		{
			name:     "reward scores nothing",
			text:     "\U0001F3C6",
			want:     model.Breakdown{},
			resolved: 1,
		},
		{
			name:     "inactive row ignored",
			text:     ":zap:",
			want:     model.Breakdown{},
			resolved: 0,
		},
		{
			name:     "unknown emoji ignored",
			text:     "\U0001F984 :nope:",
			want:     model.Breakdown{},
			resolved: 0,
		},
		{
			name:     "repeats count per occurrence",
			text:     "\U0001F345\U0001F345<:tomato:77>",
			want:     model.Breakdown{Pomodoro: 75},
			resolved: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateText(tt.text, catalog)
			if got.Points != tt.want {
				t.Errorf("points = %+v, want %+v", got.Points, tt.want)
			}
			if got.ResolvedTokens != tt.resolved {
				t.Errorf("resolved = %d, want %d", got.ResolvedTokens, tt.resolved)
			}
		})
	}
}

func TestCatalogChallengeRowWins(t *testing.T) {
	challengeID := "c1"
	scoped := row("\U0001F345", model.CategoryPomodoro, 30)
	scoped.ChallengeID = &challengeID

	for _, order := range [][]*model.Emoji{
		{row(":tomato:", model.CategoryPomodoro, 25), scoped},
		{scoped, row(":tomato:", model.CategoryPomodoro, 25)},
	} {
		c := NewCatalog(order)
		got, ok := c.Match(":tomato:")
		if !ok || got.Points != 30 {
			t.Fatalf("expected challenge row with 30 points, got %+v", got)
		}
	}
}

func TestCatalogRewards(t *testing.T) {
	c := NewCatalog([]*model.Emoji{
		row(":trophy:", model.CategoryReward, 1),
		row(":crown:", model.CategoryReward, 1),
		row(":tomato:", model.CategoryPomodoro, 25),
	})
	got := c.Rewards()
	sort.Strings(got)
	if len(got) != 2 || got[0] != ":crown:" || got[1] != ":trophy:" {
		t.Fatalf("rewards = %v", got)
	}

	var empty *Catalog
	if len(empty.Rewards()) != 0 || empty.Len() != 0 {
		t.Fatal("nil catalog should be empty")
	}
}
