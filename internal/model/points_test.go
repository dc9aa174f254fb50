package model

import "testing"

func TestBreakdownAchieved(t *testing.T) {
	tests := []struct {
		name string
		b    Breakdown
		want bool
	}{
		{"no goal declared", Breakdown{Pomodoro: 25}, false},
		{"no goal and no points", Breakdown{}, false},
		{"exactly at goal", Breakdown{Pomodoro: 25, Bonus: 5, Goal: 30}, true},
		{"bonus completes goal", Breakdown{Pomodoro: 20, Bonus: 10, Goal: 25}, true},
		{"one short", Breakdown{Pomodoro: 24, Goal: 25}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.b.Achieved(); got != tt.want {
				t.Errorf("Achieved() = %v, want %v", got, tt.want)
			}
		})
	}
}
