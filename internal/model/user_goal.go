package model

import (
	"time"
)

type UserGoal struct {
	ID             string    `db:"id" json:"id"`
	UserID         uint64    `db:"user_id" json:"user_id,string"`
	WeekID         string    `db:"week_id" json:"week_id"`
	GoalPoints     int       `db:"goal_points" json:"goal_points"`
	PomodoroActual int       `db:"pomodoro_actual" json:"pomodoro_actual"`
	BonusActual    int       `db:"bonus_actual" json:"bonus_actual"`
	Achieved       bool      `db:"achieved" json:"achieved"`
	RewardEmoji    *string   `db:"reward_emoji" json:"reward_emoji,omitempty"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

func (g *UserGoal) HasReward() bool {
	return g.RewardEmoji != nil && *g.RewardEmoji != ""
}
