package model

import (
	"time"
)

type MessageLog struct {
	MessageID      uint64    `db:"message_id" json:"message_id,string"`
	UserID         uint64    `db:"user_id" json:"user_id,string"`
	WeekID         string    `db:"week_id" json:"week_id"`
	PomodoroPoints int       `db:"pomodoro_points" json:"pomodoro_points"`
	BonusPoints    int       `db:"bonus_points" json:"bonus_points"`
	GoalPoints     int       `db:"goal_points" json:"goal_points"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

func (m *MessageLog) Breakdown() Breakdown {
	return Breakdown{
		Pomodoro: m.PomodoroPoints,
		Bonus:    m.BonusPoints,
		Goal:     m.GoalPoints,
	}
}

// SetBreakdown copies calculated points onto the row.
func (m *MessageLog) SetBreakdown(b Breakdown) {
	m.PomodoroPoints = b.Pomodoro
	m.BonusPoints = b.Bonus
	m.GoalPoints = b.Goal
}

// UserTotals is one user's summed ledger rows over some set of weeks.
type UserTotals struct {
	UserID   uint64 `db:"user_id"`
	Pomodoro int    `db:"pomodoro"`
	Bonus    int    `db:"bonus"`
	Goal     int    `db:"goal"`
	Messages int    `db:"messages"`
}

func (t UserTotals) Breakdown() Breakdown {
	return Breakdown{Pomodoro: t.Pomodoro, Bonus: t.Bonus, Goal: t.Goal}
}
