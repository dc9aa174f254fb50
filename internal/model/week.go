package model

import (
	"time"
)

// GoalCollectionWeek is the number of the week in which participants declare goals.
const GoalCollectionWeek = 0

type Week struct {
	ID                string    `db:"id" json:"id"`
	ChallengeID       string    `db:"challenge_id" json:"challenge_id"`
	Number            int       `db:"number" json:"number"`
	ThreadID          uint64    `db:"thread_id" json:"thread_id,string"`
	GoalThreadID      *uint64   `db:"goal_thread_id" json:"goal_thread_id,string,omitempty"`
	LeaderboardPosted bool      `db:"leaderboard_posted" json:"leaderboard_posted"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
}

// BoundTo reports whether a message posted in channelID belongs to this week.
func (w *Week) BoundTo(channelID uint64) bool {
	if w.ThreadID == channelID {
		return true
	}
	return w.GoalThreadID != nil && *w.GoalThreadID == channelID
}

func (w *Week) IsGoalCollection() bool {
	return w.Number == GoalCollectionWeek
}
