package model

import (
	"fmt"
	"time"
)

// ReportKind tells the renderer which presentation to use.
type ReportKind int

const (
	ReportData ReportKind = iota + 1
	ReportNoData
	ReportError
)

func (k ReportKind) String() string {
	switch k {
	case ReportData:
		return "data"
	case ReportNoData:
		return "no_data"
	case ReportError:
		return "error"
	default:
		return "unknown"
	}
}

func (k ReportKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *ReportKind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "data":
		*k = ReportData
	case "no_data":
		*k = ReportNoData
	case "error":
		*k = ReportError
	default:
		return fmt.Errorf("unknown report kind %q", b)
	}
	return nil
}

// Message keys resolved by the localisation collaborator.
const (
	ReportErrorKey  = "leaderboard.error"
	ReportNoDataKey = "leaderboard.no_data"
)

type LeaderboardEntry struct {
	Rank                   int       `json:"rank"`
	UserID                 uint64    `json:"user_id,string"`
	Weekly                 Breakdown `json:"weekly"`
	Cumulative             Breakdown `json:"cumulative"`
	WeeklyMessages         int       `json:"weekly_messages"`
	CumulativeMessages     int       `json:"cumulative_messages"`
	GoalAchieved           bool      `json:"goal_achieved"`
	CumulativeGoalAchieved bool      `json:"cumulative_goal_achieved"`
	RewardEmoji            string    `json:"reward_emoji,omitempty"`
}

func (e LeaderboardEntry) WeeklyTotal() int {
	return e.Weekly.Total()
}

type LeaderboardStats struct {
	Participants  int `json:"participants"`
	TotalPoints   int `json:"total_points"`
	TotalMessages int `json:"total_messages"`
	GoalsAchieved int `json:"goals_achieved"`
}

type LeaderboardReport struct {
	Kind          ReportKind         `json:"kind"`
	Title         string             `json:"title"`
	ChallengeName string             `json:"challenge_name,omitempty"`
	WeekID        string             `json:"week_id"`
	WeekNumber    int                `json:"week_number"`
	Entries       []LeaderboardEntry `json:"entries,omitempty"`
	Stats         *LeaderboardStats  `json:"stats,omitempty"`
	Footer        string             `json:"footer,omitempty"`
	MessageKey    string             `json:"message_key,omitempty"`
	GeneratedAt   time.Time          `json:"generated_at"`
}
