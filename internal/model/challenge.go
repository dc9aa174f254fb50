package model

import (
	"time"
)

// WeekLength is the span of one challenge week.
const WeekLength = 7 * 24 * time.Hour

type Challenge struct {
	ID        string    `db:"id" json:"id"`
	ServerID  uint64    `db:"server_id" json:"server_id,string"`
	Name      string    `db:"name" json:"name"`
	StartDate time.Time `db:"start_date" json:"start_date"`
	Active    bool      `db:"active" json:"active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// WeekStart returns the first day of week n. Week 1 begins on the start date;
// week 0 (goal collection) is the week before it.
func (c *Challenge) WeekStart(n int) time.Time {
	start := time.Date(c.StartDate.Year(), c.StartDate.Month(), c.StartDate.Day(), 0, 0, 0, 0, c.StartDate.Location())
	return start.AddDate(0, 0, 7*(n-1))
}

// WeekEnd returns the last instant of week n.
func (c *Challenge) WeekEnd(n int) time.Time {
	return c.WeekStart(n + 1).Add(-time.Nanosecond)
}
