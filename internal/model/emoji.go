package model

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// Category is the scoring bucket an emoji feeds.
type Category int

const (
	CategoryPomodoro Category = iota + 1
	CategoryBonus
	CategoryGoal
	CategoryReward
)

const (
	MinEmojiPoints = 1
	MaxEmojiPoints = 999
)

var categoryNames = map[Category]string{
	CategoryPomodoro: "pomodoro",
	CategoryBonus:    "bonus",
	CategoryGoal:     "goal",
	CategoryReward:   "reward",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return fmt.Sprintf("category(%d)", int(c))
}

func (c Category) Valid() bool {
	_, ok := categoryNames[c]
	return ok
}

// ParseCategory maps the stored text form back to a Category.
func ParseCategory(s string) (Category, error) {
	for c, name := range categoryNames {
		if name == s {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown emoji category %q", s)
}

func (c Category) Value() (driver.Value, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid emoji category %d", int(c))
	}
	return c.String(), nil
}

func (c *Category) Scan(src any) error {
	var s string
	switch v := src.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("cannot scan %T into Category", src)
	}
	parsed, err := ParseCategory(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid emoji category %d", int(c))
	}
	return []byte(c.String()), nil
}

func (c *Category) UnmarshalText(b []byte) error {
	parsed, err := ParseCategory(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Emoji is one catalog row. A nil ChallengeID marks a server-wide default.
type Emoji struct {
	ID          string    `db:"id" json:"id"`
	ServerID    uint64    `db:"server_id" json:"server_id,string"`
	ChallengeID *string   `db:"challenge_id" json:"challenge_id,omitempty"`
	Code        string    `db:"code" json:"code"`
	Category    Category  `db:"category" json:"category"`
	Points      int       `db:"points" json:"points"`
	Active      bool      `db:"active" json:"active"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
