// Package points turns detected emoji into per-category point totals using
// the emoji catalog visible to a challenge.
package points

import (
	"github.com/templui/pomodoro-challenge/internal/emoji"
	"github.com/templui/pomodoro-challenge/internal/model"
)

// Catalog indexes active emoji rows by canonical key.
type Catalog struct {
	rows map[string]*model.Emoji
}

// NewCatalog builds a lookup over rows. Inactive rows are ignored and a
// challenge-specific row shadows a server-wide row with the same key.
func NewCatalog(rows []*model.Emoji) *Catalog {
	c := &Catalog{rows: make(map[string]*model.Emoji, len(rows))}
	for _, row := range rows {
		if row == nil || !row.Active || !row.Category.Valid() {
			continue
		}
		key := emoji.Canonical(row.Code)
		if key == "" {
			continue
		}
		existing, ok := c.rows[key]
		if ok && existing.ChallengeID != nil && row.ChallengeID == nil {
			continue
		}
		c.rows[key] = row
	}
	return c
}

// Lookup resolves a canonical key to its catalog row.
func (c *Catalog) Lookup(key string) (*model.Emoji, bool) {
	if c == nil {
		return nil, false
	}
	row, ok := c.rows[key]
	return row, ok
}

// Match resolves a raw emoji in any surface form.
func (c *Catalog) Match(raw string) (*model.Emoji, bool) {
	return c.Lookup(emoji.Canonical(raw))
}

func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.rows)
}

// Rewards returns the codes of all reward-category rows.
func (c *Catalog) Rewards() []string {
	var codes []string
	if c == nil {
		return codes
	}
	for _, row := range c.rows {
		if row.Category == model.CategoryReward {
			codes = append(codes, row.Code)
		}
	}
	return codes
}

type Result struct {
	Points         model.Breakdown
	ResolvedTokens int
}

// Calculate adds the point value of every resolved token to its category.
// Reward emoji resolve but score nothing; unknown tokens are skipped.
func Calculate(d emoji.Detection, c *Catalog) Result {
	var res Result
	for _, tok := range d.Tokens {
		row, ok := c.Lookup(tok.Key)
		if !ok {
			continue
		}
		res.ResolvedTokens++

		switch row.Category {
		case model.CategoryPomodoro:
			res.Points.Pomodoro += row.Points
		case model.CategoryBonus:
			res.Points.Bonus += row.Points
		case model.CategoryGoal:
			res.Points.Goal += row.Points
		case model.CategoryReward:
		}
	}
	return res
}

// CalculateText is Detect followed by Calculate.
func CalculateText(text string, c *Catalog) Result {
	return Calculate(emoji.Detect(text), c)
}
