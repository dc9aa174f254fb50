package model

// Breakdown is a point total split by category.
type Breakdown struct {
	Pomodoro int `json:"pomodoro"`
	Bonus    int `json:"bonus"`
	Goal     int `json:"goal"`
}

// Total is the score used for ranking; goal points are a target, not a score.
func (b Breakdown) Total() int {
	return b.Pomodoro + b.Bonus
}

// Achieved reports whether pomodoro and bonus points together reach the goal.
// A user who declared no goal has nothing to achieve.
func (b Breakdown) Achieved() bool {
	return b.Goal > 0 && b.Pomodoro+b.Bonus >= b.Goal
}

func (b Breakdown) Add(o Breakdown) Breakdown {
	return Breakdown{
		Pomodoro: b.Pomodoro + o.Pomodoro,
		Bonus:    b.Bonus + o.Bonus,
		Goal:     b.Goal + o.Goal,
	}
}
