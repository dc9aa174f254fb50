package service

// footerTier applies when a week reaches every minimum.
type footerTier struct {
	participants int
	points       int
	achieved     int
	line         string
}

// Ordered from most to least celebratory.
var footerTiers = []footerTier{
	{participants: 20, points: 5000, achieved: 10, line: "Legendary week! The whole crew smashed it. Take a bow, you earned it."},
	{participants: 10, points: 2000, achieved: 5, line: "What a week! The focus in here is contagious. Keep that momentum going."},
	{participants: 5, points: 500, achieved: 2, line: "Great teamwork this week. Goals are falling one tomato at a time."},
	{participants: 2, points: 100, achieved: 1, line: "Solid progress! Every pomodoro counts, see you next week."},
	{participants: 1, points: 1, achieved: 0, line: "A good start. Small steps add up, keep showing up."},
}

const footerFallback = "A fresh week is a fresh start. Let's get those pomodoros rolling!"

// Footer picks the closing line for a leaderboard from its participant
// count, weekly point total and number of goals achieved.
func Footer(participants, points, achieved int) string {
	for _, tier := range footerTiers {
		if participants >= tier.participants && points >= tier.points && achieved >= tier.achieved {
			return tier.line
		}
	}
	return footerFallback
}
