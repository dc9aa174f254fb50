package service

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"testing"

	"github.com/templui/pomodoro-challenge/internal/model"
)

func entryFor(t *testing.T, report model.LeaderboardReport, userID uint64) model.LeaderboardEntry {
	t.Helper()
	for _, e := range report.Entries {
		if e.UserID == userID {
			return e
		}
	}
	t.Fatalf("no entry for user %d", userID)
	return model.LeaderboardEntry{}
}

func TestLeaderboardUnknownWeek(t *testing.T) {
	f := newFixture(t)

	report := f.leaderboard.Generate(context.Background(), "missing")
	if report.Kind != model.ReportError {
		t.Fatalf("kind = %v, want error", report.Kind)
	}
	if report.MessageKey != model.ReportErrorKey {
		t.Errorf("message key = %q", report.MessageKey)
	}
	if len(report.Entries) != 0 || report.Stats != nil {
		t.Errorf("error report carries data: %+v", report)
	}
}

func TestLeaderboardNoData(t *testing.T) {
	f := newFixture(t)

	report := f.leaderboard.Generate(context.Background(), f.week1.ID)
	if report.Kind != model.ReportNoData {
		t.Fatalf("kind = %v, want no data", report.Kind)
	}
	if report.MessageKey != model.ReportNoDataKey {
		t.Errorf("message key = %q", report.MessageKey)
	}
	if report.WeekNumber != 1 || report.ChallengeName != "Autumn focus" {
		t.Errorf("report header = %+v", report)
	}
}

func TestLeaderboardGoalBoundary(t *testing.T) {
	f := newFixture(t, withRewards(":trophy:"))
	ctx := context.Background()

	// user 10: goal 30, reaches exactly 30 with pomodoro + bonus
	f.post(t, 1, 10, dart+dart+dart, weekOneThread)
	f.post(t, 2, 10, tomato+fire, weekOneThread)
	// user 11: goal 30, stops at 25
	f.post(t, 3, 11, dart+dart+dart, weekOneThread)
	f.post(t, 4, 11, tomato, weekOneThread)

	report := f.leaderboard.Generate(ctx, f.week1.ID)
	if report.Kind != model.ReportData {
		t.Fatalf("kind = %v, want data", report.Kind)
	}

	exact := entryFor(t, report, 10)
	if !exact.GoalAchieved {
		t.Error("user 10 with total equal to goal not achieved")
	}
	if exact.RewardEmoji != ":trophy:" {
		t.Errorf("user 10 reward = %q, want :trophy:", exact.RewardEmoji)
	}

	short := entryFor(t, report, 11)
	if short.GoalAchieved || short.RewardEmoji != "" {
		t.Errorf("user 11 = %+v, want not achieved and no reward", short)
	}

	goal, err := f.goalRepo.ByUserWeek(ctx, 10, f.week1.ID)
	if err != nil {
		t.Fatalf("stored goal: %v", err)
	}
	if !goal.Achieved || goal.GoalPoints != 30 || goal.PomodoroActual != 25 || goal.BonusActual != 5 {
		t.Errorf("stored goal = %+v", goal)
	}
	if !goal.HasReward() || *goal.RewardEmoji != ":trophy:" {
		t.Errorf("stored reward = %v", goal.RewardEmoji)
	}
}

func TestLeaderboardEmptyRewardPool(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.post(t, 1, 10, dart+" "+tomato, weekOneThread)

	report := f.leaderboard.Generate(ctx, f.week1.ID)
	entry := entryFor(t, report, 10)
	if !entry.GoalAchieved {
		t.Fatal("goal not achieved")
	}
	if entry.RewardEmoji != "" {
		t.Errorf("reward = %q, want empty", entry.RewardEmoji)
	}

	goal, err := f.goalRepo.ByUserWeek(ctx, 10, f.week1.ID)
	if err != nil {
		t.Fatalf("stored goal: %v", err)
	}
	if !goal.Achieved || goal.HasReward() {
		t.Errorf("stored goal = %+v", goal)
	}
}

func TestLeaderboardKeepsAssignedReward(t *testing.T) {
	f := newFixture(t, withRewards(":trophy:", ":medal:"))
	ctx := context.Background()

	f.post(t, 1, 10, dart+" "+tomato, weekOneThread)

	first := f.leaderboard.Generate(ctx, f.week1.ID)
	got := entryFor(t, first, 10).RewardEmoji
	if got != ":medal:" {
		t.Fatalf("first reward = %q, want :medal:", got)
	}

	f.leaderboard.pick = func(n int) int { return n - 1 }
	second := f.leaderboard.Generate(ctx, f.week1.ID)
	if again := entryFor(t, second, 10).RewardEmoji; again != got {
		t.Errorf("reward changed from %q to %q", got, again)
	}
}

func TestLeaderboardDropsRewardWhenGoalMissed(t *testing.T) {
	f := newFixture(t, withRewards(":trophy:"))
	ctx := context.Background()

	f.post(t, 1, 10, dart, weekOneThread)
	f.post(t, 2, 10, tomato, weekOneThread)

	first := entryFor(t, f.leaderboard.Generate(ctx, f.week1.ID), 10)
	if !first.GoalAchieved || first.RewardEmoji != ":trophy:" {
		t.Fatalf("first = %+v, want achieved with :trophy:", first)
	}

	if _, err := f.ledger.Delete(ctx, 2); err != nil {
		t.Fatalf("delete: %v", err)
	}

	second := entryFor(t, f.leaderboard.Generate(ctx, f.week1.ID), 10)
	if second.GoalAchieved || second.RewardEmoji != "" {
		t.Errorf("second = %+v, want missed without reward", second)
	}
	goal, err := f.goalRepo.ByUserWeek(ctx, 10, f.week1.ID)
	if err != nil {
		t.Fatalf("stored goal: %v", err)
	}
	if goal.Achieved || goal.HasReward() {
		t.Errorf("stored goal = %+v, want reward cleared", goal)
	}

	// reaching the goal again draws a fresh reward
	f.post(t, 3, 10, tomato, weekOneThread)
	third := entryFor(t, f.leaderboard.Generate(ctx, f.week1.ID), 10)
	if !third.GoalAchieved || third.RewardEmoji != ":trophy:" {
		t.Errorf("third = %+v, want achieved with :trophy:", third)
	}
}

func TestLeaderboardGoalFromCollectionWeek(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// user 10 sets 10 goal points during goal collection, user 11 sets 40
	f.post(t, 1, 10, dart, goalThread)
	f.post(t, 2, 11, dart+dart+dart+dart, goalThread)
	f.post(t, 3, 10, tomato, weekOneThread)
	f.post(t, 4, 11, tomato, weekOneThread)

	report := f.leaderboard.Generate(ctx, f.week1.ID)

	met := entryFor(t, report, 10)
	if met.Weekly.Goal != 10 || !met.GoalAchieved {
		t.Errorf("user 10 = %+v, want goal 10 achieved", met)
	}
	short := entryFor(t, report, 11)
	if short.Weekly.Goal != 40 || short.GoalAchieved {
		t.Errorf("user 11 = %+v, want goal 40 missed", short)
	}

	goal, err := f.goalRepo.ByUserWeek(ctx, 10, f.week1.ID)
	if err != nil {
		t.Fatalf("stored goal: %v", err)
	}
	if goal.GoalPoints != 10 || !goal.Achieved {
		t.Errorf("stored goal = %+v", goal)
	}
}

func TestLeaderboardWeekGoalOverridesCollection(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.post(t, 1, 10, dart, goalThread)
	f.post(t, 2, 10, dart+dart+dart, weekOneThread)
	f.post(t, 3, 10, tomato, weekOneThread)

	entry := entryFor(t, f.leaderboard.Generate(ctx, f.week1.ID), 10)
	if entry.Weekly.Goal != 30 || entry.GoalAchieved {
		t.Errorf("entry = %+v, want week goal 30 missed", entry)
	}
}

func TestLeaderboardDeclaredGoal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.goals.Declare(ctx, 10, f.week1.ID, 25)
	if err != nil {
		t.Fatalf("declare: %v", err)
	}
	f.post(t, 1, 10, tomato, weekOneThread)

	entry := entryFor(t, f.leaderboard.Generate(ctx, f.week1.ID), 10)
	if entry.Weekly.Goal != 25 || !entry.GoalAchieved {
		t.Errorf("entry = %+v, want declared goal 25 achieved", entry)
	}
}

func TestLeaderboardRankingAndStats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.post(t, 1, 20, tomato, weekOneThread)
	f.post(t, 2, 10, tomato, weekOneThread)
	f.post(t, 3, 5, tomato+tomato, weekOneThread)
	f.post(t, 4, 5, fire, weekOneThread)
	// week 0 activity only shows up in cumulative totals
	f.post(t, 5, 10, tomato, signupThread)

	report := f.leaderboard.Generate(ctx, f.week1.ID)
	if report.Kind != model.ReportData {
		t.Fatalf("kind = %v, want data", report.Kind)
	}

	var order []uint64
	for i, e := range report.Entries {
		order = append(order, e.UserID)
		if e.Rank != i+1 {
			t.Errorf("entry %d rank = %d", i, e.Rank)
		}
	}
	want := []uint64{5, 10, 20}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}

	ten := entryFor(t, report, 10)
	if ten.Weekly.Pomodoro != 25 || ten.Cumulative.Pomodoro != 50 || ten.CumulativeMessages != 2 {
		t.Errorf("user 10 = %+v, want weekly 25 and cumulative 50 over 2 messages", ten)
	}

	stats := report.Stats
	if stats == nil {
		t.Fatal("no stats")
	}
	if stats.Participants != 3 || stats.TotalPoints != 105 || stats.TotalMessages != 4 || stats.GoalsAchieved != 0 {
		t.Errorf("stats = %+v", stats)
	}
	if report.Footer != Footer(3, 105, 0) {
		t.Errorf("footer = %q", report.Footer)
	}
	if report.Title != "Week 1 Leaderboard" {
		t.Errorf("title = %q", report.Title)
	}
}

type memArchive struct {
	objects map[string][]byte
}

func (a *memArchive) Save(_ context.Context, key string, body io.Reader, _ string) error {
	b, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	a.objects[key] = b
	return nil
}

func (a *memArchive) Delete(_ context.Context, key string) error {
	delete(a.objects, key)
	return nil
}

func (a *memArchive) URL(_ context.Context, key string) (string, error) {
	return "https://archive.example/" + key, nil
}

func TestLeaderboardMarkPosted(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	archive := &memArchive{objects: map[string][]byte{}}
	f.leaderboard.archive = archive

	f.post(t, 1, 10, tomato, weekOneThread)
	report := f.leaderboard.Generate(ctx, f.week1.ID)

	if err := f.leaderboard.MarkPosted(ctx, f.week1.ID, report); err != nil {
		t.Fatalf("mark posted: %v", err)
	}

	week, err := f.challenges.weekRepo.ByID(ctx, f.week1.ID)
	if err != nil {
		t.Fatalf("load week: %v", err)
	}
	if !week.LeaderboardPosted {
		t.Error("week not marked posted")
	}

	body, ok := archive.objects[ArchiveKey(week)]
	if !ok {
		t.Fatalf("nothing archived under %s", ArchiveKey(week))
	}
	var stored model.LeaderboardReport
	if err := json.NewDecoder(bytes.NewReader(body)).Decode(&stored); err != nil {
		t.Fatalf("decode archive: %v", err)
	}
	if stored.WeekID != f.week1.ID || len(stored.Entries) != 1 {
		t.Errorf("archived = %+v", stored)
	}

	url, err := f.leaderboard.ArchiveURL(ctx, f.week1.ID)
	if err != nil || url == "" {
		t.Errorf("archive url = %q, %v", url, err)
	}
}

func TestLeaderboardMarkPostedWithoutData(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	archive := &memArchive{objects: map[string][]byte{}}
	f.leaderboard.archive = archive

	f.post(t, 1, 10, tomato, weekOneThread)
	if err := f.leaderboard.MarkPosted(ctx, f.week1.ID, f.leaderboard.Generate(ctx, f.week1.ID)); err != nil {
		t.Fatalf("mark posted: %v", err)
	}
	if len(archive.objects) != 1 {
		t.Fatalf("archived objects = %d, want 1", len(archive.objects))
	}

	if _, err := f.ledger.Delete(ctx, 1); err != nil {
		t.Fatalf("delete: %v", err)
	}
	report := f.leaderboard.Generate(ctx, f.week1.ID)
	if report.Kind != model.ReportNoData {
		t.Fatalf("kind = %v, want no data", report.Kind)
	}
	if err := f.leaderboard.MarkPosted(ctx, f.week1.ID, report); err != nil {
		t.Fatalf("mark posted: %v", err)
	}
	if len(archive.objects) != 0 {
		t.Errorf("stale snapshot kept: %v", archive.objects)
	}
}
