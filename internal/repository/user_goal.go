package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/templui/pomodoro-challenge/internal/model"
)

var (
	ErrUserGoalNotFound = errors.New("user goal not found")
)

type UserGoalRepository interface {
	ByUserWeek(ctx context.Context, userID uint64, weekID string) (*model.UserGoal, error)
	ByWeek(ctx context.Context, weekID string) ([]*model.UserGoal, error)
	// Upsert writes the goal row for (user, week). An achieved row keeps a
	// reward that is already stored; a row that is not achieved loses it.
	// goal is updated with the stored id and reward.
	Upsert(ctx context.Context, goal *model.UserGoal) error
	// SetGoalPoints declares or changes a target without touching actuals.
	SetGoalPoints(ctx context.Context, goal *model.UserGoal) error
}

type userGoalRepository struct {
	db sqlx.ExtContext
}

func NewUserGoalRepository(db sqlx.ExtContext) UserGoalRepository {
	return &userGoalRepository{db: db}
}

func (r *userGoalRepository) ByUserWeek(ctx context.Context, userID uint64, weekID string) (*model.UserGoal, error) {
	goal := &model.UserGoal{}
	query := `SELECT * FROM user_goals WHERE user_id = $1 AND week_id = $2`

	err := sqlx.GetContext(ctx, r.db, goal, query, userID, weekID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserGoalNotFound
	}
	if err != nil {
		return nil, err
	}

	return goal, nil
}

func (r *userGoalRepository) ByWeek(ctx context.Context, weekID string) ([]*model.UserGoal, error) {
	var goals []*model.UserGoal
	query := `SELECT * FROM user_goals WHERE week_id = $1 ORDER BY user_id ASC`

	err := sqlx.SelectContext(ctx, r.db, &goals, query, weekID)
	if err != nil {
		return nil, err
	}

	return goals, nil
}

func (r *userGoalRepository) Upsert(ctx context.Context, goal *model.UserGoal) error {
	query := `INSERT INTO user_goals (id, user_id, week_id, goal_points, pomodoro_actual, bonus_actual, achieved, reward_emoji, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	          ON CONFLICT (user_id, week_id) DO UPDATE SET
	              goal_points = excluded.goal_points,
	              pomodoro_actual = excluded.pomodoro_actual,
	              bonus_actual = excluded.bonus_actual,
	              achieved = excluded.achieved,
	              reward_emoji = CASE WHEN excluded.achieved
	                  THEN COALESCE(user_goals.reward_emoji, excluded.reward_emoji)
	                  ELSE NULL END,
	              updated_at = excluded.updated_at
	          RETURNING id, reward_emoji`

	row := r.db.QueryRowxContext(ctx, query,
		goal.ID,
		goal.UserID,
		goal.WeekID,
		goal.GoalPoints,
		goal.PomodoroActual,
		goal.BonusActual,
		goal.Achieved,
		goal.RewardEmoji,
		goal.UpdatedAt,
	)

	return row.Scan(&goal.ID, &goal.RewardEmoji)
}

func (r *userGoalRepository) SetGoalPoints(ctx context.Context, goal *model.UserGoal) error {
	query := `INSERT INTO user_goals (id, user_id, week_id, goal_points, updated_at)
	          VALUES ($1, $2, $3, $4, $5)
	          ON CONFLICT (user_id, week_id) DO UPDATE SET
	              goal_points = excluded.goal_points,
	              updated_at = excluded.updated_at
	          RETURNING id`

	row := r.db.QueryRowxContext(ctx, query,
		goal.ID,
		goal.UserID,
		goal.WeekID,
		goal.GoalPoints,
		goal.UpdatedAt,
	)

	return row.Scan(&goal.ID)
}
