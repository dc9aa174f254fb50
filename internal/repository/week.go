package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/templui/pomodoro-challenge/internal/model"
)

var (
	ErrWeekNotFound = errors.New("week not found")
)

type WeekRepository interface {
	Create(ctx context.Context, week *model.Week) error
	ByID(ctx context.Context, id string) (*model.Week, error)
	// ByThread finds the week of an active challenge whose main or goal
	// thread is channelID.
	ByThread(ctx context.Context, channelID uint64) (*model.Week, error)
	Latest(ctx context.Context, challengeID string) (*model.Week, error)
	Weeks(ctx context.Context, challengeID string) ([]*model.Week, error)
	SetPosted(ctx context.Context, id string, posted bool) error
	SetThreads(ctx context.Context, id string, threadID uint64, goalThreadID *uint64) error
}

type weekRepository struct {
	db sqlx.ExtContext
}

func NewWeekRepository(db sqlx.ExtContext) WeekRepository {
	return &weekRepository{db: db}
}

func (r *weekRepository) Create(ctx context.Context, week *model.Week) error {
	query := `INSERT INTO weeks (id, challenge_id, number, thread_id, goal_thread_id, leaderboard_posted, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(ctx, query,
		week.ID,
		week.ChallengeID,
		week.Number,
		week.ThreadID,
		week.GoalThreadID,
		week.LeaderboardPosted,
		week.CreatedAt,
	)

	return err
}

func (r *weekRepository) ByID(ctx context.Context, id string) (*model.Week, error) {
	week := &model.Week{}
	query := `SELECT * FROM weeks WHERE id = $1`

	err := sqlx.GetContext(ctx, r.db, week, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrWeekNotFound
	}
	if err != nil {
		return nil, err
	}

	return week, nil
}

func (r *weekRepository) ByThread(ctx context.Context, channelID uint64) (*model.Week, error) {
	week := &model.Week{}
	query := `SELECT w.* FROM weeks w
	          JOIN challenges c ON c.id = w.challenge_id
	          WHERE c.active = $1 AND (w.thread_id = $2 OR w.goal_thread_id = $3)
	          ORDER BY w.number DESC
	          LIMIT 1`

	err := sqlx.GetContext(ctx, r.db, week, query, true, channelID, channelID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrWeekNotFound
	}
	if err != nil {
		return nil, err
	}

	return week, nil
}

func (r *weekRepository) Latest(ctx context.Context, challengeID string) (*model.Week, error) {
	week := &model.Week{}
	query := `SELECT * FROM weeks WHERE challenge_id = $1 ORDER BY number DESC LIMIT 1`

	err := sqlx.GetContext(ctx, r.db, week, query, challengeID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrWeekNotFound
	}
	if err != nil {
		return nil, err
	}

	return week, nil
}

func (r *weekRepository) Weeks(ctx context.Context, challengeID string) ([]*model.Week, error) {
	var weeks []*model.Week
	query := `SELECT * FROM weeks WHERE challenge_id = $1 ORDER BY number ASC`

	err := sqlx.SelectContext(ctx, r.db, &weeks, query, challengeID)
	if err != nil {
		return nil, err
	}

	return weeks, nil
}

func (r *weekRepository) SetPosted(ctx context.Context, id string, posted bool) error {
	query := `UPDATE weeks SET leaderboard_posted = $1 WHERE id = $2`
	return r.execOne(ctx, query, posted, id)
}

func (r *weekRepository) SetThreads(ctx context.Context, id string, threadID uint64, goalThreadID *uint64) error {
	query := `UPDATE weeks SET thread_id = $1, goal_thread_id = $2 WHERE id = $3`
	return r.execOne(ctx, query, threadID, goalThreadID, id)
}

func (r *weekRepository) execOne(ctx context.Context, query string, args ...any) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrWeekNotFound
	}

	return nil
}
