package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/templui/pomodoro-challenge/internal/model"
)

var (
	ErrMessageLogNotFound = errors.New("message log not found")
)

type MessageLogRepository interface {
	ByMessageID(ctx context.Context, messageID uint64) (*model.MessageLog, error)
	// Insert writes a new row and reports false when a row for the message
	// already exists; the existing row is left untouched.
	Insert(ctx context.Context, log *model.MessageLog) (bool, error)
	// Upsert inserts or overwrites the point fields of an existing row.
	// The stored user and week of an existing row never change; log is
	// updated with the stored week.
	Upsert(ctx context.Context, log *model.MessageLog) error
	UpdatePoints(ctx context.Context, messageID uint64, points model.Breakdown) error
	Delete(ctx context.Context, messageID uint64) error
	CountByWeek(ctx context.Context, weekID string) (int, error)
	// WeeklyTotals sums rows per user for one week, ordered by user id.
	WeeklyTotals(ctx context.Context, weekID string) ([]model.UserTotals, error)
	// CumulativeTotals sums rows per user over every week of a challenge
	// numbered up to and including upTo.
	CumulativeTotals(ctx context.Context, challengeID string, upTo int) ([]model.UserTotals, error)
}

type messageLogRepository struct {
	db sqlx.ExtContext
}

func NewMessageLogRepository(db sqlx.ExtContext) MessageLogRepository {
	return &messageLogRepository{db: db}
}

func (r *messageLogRepository) ByMessageID(ctx context.Context, messageID uint64) (*model.MessageLog, error) {
	log := &model.MessageLog{}
	query := `SELECT * FROM message_logs WHERE message_id = $1`

	err := sqlx.GetContext(ctx, r.db, log, query, messageID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMessageLogNotFound
	}
	if err != nil {
		return nil, err
	}

	return log, nil
}

func (r *messageLogRepository) Insert(ctx context.Context, log *model.MessageLog) (bool, error) {
	query := `INSERT INTO message_logs (message_id, user_id, week_id, pomodoro_points, bonus_points, goal_points, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          ON CONFLICT (message_id) DO NOTHING`

	result, err := r.db.ExecContext(ctx, query,
		log.MessageID,
		log.UserID,
		log.WeekID,
		log.PomodoroPoints,
		log.BonusPoints,
		log.GoalPoints,
		log.CreatedAt,
		log.UpdatedAt,
	)
	if err != nil {
		return false, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rows > 0, nil
}

func (r *messageLogRepository) Upsert(ctx context.Context, log *model.MessageLog) error {
	query := `INSERT INTO message_logs (message_id, user_id, week_id, pomodoro_points, bonus_points, goal_points, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          ON CONFLICT (message_id) DO UPDATE SET
	              pomodoro_points = excluded.pomodoro_points,
	              bonus_points = excluded.bonus_points,
	              goal_points = excluded.goal_points,
	              updated_at = excluded.updated_at
	          RETURNING user_id, week_id`

	row := r.db.QueryRowxContext(ctx, query,
		log.MessageID,
		log.UserID,
		log.WeekID,
		log.PomodoroPoints,
		log.BonusPoints,
		log.GoalPoints,
		log.CreatedAt,
		log.UpdatedAt,
	)

	return row.Scan(&log.UserID, &log.WeekID)
}

func (r *messageLogRepository) UpdatePoints(ctx context.Context, messageID uint64, points model.Breakdown) error {
	query := `UPDATE message_logs
	          SET pomodoro_points = $1, bonus_points = $2, goal_points = $3, updated_at = $4
	          WHERE message_id = $5`

	result, err := r.db.ExecContext(ctx, query,
		points.Pomodoro,
		points.Bonus,
		points.Goal,
		time.Now().UTC(),
		messageID,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrMessageLogNotFound
	}

	return nil
}

func (r *messageLogRepository) Delete(ctx context.Context, messageID uint64) error {
	query := `DELETE FROM message_logs WHERE message_id = $1`

	result, err := r.db.ExecContext(ctx, query, messageID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrMessageLogNotFound
	}

	return nil
}

func (r *messageLogRepository) CountByWeek(ctx context.Context, weekID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM message_logs WHERE week_id = $1`
	err := r.db.QueryRowxContext(ctx, query, weekID).Scan(&count)
	return count, err
}

func (r *messageLogRepository) WeeklyTotals(ctx context.Context, weekID string) ([]model.UserTotals, error) {
	var totals []model.UserTotals
	query := `SELECT user_id,
	                 SUM(pomodoro_points) AS pomodoro,
	                 SUM(bonus_points) AS bonus,
	                 SUM(goal_points) AS goal,
	                 COUNT(*) AS messages
	          FROM message_logs
	          WHERE week_id = $1
	          GROUP BY user_id
	          ORDER BY user_id ASC`

	err := sqlx.SelectContext(ctx, r.db, &totals, query, weekID)
	if err != nil {
		return nil, err
	}

	return totals, nil
}

func (r *messageLogRepository) CumulativeTotals(ctx context.Context, challengeID string, upTo int) ([]model.UserTotals, error) {
	var totals []model.UserTotals
	query := `SELECT m.user_id,
	                 SUM(m.pomodoro_points) AS pomodoro,
	                 SUM(m.bonus_points) AS bonus,
	                 SUM(m.goal_points) AS goal,
	                 COUNT(*) AS messages
	          FROM message_logs m
	          JOIN weeks w ON w.id = m.week_id
	          WHERE w.challenge_id = $1 AND w.number <= $2
	          GROUP BY m.user_id
	          ORDER BY m.user_id ASC`

	err := sqlx.SelectContext(ctx, r.db, &totals, query, challengeID, upTo)
	if err != nil {
		return nil, err
	}

	return totals, nil
}
