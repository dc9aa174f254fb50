package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/templui/pomodoro-challenge/internal/model"
)

var (
	ErrChallengeNotFound = errors.New("challenge not found")
)

type ChallengeRepository interface {
	Create(ctx context.Context, challenge *model.Challenge) error
	ByID(ctx context.Context, id string) (*model.Challenge, error)
	Active(ctx context.Context, serverID uint64) ([]*model.Challenge, error)
	SetActive(ctx context.Context, id string, active bool) error
}

type challengeRepository struct {
	db sqlx.ExtContext
}

// NewChallengeRepository accepts a *sqlx.DB or a *sqlx.Tx.
func NewChallengeRepository(db sqlx.ExtContext) ChallengeRepository {
	return &challengeRepository{db: db}
}

func (r *challengeRepository) Create(ctx context.Context, challenge *model.Challenge) error {
	query := `INSERT INTO challenges (id, server_id, name, start_date, active, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.ExecContext(ctx, query,
		challenge.ID,
		challenge.ServerID,
		challenge.Name,
		challenge.StartDate,
		challenge.Active,
		challenge.CreatedAt,
	)

	return err
}

func (r *challengeRepository) ByID(ctx context.Context, id string) (*model.Challenge, error) {
	challenge := &model.Challenge{}
	query := `SELECT * FROM challenges WHERE id = $1`

	err := sqlx.GetContext(ctx, r.db, challenge, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrChallengeNotFound
	}
	if err != nil {
		return nil, err
	}

	return challenge, nil
}

func (r *challengeRepository) Active(ctx context.Context, serverID uint64) ([]*model.Challenge, error) {
	var challenges []*model.Challenge
	query := `SELECT * FROM challenges WHERE server_id = $1 AND active = $2 ORDER BY created_at DESC`

	err := sqlx.SelectContext(ctx, r.db, &challenges, query, serverID, true)
	if err != nil {
		return nil, err
	}

	return challenges, nil
}

func (r *challengeRepository) SetActive(ctx context.Context, id string, active bool) error {
	query := `UPDATE challenges SET active = $1 WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, active, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrChallengeNotFound
	}

	return nil
}
