package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/templui/pomodoro-challenge/internal/model"
)

var (
	ErrEmojiNotFound = errors.New("emoji not found")
)

type EmojiRepository interface {
	Create(ctx context.Context, e *model.Emoji) error
	ByID(ctx context.Context, id string) (*model.Emoji, error)
	// Catalog returns the active rows visible to a challenge: server-wide
	// defaults plus rows scoped to challengeID. A nil challengeID returns
	// only the defaults.
	Catalog(ctx context.Context, serverID uint64, challengeID *string) ([]*model.Emoji, error)
	List(ctx context.Context, serverID uint64) ([]*model.Emoji, error)
	SetActive(ctx context.Context, id string, active bool) error
}

type emojiRepository struct {
	db sqlx.ExtContext
}

func NewEmojiRepository(db sqlx.ExtContext) EmojiRepository {
	return &emojiRepository{db: db}
}

func (r *emojiRepository) Create(ctx context.Context, e *model.Emoji) error {
	query := `INSERT INTO emojis (id, server_id, challenge_id, code, category, points, active, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.ServerID,
		e.ChallengeID,
		e.Code,
		e.Category,
		e.Points,
		e.Active,
		e.CreatedAt,
	)

	return err
}

func (r *emojiRepository) ByID(ctx context.Context, id string) (*model.Emoji, error) {
	e := &model.Emoji{}
	query := `SELECT * FROM emojis WHERE id = $1`

	err := sqlx.GetContext(ctx, r.db, e, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEmojiNotFound
	}
	if err != nil {
		return nil, err
	}

	return e, nil
}

func (r *emojiRepository) Catalog(ctx context.Context, serverID uint64, challengeID *string) ([]*model.Emoji, error) {
	var rows []*model.Emoji
	query := `SELECT * FROM emojis
	          WHERE server_id = $1 AND active = $2 AND (challenge_id IS NULL OR challenge_id = $3)
	          ORDER BY created_at ASC`

	err := sqlx.SelectContext(ctx, r.db, &rows, query, serverID, true, challengeID)
	if err != nil {
		return nil, err
	}

	return rows, nil
}

func (r *emojiRepository) List(ctx context.Context, serverID uint64) ([]*model.Emoji, error) {
	var rows []*model.Emoji
	query := `SELECT * FROM emojis WHERE server_id = $1 ORDER BY category ASC, code ASC`

	err := sqlx.SelectContext(ctx, r.db, &rows, query, serverID)
	if err != nil {
		return nil, err
	}

	return rows, nil
}

// SetActive soft-deletes (or restores) a catalog row.
func (r *emojiRepository) SetActive(ctx context.Context, id string, active bool) error {
	query := `UPDATE emojis SET active = $1 WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, active, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrEmojiNotFound
	}

	return nil
}
