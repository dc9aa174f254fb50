package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/templui/pomodoro-challenge/internal/model"
	"github.com/templui/pomodoro-challenge/internal/points"
	"github.com/templui/pomodoro-challenge/internal/repository"
	"github.com/templui/pomodoro-challenge/internal/validation"
)

// CatalogService reads the emoji catalog for a challenge scope. Rows are
// owned by the server configuration; the ledger only reads them.
type CatalogService struct {
	challengeRepo repository.ChallengeRepository
	emojiRepo     repository.EmojiRepository
}

func NewCatalogService(challengeRepo repository.ChallengeRepository, emojiRepo repository.EmojiRepository) *CatalogService {
	return &CatalogService{
		challengeRepo: challengeRepo,
		emojiRepo:     emojiRepo,
	}
}

// ForChallenge returns server defaults merged with the challenge's own rows.
func (s *CatalogService) ForChallenge(ctx context.Context, challenge *model.Challenge) (*points.Catalog, error) {
	rows, err := s.emojiRepo.Catalog(ctx, challenge.ServerID, &challenge.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load emoji catalog: %w", err)
	}
	return points.NewCatalog(rows), nil
}

// ForWeek resolves the owning challenge of week and loads its catalog.
func (s *CatalogService) ForWeek(ctx context.Context, week *model.Week) (*points.Catalog, *model.Challenge, error) {
	challenge, err := s.challengeRepo.ByID(ctx, week.ChallengeID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load challenge %s: %w", week.ChallengeID, err)
	}

	catalog, err := s.ForChallenge(ctx, challenge)
	if err != nil {
		return nil, nil, err
	}

	return catalog, challenge, nil
}

// AddEmoji registers a catalog row. A nil challengeID makes it a server default.
func (s *CatalogService) AddEmoji(ctx context.Context, serverID uint64, challengeID *string, code string, category model.Category, pts int) (*model.Emoji, error) {
	code = strings.TrimSpace(code)
	err := validation.ValidateEmoji(code, category, pts)
	if err != nil {
		return nil, err
	}

	if challengeID != nil {
		_, err := s.challengeRepo.ByID(ctx, *challengeID)
		if err != nil {
			return nil, err
		}
	}

	e := &model.Emoji{
		ID:          uuid.New().String(),
		ServerID:    serverID,
		ChallengeID: challengeID,
		Code:        code,
		Category:    category,
		Points:      pts,
		Active:      true,
		CreatedAt:   time.Now().UTC(),
	}

	err = s.emojiRepo.Create(ctx, e)
	if err != nil {
		return nil, fmt.Errorf("failed to create emoji: %w", err)
	}

	return e, nil
}

// Retire soft-deletes a row so historical references stay valid.
func (s *CatalogService) Retire(ctx context.Context, emojiID string) error {
	e, err := s.emojiRepo.ByID(ctx, emojiID)
	if err != nil {
		return err
	}

	err = s.emojiRepo.SetActive(ctx, emojiID, false)
	if err != nil {
		return err
	}

	slog.Info("emoji retired", "emoji_id", emojiID, "code", e.Code, "category", e.Category)
	return nil
}

func (s *CatalogService) List(ctx context.Context, serverID uint64) ([]*model.Emoji, error) {
	return s.emojiRepo.List(ctx, serverID)
}
