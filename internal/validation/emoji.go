package validation

import (
	"errors"
	"fmt"

	"github.com/templui/pomodoro-challenge/internal/emoji"
	"github.com/templui/pomodoro-challenge/internal/model"
)

var (
	ErrEmojiCodeRequired = errors.New("emoji code is required")
	ErrEmojiCodeInvalid  = errors.New("emoji code must be a single emoji, :shortcode: or custom emoji tag")
	ErrEmojiCategory     = errors.New("emoji category must be pomodoro, bonus, goal or reward")
	ErrEmojiPoints       = errors.New("emoji points out of range")
)

// ValidateEmoji checks a catalog row before it is stored
func ValidateEmoji(code string, category model.Category, points int) error {
	if code == "" {
		return ErrEmojiCodeRequired
	}

	// The code has to read back as exactly one token, otherwise it could
	// never match anything in a message.
	if emoji.Detect(code).Len() != 1 {
		return ErrEmojiCodeInvalid
	}

	if !category.Valid() {
		return ErrEmojiCategory
	}

	if points < model.MinEmojiPoints || points > model.MaxEmojiPoints {
		return fmt.Errorf("%w: must be between %d and %d", ErrEmojiPoints, model.MinEmojiPoints, model.MaxEmojiPoints)
	}

	return nil
}
