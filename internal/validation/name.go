package validation

import (
	"errors"
	"strings"
)

var (
	ErrChallengeNameRequired = errors.New("challenge name is required")
	ErrChallengeNameTooLong  = errors.New("challenge name is too long (max 100 characters)")
)

// ValidateChallengeName validates a challenge display name
func ValidateChallengeName(name string) error {
	trimmed := strings.TrimSpace(name)

	if trimmed == "" {
		return ErrChallengeNameRequired
	}

	if len(trimmed) > 100 {
		return ErrChallengeNameTooLong
	}

	return nil
}
