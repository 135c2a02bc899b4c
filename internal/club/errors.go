package club

import "errors"

var (
	ErrEmptyName        = errors.New("member name must not be empty")
	ErrInvalidGender    = errors.New("gender must be MALE or FEMALE")
	ErrNoWinners        = errors.New("at least one winner is required")
	ErrNoLosers         = errors.New("at least one loser is required")
	ErrTooManyPlayers   = errors.New("a side has at most two players")
	ErrSidesOverlap     = errors.New("a member cannot be on both sides")
	ErrEmptyScore       = errors.New("score must not be empty")
	ErrInvalidMatchType = errors.New("unknown match type")
	ErrInvalidCourtType = errors.New("unknown court type")
	ErrIneligible       = errors.New("member is not eligible for this match type")
	ErrInvalidDate      = errors.New("date must not be empty")
	ErrUnknownMember    = errors.New("unknown member")
	ErrDeclined         = errors.New("removal was not confirmed")
)

var validationErrors = []error{
	ErrEmptyName,
	ErrInvalidGender,
	ErrNoWinners,
	ErrNoLosers,
	ErrTooManyPlayers,
	ErrSidesOverlap,
	ErrEmptyScore,
	ErrInvalidMatchType,
	ErrInvalidCourtType,
	ErrIneligible,
	ErrInvalidDate,
}

// IsValidation reports whether err was caused by rejected input.
func IsValidation(err error) bool {
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
