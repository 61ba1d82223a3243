package poker

import "errors"

// Sentinel errors for the card and range model. Callers match them with
// errors.Is after the usual wrapping.
var (
	// ErrInvalidNotation reports a malformed card or hand string.
	ErrInvalidNotation = errors.New("invalid notation")

	// ErrInvalidRangeToken reports a malformed range token such as "X+"
	// or a plus suffix on something that cannot take one.
	ErrInvalidRangeToken = errors.New("invalid range token")

	// ErrInsufficientCards reports an evaluator call with fewer than five
	// cards. This is a programming error, not a degraded result.
	ErrInsufficientCards = errors.New("insufficient cards")
)
