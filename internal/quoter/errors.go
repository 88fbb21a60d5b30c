package quoter

import "errors"

var (
	// ErrUnknownToken is returned for a token address no snapshot mentions.
	ErrUnknownToken = errors.New("unknown token")
	// ErrUnknownPool is returned when an explicit path crosses a pair not in the book.
	ErrUnknownPool = errors.New("unknown pool")
	// ErrInvalidRequest is returned for malformed request fields.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrTokenConflict is returned when snapshots disagree on a token's decimals.
	ErrTokenConflict = errors.New("conflicting token metadata")
)
