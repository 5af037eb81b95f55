package service

import "errors"

var (
	// ErrNotAdmin rejects a timer operation from anyone but the match admin.
	ErrNotAdmin = errors.New("only the match admin can control the timer")

	// ErrInactiveMatch rejects timer operations on a stopped match.
	ErrInactiveMatch = errors.New("cannot modify inactive match")

	// ErrUnknownOperation rejects operation names the state machine does not
	// recognize.
	ErrUnknownOperation = errors.New("unknown timer operation")
)
