package punch

import "errors"

// Punch domain errors
var (
	ErrPunchNotFound    = errors.New("punch record not found")
	ErrUnknownPunchType = errors.New("punch type must be IN or OUT")
	ErrDuplicatePunch   = errors.New("an identical punch was already recorded")
)
