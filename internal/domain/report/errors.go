package report

import "errors"

// Report domain errors. Malformed individual punches never produce an
// error; they are skipped and counted. Only a structurally invalid window
// fails fast.
var (
	ErrInvalidWindow = errors.New("reporting window end precedes start")
)
