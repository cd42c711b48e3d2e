package gedcom

import "errors"

// ErrTooManyRecords is returned when the input declares more INDI and FAM
// records than the parser's configured ceiling.
var ErrTooManyRecords = errors.New("record limit exceeded")
