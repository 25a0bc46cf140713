package ledger

import "errors"

// The domain logic has no business-error taxonomy: every query over
// validated input produces a defined numeric result. Store implementations
// wrap their infrastructure failures in ErrAppendFailed so callers can
// classify them with errors.Is.
var ErrAppendFailed = errors.New("append failed")
