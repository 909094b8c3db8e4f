package network

import (
	"errors"
	"fmt"
)

// ErrInvalidNetwork is returned when construction fails an integrity
// check. Construction is all-or-nothing: no partially built Network is
// ever returned alongside this error.
var ErrInvalidNetwork = errors.New("invalid network")

// invalidf wraps ErrInvalidNetwork with the violated invariant.
func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidNetwork, fmt.Sprintf(format, args...))
}
