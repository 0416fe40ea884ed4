package predicate

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument a request breaks its input contract, like a non scalar JSON value
var ErrInvalidArgument = errors.New("invalid argument")

func invalidArgument(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}
