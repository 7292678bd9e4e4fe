package environment

import "errors"

// Error implements errors raised when constructing or using an
// environment. Op names the operation that failed.
type Error struct {
	Op  string
	Err error
}

// Error satisifes the error interface
func (e *Error) Error() string {
	return e.Op + ": " + e.Err.Error()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Err
}

// Precondition violations reported at construction time
var (
	ErrNoop      = errors.New("action 0 must be NOOP")
	ErrFire      = errors.New("action 1 must be FIRE with at least 3 actions")
	ErrFrameskip = errors.New("environment id must be a NoFrameskip variant")
	ErrSkip      = errors.New("frame skip must be positive")
	ErrNoopMax   = errors.New("maximum number of no-ops must be positive")
	ErrChannels  = errors.New("unsupported number of channels")
	ErrShape     = errors.New("unsupported observation shape")
	ErrStack     = errors.New("invalid frame stack")
)

// IsPrecondition returns whether or not an error reports that an
// environment did not meet the requirements of a wrapper
func IsPrecondition(err error) bool {
	for _, target := range []error{ErrNoop, ErrFire, ErrFrameskip, ErrSkip,
		ErrNoopMax, ErrChannels, ErrShape, ErrStack} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// NewError returns a new *Error for the given operation
func NewError(op string, err error) error {
	return &Error{Op: op, Err: err}
}
