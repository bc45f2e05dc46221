package orientation

import (
	"github.com/pkg/errors"
)

var (
	// ErrConfiguration marks an inconsistent basis, topology, orientation
	// code or output pairing supplied by the caller.
	ErrConfiguration = errors.New("orientation: configuration error")
	// ErrSingular marks a collocation matrix the dense solver could not
	// factor, or whose reciprocal condition number is below utils.RCondTol.
	ErrSingular = errors.New("orientation: singular collocation matrix")
)

func configErrorf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrConfiguration, format, args...)
}

// kindError keeps cause in the chain while matching the sentinel kind.
type kindError struct {
	kind  error
	msg   string
	cause error
}

func (e *kindError) Error() string        { return e.msg + ": " + e.cause.Error() }
func (e *kindError) Unwrap() error        { return e.cause }
func (e *kindError) Is(target error) bool { return target == e.kind }

func wrapKindf(kind, cause error, format string, args ...interface{}) error {
	return errors.WithStack(&kindError{
		kind:  kind,
		msg:   errors.Errorf(format, args...).Error(),
		cause: cause,
	})
}

// configWrapf marks cause, typically from topology, lattice or basis, as a
// configuration error.
func configWrapf(cause error, format string, args ...interface{}) error {
	return wrapKindf(ErrConfiguration, cause, format, args...)
}

func singularErrorf(cause error, format string, args ...interface{}) error {
	return wrapKindf(ErrSingular, cause, format, args...)
}
