package registry

import (
	"errors"
	"fmt"
)

// ErrPackageNotFound is matched by every *PackageNotFoundError.
var ErrPackageNotFound = errors.New("package not found")

// PackageNotFoundError reports a lookup of a name the store does not hold.
type PackageNotFoundError struct {
	Name string
}

func (e *PackageNotFoundError) Error() string {
	return fmt.Sprintf("package %q not found", e.Name)
}

// Is reports whether target is ErrPackageNotFound.
func (e *PackageNotFoundError) Is(target error) bool {
	return target == ErrPackageNotFound
}

// FatalError aborts a load. It is only returned when the packages directory
// itself cannot be used.
type FatalError struct {
	Dir string
	Err error
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("packages dir %s not usable: %v", e.Dir, e.Err)
}

func (e *FatalError) Unwrap() error { return e.Err }
