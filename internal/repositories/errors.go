package repositories

import "errors"

// ErrMismatchedSurname indicates a surname whose hangul and hanja rune
// counts disagree and cannot be decomposed into pairs.
var ErrMismatchedSurname = errors.New("repositories: surname hangul/hanja length mismatch")

// RepositoryError categorises low-level store failures for services.
type RepositoryError interface {
	error
	IsNotFound() bool
	IsUnavailable() bool
}

// IsNotFound reports whether err carries the not-found category.
func IsNotFound(err error) bool {
	var re RepositoryError
	return errors.As(err, &re) && re.IsNotFound()
}

// IsUnavailable reports whether err carries the unavailable category.
func IsUnavailable(err error) bool {
	var re RepositoryError
	return errors.As(err, &re) && re.IsUnavailable()
}
