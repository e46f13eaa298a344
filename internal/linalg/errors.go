package linalg

import "errors"

// ErrSingularMatrix is returned when a matrix has no inverse. The matrix
// returned alongside it is the zero matrix.
var ErrSingularMatrix = errors.New("linalg: singular matrix")
