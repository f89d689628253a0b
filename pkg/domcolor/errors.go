package domcolor

import (
	"errors"

	"domcolor/pkg/expr"
	"domcolor/pkg/render"
)

// Failure kinds, comparable with errors.Is against any error returned by
// this package.
var (
	ErrInvalidCharacter  error = expr.ErrInvalidCharacter
	ErrDoubleDecimal     error = expr.ErrDoubleDecimal
	ErrMalformedNumber   error = expr.ErrMalformedNumber
	ErrUnknownIdentifier error = expr.ErrUnknownIdentifier

	ErrMissingToken    error = expr.ErrMissingToken
	ErrUnexpectedEOF   error = expr.ErrUnexpectedEOF
	ErrUnexpectedToken error = expr.ErrUnexpectedToken
	ErrTrailingInput   error = expr.ErrTrailingInput

	ErrInvalidViewport   = render.ErrInvalidViewport
	ErrInvalidDimensions = render.ErrInvalidDimensions

	ErrUnknownFormat = errors.New("unknown image format")
)

// IsInputError reports whether err was caused by the caller's formula,
// viewport, size or format rather than by the environment.
func IsInputError(err error) bool {
	var perr *expr.Error
	return errors.As(err, &perr) ||
		errors.Is(err, ErrInvalidViewport) ||
		errors.Is(err, ErrInvalidDimensions) ||
		errors.Is(err, ErrUnknownFormat)
}
