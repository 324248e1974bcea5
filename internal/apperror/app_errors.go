package apperror

import "errors"

var (
	ErrMatchNotFound  = errors.New("match not found")
	ErrInvalidColumn  = errors.New("column is required")
	ErrInvalidPalette = errors.New("palette needs two distinct colors")
)
