package core

import (
	"errors"
)

var (
	ErrDegenerateVector = errors.New("vector has no usable length")
	ErrSingularMatrix   = errors.New("matrix is singular")
	ErrUnknownScene     = errors.New("unknown scene")
	ErrInvalidConfig    = errors.New("invalid configuration")
	ErrNoFreeFilename   = errors.New("no free screenshot filename")
	ErrShaderCompile    = errors.New("shader compilation failed")
	ErrShaderLink       = errors.New("shader program link failed")
	ErrImageDecode      = errors.New("image decode failed")
	ErrGL               = errors.New("opengl error")
	ErrUnknown          = errors.New("unknown")
)
