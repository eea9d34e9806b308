package opengl

import (
	"fmt"

	"github.com/go-gl/gl/v3.2-core/gl"
	"github.com/spaghettifunk/shady/engine/core"
	"github.com/spaghettifunk/shady/engine/renderer/metadata"
)

func GLErrorString(code uint32, getExtended bool) string {
	switch code {
	case gl.NO_ERROR:
		return ConditionalOperator(!getExtended, "GL_NO_ERROR", "GL_NO_ERROR No error has been recorded")
	case gl.INVALID_ENUM:
		return ConditionalOperator(!getExtended, "GL_INVALID_ENUM", "GL_INVALID_ENUM An unacceptable value is specified for an enumerated argument")
	case gl.INVALID_VALUE:
		return ConditionalOperator(!getExtended, "GL_INVALID_VALUE", "GL_INVALID_VALUE A numeric argument is out of range")
	case gl.INVALID_OPERATION:
		return ConditionalOperator(!getExtended, "GL_INVALID_OPERATION", "GL_INVALID_OPERATION The specified operation is not allowed in the current state")
	case gl.INVALID_FRAMEBUFFER_OPERATION:
		return ConditionalOperator(!getExtended, "GL_INVALID_FRAMEBUFFER_OPERATION", "GL_INVALID_FRAMEBUFFER_OPERATION The framebuffer object is not complete")
	case gl.OUT_OF_MEMORY:
		return ConditionalOperator(!getExtended, "GL_OUT_OF_MEMORY", "GL_OUT_OF_MEMORY There is not enough memory left to execute the command")
	}
	return fmt.Sprintf("GL_ERROR 0x%x", code)
}

func ConditionalOperator[T any](cond bool, a, b T) T {
	if cond {
		return a
	}
	return b
}

// collectErrors drains the GL error flags.
func collectErrors(where string) []error {
	var errs []error
	for {
		code := gl.GetError()
		if code == gl.NO_ERROR {
			return errs
		}
		errs = append(errs, fmt.Errorf("%s: %s: %w", where, GLErrorString(code, true), core.ErrGL))
	}
}

func glFilter(f metadata.TextureFilter) int32 {
	switch f {
	case metadata.TEXTURE_FILTER_MODE_LINEAR:
		return gl.LINEAR
	case metadata.TEXTURE_FILTER_MODE_NEAREST_MIPMAP_NEAREST:
		return gl.NEAREST_MIPMAP_NEAREST
	case metadata.TEXTURE_FILTER_MODE_LINEAR_MIPMAP_LINEAR:
		return gl.LINEAR_MIPMAP_LINEAR
	default:
		return gl.NEAREST
	}
}

func glRepeat(r metadata.TextureRepeat) int32 {
	if r == metadata.TEXTURE_REPEAT_REPEAT {
		return gl.REPEAT
	}
	return gl.CLAMP_TO_EDGE
}

func boolToInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
