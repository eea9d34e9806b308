package opengl

import (
	"github.com/go-gl/gl/v3.2-core/gl"
	"github.com/spaghettifunk/shady/engine/renderer/metadata"
)

type glTexture struct {
	texture *metadata.Texture
	unit    uint32
	repeat  metadata.TextureRepeat
}

func uploadTexture(texture *metadata.Texture, repeat metadata.TextureRepeat) {
	if texture.InternalID == 0 {
		gl.GenTextures(1, &texture.InternalID)
	}
	gl.BindTexture(gl.TEXTURE_2D, texture.InternalID)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, glRepeat(repeat))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, glRepeat(repeat))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(texture.Width), int32(texture.Height), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(texture.Pixels))
	if repeat == metadata.TEXTURE_REPEAT_REPEAT {
		// the filtering demonstration switches to mipmapped minification
		gl.GenerateMipmap(gl.TEXTURE_2D)
	}
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// bind attaches the texture to its unit; the repeating texture also
// takes the frame's filters.
func (t *glTexture) bind(minFilter, magFilter metadata.TextureFilter) {
	gl.ActiveTexture(gl.TEXTURE0 + t.unit)
	gl.BindTexture(gl.TEXTURE_2D, t.texture.InternalID)
	if t.repeat == metadata.TEXTURE_REPEAT_REPEAT {
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, glFilter(minFilter))
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, glFilter(magFilter))
	}
}

func (t *glTexture) destroy() {
	gl.DeleteTextures(1, &t.texture.InternalID)
	t.texture.InternalID = 0
}
