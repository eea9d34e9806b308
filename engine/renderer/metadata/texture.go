package metadata

/** @brief Represents supported texture filtering modes. */
type TextureFilter int

const (
	TEXTURE_FILTER_MODE_NEAREST TextureFilter = iota
	TEXTURE_FILTER_MODE_LINEAR
	TEXTURE_FILTER_MODE_NEAREST_MIPMAP_NEAREST
	TEXTURE_FILTER_MODE_LINEAR_MIPMAP_LINEAR
)

type TextureRepeat int

const (
	TEXTURE_REPEAT_CLAMP_TO_EDGE TextureRepeat = iota
	TEXTURE_REPEAT_REPEAT
)

/**
 * @brief CPU side image data in 8 bit RGBA, top row first.
 */
type Texture struct {
	Name   string
	Width  uint32
	Height uint32
	Pixels []uint8

	/** @brief Filled in by the backend once uploaded. */
	InternalID uint32
}
