package metadata

/** @brief Pre-defined resource types. */
type ResourceType int

const (
	ResourceTypeNone ResourceType = iota
	ResourceTypeShader
	ResourceTypeImage
)

func (r ResourceType) String() string {
	switch r {
	case ResourceTypeShader:
		return "shader"
	case ResourceTypeImage:
		return "image"
	}
	return "none"
}

/**
 * @brief A loaded asset. Data holds the loader specific payload: the
 * source text for shaders, a decoded image for images.
 */
type Resource struct {
	Name     string
	FullPath string
	DataSize uint64
	Data     interface{}
}
