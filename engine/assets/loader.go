package assets

import "github.com/spaghettifunk/shady/engine/renderer/metadata"

// Loader reads one kind of asset from disk. The decoded value travels in
// Resource.Data: a *loaders.Image for images, the source text for shaders.
type Loader interface {
	Load(path string, assetType metadata.ResourceType) (*metadata.Resource, error)
	Unload(*metadata.Resource) error
}
