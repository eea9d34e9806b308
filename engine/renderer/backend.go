package renderer

import (
	"github.com/google/uuid"
	"github.com/spaghettifunk/shady/engine/math"
	"github.com/spaghettifunk/shady/engine/renderer/metadata"
)

type RendererBackend interface {
	Initialize(config *metadata.RendererBackendConfig, width, height int) error
	Shutdown() error
	Resized(width, height int) error
	BeginFrame(packet *metadata.FramePacket) error
	DrawGeometry(data *metadata.GeometryRenderData) error
	EndFrame() error
	CreateGeometry(id uuid.UUID, mesh *math.Mesh) error
	UpdateGeometryColours(id uuid.UUID, mesh *math.Mesh) error
	DestroyGeometry(id uuid.UUID)
	TextureCreate(texture *metadata.Texture, unit uint32, repeat metadata.TextureRepeat) error
	TextureDestroy(texture *metadata.Texture)
	ShaderCreate(source *metadata.ShaderSource) error
	ShaderDestroy(program metadata.ProgramID)
	ReadPixels(width, height int) ([]uint8, error)
	// Errors drains the errors the backend raised since the last call.
	Errors() []error
}
