package metadata

import (
	"github.com/google/uuid"
	"github.com/spaghettifunk/shady/engine/math"
)

type RendererBackendConfig struct {
	/** @brief The name of the application, used as the window title. */
	ApplicationName string
	/** @brief Stop the main loop on the first per-frame GL error. */
	AbortOnGLError bool
}

/**
 * @brief The per-geometry data handed to the backend each frame.
 */
type GeometryRenderData struct {
	/** @brief Identifies the uploaded vertex arrays of the geometry. */
	GeometryID uuid.UUID
	/** @brief Index of the geometry, exposed to shaders as "gi". */
	Index int32

	Model  math.Mat4
	Normal math.Mat3

	ObjColor math.Vec3
	Ka       float32
	Kd       float32
	Ks       float32
	Shexp    float32
}

/**
 * @brief Everything the backend needs to draw one frame. Matrices are
 * already homogeneous-normalized.
 */
type FramePacket struct {
	View       math.Mat4
	Projection math.Mat4

	LightDirection math.Vec3
	LightColor     math.Vec3
	Background     math.Vec3

	Gouraud bool
	SeamFix bool

	Program   ProgramID
	MinFilter TextureFilter
	MagFilter TextureFilter

	Geometries []GeometryRenderData
}
