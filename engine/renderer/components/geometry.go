package components

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spaghettifunk/shady/engine/math"
)

/**
 * @brief Phong material scalars of a geometry.
 */
type Material struct {
	/** @brief Ambient reflection of a white ambient light, in [0,1]. */
	Ka float32
	/** @brief Diffuse reflection, in [0,1]. */
	Kd float32
	/** @brief Specular reflection, in [0,1]. */
	Ks float32
	/** @brief Shininess exponent. */
	Shexp float32
}

func DefaultMaterial() Material {
	return Material{Ka: 0.2, Kd: 0.8, Ks: 0.2, Shexp: 50}
}

/**
 * @brief A renderable object: a mesh plus its transform state. The
 * quaternion is the authoritative orientation; the model matrix carries
 * translation and scale and the two are combined by Transform.
 */
type Geometry struct {
	ID   uuid.UUID
	Name string

	Mesh math.Mesh

	ModelMatrix  math.Mat4
	NormalMatrix math.Mat3
	Quaternion   math.Quaternion

	ObjColor math.Vec3
	Material Material

	/** @brief Set when vertex colours changed and must be uploaded again. */
	ColoursDirty bool
}

func NewGeometry(name string, mesh math.Mesh) *Geometry {
	g := &Geometry{
		ID:           uuid.New(),
		Name:         name,
		Mesh:         mesh,
		ModelMatrix:  math.NewMat4Identity(),
		NormalMatrix: math.NewMat3Identity(),
		Quaternion:   math.NewQuatIdentity(),
		ObjColor:     math.NewVec3One(),
		Material:     DefaultMaterial(),
	}
	return g
}

// ResetModelMatrix sets the model matrix back to identity. The
// orientation quaternion is left alone.
func (g *Geometry) ResetModelMatrix() {
	g.ModelMatrix = math.NewMat4Identity()
}

// Transform returns the matrix handed to the renderer: the homogeneous
// normalized model matrix followed by the orientation.
func (g *Geometry) Transform() (math.Mat4, error) {
	m, err := g.ModelMatrix.NormalizeHomogeneous()
	if err != nil {
		return math.Mat4{}, fmt.Errorf("geometry %s: %w", g.Name, err)
	}
	return m.Mul(g.Quaternion.ToMat4()), nil
}

// UpdateNormals recomputes the normal matrix from the current transform.
// A singular transform (an axis scaled to zero) keeps the previous normal
// matrix and reports the error.
func (g *Geometry) UpdateNormals() error {
	m, err := g.Transform()
	if err != nil {
		return err
	}
	n, err := math.NormalMatrix(m)
	if err != nil {
		return fmt.Errorf("geometry %s normals: %w", g.Name, err)
	}
	g.NormalMatrix = n
	return nil
}

// Rotate composes q onto the orientation: q is applied after the current one.
func (g *Geometry) Rotate(q math.Quaternion) {
	g.Quaternion = q.Mul(g.Quaternion)
}

func (g *Geometry) Translate(v math.Vec3) {
	g.ModelMatrix = g.ModelMatrix.Translate(v)
}

func (g *Geometry) ScaleUniform(s float32) {
	g.ModelMatrix = g.ModelMatrix.ScaleUniform(s)
}

// ScaleAxis scales along object axis 0 (X), 1 (Y) or 2 (Z).
func (g *Geometry) ScaleAxis(axis int, s float32) {
	v := math.NewVec3One()
	switch axis {
	case 0:
		v.X = s
	case 1:
		v.Y = s
	case 2:
		v.Z = s
	default:
		return
	}
	g.ModelMatrix = g.ModelMatrix.Scale(v)
}

// TranslateAxis translates along object axis 0 (U/X), 1 (V/Y) or 2 (N/Z).
func (g *Geometry) TranslateAxis(axis int, s float32) {
	var v math.Vec3
	switch axis {
	case 0:
		v.X = s
	case 1:
		v.Y = s
	case 2:
		v.Z = s
	default:
		return
	}
	g.Translate(v)
}

// Extents returns the bounding box of the mesh after the model matrix
// and orientation are applied.
func (g *Geometry) Extents() math.Extents3D {
	m, err := g.Transform()
	if err != nil || len(g.Mesh.Vertices) == 0 {
		return math.Extents3D{}
	}
	first := g.Mesh.Vertices[0].Position.Transform(m)
	ext := math.Extents3D{Min: first, Max: first}
	for _, v := range g.Mesh.Vertices[1:] {
		p := v.Position.Transform(m)
		ext.Min = math.NewVec3(min(ext.Min.X, p.X), min(ext.Min.Y, p.Y), min(ext.Min.Z, p.Z))
		ext.Max = math.NewVec3(max(ext.Max.X, p.X), max(ext.Max.Y, p.Y), max(ext.Max.Z, p.Z))
	}
	return ext
}

// SetVertexColours recolours every vertex with fn(texcoord) and marks the
// mesh for upload.
func (g *Geometry) SetVertexColours(fn func(tc math.Vec2) math.Vec3) {
	for i := range g.Mesh.Vertices {
		c := fn(g.Mesh.Vertices[i].Texcoord)
		g.Mesh.Vertices[i].Colour = c.ToVec4(1)
	}
	g.ColoursDirty = true
}
