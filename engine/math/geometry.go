package math

import "github.com/chewxy/math32"

// Mesh is an indexed triangle list.
type Mesh struct {
	Vertices []Vertex3D
	Indices  []uint32
}

// GenerateSphere builds a unit UV sphere centred on the origin. Texture
// coordinates run s around the equator and t from pole to pole, so the
// seam sits at s = 0 and s = 1.
func GenerateSphere(slices, stacks int) Mesh {
	slices = max(slices, 3)
	stacks = max(stacks, 2)

	vertices := make([]Vertex3D, 0, (slices+1)*(stacks+1))
	for i := 0; i <= stacks; i++ {
		t := float32(i) / float32(stacks)
		phi := t * K_PI
		for j := 0; j <= slices; j++ {
			s := float32(j) / float32(slices)
			theta := s * K_PI_2
			p := Vec3{
				X: math32.Sin(phi) * math32.Cos(theta),
				Y: math32.Cos(phi),
				Z: math32.Sin(phi) * math32.Sin(theta),
			}
			vertices = append(vertices, Vertex3D{
				Position: p,
				Normal:   p,
				Texcoord: Vec2{s, t},
				Colour:   Vec4{1, 1, 1, 1},
			})
		}
	}

	indices := make([]uint32, 0, slices*stacks*6)
	row := uint32(slices + 1)
	for i := uint32(0); i < uint32(stacks); i++ {
		for j := uint32(0); j < uint32(slices); j++ {
			a := i*row + j
			b := a + row
			indices = append(indices, a, b, a+1, a+1, b, b+1)
		}
	}

	GeometryGenerateTangents(vertices, indices)
	return Mesh{Vertices: vertices, Indices: indices}
}

// GenerateSquare builds a 2x2 square in the z = 0 plane facing -Z, with
// texture coordinates covering [0,1]^2.
func GenerateSquare() Mesh {
	normal := Vec3{0, 0, -1}
	white := Vec4{1, 1, 1, 1}
	vertices := []Vertex3D{
		{Position: Vec3{-1, -1, 0}, Normal: normal, Texcoord: Vec2{0, 0}, Colour: white},
		{Position: Vec3{1, -1, 0}, Normal: normal, Texcoord: Vec2{1, 0}, Colour: white},
		{Position: Vec3{1, 1, 0}, Normal: normal, Texcoord: Vec2{1, 1}, Colour: white},
		{Position: Vec3{-1, 1, 0}, Normal: normal, Texcoord: Vec2{0, 1}, Colour: white},
	}
	indices := []uint32{0, 2, 1, 0, 3, 2}
	GeometryGenerateTangents(vertices, indices)
	return Mesh{Vertices: vertices, Indices: indices}
}

// GeometryGenerateNormals assigns each triangle's face normal to its
// three vertices. Smoothing is left to the caller.
func GeometryGenerateNormals(vertices []Vertex3D, indices []uint32) {
	for i := 0; i+2 < len(indices); i += 3 {
		i0, i1, i2 := indices[i], indices[i+1], indices[i+2]

		edge1 := vertices[i1].Position.Sub(vertices[i0].Position)
		edge2 := vertices[i2].Position.Sub(vertices[i0].Position)
		normal := edge1.Cross(edge2).Normalized()

		vertices[i0].Normal = normal
		vertices[i1].Normal = normal
		vertices[i2].Normal = normal
	}
}

// GeometryGenerateTangents computes per-triangle tangents from texture
// coordinate deltas. Triangles with a degenerate UV mapping (at the
// sphere poles) keep whatever tangent their vertices already have.
func GeometryGenerateTangents(vertices []Vertex3D, indices []uint32) {
	for i := 0; i+2 < len(indices); i += 3 {
		i0, i1, i2 := indices[i], indices[i+1], indices[i+2]

		edge1 := vertices[i1].Position.Sub(vertices[i0].Position)
		edge2 := vertices[i2].Position.Sub(vertices[i0].Position)

		duv1 := vertices[i1].Texcoord.Sub(vertices[i0].Texcoord)
		duv2 := vertices[i2].Texcoord.Sub(vertices[i0].Texcoord)

		dividend := duv1.X*duv2.Y - duv2.X*duv1.Y
		if math32.Abs(dividend) < K_FLOAT_EPSILON {
			continue
		}
		fc := 1.0 / dividend

		tangent, err := Vec3{
			X: fc * (duv2.Y*edge1.X - duv1.Y*edge2.X),
			Y: fc * (duv2.Y*edge1.Y - duv1.Y*edge2.Y),
			Z: fc * (duv2.Y*edge1.Z - duv1.Y*edge2.Z),
		}.Normalize()
		if err != nil {
			continue
		}

		handedness := float32(1.0)
		if duv1.Y*duv2.X-duv2.Y*duv1.X < 0.0 {
			handedness = -1.0
		}

		t := tangent.MulScalar(handedness)
		vertices[i0].Tangent = t
		vertices[i1].Tangent = t
		vertices[i2].Tangent = t
	}
}
