package opengl

import (
	"github.com/go-gl/gl/v3.2-core/gl"
	"github.com/spaghettifunk/shady/engine/math"
	"github.com/spaghettifunk/shady/engine/renderer/metadata"
)

const bytesFloat32 = 4 // a float32 is 4 bytes
const bytesUint32 = 4  // a uint32 is 4 bytes

/**
 * @brief The GL objects of one uploaded mesh: a vertex array with one
 * buffer per attribute, so the colours can be replaced on their own.
 */
type geometryBuffers struct {
	vao        uint32
	buffers    [len(attributeSizes)]uint32
	ibo        uint32
	indexCount int32
}

// Components per attribute, indexed by attribute location.
var attributeSizes = [...]int32{
	metadata.ATTRIB_POSITION: 3,
	metadata.ATTRIB_NORMAL:   3,
	metadata.ATTRIB_TEXCOORD: 2,
	metadata.ATTRIB_COLOUR:   3,
	metadata.ATTRIB_TANGENT:  3,
}

// attributeData flattens the vertices' attribute `index`.
func attributeData(vertices []math.Vertex3D, index uint32) []float32 {
	out := make([]float32, 0, len(vertices)*int(attributeSizes[index]))
	for _, v := range vertices {
		switch index {
		case metadata.ATTRIB_POSITION:
			out = append(out, v.Position.X, v.Position.Y, v.Position.Z)
		case metadata.ATTRIB_NORMAL:
			out = append(out, v.Normal.X, v.Normal.Y, v.Normal.Z)
		case metadata.ATTRIB_TEXCOORD:
			out = append(out, v.Texcoord.X, v.Texcoord.Y)
		case metadata.ATTRIB_COLOUR:
			out = append(out, v.Colour.X, v.Colour.Y, v.Colour.Z)
		case metadata.ATTRIB_TANGENT:
			out = append(out, v.Tangent.X, v.Tangent.Y, v.Tangent.Z)
		}
	}
	return out
}

func newGeometryBuffers(mesh *math.Mesh) *geometryBuffers {
	gb := &geometryBuffers{indexCount: int32(len(mesh.Indices))}

	gl.GenVertexArrays(1, &gb.vao)
	gl.BindVertexArray(gb.vao)

	gl.GenBuffers(int32(len(gb.buffers)), &gb.buffers[0])
	for i := range gb.buffers {
		index := uint32(i)
		data := attributeData(mesh.Vertices, index)
		gl.BindBuffer(gl.ARRAY_BUFFER, gb.buffers[i])
		gl.BufferData(gl.ARRAY_BUFFER, len(data)*bytesFloat32, gl.Ptr(data), gl.STATIC_DRAW)
		gl.EnableVertexAttribArray(index)
		gl.VertexAttribPointer(index, attributeSizes[i], gl.FLOAT, false, 0, gl.PtrOffset(0))
	}

	gl.GenBuffers(1, &gb.ibo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gb.ibo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(mesh.Indices)*bytesUint32, gl.Ptr(mesh.Indices), gl.STATIC_DRAW)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return gb
}

func (gb *geometryBuffers) updateColours(mesh *math.Mesh) {
	data := attributeData(mesh.Vertices, metadata.ATTRIB_COLOUR)
	gl.BindBuffer(gl.ARRAY_BUFFER, gb.buffers[metadata.ATTRIB_COLOUR])
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*bytesFloat32, gl.Ptr(data), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

func (gb *geometryBuffers) draw() {
	gl.BindVertexArray(gb.vao)
	gl.DrawElements(gl.TRIANGLES, gb.indexCount, gl.UNSIGNED_INT, gl.PtrOffset(0))
	gl.BindVertexArray(0)
}

func (gb *geometryBuffers) destroy() {
	gl.DeleteBuffers(int32(len(gb.buffers)), &gb.buffers[0])
	gl.DeleteBuffers(1, &gb.ibo)
	gl.DeleteVertexArrays(1, &gb.vao)
}
