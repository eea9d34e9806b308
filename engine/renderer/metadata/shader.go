package metadata

// ProgramID selects one of the linked shader programs.
type ProgramID int

const (
	PROGRAM_SIMPLE ProgramID = iota
	PROGRAM_PHONG
	PROGRAM_TEXTURE
	PROGRAM_BUMP
	PROGRAM_PARALLAX
	// The vertex/fragment pair given on the command line, if any.
	PROGRAM_CUSTOM
	PROGRAM_COUNT
)

func (p ProgramID) String() string {
	switch p {
	case PROGRAM_SIMPLE:
		return "simple"
	case PROGRAM_PHONG:
		return "phong"
	case PROGRAM_TEXTURE:
		return "texture"
	case PROGRAM_BUMP:
		return "bump"
	case PROGRAM_PARALLAX:
		return "parallax"
	case PROGRAM_CUSTOM:
		return "custom"
	}
	return "unknown"
}

type ShaderStage uint32

const (
	SHADER_STAGE_VERTEX   ShaderStage = 0x00000001
	SHADER_STAGE_FRAGMENT ShaderStage = 0x00000002
)

/**
 * @brief Source code of a vertex/fragment pair, along with the files it
 * came from (used to match hot reloads).
 */
type ShaderSource struct {
	Program      ProgramID
	VertexPath   string
	FragmentPath string
	Vertex       string
	Fragment     string
}

/** @brief Vertex attribute locations shared by every program. */
const (
	ATTRIB_POSITION uint32 = iota
	ATTRIB_NORMAL
	ATTRIB_TEXCOORD
	ATTRIB_COLOUR
	ATTRIB_TANGENT
)

// AttributeNames maps attribute locations to their GLSL input names.
var AttributeNames = map[uint32]string{
	ATTRIB_POSITION: "vertPos",
	ATTRIB_NORMAL:   "vertNorm",
	ATTRIB_TEXCOORD: "vertTex2",
	ATTRIB_COLOUR:   "vertRgb",
	ATTRIB_TANGENT:  "vertTang",
}
