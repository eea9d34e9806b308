package systems

import (
	"github.com/spaghettifunk/shady/engine/core"
	"github.com/spaghettifunk/shady/engine/math"
	"github.com/spaghettifunk/shady/engine/renderer/metadata"
)

type FilteringMode int

const (
	FilteringNearest FilteringMode = iota
	FilteringLinear
	FilteringNearestWithMipmap
	FilteringLinearWithMipmap
)

func (f FilteringMode) String() string {
	switch f {
	case FilteringNearest:
		return "Nearest"
	case FilteringLinear:
		return "Linear"
	case FilteringNearestWithMipmap:
		return "NearestWithMipmap"
	case FilteringLinearWithMipmap:
		return "LinearWithMipmap"
	}
	return "Unknown"
}

// Filters returns the minification and magnification filters of the mode.
func (f FilteringMode) Filters() (metadata.TextureFilter, metadata.TextureFilter) {
	switch f {
	case FilteringLinear:
		return metadata.TEXTURE_FILTER_MODE_LINEAR, metadata.TEXTURE_FILTER_MODE_LINEAR
	case FilteringNearestWithMipmap:
		return metadata.TEXTURE_FILTER_MODE_NEAREST_MIPMAP_NEAREST, metadata.TEXTURE_FILTER_MODE_NEAREST
	case FilteringLinearWithMipmap:
		return metadata.TEXTURE_FILTER_MODE_LINEAR_MIPMAP_LINEAR, metadata.TEXTURE_FILTER_MODE_LINEAR
	default:
		return metadata.TEXTURE_FILTER_MODE_NEAREST, metadata.TEXTURE_FILTER_MODE_NEAREST
	}
}

type BumpMapping int

const (
	BumpDisabled BumpMapping = iota
	BumpEnabled
	BumpParallax
)

func (b BumpMapping) String() string {
	switch b {
	case BumpDisabled:
		return "Disabled"
	case BumpEnabled:
		return "Bump"
	case BumpParallax:
		return "Parallax"
	}
	return "Unknown"
}

// Field names of the parameter bar.
const (
	FieldKa                 = "Ka"
	FieldKd                 = "Kd"
	FieldKs                 = "Ks"
	FieldShexp              = "shexp"
	FieldBgColor            = "bgColor"
	FieldShading            = "shading"
	FieldPerVertexTexturing = "perVertexTexturing"
	FieldSeamFix            = "seamFix"
	FieldFilteringMode      = "filteringMode"
	FieldBumpMapping        = "bumpMappingMode"
)

/**
 * @brief The values a parameter bar edits. Plain fields can be written
 * directly; fields with side effects go through their setters.
 */
type Settings struct {
	BgColor            math.Vec3
	Gouraud            bool
	SeamFix            bool
	PerVertexTexturing bool
	FilteringMode      FilteringMode
	BumpMapping        BumpMapping
	// First geometry drawn; the frame shows Count-1 geometries from here.
	GeometryOffset int
	Program        metadata.ProgramID
	MinFilter      metadata.TextureFilter
	MagFilter      metadata.TextureFilter

	geometries *GeometrySystem
	samplers   []ColourSampler
}

func NewSettings(geometries *GeometrySystem, samplers []ColourSampler) *Settings {
	return &Settings{
		BgColor:            math.NewVec3(0.2, 0.25, 0.3),
		Gouraud:            true,
		PerVertexTexturing: true,
		Program:            metadata.PROGRAM_PHONG,
		MinFilter:          metadata.TEXTURE_FILTER_MODE_NEAREST,
		MagFilter:          metadata.TEXTURE_FILTER_MODE_NEAREST,
		geometries:         geometries,
		samplers:           samplers,
	}
}

// SetSamplers replaces the images used for per-vertex texturing.
func (s *Settings) SetSamplers(samplers []ColourSampler) {
	s.samplers = samplers
}

/**
 * @brief Recolours the vertices and selects the simple program when per-vertex
 * texturing is on, or the texture program when it is off.
 */
func (s *Settings) SetPerVertexTexturing(on bool) {
	s.PerVertexTexturing = on
	s.ApplyVertexColours()
	if on {
		core.LogInfo("Per-vertex texturing: ON")
		s.Program = metadata.PROGRAM_SIMPLE
	} else {
		core.LogInfo("Per-vertex texturing: OFF")
		s.Program = metadata.PROGRAM_TEXTURE
	}
}

// ApplyVertexColours pushes the current per-vertex texturing state to the meshes.
func (s *Settings) ApplyVertexColours() {
	if s.geometries != nil {
		s.geometries.ApplyVertexColours(s.PerVertexTexturing, s.samplers)
	}
}

func (s *Settings) SetFilteringMode(mode FilteringMode) {
	s.FilteringMode = mode
	s.MinFilter, s.MagFilter = mode.Filters()
	core.LogInfo("Filtering mode: %s", mode)
}

// SetBumpMapping selects the bump, parallax or plain texture program.
func (s *Settings) SetBumpMapping(mode BumpMapping) {
	s.BumpMapping = mode
	switch mode {
	case BumpEnabled:
		s.Program = metadata.PROGRAM_BUMP
	case BumpParallax:
		s.Program = metadata.PROGRAM_PARALLAX
	default:
		s.Program = metadata.PROGRAM_TEXTURE
	}
	core.LogInfo("Loading shader '%s'", s.Program)
}

// SetMaterial writes the material of geometry 0, clamped to the bar's ranges.
func (s *Settings) SetMaterial(ka, kd, ks, shexp float32) {
	if s.geometries == nil {
		return
	}
	g, ok := s.geometries.Get(0)
	if !ok {
		return
	}
	g.Material.Ka = math.Clamp(ka, 0, 1)
	g.Material.Kd = math.Clamp(kd, 0, 1)
	g.Material.Ks = math.Clamp(ks, 0, 1)
	g.Material.Shexp = math.Clamp(shexp, 0, 100)
}

// Fields lists the parameter bar entries shown for a scene.
func (s *Settings) Fields(scene int) []string {
	fields := []string{FieldKa, FieldKd, FieldKs, FieldShexp, FieldBgColor}
	switch scene {
	case 1:
		fields = append(fields, FieldShading)
	case 2:
		fields = append(fields, FieldPerVertexTexturing, FieldSeamFix)
	case 3:
		fields = append(fields, FieldFilteringMode)
	case 4:
		fields = append(fields, FieldBumpMapping)
	}
	return fields
}
