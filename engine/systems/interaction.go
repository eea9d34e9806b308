package systems

import (
	"fmt"

	"github.com/spaghettifunk/shady/engine/core"
	"github.com/spaghettifunk/shady/engine/math"
	"github.com/spaghettifunk/shady/engine/renderer/components"
)

// Mode selects what a mouse drag edits.
type Mode int

const (
	ModeView Mode = iota
	ModeModel
	ModeLight
)

func (m Mode) String() string {
	switch m {
	case ModeView:
		return "V"
	case ModeModel:
		return "M"
	case ModeLight:
		return "L"
	}
	return "?"
}

// Region is the part of the window a drag starts in.
type Region int

const (
	RegionCenter Region = iota
	RegionBottom
	RegionLeft
)

// Width of the bottom and left control strips, as a fraction of the window.
const stripFraction float32 = 0.2

const (
	axisHorizontal = 0
	axisVertical   = 1
)

// TransformKind names the transform a drag applies.
type TransformKind int

const (
	TransformIdentity TransformKind = iota
	TransformRotateViewN
	TransformRotateViewUV
	TransformTranslateViewN
	TransformTranslateViewUV
	TransformZoomFOV
	TransformDollyNearFar
	TransformRotateLightN
	TransformRotateLightUV
	TransformRotateModelN
	TransformRotateModelUV
	TransformTranslateModelN
	TransformTranslateModelUV
	TransformRotateSpotlightN
	TransformRotateSpotlightUV
	TransformDollySpotlight
	TransformKindCount
)

var transformDescriptions = [TransformKindCount]string{
	TransformIdentity:          "does nothing",
	TransformRotateViewN:       "rotates eye point around N",
	TransformRotateViewUV:      "rotates eye point around U and V",
	TransformTranslateViewN:    "translates eye and look-at along N",
	TransformTranslateViewUV:   "translates eye and look-at along U and V",
	TransformZoomFOV:           "zooms in or out",
	TransformDollyNearFar:      "shrinks or grows (far distance) - (near distance)",
	TransformRotateLightN:      "rotates light direction around N",
	TransformRotateLightUV:     "rotates light direction around U and V",
	TransformRotateModelN:      "rotates object around N",
	TransformRotateModelUV:     "rotates object around U and V",
	TransformTranslateModelN:   "translates object along N",
	TransformTranslateModelUV:  "translates object along U and V",
	TransformRotateSpotlightN:  "rotates spotlight around N",
	TransformRotateSpotlightUV: "rotates spotlight around U and V",
	TransformDollySpotlight:    "shrinks or grows the spotlight's near and far",
}

func (k TransformKind) String() string {
	if k < 0 || k >= TransformKindCount {
		return "unknown"
	}
	return transformDescriptions[k]
}

// Target names the state a binding edits. It is resolved on every motion
// event, so a binding never holds on to a pointer across a drag.
type Target int

const (
	TargetNone Target = iota
	TargetCamera
	TargetLight
	TargetSpotlight
	TargetSelectedModel
	TargetFOV
)

// Binding is what a button press arms and a release clears.
type Binding struct {
	Kind       TransformKind
	Target     Target
	Offset     float32
	Multiplier float32
	Axis       int
}

// IdentityBinding is armed when no rule matches.
func IdentityBinding() Binding {
	return Binding{Kind: TransformIdentity, Target: TargetNone, Multiplier: 1}
}

type bindingKey struct {
	mode   Mode
	shift  bool
	region Region
}

// Every drag the viewer understands. Missing combinations arm the identity.
var bindingTable = map[bindingKey]Binding{
	{ModeView, false, RegionBottom}:  {Kind: TransformRotateViewN, Target: TargetCamera, Multiplier: 1},
	{ModeLight, false, RegionBottom}: {Kind: TransformRotateLightN, Target: TargetLight, Multiplier: 10},
	{ModeModel, true, RegionBottom}:  {Kind: TransformTranslateModelN, Target: TargetSelectedModel, Multiplier: 4},
	{ModeView, true, RegionBottom}:   {Kind: TransformTranslateViewN, Target: TargetCamera, Multiplier: -1},
	{ModeView, false, RegionLeft}:    {Kind: TransformZoomFOV, Target: TargetFOV, Offset: 1, Multiplier: 0.25},
	{ModeView, true, RegionLeft}:     {Kind: TransformDollyNearFar, Target: TargetCamera, Multiplier: 0.25},
	{ModeView, false, RegionCenter}:  {Kind: TransformRotateViewUV, Target: TargetCamera, Multiplier: 2},
	{ModeLight, false, RegionCenter}: {Kind: TransformRotateLightUV, Target: TargetLight, Multiplier: 1},
	{ModeView, true, RegionCenter}:   {Kind: TransformTranslateViewUV, Target: TargetCamera, Multiplier: -4},
	{ModeModel, true, RegionCenter}:  {Kind: TransformTranslateModelUV, Target: TargetSelectedModel, Multiplier: 4},
	{ModeModel, false, RegionCenter}: {Kind: TransformRotateModelUV, Target: TargetSelectedModel, Multiplier: 1},
	{ModeModel, false, RegionBottom}: {Kind: TransformRotateModelN, Target: TargetSelectedModel, Multiplier: 1},
	{ModeLight, true, RegionCenter}:  {Kind: TransformRotateSpotlightUV, Target: TargetSpotlight, Multiplier: 1},
	{ModeLight, true, RegionBottom}:  {Kind: TransformRotateSpotlightN, Target: TargetSpotlight, Multiplier: 1},
	{ModeLight, true, RegionLeft}:    {Kind: TransformDollySpotlight, Target: TargetSpotlight, Multiplier: 0.25},
}

// target is a Binding.Target resolved against the current state.
type target struct {
	camera   *components.Camera
	light    *components.Light
	geometry *components.Geometry
}

// A handler applies drag s (already scaled and offset) to t.
type transformHandler func(is *InteractionSystem, t target, b Binding, s [2]float32) error

var transformHandlers = [TransformKindCount]transformHandler{
	TransformIdentity: func(*InteractionSystem, target, Binding, [2]float32) error { return nil },
	TransformRotateViewN: func(is *InteractionSystem, _ target, b Binding, s [2]float32) error {
		return is.cameras.RotateViewN(s[b.Axis])
	},
	TransformRotateViewUV: func(is *InteractionSystem, _ target, _ Binding, s [2]float32) error {
		is.cameras.RotateViewU(s[1])
		is.cameras.RotateViewV(-s[0])
		return nil
	},
	TransformTranslateViewN: func(is *InteractionSystem, _ target, b Binding, s [2]float32) error {
		return is.cameras.TranslateViewN(s[b.Axis])
	},
	TransformTranslateViewUV: func(is *InteractionSystem, _ target, _ Binding, s [2]float32) error {
		is.cameras.TranslateViewUV(s[0], s[1])
		return nil
	},
	TransformZoomFOV: func(is *InteractionSystem, _ target, b Binding, s [2]float32) error {
		return is.cameras.Zoom(s[b.Axis])
	},
	TransformDollyNearFar: func(is *InteractionSystem, _ target, b Binding, s [2]float32) error {
		return is.cameras.DollyNearFar(s[b.Axis])
	},
	TransformRotateLightN: func(is *InteractionSystem, _ target, b Binding, s [2]float32) error {
		is.cameras.RotateLightAround(2, s[b.Axis])
		return nil
	},
	TransformRotateLightUV: func(is *InteractionSystem, _ target, _ Binding, s [2]float32) error {
		is.cameras.RotateLightAround(0, -s[1])
		is.cameras.RotateLightAround(1, s[0])
		return nil
	},
	TransformRotateModelN: func(is *InteractionSystem, t target, b Binding, s [2]float32) error {
		return is.geometries.RotateModelN(t.geometry, s[b.Axis])
	},
	TransformRotateModelUV: func(is *InteractionSystem, t target, _ Binding, s [2]float32) error {
		return is.geometries.RotateModelUV(t.geometry, -s[0], s[1])
	},
	TransformTranslateModelN: func(is *InteractionSystem, t target, b Binding, s [2]float32) error {
		return is.geometries.TranslateModelN(t.geometry, s[b.Axis])
	},
	TransformTranslateModelUV: func(is *InteractionSystem, t target, _ Binding, s [2]float32) error {
		is.geometries.TranslateModelUV(t.geometry, s[0], s[1])
		return nil
	},
	TransformRotateSpotlightN: func(is *InteractionSystem, _ target, b Binding, s [2]float32) error {
		return is.cameras.RotateSpotlightN(s[b.Axis])
	},
	TransformRotateSpotlightUV: func(is *InteractionSystem, _ target, _ Binding, s [2]float32) error {
		is.cameras.RotateSpotlight(0, s[1])
		is.cameras.RotateSpotlight(1, -s[0])
		return nil
	},
	TransformDollySpotlight: func(is *InteractionSystem, _ target, b Binding, s [2]float32) error {
		is.cameras.DollySpotlight(s[b.Axis])
		return nil
	},
}

/**
 * @brief Maps mouse drags to camera, light and model transforms. A press
 * arms a Binding chosen from the mode, the shift latch and the region
 * under the cursor; each motion applies the bound transform to the drag
 * delta measured in window fractions; a release disarms it.
 */
type InteractionSystem struct {
	cameras    *CameraSystem
	geometries *GeometrySystem

	Mode       Mode
	ButtonDown bool
	ShiftDown  bool
	Binding    Binding

	lastX float64
	lastY float64
}

func NewInteractionSystem(cameras *CameraSystem, geometries *GeometrySystem) *InteractionSystem {
	return &InteractionSystem{
		cameras:    cameras,
		geometries: geometries,
		Mode:       ModeView,
		Binding:    IdentityBinding(),
	}
}

// SetMode selects the interaction mode; the other two are cleared.
func (is *InteractionSystem) SetMode(m Mode) {
	is.Mode = m
	core.LogInfo("Mode %s", m)
}

// RegionAt classifies a cursor position in pixels.
func (is *InteractionSystem) RegionAt(x, y float64) Region {
	w, h := is.cameras.WindowSize()
	xf := float32(x) / float32(w)
	yf := float32(y) / float32(h)
	switch {
	case yf > 1-stripFraction:
		return RegionBottom
	case xf < stripFraction:
		return RegionLeft
	default:
		return RegionCenter
	}
}

// Lookup returns the binding for a combination, or the identity binding.
func Lookup(mode Mode, shift bool, region Region) (Binding, bool) {
	b, ok := bindingTable[bindingKey{mode, shift, region}]
	if !ok {
		b = IdentityBinding()
	}
	switch region {
	case RegionBottom, RegionCenter:
		b.Axis = axisHorizontal
	case RegionLeft:
		b.Axis = axisVertical
	}
	return b, ok
}

/**
 * @brief Arms a binding for a button press at pixel (x, y).
 */
func (is *InteractionSystem) Press(x, y float64, shift bool) {
	is.ButtonDown = true
	is.ShiftDown = shift
	is.lastX = x
	is.lastY = y

	b, ok := Lookup(is.Mode, shift, is.RegionAt(x, y))
	is.Binding = b
	if !ok {
		return
	}
	core.LogInfo(" ... (mode %s) %s", is.Mode, b.Kind)

	switch b.Kind {
	case TransformTranslateModelN:
		if err := is.geometries.UpdateAllNormals(); err != nil {
			core.LogWarn("updating normals: %v", err)
		}
	case TransformZoomFOV:
		if err := is.cameras.Refresh(); err != nil {
			core.LogWarn("refreshing projection: %v", err)
		}
	}
}

/**
 * @brief Applies the armed binding to the drag from the last position to
 * pixel (x, y). Nothing happens unless a button is down. When the
 * transform fails or leaves non-finite state behind, the edited state is
 * restored and the error is returned.
 */
func (is *InteractionSystem) Motion(x, y float64) error {
	if !is.ButtonDown {
		return nil
	}
	w, h := is.cameras.WindowSize()
	b := is.Binding

	var s [2]float32
	s[0] = float32(is.lastX/float64(w) - x/float64(w))
	s[1] = float32(is.lastY/float64(h) - y/float64(h))
	s[0] = b.Multiplier*s[0] + b.Offset
	s[1] = b.Multiplier*s[1] + b.Offset

	is.lastX = x
	is.lastY = y

	t, err := is.resolve(b.Target)
	if err != nil {
		return err
	}
	if b.Kind < 0 || b.Kind >= TransformKindCount {
		return fmt.Errorf("transform kind %d: %w", b.Kind, core.ErrUnknown)
	}

	saved := is.save(t)
	err = transformHandlers[b.Kind](is, t, b, s)
	if err == nil && !is.finite(t) {
		err = fmt.Errorf("%s: non-finite result: %w", b.Kind, core.ErrDegenerateVector)
	}
	if err != nil {
		is.restore(t, saved)
		return err
	}
	return nil
}

// Release disarms the binding and clears the latches.
func (is *InteractionSystem) Release() {
	is.ButtonDown = false
	is.ShiftDown = false
	is.Binding = IdentityBinding()
}

func (is *InteractionSystem) resolve(t Target) (target, error) {
	switch t {
	case TargetCamera, TargetFOV:
		return target{camera: is.cameras.DefaultCamera, light: is.cameras.Light}, nil
	case TargetLight:
		return target{light: is.cameras.Light}, nil
	case TargetSpotlight:
		return target{camera: is.cameras.Spotlight, light: is.cameras.Light}, nil
	case TargetSelectedModel:
		g, ok := is.geometries.Selected()
		if !ok {
			return target{}, fmt.Errorf("no geometry selected: %w", core.ErrUnknown)
		}
		return target{geometry: g}, nil
	}
	return target{}, nil
}

type savedState struct {
	camera   components.Camera
	spotFrom math.Vec3
	light    components.Light
	model    math.Mat4
	orient   math.Quaternion
	normal   math.Mat3
}

func (is *InteractionSystem) save(t target) savedState {
	var st savedState
	if t.camera != nil {
		st.camera = *t.camera
	}
	// orbiting the camera also moves the spotlight
	st.spotFrom = is.cameras.Spotlight.From
	if t.light != nil {
		st.light = *t.light
	}
	if t.geometry != nil {
		st.model = t.geometry.ModelMatrix
		st.orient = t.geometry.Quaternion
		st.normal = t.geometry.NormalMatrix
	}
	return st
}

func (is *InteractionSystem) restore(t target, st savedState) {
	if t.camera != nil {
		*t.camera = st.camera
	}
	is.cameras.Spotlight.From = st.spotFrom
	if t.light != nil {
		*t.light = st.light
	}
	if t.geometry != nil {
		t.geometry.ModelMatrix = st.model
		t.geometry.Quaternion = st.orient
		t.geometry.NormalMatrix = st.normal
	}
}

func (is *InteractionSystem) finite(t target) bool {
	if c := t.camera; c != nil {
		if !c.From.IsFinite() || !c.At.IsFinite() || !c.Up.IsFinite() ||
			!math.IsFinite(c.FOV, c.Near, c.Far) || !c.Proj.IsFinite() {
			return false
		}
	}
	if !is.cameras.Spotlight.From.IsFinite() {
		return false
	}
	if t.light != nil && !t.light.Direction.IsFinite() {
		return false
	}
	if g := t.geometry; g != nil {
		q := g.Quaternion
		if !g.ModelMatrix.IsFinite() || !math.IsFinite(q.X, q.Y, q.Z, q.W) {
			return false
		}
	}
	return true
}
