package components

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/spaghettifunk/shady/engine/core"
	"github.com/spaghettifunk/shady/engine/math"
)

/**
 * @brief A look-at camera described by a from point, an at point and an
 * up vector. The derived UVN matrix is the view transform: its first three
 * rows hold the U (right), V (up) and N (forward) axes. The same type
 * also drives the spotlight.
 */
type Camera struct {
	From math.Vec3
	At   math.Vec3
	Up   math.Vec3

	/** @brief Vertical field of view in radians. */
	FOV    float32
	Near   float32
	Far    float32
	Aspect float32

	/** @brief Orthographic instead of perspective projection. */
	Ortho bool
	/** @brief When set, orbiting around U or V leaves Up untouched. */
	Fixed bool

	/** @brief The view transform; rebuilt by UpdateUVN. */
	UVN math.Mat4
	/** @brief The projection transform; rebuilt by UpdateProjection. */
	Proj math.Mat4
}

/** @brief The name of the default camera. */
const DEFAULT_CAMERA_NAME string = "default"

/** @brief The name of the spotlight camera. */
const SPOTLIGHT_CAMERA_NAME string = "spotlight"

// Default camera parameters.
const (
	DefaultFOV  float32 = 1.57079633 / 10
	DefaultNear float32 = -20
	DefaultFar  float32 = 20

	// Zoom limits, short of 0 and pi where the projection degenerates.
	MinFOV float32 = 0.1
	MaxFOV float32 = 3.14
)

func NewCamera() *Camera {
	camera := &Camera{}
	camera.Reset()
	return camera
}

func (c *Camera) Reset() {
	c.From = math.NewVec3(0, 0, -1)
	c.At = math.NewVec3Zero()
	c.Up = math.NewVec3Up()
	c.FOV = DefaultFOV
	c.Near = DefaultNear
	c.Far = DefaultFar
	c.Aspect = 1
	c.Ortho = false
	c.Fixed = false
	c.UVN = math.NewMat4Identity()
	c.Proj = math.NewMat4Identity()
}

func (c *Camera) U() math.Vec3 { return c.UVN.Row3(0) }
func (c *Camera) V() math.Vec3 { return c.UVN.Row3(1) }
func (c *Camera) N() math.Vec3 { return c.UVN.Row3(2) }

// Axis returns UVN row i (0 = U, 1 = V, 2 = N).
func (c *Camera) Axis(i int) math.Vec3 { return c.UVN.Row3(i) }

/**
 * @brief Rebuilds the view basis from From, At and Up:
 * N = normalize(at - from), U = normalize(N x up), V = normalize(U x N),
 * with the translation column -dot(axis, from).
 *
 * When Up is parallel to the viewing direction the world axis least
 * aligned with N stands in for it. When From and At coincide there is
 * no viewing direction; the previous UVN is kept and an error returned.
 */
func (c *Camera) UpdateUVN() error {
	n, err := c.At.Sub(c.From).Normalize()
	if err != nil {
		return fmt.Errorf("view basis: from equals at: %w", err)
	}
	u, err := n.Cross(c.Up).Normalize()
	if err != nil {
		u, err = n.Cross(fallbackUp(n)).Normalize()
		if err != nil {
			return fmt.Errorf("view basis: %w", err)
		}
		core.LogDebug("up vector %v is parallel to view direction, using fallback", c.Up)
	}
	v, err := u.Cross(n).Normalize()
	if err != nil {
		return fmt.Errorf("view basis: %w", err)
	}

	uvn := math.NewMat4Identity()
	uvn.SetRow(0, u, -u.Dot(c.From))
	uvn.SetRow(1, v, -v.Dot(c.From))
	uvn.SetRow(2, n, -n.Dot(c.From))
	if !uvn.IsFinite() {
		return fmt.Errorf("view basis: %w", core.ErrDegenerateVector)
	}
	c.UVN = uvn
	return nil
}

// fallbackUp picks the world axis with the smallest absolute component in n.
func fallbackUp(n math.Vec3) math.Vec3 {
	ax, ay, az := math32.Abs(n.X), math32.Abs(n.Y), math32.Abs(n.Z)
	switch {
	case ax <= ay && ax <= az:
		return math.NewVec3(1, 0, 0)
	case ay <= az:
		return math.NewVec3(0, 1, 0)
	default:
		return math.NewVec3(0, 0, 1)
	}
}

/**
 * @brief Rebuilds the projection for a view plane of size w x h using
 * the camera's near/far planes and projection type. A zero-sized plane or
 * coincident near and far planes leave Proj unchanged and return
 * core.ErrSingularMatrix.
 */
func (c *Camera) UpdateProjection(w, h float32) error {
	n, f := c.Near, c.Far
	i := f + n
	j := f - n
	if math32.Abs(w) < math.K_FLOAT_EPSILON || math32.Abs(h) < math.K_FLOAT_EPSILON || math32.Abs(j) < math.K_FLOAT_EPSILON {
		return fmt.Errorf("projection w=%g h=%g near=%g far=%g: %w", w, h, n, f, core.ErrSingularMatrix)
	}

	var m math.Mat4
	if c.Ortho {
		m.Data[0] = -2 / w
		m.Data[5] = 2 / h
		m.Data[10] = 2 / j
		m.Data[14] = -i / j
		m.Data[15] = 1
	} else {
		m.Data[0] = -2 * n / w
		m.Data[5] = 2 * n / h
		m.Data[10] = i / j
		m.Data[11] = -2 * f * n / j
		m.Data[14] = -1
		m.Data[15] = 0
	}
	if !m.IsFinite() {
		return fmt.Errorf("projection: %w", core.ErrSingularMatrix)
	}
	c.Proj = m
	return nil
}

/**
 * @brief Recomputes the aspect ratio and the view plane for a window of
 * width x height pixels, then rebuilds the projection. Sizes below one
 * pixel are clamped to one.
 */
func (c *Camera) Resize(width, height int) error {
	width = max(width, 1)
	height = max(height, 1)
	c.Aspect = float32(width) / float32(height)

	var wf, hf float32
	if !c.Ortho {
		hf = 0.5 * c.Near * math32.Tan(0.5*c.FOV)
		wf = c.Aspect * hf
	} else {
		wf = c.Aspect
		hf = 1
	}
	return c.UpdateProjection(wf, hf)
}

/**
 * @brief Orbits From around At by angle radians about UVN axis i (U or V).
 * Up follows the rotation unless the camera is Fixed. The rotation used
 * is returned so that coupled state (the light) can follow it.
 */
func (c *Camera) Orbit(axisIndex int, angle float32) math.Mat4 {
	axis := c.Axis(axisIndex)
	r := math.NewMat4AxisRotation(axis, math32.Cos(angle), math32.Sin(angle))
	offset := c.From.Sub(c.At).TransformDirection(r)
	c.From = c.At.Add(offset)
	if !c.Fixed {
		c.Up = c.Up.TransformDirection(r)
	}
	return r
}

/** @brief Rolls the camera: rotates Up about N and renormalizes it. */
func (c *Camera) Roll(angle float32) error {
	up, err := c.Up.Rotate(c.N(), angle).Normalize()
	if err != nil {
		return fmt.Errorf("roll: %w", err)
	}
	c.Up = up
	return nil
}

/** @brief Moves From and At together by delta. */
func (c *Camera) Pan(delta math.Vec3) {
	c.From = c.From.Add(delta)
	c.At = c.At.Add(delta)
}

// Zoom multiplies the field of view by s, clamped to [MinFOV, MaxFOV].
func (c *Camera) Zoom(s float32) {
	c.FOV = math.Clamp(c.FOV*s, MinFOV, MaxFOV)
}

/**
 * @brief Pulls the near and far planes towards each other by delta and
 * narrows the field of view by delta/2. Values are not clamped; a
 * degenerate result is rejected when the projection is rebuilt.
 */
func (c *Camera) DollyNearFar(delta float32) {
	c.Near += delta
	c.Far -= delta
	c.FOV -= 0.5 * delta
	core.LogDebug("far - near = %f - %f = %f, fov = %f", c.Far, c.Near, c.Far-c.Near, c.FOV)
}
