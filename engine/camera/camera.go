package camera

import (
	"github.com/Carmen-Shannon/oxy-meadow/common"
)

type cameraImpl struct {
	up [3]float32

	fov          float32
	near         float32
	far          float32
	heightOffset float32

	rig orbit

	projectionMatrix     common.Mat4
	viewMatrix           common.Mat4
	viewProjectionMatrix common.Mat4
}

// Camera is a third-person orbit camera. Every Update rebuilds the projection, view and
// view-projection matrices from scratch; only the composed view-projection is exposed.
type Camera interface {
	// Update recomputes the camera for the current frame.
	// The orbit target is the followed position raised by the height offset.
	// Yaw and pitch are used as given; any clamping is the caller's job.
	//
	// Parameters:
	//   - aspect: viewport aspect ratio (width / height)
	//   - follow: world-space position being followed (the character)
	//   - yaw: orbit yaw in radians
	//   - pitch: orbit pitch in radians
	Update(aspect float32, follow common.Vec3, yaw, pitch float32)

	// ViewProjectionMatrix returns projection · view from the last Update (column-major).
	//
	// Returns:
	//   - common.Mat4: the view-projection matrix
	ViewProjectionMatrix() common.Mat4

	// Eye returns the eye position from the last Update.
	//
	// Returns:
	//   - common.Vec3: the world-space eye position
	Eye() common.Vec3

	// Target returns the point the camera looked at during the last Update.
	//
	// Returns:
	//   - common.Vec3: the world-space look-at target
	Target() common.Vec3

	// Fov returns the vertical field of view in radians.
	Fov() float32

	// Near returns the near clipping plane distance.
	Near() float32

	// Far returns the far clipping plane distance.
	Far() float32

	// Distance returns the orbit distance from the target.
	Distance() float32

	// HeightOffset returns how far above the followed position the target sits.
	HeightOffset() float32
}

var _ Camera = &cameraImpl{}

// NewCamera creates a Camera with a 50° field of view, planes at 0.05 and 500, an orbit distance
// of 6 and a height offset of 0.9, then applies options.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the configured camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		up:           [3]float32{0, 1, 0},
		fov:          common.DegToRad(50),
		near:         0.05,
		far:          500,
		heightOffset: 0.9,
		rig:          orbit{radius: 6},
	}
	for _, opt := range options {
		opt(c)
	}
	common.Identity(&c.projectionMatrix)
	common.Identity(&c.viewMatrix)
	common.Identity(&c.viewProjectionMatrix)
	return c
}

func (c *cameraImpl) Update(aspect float32, follow common.Vec3, yaw, pitch float32) {
	target := common.Vec3{follow[0], follow[1] + c.heightOffset, follow[2]}
	c.rig.set(target, yaw, pitch)

	common.Perspective(&c.projectionMatrix, c.fov, aspect, c.near, c.far)
	common.LookAt(&c.viewMatrix, c.rig.position, c.rig.target, c.up)
	common.Mul4(&c.viewProjectionMatrix, &c.projectionMatrix, &c.viewMatrix)
}

func (c *cameraImpl) ViewProjectionMatrix() common.Mat4 {
	return c.viewProjectionMatrix
}

func (c *cameraImpl) Eye() common.Vec3 {
	return c.rig.position
}

func (c *cameraImpl) Target() common.Vec3 {
	return c.rig.target
}

func (c *cameraImpl) Fov() float32 {
	return c.fov
}

func (c *cameraImpl) Near() float32 {
	return c.near
}

func (c *cameraImpl) Far() float32 {
	return c.far
}

func (c *cameraImpl) Distance() float32 {
	return c.rig.radius
}

func (c *cameraImpl) HeightOffset() float32 {
	return c.heightOffset
}
