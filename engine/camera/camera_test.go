package camera

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-meadow/common"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestNewCameraDefaults(t *testing.T) {
	c := NewCamera()
	assert.InDelta(t, 50*math.Pi/180, c.Fov(), 1e-6)
	assert.Equal(t, float32(0.05), c.Near())
	assert.Equal(t, float32(500), c.Far())
	assert.Equal(t, float32(6), c.Distance())
	assert.Equal(t, float32(0.9), c.HeightOffset())
}

func TestBuilderOptions(t *testing.T) {
	c := NewCamera(WithFov(90), WithNear(0.1), WithFar(100), WithDistance(10), WithHeightOffset(2))
	assert.InDelta(t, math.Pi/2, c.Fov(), 1e-6)
	assert.Equal(t, float32(0.1), c.Near())
	assert.Equal(t, float32(100), c.Far())
	assert.Equal(t, float32(10), c.Distance())
	assert.Equal(t, float32(2), c.HeightOffset())
}

func TestUpdateTargetsFollowedPositionPlusHeight(t *testing.T) {
	c := NewCamera()
	c.Update(16.0/9.0, common.Vec3{1, 1, -2}, 0, 0.35)
	assert.Equal(t, common.Vec3{1, 1.9, -2}, c.Target())
}

func TestEyeAtYawZeroSitsOnPositiveZ(t *testing.T) {
	c := NewCamera()
	c.Update(1, common.Vec3{0, 1, 0}, 0, 0)
	eye := c.Eye()
	assert.InDelta(t, 0, eye[0], 1e-5)
	assert.InDelta(t, 1.9, eye[1], 1e-5)
	assert.InDelta(t, 6, eye[2], 1e-5)
}

func TestEyeKeepsOrbitDistance(t *testing.T) {
	c := NewCamera()
	for _, angles := range [][2]float32{{0, 0}, {1.1, 0.35}, {-2.5, -0.8}, {3, 1.2}} {
		c.Update(1.5, common.Vec3{4, 1, 4}, angles[0], angles[1])
		eye, target := c.Eye(), c.Target()
		d := mgl32.Vec3(eye).Sub(mgl32.Vec3(target)).Len()
		assert.InDelta(t, 6, d, 1e-4)
	}
}

func TestPitchIsNotClamped(t *testing.T) {
	c := NewCamera()
	c.Update(1, common.Vec3{0, 1, 0}, 0, 1.5)
	eye := c.Eye()
	assert.InDelta(t, 1.9+6*math.Sin(1.5), eye[1], 1e-4)
	assert.InDelta(t, 6*math.Cos(1.5), eye[2], 1e-4)
}

func TestViewProjectionIsProjectionTimesView(t *testing.T) {
	c := NewCamera()
	aspect := float32(1280) / 720
	c.Update(aspect, common.Vec3{2, 1, -3}, 0.7, 0.35)

	proj := mgl32.Perspective(c.Fov(), aspect, c.Near(), c.Far())
	// mathgl targets a [-1, 1] depth range; remap to [0, 1].
	remap := mgl32.Mat4{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 0.5, 0, 0, 0, 0.5, 1}
	view := mgl32.LookAtV(mgl32.Vec3(c.Eye()), mgl32.Vec3(c.Target()), mgl32.Vec3{0, 1, 0})
	expected := remap.Mul4(proj).Mul4(view)

	vp := c.ViewProjectionMatrix()
	for i := range vp {
		assert.InDeltaf(t, expected[i], vp[i], 1e-4, "element %d", i)
	}
}

func TestTargetProjectsToScreenCenter(t *testing.T) {
	c := NewCamera()
	c.Update(2, common.Vec3{5, 1, 5}, -1.3, 0.5)
	vp := mgl32.Mat4(c.ViewProjectionMatrix())
	target := c.Target()
	clip := vp.Mul4x1(mgl32.Vec4{target[0], target[1], target[2], 1})
	assert.InDelta(t, 0, clip[0]/clip[3], 1e-4)
	assert.InDelta(t, 0, clip[1]/clip[3], 1e-4)
	ndcZ := clip[2] / clip[3]
	assert.True(t, ndcZ > 0 && ndcZ < 1)
}
