package common

import (
	"math"

	"github.com/chewxy/math32"
)

// Mat4 is a 4x4 matrix stored in column-major order: column i occupies indices 4i..4i+3.
type Mat4 = [16]float32

// Vec3 is a 3-component vector.
type Vec3 = [3]float32

// Identity resets a 4x4 matrix to the identity matrix.
//
// Parameters:
//   - out: destination matrix
func Identity(out *Mat4) {
	*out = Mat4{}
	out[0], out[5], out[10], out[15] = 1, 1, 1, 1
}

// Mul4 multiplies two 4x4 matrices and stores the result in out.
// Result: out = a * b. The product is accumulated in a local buffer, so out may alias a or b.
//
// Parameters:
//   - out: destination matrix
//   - a: left-hand matrix
//   - b: right-hand matrix
func Mul4(out, a, b *Mat4) {
	var buf Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += a[k*4+row] * b[col*4+k]
			}
			buf[col*4+row] = sum
		}
	}
	*out = buf
}

// Perspective creates a symmetric perspective projection matrix mapping view depth
// near -> 0 and far -> 1 (WebGPU clip space).
//
// Parameters:
//   - out: destination matrix
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
func Perspective(out *Mat4, fovY, aspect, near, far float32) {
	f := 1 / math32.Tan(fovY/2)
	*out = Mat4{}
	out[0] = f / aspect
	out[5] = f
	out[10] = far / (near - far)
	out[11] = -1
	out[14] = (far * near) / (near - far)
}

// LookAt creates a right-handed view matrix that places the camera at eye looking toward center.
// A zero-length forward or right axis is normalized by 1 instead of its length, so degenerate
// input never divides by zero.
//
// Parameters:
//   - out: destination matrix
//   - eye: camera position in world space
//   - center: point the camera looks at
//   - up: up vector (typically +Y)
func LookAt(out *Mat4, eye, center, up Vec3) {
	z := normalizeOrUnit(Vec3{eye[0] - center[0], eye[1] - center[1], eye[2] - center[2]})
	x := normalizeOrUnit(Cross(up, z))
	y := Cross(z, x)

	out[0], out[4], out[8], out[12] = x[0], x[1], x[2], -Dot(x, eye)
	out[1], out[5], out[9], out[13] = y[0], y[1], y[2], -Dot(y, eye)
	out[2], out[6], out[10], out[14] = z[0], z[1], z[2], -Dot(z, eye)
	out[3], out[7], out[11], out[15] = 0, 0, 0, 1
}

// RotateY writes a fresh rotation of radians about the +Y axis into out.
// Local +Z maps to (sin, 0, cos), so a yaw of atan2(x, z) faces the direction (x, z).
//
// Parameters:
//   - out: destination matrix
//   - radians: rotation angle
func RotateY(out *Mat4, radians float32) {
	s, c := math32.Sincos(radians)
	*out = Mat4{
		c, 0, -s, 0,
		0, 1, 0, 0,
		s, 0, c, 0,
		0, 0, 0, 1,
	}
}

// Translate writes a fresh translation matrix into out.
//
// Parameters:
//   - out: destination matrix
//   - v: translation
func Translate(out *Mat4, v Vec3) {
	*out = Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		v[0], v[1], v[2], 1,
	}
}

// Scale writes a fresh non-uniform scale matrix into out.
//
// Parameters:
//   - out: destination matrix
//   - sx, sy, sz: scale factors along each axis
func Scale(out *Mat4, sx, sy, sz float32) {
	*out = Mat4{
		sx, 0, 0, 0,
		0, sy, 0, 0,
		0, 0, sz, 0,
		0, 0, 0, 1,
	}
}

// Cross returns a x b.
func Cross(a, b Vec3) Vec3 {
	return Vec3{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

// Dot returns a . b.
func Dot(a, b Vec3) float32 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func normalizeOrUnit(v Vec3) Vec3 {
	l := math32.Sqrt(Dot(v, v))
	if l == 0 {
		l = 1
	}
	return Vec3{v[0] / l, v[1] / l, v[2] / l}
}

// WrapAngle maps an angle in radians into the half-open interval (-Pi, Pi].
//
// Parameters:
//   - a: angle in radians
//
// Returns:
//   - float32: the equivalent angle in (-Pi, Pi]
func WrapAngle(a float32) float32 {
	const twoPi = 2 * math.Pi
	w := math32.Mod(a+math.Pi, twoPi)
	if w < 0 {
		w += twoPi
	}
	w -= math.Pi
	if w <= -math.Pi {
		w += twoPi
	}
	return w
}

// DegToRad converts degrees to radians.
func DegToRad(degrees float32) float32 {
	return degrees * math.Pi / 180
}
