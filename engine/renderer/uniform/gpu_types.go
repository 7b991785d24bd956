package uniform

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUGlobalUniformSource is the canonical WGSL definition of the Globals struct.
// Matches GPUGlobalUniform layout exactly (80 bytes).
//
//go:embed assets/globals.wgsl
var GPUGlobalUniformSource string

// GPUGlobalUniform is the per-frame data shared by every lit draw, bound at group 0.
// Size: 80 bytes (20 floats).
type GPUGlobalUniform struct {
	ViewProj [16]float32 // offset  0: projection · view, column-major (64 bytes)
	LightDir [4]float32  // offset 64: direction toward the light, w unused (16 bytes)
}

// Size returns the size of the GPUGlobalUniform struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUGlobalUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUGlobalUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 80-byte buffer ready for GPU upload.
func (g *GPUGlobalUniform) Marshal() []byte {
	buf := make([]byte, 80)
	putFloats(buf[0:64], g.ViewProj[:])
	putFloats(buf[64:80], g.LightDir[:])
	return buf
}

// GPUObjectUniformSource is the canonical WGSL definition of the Object struct.
// Matches GPUObjectUniform layout exactly (96 bytes).
//
//go:embed assets/object.wgsl
var GPUObjectUniformSource string

// GPUObjectUniform is the per-drawable data bound at group 1.
// A Color alpha of 0 selects the procedural ground pattern in the lit fragment stage.
// Size: 96 bytes (24 floats).
type GPUObjectUniform struct {
	Model   [16]float32 // offset  0: model matrix, column-major (64 bytes)
	Color   [4]float32  // offset 64: RGBA tint; alpha 0 = procedural (16 bytes)
	UVScale [2]float32  // offset 80: procedural pattern scale (8 bytes)
	Pad     [2]float32  // offset 88: padding to the 16-byte struct alignment (8 bytes)
}

// Size returns the size of the GPUObjectUniform struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUObjectUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUObjectUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 96-byte buffer ready for GPU upload.
func (g *GPUObjectUniform) Marshal() []byte {
	buf := make([]byte, 96)
	putFloats(buf[0:64], g.Model[:])
	putFloats(buf[64:80], g.Color[:])
	putFloats(buf[80:88], g.UVScale[:])
	putFloats(buf[88:96], g.Pad[:])
	return buf
}

func putFloats(dst []byte, src []float32) {
	for i, f := range src {
		binary.LittleEndian.PutUint32(dst[i*4:], math.Float32bits(f))
	}
}
