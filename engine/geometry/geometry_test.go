package geometry

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-meadow/common"
	"github.com/Carmen-Shannon/oxy-meadow/engine/renderer/bind_group_provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUploader struct {
	vertexData []byte
	indexData  []byte
	indexCount int
	err        error
}

func (f *fakeUploader) InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error {
	if f.err != nil {
		return f.err
	}
	f.vertexData, f.indexData, f.indexCount = vertexData, indexData, indexCount
	provider.SetIndexCount(indexCount)
	return nil
}

func sub(a, b [3]float32) common.Vec3 {
	return common.Vec3{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

// assertOutwardWinding checks every triangle is counter-clockwise seen from the side its normal faces.
func assertOutwardWinding(t *testing.T, m MeshData) {
	t.Helper()
	for i := 0; i < len(m.Indices); i += 3 {
		a, b, c := m.Vertices[m.Indices[i]], m.Vertices[m.Indices[i+1]], m.Vertices[m.Indices[i+2]]
		n := common.Cross(sub(b.Position, a.Position), sub(c.Position, a.Position))
		assert.Greaterf(t, common.Dot(n, a.Normal), float32(0), "triangle %d", i/3)
	}
}

func TestGPUVertexLayout(t *testing.T) {
	v := GPUVertex{Position: [3]float32{1, 2, 3}, Normal: [3]float32{0, 1, 0}}
	assert.Equal(t, VertexStride, v.Size())

	buf := v.Marshal()
	require.Len(t, buf, VertexStride)
	assert.Equal(t, float32(3), math.Float32frombits(binary.LittleEndian.Uint32(buf[8:12])))
	assert.Equal(t, float32(1), math.Float32frombits(binary.LittleEndian.Uint32(buf[16:20])))
	assert.Contains(t, GPUVertexSource, "struct VertexInput")
}

func TestPlane(t *testing.T) {
	m := Plane(300)
	require.Len(t, m.Vertices, 4)
	require.Len(t, m.Indices, 6)

	for _, v := range m.Vertices {
		assert.Equal(t, [3]float32{0, 1, 0}, v.Normal)
		assert.Equal(t, float32(0), v.Position[1])
		assert.Equal(t, float32(150), float32(math.Abs(float64(v.Position[0]))))
		assert.Equal(t, float32(150), float32(math.Abs(float64(v.Position[2]))))
	}
	assertOutwardWinding(t, m)
}

func TestBox(t *testing.T) {
	m := Box(1, 2, 1)
	require.Len(t, m.Vertices, 24)
	require.Len(t, m.Indices, 36)

	for face := 0; face < 6; face++ {
		normal := m.Vertices[face*4].Normal
		for _, v := range m.Vertices[face*4 : face*4+4] {
			assert.Equal(t, normal, v.Normal)
			// Every corner of a face lies on that face's plane.
			assert.InDelta(t, common.Dot(normal, common.Vec3{0.5, 1, 0.5}), common.Dot(normal, v.Position), 1e-6)
		}
	}
	for _, idx := range m.Indices {
		assert.Less(t, idx, uint16(24))
	}
	assertOutwardWinding(t, m)
}

func TestVertexBytes(t *testing.T) {
	m := Box(2, 2, 2)
	buf := m.VertexBytes()
	require.Len(t, buf, 24*VertexStride)

	last := m.Vertices[23]
	assert.Equal(t, last.Marshal(), buf[23*VertexStride:])
}

func TestIndexBytesArePadded(t *testing.T) {
	m := MeshData{Indices: []uint16{0, 1, 2}}
	buf := m.IndexBytes()
	require.Len(t, buf, 8)
	assert.Equal(t, uint16(2), binary.LittleEndian.Uint16(buf[4:6]))
	assert.Equal(t, []byte{0, 0}, buf[6:])

	assert.Len(t, Box(1, 1, 1).IndexBytes(), 72)
}

func TestUpload(t *testing.T) {
	u := &fakeUploader{}
	provider, err := Upload(u, "hero", Box(1, 2, 1))
	require.NoError(t, err)
	assert.Equal(t, "hero", provider.Label())
	assert.Equal(t, 36, provider.IndexCount())
	assert.Len(t, u.vertexData, 24*VertexStride)
	assert.Equal(t, 36, u.indexCount)

	_, err = Upload(&fakeUploader{err: errors.New("device lost")}, "ground", Plane(10))
	assert.ErrorContains(t, err, "ground")
}
