package geometry

import (
	"encoding/binary"
	"fmt"

	"github.com/Carmen-Shannon/oxy-meadow/engine/renderer/bind_group_provider"
)

// VertexStride is the byte distance between consecutive vertices in a vertex buffer.
const VertexStride = 24

// MeshData is CPU-side primitive geometry: interleaved vertices and 16-bit triangle-list indices.
// Every triangle is counter-clockwise when seen from the side its normal points to.
type MeshData struct {
	Vertices []GPUVertex
	Indices  []uint16
}

// MeshUploader creates GPU vertex and index buffers for a mesh. Renderer satisfies it.
type MeshUploader interface {
	// InitMeshBuffers uploads raw vertex and index bytes and stores the buffers on provider.
	//
	// Parameters:
	//   - provider: the BindGroupProvider that will own the buffers
	//   - vertexData: raw vertex bytes
	//   - indexData: raw index bytes
	//   - indexCount: the number of indices
	//
	// Returns:
	//   - error: an error if buffer creation fails
	InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error
}

// Plane builds a flat ground quad on y = 0 spanning size units along X and Z, facing +Y.
//
// Parameters:
//   - size: the full edge length of the quad
//
// Returns:
//   - MeshData: 4 vertices and 6 indices
func Plane(size float32) MeshData {
	s := size / 2
	up := [3]float32{0, 1, 0}
	return MeshData{
		Vertices: []GPUVertex{
			{Position: [3]float32{-s, 0, -s}, Normal: up},
			{Position: [3]float32{s, 0, -s}, Normal: up},
			{Position: [3]float32{s, 0, s}, Normal: up},
			{Position: [3]float32{-s, 0, s}, Normal: up},
		},
		Indices: []uint16{0, 2, 1, 0, 3, 2},
	}
}

// Box builds an axis-aligned box centered on the origin with one independently wound quad per face,
// so each face carries its exact flat normal.
//
// Parameters:
//   - w, h, d: extents along X, Y and Z
//
// Returns:
//   - MeshData: 24 vertices and 36 indices
func Box(w, h, d float32) MeshData {
	x, y, z := w/2, h/2, d/2

	faces := [6]struct {
		normal  [3]float32
		corners [4][3]float32
	}{
		{[3]float32{1, 0, 0}, [4][3]float32{{x, -y, -z}, {x, y, -z}, {x, y, z}, {x, -y, z}}},
		{[3]float32{-1, 0, 0}, [4][3]float32{{-x, -y, z}, {-x, y, z}, {-x, y, -z}, {-x, -y, -z}}},
		{[3]float32{0, 1, 0}, [4][3]float32{{-x, y, z}, {x, y, z}, {x, y, -z}, {-x, y, -z}}},
		{[3]float32{0, -1, 0}, [4][3]float32{{-x, -y, -z}, {x, -y, -z}, {x, -y, z}, {-x, -y, z}}},
		{[3]float32{0, 0, 1}, [4][3]float32{{-x, -y, z}, {x, -y, z}, {x, y, z}, {-x, y, z}}},
		{[3]float32{0, 0, -1}, [4][3]float32{{x, -y, -z}, {-x, -y, -z}, {-x, y, -z}, {x, y, -z}}},
	}

	m := MeshData{
		Vertices: make([]GPUVertex, 0, 24),
		Indices:  make([]uint16, 0, 36),
	}
	for _, f := range faces {
		base := uint16(len(m.Vertices))
		for _, c := range f.corners {
			m.Vertices = append(m.Vertices, GPUVertex{Position: c, Normal: f.normal})
		}
		m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return m
}

// VertexBytes packs the vertices into a little-endian buffer with VertexStride bytes per vertex.
//
// Returns:
//   - []byte: the packed vertex data
func (m MeshData) VertexBytes() []byte {
	buf := make([]byte, len(m.Vertices)*VertexStride)
	for i := range m.Vertices {
		m.Vertices[i].marshalInto(buf[i*VertexStride:])
	}
	return buf
}

// IndexBytes packs the indices as little-endian uint16 values, zero-padded to a multiple of 4 bytes
// as required for buffer writes.
//
// Returns:
//   - []byte: the packed index data
func (m MeshData) IndexBytes() []byte {
	size := len(m.Indices) * 2
	buf := make([]byte, (size+3)&^3)
	for i, idx := range m.Indices {
		binary.LittleEndian.PutUint16(buf[i*2:], idx)
	}
	return buf
}

// Upload creates the GPU buffers for m in a single write and returns the provider holding them.
// The mesh is immutable afterwards.
//
// Parameters:
//   - u: the MeshUploader that creates the buffers
//   - label: a debug label for the buffers
//   - m: the mesh to upload
//
// Returns:
//   - bind_group_provider.BindGroupProvider: the provider owning the vertex and index buffers
//   - error: an error if the upload fails
func Upload(u MeshUploader, label string, m MeshData) (bind_group_provider.BindGroupProvider, error) {
	provider := bind_group_provider.NewBindGroupProvider(label)
	if err := u.InitMeshBuffers(provider, m.VertexBytes(), m.IndexBytes(), len(m.Indices)); err != nil {
		return nil, fmt.Errorf("upload mesh %q: %w", label, err)
	}
	return provider, nil
}
