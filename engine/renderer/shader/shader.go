package shader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/cogentcore/webgpu/wgpu"
)

// shader is the implementation of the Shader interface.
type shader struct {
	key                        string
	source                     string
	vertexEntryPoint           string
	fragmentEntryPoint         string
	vertexLayouts              []wgpu.VertexBufferLayout
	bindGroupLayoutDescriptors map[int]wgpu.BindGroupLayoutDescriptor
	uniforms                   []uniformBlock
	module                     *wgpu.ShaderModuleDescriptor
}

// Shader is a loaded and reflected WGSL program holding both a @vertex and a @fragment entry point.
// Reflection recovers the vertex buffer layouts and the uniform bind group layouts a pipeline needs,
// so the Go side never restates what the WGSL already declares.
type Shader interface {
	// Key returns the unique identifier of this shader.
	//
	// Returns:
	//   - string: the shader key
	Key() string

	// Source returns the WGSL source code.
	//
	// Returns:
	//   - string: the WGSL source
	Source() string

	// VertexEntryPoint returns the name of the @vertex function.
	//
	// Returns:
	//   - string: the vertex entry point name
	VertexEntryPoint() string

	// FragmentEntryPoint returns the name of the @fragment function.
	//
	// Returns:
	//   - string: the fragment entry point name
	FragmentEntryPoint() string

	// VertexLayouts returns one vertex buffer layout per vertex input struct, indexed by buffer slot.
	// Programs that generate their vertices from the vertex index return an empty slice.
	//
	// Returns:
	//   - []wgpu.VertexBufferLayout: the vertex buffer layouts
	VertexLayouts() []wgpu.VertexBufferLayout

	// BindGroupLayoutDescriptor returns the reflected layout of one bind group.
	//
	// Parameters:
	//   - group: the bind group index
	//
	// Returns:
	//   - wgpu.BindGroupLayoutDescriptor: the descriptor, or an empty descriptor if the group is not declared
	BindGroupLayoutDescriptor(group int) wgpu.BindGroupLayoutDescriptor

	// BindGroupLayoutDescriptors returns every reflected bind group layout keyed by group index.
	//
	// Returns:
	//   - map[int]wgpu.BindGroupLayoutDescriptor: the descriptors
	BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor

	// BindGroupVarName returns the WGSL variable bound at group/binding, or an empty string.
	//
	// Parameters:
	//   - group: the bind group index
	//   - binding: the binding index
	//
	// Returns:
	//   - string: the variable name
	BindGroupVarName(group, binding int) string

	// UniformSize returns the byte size of the uniform block bound at group/binding, or 0.
	//
	// Parameters:
	//   - group: the bind group index
	//   - binding: the binding index
	//
	// Returns:
	//   - uint64: the block size in bytes
	UniformSize(group, binding int) uint64

	// Module returns the shader module descriptor built from the source.
	//
	// Returns:
	//   - *wgpu.ShaderModuleDescriptor: the module descriptor
	Module() *wgpu.ShaderModuleDescriptor
}

var _ Shader = &shader{}

// NewShader reads a WGSL file from disk and reflects it.
//
// Parameters:
//   - key: a unique identifier for the shader
//   - path: the file path of the WGSL source
//
// Returns:
//   - Shader: the reflected shader
//   - error: an error if the file cannot be read or the source is not a complete render program
func NewShader(key, path string) (Shader, error) {
	if path == "" {
		return nil, fmt.Errorf("shader %s: no source path", key)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("shader %s: %w", key, err)
	}
	return NewShaderFromSource(key, string(data))
}

// NewShaderFromFS reads a WGSL file from fsys and reflects it.
//
// Parameters:
//   - key: a unique identifier for the shader
//   - fsys: the filesystem holding the source
//   - name: the path of the source within fsys
//
// Returns:
//   - Shader: the reflected shader
//   - error: an error if the file cannot be read or the source is not a complete render program
func NewShaderFromFS(key string, fsys fs.FS, name string) (Shader, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("shader %s: %w", key, err)
	}
	return NewShaderFromSource(key, string(data))
}

// NewShaderFromSource reflects WGSL source that is already in memory.
//
// Parameters:
//   - key: a unique identifier for the shader
//   - source: the WGSL source
//
// Returns:
//   - Shader: the reflected shader
//   - error: an error if an entry point is missing or a binding cannot be reflected
func NewShaderFromSource(key, source string) (Shader, error) {
	s := &shader{key: key, source: source}
	if err := s.reflect(); err != nil {
		return nil, fmt.Errorf("shader %s: %w", key, err)
	}
	return s, nil
}

func (s *shader) Key() string {
	return s.key
}

func (s *shader) Source() string {
	return s.source
}

func (s *shader) VertexEntryPoint() string {
	return s.vertexEntryPoint
}

func (s *shader) FragmentEntryPoint() string {
	return s.fragmentEntryPoint
}

func (s *shader) VertexLayouts() []wgpu.VertexBufferLayout {
	return s.vertexLayouts
}

func (s *shader) BindGroupLayoutDescriptor(group int) wgpu.BindGroupLayoutDescriptor {
	return s.bindGroupLayoutDescriptors[group]
}

func (s *shader) BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor {
	return s.bindGroupLayoutDescriptors
}

func (s *shader) BindGroupVarName(group, binding int) string {
	for _, u := range s.uniforms {
		if u.group == group && u.binding == binding {
			return u.name
		}
	}
	return ""
}

func (s *shader) UniformSize(group, binding int) uint64 {
	for _, u := range s.uniforms {
		if u.group == group && u.binding == binding {
			return u.size
		}
	}
	return 0
}

func (s *shader) Module() *wgpu.ShaderModuleDescriptor {
	return s.module
}

// reflect extracts entry points, vertex layouts and uniform layouts from the source.
func (s *shader) reflect() error {
	cleaned := stripComments(s.source)

	s.vertexEntryPoint = parseEntryPoint(cleaned, vertexEntryRegex)
	s.fragmentEntryPoint = parseEntryPoint(cleaned, fragmentEntryRegex)
	if s.vertexEntryPoint == "" || s.fragmentEntryPoint == "" {
		return errors.New("source must declare both a @vertex and a @fragment entry point")
	}

	structs := parseStructBlocks(cleaned)
	s.vertexLayouts = parseVertexLayouts(structs)

	var err error
	s.bindGroupLayoutDescriptors, s.uniforms, err = parseBindGroupLayouts(cleaned, structs)
	if err != nil {
		return err
	}

	s.module = &wgpu.ShaderModuleDescriptor{
		Label: s.key,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: s.source,
		},
	}
	return nil
}
