// Package renderertest provides a Renderer that records commands instead of talking to a GPU.
package renderertest

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-meadow/engine/renderer"
	"github.com/Carmen-Shannon/oxy-meadow/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-meadow/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// Op names a recorded renderer call.
type Op string

const (
	OpWriteBuffers Op = "write_buffers"
	OpBeginFrame   Op = "begin_frame"
	OpSetPipeline  Op = "set_pipeline"
	OpSetBindGroup Op = "set_bind_group"
	OpDraw         Op = "draw"
	OpDrawMesh     Op = "draw_mesh"
	OpEndFrame     Op = "end_frame"
	OpPresent      Op = "present"
)

// Command is one recorded call. Only the fields meaningful for Op are set.
type Command struct {
	Op    Op
	Key   string // pipeline key for OpSetPipeline
	Group int    // bind group index for OpSetBindGroup
	Label string // provider label for OpSetBindGroup and OpDrawMesh
	Count uint32 // vertex count for OpDraw, index count for OpDrawMesh, write count for OpWriteBuffers
}

// Write is one recorded buffer write, identified by the label of the provider it targets.
type Write struct {
	Label   string
	Binding int
	Offset  uint64
	Data    []byte
}

// Binding records an InitBindGroup call.
type Binding struct {
	Label       string
	PipelineKey string
	Group       int
	Size        uint64
}

// Mesh records an InitMeshBuffers call.
type Mesh struct {
	Label       string
	VertexBytes int
	IndexBytes  int
	IndexCount  int
}

// Recorder is an in-memory Renderer. It validates pipeline keys and bind groups the same way the
// GPU renderer does, so scene setup fails for the same reasons.
type Recorder struct {
	mu sync.Mutex

	pipelines map[string]pipeline.Pipeline
	width     int
	height    int
	format    wgpu.TextureFormat

	commands []Command
	writes   []Write
	bindings []Binding
	meshes   []Mesh

	beginFrameErr error
	inFrame       bool
	released      bool
}

var _ renderer.Renderer = &Recorder{}

// NewRecorder creates a Recorder with a surface of the given size.
func NewRecorder(width, height int) *Recorder {
	return &Recorder{
		pipelines: make(map[string]pipeline.Pipeline),
		width:     width,
		height:    height,
		format:    wgpu.TextureFormatBGRA8Unorm,
	}
}

// FailBeginFrame makes every following BeginFrame return err until called again with nil.
func (r *Recorder) FailBeginFrame(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.beginFrameErr = err
}

// Commands returns a copy of the recorded frame commands.
func (r *Recorder) Commands() []Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Command(nil), r.commands...)
}

// Writes returns a copy of the recorded buffer writes.
func (r *Recorder) Writes() []Write {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Write(nil), r.writes...)
}

// Bindings returns a copy of the recorded bind group initialisations.
func (r *Recorder) Bindings() []Binding {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Binding(nil), r.bindings...)
}

// Meshes returns a copy of the recorded mesh uploads.
func (r *Recorder) Meshes() []Mesh {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Mesh(nil), r.meshes...)
}

// Reset forgets recorded commands and writes but keeps pipelines, bindings and meshes.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commands = nil
	r.writes = nil
}

// Released reports whether Release was called.
func (r *Recorder) Released() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.released
}

func (r *Recorder) Pipeline(key string) pipeline.Pipeline {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pipelines[key]
}

func (r *Recorder) RegisterPipelines(pipelines ...pipeline.Pipeline) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range pipelines {
		if p.Shader() == nil {
			return fmt.Errorf("register pipeline %q: pipeline has no shader", p.PipelineKey())
		}
		r.pipelines[p.PipelineKey()] = p
	}
	return nil
}

func (r *Recorder) Resize(width, height int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.width, r.height = max(width, 1), max(height, 1)
	return nil
}

func (r *Recorder) SurfaceSize() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width, r.height
}

func (r *Recorder) SurfaceFormat() wgpu.TextureFormat {
	return r.format
}

func (r *Recorder) InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	provider.SetIndexCount(indexCount)
	r.meshes = append(r.meshes, Mesh{
		Label:       provider.Label(),
		VertexBytes: len(vertexData),
		IndexBytes:  len(indexData),
		IndexCount:  indexCount,
	})
	return nil
}

func (r *Recorder) InitBindGroup(provider bind_group_provider.BindGroupProvider, pipelineKey string, group int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.pipelines[pipelineKey]
	if !ok {
		return fmt.Errorf("pipeline %q is not registered", pipelineKey)
	}
	desc := p.Shader().BindGroupLayoutDescriptor(group)
	if len(desc.Entries) == 0 {
		return fmt.Errorf("pipeline %q has no bind group %d", pipelineKey, group)
	}
	r.bindings = append(r.bindings, Binding{
		Label:       provider.Label(),
		PipelineKey: pipelineKey,
		Group:       group,
		Size:        desc.Entries[0].Buffer.MinBindingSize,
	})
	return nil
}

func (r *Recorder) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(writes) == 0 {
		return
	}
	for _, w := range writes {
		r.writes = append(r.writes, Write{
			Label:   w.Provider.Label(),
			Binding: w.Binding,
			Offset:  w.Offset,
			Data:    append([]byte(nil), w.Data...),
		})
	}
	r.commands = append(r.commands, Command{Op: OpWriteBuffers, Count: uint32(len(writes))})
}

func (r *Recorder) BeginFrame() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.beginFrameErr != nil {
		return r.beginFrameErr
	}
	if r.inFrame {
		return errors.New("previous frame surface not yet presented")
	}
	r.inFrame = true
	r.commands = append(r.commands, Command{Op: OpBeginFrame})
	return nil
}

func (r *Recorder) SetPipeline(key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.pipelines[key]; !ok {
		return fmt.Errorf("pipeline %q is not registered", key)
	}
	r.commands = append(r.commands, Command{Op: OpSetPipeline, Key: key})
	return nil
}

func (r *Recorder) SetBindGroup(group int, provider bind_group_provider.BindGroupProvider) {
	r.record(Command{Op: OpSetBindGroup, Group: group, Label: provider.Label()})
}

func (r *Recorder) Draw(vertexCount uint32) {
	r.record(Command{Op: OpDraw, Count: vertexCount})
}

func (r *Recorder) DrawMesh(mesh bind_group_provider.BindGroupProvider) {
	r.record(Command{Op: OpDrawMesh, Label: mesh.Label(), Count: uint32(mesh.IndexCount())})
}

func (r *Recorder) EndFrame() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.inFrame {
		return errors.New("no frame in progress")
	}
	r.commands = append(r.commands, Command{Op: OpEndFrame})
	return nil
}

func (r *Recorder) Present() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.inFrame {
		return
	}
	r.inFrame = false
	r.commands = append(r.commands, Command{Op: OpPresent})
}

func (r *Recorder) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.released = true
}

func (r *Recorder) record(c Command) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commands = append(r.commands, c)
}
