package scene

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-meadow/common"
	"github.com/Carmen-Shannon/oxy-meadow/engine/game_object"
	"github.com/Carmen-Shannon/oxy-meadow/engine/geometry"
	"github.com/Carmen-Shannon/oxy-meadow/engine/renderer"
	"github.com/Carmen-Shannon/oxy-meadow/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-meadow/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-meadow/engine/renderer/uniform"
	"go.uber.org/zap"
)

// Scene owns the drawables of one outdoor level: the ground, static props and the hero.
// Drawables are returned in submission order: ground, props in insertion order, hero last.
// Without a depth buffer that order is what keeps the hero visible in front of the props.
// Thread-safe for concurrent access.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// Ground returns the ground drawable, or nil before SetGround.
	//
	// Returns:
	//   - game_object.GameObject: the ground
	Ground() game_object.GameObject

	// Hero returns the player drawable, or nil before SetHero.
	//
	// Returns:
	//   - game_object.GameObject: the hero
	Hero() game_object.GameObject

	// Props returns the static props in insertion order.
	//
	// Returns:
	//   - []game_object.GameObject: a copy of the prop list
	Props() []game_object.GameObject

	// Drawables returns every enabled drawable in submission order.
	//
	// Returns:
	//   - []game_object.GameObject: ground, props, hero
	Drawables() []game_object.GameObject

	// Count returns the number of drawables in the scene, enabled or not.
	//
	// Returns:
	//   - int: the drawable count
	Count() int

	// Get retrieves a drawable by ID. Returns nil if not found.
	//
	// Parameters:
	//   - id: the object's unique ID
	//
	// Returns:
	//   - game_object.GameObject: the object or nil
	Get(id uint64) game_object.GameObject

	// SetGround creates the ground drawable: a plane of the given half-size with the procedural pattern.
	//
	// Parameters:
	//   - halfSize: half the edge length of the ground plane
	//   - uvScale: procedural pattern scale
	//
	// Returns:
	//   - game_object.GameObject: the ground
	//   - error: an error if GPU resources cannot be created or a ground exists
	SetGround(halfSize float32, uvScale [2]float32) (game_object.GameObject, error)

	// AddProp appends a static box prop. Props with identical sizes share one mesh.
	//
	// Parameters:
	//   - prop: the prop description
	//
	// Returns:
	//   - game_object.GameObject: the prop
	//   - error: an error if GPU resources cannot be created
	AddProp(prop Prop) (game_object.GameObject, error)

	// SetHero creates the player drawable. It is drawn after every prop regardless of when it was added.
	//
	// Parameters:
	//   - size: the hero box extents
	//   - position: the initial position
	//   - color: the hero colour
	//
	// Returns:
	//   - game_object.GameObject: the hero
	//   - error: an error if GPU resources cannot be created or a hero exists
	SetHero(size, position common.Vec3, color [4]float32) (game_object.GameObject, error)

	// Release frees every mesh and uniform resource the scene created.
	Release()
}

// Prop describes a static box: its extents, its centre and its colour.
type Prop struct {
	Label    string
	Size     common.Vec3
	Position common.Vec3
	Color    [4]float32
}

type scene struct {
	mu     *sync.RWMutex
	name   string
	logger *zap.Logger

	renderer renderer.Renderer

	ground game_object.GameObject
	props  []game_object.GameObject
	hero   game_object.GameObject

	registry map[uint64]game_object.GameObject
	nextID   uint64

	// boxMeshes shares one uploaded mesh between boxes of identical extents.
	boxMeshes map[common.Vec3]bind_group_provider.BindGroupProvider
	meshes    []bind_group_provider.BindGroupProvider
}

var _ Scene = &scene{}

// NewScene creates an empty Scene that uploads its resources through r.
// The lit pipeline must already be registered on r.
//
// Parameters:
//   - r: the renderer that creates mesh and uniform resources
//   - options: functional options to configure the scene
//
// Returns:
//   - Scene: the new scene
func NewScene(r renderer.Renderer, options ...SceneBuilderOption) Scene {
	return newScene(r, options...)
}

func newScene(r renderer.Renderer, options ...SceneBuilderOption) *scene {
	s := &scene{
		mu:        &sync.RWMutex{},
		name:      "scene",
		renderer:  r,
		registry:  make(map[uint64]game_object.GameObject),
		nextID:    1,
		boxMeshes: make(map[common.Vec3]bind_group_provider.BindGroupProvider),
	}
	for _, opt := range options {
		opt(s)
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	return s
}

func (s *scene) Name() string {
	return s.name
}

func (s *scene) Ground() game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ground
}

func (s *scene) Hero() game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hero
}

func (s *scene) Props() []game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]game_object.GameObject(nil), s.props...)
}

func (s *scene) Drawables() []game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]game_object.GameObject, 0, len(s.props)+2)
	if s.ground != nil && s.ground.Enabled() {
		out = append(out, s.ground)
	}
	for _, p := range s.props {
		if p.Enabled() {
			out = append(out, p)
		}
	}
	if s.hero != nil && s.hero.Enabled() {
		out = append(out, s.hero)
	}
	return out
}

func (s *scene) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.registry)
}

func (s *scene) Get(id uint64) game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.registry[id]
}

func (s *scene) SetGround(halfSize float32, uvScale [2]float32) (game_object.GameObject, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ground != nil {
		return nil, fmt.Errorf("scene %q already has a ground", s.name)
	}
	mesh, err := s.upload("ground", geometry.Plane(2*halfSize))
	if err != nil {
		return nil, err
	}
	obj := game_object.NewGameObject(
		game_object.WithLabel("ground"),
		game_object.WithMesh(mesh),
		game_object.WithColor([4]float32{0, 0, 0, 0}),
		game_object.WithUVScale(uvScale),
	)
	if err := s.register(obj); err != nil {
		return nil, err
	}
	s.ground = obj
	return obj, nil
}

func (s *scene) AddProp(prop Prop) (game_object.GameObject, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	mesh, err := s.boxMesh(prop.Size)
	if err != nil {
		return nil, err
	}
	obj := game_object.NewGameObject(
		game_object.WithLabel(common.Coalesce(prop.Label, "prop")),
		game_object.WithMesh(mesh),
		game_object.WithPosition(prop.Position),
		game_object.WithColor(prop.Color),
	)
	if err := s.register(obj); err != nil {
		return nil, err
	}
	s.props = append(s.props, obj)
	return obj, nil
}

func (s *scene) SetHero(size, position common.Vec3, color [4]float32) (game_object.GameObject, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hero != nil {
		return nil, fmt.Errorf("scene %q already has a hero", s.name)
	}
	mesh, err := s.upload("hero", geometry.Box(size[0], size[1], size[2]))
	if err != nil {
		return nil, err
	}
	obj := game_object.NewGameObject(
		game_object.WithLabel("hero"),
		game_object.WithMesh(mesh),
		game_object.WithPosition(position),
		game_object.WithColor(color),
	)
	if err := s.register(obj); err != nil {
		return nil, err
	}
	s.hero = obj
	return obj, nil
}

func (s *scene) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, obj := range s.registry {
		if u := obj.Uniform(); u != nil {
			u.Release()
		}
		delete(s.registry, id)
	}
	for _, mesh := range s.meshes {
		mesh.Release()
	}
	s.meshes = nil
	clear(s.boxMeshes)
	s.ground, s.hero, s.props = nil, nil, nil
}

// boxMesh returns the shared mesh for a box of the given extents, uploading it on first use.
func (s *scene) boxMesh(size common.Vec3) (bind_group_provider.BindGroupProvider, error) {
	if mesh, ok := s.boxMeshes[size]; ok {
		return mesh, nil
	}
	label := fmt.Sprintf("box %gx%gx%g", size[0], size[1], size[2])
	mesh, err := s.upload(label, geometry.Box(size[0], size[1], size[2]))
	if err != nil {
		return nil, err
	}
	s.boxMeshes[size] = mesh
	return mesh, nil
}

func (s *scene) upload(label string, m geometry.MeshData) (bind_group_provider.BindGroupProvider, error) {
	mesh, err := geometry.Upload(s.renderer, label, m)
	if err != nil {
		return nil, err
	}
	s.meshes = append(s.meshes, mesh)
	s.logger.Debug("mesh uploaded",
		zap.String("mesh", label),
		zap.Int("vertices", len(m.Vertices)),
		zap.Int("indices", len(m.Indices)),
	)
	return mesh, nil
}

// register assigns the object an ID and its own group 1 uniform, then stages its first write.
func (s *scene) register(obj game_object.GameObject) error {
	obj.SetID(s.nextID)
	provider, err := uniform.NewProvider(s.renderer, fmt.Sprintf("%s #%d", obj.Label(), obj.ID()), pipeline.KeyLit, pipeline.GroupObject)
	if err != nil {
		return err
	}
	obj.SetUniform(provider)
	s.nextID++
	s.registry[obj.ID()] = obj

	if w, ok := obj.BufferWrite(); ok {
		s.renderer.WriteBuffers([]bind_group_provider.BufferWrite{w})
	}
	return nil
}
