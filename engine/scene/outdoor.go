package scene

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-meadow/common"
	"github.com/Carmen-Shannon/oxy-meadow/engine/renderer"
	"go.uber.org/zap"
)

const (
	// GroundHalfSize is half the edge length of the ground plane.
	GroundHalfSize = 300
)

var (
	// GroundUVScale is the procedural pattern scale of the ground.
	GroundUVScale = [2]float32{0.5, 0.5}

	// HeroSize is the extent of the hero box.
	HeroSize = common.Vec3{1, 2, 1}

	// HeroColor is the hero tint.
	HeroColor = [4]float32{0.85, 0.70, 0.25, 1}
)

var (
	trunkColor  = [4]float32{0.45, 0.28, 0.16, 1}
	canopyColor = [4]float32{0.10, 0.55, 0.22, 1}
	postColor   = [4]float32{0.55, 0.45, 0.35, 1}
)

// OutdoorProps returns the meadow's static props in draw order: a hut, a fence, two rocks and four trees.
func OutdoorProps() []Prop {
	props := []Prop{
		{Label: "hut base", Size: common.Vec3{3, 1.4, 3}, Position: common.Vec3{6, 0.7, -6}, Color: [4]float32{0.55, 0.40, 0.30, 1}},
		{Label: "hut roof", Size: common.Vec3{3.2, 0.8, 3.2}, Position: common.Vec3{6, 2.1, -6}, Color: [4]float32{0.45, 0.15, 0.10, 1}},
	}
	for i := 0; i < 6; i++ {
		props = append(props, Prop{
			Label:    fmt.Sprintf("fence post %d", i),
			Size:     common.Vec3{0.2, 1.2, 0.2},
			Position: common.Vec3{-8 + 1.6*float32(i), 0.6, 5},
			Color:    postColor,
		})
	}
	props = append(props,
		Prop{Label: "rock", Size: common.Vec3{1.2, 0.7, 0.9}, Position: common.Vec3{-4, 0.35, -2}, Color: [4]float32{0.50, 0.50, 0.55, 1}},
		Prop{Label: "rock", Size: common.Vec3{0.9, 0.5, 1.1}, Position: common.Vec3{-5, 0.25, -3.5}, Color: [4]float32{0.45, 0.45, 0.50, 1}},
	)
	for _, xz := range [][2]float32{{10, 4}, {12, -3}, {-10, -6}, {-12, 5}} {
		props = append(props,
			Prop{Label: "tree trunk", Size: common.Vec3{0.4, 1.6, 0.4}, Position: common.Vec3{xz[0], 0.8, xz[1]}, Color: trunkColor},
			Prop{Label: "tree canopy", Size: common.Vec3{1.6, 1.0, 1.6}, Position: common.Vec3{xz[0], 1.8, xz[1]}, Color: canopyColor},
		)
	}
	return props
}

// BuildOutdoor builds the meadow: the ground, every prop of OutdoorProps and the hero at heroPosition.
// The lit pipeline must already be registered on r.
//
// Parameters:
//   - r: the renderer that creates the resources
//   - heroPosition: the hero's start position
//   - options: functional options to configure the scene
//
// Returns:
//   - Scene: the built scene
//   - error: an error if any resource cannot be created
func BuildOutdoor(r renderer.Renderer, heroPosition common.Vec3, options ...SceneBuilderOption) (Scene, error) {
	s := newScene(r, append([]SceneBuilderOption{WithName("meadow")}, options...)...)

	if _, err := s.SetGround(GroundHalfSize, GroundUVScale); err != nil {
		s.Release()
		return nil, fmt.Errorf("build ground: %w", err)
	}
	for _, prop := range OutdoorProps() {
		if _, err := s.AddProp(prop); err != nil {
			s.Release()
			return nil, fmt.Errorf("build %s: %w", prop.Label, err)
		}
	}
	if _, err := s.SetHero(HeroSize, heroPosition, HeroColor); err != nil {
		s.Release()
		return nil, fmt.Errorf("build hero: %w", err)
	}

	s.logger.Info("scene built",
		zap.String("scene", s.Name()),
		zap.Int("drawables", s.Count()),
	)
	return s, nil
}
