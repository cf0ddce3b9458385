package assets

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/sceneview/internal/engine/animation"
	"github.com/Faultbox/sceneview/internal/scene/geometry"
)

// Model is an animated character described by a manifest. The mesh itself
// is drawn as a box of Size.
type Model struct {
	Name  string
	Scale float32
	// Size is the unscaled extent of the model, centered on its origin.
	Size  [3]float32
	Clips []animation.Clip

	IdleClip  string
	WalkClip  string
	ReactClip string
}

type manifest struct {
	Name  string     `yaml:"name"`
	Scale float32    `yaml:"scale"`
	Size  []float32  `yaml:"size"`
	Clips []clipSpec `yaml:"clips"`
	Idle  string     `yaml:"idle"`
	Walk  string     `yaml:"walk"`
	React string     `yaml:"react"`
}

type clipSpec struct {
	Name     string  `yaml:"name"`
	Duration float32 `yaml:"duration"`
}

// ParseModel decodes a YAML manifest.
func ParseModel(data []byte) (*Model, error) {
	var mf manifest
	if err := yaml.Unmarshal(data, &mf); err != nil {
		return nil, fmt.Errorf("%w: parsing manifest: %w", ErrAssetLoad, err)
	}

	if mf.Name == "" {
		return nil, fmt.Errorf("%w: manifest has no name", ErrAssetLoad)
	}
	if len(mf.Size) != 3 {
		return nil, fmt.Errorf("%w: model %s: size needs 3 values, got %d", ErrAssetLoad, mf.Name, len(mf.Size))
	}
	for _, v := range mf.Size {
		if v <= 0 {
			return nil, fmt.Errorf("%w: model %s: size must be positive", ErrAssetLoad, mf.Name)
		}
	}
	if mf.Scale == 0 {
		mf.Scale = 1
	}

	m := &Model{
		Name:      mf.Name,
		Scale:     mf.Scale,
		Size:      [3]float32{mf.Size[0], mf.Size[1], mf.Size[2]},
		IdleClip:  mf.Idle,
		WalkClip:  mf.Walk,
		ReactClip: mf.React,
	}
	seen := make(map[string]bool, len(mf.Clips))
	for _, c := range mf.Clips {
		if c.Name == "" || c.Duration <= 0 {
			return nil, fmt.Errorf("%w: model %s: invalid clip %q", ErrAssetLoad, mf.Name, c.Name)
		}
		if seen[c.Name] {
			return nil, fmt.Errorf("%w: model %s: duplicate clip %q", ErrAssetLoad, mf.Name, c.Name)
		}
		seen[c.Name] = true
		m.Clips = append(m.Clips, animation.Clip{Name: c.Name, Duration: c.Duration})
	}
	for _, ref := range []string{m.IdleClip, m.WalkClip, m.ReactClip} {
		if ref != "" && !seen[ref] {
			return nil, fmt.Errorf("%w: model %s: clip %q is not defined", ErrAssetLoad, mf.Name, ref)
		}
	}
	return m, nil
}

// Spec returns the geometry drawn for the model.
func (m *Model) Spec() geometry.Spec {
	return geometry.Spec{Kind: geometry.KindBox, A: m.Size[0], B: m.Size[1], C: m.Size[2]}
}

// DefaultModel is the built-in walker used when no manifest is given.
func DefaultModel() *Model {
	return &Model{
		Name:  "walker",
		Scale: 1,
		Size:  [3]float32{1, 2, 1},
		Clips: []animation.Clip{
			{Name: "idle", Duration: 2},
			{Name: "walk", Duration: 1},
			{Name: "react", Duration: 1.2},
		},
		IdleClip:  "idle",
		WalkClip:  "walk",
		ReactClip: "react",
	}
}
