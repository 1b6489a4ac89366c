package geom

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"

	"github.com/matzehuels/prism/pkg/errors"
)

// MarshalScene serializes a Scene to pretty-printed JSON bytes.
func MarshalScene(s Scene) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// UnmarshalScene deserializes JSON bytes into a Scene.
// Validates that the chart kind is known and that mesh buffers are consistent.
func UnmarshalScene(data []byte) (Scene, error) {
	var s Scene
	if err := json.Unmarshal(data, &s); err != nil {
		return Scene{}, errors.Wrap(errors.ErrCodeInvalidScene, err, "unmarshal scene")
	}
	if err := s.Validate(); err != nil {
		return Scene{}, err
	}
	return s, nil
}

// Validate checks the structural invariants a renderer relies on.
func (s *Scene) Validate() error {
	if !slices.Contains(Charts, s.Chart) {
		return errors.New(errors.ErrCodeInvalidScene, "unknown chart kind %q", s.Chart)
	}
	if s.IsSurface() {
		if s.Surface == nil {
			return errors.New(errors.ErrCodeInvalidScene, "surface scene must contain a mesh")
		}
		return s.Surface.Validate()
	}
	return nil
}

// Validate checks buffer lengths and index bounds.
func (m *Mesh) Validate() error {
	if len(m.Positions)%3 != 0 {
		return errors.New(errors.ErrCodeInvalidScene, "mesh positions length %d is not a multiple of 3", len(m.Positions))
	}
	if len(m.Normals) != len(m.Positions) || len(m.Colors) != len(m.Positions) {
		return errors.New(errors.ErrCodeInvalidScene, "mesh buffers disagree: %d positions, %d normals, %d colors",
			len(m.Positions), len(m.Normals), len(m.Colors))
	}
	if len(m.Indices)%3 != 0 {
		return errors.New(errors.ErrCodeInvalidScene, "mesh indices length %d is not a multiple of 3", len(m.Indices))
	}
	n := uint32(m.VertexCount())
	for _, i := range m.Indices {
		if i >= n {
			return errors.New(errors.ErrCodeInvalidScene, "mesh index %d out of range (%d vertices)", i, n)
		}
	}
	return nil
}

// WriteSceneFile writes a Scene to a JSON file.
func WriteSceneFile(s Scene, path string) error {
	data, err := MarshalScene(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadSceneFile reads a Scene from a JSON file.
func ReadSceneFile(path string) (Scene, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Scene{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", path)
	}
	if err != nil {
		return Scene{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalScene(data)
}
