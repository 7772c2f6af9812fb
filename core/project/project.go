// Package project holds the ordered scene list of a VFX project and prices it.
package project

import (
	"fmt"

	"github.com/google/uuid"

	"vfx-cost/core/types"
	"vfx-cost/internal/errors"
)

// Project is the state container for one project: an ordered scene list and
// the scene currently being edited. It always holds at least one scene.
// A Project is not safe for concurrent use.
type Project struct {
	scenes   []types.Scene
	activeID string
	newID    func() string
}

// New creates a project with a single default scene
func New() *Project {
	p := &Project{newID: uuid.NewString}
	s := p.blankScene()
	p.scenes = []types.Scene{s}
	p.activeID = s.ID
	return p
}

// FromScenes creates a project from imported scenes. The first scene is active.
func FromScenes(scenes []types.Scene) (*Project, error) {
	p := &Project{newID: uuid.NewString}
	if err := p.Replace(scenes); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Project) blankScene() types.Scene {
	return types.Scene{
		ID:   p.newID(),
		Name: fmt.Sprintf("Scene %d", len(p.scenes)+1),
		Data: types.DefaultShot(),
	}
}

// Scenes returns a copy of the scene list in order
func (p *Project) Scenes() []types.Scene {
	out := make([]types.Scene, len(p.scenes))
	copy(out, p.scenes)
	return out
}

// Len returns the number of scenes
func (p *Project) Len() int {
	return len(p.scenes)
}

// Active returns the scene being edited
func (p *Project) Active() types.Scene {
	if i := p.index(p.activeID); i >= 0 {
		return p.scenes[i]
	}
	return p.scenes[0]
}

// Scene returns the scene with the given id
func (p *Project) Scene(id string) (types.Scene, error) {
	i := p.index(id)
	if i < 0 {
		return types.Scene{}, errors.NotFound("scene", id)
	}
	return p.scenes[i], nil
}

// AddScene appends a default scene, makes it active and returns it
func (p *Project) AddScene() types.Scene {
	s := p.blankScene()
	p.scenes = append(p.scenes, s)
	p.activeID = s.ID
	return s
}

// DeleteScene removes a scene. The last remaining scene cannot be deleted.
// Deleting the active scene activates its predecessor, or the new first scene.
func (p *Project) DeleteScene(id string) error {
	i := p.index(id)
	if i < 0 {
		return errors.NotFound("scene", id)
	}
	if len(p.scenes) == 1 {
		return errors.Input("a project must keep at least one scene")
	}

	p.scenes = append(p.scenes[:i], p.scenes[i+1:]...)
	if p.activeID == id {
		if i > 0 {
			i--
		}
		p.activeID = p.scenes[i].ID
	}
	return nil
}

// UpdateScene replaces a scene's configuration wholesale
func (p *Project) UpdateScene(id string, data types.ShotConfiguration) error {
	i := p.index(id)
	if i < 0 {
		return errors.NotFound("scene", id)
	}
	p.scenes[i].Data = data
	return nil
}

// RenameScene changes a scene's name and description
func (p *Project) RenameScene(id, name, description string) error {
	i := p.index(id)
	if i < 0 {
		return errors.NotFound("scene", id)
	}
	p.scenes[i].Name = name
	p.scenes[i].Description = description
	return nil
}

// SetActive switches the scene being edited
func (p *Project) SetActive(id string) error {
	if p.index(id) < 0 {
		return errors.NotFound("scene", id)
	}
	p.activeID = id
	return nil
}

// Replace swaps the whole scene list, as on import. The first scene becomes active.
func (p *Project) Replace(scenes []types.Scene) error {
	if len(scenes) == 0 {
		return errors.Input("a project must keep at least one scene")
	}
	seen := make(map[string]bool, len(scenes))
	for _, s := range scenes {
		if s.ID == "" {
			return errors.Input("scene id must not be empty")
		}
		if seen[s.ID] {
			return errors.Newf(errors.TypeInput, "duplicate scene id %q", s.ID)
		}
		seen[s.ID] = true
	}

	p.scenes = make([]types.Scene, len(scenes))
	copy(p.scenes, scenes)
	p.activeID = p.scenes[0].ID
	return nil
}

func (p *Project) index(id string) int {
	for i, s := range p.scenes {
		if s.ID == id {
			return i
		}
	}
	return -1
}
