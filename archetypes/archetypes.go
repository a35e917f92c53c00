package archetypes

import (
	"github.com/automoto/gaitkit/components"
	"github.com/automoto/gaitkit/tags"
	"github.com/yohamta/donburi"
)

var (
	Avatar = newArchetype(
		tags.Avatar,
		components.Frame,
		components.Kinematics,
		components.Host,
		components.Motion,
		components.Locomotion,
		components.Avatar,
		components.Motor,
		components.TransitionChain,
		components.LiveActions,
		components.Awareness,
		components.Lean,
		components.Pose,
	)
	Terrain = newArchetype(
		tags.Terrain,
		components.Object,
	)
	Space = newArchetype(
		components.Space,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

func (a *archetype) Spawn(w donburi.World, cs ...donburi.IComponentType) *donburi.Entry {
	return w.Entry(w.Create(append(a.components, cs...)...))
}
