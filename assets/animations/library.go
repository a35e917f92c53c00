package animations

import (
	"fmt"

	"github.com/automoto/gaitkit/config"
	"github.com/go-gl/mathgl/mgl64"
)

// IK chain classifications of reference joints.
const (
	IKChainNotSet   = "not set"
	IKChainLeftArm  = "LeftArm"
	IKChainRightArm = "RightArm"
)

// ReferenceJoint is one joint of the reference skeleton, in evaluation order.
type ReferenceJoint struct {
	Name    string `yaml:"name"`
	IKChain string `yaml:"ik_chain"`
}

// Breakpoint is one (timing, strength) corner of an action envelope.
type Breakpoint struct {
	Timing   float64 `yaml:"timing"`
	Strength float64 `yaml:"strength"`
}

// ActionSpec describes a reach-pose action and its envelope.
type ActionSpec struct {
	Name      string
	Duration  float64
	Strength  float64
	ReachPose *Animation
	Delay     Breakpoint
	Attack    Breakpoint
	Decay     Breakpoint
	Sustain   Breakpoint
	Release   Breakpoint
	Smoothing int
}

// TransitionSpec holds the blend parameters for one (last, next) slot pair.
type TransitionSpec struct {
	Duration    float64
	EasingLower mgl64.Vec2
	EasingUpper mgl64.Vec2
	Actions     []string
}

// SlotPair keys the transition table.
type SlotPair struct {
	Last config.AnimationSlot
	Next config.AnimationSlot
}

// Profile binds every animation slot of an avatar to an animation.
type Profile struct {
	Name       string
	Animations map[config.AnimationSlot]*Animation
}

// Animation returns the animation bound to the slot.
func (p *Profile) Animation(slot config.AnimationSlot) *Animation {
	return p.Animations[slot]
}

// Library is the complete static asset data the animator runs on.
type Library struct {
	Joints      []ReferenceJoint
	Animations  map[string]*Animation
	ReachPoses  map[string]*Animation
	Actions     map[string]ActionSpec
	Transitions map[SlotPair]TransitionSpec
	Profiles    map[string]*Profile

	ikChains map[string]string
}

// Profile returns the named profile.
func (l *Library) Profile(name string) (*Profile, error) {
	p, ok := l.Profiles[name]
	if !ok {
		return nil, fmt.Errorf("animations: profile %q: %w", name, ErrNoProfile)
	}
	return p, nil
}

// Transition returns the blend parameters for the pair, falling back to the
// configured defaults for pairs the table does not list.
func (l *Library) Transition(last, next config.AnimationSlot) TransitionSpec {
	if spec, ok := l.Transitions[SlotPair{Last: last, Next: next}]; ok {
		return spec
	}
	return TransitionSpec{
		Duration:    config.Transition.Duration,
		EasingLower: config.Transition.EasingLower,
		EasingUpper: config.Transition.EasingUpper,
	}
}

// Action returns the named action.
func (l *Library) Action(name string) (ActionSpec, bool) {
	a, ok := l.Actions[name]
	return a, ok
}

// IKChain returns the IK chain classification of a reference joint, or
// IKChainNotSet when the joint or its classification is undeclared.
func (l *Library) IKChain(joint string) string {
	if chain, ok := l.ikChains[joint]; ok && chain != "" {
		return chain
	}
	return IKChainNotSet
}

// IsArm reports whether the joint belongs to either arm chain.
func (l *Library) IsArm(joint string) bool {
	chain := l.IKChain(joint)
	return chain == IKChainLeftArm || chain == IKChainRightArm
}

func (l *Library) indexJoints() {
	l.ikChains = make(map[string]string, len(l.Joints))
	for _, j := range l.Joints {
		l.ikChains[j.Name] = j.IKChain
	}
}
