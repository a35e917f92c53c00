package components

import (
	"math"

	"github.com/automoto/gaitkit/assets/animations"
	"github.com/automoto/gaitkit/shared/gamemath"
	"github.com/yohamta/donburi"
)

// ActionEnvelope plays a reach pose under a delay/attack/decay/sustain/release
// envelope. Progress runs from 0 to 1 over Duration seconds.
type ActionEnvelope struct {
	Name      string
	Strength  float64
	Duration  float64
	Progress  float64
	ReachPose *animations.Animation

	Delay, Attack, Decay, Sustain, Release animations.Breakpoint

	// Level is the smoothed output sampled on the last Advance.
	Level float64

	smoothing *gamemath.MovingAverage
}

// NewActionEnvelope instantiates an action. Non-positive strength or
// duration fall back to the action's own values.
func NewActionEnvelope(spec animations.ActionSpec, strength, duration float64) *ActionEnvelope {
	if strength <= 0 {
		strength = spec.Strength
	}
	if duration <= 0 {
		duration = spec.Duration
	}
	return &ActionEnvelope{
		Name:      spec.Name,
		Strength:  strength,
		Duration:  duration,
		ReachPose: spec.ReachPose,
		Delay:     spec.Delay,
		Attack:    spec.Attack,
		Decay:     spec.Decay,
		Sustain:   spec.Sustain,
		Release:   spec.Release,
		smoothing: gamemath.NewMovingAverage(spec.Smoothing),
	}
}

// Envelope returns the unsmoothed output at the current progress.
func (a *ActionEnvelope) Envelope() float64 {
	p := a.Progress
	var from, to animations.Breakpoint
	switch {
	case p >= a.Sustain.Timing:
		from, to = a.Sustain, a.Release
	case p >= a.Decay.Timing:
		from, to = a.Decay, a.Sustain
	case p >= a.Attack.Timing:
		from, to = a.Attack, a.Decay
	case p >= a.Delay.Timing:
		from, to = a.Delay, a.Attack
	default:
		to = a.Delay
	}
	span := to.Timing - from.Timing
	if span <= 0 {
		return from.Strength * a.Strength
	}
	t := math.Min((p-from.Timing)/span, 1)
	return (from.Strength + (to.Strength-from.Strength)*t) * a.Strength
}

// CurrentStrength pushes the envelope through the smoothing filter. The
// filter is stateful, so call it once per frame.
func (a *ActionEnvelope) CurrentStrength() float64 {
	if a.smoothing == nil {
		return a.Envelope()
	}
	return a.smoothing.Process(a.Envelope())
}

// Advance samples the level for this frame, then moves progress on.
// It reports whether the action has finished.
func (a *ActionEnvelope) Advance(dt float64) bool {
	a.Level = a.CurrentStrength()
	if a.Duration <= 0 {
		a.Progress = 1
	} else {
		a.Progress += dt / a.Duration
	}
	return a.Done()
}

func (a *ActionEnvelope) Done() bool {
	return a.Progress >= 1
}

// ActionList holds actions in creation order.
type ActionList []*ActionEnvelope

// Advance steps every action and drops the finished ones.
func (l ActionList) Advance(dt float64) ActionList {
	live := l[:0]
	for _, a := range l {
		if !a.Advance(dt) {
			live = append(live, a)
		}
	}
	for i := len(live); i < len(l); i++ {
		l[i] = nil
	}
	return live
}

func (l ActionList) Has(name string) bool {
	for _, a := range l {
		if a.Name == name {
			return true
		}
	}
	return false
}

// LiveActionsData is the registry of actions not tied to a transition.
type LiveActionsData struct {
	Actions ActionList
}

var LiveActions = donburi.NewComponentType[LiveActionsData]()

func (r *LiveActionsData) Add(a *ActionEnvelope) {
	r.Actions = append(r.Actions, a)
}

// Update advances every live action and forgets those that completed.
func (r *LiveActionsData) Update(dt float64) {
	r.Actions = r.Actions.Advance(dt)
}

func (r *LiveActionsData) Count() int {
	return len(r.Actions)
}

func (r *LiveActionsData) Has(name string) bool {
	return r.Actions.Has(name)
}
