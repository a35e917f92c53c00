package components

import (
	"github.com/automoto/gaitkit/assets/animations"
	"github.com/automoto/gaitkit/config"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
)

// TransitionCapacity bounds the chain: the newest node plus four nested
// ones. The configured recursion limit is clamped to fit.
const TransitionCapacity = 5

// Transition blends from the animation that was playing to the one that
// replaced it. Time-based fields are seconds; wheel fields are degrees.
type Transition struct {
	Serial int

	Last, Next                   config.AnimationSlot
	LastAnimation, NextAnimation *animations.Animation
	Direction, LastDirection     config.Direction

	LastWheelPos  float64
	LastIncrement float64
	LastElapsed   float64

	Elapsed          float64
	Duration         float64
	Progress         float64
	FilteredProgress float64
	EasingLower      mgl64.Vec2
	EasingUpper      mgl64.Vec2

	Actions ActionList

	// Continued motion carries the last walk cycle to its stop angle.
	ContinuedMotion   bool
	StopAngle         float64
	DegreesToTurn     float64
	DegreesRemaining  float64
	ContinuedDuration float64
}

// CancelContinuedMotion drops any pending walk run-out.
func (t *Transition) CancelContinuedMotion() {
	t.DegreesToTurn = 0
	t.DegreesRemaining = 0
}

// Die releases the transition. A running continued-motion motor is braked.
func (t *Transition) Die(motor *MotorData) {
	if motor != nil && motor.Motoring {
		motor.ApplyBrakes()
	}
	t.Actions = nil
}

// TransitionChainData is the stack of nested transitions, oldest first.
// The newest node blends from the node below it.
type TransitionChainData struct {
	nodes   [TransitionCapacity]Transition
	count   int
	Created int
}

var TransitionChain = donburi.NewComponentType[TransitionChainData]()

// Limit is the deepest nesting the chain keeps.
func Limit() int {
	limit := config.Locomotion.MaxTransitionRecursion
	if limit < 0 {
		limit = 0
	}
	if limit > TransitionCapacity-1 {
		limit = TransitionCapacity - 1
	}
	return limit
}

func (c *TransitionChainData) Live() bool {
	return c.count > 0
}

func (c *TransitionChainData) Len() int {
	return c.count
}

// Depth is the recursion depth of the oldest node, -1 when empty.
func (c *TransitionChainData) Depth() int {
	return c.count - 1
}

// Node returns the i-th node, oldest first.
func (c *TransitionChainData) Node(i int) *Transition {
	if i < 0 || i >= c.count {
		return nil
	}
	return &c.nodes[i]
}

// Current returns the newest node, or nil.
func (c *TransitionChainData) Current() *Transition {
	return c.Node(c.count - 1)
}

// Push nests t on top of the chain. The node it replaces loses its pending
// continued motion; when the chain is full the oldest node is retired.
func (c *TransitionChainData) Push(t Transition, motor *MotorData) *Transition {
	if cur := c.Current(); cur != nil {
		cur.CancelContinuedMotion()
	}
	for c.count > Limit() {
		c.RetireOldest(1, motor)
	}
	c.Created++
	t.Serial = c.Created
	c.nodes[c.count] = t
	c.count++
	return &c.nodes[c.count-1]
}

// RetireOldest kills the n oldest nodes and shifts the rest down.
func (c *TransitionChainData) RetireOldest(n int, motor *MotorData) {
	if n > c.count {
		n = c.count
	}
	if n <= 0 {
		return
	}
	for i := 0; i < n; i++ {
		c.nodes[i].Die(motor)
	}
	copy(c.nodes[:], c.nodes[n:c.count])
	for i := c.count - n; i < c.count; i++ {
		c.nodes[i] = Transition{}
	}
	c.count -= n
}

// Clear kills every node.
func (c *TransitionChainData) Clear(motor *MotorData) {
	c.RetireOldest(c.count, motor)
}
