package systems

import (
	"math"

	"github.com/automoto/gaitkit/assets/animations"
	"github.com/automoto/gaitkit/components"
	"github.com/automoto/gaitkit/config"
	"github.com/automoto/gaitkit/internal/log"
	"github.com/automoto/gaitkit/shared/gamemath"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
	"go.uber.org/zap"
)

// setTransition switches the avatar to next, nesting a new transition over
// whatever was playing. It reports whether the slot changed.
func setTransition(ctx *LocomotionContext, next config.AnimationSlot, playActions bool) bool {
	avatar := ctx.Avatar
	last := avatar.Current
	if next == last {
		return false
	}
	if next == config.SlotWalk && !ctx.Chain.Live() {
		avatar.NextStep = config.StepRight
	}

	t := newTransition(ctx, last, next, playActions)
	node := ctx.Chain.Push(t, ctx.Motor)
	avatar.Current = next

	log.Debug("transition",
		zap.Int("serial", node.Serial),
		zap.Stringer("last", last),
		zap.Stringer("next", next),
		zap.Int("depth", ctx.Chain.Depth()),
		zap.Float64("duration", node.Duration))
	return true
}

// newTransition snapshots the playing animation's wheel and, when the motor
// is carrying a walk on, works out how far the walk has left to turn.
func newTransition(ctx *LocomotionContext, last, next config.AnimationSlot, playActions bool) components.Transition {
	avatar := ctx.Avatar
	m := ctx.Motion
	spec := avatar.Library.Transition(last, next)

	t := components.Transition{
		Last:          last,
		Next:          next,
		LastAnimation: avatar.Animation(last),
		NextAnimation: avatar.Animation(next),
		Direction:     m.Direction,
		LastDirection: m.LastDirection,
		LastWheelPos:  m.Wheel.Position,
		LastIncrement: m.Wheel.Average,
		LastElapsed:   m.Wheel.Elapsed,
		Duration:      spec.Duration,
		EasingLower:   spec.EasingLower,
		EasingUpper:   spec.EasingUpper,
	}
	m.Wheel.Elapsed = 0

	if playActions {
		for _, name := range spec.Actions {
			if action, ok := avatar.Library.Action(name); ok {
				t.Actions = append(t.Actions, components.NewActionEnvelope(action, 0, 0))
			}
		}
	}

	if last == config.SlotWalk && ctx.Motor.Motoring {
		scheduleContinuedMotion(&t, avatar.StrideLength(config.SlotWalk, t.LastDirection))
	}
	return t
}

// scheduleContinuedMotion picks the stop angle for the quadrant of the walk
// cycle the feet are in, taking an extra half step when the current one is
// too short to finish on.
func scheduleContinuedMotion(t *components.Transition, stride float64) {
	stop := components.StopAngle(t.LastAnimation, t.LastDirection)
	pos := t.LastWheelPos
	var turn float64

	switch {
	case pos <= stop && t.LastElapsed < 180:
		stop += 180
		turn = stop - pos
	case pos > stop && pos <= stop+90:
		stop += 180
		turn = stop - pos
	case pos > stop+90 && pos <= stop+180:
		stop += 180
		turn = stop - pos
	case pos > stop+180 && pos <= stop+270:
		turn = stop + 360 - pos
	case pos <= stop:
		turn = stop - pos
	default:
		turn = 360 - pos + stop
	}

	t.ContinuedMotion = true
	t.StopAngle = stop
	t.DegreesToTurn = turn
	t.DegreesRemaining = turn

	distance := turn * stride / 180
	t.ContinuedDuration = distance / config.Locomotion.MaxWalkSpeed
	if t.ContinuedDuration > t.Duration {
		t.Duration = t.ContinuedDuration
	}
}

// advancePrevious keeps the animation being blended out moving: a walk
// running out to its stop angle turns at the scheduled rate, anything else
// repeats its last increment. Nested transitions are advanced too.
func advancePrevious(ctx *LocomotionContext, i int, dt float64) {
	node := ctx.Chain.Node(i)
	if node == nil {
		return
	}

	var advance float64
	if node.Last == config.SlotWalk && node.Next == config.SlotIdle {
		advance = runOut(ctx, node, dt)
	} else {
		advance = node.LastIncrement
	}

	node.LastWheelPos = gamemath.WrapDegrees(node.LastWheelPos + advance)
	advancePrevious(ctx, i-1, dt)
	node.LastElapsed += advance
}

func runOut(ctx *LocomotionContext, node *components.Transition, dt float64) float64 {
	motor := ctx.Motor
	if node.DegreesRemaining <= 0 || node.ContinuedDuration <= 0 || dt <= 0 {
		if motor.Motoring {
			motor.ApplyBrakes()
		}
		return 0
	}

	advance := node.DegreesRemaining * dt / node.ContinuedDuration
	stride := ctx.Avatar.StrideLength(config.SlotWalk, node.LastDirection)
	distance := stride * advance / 180
	if distance < config.Locomotion.ContinuedMotionCutoff {
		distance = 0
		node.DegreesRemaining = 0
	} else {
		node.DegreesRemaining -= advance
	}
	speed := math.Min(distance/dt, config.Locomotion.MaxWalkSpeed)
	motor.SetSpeed(speed, config.Motor.ShortTime, node.LastDirection)
	return advance
}

// updateProgress advances node i and everything nested below it. Nested
// transitions that complete are retired along with their own ancestors.
func updateProgress(ctx *LocomotionContext, i int, dt float64) bool {
	chain := ctx.Chain
	fromTop := chain.Len() - 1 - i
	node := chain.Node(i)

	node.Elapsed += dt
	if node.Duration > 0 {
		node.Progress = gamemath.Round3(math.Min(node.Elapsed/node.Duration, 1))
	} else {
		node.Progress = 1
	}

	if i > 0 {
		nestedDone := updateProgress(ctx, i-1, dt)
		// Retirement below shifts the chain; re-find this node from the top.
		i = chain.Len() - 1 - fromTop
		if nestedDone {
			chain.RetireOldest(i, ctx.Motor)
			i = 0
		}
		node = chain.Node(i)
	}

	node.Actions = node.Actions.Advance(dt)
	node.FilteredProgress = gamemath.BezierEase(node.Progress, node.EasingLower, node.EasingUpper)
	return node.Progress >= 1
}

// UpdateTransitions advances the transition chain and drops it once the
// newest transition completes.
func UpdateTransitions(w donburi.World) {
	eachPowered(w, advanceTransitions)
}

func advanceTransitions(ctx *LocomotionContext) {
	chain := ctx.Chain
	top := chain.Current()
	if top == nil {
		return
	}

	if top.Progress == 0 && chain.Len() > 1 {
		nested := chain.Node(chain.Len() - 2)
		if nested.Last == ctx.Avatar.Current {
			ctx.Motion.Wheel.Position = nested.LastWheelPos
		}
	}

	if updateProgress(ctx, chain.Len()-1, ctx.Dt()) {
		log.Debug("transition complete", zap.Int("serial", chain.Current().Serial))
		chain.Clear(ctx.Motor)
	}
}

// blendTranslations mixes the hip translation of node i's next animation,
// at the given phase, with whatever it is blending out of.
func blendTranslations(ctx *LocomotionContext, i int, phase float64, dir config.Direction) mgl64.Vec3 {
	node := ctx.Chain.Node(i)
	next := animations.EvaluateTranslation(node.NextAnimation, phase, dir)

	var last mgl64.Vec3
	if i > 0 {
		last = blendTranslations(ctx, i-1, node.LastWheelPos, node.LastDirection)
	} else {
		last = animations.EvaluateTranslation(node.LastAnimation, node.LastWheelPos, node.LastDirection)
	}

	fp := node.FilteredProgress
	v := next.Mul(fp).Add(last.Mul(1 - fp))
	for _, a := range node.Actions {
		pose := animations.EvaluateTranslation(a.ReachPose, phase, dir)
		v = overlay(v, pose, gamemath.SmoothStep(a.Level))
	}
	return v
}

// blendRotations mixes one joint's rotation the same way. Blending out of
// a walk that had barely started is attenuated so short steps do not snap.
func blendRotations(ctx *LocomotionContext, joint string, i int, phase float64, dir config.Direction) mgl64.Vec3 {
	node := ctx.Chain.Node(i)
	next, _ := animations.EvaluateRotation(joint, node.NextAnimation, phase, dir)

	adjust := 1.0
	short := config.Locomotion.ShortStepDegrees
	if node.Last == config.SlotWalk && node.LastElapsed < short && short > 0 {
		adjust = gamemath.SmoothStep(1 - (short-node.LastElapsed)/short)
	}

	var last mgl64.Vec3
	if i > 0 {
		last = blendRotations(ctx, joint, i-1, node.LastWheelPos, node.LastDirection)
	} else {
		last, _ = animations.EvaluateRotation(joint, node.LastAnimation, node.LastWheelPos, node.LastDirection)
	}

	w := adjust * node.FilteredProgress
	v := next.Mul(w).Add(last.Mul(1 - w))
	for _, a := range node.Actions {
		pose, ok := animations.EvaluateRotation(joint, a.ReachPose, phase, dir)
		if !ok {
			continue
		}
		v = overlay(v, pose, adjust*gamemath.SmoothStep(a.Level))
	}
	return v
}

// overlay pulls each non-zero component of pose into v by strength s.
func overlay(v, pose mgl64.Vec3, s float64) mgl64.Vec3 {
	for k := 0; k < 3; k++ {
		if math.Abs(pose[k]) > 0 {
			v[k] = s*pose[k] + (1-s)*v[k]
		}
	}
	return v
}
