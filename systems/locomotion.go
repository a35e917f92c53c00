package systems

import (
	"math"

	"github.com/automoto/gaitkit/assets/animations"
	"github.com/automoto/gaitkit/components"
	"github.com/automoto/gaitkit/config"
	"github.com/automoto/gaitkit/internal/log"
	"github.com/automoto/gaitkit/shared/gamemath"
	"github.com/yohamta/donburi"
	"go.uber.org/zap"
)

// UpdateLocomotion resolves the locomotion mode and switches the playing
// animation, starting a transition whenever the slot changes.
func UpdateLocomotion(w donburi.World) {
	eachPowered(w, func(ctx *LocomotionContext) {
		determineMode(ctx)
		selectAnimation(ctx)
	})
}

func determineMode(ctx *LocomotionContext) {
	m := ctx.Motion
	loco := ctx.Locomotion
	mode := loco.Mode

	switch mode {
	case config.Standing:
		switch {
		case (m.Accelerating && !m.OnGround) ||
			(m.FlyingSpeed && !m.Decelerating) ||
			m.Direction.Vertical() || m.GoingUp || m.GoingDown:
			mode = config.Flying
		case m.OnGround && m.WalkingSpeed && m.Accelerating && !ctx.Motor.Motoring:
			mode = config.Walking
		}

	case config.Walking, config.SideStep:
		switch {
		case m.OnGround && (!m.Moving || m.Decelerating):
			mode = config.Standing
			startContinuedMotion(ctx)
		case (m.WalkingSpeed || m.FlyingSpeed) && !m.Landing && !m.OnGround:
			mode = config.Flying
		}

	case config.Flying:
		switch {
		case !m.Moving || m.DeceleratingFast:
			mode = config.Standing
		case ((m.WalkingSpeed && m.OnGround) || m.Landing) && !m.Direction.Vertical():
			mode = config.Walking
		}
	}

	if mode == config.Walking || mode == config.SideStep {
		mode = config.Walking
		if m.Direction.Lateral() {
			mode = config.SideStep
		}
	}

	if mode != loco.Mode {
		log.Debug("locomotion mode",
			zap.Stringer("from", loco.Mode),
			zap.Stringer("to", mode),
			zap.Float64("speed", m.Speed),
			zap.Stringer("direction", m.Direction))
		loco.PreviousMode = loco.Mode
		loco.Mode = mode
	}
}

// startContinuedMotion carries a forwards or backwards walk on to its stop
// angle under motor power.
func startContinuedMotion(ctx *LocomotionContext) {
	dir := ctx.Motion.LastDirection
	if ctx.Motor.Motoring || (dir != config.DirectionForwards && dir != config.DirectionBackwards) {
		return
	}
	ctx.Motor.StartMotoring(dir)
}

func selectAnimation(ctx *LocomotionContext) {
	avatar := ctx.Avatar
	m := ctx.Motion
	chain := ctx.Chain

	switch ctx.Locomotion.Mode {
	case config.Standing:
		next := config.SlotHover
		if m.OnGround {
			next = config.SlotIdle
		}
		play := true
		if cur := chain.Current(); cur != nil && cur.Direction == config.DirectionBackwards {
			play = false
		}
		setTransition(ctx, next, play)

	case config.Walking:
		if avatar.Current == config.SlotWalk {
			return
		}
		play := true
		if cur := chain.Current(); cur != nil && cur.Last == config.SlotWalk && cur.Next == config.SlotIdle {
			play = false
		}
		if m.Direction == config.DirectionBackwards {
			play = false
		}
		if setTransition(ctx, config.SlotWalk, play) {
			m.Wheel.Position = components.StartAngle(avatar.Animation(config.SlotWalk), config.SlotWalk, m.Direction)
		}

	case config.SideStep:
		next := config.SlotSideStepRight
		if m.Direction == config.DirectionLeft {
			next = config.SlotSideStepLeft
		}
		if avatar.Current == next {
			return
		}
		if setTransition(ctx, next, true) {
			m.Wheel.Position = components.StartAngle(avatar.Animation(next), next, m.Direction)
		}

	case config.Flying:
		blendFlight(ctx)
		setTransition(ctx, config.SlotFlyBlend, true)
	}
}

// blendFlight rebuilds the fly-blend scratch animation from the five
// flight sources, weighted by how the avatar is moving.
func blendFlight(ctx *LocomotionContext) {
	avatar := ctx.Avatar
	target := avatar.FlyBlend
	if target == nil {
		return
	}
	m := ctx.Motion
	v := m.Velocity

	up, down := 0.0, 0.0
	if v.Y() > 0 {
		up = gamemath.Ratio(v.Y(), m.Speed)
	} else {
		down = gamemath.Ratio(-v.Y(), m.Speed)
	}
	forward := math.Abs(gamemath.Ratio(v.Z(), m.Speed))
	rapid := math.Min(1, math.Abs(v.Z()/config.Locomotion.TopSpeed))
	soaring := ctx.Kinematics.AngularAcceleration.Len() / config.Locomotion.AngularAccelerationMax

	up = avatar.FlyUpFilter.Process(up)
	down = avatar.FlyDownFilter.Process(down)
	soaring = avatar.SoarFilter.Process(soaring)

	animations.ZeroAnimation(target)
	total := up + down + rapid + soaring + forward
	if total <= 0 {
		return
	}
	sources := []struct {
		slot   config.AnimationSlot
		weight float64
	}{
		{config.SlotFlyUp, up},
		{config.SlotFlyDown, down},
		{config.SlotRapidFly, rapid},
		{config.SlotSoarFly, soaring},
		{config.SlotFly, forward},
	}
	for _, s := range sources {
		if s.weight <= 0 {
			continue
		}
		if src := avatar.Animation(s.slot); src != nil {
			animations.BlendAnimation(src, target, s.weight/total)
		}
	}
}
