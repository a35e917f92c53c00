package systems

import (
	"math"

	"github.com/automoto/gaitkit/components"
	"github.com/automoto/gaitkit/config"
	"github.com/automoto/gaitkit/internal/log"
	"github.com/yohamta/donburi"
	"go.uber.org/zap"
)

// UpdateAwareness fires reach-pose actions from the avatar's surroundings:
// obstacles ahead, hard braking, jump apexes and landings.
func UpdateAwareness(w donburi.World) {
	eachPowered(w, senseSurroundings)
}

func senseSurroundings(ctx *LocomotionContext) {
	m := ctx.Motion
	if m.Speed <= config.Locomotion.MoveThreshold {
		ctx.Awareness.ObstacleLatched = false
		return
	}
	cfg := config.Awareness
	names := config.Actions

	if obstacleAhead(ctx) {
		if !ctx.Awareness.ObstacleLatched {
			ctx.Awareness.ObstacleLatched = true
			addAction(ctx, names.ProtectHead, 0, 0)
		}
	} else {
		ctx.Awareness.ObstacleLatched = false
	}

	flying := ctx.Avatar.Current == config.SlotFlyBlend
	if m.DeceleratingFast || (flying && m.Decelerating) {
		if !ctx.Actions.Has(names.RapidFlyingSlowdown) {
			addAction(ctx, names.RapidFlyingSlowdown, 0, 0)
		}
	}

	if m.Acceleration.Y() < cfg.JumpApexAcceleration && m.UnderGravity &&
		m.DistanceToGround > cfg.MinJumpHeight && !m.Direction.Vertical() &&
		!ctx.Actions.Has(names.FlyToWalk) {
		intensity := cfg.FlyToWalkScale * m.DistanceToGround / (config.Locomotion.GravityThreshold + ctx.Avatar.HipsToFeet)
		addAction(ctx, names.FlyToWalk, math.Min(1, intensity), math.Max(cfg.FlyToWalkMinDuration, intensity))
	}

	landAt := config.Locomotion.OnSurfaceThreshold + cfg.LandingLookAhead
	forward := math.Abs(m.Velocity.Z())
	if m.LastDistanceToGround >= landAt && m.DistanceToGround < landAt && forward > config.Locomotion.MoveThreshold {
		if impact := -m.Velocity.Y() * cfg.LandOnSurfaceScale; impact > 0 && !ctx.Actions.Has(names.LandOnSurface) {
			addAction(ctx, names.LandOnSurface, math.Min(1, impact), cfg.LandOnSurfaceDuration)
		}
		if forward > config.Locomotion.MaxWalkSpeed+cfg.LandingSpeedMargin {
			ctx.Motor.SetSpeed(config.Locomotion.MaxWalkSpeed, config.Motor.ShortTime, travel(m.Velocity.Z()))
		}
	}
}

// travel is the walking direction of an avatar-local z velocity.
func travel(vz float64) config.Direction {
	if vz < 0 {
		return config.DirectionForwards
	}
	return config.DirectionBackwards
}

func obstacleAhead(ctx *LocomotionContext) bool {
	probe := ctx.Host.Probe
	v := ctx.Kinematics.Velocity
	if probe == nil || v.Len() == 0 {
		return false
	}
	d, hit := probe.Raycast(ctx.Kinematics.Position, v.Normalize(), config.Awareness.ObstacleProbeDistance)
	ctx.Awareness.ObstacleDistance = d
	if !hit {
		ctx.Awareness.ObstacleDistance = math.Inf(1)
	}
	return hit && d < config.Awareness.CollisionThreshold
}

// addAction registers a library action with the live registry. Unknown
// actions are skipped.
func addAction(ctx *LocomotionContext, name string, strength, duration float64) {
	spec, ok := ctx.Avatar.Library.Action(name)
	if !ok {
		log.Debug("action not in library", zap.String("action", name))
		return
	}
	ctx.Actions.Add(components.NewActionEnvelope(spec, strength, duration))
	log.Debug("action started", zap.String("action", name), zap.Int("live", ctx.Actions.Count()))
}
