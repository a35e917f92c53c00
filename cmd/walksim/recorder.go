package main

import (
	"github.com/automoto/gaitkit/animator"
	"github.com/automoto/gaitkit/components"
	"github.com/automoto/gaitkit/config"
	"github.com/automoto/gaitkit/internal/log"
	"go.uber.org/zap"
)

// recorder logs mode and slot changes as they happen, a periodic summary,
// and totals at the end.
type recorder struct {
	every     int
	mode      config.LocomotionMode
	slot      config.AnimationSlot
	steps     [2]int
	motor     int
	maxDepth  int
	modeTimes map[config.LocomotionMode]int
}

func newRecorder(every int) *recorder {
	return &recorder{
		every:     every,
		mode:      config.Standing,
		slot:      config.SlotIdle,
		maxDepth:  -1,
		modeTimes: make(map[config.LocomotionMode]int),
	}
}

func (r *recorder) record(frame int, a *animator.Animator, kin components.KinematicsData, pose *components.PoseData) {
	ctx := a.Context()
	r.modeTimes[a.Mode()]++
	if d := ctx.Chain.Depth(); d > r.maxDepth {
		r.maxDepth = d
	}

	if a.Mode() != r.mode || a.Slot() != r.slot {
		log.Info("state",
			zap.Int("frame", frame),
			zap.Stringer("mode", a.Mode()),
			zap.Stringer("slot", a.Slot()),
			zap.Float64("speed", ctx.Motion.Speed),
			zap.Stringer("direction", ctx.Motion.Direction))
		r.mode, r.slot = a.Mode(), a.Slot()
	}

	for _, f := range pose.Footsteps {
		r.steps[f.Side]++
		log.Debug("footstep",
			zap.Int("frame", frame),
			zap.Stringer("side", f.Side),
			zap.Float64("volume", f.Volume))
	}

	if pose.Motor != nil {
		r.motor++
		log.Debug("motor",
			zap.Int("frame", frame),
			zap.Float64("velocity", pose.Motor.Velocity.Z()),
			zap.Float64("timescale", pose.Motor.Timescale))
	}

	if r.every > 0 && frame%r.every == 0 {
		log.Info("frame",
			zap.Int("frame", frame),
			zap.Float64("z", kin.Position.Z()),
			zap.Float64("y", kin.Position.Y()),
			zap.Float64("speed", ctx.Motion.Speed),
			zap.Float64("wheel", ctx.Motion.Wheel.Position),
			zap.Int("depth", ctx.Chain.Depth()),
			zap.Int("actions", ctx.Actions.Count()),
			zap.Float64("lean_pitch", pose.LeanPitch),
			zap.Float64("lean_roll", pose.LeanRoll))
	}
}

func (r *recorder) summary(a *animator.Animator) {
	ctx := a.Context()
	fields := []zap.Field{
		zap.Int("frames", ctx.Frame.Count),
		zap.Int("transitions", ctx.Chain.Created),
		zap.Int("max_depth", r.maxDepth),
		zap.Int("steps_left", r.steps[config.StepLeft]),
		zap.Int("steps_right", r.steps[config.StepRight]),
		zap.Int("motor_commands", r.motor),
		zap.Float64("walk_stride", ctx.Avatar.StrideLength(config.SlotWalk, config.DirectionForwards)),
	}
	for mode, n := range r.modeTimes {
		fields = append(fields, zap.Int("frames_"+mode.String(), n))
	}
	log.Info("scenario finished", fields...)
}
