// Package animator drives one procedurally animated avatar. The host feeds
// kinematics in every frame and reads back a pose.
package animator

import (
	"fmt"

	"github.com/automoto/gaitkit/assets/animations"
	"github.com/automoto/gaitkit/components"
	"github.com/automoto/gaitkit/config"
	"github.com/automoto/gaitkit/internal/log"
	"github.com/automoto/gaitkit/systems"
	"github.com/automoto/gaitkit/systems/factory"
	"github.com/yohamta/donburi"
	"go.uber.org/zap"
)

// pipeline is the fixed stage order of a frame.
var pipeline = []func(donburi.World){
	systems.UpdateCalibration,
	systems.UpdateMotion,
	systems.UpdateAwareness,
	systems.UpdateLocomotion,
	systems.UpdatePhaseWheel,
	systems.UpdateStrideLength,
	systems.UpdateTransitions,
	systems.UpdateLiveActions,
	systems.UpdatePose,
	systems.UpdateHistory,
}

type options struct {
	world    donburi.World
	profile  string
	host     components.HostData
	store    *systems.CalibrationStore
	armsFree *bool
}

type Option func(*options)

// WithWorld spawns the avatar into an existing world, for example one that
// already holds terrain.
func WithWorld(w donburi.World) Option {
	return func(o *options) { o.world = w }
}

func WithProfile(name string) Option {
	return func(o *options) { o.profile = name }
}

func WithProbe(p components.Probe) Option {
	return func(o *options) { o.host.Probe = p }
}

func WithJointLocator(l components.JointLocator) Option {
	return func(o *options) { o.host.Joints = l }
}

// WithCalibrationStore loads saved strides on creation and saves them on
// Close.
func WithCalibrationStore(s *systems.CalibrationStore) Option {
	return func(o *options) { o.store = s }
}

// WithArmsFree leaves the arm chains to the host.
func WithArmsFree(free bool) Option {
	return func(o *options) { o.armsFree = &free }
}

type Animator struct {
	world     donburi.World
	entry     *donburi.Entry
	store     *systems.CalibrationStore
	libraries <-chan *animations.Library
}

// New creates an animator for one avatar, standing idle and powered on.
func New(lib *animations.Library, opts ...Option) (*Animator, error) {
	o := options{profile: config.Locomotion.Profile}
	for _, opt := range opts {
		opt(&o)
	}
	if o.world == nil {
		o.world = donburi.NewWorld()
	}

	entry, err := factory.CreateAvatar(o.world, lib, o.profile, o.host)
	if err != nil {
		return nil, fmt.Errorf("animator: %w", err)
	}
	a := &Animator{world: o.world, entry: entry, store: o.store}

	avatar := components.Avatar.Get(entry)
	if o.armsFree != nil {
		avatar.ArmsFree = *o.armsFree
	}
	if a.store != nil {
		if err := a.store.Load(avatar); err != nil {
			log.Warn("calibration not loaded", zap.Error(err))
		}
	}

	log.Info("animator ready",
		zap.String("profile", o.profile),
		zap.Int("joints", len(lib.Joints)),
		zap.Bool("probe", o.host.Probe != nil),
		zap.Bool("joint_locator", o.host.Joints != nil))
	return a, nil
}

// Update runs one frame and returns the pose. dt is in seconds. While
// powered off the previous pose is returned untouched.
func (a *Animator) Update(dt float64, kin components.KinematicsData) *components.PoseData {
	a.drainLibraries()

	components.Frame.Get(a.entry).Delta = dt
	components.Kinematics.SetValue(a.entry, kin)
	for _, system := range pipeline {
		system(a.world)
	}
	return a.Pose()
}

func (a *Animator) drainLibraries() {
	if a.libraries == nil {
		return
	}
	for {
		select {
		case lib, ok := <-a.libraries:
			if !ok {
				a.libraries = nil
				return
			}
			if err := a.ReloadLibrary(lib); err != nil {
				log.Warn("library reload rejected", zap.Error(err))
			}
		default:
			return
		}
	}
}

// Watch picks up libraries published by a watcher at the start of each
// Update.
func (a *Animator) Watch(w *animations.Watcher) {
	a.libraries = w.Libraries
}

// ReloadLibrary swaps the animation set in place. Live transitions and
// actions refer to the old set and are dropped; the avatar keeps its slot,
// mode, phase and measured strides.
func (a *Animator) ReloadLibrary(lib *animations.Library) error {
	avatar := components.Avatar.Get(a.entry)
	name := config.Locomotion.Profile
	if avatar.Profile != nil {
		name = avatar.Profile.Name
	}
	p, err := lib.Profile(name)
	if err != nil {
		return fmt.Errorf("animator: reload: %w", err)
	}

	avatar.Bind(lib, p)
	components.TransitionChain.Get(a.entry).Clear(components.Motor.Get(a.entry))
	components.LiveActions.Get(a.entry).Actions = nil

	log.Info("animation library reloaded", zap.String("profile", name))
	return nil
}

func (a *Animator) Pose() *components.PoseData {
	return components.Pose.Get(a.entry)
}

func (a *Animator) Mode() config.LocomotionMode {
	return components.Locomotion.Get(a.entry).Mode
}

// Slot is the animation slot currently playing.
func (a *Animator) Slot() config.AnimationSlot {
	return components.Avatar.Get(a.entry).Current
}

// SetPower switches the pipeline on or off. Switching off clears the lean
// and flight smoothing so the avatar comes back up from rest.
func (a *Animator) SetPower(on bool) {
	components.Locomotion.Get(a.entry).Power = on
	if !on {
		components.Lean.Get(a.entry).Reset()
		components.Avatar.Get(a.entry).ResetFlightFilters()
	}
	log.Debug("animator power", zap.Bool("on", on))
}

func (a *Animator) Powered() bool {
	return components.Locomotion.Get(a.entry).Power
}

// SetArmsFree hands the arm chains to the host, or takes them back.
func (a *Animator) SetArmsFree(free bool) {
	components.Avatar.Get(a.entry).ArmsFree = free
}

func (a *Animator) ArmsFree() bool {
	return components.Avatar.Get(a.entry).ArmsFree
}

// Context exposes the avatar's components for inspection.
func (a *Animator) Context() *systems.LocomotionContext {
	return systems.NewLocomotionContext(a.entry)
}

func (a *Animator) World() donburi.World {
	return a.world
}

// Close saves the calibration if a store was given.
func (a *Animator) Close() error {
	if a.store == nil {
		return nil
	}
	if err := a.store.Save(components.Avatar.Get(a.entry)); err != nil {
		return fmt.Errorf("animator: %w", err)
	}
	return nil
}
