package config

import "github.com/go-gl/mathgl/mgl64"

// LocomotionConfig contains the thresholds that classify avatar motion
// and drive the locomotion state machine.
type LocomotionConfig struct {
	// Speed classes (m/s)
	MoveThreshold float64
	MaxWalkSpeed  float64
	TopSpeed      float64

	// Directed acceleration classes (m/s^2)
	AccelerationThreshold     float64
	DecelerationThreshold     float64
	FastDecelerationThreshold float64

	// Ground proximity (m)
	GravityThreshold   float64
	OnSurfaceThreshold float64
	HipsToFeet         float64 // default until measured from the skeleton

	AngularAccelerationMax float64 // deg/s^2, full soaring blend
	MaxTransitionRecursion int

	// Phase wheel
	WheelHistory       int     // samples in the rolling increment average
	AtMaxSpeedRatio    float64 // fraction of MaxWalkSpeed that counts as full stride
	StrideMaxTolerance float64 // degrees around strideMaxAt where the stride is measured
	StopAngleTolerance float64 // degrees added to the last increment when holding at the stop angle

	// Transitions
	ShortStepDegrees      float64 // walk cycles shorter than this are attenuated
	ContinuedMotionCutoff float64 // metres per frame below which continued motion ends

	MaxSkeletonOffset float64
	ArmsFree          bool
	Profile           string
}

// MotorConfig contains the timescales used for continued-motion motor commands.
type MotorConfig struct {
	VeryLongTime  float64
	VeryShortTime float64
	ShortTime     float64
}

// LeanConfig contains body lean limits applied on top of the gait.
type LeanConfig struct {
	PitchMax           float64 // degrees
	RollMax            float64 // degrees
	AngularVelocityMax float64 // deg/s for full roll
	FilterCutoff       float64 // Hz
	SampleRate         float64 // Hz the lean filters are tuned for
}

// FlyConfig contains the smoothing windows of the flight blend.
type FlyConfig struct {
	UpDownSmoothing  int
	SoaringSmoothing int
}

// AwarenessConfig contains the probe distances and action triggers of the
// obstacle and terrain awareness stage.
type AwarenessConfig struct {
	CollisionThreshold    float64 // obstacle distance that triggers a flinch
	ObstacleProbeDistance float64
	GroundProbeDistance   float64
	JumpApexAcceleration  float64
	MinJumpHeight         float64
	FlyToWalkScale        float64
	FlyToWalkMinDuration  float64
	LandingLookAhead      float64 // added to OnSurfaceThreshold for the landing squash
	LandOnSurfaceDuration float64
	LandOnSurfaceScale    float64
	LandingSpeedMargin    float64 // forward speed above MaxWalkSpeed that caps the motor
}

// ActionsConfig names the reach-pose actions fired by the awareness stage.
type ActionsConfig struct {
	ProtectHead         string
	RapidFlyingSlowdown string
	FlyToWalk           string
	LandOnSurface       string
}

// FootstepConfig controls the step alternation signal.
type FootstepConfig struct {
	Enabled     bool
	LoudSpeed   float64
	LoudScale   float64
	QuietVolume float64
}

// TransitionConfig contains defaults for pairs missing from the transition table.
type TransitionConfig struct {
	Duration    float64
	EasingLower mgl64.Vec2
	EasingUpper mgl64.Vec2
}

// TerrainConfig maps TMX pixels onto world metres for the terrain probe.
type TerrainConfig struct {
	PixelsPerMeter float64
	ProbeSize      float64 // pixels
	CellSize       int
	SolidLayer     string
	SpawnGroup     string
}

// StorageConfig names the gdata application and keys.
type StorageConfig struct {
	AppName        string
	CalibrationKey string
}

// Global configuration instances
var Locomotion LocomotionConfig
var Motor MotorConfig
var Lean LeanConfig
var Fly FlyConfig
var Awareness AwarenessConfig
var Actions ActionsConfig
var Footsteps FootstepConfig
var Transition TransitionConfig
var Terrain TerrainConfig
var Storage StorageConfig

func init() {
	Reset()
}

// Reset restores every configuration instance to its defaults.
func Reset() {
	Locomotion = LocomotionConfig{
		MoveThreshold: 0.075,
		MaxWalkSpeed:  2.6,
		TopSpeed:      300,

		AccelerationThreshold:     -2,
		DecelerationThreshold:     5,
		FastDecelerationThreshold: 150,

		GravityThreshold:   3.0,
		OnSurfaceThreshold: 0.1,
		HipsToFeet:         1.35,

		AngularAccelerationMax: 75,
		MaxTransitionRecursion: 4,

		WheelHistory:       8,
		AtMaxSpeedRatio:    0.97,
		StrideMaxTolerance: 1.0,
		StopAngleTolerance: 0.1,

		ShortStepDegrees:      120,
		ContinuedMotionCutoff: 0.01,

		MaxSkeletonOffset: 1.0,
		ArmsFree:          false,
		Profile:           "male",
	}

	Motor = MotorConfig{
		VeryLongTime:  1000000,
		VeryShortTime: 0.001,
		ShortTime:     0.2,
	}

	Lean = LeanConfig{
		PitchMax:           70,
		RollMax:            80,
		AngularVelocityMax: 67,
		FilterCutoff:       2,
		SampleRate:         60,
	}

	Fly = FlyConfig{
		UpDownSmoothing:  30,
		SoaringSmoothing: 8,
	}

	Awareness = AwarenessConfig{
		CollisionThreshold:    0.7,
		ObstacleProbeDistance: 3,
		GroundProbeDistance:   50,
		JumpApexAcceleration:  -2.75,
		MinJumpHeight:         0.15,
		FlyToWalkScale:        6.5,
		FlyToWalkMinDuration:  0.85,
		LandingLookAhead:      0.4,
		LandOnSurfaceDuration: 0.6,
		LandOnSurfaceScale:    0.5,
		LandingSpeedMargin:    1,
	}

	Actions = ActionsConfig{
		ProtectHead:         "ProtectHead",
		RapidFlyingSlowdown: "RapidFlyingSlowdown",
		FlyToWalk:           "FlyToWalk",
		LandOnSurface:       "LandOnSurface",
	}

	Footsteps = FootstepConfig{
		Enabled:     true,
		LoudSpeed:   0.4,
		LoudScale:   0.3,
		QuietVolume: 0.08,
	}

	Transition = TransitionConfig{
		Duration:    0.7,
		EasingLower: mgl64.Vec2{0.5, 0.5},
		EasingUpper: mgl64.Vec2{0.5, 0.5},
	}

	Terrain = TerrainConfig{
		PixelsPerMeter: 32,
		ProbeSize:      2,
		CellSize:       16,
		SolidLayer:     "terrain",
		SpawnGroup:     "AvatarSpawn",
	}

	Storage = StorageConfig{
		AppName:        "gaitkit",
		CalibrationKey: "calibration",
	}
}
