package config

import "image/color"

// Resolution represents a window size option
type Resolution struct {
	Width  int
	Height int
	Label  string
}

// ViewerConfig contains the window, camera and keyboard driving settings of
// the interactive viewer.
type ViewerConfig struct {
	Resolutions            []Resolution
	DefaultResolutionIndex int

	PixelsPerMeter float64
	GroundLine     float64 // fraction of the window height where the feet rest
	Depth          float64 // screen pixels per metre of sideways (x) offset, as a fraction of PixelsPerMeter
	CameraLag      float64 // fraction of the gap to the avatar closed per frame

	// Keyboard driving (m/s, rad/s, 1/s)
	WalkSpeed    float64
	RunSpeed     float64
	ClimbSpeed   float64
	TurnRate     float64
	Acceleration float64

	FootprintCount int // footsteps kept on the ground
	Debug          bool

	BackgroundColor color.RGBA
	GroundColor     color.RGBA
	RampColor       color.RGBA
	BoneColor       color.RGBA
	LeftColor       color.RGBA
	RightColor      color.RGBA
	FootprintColor  color.RGBA
	HUDColor        color.RGBA
	DebugColor      color.RGBA
}

// Viewer is the global viewer configuration
var Viewer ViewerConfig

func init() {
	Viewer = ViewerConfig{
		Resolutions: []Resolution{
			{Width: 960, Height: 540, Label: "960 x 540"},
			{Width: 1280, Height: 720, Label: "1280 x 720"},
			{Width: 1600, Height: 900, Label: "1600 x 900"},
			{Width: 1920, Height: 1080, Label: "1920 x 1080"},
		},
		DefaultResolutionIndex: 1,

		PixelsPerMeter: 160,
		GroundLine:     0.8,
		Depth:          0.35,
		CameraLag:      0.1,

		WalkSpeed:    1.4,
		RunSpeed:     2.4,
		ClimbSpeed:   2.5,
		TurnRate:     1.5,
		Acceleration: 3,

		FootprintCount: 12,
		Debug:          false,

		BackgroundColor: color.RGBA{24, 26, 32, 255},
		GroundColor:     color.RGBA{110, 110, 110, 255},
		RampColor:       color.RGBA{140, 120, 90, 255},
		BoneColor:       color.RGBA{230, 230, 230, 255},
		LeftColor:       color.RGBA{90, 160, 255, 255},
		RightColor:      color.RGBA{255, 120, 90, 255},
		FootprintColor:  color.RGBA{200, 200, 80, 255},
		HUDColor:        color.RGBA{255, 255, 255, 255},
		DebugColor:      color.RGBA{0, 255, 255, 255},
	}
}
