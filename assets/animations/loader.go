package animations

import (
	"fmt"
	"io/fs"
	"path"
	"sort"

	"github.com/automoto/gaitkit/config"
	"github.com/automoto/gaitkit/internal/log"
	"github.com/automoto/gaitkit/shared/gamemath"
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Layout of a library directory.
const (
	LibraryFile   = "library.yaml"
	AnimationsDir = "animations"
	ReachPosesDir = "reach_poses"
)

type libraryFile struct {
	Joints      []ReferenceJoint             `yaml:"joints"`
	Profiles    map[string]map[string]string `yaml:"profiles"`
	Transitions []transitionFile             `yaml:"transitions"`
	Actions     []actionFile                 `yaml:"actions"`
}

type transitionFile struct {
	From        string     `yaml:"from"`
	To          string     `yaml:"to"`
	Duration    float64    `yaml:"duration"`
	EasingLower *[2]float64 `yaml:"easing_lower"`
	EasingUpper *[2]float64 `yaml:"easing_upper"`
	Actions     []string   `yaml:"actions"`
}

type actionFile struct {
	Name      string     `yaml:"name"`
	ReachPose string     `yaml:"reach_pose"`
	Duration  float64    `yaml:"duration"`
	Strength  *float64   `yaml:"strength"`
	Delay     Breakpoint `yaml:"delay"`
	Attack    Breakpoint `yaml:"attack"`
	Decay     Breakpoint `yaml:"decay"`
	Sustain   Breakpoint `yaml:"sustain"`
	Release   Breakpoint `yaml:"release"`
	Smoothing int        `yaml:"smoothing"`
}

type animationFile struct {
	Name        string               `yaml:"name"`
	Calibration calibrationFile      `yaml:"calibration"`
	Joints      map[string]jointFile `yaml:"joints"`
}

type calibrationFile struct {
	Frequency             float64 `yaml:"frequency"`
	StrideLength          float64 `yaml:"stride_length"`
	StrideLengthForwards  float64 `yaml:"stride_length_forwards"`
	StrideLengthBackwards float64 `yaml:"stride_length_backwards"`
	StrideMaxAt           float64 `yaml:"stride_max_at"`
	StrideMaxAtForwards   float64 `yaml:"stride_max_at_forwards"`
	StrideMaxAtBackwards  float64 `yaml:"stride_max_at_backwards"`
	StartAngle            float64 `yaml:"start_angle"`
	StartAngleForwards    float64 `yaml:"start_angle_forwards"`
	StartAngleBackwards   float64 `yaml:"start_angle_backwards"`
	StopAngleForwards     float64 `yaml:"stop_angle_forwards"`
	StopAngleBackwards    float64 `yaml:"stop_angle_backwards"`
	FootDownLeft          float64 `yaml:"foot_down_left"`
	FootDownRight         float64 `yaml:"foot_down_right"`
}

type jointFile struct {
	Pitch      curveFile    `yaml:"pitch"`
	Yaw        curveFile    `yaml:"yaw"`
	Roll       curveFile    `yaml:"roll"`
	Sway       curveFile    `yaml:"sway"`
	Bob        curveFile    `yaml:"bob"`
	Thrust     curveFile    `yaml:"thrust"`
	BobLowPass *lowPassFile `yaml:"bob_low_pass"`
	Modifiers  ModifierSpec `yaml:"modifiers"`
}

type curveFile struct {
	Amplitude float64     `yaml:"amplitude"`
	Phase     float64     `yaml:"phase"`
	Offset    float64     `yaml:"offset"`
	Filter    *FilterSpec `yaml:"filter"`
}

type lowPassFile struct {
	Peak     float64 `yaml:"peak"`
	Strength float64 `yaml:"strength"`
	Cutoff   float64 `yaml:"cutoff"`
}

// FilterSpec is the optional custom wave of a curve.
type FilterSpec struct {
	Type       string    `yaml:"type"`
	Harmonics  int       `yaml:"harmonics"`
	Magnitudes []float64 `yaml:"magnitudes"`
	Phases     []float64 `yaml:"phases"`
}

// Build resolves the spec into a wave.
func (f *FilterSpec) Build() (gamemath.Wave, error) {
	switch f.Type {
	case "", "sine":
		return nil, nil
	case "harmonics":
		return gamemath.Harmonics(f.Magnitudes, f.Phases), nil
	case "sawtooth":
		return gamemath.Synth(gamemath.ShapeSawtooth, f.Harmonics), nil
	case "triangle":
		return gamemath.Synth(gamemath.ShapeTriangle, f.Harmonics), nil
	case "square":
		return gamemath.Synth(gamemath.ShapeSquare, f.Harmonics), nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownFilter, f.Type)
}

// Load reads a library directory from fsys: library.yaml plus every
// animations/*.yaml and reach_poses/*.yaml file.
func Load(fsys fs.FS, dir string) (*Library, error) {
	libPath := path.Join(dir, LibraryFile)
	data, err := fs.ReadFile(fsys, libPath)
	if err != nil {
		return nil, fmt.Errorf("animations: load %s: %w", libPath, err)
	}
	var lf libraryFile
	if err := yaml.Unmarshal(data, &lf); err != nil {
		return nil, fmt.Errorf("animations: unmarshal %s: %w", libPath, err)
	}

	lib := &Library{
		Joints:      lf.Joints,
		Transitions: make(map[SlotPair]TransitionSpec),
		Actions:     make(map[string]ActionSpec),
		Profiles:    make(map[string]*Profile),
	}
	lib.indexJoints()

	if lib.Animations, err = loadAnimationDir(fsys, path.Join(dir, AnimationsDir), lib); err != nil {
		return nil, err
	}
	if lib.ReachPoses, err = loadAnimationDir(fsys, path.Join(dir, ReachPosesDir), lib); err != nil {
		return nil, err
	}
	if err := lib.resolveActions(lf.Actions); err != nil {
		return nil, err
	}
	if err := lib.resolveTransitions(lf.Transitions); err != nil {
		return nil, err
	}
	if err := lib.resolveProfiles(lf.Profiles); err != nil {
		return nil, err
	}

	log.Info("animation library loaded",
		zap.String("dir", dir),
		zap.Int("animations", len(lib.Animations)),
		zap.Int("reach_poses", len(lib.ReachPoses)),
		zap.Int("actions", len(lib.Actions)),
		zap.Int("transitions", len(lib.Transitions)),
		zap.Int("profiles", len(lib.Profiles)))
	return lib, nil
}

func loadAnimationDir(fsys fs.FS, dir string, lib *Library) (map[string]*Animation, error) {
	matches, err := fs.Glob(fsys, path.Join(dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("animations: glob %s: %w", dir, err)
	}
	sort.Strings(matches)

	out := make(map[string]*Animation, len(matches))
	for _, p := range matches {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("animations: load %s: %w", p, err)
		}
		a, err := ParseAnimation(data, lib)
		if err != nil {
			return nil, fmt.Errorf("animations: parse %s: %w", p, err)
		}
		if a.Name == "" {
			a.Name = path.Base(p[:len(p)-len(path.Ext(p))])
		}
		out[a.Name] = a
	}
	return out, nil
}

// ParseAnimation decodes one animation document. Joints are checked against
// the library's reference skeleton when it has one.
func ParseAnimation(data []byte, lib *Library) (*Animation, error) {
	var af animationFile
	if err := yaml.Unmarshal(data, &af); err != nil {
		return nil, err
	}

	c := af.Calibration
	a := &Animation{
		Name: af.Name,
		Calibration: Calibration{
			Frequency:             c.Frequency,
			StrideLength:          c.StrideLength,
			StrideLengthForwards:  c.StrideLengthForwards,
			StrideLengthBackwards: c.StrideLengthBackwards,
			StrideMaxAt:           c.StrideMaxAt,
			StrideMaxAtForwards:   c.StrideMaxAtForwards,
			StrideMaxAtBackwards:  c.StrideMaxAtBackwards,
			StartAngle:            c.StartAngle,
			StartAngleForwards:    c.StartAngleForwards,
			StartAngleBackwards:   c.StartAngleBackwards,
			StopAngleForwards:     c.StopAngleForwards,
			StopAngleBackwards:    c.StopAngleBackwards,
			FootDownLeft:          c.FootDownLeft,
			FootDownRight:         c.FootDownRight,
		},
		Joints: make(map[string]*Joint, len(af.Joints)),
	}

	for name, jf := range af.Joints {
		if lib != nil && len(lib.Joints) > 0 {
			if _, ok := lib.ikChains[name]; !ok {
				return nil, fmt.Errorf("joint %q: %w", name, ErrUnknownJoint)
			}
		}
		j := &Joint{Name: name, Modifiers: jf.Modifiers}
		channels := []struct {
			dst *Curve
			src curveFile
		}{
			{&j.Pitch, jf.Pitch},
			{&j.Yaw, jf.Yaw},
			{&j.Roll, jf.Roll},
			{&j.Sway, jf.Sway},
			{&j.Bob, jf.Bob},
			{&j.Thrust, jf.Thrust},
		}
		for _, ch := range channels {
			ch.dst.Amplitude = ch.src.Amplitude
			ch.dst.Phase = ch.src.Phase
			ch.dst.Offset = ch.src.Offset
			if ch.src.Filter != nil {
				w, err := ch.src.Filter.Build()
				if err != nil {
					return nil, fmt.Errorf("joint %q: %w", name, err)
				}
				ch.dst.Wave = w
			}
		}
		if lp := jf.BobLowPass; lp != nil {
			j.BobLowPass = newLowPass(lp.Peak, lp.Strength, lp.Cutoff, config.Lean.SampleRate)
		}
		a.Joints[name] = j
	}
	return a, nil
}

func (l *Library) resolveActions(files []actionFile) error {
	for _, af := range files {
		pose, ok := l.ReachPoses[af.ReachPose]
		if !ok {
			return fmt.Errorf("animations: action %q: %w %q", af.Name, ErrUnknownReachPose, af.ReachPose)
		}
		strength := 1.0
		if af.Strength != nil {
			strength = *af.Strength
		}
		l.Actions[af.Name] = ActionSpec{
			Name:      af.Name,
			Duration:  af.Duration,
			Strength:  strength,
			ReachPose: pose,
			Delay:     af.Delay,
			Attack:    af.Attack,
			Decay:     af.Decay,
			Sustain:   af.Sustain,
			Release:   af.Release,
			Smoothing: af.Smoothing,
		}
	}
	return nil
}

func (l *Library) resolveTransitions(files []transitionFile) error {
	for _, tf := range files {
		from, ok := config.ParseSlot(tf.From)
		if !ok {
			return fmt.Errorf("animations: transition from %q: %w", tf.From, ErrUnknownSlot)
		}
		to, ok := config.ParseSlot(tf.To)
		if !ok {
			return fmt.Errorf("animations: transition to %q: %w", tf.To, ErrUnknownSlot)
		}
		for _, name := range tf.Actions {
			if _, ok := l.Actions[name]; !ok {
				return fmt.Errorf("animations: transition %s->%s: %w %q", tf.From, tf.To, ErrUnknownAction, name)
			}
		}
		spec := TransitionSpec{
			Duration:    tf.Duration,
			EasingLower: config.Transition.EasingLower,
			EasingUpper: config.Transition.EasingUpper,
			Actions:     tf.Actions,
		}
		if spec.Duration <= 0 {
			spec.Duration = config.Transition.Duration
		}
		if tf.EasingLower != nil {
			spec.EasingLower = mgl64.Vec2(*tf.EasingLower)
		}
		if tf.EasingUpper != nil {
			spec.EasingUpper = mgl64.Vec2(*tf.EasingUpper)
		}
		l.Transitions[SlotPair{Last: from, Next: to}] = spec
	}
	return nil
}

func (l *Library) resolveProfiles(files map[string]map[string]string) error {
	for name, slots := range files {
		p := &Profile{Name: name, Animations: make(map[config.AnimationSlot]*Animation)}
		for key, animName := range slots {
			slot, ok := config.ParseSlot(key)
			if !ok {
				return fmt.Errorf("animations: profile %q slot %q: %w", name, key, ErrUnknownSlot)
			}
			a, ok := l.Animations[animName]
			if !ok {
				return fmt.Errorf("animations: profile %q: %w %q", name, ErrUnknownAnimation, animName)
			}
			p.Animations[slot] = a
		}
		for slot := range config.SlotNames {
			if slot == config.SlotFlyBlend {
				continue
			}
			if p.Animations[slot] == nil {
				return fmt.Errorf("animations: profile %q: %w %s", name, ErrMissingSlot, slot)
			}
		}
		l.Profiles[name] = p
	}
	return nil
}
