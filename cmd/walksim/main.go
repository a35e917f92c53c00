// Command walksim plays a scripted motion through the animator headlessly
// and logs what the animator makes of it.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/automoto/gaitkit/animator"
	"github.com/automoto/gaitkit/assets"
	"github.com/automoto/gaitkit/assets/animations"
	"github.com/automoto/gaitkit/components"
	"github.com/automoto/gaitkit/config"
	"github.com/automoto/gaitkit/internal/log"
	"github.com/automoto/gaitkit/scenario"
	"github.com/automoto/gaitkit/systems"
	"github.com/automoto/gaitkit/terrain"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
	"go.uber.org/zap"
)

func main() {
	name := flag.String("scenario", "walk", "Scenario to play ("+strings.Join(scenario.Names(), ", ")+")")
	frames := flag.Int("frames", 0, "Frames to run (0 = length of the scenario)")
	rate := flag.Float64("rate", 60, "Frames per second")
	overrides := flag.String("config", "", "Ini file overriding the default tuning")
	libraryDir := flag.String("assets", "", "Animation library directory (empty = embedded library)")
	watch := flag.Bool("watch", false, "Reload the library directory when it changes")
	realtime := flag.Bool("realtime", false, "Pace frames at the frame rate instead of running flat out")
	level := flag.String("level", "", "Terrain map to walk on (empty = flat ground)")
	spawn := flag.Int("spawn", 0, "Spawn point index on the terrain map")
	rig := flag.Bool("rig", false, "Pose a stick skeleton and let the animator measure it")
	store := flag.Bool("store", false, "Load and save stride calibration in the user data directory")
	every := flag.Int("every", 30, "Log a summary every N frames (0 = changes only)")
	logLevel := flag.String("log", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	log.Init(*logLevel)
	defer log.Sync()

	if err := run(options{
		scenario:   *name,
		frames:     *frames,
		rate:       *rate,
		overrides:  *overrides,
		libraryDir: *libraryDir,
		watch:      *watch,
		realtime:   *realtime,
		level:      *level,
		spawn:      *spawn,
		rig:        *rig,
		store:      *store,
		every:      *every,
	}); err != nil {
		log.Error("walksim failed", zap.Error(err))
		log.Sync()
		os.Exit(1)
	}
}

type options struct {
	scenario   string
	frames     int
	rate       float64
	overrides  string
	libraryDir string
	watch      bool
	realtime   bool
	level      string
	spawn      int
	rig        bool
	store      bool
	every      int
}

func loadLibrary(dir string) (*animations.Library, error) {
	if dir == "" {
		return assets.LoadLibrary()
	}
	return animations.Load(os.DirFS(dir), ".")
}

func run(o options) error {
	if o.overrides != "" {
		if err := config.LoadOverrides(o.overrides); err != nil {
			return err
		}
	}
	if o.rate <= 0 {
		return fmt.Errorf("rate must be positive, got %v", o.rate)
	}
	dt := 1 / o.rate

	s, ok := scenario.Lookup(o.scenario)
	if !ok {
		return fmt.Errorf("unknown scenario %q", o.scenario)
	}

	lib, err := loadLibrary(o.libraryDir)
	if err != nil {
		return err
	}

	world := donburi.NewWorld()
	hips := config.Locomotion.HipsToFeet
	start := mgl64.Vec3{0, hips, 0}
	var probe components.Probe = scenario.FlatGround{}
	if o.level != "" {
		data, err := assets.LoadLevel(o.level)
		if err != nil {
			return err
		}
		p, err := terrain.Load(world, data)
		if err != nil {
			return err
		}
		ground, ok := p.Spawn(data, o.spawn)
		if !ok {
			return fmt.Errorf("level %s has no spawn point %d", o.level, o.spawn)
		}
		start = ground.Add(mgl64.Vec3{0, hips, 0})
		probe = p
	}

	opts := []animator.Option{animator.WithWorld(world), animator.WithProbe(probe)}
	var skeleton *scenario.Skeleton
	if o.rig {
		skeleton = scenario.NewSkeleton(start)
		opts = append(opts, animator.WithJointLocator(skeleton))
	}
	if o.store {
		cs, err := systems.OpenCalibrationStore()
		if err != nil {
			return err
		}
		opts = append(opts, animator.WithCalibrationStore(cs))
	}
	a, err := animator.New(lib, opts...)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			log.Warn("calibration not saved", zap.Error(err))
		}
	}()

	if o.watch && o.libraryDir != "" {
		w, err := animations.NewWatcher(o.libraryDir)
		if err != nil {
			return err
		}
		defer w.Close()
		a.Watch(w)
		go func() {
			for err := range w.Errors {
				log.Warn("library reload failed", zap.Error(err))
			}
		}()
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	runner := scenario.NewRunner(s, probe, start, hips)
	total := o.frames
	if total <= 0 {
		total = int(s.Duration()/dt) + 1
	}

	log.Info("playing scenario",
		zap.String("scenario", s.Name),
		zap.Int("frames", total),
		zap.Float64("dt", dt),
		zap.String("level", o.level))

	rec := newRecorder(o.every)
	loop := frameLoop{rate: o.rate, realtime: o.realtime, stop: stop}
	ran := loop.run(total, func(frame int) {
		kin := runner.Step(dt)
		pose := a.Update(dt, kin)
		runner.ApplyMotor(pose.Motor)
		if skeleton != nil {
			skeleton.Apply(kin, pose)
		}
		rec.record(frame, a, kin, pose)
	})
	if ran < total {
		log.Info("interrupted", zap.Int("frame", ran))
	}
	rec.summary(a)
	return nil
}
