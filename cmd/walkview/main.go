// Command walkview opens a window on the animator: drive the avatar from
// the keyboard or a gamepad, or let a scenario play, and watch the stick
// figure walk.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/automoto/gaitkit/assets"
	"github.com/automoto/gaitkit/assets/animations"
	"github.com/automoto/gaitkit/config"
	"github.com/automoto/gaitkit/fonts"
	"github.com/automoto/gaitkit/internal/log"
	"github.com/automoto/gaitkit/scenes"
	"github.com/automoto/gaitkit/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
	"golang.org/x/image/font/gofont/goregular"
)

type Scene interface {
	Update()
	Draw(screen *ebiten.Image)
}

type Game struct {
	scene Scene
	res   config.Resolution
}

func NewGame(scene Scene, res config.Resolution) *Game {
	return &Game{scene: scene, res: res}
}

func (g *Game) Update() error {
	g.scene.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *Game) Layout(width, height int) (int, int) {
	return g.res.Width, g.res.Height
}

func loadFonts() error {
	if err := fonts.LoadFont(fonts.HUD, goregular.TTF); err != nil {
		return err
	}
	if err := fonts.LoadFontWithSize(fonts.HUDSmall, goregular.TTF, 11); err != nil {
		return err
	}
	return fonts.LoadFontWithSize(fonts.HUDTitle, goregular.TTF, 32)
}

func loadLibrary(dir string) (*animations.Library, error) {
	if dir == "" {
		return assets.LoadLibrary()
	}
	return animations.Load(os.DirFS(dir), ".")
}

func main() {
	name := flag.String("scenario", "", "Scenario to play (empty = drive from the keyboard)")
	overrides := flag.String("config", "", "Ini file overriding the default tuning")
	libraryDir := flag.String("assets", "", "Animation library directory (empty = embedded library)")
	watch := flag.Bool("watch", false, "Reload the library directory when it changes")
	level := flag.String("level", "proving", "Terrain map to walk on (empty = flat ground)")
	spawn := flag.Int("spawn", 0, "Spawn point index on the terrain map")
	store := flag.Bool("store", true, "Load and save stride calibration in the user data directory")
	armsFree := flag.Bool("arms-free", false, "Leave the arms unanimated")
	resolution := flag.Int("res", config.Viewer.DefaultResolutionIndex, "Window size preset")
	debug := flag.Bool("debug", false, "Draw the terrain probes")
	logLevel := flag.String("log", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	log.Init(*logLevel)
	defer log.Sync()

	if err := run(options{
		scenario:   *name,
		overrides:  *overrides,
		libraryDir: *libraryDir,
		watch:      *watch,
		level:      *level,
		spawn:      *spawn,
		store:      *store,
		armsFree:   *armsFree,
		resolution: *resolution,
		debug:      *debug,
	}); err != nil {
		log.Error("walkview failed", zap.Error(err))
		log.Sync()
		os.Exit(1)
	}
}

type options struct {
	scenario   string
	overrides  string
	libraryDir string
	watch      bool
	level      string
	spawn      int
	store      bool
	armsFree   bool
	resolution int
	debug      bool
}

func run(o options) error {
	if o.overrides != "" {
		if err := config.LoadOverrides(o.overrides); err != nil {
			return err
		}
	}
	if o.resolution < 0 || o.resolution >= len(config.Viewer.Resolutions) {
		return fmt.Errorf("no window size preset %d", o.resolution)
	}
	res := config.Viewer.Resolutions[o.resolution]

	if err := loadFonts(); err != nil {
		return err
	}
	lib, err := loadLibrary(o.libraryDir)
	if err != nil {
		return err
	}

	opts := scenes.Options{
		Library:  lib,
		Spawn:    o.spawn,
		Scenario: o.scenario,
		ArmsFree: o.armsFree,
		Debug:    o.debug,
	}
	if o.level != "" {
		if opts.Level, err = assets.LoadLevel(o.level); err != nil {
			return err
		}
	}
	if o.store {
		cs, err := systems.OpenCalibrationStore()
		if err != nil {
			log.Warn("calibration store unavailable", zap.Error(err))
		} else {
			opts.Store = cs
		}
	}
	if o.watch && o.libraryDir != "" {
		w, err := animations.NewWatcher(o.libraryDir)
		if err != nil {
			return err
		}
		defer w.Close()
		go func() {
			for err := range w.Errors {
				log.Warn("library reload failed", zap.Error(err))
			}
		}()
		opts.Watcher = w
	}

	scene, err := scenes.NewViewerScene(opts)
	if err != nil {
		return err
	}

	ebiten.SetWindowSize(res.Width, res.Height)
	ebiten.SetWindowTitle("gaitkit")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeOnlyFullscreenEnabled)

	runErr := ebiten.RunGame(NewGame(scene, res))
	if err := scene.Close(); err != nil {
		log.Warn("calibration not saved", zap.Error(err))
	}
	if errors.Is(runErr, ebiten.Termination) {
		return nil
	}
	return runErr
}
