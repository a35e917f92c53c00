package scenes

import (
	"fmt"

	cfg "github.com/automoto/gaitkit/config"
	"github.com/automoto/gaitkit/fonts"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // TODO: migrate to text/v2
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi/ecs"
)

const (
	hudMargin     = 10
	hudLineHeight = 18
	hudPanelWidth = 330
)

const controlsHelp = "WASD/arrows move  Q/E turn  space rise  C sink  shift run\n" +
	"tab scenario  F arms  O power  R reset  P pause  F3 probes"

// onOff labels a toggle for the HUD
func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// hudLines is the readout of the animator's state for the frame.
func (vs *ViewerScene) hudLines() []string {
	ctx := vs.animator.Context()
	m := ctx.Motion
	return []string{
		fmt.Sprintf("%s / %s  %s", vs.animator.Mode(), vs.animator.Slot(), m.Direction),
		fmt.Sprintf("speed %.2f m/s  wheel %5.1f", m.Speed, m.Wheel.Position),
		fmt.Sprintf("ground %.2f m  lean %+.0f / %+.0f", m.DistanceToGround, vs.pose.LeanPitch, vs.pose.LeanRoll),
		fmt.Sprintf("stride %.2f m  hips %.2f m",
			ctx.Avatar.StrideLength(vs.animator.Slot(), m.Direction), ctx.Avatar.HipsToFeet),
		fmt.Sprintf("transitions %d  actions %d", ctx.Chain.Depth(), ctx.Actions.Count()),
		fmt.Sprintf("scenario %s  power %s  arms free %s",
			vs.scenarios[vs.current], onOff(vs.animator.Powered()), onOff(vs.animator.ArmsFree())),
	}
}

// drawHUD renders the state readout in the top-left corner and the key
// help along the bottom.
func (vs *ViewerScene) drawHUD(_ *ecs.ECS, screen *ebiten.Image) {
	lines := vs.hudLines()

	vector.FillRect(screen,
		hudMargin/2, hudMargin/2,
		hudPanelWidth, float32(len(lines)*hudLineHeight+hudMargin),
		fade(cfg.Viewer.BackgroundColor, 0.7), false)

	face := fonts.HUD.Get()
	for i, line := range lines {
		text.Draw(screen, line, face, hudMargin, hudMargin+(i+1)*hudLineHeight-4, cfg.Viewer.HUDColor)
	}

	h := screen.Bounds().Dy()
	text.Draw(screen, controlsHelp, fonts.HUDSmall.Get(), hudMargin, h-2*hudLineHeight, cfg.Viewer.HUDColor)

	if vs.paused {
		w := screen.Bounds().Dx()
		text.Draw(screen, "PAUSED", fonts.HUDTitle.Get(), w/2-45, h/2, cfg.Viewer.HUDColor)
	}
}
