package systems

import "github.com/yohamta/donburi"

// UpdateLiveActions samples and advances the actions not owned by a
// transition.
func UpdateLiveActions(w donburi.World) {
	eachPowered(w, func(ctx *LocomotionContext) {
		ctx.Actions.Update(ctx.Dt())
	})
}
