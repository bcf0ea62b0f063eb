package component

import "github.com/milk9111/lurker/common"

// PlayerControl drives the stand-in player. Enabled is cleared when an enemy
// catches the player.
type PlayerControl struct {
	Enabled bool
	Speed   float64
	// Script names a controller under prefabs/scripts. Empty stands still.
	Script string
	// Goal is handed to the script; levels use it to walk the player somewhere.
	Goal common.Vec3
	Time float64
}

var PlayerControlComponent = NewComponentKind[PlayerControl]()
