package component

import (
	"github.com/milk9111/lurker/enemy"
	"github.com/milk9111/lurker/nav"
)

// Enemy holds a live enemy agent and the navigator it drives.
type Enemy struct {
	Prefab string
	Agent  *enemy.Agent
	Nav    *nav.Agent
}

var EnemyComponent = NewComponentKind[Enemy]()

// Eyes is the sight origin, Height above the entity's transform.
type Eyes struct {
	Height float64
}

var EyesComponent = NewComponentKind[Eyes]()
