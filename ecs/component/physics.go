package component

import "github.com/jakecoffman/cp"

// PhysicsBody stores Chipmunk2D runtime data for an actor.
type PhysicsBody struct {
	Body   *cp.Body
	Shape  *cp.Shape
	Radius float64
	Layer  uint
	// Height is the world Y the body sits at; the space itself is flat.
	Height float64
}

var PhysicsBodyComponent = NewComponentKind[PhysicsBody]()

// Obstacle is a static box blocking movement and sight.
type Obstacle struct {
	Shape *cp.Shape
	SizeX float64
	SizeY float64
	SizeZ float64
	Layer uint
}

var ObstacleComponent = NewComponentKind[Obstacle]()
