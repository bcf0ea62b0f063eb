package ecs

import (
	"errors"
	"fmt"
	"math"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/lurker/common"
	"github.com/milk9111/lurker/enemy"
)

// Collision layers. A shape's layer is its filter category; perception masks
// select which layers can block sight.
const (
	LayerWall uint = 1 << iota
	LayerEnemy
	LayerPlayer
)

var layerNames = map[string]uint{
	"wall":   LayerWall,
	"enemy":  LayerEnemy,
	"player": LayerPlayer,
}

var (
	ErrUnknownLayer = errors.New("ecs: unknown collision layer")
	ErrNoBody       = errors.New("ecs: entity has no physics body")
)

// LayerMask resolves layer names to a mask. No names means every layer.
func LayerMask(names ...string) (uint, error) {
	if len(names) == 0 {
		return enemy.AllLayers, nil
	}
	var mask uint
	for _, name := range names {
		bit, ok := layerNames[name]
		if !ok {
			return 0, fmt.Errorf("%w: %q", ErrUnknownLayer, name)
		}
		mask |= bit
	}
	return mask, nil
}

// PhysicsWorld owns the Chipmunk space. The level floor is the space's plane:
// world X maps to space X and world Z maps to space Y. Height is not simulated.
type PhysicsWorld struct {
	space *cp.Space

	shapeToEntity map[*cp.Shape]Entity
	entityShapes  map[Entity][]*cp.Shape
	bodies        map[Entity]*cp.Body
	groups        map[Entity]uint
}

// NewPhysicsWorld creates an empty, gravity-free space.
func NewPhysicsWorld() *PhysicsWorld {
	space := cp.NewSpace()
	space.Iterations = 10
	space.SetGravity(cp.Vector{})

	return &PhysicsWorld{
		space:         space,
		shapeToEntity: make(map[*cp.Shape]Entity),
		entityShapes:  make(map[Entity][]*cp.Shape),
		bodies:        make(map[Entity]*cp.Body),
		groups:        make(map[Entity]uint),
	}
}

// Space returns the underlying Chipmunk space.
func (pw *PhysicsWorld) Space() *cp.Space {
	if pw == nil {
		return nil
	}
	return pw.space
}

func toSpace(v common.Vec3) cp.Vector {
	return cp.Vector{X: v.X, Y: v.Z}
}

func fromSpace(v cp.Vector, y float64) common.Vec3 {
	return common.Vec3{X: v.X, Y: y, Z: v.Y}
}

// AddObstacle adds a static box centred on center with the given X/Z extents.
func (pw *PhysicsWorld) AddObstacle(e Entity, center common.Vec3, sizeX, sizeZ float64, layer uint) *cp.Shape {
	bb := cp.BB{
		L: center.X - sizeX/2,
		B: center.Z - sizeZ/2,
		R: center.X + sizeX/2,
		T: center.Z + sizeZ/2,
	}
	shape := cp.NewBox2(pw.space.StaticBody, bb, 0)
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, layer, cp.ALL_CATEGORIES))
	pw.addShape(e, shape)
	return shape
}

// AddActor adds a kinematic circle body for e. The entity id doubles as the
// filter group so rays cast on behalf of e skip its own shapes.
func (pw *PhysicsWorld) AddActor(e Entity, pos common.Vec3, radius float64, layer uint) *cp.Body {
	body := cp.NewKinematicBody()
	body.SetPosition(toSpace(pos))
	body.UserData = e
	pw.space.AddBody(body)

	group := uint(e.id())
	pw.bodies[e] = body
	pw.groups[e] = group

	shape := cp.NewCircle(body, radius, cp.Vector{})
	shape.SetFilter(cp.NewShapeFilter(group, layer, cp.ALL_CATEGORIES))
	pw.addShape(e, shape)
	return body
}

// AttachCollider adds a circle for child on parent's body, offset on the floor
// plane. Hits on it report child, not parent.
func (pw *PhysicsWorld) AttachCollider(child, parent Entity, offset common.Vec3, radius float64, layer uint) (*cp.Shape, error) {
	body, ok := pw.bodies[parent]
	if !ok {
		return nil, fmt.Errorf("attach %s to %s: %w", child, parent, ErrNoBody)
	}
	group := pw.groups[parent]
	pw.groups[child] = group

	shape := cp.NewCircle(body, radius, toSpace(offset))
	shape.SetFilter(cp.NewShapeFilter(group, layer, cp.ALL_CATEGORIES))
	pw.addShape(child, shape)
	return shape, nil
}

func (pw *PhysicsWorld) addShape(e Entity, shape *cp.Shape) {
	shape.UserData = e
	pw.space.AddShape(shape)
	pw.shapeToEntity[shape] = e
	pw.entityShapes[e] = append(pw.entityShapes[e], shape)
}

// RemoveEntity drops every shape registered for e and its body, if it owns one.
func (pw *PhysicsWorld) RemoveEntity(e Entity) {
	if pw == nil {
		return
	}
	for _, shape := range pw.entityShapes[e] {
		pw.space.RemoveShape(shape)
		delete(pw.shapeToEntity, shape)
	}
	delete(pw.entityShapes, e)
	if body, ok := pw.bodies[e]; ok {
		pw.space.RemoveBody(body)
		delete(pw.bodies, e)
	}
	delete(pw.groups, e)
}

// Body returns the body owned by e.
func (pw *PhysicsWorld) Body(e Entity) (*cp.Body, bool) {
	if pw == nil {
		return nil, false
	}
	b, ok := pw.bodies[e]
	return b, ok
}

// EntityForShape maps a shape back to the entity it was registered for.
func (pw *PhysicsWorld) EntityForShape(shape *cp.Shape) (Entity, bool) {
	if pw == nil || shape == nil {
		return 0, false
	}
	e, ok := pw.shapeToEntity[shape]
	return e, ok
}

// Teleport moves e's body and refreshes its shapes in the spatial index.
func (pw *PhysicsWorld) Teleport(e Entity, pos common.Vec3) error {
	body, ok := pw.Body(e)
	if !ok {
		return fmt.Errorf("teleport %s: %w", e, ErrNoBody)
	}
	body.SetPosition(toSpace(pos))
	pw.space.ReindexShapesForBody(body)
	return nil
}

// Step advances the physics simulation.
func (pw *PhysicsWorld) Step(dt float64) {
	if pw == nil || pw.space == nil {
		return
	}
	pw.space.Step(dt)
}

// Raycast finds the first shape on the floor-plane projection of the ray
// origin + dir*t, t in [0, maxDistance]. Shapes in ignore's group and shapes
// outside mask are skipped. A ray with no horizontal extent hits nothing.
func (pw *PhysicsWorld) Raycast(origin, dir common.Vec3, maxDistance float64, mask uint, ignore Entity) (enemy.Hit, bool) {
	if pw == nil || maxDistance <= 0 {
		return enemy.Hit{}, false
	}
	reach := dir.Scale(maxDistance)
	if math.Hypot(reach.X, reach.Z) < 1e-9 {
		return enemy.Hit{}, false
	}

	start := toSpace(origin)
	end := toSpace(origin.Add(reach))
	filter := cp.NewShapeFilter(pw.groups[ignore], cp.ALL_CATEGORIES, mask)

	info := pw.space.SegmentQueryFirst(start, end, 0, filter)
	if info.Shape == nil {
		return enemy.Hit{}, false
	}
	e, ok := pw.shapeToEntity[info.Shape]
	if !ok {
		return enemy.Hit{}, false
	}
	return enemy.Hit{
		Point:    origin.Add(reach.Scale(info.Alpha)),
		Distance: maxDistance * info.Alpha,
		Collider: uint64(e),
	}, true
}

// Occluder returns a view of the world that raycasts on behalf of self.
func (pw *PhysicsWorld) Occluder(self Entity) enemy.Occluder {
	return occluder{pw: pw, self: self}
}

type occluder struct {
	pw   *PhysicsWorld
	self Entity
}

func (o occluder) Raycast(origin, dir common.Vec3, maxDistance float64, mask uint) (enemy.Hit, bool) {
	return o.pw.Raycast(origin, dir, maxDistance, mask, o.self)
}

// Position returns e's body position on the floor plane at height y.
func (pw *PhysicsWorld) Position(e Entity, y float64) (common.Vec3, bool) {
	body, ok := pw.Body(e)
	if !ok {
		return common.Vec3{}, false
	}
	return fromSpace(body.Position(), y), true
}

// Velocity returns e's body velocity on the floor plane.
func (pw *PhysicsWorld) Velocity(e Entity) (common.Vec3, bool) {
	body, ok := pw.Body(e)
	if !ok {
		return common.Vec3{}, false
	}
	return fromSpace(body.Velocity(), 0), true
}

// SetVelocity sets e's body velocity from its floor-plane components.
func (pw *PhysicsWorld) SetVelocity(e Entity, v common.Vec3) {
	if body, ok := pw.Body(e); ok {
		body.SetVelocityVector(toSpace(v))
	}
}
