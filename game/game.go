// Package game runs a level headlessly: it builds the world from a level
// layout and its prefabs, then advances it one fixed step at a time.
package game

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"

	"github.com/milk9111/lurker/common"
	"github.com/milk9111/lurker/ecs"
	"github.com/milk9111/lurker/ecs/entity"
	"github.com/milk9111/lurker/ecs/system"
	"github.com/milk9111/lurker/levels"
	"github.com/milk9111/lurker/logger"
	"github.com/milk9111/lurker/prefabs"
)

const (
	defaultWidth  = 1280
	defaultHeight = 720
	defaultScale  = 32
)

// DeathHandler is told when an enemy catches the player.
type DeathHandler = system.DeathHandler

type Options struct {
	// Death is notified once per level run, after the built-in latch.
	Death DeathHandler
	// Scripts loads player controllers. Defaults to prefabs.LoadScript.
	Scripts system.ScriptLoader
	// TPS overrides the level's tick rate when positive.
	TPS int

	Width  int
	Height int
	Scale  float64
}

// Game owns one running level. It is not safe for concurrent use.
type Game struct {
	opts Options
	log  *logrus.Entry

	level     *levels.Level
	world     *ecs.World
	scheduler *ecs.Scheduler
	outcomes  *system.OutcomeSystem
	death     *deathLatch
	player    ecs.Entity
}

func New(level *levels.Level, opts Options) (*Game, error) {
	if opts.Width <= 0 {
		opts.Width = defaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = defaultHeight
	}
	if opts.Scale <= 0 {
		opts.Scale = defaultScale
	}
	g := &Game{opts: opts, log: logger.For("game")}
	if err := g.Reload(level); err != nil {
		return nil, err
	}
	return g, nil
}

// Reload replaces the running level with a fresh build of level. On error
// the current level keeps running.
func (g *Game) Reload(level *levels.Level) error {
	if level == nil {
		return fmt.Errorf("game: %w: nil level", levels.ErrInvalidLevel)
	}
	if err := level.Validate(); err != nil {
		return fmt.Errorf("game: %s: %w", level.Name, err)
	}

	r, err := g.build(level)
	if err != nil {
		return fmt.Errorf("game: build %s: %w", level.Name, err)
	}

	g.level = level
	g.world = r.world
	g.scheduler = r.scheduler
	g.outcomes = r.outcomes
	g.death = r.death
	g.player = r.player
	g.log.WithFields(logrus.Fields{
		"level":    level.Name,
		"enemies":  len(level.Enemies),
		"entities": len(ecs.Entities(r.world)),
	}).Info("level loaded")
	return nil
}

type run struct {
	world     *ecs.World
	scheduler *ecs.Scheduler
	outcomes  *system.OutcomeSystem
	death     *deathLatch
	player    ecs.Entity
}

func (g *Game) build(level *levels.Level) (*run, error) {
	w := ecs.NewWorld()
	w.SetPhysicsWorld(ecs.NewPhysicsWorld())
	w.SetTimeStep(level.TimeStep())
	if g.opts.TPS > 0 {
		w.SetTimeStep(1 / float64(g.opts.TPS))
	}

	for _, o := range level.Obstacles {
		if _, err := entity.BuildObstacle(w, o.Position.Vec3(), o.Size.Vec3()); err != nil {
			return nil, fmt.Errorf("obstacle %s: %w", o.Name, err)
		}
	}

	playerSpec, err := prefabs.LoadPlayerSpec(level.Player.Prefab)
	if err != nil {
		return nil, err
	}
	player, err := entity.BuildPlayer(w, playerSpec, entity.PlayerPlacement{
		Position: level.Player.Position.Vec3(),
		Yaw:      degToRad(level.Player.Yaw),
		Script:   level.Player.Script,
		Goal:     level.Player.Goal.Vec3(),
	})
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(level.Seed))
	specs := make(map[string]*prefabs.EnemySpec)
	for i, e := range level.Enemies {
		spec, ok := specs[e.Prefab]
		if !ok {
			spec, err = prefabs.LoadEnemySpec(e.Prefab)
			if err != nil {
				return nil, err
			}
			specs[e.Prefab] = spec
		}

		name := e.Name
		if name == "" {
			name = fmt.Sprintf("%s-%d", spec.Name, i+1)
		}
		waypoints := make([]common.Vec3, 0, len(e.Waypoints))
		for _, p := range e.Waypoints {
			waypoints = append(waypoints, p.Vec3())
		}
		if _, err := entity.BuildEnemy(w, spec, entity.EnemyPlacement{
			Name:      name,
			Prefab:    e.Prefab,
			Position:  e.Position.Vec3(),
			Yaw:       degToRad(e.Yaw),
			Waypoints: waypoints,
		}, player, rng); err != nil {
			return nil, err
		}
	}

	death := &deathLatch{next: g.opts.Death, log: g.log.WithField("level", level.Name)}
	outcomes := system.NewOutcomeSystem(death)
	scheduler := ecs.NewScheduler(
		system.NewPlayerScriptSystem(g.opts.Scripts),
		system.NewEnemySystem(),
		system.NewNavigationSystem(),
		system.NewPhysicsSystem(),
		outcomes,
		system.NewGizmoRenderer(system.Camera{
			Center: level.Player.Position.Vec3(),
			Scale:  g.opts.Scale,
			Width:  g.opts.Width,
			Height: g.opts.Height,
		}),
	)

	return &run{world: w, scheduler: scheduler, outcomes: outcomes, death: death, player: player}, nil
}

// Step advances the level by one fixed tick.
func (g *Game) Step() {
	g.scheduler.Update(g.world)
}

// Draw renders the debug view of the current world.
func (g *Game) Draw(screen *ebiten.Image) {
	g.scheduler.Draw(g.world, screen)
}

func (g *Game) World() *ecs.World {
	return g.world
}

func (g *Game) Level() *levels.Level {
	return g.level
}

func (g *Game) Player() ecs.Entity {
	return g.player
}

// Dead reports whether the player has been caught in the current level run.
func (g *Game) Dead() bool {
	return g.death.dead
}

// Cause is the catch that killed the player, if any.
func (g *Game) Cause() (ecs.OutcomeEvent, bool) {
	return g.death.evt, g.death.dead
}

// Outcomes returns the catch and attack counts for the current level run.
func (g *Game) Outcomes() (catches, attacks int) {
	return g.outcomes.Catches, g.outcomes.Attacks
}

// Size is the debug view's logical screen size.
func (g *Game) Size() (int, int) {
	return g.opts.Width, g.opts.Height
}

// TPS is the tick rate the world is stepped at.
func (g *Game) TPS() int {
	return int(math.Round(1 / g.world.TimeStep()))
}

// deathLatch records the first catch and forwards it.
type deathLatch struct {
	dead bool
	evt  ecs.OutcomeEvent
	next DeathHandler
	log  *logrus.Entry
}

func (d *deathLatch) TriggerDeath(evt ecs.OutcomeEvent) {
	if d.dead {
		return
	}
	d.dead = true
	d.evt = evt
	d.log.WithField("enemy", evt.Name).Warn("player died")
	if d.next != nil {
		d.next.TriggerDeath(evt)
	}
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}
