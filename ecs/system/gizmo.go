package system

import (
	"fmt"
	"image/color"
	"math"
	"sort"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/milk9111/lurker/common"
	"github.com/milk9111/lurker/ecs"
	"github.com/milk9111/lurker/ecs/component"
)

// Camera maps the floor plane to screen pixels, top-down with +Z up.
type Camera struct {
	Center common.Vec3
	Scale  float64
	Width  int
	Height int
}

func (c Camera) project(p common.Vec3) (float32, float32) {
	x := (p.X-c.Center.X)*c.Scale + float64(c.Width)/2
	y := float64(c.Height)/2 - (p.Z-c.Center.Z)*c.Scale
	return float32(x), float32(y)
}

// GizmoRenderer draws walls, actors, enemy view cones and sight lines: green
// while the enemy can see the player, red otherwise.
type GizmoRenderer struct {
	Camera Camera
}

func NewGizmoRenderer(cam Camera) *GizmoRenderer {
	return &GizmoRenderer{Camera: cam}
}

func (g *GizmoRenderer) Update(*ecs.World) {}

func (g *GizmoRenderer) Draw(w *ecs.World, screen *ebiten.Image) {
	screen.Fill(colornames.Black)
	g.drawObstacles(w, screen)
	g.drawBodies(w, screen)
	g.drawEnemies(w, screen)
	g.drawStatus(w, screen)
}

func (g *GizmoRenderer) drawObstacles(w *ecs.World, screen *ebiten.Image) {
	ecs.ForEach2(w, component.ObstacleComponent, component.TransformComponent, func(_ ecs.Entity, o *component.Obstacle, t *component.Transform) {
		x, y := g.Camera.project(common.Vec3{X: t.Position.X - o.SizeX/2, Z: t.Position.Z + o.SizeZ/2})
		wdt := float32(o.SizeX * g.Camera.Scale)
		hgt := float32(o.SizeZ * g.Camera.Scale)
		vector.FillRect(screen, x, y, wdt, hgt, colornames.Dimgray, false)
		vector.StrokeRect(screen, x, y, wdt, hgt, 1, colornames.Lightgrey, false)
	})
}

func (g *GizmoRenderer) drawBodies(w *ecs.World, screen *ebiten.Image) {
	ecs.ForEach2(w, component.PhysicsBodyComponent, component.TransformComponent, func(e ecs.Entity, pb *component.PhysicsBody, t *component.Transform) {
		clr := color.Color(colornames.Orange)
		if ecs.Has(w, e, component.PlayerTagComponent) {
			clr = colornames.Deepskyblue
			if ctl, ok := ecs.Get(w, e, component.PlayerControlComponent); ok && !ctl.Enabled {
				clr = colornames.Crimson
			}
		}
		cx, cy := g.Camera.project(t.Position)
		vector.StrokeCircle(screen, cx, cy, float32(pb.Radius*g.Camera.Scale), 2, clr, true)
		hx, hy := g.Camera.project(t.Position.Add(t.Forward().Scale(pb.Radius)))
		vector.StrokeLine(screen, cx, cy, hx, hy, 2, clr, true)
	})
}

func (g *GizmoRenderer) drawEnemies(w *ecs.World, screen *ebiten.Image) {
	ecs.ForEach2(w, component.EnemyComponent, component.TransformComponent, func(_ ecs.Entity, en *component.Enemy, t *component.Transform) {
		if en.Agent == nil {
			return
		}
		p := en.Agent.Config().Perception
		ox, oy := g.Camera.project(t.Position)

		half := p.ViewAngle / 2 * math.Pi / 180
		for _, edge := range []float64{t.Yaw - half, t.Yaw + half} {
			ex, ey := g.Camera.project(t.Position.Add(common.YawForward(edge).Scale(p.ViewDistance)))
			vector.StrokeLine(screen, ox, oy, ex, ey, 1, colornames.Yellow, true)
		}

		target, ok := en.Agent.TargetPosition()
		if !ok {
			return
		}
		clr := colornames.Red
		if en.Agent.CanSeePlayer() {
			clr = colornames.Lime
		}
		tx, ty := g.Camera.project(target)
		vector.StrokeLine(screen, ox, oy, tx, ty, 1, clr, true)
	})
}

func (g *GizmoRenderer) drawStatus(w *ecs.World, screen *ebiten.Image) {
	var lines []string
	ecs.ForEach2(w, component.EnemyComponent, component.AnimatorComponent, func(_ ecs.Entity, en *component.Enemy, anim *component.Animator) {
		if en.Agent == nil {
			return
		}
		lines = append(lines, fmt.Sprintf("%s: %s chasing=%v moving=%v cues=%s",
			en.Agent.Name(), en.Agent.State(), en.Agent.IsChasing(), en.Agent.Moving(), activeCues(anim)))
	})
	sort.Strings(lines)
	lines = append([]string{fmt.Sprintf("tick %d", w.Tick())}, lines...)
	ebitenutil.DebugPrintAt(screen, strings.Join(lines, "\n"), 8, 8)
}

func activeCues(anim *component.Animator) string {
	var on []string
	for cue, v := range anim.Bools {
		if v {
			on = append(on, string(cue))
		}
	}
	sort.Strings(on)
	if anim.Last != "" {
		on = append(on, "!"+string(anim.Last))
	}
	if len(on) == 0 {
		return "-"
	}
	return strings.Join(on, ",")
}
