package system

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/jakecoffman/cp"
	"github.com/sirupsen/logrus"

	"github.com/milk9111/lurker/common"
	"github.com/milk9111/lurker/ecs"
	"github.com/milk9111/lurker/ecs/component"
	"github.com/milk9111/lurker/logger"
	"github.com/milk9111/lurker/prefabs"
)

// playerDispatchScript is appended to every controller; scripts define
// update(engine) and the runtime calls it once per tick.
const playerDispatchScript = `
update(__engine)
`

// ScriptLoader returns controller source by name.
type ScriptLoader func(name string) ([]byte, error)

type playerScript struct {
	name     string
	compiled *tengo.Compiled
	move     common.Vec3
}

// PlayerScriptSystem runs the stand-in player's tengo controller. The script
// asks for a move direction; the system turns it into body velocity. Disabled
// controls hold the body still.
type PlayerScriptSystem struct {
	load     ScriptLoader
	runtimes map[ecs.Entity]*playerScript
	failed   map[ecs.Entity]string
	log      *logrus.Entry
}

func NewPlayerScriptSystem(load ScriptLoader) *PlayerScriptSystem {
	if load == nil {
		load = prefabs.LoadScript
	}
	return &PlayerScriptSystem{
		load:     load,
		runtimes: make(map[ecs.Entity]*playerScript),
		failed:   make(map[ecs.Entity]string),
		log:      logger.For("player_script"),
	}
}

func (s *PlayerScriptSystem) Update(w *ecs.World) {
	dt := w.TimeStep()
	ecs.ForEach3(w, component.PlayerControlComponent, component.PhysicsBodyComponent, component.TransformComponent,
		func(e ecs.Entity, ctl *component.PlayerControl, pb *component.PhysicsBody, t *component.Transform) {
			if pb.Body == nil {
				return
			}
			move := s.step(e, ctl, t, dt)
			v := move.Flat()
			if v.Len() > 1 {
				v = v.Normalize()
			}
			v = v.Scale(ctl.Speed)
			pb.Body.SetVelocityVector(cp.Vector{X: v.X, Y: v.Z})
		})

	for e := range s.runtimes {
		if !ecs.IsAlive(w, e) {
			delete(s.runtimes, e)
			delete(s.failed, e)
		}
	}
}

func (s *PlayerScriptSystem) step(e ecs.Entity, ctl *component.PlayerControl, t *component.Transform, dt float64) common.Vec3 {
	if !ctl.Enabled || ctl.Script == "" {
		return common.Vec3{}
	}
	ctl.Time += dt

	rt, err := s.runtime(e, ctl.Script)
	if err != nil {
		if s.failed[e] != ctl.Script {
			s.failed[e] = ctl.Script
			s.log.WithError(err).WithField("script", ctl.Script).Error("load player script")
		}
		return common.Vec3{}
	}

	rt.move = common.Vec3{}
	if err := rt.run(buildPlayerEngine(ctl, t, dt, rt)); err != nil {
		s.log.WithError(err).WithField("script", ctl.Script).Warn("player script update")
		return common.Vec3{}
	}
	return rt.move
}

func (s *PlayerScriptSystem) runtime(e ecs.Entity, name string) (*playerScript, error) {
	if rt, ok := s.runtimes[e]; ok && rt.name == name {
		return rt, nil
	}

	src, err := s.load(name)
	if err != nil {
		return nil, err
	}

	script := tengo.NewScript(append(append([]byte(nil), src...), playerDispatchScript...))
	_ = script.Add("__engine", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", name, err)
	}

	rt := &playerScript{name: name, compiled: compiled}
	s.runtimes[e] = rt
	delete(s.failed, e)
	return rt, nil
}

func (rt *playerScript) run(engine *tengo.ImmutableMap) error {
	if err := rt.compiled.Set("__engine", engine); err != nil {
		return err
	}
	return rt.compiled.Run()
}

func buildPlayerEngine(ctl *component.PlayerControl, t *component.Transform, dt float64, rt *playerScript) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["move"] = &tengo.UserFunction{Name: "move", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 2 {
			return tengo.FalseValue, nil
		}
		x, okX := tengo.ToFloat64(args[0])
		z, okZ := tengo.ToFloat64(args[1])
		if !okX || !okZ {
			return tengo.FalseValue, nil
		}
		rt.move = common.Vec3{X: x, Z: z}
		return tengo.TrueValue, nil
	}}

	values["position"] = &tengo.UserFunction{Name: "position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return vecToArray(t.Position), nil
	}}

	values["goal"] = &tengo.UserFunction{Name: "goal", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return vecToArray(ctl.Goal), nil
	}}

	values["time"] = &tengo.UserFunction{Name: "time", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Float{Value: ctl.Time}, nil
	}}

	values["dt"] = &tengo.UserFunction{Name: "dt", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Float{Value: dt}, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

// vecToArray exposes a floor position to scripts as [x, z].
func vecToArray(v common.Vec3) *tengo.Array {
	return &tengo.Array{Value: []tengo.Object{&tengo.Float{Value: v.X}, &tengo.Float{Value: v.Z}}}
}
