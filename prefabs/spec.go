package prefabs

import (
	"errors"
	"fmt"
	"math/rand"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/lurker/common"
	"github.com/milk9111/lurker/ecs"
	"github.com/milk9111/lurker/enemy"
	"github.com/milk9111/lurker/nav"
)

var (
	ErrInvalidSpec     = errors.New("prefabs: invalid spec")
	ErrUnknownBehavior = errors.New("prefabs: unknown behavior")
)

const (
	BehaviorPatrol = "patrol"
	BehaviorSleep  = "sleep"
)

func LoadSpec[T any](filename string) (T, error) {
	var spec T
	if err := decode(filename, &spec); err != nil {
		var zero T
		return zero, err
	}
	return spec, nil
}

// decode unmarshals filename over out, so fields absent from the file keep
// whatever out already holds.
func decode(filename string, out any) error {
	data, err := Load(filename)
	if err != nil {
		return fmt.Errorf("prefabs: load %s: %w", filename, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}
	return nil
}

type Vec3Spec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

func (v Vec3Spec) Vec3() common.Vec3 {
	return common.Vec3{X: v.X, Y: v.Y, Z: v.Z}
}

type PerceptionSpec struct {
	ViewDistance float64 `yaml:"view_distance"`
	ViewAngle    float64 `yaml:"view_angle"`
	HeightOffset float64 `yaml:"height_offset"`
	// Occluders names the collision layers that block sight. Empty means all.
	Occluders []string `yaml:"occluders"`
}

type CombatSpec struct {
	CatchRange  float64 `yaml:"catch_range"`
	AttackRange float64 `yaml:"attack_range"`
}

type MoveSpec struct {
	Speed            float64 `yaml:"speed"`
	StoppingDistance float64 `yaml:"stopping_distance"`
	Radius           float64 `yaml:"radius"`
	EyeHeight        float64 `yaml:"eye_height"`
}

type PatrolSpec struct {
	IdleChance     float64 `yaml:"idle_chance"`
	IdleMin        float64 `yaml:"idle_min"`
	IdleMax        float64 `yaml:"idle_max"`
	LostSightDelay float64 `yaml:"lost_sight_delay"`
}

type SleepSpec struct {
	WakeDelay      float64 `yaml:"wake_delay"`
	LostSightDelay float64 `yaml:"lost_sight_delay"`
}

type EnemySpec struct {
	Name       string         `yaml:"name"`
	Behavior   string         `yaml:"behavior"`
	Perception PerceptionSpec `yaml:"perception"`
	Combat     CombatSpec     `yaml:"combat"`
	ChaseDelay float64        `yaml:"chase_delay"`
	Move       MoveSpec       `yaml:"move"`
	Patrol     PatrolSpec     `yaml:"patrol"`
	Sleep      SleepSpec      `yaml:"sleep"`
}

// DefaultEnemySpec is the baseline every enemy prefab is decoded over.
func DefaultEnemySpec() EnemySpec {
	p := enemy.DefaultPerception()
	c := enemy.DefaultConfig()
	pc := enemy.DefaultPatrolConfig()
	sc := enemy.DefaultSleepConfig()
	return EnemySpec{
		Name:     "enemy",
		Behavior: BehaviorPatrol,
		Perception: PerceptionSpec{
			ViewDistance: p.ViewDistance,
			ViewAngle:    p.ViewAngle,
			HeightOffset: p.HeightOffset,
		},
		Combat:     CombatSpec{CatchRange: c.CatchRange, AttackRange: c.AttackRange},
		ChaseDelay: c.ChaseDelay,
		Move: MoveSpec{
			Speed:            nav.DefaultSpeed,
			StoppingDistance: nav.DefaultStoppingDistance,
			Radius:           0.4,
			EyeHeight:        1.6,
		},
		Patrol: PatrolSpec{
			IdleChance:     pc.IdleChance,
			IdleMin:        pc.IdleMin,
			IdleMax:        pc.IdleMax,
			LostSightDelay: pc.LostSightDelay,
		},
		Sleep: SleepSpec{WakeDelay: sc.WakeDelay, LostSightDelay: sc.LostSightDelay},
	}
}

func LoadEnemySpec(filename string) (*EnemySpec, error) {
	spec := DefaultEnemySpec()
	if err := decode(filename, &spec); err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", filename, err)
	}
	return &spec, nil
}

func (s *EnemySpec) Validate() error {
	switch s.Behavior {
	case BehaviorPatrol, BehaviorSleep:
	default:
		return fmt.Errorf("%w %q", ErrUnknownBehavior, s.Behavior)
	}

	var problems []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			problems = append(problems, fmt.Errorf("%w: "+format, append([]any{ErrInvalidSpec}, args...)...))
		}
	}
	check(s.Perception.ViewDistance > 0, "view_distance %v must be positive", s.Perception.ViewDistance)
	check(s.Perception.ViewAngle > 0 && s.Perception.ViewAngle <= 360, "view_angle %v must be in (0, 360]", s.Perception.ViewAngle)
	check(s.Combat.CatchRange >= 0, "catch_range %v must not be negative", s.Combat.CatchRange)
	check(s.Combat.AttackRange >= 0, "attack_range %v must not be negative", s.Combat.AttackRange)
	check(s.ChaseDelay > 0, "chase_delay %v must be positive", s.ChaseDelay)
	check(s.Move.Speed > 0, "move.speed %v must be positive", s.Move.Speed)
	check(s.Move.Radius > 0, "move.radius %v must be positive", s.Move.Radius)
	check(s.Patrol.IdleChance >= 0 && s.Patrol.IdleChance <= 1, "patrol.idle_chance %v must be in [0, 1]", s.Patrol.IdleChance)
	check(s.Patrol.IdleMin >= 0 && s.Patrol.IdleMin <= s.Patrol.IdleMax, "patrol idle range [%v, %v] is invalid", s.Patrol.IdleMin, s.Patrol.IdleMax)
	check(s.Patrol.LostSightDelay >= 0, "patrol.lost_sight_delay %v must not be negative", s.Patrol.LostSightDelay)
	check(s.Sleep.WakeDelay > 0, "sleep.wake_delay %v must be positive", s.Sleep.WakeDelay)
	check(s.Sleep.LostSightDelay >= 0, "sleep.lost_sight_delay %v must not be negative", s.Sleep.LostSightDelay)
	if _, err := ecs.LayerMask(s.Perception.Occluders...); err != nil {
		problems = append(problems, err)
	}
	return errors.Join(problems...)
}

// AgentConfig builds the agent configuration for an instance named name.
func (s *EnemySpec) AgentConfig(name string) (enemy.Config, error) {
	mask, err := ecs.LayerMask(s.Perception.Occluders...)
	if err != nil {
		return enemy.Config{}, err
	}
	if name == "" {
		name = s.Name
	}
	return enemy.Config{
		Name: name,
		Perception: enemy.Perception{
			ViewDistance:  s.Perception.ViewDistance,
			ViewAngle:     s.Perception.ViewAngle,
			HeightOffset:  s.Perception.HeightOffset,
			OcclusionMask: mask,
		},
		CatchRange:  s.Combat.CatchRange,
		AttackRange: s.Combat.AttackRange,
		ChaseDelay:  s.ChaseDelay,
	}, nil
}

// NewStrategy builds the behavior policy. Waypoints only apply to patrols;
// a nil rng gets a fixed seed.
func (s *EnemySpec) NewStrategy(waypoints []common.Vec3, rng enemy.Rand) (enemy.Strategy, error) {
	switch s.Behavior {
	case BehaviorPatrol:
		if rng == nil {
			rng = rand.New(rand.NewSource(1))
		}
		return enemy.NewPatrolStrategy(enemy.PatrolConfig{
			Waypoints:      waypoints,
			IdleChance:     s.Patrol.IdleChance,
			IdleMin:        s.Patrol.IdleMin,
			IdleMax:        s.Patrol.IdleMax,
			LostSightDelay: s.Patrol.LostSightDelay,
			Rand:           rng,
		}), nil
	case BehaviorSleep:
		return enemy.NewSleepStrategy(enemy.SleepConfig{
			WakeDelay:      s.Sleep.WakeDelay,
			LostSightDelay: s.Sleep.LostSightDelay,
		}), nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownBehavior, s.Behavior)
	}
}

// ColliderSpec is an extra collider parented to the owning actor.
type ColliderSpec struct {
	Name   string   `yaml:"name"`
	Offset Vec3Spec `yaml:"offset"`
	Radius float64  `yaml:"radius"`
}

type PlayerSpec struct {
	Name   string  `yaml:"name"`
	Speed  float64 `yaml:"speed"`
	Radius float64 `yaml:"radius"`
	// Script is a controller under scripts/. Empty leaves the player still.
	Script    string         `yaml:"script"`
	Colliders []ColliderSpec `yaml:"colliders"`
}

func DefaultPlayerSpec() PlayerSpec {
	return PlayerSpec{Name: "player", Speed: 2.5, Radius: 0.35}
}

func LoadPlayerSpec(filename string) (*PlayerSpec, error) {
	spec := DefaultPlayerSpec()
	if err := decode(filename, &spec); err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", filename, err)
	}
	return &spec, nil
}

func (s *PlayerSpec) Validate() error {
	if s.Speed < 0 {
		return fmt.Errorf("%w: speed %v must not be negative", ErrInvalidSpec, s.Speed)
	}
	if s.Radius <= 0 {
		return fmt.Errorf("%w: radius %v must be positive", ErrInvalidSpec, s.Radius)
	}
	for _, c := range s.Colliders {
		if c.Radius <= 0 {
			return fmt.Errorf("%w: collider %q radius %v must be positive", ErrInvalidSpec, c.Name, c.Radius)
		}
	}
	return nil
}
