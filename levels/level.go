// Package levels loads sandbox layouts: where the player starts, which walls
// stand where, and which enemy prefabs spawn on which routes.
package levels

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/lurker/common"
)

//go:embed *.yaml
var LevelsFS embed.FS

var (
	ErrInvalidLevel = errors.New("levels: invalid level")
	ErrNoEnemies    = errors.New("levels: level has no enemies")
)

type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

func (p Point) Vec3() common.Vec3 {
	return common.Vec3{X: p.X, Y: p.Y, Z: p.Z}
}

type Player struct {
	Prefab   string  `yaml:"prefab"`
	Position Point   `yaml:"position"`
	Yaw      float64 `yaml:"yaw"`
	// Script overrides the prefab's controller.
	Script string `yaml:"script"`
	Goal   Point  `yaml:"goal"`
}

type Obstacle struct {
	Name     string `yaml:"name"`
	Position Point  `yaml:"position"`
	Size     Point  `yaml:"size"`
}

type Enemy struct {
	Name      string  `yaml:"name"`
	Prefab    string  `yaml:"prefab"`
	Position  Point   `yaml:"position"`
	Yaw       float64 `yaml:"yaw"`
	Waypoints []Point `yaml:"waypoints"`
}

// Level is a sandbox layout. Yaw values are degrees, 0 facing +Z.
type Level struct {
	Name      string     `yaml:"name"`
	Seed      int64      `yaml:"seed"`
	TPS       int        `yaml:"tps"`
	Player    Player     `yaml:"player"`
	Obstacles []Obstacle `yaml:"obstacles"`
	Enemies   []Enemy    `yaml:"enemies"`
}

// Load reads name from levels/ on disk if present, else from the embedded set.
func Load(name string) (*Level, error) {
	clean := cleanLevelPath(name)
	data, err := os.ReadFile(filepath.Join("levels", filepath.FromSlash(clean)))
	if err != nil {
		data, err = LevelsFS.ReadFile(clean)
	}
	if err != nil {
		return nil, fmt.Errorf("levels: read %s: %w", name, err)
	}
	return Parse(data)
}

// LoadFile reads a level from an explicit path.
func LoadFile(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("levels: read %s: %w", path, err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Level, error) {
	lvl := &Level{TPS: 60, Player: Player{Prefab: "player.yaml"}}
	if err := yaml.Unmarshal(data, lvl); err != nil {
		return nil, fmt.Errorf("levels: unmarshal: %w", err)
	}
	if err := lvl.Validate(); err != nil {
		return nil, err
	}
	return lvl, nil
}

func (l *Level) Validate() error {
	if l.TPS <= 0 {
		return fmt.Errorf("%w: tps %d must be positive", ErrInvalidLevel, l.TPS)
	}
	if strings.TrimSpace(l.Player.Prefab) == "" {
		return fmt.Errorf("%w: player prefab is empty", ErrInvalidLevel)
	}
	for i, o := range l.Obstacles {
		if o.Size.X <= 0 || o.Size.Z <= 0 {
			return fmt.Errorf("%w: obstacle %d (%s) needs a positive x/z size", ErrInvalidLevel, i, o.Name)
		}
	}
	if len(l.Enemies) == 0 {
		return ErrNoEnemies
	}
	for i, e := range l.Enemies {
		if strings.TrimSpace(e.Prefab) == "" {
			return fmt.Errorf("%w: enemy %d has no prefab", ErrInvalidLevel, i)
		}
	}
	return nil
}

// TimeStep is the fixed delta implied by TPS.
func (l *Level) TimeStep() float64 {
	if l.TPS <= 0 {
		return 1.0 / 60.0
	}
	return 1 / float64(l.TPS)
}

func Names() ([]string, error) {
	entries, err := LevelsFS.ReadDir(".")
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names, nil
}

func cleanLevelPath(name string) string {
	s := filepath.ToSlash(name)
	s = strings.TrimPrefix(s, "levels/")
	if filepath.Ext(s) == "" {
		s += ".yaml"
	}
	return s
}
