package main

import (
	"errors"
	"flag"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/sirupsen/logrus"

	"github.com/milk9111/lurker/game"
	"github.com/milk9111/lurker/levels"
	"github.com/milk9111/lurker/logger"
	"github.com/milk9111/lurker/prefabs"
)

func main() {
	levelName := flag.String("level", "courtyard", "level name in levels/ (basename, .yaml optional) or a path to a level file")
	headless := flag.Bool("headless", false, "step the level without opening a window")
	ticks := flag.Int("ticks", 600, "ticks to run in headless mode")
	tps := flag.Int("tps", 0, "override the level tick rate")
	watch := flag.Bool("watch", false, "reload the level when prefab, script or level files change")
	logLevel := flag.String("log-level", "info", "log level (debug, info, warn, error)")
	flag.Parse()

	logger.Init(*logLevel)
	log := logger.For("sandbox")

	lvl, err := loadLevel(*levelName)
	if err != nil {
		log.WithError(err).Fatal("load level")
	}
	g, err := game.New(lvl, game.Options{TPS: *tps})
	if err != nil {
		log.WithError(err).Fatal("start level")
	}

	s := &sandbox{game: g, levelName: *levelName, log: log}
	if *watch {
		w, err := prefabs.NewWatcher(watchDirs()...)
		if err != nil {
			log.WithError(err).Warn("file watching disabled")
		} else {
			s.watcher = w
			defer w.Close()
		}
	}

	if *headless {
		s.runHeadless(*ticks)
		return
	}

	width, height := g.Size()
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle("lurker sandbox: " + lvl.Name)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(g.TPS())

	if err := ebiten.RunGame(s); err != nil && !errors.Is(err, ebiten.Termination) {
		log.WithError(err).Fatal("run")
	}
}

type sandbox struct {
	game      *game.Game
	watcher   *prefabs.Watcher
	levelName string
	log       *logrus.Entry
	paused    bool
}

func (s *sandbox) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		s.reload("manual")
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		s.paused = !s.paused
	}
	s.pollWatcher()

	if s.paused && !inpututil.IsKeyJustPressed(ebiten.KeyPeriod) {
		return nil
	}
	s.game.Step()
	return nil
}

func (s *sandbox) Draw(screen *ebiten.Image) {
	s.game.Draw(screen)
}

func (s *sandbox) Layout(outsideWidth, outsideHeight int) (int, int) {
	return s.game.Size()
}

func (s *sandbox) runHeadless(ticks int) {
	for i := 0; i < ticks; i++ {
		s.pollWatcher()
		s.game.Step()
	}

	catches, attacks := s.game.Outcomes()
	s.log.WithFields(logrus.Fields{
		"level":   s.game.Level().Name,
		"ticks":   s.game.World().Tick(),
		"catches": catches,
		"attacks": attacks,
		"dead":    s.game.Dead(),
	}).Info("headless run finished")
}

func (s *sandbox) pollWatcher() {
	if s.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-s.watcher.Events:
			if !ok {
				s.watcher = nil
				return
			}
			s.reload(path)
		case err, ok := <-s.watcher.Errors:
			if !ok {
				s.watcher = nil
				return
			}
			s.log.WithError(err).Warn("watch")
		default:
			return
		}
	}
}

func (s *sandbox) reload(reason string) {
	lvl, err := loadLevel(s.levelName)
	if err == nil {
		err = s.game.Reload(lvl)
	}
	if err != nil {
		s.log.WithError(err).WithField("reason", reason).Error("reload failed, keeping current level")
		return
	}
	s.log.WithField("reason", reason).Info("level reloaded")
}

// loadLevel treats name as a file path when it points at one, else as a
// level name.
func loadLevel(name string) (*levels.Level, error) {
	if filepath.Ext(name) != "" {
		if _, err := os.Stat(name); err == nil {
			return levels.LoadFile(name)
		}
	}
	return levels.Load(name)
}

func watchDirs() []string {
	var dirs []string
	for _, dir := range []string{"prefabs", filepath.Join("prefabs", "scripts"), "levels"} {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}
