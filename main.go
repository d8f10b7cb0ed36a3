package main

import (
	"flag"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/petshow/prefabs"
)

func main() {
	configPath := flag.String("config", prefabs.ShowcaseFile, "showcase config in prefabs/ (or an absolute path)")
	assetDir := flag.String("assets", ".", "directory frame paths are resolved against")
	async := flag.Bool("async", true, "load frames in the background")
	watch := flag.Bool("watch", false, "rebuild the showcase when the config or a picker script changes")
	seed := flag.Int64("seed", 0, "random seed; 0 seeds from the clock")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("petshow")

	game, err := NewGame(*configPath, *assetDir, *async, *watch, *seed)
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
