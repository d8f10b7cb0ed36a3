// Command petterm runs the pet showcase in a terminal. Each pet gets a track
// row and a row of trigger buttons; the ambient walkers scroll underneath.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/milk9111/petshow/assets"
	"github.com/milk9111/petshow/clock"
	"github.com/milk9111/petshow/pet"
	"github.com/milk9111/petshow/prefabs"
	"github.com/milk9111/petshow/stage"
)

const (
	frameRate  = 16 * time.Millisecond
	cursorRate = 500 * time.Millisecond
	// maxStep caps one scheduler advance so a stalled terminal does not
	// replay seconds of movement at once.
	maxStep = 250 * time.Millisecond
)

type app struct {
	screen tcell.Screen
	sched  *clock.Scheduler
	stage  *stage.Stage
	view   *view
	chimes *chimes
	cursor *clock.Clock
	logger *log.Logger
}

func main() {
	configPath := flag.String("config", prefabs.ShowcaseFile, "showcase config to load")
	assetDir := flag.String("assets", ".", "directory frame paths are resolved against")
	logPath := flag.String("log", "", "append logs to this file")
	sound := flag.Bool("sound", false, "play a chime when a pet is triggered")
	async := flag.Bool("async", true, "load frames in the background")
	seed := flag.Int64("seed", 0, "random seed; 0 seeds from the clock")
	flag.Parse()

	logger, closeLog, err := openLog(*logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	cfg, err := prefabs.LoadShowcase(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize: %v\n", err)
		os.Exit(1)
	}
	screen.EnableMouse()

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	a := &app{
		screen: screen,
		sched:  clock.NewScheduler(),
		logger: logger,
	}
	w, h := screen.Size()
	lib := assets.NewDirLibrary(*assetDir)
	a.view = newView(lib, w, h)
	a.cursor = clock.NewClock(a.sched, cursorRate, func() { a.view.cursor = !a.view.cursor })
	a.cursor.Start()

	var observe pet.Observer
	if *sound {
		c, err := newChimes()
		if err != nil {
			// Non-fatal, the showcase runs without sound.
			logger.Printf("petterm: audio init failed: %v", err)
		}
		a.chimes = c
		observe = c.observe
	}

	a.stage = stage.New(cfg, a.sched, a.view, a.view,
		stage.WithPreloader(lib),
		stage.WithLogger(logger),
		stage.WithRand(rand.New(rand.NewSource(*seed))),
		stage.WithObserver(observe),
		stage.WithAsyncLoad(*async),
	)
	if err := a.stage.Init(context.Background()); err != nil {
		logger.Printf("petterm: %v", err)
	}

	a.run()
	a.cleanup()
}

func (a *app) run() {
	ticker := time.NewTicker(frameRate)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				close(eventChan)
				return
			}
			eventChan <- ev
		}
	}()

	last := time.Now()
	for {
		select {
		case ev, ok := <-eventChan:
			if !ok || !a.handleEvent(ev) {
				return
			}
		case now := <-ticker.C:
			a.sched.Advance(min(now.Sub(last), maxStep))
			last = now
			a.draw()
		}
	}
}

// handleEvent returns false when the user asked to quit.
func (a *app) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyTab:
			a.view.next()
		case tcell.KeyRune:
			if ev.Rune() == 'q' {
				return false
			}
			a.view.key(ev.Rune())
		}
	case *tcell.EventMouse:
		if ev.Buttons()&tcell.Button1 != 0 {
			x, y := ev.Position()
			a.view.click(x, y)
		}
	case *tcell.EventResize:
		a.screen.Sync()
		a.view.resize(a.screen.Size())
		a.stage.Resize()
	}
	return true
}

func (a *app) draw() {
	a.screen.Clear()
	a.view.draw(a.screen)
	a.screen.Show()
}

func (a *app) cleanup() {
	a.stage.Destroy()
	a.cursor.Stop()
	if a.chimes != nil {
		a.chimes.close()
	}
	a.screen.Fini()
}

// openLog sends logs to path, or drops them when path is empty since the
// terminal is owned by the screen.
func openLog(path string) (*log.Logger, func(), error) {
	if path == "" {
		return log.New(io.Discard, "", 0), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return log.New(f, "", log.LstdFlags), func() { _ = f.Close() }, nil
}
