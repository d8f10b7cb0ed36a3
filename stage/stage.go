// Package stage assembles a whole showcase: the coordinated pets and the
// ambient walkers, sharing one scheduler.
package stage

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"time"

	"github.com/milk9111/petshow/assets"
	"github.com/milk9111/petshow/clock"
	"github.com/milk9111/petshow/component"
	"github.com/milk9111/petshow/pet"
	"github.com/milk9111/petshow/showcase"
	"github.com/milk9111/petshow/walker"
)

type Option func(*Stage)

func WithPreloader(p assets.Preloader) Option {
	return func(s *Stage) { s.preloader = p }
}

func WithLogger(l *log.Logger) Option {
	return func(s *Stage) {
		if l != nil {
			s.logger = l
		}
	}
}

func WithRand(rng *rand.Rand) Option {
	return func(s *Stage) {
		if rng != nil {
			s.rng = rng
		}
	}
}

func WithObserver(o pet.Observer) Option {
	return func(s *Stage) { s.observer = o }
}

// WithAsyncLoad preloads pet frames off the loop. The caller keeps advancing
// the scheduler while loads finish.
func WithAsyncLoad(async bool) Option {
	return func(s *Stage) { s.async = async }
}

type Stage struct {
	cfg   component.Showcase
	sched *clock.Scheduler

	petSurface    showcase.Surface
	walkerSurface walker.Surface

	preloader assets.Preloader
	logger    *log.Logger
	rng       *rand.Rand
	observer  pet.Observer
	async     bool

	pets    *showcase.Coordinator
	walkers *walker.Manager
}

// New builds a stage. walkers may be nil when the frontend has no ambient
// walkers.
func New(cfg component.Showcase, sched *clock.Scheduler, pets showcase.Surface, walkers walker.Surface, opts ...Option) *Stage {
	s := &Stage{
		cfg:           cfg,
		sched:         sched,
		petSurface:    pets,
		walkerSurface: walkers,
		logger:        log.Default(),
		rng:           rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.pets = showcase.New(cfg, sched, pets, showcase.NewRegistry(),
		showcase.WithPreloader(s.preloader),
		showcase.WithLogger(s.logger),
		showcase.WithRand(s.rng),
		showcase.WithObserver(s.observer),
	)
	s.walkers = walker.New(cfg.Walkers, cfg.Timing, sched, cfg.AssetBase, cfg.Extension, s.logger)
	return s
}

// Init registers every pet and starts the walkers. Entities that fail to
// wire are logged and skipped; their errors are joined.
func (s *Stage) Init(ctx context.Context) error {
	var errs []error
	register := s.pets.RegisterAll
	if s.async {
		register = s.pets.RegisterAllAsync
	}
	if err := register(ctx); err != nil {
		errs = append(errs, err)
	}
	if s.walkerSurface != nil {
		if err := s.walkers.Init(s.walkerSurface); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// WaitLoads blocks until background preloads have posted their results.
func (s *Stage) WaitLoads() {
	s.pets.WaitLoads()
}

// Resize restarts the walkers and recalculates every pet's bounds.
func (s *Stage) Resize() {
	s.walkers.HandleResize()
	s.pets.Resize()
}

func (s *Stage) TriggerAnimalAnimation(id, name string) bool {
	return s.pets.TriggerAnimalAnimation(id, name)
}

func (s *Stage) CurrentAnimation(id string) (string, bool) {
	return s.pets.CurrentAnimation(id)
}

// Bounce plays the click bounce on a walker or static pet.
func (s *Stage) Bounce(id string) bool {
	return s.walkers.Bounce(id)
}

func (s *Stage) Pets() *showcase.Coordinator { return s.pets }
func (s *Stage) Walkers() *walker.Manager    { return s.walkers }
func (s *Stage) Config() component.Showcase  { return s.cfg }

// Destroy stops every pet and walker timer.
func (s *Stage) Destroy() {
	s.pets.Teardown()
	s.walkers.Destroy()
}
