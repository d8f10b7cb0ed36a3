// Package showcase owns every showcase pet: it builds their animators, wires
// their trigger buttons and reveal effects, and fans out resize and teardown.
package showcase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/milk9111/petshow/assets"
	"github.com/milk9111/petshow/behavior"
	"github.com/milk9111/petshow/clock"
	"github.com/milk9111/petshow/component"
	"github.com/milk9111/petshow/pet"
)

var (
	ErrUnknownPet        = errors.New("unknown pet")
	ErrAlreadyRegistered = errors.New("pet already registered")
)

type Option func(*Coordinator)

func WithPreloader(p assets.Preloader) Option {
	return func(c *Coordinator) { c.preloader = p }
}

func WithLogger(l *log.Logger) Option {
	return func(c *Coordinator) {
		if l != nil {
			c.logger = l
		}
	}
}

func WithRand(rng *rand.Rand) Option {
	return func(c *Coordinator) {
		if rng != nil {
			c.rng = rng
		}
	}
}

// WithObserver receives every pet's events.
func WithObserver(o pet.Observer) Option {
	return func(c *Coordinator) { c.observer = o }
}

// Coordinator is the showcase manager. Like the animators it owns, it runs on
// the scheduler's loop; only background preloads leave it.
type Coordinator struct {
	cfg      component.Showcase
	sched    *clock.Scheduler
	surface  Surface
	registry *Registry

	preloader assets.Preloader
	logger    *log.Logger
	rng       *rand.Rand
	observer  pet.Observer

	presses  map[string]*clock.Timer
	unsubs   map[string]func()
	revealed map[string]bool
	loads    errgroup.Group
}

func New(cfg component.Showcase, sched *clock.Scheduler, surface Surface, registry *Registry, opts ...Option) *Coordinator {
	if registry == nil {
		registry = NewRegistry()
	}
	cfg.Timing = cfg.Timing.WithDefaults()
	c := &Coordinator{
		cfg:      cfg,
		sched:    sched,
		surface:  surface,
		registry: registry,
		logger:   log.Default(),
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		presses:  make(map[string]*clock.Timer),
		unsubs:   make(map[string]func()),
		revealed: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Coordinator) Registry() *Registry { return c.registry }

// Register builds the animator for id, wires its buttons and reveal effect,
// and initializes it synchronously.
func (c *Coordinator) Register(ctx context.Context, id string) (*pet.Animator, error) {
	a, err := c.prepare(id)
	if err != nil {
		return nil, err
	}
	a.Init(ctx)
	return a, nil
}

// RegisterAsync is Register with the preload moved off the loop. The pet
// stays in its loading state until the result is posted back and the
// scheduler next advances.
func (c *Coordinator) RegisterAsync(ctx context.Context, id string) (*pet.Animator, error) {
	a, err := c.prepare(id)
	if err != nil {
		return nil, err
	}
	if !a.Begin() {
		return a, nil
	}
	c.loads.Go(func() error {
		err := a.Preload(ctx)
		c.sched.Post(func() { a.Finish(err) })
		return nil
	})
	return a, nil
}

// WaitLoads blocks until every background preload has posted its result.
func (c *Coordinator) WaitLoads() {
	_ = c.loads.Wait()
}

// RegisterAll registers every configured pet in order. A pet that fails is
// skipped; the errors are joined.
func (c *Coordinator) RegisterAll(ctx context.Context) error {
	return c.registerAll(ctx, c.Register)
}

func (c *Coordinator) RegisterAllAsync(ctx context.Context) error {
	return c.registerAll(ctx, c.RegisterAsync)
}

func (c *Coordinator) registerAll(ctx context.Context, register func(context.Context, string) (*pet.Animator, error)) error {
	var errs []error
	for _, id := range c.cfg.PetIDs() {
		if _, err := register(ctx, id); err != nil {
			c.logger.Printf("showcase: %v", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (c *Coordinator) prepare(id string) (*pet.Animator, error) {
	cfg, ok := c.cfg.Pet(id)
	if !ok {
		return nil, fmt.Errorf("showcase: %w: %s", ErrUnknownPet, id)
	}
	if _, ok := c.registry.Get(id); ok {
		return nil, fmt.Errorf("showcase: %w: %s", ErrAlreadyRegistered, id)
	}

	h, err := c.surface.Handles(cfg)
	if err != nil {
		return nil, fmt.Errorf("showcase: %s: %w", id, err)
	}
	buttons := c.surface.Buttons(id)
	if h.Buttons == nil && buttons != nil {
		h.Buttons = buttons
	}

	a := pet.New(cfg, c.sched, h,
		pet.WithTiming(c.cfg.Timing),
		pet.WithAssets(c.cfg.AssetBase, c.cfg.Extension),
		pet.WithPreloader(c.preloader),
		pet.WithLogger(c.logger),
		pet.WithRand(c.rng),
		pet.WithPicker(behavior.ForPet(cfg, c.rng, c.logger)),
		pet.WithObserver(c.observer),
	)
	if err := c.registry.Add(a); err != nil {
		return nil, err
	}

	if buttons != nil {
		buttons.OnClick(func(name string) { c.click(id, buttons, name) })
	}
	c.watchVisibility(id)
	return a, nil
}

// click forwards a button press. Clicks on a pet that is still loading are
// dropped without a press effect.
func (c *Coordinator) click(id string, buttons ButtonGroup, name string) {
	a, ok := c.registry.Get(id)
	if !ok || !a.TriggerUserAnimation(name) {
		return
	}

	key := id + "/" + name
	if t, ok := c.presses[key]; ok {
		t.Stop()
	}
	buttons.Press(name, true)
	c.presses[key] = c.sched.After(c.cfg.Timing.ButtonPress, func() {
		delete(c.presses, key)
		buttons.Press(name, false)
	})
}

func (c *Coordinator) watchVisibility(id string) {
	v := c.surface.Visibility(id)
	if v == nil || c.revealed[id] {
		return
	}
	cancel := v.OnEnter(func() {
		if c.revealed[id] {
			return
		}
		c.revealed[id] = true
		v.Reveal()
		if cancel, ok := c.unsubs[id]; ok && cancel != nil {
			delete(c.unsubs, id)
			cancel()
		}
	})
	// OnEnter may fire before it returns when the pet is already on screen.
	if c.revealed[id] {
		if cancel != nil {
			cancel()
		}
		return
	}
	c.unsubs[id] = cancel
}

// TriggerAnimalAnimation forwards a user trigger. Unknown ids are ignored.
func (c *Coordinator) TriggerAnimalAnimation(id, name string) bool {
	a, ok := c.registry.Get(id)
	if !ok {
		return false
	}
	return a.TriggerUserAnimation(name)
}

// CurrentAnimation reports a pet's playing animation; ok is false for an
// unknown id or a pet that has not started.
func (c *Coordinator) CurrentAnimation(id string) (string, bool) {
	a, ok := c.registry.Get(id)
	if !ok {
		return "", false
	}
	return a.CurrentAnimation()
}

func (c *Coordinator) Animator(id string) (*pet.Animator, bool) {
	return c.registry.Get(id)
}

// Resize recalculates every pet's bounds.
func (c *Coordinator) Resize() {
	c.registry.Each(func(a *pet.Animator) { a.RecalculateBounds() })
}

// Remove destroys one pet and drops everything wired to it.
func (c *Coordinator) Remove(id string) bool {
	a, ok := c.registry.Remove(id)
	if !ok {
		return false
	}
	a.Destroy()
	c.release(id)
	return true
}

func (c *Coordinator) release(id string) {
	if cancel, ok := c.unsubs[id]; ok {
		delete(c.unsubs, id)
		if cancel != nil {
			cancel()
		}
	}
	prefix := id + "/"
	for key, t := range c.presses {
		if strings.HasPrefix(key, prefix) {
			t.Stop()
			delete(c.presses, key)
		}
	}
}

// Teardown destroys every pet and stops every timer the coordinator armed.
func (c *Coordinator) Teardown() {
	c.registry.Each(func(a *pet.Animator) {
		a.Destroy()
		c.release(a.ID())
	})
	c.registry.Clear()
	for key, t := range c.presses {
		t.Stop()
		delete(c.presses, key)
	}
}
