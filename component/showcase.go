package component

import (
	"errors"
	"fmt"
	"strings"
)

// WalkerConfig describes the ambient walkers: walk-only pets with no
// animation catalogue.
type WalkerConfig struct {
	IDs     []string
	Prefix  string
	Frames  int
	FPS     float64
	Speed   float64
	Spacing float64
	// Static lists clickable pets that bounce but never walk.
	Static []string
}

// FramePath addresses walk frame i.
func (w WalkerConfig) FramePath(base, ext string, i int) string {
	return FramePath(base, w.Prefix, AnimWalk, i, ext)
}

// Walk returns the walk animation as a def.
func (w WalkerConfig) Walk() AnimationDef {
	return AnimationDef{Frames: w.Frames, Loops: LoopForever, FPS: w.FPS}
}

// Validate checks a walker config that declares at least one walker.
func (w WalkerConfig) Validate() error {
	if len(w.IDs) == 0 {
		return nil
	}
	var errs []error
	if strings.TrimSpace(w.Prefix) == "" {
		errs = append(errs, errors.New("walkers: prefix is empty"))
	}
	if err := w.Walk().Validate(); err != nil {
		errs = append(errs, fmt.Errorf("walkers: %w", err))
	}
	if w.Speed <= 0 {
		errs = append(errs, fmt.Errorf("walkers: speed must be positive, got %g", w.Speed))
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}

// Showcase is the whole engine configuration.
type Showcase struct {
	AssetBase string
	Extension string
	Timing    Timing
	Pets      []PetConfig
	Walkers   WalkerConfig
}

// Pet finds a pet config by id.
func (s Showcase) Pet(id string) (PetConfig, bool) {
	for _, p := range s.Pets {
		if p.ID == id {
			return p, true
		}
	}
	return PetConfig{}, false
}

// PetIDs lists pet ids in declaration order.
func (s Showcase) PetIDs() []string {
	ids := make([]string, 0, len(s.Pets))
	for _, p := range s.Pets {
		ids = append(ids, p.ID)
	}
	return ids
}

// Validate checks every pet, the walkers and id uniqueness.
func (s Showcase) Validate() error {
	var errs []error
	seen := make(map[string]bool, len(s.Pets))
	for _, p := range s.Pets {
		if seen[p.ID] {
			errs = append(errs, fmt.Errorf("%w: duplicate pet id %q", ErrInvalidConfig, p.ID))
		}
		seen[p.ID] = true
		if err := p.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := s.Walkers.Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
