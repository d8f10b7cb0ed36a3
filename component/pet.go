package component

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrInvalidConfig wraps every configuration problem found at load time.
var ErrInvalidConfig = errors.New("invalid configuration")

// DefaultWalkSpeed is used when a pet config leaves walk_speed unset.
const DefaultWalkSpeed = 0.7

// PetConfig is the static description of one showcase pet.
type PetConfig struct {
	ID          string
	ImageID     string
	PetID       string
	AssetPrefix string
	WalkSpeed   float64
	Animations  map[string]AnimationDef
	Specials    []string
	// Default is the animation the pet returns to after a special one.
	Default string
	// FrameAliases redirects frame lookups for an animation to another
	// animation's frame group (ape_chef plays idle on its front frames).
	FrameAliases map[string]string
	// Script optionally names a tengo script that picks special animations.
	Script string
}

// DefaultAnimation returns the configured default, walk when unset.
func (p PetConfig) DefaultAnimation() string {
	if p.Default == "" {
		return AnimWalk
	}
	return p.Default
}

// IsDefault reports whether name is a resting animation that buttons never
// show as selected.
func (p PetConfig) IsDefault(name string) bool {
	return name == AnimWalk || name == AnimIdle || name == p.DefaultAnimation()
}

// Animation looks up a def by name.
func (p PetConfig) Animation(name string) (AnimationDef, bool) {
	d, ok := p.Animations[name]
	return d, ok
}

// AnimationNames lists the configured animations sorted by name.
func (p PetConfig) AnimationNames() []string {
	names := make([]string, 0, len(p.Animations))
	for name := range p.Animations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ResolveFrameName maps an animation to the frame group holding its images.
func (p PetConfig) ResolveFrameName(anim string) string {
	if alias, ok := p.FrameAliases[anim]; ok && alias != "" {
		return alias
	}
	return anim
}

// FramePath addresses frame i of anim after alias resolution.
func (p PetConfig) FramePath(base, ext, anim string, i int) string {
	return FramePath(base, p.AssetPrefix, p.ResolveFrameName(anim), i, ext)
}

// FramePaths lists every frame of every animation, the set a preload covers.
func (p PetConfig) FramePaths(base, ext string) []string {
	var paths []string
	for _, name := range p.AnimationNames() {
		def := p.Animations[name]
		for i := 0; i < def.Frames; i++ {
			paths = append(paths, p.FramePath(base, ext, name, i))
		}
	}
	return paths
}

// Validate reports every problem with the config joined into one error.
func (p PetConfig) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if strings.TrimSpace(p.ID) == "" {
		add("pet id is empty")
	}
	if strings.TrimSpace(p.ImageID) == "" {
		add("pet %q: image handle id is empty", p.ID)
	}
	if strings.TrimSpace(p.PetID) == "" {
		add("pet %q: container handle id is empty", p.ID)
	}
	if strings.TrimSpace(p.AssetPrefix) == "" {
		add("pet %q: asset prefix is empty", p.ID)
	}
	if p.WalkSpeed < 0 {
		add("pet %q: walk speed must not be negative", p.ID)
	}
	if len(p.Animations) == 0 {
		add("pet %q: no animations", p.ID)
	}
	for _, name := range p.AnimationNames() {
		if err := p.Animations[name].Validate(); err != nil {
			add("pet %q: animation %q: %v", p.ID, name, err)
		}
	}
	for _, name := range p.Specials {
		if _, ok := p.Animations[name]; !ok {
			add("pet %q: special animation %q is not configured", p.ID, name)
		}
	}
	if _, ok := p.Animations[p.DefaultAnimation()]; !ok {
		add("pet %q: default animation %q is not configured", p.ID, p.DefaultAnimation())
	}
	for from, to := range p.FrameAliases {
		if strings.TrimSpace(to) == "" {
			add("pet %q: frame alias for %q is empty", p.ID, from)
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}
