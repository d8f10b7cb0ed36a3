package pet

import (
	"log"
	"math/rand"

	"github.com/milk9111/petshow/assets"
	"github.com/milk9111/petshow/behavior"
	"github.com/milk9111/petshow/component"
)

type Option func(*Animator)

// WithPicker replaces the uniform special-animation picker.
func WithPicker(p behavior.Picker) Option {
	return func(a *Animator) {
		if p != nil {
			a.picker = p
		}
	}
}

// WithRand seeds position and delay randomness; tests pass a fixed source.
func WithRand(rng *rand.Rand) Option {
	return func(a *Animator) {
		if rng != nil {
			a.rng = rng
		}
	}
}

func WithLogger(l *log.Logger) Option {
	return func(a *Animator) {
		if l != nil {
			a.logger = l
		}
	}
}

func WithPreloader(p assets.Preloader) Option {
	return func(a *Animator) {
		a.preloader = p
	}
}

func WithTiming(t component.Timing) Option {
	return func(a *Animator) {
		a.timing = t.WithDefaults()
	}
}

func WithObserver(o Observer) Option {
	return func(a *Animator) {
		a.observer = o
	}
}

// WithAssets sets the frame directory and extension.
func WithAssets(base, ext string) Option {
	return func(a *Animator) {
		if base != "" {
			a.assetBase = base
		}
		if ext != "" {
			a.ext = ext
		}
	}
}
