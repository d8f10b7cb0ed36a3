// Package behavior chooses which special animation a pet plays when it acts
// on its own.
package behavior

import (
	"log"
	"math/rand"
	"strings"

	"github.com/milk9111/petshow/component"
	"github.com/milk9111/petshow/prefabs"
)

// Picker selects one special animation. previous is the last special the pet
// played, empty before the first one. ok is false when nothing can be picked.
type Picker interface {
	Pick(specials []string, previous string) (name string, ok bool)
}

// UniformPicker picks uniformly at random.
type UniformPicker struct {
	rng *rand.Rand
}

func NewUniformPicker(rng *rand.Rand) *UniformPicker {
	return &UniformPicker{rng: rng}
}

func (p *UniformPicker) Pick(specials []string, _ string) (string, bool) {
	if len(specials) == 0 {
		return "", false
	}
	return specials[p.rng.Intn(len(specials))], true
}

// ForPet returns the picker a pet config asks for. Pets without a script get
// a uniform picker. A script that fails to load or compile is logged and
// replaced by a uniform picker.
func ForPet(cfg component.PetConfig, rng *rand.Rand, logger *log.Logger) Picker {
	if logger == nil {
		logger = log.Default()
	}
	uniform := NewUniformPicker(rng)
	if strings.TrimSpace(cfg.Script) == "" {
		return uniform
	}

	src, err := prefabs.LoadScript(cfg.Script)
	if err != nil {
		logger.Printf("behavior: %s: load script %s: %v", cfg.ID, cfg.Script, err)
		return uniform
	}
	sp, err := NewScriptPicker(cfg.Script, src, rng, logger)
	if err != nil {
		logger.Printf("behavior: %s: compile script %s: %v", cfg.ID, cfg.Script, err)
		return uniform
	}
	return sp
}
