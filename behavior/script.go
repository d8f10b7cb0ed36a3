package behavior

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// pickDispatchScript is appended to every picker script. The script must
// define pick(specials, previous, roll) returning a special name.
const pickDispatchScript = `
__choice = pick(__specials, __previous, __roll)
`

// ScriptPicker delegates the choice to a tengo script. A result that is not
// one of the offered specials falls back to a uniform pick. The script decides
// the distribution, so a pet with a script is no longer picked uniformly.
type ScriptPicker struct {
	name     string
	compiled *tengo.Compiled
	rng      *rand.Rand
	fallback *UniformPicker
	logger   *log.Logger
}

func NewScriptPicker(name string, src []byte, rng *rand.Rand, logger *log.Logger) (*ScriptPicker, error) {
	if logger == nil {
		logger = log.Default()
	}
	script := tengo.NewScript([]byte(string(src) + "\n" + pickDispatchScript))
	_ = script.Add("__specials", []any{})
	_ = script.Add("__previous", "")
	_ = script.Add("__roll", 0.0)
	_ = script.Add("__choice", "")

	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("behavior: compile %s: %w", name, err)
	}

	return &ScriptPicker{
		name:     name,
		compiled: compiled,
		rng:      rng,
		fallback: NewUniformPicker(rng),
		logger:   logger,
	}, nil
}

func (p *ScriptPicker) Pick(specials []string, previous string) (string, bool) {
	if len(specials) == 0 {
		return "", false
	}

	choice, err := p.run(specials, previous)
	if err != nil {
		p.logger.Printf("behavior: script %s: %v", p.name, err)
		return p.fallback.Pick(specials, previous)
	}
	for _, s := range specials {
		if s == choice {
			return choice, true
		}
	}
	p.logger.Printf("behavior: script %s picked unknown special %q", p.name, choice)
	return p.fallback.Pick(specials, previous)
}

func (p *ScriptPicker) run(specials []string, previous string) (string, error) {
	list := make([]any, len(specials))
	for i, s := range specials {
		list[i] = s
	}
	if err := p.compiled.Set("__specials", list); err != nil {
		return "", err
	}
	if err := p.compiled.Set("__previous", previous); err != nil {
		return "", err
	}
	if err := p.compiled.Set("__roll", p.rng.Float64()); err != nil {
		return "", err
	}
	if err := p.compiled.Run(); err != nil {
		return "", err
	}

	switch v := p.compiled.Get("__choice").Object().(type) {
	case *tengo.String:
		return v.Value, nil
	default:
		return "", fmt.Errorf("pick returned %s, want string", v.TypeName())
	}
}
