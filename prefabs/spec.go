package prefabs

import (
	"fmt"
	"time"

	"github.com/milk9111/petshow/component"
	"gopkg.in/yaml.v3"
)

// ShowcaseFile is the default config file name.
const ShowcaseFile = "pets.yaml"

type ShowcaseSpec struct {
	AssetBase string       `yaml:"asset_base" json:"asset_base,omitempty" jsonschema:"description=Directory holding frame images"`
	Extension string       `yaml:"extension" json:"extension,omitempty" jsonschema:"description=Frame image extension without the dot"`
	Settings  SettingsSpec `yaml:"settings" json:"settings,omitempty"`
	Pets      []PetSpec    `yaml:"pets" json:"pets" jsonschema:"required,description=Showcase pets in display order"`
	Walkers   WalkerSpec   `yaml:"walkers" json:"walkers,omitempty"`
}

type SettingsSpec struct {
	MovementIntervalMS int   `yaml:"movement_interval_ms" json:"movement_interval_ms,omitempty" jsonschema:"minimum=1"`
	SettleDelayMS      int   `yaml:"settle_delay_ms" json:"settle_delay_ms,omitempty"`
	UserCooldownMS     int   `yaml:"user_cooldown_ms" json:"user_cooldown_ms,omitempty"`
	AutoMinMS          int   `yaml:"auto_min_ms" json:"auto_min_ms,omitempty"`
	AutoMaxMS          int   `yaml:"auto_max_ms" json:"auto_max_ms,omitempty"`
	EmphasisRaiseMS    int   `yaml:"emphasis_raise_ms" json:"emphasis_raise_ms,omitempty"`
	EmphasisClearMS    int   `yaml:"emphasis_clear_ms" json:"emphasis_clear_ms,omitempty"`
	ButtonPressMS      int   `yaml:"button_press_ms" json:"button_press_ms,omitempty"`
	WalkerRestartMS    int   `yaml:"walker_restart_ms" json:"walker_restart_ms,omitempty"`
	BounceStepsMS      []int `yaml:"bounce_steps_ms" json:"bounce_steps_ms,omitempty" jsonschema:"minItems=3,maxItems=3"`
	GlowMS             int   `yaml:"glow_ms" json:"glow_ms,omitempty"`
}

type PetSpec struct {
	ID           string                   `yaml:"id" json:"id" jsonschema:"required,pattern=^[a-z0-9_]+$"`
	ImageID      string                   `yaml:"image_id" json:"image_id" jsonschema:"required,description=Image-bearing rendering handle"`
	PetID        string                   `yaml:"pet_id" json:"pet_id" jsonschema:"required,description=Movable container rendering handle"`
	AssetPrefix  string                   `yaml:"asset_prefix" json:"asset_prefix" jsonschema:"required"`
	WalkSpeed    float64                  `yaml:"walk_speed" json:"walk_speed,omitempty" jsonschema:"description=Pixels per movement tick"`
	Default      string                   `yaml:"default" json:"default,omitempty"`
	FrameAliases map[string]string        `yaml:"frame_aliases" json:"frame_aliases,omitempty"`
	Script       string                   `yaml:"script" json:"script,omitempty" jsonschema:"description=tengo script defining pick(specials, previous, roll)"`
	Animations   map[string]AnimationSpec `yaml:"animations" json:"animations" jsonschema:"required"`
	Specials     []string                 `yaml:"specials" json:"specials,omitempty"`
}

type AnimationSpec struct {
	Frames int     `yaml:"frames" json:"frames" jsonschema:"required,minimum=1"`
	Loops  int     `yaml:"loops" json:"loops" jsonschema:"required,description=-1 loops forever; 0 is invalid"`
	FPS    float64 `yaml:"fps" json:"fps" jsonschema:"required,exclusiveMinimum=0"`
}

type WalkerSpec struct {
	IDs     []string `yaml:"ids" json:"ids,omitempty"`
	Prefix  string   `yaml:"prefix" json:"prefix,omitempty"`
	Frames  int      `yaml:"frames" json:"frames,omitempty"`
	FPS     float64  `yaml:"fps" json:"fps,omitempty"`
	Speed   float64  `yaml:"speed" json:"speed,omitempty"`
	Spacing float64  `yaml:"spacing" json:"spacing,omitempty"`
	Static  []string `yaml:"static" json:"static,omitempty"`
}

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// LoadShowcase loads, converts and validates a showcase config.
func LoadShowcase(filename string) (component.Showcase, error) {
	spec, err := LoadSpec[ShowcaseSpec](filename)
	if err != nil {
		return component.Showcase{}, err
	}
	cfg := spec.Build()
	if err := cfg.Validate(); err != nil {
		return component.Showcase{}, fmt.Errorf("prefabs: %s: %w", filename, err)
	}
	return cfg, nil
}

// DecodeShowcase parses and validates raw YAML.
func DecodeShowcase(data []byte) (component.Showcase, error) {
	var spec ShowcaseSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return component.Showcase{}, fmt.Errorf("prefabs: unmarshal showcase: %w", err)
	}
	cfg := spec.Build()
	if err := cfg.Validate(); err != nil {
		return component.Showcase{}, fmt.Errorf("prefabs: %w", err)
	}
	return cfg, nil
}

// Build converts the spec into engine records, applying defaults. It does not
// validate.
func (s ShowcaseSpec) Build() component.Showcase {
	cfg := component.Showcase{
		AssetBase: s.AssetBase,
		Extension: s.Extension,
		Timing:    s.Settings.Build(),
		Walkers:   s.Walkers.Build(),
	}
	if cfg.AssetBase == "" {
		cfg.AssetBase = component.DefaultAssetBase
	}
	if cfg.Extension == "" {
		cfg.Extension = component.DefaultExtension
	}
	for _, p := range s.Pets {
		cfg.Pets = append(cfg.Pets, p.Build())
	}
	return cfg
}

func (s SettingsSpec) Build() component.Timing {
	ms := func(v int) time.Duration { return time.Duration(v) * time.Millisecond }
	t := component.Timing{
		MovementInterval: ms(s.MovementIntervalMS),
		SettleDelay:      ms(s.SettleDelayMS),
		UserCooldown:     ms(s.UserCooldownMS),
		AutoMin:          ms(s.AutoMinMS),
		AutoMax:          ms(s.AutoMaxMS),
		EmphasisRaise:    ms(s.EmphasisRaiseMS),
		EmphasisClear:    ms(s.EmphasisClearMS),
		ButtonPress:      ms(s.ButtonPressMS),
		WalkerRestart:    ms(s.WalkerRestartMS),
		Glow:             ms(s.GlowMS),
	}
	for i := 0; i < len(s.BounceStepsMS) && i < len(t.BounceSteps); i++ {
		t.BounceSteps[i] = ms(s.BounceStepsMS[i])
	}
	return t.WithDefaults()
}

func (p PetSpec) Build() component.PetConfig {
	cfg := component.PetConfig{
		ID:           p.ID,
		ImageID:      p.ImageID,
		PetID:        p.PetID,
		AssetPrefix:  p.AssetPrefix,
		WalkSpeed:    p.WalkSpeed,
		Default:      p.Default,
		FrameAliases: p.FrameAliases,
		Script:       p.Script,
		Specials:     append([]string(nil), p.Specials...),
		Animations:   make(map[string]component.AnimationDef, len(p.Animations)),
	}
	if cfg.WalkSpeed == 0 {
		cfg.WalkSpeed = component.DefaultWalkSpeed
	}
	for name, a := range p.Animations {
		cfg.Animations[name] = component.AnimationDef{Frames: a.Frames, Loops: a.Loops, FPS: a.FPS}
	}
	return cfg
}

func (w WalkerSpec) Build() component.WalkerConfig {
	cfg := component.WalkerConfig{
		IDs:     append([]string(nil), w.IDs...),
		Prefix:  w.Prefix,
		Frames:  w.Frames,
		FPS:     w.FPS,
		Speed:   w.Speed,
		Spacing: w.Spacing,
		Static:  append([]string(nil), w.Static...),
	}
	if cfg.FPS == 0 {
		cfg.FPS = 10
	}
	if cfg.Speed == 0 {
		cfg.Speed = component.DefaultWalkSpeed
	}
	if cfg.Spacing == 0 {
		cfg.Spacing = 100
	}
	return cfg
}
