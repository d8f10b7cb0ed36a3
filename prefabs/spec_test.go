package prefabs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/milk9111/petshow/component"
)

func TestLoadEmbeddedShowcase(t *testing.T) {
	cfg, err := LoadShowcase(ShowcaseFile)
	if err != nil {
		t.Fatalf("load embedded showcase: %v", err)
	}

	wantIDs := []string{"trex", "sheep_black", "ape_chef", "cat_blue"}
	ids := cfg.PetIDs()
	if len(ids) != len(wantIDs) {
		t.Fatalf("expected %d pets, got %v", len(wantIDs), ids)
	}
	for i, id := range wantIDs {
		if ids[i] != id {
			t.Fatalf("pet %d: expected %s, got %s", i, id, ids[i])
		}
	}

	trex, _ := cfg.Pet("trex")
	if eat := trex.Animations["eat"]; eat.Frames != 10 || eat.Loops != 4 || eat.FPS != 10 {
		t.Errorf("unexpected trex eat def: %+v", eat)
	}
	if trex.DefaultAnimation() != component.AnimWalk {
		t.Errorf("trex should default to walk, got %s", trex.DefaultAnimation())
	}

	chef, _ := cfg.Pet("ape_chef")
	if chef.DefaultAnimation() != component.AnimIdle {
		t.Errorf("ape_chef should default to idle, got %s", chef.DefaultAnimation())
	}
	if got := chef.ResolveFrameName("idle"); got != "front" {
		t.Errorf("ape_chef idle should resolve to front, got %s", got)
	}
	sheep, _ := cfg.Pet("sheep_black")
	if sheep.WalkSpeed != 0.8 {
		t.Errorf("sheep walk speed: %g", sheep.WalkSpeed)
	}

	if cfg.Timing.MovementInterval != 16*time.Millisecond || cfg.Timing.BounceSteps[1] != 200*time.Millisecond {
		t.Errorf("unexpected timing: %+v", cfg.Timing)
	}
	if len(cfg.Walkers.IDs) != 3 || cfg.Walkers.Prefix != "ape" || cfg.Walkers.Frames != 8 {
		t.Errorf("unexpected walkers: %+v", cfg.Walkers)
	}
}

func TestDecodeShowcaseRejectsInvalid(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{
			"zero_loops",
			`
pets:
  - id: cat
    image_id: catImage
    pet_id: catPet
    asset_prefix: cat
    animations:
      walk: { frames: 8, loops: -1, fps: 10 }
      eat: { frames: 4, loops: 0, fps: 10 }
`,
		},
		{
			"missing_handle",
			`
pets:
  - id: cat
    pet_id: catPet
    asset_prefix: cat
    animations:
      walk: { frames: 8, loops: -1, fps: 10 }
`,
		},
		{
			"unknown_special",
			`
pets:
  - id: cat
    image_id: catImage
    pet_id: catPet
    asset_prefix: cat
    animations:
      walk: { frames: 8, loops: -1, fps: 10 }
    specials: [dance]
`,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := DecodeShowcase([]byte(c.yaml))
			if !errors.Is(err, component.ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestDecodeShowcaseDefaults(t *testing.T) {
	cfg, err := DecodeShowcase([]byte(`
pets:
  - id: cat
    image_id: catImage
    pet_id: catPet
    asset_prefix: cat
    animations:
      walk: { frames: 8, loops: -1, fps: 10 }
`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cfg.AssetBase != component.DefaultAssetBase || cfg.Extension != component.DefaultExtension {
		t.Errorf("asset defaults not applied: %q %q", cfg.AssetBase, cfg.Extension)
	}
	cat, _ := cfg.Pet("cat")
	if cat.WalkSpeed != component.DefaultWalkSpeed {
		t.Errorf("walk speed default not applied: %g", cat.WalkSpeed)
	}
	if cfg.Timing != component.DefaultTiming() {
		t.Errorf("timing defaults not applied: %+v", cfg.Timing)
	}
}

func TestLoadShowcaseAbsolutePath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	data := []byte(`
pets:
  - id: frog
    image_id: frogImage
    pet_id: frogPet
    asset_prefix: frog
    animations:
      walk: { frames: 4, loops: -1, fps: 8 }
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadShowcase(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, ok := cfg.Pet("frog"); !ok {
		t.Fatalf("expected frog pet")
	}
	if Dir(path) != dir {
		t.Errorf("Dir(%q) = %q", path, Dir(path))
	}
}

func TestLoadScript(t *testing.T) {
	for _, name := range []string{"no_repeat.tengo", "scripts/no_repeat.tengo", "prefabs/scripts/no_repeat.tengo"} {
		data, err := LoadScript(name)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if len(data) == 0 {
			t.Fatalf("%s: empty script", name)
		}
	}
}

func TestWatchedFileKinds(t *testing.T) {
	cases := map[string]bool{
		"pets.yaml":         true,
		"pets.YML":          true,
		"scripts/x.tengo":   true,
		"notes.txt":         false,
		"ape_walk-0.png":    false,
		"prefabs/pets.yaml": true,
	}
	for name, want := range cases {
		if got := isSpecFile(name) || isScriptFile(name); got != want {
			t.Errorf("%s: got %v want %v", name, got, want)
		}
	}
}

func TestWatcherReportsSpecChanges(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	target := filepath.Join(dir, "pets.yaml")
	if err := os.WriteFile(target, []byte("pets: []\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case name := <-w.Events:
		if name != target {
			t.Fatalf("expected %s, got %s", target, name)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("no change reported")
	}

	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	for i := 0; ; i++ {
		if _, ok := w.Poll(); !ok {
			break
		}
		if i > 16 {
			t.Fatalf("closed watcher keeps reporting")
		}
	}
}
