package assets

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const catManifest = `
name: cat
scale: 2
size: [1.2, 1, 2.4]
clips:
  - name: sit
    duration: 3
  - name: walk
    duration: 0.8
  - name: jump
    duration: 1.5
idle: sit
walk: walk
react: jump
`

func TestParseModel(t *testing.T) {
	m, err := ParseModel([]byte(catManifest))
	if err != nil {
		t.Fatalf("ParseModel() error = %v", err)
	}
	if m.Name != "cat" || m.Scale != 2 {
		t.Errorf("got name=%q scale=%v", m.Name, m.Scale)
	}
	if len(m.Clips) != 3 {
		t.Fatalf("got %d clips, want 3", len(m.Clips))
	}
	if m.ReactClip != "jump" || m.Clips[2].Duration != 1.5 {
		t.Errorf("react clip = %q (%v)", m.ReactClip, m.Clips[2].Duration)
	}
	spec := m.Spec()
	if spec.A != 1.2 || spec.B != 1 || spec.C != 2.4 {
		t.Errorf("Spec() = %+v", spec)
	}
}

func TestParseModelErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not yaml", "name: [unclosed"},
		{"no name", "size: [1,1,1]"},
		{"bad size", "name: x\nsize: [1,1]"},
		{"negative size", "name: x\nsize: [1,-1,1]"},
		{"bad clip", "name: x\nsize: [1,1,1]\nclips:\n  - name: a\n    duration: 0"},
		{"duplicate clip", "name: x\nsize: [1,1,1]\nclips:\n  - {name: a, duration: 1}\n  - {name: a, duration: 2}"},
		{"undefined ref", "name: x\nsize: [1,1,1]\nwalk: run"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseModel([]byte(tt.data))
			if !errors.Is(err, ErrAssetLoad) {
				t.Errorf("error = %v, want ErrAssetLoad", err)
			}
		})
	}
}

func TestManagerSearchOrder(t *testing.T) {
	low := t.TempDir()
	high := t.TempDir()
	if err := os.WriteFile(filepath.Join(low, "cat.yaml"), []byte("name: low\nsize: [1,1,1]"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(high, "cat.yaml"), []byte("name: high\nsize: [1,1,1]"), 0644); err != nil {
		t.Fatal(err)
	}

	m := NewManager()
	for _, dir := range []string{low, high} {
		if err := m.AddDir(dir); err != nil {
			t.Fatalf("AddDir(%s) error = %v", dir, err)
		}
	}
	model, err := m.LoadModel("cat.yaml")
	if err != nil {
		t.Fatalf("LoadModel() error = %v", err)
	}
	if model.Name != "high" {
		t.Errorf("Name = %q, want high", model.Name)
	}

	// second load is served from cache
	if _, err := m.Load("cat.yaml"); err != nil {
		t.Fatal(err)
	}
	hits, misses := m.cache.Stats()
	if hits != 1 || misses != 1 {
		t.Errorf("Stats() = %d hits, %d misses, want 1, 1", hits, misses)
	}
}

func TestManagerMissing(t *testing.T) {
	m := NewManager(t.TempDir())
	_, err := m.LoadModel("nope.yaml")
	if !errors.Is(err, ErrAssetLoad) {
		t.Errorf("error = %v, want ErrAssetLoad", err)
	}
	if err := m.AddDir(filepath.Join(t.TempDir(), "missing")); !errors.Is(err, ErrAssetLoad) {
		t.Errorf("AddDir error = %v, want ErrAssetLoad", err)
	}
}

func TestDefaultModelIsValid(t *testing.T) {
	m := DefaultModel()
	names := map[string]bool{}
	for _, c := range m.Clips {
		names[c.Name] = true
	}
	for _, ref := range []string{m.IdleClip, m.WalkClip, m.ReactClip} {
		if !names[ref] {
			t.Errorf("clip %q missing from default model", ref)
		}
	}
}
