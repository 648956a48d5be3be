package preset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

const (
	defaultName = "default"
	fileExt     = ".yaml"
)

var (
	ErrPresetNotFound = errors.New("preset not found")
	ErrInvalidName    = errors.New("invalid preset name")
	ErrInvalidPreset  = errors.New("preset validation failed")
)

// Paths locates preset files under a base directory.
type Paths struct {
	BaseDir string // e.g. /opt/app/config
}

func (p Paths) Dir() string {
	return filepath.Join(p.BaseDir, "presets")
}
func (p Paths) DefaultPath() string {
	return filepath.Join(p.Dir(), defaultName+fileExt)
}
func (p Paths) PresetPath(name string) string {
	return filepath.Join(p.Dir(), name+fileExt)
}

// Loader reads preset YAML files and merges default → preset.
type Loader struct {
	paths Paths

	mu    sync.RWMutex
	cache map[string]Preset
}

// NewLoader creates a preset loader rooted at baseDir.
func NewLoader(baseDir string) *Loader {
	return &Loader{
		paths: Paths{BaseDir: baseDir},
		cache: make(map[string]Preset),
	}
}

func (l *Loader) Paths() Paths { return l.paths }

// Load returns the named preset merged over default.yaml. Results are cached
// until Invalidate.
func (l *Loader) Load(name string) (Preset, error) {
	if !ValidName(name) {
		return Preset{}, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	l.mu.RLock()
	if p, ok := l.cache[name]; ok {
		l.mu.RUnlock()
		return clonePreset(p), nil
	}
	l.mu.RUnlock()

	defCfg, err := readYAML(l.paths.DefaultPath())
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return Preset{}, fmt.Errorf("read default: %w", err)
	}
	cfg, err := readYAML(l.paths.PresetPath(name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Preset{}, fmt.Errorf("%w: %q", ErrPresetNotFound, name)
		}
		return Preset{}, fmt.Errorf("read preset %q: %w", name, err)
	}

	merged := mergeRaw(defCfg, cfg)
	if err := ValidateRaw(merged); err != nil {
		return Preset{}, fmt.Errorf("preset %q: %w", name, err)
	}
	p := resolve(name, merged)

	l.mu.Lock()
	l.cache[name] = p
	l.mu.Unlock()

	return clonePreset(p), nil
}

// List returns the names of all presets on disk, sorted. A missing presets
// directory yields an empty list.
func (l *Loader) List() ([]string, error) {
	entries, err := os.ReadDir(l.paths.Dir())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != fileExt {
			continue
		}
		name := strings.TrimSuffix(e.Name(), fileExt)
		if ValidName(name) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// Invalidate clears the cache. Call after the watcher reports a change.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache = make(map[string]Preset)
}

func readYAML(path string) (RawPreset, error) {
	var cfg RawPreset
	b, err := os.ReadFile(path)
	if err != nil {
		return RawPreset{}, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return RawPreset{}, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return cfg, nil
}

// mergeRaw overlays b on a. Set fields in b win; a non-empty item list in b
// replaces a's list.
func mergeRaw(a, b RawPreset) RawPreset {
	out := a

	if b.Version != "" {
		out.Version = b.Version
	}
	if b.Title != "" {
		out.Title = b.Title
	}
	if b.Notes != "" {
		out.Notes = b.Notes
	}
	if b.Draws != nil {
		out.Draws = b.Draws
	}
	if b.Weight != nil {
		out.Weight = b.Weight
	}
	if len(b.Items) > 0 {
		out.Items = append([]RawItem(nil), b.Items...)
	}
	return out
}

func clonePreset(p Preset) Preset {
	p.Items = append(p.Items[:0:0], p.Items...)
	return p
}
