package reveal

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Preset is a named effect kind plus its configuration, as loaded from YAML:
//
//	effects:
//	  hero:
//	    kind: fade-bottom-right
//	    duration: 0.8
//	    ease: out-cubic
//	  shake:
//	    kind: move-scroll-random
//	    radius: 30
//	    debounce: 150ms
type Preset struct {
	Kind   EffectKind   `yaml:"kind"`
	Config EffectConfig `yaml:",inline"`
}

// Presets maps preset names to presets.
type Presets map[string]Preset

type presetFile struct {
	Effects map[string]Preset `yaml:"effects"`
}

// ErrUnknownPreset is returned by Presets.Mount for a missing name.
var ErrUnknownPreset = errors.New("unknown preset")

// UnmarshalYAML decodes a kebab-case effect name.
func (k *EffectKind) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}
	kind, err := ParseEffectKind(name)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*k = kind
	return nil
}

// MarshalYAML encodes the kind as its kebab-case name.
func (k EffectKind) MarshalYAML() (any, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEffect, k)
	}
	return k.String(), nil
}

// LoadPresets parses a YAML preset document and validates every entry.
func LoadPresets(data []byte) (Presets, error) {
	var f presetFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse presets: %w", err)
	}
	out := make(Presets, len(f.Effects))
	for name, p := range f.Effects {
		if err := p.Config.Validate(); err != nil {
			return nil, fmt.Errorf("preset %q: %w", name, err)
		}
		out[name] = p
	}
	return out, nil
}

// LoadPresetsFile reads presets from path. A missing file yields an empty
// set.
func LoadPresetsFile(path string) (Presets, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Presets{}, nil
		}
		return nil, fmt.Errorf("failed to read presets: %w", err)
	}
	return LoadPresets(data)
}

// Names returns the preset names in sorted order.
func (p Presets) Names() []string {
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Mount mounts the named preset on node.
func (p Presets) Mount(s *Scene, node *Node, name string) (*Effect, error) {
	preset, ok := p[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return s.Mount(node, preset.Kind, preset.Config), nil
}

// Marshal encodes the presets back to the YAML document form.
func (p Presets) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(presetFile{Effects: p})
	if err != nil {
		return nil, fmt.Errorf("failed to encode presets: %w", err)
	}
	return data, nil
}
