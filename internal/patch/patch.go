// Package patch implements the Patch/Bank data model (spec.md §3) and a
// YAML-based serialization standing in for the out-of-scope FXP/FXB patch
// file codec (SPEC_FULL.md §5): a patch is a name plus a sparse map of
// normalized parameter values, and a bank holds up to 128 patches with one
// marked current.
package patch

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// MaxPatches bounds a bank the same way the original's preset bank does.
const MaxPatches = 128

// Patch is one named set of normalized [0,1] parameter values, indexed by
// the parameter list order in internal/param.
type Patch struct {
	Name       string          `yaml:"name"`
	Parameters map[int]float64 `yaml:"parameters"`
}

// New returns an empty, ASCII-sanitized patch.
func New(name string) *Patch {
	return &Patch{Name: sanitizeName(name), Parameters: make(map[int]float64)}
}

// SetName updates the patch's name, applying the same ASCII filtering the
// original's Patch::process_name applies (so a GUI text field full of
// control characters can't corrupt the stored name).
func (p *Patch) SetName(name string) {
	p.Name = sanitizeName(name)
}

// Get returns the normalized value stored for a parameter index, or def if
// none was ever set (e.g. a patch saved before a parameter existed).
func (p *Patch) Get(index int, def float64) float64 {
	if v, ok := p.Parameters[index]; ok {
		return v
	}
	return def
}

// Set stores a normalized [0,1] value for a parameter index.
func (p *Patch) Set(index int, value float64) {
	if p.Parameters == nil {
		p.Parameters = make(map[int]float64)
	}
	p.Parameters[index] = value
}

func sanitizeName(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		if r >= 0x20 && r < 0x7f {
			out = append(out, r)
		}
	}
	return string(out)
}

// Bank holds up to MaxPatches patches, one of them marked current.
type Bank struct {
	Patches []*Patch `yaml:"patches"`
	Current int      `yaml:"current"`
}

// NewBank returns a bank pre-filled with n empty, numbered patches.
func NewBank(n int) *Bank {
	if n > MaxPatches {
		n = MaxPatches
	}
	b := &Bank{Patches: make([]*Patch, n)}
	for i := range b.Patches {
		b.Patches[i] = New(fmt.Sprintf("Init %d", i+1))
	}
	return b
}

// CurrentPatch returns the bank's current patch.
func (b *Bank) CurrentPatch() *Patch {
	if b.Current < 0 || b.Current >= len(b.Patches) {
		return nil
	}
	return b.Patches[b.Current]
}

// Marshal serializes the bank to YAML bytes. This is explicitly not a
// byte-exact FXB container: it's a readable stand-in satisfying the
// round-trip property (spec.md §8), not the file-format codec spec.md §1
// puts out of scope.
func (b *Bank) Marshal() ([]byte, error) {
	return yaml.Marshal(b)
}

// Unmarshal populates b from YAML bytes previously produced by Marshal.
func (b *Bank) Unmarshal(data []byte) error {
	return yaml.Unmarshal(data, b)
}

// Load reads and parses a bank from path.
func Load(path string) (*Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("patch: load %s: %w", path, err)
	}
	var b Bank
	if err := b.Unmarshal(data); err != nil {
		return nil, fmt.Errorf("patch: parse %s: %w", path, err)
	}
	return &b, nil
}

// Save writes the bank to path as YAML.
func (b *Bank) Save(path string) error {
	data, err := b.Marshal()
	if err != nil {
		return fmt.Errorf("patch: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("patch: save %s: %w", path, err)
	}
	return nil
}
