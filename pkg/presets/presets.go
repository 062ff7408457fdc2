// Package presets manages editor presets: the tag names offered when
// tagging a model and the display labels of capability flags. Presets live
// in the local store under a fixed key and can be exported and imported as
// a standalone JSON document.
package presets

import (
	"encoding/json"
	"slices"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/agentstation/modeldesk/pkg/errors"
)

// Presets is the persisted preset blob.
type Presets struct {
	Tags   []string          `json:"tags"`
	Labels map[string]string `json:"labels"`
}

// Defaults returns the built-in presets used until the user saves their own.
func Defaults() *Presets {
	return &Presets{
		Tags: []string{
			"chat", "coding", "writing", "reasoning", "math", "research",
			"vision", "multimodal", "embedding", "function_calling",
		},
		Labels: map[string]string{
			"vision":           "Vision",
			"file_upload":      "File Upload",
			"web_search":       "Web Search",
			"image_generation": "Image Generation",
			"code_interpreter": "Code Interpreter",
			"citations":        "Citations",
			"usage":            "Usage",
		},
	}
}

// Parse decodes a preset document. Missing sections default to empty.
func Parse(data []byte) (*Presets, error) {
	var p Presets
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, errors.WrapParse("json", "", err)
	}
	p.normalize()
	return &p, nil
}

// JSON encodes the presets as an indented document.
func (p *Presets) JSON() ([]byte, error) {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// Clone returns a deep copy.
func (p *Presets) Clone() *Presets {
	out := &Presets{
		Tags:   slices.Clone(p.Tags),
		Labels: make(map[string]string, len(p.Labels)),
	}
	for k, v := range p.Labels {
		out.Labels[k] = v
	}
	out.normalize()
	return out
}

// AddTag appends a tag unless it is already present. It reports whether the
// tag was added.
func (p *Presets) AddTag(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" || slices.Contains(p.Tags, name) {
		return false
	}
	p.Tags = append(p.Tags, name)
	return true
}

// RemoveTag drops a tag. It reports whether the tag existed.
func (p *Presets) RemoveTag(name string) bool {
	i := slices.Index(p.Tags, name)
	if i < 0 {
		return false
	}
	p.Tags = slices.Delete(p.Tags, i, i+1)
	return true
}

// SetLabel sets the display label for a capability flag. An empty label
// removes the override.
func (p *Presets) SetLabel(flag, label string) {
	if label == "" {
		delete(p.Labels, flag)
		return
	}
	p.Labels[flag] = label
}

// Label returns the display label of a capability flag, deriving one from
// the flag name when no override exists.
func (p *Presets) Label(flag string) string {
	if label, ok := p.Labels[flag]; ok {
		return label
	}
	return cases.Title(language.English).String(strings.ReplaceAll(flag, "_", " "))
}

// LabelFlags returns the flags that have a label, sorted.
func (p *Presets) LabelFlags() []string {
	flags := make([]string, 0, len(p.Labels))
	for f := range p.Labels {
		flags = append(flags, f)
	}
	sort.Strings(flags)
	return flags
}

func (p *Presets) normalize() {
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if p.Labels == nil {
		p.Labels = map[string]string{}
	}
}
