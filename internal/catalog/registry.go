// Package catalog serves the static list of selectable AI models. The list
// ships embedded in the binary; there is no database table behind it.
package catalog

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed models.yaml
var modelsYAML []byte

// TierFree models are selectable without a subscription.
const (
	TierFree = "free"
	TierPro  = "pro"
)

// Model describes one selectable AI model.
type Model struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	Tier        string `yaml:"tier" json:"tier"`
}

// Registry holds the parsed model catalog.
type Registry struct {
	models []Model
	byID   map[string]Model
}

type catalogFile struct {
	Models []Model `yaml:"models"`
}

// NewRegistry parses the embedded catalog. It fails only if the embedded
// YAML is malformed, which would be a build defect.
func NewRegistry() (*Registry, error) {
	var file catalogFile
	if err := yaml.Unmarshal(modelsYAML, &file); err != nil {
		return nil, fmt.Errorf("parse model catalog: %w", err)
	}
	if len(file.Models) == 0 {
		return nil, fmt.Errorf("model catalog is empty")
	}

	byID := make(map[string]Model, len(file.Models))
	for _, m := range file.Models {
		byID[m.ID] = m
	}

	return &Registry{models: file.Models, byID: byID}, nil
}

// Models returns the catalog in file order.
func (r *Registry) Models() []Model {
	out := make([]Model, len(r.models))
	copy(out, r.models)
	return out
}

// Lookup returns the model with the given id.
func (r *Registry) Lookup(id string) (Model, bool) {
	m, ok := r.byID[id]
	return m, ok
}

// FreeModels returns models selectable without a subscription.
func (r *Registry) FreeModels() []Model {
	var out []Model
	for _, m := range r.models {
		if m.Tier == TierFree {
			out = append(out, m)
		}
	}
	return out
}
