package capabilities

import (
	"embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed config/*.yaml
var configFiles embed.FS

// Registry holds the generation models this deployment is allowed to use.
// The configured model id must resolve here before the server starts; a typo
// in AI_AGENT_MODEL should fail at boot, not on the first revision.
type Registry struct {
	mu     sync.RWMutex
	models map[string]*ModelInfo // canonical id and aliases both key here
}

// NewRegistry loads the embedded provider files.
func NewRegistry() (*Registry, error) {
	r := &Registry{models: make(map[string]*ModelInfo)}

	for _, provider := range []string{"openai", "static"} {
		if err := r.loadProviderFile(provider); err != nil {
			return nil, fmt.Errorf("load %s models: %w", provider, err)
		}
	}

	return r, nil
}

func (r *Registry) loadProviderFile(provider string) error {
	data, err := configFiles.ReadFile(fmt.Sprintf("config/%s.yaml", provider))
	if err != nil {
		return fmt.Errorf("read provider file: %w", err)
	}

	var doc ProviderModels
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("unmarshal provider file: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range doc.Models {
		m := &doc.Models[i]
		r.models[m.ID] = m
		for _, alias := range m.Aliases {
			r.models[alias] = m
		}
	}

	return nil
}

// Resolve maps a configured model name (id or alias) to its canonical id.
func (r *Registry) Resolve(name string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.models[name]
	if !ok {
		return "", fmt.Errorf("unknown generation model %q", name)
	}
	return m.ID, nil
}

// List returns all known models, canonical entries only.
func (r *Registry) List() []ModelInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]bool)
	var out []ModelInfo
	for _, m := range r.models {
		if seen[m.ID] {
			continue
		}
		seen[m.ID] = true
		out = append(out, *m)
	}
	return out
}
