package capabilities

// ModelInfo describes one generation model the service may be configured with.
type ModelInfo struct {
	ID          string   `yaml:"id"`
	Aliases     []string `yaml:"aliases"`
	MaxOutput   int      `yaml:"max_output_tokens"`
	Description string   `yaml:"description"`
}

// ProviderModels is the YAML document shape for one provider file.
type ProviderModels struct {
	Provider string      `yaml:"provider"`
	Models   []ModelInfo `yaml:"models"`
}
