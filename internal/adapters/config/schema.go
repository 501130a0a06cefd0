package config

// Forgefile represents the structure of the forge.yaml build manifest.
type Forgefile struct {
	Version         int                  `yaml:"version"`
	LanguageVersion string               `yaml:"languageVersion"`
	APIVersion      string               `yaml:"apiVersion"`
	ExtraFlags      []string             `yaml:"extraFlags"`
	CacheRoot       string               `yaml:"cacheRoot"`
	Features        FeaturesDTO          `yaml:"features"`
	Modules         map[string]ModuleDTO `yaml:"modules"`
}

// FeaturesDTO carries the cache feature toggles. Unset toggles default to
// enabled.
type FeaturesDTO struct {
	LocalCaches       *bool `yaml:"localCaches"`
	GlobalLookupCache *bool `yaml:"globalLookupCache"`
}

// ModuleDTO represents one module definition in the manifest.
type ModuleDTO struct {
	Platform    string   `yaml:"platform"`
	DataRoot    string   `yaml:"dataRoot"`
	Sources     []string `yaml:"sources"`
	TestSources []string `yaml:"testSources"`
	DependsOn   []string `yaml:"dependsOn"`
}
