// Package config provides the forge.yaml module-graph source.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// DefaultFilename is the manifest name looked up in the working directory.
const DefaultFilename = "forge.yaml"

// Source implements ports.TargetGraphSource from a forge.yaml manifest.
//
// LoadChunks reads and validates the manifest; the accessor methods report
// what the last successful LoadChunks saw. The compile context always calls
// LoadChunks first.
type Source struct {
	log  ports.Logger
	path string

	manifest Forgefile
}

// NewSource creates a source reading the manifest at path.
func NewSource(log ports.Logger, path string) *Source {
	return &Source{log: log, path: filepath.Clean(path)}
}

// LoadChunks parses the manifest into chunks of mutually dependent modules,
// ordered so every chunk comes after the chunks it depends on. Test variants
// get their own chunk directly after their module's chunk.
func (s *Source) LoadChunks() ([]ports.RawChunk, error) {
	data, err := os.ReadFile(s.path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read build manifest")
	}

	var manifest Forgefile
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, zerr.Wrap(err, "failed to parse build manifest")
	}

	names := make([]string, 0, len(manifest.Modules))
	for name := range manifest.Modules {
		names = append(names, name)
	}
	slices.Sort(names)

	deps := make(map[string][]string, len(names))
	for _, name := range names {
		dto := manifest.Modules[name]

		if _, ok := domain.ParseTargetKind(dto.Platform); !ok && dto.Platform != "" {
			err := zerr.Wrap(domain.ErrUnknownPlatform, "invalid module configuration")
			return nil, zerr.With(zerr.With(err, "module", name), "platform", dto.Platform)
		}

		sorted := slices.Clone(dto.DependsOn)
		slices.Sort(sorted)
		for _, dep := range slices.Compact(sorted) {
			if _, ok := manifest.Modules[dep]; !ok {
				err := zerr.Wrap(domain.ErrMissingDependency, "invalid module graph")
				return nil, zerr.With(zerr.With(err, "module", name), "missing_dependency", dep)
			}
			deps[name] = append(deps[name], dep)
		}
	}

	s.manifest = manifest

	var chunks []ports.RawChunk
	for _, component := range stronglyConnected(names, deps) {
		slices.Sort(component)

		chunk := ports.RawChunk{Targets: make([]ports.RawTarget, 0, len(component))}
		for _, name := range component {
			chunk.Targets = append(chunk.Targets, s.rawTarget(name, domain.VariantProduction))
		}
		chunks = append(chunks, chunk)

		// A test variant depends on its production variant, never the other
		// way around, so its chunk sits right behind the component.
		for _, name := range component {
			if len(manifest.Modules[name].TestSources) > 0 {
				chunks = append(chunks, ports.RawChunk{
					Targets: []ports.RawTarget{s.rawTarget(name, domain.VariantTest)},
				})
			}
		}
	}

	s.log.Info(fmt.Sprintf("loaded %d modules into %d chunks from %s", len(names), len(chunks), s.path))
	return chunks, nil
}

func (s *Source) rawTarget(name string, variant domain.Variant) ports.RawTarget {
	dto := s.manifest.Modules[name]
	kind, _ := domain.ParseTargetKind(dto.Platform)

	dataRoot := dto.DataRoot
	if dataRoot == "" {
		dataRoot = filepath.Join(".forge", "cache", name)
	}
	dataRoot = s.resolve(dataRoot)

	sources := dto.Sources
	if variant == domain.VariantTest {
		dataRoot += "-test"
		sources = dto.TestSources
	}

	roots := make([]string, len(sources))
	for i, src := range sources {
		roots[i] = s.resolve(src)
	}

	return ports.RawTarget{
		ID:          domain.TargetID{Module: name, Variant: variant},
		Kind:        kind,
		DataRoot:    dataRoot,
		SourceRoots: roots,
	}
}

// resolve anchors manifest-relative paths at the manifest's directory.
func (s *Source) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(filepath.Dir(s.path), path)
}

// Features returns the manifest's cache toggles; unset toggles are enabled.
func (s *Source) Features() ports.FeatureSet {
	enabled := func(v *bool) bool { return v == nil || *v }
	return ports.FeatureSet{
		LocalCaches:       enabled(s.manifest.Features.LocalCaches),
		GlobalLookupCache: enabled(s.manifest.Features.GlobalLookupCache),
	}
}

// Metadata returns the compiler-invocation metadata shared by every chunk.
func (s *Source) Metadata() domain.ChunkMetadata {
	return domain.ChunkMetadata{
		LanguageVersion: s.manifest.LanguageVersion,
		APIVersion:      s.manifest.APIVersion,
		ExtraFlags:      s.manifest.ExtraFlags,
	}
}

// GlobalCacheRoot returns the directory holding the global lookup cache.
func (s *Source) GlobalCacheRoot() string {
	root := s.manifest.CacheRoot
	if root == "" {
		root = filepath.Join(".forge", "global")
	}
	return s.resolve(root)
}

// stronglyConnected runs Tarjan's algorithm over the module dependency graph.
// Components pop only after everything they depend on popped, so the returned
// order is already a valid build order.
func stronglyConnected(names []string, deps map[string][]string) [][]string {
	t := &tarjan{
		deps:    deps,
		index:   make(map[string]int, len(names)),
		lowlink: make(map[string]int, len(names)),
		onStack: make(map[string]bool, len(names)),
	}
	for _, name := range names {
		if _, seen := t.index[name]; !seen {
			t.visit(name)
		}
	}
	return t.components
}

type tarjan struct {
	deps    map[string][]string
	index   map[string]int
	lowlink map[string]int
	onStack map[string]bool
	stack   []string
	next    int

	components [][]string
}

func (t *tarjan) visit(name string) {
	t.index[name] = t.next
	t.lowlink[name] = t.next
	t.next++
	t.stack = append(t.stack, name)
	t.onStack[name] = true

	for _, dep := range t.deps[name] {
		if _, seen := t.index[dep]; !seen {
			t.visit(dep)
			t.lowlink[name] = min(t.lowlink[name], t.lowlink[dep])
		} else if t.onStack[dep] {
			t.lowlink[name] = min(t.lowlink[name], t.index[dep])
		}
	}

	if t.lowlink[name] != t.index[name] {
		return
	}

	var component []string
	for {
		top := t.stack[len(t.stack)-1]
		t.stack = t.stack[:len(t.stack)-1]
		t.onStack[top] = false
		component = append(component, top)
		if top == name {
			break
		}
	}
	t.components = append(t.components, component)
}
