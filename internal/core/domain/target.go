package domain

import (
	"path/filepath"
	"strings"
)

// Variant distinguishes the production and test compilations of a module.
type Variant string

const (
	// VariantProduction is the main compilation of a module.
	VariantProduction Variant = "production"
	// VariantTest is the test compilation of a module.
	VariantTest Variant = "test"
)

// TargetID is the stable identity of a compilation target: a module plus its
// variant. It is comparable and used as a map key throughout the engine.
type TargetID struct {
	Module  string
	Variant Variant
}

// String renders the identity as "module" for production targets and
// "module:test" for test targets.
func (id TargetID) String() string {
	if id.Variant == VariantTest {
		return id.Module + ":test"
	}
	return id.Module
}

// ParseTargetID parses the textual form produced by String.
func ParseTargetID(s string) TargetID {
	if module, ok := strings.CutSuffix(s, ":test"); ok {
		return TargetID{Module: module, Variant: VariantTest}
	}
	return TargetID{Module: s, Variant: VariantProduction}
}

// TargetKind is the closed set of compiler backends a target can be compiled
// by. Each kind carries the per-platform behavior the engine needs: the
// component it contributes to the global lookup cache and the predicate
// selecting its source-language files.
type TargetKind int

const (
	// KindCommon is the platform-independent backend.
	KindCommon TargetKind = iota
	// KindJVM is the JVM bytecode backend.
	KindJVM
	// KindJS is the JavaScript backend.
	KindJS
)

// ParseTargetKind maps a configuration platform name to a TargetKind.
func ParseTargetKind(s string) (TargetKind, bool) {
	switch strings.ToLower(s) {
	case "common":
		return KindCommon, true
	case "jvm":
		return KindJVM, true
	case "js":
		return KindJS, true
	default:
		return KindCommon, false
	}
}

// String returns the platform name of the kind.
func (k TargetKind) String() string {
	switch k {
	case KindCommon:
		return "common"
	case KindJVM:
		return "jvm"
	case KindJS:
		return "js"
	default:
		return "unknown"
	}
}

// LookupComponentID is the identifier this kind contributes to the global
// lookup cache's component set.
func (k TargetKind) LookupComponentID() string {
	return k.String()
}

// IsSourceFile reports whether path is a source-language file this backend
// compiles. The dirty-marking primitive is handed this predicate so only
// compiler inputs get scheduled for recompilation, never resources or
// generated output.
func (k TargetKind) IsSourceFile(path string) bool {
	switch filepath.Ext(path) {
	case ".frg":
		return true
	case ".java":
		// JVM targets may mix in Java sources compiled by the same invocation.
		return k == KindJVM
	default:
		return false
	}
}

// BuildTarget is one compilable unit: a module variant bound to a compiler
// backend, with its on-disk cache root and source roots.
type BuildTarget struct {
	ID          TargetID
	Kind        TargetKind
	DataRoot    string
	SourceRoots []string
}

// IsTest reports whether the target is the test variant of its module.
func (t BuildTarget) IsTest() bool {
	return t.ID.Variant == VariantTest
}
