package pypackaging

import (
	"fmt"
	"strings"
)

// ResourcesPolicyKind identifies where packaged resources may be loaded from
// at runtime.
type ResourcesPolicyKind int

const (
	// InMemoryOnly only allows resources to be loaded from memory.
	//
	// If a resource cannot be loaded from memory, attempting to add it
	// should result in error.
	InMemoryOnly ResourcesPolicyKind = iota

	// FilesystemRelativeOnly only allows resources to be loaded from a
	// filesystem path relative to the produced binary.
	FilesystemRelativeOnly

	// PreferInMemoryFallbackFilesystemRelative prefers loading resources
	// from memory and falls back to filesystem-relative loading.
	PreferInMemoryFallbackFilesystemRelative
)

const (
	inMemoryOnlyValue            = "in-memory-only"
	filesystemRelativeOnlyPrefix = "filesystem-relative-only:"
	preferInMemoryFallbackPrefix = "prefer-in-memory-fallback-filesystem-relative:"
)

// ResourcesPolicy describes a policy for the location of Python resources.
//
// For the filesystem-relative kinds, Prefix is the path prefix resources are
// installed into. The prefix is an opaque string: this layer never validates
// it for filesystem legality.
type ResourcesPolicy struct {
	Kind   ResourcesPolicyKind
	Prefix string
}

// ParseResourcesPolicy parses the textual form of a resources policy.
//
// Recognized forms:
//
//	in-memory-only
//	filesystem-relative-only:<prefix>
//	prefer-in-memory-fallback-filesystem-relative:<prefix>
//
// Any other input returns an *InvalidPolicyValueError.
func ParseResourcesPolicy(value string) (ResourcesPolicy, error) {
	switch {
	case value == inMemoryOnlyValue:
		return ResourcesPolicy{Kind: InMemoryOnly}, nil
	case strings.HasPrefix(value, filesystemRelativeOnlyPrefix):
		return ResourcesPolicy{
			Kind:   FilesystemRelativeOnly,
			Prefix: value[len(filesystemRelativeOnlyPrefix):],
		}, nil
	case strings.HasPrefix(value, preferInMemoryFallbackPrefix):
		return ResourcesPolicy{
			Kind:   PreferInMemoryFallbackFilesystemRelative,
			Prefix: value[len(preferInMemoryFallbackPrefix):],
		}, nil
	default:
		return ResourcesPolicy{}, &InvalidPolicyValueError{Value: value}
	}
}

// String returns the canonical textual form. It is the exact inverse of
// ParseResourcesPolicy for every valid policy value.
func (p ResourcesPolicy) String() string {
	switch p.Kind {
	case InMemoryOnly:
		return inMemoryOnlyValue
	case FilesystemRelativeOnly:
		return filesystemRelativeOnlyPrefix + p.Prefix
	case PreferInMemoryFallbackFilesystemRelative:
		return preferInMemoryFallbackPrefix + p.Prefix
	default:
		panic(fmt.Sprintf("unknown resources policy kind %d", int(p.Kind)))
	}
}
