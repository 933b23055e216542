// Package pypackaging decides which pieces of a Python runtime distribution
// are eligible to be embedded into an assembled standalone binary, and which
// concrete variant of each native extension module to use when several
// implementations exist.
//
// The central type is [PackagingPolicy]. A caller constructs one with
// [NewPackagingPolicy], adjusts it through its setters, then evaluates
// [PackagingPolicy.AllowResource] for each discovered resource and
// [PackagingPolicy.ResolveExtensionModules] once over the full set of
// extension variant groups for a target platform.
//
// # Quick Start
//
//	policy := pypackaging.NewPackagingPolicy()
//	policy.SetExtensionModuleFilter(pypackaging.ExtensionModuleFilterNoGPL)
//	policy.SetPreferredVariant("_ssl", "openssl-static")
//
//	for _, resource := range resources {
//	    if policy.AllowResource(resource) {
//	        // embed it
//	    }
//	}
//	extensions := policy.ResolveExtensionModules(groups, "x86_64-unknown-linux-gnu")
//
// # Thread Safety
//
// PackagingPolicy has no internal locking. Build the policy completely, then
// treat it as read-only: AllowResource and ResolveExtensionModules are pure
// reads and may run concurrently with each other, but not with the setters.
package pypackaging

import "github.com/pyembed/go-pypackaging/licensing"

// PackagingPolicy defines how Python resources should be packaged.
//
// The zero value is not useful; use NewPackagingPolicy to get the defaults
// (all extensions, in-memory resource loading, distribution sources included,
// package resources and test modules excluded).
type PackagingPolicy struct {
	// extensionModuleFilter selects which extension modules are included.
	extensionModuleFilter ExtensionModuleFilter

	// preferredVariants maps extension name to preferred variant name.
	preferredVariants map[string]string

	// resourcesPolicy controls where resources are packaged by default.
	resourcesPolicy ResourcesPolicy

	// includeDistributionSources controls whether module source code from
	// the distribution is packaged.
	includeDistributionSources bool

	// includeDistributionResources controls whether package resource files
	// are packaged.
	includeDistributionResources bool

	// includeTest controls whether test-only modules and resources are
	// packaged.
	includeTest bool

	// brokenExtensions maps a target triple to the names of extensions
	// known not to work on that triple.
	brokenExtensions map[string][]string
}

// NewPackagingPolicy returns a policy with default settings.
func NewPackagingPolicy() *PackagingPolicy {
	return &PackagingPolicy{
		extensionModuleFilter:      ExtensionModuleFilterAll,
		preferredVariants:          make(map[string]string),
		resourcesPolicy:            ResourcesPolicy{Kind: InMemoryOnly},
		includeDistributionSources: true,
	}
}

// ExtensionModuleFilter returns the active extension module filter.
func (p *PackagingPolicy) ExtensionModuleFilter() ExtensionModuleFilter {
	return p.extensionModuleFilter
}

// SetExtensionModuleFilter sets the extension module filter to use.
func (p *PackagingPolicy) SetExtensionModuleFilter(filter ExtensionModuleFilter) {
	p.extensionModuleFilter = filter
}

// SetPreferredVariant denotes the preferred variant for an extension module.
// If the named variant is present when variants are resolved, it is chosen.
// A later call for the same extension overwrites the earlier preference.
func (p *PackagingPolicy) SetPreferredVariant(extension, variant string) {
	p.preferredVariants[extension] = variant
}

// ResourcesPolicy returns the active resources policy.
func (p *PackagingPolicy) ResourcesPolicy() ResourcesPolicy {
	return p.resourcesPolicy
}

// SetResourcesPolicy sets the resource loading policy.
func (p *PackagingPolicy) SetResourcesPolicy(policy ResourcesPolicy) {
	p.resourcesPolicy = policy
}

// SetIncludeDistributionSources sets whether to package module source code
// from the Python distribution.
func (p *PackagingPolicy) SetIncludeDistributionSources(include bool) {
	p.includeDistributionSources = include
}

// SetIncludeDistributionResources sets whether to package resource files
// from the Python distribution.
func (p *PackagingPolicy) SetIncludeDistributionResources(include bool) {
	p.includeDistributionResources = include
}

// SetIncludeTest sets whether to package modules and resources that define
// tests.
func (p *PackagingPolicy) SetIncludeTest(include bool) {
	p.includeTest = include
}

// RegisterBrokenExtension marks an extension as broken on a target triple,
// preventing any variant of it from being resolved for that triple.
// Registering the same pair twice is harmless.
func (p *PackagingPolicy) RegisterBrokenExtension(targetTriple, extension string) {
	if p.brokenExtensions == nil {
		p.brokenExtensions = make(map[string][]string)
	}
	p.brokenExtensions[targetTriple] = append(p.brokenExtensions[targetTriple], extension)
}

// AllowResource determines whether a resource meets the inclusion
// requirements of the current policy.
//
// Extension modules are never admitted here; they are resolved exclusively
// through ResolveExtensionModules, which needs group-level context to pick
// between variants.
func (p *PackagingPolicy) AllowResource(resource Resource) bool {
	switch r := resource.(type) {
	case *ModuleSource:
		if !p.includeTest && r.IsTest {
			return false
		}
		return p.includeDistributionSources
	case *ModuleBytecodeRequest:
		return p.includeTest || !r.IsTest
	case *ModuleBytecode:
		return false
	case *PackageResource:
		if p.includeDistributionResources {
			return p.includeTest || !r.IsTest
		}
		return false
	case *DistributionResource:
		return false
	case *ExtensionModuleDynamicLibrary:
		return false
	case *ExtensionModuleStaticallyLinked:
		return false
	case *PathExtension:
		return false
	case *EggFile:
		return false
	default:
		return false
	}
}

// ResolveExtensionModules resolves the extension modules that comply with
// the policy for the given target triple.
//
// Groups are processed in input order and each group's decision is
// independent of every other group's, so the output is deterministic for
// identical inputs. Per group:
//
//  1. If the group's extension is registered broken for targetTriple, the
//     group contributes nothing, regardless of filter.
//  2. A variant from the minimally-required subset, when non-empty, is
//     always appended: the runtime is assumed non-functional without it.
//  3. The configured filter may append a second variant for the same group.
//
// Under ExtensionModuleFilterAll, step 3 appends unconditionally, so the
// output can carry two entries for one group, possibly the same variant
// twice. Callers are expected to deduplicate downstream; this function
// deliberately preserves the duplication.
func (p *PackagingPolicy) ResolveExtensionModules(groups []ExtensionVariants, targetTriple string) []ExtensionModule {
	var res []ExtensionModule

	for _, variants := range groups {
		if variants.IsEmpty() {
			continue
		}

		// This extension is broken on this target. Ignore it.
		if p.extensionBroken(targetTriple, variants.DefaultVariant().Name) {
			continue
		}

		// Always add minimally required extension modules, because things
		// don't work if we don't.
		minimal := filterVariants(variants, (*ExtensionModule).MinimallyRequired)
		if !minimal.IsEmpty() {
			res = append(res, minimal.ChooseVariant(p.preferredVariants))
		}

		switch p.extensionModuleFilter {
		case ExtensionModuleFilterMinimal:
			// Nothing to do: minimal extensions were added above.

		case ExtensionModuleFilterAll:
			res = append(res, variants.ChooseVariant(p.preferredVariants))

		case ExtensionModuleFilterNoLibraries:
			candidates := filterVariants(variants, func(m *ExtensionModule) bool {
				return !m.RequiresLibraries()
			})
			if !candidates.IsEmpty() {
				res = append(res, candidates.ChooseVariant(p.preferredVariants))
			}

		case ExtensionModuleFilterNoGPL:
			candidates := filterVariants(variants, allowedWithoutGPL)
			if !candidates.IsEmpty() {
				res = append(res, candidates.ChooseVariant(p.preferredVariants))
			}
		}
	}

	return res
}

func (p *PackagingPolicy) extensionBroken(targetTriple, name string) bool {
	for _, broken := range p.brokenExtensions[targetTriple] {
		if broken == name {
			return true
		}
	}
	return false
}

// filterVariants returns the subgroup of variants satisfying pred, in group
// order.
func filterVariants(variants ExtensionVariants, pred func(*ExtensionModule) bool) ExtensionVariants {
	var out ExtensionVariants
	for i := range variants {
		if pred(&variants[i]) {
			out = append(out, variants[i])
		}
	}
	return out
}

// allowedWithoutGPL reports whether a variant is admissible under the
// no-gpl filter. First match wins:
//
//  1. No linked libraries: nothing to be concerned about.
//  2. Public domain is always allowed.
//  3. An explicit license list is checked against the non-copyleft
//     allow-list; every entry must be present.
//  4. Otherwise: in lack of evidence that it isn't GPL, assume GPL.
func allowedWithoutGPL(m *ExtensionModule) bool {
	if !m.RequiresLibraries() {
		return true
	}
	if m.LicensePublicDomain {
		return true
	}
	if m.Licenses != nil {
		// Filtering through an allow-list is safer: no new GPL license can
		// slip through.
		for _, license := range m.Licenses {
			if !licensing.IsNonGPL(license) {
				return false
			}
		}
		return true
	}
	return false
}
