package manifest

import (
	"fmt"

	pypackaging "github.com/pyembed/go-pypackaging"
)

// ResourceList converts the manifest's resource entries into the core
// resource types, preserving manifest order.
func (m *Manifest) ResourceList() ([]pypackaging.Resource, error) {
	out := make([]pypackaging.Resource, 0, len(m.Resources))
	for i, r := range m.Resources {
		converted, err := r.toResource()
		if err != nil {
			return nil, fmt.Errorf("resources[%d]: %w", i, err)
		}
		out = append(out, converted)
	}
	return out, nil
}

func (r *ResourceEntry) toResource() (pypackaging.Resource, error) {
	switch r.Kind {
	case KindModuleSource:
		return &pypackaging.ModuleSource{
			Name:      r.Name,
			IsPackage: r.IsPackage,
			IsTest:    r.IsTest,
		}, nil
	case KindModuleBytecodeRequest:
		return &pypackaging.ModuleBytecodeRequest{
			Name:          r.Name,
			OptimizeLevel: r.OptimizeLevel,
			IsPackage:     r.IsPackage,
			IsTest:        r.IsTest,
		}, nil
	case KindModuleBytecode:
		return &pypackaging.ModuleBytecode{
			Name:          r.Name,
			OptimizeLevel: r.OptimizeLevel,
			IsPackage:     r.IsPackage,
		}, nil
	case KindPackageResource:
		return &pypackaging.PackageResource{
			Package: r.Package,
			Name:    r.Name,
			IsTest:  r.IsTest,
		}, nil
	case KindDistributionResource:
		return &pypackaging.DistributionResource{
			Package: r.Package,
			Name:    r.Name,
		}, nil
	case KindExtensionModuleDynamicLibrary:
		return &pypackaging.ExtensionModuleDynamicLibrary{
			Name: r.Name,
			Path: r.Path,
		}, nil
	case KindExtensionModuleStaticallyLinked:
		return &pypackaging.ExtensionModuleStaticallyLinked{
			Name: r.Name,
		}, nil
	case KindPathExtension:
		return &pypackaging.PathExtension{
			Path: r.Path,
		}, nil
	case KindEggFile:
		return &pypackaging.EggFile{
			Path: r.Path,
		}, nil
	default:
		return nil, fmt.Errorf("unknown resource kind %q", r.Kind)
	}
}

// ExtensionVariants converts the manifest's extension groups into variant
// groups, preserving group and variant order. Every variant inherits the
// group's extension name.
func (m *Manifest) ExtensionVariants() []pypackaging.ExtensionVariants {
	out := make([]pypackaging.ExtensionVariants, 0, len(m.Extensions))
	for _, g := range m.Extensions {
		variants := make(pypackaging.ExtensionVariants, 0, len(g.Variants))
		for _, v := range g.Variants {
			variants = append(variants, pypackaging.ExtensionModule{
				Name:                g.Name,
				Variant:             v.Variant,
				InitFunction:        v.InitFunction,
				BuiltinDefault:      v.BuiltinDefault,
				Required:            v.Required,
				LinkLibraries:       convertLibraries(v.LinkLibraries),
				Licenses:            v.Licenses,
				LicensePublicDomain: v.LicensePublicDomain,
			})
		}
		out = append(out, variants)
	}
	return out
}

func convertLibraries(entries []LibraryEntry) []pypackaging.LinkLibrary {
	if len(entries) == 0 {
		return nil
	}
	out := make([]pypackaging.LinkLibrary, 0, len(entries))
	for _, e := range entries {
		out = append(out, pypackaging.LinkLibrary{
			Name:      e.Name,
			System:    e.System,
			Framework: e.Framework,
		})
	}
	return out
}
