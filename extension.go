package pypackaging

// LinkLibrary describes a library an extension module variant links against.
type LinkLibrary struct {
	// Name is the library name, without prefix or suffix (e.g. "ssl").
	Name string

	// System indicates the library is provided by the operating system and
	// must be present at runtime.
	System bool

	// Framework indicates the library is a macOS framework.
	Framework bool
}

// ExtensionModule is one concrete variant of a compiled Python extension
// module. Multiple variants of the same logical extension (differing in how
// they are built or what they link against) are grouped in an
// ExtensionVariants.
type ExtensionModule struct {
	// Name is the fully qualified extension module name (e.g. "_ssl").
	Name string

	// Variant names this build variant (e.g. "default", "openssl-static").
	Variant string

	// InitFunction is the name of the module's C initialization function.
	InitFunction string

	// BuiltinDefault indicates the variant is part of the interpreter's
	// default build configuration.
	BuiltinDefault bool

	// Required indicates the interpreter cannot initialize without this
	// extension.
	Required bool

	// LinkLibraries lists the libraries this variant links against.
	LinkLibraries []LinkLibrary

	// Licenses holds the SPDX license identifiers covering this variant and
	// the libraries it links. A nil slice means licensing is unknown; an
	// empty non-nil slice means the variant is explicitly license-free.
	Licenses []string

	// LicensePublicDomain indicates the variant is in the public domain.
	LicensePublicDomain bool
}

// MinimallyRequired reports whether the variant must be present for a
// functioning interpreter, regardless of any configured filter.
func (m *ExtensionModule) MinimallyRequired() bool {
	return m.BuiltinDefault || m.Required
}

// RequiresLibraries reports whether the variant links against additional
// libraries.
func (m *ExtensionModule) RequiresLibraries() bool {
	return len(m.LinkLibraries) > 0
}

// ExtensionVariants is an ordered group of interchangeable variants of a
// single logical extension module. The first variant is the default.
type ExtensionVariants []ExtensionModule

// IsEmpty reports whether the group has no variants.
func (v ExtensionVariants) IsEmpty() bool {
	return len(v) == 0
}

// DefaultVariant returns the variant used when no preference applies.
// The group must be non-empty.
func (v ExtensionVariants) DefaultVariant() *ExtensionModule {
	return &v[0]
}

// ChooseVariant deterministically picks one variant from the group.
//
// The default variant is chosen unless preferred maps the extension's name
// to a variant name present in the group, in which case the first variant
// carrying that name wins.
func (v ExtensionVariants) ChooseVariant(preferred map[string]string) ExtensionModule {
	chosen := v.DefaultVariant()

	if want, ok := preferred[chosen.Name]; ok {
		for i := range v {
			if v[i].Variant == want {
				chosen = &v[i]
				break
			}
		}
	}

	return *chosen
}
